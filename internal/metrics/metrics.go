package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the interview engine.
// All methods are nil-safe so tests can run without a registry.
type Metrics struct {
	SessionsStarted    *prometheus.CounterVec
	SessionsCompleted  *prometheus.CounterVec
	Evaluations        prometheus.Counter
	EvaluationFailures prometheus.Counter
	EvaluationDuration prometheus.Histogram
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		SessionsStarted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "interview_sessions_started_total",
			Help: "Interview sessions created, by domain",
		}, []string{"domain"}),
		SessionsCompleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "interview_sessions_completed_total",
			Help: "Interview sessions that reached the terminal state, by domain",
		}, []string{"domain"}),
		Evaluations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "interview_evaluations_total",
			Help: "Answer evaluations attempted",
		}),
		EvaluationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "interview_evaluation_failures_total",
			Help: "Answer evaluations that failed",
		}),
		EvaluationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "interview_evaluation_duration_seconds",
			Help:    "Wall time of one answer evaluation, normalization included",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
	}
}

func (m *Metrics) SessionStarted(domain string) {
	if m == nil {
		return
	}
	m.SessionsStarted.WithLabelValues(domain).Inc()
}

func (m *Metrics) SessionCompleted(domain string) {
	if m == nil {
		return
	}
	m.SessionsCompleted.WithLabelValues(domain).Inc()
}

func (m *Metrics) EvaluationFinished(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.Evaluations.Inc()
	m.EvaluationDuration.Observe(d.Seconds())
	if err != nil {
		m.EvaluationFailures.Inc()
	}
}
