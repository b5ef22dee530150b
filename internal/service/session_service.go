package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"interview-service/internal/audio"
	"interview-service/internal/bank"
	"interview-service/internal/evaluator"
	"interview-service/internal/metrics"
	"interview-service/internal/models"
	"interview-service/internal/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MinAudioBytes rejects payloads too small to hold any audio at all;
// browser recorders never emit less than this for a real capture.
const MinAudioBytes = 100

// Evaluator scores one multimodal answer. The production
// implementation lives in internal/evaluator; tests substitute stubs.
type Evaluator interface {
	Evaluate(ctx context.Context, req evaluator.Request) (*evaluator.Evaluation, error)
}

// SessionService owns the interview session lifecycle: creation,
// per-answer evaluation, terminal aggregation, and read access.
type SessionService struct {
	Bank       *bank.Bank
	Store      store.SessionStore
	Evaluator  Evaluator
	Normalizer *audio.Normalizer
	TempDir    string
	Metrics    *metrics.Metrics

	locks *store.KeyedMutex
}

func NewSessionService(b *bank.Bank, st store.SessionStore, ev Evaluator, tempDir string, m *metrics.Metrics) *SessionService {
	return &SessionService{
		Bank:       b,
		Store:      st,
		Evaluator:  ev,
		Normalizer: audio.NewNormalizer(tempDir),
		TempDir:    tempDir,
		Metrics:    m,
		locks:      store.NewKeyedMutex(),
	}
}

// Upload is one file received from the client.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// StartResponse is the client view of a freshly created session.
type StartResponse struct {
	SessionID      string                `json:"session_id"`
	Domain         string                `json:"domain"`
	Level          string                `json:"level"`
	TotalQuestions int                   `json:"total_questions"`
	Questions      []models.QuestionView `json:"questions"`
}

// EvaluateResponse carries one scored answer plus either progress or,
// at the terminal transition, the final report.
type EvaluateResponse struct {
	Finished     bool                 `json:"finished"`
	CurrentScore models.Result        `json:"current_score"`
	Progress     *models.Progress     `json:"progress,omitempty"`
	FinalResult  *models.FinalSummary `json:"final_result,omitempty"`
	AllScores    []models.Result      `json:"all_scores,omitempty"`
}

// Start materializes the question sequence for a domain and level and
// persists a new session. Unknown domains fall back to the default
// domain rather than erroring.
func (s *SessionService) Start(ctx context.Context, domain, level string) (*StartResponse, error) {
	if level == "" {
		level = "all"
	}
	key, questions := s.Bank.Select(domain, level)

	session := &models.InterviewSession{
		ID:             uuid.NewString(),
		Domain:         key,
		Level:          level,
		Questions:      questions,
		Scores:         []models.Result{},
		TotalQuestions: len(questions),
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Store.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s.Metrics.SessionStarted(key)
	logrus.WithFields(logrus.Fields{
		"session_id": session.ID,
		"domain":     key,
		"level":      level,
		"questions":  len(questions),
	}).Info("interview session started")

	return &StartResponse{
		SessionID:      session.ID,
		Domain:         key,
		Level:          level,
		TotalQuestions: len(questions),
		Questions:      session.SafeQuestions(),
	}, nil
}

// Evaluate scores the answer for one question index and appends the
// result. Submitting the last index triggers aggregation and the
// terminal transition. Indices are caller-supplied: repeats and
// out-of-order submissions append additional results rather than
// overwriting.
func (s *SessionService) Evaluate(ctx context.Context, sessionID string, index int, answerText string, image, audioUpload Upload) (*EvaluateResponse, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	session, err := s.Store.Get(ctx, sessionID)
	if err == store.ErrNotFound {
		return nil, errNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if index < 0 || index >= len(session.Questions) {
		return nil, errInvalidIndex(index, len(session.Questions))
	}
	if len(audioUpload.Data) < MinAudioBytes {
		return nil, errInvalidAudio()
	}
	question := session.Questions[index]

	start := time.Now()
	result, err := s.submit(ctx, question, index, answerText, image, audioUpload)
	s.Metrics.EvaluationFinished(time.Since(start), err)
	if err != nil {
		return nil, err
	}

	session.Scores = append(session.Scores, *result)

	finished := index >= len(session.Questions)-1
	if finished {
		summary, aggErr := Aggregate(session)
		if aggErr != nil {
			return nil, aggErr
		}
		session.FinalResult = summary
		s.Metrics.SessionCompleted(session.Domain)
	}

	if err := s.Store.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"session_id":     sessionID,
		"question_index": index,
		"marks":          result.OverallMarks,
		"state":          session.State(),
	}).Info("answer recorded")

	resp := &EvaluateResponse{Finished: finished, CurrentScore: *result}
	if finished {
		resp.FinalResult = session.FinalResult
		resp.AllScores = session.Scores
	} else {
		total := len(session.Questions)
		resp.Progress = &models.Progress{
			Current:    index + 1,
			Total:      total,
			Percentage: round1(float64(index+1) / float64(total) * 100),
		}
	}
	return resp, nil
}

// submit runs one answer through normalization and the external
// evaluator. Both temp files are removed on every exit path.
func (s *SessionService) submit(ctx context.Context, question models.Question, index int, answerText string, image, audioUpload Upload) (*models.Result, error) {
	imagePath := filepath.Join(s.TempDir, uuid.NewString()+".jpg")
	if err := os.WriteFile(imagePath, image.Data, 0o644); err != nil {
		return nil, errEvaluation(fmt.Errorf("persist image: %w", err))
	}
	defer removeTemp(imagePath)

	audioPath, err := s.Normalizer.Normalize(audioUpload.Data, audioUpload.ContentType, audioUpload.Filename)
	if err != nil {
		return nil, errEvaluation(fmt.Errorf("persist audio: %w", err))
	}
	defer removeTemp(audioPath)

	logrus.WithFields(logrus.Fields{
		"question_index": index,
		"image_bytes":    len(image.Data),
		"audio_path":     filepath.Base(audioPath),
	}).Debug("submitting answer for evaluation")

	eval, err := s.Evaluator.Evaluate(ctx, evaluator.Request{
		AnswerText:  answerText,
		Keywords:    question.Keywords,
		Weight:      question.Weight,
		ImagePath:   imagePath,
		AudioPath:   audioPath,
		ModelAnswer: question.ModelAnswer,
		Category:    question.Category,
	})
	if err != nil {
		return nil, errEvaluation(err)
	}

	return &models.Result{
		Question:       question.Prompt,
		QuestionIndex:  index,
		Category:       question.Category,
		Difficulty:     question.Difficulty,
		Weight:         question.Weight,
		Transcript:     eval.Transcript,
		OverallMarks:   eval.OverallMarks,
		OverallPercent: eval.OverallPercentage,
		Emotion:        eval.EmotionDetected,
		EmotionDetails: eval.EmotionDetails,
		Sentiment:      eval.Sentiment,
		Feedback:       eval.Feedback,
		Breakdown:      eval.Breakdown,
		SkillScores:    eval.SkillScores,
		VoiceAnalysis:  eval.VoiceAnalysis,
		Keywords:       eval.Keywords,
	}, nil
}

// Get returns the persisted session with model answers stripped.
func (s *SessionService) Get(ctx context.Context, sessionID string) (*models.InterviewSession, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err == store.ErrNotFound {
		return nil, errNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	safe := *session
	safe.Questions = make([]models.Question, len(session.Questions))
	for i, q := range session.Questions {
		q.ModelAnswer = ""
		safe.Questions[i] = q
	}
	return &safe, nil
}

// Domains lists the available interview domains.
func (s *SessionService) Domains() []bank.DomainInfo {
	return s.Bank.Domains()
}

func removeTemp(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).WithField("path", path).Warn("temp file cleanup failed")
	}
}
