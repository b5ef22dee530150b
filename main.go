package main

import (
	"os"
	"time"

	"interview-service/internal/bank"
	"interview-service/internal/config"
	"interview-service/internal/db"
	"interview-service/internal/evaluator"
	"interview-service/internal/event"
	"interview-service/internal/handlers"
	"interview-service/internal/metrics"
	"interview-service/internal/service"
	"interview-service/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}
	gin.SetMode(cfg.GinMode)

	if err := os.MkdirAll(cfg.TempDir, 0o755); err != nil {
		logrus.WithError(err).Fatal("Failed to create temp dir")
	}

	// Question bank: file-backed when configured, built-in otherwise.
	questionBank := bank.Default()
	if cfg.QuestionBankPath != "" {
		loaded, err := bank.LoadFile(cfg.QuestionBankPath)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to load question bank")
		}
		questionBank = loaded
	}

	// Session store: MongoDB when configured, in-memory otherwise.
	var sessionStore store.SessionStore = store.NewMemoryStore()
	if cfg.MongoURI != "" {
		if err := db.InitMongo(cfg.MongoURI); err != nil {
			logrus.WithError(err).Fatal("Failed to connect to MongoDB")
		}
		defer db.CloseMongo()
		sessionStore = store.NewMongoStore(db.Client.Database(cfg.MongoDatabase))
	} else {
		logrus.Warn("MONGO_URI not set, sessions are kept in memory only")
	}

	// RabbitMQ event publisher (optional, like the rest of the platform).
	var publisher *event.EventPublisher
	if cfg.RabbitMQURI != "" && cfg.RabbitMQExchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(cfg.RabbitMQURI, cfg.RabbitMQExchange)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to connect to RabbitMQ")
		}
		defer publisher.Close()
	} else {
		logrus.Info("RabbitMQ not configured, lifecycle events will not be published")
	}

	m := metrics.New()
	evalClient := evaluator.NewClient(cfg.EvaluatorURL)
	sessionService := service.NewSessionService(questionBank, sessionStore, evalClient, cfg.TempDir, m)
	sessionHandler := handlers.NewSessionHandler(sessionService)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", sessionHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	interview := r.Group("/interview")
	{
		interview.POST("/start", func(c *gin.Context) {
			sessionHandler.Start(c)
			if publisher != nil {
				publisher.Publish("interview.session.started", gin.H{
					"timestamp": time.Now(),
				})
			}
		})

		interview.POST("/evaluate", func(c *gin.Context) {
			sessionHandler.Evaluate(c)
			if publisher != nil {
				publisher.Publish("interview.answer.evaluated", gin.H{
					"session_id": c.PostForm("session_id"),
					"index":      c.PostForm("index"),
					"timestamp":  time.Now(),
				})
			}
		})

		interview.GET("/session/:id", func(c *gin.Context) {
			sessionHandler.GetSession(c)
			if publisher != nil {
				publisher.Publish("interview.session.viewed", gin.H{
					"session_id": c.Param("id"),
					"timestamp":  time.Now(),
				})
			}
		})

		interview.GET("/domains", sessionHandler.GetDomains)
	}

	logrus.WithField("port", cfg.Port).Info("interview service listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("Server stopped")
	}
}
