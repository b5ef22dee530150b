package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port             string
	GinMode          string
	MongoURI         string
	MongoDatabase    string
	RabbitMQURI      string
	RabbitMQExchange string
	EvaluatorURL     string
	QuestionBankPath string
	TempDir          string
	LogLevel         string
	ServiceName      string
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Port:             getEnvOrDefault("PORT", "8000"),
		GinMode:          getEnvOrDefault("GIN_MODE", "debug"),
		MongoURI:         getEnvOrDefault("MONGO_URI", ""),
		MongoDatabase:    getEnvOrDefault("MONGO_DATABASE", "interview_service"),
		RabbitMQURI:      getEnvOrDefault("RABBITMQ_URI", ""),
		RabbitMQExchange: getEnvOrDefault("RABBITMQ_EXCHANGE", ""),
		EvaluatorURL:     getEnvOrDefault("EVALUATOR_URL", "http://localhost:9000"),
		QuestionBankPath: getEnvOrDefault("QUESTION_BANK_PATH", ""),
		TempDir:          getEnvOrDefault("TEMP_DIR", "temp_eval"),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
		ServiceName:      getEnvOrDefault("SERVICE_NAME", "interview-service"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
