package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	GinMode          string
	MongoURI         string
	MongoDatabase    string
	RabbitMQURI      string
	RabbitMQExchange string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	ConsulAddress    string
	ServiceName      string
	ServiceID        string
	ServiceAddress   string
	JWTSecret        string
	QuestionsPerTest int
	MinPoolSize      int
	StartRateLimit   int
	AnalyticsRefresh int
}

var AppConfig *Config

func Load() *Config {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Port:             getEnv("PORT", "6666"),
		GinMode:          getEnv("GIN_MODE", "debug"),
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:    getEnv("MONGO_DATABASE", "assessment_service"),
		RabbitMQURI:      getEnv("RABBITMQ_URI", ""),
		RabbitMQExchange: getEnv("RABBITMQ_EXCHANGE", ""),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PWD", ""),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		ConsulAddress:    getEnv("CONSUL_ADDRESS", ""),
		ServiceName:      getEnv("SERVICE_NAME", "assessment-service"),
		ServiceID:        getEnv("SERVICE_ID", "assessment-service-1"),
		ServiceAddress:   getEnv("SERVICE_ADDRESS", "localhost"),
		JWTSecret:        getEnv("JWT_SECRET", "your-jwt-secret-key"),
		QuestionsPerTest: getEnvInt("QUESTIONS_PER_TEST", 50),
		MinPoolSize:      getEnvInt("MIN_POOL_SIZE", 5),
		StartRateLimit:   getEnvInt("START_RATE_LIMIT_PER_MINUTE", 10),
		AnalyticsRefresh: getEnvInt("ANALYTICS_REFRESH_MINUTES", 60),
	}
	return AppConfig
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
