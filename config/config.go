package config

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/intelfusion/case-similarity-api/models"
)

// Config holds the project config values
type Config struct {
	Port     string
	BaseURL  string
	Timezone string

	// mongo (processing defaults store)
	URL          string
	DatabaseName string

	// qdrant (similarity store)
	QdrantHost       string
	QdrantPort       int
	QdrantAPIKey     string
	QdrantCollection string

	// collaborator services
	EmbeddingsBaseURL string
	TitlesBaseURL     string
	TitlesAPIKey      string
	TitlesModel       string

	// redis (merge advisory lock), optional
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AuthSecret string

	// service-level processing defaults, overridable per report type
	DefaultScoreThreshold float64
	DefaultLimit          int
	DefaultRadius         float64

	// merge policy: minimum score gap between the top two hits before a
	// merge is trusted, 0 disables the check
	MinScoreMargin float64
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger, err := setLogger(os.Getenv("ENVIRONMENT"))
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		Port:     getEnv("PORT", "8000"),
		BaseURL:  os.Getenv("BASE_URL"),
		Timezone: getEnv("TIMEZONE", "Asia/Jakarta"),

		URL:          os.Getenv("DB_URI"),
		DatabaseName: getEnv("DB_NAME", "case_similarity"),

		QdrantHost:       getEnv("QDRANT_HOST", "localhost"),
		QdrantPort:       getEnvInt("QDRANT_PORT", 6334),
		QdrantAPIKey:     os.Getenv("QDRANT_API_KEY"),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "cases"),

		EmbeddingsBaseURL: os.Getenv("EMBEDDINGS_BASE_URL"),
		TitlesBaseURL:     os.Getenv("TITLES_BASE_URL"),
		TitlesAPIKey:      os.Getenv("TITLES_API_KEY"),
		TitlesModel:       getEnv("TITLES_MODEL", "gpt-4o-mini"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		AuthSecret: os.Getenv("AUTH_SECRET"),

		DefaultScoreThreshold: getEnvFloat("DEFAULT_SCORE_THRESHOLD", 0.85),
		DefaultLimit:          getEnvInt("DEFAULT_LIMIT", 5),
		DefaultRadius:         getEnvFloat("DEFAULT_RADIUS_COORDINATE", 300.0),

		MinScoreMargin: getEnvFloat("MIN_SCORE_MARGIN", 0),
	}

}

func setLogger(environment string) (*zap.Logger, error) {
	switch environment {
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	default:
		return zap.NewExample(), nil
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	b, _ := json.Marshal(models.ErrorMessageResponse{Response: models.MessageError{Message: message, Error: err.Error()}})
	w.Write(b)
}
