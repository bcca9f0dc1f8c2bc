package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Gateway GatewayConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
	SessionTTLMinutes  int
	DecisionTopic      string
}

// GatewayConfig holds the four external collaborator endpoints. All four are
// required; the process refuses to start when any is missing.
type GatewayConfig struct {
	UploadURL   string
	ClassifyURL string
	FeedbackURL string
	ApproveURL  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "logs/review_audit.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			SessionTTLMinutes:  getEnvAsInt("SESSION_TTL_MINUTES", 60),
			DecisionTopic:      getEnv("REVIEW_DECISION_TOPIC_NAME", "REVIEW_DECISIONS"),
		},
		Gateway: GatewayConfig{
			UploadURL:   getEnv("UPLOAD_URL", ""),
			ClassifyURL: getEnv("CLASSIFY_URL", ""),
			FeedbackURL: getEnv("FEEDBACK_URL", ""),
			ApproveURL:  getEnv("APPROVE_URL", ""),
		},
	}
}

// ValidateGateway reports every missing required endpoint variable at once so
// an operator fixes the environment in one pass.
func (c *Config) ValidateGateway() error {
	var missing []string
	if c.Gateway.UploadURL == "" {
		missing = append(missing, "UPLOAD_URL")
	}
	if c.Gateway.ClassifyURL == "" {
		missing = append(missing, "CLASSIFY_URL")
	}
	if c.Gateway.FeedbackURL == "" {
		missing = append(missing, "FEEDBACK_URL")
	}
	if c.Gateway.ApproveURL == "" {
		missing = append(missing, "APPROVE_URL")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
