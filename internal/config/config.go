package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv           string
	AppName          string
	AppPort          string
	LogLevel         string
	CORSAllowOrigins []string
	OpenAIAPIKey     string
	OpenAIModel      string
	OpenAIBaseURL    string
	AITimeoutSeconds int
	SMTPServer       string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
}

func Load() Config {
	_ = godotenv.Load(".env")

	return Config{
		AppEnv:           getEnv("APP_ENV", "local"),
		AppName:          getEnv("APP_NAME", "KataChat Health API"),
		AppPort:          getEnv("APP_PORT", "5000"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		CORSAllowOrigins: getEnvCSV("CORS_ALLOW_ORIGINS", []string{"*"}),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		AITimeoutSeconds: getEnvInt("AI_TIMEOUT_SECONDS", 30),
		SMTPServer:       getEnv("SMTP_SERVER", "smtp.gmail.com"),
		SMTPPort:         getEnvInt("SMTP_PORT", 587),
		SMTPUsername:     getEnv("SMTP_USERNAME", "kata.chatbot@gmail.com"),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
	}
}

// Validate checks structural sanity only. Missing AI or SMTP credentials
// degrade at runtime instead of failing startup.
func (c Config) Validate() error {
	port, err := strconv.Atoi(strings.TrimSpace(c.AppPort))
	if err != nil || port <= 0 || port > 65535 {
		return errors.New("APP_PORT must be a valid TCP port")
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return errors.New("SMTP_PORT must be a valid TCP port")
	}
	if strings.TrimSpace(c.OpenAIBaseURL) == "" {
		return errors.New("OPENAI_BASE_URL is required")
	}
	if strings.TrimSpace(c.OpenAIModel) == "" {
		return errors.New("OPENAI_MODEL is required")
	}
	return nil
}

func (c Config) MailConfigured() bool {
	return strings.TrimSpace(c.SMTPServer) != "" &&
		strings.TrimSpace(c.SMTPUsername) != "" &&
		strings.TrimSpace(c.SMTPPassword) != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvCSV(key string, fallback []string) []string {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, item := range parts {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return fallback
	}
	return result
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}
