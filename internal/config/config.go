package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Keys      APIKeys
	Ai        AIConfig
	Assistant AssistantConfig
	Session   SessionConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
	NatsURL            string // empty disables NATS fan-out
	NatsStream         string
	RedisURL           string
	OtelEnabled        bool
	OtelEndpoint       string
	EventTopic         string
}

type APIKeys struct {
	GoogleGemini string
	HuggingFace  string
}

type AIConfig struct {
	LLMProvider        string // "gemini", "ollama" or "huggingface"
	LLMModel           string
	OllamaBaseURL      string
	HuggingFaceBaseURL string
}

type AssistantConfig struct {
	MaxDocumentChars int
	MaxLineLength    int
	Jurisdiction     string
	RulesFilePath    string // optional YAML override of the keyword rule set
	MaxUploadBytes   int
}

type SessionConfig struct {
	Backend         string // "memory" or "redis"
	TTL             time.Duration
	CleanupInterval time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "9000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "logs/contract_events.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", ""),
			NatsStream:         getEnv("NATS_STREAM", "CONTRACT_EVENTS"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			EventTopic:         getEnv("CONTRACT_EVENT_TOPIC", "CONTRACT_EVENTS"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			HuggingFace:  getEnv("HUGGINGFACE_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:        getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:           getEnv("LLM_MODEL", "gemini-2.5-flash"),
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			HuggingFaceBaseURL: getEnv("HUGGINGFACE_BASE_URL", ""),
		},
		Assistant: AssistantConfig{
			MaxDocumentChars: getEnvAsInt("MAX_DOCUMENT_CHARS", 15000),
			MaxLineLength:    getEnvAsInt("MAX_LINE_LENGTH", 85),
			Jurisdiction:     getEnv("ASSISTANT_JURISDICTION", "Indian"),
			RulesFilePath:    getEnv("ASSISTANT_RULES_FILE", ""),
			MaxUploadBytes:   getEnvAsInt("MAX_UPLOAD_BYTES", 10*1024*1024),
		},
		Session: SessionConfig{
			Backend:         getEnv("SESSION_BACKEND", "memory"),
			TTL:             getEnvAsDuration("SESSION_TTL", 0),
			CleanupInterval: getEnvAsDuration("SESSION_CLEANUP_INTERVAL", 10*time.Minute),
		},
	}
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings ("30m", "24h"). Zero means "never expire".
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
