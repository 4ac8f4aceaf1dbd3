package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Keys    APIKeys
	Ai      AIConfig
	Session SessionConfig
	Tracing TracingConfig
	Events  EventsConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	WSLogFilePath      string
	CorsAllowedOrigins string
	BodyLimitBytes     int
}

type APIKeys struct {
	GoogleGemini string
	OpenAI       string
	JWTSecret    string
}

// ModeProfile is the generation profile applied for a session mode.
type ModeProfile struct {
	Model          string
	Temperature    float64
	ThinkingBudget int
}

type AIConfig struct {
	LLMProvider   string // "gemini", "ollama" or "openai"
	Standard      ModeProfile
	Pro           ModeProfile
	MaxTokens     int // 0 leaves the reply length to the provider
	OllamaBaseURL string
	OpenAIBaseURL string
	TTSModel      string
	TTSVoice      string
	StreamTimeout time.Duration
	SpeechTimeout time.Duration
}

type SessionConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
	MaxUploadBytes  int
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

type EventsConfig struct {
	MessageFinalizedTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			WSLogFilePath:      getEnv("WS_LOG_FILE_PATH", "logs/websocket.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			BodyLimitBytes:     getEnvAsInt("BODY_LIMIT_BYTES", 50*1024*1024),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
			JWTSecret:    getEnv("JWT_SECRET", ""),
		},
		Ai: AIConfig{
			LLMProvider: getEnv("LLM_PROVIDER", "gemini"),
			Standard: ModeProfile{
				Model:          getEnv("LLM_STANDARD_MODEL", "gemini-3-flash-preview"),
				Temperature:    getEnvAsFloat("LLM_STANDARD_TEMPERATURE", 0.1),
				ThinkingBudget: getEnvAsInt("LLM_STANDARD_THINKING_BUDGET", 0),
			},
			Pro: ModeProfile{
				Model:          getEnv("LLM_PRO_MODEL", "gemini-3-pro-preview"),
				Temperature:    getEnvAsFloat("LLM_PRO_TEMPERATURE", 0.7),
				ThinkingBudget: getEnvAsInt("LLM_PRO_THINKING_BUDGET", 32768),
			},
			MaxTokens:     getEnvAsInt("LLM_MAX_TOKENS", 0),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
			TTSModel:      getEnv("TTS_MODEL", "gemini-2.5-flash-preview-tts"),
			TTSVoice:      getEnv("TTS_VOICE", "Kore"),
			StreamTimeout: getEnvAsDuration("LLM_STREAM_TIMEOUT", 5*time.Minute),
			SpeechTimeout: getEnvAsDuration("TTS_TIMEOUT", 2*time.Minute),
		},
		Session: SessionConfig{
			TTL:             getEnvAsDuration("SESSION_TTL", 6*time.Hour),
			CleanupInterval: getEnvAsDuration("SESSION_CLEANUP_INTERVAL", 10*time.Minute),
			MaxUploadBytes:  getEnvAsInt("MAX_UPLOAD_BYTES", 20*1024*1024),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "party-advisor-backend"),
		},
		Events: EventsConfig{
			MessageFinalizedTopic: getEnv("MESSAGE_FINALIZED_TOPIC", "assistant.message.finalized"),
		},
	}
}

// Profile returns the generation profile for a session mode.
func (c AIConfig) Profile(pro bool) ModeProfile {
	if pro {
		return c.Pro
	}
	return c.Standard
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := strings.TrimSpace(getEnv(key, ""))
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
