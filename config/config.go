package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"fitness-ai-assistant/logging"
)

// Supported fallback providers
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// Config holds application configuration
type Config struct {
	// Server
	ServerPort     string
	GinMode        string
	FrontendDir    string
	RateLimitRPS   float64
	RateLimitBurst int

	// AI Provider
	AIProvider      string
	GeminiAPIKey    string
	GeminiModel     string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OpenAIModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	OllamaURL       string
	OllamaModel     string
	LLMTimeout      time.Duration
	MaxTokens       int

	// Lookup tables (empty means the embedded defaults)
	TablesFile string

	// Profile store
	ProfileBackend      string
	ProfilePath         string
	ResetProfileOnStart bool

	// Conversation log
	ChatLogPath string
	ChatLogDSN  string

	// Logging
	LogLevel       string
	LogDevelopment bool
}

// Load loads configuration from environment variables
func Load() *Config {
	// Try to load .env file (optional for local development)
	_ = godotenv.Load()

	config := &Config{
		ServerPort:     getEnv("SERVER_PORT", "8000"),
		GinMode:        getEnv("GIN_MODE", "release"),
		FrontendDir:    getEnv("FRONTEND_DIR", "./frontend"),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),

		AIProvider:      strings.ToLower(getEnv("AI_PROVIDER", ProviderGemini)),
		GeminiAPIKey:    os.Getenv("GOOGLE_GEMINI_API_KEY"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
		OllamaURL:       getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:     getEnv("OLLAMA_MODEL", "llama3.2"),
		LLMTimeout:      getEnvDuration("LLM_TIMEOUT", 30*time.Second),
		MaxTokens:       getEnvInt("LLM_MAX_TOKENS", 1024),

		TablesFile: os.Getenv("TABLES_FILE"),

		ProfileBackend:      strings.ToLower(getEnv("PROFILE_BACKEND", "json")),
		ProfilePath:         getEnv("PROFILE_PATH", "data/user_profile.json"),
		ResetProfileOnStart: getEnvBool("RESET_PROFILE_ON_START", true),

		ChatLogPath: getEnv("CHAT_LOG_PATH", "data/logs.csv"),
		ChatLogDSN:  os.Getenv("CHAT_LOG_DSN"),

		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogDevelopment: getEnvBool("LOG_DEVELOPMENT", false),
	}

	config.validate()

	return config
}

// validate warns about incomplete provider settings and resets unknown values
func (c *Config) validate() {
	log := logging.L()

	switch c.AIProvider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			log.Warn("GOOGLE_GEMINI_API_KEY not set")
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			log.Warn("OPENAI_API_KEY not set")
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			log.Warn("ANTHROPIC_API_KEY not set")
		}
	case ProviderOllama:
		if c.OllamaURL == "" {
			log.Warn("OLLAMA_URL not set")
		}
	default:
		log.Warnf("Unknown AI_PROVIDER: %s (using gemini as fallback)", c.AIProvider)
		c.AIProvider = ProviderGemini
	}

	switch c.ProfileBackend {
	case "json", "sqlite":
	default:
		log.Warnf("Unknown PROFILE_BACKEND: %s (using json)", c.ProfileBackend)
		c.ProfileBackend = "json"
	}

	if c.RateLimitRPS <= 0 {
		c.RateLimitRPS = 5
	}
	if c.RateLimitBurst <= 0 {
		c.RateLimitBurst = 1
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
