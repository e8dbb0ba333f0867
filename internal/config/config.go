package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"alfredoptarigan/resume-insights/internal/logger"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

var ErrMissingAPIKey = errors.New("missing API key")

type Config struct {
	Server  ServerConfig
	LLM     LLMConfig
	Storage StorageConfig
	Log     LogConfig

	// EnvFile is the file Load tried; EnvFileLoaded reports whether it
	// was read. Load itself does not log since the logger is not set up yet.
	EnvFile       string
	EnvFileLoaded bool
}

type ServerConfig struct {
	Port string
	Env  string
}

type LLMConfig struct {
	Provider   string
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type StorageConfig struct {
	MaxFileSize int64
}

type LogConfig struct {
	Level        string
	Format       string
	TimeFormat   string
	ReportCaller bool
}

// Load reads envFile when present and then the process environment. An
// empty envFile means ".env".
func Load(envFile string) *Config {
	if envFile == "" {
		envFile = ".env"
	}
	loaded := godotenv.Load(envFile) == nil

	env := getEnv("ENV", "development")

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  env,
		},
		LLM: LLMConfig{
			Provider: strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
			Gemini: GeminiConfig{
				APIKey: getEnv("GEMINI_API_KEY", ""),
				Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			},
			OpenRouter: OpenRouterConfig{
				APIKey:  getEnv("OPENROUTER_API_KEY", ""),
				BaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
				Model:   getEnv("OPENROUTER_MODEL", "google/gemini-2.5-flash"),
			},
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Log: LogConfig{
			Level:        getEnv("LOG_LEVEL", "info"),
			Format:       getEnv("LOG_FORMAT", defaultLogFormat(env)),
			TimeFormat:   getEnv("LOG_TIME_FORMAT", ""),
			ReportCaller: getEnvAsBool("LOG_CALLER", false),
		},
		EnvFile:       envFile,
		EnvFileLoaded: loaded,
	}
}

// Validate fails when the selected provider cannot be used.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderGemini:
		if c.LLM.Gemini.APIKey == "" {
			return fmt.Errorf("%w: set GEMINI_API_KEY", ErrMissingAPIKey)
		}
	case ProviderOpenRouter:
		if c.LLM.OpenRouter.APIKey == "" {
			return fmt.Errorf("%w: set OPENROUTER_API_KEY", ErrMissingAPIKey)
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q (want %s or %s)", c.LLM.Provider, ProviderGemini, ProviderOpenRouter)
	}

	if c.Storage.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", c.Storage.MaxFileSize)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:        c.Log.Level,
		Format:       c.Log.Format,
		TimeFormat:   c.Log.TimeFormat,
		ReportCaller: c.Log.ReportCaller,
	}
}

func defaultLogFormat(env string) string {
	if env == "development" {
		return "pretty"
	}
	return "json"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
