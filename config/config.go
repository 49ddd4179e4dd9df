// Package config loads travelbot configuration from the environment.
//
// A .env file in the working directory is honored when present. Model
// credentials are validated at load time: a missing API key is a startup
// failure, not something discovered on the first user turn.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the assistant
type Config struct {
	// OpenAI / Azure OpenAI
	OpenAIAPIKey    string
	AzureEndpoint   string // when set, the Azure API type is used
	AzureDeployment string
	AzureAPIVersion string
	Model           string
	EmbeddingModel  string
	Temperature     float64
	RequestTimeout  time.Duration // applied to every chat/vision/embedding call

	// OpenWeatherMap. Optional: when empty, weather enrichment is skipped.
	OpenWeatherAPIKey string

	// Knowledge index
	IndexPath     string // sqlite database path; empty selects the in-memory store
	RetrievalTopK int

	// Conversation
	MaxTurns int // retained user/assistant pairs per session
}

// Defaults
const (
	DefaultModel          = "gpt-4o"
	DefaultEmbeddingModel = "text-embedding-3-small"
	DefaultRequestTimeout = 60 * time.Second
	DefaultRetrievalTopK  = 3
	DefaultMaxTurns       = 10
)

// Load reads configuration from the environment, honoring a local .env file.
// It fails when the model credential is absent.
func Load() (*Config, error) {
	// Missing .env is fine; explicit environment still applies.
	_ = godotenv.Load()

	cfg := &Config{
		OpenAIAPIKey:      firstEnv("AZURE_OPENAI_API_KEY", "OPENAI_API_KEY"),
		AzureEndpoint:     os.Getenv("AZURE_OPENAI_ENDPOINT"),
		AzureDeployment:   os.Getenv("AZURE_OPENAI_DEPLOYMENT_NAME"),
		AzureAPIVersion:   os.Getenv("AZURE_OPENAI_API_VERSION"),
		Model:             envOr("OPENAI_MODEL", DefaultModel),
		EmbeddingModel:    envOr("OPENAI_EMBEDDING_MODEL", DefaultEmbeddingModel),
		Temperature:       envFloat("OPENAI_TEMPERATURE", 1.0),
		RequestTimeout:    envDuration("LLM_REQUEST_TIMEOUT", DefaultRequestTimeout),
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		IndexPath:         os.Getenv("KNOWLEDGE_INDEX_PATH"),
		RetrievalTopK:     envInt("RETRIEVAL_TOP_K", DefaultRetrievalTopK),
		MaxTurns:          envInt("CHAT_MAX_TURNS", DefaultMaxTurns),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("config: missing model credential (set AZURE_OPENAI_API_KEY or OPENAI_API_KEY)")
	}
	if c.AzureEndpoint != "" && c.AzureDeployment == "" {
		return fmt.Errorf("config: AZURE_OPENAI_ENDPOINT is set but AZURE_OPENAI_DEPLOYMENT_NAME is not")
	}
	if c.RetrievalTopK <= 0 {
		return fmt.Errorf("config: retrieval top-k must be positive, got %d", c.RetrievalTopK)
	}
	if c.MaxTurns <= 0 {
		return fmt.Errorf("config: max turns must be positive, got %d", c.MaxTurns)
	}
	return nil
}

// UseAzure reports whether Azure OpenAI endpoints should be used
func (c *Config) UseAzure() bool {
	return c.AzureEndpoint != ""
}

// HasWeather reports whether the weather provider is configured
func (c *Config) HasWeather() bool {
	return c.OpenWeatherAPIKey != ""
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
