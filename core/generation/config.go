package generation

import (
	"os"

	"github.com/joho/godotenv"
)

// Defaults for the generation capability
const (
	DefaultModel           = "gemini-2.5-flash"
	DefaultTemperature     = float32(0.4)
	DefaultMaxTokens       = int32(1024)
	DefaultMaxContextChars = 8000
)

// Config holds the configuration for the generation capability.
// An empty APIKey means the capability is unavailable and the orchestrator
// degrades to its deterministic mock producer.
type Config struct {
	APIKey          string
	Model           string
	Temperature     float32
	MaxTokens       int32
	MaxContextChars int
}

// NewConfigFromEnv reads the generation configuration from the environment.
// A .env file in the working directory is loaded first if present.
func NewConfigFromEnv() *Config {
	_ = godotenv.Load()

	config := &Config{
		APIKey:          os.Getenv("GEMINI_API_KEY"),
		Model:           os.Getenv("GEMINI_MODEL"),
		Temperature:     DefaultTemperature,
		MaxTokens:       DefaultMaxTokens,
		MaxContextChars: DefaultMaxContextChars,
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}

	return config
}

// normalized fills zero values with defaults. A nil receiver yields the
// full default configuration, which runs in mock-only mode.
func (c *Config) normalized() *Config {
	if c == nil {
		c = &Config{}
	}
	out := *c
	if out.Model == "" {
		out.Model = DefaultModel
	}
	if out.Temperature == 0 {
		out.Temperature = DefaultTemperature
	}
	if out.MaxTokens == 0 {
		out.MaxTokens = DefaultMaxTokens
	}
	if out.MaxContextChars == 0 {
		out.MaxContextChars = DefaultMaxContextChars
	}
	return &out
}
