package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	BackendRemote = "remote"
	BackendGoogle = "google"

	PolarityDefault = "default"
	PolarityOpenAI  = "openai"

	SplitterPunkt   = "punkt"
	SplitterBackend = "backend"
)

type Config struct {
	Port      string `envconfig:"PORT" default:"8080"`
	GinMode   string `envconfig:"GIN_MODE" default:"release"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	NLPBackend          string        `envconfig:"NLP_BACKEND" default:"remote"`
	ModelServiceURL     string        `envconfig:"MODEL_SERVICE_URL" default:"http://localhost:5002"`
	ModelServiceTimeout time.Duration `envconfig:"MODEL_SERVICE_TIMEOUT" default:"30s"`
	// base64 encoded service account JSON
	NaturalLanguageCredentials string `envconfig:"NATURAL_LANGUAGE_CREDENTIALS"`

	PolarityBackend string `envconfig:"POLARITY_BACKEND" default:"default"`
	OpenAIAPIKey    string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel     string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`

	SentenceSplitter string `envconfig:"SENTENCE_SPLITTER" default:"punkt"`

	CacheSize           int    `envconfig:"CACHE_SIZE" default:"512"`
	HealthProbeSchedule string `envconfig:"HEALTH_PROBE_SCHEDULE" default:"@every 1m"`
	DefaultMaxTags      int    `envconfig:"DEFAULT_MAX_TAGS" default:"10"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.NLPBackend {
	case BackendRemote:
		if c.ModelServiceURL == "" {
			return errors.New("MODEL_SERVICE_URL is required for the remote backend")
		}
	case BackendGoogle:
		if c.NaturalLanguageCredentials == "" {
			return errors.New("NATURAL_LANGUAGE_CREDENTIALS is required for the google backend")
		}
	default:
		return fmt.Errorf("unknown NLP_BACKEND %q", c.NLPBackend)
	}

	switch c.PolarityBackend {
	case PolarityDefault:
	case PolarityOpenAI:
		if c.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required for the openai polarity backend")
		}
	default:
		return fmt.Errorf("unknown POLARITY_BACKEND %q", c.PolarityBackend)
	}

	if c.SentenceSplitter != SplitterPunkt && c.SentenceSplitter != SplitterBackend {
		return fmt.Errorf("unknown SENTENCE_SPLITTER %q", c.SentenceSplitter)
	}
	if c.CacheSize < 0 {
		return errors.New("CACHE_SIZE must not be negative")
	}
	if c.DefaultMaxTags < 1 {
		return errors.New("DEFAULT_MAX_TAGS must be positive")
	}
	return nil
}
