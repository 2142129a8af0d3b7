package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	ListenAddr      string        `env:"LISTEN_ADDR"      envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	SummaryModel  string `env:"SUMMARY_MODEL"  envDefault:"gpt-4.1"`
	VisionModel   string `env:"VISION_MODEL"   envDefault:"gpt-4.1"`

	// Zero disables the client-side timeout and retries.
	OpenAIRequestTimeout time.Duration `env:"OPENAI_REQUEST_TIMEOUT" envDefault:"0s"`
	OpenAIMaxRetries     int           `env:"OPENAI_MAX_RETRIES"     envDefault:"0"`

	MaxUploadBytes    int64 `env:"MAX_UPLOAD_BYTES"    envDefault:"20971520"`
	MaxImageDimension int   `env:"MAX_IMAGE_DIMENSION" envDefault:"2048"`

	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFile  string     `env:"LOG_FILE"`
}

func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// LoadFromEnvironment parses the given variables instead of the process environment.
func LoadFromEnvironment(environment map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environment}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.ListenAddr == "" {
		errs = append(errs, errors.New("LISTEN_ADDR is empty"))
	}
	if c.SummaryModel == "" {
		errs = append(errs, errors.New("SUMMARY_MODEL is empty"))
	}
	if c.VisionModel == "" {
		errs = append(errs, errors.New("VISION_MODEL is empty"))
	}
	if c.OpenAIRequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("OPENAI_REQUEST_TIMEOUT is negative (%s)", c.OpenAIRequestTimeout))
	}
	if c.OpenAIMaxRetries < 0 {
		errs = append(errs, fmt.Errorf("OPENAI_MAX_RETRIES is negative (%d)", c.OpenAIMaxRetries))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("MAX_UPLOAD_BYTES must be positive (%d)", c.MaxUploadBytes))
	}
	if c.MaxImageDimension <= 0 {
		errs = append(errs, fmt.Errorf("MAX_IMAGE_DIMENSION must be positive (%d)", c.MaxImageDimension))
	}

	return errors.Join(errs...)
}

func (c *Config) HasOpenAICredentials() bool {
	return c.OpenAIAPIKey != ""
}
