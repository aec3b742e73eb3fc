package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/akashicode/pdftext/internal/reader"
)

// ErrNilConfig is returned when a nil Config is provided.
var ErrNilConfig = errors.New("config is nil")

// Paths baked into the program. Config files and env vars may override them.
const (
	DefaultInput        = "Hari Hara Sundaram S(Resume).pdf"
	DefaultOutput       = "resume_text.txt"
	DefaultPreviewChars = 500
)

// EnvPrefix prefixes every environment override, e.g. PDFTEXT_LOG_LEVEL.
const EnvPrefix = "PDFTEXT"

// Config holds the full application configuration.
type Config struct {
	Input        string    `mapstructure:"input"`
	Output       string    `mapstructure:"output"`
	PreviewChars int       `mapstructure:"preview_chars"`
	Backend      string    `mapstructure:"backend"`
	Log          LogConfig `mapstructure:"log"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers defaults and env bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("input", DefaultInput)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("preview_chars", DefaultPreviewChars)
	v.SetDefault("backend", reader.DefaultBackend)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the Viper-populated config into a Config struct and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks cfg for values the extractor cannot run with.
func Validate(cfg *Config) error {
	if cfg == nil {
		return ErrNilConfig
	}
	if cfg.Input == "" {
		return errors.New("input path is empty")
	}
	if cfg.Output == "" {
		return errors.New("output path is empty")
	}
	if cfg.PreviewChars < 0 {
		return fmt.Errorf("preview_chars must be >= 0, got: %d", cfg.PreviewChars)
	}
	if cfg.Backend != "" && !slices.Contains(reader.Backends(), cfg.Backend) {
		return fmt.Errorf("backend %q is not one of %v", cfg.Backend, reader.Backends())
	}
	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", cfg.Log.Format)
	}
	return nil
}

// LoadDotEnv loads the first existing file among paths into the process
// environment. Variables already set are not overwritten. Missing files are
// not an error.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
		return nil
	}
	return nil
}
