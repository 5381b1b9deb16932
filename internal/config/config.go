package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/headline-goat/abtest/internal/stats"
)

// Config holds the defaults the CLI falls back to when a flag is not set.
type Config struct {
	DBPath       string            `yaml:"db"`
	Significance float64           `yaml:"significance"`
	Alternative  stats.Alternative `yaml:"alternative"`
	LogLevel     string            `yaml:"log_level"`
	Format       string            `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DBPath:       "./abtest.db",
		Significance: 0.05,
		Alternative:  stats.TwoSided,
		LogLevel:     "warn",
		Format:       "text",
	}
}

// Load builds the configuration from defaults, a .env file in the working
// directory, ABT_* environment variables and finally the YAML file at path
// (skipped when path is empty).
func Load(path string) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg.DBPath = getEnvOrDefault("ABT_DB_PATH", cfg.DBPath)
	cfg.LogLevel = getEnvOrDefault("ABT_LOG_LEVEL", cfg.LogLevel)
	cfg.Format = getEnvOrDefault("ABT_FORMAT", cfg.Format)
	if v := os.Getenv("ABT_SIGNIFICANCE"); v != "" {
		sig, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid ABT_SIGNIFICANCE %q: %w", v, err)
		}
		cfg.Significance = sig
	}
	if v := os.Getenv("ABT_ALTERNATIVE"); v != "" {
		alt, err := stats.ParseAlternative(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid ABT_ALTERNATIVE: %w", err)
		}
		cfg.Alternative = alt
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	return cfg, cfg.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if err := stats.ValidateSignificance(c.Significance); err != nil {
		return err
	}
	if c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("invalid format %q: must be 'text' or 'json'", c.Format)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
