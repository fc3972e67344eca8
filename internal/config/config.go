package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the console and engine settings
type Config struct {
	CacheSize int    `yaml:"cache_size" validate:"gte=0"`
	Prompt    string `yaml:"prompt"`
	Echo      bool   `yaml:"echo"`
	Quiet     bool   `yaml:"quiet"`

	// GTFS import
	DedupeMeters float64 `yaml:"dedupe_meters" validate:"gte=0"`
	RailOnly     bool    `yaml:"rail_only"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		CacheSize:    256,
		Prompt:       "> ",
		DedupeMeters: 30,
		RailOnly:     true,
	}
}

// Load reads the optional YAML file at path, applies environment overrides
// and validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnv overrides fields from RAILNET_* environment variables
func (c *Config) applyEnv() {
	if size, err := strconv.Atoi(getEnv("RAILNET_CACHE_SIZE", "")); err == nil {
		c.CacheSize = size
	}
	if meters, err := strconv.ParseFloat(getEnv("RAILNET_DEDUPE_METERS", ""), 64); err == nil {
		c.DedupeMeters = meters
	}
	c.Prompt = getEnv("RAILNET_PROMPT", c.Prompt)
	c.Echo = getEnvBool("RAILNET_ECHO", c.Echo)
	c.Quiet = getEnvBool("RAILNET_QUIET", c.Quiet)
}

// InitLogging sets up the standard logger. Command output goes to stdout,
// so logs go to stderr, or nowhere when quiet.
func InitLogging(cfg Config) {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if cfg.Quiet {
		log.SetOutput(io.Discard)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
