package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Port            int      `yaml:"port"`
	Models          []string `yaml:"models"`
	APIKey          string   `yaml:"api_key"`
	ProviderTimeout int      `yaml:"provider_timeout_seconds"`
	RateLimit       int      `yaml:"rate_limit_per_minute"`
	StaticDir       string   `yaml:"static_dir"`
}

func defaults() Config {
	return Config{
		Port: 8080,
		Models: []string{
			"gemini-2.0-flash",
			"gemini-1.5-flash",
			"gemini-1.5-flash-8b",
			"gemini-1.5-pro",
			"gemini-pro",
		},
		ProviderTimeout: 60,
		RateLimit:       60,
		StaticDir:       "web",
	}
}

// Load reads configuration from a YAML file (if path is non-empty), then
// applies environment variable overrides. An empty path returns defaults
// plus env overrides. A .env file in the working directory is picked up
// automatically.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if v := os.Getenv("GEMRELAY_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid GEMRELAY_PORT %q: %w", v, err)
		}
		cfg.Port = p
	}
	if v := os.Getenv("GEMRELAY_MODELS"); v != "" {
		cfg.Models = splitModels(v)
	}
	if v := os.Getenv("GEMRELAY_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("GEMRELAY_PROVIDER_TIMEOUT"); v != "" {
		t, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid GEMRELAY_PROVIDER_TIMEOUT %q: %w", v, err)
		}
		cfg.ProviderTimeout = t
	}
	if v := os.Getenv("GEMRELAY_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid GEMRELAY_RATE_LIMIT %q: %w", v, err)
		}
		cfg.RateLimit = n
	}
	if v := os.Getenv("GEMRELAY_STATIC_DIR"); v != "" {
		cfg.StaticDir = v
	}

	return cfg, nil
}

func splitModels(v string) []string {
	parts := strings.Split(v, ",")
	models := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			models = append(models, p)
		}
	}
	return models
}
