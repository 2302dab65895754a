package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates every setting the service reads.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Log       LogConfig       `yaml:"log"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// StoreConfig selects and tunes the record store.
type StoreConfig struct {
	// Path is the SQLite database file, used when DatabaseURL is empty.
	Path string `yaml:"path"`
	// DatabaseURL selects PostgreSQL when it is a postgres:// URL.
	DatabaseURL    string `yaml:"database_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// OpTimeout bounds a single store call.
func (c StoreConfig) OpTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LogConfig describes logging output.
type LogConfig struct {
	Level string `yaml:"level"`
}

// RateLimitConfig configures per-client request limiting. RPS 0 disables it.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// Enabled reports whether limiting is on.
func (c RateLimitConfig) Enabled() bool {
	return c.RPS > 0
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080", CORSOrigins: []string{"*"}},
		Store:  StoreConfig{Path: "videos.db", TimeoutSeconds: 5},
		Log:    LogConfig{Level: "info"},
		RateLimit: RateLimitConfig{
			RPS:   0,
			Burst: 20,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// CONFIG_FILE (if set), then environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadConfigFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	server, err := loadServerConfig(cfg.Server)
	if err != nil {
		return err
	}
	cfg.Server = server

	cfg.Store.Path = getEnvOrDefault("DATABASE_PATH", cfg.Store.Path)
	cfg.Store.DatabaseURL = getEnvOrDefault("DATABASE_URL", cfg.Store.DatabaseURL)
	timeout, err := parseOptionalIntEnv("STORE_TIMEOUT")
	if err != nil {
		return err
	}
	if timeout != nil {
		cfg.Store.TimeoutSeconds = *timeout
	}

	cfg.Log.Level = getEnvOrDefault("LOG_LEVEL", cfg.Log.Level)

	rps, err := parseOptionalFloatEnv("RATE_LIMIT_RPS")
	if err != nil {
		return err
	}
	if rps != nil {
		cfg.RateLimit.RPS = *rps
	}
	burst, err := parseOptionalIntEnv("RATE_LIMIT_BURST")
	if err != nil {
		return err
	}
	if burst != nil {
		cfg.RateLimit.Burst = *burst
	}
	return nil
}

// loadServerConfig resolves the listen address from PORT.
func loadServerConfig(base ServerConfig) (ServerConfig, error) {
	if origins := strings.TrimSpace(os.Getenv("CORS_ORIGINS")); origins != "" {
		base.CORSOrigins = splitList(origins)
	}

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		return base, nil
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as-is.
		base.Addr = port
		return base, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	base.Addr = ":" + port
	return base, nil
}

func (c *Config) validate() error {
	if c.Store.TimeoutSeconds <= 0 {
		return fmt.Errorf("invalid STORE_TIMEOUT value %d: must be positive", c.Store.TimeoutSeconds)
	}
	if c.Store.DatabaseURL == "" && c.Store.Path == "" {
		return fmt.Errorf("either DATABASE_URL or DATABASE_PATH must be set")
	}
	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("invalid RATE_LIMIT_RPS value %v: must not be negative", c.RateLimit.RPS)
	}
	if c.RateLimit.Enabled() && c.RateLimit.Burst < 1 {
		return fmt.Errorf("invalid RATE_LIMIT_BURST value %d: must be at least 1", c.RateLimit.Burst)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
