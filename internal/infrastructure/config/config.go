package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/calc/internal/expr"
)

// FileEnv names the environment variable holding an optional config file path.
const FileEnv = "CALC_CONFIG"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `toml:"server" yaml:"server"`
	Logging   LogConfig       `toml:"logging" yaml:"logging"`
	RateLimit RateLimitConfig `toml:"rate_limit" yaml:"rate_limit"`
	Eval      EvalConfig      `toml:"eval" yaml:"eval"`
	Client    ClientConfig    `toml:"client" yaml:"client"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" toml:"port" yaml:"port"`
	Host string `envconfig:"HOST" toml:"host" yaml:"host"`
	// MaxConnections caps concurrently accepted connections; 0 disables the cap.
	MaxConnections int `envconfig:"MAX_CONNECTIONS" toml:"max_connections" yaml:"max_connections"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" toml:"level" yaml:"level"`
	Development bool   `envconfig:"LOG_DEV" toml:"development" yaml:"development"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" toml:"rps" yaml:"rps"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" toml:"burst" yaml:"burst"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" toml:"enabled" yaml:"enabled"`
	// Global limits apply across all clients; a zero rate disables them.
	GlobalRequestsPerSecond int `envconfig:"RATE_LIMIT_GLOBAL_RPS" toml:"global_rps" yaml:"global_rps"`
	GlobalBurst             int `envconfig:"RATE_LIMIT_GLOBAL_BURST" toml:"global_burst" yaml:"global_burst"`
}

// EvalConfig holds evaluator limits and the default numeric mode.
type EvalConfig struct {
	FloatMode     bool `envconfig:"CALC_FLOAT" toml:"float" yaml:"float"`
	MaxLineLength int  `envconfig:"CALC_MAX_LINE" toml:"max_line" yaml:"max_line"`
	StackCapacity int  `envconfig:"CALC_STACK_CAPACITY" toml:"stack_capacity" yaml:"stack_capacity"`
	MaxBatchSize  int  `envconfig:"CALC_MAX_BATCH" toml:"max_batch" yaml:"max_batch"`
}

// Mode returns the configured default numeric mode.
func (e EvalConfig) Mode() expr.Mode {
	if e.FloatMode {
		return expr.ModeFloat
	}
	return expr.ModeInteger
}

// ClientConfig holds settings for evaluating against a remote server.
type ClientConfig struct {
	TimeoutSeconds int `envconfig:"CALC_REMOTE_TIMEOUT" toml:"timeout_seconds" yaml:"timeout_seconds"`
	Retries        int `envconfig:"CALC_REMOTE_RETRIES" toml:"retries" yaml:"retries"`
}

// Load builds configuration from defaults, the optional CALC_CONFIG file,
// and environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv(FileEnv))
}

// LoadFrom is Load with an explicit config file path. An empty path skips
// the file layer.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config file extension %q", ext)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8000",
			Host:           "0.0.0.0",
			MaxConnections: 512,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond:       100,
			Burst:                   200,
			Enabled:                 true,
			GlobalRequestsPerSecond: 1000,
			GlobalBurst:             2000,
		},
		Eval: EvalConfig{
			FloatMode:     false,
			MaxLineLength: 1024,
			StackCapacity: expr.DefaultStackCapacity,
			MaxBatchSize:  100,
		},
		Client: ClientConfig{
			TimeoutSeconds: 10,
			Retries:        2,
		},
	}
}
