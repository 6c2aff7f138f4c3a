package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/guessr/pkg/domain"
)

// DefaultToken is returned by validate when no token is configured.
const DefaultToken = "12345678"

// Config is the runtime configuration shared by every command.
//
// Values are layered: Default, then the optional YAML file, then the process
// environment (after .env has been merged into it). Later layers win.
type Config struct {
	Dataset        string `yaml:"dataset" env:"GUESSR_DATASET"`
	NameColumn     string `yaml:"name_column" env:"GUESSR_NAME_COLUMN"`
	MaxDepth       int    `yaml:"max_depth" env:"GUESSR_MAX_DEPTH"`
	QuestionBudget int    `yaml:"question_budget" env:"GUESSR_QUESTION_BUDGET"`
	// Seed makes "don't know" answers and best-effort guesses reproducible. Zero seeds from the clock.
	Seed int64 `yaml:"seed" env:"GUESSR_SEED"`

	Token       string `yaml:"token" env:"GUESSR_TOKEN"`
	LegacyToken string `yaml:"-" env:"TOKEN"`

	MCPPort  int    `yaml:"mcp_port" env:"MCP_PORT"`
	HTTPPort int    `yaml:"http_port" env:"GUESSR_HTTP_PORT"`
	Redis    string `yaml:"redis_addr" env:"GUESSR_REDIS_ADDR"`
	// SessionTTL expires idle games kept in Redis. Zero keeps them until they are ended.
	SessionTTL time.Duration `yaml:"session_ttl" env:"GUESSR_SESSION_TTL"`
	Results  string `yaml:"results_db" env:"GUESSR_RESULTS_DB"`
	LogLevel string `yaml:"log_level" env:"GUESSR_LOG_LEVEL"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Dataset:        "anime.csv",
		NameColumn:     domain.DefaultNameColumn,
		MaxDepth:       domain.DefaultMaxDepth,
		QuestionBudget: domain.DefaultQuestionBudget,
		MCPPort:        8000,
		HTTPPort:       8080,
		SessionTTL:     time.Hour,
		LogLevel:       "info",
	}
}

// Load builds the configuration from defaults, the YAML file at path (skipped when
// empty), the .env file in the working directory (if any) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := LoadDotenv(".env"); err != nil {
		return Config{}, err
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.Token == "" {
		cfg.Token = cfg.LegacyToken
	}
	if cfg.Token == "" {
		cfg.Token = DefaultToken
	}
	return cfg, cfg.Validate()
}

// LoadDotenv merges the given .env files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadDotenv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate rejects values no command could run with.
func (c Config) Validate() error {
	switch {
	case c.Dataset == "":
		return errors.New("dataset path is required")
	case c.MaxDepth <= 0:
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	case c.QuestionBudget <= 0:
		return fmt.Errorf("question_budget must be positive, got %d", c.QuestionBudget)
	case c.MCPPort <= 0 || c.MCPPort > 65535:
		return fmt.Errorf("invalid mcp_port %d", c.MCPPort)
	case c.HTTPPort <= 0 || c.HTTPPort > 65535:
		return fmt.Errorf("invalid http_port %d", c.HTTPPort)
	case c.SessionTTL < 0:
		return fmt.Errorf("session_ttl must not be negative, got %s", c.SessionTTL)
	}
	return nil
}
