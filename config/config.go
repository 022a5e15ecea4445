package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App    AppConfig    `yaml:"app"`
	Logger LoggerConfig `yaml:"logger"`
	SQLite SQLiteConfig `yaml:"sqlite"`
	Import ImportConfig `yaml:"import"`
}

type AppConfig struct {
	Env string `yaml:"env"`
}

type LoggerConfig struct {
	Level             string `yaml:"level"`
	Encoding          string `yaml:"encoding"`
	DisableCaller     bool   `yaml:"disable_caller"`
	DisableStacktrace bool   `yaml:"disable_stacktrace"`
}

type SQLiteConfig struct {
	Path          string `yaml:"path"`
	BusyTimeoutMS int    `yaml:"busy_timeout_ms"`
	MaxOpenConns  int    `yaml:"max_open_conns"`
}

// ImportConfig holds the type and state given to imported rows that do
// not name one.
type ImportConfig struct {
	DefaultType  string `yaml:"default_type"`
	DefaultState string `yaml:"default_state"`
}

func Default() *Config {
	return &Config{
		App: AppConfig{Env: "production"},
		Logger: LoggerConfig{
			Level:             "info",
			Encoding:          "console",
			DisableStacktrace: true,
		},
		SQLite: SQLiteConfig{
			Path:          "books-log.db",
			BusyTimeoutMS: 5000,
			MaxOpenConns:  1,
		},
		Import: ImportConfig{
			DefaultType:  "gift",
			DefaultState: "final",
		},
	}
}

// LoadEnv builds the configuration from defaults, then the YAML file named
// by LEDGER_CONFIG (if any), then individual environment variables.
func LoadEnv() (*Config, error) {
	cfg := Default()

	if path := getEnv("LEDGER_CONFIG", ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)

	cfg.Logger.Level = getEnv("LOGGER_LEVEL", cfg.Logger.Level)
	cfg.Logger.Encoding = getEnv("LOGGER_ENCODING", cfg.Logger.Encoding)
	cfg.Logger.DisableCaller = getEnvBool("LOGGER_DISABLE_CALLER", cfg.Logger.DisableCaller)
	cfg.Logger.DisableStacktrace = getEnvBool("LOGGER_DISABLE_STACKTRACE", cfg.Logger.DisableStacktrace)

	cfg.SQLite.Path = getEnv("SQLITE_PATH", cfg.SQLite.Path)
	cfg.SQLite.BusyTimeoutMS = getEnvInt("SQLITE_BUSY_TIMEOUT_MS", cfg.SQLite.BusyTimeoutMS)
	cfg.SQLite.MaxOpenConns = getEnvInt("SQLITE_MAX_OPEN_CONNS", cfg.SQLite.MaxOpenConns)

	cfg.Import.DefaultType = getEnv("IMPORT_DEFAULT_TYPE", cfg.Import.DefaultType)
	cfg.Import.DefaultState = getEnv("IMPORT_DEFAULT_STATE", cfg.Import.DefaultState)

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development" || c.App.Env == "dev"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
