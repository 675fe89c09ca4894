package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const (
	defaultDBPath        = "./dev.db"
	defaultPort          = "8080"
	defaultEnv           = "dev"
	defaultLogLevel      = "info"
	defaultLang          = "en"
	defaultCurrencyLabel = "RM"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env           string
	DBPath        string
	Port          string
	LogLevel      string
	LogFile       string
	DefaultLang   string
	CurrencyLabel string
	SeedSample    bool
}

// IsDev reports whether the app runs in the development environment.
func (c Config) IsDev() bool {
	return c.Env == "dev" || c.Env == "development"
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: production injects real environment variables.
	_ = godotenv.Load(".env")

	cfg := Config{
		Env:           strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))),
		DBPath:        os.Getenv("DB_PATH"),
		Port:          os.Getenv("PORT"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		LogFile:       os.Getenv("LOG_FILE"),
		DefaultLang:   os.Getenv("DEFAULT_LANG"),
		CurrencyLabel: os.Getenv("CURRENCY_LABEL"),
		SeedSample:    cast.ToBool(os.Getenv("SEED_SAMPLE")),
	}

	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.DefaultLang == "" {
		cfg.DefaultLang = defaultLang
	}
	if cfg.CurrencyLabel == "" {
		cfg.CurrencyLabel = defaultCurrencyLabel
	}

	return cfg
}
