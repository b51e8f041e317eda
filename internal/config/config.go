// Package config resolves runtime settings from flags, the environment and
// an optional .env file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/abhisek/codeleveling/internal/logging"
	"github.com/abhisek/codeleveling/internal/store"
)

// Environment variables read by Load.
const (
	EnvDB       = "CODELEVELING_DB"
	EnvUser     = "CODELEVELING_USER"
	EnvLogLevel = "CODELEVELING_LOG_LEVEL"
	EnvCatalog  = "CODELEVELING_CATALOG"
)

// Config holds resolved settings.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string `validate:"required"`

	// User overrides the persisted current user when set.
	User string `validate:"omitempty,max=32"`

	LogLevel string `validate:"oneof=trace debug info warn error fatal panic disabled"`

	// Catalog is an optional catalog document seeded on startup instead of
	// the built-in one.
	Catalog string `validate:"omitempty,file"`
}

// Flags carries values given on the command line. Empty means unset.
type Flags struct {
	DB       string
	User     string
	LogLevel string
}

var validate = validator.New()

// Load resolves the configuration. envFile is loaded first if it exists;
// variables already set in the environment win over the file.
func Load(flags Flags, envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		User:     firstNonEmpty(flags.User, os.Getenv(EnvUser)),
		LogLevel: strings.ToLower(firstNonEmpty(flags.LogLevel, os.Getenv(EnvLogLevel), logging.DefaultLevel)),
		Catalog:  os.Getenv(EnvCatalog),
	}

	if flags.DB != "" {
		if err := store.EnsureDir(flags.DB); err != nil {
			return Config{}, fmt.Errorf("create db dir: %w", err)
		}
		cfg.DBPath = flags.DB
	} else {
		p, err := store.DefaultDBPath()
		if err != nil {
			return Config{}, fmt.Errorf("resolve DB path: %w", err)
		}
		cfg.DBPath = p
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
