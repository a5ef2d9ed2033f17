// Package config reads runtime settings from the environment, after
// optionally loading a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "CALCBDD_"

// Config holds the settings shared by the CLI and the HTTP service.
type Config struct {
	Addr            string
	LogLevel        string
	Tracing         bool
	Metrics         bool
	LogExport       bool
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

// Default returns the settings used when no variable is set.
func Default() Config {
	return Config{
		Addr:            ":8080",
		LogLevel:        "info",
		MaxBodyBytes:    1 << 20,
		ShutdownTimeout: 5 * time.Second,
	}
}

// LoadDotEnv loads environment variables from .env when present.
// Existing process environment variables are not overridden.
func LoadDotEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}

// Load reads CALCBDD_* variables over Default.
func Load() (Config, error) {
	cfg := Default()

	if v, ok := lookup("ADDR"); ok {
		cfg.Addr = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}

	var err error
	if cfg.Tracing, err = boolVar("TRACING", cfg.Tracing); err != nil {
		return Config{}, err
	}
	if cfg.Metrics, err = boolVar("METRICS", cfg.Metrics); err != nil {
		return Config{}, err
	}
	if cfg.LogExport, err = boolVar("LOG_EXPORT", cfg.LogExport); err != nil {
		return Config{}, err
	}

	if v, ok := lookup("MAX_BODY_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("%sMAX_BODY_BYTES: want a positive integer, got %q", envPrefix, v)
		}
		cfg.MaxBodyBytes = n
	}

	if v, ok := lookup("SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%sSHUTDOWN_TIMEOUT: %w", envPrefix, err)
		}
		cfg.ShutdownTimeout = d
	}

	return cfg, nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func boolVar(name string, def bool) (bool, error) {
	v, ok := lookup(name)
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s%s: %w", envPrefix, name, err)
	}
	return b, nil
}
