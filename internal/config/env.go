package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// lookupFunc reports the value of an environment variable.
type lookupFunc func(key string) (string, bool)

// dotEnvLookup returns a lookup that prefers the real environment and
// falls back to the .env file in dir. A missing .env is not an error.
func dotEnvLookup(dir string) (lookupFunc, error) {
	path := filepath.Join(dir, ".env")
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.LookupEnv, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}, nil
}

// loadFromEnv overrides config from environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, lookup lookupFunc, sources map[string]ConfigSource) {
	setEnv := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v, ok := lookup("TODO_FILE"); ok && v != "" {
		cfg.TasksFile = v
		setEnv("tasks_file")
	}
	if v, ok := lookup("TODO_ADDR"); ok && v != "" {
		cfg.Addr = v
		setEnv("addr")
	}
	if v, ok := lookup("TODO_LANG"); ok && v != "" {
		cfg.Lang = v
		setEnv("lang")
	}

	// Logging configuration
	if v, ok := lookup("TODO_LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
		setEnv("log_level")
	}
	if v, ok := lookup("TODO_LOG_FORMAT"); ok && v != "" {
		cfg.LogFormat = v
		setEnv("log_format")
	}
	if v, ok := lookup("TODO_LOG_FILE"); ok && v != "" {
		cfg.LogFile = v
		setEnv("log_file")
	}
	if v, ok := lookup("TODO_LOG_TIMESTAMPS"); ok && v != "" {
		cfg.LogTimestamps = boolFromString(v)
		setEnv("log_timestamps")
	}
	if v, ok := lookup("TODO_LOG_CALLER"); ok && v != "" {
		cfg.LogCaller = boolFromString(v)
		setEnv("log_caller")
	}
}

func boolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
