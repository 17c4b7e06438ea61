// Package logging builds leveled loggers on top of charmbracelet/log.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/config"
)

// DefaultPrefix is prepended to every log line.
const DefaultPrefix = "todo"

// Options holds logger configuration.
type Options struct {
	Level      string
	Format     string
	File       string
	Timestamps bool
	Caller     bool
	Prefix     string
}

// OptionsFromConfig maps the logging fields of cfg onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return Options{Prefix: DefaultPrefix}
	}
	return Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		File:       cfg.LogFile,
		Timestamps: cfg.LogTimestamps,
		Caller:     cfg.LogCaller,
		Prefix:     DefaultPrefix,
	}
}

// ParseLevel parses a string log level. Unknown values map to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter parses a formatter name. Unknown values map to text.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	if w == nil {
		w = io.Discard
	}
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       ParseFormatter(opts.Format),
		ReportTimestamp: opts.Timestamps,
		ReportCaller:    opts.Caller,
		Prefix:          opts.Prefix,
	})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open creates a logger for opts. When opts.File is set the log is appended
// to that file and the returned closer closes it; otherwise output goes to
// fallback.
func Open(opts Options, fallback io.Writer) (*log.Logger, io.Closer, error) {
	if opts.File == "" {
		return New(fallback, opts), nopCloser{}, nil
	}

	if dir := filepath.Dir(opts.File); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(file, opts), file, nil
}
