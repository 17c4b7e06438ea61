package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// loader carries the environment a load runs against, so tests can
// point it at temporary directories.
type loader struct {
	workDir    string
	userConfig string
	lookup     lookupFunc
}

func defaultLoader() (*loader, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	lookup, err := dotEnvLookup(wd)
	if err != nil {
		return nil, err
	}
	return &loader{
		workDir:    wd,
		userConfig: findUserConfigFile(),
		lookup:     lookup,
	}, nil
}

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.todo/todo.toml or OS-specific config dir)
// 3. Project config file (todo.toml or .todo.toml in current directory)
// 4. Environment variables (and .env)
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	l, err := defaultLoader()
	if err != nil {
		return nil, err
	}
	cws, err := l.load(fs, args, false)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
// Returns ConfigWithSources containing the config and a map of field names to their sources.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	l, err := defaultLoader()
	if err != nil {
		return nil, err
	}
	return l.load(fs, args, true)
}

func (l *loader) load(fs *flag.FlagSet, args []string, track bool) (*ConfigWithSources, error) {
	cfg := &Config{}
	var sources map[string]ConfigSource
	if track {
		sources = make(map[string]ConfigSource)
	}
	cws := &ConfigWithSources{Config: cfg, Sources: sources}

	// 1. Set defaults
	setDefaults(cfg)
	for _, field := range configFields() {
		if sources != nil {
			sources[field] = SourceDefault
		}
	}

	// 2. Try to load from user config file
	if l.userConfig != "" {
		if err := loadConfigFile(cfg, l.userConfig, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", l.userConfig, err)
		}
		cws.Files = append(cws.Files, l.userConfig)
	}

	// 3. Try to load from project config file (overrides user config)
	if projectConfigFile := findProjectConfigFile(l.workDir); projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
		cws.Files = append(cws.Files, projectConfigFile)
	}

	// 4. Override from environment
	loadFromEnv(cfg, l.lookup, sources)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args, sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	cfg.ProjectRoot = l.workDir
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cws, nil
}

// loadConfigFile decodes TOML from path over cfg. Only keys present in
// the file are recorded in sources.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if sources == nil {
		return nil
	}
	for _, key := range md.Keys() {
		sources[key.String()] = source
	}
	return nil
}

// parseFlags defines global CLI flags on fs and parses args.
// Flag defaults are the values loaded so far, so unset flags change nothing.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("todo", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.TasksFile, "file", cfg.TasksFile, "Path to the task file")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address for serve")
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "Menu language (en, zh-TW)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Append logs to this file")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources == nil {
		return nil
	}
	flagToSource := map[string]string{
		"file":           "tasks_file",
		"addr":           "addr",
		"lang":           "lang",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"log-file":       "log_file",
		"log-timestamps": "log_timestamps",
		"log-caller":     "log_caller",
	}
	fs.Visit(func(f *flag.Flag) {
		if fieldName, ok := flagToSource[f.Name]; ok {
			sources[fieldName] = SourceFlag
		}
	})
	return nil
}

// finalizeConfig computes derived values and validates paths.
func finalizeConfig(cfg *Config) error {
	if cfg.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}

	if cfg.TasksFile == "" {
		return fmt.Errorf("tasks_file is empty")
	}
	cfg.TasksFile = expandPath(cfg.TasksFile)
	if !filepath.IsAbs(cfg.TasksFile) {
		cfg.TasksFile = filepath.Join(cfg.ProjectRoot, cfg.TasksFile)
	}

	if cfg.LogFile != "" {
		cfg.LogFile = expandPath(cfg.LogFile)
		if !filepath.IsAbs(cfg.LogFile) {
			cfg.LogFile = filepath.Join(cfg.ProjectRoot, cfg.LogFile)
		}
	}

	return nil
}
