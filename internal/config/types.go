package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
}

// Default values.
const (
	DefaultTasksFile = "tasks.json"
	DefaultAddr      = ":5000"
	DefaultLang      = "en"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for todo.
type Config struct {
	// Paths
	TasksFile string `toml:"tasks_file"`

	// HTTP API
	Addr string `toml:"addr"`

	// Text menu language (en, zh-TW)
	Lang string `toml:"lang"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogFile       string `toml:"log_file"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"tasks_file",
		"addr",
		"lang",
		"log_level",
		"log_format",
		"log_file",
		"log_timestamps",
		"log_caller",
	}
}

// setDefaults fills cfg with built-in defaults.
func setDefaults(cfg *Config) {
	cfg.TasksFile = DefaultTasksFile
	cfg.Addr = DefaultAddr
	cfg.Lang = DefaultLang
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogFile = ""
	cfg.LogTimestamps = false
	cfg.LogCaller = false
}
