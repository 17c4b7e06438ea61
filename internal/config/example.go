package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todo configuration file
# Values can be overridden by TODO_* environment variables or CLI flags

# Task file (relative to the working directory, supports ~ expansion)
tasks_file = "tasks.json"

# Listen address for "todo serve"
addr = ":5000"

# Text menu language: en or zh-TW
lang = "en"

# Logging
log_level = "info"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
# log_file = "~/.todo/todo.log"
log_timestamps = false
log_caller = false
`
}
