package cmd

import (
	"fmt"
	"strconv"

	"github.com/nibzard/todo-go/internal/config"
)

// configCommand prints the effective configuration with the source of each value.
func (c *cli) configCommand(args []string) error {
	fs := c.flagSet("config")
	example := fs.Bool("example", false, "Print an example todo.toml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	if *example {
		fmt.Fprint(c.out, config.ExampleConfig())
		return nil
	}

	cfg := c.cfg.Config
	values := []struct {
		key   string
		value string
	}{
		{"tasks_file", cfg.TasksFile},
		{"addr", cfg.Addr},
		{"lang", cfg.Lang},
		{"log_level", cfg.LogLevel},
		{"log_format", cfg.LogFormat},
		{"log_file", cfg.LogFile},
		{"log_timestamps", strconv.FormatBool(cfg.LogTimestamps)},
		{"log_caller", strconv.FormatBool(cfg.LogCaller)},
	}

	fmt.Fprintf(c.out, "Project root: %s\n", cfg.ProjectRoot)
	if file := c.cfg.GetConfigFile(); file != "" {
		fmt.Fprintf(c.out, "Config file:  %s\n", file)
	}
	fmt.Fprintln(c.out)
	for _, v := range values {
		fmt.Fprintf(c.out, "%-15s = %-30q # %s\n", v.key, v.value, c.cfg.Sources[v.key])
	}
	return nil
}
