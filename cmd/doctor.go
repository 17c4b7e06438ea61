package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nibzard/todo-go/internal/todo"
)

// doctorCommand checks configuration and validates the task file.
func (c *cli) doctorCommand(args []string) error {
	flags := c.flagSet("doctor")
	verbose := flags.Bool("v", false, "Verbose output")
	schemaPath := flags.String("schema", "", "Validate against this JSON Schema file instead of the built-in one")
	printSchema := flags.Bool("print-schema", false, "Print the built-in task file schema and exit")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *printSchema {
		_, err := c.out.Write(todo.SchemaJSON())
		return err
	}

	remaining := flags.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	cfg := c.cfg.Config
	tasksPath := cfg.TasksFile
	if len(remaining) == 1 {
		tasksPath = remaining[0]
	}
	if !filepath.IsAbs(tasksPath) {
		tasksPath = filepath.Join(cfg.ProjectRoot, tasksPath)
	}

	w := c.out
	fmt.Fprintln(w, "Todo Doctor")
	fmt.Fprintln(w, "===========")
	fmt.Fprintln(w)

	allOK := true

	// Check project root
	fmt.Fprintf(w, "Project root: %s\n", cfg.ProjectRoot)
	if _, err := os.Stat(cfg.ProjectRoot); err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	fmt.Fprintln(w)

	// Check config files
	fmt.Fprintln(w, "Config files:")
	if len(c.cfg.Files) == 0 {
		fmt.Fprintln(w, "  (none, using defaults)")
	}
	for _, f := range c.cfg.Files {
		fmt.Fprintf(w, "  ✅ %s\n", f)
	}
	fmt.Fprintln(w)

	// Check task file
	fmt.Fprintf(w, "Task file: %s\n", tasksPath)
	info, err := os.Stat(tasksPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintln(w, "  ⚠️  Not found (will be created on first change)")
	case err != nil:
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Fprintln(w, "  ❌ Error: path is a directory")
		allOK = false
	default:
		fmt.Fprintln(w, "  ✅ OK")
		if !c.checkTaskFile(tasksPath, *schemaPath, *verbose) {
			allOK = false
		}
	}
	fmt.Fprintln(w)

	// Check log file
	if cfg.LogFile != "" {
		fmt.Fprintf(w, "Log file: %s\n", cfg.LogFile)
		if _, err := os.Stat(filepath.Dir(cfg.LogFile)); err != nil {
			fmt.Fprintf(w, "  ⚠️  Directory missing (will be created): %v\n", err)
		} else {
			fmt.Fprintln(w, "  ✅ OK")
		}
		fmt.Fprintln(w)
	}

	// Overall status
	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed. The task file will be treated as empty until it is fixed.")
	return fmt.Errorf("doctor checks failed")
}

func (c *cli) checkTaskFile(path, schemaPath string, verbose bool) bool {
	w := c.out
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Read error: %v\n", err)
		return false
	}

	result := todo.Validate(data, todo.ValidationOptions{SchemaPath: schemaPath})
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  ⚠️  %s\n", warning)
	}
	if !result.Valid {
		fmt.Fprintln(w, "  ❌ Validation failed:")
		for _, e := range result.Errors {
			fmt.Fprintf(w, "     - %v\n", e)
		}
		return false
	}
	if result.UsedSchema {
		fmt.Fprintln(w, "  ✅ Valid (JSON Schema)")
	} else {
		fmt.Fprintln(w, "  ✅ Valid (minimal checks)")
	}

	tasks, err := todo.NewStore(path).Load()
	if err != nil {
		fmt.Fprintf(w, "  ❌ Load error: %v\n", err)
		return false
	}
	stats := tasks.Stats()
	fmt.Fprintf(w, "  Tasks: %d (%d completed, %d pending)\n", stats.Total, stats.Completed, stats.Pending)
	if verbose {
		for _, t := range tasks {
			fmt.Fprint(w, "    ")
			printTask(w, t)
		}
	}
	return true
}
