package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/todo-go/internal/todo"
	"github.com/nibzard/todo-go/internal/utils"
)

// addCommand adds one task whose description is the remaining arguments.
func (c *cli) addCommand(args []string) error {
	fs := c.flagSet("add")
	if err := fs.Parse(args); err != nil {
		return err
	}

	desc := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if desc == "" {
		return fmt.Errorf("task description is required")
	}
	task, err := c.store.AddTask(desc)
	if err != nil {
		return fmt.Errorf("adding task: %w", err)
	}
	fmt.Fprintf(c.out, "Added task %d (created at %s).\n", task.ID, task.CreatedAt)
	return nil
}

// lsCommand prints every task.
func (c *cli) lsCommand(args []string) error {
	fs := c.flagSet("ls")
	format := fs.String("o", "text", "Output format (text|json|yaml)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	tasks := c.store.Tasks()
	switch *format {
	case "json":
		return writeJSON(c.out, tasks)
	case "yaml":
		return writeYAML(c.out, tasks)
	case "text":
		printTaskList(c.out, tasks)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (expected text|json|yaml)", *format)
	}
}

// toggleCommand flips the completed flag of one task.
func (c *cli) toggleCommand(args []string) error {
	fs := c.flagSet("toggle")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: todo toggle <id>")
	}
	id, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid task id %q", fs.Arg(0))
	}

	if err := c.store.ToggleComplete(id); err != nil {
		if errors.Is(err, todo.ErrNotFound) {
			return fmt.Errorf("task %d not found", id)
		}
		return fmt.Errorf("updating task: %w", err)
	}
	state := "pending"
	if t := c.store.Tasks().Find(id); t != nil && t.Completed {
		state = "completed"
	}
	fmt.Fprintf(c.out, "Task %d marked as %s.\n", id, state)
	return nil
}

// rmCommand deletes tasks by id, e.g. "rm 3" or "rm 1,2,5".
func (c *cli) rmCommand(args []string) error {
	fs := c.flagSet("rm")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("usage: todo rm <id>[,<id>...]")
	}
	ids, err := utils.ParseIndexList(strings.Join(fs.Args(), ","))
	if err != nil {
		return fmt.Errorf("invalid task ids: %w", err)
	}

	if len(ids) == 1 {
		if err := c.store.DeleteByID(ids[0]); err != nil {
			if errors.Is(err, todo.ErrNotFound) {
				return fmt.Errorf("task %d not found", ids[0])
			}
			return fmt.Errorf("deleting task: %w", err)
		}
		fmt.Fprintln(c.out, "Deleted 1 task(s).")
		return nil
	}

	removed, err := c.store.DeleteByIDs(ids)
	if err != nil {
		return fmt.Errorf("deleting tasks: %w", err)
	}
	fmt.Fprintf(c.out, "Deleted %d task(s).\n", removed)
	if removed == 0 {
		return fmt.Errorf("%w: none of %v", todo.ErrNotFound, ids)
	}
	return nil
}

// clearCompletedCommand deletes every completed task.
func (c *cli) clearCompletedCommand(args []string) error {
	fs := c.flagSet("clear-completed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	removed, err := c.store.DeleteCompleted()
	if err != nil {
		return fmt.Errorf("deleting completed tasks: %w", err)
	}
	fmt.Fprintf(c.out, "Deleted %d completed task(s).\n", removed)
	return nil
}

// clearAllCommand deletes every task after confirmation.
func (c *cli) clearAllCommand(args []string) error {
	fs := c.flagSet("clear-all")
	yes := fs.Bool("y", false, "Skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	if !*yes {
		fmt.Fprintf(c.out, "Delete all %d tasks? (y/n): ", len(c.store.Tasks()))
		answer, _ := bufio.NewReader(c.in).ReadString('\n')
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Fprintln(c.out, "Cancelled.")
			return nil
		}
	}
	if err := c.store.DeleteAll(); err != nil {
		return fmt.Errorf("deleting tasks: %w", err)
	}
	fmt.Fprintln(c.out, "All tasks deleted.")
	return nil
}

type statsOutput struct {
	Total     int `json:"total" yaml:"total"`
	Completed int `json:"completed" yaml:"completed"`
	Pending   int `json:"pending" yaml:"pending"`
}

// statsCommand prints task counts.
func (c *cli) statsCommand(args []string) error {
	fs := c.flagSet("stats")
	format := fs.String("o", "text", "Output format (text|json|yaml)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	stats := c.store.Stats()
	out := statsOutput{Total: stats.Total, Completed: stats.Completed, Pending: stats.Pending}
	switch *format {
	case "json":
		return writeJSON(c.out, out)
	case "yaml":
		return writeYAML(c.out, out)
	case "text":
		fmt.Fprintf(c.out, "Total:     %d\n", out.Total)
		fmt.Fprintf(c.out, "Completed: %d\n", out.Completed)
		fmt.Fprintf(c.out, "Pending:   %d\n", out.Pending)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (expected text|json|yaml)", *format)
	}
}

// printTaskList prints tasks one per line, keyed by id.
func printTaskList(w io.Writer, tasks todo.List) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks yet.")
		return
	}
	for _, t := range tasks {
		printTask(w, t)
	}
}

// printTask prints a single task.
func printTask(w io.Writer, t todo.Task) {
	status := "✗"
	if t.Completed {
		status = "✔"
	}
	created := t.CreatedAt
	if created == "" {
		created = "unknown time"
	}
	fmt.Fprintf(w, "%d. [%s] %s (created at %s)\n", t.ID, status, t.Description, created)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
