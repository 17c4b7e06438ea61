// Package cmd implements the CLI command structure for todo.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/menu"
	"github.com/nibzard/todo-go/internal/server"
	"github.com/nibzard/todo-go/internal/todo"
	"github.com/nibzard/todo-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// cli carries everything a subcommand needs.
type cli struct {
	cfg     *config.ConfigWithSources
	store   *todo.Store
	logger  *log.Logger
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	globals *flag.FlagSet
}

// Run executes the todo CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		printUsage(fs, errOut)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, out)
		return nil
	}
	if *showVersion {
		return versionCommand(out)
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "menu" as default
	subcommand := "menu"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "version":
		return versionCommand(out)
	case "help":
		printUsage(fs, out)
		return nil
	}

	// Interactive front-ends own the terminal, so their logs only go to a file.
	fallback := errOut
	if subcommand == "menu" || subcommand == "tui" {
		fallback = io.Discard
	}
	logger, closer, err := logging.Open(logging.OptionsFromConfig(cws.Config), fallback)
	if err != nil {
		return err
	}
	defer closer.Close()

	c := &cli{
		cfg:     cws,
		store:   todo.NewStore(cws.Config.TasksFile, todo.WithLogger(logger)),
		logger:  logger,
		in:      in,
		out:     out,
		errOut:  errOut,
		globals: fs,
	}
	logger.Debug("starting", "command", subcommand, "tasks_file", cws.Config.TasksFile)

	switch subcommand {
	case "menu":
		return c.menuCommand(ctx, remainingArgs)
	case "tui":
		return c.tuiCommand(ctx, remainingArgs)
	case "serve":
		return c.serveCommand(ctx, remainingArgs)
	case "add":
		return c.addCommand(remainingArgs)
	case "ls", "list":
		return c.lsCommand(remainingArgs)
	case "toggle", "done":
		return c.toggleCommand(remainingArgs)
	case "rm", "delete":
		return c.rmCommand(remainingArgs)
	case "clear-completed":
		return c.clearCompletedCommand(remainingArgs)
	case "clear-all":
		return c.clearAllCommand(remainingArgs)
	case "stats":
		return c.statsCommand(remainingArgs)
	case "doctor":
		return c.doctorCommand(remainingArgs)
	case "config":
		return c.configCommand(remainingArgs)
	default:
		fmt.Fprintf(errOut, "Unknown command: %s\n", subcommand)
		printUsage(fs, errOut)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// menuCommand runs the numbered text menu.
func (c *cli) menuCommand(ctx context.Context, args []string) error {
	fs := c.flagSet("menu")
	lang := fs.String("lang", c.cfg.Config.Lang, "Menu language ("+strings.Join(menu.Languages(), "|")+")")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	m := menu.New(c.store, c.in, c.out, menu.WithLang(*lang), menu.WithLogger(c.logger))
	return m.Run(ctx)
}

// tuiCommand launches the TUI.
func (c *cli) tuiCommand(ctx context.Context, args []string) error {
	fs := c.flagSet("tui")
	refresh := fs.Duration("refresh", 0, "Re-read the task file at this interval (default 2s)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}
	return ui.RunTUI(ctx, c.store, ui.WithRefreshInterval(*refresh))
}

// serveCommand runs the HTTP API until ctx is cancelled.
func (c *cli) serveCommand(ctx context.Context, args []string) error {
	fs := c.flagSet("serve")
	addr := fs.String("addr", c.cfg.Config.Addr, "Listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}
	return server.New(c.store, c.logger).Run(ctx, *addr)
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "todo version %s\n", Version)
	return nil
}

func (c *cli) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("todo "+name, flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	return fs
}

func noArgs(fs *flag.FlagSet) error {
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "todo - A small task tracker backed by a JSON file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todo [options] [command] [command options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  menu                  Interactive numbered menu (default command)")
	fmt.Fprintln(w, "  tui                   Full-screen terminal UI")
	fmt.Fprintln(w, "  serve                 Serve the JSON HTTP API")
	fmt.Fprintln(w, "  add <description>     Add a task")
	fmt.Fprintln(w, "  ls                    List tasks")
	fmt.Fprintln(w, "  toggle <id>           Toggle a task between completed and pending")
	fmt.Fprintln(w, "  rm <id>[,<id>...]     Delete tasks by id")
	fmt.Fprintln(w, "  clear-completed       Delete all completed tasks")
	fmt.Fprintln(w, "  clear-all             Delete every task")
	fmt.Fprintln(w, "  stats                 Show task counts")
	fmt.Fprintln(w, "  doctor [file]         Check config and task file validity")
	fmt.Fprintln(w, "  config                Show effective configuration and where it came from")
	fmt.Fprintln(w, "  version               Show version information")
	fmt.Fprintln(w, "  help                  Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Command Options:")
	fmt.Fprintln(w, "  menu -lang string     Menu language (en|zh-TW)")
	fmt.Fprintln(w, "  tui -refresh duration Re-read interval (default 2s)")
	fmt.Fprintln(w, "  serve -addr string    Listen address (default \":5000\")")
	fmt.Fprintln(w, "  ls -o string          Output format (text|json|yaml)")
	fmt.Fprintln(w, "  stats -o string       Output format (text|json|yaml)")
	fmt.Fprintln(w, "  clear-all -y          Skip confirmation")
	fmt.Fprintln(w, "  doctor -v             Verbose output")
	fmt.Fprintln(w, "  doctor -schema string Validate against this JSON Schema file")
	fmt.Fprintln(w, "  doctor -print-schema  Print the built-in task file schema")
	fmt.Fprintln(w, "  config -example       Print an example todo.toml")
}
