// Package menu implements the interactive numbered text menu.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/text/message"

	"github.com/nibzard/todo-go/internal/todo"
	"github.com/nibzard/todo-go/internal/utils"
)

// errExit ends the menu loop at the user's request.
var errExit = errors.New("exit")

const (
	markDone    = "✔"
	markPending = "✗"
)

// Menu drives a Store from line-oriented input.
type Menu struct {
	store  *todo.Store
	in     *bufio.Scanner
	out    io.Writer
	p      *message.Printer
	logger *log.Logger

	lines   chan string
	done    chan struct{}
	scanErr error
}

// Option configures a Menu.
type Option func(*Menu)

// WithLang selects the message language, e.g. "en" or "zh-TW".
func WithLang(lang string) Option {
	return func(m *Menu) {
		m.p = newPrinter(lang)
	}
}

// WithLogger sets the logger for unexpected failures.
func WithLogger(logger *log.Logger) Option {
	return func(m *Menu) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a menu reading from in and writing to out.
func New(store *todo.Store, in io.Reader, out io.Writer, opts ...Option) *Menu {
	m := &Menu{
		store:  store,
		in:     bufio.NewScanner(in),
		out:    out,
		p:      newPrinter(""),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run shows the main menu until the user exits, input ends, or ctx is done.
// A Menu can be run once.
func (m *Menu) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.startReader()
	defer close(m.done)

	for {
		err := m.step(ctx)
		switch {
		case err == nil:
		case errors.Is(err, errExit):
			m.println(msgGoodbye)
			return nil
		case errors.Is(err, io.EOF):
			m.println("")
			m.println(msgGoodbye)
			return m.scanErr
		default:
			return err
		}
	}
}

// step shows the main menu once and runs the chosen action.
func (m *Menu) step(ctx context.Context) error {
	m.printMain()
	choice, err := m.prompt(ctx, msgChoose)
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		return m.add(ctx)
	case "2":
		m.view()
	case "3":
		return m.complete(ctx)
	case "4":
		return m.deleteMenu(ctx)
	case "5":
		return errExit
	default:
		m.println(msgInvalidOption)
	}
	return nil
}

// startReader scans input on its own goroutine so prompts can give up
// when ctx is cancelled. A Scan blocked on input outlives Run until the
// reader returns.
func (m *Menu) startReader() {
	m.lines = make(chan string)
	m.done = make(chan struct{})
	go func() {
		defer close(m.lines)
		for m.in.Scan() {
			select {
			case m.lines <- m.in.Text():
			case <-m.done:
				return
			}
		}
		m.scanErr = m.in.Err()
	}()
}

func (m *Menu) printMain() {
	m.println("")
	m.println(msgTitle)
	m.println(msgMainAdd)
	m.println(msgMainView)
	m.println(msgMainComplete)
	m.println(msgMainDelete)
	m.println(msgMainExit)
}

func (m *Menu) add(ctx context.Context) error {
	desc, err := m.prompt(ctx, msgAskDescription)
	if err != nil {
		return err
	}
	task, err := m.store.AddTask(desc)
	if err != nil {
		m.logger.Error("add task", "err", err)
		m.println(msgAddFailed)
		return nil
	}
	m.println(msgAdded, task.CreatedAt)
	return nil
}

// view prints the list and returns it so callers can resolve positions
// against exactly what the user saw.
func (m *Menu) view() todo.List {
	tasks := m.store.Tasks()
	if len(tasks) == 0 {
		m.println(msgNoTasks)
		return tasks
	}
	for i, task := range tasks {
		status := markPending
		if task.Completed {
			status = markDone
		}
		created := task.CreatedAt
		if created == "" {
			created = m.p.Sprintf(msgUnknownTime)
		}
		m.println(msgTaskLine, strconv.Itoa(i+1), status, task.Description, created)
	}
	return tasks
}

func (m *Menu) complete(ctx context.Context) error {
	tasks := m.view()
	input, err := m.prompt(ctx, msgAskComplete)
	if err != nil {
		return err
	}
	task, ok := m.resolve(tasks, input)
	if !ok {
		return nil
	}

	if err := m.store.ToggleComplete(task.ID); err != nil {
		if errors.Is(err, todo.ErrNotFound) {
			m.println(msgInvalidIndex)
			return nil
		}
		m.logger.Error("toggle task", "id", task.ID, "err", err)
		m.println(msgUpdateFailed)
		return nil
	}
	if task.Completed {
		m.println(msgReopened)
	} else {
		m.println(msgCompleted)
	}
	return nil
}

// resolve turns a 1-based display position into the task shown there.
func (m *Menu) resolve(tasks todo.List, input string) (todo.Task, bool) {
	position, err := strconv.Atoi(input)
	if err != nil || position < 0 {
		m.println(msgNotANumber)
		return todo.Task{}, false
	}
	task, err := tasks.At(position)
	if err != nil {
		m.println(msgInvalidIndex)
		return todo.Task{}, false
	}
	return task, true
}

func (m *Menu) deleteMenu(ctx context.Context) error {
	m.println("")
	m.println(msgDeleteTitle)
	m.println(msgDeleteOne)
	m.println(msgDeleteMany)
	m.println(msgDeleteAll)
	m.println(msgDeleteBack)
	choice, err := m.prompt(ctx, msgChooseDelete)
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		return m.deleteOne(ctx)
	case "2":
		return m.deleteMany(ctx)
	case "3":
		return m.deleteAll(ctx)
	case "4":
		return nil
	default:
		m.println(msgInvalidOption)
		return nil
	}
}

func (m *Menu) deleteOne(ctx context.Context) error {
	tasks := m.view()
	if len(tasks) == 0 {
		return nil
	}
	input, err := m.prompt(ctx, msgAskDeleteOne)
	if err != nil {
		return err
	}
	task, ok := m.resolve(tasks, input)
	if !ok {
		return nil
	}

	if err := m.store.DeleteByID(task.ID); err != nil {
		if !errors.Is(err, todo.ErrNotFound) {
			m.logger.Error("delete task", "id", task.ID, "err", err)
		}
		m.println(msgDeleteFailed)
		return nil
	}
	m.println(msgDeleted, 1)
	return nil
}

func (m *Menu) deleteMany(ctx context.Context) error {
	tasks := m.view()
	if len(tasks) == 0 {
		return nil
	}
	input, err := m.prompt(ctx, msgAskDeleteMany)
	if err != nil {
		return err
	}
	positions, err := utils.ParseIndexList(input)
	if err != nil {
		m.println(msgBadIndexList)
		return nil
	}

	// Out of range positions are skipped.
	ids := make([]int, 0, len(positions))
	for _, position := range positions {
		if task, err := tasks.At(position); err == nil {
			ids = append(ids, task.ID)
		}
	}

	removed, err := m.store.DeleteByIDs(ids)
	if err != nil {
		m.logger.Error("delete tasks", "ids", ids, "err", err)
		m.println(msgDeleteFailed)
		return nil
	}
	m.println(msgDeleted, removed)
	return nil
}

func (m *Menu) deleteAll(ctx context.Context) error {
	answer, err := m.prompt(ctx, msgConfirmAll)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		return nil
	}
	if len(m.store.Tasks()) == 0 {
		m.println(msgNoTasks)
		return nil
	}
	if err := m.store.DeleteAll(); err != nil {
		m.logger.Error("delete all tasks", "err", err)
		m.println(msgDeleteFailed)
		return nil
	}
	m.println(msgDeletedAll)
	return nil
}

// prompt writes label and reads one trimmed line. It returns io.EOF at end
// of input and ctx.Err() once ctx is done.
func (m *Menu) prompt(ctx context.Context, label string) (string, error) {
	m.p.Fprintf(m.out, label)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-m.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

func (m *Menu) println(key string, args ...interface{}) {
	if key == "" {
		fmt.Fprintln(m.out)
		return
	}
	m.p.Fprintf(m.out, key, args...)
	fmt.Fprintln(m.out)
}
