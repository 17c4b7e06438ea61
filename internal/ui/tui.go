// Package ui provides the optional full-screen terminal interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/nibzard/todo-go/internal/todo"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	refreshInterval time.Duration
}

// WithRefreshInterval sets how often the task file is re-read so changes
// made by other front-ends show up.
func WithRefreshInterval(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		if d > 0 {
			c.refreshInterval = d
		}
	}
}

// RunTUI starts the TUI on the given store.
func RunTUI(ctx context.Context, store *todo.Store, opts ...TUIOption) error {
	c := &tuiConfig{
		refreshInterval: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(store, c.refreshInterval)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

type tuiMode int

const (
	modeList tuiMode = iota
	modeAdd
	modeConfirmDeleteAll
)

type tuiModel struct {
	store        *todo.Store
	tasks        todo.List
	stats        todo.Stats
	cursor       int
	mode         tuiMode
	input        []rune
	status       string
	lastErr      error
	showHelp     bool
	tickInterval time.Duration
}

type tickMsg time.Time

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	doneStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	statsStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	sectionStyle = lipgloss.NewStyle().MarginBottom(1)
)

func newTUIModel(store *todo.Store, interval time.Duration) *tuiModel {
	return &tuiModel{
		store:        store,
		tickInterval: interval,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeConfirmDeleteAll:
			return m.updateConfirm(msg)
		}
		return m.updateList(msg)
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *tuiModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case " ", "enter":
		m.toggleSelected()
	case "d":
		m.deleteSelected()
	case "c":
		m.deleteCompleted()
	case "D":
		if len(m.tasks) > 0 {
			m.mode = modeConfirmDeleteAll
		}
	case "a":
		m.mode = modeAdd
		m.input = m.input[:0]
	case "r", "f5":
		m.refresh()
		m.status = "Refreshed."
	case "?", "h":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *tuiModel) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeList
		m.input = m.input[:0]
	case tea.KeyEnter:
		desc := strings.TrimSpace(string(m.input))
		m.mode = modeList
		m.input = m.input[:0]
		if desc == "" {
			return m, nil
		}
		task, err := m.store.AddTask(desc)
		m.lastErr = err
		if err == nil {
			m.status = fmt.Sprintf("Added task %d.", task.ID)
		}
		m.refresh()
		m.cursor = len(m.tasks) - 1
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}
	return m, nil
}

func (m *tuiModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeList
	if msg.String() != "y" && msg.String() != "Y" {
		m.status = "Cancelled."
		return m, nil
	}
	m.lastErr = m.store.DeleteAll()
	if m.lastErr == nil {
		m.status = "All tasks deleted."
	}
	m.refresh()
	return m, nil
}

func (m *tuiModel) selected() (todo.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return todo.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m *tuiModel) toggleSelected() {
	task, ok := m.selected()
	if !ok {
		return
	}
	m.lastErr = m.store.ToggleComplete(task.ID)
	if m.lastErr == nil {
		if task.Completed {
			m.status = fmt.Sprintf("Task %d marked as pending.", task.ID)
		} else {
			m.status = fmt.Sprintf("Task %d marked as completed.", task.ID)
		}
	}
	m.refresh()
}

func (m *tuiModel) deleteSelected() {
	task, ok := m.selected()
	if !ok {
		return
	}
	m.lastErr = m.store.DeleteByID(task.ID)
	if m.lastErr == nil {
		m.status = fmt.Sprintf("Deleted task %d.", task.ID)
	}
	m.refresh()
}

func (m *tuiModel) deleteCompleted() {
	removed, err := m.store.DeleteCompleted()
	m.lastErr = err
	if err == nil {
		m.status = fmt.Sprintf("Deleted %d completed task(s).", removed)
	}
	m.refresh()
}

func (m *tuiModel) refresh() {
	m.stats = m.store.Stats()
	m.tasks = m.stats.Tasks
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}

	writeOverview(&b, m.stats)
	writeTasks(&b, m.tasks, m.cursor)

	switch m.mode {
	case modeAdd:
		b.WriteString(promptStyle.Render("New task: ") + string(m.input) + "█\n")
		b.WriteString(mutedStyle.Render("enter to save, esc to cancel") + "\n\n")
	case modeConfirmDeleteAll:
		b.WriteString(promptStyle.Render("Delete all tasks? (y/n)") + "\n\n")
	}

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("Error: "+m.lastErr.Error()) + "\n\n")
	} else if m.status != "" {
		b.WriteString(m.status + "\n\n")
	}

	writeFooter(&b)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func writeTitle(b *strings.Builder) {
	title := "Todo"
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, stats todo.Stats) {
	line := fmt.Sprintf("Total: %d  Completed: %d  Pending: %d", stats.Total, stats.Completed, stats.Pending)
	b.WriteString(sectionStyle.Render(statsStyle.Render(line)) + "\n")
}

func writeTasks(b *strings.Builder, tasks todo.List, cursor int) {
	if len(tasks) == 0 {
		b.WriteString("  No tasks yet. Press a to add one.\n\n")
		return
	}
	for i, task := range tasks {
		b.WriteString(formatTask(task, i == cursor))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func formatTask(t todo.Task, selected bool) string {
	pointer := "  "
	if selected {
		pointer = cursorStyle.Render("> ")
	}
	box := "[ ]"
	desc := t.Description
	if t.Completed {
		box = "[x]"
		desc = doneStyle.Render(desc)
	}
	line := fmt.Sprintf("%s%s %d. %s", pointer, box, t.ID, desc)
	if t.CreatedAt != "" {
		line += "  " + mutedStyle.Render(t.CreatedAt)
	}
	return line
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  up/k, down/j   Move cursor\n")
	b.WriteString("  space, enter   Toggle completed\n")
	b.WriteString("  a              Add a task\n")
	b.WriteString("  d              Delete selected task\n")
	b.WriteString("  c              Delete completed tasks\n")
	b.WriteString("  D              Delete all tasks\n")
	b.WriteString("  r, F5          Refresh\n")
	b.WriteString("  h, ?           Toggle this help screen\n")
	b.WriteString("  q, ctrl+c      Quit\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString(mutedStyle.Render("Press ? for help | q to quit") + "\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
