package ui

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/todo-go/internal/todo"
)

func newTestModel(t *testing.T, descriptions ...string) *tuiModel {
	t.Helper()
	now := time.Date(2025, 8, 2, 14, 0, 0, 0, time.Local)
	store := todo.NewStore(filepath.Join(t.TempDir(), "tasks.json"),
		todo.WithClock(func() time.Time { return now }))
	for _, d := range descriptions {
		_, err := store.AddTask(d)
		require.NoError(t, err)
	}
	m := newTUIModel(store, time.Hour)
	m.Init()
	return m
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m *tuiModel, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestInitLoadsTasks(t *testing.T) {
	m := newTestModel(t, "a", "b")

	assert.Len(t, m.tasks, 2)
	assert.Equal(t, 2, m.stats.Pending)
	view := m.View()
	assert.Contains(t, view, "Total: 2  Completed: 0  Pending: 2")
	assert.Contains(t, view, "1. a")
	assert.Contains(t, view, "2025-08-02 14:00:00")
}

func TestEmptyView(t *testing.T) {
	m := newTestModel(t)
	assert.Contains(t, m.View(), "No tasks yet")
}

func TestCursorMovement(t *testing.T) {
	m := newTestModel(t, "a", "b", "c")

	send(m, keys("j"), keys("j"), keys("j"))
	assert.Equal(t, 2, m.cursor)

	send(m, tea.KeyMsg{Type: tea.KeyUp}, keys("k"), keys("k"))
	assert.Equal(t, 0, m.cursor)
}

func TestToggleSelected(t *testing.T) {
	m := newTestModel(t, "a", "b")

	send(m, keys("j"), tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, m.store.Tasks().Find(2).Completed)
	assert.Equal(t, 1, m.stats.Completed)
	assert.Contains(t, m.View(), "Task 2 marked as completed.")

	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.store.Tasks().Find(2).Completed)
}

func TestDeleteSelectedClampsCursor(t *testing.T) {
	m := newTestModel(t, "a", "b")

	send(m, keys("j"), keys("d"))

	tasks := m.store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, 1, tasks[0].ID)
	assert.Equal(t, 0, m.cursor)
}

func TestDeleteCompleted(t *testing.T) {
	m := newTestModel(t, "a", "b", "c")

	send(m, tea.KeyMsg{Type: tea.KeySpace}, keys("j"), keys("j"), tea.KeyMsg{Type: tea.KeySpace}, keys("c"))

	assert.Len(t, m.store.Tasks(), 1)
	assert.Contains(t, m.View(), "Deleted 2 completed task(s).")
}

func TestDeleteAllAsksForConfirmation(t *testing.T) {
	m := newTestModel(t, "a", "b")

	send(m, keys("D"))
	assert.Equal(t, modeConfirmDeleteAll, m.mode)
	assert.Contains(t, m.View(), "Delete all tasks? (y/n)")

	send(m, keys("n"))
	assert.Equal(t, modeList, m.mode)
	assert.Len(t, m.store.Tasks(), 2)

	send(m, keys("D"), keys("y"))
	assert.Empty(t, m.store.Tasks())
	assert.Equal(t, 0, m.stats.Total)
}

func TestAddTask(t *testing.T) {
	m := newTestModel(t, "a")

	send(m, keys("a"))
	require.Equal(t, modeAdd, m.mode)

	send(m, keys("buy"), tea.KeyMsg{Type: tea.KeySpace}, keys("milkk"), tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Contains(t, m.View(), "New task: buy milk")

	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeList, m.mode)
	tasks := m.store.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "buy milk", tasks[1].Description)
	assert.Equal(t, 1, m.cursor)
}

func TestAddKeysDoNotTriggerCommands(t *testing.T) {
	m := newTestModel(t, "a")

	send(m, keys("a"), keys("q"), keys("d"))
	assert.Equal(t, modeAdd, m.mode)
	assert.Equal(t, "qd", string(m.input))
	assert.Len(t, m.store.Tasks(), 1)
}

func TestAddCancelAndBlank(t *testing.T) {
	m := newTestModel(t)

	send(m, keys("a"), keys("x"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeList, m.mode)
	assert.Empty(t, m.store.Tasks())

	send(m, keys("a"), tea.KeyMsg{Type: tea.KeySpace}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.store.Tasks())
}

func TestRefreshPicksUpExternalChanges(t *testing.T) {
	m := newTestModel(t, "a")
	_, err := m.store.AddTask("from elsewhere")
	require.NoError(t, err)

	cmd := send(m, tickMsg(time.Now()))
	assert.NotNil(t, cmd)
	assert.Len(t, m.tasks, 2)
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t)

	send(m, keys("?"))
	assert.Contains(t, m.View(), "Keyboard Shortcuts")
	send(m, keys("?"))
	assert.NotContains(t, m.View(), "Keyboard Shortcuts")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)

	cmd := send(m, keys("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	cmd = send(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))
}
