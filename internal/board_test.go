package internal

import (
	"io"
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	opened []string
}

func (n *fakeNotifier) OpenTask(id string) error {
	n.opened = append(n.opened, id)
	return nil
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func testBoard(t *testing.T, content string) (*Board, *TaskFile, *fakeNotifier) {
	t.Helper()
	file := newTestTaskFile(t, content)
	tasks, err := file.Load()
	require.NoError(t, err)
	notifier := &fakeNotifier{}
	board := NewBoard(file, tasks, notifier, testLogger(), nil, 6)
	return &board, file, notifier
}

func keyPress(b *Board, key string) {
	var msg tea.Msg
	if len(key) == 1 {
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	} else {
		switch key {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		}
	}
	model, _ := b.Update(msg)
	*b = model.(Board)
}

func TestBoardVerticalMovementClamps(t *testing.T) {
	b, _, _ := testBoard(t, "one +work id:a\ntwo +work id:b\n")

	require.Equal(t, 0, b.row)

	keyPress(b, "k") // already at the top
	require.Equal(t, 0, b.row)

	keyPress(b, "j")
	require.Equal(t, 1, b.row)

	keyPress(b, "j") // already at the bottom
	require.Equal(t, 1, b.row)
}

func TestBoardHorizontalMovementClampsRow(t *testing.T) {
	b, _, _ := testBoard(t, "w1 +work id:a\nw2 +work id:b\nw3 +work id:c\nh1 +home id:d\n")

	keyPress(b, "j")
	keyPress(b, "j")
	require.Equal(t, 2, b.row)

	// Entering the shorter home column lands on its last card.
	keyPress(b, "l")
	require.Equal(t, 1, b.column)
	require.Equal(t, 0, b.row)

	// Moving back does not restore the old row.
	keyPress(b, "h")
	require.Equal(t, 0, b.column)
	require.Equal(t, 0, b.row)

	keyPress(b, "h") // already at the first column
	require.Equal(t, 0, b.column)
}

func TestBoardFirstLastKeys(t *testing.T) {
	b, _, _ := testBoard(t, "one +work id:a\ntwo +work id:b\nthree +work id:c\n")

	keyPress(b, "G")
	require.Equal(t, 2, b.row)

	keyPress(b, "g")
	require.Equal(t, 0, b.row)
}

func TestBoardNotifiesOnlyOnIdentityChange(t *testing.T) {
	b, _, notifier := testBoard(t, "shared +work +home id:a\nw2 +work id:b\n")

	// The initial selection fires once.
	require.Equal(t, []string{"a"}, notifier.opened)

	// Moving to the home column lands on the same task. No notification.
	keyPress(b, "l")
	require.Equal(t, []string{"a"}, notifier.opened)

	keyPress(b, "h")
	require.Equal(t, []string{"a"}, notifier.opened)

	// Moving down is a real identity change.
	keyPress(b, "j")
	require.Equal(t, []string{"a", "b"}, notifier.opened)

	// Clamped moves at the boundary stay silent.
	keyPress(b, "j")
	require.Equal(t, []string{"a", "b"}, notifier.opened)
}

func TestBoardCompleteCurrent(t *testing.T) {
	b, file, _ := testBoard(t, "one +work id:a\ntwo +work id:b\n")

	keyPress(b, "x")

	require.Equal(t, []string{"two +work id:b"}, readFileLines(t, file.TodoPath()))
	require.Len(t, b.buckets, 1)
	require.Equal(t, "two", b.buckets[0].Tasks[0].Title)

	// Cursor re-resolves without panicking and selection moves on.
	task := b.CurrentTask()
	require.NotNil(t, task)
	require.Equal(t, "b", task.ID)
}

func TestBoardCompleteLastTaskOfColumn(t *testing.T) {
	b, _, _ := testBoard(t, "only +work id:a\nother +home id:b\n")

	keyPress(b, "x")

	// The work column vanished; the cursor clamps onto what remains.
	require.Len(t, b.buckets, 1)
	task := b.CurrentTask()
	require.NotNil(t, task)
	require.Equal(t, "b", task.ID)
}

func TestBoardReloadKeepsSelectionByID(t *testing.T) {
	b, file, _ := testBoard(t, "one +work id:a\ntwo +work id:b\n")

	keyPress(b, "j")
	require.Equal(t, "b", b.selectedID)

	// A new high-priority task pushes the selection down a row.
	require.NoError(t, os.WriteFile(file.TodoPath(),
		[]byte("(A) urgent +work id:c\none +work id:a\ntwo +work id:b\n"), 0644))
	keyPress(b, "r")

	require.Equal(t, "b", b.selectedID)
	require.Equal(t, 2, b.row)
}

func TestBoardReloadFailureKeepsSnapshot(t *testing.T) {
	b, file, _ := testBoard(t, "one +work id:a\n")

	require.NoError(t, os.Remove(file.TodoPath()))
	keyPress(b, "r")

	require.NotEmpty(t, b.status)
	require.Len(t, b.buckets, 1)
	require.Equal(t, "one", b.buckets[0].Tasks[0].Title)
}

func TestBoardCreateTask(t *testing.T) {
	b, file, _ := testBoard(t, "one +work id:a\n")

	keyPress(b, "c")
	require.True(t, b.creating)

	model, _ := b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("new thing +home")})
	*b = model.(Board)
	keyPress(b, "enter")

	require.False(t, b.creating)
	lines := readFileLines(t, file.TodoPath())
	require.Len(t, lines, 2)
	require.Contains(t, lines[1], "new thing +home")

	// The new task is selected.
	task := b.CurrentTask()
	require.NotNil(t, task)
	require.Equal(t, "new thing", task.Title)
}

func TestBoardCreateCancel(t *testing.T) {
	b, file, _ := testBoard(t, "one +work id:a\n")

	keyPress(b, "c")
	keyPress(b, "esc")

	require.False(t, b.creating)
	require.Len(t, readFileLines(t, file.TodoPath()), 1)
}

func TestBoardEmpty(t *testing.T) {
	b, _, notifier := testBoard(t, "")

	require.Empty(t, notifier.opened)
	require.Nil(t, b.CurrentTask())

	// Navigation over an empty board is a no-op, not a panic.
	keyPress(b, "j")
	keyPress(b, "l")
	keyPress(b, "x")
	keyPress(b, "G")
}

func TestBoardViewRenders(t *testing.T) {
	b, _, _ := testBoard(t, "one +work id:a\ntwo +home id:b\n")

	model, _ := b.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	*b = model.(Board)

	view := b.View()
	require.Contains(t, view, "work (1)")
	require.Contains(t, view, "home (1)")
	require.Contains(t, view, "one")
	require.Contains(t, view, "two")
}
