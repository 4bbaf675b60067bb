package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestTaskFile(t *testing.T, content string) *TaskFile {
	t.Helper()
	dir := t.TempDir()
	file := NewTaskFile(dir)
	require.NoError(t, os.WriteFile(file.TodoPath(), []byte(content), 0644))
	return file
}

func readFileLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestLoadInjectsMissingIDs(t *testing.T) {
	file := newTestTaskFile(t, "(A) Buy milk +home\nWrite report id:existing-id\n")

	tasks, err := file.Load()
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	require.NotEmpty(t, tasks[0].ID)
	require.Equal(t, "existing-id", tasks[1].ID)

	// The rewrite appends the id and leaves the rest of the line alone.
	lines := readFileLines(t, file.TodoPath())
	require.Equal(t, "(A) Buy milk +home id:"+tasks[0].ID, lines[0])
	require.Equal(t, "Write report id:existing-id", lines[1])
}

func TestLoadWithoutInjectionLeavesFileUntouched(t *testing.T) {
	content := "(A) Buy milk id:aaa\n\nWrite report id:bbb\n"
	file := newTestTaskFile(t, content)

	_, err := file.Load()
	require.NoError(t, err)

	data, err := os.ReadFile(file.TodoPath())
	require.NoError(t, err)
	require.Equal(t, content, string(data))
}

func TestLoadSkipsBlankLines(t *testing.T) {
	file := newTestTaskFile(t, "first id:a\n\n   \nsecond id:b\n")

	tasks, err := file.Load()
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Equal(t, 1, tasks[0].LineNumber)
	require.Equal(t, 4, tasks[1].LineNumber)
}

func TestLoadMissingFile(t *testing.T) {
	file := NewTaskFile(t.TempDir())

	_, err := file.Load()
	require.Error(t, err)
}

func TestAppend(t *testing.T) {
	file := newTestTaskFile(t, "first id:a\n")
	task := NewTask("second +home", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))

	require.NoError(t, file.Append(task))

	lines := readFileLines(t, file.TodoPath())
	require.Len(t, lines, 2)
	require.Equal(t, task.Serialize(), lines[1])

	// The detail file exists and is empty.
	info, err := os.Stat(file.DetailPath(task.ID))
	require.NoError(t, err)
	require.Zero(t, info.Size())
}

func TestComplete(t *testing.T) {
	file := newTestTaskFile(t, "(A) Buy milk +home id:aaa\nWrite report id:bbb\n")

	tasks, err := file.Load()
	require.NoError(t, err)

	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, file.Complete(tasks[0], now))

	todoLines := readFileLines(t, file.TodoPath())
	require.Equal(t, []string{"Write report id:bbb"}, todoLines)

	doneLines := readFileLines(t, file.ArchivePath())
	require.Equal(t, []string{"x 2024-01-15 (A) Buy milk +home id:aaa"}, doneLines)
}

func TestCompleteAppendsToExistingArchive(t *testing.T) {
	file := newTestTaskFile(t, "task id:aaa\n")
	require.NoError(t, os.WriteFile(file.ArchivePath(), []byte("x 2024-01-01 old id:zzz\n"), 0644))

	tasks, err := file.Load()
	require.NoError(t, err)
	require.NoError(t, file.Complete(tasks[0], time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))

	doneLines := readFileLines(t, file.ArchivePath())
	require.Len(t, doneLines, 2)
	require.Equal(t, "x 2024-01-01 old id:zzz", doneLines[0])
}

func TestCompleteMissingTask(t *testing.T) {
	file := newTestTaskFile(t, "task id:aaa\n")

	err := file.Complete(Task{ID: "nope"}, time.Now())
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")

	// Nothing was archived.
	_, statErr := os.Stat(file.ArchivePath())
	require.True(t, os.IsNotExist(statErr))
}

func TestCompleteKeepsBlankLines(t *testing.T) {
	file := newTestTaskFile(t, "first id:a\n\nsecond id:b\n")

	tasks, err := file.Load()
	require.NoError(t, err)
	require.NoError(t, file.Complete(tasks[1], time.Now()))

	lines := readFileLines(t, file.TodoPath())
	require.Equal(t, []string{"first id:a", ""}, lines)
}

func TestDetailPath(t *testing.T) {
	file := NewTaskFile("/tmp/todos-dir")
	want := filepath.Join("/tmp/todos-dir", "todos", "abc.md")
	if got := file.DetailPath("abc"); got != want {
		t.Errorf("DetailPath() = %v, want %v", got, want)
	}
}
