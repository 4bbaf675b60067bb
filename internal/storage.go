package internal

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// TaskFile owns the on-disk todo.txt, its done.txt archive and the detail
// file directory. Rewrites go through a temp file and rename, guarded by a
// sidecar flock so a rewrite never interleaves with another torudo process.
type TaskFile struct {
	Dir string
}

func NewTaskFile(dir string) *TaskFile {
	return &TaskFile{Dir: dir}
}

func (f *TaskFile) TodoPath() string {
	return filepath.Join(f.Dir, "todo.txt")
}

func (f *TaskFile) ArchivePath() string {
	return filepath.Join(f.Dir, "done.txt")
}

func (f *TaskFile) DetailDir() string {
	return filepath.Join(f.Dir, "todos")
}

func (f *TaskFile) DetailPath(id string) string {
	return filepath.Join(f.DetailDir(), id+".md")
}

func (f *TaskFile) fileLock() *flock.Flock {
	return flock.New(filepath.Join(f.Dir, ".todo.txt.lock"))
}

// Load reads and parses the active file, one task per non-empty line.
// Loading is a mutating read: any line lacking an id: token gets a fresh
// identifier appended and the file is rewritten before the tasks are
// returned, since identifiers bind tasks to their detail files.
func (f *TaskFile) Load() ([]Task, error) {
	lock := f.fileLock()
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("lock task file: %w", err)
	}
	defer lock.Unlock()

	lines, err := f.readLines()
	if err != nil {
		return nil, err
	}

	var tasks []Task
	dirty := false
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		task := ParseTask(line, i+1)
		if task.EnsureID() {
			lines[i] = line + " id:" + task.ID
			task.Raw = lines[i]
			dirty = true
		}
		tasks = append(tasks, task)
	}

	if dirty {
		if err := f.rewrite(lines); err != nil {
			return nil, fmt.Errorf("write injected ids: %w", err)
		}
	}
	return tasks, nil
}

// Append adds one task line to the end of the active file and touches its
// detail file so the companion editor always has something to open.
func (f *TaskFile) Append(task Task) error {
	lock := f.fileLock()
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock task file: %w", err)
	}
	defer lock.Unlock()

	if err := appendLine(f.TodoPath(), task.Serialize()); err != nil {
		return fmt.Errorf("append task: %w", err)
	}
	return f.touchDetail(task.ID)
}

// Complete moves a task from the active file to the archive. The archived
// line is appended first; only then is the active file rewritten without the
// task. An append failure leaves everything untouched. A rewrite failure
// after the append is surfaced as its own error because the task now exists
// in both files and the user must resolve it.
func (f *TaskFile) Complete(task Task, now time.Time) error {
	lock := f.fileLock()
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock task file: %w", err)
	}
	defer lock.Unlock()

	lines, err := f.readLines()
	if err != nil {
		return err
	}

	kept := make([]string, 0, len(lines))
	found := false
	for i, line := range lines {
		if !found && strings.TrimSpace(line) != "" && ParseTask(line, i+1).ID == task.ID {
			found = true
			continue
		}
		kept = append(kept, line)
	}
	if !found {
		return fmt.Errorf("task %s not found in %s", task.ID, f.TodoPath())
	}

	archived := task.Complete(now)
	if err := appendLine(f.ArchivePath(), archived.Serialize()); err != nil {
		return fmt.Errorf("append to archive: %w", err)
	}
	if err := f.rewrite(kept); err != nil {
		return fmt.Errorf("task %s was archived but could not be removed from %s, it now appears in both files: %w",
			task.ID, f.TodoPath(), err)
	}
	return nil
}

func (f *TaskFile) readLines() ([]string, error) {
	file, err := os.Open(f.TodoPath())
	if err != nil {
		return nil, fmt.Errorf("open task file: %w", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}
	return lines, nil
}

func (f *TaskFile) rewrite(lines []string) error {
	tempFile, err := os.CreateTemp(f.Dir, ".torudo-*.tmp")
	if err != nil {
		return err
	}
	tempPath := tempFile.Name()
	defer func() {
		tempFile.Close()
		os.Remove(tempPath)
	}()

	writer := bufio.NewWriter(tempFile)
	for _, line := range lines {
		if _, err := writer.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	if err := tempFile.Sync(); err != nil {
		return err
	}
	if err := tempFile.Close(); err != nil {
		return err
	}
	return os.Rename(tempPath, f.TodoPath())
}

func (f *TaskFile) touchDetail(id string) error {
	if err := os.MkdirAll(f.DetailDir(), 0755); err != nil {
		return fmt.Errorf("create detail dir: %w", err)
	}
	file, err := os.OpenFile(f.DetailPath(id), os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("create detail file: %w", err)
	}
	return file.Close()
}

func appendLine(path, line string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := file.WriteString(line + "\n"); err != nil {
		return err
	}
	return file.Sync()
}
