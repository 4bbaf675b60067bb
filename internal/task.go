package internal

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// NoProject is the bucket name for tasks carrying no project tag.
const NoProject = "No Project"

// Task is one parsed line of the active todo.txt file.
type Task struct {
	Raw            string     `json:"-"`
	LineNumber     int        `json:"line_number"`
	Completed      bool       `json:"completed"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`
	CreationDate   *time.Time `json:"creation_date,omitempty"`
	Priority       string     `json:"priority,omitempty"`
	Projects       []string   `json:"projects,omitempty"`
	Contexts       []string   `json:"contexts,omitempty"`
	ID             string     `json:"id"`
	Title          string     `json:"title"`
}

// ParseTask parses a single todo.txt line. It is total: malformed input
// never fails, unrecognized leading tokens simply become part of the title.
func ParseTask(line string, lineNumber int) Task {
	task := Task{Raw: line, LineNumber: lineNumber}
	words := strings.Fields(line)
	i := 0

	if i < len(words) && words[i] == "x" {
		task.Completed = true
		i++
		if d, ok := parseDate(words, i); ok {
			task.CompletionDate = d
			i++
		}
		if d, ok := parseDate(words, i); ok {
			task.CreationDate = d
			i++
		}
		// A retained priority sits after the dates on completed lines.
		if p, ok := parsePriority(words, i); ok {
			task.Priority = p
			i++
		}
	} else {
		if p, ok := parsePriority(words, i); ok {
			task.Priority = p
			i++
		}
		if d, ok := parseDate(words, i); ok {
			task.CreationDate = d
			i++
		}
	}

	var title []string
	for ; i < len(words); i++ {
		word := words[i]
		switch {
		case len(word) > 1 && strings.HasPrefix(word, "+"):
			task.Projects = append(task.Projects, word[1:])
		case len(word) > 1 && strings.HasPrefix(word, "@"):
			task.Contexts = append(task.Contexts, word[1:])
		case len(word) > 3 && strings.HasPrefix(word, "id:"):
			task.ID = word[3:]
		default:
			title = append(title, word)
		}
	}
	task.Title = strings.Join(title, " ")

	return task
}

func parseDate(words []string, i int) (*time.Time, bool) {
	if i >= len(words) {
		return nil, false
	}
	d, err := time.Parse(dateLayout, words[i])
	if err != nil {
		return nil, false
	}
	return &d, true
}

func parsePriority(words []string, i int) (string, bool) {
	if i >= len(words) {
		return "", false
	}
	w := words[i]
	if len(w) == 3 && w[0] == '(' && w[2] == ')' && w[1] >= 'A' && w[1] <= 'Z' {
		return w[1:2], true
	}
	return "", false
}

// Serialize renders the task back into a todo.txt line. Round-trips through
// ParseTask are semantically identical; whitespace normalizes to single
// spaces. Completed lines put a retained priority after the dates.
func (t Task) Serialize() string {
	var parts []string
	if t.Completed {
		parts = append(parts, "x")
		if t.CompletionDate != nil {
			parts = append(parts, t.CompletionDate.Format(dateLayout))
		}
		if t.CreationDate != nil {
			parts = append(parts, t.CreationDate.Format(dateLayout))
		}
		if t.Priority != "" {
			parts = append(parts, "("+t.Priority+")")
		}
	} else {
		if t.Priority != "" {
			parts = append(parts, "("+t.Priority+")")
		}
		if t.CreationDate != nil {
			parts = append(parts, t.CreationDate.Format(dateLayout))
		}
	}
	if t.Title != "" {
		parts = append(parts, t.Title)
	}
	for _, p := range t.Projects {
		parts = append(parts, "+"+p)
	}
	for _, c := range t.Contexts {
		parts = append(parts, "@"+c)
	}
	if t.ID != "" {
		parts = append(parts, "id:"+t.ID)
	}
	return strings.Join(parts, " ")
}

// Complete returns the archived representation of the task: completed, with
// the completion date set to now and any priority repositioned by Serialize.
// The receiver is left untouched.
func (t Task) Complete(now time.Time) Task {
	done := t
	done.Completed = true
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	done.CompletionDate = &day
	done.Raw = done.Serialize()
	return done
}

// EnsureID assigns a fresh random identifier when the task has none and
// reports whether it did. Tasks loaded from disk must be written back before
// the identifier is used anywhere else.
func (t *Task) EnsureID() bool {
	if t.ID != "" {
		return false
	}
	t.ID = uuid.New().String()
	return true
}

// NewTask builds an incomplete task from a raw title line, picking up
// +project and @context tags and stamping the creation date.
func NewTask(line string, created time.Time) Task {
	task := ParseTask(line, 0)
	if task.CreationDate == nil {
		day := time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, time.UTC)
		task.CreationDate = &day
	}
	task.EnsureID()
	task.Raw = task.Serialize()
	return task
}
