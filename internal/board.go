package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// fileChangedMsg is delivered when the watcher sees the active file change.
type fileChangedMsg struct{}

// Board is the bubbletea model for the project-column view. All state
// transitions run to completion inside Update; the watcher goroutine only
// ever feeds messages through the program loop, so the task snapshot is
// never mutated concurrently.
type Board struct {
	file     *TaskFile
	notifier Notifier
	logger   *log.Logger
	changes  <-chan struct{}

	buckets    []ProjectBucket
	column     int
	row        int
	selectedID string
	scroll     int

	width         int
	height        int
	maxCardHeight int

	creating bool
	input    textinput.Model
	status   string
}

func NewBoard(file *TaskFile, tasks []Task, notifier Notifier, logger *log.Logger, changes <-chan struct{}, maxCardHeight int) Board {
	input := textinput.New()
	input.Placeholder = "task title +project @context"
	input.CharLimit = 0

	b := Board{
		file:          file,
		notifier:      notifier,
		logger:        logger,
		changes:       changes,
		maxCardHeight: maxCardHeight,
		input:         input,
	}
	b.buckets = BuildProjectIndex(tasks)
	b.syncSelection()
	return b
}

func (b Board) Init() tea.Cmd {
	return b.waitForChange()
}

func (b Board) waitForChange() tea.Cmd {
	if b.changes == nil {
		return nil
	}
	ch := b.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

func (b Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Heights are remeasured in View at the new width; the cursor
		// does not move on resize.
		b.width = msg.Width
		b.height = msg.Height
		b.ensureVisible()
		return b, nil

	case fileChangedMsg:
		b.logger.Debug("active file changed on disk")
		b.reload()
		return b, b.waitForChange()

	case tea.KeyMsg:
		if b.creating {
			return b.updateCreate(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return b, tea.Quit

		case "up", "k":
			b.moveVertical(-1)
		case "down", "j":
			b.moveVertical(1)
		case "left", "h":
			b.moveHorizontal(-1)
		case "right", "l":
			b.moveHorizontal(1)

		case "g":
			b.row = 0
			b.scroll = 0
			b.syncSelection()
		case "G":
			if n := b.columnLen(b.column); n > 0 {
				b.row = n - 1
				b.ensureVisible()
				b.syncSelection()
			}

		case "x":
			b.completeCurrent()

		case "r":
			b.logger.Debug("manual reload requested")
			b.reload()

		case "c":
			b.creating = true
			b.input.SetValue("")
			return b, b.input.Focus()
		}
	}

	return b, nil
}

func (b Board) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := strings.TrimSpace(b.input.Value())
		b.creating = false
		b.input.Blur()
		if title == "" {
			return b, nil
		}
		task := NewTask(title, time.Now())
		if err := b.file.Append(task); err != nil {
			b.status = err.Error()
			b.logger.Error("append task failed", "err", err)
			return b, nil
		}
		b.selectedID = task.ID
		b.reload()
		return b, nil

	case "esc":
		b.creating = false
		b.input.Blur()
		return b, nil
	}

	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return b, cmd
}

func (b *Board) columnLen(col int) int {
	if col < 0 || col >= len(b.buckets) {
		return 0
	}
	return len(b.buckets[col].Tasks)
}

// CurrentTask resolves the cursor to a task, or nil over an empty board.
func (b *Board) CurrentTask() *Task {
	if b.column >= 0 && b.column < len(b.buckets) {
		tasks := b.buckets[b.column].Tasks
		if b.row >= 0 && b.row < len(tasks) {
			return &tasks[b.row]
		}
	}
	return nil
}

func (b *Board) moveVertical(delta int) {
	row := b.row + delta
	if row < 0 || row >= b.columnLen(b.column) {
		return
	}
	b.row = row
	b.ensureVisible()
	b.syncSelection()
}

func (b *Board) moveHorizontal(delta int) {
	col := b.column + delta
	if col < 0 || col >= len(b.buckets) {
		return
	}
	b.column = col
	// Entering a shorter column clamps the row to its last card.
	if n := b.columnLen(col); b.row >= n {
		b.row = n - 1
		if b.row < 0 {
			b.row = 0
		}
	}
	b.scroll = 0
	b.ensureVisible()
	b.syncSelection()
}

// syncSelection fires the editor notification when the resolved task
// identity changed. Moves that land on the same task stay silent.
func (b *Board) syncSelection() {
	var id string
	if task := b.CurrentTask(); task != nil {
		id = task.ID
	}
	if id == b.selectedID {
		return
	}
	b.selectedID = id
	if id == "" || b.notifier == nil {
		return
	}
	if err := b.notifier.OpenTask(id); err != nil {
		b.logger.Debug("editor notify failed", "err", err)
	}
}

func (b *Board) completeCurrent() {
	task := b.CurrentTask()
	if task == nil {
		return
	}
	if err := b.file.Complete(*task, time.Now()); err != nil {
		b.status = err.Error()
		b.logger.Error("complete failed", "id", task.ID, "err", err)
		return
	}
	b.logger.Debug("completed task", "id", task.ID)
	b.reload()
}

// reload replaces the task snapshot wholesale. On failure the last-good
// snapshot stays on screen with the error in the status line.
func (b *Board) reload() {
	tasks, err := b.file.Load()
	if err != nil {
		b.status = err.Error()
		b.logger.Error("reload failed", "err", err)
		return
	}
	b.status = ""
	b.setTasks(tasks)
}

// setTasks rebuilds the index and re-resolves the cursor by task identity,
// preferring the column it was on; a vanished task falls back to clamping.
func (b *Board) setTasks(tasks []Task) {
	b.buckets = BuildProjectIndex(tasks)
	if col, row, ok := FindTask(b.buckets, b.selectedID, b.column); ok {
		b.column, b.row = col, row
	} else {
		b.clampCursor()
	}
	b.ensureVisible()
	b.syncSelection()
}

func (b *Board) clampCursor() {
	if len(b.buckets) == 0 {
		b.column, b.row, b.scroll = 0, 0, 0
		return
	}
	if b.column >= len(b.buckets) {
		b.column = len(b.buckets) - 1
	}
	if b.column < 0 {
		b.column = 0
	}
	if n := b.columnLen(b.column); b.row >= n {
		b.row = n - 1
	}
	if b.row < 0 {
		b.row = 0
	}
}

// layout geometry

const (
	chromeHeight  = 4 // title, blank, status, help
	cardChrome    = 2 // card borders
	minTextWidth  = 10
	defaultWidth  = 80
	defaultHeight = 24
)

func (b *Board) boardWidth() int {
	if b.width > 0 {
		return b.width
	}
	return defaultWidth
}

func (b *Board) boardHeight() int {
	if b.height > 0 {
		return b.height
	}
	return defaultHeight
}

func (b *Board) columnWidth() int {
	n := len(b.buckets)
	if n == 0 {
		n = 1
	}
	return b.boardWidth() / n
}

// textWidth is the wrapping width available inside a card.
func (b *Board) textWidth() int {
	w := b.columnWidth() - cardChrome - 2 // borders plus padding
	if w < minTextWidth {
		w = minTextWidth
	}
	return w
}

// cardHeights returns the rendered (clamped) heights of each card in a
// column, borders included.
func (b *Board) cardHeights(col int) []int {
	if col < 0 || col >= len(b.buckets) {
		return nil
	}
	tasks := b.buckets[col].Tasks
	heights := make([]int, len(tasks))
	for i, t := range tasks {
		_, rendered := MeasureTask(t, b.textWidth(), b.maxCardHeight)
		heights[i] = rendered + cardChrome
	}
	return heights
}

// ensureVisible scrolls the active column so the selected card fits inside
// the body area.
func (b *Board) ensureVisible() {
	heights := b.cardHeights(b.column)
	avail := b.boardHeight() - chromeHeight - 1 // column title line
	if avail <= 0 || len(heights) == 0 {
		b.scroll = 0
		return
	}
	if b.row < b.scroll {
		b.scroll = b.row
	}
	for b.scroll < b.row {
		total := 0
		for i := b.scroll; i <= b.row; i++ {
			total += heights[i]
		}
		if total <= avail {
			break
		}
		b.scroll++
	}
	if b.scroll < 0 {
		b.scroll = 0
	}
}

func (b Board) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("torudo") + "\n\n")

	if len(b.buckets) == 0 {
		s.WriteString("No tasks. Press c to create one.\n")
	} else {
		columns := make([]string, len(b.buckets))
		for col := range b.buckets {
			columns[col] = b.renderColumn(col)
		}
		s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
		s.WriteString("\n")
	}

	if b.creating {
		s.WriteString("\nNew task: " + b.input.View())
		s.WriteString("\n" + helpStyle.Render("enter: create • esc: cancel"))
	} else {
		if b.status != "" {
			s.WriteString("\n" + errorStyle.Render(b.status))
		}
		s.WriteString("\n" + helpStyle.Render("j/k: move • h/l: column • x: complete • c: create • r: reload • q: quit"))
	}
	return s.String()
}

func (b Board) renderColumn(col int) string {
	bucket := b.buckets[col]
	colWidth := b.columnWidth()
	textWidth := b.textWidth()

	title := fmt.Sprintf("%s (%d)", bucket.Name, len(bucket.Tasks))
	titleLine := columnTitleStyle.Render(title)
	if col == b.column {
		titleLine = activeColumnTitleStyle.Render("▶ " + title)
	} else if bucket.Name != NoProject {
		titleLine = ProjectStyle(bucket.Name).Bold(true).Render(title)
	}

	start := 0
	if col == b.column {
		start = b.scroll
	}

	parts := []string{titleLine}
	if start > 0 {
		parts = append(parts, helpStyle.Render(fmt.Sprintf("↑ %d more", start)))
	}

	avail := b.boardHeight() - chromeHeight - 1
	used := 0
	shown := 0
	for i := start; i < len(bucket.Tasks); i++ {
		task := bucket.Tasks[i]
		lines := WrapText(RenderText(task), textWidth)
		_, rendered := MeasureTask(task, textWidth, b.maxCardHeight)
		if used+rendered+cardChrome > avail && shown > 0 {
			parts = append(parts, helpStyle.Render(fmt.Sprintf("↓ %d more", len(bucket.Tasks)-i)))
			break
		}
		lines = lines[:rendered]
		if marker := "(" + task.Priority + ")"; task.Priority != "" && strings.HasPrefix(lines[0], marker) {
			lines[0] = PriorityStyle(task.Priority).Render(marker) + lines[0][len(marker):]
		}
		body := strings.Join(lines, "\n")
		style := cardStyle
		if col == b.column && i == b.row {
			style = selectedCardStyle
		}
		parts = append(parts, style.Width(textWidth+2).Render(body))
		used += rendered + cardChrome
		shown++
	}

	column := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return lipgloss.NewStyle().Width(colWidth).Render(column)
}
