package internal

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// WrapText greedily wraps text on whitespace so no line exceeds width
// display columns. A single word wider than width keeps its own line
// unbroken; there is no mid-word splitting. The result always has at least
// one line.
func WrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}

	lines := make([]string, 0, 1)
	current := words[0]
	currentWidth := runewidth.StringWidth(words[0])
	for _, word := range words[1:] {
		w := runewidth.StringWidth(word)
		if currentWidth+1+w <= width {
			current += " " + word
			currentWidth += 1 + w
			continue
		}
		lines = append(lines, current)
		current = word
		currentWidth = w
	}
	return append(lines, current)
}

// RenderText is the text a card displays for a task: priority marker,
// title, then project and context tags.
func RenderText(t Task) string {
	var parts []string
	if t.Priority != "" {
		parts = append(parts, "("+t.Priority+")")
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
	return strings.Join(parts, " ")
}

// MeasureTask reports how many lines the task wraps to at the given width,
// both unclamped and clamped to maxHeight. Scrolling works off the true
// count; drawing uses the clamped one. Results are never cached, the caller
// re-measures whenever the width changes.
func MeasureTask(t Task, width, maxHeight int) (wrapped, rendered int) {
	wrapped = len(WrapText(RenderText(t), width))
	rendered = wrapped
	if maxHeight > 0 && rendered > maxHeight {
		rendered = maxHeight
	}
	if rendered < 1 {
		rendered = 1
	}
	return wrapped, rendered
}
