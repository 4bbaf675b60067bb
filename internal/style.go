package internal

import (
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("6"))

	columnTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("7"))

	activeColumnTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("3"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	selectedCardStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(lipgloss.Color("3")).
				Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1"))
)

// PriorityStyle colors the (A) marker like the original palette:
// A red, B yellow, C blue, everything else white.
func PriorityStyle(priority string) lipgloss.Style {
	var color lipgloss.Color
	switch priority {
	case "A":
		color = lipgloss.Color("1")
	case "B":
		color = lipgloss.Color("3")
	case "C":
		color = lipgloss.Color("4")
	default:
		color = lipgloss.Color("7")
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}

// projectPalette gives each project a stable color. The hex values are read
// by the HTTP view; the terminal board maps through lipgloss.
var projectPalette = []string{
	"#36b3d9", "#d98f36", "#8fd936", "#d93686",
	"#7a6ff0", "#36d9a8", "#d9d936", "#d95336",
}

func ProjectColorHex(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return projectPalette[h.Sum32()%uint32(len(projectPalette))]
}

func ProjectStyle(name string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ProjectColorHex(name)))
}
