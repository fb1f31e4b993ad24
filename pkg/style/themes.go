package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette maps each role in speculate's output to a color. Printer uses the
// roles as follows: Heading for section titles such as "Speculate Status",
// Path for project files and directories (CLAUDE.md, docs/,
// .cursor/rules/), Command for commands the user is told to run, and the
// outcome roles for the indicator glyph of a status line.
type Palette struct {
	Heading lipgloss.AdaptiveColor
	Path    lipgloss.AdaptiveColor
	Command lipgloss.AdaptiveColor
	Body    lipgloss.AdaptiveColor
	Hint    lipgloss.AdaptiveColor

	Done    lipgloss.AdaptiveColor
	Failed  lipgloss.AdaptiveColor
	Attend  lipgloss.AdaptiveColor
	Neutral lipgloss.AdaptiveColor
}

// DefaultPalette is used by NewStyles
var DefaultPalette = Palette{
	Heading: lipgloss.AdaptiveColor{Light: "#5B3FA8", Dark: "#B9A3FF"},
	Path:    lipgloss.AdaptiveColor{Light: "#1F6F8B", Dark: "#7FD1E8"},
	Command: lipgloss.AdaptiveColor{Light: "#8A4B08", Dark: "#F2B872"},
	Body:    lipgloss.AdaptiveColor{Light: "#3C4048", Dark: "#E4E6EB"},
	Hint:    lipgloss.AdaptiveColor{Light: "#747A84", Dark: "#9AA0AA"},

	Done:    lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#6FD38A"},
	Failed:  lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#FF7A85"},
	Attend:  lipgloss.AdaptiveColor{Light: "#A66A00", Dark: "#FFCF5C"},
	Neutral: lipgloss.AdaptiveColor{Light: "#3D5AFE", Dark: "#8C9EFF"},
}
