package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Indicator glyphs prefixed to status lines
const (
	SuccessIndicator = "✔"
	ErrorIndicator   = "✗"
	WarningIndicator = "!"
	InfoIndicator    = "•"
	MissingIndicator = "○"
)

// Styles is the set of lipgloss styles bound to one renderer. Binding to a
// renderer lets output written to a pipe drop colors while the terminal keeps
// them.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style
	Code     lipgloss.Style
	Path     lipgloss.Style
	Bold     lipgloss.Style
	Italic   lipgloss.Style
}

// NewStyles builds the speculate styles for r from DefaultPalette. A nil
// renderer uses the lipgloss default renderer.
func NewStyles(r *lipgloss.Renderer) Styles {
	return NewStylesWithPalette(r, DefaultPalette)
}

// NewStylesWithPalette builds the styles for r from pal
func NewStylesWithPalette(r *lipgloss.Renderer, pal Palette) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Styles{
		Title:    r.NewStyle().Foreground(pal.Heading).Bold(true),
		Subtitle: r.NewStyle().Foreground(pal.Heading),
		Normal:   r.NewStyle().Foreground(pal.Body),
		Muted:    r.NewStyle().Foreground(pal.Hint),
		Success:  r.NewStyle().Foreground(pal.Done).Bold(true),
		Error:    r.NewStyle().Foreground(pal.Failed).Bold(true),
		Warning:  r.NewStyle().Foreground(pal.Attend).Bold(true),
		Info:     r.NewStyle().Foreground(pal.Neutral),
		Code:     r.NewStyle().Foreground(pal.Command),
		Path:     r.NewStyle().Foreground(pal.Path).Underline(true),
		Bold:     r.NewStyle().Bold(true),
		Italic:   r.NewStyle().Italic(true),
	}
}
