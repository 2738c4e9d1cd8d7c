package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorSuccess = lipgloss.Color("34")  // Green
	ColorWarning = lipgloss.Color("214") // Orange
	ColorError   = lipgloss.Color("196") // Red
	ColorMuted   = lipgloss.Color("240") // Dark gray
)

// Styles for console status output.
var (
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	MutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Status marks used as line prefixes.
const (
	MarkSuccess = "✓"
	MarkWarning = "✗"
	MarkDone    = "✅"
	MarkError   = "❌"
)

// Palette renders status marks, styled or plain.
type Palette struct {
	color bool
}

// NewPalette returns a Palette that applies styles only when color is true.
func NewPalette(color bool) Palette {
	return Palette{color: color}
}

func (p Palette) render(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

// Success renders the success mark.
func (p Palette) Success() string { return p.render(SuccessStyle, MarkSuccess) }

// Warning renders the warning mark.
func (p Palette) Warning() string { return p.render(WarningStyle, MarkWarning) }

// Done renders the completion mark.
func (p Palette) Done() string { return p.render(SuccessStyle, MarkDone) }

// Error renders the error mark.
func (p Palette) Error() string { return p.render(ErrorStyle, MarkError) }

// Muted renders de-emphasized text.
func (p Palette) Muted(s string) string { return p.render(MutedStyle, s) }
