package console

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Neon palette (ANSI 256).
const (
	ColorMagenta = "201"
	ColorCyan    = "51"
	ColorWhite   = "255"
	ColorGray    = "244"
	ColorRed     = "196"
)

// Styles holds every style the console renders with.
type Styles struct {
	Banner  lipgloss.Style
	Section lipgloss.Style
	Accent  lipgloss.Style
	Key     lipgloss.Style
	Value   lipgloss.Style
	Dim     lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

// DefaultStyles returns the coloured neon theme.
func DefaultStyles() Styles {
	return Styles{
		Banner: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorCyan)).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(ColorMagenta)).
			Padding(0, 2),
		Section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorCyan)),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMagenta)),
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorCyan)),
		Value:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWhite)),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorCyan)),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorRed)),
	}
}

// NoColorStyles returns unstyled components for plain output. The banner
// keeps its frame.
func NoColorStyles() Styles {
	return Styles{
		Banner:  lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(0, 2),
		Section: lipgloss.NewStyle(),
		Accent:  lipgloss.NewStyle(),
		Key:     lipgloss.NewStyle(),
		Value:   lipgloss.NewStyle(),
		Dim:     lipgloss.NewStyle(),
		Success: lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
	}
}

// GetStyles returns the appropriate styles based on color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}

// IsTTY checks if output is a terminal.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// DetectNoColor reports whether colour should be disabled for w: the
// NO_COLOR convention is honoured and non-terminals are never coloured.
func DetectNoColor(w io.Writer) bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return !IsTTY(w)
}
