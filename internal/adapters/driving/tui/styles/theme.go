// Package styles holds the colours used by the fetch dashboard and the
// command output.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme maps entry outcomes and dashboard parts to colours.
type Theme struct {
	// Accent colours headings, the spinner and the start of the progress bar.
	Accent lipgloss.Color
	// ProgressEnd is the far end of the progress bar gradient.
	ProgressEnd lipgloss.Color

	Detail lipgloss.Color
	OK     lipgloss.Color
	// Skipped marks entries that were not attempted or could not be placed.
	Skipped lipgloss.Color
	Failed  lipgloss.Color

	StatusBackground lipgloss.Color
}

// DefaultTheme returns the colours used on a terminal.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:           "#7C3AED",
		ProgressEnd:      "#06B6D4",
		Detail:           "#6C7086",
		OK:               "#A6E3A1",
		Skipped:          "#F9E2AF",
		Failed:           "#F38BA8",
		StatusBackground: "#181825",
	}
}

// Styles are the lipgloss styles built from a Theme.
type Styles struct {
	theme *Theme

	Heading lipgloss.Style
	// Progress renders the running count in the status bar.
	Progress lipgloss.Style
	// Detail renders paths, dates and hints.
	Detail  lipgloss.Style
	OK      lipgloss.Style
	Skipped lipgloss.Style
	Failed  lipgloss.Style

	StatusBar lipgloss.Style
	Help      lipgloss.Style
}

// NewStyles creates styles from a theme. A nil theme uses DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	return &Styles{
		theme:     theme,
		Heading:   fg(theme.Accent).Bold(true),
		Progress:  fg(theme.ProgressEnd),
		Detail:    fg(theme.Detail),
		OK:        fg(theme.OK),
		Skipped:   fg(theme.Skipped),
		Failed:    fg(theme.Failed).Bold(true),
		StatusBar: fg(theme.Detail).Background(theme.StatusBackground).Padding(0, 1),
		Help:      fg(theme.Detail).Italic(true),
	}
}

// PlainStyles returns styles that render text unchanged, for output that
// is not a terminal.
func PlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		theme:     DefaultTheme(),
		Heading:   plain,
		Progress:  plain,
		Detail:    plain,
		OK:        plain,
		Skipped:   plain,
		Failed:    plain,
		StatusBar: plain,
		Help:      plain,
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
