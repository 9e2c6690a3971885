// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/changelog-migrate/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/changelog-migrate/internal/adapters/driving/tui/styles"
)

// State represents the fetch state shown in the bar.
type State string

const (
	StateFetching   State = "fetching"
	StateCancelling State = "cancelling"
	StateDone       State = "done"
	StateError      State = "error"
)

// Bar displays fetch status and keybinding hints.
type Bar struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	state     State
	message   string
	processed int
	total     int
	width     int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateFetching,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateCancelling:
		return s.styles.Skipped.Render("Cancelling...")
	case StateError:
		if s.message != "" {
			return s.styles.Failed.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Failed.Render("Error")
	case StateDone:
		if s.message != "" {
			return s.styles.OK.Render(s.message)
		}
		return s.styles.OK.Render("Done")
	case StateFetching:
		if s.total > 0 {
			return s.styles.Progress.Render(fmt.Sprintf("Fetching %d/%d", s.processed, s.total))
		}
	}
	return s.styles.Detail.Render("Reading feed...")
}

// renderRight renders keybinding hints. They are hidden once the run is
// over.
func (s *Bar) renderRight() string {
	if s.state == StateDone || s.state == StateError {
		return ""
	}

	bindings := s.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		hints = append(hints, hintFor(b))
	}
	return s.styles.Detail.Render(strings.Join(hints, " | "))
}

func hintFor(b key.Binding) string {
	h := b.Help()
	return fmt.Sprintf("%s: %s", h.Key, h.Desc)
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the message shown for the done and error states.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetProgress records how many of total entries have been processed.
func (s *Bar) SetProgress(processed, total int) {
	s.processed = processed
	s.total = total
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}
