// Package toaster shows short-lived status notices in the status line.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/linedit/internal/ui/styles"
)

// DefaultDuration is how long a notice stays up.
const DefaultDuration = 3 * time.Second

// Style determines the visual appearance of the toast.
type Style int

const (
	// StyleSuccess shows ✓ in green.
	StyleSuccess Style = iota
	// StyleError shows ✗ in red.
	StyleError
	// StyleInfo shows • in blue.
	StyleInfo
	// StyleWarn shows ! in yellow.
	StyleWarn
)

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	seq     int
}

// New creates a new toaster model.
func New() Model {
	return Model{}
}

// Show displays a toast and returns the command that dismisses it after d.
// A later Show supersedes the pending dismissal of an earlier one.
func (m Model) Show(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m.message = message
	m.style = style
	m.visible = true
	m.seq++
	return m, ScheduleDismiss(m.seq, d)
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Visible returns whether the toast is currently showing.
func (m Model) Visible() bool {
	return m.visible
}

// Message returns the current text, empty when hidden.
func (m Model) Message() string {
	return m.message
}

// Update hides the toast when its own DismissMsg arrives.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.seq == m.seq {
		return m.Hide()
	}
	return m
}

// View renders the toast as a single line.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	var color lipgloss.TerminalColor
	var icon string
	switch m.style {
	case StyleError:
		color, icon = styles.StatusErrorColor, "✗"
	case StyleInfo:
		color, icon = styles.StatusInfoColor, "•"
	case StyleWarn:
		color, icon = styles.StatusWarningColor, "!"
	default: // StyleSuccess
		color, icon = styles.StatusSuccessColor, "✓"
	}
	return lipgloss.NewStyle().Foreground(color).Render(icon + " " + m.message)
}

// DismissMsg signals that the toast shown with the same sequence number
// should be dismissed.
type DismissMsg struct {
	seq int
}

// ScheduleDismiss returns a command that dismisses toast seq after a duration.
func ScheduleDismiss(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return DismissMsg{seq: seq}
	})
}
