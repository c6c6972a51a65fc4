// Package logpane shows recent log lines in a pane under the document.
package logpane

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/linedit/internal/log"
	"github.com/zjrosen/linedit/internal/seq"
	"github.com/zjrosen/linedit/internal/ui/styles"
)

// DefaultCapacity is the number of lines kept when none is given.
const DefaultCapacity = 500

// Model is the log pane component state.
type Model struct {
	lines    *seq.List[string]
	capacity int
	visible  bool
	minLevel log.Level
	width    int
	height   int
	viewport viewport.Model
}

// New creates a hidden pane keeping the newest capacity lines.
func New(capacity int) Model {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return Model{
		lines:    seq.New[string](),
		capacity: capacity,
		minLevel: log.LevelDebug,
	}
}

// Append adds one log line, dropping the oldest past capacity.
func (m *Model) Append(line string) {
	m.lines.PushBack(strings.TrimSuffix(line, "\n"))
	for m.lines.Len() > m.capacity {
		m.lines.PopFront()
	}
	m.refresh()
}

// Len returns the number of lines held.
func (m Model) Len() int {
	return m.lines.Len()
}

// Update handles filter and scroll keys while the pane is visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "alt+c":
			m.lines.Clear()
		case "alt+d":
			m.minLevel = log.LevelDebug
		case "alt+i":
			m.minLevel = log.LevelInfo
		case "alt+w":
			m.minLevel = log.LevelWarn
		case "alt+e":
			m.minLevel = log.LevelError
		case "alt+up":
			m.viewport.ScrollUp(1)
			return m, nil
		case "alt+down":
			m.viewport.ScrollDown(1)
			return m, nil
		default:
			return m, nil
		}
		m.refresh()
	}
	return m, nil
}

// View renders the pane, or nothing when hidden.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	title := "Log ≥ " + m.minLevel.String()
	return styles.Pane(m.viewport.View(), title, m.width, m.height, false)
}

// Visible returns whether the pane is shown.
func (m Model) Visible() bool {
	return m.visible
}

// Toggle shows or hides the pane.
func (m *Model) Toggle() {
	m.visible = !m.visible
	m.refresh()
}

// SetSize sets the outer size of the pane including its border.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.refresh()
}

// MinLevel returns the current filter level.
func (m Model) MinLevel() log.Level {
	return m.minLevel
}

func (m *Model) refresh() {
	if m.width < 3 || m.height < 3 {
		return
	}
	if m.viewport.Width != m.width-2 || m.viewport.Height != m.height-2 {
		m.viewport = viewport.New(m.width-2, m.height-2)
	}
	m.viewport.SetContent(m.content())
	m.viewport.GotoBottom()
}

func (m Model) content() string {
	var out []string
	for _, entry := range m.lines.All() {
		level, known := levelOf(entry)
		if known && level < m.minLevel {
			continue
		}
		out = append(out, colorize(fit(entry, m.viewport.Width), level, known))
	}
	if len(out) == 0 {
		return styles.HintStyle.Render("No logs to display")
	}
	return strings.Join(out, "\n")
}

func levelOf(entry string) (log.Level, bool) {
	for _, level := range []log.Level{log.LevelError, log.LevelWarn, log.LevelInfo, log.LevelDebug} {
		if strings.Contains(entry, "["+level.String()+"]") {
			return level, true
		}
	}
	return log.LevelDebug, false
}

// fit cuts entry to width cells, ANSI-aware.
func fit(entry string, width int) string {
	if width > 1 && ansi.StringWidth(entry) > width {
		return ansi.Truncate(entry, width, "…")
	}
	return entry
}

func colorize(entry string, level log.Level, known bool) string {
	color := styles.TextPrimaryColor
	if known {
		switch level {
		case log.LevelError:
			color = styles.StatusErrorColor
		case log.LevelWarn:
			color = styles.StatusWarningColor
		case log.LevelInfo:
			color = styles.StatusInfoColor
		default:
			color = styles.TextMutedColor
		}
	}
	return lipgloss.NewStyle().Foreground(color).Render(entry)
}
