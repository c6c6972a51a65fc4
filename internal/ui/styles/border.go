package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Truncate cuts s to at most width cells, ending in an ellipsis when cut.
// ANSI sequences in s are preserved.
func Truncate(s string, width int) string {
	if width < 1 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	return truncate.StringWithTail(s, uint(width), Ellipsis) //nolint:gosec // width checked above
}

// Pane renders content inside a rounded border with the title embedded in
// the top edge: ╭─ Title ─────╮. Content lines are cut or padded to fit.
func Pane(content, title string, width, height int, focused bool) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		borderColor = BorderFocusColor
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)

	innerWidth := max(width-2, 1)
	innerHeight := max(height-2, 1)

	lines := strings.Split(content, "\n")
	body := make([]string, innerHeight)
	for i := range body {
		var line string
		if i < len(lines) {
			line = Truncate(lines[i], innerWidth)
		}
		if w := lipgloss.Width(line); w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}
		body[i] = borderStyle.Render(borderVertical) + line + borderStyle.Render(borderVertical)
	}

	var sb strings.Builder
	sb.WriteString(topBorder(title, innerWidth, borderStyle))
	sb.WriteString("\n")
	sb.WriteString(strings.Join(body, "\n"))
	sb.WriteString("\n")
	sb.WriteString(borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight))
	return sb.String()
}

func topBorder(title string, innerWidth int, borderStyle lipgloss.Style) string {
	// "─ " + title + " " + at least one "─"
	const chrome = 4
	if title == "" || innerWidth < chrome+1 {
		return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	}

	title = Truncate(title, innerWidth-chrome)
	rest := max(innerWidth-3-lipgloss.Width(title), 0)
	return borderStyle.Render(borderTopLeft+borderHorizontal+" ") +
		TitleStyle.Render(title) +
		borderStyle.Render(" "+strings.Repeat(borderHorizontal, rest)+borderTopRight)
}
