package app

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/linedit/internal/ui/styles"
)

// refresh re-renders the document and keeps the scroll position.
func (m *Model) refresh() {
	offset := m.doc.YOffset
	m.doc.SetContent(m.renderDocument())
	m.doc.SetYOffset(offset)
}

// reveal scrolls so that line (1-based) is visible.
func (m *Model) reveal(line int) {
	row := line - 1
	if row < m.doc.YOffset || row >= m.doc.YOffset+m.doc.Height {
		m.doc.SetYOffset(max(row-m.doc.Height/2, 0))
	}
}

func (m Model) renderDocument() string {
	lines := m.session.Lines()
	if len(lines) == 0 {
		return styles.HintStyle.Render("(empty buffer)")
	}

	digits := len(strconv.Itoa(len(lines)))
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if m.cfg.UI.ShowLineNumbers {
			sb.WriteString(styles.GutterStyle.Render(fmt.Sprintf("%*d │ ", digits, i+1)))
		}
		sb.WriteString(strings.TrimRight(line, "\r\n"))
	}
	return sb.String()
}

func (m Model) renderHistory(width, height int) string {
	done, undone := m.session.Depth()
	var sb strings.Builder
	sb.WriteString(styles.HintStyle.Render(fmt.Sprintf("undo %d · redo %d", done, undone)))

	for i, rec := range m.session.History(min(historyShown, max(height-3, 1))) {
		sb.WriteByte('\n')
		text := styles.Truncate(fmt.Sprintf("%d. %s", i+1, rec), width-2)
		if i == 0 {
			sb.WriteString(styles.HistoryTopStyle.Render(text))
		} else {
			sb.WriteString(styles.HistoryStyle.Render(text))
		}
	}
	if done == 0 {
		sb.WriteByte('\n')
		sb.WriteString(styles.HintStyle.Render("no changes yet"))
	}
	return sb.String()
}

func (m Model) title() string {
	name := "[No Name]"
	if p := m.session.Path(); p != "" {
		name = filepath.Base(p)
	}
	title := fmt.Sprintf("%s · %s", name, plural(m.session.Len(), "line"))
	if m.session.Dirty() {
		title += " " + styles.DirtyStyle.Render("[+]")
	}
	return title
}

// colorizeDiff styles unified diff output line by line.
func colorizeDiff(out string) string {
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = styles.TitleStyle.Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = styles.DiffHunkStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = styles.DiffAddStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = styles.DiffDeleteStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "loading…"
	}

	bodyHeight := m.doc.Height + 2
	var body string
	switch m.screen {
	case screenHelp:
		body = styles.Pane(m.page.View(), "Help · esc to close", m.width, bodyHeight, true)
	case screenDiff:
		body = styles.Pane(m.page.View(), "Diff · esc to close", m.width, bodyHeight, true)
	default:
		docWidth := m.doc.Width + 2
		body = styles.Pane(m.doc.View(), m.title(), docWidth, bodyHeight, true)
		if m.historyVisible() {
			history := styles.Pane(m.renderHistory(historyPaneWidth, bodyHeight), "History", historyPaneWidth, bodyHeight, false)
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, history)
		}
	}

	parts := []string{body}
	if m.logPane.Visible() {
		parts = append(parts, m.logPane.View())
	}
	parts = append(parts, m.statusLine(), m.input.View(), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) statusLine() string {
	if m.toaster.Visible() {
		return styles.StatusBarStyle.Render(styles.Truncate(m.toaster.View(), max(m.width-2, 1)))
	}
	done, undone := m.session.Depth()
	status := fmt.Sprintf("%d undo · %d redo", done, undone)
	if m.session.Dirty() {
		status += " · modified"
	}
	return styles.StatusBarStyle.Render(styles.HintStyle.Render(status))
}
