package app

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/linedit/internal/diff"
	"github.com/zjrosen/linedit/internal/editor"
	"github.com/zjrosen/linedit/internal/fileio"
	"github.com/zjrosen/linedit/internal/history"
	"github.com/zjrosen/linedit/internal/log"
	"github.com/zjrosen/linedit/internal/register"
	"github.com/zjrosen/linedit/internal/ui/toaster"
)

const diffContext = 3

// execute runs one command against the session and reports the outcome in
// the status line.
func (m Model) execute(c Command) (tea.Model, tea.Cmd) {
	if c.Verb != VerbQuit {
		m.confirmQuit = false
	}
	s := m.session

	switch c.Verb {
	case VerbInsert:
		pos, err := s.Insert(fileio.Terminated(c.Text), c.Pos)
		if err != nil {
			return m.fail(err)
		}
		return m.done(pos, fmt.Sprintf("inserted line %d", pos))

	case VerbDelete:
		if _, err := s.Delete(c.Pos); err != nil {
			return m.fail(err)
		}
		return m.done(c.Pos, fmt.Sprintf("deleted line %d", c.Pos))

	case VerbEdit:
		if err := s.Edit(c.Pos, fileio.Terminated(c.Text)); err != nil {
			return m.fail(err)
		}
		return m.done(c.Pos, fmt.Sprintf("edited line %d", c.Pos))

	case VerbCopy:
		clip := s.Copy(c.Pos, c.End)
		if clip.Empty() {
			return m.fail(fmt.Errorf("copy %d-%d: nothing in range", c.Pos, c.End))
		}
		cmd := m.notify("copied "+plural(clip.Len(), "line")+": "+preview(clip), toaster.StyleSuccess)
		return m, cmd

	case VerbCut:
		clip, err := s.Cut(c.Pos, c.End)
		if err != nil {
			return m.fail(err)
		}
		return m.done(c.Pos, "cut "+plural(clip.Len(), "line"))

	case VerbPaste:
		first, err := s.PasteRegister(c.Pos)
		if err != nil {
			return m.fail(err)
		}
		return m.done(first, fmt.Sprintf("pasted at line %d", first))

	case VerbReplace:
		n, err := s.FindAndReplace(c.Find, c.With)
		if err != nil {
			return m.fail(err)
		}
		if n == 0 {
			cmd := m.notify(fmt.Sprintf("%q not found", c.Find), toaster.StyleInfo)
			return m, cmd
		}
		return m.done(0, "replaced "+plural(n, "occurrence"))

	case VerbUndo, VerbRedo:
		return m.step(c)

	case VerbWrite:
		if err := s.Save(c.Path); err != nil {
			return m.fail(err)
		}
		m.refresh()
		cmd := m.notify(fmt.Sprintf("wrote %s (%s)", s.Path(), plural(s.Len(), "line")), toaster.StyleSuccess)
		return m, cmd

	case VerbDiff:
		return m.showDiff()

	case VerbHelp:
		m.screen = screenHelp
		m.page.SetContent(m.renderHelp() + "\n" + m.help.FullHelpView(m.keys.FullHelp()))
		m.page.GotoTop()
		return m, nil

	case VerbQuit:
		return m.quit(false)

	case VerbForceQuit:
		return m.quit(true)
	}
	return m, nil
}

// step runs undo or redo c.Count times, stopping at the first failure.
func (m Model) step(c Command) (tea.Model, tea.Cmd) {
	undo := c.Verb == VerbUndo
	verb := "redid"
	if undo {
		verb = "undid"
	}

	var last string
	n := 0
	for range max(c.Count, 1) {
		var rec history.Record
		var err error
		if undo {
			rec, err = m.session.Undo()
		} else {
			rec, err = m.session.Redo()
		}
		if err != nil {
			if n > 0 && (errors.Is(err, editor.ErrNothingToUndo) || errors.Is(err, editor.ErrNothingToRedo)) {
				break
			}
			m.refresh()
			return m.fail(err)
		}
		last = rec.String()
		n++
	}

	msg := verb + " " + last
	if n > 1 {
		msg = fmt.Sprintf("%s %d changes", verb, n)
	}
	return m.done(0, msg)
}

// done refreshes the document, scrolls line into view when positive and
// shows msg.
func (m Model) done(line int, msg string) (tea.Model, tea.Cmd) {
	m.screen = screenEditor
	m.refresh()
	if line > 0 {
		m.reveal(line)
	}
	log.Debug(log.CatUI, msg)
	cmd := m.notify(msg, toaster.StyleSuccess)
	return m, cmd
}

func (m Model) showDiff() (tea.Model, tea.Cmd) {
	path := m.session.Path()
	if path == "" {
		return m.fail(errors.New("diff: no file name"))
	}
	disk, err := fileio.Load(path, m.session.MaxLineLength())
	if err != nil {
		return m.fail(err)
	}
	out := diff.Unified(path, path+" (buffer)", disk, m.session.Lines(), diffContext)
	if out == "" {
		cmd := m.notify("no changes against "+path, toaster.StyleInfo)
		return m, cmd
	}
	m.screen = screenDiff
	m.page.SetContent(colorizeDiff(out))
	m.page.GotoTop()
	return m, nil
}

func (m Model) quit(force bool) (tea.Model, tea.Cmd) {
	if !force && m.session.Dirty() && !m.confirmQuit {
		m.confirmQuit = true
		cmd := m.notify("unsaved changes: w to write, q again or q! to discard", toaster.StyleWarn)
		return m, cmd
	}
	m.quitting = true
	return m, tea.Quit
}

// preview shows the first copied line for the status message.
func preview(clip register.Clip) string {
	first := strings.TrimSuffix(clip.Lines[0], "\n")
	if clip.Len() > 1 {
		first += " …"
	}
	return fmt.Sprintf("%q", first)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
