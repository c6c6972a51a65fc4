// Package app contains the root application model.
package app

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/linedit/internal/config"
	"github.com/zjrosen/linedit/internal/diff"
	"github.com/zjrosen/linedit/internal/editor"
	"github.com/zjrosen/linedit/internal/fileio"
	"github.com/zjrosen/linedit/internal/keys"
	"github.com/zjrosen/linedit/internal/log"
	"github.com/zjrosen/linedit/internal/pubsub"
	"github.com/zjrosen/linedit/internal/ui/logpane"
	"github.com/zjrosen/linedit/internal/ui/markdown"
	"github.com/zjrosen/linedit/internal/ui/styles"
	"github.com/zjrosen/linedit/internal/ui/toaster"
	"github.com/zjrosen/linedit/internal/watcher"
)

// screen selects what the main area shows.
type screen int

const (
	screenEditor screen = iota
	screenHelp
	screenDiff
)

const (
	historyPaneWidth = 36
	historyMinWidth  = 72 // below this the history pane is hidden
	logPaneHeight    = 8
	footerHeight     = 3 // status, prompt, key help
	historyShown     = 50
)

// externalChangeMsg reports that the file changed on disk.
type externalChangeMsg struct{}

// Model is the root application state.
type Model struct {
	session *editor.Session
	cfg     config.Config
	keys    keys.KeyMap

	input   textinput.Model
	doc     viewport.Model
	page    viewport.Model // help and diff screens
	help    help.Model
	toaster toaster.Model
	logPane logpane.Model

	helpRenderer  *markdown.Renderer
	toastDuration time.Duration

	screen      screen
	showHistory bool
	confirmQuit bool
	quitting    bool

	width  int
	height int

	ctx         context.Context
	cancel      context.CancelFunc
	changes     *pubsub.Listener[editor.Change]
	logListener *log.LogListener

	watcherHandle *watcher.Watcher
	watchCh       <-chan struct{}
}

// New creates the application model for s. changes, when non-nil, is the
// broker s publishes its Change events on. The file watcher starts here
// when enabled and s has a path; call Close when the program ends.
func New(s *editor.Session, changes pubsub.Subscriber[editor.Change], cfg config.Config) Model {
	ctx, cancel := context.WithCancel(context.Background())

	input := textinput.New()
	input.Prompt = ": "
	input.PromptStyle = styles.PromptStyle
	input.Placeholder = "i 1 text · ? for help"
	input.Focus()

	m := Model{
		session:       s,
		cfg:           cfg,
		keys:          keys.DefaultKeyMap(),
		input:         input,
		doc:           viewport.New(0, 0),
		page:          viewport.New(0, 0),
		help:          help.New(),
		toaster:       toaster.New(),
		toastDuration: toaster.DefaultDuration,
		logPane:       logpane.New(logpane.DefaultCapacity),
		showHistory:   cfg.UI.ShowHistory,
		ctx:           ctx,
		cancel:        cancel,
		logListener:   log.NewListener(ctx),
	}
	if changes != nil {
		m.changes = pubsub.NewListener(ctx, changes)
	}

	if cfg.Watch.Enabled && s.Path() != "" {
		w, err := watcher.New(watcher.Config{Path: s.Path(), Debounce: cfg.Watch.Debounce})
		if err == nil {
			if ch, err := w.Start(); err == nil {
				m.watcherHandle = w
				m.watchCh = ch
			} else {
				log.Warn(log.CatWatcher, "watcher not started", "error", err)
				_ = w.Stop()
			}
		}
		// The editor works without change notices.
	}
	return m
}

// Close stops the watcher and all listeners.
func (m Model) Close() {
	m.cancel()
	if m.watcherHandle != nil {
		_ = m.watcherHandle.Stop()
	}
}

// Session returns the edited session.
func (m Model) Session() *editor.Session {
	return m.session
}

// Init implements tea.Model interface.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.changes != nil {
		cmds = append(cmds, m.changes.Listen())
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	if m.watchCh != nil {
		cmds = append(cmds, waitForChange(m.ctx, m.watchCh))
	}
	return tea.Batch(cmds...)
}

func waitForChange(ctx context.Context, ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			return externalChangeMsg{}
		}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refresh()
		return m, nil

	case pubsub.Event[editor.Change]:
		m.refresh()
		return m, m.changes.Listen()

	case log.LogEvent:
		m.logPane.Append(msg.Payload)
		return m, m.logListener.Listen()

	case externalChangeMsg:
		cmd := m.checkExternal()
		return m, tea.Batch(cmd, waitForChange(m.ctx, m.watchCh))

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.logPane.Visible() && msg.Alt {
		var cmd tea.Cmd
		m.logPane, cmd = m.logPane.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit(false)

	case key.Matches(msg, m.keys.Escape):
		if m.screen != screenEditor {
			m.screen = screenEditor
			return m, nil
		}
		m.input.Reset()
		m.confirmQuit = false
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.active().PageUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.active().PageDown()
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.active().GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.active().GotoBottom()
		return m, nil

	case key.Matches(msg, m.keys.Undo):
		return m.execute(Command{Verb: VerbUndo, Count: 1})
	case key.Matches(msg, m.keys.Redo):
		return m.execute(Command{Verb: VerbRedo, Count: 1})
	case key.Matches(msg, m.keys.Save):
		return m.execute(Command{Verb: VerbWrite})
	case key.Matches(msg, m.keys.Diff):
		return m.execute(Command{Verb: VerbDiff})

	case key.Matches(msg, m.keys.ToggleHistory):
		m.showHistory = !m.showHistory
		m.layout()
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.ToggleLog):
		m.logPane.Toggle()
		m.layout()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Help) && m.input.Value() == "":
		return m.execute(Command{Verb: VerbHelp})

	case key.Matches(msg, m.keys.Submit):
		line := m.input.Value()
		if line == "" {
			return m, nil
		}
		c, err := ParseCommand(line)
		if err != nil {
			return m.fail(err)
		}
		m.input.Reset()
		return m.execute(c)
	}

	if m.screen != screenEditor {
		m.screen = screenEditor
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// active returns the viewport the scroll keys move.
func (m *Model) active() *viewport.Model {
	if m.screen == screenEditor {
		return &m.doc
	}
	return &m.page
}

// checkExternal compares the file on disk with the buffer and raises a
// notice when they differ. Our own saves leave them equal.
func (m *Model) checkExternal() tea.Cmd {
	path := m.session.Path()
	if path == "" {
		return nil
	}
	disk, err := fileio.Load(path, m.session.MaxLineLength())
	if err != nil {
		log.Warn(log.CatWatcher, "reading changed file", "path", path, "error", err)
		return nil
	}
	buf := m.session.Lines()
	if slices.Equal(disk, buf) {
		return nil
	}
	added, removed := diff.Stats(diff.Lines(buf, disk))
	log.Info(log.CatWatcher, "file changed on disk", "path", path, "added", added, "removed", removed)
	return m.notify(
		"file changed on disk ("+plural(added, "line")+" added, "+plural(removed, "line")+" removed); diff to compare",
		toaster.StyleWarn,
	)
}

func (m *Model) notify(text string, style toaster.Style) tea.Cmd {
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(text, style, m.toastDuration)
	return cmd
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	log.Debug(log.CatUI, "command failed", "error", err)
	cmd := m.notify(err.Error(), toaster.StyleError)
	return m, cmd
}

// layout sizes the panes for the current window.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	bodyHeight := m.height - footerHeight
	if m.logPane.Visible() {
		logHeight := min(logPaneHeight, max(bodyHeight/2, 3))
		m.logPane.SetSize(m.width, logHeight)
		bodyHeight -= logHeight
	}
	bodyHeight = max(bodyHeight, 3)

	docWidth := m.width
	if m.historyVisible() {
		docWidth -= historyPaneWidth
	}

	m.doc.Width = max(docWidth-2, 1)
	m.doc.Height = max(bodyHeight-2, 1)
	m.page.Width = max(m.width-2, 1)
	m.page.Height = max(bodyHeight-2, 1)
	m.input.Width = max(m.width-len(m.input.Prompt)-1, 1)
	m.help.Width = m.width
}

func (m Model) historyVisible() bool {
	return m.showHistory && m.width >= historyMinWidth
}
