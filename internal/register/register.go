// Package register holds copied and cut lines between edits.
package register

import (
	"strings"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/zjrosen/linedit/internal/log"
)

// Clip is a copied range of lines. The zero value is an empty clip.
type Clip struct {
	Lines []string
}

// NewClip copies lines into a clip.
func NewClip(lines ...string) Clip {
	return Clip{Lines: append([]string(nil), lines...)}
}

// Empty reports whether the clip holds no lines.
func (c Clip) Empty() bool {
	return len(c.Lines) == 0
}

// Len returns the number of lines in the clip.
func (c Clip) Len() int {
	return len(c.Lines)
}

// String concatenates the lines as they appear in the file.
func (c Clip) String() string {
	return strings.Join(c.Lines, "")
}

// Register stores the most recent clip.
type Register interface {
	Store(c Clip) error
	Load() Clip
}

// Memory is an in-process register. The zero value is ready to use.
type Memory struct {
	mu   sync.Mutex
	clip Clip
}

// Store replaces the held clip.
func (m *Memory) Store(c Clip) error {
	m.mu.Lock()
	m.clip = NewClip(c.Lines...)
	m.mu.Unlock()
	return nil
}

// Load returns a copy of the held clip.
func (m *Memory) Load() Clip {
	m.mu.Lock()
	defer m.mu.Unlock()
	return NewClip(m.clip.Lines...)
}

// Writer is the subset of the OS clipboard the System register needs.
type Writer interface {
	WriteAll(text string) error
}

type osClipboard struct{}

func (osClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// System keeps clips in memory and mirrors each one to the OS clipboard.
// Pastes always come from memory, so line boundaries survive a round trip.
type System struct {
	Memory
	out Writer
}

// NewSystem returns a register mirroring to the OS clipboard.
// A nil w uses the real clipboard.
func NewSystem(w Writer) *System {
	if w == nil {
		w = osClipboard{}
	}
	return &System{out: w}
}

// Store keeps c in memory and copies its text to the OS clipboard.
// The clip is kept even when the clipboard write fails.
func (s *System) Store(c Clip) error {
	_ = s.Memory.Store(c)
	if clipboard.Unsupported && isOS(s.out) {
		return nil
	}
	if err := s.out.WriteAll(c.String()); err != nil {
		log.ErrorErr(log.CatBuffer, "clipboard write failed", err, "lines", c.Len())
		return err
	}
	return nil
}

func isOS(w Writer) bool {
	_, ok := w.(osClipboard)
	return ok
}
