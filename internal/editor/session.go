// Package editor ties the line buffer to its undo/redo history.
//
// A Session owns one buffer and two history logs. Every mutating method
// records a reversible history.Record on the done log and clears the undone
// log; Undo and Redo move records between the two. All methods are safe for
// concurrent use.
package editor

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/linedit/internal/buffer"
	"github.com/zjrosen/linedit/internal/fileio"
	"github.com/zjrosen/linedit/internal/history"
	"github.com/zjrosen/linedit/internal/log"
	"github.com/zjrosen/linedit/internal/pubsub"
	"github.com/zjrosen/linedit/internal/register"
	"github.com/zjrosen/linedit/internal/tracing"
)

// Options configures a Session. The zero value is usable.
type Options struct {
	// MaxLineLength bounds every line in bytes. Zero means the buffer default.
	MaxLineLength int

	// HistoryLimit bounds each history log. Zero means unbounded.
	HistoryLimit int

	// Register receives copied and cut clips. Nil means an in-memory register.
	Register register.Register

	// Tracer wraps each operation in a span. Nil means no tracing.
	Tracer trace.Tracer

	// Events, when set, receives a Change after every edit, undo, redo and save.
	Events pubsub.Publisher[Change]
}

// Change describes the session state after an event.
type Change struct {
	Summary string
	Lines   int
	Dirty   bool
}

// Session is one open document with its history.
type Session struct {
	mu     sync.Mutex
	id     string
	path   string
	buf    *buffer.Buffer
	done   *history.Log
	undone *history.Log
	dirty  bool

	reg    register.Register
	tracer trace.Tracer
	events pubsub.Publisher[Change]
}

// New creates a session with an empty buffer.
func New(opts Options) *Session {
	s := &Session{
		id:     uuid.NewString(),
		buf:    buffer.New(buffer.WithMaxLineLength(opts.MaxLineLength)),
		done:   history.NewLog(opts.HistoryLimit),
		undone: history.NewLog(opts.HistoryLimit),
		reg:    opts.Register,
		tracer: opts.Tracer,
		events: opts.Events,
	}
	if s.reg == nil {
		s.reg = &register.Memory{}
	}
	if s.tracer == nil {
		s.tracer = tracing.Noop().Tracer()
	}
	return s
}

// FromLines creates a session whose buffer holds lines. Loading is not an
// edit: the history starts empty and the session is clean.
func FromLines(lines []string, opts Options) (*Session, error) {
	s := New(opts)
	for i, line := range lines {
		if _, err := s.buf.Insert(line, i+1); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return s, nil
}

// Open loads path into a new session. A missing or unreadable file opens as
// an empty document that keeps path, so a later save creates or reports it.
// Only a line over the length limit fails the open.
func Open(path string, opts Options) (*Session, error) {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = tracing.Noop().Tracer()
	}
	_, span := tracer.Start(context.Background(), tracing.SpanIOLoad,
		trace.WithAttributes(attribute.String(tracing.AttrFilePath, path)))

	lines, err := fileio.Load(path, opts.MaxLineLength)
	if errors.Is(err, fileio.ErrIOUnavailable) {
		log.Warn(log.CatIO, "cannot read file, starting empty", "path", path, "error", err)
		span.SetAttributes(attribute.Bool(tracing.AttrLoadFailed, true))
		lines, err = nil, nil
	}
	if err != nil {
		tracing.End(span, err)
		return nil, err
	}
	s, err := FromLines(lines, opts)
	if err != nil {
		tracing.End(span, err)
		return nil, err
	}
	s.path = path
	span.SetAttributes(
		attribute.String(tracing.AttrSessionID, s.id),
		attribute.Int(tracing.AttrLineCount, len(lines)),
	)
	tracing.End(span, nil)
	return s, nil
}

// ID returns the session's unique id.
func (s *Session) ID() string {
	return s.id
}

// Path returns the file the session saves to, if any.
func (s *Session) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Dirty reports whether the buffer changed since it was loaded or saved.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Len returns the number of lines.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Len()
}

// MaxLineLength returns the line length limit.
func (s *Session) MaxLineLength() int {
	return s.buf.MaxLineLength()
}

// Line returns the content at position.
func (s *Session) Line(position int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Line(position)
}

// Lines returns a snapshot of the buffer.
func (s *Session) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Lines()
}

// All yields (position, content) pairs over a snapshot of the buffer.
func (s *Session) All() iter.Seq2[int, string] {
	lines := s.Lines()
	return func(yield func(int, string) bool) {
		for i, line := range lines {
			if !yield(i+1, line) {
				return
			}
		}
	}
}

// Save writes the buffer to path, or to the session's own path when path is
// empty, and marks the session clean. Saving to a new path adopts it.
func (s *Session) Save(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if path == "" {
		path = s.path
	}
	if path == "" {
		return fmt.Errorf("%w: no file name", fileio.ErrIOUnavailable)
	}

	span := s.startSpan(tracing.SpanIOSave, attribute.String(tracing.AttrFilePath, path))
	if err := fileio.Save(path, s.buf.Lines()); err != nil {
		log.ErrorErr(log.CatIO, "save failed", err, "path", path)
		tracing.End(span, err)
		return err
	}
	tracing.End(span, nil)

	s.path = path
	s.dirty = false
	s.publish(pubsub.SavedEvent, "saved "+path)
	return nil
}

// Consistent reports whether the buffer and both logs are structurally sound.
func (s *Session) Consistent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Consistent() && s.done.Consistent() && s.undone.Consistent()
}

func (s *Session) startSpan(name string, attrs ...attribute.KeyValue) trace.Span {
	attrs = append(attrs, attribute.String(tracing.AttrSessionID, s.id))
	_, span := s.tracer.Start(context.Background(), name, trace.WithAttributes(attrs...))
	return span
}

// record pushes r as a fresh edit. Must hold s.mu.
func (s *Session) record(r history.Record) {
	if s.done.Push(r) {
		log.Debug(log.CatHistory, "history limit reached, dropped oldest record")
	}
	if s.undone.Len() > 0 {
		log.Debug(log.CatHistory, "redo history cleared", "records", s.undone.Len())
		s.undone.Clear()
	}
	s.dirty = true
	log.Debug(log.CatBuffer, "edit", "record", r.String(), "lines", s.buf.Len())
	s.publish(pubsub.EditedEvent, r.String())
}

func (s *Session) publish(t pubsub.EventType, summary string) {
	if s.events == nil {
		return
	}
	s.events.Publish(t, Change{Summary: summary, Lines: s.buf.Len(), Dirty: s.dirty})
}
