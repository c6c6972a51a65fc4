package editor

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/linedit/internal/buffer"
	"github.com/zjrosen/linedit/internal/history"
	"github.com/zjrosen/linedit/internal/log"
	"github.com/zjrosen/linedit/internal/register"
	"github.com/zjrosen/linedit/internal/tracing"
)

// clamp narrows [start, end] to the buffer. ok is false when nothing is left.
func clamp(start, end, size int) (int, int, bool) {
	start = max(start, 1)
	end = min(end, size)
	return start, end, start <= end
}

// Copy returns lines start through end, clamped to the buffer. A reversed or
// fully out-of-range span yields an empty clip. A non-empty clip is also
// stored in the register. The buffer is never modified.
func (s *Session) Copy(start, end int) register.Clip {
	s.mu.Lock()
	defer s.mu.Unlock()

	clip := s.copy(start, end)
	if !clip.Empty() {
		s.store(clip)
	}
	return clip
}

func (s *Session) copy(start, end int) register.Clip {
	start, end, ok := clamp(start, end, s.buf.Len())
	if !ok {
		return register.Clip{}
	}
	lines := make([]string, 0, end-start+1)
	for position, line := range s.buf.All() {
		if position > end {
			break
		}
		if position >= start {
			lines = append(lines, line)
		}
	}
	return register.Clip{Lines: lines}
}

func (s *Session) store(clip register.Clip) {
	if err := s.reg.Store(clip); err != nil {
		log.Warn(log.CatBuffer, "register store failed", "error", err)
	}
}

// Cut removes lines start through end, clamped like Copy, and returns them.
// The deletes are recorded as one group. An empty span is ErrOutOfRange.
func (s *Session) Cut(start, end int) (register.Clip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	span := s.startSpan(tracing.SpanPrefixEditor+"cut",
		attribute.Int(tracing.AttrRangeStart, start),
		attribute.Int(tracing.AttrRangeEnd, end))

	clip := s.copy(start, end)
	if clip.Empty() {
		err := fmt.Errorf("%w: nothing in lines %d-%d", buffer.ErrOutOfRange, start, end)
		tracing.End(span, err)
		return register.Clip{}, err
	}

	at := max(start, 1)
	steps := make([]history.Record, 0, clip.Len())
	for range clip.Lines {
		content, err := s.buf.Delete(at)
		if err != nil {
			// Unreachable: the span was clamped to the buffer above.
			panic(fmt.Sprintf("cut line %d: %v", at, err))
		}
		steps = append(steps, history.NewDeleted(content, at))
	}
	s.record(history.NewGroup("cut", steps...))
	s.store(clip)

	span.SetAttributes(attribute.Int(tracing.AttrLineCount, clip.Len()))
	tracing.End(span, nil)
	return clip, nil
}

// Paste inserts the clip's lines starting at position, which is clamped like
// Insert. A multi-line paste is recorded as one group. It returns the
// position of the first pasted line.
func (s *Session) Paste(position int, clip register.Clip) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paste(position, clip)
}

// PasteRegister pastes the most recently copied or cut clip.
func (s *Session) PasteRegister(position int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paste(position, s.reg.Load())
}

func (s *Session) paste(position int, clip register.Clip) (int, error) {
	span := s.startSpan(tracing.SpanPrefixEditor+"paste",
		attribute.Int(tracing.AttrPosition, position),
		attribute.Int(tracing.AttrLineCount, clip.Len()))

	if clip.Empty() {
		tracing.End(span, ErrEmptyClip)
		return 0, ErrEmptyClip
	}
	for i, line := range clip.Lines {
		if len(line) > s.buf.MaxLineLength() {
			err := fmt.Errorf("clip line %d: %w: %d bytes exceeds limit of %d",
				i+1, buffer.ErrLineTooLong, len(line), s.buf.MaxLineLength())
			tracing.End(span, err)
			return 0, err
		}
	}

	first := 0
	steps := make([]history.Record, 0, clip.Len())
	for i, line := range clip.Lines {
		at := position
		if i > 0 {
			at = first + i
		}
		effective, err := s.buf.Insert(line, at)
		if err != nil {
			panic(fmt.Sprintf("paste line %d: %v", at, err))
		}
		if i == 0 {
			first = effective
		}
		steps = append(steps, history.NewInserted(line, effective))
	}
	s.record(history.NewGroup("paste", steps...))

	tracing.End(span, nil)
	return first, nil
}
