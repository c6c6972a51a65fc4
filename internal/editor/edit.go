package editor

import (
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/linedit/internal/buffer"
	"github.com/zjrosen/linedit/internal/history"
	"github.com/zjrosen/linedit/internal/tracing"
)

// Insert adds content as a new line at position and returns the position it
// landed on. Positions are clamped: <= 1 prepends, past the end appends.
func (s *Session) Insert(content string, position int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	span := s.startSpan(tracing.SpanPrefixEditor+"insert", attribute.Int(tracing.AttrPosition, position))
	effective, err := s.buf.Insert(content, position)
	if err != nil {
		tracing.End(span, err)
		return 0, err
	}
	s.record(history.NewInserted(content, effective))
	tracing.End(span, nil)
	return effective, nil
}

// Delete removes the line at position and returns its content.
func (s *Session) Delete(position int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	span := s.startSpan(tracing.SpanPrefixEditor+"delete", attribute.Int(tracing.AttrPosition, position))
	content, err := s.buf.Delete(position)
	if err != nil {
		tracing.End(span, err)
		return "", err
	}
	s.record(history.NewDeleted(content, position))
	tracing.End(span, nil)
	return content, nil
}

// Edit replaces the line at position with content. The delete and the
// re-insert are recorded as one group so a single Undo restores the line.
func (s *Session) Edit(position int, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	span := s.startSpan(tracing.SpanPrefixEditor+"edit", attribute.Int(tracing.AttrPosition, position))
	r, err := s.edit(position, content)
	if err != nil {
		tracing.End(span, err)
		return err
	}
	s.record(r)
	tracing.End(span, nil)
	return nil
}

func (s *Session) edit(position int, content string) (history.Record, error) {
	if len(content) > s.buf.MaxLineLength() {
		return history.Record{}, fmt.Errorf("%w: %d bytes exceeds limit of %d",
			buffer.ErrLineTooLong, len(content), s.buf.MaxLineLength())
	}
	old, err := s.buf.Delete(position)
	if err != nil {
		return history.Record{}, err
	}
	effective, err := s.buf.Insert(content, position)
	if err != nil {
		// Length was checked above, so this only restores the old line.
		_, _ = s.buf.Insert(old, position)
		return history.Record{}, err
	}
	return history.NewGroup("edit",
		history.NewDeleted(old, position),
		history.NewInserted(content, effective),
	), nil
}

// FindAndReplace replaces every non-overlapping occurrence of pattern in
// every line, scanning left to right. It returns the number of replacements.
// An empty pattern replaces nothing. If any resulting line would exceed the
// length limit, nothing is changed.
func (s *Session) FindAndReplace(pattern, replacement string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	span := s.startSpan(tracing.SpanPrefixEditor+"replace")
	if pattern == "" {
		tracing.End(span, nil)
		return 0, nil
	}

	type change struct {
		position int
		old, new string
	}
	var (
		changes []change
		count   int
	)
	for position, line := range s.buf.All() {
		n := strings.Count(line, pattern)
		if n == 0 {
			continue
		}
		updated := strings.ReplaceAll(line, pattern, replacement)
		if len(updated) > s.buf.MaxLineLength() {
			err := fmt.Errorf("line %d: %w: %d bytes exceeds limit of %d",
				position, buffer.ErrLineTooLong, len(updated), s.buf.MaxLineLength())
			tracing.End(span, err)
			return 0, err
		}
		changes = append(changes, change{position: position, old: line, new: updated})
		count += n
	}

	if count == 0 {
		span.SetAttributes(attribute.Int(tracing.AttrReplaced, 0))
		tracing.End(span, nil)
		return 0, nil
	}

	steps := make([]history.Record, 0, 2*len(changes))
	for _, c := range changes {
		if _, err := s.buf.Replace(c.position, c.new); err != nil {
			// Unreachable: positions and lengths were validated in the scan.
			panic(fmt.Sprintf("replace line %d: %v", c.position, err))
		}
		steps = append(steps,
			history.NewDeleted(c.old, c.position),
			history.NewInserted(c.new, c.position),
		)
	}
	s.record(history.NewGroup("replace", steps...))

	span.SetAttributes(attribute.Int(tracing.AttrReplaced, count))
	tracing.End(span, nil)
	return count, nil
}
