package editor

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/linedit/internal/history"
	"github.com/zjrosen/linedit/internal/log"
	"github.com/zjrosen/linedit/internal/pubsub"
	"github.com/zjrosen/linedit/internal/tracing"
)

// Undo reverses the most recent edit and returns its record. The record moves
// from the done log to the undone log.
func (s *Session) Undo() (history.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.move(s.done, s.undone, "undo", ErrNothingToUndo, history.Record.Inverse, pubsub.UndoneEvent)
}

// Redo re-applies the most recently undone edit and returns its record. The
// record moves from the undone log back to the done log.
func (s *Session) Redo() (history.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	identity := func(r history.Record) history.Record { return r }
	return s.move(s.undone, s.done, "redo", ErrNothingToRedo, identity, pubsub.RedoneEvent)
}

// move pops a record from src, applies effect(record) to the buffer and pushes
// the record onto dst. On failure the record goes back onto src.
func (s *Session) move(
	src, dst *history.Log,
	name string,
	empty error,
	effect func(history.Record) history.Record,
	event pubsub.EventType,
) (history.Record, error) {
	span := s.startSpan(tracing.SpanPrefixEditor + name)

	r, ok := src.Pop()
	if !ok {
		tracing.End(span, empty)
		return history.Record{}, empty
	}
	span.SetAttributes(
		attribute.String(tracing.AttrRecordKind, r.Kind.String()),
		attribute.String(tracing.AttrRecordLabel, r.Label),
	)

	if err := s.apply(effect(r)); err != nil {
		src.Push(r)
		log.ErrorErr(log.CatHistory, name+" failed", err, "record", r.String())
		tracing.End(span, err)
		return history.Record{}, err
	}
	dst.Push(r)
	s.dirty = true

	span.SetAttributes(
		attribute.Int(tracing.AttrDoneDepth, s.done.Len()),
		attribute.Int(tracing.AttrUndoneDepth, s.undone.Len()),
	)
	tracing.End(span, nil)
	log.Debug(log.CatHistory, name, "record", r.String(), "done", s.done.Len(), "undone", s.undone.Len())
	s.publish(event, name+" "+r.String())
	return r, nil
}

// apply performs r's forward effect on the buffer. A group is applied step by
// step; if a step fails, the steps already applied are reversed so the buffer
// is left as it was.
func (s *Session) apply(r history.Record) error {
	steps := []history.Record{r}
	if r.Kind == history.Group {
		steps = r.Steps
	}
	for i, step := range steps {
		if err := s.applyStep(step); err != nil {
			for j := i - 1; j >= 0; j-- {
				if rbErr := s.applyStep(steps[j].Inverse()); rbErr != nil {
					log.ErrorErr(log.CatHistory, "rollback failed", rbErr, "step", steps[j].String())
				}
			}
			return err
		}
	}
	return nil
}

func (s *Session) applyStep(step history.Record) error {
	switch step.Kind {
	case history.Inserted:
		if step.Position < 1 || step.Position > s.buf.Len()+1 {
			return fmt.Errorf("%w: insert at %d with %d lines", ErrHistoryDiverged, step.Position, s.buf.Len())
		}
		if _, err := s.buf.Insert(step.Content, step.Position); err != nil {
			return fmt.Errorf("%w: %w", ErrHistoryDiverged, err)
		}
		return nil
	case history.Deleted:
		current, err := s.buf.Line(step.Position)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrHistoryDiverged, err)
		}
		if current != step.Content {
			return fmt.Errorf("%w: line %d is %q, expected %q",
				ErrHistoryDiverged, step.Position, current, step.Content)
		}
		_, err = s.buf.Delete(step.Position)
		return err
	default:
		return fmt.Errorf("%w: unexpected %s step", ErrHistoryDiverged, step.Kind)
	}
}

// CanUndo reports whether Undo has a record to reverse.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done.Len() > 0
}

// CanRedo reports whether Redo has a record to re-apply.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.undone.Len() > 0
}

// Depth returns the sizes of the done and undone logs.
func (s *Session) Depth() (done, undone int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done.Len(), s.undone.Len()
}

// History returns up to n done records, newest first.
func (s *Session) History(n int) []history.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done.Newest(n)
}

// Redoable returns up to n undone records, next-to-redo first.
func (s *Session) Redoable(n int) []history.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.undone.Newest(n)
}
