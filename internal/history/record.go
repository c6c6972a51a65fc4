// Package history holds the reversible edit records and the tail-stack logs
// that keep them.
//
// A Record describes one buffer mutation in enough detail to reverse it. The
// editor keeps two Logs, done and undone, and moves records between them on
// undo and redo. A record is only ever in one log at a time.
package history

import (
	"fmt"
	"strings"
)

// Kind tags a Record.
type Kind int

const (
	// Inserted records a line added at Position.
	Inserted Kind = iota
	// Deleted records a line removed from Position.
	Deleted
	// Group records several steps that undo and redo as one unit.
	Group
)

func (k Kind) String() string {
	switch k {
	case Inserted:
		return "inserted"
	case Deleted:
		return "deleted"
	case Group:
		return "group"
	default:
		return "unknown"
	}
}

// Record is a reversible description of one edit.
//
// Content and Position are set for Inserted and Deleted. Position is the
// 1-based position the line occupied, after any clamping by the buffer.
// Steps and Label are set for Group; steps are stored in the order they were
// applied and are never themselves groups.
type Record struct {
	Kind     Kind
	Content  string
	Position int
	Label    string
	Steps    []Record
}

// NewInserted returns an Inserted record.
func NewInserted(content string, position int) Record {
	return Record{Kind: Inserted, Content: content, Position: position}
}

// NewDeleted returns a Deleted record.
func NewDeleted(content string, position int) Record {
	return Record{Kind: Deleted, Content: content, Position: position}
}

// NewGroup folds steps into one record. A single step is returned as is so
// that trivial groups do not show up in the history listing.
func NewGroup(label string, steps ...Record) Record {
	if len(steps) == 1 {
		return steps[0]
	}
	flat := make([]Record, 0, len(steps))
	for _, s := range steps {
		if s.Kind == Group {
			flat = append(flat, s.Steps...)
			continue
		}
		flat = append(flat, s)
	}
	return Record{Kind: Group, Label: label, Steps: flat}
}

// Inverse returns the record that undoes r.
func (r Record) Inverse() Record {
	switch r.Kind {
	case Inserted:
		return NewDeleted(r.Content, r.Position)
	case Deleted:
		return NewInserted(r.Content, r.Position)
	case Group:
		steps := make([]Record, len(r.Steps))
		for i, s := range r.Steps {
			steps[len(r.Steps)-1-i] = s.Inverse()
		}
		return Record{Kind: Group, Label: r.Label, Steps: steps}
	}
	return r
}

// String renders a short summary for history listings and logs.
func (r Record) String() string {
	switch r.Kind {
	case Inserted, Deleted:
		return fmt.Sprintf("%s line %d %q", r.Kind, r.Position, preview(r.Content))
	case Group:
		return fmt.Sprintf("%s (%d steps)", r.Label, len(r.Steps))
	}
	return r.Kind.String()
}

func preview(s string) string {
	s = strings.TrimRight(s, "\r\n")
	const limit = 24
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
