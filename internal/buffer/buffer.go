// Package buffer implements the line buffer: an ordered sequence of text lines
// addressed by 1-based position.
//
// Positions follow the editor's user-facing numbering. Insert clamps an
// out-of-range position to the nearest end; Delete, Line and Replace reject
// positions outside [1, Len()].
package buffer

import (
	"errors"
	"fmt"
	"iter"

	"github.com/zjrosen/linedit/internal/seq"
)

// DefaultMaxLineLength is the line length limit used when none is configured.
const DefaultMaxLineLength = 1000

var (
	// ErrOutOfRange reports a position outside [1, Len()].
	ErrOutOfRange = errors.New("position out of range")

	// ErrEmptyBuffer reports a delete on an empty buffer. It matches
	// ErrOutOfRange with errors.Is.
	ErrEmptyBuffer = fmt.Errorf("%w: buffer is empty", ErrOutOfRange)

	// ErrLineTooLong reports content longer than the configured maximum.
	ErrLineTooLong = errors.New("line too long")
)

// Buffer is the ordered collection of lines forming a document.
// It is not safe for concurrent use; the editor session serializes access.
type Buffer struct {
	lines   *seq.List[string]
	maxLine int
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithMaxLineLength sets the maximum line length in bytes.
// Values of zero or less keep the default.
func WithMaxLineLength(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.maxLine = n
		}
	}
}

// New creates an empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		lines:   seq.New[string](),
		maxLine: DefaultMaxLineLength,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FromLines creates a buffer holding lines in order.
func FromLines(lines []string, opts ...Option) (*Buffer, error) {
	b := New(opts...)
	for i, line := range lines {
		if _, err := b.Insert(line, b.Len()+1); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return b, nil
}

// Len returns the number of lines.
func (b *Buffer) Len() int {
	return b.lines.Len()
}

// MaxLineLength returns the configured line length limit.
func (b *Buffer) MaxLineLength() int {
	return b.maxLine
}

// Insert adds content as a new line and returns the position it now occupies.
//
// An empty buffer takes the line as its only element whatever the position.
// Otherwise position <= 1 prepends, position > Len() appends, and anything in
// between splices the line in so that it ends up at position.
func (b *Buffer) Insert(content string, position int) (int, error) {
	if err := b.checkLength(content); err != nil {
		return 0, err
	}
	return b.lines.InsertAt(position-1, content) + 1, nil
}

// Delete removes the line at position and returns its content.
func (b *Buffer) Delete(position int) (string, error) {
	if b.lines.Len() == 0 {
		return "", ErrEmptyBuffer
	}
	if err := b.checkPosition(position); err != nil {
		return "", err
	}
	content, _ := b.lines.RemoveAt(position - 1)
	return content, nil
}

// Line returns the content at position.
func (b *Buffer) Line(position int) (string, error) {
	if err := b.checkPosition(position); err != nil {
		return "", err
	}
	content, _ := b.lines.At(position - 1)
	return content, nil
}

// Replace swaps the content at position in place and returns the old content.
func (b *Buffer) Replace(position int, content string) (string, error) {
	if err := b.checkPosition(position); err != nil {
		return "", err
	}
	if err := b.checkLength(content); err != nil {
		return "", err
	}
	old, _ := b.lines.At(position - 1)
	b.lines.Set(position-1, content)
	return old, nil
}

// All yields (position, content) pairs in document order, starting at 1.
// The sequence is lazy and restartable.
func (b *Buffer) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, line := range b.lines.All() {
			if !yield(i+1, line) {
				return
			}
		}
	}
}

// Lines returns a snapshot copy of every line.
func (b *Buffer) Lines() []string {
	return b.lines.Values()
}

// Clear releases every line.
func (b *Buffer) Clear() {
	b.lines.Clear()
}

// Consistent reports whether the internal linkage agrees with Len.
func (b *Buffer) Consistent() bool {
	return b.lines.Check()
}

func (b *Buffer) checkPosition(position int) error {
	if position < 1 || position > b.lines.Len() {
		return fmt.Errorf("%w: %d not in [1,%d]", ErrOutOfRange, position, b.lines.Len())
	}
	return nil
}

func (b *Buffer) checkLength(content string) error {
	if len(content) > b.maxLine {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrLineTooLong, len(content), b.maxLine)
	}
	return nil
}
