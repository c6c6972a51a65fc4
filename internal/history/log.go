package history

import (
	"iter"

	"github.com/zjrosen/linedit/internal/seq"
)

// Log is an ordered sequence of records used as a stack at its tail.
// The zero value is not usable; call NewLog.
type Log struct {
	records *seq.List[Record]
	limit   int
}

// NewLog creates an empty log. A positive limit bounds the log: pushing past
// it drops the oldest record.
func NewLog(limit int) *Log {
	return &Log{
		records: seq.New[Record](),
		limit:   max(limit, 0),
	}
}

// Push appends r at the tail. Returns true if an old record was dropped to
// honor the limit.
func (l *Log) Push(r Record) bool {
	l.records.PushBack(r)
	if l.limit > 0 && l.records.Len() > l.limit {
		_, _ = l.records.PopFront()
		return true
	}
	return false
}

// Pop removes and returns the tail record.
func (l *Log) Pop() (Record, bool) {
	return l.records.PopBack()
}

// Peek returns the tail record without removing it.
func (l *Log) Peek() (Record, bool) {
	return l.records.Back()
}

// Len returns the number of records.
func (l *Log) Len() int {
	return l.records.Len()
}

// Clear drops every record.
func (l *Log) Clear() {
	l.records.Clear()
}

// All yields records oldest first.
func (l *Log) All() iter.Seq2[int, Record] {
	return l.records.All()
}

// Newest returns up to n records, newest first.
func (l *Log) Newest(n int) []Record {
	all := l.records.Values()
	out := make([]Record, 0, min(n, len(all)))
	for i := len(all) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, all[i])
	}
	return out
}

// Consistent reports whether the underlying list linkage is sound.
func (l *Log) Consistent() bool {
	return l.records.Check()
}
