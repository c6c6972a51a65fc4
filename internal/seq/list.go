// Package seq provides the ordered, singly linked sequence shared by the line
// buffer and the undo history.
//
// A List tracks head, tail and size so that pushing at either end is O(1),
// indexed access is O(position), and popping the tail walks to the new tail.
// Nodes never escape the list; callers only see values.
package seq

import "iter"

type node[T any] struct {
	value T
	next  *node[T]
}

// List is an ordered sequence of values addressed by 0-based index.
// The zero value is an empty list ready to use.
type List[T any] struct {
	head *node[T]
	tail *node[T]
	size int
}

// New returns an empty list.
func New[T any]() *List[T] {
	return &List[T]{}
}

// Len returns the number of values in the list.
func (l *List[T]) Len() int {
	return l.size
}

// PushFront inserts v before the current head.
func (l *List[T]) PushFront(v T) {
	n := &node[T]{value: v, next: l.head}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
	l.size++
}

// PushBack appends v after the current tail.
func (l *List[T]) PushBack(v T) {
	n := &node[T]{value: v}
	if l.tail == nil {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
	l.size++
}

// InsertAt inserts v so that it ends up at index i.
// Indexes at or below 0 prepend and indexes at or past Len append.
// Returns the index v was stored at.
func (l *List[T]) InsertAt(i int, v T) int {
	switch {
	case i <= 0 || l.head == nil:
		l.PushFront(v)
		return 0
	case i >= l.size:
		l.PushBack(v)
		return l.size - 1
	}

	prev := l.nodeAt(i - 1)
	prev.next = &node[T]{value: v, next: prev.next}
	l.size++
	return i
}

// At returns the value at index i.
func (l *List[T]) At(i int) (T, bool) {
	if i < 0 || i >= l.size {
		var zero T
		return zero, false
	}
	return l.nodeAt(i).value, true
}

// Set replaces the value at index i.
func (l *List[T]) Set(i int, v T) bool {
	if i < 0 || i >= l.size {
		return false
	}
	l.nodeAt(i).value = v
	return true
}

// RemoveAt unlinks the value at index i and returns it.
func (l *List[T]) RemoveAt(i int) (T, bool) {
	var zero T
	if i < 0 || i >= l.size {
		return zero, false
	}

	var removed *node[T]
	if i == 0 {
		removed = l.head
		l.head = removed.next
		if l.head == nil {
			l.tail = nil
		}
	} else {
		prev := l.nodeAt(i - 1)
		removed = prev.next
		prev.next = removed.next
		if removed == l.tail {
			l.tail = prev
		}
	}

	l.size--
	removed.next = nil
	return removed.value, true
}

// Front returns the head value.
func (l *List[T]) Front() (T, bool) {
	if l.head == nil {
		var zero T
		return zero, false
	}
	return l.head.value, true
}

// Back returns the tail value.
func (l *List[T]) Back() (T, bool) {
	if l.tail == nil {
		var zero T
		return zero, false
	}
	return l.tail.value, true
}

// PopBack removes and returns the tail value.
func (l *List[T]) PopBack() (T, bool) {
	if l.size == 0 {
		var zero T
		return zero, false
	}
	return l.RemoveAt(l.size - 1)
}

// PopFront removes and returns the head value.
func (l *List[T]) PopFront() (T, bool) {
	return l.RemoveAt(0)
}

// Clear drops every value.
func (l *List[T]) Clear() {
	// Unlink nodes so values held by a long list are not kept reachable
	// through a stale node still referenced elsewhere.
	for n := l.head; n != nil; {
		next := n.next
		n.next = nil
		n = next
	}
	l.head = nil
	l.tail = nil
	l.size = 0
}

// All yields (index, value) pairs from head to tail. The sequence is lazy and
// can be ranged over any number of times. Mutating the list while ranging is
// not supported.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := 0
		for n := l.head; n != nil; n = n.next {
			if !yield(i, n.value) {
				return
			}
			i++
		}
	}
}

// Values returns a copy of the values in order.
func (l *List[T]) Values() []T {
	out := make([]T, 0, l.size)
	for n := l.head; n != nil; n = n.next {
		out = append(out, n.value)
	}
	return out
}

// Check walks the list and reports whether head, tail and size agree.
// Used by tests and debug assertions.
func (l *List[T]) Check() bool {
	if l.size == 0 {
		return l.head == nil && l.tail == nil
	}
	count := 0
	var last *node[T]
	for n := l.head; n != nil; n = n.next {
		count++
		last = n
		if count > l.size {
			return false
		}
	}
	return count == l.size && last == l.tail
}

func (l *List[T]) nodeAt(i int) *node[T] {
	if i == l.size-1 {
		return l.tail
	}
	n := l.head
	for ; i > 0; i-- {
		n = n.next
	}
	return n
}
