package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_PushPopIsLIFO(t *testing.T) {
	l := NewLog(0)
	l.Push(NewInserted("a", 1))
	l.Push(NewInserted("b", 2))
	l.Push(NewDeleted("a", 1))

	require.Equal(t, 3, l.Len())

	r, ok := l.Pop()
	require.True(t, ok)
	require.Equal(t, NewDeleted("a", 1), r)

	r, ok = l.Peek()
	require.True(t, ok)
	require.Equal(t, NewInserted("b", 2), r)
	require.Equal(t, 2, l.Len(), "peek must not remove")
	require.True(t, l.Consistent())
}

func TestLog_PopEmpty(t *testing.T) {
	l := NewLog(0)
	_, ok := l.Pop()
	require.False(t, ok)
	_, ok = l.Peek()
	require.False(t, ok)
	require.True(t, l.Consistent())
}

func TestLog_PopToEmptyThenPush(t *testing.T) {
	l := NewLog(0)
	l.Push(NewInserted("a", 1))
	_, _ = l.Pop()
	require.True(t, l.Consistent())

	l.Push(NewInserted("b", 1))
	r, ok := l.Peek()
	require.True(t, ok)
	require.Equal(t, "b", r.Content)
}

func TestLog_LimitDropsOldest(t *testing.T) {
	l := NewLog(2)
	require.False(t, l.Push(NewInserted("a", 1)))
	require.False(t, l.Push(NewInserted("b", 2)))
	require.True(t, l.Push(NewInserted("c", 3)))

	var contents []string
	for _, r := range l.All() {
		contents = append(contents, r.Content)
	}
	require.Equal(t, []string{"b", "c"}, contents)
}

func TestLog_Newest(t *testing.T) {
	l := NewLog(0)
	for _, s := range []string{"a", "b", "c"} {
		l.Push(NewInserted(s, 1))
	}
	got := l.Newest(2)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].Content)
	assert.Equal(t, "b", got[1].Content)
	assert.Len(t, l.Newest(10), 3)
}

func TestLog_Clear(t *testing.T) {
	l := NewLog(0)
	l.Push(NewInserted("a", 1))
	l.Clear()
	require.Equal(t, 0, l.Len())
	require.True(t, l.Consistent())
}

func TestNewGroup_SingleStepUnwraps(t *testing.T) {
	r := NewGroup("paste", NewInserted("a", 3))
	require.Equal(t, Inserted, r.Kind)
	require.Equal(t, 3, r.Position)
}

func TestNewGroup_FlattensNestedGroups(t *testing.T) {
	inner := NewGroup("edit", NewDeleted("a", 1), NewInserted("b", 1))
	r := NewGroup("outer", inner, NewInserted("c", 2))
	require.Equal(t, Group, r.Kind)
	require.Len(t, r.Steps, 3)
	for _, s := range r.Steps {
		require.NotEqual(t, Group, s.Kind)
	}
}

func TestRecord_Inverse(t *testing.T) {
	require.Equal(t, NewDeleted("x", 4), NewInserted("x", 4).Inverse())
	require.Equal(t, NewInserted("x", 4), NewDeleted("x", 4).Inverse())

	g := NewGroup("edit", NewDeleted("old", 2), NewInserted("new", 2))
	inv := g.Inverse()
	require.Equal(t, Group, inv.Kind)
	require.Equal(t, []Record{NewDeleted("new", 2), NewInserted("old", 2)}, inv.Steps)
	require.Equal(t, g, inv.Inverse())
}

func TestRecord_String(t *testing.T) {
	assert.Equal(t, `inserted line 2 "hello"`, NewInserted("hello\n", 2).String())
	assert.Equal(t, `deleted line 1 "abcdefghijklmnopqrstuvwx..."`,
		NewDeleted("abcdefghijklmnopqrstuvwxyz", 1).String())
	assert.Equal(t, "cut (3 steps)",
		NewGroup("cut", NewDeleted("a", 1), NewDeleted("b", 1), NewDeleted("c", 1)).String())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "inserted", Inserted.String())
	assert.Equal(t, "deleted", Deleted.String())
	assert.Equal(t, "group", Group.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
