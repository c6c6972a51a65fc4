package diff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLines(t *testing.T) {
	before := []string{"a\n", "b\n", "c\n"}
	after := []string{"a\n", "B\n", "c\n", "d\n"}

	lines := Lines(before, after)
	require.True(t, Changed(lines))

	ins, del := Stats(lines)
	require.Equal(t, 2, ins)
	require.Equal(t, 1, del)

	require.Equal(t, Line{Op: Equal, Text: "a\n", OldNo: 1, NewNo: 1}, lines[0])
	require.Equal(t, Line{Op: Equal, Text: "c\n", OldNo: 3, NewNo: 3}, findText(t, lines, "c\n"))
	require.Equal(t, Line{Op: Delete, Text: "b\n", OldNo: 2}, findText(t, lines, "b\n"))
	require.Equal(t, Line{Op: Insert, Text: "d\n", NewNo: 4}, findText(t, lines, "d\n"))
}

func findText(t *testing.T, lines []Line, text string) Line {
	t.Helper()
	for _, l := range lines {
		if l.Text == text {
			return l
		}
	}
	require.Failf(t, "line not found", "%q", text)
	return Line{}
}

func TestLines_ResplitsJoinedContent(t *testing.T) {
	// A line inserted without a terminator merges with the next on disk.
	lines := Lines([]string{"ab\n"}, []string{"a", "b\n"})
	require.False(t, Changed(lines))
}

func TestUnified_Identical(t *testing.T) {
	require.Empty(t, Unified("a", "b", []string{"x\n"}, []string{"x\n"}, 3))
	require.Empty(t, Unified("a", "b", nil, nil, 3))
}

func TestUnified_Replace(t *testing.T) {
	before := []string{"1\n", "2\n", "3\n", "4\n", "5\n", "6\n", "7\n"}
	after := []string{"1\n", "2\n", "3\n", "four\n", "5\n", "6\n", "7\n"}

	want := "--- disk\n+++ buffer\n" +
		"@@ -3,3 +3,3 @@\n" +
		" 3\n" +
		"-4\n" +
		"+four\n" +
		" 5\n"
	require.Equal(t, want, Unified("disk", "buffer", before, after, 1))
}

func TestUnified_InsertIntoEmpty(t *testing.T) {
	want := "--- a\n+++ b\n" +
		"@@ -0,0 +1,1 @@\n" +
		"+hello\n" +
		"\\ No newline at end of file\n"
	require.Equal(t, want, Unified("a", "b", nil, []string{"hello"}, 3))
}

func TestUnified_SeparateHunks(t *testing.T) {
	before := []string{"a\n", "b\n", "c\n", "d\n", "e\n", "f\n"}
	after := []string{"A\n", "b\n", "c\n", "d\n", "e\n", "F\n"}

	out := Unified("x", "y", before, after, 0)
	require.Contains(t, out, "@@ -1,1 +1,1 @@\n-a\n+A\n")
	require.Contains(t, out, "@@ -6,1 +6,1 @@\n-f\n+F\n")
}

func TestUnified_DeleteOnly(t *testing.T) {
	out := Unified("x", "y", []string{"a\n", "b\n"}, []string{"a\n"}, 0)
	require.Contains(t, out, "@@ -2,1 +1,0 @@\n-b\n")
}
