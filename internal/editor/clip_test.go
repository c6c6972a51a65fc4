package editor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/linedit/internal/buffer"
	"github.com/zjrosen/linedit/internal/register"
)

func TestCopy_Clamps(t *testing.T) {
	s := newSession(t, "a\n", "b\n", "c\n")

	tests := []struct {
		name       string
		start, end int
		want       string
	}{
		{"inner range", 2, 3, "b\nc\n"},
		{"single line", 1, 1, "a\n"},
		{"clamped both ends", -5, 99, "a\nb\nc\n"},
		{"reversed", 3, 1, ""},
		{"past the end", 4, 9, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, s.Copy(tt.start, tt.end).String())
			requireLines(t, s, "a\n", "b\n", "c\n")
		})
	}
	require.False(t, s.CanUndo(), "copy is not an edit")
}

func TestCopy_StoresNonEmptyClipInRegister(t *testing.T) {
	reg := &register.Memory{}
	s, err := FromLines([]string{"a", "b"}, Options{Register: reg})
	require.NoError(t, err)

	s.Copy(2, 2)
	require.Equal(t, []string{"b"}, reg.Load().Lines)

	s.Copy(5, 6)
	require.Equal(t, []string{"b"}, reg.Load().Lines, "an empty copy keeps the register")
}

func TestCutPasteRoundTrip(t *testing.T) {
	s := newSession(t, "1", "2", "3", "4", "5")

	clip, err := s.Cut(2, 4)
	require.NoError(t, err)
	require.Equal(t, []string{"2", "3", "4"}, clip.Lines)
	requireLines(t, s, "1", "5")

	first, err := s.Paste(2, clip)
	require.NoError(t, err)
	require.Equal(t, 2, first)
	requireLines(t, s, "1", "2", "3", "4", "5")

	done, _ := s.Depth()
	require.Equal(t, 2, done, "cut and paste are one record each")
}

func TestCut_UndoRestores(t *testing.T) {
	s := newSession(t, "a", "b", "c")
	_, err := s.Cut(1, 2)
	require.NoError(t, err)
	requireLines(t, s, "c")

	r, err := s.Undo()
	require.NoError(t, err)
	require.Equal(t, "cut", r.Label)
	requireLines(t, s, "a", "b", "c")
}

func TestCut_EmptyRange(t *testing.T) {
	s := newSession(t, "a")
	_, err := s.Cut(3, 4)
	require.ErrorIs(t, err, buffer.ErrOutOfRange)
	_, err = s.Cut(1, 0)
	require.ErrorIs(t, err, buffer.ErrOutOfRange)
	requireLines(t, s, "a")
	require.False(t, s.CanUndo())
}

func TestPaste(t *testing.T) {
	t.Run("empty clip", func(t *testing.T) {
		s := newSession(t, "a")
		_, err := s.Paste(1, register.Clip{})
		require.ErrorIs(t, err, ErrEmptyClip)
	})

	t.Run("clamped past the end", func(t *testing.T) {
		s := newSession(t, "a")
		first, err := s.Paste(10, register.NewClip("x", "y"))
		require.NoError(t, err)
		require.Equal(t, 2, first)
		requireLines(t, s, "a", "x", "y")

		_, err = s.Undo()
		require.NoError(t, err)
		requireLines(t, s, "a")
	})

	t.Run("single line records plain insert", func(t *testing.T) {
		s := newSession(t, "a")
		_, err := s.Paste(1, register.NewClip("x"))
		require.NoError(t, err)
		require.Empty(t, s.History(1)[0].Label)
	})

	t.Run("line too long", func(t *testing.T) {
		s, err := FromLines([]string{"a"}, Options{MaxLineLength: 2})
		require.NoError(t, err)
		_, err = s.Paste(1, register.NewClip("ok", "toolong"))
		require.ErrorIs(t, err, buffer.ErrLineTooLong)
		requireLines(t, s, "a")
	})
}

func TestPasteRegister(t *testing.T) {
	s := newSession(t, "a", "b")

	_, err := s.PasteRegister(1)
	require.ErrorIs(t, err, ErrEmptyClip)

	s.Copy(1, 2)
	_, err = s.PasteRegister(3)
	require.NoError(t, err)
	requireLines(t, s, "a", "b", "a", "b")

	_, err = s.Cut(1, 1)
	require.NoError(t, err)
	_, err = s.PasteRegister(1)
	require.NoError(t, err)
	requireLines(t, s, "a", "b", "a", "b")
}
