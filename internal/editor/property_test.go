package editor

import (
	"fmt"
	"slices"
	"testing"

	"pgregory.net/rapid"
)

// applyRandomEdit draws and performs one recordable edit. It reports whether
// the edit succeeded and so was recorded.
func applyRandomEdit(t *rapid.T, s *Session, i int) bool {
	n := s.Len()
	content := fmt.Sprintf("line-%d", i)
	switch rapid.IntRange(0, 5).Draw(t, "op") {
	case 0:
		_, err := s.Insert(content, rapid.IntRange(-1, n+2).Draw(t, "insertAt"))
		return err == nil
	case 1:
		_, err := s.Delete(rapid.IntRange(0, n+1).Draw(t, "deleteAt"))
		return err == nil
	case 2:
		return s.Edit(rapid.IntRange(0, n+1).Draw(t, "editAt"), content) == nil
	case 3:
		start := rapid.IntRange(0, n+1).Draw(t, "cutStart")
		_, err := s.Cut(start, start+rapid.IntRange(0, 3).Draw(t, "cutLen"))
		return err == nil
	case 4:
		_, err := s.Paste(rapid.IntRange(0, n+2).Draw(t, "pasteAt"), s.Copy(1, rapid.IntRange(0, n).Draw(t, "copyEnd")))
		return err == nil
	default:
		count, err := s.FindAndReplace(fmt.Sprintf("-%d", rapid.IntRange(0, i).Draw(t, "find")), "-r")
		return err == nil && count > 0
	}
}

func TestProperty_UndoRedoInverse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New(Options{})
		edits := 0
		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			if applyRandomEdit(t, s, i) {
				edits++
			}
			if !s.Consistent() {
				t.Fatalf("inconsistent after step %d", i)
			}
		}
		after := s.Lines()

		done, _ := s.Depth()
		if done != edits {
			t.Fatalf("done has %d records, want %d", done, edits)
		}

		for i := 0; i < edits; i++ {
			if _, err := s.Undo(); err != nil {
				t.Fatalf("undo %d: %v", i, err)
			}
		}
		if s.Len() != 0 {
			t.Fatalf("buffer not empty after undoing everything: %q", s.Lines())
		}
		if _, err := s.Undo(); err == nil {
			t.Fatalf("undo past the start succeeded")
		}

		for i := 0; i < edits; i++ {
			if _, err := s.Redo(); err != nil {
				t.Fatalf("redo %d: %v", i, err)
			}
		}
		got := s.Lines()
		if !slices.Equal(got, after) {
			t.Fatalf("redo produced %q, want %q", got, after)
		}
		if s.CanRedo() {
			t.Fatalf("redo log not drained")
		}
	})
}

func TestProperty_NewEditClearsRedo(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New(Options{})
		n := rapid.IntRange(1, 10).Draw(t, "inserts")
		for i := 0; i < n; i++ {
			if _, err := s.Insert(fmt.Sprint(i), i+1); err != nil {
				t.Fatal(err)
			}
		}
		k := rapid.IntRange(1, n).Draw(t, "undos")
		for i := 0; i < k; i++ {
			if _, err := s.Undo(); err != nil {
				t.Fatal(err)
			}
		}
		if _, err := s.Insert("new", rapid.IntRange(1, s.Len()+1).Draw(t, "at")); err != nil {
			t.Fatal(err)
		}
		if _, err := s.Redo(); err == nil {
			t.Fatalf("redo succeeded after a new edit")
		}
	})
}
