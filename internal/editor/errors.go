package editor

import "errors"

var (
	// ErrNothingToUndo is returned by Undo when no edit has been recorded.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo is returned by Redo when no undone edit is waiting.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrHistoryDiverged is returned when a record no longer matches the
	// buffer. The record stays where it was and the buffer is unchanged.
	ErrHistoryDiverged = errors.New("history does not match buffer")

	// ErrEmptyClip is returned when pasting a clip with no lines.
	ErrEmptyClip = errors.New("nothing to paste")
)
