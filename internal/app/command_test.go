package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"i 3 hello world", Command{Verb: VerbInsert, Pos: 3, Text: "hello world"}},
		{"insert 1  two  spaces", Command{Verb: VerbInsert, Pos: 1, Text: " two  spaces"}},
		{"i 2", Command{Verb: VerbInsert, Pos: 2}},
		{"i -4 front", Command{Verb: VerbInsert, Pos: -4, Text: "front"}},
		{"d 5", Command{Verb: VerbDelete, Pos: 5}},
		{"delete 1", Command{Verb: VerbDelete, Pos: 1}},
		{"e 2 new text", Command{Verb: VerbEdit, Pos: 2, Text: "new text"}},
		{"y 1 3", Command{Verb: VerbCopy, Pos: 1, End: 3}},
		{"copy 4 2", Command{Verb: VerbCopy, Pos: 4, End: 2}},
		{"x 2 2", Command{Verb: VerbCut, Pos: 2, End: 2}},
		{"p 1", Command{Verb: VerbPaste, Pos: 1}},
		{"s/foo/bar/", Command{Verb: VerbReplace, Find: "foo", With: "bar"}},
		{"s/foo/bar", Command{Verb: VerbReplace, Find: "foo", With: "bar"}},
		{"s/foo//", Command{Verb: VerbReplace, Find: "foo"}},
		{`s/a\/b/c/`, Command{Verb: VerbReplace, Find: "a/b", With: "c"}},
		{"s|/usr|/opt|", Command{Verb: VerbReplace, Find: "/usr", With: "/opt"}},
		{"u", Command{Verb: VerbUndo, Count: 1}},
		{"undo 3", Command{Verb: VerbUndo, Count: 3}},
		{"r", Command{Verb: VerbRedo, Count: 1}},
		{"w", Command{Verb: VerbWrite}},
		{"write out.txt", Command{Verb: VerbWrite, Path: "out.txt"}},
		{"diff", Command{Verb: VerbDiff}},
		{"help", Command{Verb: VerbHelp}},
		{"q", Command{Verb: VerbQuit}},
		{"q!", Command{Verb: VerbForceQuit}},
		{"  d 2", Command{Verb: VerbDelete, Pos: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCommand(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommand_Errors(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"", "empty input"},
		{"zz 1", `unknown command "zz"`},
		{"i", "needs a position"},
		{"i x text", "is not a number"},
		{"d", "needs a position"},
		{"y 1", "needs <start> <end>"},
		{"x 1 b", "is not a number"},
		{"u 0", "count must be positive"},
		{"u many", "is not a number"},
		{"q now", "takes no arguments"},
		{"s/only", "use s/find/replace/"},
		{"s/a/b/c", "use s/find/replace/"},
		{"s//b/", "empty search pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseCommand(tt.input)
			require.ErrorIs(t, err, ErrBadCommand)
			require.Contains(t, err.Error(), tt.message)
		})
	}
}
