package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadCommand reports prompt input that does not parse.
var ErrBadCommand = errors.New("bad command")

// Verb identifies a prompt command.
type Verb int

const (
	VerbInsert Verb = iota
	VerbDelete
	VerbEdit
	VerbCopy
	VerbCut
	VerbPaste
	VerbReplace
	VerbUndo
	VerbRedo
	VerbWrite
	VerbDiff
	VerbHelp
	VerbQuit
	VerbForceQuit
)

// Command is one parsed prompt line.
type Command struct {
	Verb  Verb
	Pos   int    // insert, delete, edit, paste; start for copy/cut
	End   int    // copy, cut
	Text  string // insert, edit
	Find  string // replace
	With  string // replace
	Path  string // write
	Count int    // undo, redo
}

var verbs = map[string]Verb{
	"i":      VerbInsert,
	"insert": VerbInsert,
	"d":      VerbDelete,
	"delete": VerbDelete,
	"e":      VerbEdit,
	"edit":   VerbEdit,
	"y":      VerbCopy,
	"copy":   VerbCopy,
	"x":      VerbCut,
	"cut":    VerbCut,
	"p":      VerbPaste,
	"paste":  VerbPaste,
	"u":      VerbUndo,
	"undo":   VerbUndo,
	"r":      VerbRedo,
	"redo":   VerbRedo,
	"w":      VerbWrite,
	"write":  VerbWrite,
	"diff":   VerbDiff,
	"h":      VerbHelp,
	"help":   VerbHelp,
	"q":      VerbQuit,
	"quit":   VerbQuit,
	"q!":     VerbForceQuit,
}

// ParseCommand parses a prompt line such as "i 3 hello world" or
// "s/foo/bar/". Text arguments keep their inner spacing.
func ParseCommand(input string) (Command, error) {
	input = strings.TrimLeft(input, " \t")
	if input == "" {
		return Command{}, fmt.Errorf("%w: empty input", ErrBadCommand)
	}
	if len(input) > 1 && input[0] == 's' && isDelimiter(input[1]) {
		return parseSubstitute(input)
	}

	name, rest, _ := strings.Cut(input, " ")
	verb, ok := verbs[name]
	if !ok {
		return Command{}, fmt.Errorf("%w: unknown command %q", ErrBadCommand, name)
	}
	cmd := Command{Verb: verb}

	var err error
	switch verb {
	case VerbInsert, VerbEdit:
		pos, text, _ := strings.Cut(strings.TrimLeft(rest, " "), " ")
		if cmd.Pos, err = number(name, "position", pos); err != nil {
			return Command{}, err
		}
		cmd.Text = text
	case VerbDelete, VerbPaste:
		if cmd.Pos, err = number(name, "position", strings.TrimSpace(rest)); err != nil {
			return Command{}, err
		}
	case VerbCopy, VerbCut:
		fields := strings.Fields(rest)
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("%w: %s needs <start> <end>", ErrBadCommand, name)
		}
		if cmd.Pos, err = number(name, "start", fields[0]); err != nil {
			return Command{}, err
		}
		if cmd.End, err = number(name, "end", fields[1]); err != nil {
			return Command{}, err
		}
	case VerbUndo, VerbRedo:
		cmd.Count = 1
		if arg := strings.TrimSpace(rest); arg != "" {
			if cmd.Count, err = number(name, "count", arg); err != nil {
				return Command{}, err
			}
			if cmd.Count < 1 {
				return Command{}, fmt.Errorf("%w: %s count must be positive", ErrBadCommand, name)
			}
		}
	case VerbWrite:
		cmd.Path = strings.TrimSpace(rest)
	default:
		if strings.TrimSpace(rest) != "" {
			return Command{}, fmt.Errorf("%w: %s takes no arguments", ErrBadCommand, name)
		}
	}
	return cmd, nil
}

func number(verb, what, s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: %s needs a %s", ErrBadCommand, verb, what)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %s %q is not a number", ErrBadCommand, verb, what, s)
	}
	return n, nil
}

func isDelimiter(c byte) bool {
	return c == '/' || c == '|' || c == '#' || c == ','
}

// parseSubstitute handles s<d>find<d>replace[<d>] where <d> is the
// delimiter after "s". A backslash escapes the delimiter.
func parseSubstitute(input string) (Command, error) {
	delim := input[1]
	var parts []string
	var sb strings.Builder
	body := input[2:]
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body) && body[i+1] == delim:
			sb.WriteByte(delim)
			i++
		case c == delim:
			parts = append(parts, sb.String())
			sb.Reset()
		default:
			sb.WriteByte(c)
		}
	}
	parts = append(parts, sb.String())

	// A trailing delimiter leaves an empty final part.
	if len(parts) == 3 && parts[2] == "" {
		parts = parts[:2]
	}
	if len(parts) != 2 {
		return Command{}, fmt.Errorf("%w: use s/find/replace/", ErrBadCommand)
	}
	if parts[0] == "" {
		return Command{}, fmt.Errorf("%w: empty search pattern", ErrBadCommand)
	}
	return Command{Verb: VerbReplace, Find: parts[0], With: parts[1]}, nil
}
