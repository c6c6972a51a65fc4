// Package diff compares two versions of a document line by line.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Op says which side of the comparison a line belongs to.
type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

func (o Op) prefix() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	default:
		return " "
	}
}

// Line is one line of a line diff. OldNo and NewNo are 1-based line numbers
// on each side; the side a line is absent from has 0.
type Line struct {
	Op    Op
	Text  string
	OldNo int
	NewNo int
}

// Lines diffs before against after. Both sides are joined and re-split after '\n'
// first, so the comparison matches what the files would contain on disk.
func Lines(before, after []string) []Line {
	dmp := diffmatchpatch.New()
	a, b, table := dmp.DiffLinesToChars(strings.Join(before, ""), strings.Join(after, ""))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), table)

	var (
		out          []Line
		oldNo, newNo int
	)
	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				oldNo++
				newNo++
				out = append(out, Line{Op: Equal, Text: text, OldNo: oldNo, NewNo: newNo})
			case diffmatchpatch.DiffDelete:
				oldNo++
				out = append(out, Line{Op: Delete, Text: text, OldNo: oldNo})
			case diffmatchpatch.DiffInsert:
				newNo++
				out = append(out, Line{Op: Insert, Text: text, NewNo: newNo})
			}
		}
	}
	return out
}

// Changed reports whether any line differs.
func Changed(lines []Line) bool {
	for _, l := range lines {
		if l.Op != Equal {
			return true
		}
	}
	return false
}

// Stats counts inserted and deleted lines.
func Stats(lines []Line) (inserted, deleted int) {
	for _, l := range lines {
		switch l.Op {
		case Insert:
			inserted++
		case Delete:
			deleted++
		}
	}
	return inserted, deleted
}

// Unified renders a unified diff with the given number of context lines.
// Identical inputs render as the empty string.
func Unified(oldName, newName string, before, after []string, context int) string {
	lines := Lines(before, after)
	if !Changed(lines) {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", oldName, newName)
	for _, h := range hunks(lines, max(context, 0)) {
		writeHunk(&sb, lines, h)
	}
	return sb.String()
}

type span struct{ from, to int }

// hunks groups changed lines with their context, merging groups that touch.
func hunks(lines []Line, context int) []span {
	var out []span
	for i, l := range lines {
		if l.Op == Equal {
			continue
		}
		from := max(i-context, 0)
		to := min(i+context+1, len(lines))
		if n := len(out); n > 0 && from <= out[n-1].to {
			out[n-1].to = max(out[n-1].to, to)
			continue
		}
		out = append(out, span{from, to})
	}
	return out
}

func writeHunk(sb *strings.Builder, all []Line, h span) {
	// Lines on each side that come before the hunk.
	var oldBefore, newBefore int
	for _, l := range all[:h.from] {
		if l.Op != Insert {
			oldBefore++
		}
		if l.Op != Delete {
			newBefore++
		}
	}

	lines := all[h.from:h.to]
	oldCount, newCount := 0, 0
	for _, l := range lines {
		if l.Op != Insert {
			oldCount++
		}
		if l.Op != Delete {
			newCount++
		}
	}

	fmt.Fprintf(sb, "@@ -%s +%s @@\n", hunkRange(oldBefore, oldCount), hunkRange(newBefore, newCount))
	for _, l := range lines {
		sb.WriteString(l.Op.prefix())
		sb.WriteString(strings.TrimSuffix(l.Text, "\n"))
		sb.WriteByte('\n')
		if !strings.HasSuffix(l.Text, "\n") {
			sb.WriteString("\\ No newline at end of file\n")
		}
	}
}

// hunkRange formats one side of a hunk header. An empty side points at the
// line before the hunk.
func hunkRange(before, count int) string {
	if count == 0 {
		return fmt.Sprintf("%d,0", before)
	}
	return fmt.Sprintf("%d,%d", before+1, count)
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.SplitAfter(text, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
