// Package script runs batches of edits described in YAML against a session.
//
// A script is a list of steps, each naming one operation:
//
//	steps:
//	  - op: insert
//	    position: 1
//	    text: "# Title"
//	  - op: replace
//	    find: foo
//	    with: bar
//	  - op: undo
//
// Text is given without a line terminator; one is added unless raw is set.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/linedit/internal/editor"
	"github.com/zjrosen/linedit/internal/fileio"
	"github.com/zjrosen/linedit/internal/log"
	"github.com/zjrosen/linedit/internal/tracing"
)

// Op names a script operation.
type Op string

const (
	OpInsert  Op = "insert"
	OpDelete  Op = "delete"
	OpEdit    Op = "edit"
	OpCopy    Op = "copy"
	OpCut     Op = "cut"
	OpPaste   Op = "paste"
	OpReplace Op = "replace"
	OpUndo    Op = "undo"
	OpRedo    Op = "redo"
)

// ErrInvalidScript reports a script that fails validation.
var ErrInvalidScript = errors.New("invalid script")

// Step is one operation. Only the fields the operation uses are read.
type Step struct {
	Op       Op     `yaml:"op"`
	Position int    `yaml:"position,omitempty"`
	Start    int    `yaml:"start,omitempty"`
	End      int    `yaml:"end,omitempty"`
	Text     string `yaml:"text,omitempty"`
	Find     string `yaml:"find,omitempty"`
	With     string `yaml:"with,omitempty"`
	// Times repeats undo and redo. Zero means once.
	Times int `yaml:"times,omitempty"`
}

// Script is a parsed edit script.
type Script struct {
	// Raw stores text exactly as written, without adding a terminator.
	Raw   bool   `yaml:"raw,omitempty"`
	Steps []Step `yaml:"steps"`
}

// Parse decodes and validates a script. Unknown fields are rejected.
func Parse(r io.Reader) (Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return Script{}, fmt.Errorf("%w: empty script", ErrInvalidScript)
		}
		return Script{}, fmt.Errorf("%w: parsing YAML: %w", ErrInvalidScript, err)
	}
	if err := s.Validate(); err != nil {
		return Script{}, err
	}
	return s, nil
}

// ParseFile reads and parses the script at path.
func ParseFile(path string) (Script, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from the --script flag
	if err != nil {
		return Script{}, fmt.Errorf("opening script: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Validate checks that every step names a known operation with the fields
// it needs.
func (s Script) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidScript)
	}
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("%w: step %d: %w", ErrInvalidScript, i+1, err)
		}
	}
	return nil
}

func (st Step) validate() error {
	switch st.Op {
	case OpInsert, OpEdit, OpDelete, OpPaste:
		if st.Position == 0 {
			return fmt.Errorf("%s needs position", st.Op)
		}
	case OpCopy, OpCut:
		if st.Start == 0 || st.End == 0 {
			return fmt.Errorf("%s needs start and end", st.Op)
		}
	case OpReplace:
		if st.Find == "" {
			return fmt.Errorf("replace needs find")
		}
	case OpUndo, OpRedo:
		if st.Times < 0 {
			return fmt.Errorf("%s times must not be negative", st.Op)
		}
	case "":
		return fmt.Errorf("missing op")
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
	return nil
}

// Result summarizes a run.
type Result struct {
	Applied  int
	Replaced int
	// Clip is the text of the last copy or cut.
	Clip string
}

// Run applies the steps in order and stops at the first failure. Steps
// before the failure stay applied and can be undone on the session.
func Run(ctx context.Context, tracer trace.Tracer, s *editor.Session, sc Script) (Result, error) {
	if tracer == nil {
		tracer = tracing.Noop().Tracer()
	}
	_, span := tracer.Start(ctx, tracing.SpanScriptRun, trace.WithAttributes(
		attribute.String(tracing.AttrSessionID, s.ID()),
		attribute.Int(tracing.AttrLineCount, s.Len()),
	))

	var res Result
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			tracing.End(span, err)
			return res, err
		}
		span.AddEvent("step", trace.WithAttributes(
			attribute.Int(tracing.AttrScriptStep, i+1),
			attribute.String(tracing.AttrScriptOp, string(step.Op)),
		))
		if err := sc.apply(s, step, &res); err != nil {
			err = fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
			log.ErrorErr(log.CatScript, "script step failed", err)
			tracing.End(span, err)
			return res, err
		}
		res.Applied++
	}

	log.Info(log.CatScript, "script applied", "steps", res.Applied, "replaced", res.Replaced)
	span.SetAttributes(attribute.Int(tracing.AttrReplaced, res.Replaced))
	tracing.End(span, nil)
	return res, nil
}

func (sc Script) text(t string) string {
	if sc.Raw {
		return t
	}
	return fileio.Terminated(t)
}

func (sc Script) apply(s *editor.Session, st Step, res *Result) error {
	switch st.Op {
	case OpInsert:
		_, err := s.Insert(sc.text(st.Text), st.Position)
		return err
	case OpDelete:
		_, err := s.Delete(st.Position)
		return err
	case OpEdit:
		return s.Edit(st.Position, sc.text(st.Text))
	case OpCopy:
		res.Clip = s.Copy(st.Start, st.End).String()
		return nil
	case OpCut:
		clip, err := s.Cut(st.Start, st.End)
		if err != nil {
			return err
		}
		res.Clip = clip.String()
		return nil
	case OpPaste:
		_, err := s.PasteRegister(st.Position)
		return err
	case OpReplace:
		n, err := s.FindAndReplace(st.Find, st.With)
		res.Replaced += n
		return err
	case OpUndo:
		for range max(st.Times, 1) {
			if _, err := s.Undo(); err != nil {
				return err
			}
		}
		return nil
	case OpRedo:
		for range max(st.Times, 1) {
			if _, err := s.Redo(); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown op %q", st.Op)
}
