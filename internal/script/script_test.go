package script

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/linedit/internal/buffer"
	"github.com/zjrosen/linedit/internal/editor"
	"github.com/zjrosen/linedit/internal/tracing"
)

const sample = `
steps:
  - op: insert
    position: 1
    text: "# Title"
  - op: replace
    find: foo
    with: baz
  - op: copy
    start: 2
    end: 3
  - op: paste
    position: 99
  - op: delete
    position: 1
  - op: undo
`

func session(t *testing.T, lines ...string) *editor.Session {
	t.Helper()
	s, err := editor.FromLines(lines, editor.Options{})
	require.NoError(t, err)
	return s
}

func TestParse(t *testing.T) {
	sc, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, sc.Steps, 6)
	require.Equal(t, OpInsert, sc.Steps[0].Op)
	require.Equal(t, "# Title", sc.Steps[0].Text)
	require.Equal(t, "baz", sc.Steps[1].With)
	require.False(t, sc.Raw)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", "", "empty script"},
		{"no steps", "steps: []", "no steps"},
		{"unknown field", "steps:\n  - op: undo\n    colour: red\n", "parsing YAML"},
		{"unknown op", "steps:\n  - op: explode\n", `unknown op "explode"`},
		{"missing op", "steps:\n  - position: 1\n", "missing op"},
		{"insert without position", "steps:\n  - op: insert\n    text: x\n", "insert needs position"},
		{"cut without end", "steps:\n  - op: cut\n    start: 1\n", "cut needs start and end"},
		{"replace without find", "steps:\n  - op: replace\n    with: x\n", "replace needs find"},
		{"negative times", "steps:\n  - op: redo\n    times: -1\n", "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.yaml))
			require.ErrorIs(t, err, ErrInvalidScript)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edits.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	sc, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, sc.Steps, 6)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestRun(t *testing.T) {
	sc, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	s := session(t, "foo\n", "bar foo\n")
	res, err := Run(context.Background(), nil, s, sc)
	require.NoError(t, err)

	require.Equal(t, 6, res.Applied)
	require.Equal(t, 2, res.Replaced)
	require.Equal(t, "baz\nbar baz\n", res.Clip)
	// The final undo restores the deleted title.
	require.Equal(t, []string{"# Title\n", "baz\n", "bar baz\n", "baz\n", "bar baz\n"}, s.Lines())
}

func TestRun_Raw(t *testing.T) {
	sc := Script{Raw: true, Steps: []Step{{Op: OpInsert, Position: 1, Text: "no newline"}}}
	s := session(t)
	_, err := Run(context.Background(), nil, s, sc)
	require.NoError(t, err)
	require.Equal(t, []string{"no newline"}, s.Lines())
}

func TestRun_StopsAtFailure(t *testing.T) {
	sc := Script{Steps: []Step{
		{Op: OpInsert, Position: 1, Text: "a"},
		{Op: OpDelete, Position: 5},
		{Op: OpInsert, Position: 1, Text: "never"},
	}}
	s := session(t)

	res, err := Run(context.Background(), nil, s, sc)
	require.ErrorIs(t, err, buffer.ErrOutOfRange)
	require.ErrorContains(t, err, "step 2 (delete)")
	require.Equal(t, 1, res.Applied)
	require.Equal(t, []string{"a\n"}, s.Lines())
}

func TestRun_UndoRedoTimes(t *testing.T) {
	sc := Script{Steps: []Step{
		{Op: OpInsert, Position: 1, Text: "a"},
		{Op: OpInsert, Position: 2, Text: "b"},
		{Op: OpUndo, Times: 2},
		{Op: OpRedo},
	}}
	s := session(t)
	_, err := Run(context.Background(), nil, s, sc)
	require.NoError(t, err)
	require.Equal(t, []string{"a\n"}, s.Lines())

	_, err = Run(context.Background(), nil, s, Script{Steps: []Step{{Op: OpRedo, Times: 3}}})
	require.ErrorIs(t, err, editor.ErrNothingToRedo)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, nil, session(t), Script{Steps: []Step{{Op: OpUndo}}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_Span(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	sc := Script{Steps: []Step{{Op: OpInsert, Position: 1, Text: "a"}, {Op: OpCut, Start: 1, End: 1}}}
	_, err := Run(context.Background(), tp.Tracer("test"), session(t), sc)
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Equal(t, tracing.SpanScriptRun, spans[0].Name)
	require.Len(t, spans[0].Events, 2)
}
