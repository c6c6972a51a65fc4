package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func readRecords(t *testing.T, path string) []SpanRecord {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []SpanRecord
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var r SpanRecord
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r), "line must be valid JSON")
		out = append(out, r)
	}
	require.NoError(t, sc.Err())
	return out
}

func TestFileExporter_WritesJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces.jsonl")
	exporter, err := NewFileExporter(path)
	require.NoError(t, err)

	start := time.Now()
	stub := tracetest.SpanStub{
		Name:      SpanPrefixEditor + "undo",
		StartTime: start,
		EndTime:   start.Add(50 * time.Millisecond),
		Status:    sdktrace.Status{Code: codes.Error, Description: "nothing to undo"},
		Attributes: []attribute.KeyValue{
			attribute.String(AttrRecordKind, "group"),
			attribute.Int(AttrPosition, 3),
		},
		Events: []sdktrace.Event{{
			Name:       "rollback",
			Time:       start,
			Attributes: []attribute.KeyValue{attribute.Int(AttrScriptStep, 2)},
		}},
	}

	require.NoError(t, exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()}))
	require.NoError(t, exporter.Shutdown(context.Background()))

	records := readRecords(t, path)
	require.Len(t, records, 1)
	r := records[0]
	require.Equal(t, "editor.undo", r.Name)
	require.Equal(t, "ERROR", r.Status)
	require.Equal(t, "nothing to undo", r.StatusMsg)
	require.InDelta(t, 50.0, r.DurationMs, 0.001)
	require.Equal(t, "group", r.Attributes[AttrRecordKind])
	require.EqualValues(t, 3, r.Attributes[AttrPosition])
	require.Len(t, r.Events, 1)
	require.Equal(t, "rollback", r.Events[0].Name)
	require.EqualValues(t, 2, r.Events[0].Attributes[AttrScriptStep])
}

func TestFileExporter_EmptyBatchAndShutdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces.jsonl")
	exporter, err := NewFileExporter(path)
	require.NoError(t, err)

	require.NoError(t, exporter.ExportSpans(context.Background(), nil))
	require.NoError(t, exporter.Shutdown(context.Background()))
	require.NoError(t, exporter.Shutdown(context.Background()))

	stub := tracetest.SpanStub{Name: "late"}
	err = exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()})
	require.Error(t, err)
}

func TestFileExporter_ConcurrentExports(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces.jsonl")
	exporter, err := NewFileExporter(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stub := tracetest.SpanStub{Name: "concurrent", StartTime: time.Now(), EndTime: time.Now()}
			_ = exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()})
		}()
	}
	wg.Wait()
	require.NoError(t, exporter.Shutdown(context.Background()))

	require.Len(t, readRecords(t, path), 8)
}
