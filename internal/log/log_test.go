package log

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/linedit/internal/pubsub"
)

func withBuffer(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)
	return &buf
}

func TestLog_NoLoggerIsSilent(t *testing.T) {
	Reset()
	Info(CatBuffer, "nobody listening")
	require.Nil(t, NewListener(context.Background()))
}

func TestLog_Format(t *testing.T) {
	buf := withBuffer(t)

	Info(CatHistory, "undo", "kind", "inserted", "position", 3)

	line := strings.TrimSpace(buf.String())
	require.Contains(t, line, "[INFO] [history] undo kind=inserted position=3")
}

func TestLog_OddFieldCount(t *testing.T) {
	buf := withBuffer(t)
	Warn(CatIO, "odd", "orphan")
	require.Contains(t, buf.String(), "orphan=<missing>")
}

func TestLog_ErrorErr(t *testing.T) {
	buf := withBuffer(t)
	ErrorErr(CatIO, "save failed", errors.New("disk full"), "path", "/tmp/x")
	ErrorErr(CatIO, "odd nil", nil)

	out := buf.String()
	require.Contains(t, out, "[ERROR] [io] save failed path=/tmp/x error=disk full")
	require.Contains(t, out, "error=<nil>")
}

func TestLog_MinLevelAndEnabled(t *testing.T) {
	buf := withBuffer(t)

	SetMinLevel(LevelWarn)
	Debug(CatUI, "hidden")
	Info(CatUI, "hidden")
	Error(CatUI, "shown")

	SetEnabled(false)
	Error(CatUI, "also hidden")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown")
}

func TestLog_ListenerReceivesLines(t *testing.T) {
	withBuffer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewListener(ctx)
	require.NotNil(t, l)

	Info(CatConfig, "loaded", "path", "config.yaml")

	done := make(chan any, 1)
	go func() { done <- l.Listen()() }()

	select {
	case msg := <-done:
		event, ok := msg.(pubsub.Event[string])
		require.True(t, ok)
		require.Equal(t, pubsub.LoggedEvent, event.Type)
		require.Contains(t, event.Payload, "loaded path=config.yaml")
	case <-time.After(time.Second):
		require.Fail(t, "timeout waiting for log event")
	}
}

func TestInit_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := Init(path)
	require.NoError(t, err)
	t.Cleanup(Reset)

	Info(CatIO, "hello")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[INFO] [io] hello")
}

func TestInit_BadPath(t *testing.T) {
	_, err := Init(filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, LevelInfo, ParseLevel("INFO"))
	require.Equal(t, LevelWarn, ParseLevel("warning"))
	require.Equal(t, LevelError, ParseLevel("error"))
	require.Equal(t, LevelDebug, ParseLevel("whatever"))
	require.Equal(t, "UNKNOWN", Level(9).String())
}
