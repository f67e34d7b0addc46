package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errWriteFailed = errors.New("write failed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWriteFailed
}

func newTestInteractiveHandler(t *testing.T, buf *bytes.Buffer, interactive bool) *InteractiveHandler {
	t.Helper()
	h, err := NewInteractiveHandler(InteractiveHandlerOptions{
		Level:       slog.LevelInfo,
		Writer:      buf,
		Interactive: interactive,
		Formatter:   NewDefaultMessageFormatter(),
	})
	require.NoError(t, err)
	return h
}

func TestNewInteractiveHandler_Validation(t *testing.T) {
	_, err := NewInteractiveHandler(InteractiveHandlerOptions{Formatter: NewDefaultMessageFormatter()})
	assert.ErrorIs(t, err, ErrInteractiveHandlerWriterRequired)

	_, err = NewInteractiveHandler(InteractiveHandlerOptions{Writer: &bytes.Buffer{}})
	assert.ErrorIs(t, err, ErrInteractiveHandlerFormatterRequired)
}

func TestInteractiveHandler_Enabled(t *testing.T) {
	var buf bytes.Buffer
	h := newTestInteractiveHandler(t, &buf, true)
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))

	quiet := newTestInteractiveHandler(t, &buf, false)
	assert.False(t, quiet.Enabled(context.Background(), slog.LevelError))
}

func TestInteractiveHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTestInteractiveHandler(t, &buf, true))

	logger.Info("encoded file", "input", "data.bin", "output", "data.png")

	assert.Equal(t, "[INFO ] encoded file input=data.bin output=data.png\n", buf.String())
}

func TestInteractiveHandler_NonInteractiveWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	h := newTestInteractiveHandler(t, &buf, false)

	require.NoError(t, h.Handle(context.Background(), slog.NewRecord(testTime, slog.LevelError, "failed", 0)))
	assert.Empty(t, buf.String())
}

func TestInteractiveHandler_ErrorHint(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTestInteractiveHandler(t, &buf, true))

	logger.Error("conversion failed", "error", "payload too large", "kind", "payload_too_large")

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `[ERROR] conversion failed error="payload too large" kind=payload_too_large`, lines[0])
	assert.Equal(t, "HINT: "+hints["payload_too_large"], lines[1])
}

func TestInteractiveHandler_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTestInteractiveHandler(t, &buf, true))

	logger.With("run_id", "01H").WithGroup("decode").With("profile", "plain").Info("loaded image", "path", "in.png")

	out := buf.String()
	assert.Contains(t, out, "decode.path=in.png")
	assert.Contains(t, out, "decode.profile=plain")
	assert.NotContains(t, out, "run_id", "run_id is not shown on a terminal")
}

func TestInteractiveHandler_WriteError(t *testing.T) {
	h, err := NewInteractiveHandler(InteractiveHandlerOptions{
		Writer:      failingWriter{},
		Interactive: true,
		Formatter:   NewDefaultMessageFormatter(),
	})
	require.NoError(t, err)

	err = h.Handle(context.Background(), slog.NewRecord(testTime, slog.LevelInfo, "x", 0))
	assert.ErrorIs(t, err, errWriteFailed)
}
