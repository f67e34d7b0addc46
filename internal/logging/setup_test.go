package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/isseis/go-qrfile/internal/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunID(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
}

func TestSetup_RequiresWriter(t *testing.T) {
	_, err := Setup(LoggerConfig{})
	assert.ErrorIs(t, err, ErrLoggerWriterRequired)
}

func TestSetup_NonInteractive(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Setup(LoggerConfig{Level: slog.LevelWarn, Writer: &buf, RunID: "01HTEST"})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("visible", "path", "a.bin")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "msg=visible")
	assert.Contains(t, out, "run_id=01HTEST")
	assert.Contains(t, out, "path=a.bin")
}

func TestSetup_Interactive(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Setup(LoggerConfig{
		Level:        slog.LevelInfo,
		Writer:       &buf,
		RunID:        "01HTEST",
		Capabilities: terminal.Capabilities{Interactive: true},
	})
	require.NoError(t, err)

	logger.Info("decoded file", "output", "out.bin")

	assert.Equal(t, "[INFO ] decoded file output=out.bin\n", buf.String())
}
