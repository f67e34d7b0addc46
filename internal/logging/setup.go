package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/isseis/go-qrfile/internal/terminal"
	"github.com/oklog/ulid/v2"
)

// ErrLoggerWriterRequired is returned by Setup when no writer is configured
var ErrLoggerWriterRequired = errors.New("logger writer is required")

// LoggerConfig holds all configuration for logger setup
type LoggerConfig struct {
	Level        slog.Level
	Writer       io.Writer // destination of every handler, normally os.Stderr
	RunID        string
	Capabilities terminal.Capabilities
}

// NewRunID returns a fresh, time ordered identifier for one invocation.
func NewRunID() string {
	return ulid.Make().String()
}

// Setup builds the logger for one run. Interactive runs get the
// InteractiveHandler, everything else gets key=value lines from a
// ConditionalTextHandler. The run ID is attached to every record.
func Setup(config LoggerConfig) (*slog.Logger, error) {
	if config.Writer == nil {
		return nil, ErrLoggerWriterRequired
	}

	interactiveHandler, err := NewInteractiveHandler(InteractiveHandlerOptions{
		Level:       config.Level,
		Writer:      config.Writer,
		Interactive: config.Capabilities.Interactive,
		UseColor:    config.Capabilities.LogColor,
		Formatter:   NewDefaultMessageFormatter(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create interactive handler: %w", err)
	}

	textHandler, err := NewConditionalTextHandler(ConditionalTextHandlerOptions{
		Interactive:        config.Capabilities.Interactive,
		TextHandlerOptions: &slog.HandlerOptions{Level: config.Level},
		Writer:             config.Writer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create conditional text handler: %w", err)
	}

	var handler slog.Handler = NewMultiHandler(interactiveHandler, textHandler)
	if config.RunID != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("run_id", config.RunID)})
	}
	return slog.New(handler), nil
}
