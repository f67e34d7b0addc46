package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
)

// Static errors for InteractiveHandler validation
var (
	ErrInteractiveHandlerWriterRequired    = errors.New("InteractiveHandler: Writer is required")
	ErrInteractiveHandlerFormatterRequired = errors.New("InteractiveHandler: Formatter is required")
)

// InteractiveHandler writes short, optionally colored lines for a person at a
// terminal. Error records may be followed by a hint line from the formatter.
type InteractiveHandler struct {
	interactive bool
	useColor    bool
	formatter   MessageFormatter
	writer      io.Writer
	level       slog.Level
	attrs       []slog.Attr
	groups      []string
}

// InteractiveHandlerOptions configures the InteractiveHandler.
type InteractiveHandlerOptions struct {
	// Level is the minimum log level to handle
	Level slog.Level

	// Writer is the output destination (typically os.Stderr)
	Writer io.Writer

	// Interactive enables the handler
	Interactive bool

	// UseColor enables ANSI colors
	UseColor bool

	// Formatter handles message formatting and coloring
	Formatter MessageFormatter
}

// NewInteractiveHandler creates a new InteractiveHandler with the given options.
func NewInteractiveHandler(opts InteractiveHandlerOptions) (*InteractiveHandler, error) {
	if opts.Writer == nil {
		return nil, ErrInteractiveHandlerWriterRequired
	}
	if opts.Formatter == nil {
		return nil, ErrInteractiveHandlerFormatterRequired
	}

	return &InteractiveHandler{
		interactive: opts.Interactive,
		useColor:    opts.UseColor,
		formatter:   opts.Formatter,
		writer:      opts.Writer,
		level:       opts.Level,
	}, nil
}

// Enabled reports whether the handler handles records at the given level.
func (h *InteractiveHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.interactive && level >= h.level
}

// Handle processes a log record.
func (h *InteractiveHandler) Handle(_ context.Context, r slog.Record) error {
	if !h.interactive {
		return nil
	}

	record := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	prefix := h.groupPrefix()
	record.AddAttrs(h.attrs...)
	r.Attrs(func(attr slog.Attr) bool {
		record.AddAttrs(slog.Attr{Key: prefix + attr.Key, Value: attr.Value})
		return true
	})

	message := h.formatter.FormatRecord(record, h.useColor)
	if _, err := io.WriteString(h.writer, message+"\n"); err != nil {
		return err
	}

	if hint := h.formatter.FormatHint(record, h.useColor); hint != "" {
		if _, err := io.WriteString(h.writer, hint+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// WithAttrs returns a new handler with additional attributes.
func (h *InteractiveHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	prefix := h.groupPrefix()
	newAttrs := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	for _, attr := range attrs {
		newAttrs = append(newAttrs, slog.Attr{Key: prefix + attr.Key, Value: attr.Value})
	}

	clone := *h
	clone.attrs = newAttrs
	return &clone
}

// WithGroup returns a new handler with an additional group.
func (h *InteractiveHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	newGroups := make([]string, len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups[len(h.groups)] = name

	clone := *h
	clone.groups = newGroups
	return &clone
}

func (h *InteractiveHandler) groupPrefix() string {
	if len(h.groups) == 0 {
		return ""
	}
	return strings.Join(h.groups, ".") + "."
}
