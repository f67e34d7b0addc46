package logging

import (
	"log/slog"
	"strings"
	"time"

	"github.com/isseis/go-qrfile/internal/color"
)

// MessageFormatter renders records for the InteractiveHandler.
type MessageFormatter interface {
	// FormatRecord formats a log record for a terminal
	FormatRecord(record slog.Record, useColor bool) string

	// FormatHint returns a follow-up line for a failure record, or ""
	FormatHint(record slog.Record, useColor bool) string
}

// DefaultMessageFormatter shows a level badge, the message and the attributes
// that matter to someone converting a file.
type DefaultMessageFormatter struct{}

// NewDefaultMessageFormatter creates a new DefaultMessageFormatter.
func NewDefaultMessageFormatter() *DefaultMessageFormatter {
	return &DefaultMessageFormatter{}
}

// priorityKeys are shown first, in this order, when present
var priorityKeys = []string{"error", "stage", "kind", "path", "input", "output", "profile"}

// skipKeys are never shown on a terminal
var skipKeys = map[string]bool{
	"time":   true,
	"level":  true,
	"msg":    true,
	"run_id": true,
}

const maxInteractiveAttrs = 4

// hints maps a failure kind to a suggestion
var hints = map[string]string{
	"payload_too_large":         "the file does not fit in one QR code; try the compressed profile or a smaller file",
	"no_qr_code_found":          "make sure the image shows one QR code with its quiet zone intact",
	"invalid_encoding":          "decode with the same -profile and -encoding used to encode the image",
	"malformed_compressed_data": "decode with the same -profile and -compression used to encode the image",
	"payload_empty":             "an empty file can only be encoded with a compressing profile",
	"verification_failed":       "the image did not read back intact; try a lossless format such as .png or a larger -module-size",
}

// FormatRecord formats a log record with optional color support.
func (f *DefaultMessageFormatter) FormatRecord(record slog.Record, useColor bool) string {
	var sb strings.Builder
	sb.WriteString(f.formatLevel(record.Level, useColor))
	sb.WriteString(" ")
	sb.WriteString(record.Message)

	attrs := f.selectAttrs(record)
	for _, attr := range attrs {
		sb.WriteString(" ")
		key := attr.Key + "="
		if useColor {
			key = color.Gray(key)
		}
		sb.WriteString(key)
		sb.WriteString(formatValue(attr.Value))
	}
	return sb.String()
}

// FormatHint returns a suggestion for info and higher records that carry a
// known kind.
func (f *DefaultMessageFormatter) FormatHint(record slog.Record, useColor bool) string {
	if record.Level < slog.LevelInfo {
		return ""
	}

	var hint string
	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == "kind" || strings.HasSuffix(attr.Key, ".kind") {
			hint = hints[attr.Value.String()]
			return false
		}
		return true
	})
	if hint == "" {
		return ""
	}

	if useColor {
		return color.Cyan("* ") + hint
	}
	return "HINT: " + hint
}

// selectAttrs picks priority attributes, or the first few others when none are present
func (f *DefaultMessageFormatter) selectAttrs(record slog.Record) []slog.Attr {
	var found []slog.Attr
	for _, key := range priorityKeys {
		record.Attrs(func(attr slog.Attr) bool {
			if attr.Key == key || strings.HasSuffix(attr.Key, "."+key) {
				found = append(found, attr)
				return false
			}
			return true
		})
	}
	if len(found) > 0 {
		return found
	}

	record.Attrs(func(attr slog.Attr) bool {
		if len(found) >= maxInteractiveAttrs {
			return false
		}
		if !skipKeys[attr.Key] {
			found = append(found, attr)
		}
		return true
	})
	return found
}

// formatLevel formats the log level with visual distinction
func (f *DefaultMessageFormatter) formatLevel(level slog.Level, useColor bool) string {
	if useColor {
		switch {
		case level >= slog.LevelError:
			return color.Red("X ERROR")
		case level >= slog.LevelWarn:
			return color.Yellow("! WARN ")
		case level >= slog.LevelInfo:
			return color.Green("+ INFO ")
		default:
			return color.Gray("* DEBUG")
		}
	}

	switch {
	case level >= slog.LevelError:
		return "[ERROR]"
	case level >= slog.LevelWarn:
		return "[WARN ]"
	case level >= slog.LevelInfo:
		return "[INFO ]"
	default:
		return "[DEBUG]"
	}
}

// formatValue formats a slog.Value for display
func formatValue(value slog.Value) string {
	switch value.Kind() {
	case slog.KindTime:
		return value.Time().Format(time.RFC3339)
	case slog.KindGroup:
		attrs := value.Group()
		parts := make([]string, 0, len(attrs))
		for _, attr := range attrs {
			parts = append(parts, attr.Key+"="+formatValue(attr.Value))
		}
		return "{" + strings.Join(parts, ",") + "}"
	case slog.KindString:
		s := value.String()
		if strings.ContainsAny(s, " \t\"") {
			return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
		}
		return s
	default:
		return value.String()
	}
}
