// Package color wraps text in ANSI escape sequences for the interactive log
// handler and the conversion report.
//
//nolint:revive // package name conflicts with standard library
package color

// ANSI color codes
const (
	resetCode  = "\033[0m"
	boldCode   = "\033[1m"
	grayCode   = "\033[90m" // Bright black/gray
	greenCode  = "\033[32m"
	yellowCode = "\033[33m"
	redCode    = "\033[31m"
	cyanCode   = "\033[36m"
)

// Color represents a color function that wraps text with ANSI escape
// sequences.
type Color func(text string) string

// NewColor creates a color function with the specified ANSI code.
func NewColor(ansiCode string) Color {
	return func(text string) string {
		return ansiCode + text + resetCode
	}
}

// Plain returns text unchanged.
func Plain(text string) string {
	return text
}

// Predefined color functions
var (
	Bold   = NewColor(boldCode)
	Gray   = NewColor(grayCode)
	Green  = NewColor(greenCode)
	Yellow = NewColor(yellowCode)
	Red    = NewColor(redCode)
	Cyan   = NewColor(cyanCode)
)

// Palette assigns colors to the roles used in a conversion report.
type Palette struct {
	Success Color // headline of a successful conversion
	Label   Color // statistic names
	Value   Color // numbers
	Gain    Color // savings
	Muted   Color // secondary details such as units
}

// NewPalette returns the colored palette, or an all-Plain palette when
// enabled is false.
func NewPalette(enabled bool) Palette {
	if !enabled {
		return Palette{Success: Plain, Label: Plain, Value: Plain, Gain: Plain, Muted: Plain}
	}
	return Palette{
		Success: Green,
		Label:   Plain,
		Value:   Bold,
		Gain:    Cyan,
		Muted:   Gray,
	}
}
