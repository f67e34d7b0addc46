// Package qrsymbol puts the QR symbol libraries behind two narrow
// capabilities: a Renderer that turns text into a raster image and a Detector
// that recovers text from a raster image. It also loads and saves the raster
// formats the command line tool accepts.
package qrsymbol

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

// Level is the QR error correction level.
type Level int

// Error correction levels, from most capacity to most redundancy
const (
	LevelLow     Level = iota // ~7% recovery
	LevelMedium               // ~15% recovery
	LevelHigh                 // ~25% recovery
	LevelHighest              // ~30% recovery
)

// Default render settings: maximum redundancy and large modules favour scan
// robustness over image size.
const (
	DefaultModuleSize = 10
	DefaultBorder     = 4
	MaxModuleSize     = 100
	MaxBorder         = 64
)

var levelNames = map[string]Level{
	"low":     LevelLow,
	"medium":  LevelMedium,
	"high":    LevelHigh,
	"highest": LevelHighest,
}

// ParseLevel converts a level name ("low", "medium", "high", "highest") to a Level.
func ParseLevel(name string) (Level, error) {
	level, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown error correction level %q", ErrInvalidRenderConfig, name)
	}
	return level, nil
}

// String returns the level name.
func (l Level) String() string {
	for name, level := range levelNames {
		if level == l {
			return name
		}
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// RenderConfig controls symbol generation. The symbol version is always
// chosen automatically as the smallest one that fits the payload.
type RenderConfig struct {
	Level      Level // Error correction level
	ModuleSize int   // Pixels per module
	Border     int   // Quiet zone width in modules
}

// DefaultRenderConfig returns the highest error correction level with 10px
// modules and a 4-module border.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Level:      LevelHighest,
		ModuleSize: DefaultModuleSize,
		Border:     DefaultBorder,
	}
}

// Validate checks that every field is within range.
func (c RenderConfig) Validate() error {
	if c.Level < LevelLow || c.Level > LevelHighest {
		return fmt.Errorf("%w: level %d", ErrInvalidRenderConfig, int(c.Level))
	}
	if c.ModuleSize < 1 || c.ModuleSize > MaxModuleSize {
		return fmt.Errorf("%w: module size %d (expected 1-%d)", ErrInvalidRenderConfig, c.ModuleSize, MaxModuleSize)
	}
	if c.Border < 0 || c.Border > MaxBorder {
		return fmt.Errorf("%w: border %d (expected 0-%d)", ErrInvalidRenderConfig, c.Border, MaxBorder)
	}
	return nil
}

// Symbol is a rendered QR code.
type Symbol struct {
	Image   image.Image
	Version int // QR version, 1 to 40
	Modules int // Modules per side, excluding the border
}

// Renderer turns a text payload into a QR symbol image.
type Renderer interface {
	Render(text string, cfg RenderConfig) (*Symbol, error)
}

// SkipRenderer renders symbols with github.com/skip2/go-qrcode.
type SkipRenderer struct{}

// NewSkipRenderer creates a new renderer
func NewSkipRenderer() *SkipRenderer {
	return &SkipRenderer{}
}

var skipLevels = map[Level]skipqrcode.RecoveryLevel{
	LevelLow:     skipqrcode.Low,
	LevelMedium:  skipqrcode.Medium,
	LevelHigh:    skipqrcode.High,
	LevelHighest: skipqrcode.Highest,
}

// Render encodes text into the smallest symbol version that holds it at
// cfg.Level and paints it black on white.
func (r *SkipRenderer) Render(text string, cfg RenderConfig) (*Symbol, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, ErrPayloadEmpty
	}

	q, err := skipqrcode.New(text, skipLevels[cfg.Level])
	if err != nil {
		// Non-empty content only fails when no version can hold it
		return nil, fmt.Errorf("%w: %d characters at level %s: %v", ErrPayloadTooLarge, len(text), cfg.Level, err)
	}
	q.DisableBorder = true

	bitmap := q.Bitmap()
	return &Symbol{
		Image:   paint(bitmap, cfg.ModuleSize, cfg.Border),
		Version: q.VersionNumber,
		Modules: len(bitmap),
	}, nil
}

// paint scales a module bitmap into a two-colour image with a quiet zone.
func paint(bitmap [][]bool, moduleSize, border int) *image.Paletted {
	side := (len(bitmap) + 2*border) * moduleSize
	palette := color.Palette{color.White, color.Black}
	img := image.NewPaletted(image.Rect(0, 0, side, side), palette)

	offset := border * moduleSize
	for y, row := range bitmap {
		for x, dark := range row {
			if !dark {
				continue
			}
			for dy := 0; dy < moduleSize; dy++ {
				start := img.PixOffset(offset+x*moduleSize, offset+y*moduleSize+dy)
				for dx := 0; dx < moduleSize; dx++ {
					img.Pix[start+dx] = 1
				}
			}
		}
	}
	return img
}
