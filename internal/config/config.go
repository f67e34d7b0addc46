// Package config resolves the converter settings from built-in defaults, an
// optional TOML file, an optional .env file, QRFILE_ environment variables and
// command line overrides, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/isseis/go-qrfile/internal/pipeline"
	"github.com/isseis/go-qrfile/internal/qrsymbol"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "QRFILE_"

// Default values for configuration fields
const (
	DefaultLogLevel    = "warn"
	DefaultRenderLevel = "highest"
)

// Config holds the resolved settings for one run.
type Config struct {
	// Profile selects a preset (compressed, plain)
	Profile string `toml:"profile" env:"PROFILE"`
	// Compression overrides the profile's compressor when non-empty
	Compression string `toml:"compression" env:"COMPRESSION"`
	// Encoding overrides the profile's text codec when non-empty
	Encoding string `toml:"encoding" env:"ENCODING"`
	// Verify reads each encoded image back before it is committed
	Verify bool `toml:"verify" env:"VERIFY"`

	Render RenderSection `toml:"render" envPrefix:"RENDER_"`
	Log    LogSection    `toml:"log" envPrefix:"LOG_"`
}

// RenderSection controls how QR symbols are drawn.
type RenderSection struct {
	ModuleSize int    `toml:"module_size" env:"MODULE_SIZE"`
	Border     int    `toml:"border" env:"BORDER"`
	Level      string `toml:"level" env:"LEVEL"`
}

// LogSection controls diagnostic logging.
type LogSection struct {
	Level string `toml:"level" env:"LEVEL"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Profile: pipeline.DefaultProfile,
		Render: RenderSection{
			ModuleSize: qrsymbol.DefaultModuleSize,
			Border:     qrsymbol.DefaultBorder,
			Level:      DefaultRenderLevel,
		},
		Log: LogSection{
			Level: DefaultLogLevel,
		},
	}
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.PipelineProfile(); err != nil {
		errs = append(errs, err)
	}
	if c.Render.ModuleSize < 1 || c.Render.ModuleSize > qrsymbol.MaxModuleSize {
		errs = append(errs, fmt.Errorf("render.module_size %d out of range 1..%d", c.Render.ModuleSize, qrsymbol.MaxModuleSize))
	}
	if c.Render.Border < 0 || c.Render.Border > qrsymbol.MaxBorder {
		errs = append(errs, fmt.Errorf("render.border %d out of range 0..%d", c.Render.Border, qrsymbol.MaxBorder))
	}
	if _, err := qrsymbol.ParseLevel(c.Render.Level); err != nil {
		errs = append(errs, fmt.Errorf("render.level: %w", err))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// PipelineProfile builds the profile named by Profile with the Compression
// and Encoding overrides applied.
func (c *Config) PipelineProfile() (pipeline.Profile, error) {
	return pipeline.ProfileFor(c.Profile, c.Compression, c.Encoding)
}

// RenderConfig converts the render section for the QR renderer.
func (c *Config) RenderConfig() (qrsymbol.RenderConfig, error) {
	level, err := qrsymbol.ParseLevel(c.Render.Level)
	if err != nil {
		return qrsymbol.RenderConfig{}, err
	}
	cfg := qrsymbol.RenderConfig{
		Level:      level,
		ModuleSize: c.Render.ModuleSize,
		Border:     c.Render.Border,
	}
	return cfg, cfg.Validate()
}

// LogLevel parses the log section level (debug, info, warn, error).
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level %q: must be one of debug, info, warn, error", c.Log.Level)
	}
	return level, nil
}
