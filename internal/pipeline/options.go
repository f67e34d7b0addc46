package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/isseis/go-qrfile/internal/qrsymbol"
)

// OutputFileMode is the permission given to written images and decoded files.
const OutputFileMode os.FileMode = 0o644

// Option configures an Encoder or Decoder
type Option func(*options)

type options struct {
	renderer     qrsymbol.Renderer
	detector     qrsymbol.Detector
	renderConfig qrsymbol.RenderConfig
	logger       *slog.Logger
	verify       bool
	hash         HashAlgorithm
}

func defaultOptions() *options {
	return &options{
		renderer:     qrsymbol.NewSkipRenderer(),
		detector:     qrsymbol.NewZXingDetector(),
		renderConfig: qrsymbol.DefaultRenderConfig(),
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		hash:         &SHA256{},
	}
}

// WithRenderer replaces the QR renderer
func WithRenderer(renderer qrsymbol.Renderer) Option {
	return func(opts *options) {
		opts.renderer = renderer
	}
}

// WithDetector replaces the QR detector
func WithDetector(detector qrsymbol.Detector) Option {
	return func(opts *options) {
		opts.detector = detector
	}
}

// WithRenderConfig sets the error correction level, module size and border
func WithRenderConfig(cfg qrsymbol.RenderConfig) Option {
	return func(opts *options) {
		opts.renderConfig = cfg
	}
}

// WithLogger sets the logger used for stage progress
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

// WithVerify makes the Encoder read each image back before committing it
func WithVerify(enabled bool) Option {
	return func(opts *options) {
		opts.verify = enabled
	}
}

// WithHashAlgorithm replaces the digest used by verification
func WithHashAlgorithm(hash HashAlgorithm) Option {
	return func(opts *options) {
		if hash != nil {
			opts.hash = hash
		}
	}
}

func buildOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// checkpoint aborts between stages once ctx is done.
func checkpoint(ctx context.Context, next Stage, path string) error {
	if err := ctx.Err(); err != nil {
		return newStageError(next, path, KindCanceled, err)
	}
	return nil
}
