package pipeline

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/isseis/go-qrfile/internal/qrsymbol"
	"github.com/isseis/go-qrfile/internal/safefileio"
)

// Encoder turns files into QR code images.
type Encoder struct {
	profile      Profile
	renderer     qrsymbol.Renderer
	renderConfig qrsymbol.RenderConfig
	logger       *slog.Logger
	verifier     *verifier
}

// NewEncoder creates an Encoder for profile.
func NewEncoder(profile Profile, opts ...Option) *Encoder {
	o := buildOptions(opts)
	e := &Encoder{
		profile:      profile,
		renderer:     o.renderer,
		renderConfig: o.renderConfig,
		logger:       o.logger,
	}
	if o.verify {
		e.verifier = &verifier{
			decoder: &Decoder{profile: profile, detector: o.detector, logger: o.logger},
			hash:    o.hash,
		}
	}
	return e
}

// Profile returns the profile the Encoder was built with.
func (e *Encoder) Profile() Profile {
	return e.profile
}

// EncodeFile reads inputPath, renders its content as a QR code and writes the
// image to outputPath in the format implied by its extension. On failure
// outputPath is left untouched.
func (e *Encoder) EncodeFile(ctx context.Context, inputPath, outputPath string) (*EncodeReport, error) {
	format, err := qrsymbol.FormatForPath(outputPath)
	if err != nil {
		return nil, newStageError(StageWriteImage, outputPath, KindUnexpected, err)
	}

	if err := checkpoint(ctx, StageReadInput, inputPath); err != nil {
		return nil, err
	}
	data, err := safefileio.SafeReadFile(inputPath)
	if err != nil {
		return nil, newStageError(StageReadInput, inputPath, KindInputNotFound, err)
	}
	e.logger.Debug("Read input file", "path", inputPath, "size", len(data))

	img, report, err := e.EncodeBytes(ctx, data)
	if err != nil {
		var se *StageError
		if errors.As(err, &se) && se.Path == "" {
			se.Path = inputPath
		}
		return nil, err
	}

	if err := checkpoint(ctx, StageWriteImage, outputPath); err != nil {
		return nil, err
	}
	err = safefileio.AtomicWriteFunc(outputPath, OutputFileMode, func(w io.Writer) error {
		if e.verifier == nil {
			return qrsymbol.EncodeImage(w, img, format)
		}
		var encoded bytes.Buffer
		if err := qrsymbol.EncodeImage(io.MultiWriter(w, &encoded), img, format); err != nil {
			return err
		}
		digest, err := e.verifier.verify(ctx, encoded.Bytes(), data, outputPath)
		if err != nil {
			return err
		}
		report.Digest = e.verifier.hash.Name() + ":" + digest
		return nil
	})
	if err != nil {
		var se *StageError
		if errors.As(err, &se) {
			return nil, se
		}
		return nil, newStageError(StageWriteImage, outputPath, KindUnexpected, err)
	}

	report.Input = inputPath
	report.Output = outputPath
	e.logger.Info("Encoded file to QR code",
		"input", inputPath,
		"output", outputPath,
		"format", string(format),
		"profile", e.profile.String(),
		"symbol_version", report.SymbolVersion,
		"verified", report.Verified())

	return report, nil
}

// EncodeBytes runs the compress, text encode and render stages on data
// without touching the file system.
func (e *Encoder) EncodeBytes(ctx context.Context, data []byte) (image.Image, *EncodeReport, error) {
	if err := checkpoint(ctx, StageCompress, ""); err != nil {
		return nil, nil, err
	}
	compressed, err := e.profile.Compressor.Compress(data)
	if err != nil {
		return nil, nil, newStageError(StageCompress, "", Classify(err), err)
	}
	e.logger.Debug("Compressed payload",
		"compressor", e.profile.Compressor.Name(),
		"original_size", len(data),
		"compressed_size", len(compressed))

	if err := checkpoint(ctx, StageEncodeText, ""); err != nil {
		return nil, nil, err
	}
	text := e.profile.Codec.Encode(compressed)
	if text == "" {
		return nil, nil, newStageError(StageEncodeText, "", KindPayloadEmpty,
			fmt.Errorf("%w: %s produces no text for a %d-byte input", ErrPayloadEmpty, e.profile.String(), len(data)))
	}
	e.logger.Debug("Encoded payload text", "codec", e.profile.Codec.Name(), "encoded_size", len(text))

	if err := checkpoint(ctx, StageRender, ""); err != nil {
		return nil, nil, err
	}
	symbol, err := e.renderer.Render(text, e.renderConfig)
	if err != nil {
		return nil, nil, newStageError(StageRender, "", Classify(err), err)
	}
	e.logger.Debug("Rendered QR symbol",
		"version", symbol.Version,
		"modules", symbol.Modules,
		"level", e.renderConfig.Level.String())

	report := &EncodeReport{
		Profile:        e.profile,
		OriginalSize:   len(data),
		CompressedSize: len(compressed),
		EncodedSize:    len(text),
		BaselineSize:   base64.StdEncoding.EncodedLen(len(compressed)),
		SymbolVersion:  symbol.Version,
	}
	return symbol.Image, report, nil
}
