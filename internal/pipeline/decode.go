package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/isseis/go-qrfile/internal/qrsymbol"
	"github.com/isseis/go-qrfile/internal/safefileio"
)

// Decoder recovers files from QR code images.
type Decoder struct {
	profile  Profile
	detector qrsymbol.Detector
	logger   *slog.Logger
}

// NewDecoder creates a Decoder for profile. The profile must be the one the
// image was encoded with.
func NewDecoder(profile Profile, opts ...Option) *Decoder {
	o := buildOptions(opts)
	return &Decoder{
		profile:  profile,
		detector: o.detector,
		logger:   o.logger,
	}
}

// Profile returns the profile the Decoder was built with.
func (d *Decoder) Profile() Profile {
	return d.profile
}

// DecodeFile loads inputImagePath, decodes the QR code it contains and writes
// the recovered bytes to outputPath, replacing any existing file. On failure
// outputPath is left untouched.
func (d *Decoder) DecodeFile(ctx context.Context, inputImagePath, outputPath string) (*DecodeReport, error) {
	if err := checkpoint(ctx, StageLoadImage, inputImagePath); err != nil {
		return nil, err
	}
	img, format, err := qrsymbol.LoadImage(inputImagePath)
	if err != nil {
		return nil, newStageError(StageLoadImage, inputImagePath, KindImageRead, err)
	}
	bounds := img.Bounds()
	d.logger.Debug("Loaded image",
		"path", inputImagePath,
		"format", format,
		"width", bounds.Dx(),
		"height", bounds.Dy())

	data, report, err := d.DecodeImage(ctx, img)
	if err != nil {
		var se *StageError
		if errors.As(err, &se) && se.Path == "" {
			se.Path = inputImagePath
		}
		return nil, err
	}

	if err := checkpoint(ctx, StageWriteOutput, outputPath); err != nil {
		return nil, err
	}
	if err := safefileio.AtomicWriteFile(outputPath, data, OutputFileMode); err != nil {
		return nil, newStageError(StageWriteOutput, outputPath, KindUnexpected, err)
	}

	report.Input = inputImagePath
	report.Output = outputPath
	d.logger.Info("Decoded QR code to file",
		"input", inputImagePath,
		"output", outputPath,
		"profile", d.profile.String(),
		"size", len(data))

	return report, nil
}

// DecodeImage runs the detect, text decode and decompress stages on img.
func (d *Decoder) DecodeImage(ctx context.Context, img image.Image) ([]byte, *DecodeReport, error) {
	if err := checkpoint(ctx, StageDetect, ""); err != nil {
		return nil, nil, err
	}
	text, err := d.detector.Detect(img)
	if err != nil {
		return nil, nil, newStageError(StageDetect, "", KindNoQRCodeFound, err)
	}
	if text == "" {
		return nil, nil, newStageError(StageDetect, "", KindNoQRCodeFound,
			fmt.Errorf("%w: symbol carries no text", ErrNoQRCodeFound))
	}
	d.logger.Debug("Detected QR symbol", "payload_size", len(text))

	if err := checkpoint(ctx, StageDecodeText, ""); err != nil {
		return nil, nil, err
	}
	compressed, err := d.profile.Codec.Decode(text)
	if err != nil {
		return nil, nil, newStageError(StageDecodeText, "", KindInvalidEncoding, err)
	}
	d.logger.Debug("Decoded payload text", "codec", d.profile.Codec.Name(), "compressed_size", len(compressed))

	if err := checkpoint(ctx, StageDecompress, ""); err != nil {
		return nil, nil, err
	}
	data, err := d.profile.Compressor.Decompress(compressed)
	if err != nil {
		return nil, nil, newStageError(StageDecompress, "", KindMalformedCompressedData, err)
	}
	d.logger.Debug("Decompressed payload", "compressor", d.profile.Compressor.Name(), "size", len(data))

	report := &DecodeReport{
		Profile:        d.profile,
		PayloadSize:    len(text),
		CompressedSize: len(compressed),
		OutputSize:     len(data),
	}
	return data, report, nil
}
