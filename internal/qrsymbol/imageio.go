package qrsymbol

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/isseis/go-qrfile/internal/safefileio"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	// Registered for LoadImage only; there is no WebP encoder
	_ "golang.org/x/image/webp"
)

// Format is a raster output format.
type Format string

// Supported output formats
const (
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
)

// jpegQuality keeps module edges sharp enough to scan
const jpegQuality = 95

// FormatForPath picks the output format from the file extension.
// Paths without an extension default to PNG.
func FormatForPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".gif":
		return FormatGIF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// EncodeImage writes img to w in the given format.
func EncodeImage(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		return enc.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case FormatGIF:
		return gif.Encode(w, img, nil)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// LoadImage reads and decodes an image file (PNG, JPEG, GIF, BMP, TIFF or WebP).
// The file is read with the same symlink and size checks as any other input.
// Every failure matches ErrImageRead.
func LoadImage(path string) (image.Image, string, error) {
	data, err := safefileio.SafeReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrImageRead, err)
	}
	return DecodeImage(bytes.NewReader(data))
}

// DecodeImage decodes an image stream. Every failure matches ErrImageRead.
func DecodeImage(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrImageRead, err)
	}
	return img, format, nil
}
