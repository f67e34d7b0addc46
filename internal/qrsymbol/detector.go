package qrsymbol

import (
	"errors"
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// Detector locates a QR symbol in an image and returns its text content.
// Symbol geometry is not exposed.
type Detector interface {
	Detect(img image.Image) (string, error)
}

// ZXingDetector detects symbols with github.com/makiuchi-d/gozxing.
type ZXingDetector struct {
	passes []detectPass
}

// detectPass is one binarizer and hint combination tried by Detect.
type detectPass struct {
	binarizer func(gozxing.LuminanceSource) gozxing.Binarizer
	hints     map[gozxing.DecodeHintType]interface{}
}

// NewZXingDetector creates a detector that searches the whole image.
// Payloads are ASCII, so byte segments are decoded as ISO-8859-1 rather
// than guessed.
//
// The finder-pattern search misses some large, valid symbols, so each
// binarizer is also tried in pure-barcode mode, which reads an image that
// holds one unrotated symbol and its quiet zone.
func NewZXingDetector() *ZXingDetector {
	search := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER:    true,
		gozxing.DecodeHintType_CHARACTER_SET: "ISO-8859-1",
	}
	pure := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_PURE_BARCODE:  true,
		gozxing.DecodeHintType_CHARACTER_SET: "ISO-8859-1",
	}
	return &ZXingDetector{
		passes: []detectPass{
			{binarizer: gozxing.NewHybridBinarizer, hints: search},
			{binarizer: gozxing.NewHybridBinarizer, hints: pure},
			{binarizer: gozxing.NewGlobalHistgramBinarizer, hints: search},
			{binarizer: gozxing.NewGlobalHistgramBinarizer, hints: pure},
		},
	}
}

// Detect returns the text of the first symbol found. It fails with
// ErrNoQRCodeFound when nothing is located, the symbol cannot be decoded,
// or the symbol carries no text.
func (d *ZXingDetector) Detect(img image.Image) (string, error) {
	if img == nil || img.Bounds().Empty() {
		return "", fmt.Errorf("%w: empty image", ErrNoQRCodeFound)
	}

	source := gozxing.NewLuminanceSourceFromImage(img)
	reader := qrcode.NewQRCodeReader()

	var firstErr error
	for _, pass := range d.passes {
		text, err := decodePass(reader, source, pass)
		if err == nil {
			return text, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return "", fmt.Errorf("%w: %v", ErrNoQRCodeFound, firstErr)
}

func decodePass(reader gozxing.Reader, source gozxing.LuminanceSource, pass detectPass) (string, error) {
	bitmap, err := gozxing.NewBinaryBitmap(pass.binarizer(source))
	if err != nil {
		return "", err
	}

	result, err := reader.Decode(bitmap, pass.hints)
	if err != nil {
		return "", err
	}

	text := result.GetText()
	if text == "" {
		return "", errors.New("symbol carries no data")
	}
	return text, nil
}
