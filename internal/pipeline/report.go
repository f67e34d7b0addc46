package pipeline

import (
	"fmt"
	"io"

	"github.com/isseis/go-qrfile/internal/color"
	"github.com/isseis/go-qrfile/internal/textcodec"
)

// EncodeReport holds the size statistics of one encode run.
type EncodeReport struct {
	Input          string
	Output         string
	Profile        Profile
	OriginalSize   int
	CompressedSize int
	EncodedSize    int
	// BaselineSize is the base64 length of the same compressed bytes
	BaselineSize  int
	SymbolVersion int
	// Digest is "algorithm:hex" of the input, set only when the image was verified
	Digest string
}

// Verified reports whether the image was read back and matched the input.
func (r *EncodeReport) Verified() bool {
	return r.Digest != ""
}

// CompressionRatio returns CompressedSize as a percentage of OriginalSize.
// ok is false for an empty input.
func (r *EncodeReport) CompressionRatio() (ratio float64, ok bool) {
	if r.OriginalSize == 0 {
		return 0, false
	}
	return float64(r.CompressedSize) / float64(r.OriginalSize) * 100, true
}

// Savings returns how many characters the profile's codec saves over base64
// and that amount as a percentage of the base64 length.
func (r *EncodeReport) Savings() (saved int, percent float64) {
	saved = r.BaselineSize - r.EncodedSize
	if r.BaselineSize == 0 {
		return saved, 0
	}
	return saved, float64(saved) / float64(r.BaselineSize) * 100
}

// Fprint writes the human readable report.
func (r *EncodeReport) Fprint(w io.Writer, colorize bool) error {
	p := color.NewPalette(colorize)
	pw := &reportWriter{w: w}

	pw.line(p.Success(fmt.Sprintf("Successfully encoded '%s' to QR code '%s'", r.Input, r.Output)))
	pw.line(fmt.Sprintf("%s %s bytes", p.Label("Original file size:"), p.Value(fmt.Sprint(r.OriginalSize))))

	if r.Profile.Compresses() {
		ratio := "n/a"
		if v, ok := r.CompressionRatio(); ok {
			ratio = fmt.Sprintf("%.1f%%", v)
		}
		pw.line(fmt.Sprintf("%s %s bytes %s", p.Label("Compressed size:"),
			p.Value(fmt.Sprint(r.CompressedSize)), p.Muted("(compression ratio: "+ratio+")")))
	}

	pw.line(fmt.Sprintf("%s %s bytes %s", p.Label("Encoded data size:"),
		p.Value(fmt.Sprint(r.EncodedSize)), p.Muted("("+r.Profile.Codec.Name()+")")))

	if r.Profile.Compresses() && r.Profile.Codec.Name() != textcodec.NameBase64 {
		saved, percent := r.Savings()
		pw.line(fmt.Sprintf("%s %s", p.Label("Savings vs base64:"),
			p.Gain(fmt.Sprintf("%d bytes (%.1f%% smaller)", saved, percent))))
	}

	pw.line(fmt.Sprintf("%s %s", p.Label("QR symbol version:"), p.Value(fmt.Sprint(r.SymbolVersion))))
	if r.Verified() {
		pw.line(fmt.Sprintf("%s %s", p.Label("Verified:"), p.Gain("read back matches input ("+r.Digest+")")))
	}
	return pw.err
}

// DecodeReport holds the size statistics of one decode run.
type DecodeReport struct {
	Input          string
	Output         string
	Profile        Profile
	PayloadSize    int
	CompressedSize int
	OutputSize     int
}

// Fprint writes the human readable report.
func (r *DecodeReport) Fprint(w io.Writer, colorize bool) error {
	p := color.NewPalette(colorize)
	pw := &reportWriter{w: w}

	pw.line(p.Success(fmt.Sprintf("Successfully decoded QR code '%s' to '%s'", r.Input, r.Output)))
	if r.Profile.Compresses() {
		pw.line(fmt.Sprintf("%s %s bytes", p.Label("Compressed size:"), p.Value(fmt.Sprint(r.CompressedSize))))
	}
	pw.line(fmt.Sprintf("%s %s bytes", p.Label("Output file size:"), p.Value(fmt.Sprint(r.OutputSize))))
	return pw.err
}

// reportWriter keeps the first write error so Fprint can report it once.
type reportWriter struct {
	w   io.Writer
	err error
}

func (pw *reportWriter) line(s string) {
	if pw.err != nil {
		return
	}
	_, pw.err = fmt.Fprintln(pw.w, s)
}
