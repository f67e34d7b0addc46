package pipeline

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeReportFprint(t *testing.T) {
	t.Run("compressed profile", func(t *testing.T) {
		r := &EncodeReport{
			Input:          "in.bin",
			Output:         "out.png",
			Profile:        CompressedProfile(),
			OriginalSize:   50,
			CompressedSize: 41,
			EncodedSize:    52,
			BaselineSize:   56,
			SymbolVersion:  5,
		}

		var buf bytes.Buffer
		require.NoError(t, r.Fprint(&buf, false))
		assert.Equal(t, "Successfully encoded 'in.bin' to QR code 'out.png'\n"+
			"Original file size: 50 bytes\n"+
			"Compressed size: 41 bytes (compression ratio: 82.0%)\n"+
			"Encoded data size: 52 bytes (base85)\n"+
			"Savings vs base64: 4 bytes (7.1% smaller)\n"+
			"QR symbol version: 5\n", buf.String())
	})

	t.Run("empty input prints n/a ratio", func(t *testing.T) {
		r := &EncodeReport{
			Input:          "empty.bin",
			Output:         "out.png",
			Profile:        CompressedProfile(),
			CompressedSize: 20,
			EncodedSize:    25,
			BaselineSize:   28,
			SymbolVersion:  2,
		}

		var buf bytes.Buffer
		require.NoError(t, r.Fprint(&buf, false))
		assert.Contains(t, buf.String(), "Original file size: 0 bytes\n")
		assert.Contains(t, buf.String(), "(compression ratio: n/a)")
		assert.NotContains(t, buf.String(), "NaN")
		assert.NotContains(t, buf.String(), "Inf")
	})

	t.Run("plain profile omits compression lines", func(t *testing.T) {
		r := &EncodeReport{
			Input:          "in.bin",
			Output:         "out.png",
			Profile:        PlainProfile(),
			OriginalSize:   3,
			CompressedSize: 3,
			EncodedSize:    4,
			BaselineSize:   4,
			SymbolVersion:  1,
		}

		var buf bytes.Buffer
		require.NoError(t, r.Fprint(&buf, false))
		assert.Equal(t, "Successfully encoded 'in.bin' to QR code 'out.png'\n"+
			"Original file size: 3 bytes\n"+
			"Encoded data size: 4 bytes (base64)\n"+
			"QR symbol version: 1\n", buf.String())
	})

	t.Run("verified image", func(t *testing.T) {
		r := &EncodeReport{
			Input:          "in.bin",
			Output:         "out.png",
			Profile:        PlainProfile(),
			OriginalSize:   3,
			CompressedSize: 3,
			EncodedSize:    4,
			BaselineSize:   4,
			SymbolVersion:  1,
			Digest:         "sha256:abc123",
		}

		var buf bytes.Buffer
		require.NoError(t, r.Fprint(&buf, false))
		assert.True(t, r.Verified())
		assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("QR symbol version: 1\nVerified: read back matches input (sha256:abc123)\n")))
	})

	t.Run("colorized output", func(t *testing.T) {
		r := &EncodeReport{Input: "a", Output: "b", Profile: CompressedProfile(), OriginalSize: 1, CompressedSize: 21, EncodedSize: 27, BaselineSize: 28, SymbolVersion: 2}

		var buf bytes.Buffer
		require.NoError(t, r.Fprint(&buf, true))
		assert.Contains(t, buf.String(), "\033[")
		assert.Contains(t, buf.String(), "Successfully encoded 'a' to QR code 'b'")
	})
}

func TestEncodeReportSavings(t *testing.T) {
	r := &EncodeReport{EncodedSize: 125, BaselineSize: 136}
	saved, percent := r.Savings()
	assert.Equal(t, 11, saved)
	assert.InDelta(t, 8.088, percent, 0.001)

	zero := &EncodeReport{}
	saved, percent = zero.Savings()
	assert.Equal(t, 0, saved)
	assert.Zero(t, percent)
}

func TestDecodeReportFprint(t *testing.T) {
	t.Run("compressed profile", func(t *testing.T) {
		r := &DecodeReport{Input: "qr.png", Output: "out.bin", Profile: CompressedProfile(), PayloadSize: 52, CompressedSize: 41, OutputSize: 50}

		var buf bytes.Buffer
		require.NoError(t, r.Fprint(&buf, false))
		assert.Equal(t, "Successfully decoded QR code 'qr.png' to 'out.bin'\n"+
			"Compressed size: 41 bytes\n"+
			"Output file size: 50 bytes\n", buf.String())
	})

	t.Run("plain profile", func(t *testing.T) {
		r := &DecodeReport{Input: "qr.png", Output: "out.bin", Profile: PlainProfile(), PayloadSize: 4, CompressedSize: 3, OutputSize: 3}

		var buf bytes.Buffer
		require.NoError(t, r.Fprint(&buf, false))
		assert.Equal(t, "Successfully decoded QR code 'qr.png' to 'out.bin'\n"+
			"Output file size: 3 bytes\n", buf.String())
	})
}
