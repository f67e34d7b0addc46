package compression

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allCompressors(t *testing.T) []Compressor {
	t.Helper()
	zstdCompressor, err := NewZstd()
	require.NoError(t, err)
	return []Compressor{NewIdentity(), NewGzip(), zstdCompressor, NewLZ4()}
}

func randomBytes(seed int64, n int) []byte {
	buf := make([]byte, n)
	rand.New(rand.NewSource(seed)).Read(buf)
	return buf
}

func TestRoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"empty":      {},
		"single":     {0x42},
		"text":       bytes.Repeat([]byte("compressible text "), 64),
		"random":     randomBytes(1, 4096),
		"zeros":      make([]byte, 100000),
		"binary mix": append(randomBytes(2, 100), make([]byte, 100)...),
	}

	for _, c := range allCompressors(t) {
		for name, in := range inputs {
			t.Run(c.Name()+"/"+name, func(t *testing.T) {
				packed, err := c.Compress(in)
				require.NoError(t, err)

				out, err := c.Decompress(packed)
				require.NoError(t, err)
				assert.True(t, bytes.Equal(in, out), "round trip mismatch")
			})
		}
	}
}

func TestCompressShrinksRepetitiveInput(t *testing.T) {
	in := bytes.Repeat([]byte("abcdefgh"), 512)
	for _, c := range allCompressors(t) {
		if c.Name() == NameNone {
			continue
		}
		packed, err := c.Compress(in)
		require.NoError(t, err)
		assert.Less(t, len(packed), len(in)/4, c.Name())
	}
}

func TestEmptyInputStillProducesContainer(t *testing.T) {
	for _, c := range allCompressors(t) {
		if c.Name() == NameNone {
			continue
		}
		packed, err := c.Compress(nil)
		require.NoError(t, err)
		assert.NotEmpty(t, packed, c.Name())
	}
}

func TestGzipHeader(t *testing.T) {
	packed, err := NewGzip().Compress([]byte("hello"))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(packed), 18)
	assert.Equal(t, []byte{0x1f, 0x8b, 0x08}, packed[:3], "gzip magic and deflate method")
}

func TestDecompressRejectsMalformedInput(t *testing.T) {
	for _, c := range allCompressors(t) {
		if c.Name() == NameNone {
			continue
		}
		t.Run(c.Name(), func(t *testing.T) {
			valid, err := c.Compress([]byte("some payload that is long enough to compress"))
			require.NoError(t, err)

			corruptedHeader := append([]byte{}, valid...)
			corruptedHeader[0] ^= 0xff
			corruptedHeader[1] ^= 0xff

			testCases := map[string][]byte{
				"empty":            {},
				"corrupted header": corruptedHeader,
				"plain text":       []byte("definitely not compressed"),
				"truncated":        valid[:len(valid)/2],
			}
			for name, input := range testCases {
				out, err := c.Decompress(input)
				require.Error(t, err, name)
				assert.Nil(t, out, name)
				assert.True(t, errors.Is(err, ErrMalformedCompressedData), "%s: %v", name, err)
			}
		})
	}
}

func TestGzipDetectsChecksumMismatch(t *testing.T) {
	packed, err := NewGzip().Compress(bytes.Repeat([]byte("checksum"), 32))
	require.NoError(t, err)

	// The CRC-32 occupies the 4 bytes before the trailing size field
	packed[len(packed)-5] ^= 0xff

	_, err = NewGzip().Decompress(packed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedCompressedData))
}

func TestLookup(t *testing.T) {
	for name, expected := range map[string]string{
		"gzip":     NameGzip,
		"ZSTD":     NameZstd,
		"lz4":      NameLZ4,
		"none":     NameNone,
		"identity": NameNone,
		"":         NameNone,
	} {
		c, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, c.Name())
	}

	_, err := Lookup("brotli")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownCompressor))
	assert.Contains(t, err.Error(), "gzip, lz4, none, zstd")
}
