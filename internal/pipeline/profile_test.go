package pipeline

import (
	"testing"

	"github.com/isseis/go-qrfile/internal/compression"
	"github.com/isseis/go-qrfile/internal/textcodec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetProfiles(t *testing.T) {
	compressed := CompressedProfile()
	assert.Equal(t, ProfileCompressed, compressed.Name)
	assert.Equal(t, compression.NameGzip, compressed.Compressor.Name())
	assert.Equal(t, textcodec.NameBase85, compressed.Codec.Name())
	assert.True(t, compressed.Compresses())
	assert.Equal(t, "compressed (gzip+base85)", compressed.String())

	plain := PlainProfile()
	assert.Equal(t, ProfilePlain, plain.Name)
	assert.Equal(t, compression.NameNone, plain.Compressor.Name())
	assert.Equal(t, textcodec.NameBase64, plain.Codec.Name())
	assert.False(t, plain.Compresses())
}

func TestProfileFor(t *testing.T) {
	tests := []struct {
		name           string
		profile        string
		compressor     string
		codec          string
		wantName       string
		wantCompressor string
		wantCodec      string
		wantErr        error
	}{
		{
			name:           "empty selects default",
			wantName:       ProfileCompressed,
			wantCompressor: compression.NameGzip,
			wantCodec:      textcodec.NameBase85,
		},
		{
			name:           "plain",
			profile:        "plain",
			wantName:       ProfilePlain,
			wantCompressor: compression.NameNone,
			wantCodec:      textcodec.NameBase64,
		},
		{
			name:           "case and space insensitive",
			profile:        "  Compressed ",
			wantName:       ProfileCompressed,
			wantCompressor: compression.NameGzip,
			wantCodec:      textcodec.NameBase85,
		},
		{
			name:           "compressor override",
			profile:        "compressed",
			compressor:     "zstd",
			wantName:       ProfileCompressed,
			wantCompressor: compression.NameZstd,
			wantCodec:      textcodec.NameBase85,
		},
		{
			name:           "both overrides",
			profile:        "plain",
			compressor:     "lz4",
			codec:          "ascii85",
			wantName:       ProfilePlain,
			wantCompressor: compression.NameLZ4,
			wantCodec:      textcodec.NameAscii85,
		},
		{
			name:    "unknown profile",
			profile: "dense",
			wantErr: ErrUnknownProfile,
		},
		{
			name:       "unknown compressor",
			compressor: "brotli",
			wantErr:    compression.ErrUnknownCompressor,
		},
		{
			name:    "unknown codec",
			codec:   "base32",
			wantErr: textcodec.ErrUnknownCodec,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ProfileFor(tt.profile, tt.compressor, tt.codec)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name)
			assert.Equal(t, tt.wantCompressor, p.Compressor.Name())
			assert.Equal(t, tt.wantCodec, p.Codec.Name())
		})
	}
}

func TestProfileNames(t *testing.T) {
	assert.Equal(t, []string{"compressed", "plain"}, ProfileNames())
}
