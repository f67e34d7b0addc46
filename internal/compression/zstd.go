package compression

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Zstd produces zstandard frames with a content checksum. Both encoder and
// decoder are safe for concurrent use and are reused across calls.
type Zstd struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewZstd creates a zstd compressor using the best compression level
func NewZstd() (*Zstd, error) {
	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBestCompression),
		zstd.WithEncoderCRC(true),
		zstd.WithZeroFrames(true), // empty input still gets a frame header
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxDecompressedSize))
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &Zstd{encoder: encoder, decoder: decoder}, nil
}

// Name returns "zstd".
func (c *Zstd) Name() string {
	return NameZstd
}

// Compress encodes src as one zstd frame.
func (c *Zstd) Compress(src []byte) ([]byte, error) {
	return c.encoder.EncodeAll(src, nil), nil
}

// Decompress decodes every frame in src.
func (c *Zstd) Decompress(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, malformed(NameZstd, nil)
	}
	out, err := c.decoder.DecodeAll(src, nil)
	if err != nil {
		return nil, malformed(NameZstd, err)
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}
