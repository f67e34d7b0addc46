package compression

import (
	"bytes"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// LZ4 produces LZ4 frames with block and content checksums.
type LZ4 struct {
	level lz4.CompressionLevel
}

// NewLZ4 creates an lz4 compressor using the highest compression level
func NewLZ4() *LZ4 {
	return &LZ4{level: lz4.Level9}
}

// Name returns "lz4".
func (c *LZ4) Name() string {
	return NameLZ4
}

// Compress writes src as one LZ4 frame. Empty input yields a frame with
// a header and an end mark only.
func (c *LZ4) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if err := zw.Apply(
		lz4.CompressionLevelOption(c.level),
		lz4.ChecksumOption(true),
		lz4.BlockChecksumOption(true),
	); err != nil {
		return nil, fmt.Errorf("failed to configure lz4 writer: %w", err)
	}
	if _, err := zw.Write(src); err != nil {
		_ = zw.Close()
		return nil, fmt.Errorf("failed to compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish lz4 frame: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress reads an LZ4 frame and verifies its checksums.
func (c *LZ4) Decompress(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, malformed(NameLZ4, nil)
	}
	out, err := readBounded(lz4.NewReader(bytes.NewReader(src)))
	if err != nil {
		return nil, malformed(NameLZ4, err)
	}
	return out, nil
}
