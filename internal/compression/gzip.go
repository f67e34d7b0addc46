package compression

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/gzip"
)

// Gzip produces RFC 1952 members (header, deflate body, CRC-32 and size
// trailer), readable by any gzip implementation.
type Gzip struct {
	level int
}

// NewGzip creates a gzip compressor using the best compression level
func NewGzip() *Gzip {
	return &Gzip{level: gzip.BestCompression}
}

// Name returns "gzip".
func (c *Gzip) Name() string {
	return NameGzip
}

// Compress writes src as a single gzip member.
func (c *Gzip) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, c.level)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip writer: %w", err)
	}
	if _, err := zw.Write(src); err != nil {
		_ = zw.Close()
		return nil, fmt.Errorf("failed to compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish gzip stream: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress reads every gzip member in src and verifies each trailer.
func (c *Gzip) Decompress(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, malformed(NameGzip, nil)
	}

	zr, err := gzip.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, malformed(NameGzip, err)
	}
	defer func() { _ = zr.Close() }()

	out, err := readBounded(zr)
	if err != nil {
		return nil, malformed(NameGzip, err)
	}
	return out, nil
}
