// Package compression provides the lossless compressors that shrink a payload
// before it is text encoded. Every compressor except Identity writes a
// self-describing container (magic bytes, header, checksum) so that Decompress
// can reject input it did not produce with ErrMalformedCompressedData.
package compression

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
)

// MaxDecompressedSize bounds the output of Decompress (128 MB). A QR symbol
// holds under 3 KB, so only a crafted stream can reach it.
const MaxDecompressedSize = 128 * 1024 * 1024

// Compressor is a reversible bytes <-> bytes transformation.
type Compressor interface {
	// Name returns the registry name of the compressor (e.g. "gzip")
	Name() string

	// Compress compresses src. Empty input is valid.
	Compress(src []byte) ([]byte, error)

	// Decompress reverses Compress
	Decompress(src []byte) ([]byte, error)
}

// Compressor names accepted by Lookup
const (
	NameNone = "none"
	NameGzip = "gzip"
	NameZstd = "zstd"
	NameLZ4  = "lz4"
)

var registry = map[string]func() (Compressor, error){
	NameNone: func() (Compressor, error) { return NewIdentity(), nil },
	NameGzip: func() (Compressor, error) { return NewGzip(), nil },
	NameZstd: func() (Compressor, error) { return NewZstd() },
	NameLZ4:  func() (Compressor, error) { return NewLZ4(), nil },
}

// Lookup returns the compressor registered under name (case insensitive).
// "identity" and "" are accepted as aliases of "none".
func Lookup(name string) (Compressor, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || key == "identity" {
		key = NameNone
	}
	factory, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownCompressor, name, strings.Join(Names(), ", "))
	}
	return factory()
}

// Names returns the registered compressor names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// readBounded drains r, failing once more than MaxDecompressedSize bytes come out.
func readBounded(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	n, err := buf.ReadFrom(io.LimitReader(r, MaxDecompressedSize+1))
	if err != nil {
		return nil, err
	}
	if n > MaxDecompressedSize {
		return nil, fmt.Errorf("output exceeds %d bytes", MaxDecompressedSize)
	}
	return buf.Bytes(), nil
}
