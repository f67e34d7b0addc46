package compression

import (
	"errors"
	"fmt"
)

// Static errors for compressor lookup and decompression
var (
	// ErrMalformedCompressedData indicates that a buffer is not a valid stream for the compressor
	ErrMalformedCompressedData = errors.New("malformed compressed data")
	// ErrUnknownCompressor indicates that no compressor is registered under the requested name
	ErrUnknownCompressor = errors.New("unknown compressor")
)

// malformed wraps a decoder error so that it matches ErrMalformedCompressedData.
func malformed(format string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s: empty input", ErrMalformedCompressedData, format)
	}
	return fmt.Errorf("%w: %s: %w", ErrMalformedCompressedData, format, err)
}
