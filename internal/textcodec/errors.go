package textcodec

import (
	"errors"
	"fmt"
)

// Static errors for codec lookup and decoding
var (
	// ErrInvalidEncoding indicates that a text payload is not valid for the codec's alphabet
	ErrInvalidEncoding = errors.New("invalid encoded text")
	// ErrUnknownCodec indicates that no codec is registered under the requested name
	ErrUnknownCodec = errors.New("unknown text codec")
)

// DecodeError describes why a payload could not be decoded.
// It matches ErrInvalidEncoding with errors.Is.
type DecodeError struct {
	Codec  string // Name of the codec that rejected the text
	Offset int    // Byte offset in the text where the problem was detected
	Reason string // Short description of the problem
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %s at offset %d", e.Codec, e.Reason, e.Offset)
}

// Unwrap allows errors.Is(err, ErrInvalidEncoding).
func (e *DecodeError) Unwrap() error {
	return ErrInvalidEncoding
}
