package textcodec

import (
	"encoding/ascii85"
	"errors"
)

// Ascii85 implements the Adobe btoa alphabet ('!' through 'u', with 'z' for
// an all-zero group). Denser than base64 like Base85, but its alphabet
// includes quote and backslash characters.
type Ascii85 struct{}

// NewAscii85 creates a new ascii85 codec
func NewAscii85() *Ascii85 {
	return &Ascii85{}
}

// Name returns "ascii85".
func (c *Ascii85) Name() string {
	return NameAscii85
}

// Encode encodes src without the "<~" "~>" delimiters.
func (c *Ascii85) Encode(src []byte) string {
	dst := make([]byte, ascii85.MaxEncodedLen(len(src)))
	n := ascii85.Encode(dst, src)
	return string(dst[:n])
}

// Decode decodes undelimited ascii85 text.
func (c *Ascii85) Decode(text string) ([]byte, error) {
	src := []byte(trimASCIISpace(text))
	if danglingAscii85(src) {
		return nil, &DecodeError{Codec: NameAscii85, Offset: len(src) - 1, Reason: "dangling single character"}
	}

	// Each 'z' expands to four bytes, so 4 bytes per input byte is an upper bound
	dst := make([]byte, 4*len(src))
	n, _, err := ascii85.Decode(dst, src, true)
	if err != nil {
		var corrupt ascii85.CorruptInputError
		if errors.As(err, &corrupt) {
			return nil, &DecodeError{Codec: NameAscii85, Offset: int(corrupt), Reason: "illegal character or group"}
		}
		return nil, &DecodeError{Codec: NameAscii85, Reason: err.Error()}
	}
	return dst[:n], nil
}

// danglingAscii85 reports whether the final group holds a single character,
// which cannot carry a whole byte.
func danglingAscii85(src []byte) bool {
	nb := 0
	for _, b := range src {
		switch {
		case b <= ' ':
			continue
		case b == 'z' && nb == 0:
			continue
		default:
			nb = (nb + 1) % 5
		}
	}
	return nb == 1
}
