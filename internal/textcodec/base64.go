package textcodec

import (
	"encoding/base64"
	"errors"
)

// Base64 implements standard base64 with '=' padding. It is the baseline
// codec used by the plain profile and for size comparisons.
type Base64 struct{}

// NewBase64 creates a new base64 codec
func NewBase64() *Base64 {
	return &Base64{}
}

// Name returns "base64".
func (c *Base64) Name() string {
	return NameBase64
}

// Encode encodes src using the standard alphabet.
func (c *Base64) Encode(src []byte) string {
	return base64.StdEncoding.EncodeToString(src)
}

// Decode decodes padded standard base64 text.
func (c *Base64) Decode(text string) ([]byte, error) {
	out, err := base64.StdEncoding.Strict().DecodeString(trimASCIISpace(text))
	if err != nil {
		var corrupt base64.CorruptInputError
		if errors.As(err, &corrupt) {
			return nil, &DecodeError{Codec: NameBase64, Offset: int(corrupt), Reason: "illegal character or padding"}
		}
		return nil, &DecodeError{Codec: NameBase64, Reason: err.Error()}
	}
	return out, nil
}
