package textcodec

import "strings"

// base85Alphabet is the RFC 1924 character set. It contains no quote,
// backslash or comma characters.
const base85Alphabet = "0123456789" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"abcdefghijklmnopqrstuvwxyz" +
	"!#$%&()*+-;<=>?@^_`{|}~"

const (
	base85GroupBytes = 4
	base85GroupChars = 5
	base85Radix      = 85
	invalidDigit     = 0xFF
)

var base85Digits = func() [256]byte {
	var table [256]byte
	for i := range table {
		table[i] = invalidDigit
	}
	for i := 0; i < len(base85Alphabet); i++ {
		table[base85Alphabet[i]] = byte(i)
	}
	return table
}()

// Base85 implements the RFC 1924 base85 encoding without padding characters.
// A trailing group of k bytes (1 <= k <= 3) is encoded as k+1 characters,
// which makes the output identical to Python's base64.b85encode.
type Base85 struct{}

// NewBase85 creates a new base85 codec
func NewBase85() *Base85 {
	return &Base85{}
}

// Name returns "base85".
func (c *Base85) Name() string {
	return NameBase85
}

// Encode encodes src four bytes at a time into five alphabet characters.
func (c *Base85) Encode(src []byte) string {
	var sb strings.Builder
	sb.Grow((len(src) + base85GroupBytes - 1) / base85GroupBytes * base85GroupChars)

	var group [base85GroupChars]byte
	for len(src) > 0 {
		n := min(len(src), base85GroupBytes)

		var word uint32
		for i := 0; i < base85GroupBytes; i++ {
			word <<= 8
			if i < n {
				word |= uint32(src[i])
			}
		}

		for i := base85GroupChars - 1; i >= 0; i-- {
			group[i] = base85Alphabet[word%base85Radix]
			word /= base85Radix
		}

		// Partial groups drop the characters that only carry zero padding
		sb.Write(group[:n+1])
		src = src[n:]
	}

	return sb.String()
}

// Decode decodes base85 text produced by Encode.
func (c *Base85) Decode(text string) ([]byte, error) {
	text = trimASCIISpace(text)
	if len(text)%base85GroupChars == 1 {
		return nil, &DecodeError{Codec: NameBase85, Offset: len(text) - 1, Reason: "dangling single character"}
	}

	out := make([]byte, 0, len(text)/base85GroupChars*base85GroupBytes+base85GroupBytes)
	for start := 0; start < len(text); start += base85GroupChars {
		end := min(start+base85GroupChars, len(text))
		chunk := text[start:end]

		var acc uint64
		for i := 0; i < base85GroupChars; i++ {
			digit := byte(base85Radix - 1) // pad short groups with the highest digit
			if i < len(chunk) {
				digit = base85Digits[chunk[i]]
				if digit == invalidDigit {
					return nil, &DecodeError{Codec: NameBase85, Offset: start + i, Reason: "character outside alphabet"}
				}
			}
			acc = acc*base85Radix + uint64(digit)
		}
		if acc > 0xFFFFFFFF {
			return nil, &DecodeError{Codec: NameBase85, Offset: start, Reason: "group value overflows 32 bits"}
		}

		word := [base85GroupBytes]byte{byte(acc >> 24), byte(acc >> 16), byte(acc >> 8), byte(acc)}
		out = append(out, word[:len(chunk)-1]...)
	}

	return out, nil
}
