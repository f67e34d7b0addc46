// Package textcodec maps arbitrary byte sequences to printable ASCII text and
// back, so that binary data can be carried inside a QR symbol.
//
// Every codec is deterministic and injective: Decode(Encode(b)) == b for all b.
// Decoding rejects characters outside the codec's alphabet and lengths that
// no encoder output can have, returning an error that matches
// ErrInvalidEncoding.
package textcodec

import (
	"fmt"
	"sort"
	"strings"
)

// Codec is a reversible bytes <-> printable text mapping.
type Codec interface {
	// Name returns the registry name of the codec (e.g. "base85")
	Name() string

	// Encode maps src to printable ASCII text
	Encode(src []byte) string

	// Decode reverses Encode. Surrounding ASCII whitespace is ignored.
	Decode(text string) ([]byte, error)
}

// Codec names accepted by Lookup
const (
	NameBase85  = "base85"
	NameBase64  = "base64"
	NameAscii85 = "ascii85"
)

var registry = map[string]func() Codec{
	NameBase85:  func() Codec { return NewBase85() },
	NameBase64:  func() Codec { return NewBase64() },
	NameAscii85: func() Codec { return NewAscii85() },
}

// Lookup returns the codec registered under name (case insensitive).
func Lookup(name string) (Codec, error) {
	factory, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownCodec, name, strings.Join(Names(), ", "))
	}
	return factory(), nil
}

// Names returns the registered codec names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// trimASCIISpace strips the whitespace a scanner may add around a payload.
func trimASCIISpace(s string) string {
	return strings.Trim(s, " \t\r\n")
}
