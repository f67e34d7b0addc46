// Package pipeline converts files to QR code images and back. Both directions
// run one linear chain of stages parameterised by a Profile: a Compressor
// followed by a Text Codec on the way in, the inverse on the way out.
package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/isseis/go-qrfile/internal/compression"
	"github.com/isseis/go-qrfile/internal/textcodec"
)

// Profile preset names
const (
	ProfileCompressed = "compressed"
	ProfilePlain      = "plain"
)

// DefaultProfile is used when no profile is configured.
const DefaultProfile = ProfileCompressed

// Profile pairs a Compressor with a Text Codec. The payload does not record
// which profile produced it, so encoder and decoder must agree on it.
type Profile struct {
	Name       string
	Compressor compression.Compressor
	Codec      textcodec.Codec
}

// String describes the profile and its components, e.g. "compressed (gzip+base85)".
func (p Profile) String() string {
	return fmt.Sprintf("%s (%s+%s)", p.Name, p.Compressor.Name(), p.Codec.Name())
}

// Compresses reports whether the profile's Compressor does any work.
func (p Profile) Compresses() bool {
	return p.Compressor.Name() != compression.NameNone
}

// CompressedProfile returns the gzip + base85 profile.
func CompressedProfile() Profile {
	return Profile{
		Name:       ProfileCompressed,
		Compressor: compression.NewGzip(),
		Codec:      textcodec.NewBase85(),
	}
}

// PlainProfile returns the identity + base64 profile.
func PlainProfile() Profile {
	return Profile{
		Name:       ProfilePlain,
		Compressor: compression.NewIdentity(),
		Codec:      textcodec.NewBase64(),
	}
}

var presets = map[string]func() Profile{
	ProfileCompressed: CompressedProfile,
	ProfilePlain:      PlainProfile,
}

// ProfileNames returns the preset names in sorted order.
func ProfileNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProfileFor returns the named preset with the compressor and codec replaced
// when the corresponding override is non-empty. An empty name selects
// DefaultProfile.
func ProfileFor(name, compressor, codec string) (Profile, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultProfile
	}
	preset, ok := presets[key]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownProfile, name, strings.Join(ProfileNames(), ", "))
	}
	profile := preset()

	if strings.TrimSpace(compressor) != "" {
		c, err := compression.Lookup(compressor)
		if err != nil {
			return Profile{}, err
		}
		profile.Compressor = c
	}

	if strings.TrimSpace(codec) != "" {
		c, err := textcodec.Lookup(codec)
		if err != nil {
			return Profile{}, err
		}
		profile.Codec = c
	}

	return profile, nil
}
