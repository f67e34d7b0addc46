package compression

// Identity passes data through unchanged. It is the compressor of the plain profile.
type Identity struct{}

// NewIdentity creates a no-op compressor
func NewIdentity() *Identity {
	return &Identity{}
}

// Name returns "none".
func (c *Identity) Name() string {
	return NameNone
}

// Compress returns a copy of src.
func (c *Identity) Compress(src []byte) ([]byte, error) {
	return append([]byte{}, src...), nil
}

// Decompress returns a copy of src.
func (c *Identity) Decompress(src []byte) ([]byte, error) {
	return append([]byte{}, src...), nil
}
