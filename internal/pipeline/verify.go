package pipeline

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/isseis/go-qrfile/internal/qrsymbol"
)

// HashAlgorithm computes the digest used to compare content during
// verification.
type HashAlgorithm interface {
	// Name returns the name of the algorithm (e.g., "sha256").
	Name() string

	// Sum calculates the hash of the data read from r as a hexadecimal string.
	Sum(r io.Reader) (string, error)
}

// SHA256 implements HashAlgorithm with SHA-256.
type SHA256 struct{}

// Name returns the algorithm name "sha256".
func (s *SHA256) Name() string {
	return "sha256"
}

// Sum calculates the SHA-256 hash of the data read from r.
func (s *SHA256) Sum(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// verifier reads an encoded image back through the decode stages and checks
// that it yields the original content.
type verifier struct {
	decoder *Decoder
	hash    HashAlgorithm
}

// verify decodes the serialized image and compares digests. The returned
// digest is that of the original content.
func (v *verifier) verify(ctx context.Context, encoded, original []byte, outputPath string) (string, error) {
	if err := checkpoint(ctx, StageVerify, outputPath); err != nil {
		return "", err
	}

	img, _, err := qrsymbol.DecodeImage(bytes.NewReader(encoded))
	if err != nil {
		return "", newStageError(StageVerify, outputPath, KindVerificationFailed, err)
	}
	decoded, _, err := v.decoder.DecodeImage(ctx, img)
	if err != nil {
		return "", newStageError(StageVerify, outputPath, KindVerificationFailed, err)
	}

	want, err := v.hash.Sum(bytes.NewReader(original))
	if err != nil {
		return "", newStageError(StageVerify, outputPath, KindUnexpected, err)
	}
	got, err := v.hash.Sum(bytes.NewReader(decoded))
	if err != nil {
		return "", newStageError(StageVerify, outputPath, KindUnexpected, err)
	}
	if got != want {
		return "", newStageError(StageVerify, outputPath, KindVerificationFailed,
			fmt.Errorf("%s mismatch: read back %s, expected %s", v.hash.Name(), got, want))
	}
	return want, nil
}
