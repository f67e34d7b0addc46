package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/isseis/go-qrfile/internal/compression"
	"github.com/isseis/go-qrfile/internal/qrsymbol"
	"github.com/isseis/go-qrfile/internal/textcodec"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnexpected},
		{"unknown", errors.New("disk on fire"), KindUnexpected},
		{"image read", fmt.Errorf("%w: eof", qrsymbol.ErrImageRead), KindImageRead},
		{"no qr code", qrsymbol.ErrNoQRCodeFound, KindNoQRCodeFound},
		{"codec error", &textcodec.DecodeError{Codec: "base85", Offset: 3, Reason: "bad"}, KindInvalidEncoding},
		{"malformed", fmt.Errorf("%w: gzip: bad header", compression.ErrMalformedCompressedData), KindMalformedCompressedData},
		{"too large", fmt.Errorf("%w: 3000 characters", qrsymbol.ErrPayloadTooLarge), KindPayloadTooLarge},
		{"empty", qrsymbol.ErrPayloadEmpty, KindPayloadEmpty},
		{"input not found", fmt.Errorf("%w: x", ErrInputNotFound), KindInputNotFound},
		{"context canceled", context.Canceled, KindCanceled},
		{"deadline", fmt.Errorf("wrapped: %w", context.DeadlineExceeded), KindCanceled},
		{"stage error wins", newStageError(StageReadInput, "in.bin", KindInputNotFound, fs.ErrNotExist), KindInputNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestStageError(t *testing.T) {
	t.Run("adds sentinel to message and chain", func(t *testing.T) {
		err := newStageError(StageReadInput, "in.bin", KindInputNotFound, fs.ErrNotExist)

		assert.Equal(t, "read input 'in.bin': input file not found: file does not exist", err.Error())
		assert.ErrorIs(t, err, ErrInputNotFound)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("does not repeat a sentinel already in the cause", func(t *testing.T) {
		cause := fmt.Errorf("%w: gzip: invalid header", compression.ErrMalformedCompressedData)
		err := newStageError(StageDecompress, "", KindMalformedCompressedData, cause)

		assert.Equal(t, "decompress: malformed compressed data: gzip: invalid header", err.Error())
		assert.ErrorIs(t, err, ErrMalformedCompressedData)
	})

	t.Run("nil cause", func(t *testing.T) {
		err := &StageError{Stage: StageDetect, Path: "x.png", Kind: KindNoQRCodeFound}
		assert.Equal(t, "detect QR code 'x.png': no QR code found", err.Error())
		assert.ErrorIs(t, err, ErrNoQRCodeFound)
	})

	t.Run("unexpected kind", func(t *testing.T) {
		err := newStageError(StageWriteOutput, "out.bin", KindUnexpected, errors.New("read-only file system"))
		assert.ErrorIs(t, err, ErrUnexpected)
		assert.Equal(t, KindUnexpected, Classify(err))
	})

	t.Run("errors.As through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("encode: %w", newStageError(StageRender, "", KindPayloadTooLarge, qrsymbol.ErrPayloadTooLarge))
		var se *StageError
		assert.True(t, errors.As(wrapped, &se))
		assert.Equal(t, StageRender, se.Stage)
	})
}

func TestKind(t *testing.T) {
	kinds := []Kind{
		KindUnexpected, KindInputNotFound, KindImageRead, KindNoQRCodeFound, KindInvalidEncoding,
		KindMalformedCompressedData, KindPayloadTooLarge, KindPayloadEmpty, KindCanceled, KindVerificationFailed,
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		name := k.String()
		assert.False(t, seen[name], "duplicate kind name %q", name)
		seen[name] = true
		assert.Equal(t, k, Classify(k.Sentinel()), "sentinel of %s must classify back to it", name)
	}
	assert.Equal(t, "unexpected", Kind(99).String())
}
