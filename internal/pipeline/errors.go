package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/isseis/go-qrfile/internal/compression"
	"github.com/isseis/go-qrfile/internal/qrsymbol"
	"github.com/isseis/go-qrfile/internal/textcodec"
)

// Failure taxonomy. Classify maps every error returned by an Encoder or
// Decoder to exactly one of these, and the error matches it through errors.Is.
// A verification failure also matches the sentinel of the read-back failure
// that caused it, such as ErrNoQRCodeFound.
var (
	ErrInputNotFound           = errors.New("input file not found")
	ErrImageRead               = qrsymbol.ErrImageRead
	ErrNoQRCodeFound           = qrsymbol.ErrNoQRCodeFound
	ErrInvalidEncoding         = textcodec.ErrInvalidEncoding
	ErrMalformedCompressedData = compression.ErrMalformedCompressedData
	ErrPayloadTooLarge         = qrsymbol.ErrPayloadTooLarge
	ErrPayloadEmpty            = qrsymbol.ErrPayloadEmpty
	ErrVerificationFailed      = errors.New("image verification failed")
	ErrCanceled                = errors.New("operation canceled")
	ErrUnexpected              = errors.New("unexpected failure")
)

// ErrUnknownProfile is returned by ProfileFor for an unregistered preset name.
var ErrUnknownProfile = errors.New("unknown profile")

// Kind classifies a pipeline failure.
type Kind int

const (
	// KindUnexpected covers every failure outside the taxonomy
	KindUnexpected Kind = iota
	// KindInputNotFound indicates the input file is missing or unreadable
	KindInputNotFound
	// KindImageRead indicates the input image could not be loaded
	KindImageRead
	// KindNoQRCodeFound indicates no symbol was found in the image
	KindNoQRCodeFound
	// KindInvalidEncoding indicates the payload text is not valid for the codec
	KindInvalidEncoding
	// KindMalformedCompressedData indicates the decoded bytes are not a valid container
	KindMalformedCompressedData
	// KindPayloadTooLarge indicates the payload does not fit in a symbol
	KindPayloadTooLarge
	// KindPayloadEmpty indicates an empty payload, which no symbol can carry
	KindPayloadEmpty
	// KindCanceled indicates the context was canceled between stages
	KindCanceled
	// KindVerificationFailed indicates a freshly encoded image did not read
	// back to the input content
	KindVerificationFailed
)

var kindSentinels = []struct {
	kind Kind
	err  error
}{
	{KindInputNotFound, ErrInputNotFound},
	{KindImageRead, ErrImageRead},
	{KindNoQRCodeFound, ErrNoQRCodeFound},
	{KindInvalidEncoding, ErrInvalidEncoding},
	{KindMalformedCompressedData, ErrMalformedCompressedData},
	{KindPayloadTooLarge, ErrPayloadTooLarge},
	{KindPayloadEmpty, ErrPayloadEmpty},
	{KindCanceled, ErrCanceled},
	{KindVerificationFailed, ErrVerificationFailed},
}

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindInputNotFound:
		return "input_not_found"
	case KindImageRead:
		return "image_read"
	case KindNoQRCodeFound:
		return "no_qr_code_found"
	case KindInvalidEncoding:
		return "invalid_encoding"
	case KindMalformedCompressedData:
		return "malformed_compressed_data"
	case KindPayloadTooLarge:
		return "payload_too_large"
	case KindPayloadEmpty:
		return "payload_empty"
	case KindCanceled:
		return "canceled"
	case KindVerificationFailed:
		return "verification_failed"
	default:
		return "unexpected"
	}
}

// Sentinel returns the taxonomy error for k.
func (k Kind) Sentinel() error {
	for _, ks := range kindSentinels {
		if ks.kind == k {
			return ks.err
		}
	}
	return ErrUnexpected
}

// Stage names the pipeline step that failed.
type Stage string

// Pipeline stages, in execution order for each direction
const (
	StageReadInput   Stage = "read input"
	StageCompress    Stage = "compress"
	StageEncodeText  Stage = "encode text"
	StageRender      Stage = "render QR code"
	StageWriteImage  Stage = "write image"
	StageVerify      Stage = "verify image"
	StageLoadImage   Stage = "load image"
	StageDetect      Stage = "detect QR code"
	StageDecodeText  Stage = "decode text"
	StageDecompress  Stage = "decompress"
	StageWriteOutput Stage = "write output"
)

// StageError reports which stage failed, on which path, and why.
type StageError struct {
	Stage Stage  // stage that failed
	Path  string // file path (if applicable)
	Kind  Kind   // taxonomy classification
	Err   error  // underlying error
}

// Error returns a single line message
func (e *StageError) Error() string {
	cause := e.Err
	sentinel := e.Kind.Sentinel()
	if cause == nil {
		cause = sentinel
	} else if !errors.Is(cause, sentinel) {
		cause = fmt.Errorf("%w: %w", sentinel, cause)
	}

	if e.Path != "" {
		return fmt.Sprintf("%s '%s': %v", e.Stage, e.Path, cause)
	}
	return fmt.Sprintf("%s: %v", e.Stage, cause)
}

// Unwrap exposes both the taxonomy sentinel and the underlying cause
func (e *StageError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.Sentinel()}
	}
	return []error{e.Kind.Sentinel(), e.Err}
}

// Classify maps any error to the taxonomy. Errors that carry no taxonomy
// sentinel are KindUnexpected.
func Classify(err error) Kind {
	if err == nil {
		return KindUnexpected
	}

	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Kind
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindCanceled
	}

	for _, ks := range kindSentinels {
		if errors.Is(err, ks.err) {
			return ks.kind
		}
	}
	return KindUnexpected
}

func newStageError(stage Stage, path string, kind Kind, err error) *StageError {
	return &StageError{Stage: stage, Path: path, Kind: kind, Err: err}
}
