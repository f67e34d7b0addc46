package qrsymbol

import "errors"

// Static errors for rendering, detection and image I/O
var (
	// ErrPayloadTooLarge indicates the text exceeds the capacity of the largest symbol at the requested level
	ErrPayloadTooLarge = errors.New("payload exceeds QR code capacity")
	// ErrPayloadEmpty indicates an attempt to render an empty payload
	ErrPayloadEmpty = errors.New("payload is empty")
	// ErrNoQRCodeFound indicates no symbol could be located or decoded in an image
	ErrNoQRCodeFound = errors.New("no QR code found")
	// ErrImageRead indicates an image file is missing, unreadable or in an unsupported format
	ErrImageRead = errors.New("cannot read image")
	// ErrUnsupportedFormat indicates the requested output image format is not supported
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrInvalidRenderConfig indicates a render configuration value is out of range
	ErrInvalidRenderConfig = errors.New("invalid render configuration")
)
