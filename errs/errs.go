// Package errs defines the sentinel errors returned by jsonpipe packages.
//
// Errors are wrapped with additional context using fmt.Errorf and "%w", so
// callers should compare with errors.Is rather than ==.
package errs

import "errors"

// Top-level shape errors.
var (
	// ErrUnsupportedShape is returned when the first byte of the visible window is not
	// a top-level delimiter or the start of an object.
	ErrUnsupportedShape = errors.New("expected one of , [ ] { at top level")
	// ErrUnexpectedEOF is returned when the source completes while unconsumed bytes
	// remain that never formed a complete value.
	ErrUnexpectedEOF = errors.New("unexpected end of input inside a value")
)

// Value decoding errors.
var (
	// ErrTruncated reports that a value ran past the end of the available bytes.
	// It is the only decode failure that means "more data needed".
	ErrTruncated = errors.New("value truncated")
	// ErrValueTooLarge is returned when an incomplete value exceeds the configured size limit.
	ErrValueTooLarge = errors.New("value exceeds maximum size")
	// ErrNotObject is returned by decoders given a window that does not start with '{'.
	ErrNotObject = errors.New("value does not start with '{'")
)

// Byte source protocol errors.
var (
	ErrReadNotAdvanced    = errors.New("read called before advancing the previous buffer")
	ErrAdvanceWithoutRead = errors.New("advance called without a pending read")
	ErrInvalidAdvance     = errors.New("invalid advance positions")
	ErrPipeCompleted      = errors.New("write to completed pipe")
	ErrInvalidSegmentSize = errors.New("invalid segment size")
)

// Configuration errors.
var (
	ErrQueueCapacity      = errors.New("queue capacity must be positive")
	ErrInvalidCompression = errors.New("invalid compression type")
	ErrInvalidOption      = errors.New("invalid option value")
)

// Stream driver errors.
var (
	// ErrAlreadyStarted is returned when a Driver is run more than once.
	ErrAlreadyStarted = errors.New("stream driver already started")
	// ErrDecoderType is returned when the decoder passed with WithDecoder does not
	// produce the driver's item type.
	ErrDecoderType = errors.New("decoder item type mismatch")
	// ErrStopped is returned by a sink to end the stream early without a fault.
	ErrStopped = errors.New("stream stopped by sink")
)
