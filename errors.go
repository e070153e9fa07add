package stackfile

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure returned by this package wraps exactly one of
// these, so callers can branch with errors.Is regardless of the detail text.
var (
	ErrTruncatedInput    = errors.New("stackfile: truncated input")
	ErrInvalidSize       = errors.New("stackfile: invalid size")
	ErrUnexpectedType    = errors.New("stackfile: unexpected block type")
	ErrUnknownBlockType  = errors.New("stackfile: unknown block type")
	ErrInvalidEncoding   = errors.New("stackfile: invalid text encoding")
	ErrMalformedRichText = errors.New("stackfile: malformed rich text")
	ErrLimitExceeded     = errors.New("stackfile: limit exceeded")
	ErrValidation        = errors.New("stackfile: validation failed")
)

// BlockError attaches the location and identity of a block to a payload
// decoding failure.
type BlockError struct {
	Offset int
	Type   BlockType
	ID     int32
	Err    error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("block %s id=%d at offset %d: %v", e.Type, e.ID, e.Offset, e.Err)
}

func (e *BlockError) Unwrap() error { return e.Err }

// UnknownBlockTypeError is returned by DecodeBlock for a tag outside the known
// set. The envelope is fully decoded, so a caller may skip Envelope.Size bytes
// and carry on.
type UnknownBlockTypeError struct {
	Envelope Envelope
}

func (e *UnknownBlockTypeError) Error() string {
	return fmt.Sprintf("%v %s id=%d at offset %d", ErrUnknownBlockType, e.Envelope.Type, e.Envelope.ID, e.Envelope.Offset)
}

func (e *UnknownBlockTypeError) Is(target error) bool { return target == ErrUnknownBlockType }

// Fatal reports whether err leaves the surrounding buffer unusable for
// further offset arithmetic. Only size and truncation failures are fatal.
func Fatal(err error) bool {
	return errors.Is(err, ErrInvalidSize) || errors.Is(err, ErrTruncatedInput)
}
