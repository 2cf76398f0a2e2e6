// Package errs defines the sentinel errors returned by canbits packages.
//
// Callers should compare with errors.Is, since most call sites wrap these
// values with additional context.
package errs

import (
	"errors"
	"fmt"
)

// ErrPreconditionViolation is the parent of every error caused by signal placement
// arguments that fall outside the message buffer contract.
var ErrPreconditionViolation = errors.New("precondition violation")

// Signal placement errors. All of them satisfy errors.Is(err, ErrPreconditionViolation).
var (
	ErrInvalidBitWidth  = fmt.Errorf("%w: invalid bit width", ErrPreconditionViolation)
	ErrSignalOutOfRange = fmt.Errorf("%w: signal exceeds message bounds", ErrPreconditionViolation)
	ErrNilBuffer        = fmt.Errorf("%w: nil message buffer", ErrPreconditionViolation)
)

// Frame errors.
var (
	ErrInvalidFrameID     = errors.New("invalid CAN identifier")
	ErrInvalidFrameLength = errors.New("invalid CAN data length")
	ErrInvalidFrameSize   = errors.New("invalid frame record size")
)

// Trace errors.
var (
	ErrInvalidTraceHeader  = errors.New("invalid trace header")
	ErrInvalidTracePayload = errors.New("invalid trace payload")
	ErrChecksumMismatch    = errors.New("trace checksum mismatch")
	ErrRecorderFinished    = errors.New("recorder already finished")
	ErrInvalidOption       = errors.New("invalid option")
)

// ErrDecompressedSize is returned when a payload does not decompress to the
// size its container declared.
var ErrDecompressedSize = errors.New("decompressed size mismatch")
