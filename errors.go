package rasta

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions that carry no extra detail. See spec §7
// for the disposition of each.
var (
	// ErrStateError signals an operation invoked in a forbidden state,
	// e.g. opening a connection that is not Down.
	ErrStateError = errors.New("rasta: operation invalid in current state")

	// ErrVersionMismatch signals a peer's RASTAVersion in ConnResp
	// differs from ours.
	ErrVersionMismatch = errors.New("rasta: peer version mismatch")

	// ErrTimeout signals a read exceeded Timeout.
	ErrTimeout = errors.New("rasta: read timed out")

	// ErrConnClosed describes a connection that has already transitioned
	// to StateClosed. No function in this package returns it: operations
	// attempted on a closed connection report ErrStateError.
	ErrConnClosed = errors.New("rasta: connection closed")
)

// SequenceError reports a confirmed sequence number from a peer that does
// not match the last sequence number this side sent.
type SequenceError struct {
	Want, Got uint32
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("rasta: invalid sequence number: want confirmation of %d, got %d", e.Want, e.Got)
}

// MalformedError reports a frame that failed to parse: too short, an
// inconsistent length field, or an unrecognized message-type code.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return "rasta: malformed message: " + e.Reason
}

func newMalformed(reason string) *MalformedError {
	return &MalformedError{Reason: reason}
}

// IsSequenceError reports whether err is (or wraps) a *SequenceError.
func IsSequenceError(err error) bool {
	var s *SequenceError
	return errors.As(err, &s)
}

// IsMalformed reports whether err is (or wraps) a *MalformedError.
func IsMalformed(err error) bool {
	var m *MalformedError
	return errors.As(err, &m)
}
