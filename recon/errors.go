package recon

import (
	"errors"
	"fmt"
)

var (
	// ErrProtocolMismatch is returned when negotiation finds that the two
	// peers run different or differently configured strategies.
	ErrProtocolMismatch = errors.New("reconciliation protocol mismatch")

	// ErrInvalidItem is returned when an item fails strategy validation on
	// add; the store stays unchanged.
	ErrInvalidItem = errors.New("invalid item")
)

// MismatchError reports a failed negotiation. Remote is ProtocolInvalid when
// the peer did not disclose its protocol (it signaled a bare rejection).
type MismatchError struct {
	Local  ProtocolID
	Remote ProtocolID
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	if e.Remote == ProtocolInvalid {
		return fmt.Sprintf("protocol mismatch: running %s, peer rejected parameters", e.Local)
	}
	return fmt.Sprintf("protocol mismatch: running %s, peer runs %s", e.Local, e.Remote)
}

// Is makes MismatchError match ErrProtocolMismatch in errors.Is.
func (e *MismatchError) Is(target error) bool {
	return target == ErrProtocolMismatch
}
