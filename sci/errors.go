package sci

import "errors"

var (
	// ErrMissingRastaID is returned by Session.SendTelegram/Run when the
	// telegram's receiver name has no entry in the session's name-to-id
	// mapping.
	ErrMissingRastaID = errors.New("sci: no rasta id registered for receiver name")

	// ErrStateError signals an operation invoked while the underlying
	// rasta.Connection is not in the state the operation requires.
	ErrStateError = errors.New("sci: operation invalid in current connection state")
)
