package delivery

import "errors"

var (
	// ErrInvalidToken means the token resolves to nothing. Expected in
	// normal operation (stale or mistyped links), reported to the user,
	// not to the operator.
	ErrInvalidToken = errors.New("invalid or expired file link")

	// ErrExhausted means every category transport failed for this record.
	ErrExhausted = errors.New("all delivery transports failed")
)
