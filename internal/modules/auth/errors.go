package auth

import "errors"

var (
	ErrInvalidPasscode = errors.New("invalid passcode")
	ErrNotConfigured   = errors.New("dashboard passcode is not configured")
)
