package ingest

import "errors"

var (
	// ErrUnauthorized rejects uploads from anyone but the configured
	// admin identity. A hard gate, not a silent filter.
	ErrUnauthorized = errors.New("only the admin can upload files")

	// ErrTokenExhausted means freshly minted tokens kept colliding past
	// the retry budget. With 64-bit tokens this indicates something is
	// badly wrong with the random source, so it is surfaced as fatal.
	ErrTokenExhausted = errors.New("share token collision retries exhausted")
)
