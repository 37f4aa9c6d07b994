package repository

import (
	"errors"
	"fmt"
)

// Unique columns of the hosted_files table, reported by DuplicateError.
const (
	ColumnFileID     = "file_id"
	ColumnShareToken = "share_token"
)

var (
	// ErrNotFound is returned by exact-match lookups that miss.
	ErrNotFound = errors.New("file record not found")

	// ErrStoreUnavailable wraps storage transport failures (connectivity,
	// transient backend errors). Callers must not confuse it with a miss
	// or a constraint violation.
	ErrStoreUnavailable = errors.New("registry store unavailable")
)

// DuplicateError reports a unique-constraint violation on insert. Column
// names the violated column when the backend makes it determinable, and
// is empty otherwise.
type DuplicateError struct {
	Column string
}

func (e *DuplicateError) Error() string {
	if e.Column == "" {
		return "duplicate file record"
	}
	return fmt.Sprintf("duplicate file record: %s already exists", e.Column)
}
