package keyset

import "errors"

var (
	// ErrInconsistentPage is returned by Reduce when the executor returned a row
	// count that cannot come from the planned predicate (more than QueriedLimit).
	// It signals a broken executor, not an empty result.
	ErrInconsistentPage = errors.New("inconsistent pagination state")

	// ErrCursorField is returned when the sort field value cannot be read from a row.
	ErrCursorField = errors.New("cannot extract cursor field")

	// ErrCursorToken is returned when a cursor token cannot be decoded.
	ErrCursorToken = errors.New("invalid cursor token")

	// ErrUnsupportedCursorValue is returned when a value has no cursor kind.
	ErrUnsupportedCursorValue = errors.New("unsupported cursor value")

	// ErrCursorKindMismatch is returned when comparing cursors of incompatible kinds.
	ErrCursorKindMismatch = errors.New("cursor kind mismatch")
)
