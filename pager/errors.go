package pager

import "errors"

var (
	// ErrInvalidCursor is returned when a cursor is partial, malformed, or
	// does not fit the orderings it is applied to.
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrInvalidSortConfiguration is returned for unknown sort modes or
	// columns, and when a sort mode needs a column the caller did not supply.
	ErrInvalidSortConfiguration = errors.New("invalid sort configuration")

	// ErrNonDeterministicOrdering is returned when the orderings do not end
	// with the unique tie-break column.
	ErrNonDeterministicOrdering = errors.New("non-deterministic ordering")

	// ErrInvalidFilter is returned for filters with an unsupported match mode.
	ErrInvalidFilter = errors.New("invalid filter")
)
