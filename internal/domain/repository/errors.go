package repository

import "errors"

// ErrNotFound is the sentinel for an absent row, distinct from an empty
// result set or a zero count.
var ErrNotFound = errors.New("not found")

// ConflictError reports a uniqueness violation with the message of the first
// violated constraint, which surfaces verbatim to the client as a 409.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// AsConflict returns the ConflictError wrapped in err, or nil when err is of
// any other kind.
func AsConflict(err error) *ConflictError {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict
	}
	return nil
}
