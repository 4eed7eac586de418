package repl

import "errors"

var (
	// ErrOutOfBounds reports a history index outside the stored entries.
	ErrOutOfBounds = errors.New("history index out of range")

	// ErrEditDeclined reports that the user declined to re-edit session
	// source that failed to translate.
	ErrEditDeclined = errors.New("edit declined")
)
