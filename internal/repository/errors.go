package repository

import "errors"

// Common repository errors
var (
	ErrBoardNotFound = errors.New("board not found")
	ErrListNotFound  = errors.New("list not found")
	ErrCardNotFound  = errors.New("card not found")

	// ErrSequenceMismatch is returned by the reorder operations when the
	// supplied id sequence is not exactly the scope's current membership.
	ErrSequenceMismatch = errors.New("ordered sequence does not match scope membership")
)
