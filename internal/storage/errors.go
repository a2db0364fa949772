package storage

import "errors"

// Storage errors shared by all record sources.
var (
	// ErrNotFound is returned when a requested table does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when importing a category that already
	// exists. Imported tables are never replaced.
	ErrDuplicateKey = errors.New("duplicate key: table already imported")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)
