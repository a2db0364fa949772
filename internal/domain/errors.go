package domain

import "fmt"

// UnsupportedPlatformError is returned when a platform name is not one of
// the supported platforms. It is user-facing and not retryable.
type UnsupportedPlatformError struct {
	Name string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("platform %s not supported", e.Name)
}

// MissingInputError is returned when a mandatory category is absent or
// unreadable. No partial result is produced for the platform.
type MissingInputError struct {
	Platform Platform
	Category string
	Err      error // underlying cause, may be nil
}

func (e *MissingInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("required input not found: %s (%s): %v", e.Category, e.Platform, e.Err)
	}
	return fmt.Sprintf("required input not found: %s (%s)", e.Category, e.Platform)
}

func (e *MissingInputError) Unwrap() error {
	return e.Err
}

// MalformedDataError is returned when a required field cannot be parsed as
// its expected type. Row is the 1-based data row; 0 means the header.
type MalformedDataError struct {
	Category string
	Row      int
	Column   string
	Value    string
	Err      error
}

func (e *MalformedDataError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("malformed %s: column %q: %v", e.Category, e.Column, e.Err)
	}
	return fmt.Sprintf("malformed %s row %d: column %q value %q: %v", e.Category, e.Row, e.Column, e.Value, e.Err)
}

func (e *MalformedDataError) Unwrap() error {
	return e.Err
}

// PlatformAnalysisError tags any failure below platform validation with the
// platform it happened for.
type PlatformAnalysisError struct {
	Platform Platform
	Err      error
}

func (e *PlatformAnalysisError) Error() string {
	return fmt.Sprintf("error analyzing %s data: %v", e.Platform, e.Err)
}

func (e *PlatformAnalysisError) Unwrap() error {
	return e.Err
}
