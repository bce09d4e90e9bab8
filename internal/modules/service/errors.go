package service

import (
	"errors"
	"fmt"
)

// ErrAssetNotFound is returned when a referenced asset id does not resolve.
// Callers may treat it as "already gone" where that is non-fatal.
var ErrAssetNotFound = errors.New("asset not found")

// ValidationError marks malformed or mismatched input. It is never retried;
// the boundary surfaces it to the caller for correction.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
