package cache

import (
	"errors"
	"fmt"
)

// Sentinel errors. A cache miss is never one of these: misses are reported
// through the boolean result of Get and Has.
var (
	// ErrInvalidConfig indicates a construction-time configuration problem.
	ErrInvalidConfig = errors.New("invalid cache config")

	// ErrInvalidKey indicates an empty key was passed to a write.
	ErrInvalidKey = errors.New("invalid cache key")

	// ErrInvalidTTL indicates a zero or negative TTL was passed to SetWithTTL.
	ErrInvalidTTL = errors.New("invalid ttl")
)

// ValidationError describes which configuration field was rejected and why.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: field %s (%v): %s", ErrInvalidConfig, e.Field, e.Value, e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func newValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// IsInvalidConfig checks if err is a configuration validation error.
func IsInvalidConfig(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}
