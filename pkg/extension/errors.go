package extension

import (
	"errors"
	"fmt"
)

// ErrRegistryClosed is returned by write operations after Close.
var ErrRegistryClosed = errors.New("extension registry is closed")

// ValidationError reports a structural contract violation in a descriptor at
// registration time.
type ValidationError struct {
	Plugin  string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Plugin == "" {
		return fmt.Sprintf("invalid plugin descriptor: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid plugin %q: %s: %s", e.Plugin, e.Field, e.Message)
}

// InitializationError wraps an error raised by a plugin's own Initialize or
// Destroy callback.
type InitializationError struct {
	Plugin string
	Err    error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("plugin %q lifecycle callback failed: %v", e.Plugin, e.Err)
}

func (e *InitializationError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsInitializationError reports whether err is (or wraps) an
// InitializationError.
func IsInitializationError(err error) bool {
	var ie *InitializationError
	return errors.As(err, &ie)
}
