package calcerr

import (
	"errors"
	"fmt"
)

// InputValidationError reports a malformed upload or a non-positive
// load, amplitude or cycle value.
type InputValidationError struct {
	Field  string
	Reason string
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Invalid is shorthand for building an InputValidationError.
func Invalid(field, format string, args ...any) error {
	return &InputValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ConfigurationError is returned when a selected evaluation method has no
// curve parameters behind it.
type ConfigurationError struct {
	Method string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("method %q has no curve parameters", e.Method)
}

// IsClientError reports whether err was caused by the caller's input
// rather than by the service.
func IsClientError(err error) bool {
	var iv *InputValidationError
	var ce *ConfigurationError
	return errors.As(err, &iv) || errors.As(err, &ce)
}
