package scene

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every *ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("scene configuration error")

// ConfigurationError reports a descriptor value that cannot be composed.
// It is fatal: the frame loop never starts with an invalid descriptor.
type ConfigurationError struct {
	// Field is the path of the offending value, e.g. "lights[2].intensity".
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid scene configuration: %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

func configErr(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
