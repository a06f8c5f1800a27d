package quasar

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates a particle count or physical constant that
// cannot produce a valid simulation.
var ErrInvalidConfig = errors.New("quasar: invalid configuration")

// ConfigError wraps ErrInvalidConfig with the offending field.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s=%g %s", ErrInvalidConfig.Error(), e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

func invalid(field string, value float64, reason string) error {
	return &ConfigError{Field: field, Value: value, Reason: reason}
}
