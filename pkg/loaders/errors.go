package loaders

import (
	"errors"
	"fmt"
)

// ErrConfigInvalid is wrapped by every scene description error.
var ErrConfigInvalid = errors.New("loader: invalid scene description")

// ConfigError names the scene file and the offending field of a malformed
// scene description.
type ConfigError struct {
	Path  string
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("loader: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("loader: %s: %s: %v", e.Path, e.Field, e.Err)
}

// Unwrap allows errors.Is to match both ErrConfigInvalid and the cause.
func (e *ConfigError) Unwrap() []error {
	return []error{ErrConfigInvalid, e.Err}
}
