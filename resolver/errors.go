package resolver

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

var (
	// ErrEmptyEnvPrefix is returned when Resolve is called without an environment prefix.
	ErrEmptyEnvPrefix = errors.New("env prefix must not be empty")
	// ErrHelpRequested is wrapped in a UsageError when argv asks for usage output.
	ErrHelpRequested = errors.New("help requested")
)

// FileAccessError reports a config file that is missing, unreadable or not valid INI.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("config file %q: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// CoercionError reports a raw value that could not be converted to the
// destination's declared kind.
type CoercionError struct {
	Name   string
	Kind   Kind
	Source Source
	Value  string
	Err    error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("%s: invalid %s value %q from %s: %v", e.Name, e.Kind, e.Value, e.Source, e.Err)
}

func (e *CoercionError) Unwrap() error { return e.Err }

// UsageError reports argv that does not conform to the schema.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("usage: %v", e.Err)
}

func (e *UsageError) Unwrap() error { return e.Err }

// SchemaError aggregates every problem found while validating a Schema.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid schema: %v", e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// Problems returns the individual validation failures.
func (e *SchemaError) Problems() []error {
	return multierr.Errors(e.Err)
}
