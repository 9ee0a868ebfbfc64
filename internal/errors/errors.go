// Package errors provides structured error types for sediment setup.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for setup operations.
const (
	// Input value errors
	CodeMissingOrMalformed = "SED_001" // Required key absent or value failed to parse
	CodeInvalidCombination = "SED_002" // Reserved: contradictory input (road downgrade is a warning)
	CodeAllocationFailure  = "SED_003" // Memory request could not be satisfied
	CodeTemporalOrdering   = "SED_004" // Period end does not follow its start

	// Tool config errors
	CodeConfigInvalidValue = "CONFIG_002" // Invalid value type

	// IO errors
	CodeIOFileNotFound = "IO_001" // File not found
	CodeIOReadError    = "IO_004" // Read error
	CodeIOWriteError   = "IO_005" // Write error

	// Syntax errors
	CodeParseError = "PARSE_001" // File is not valid TOML or YAML
)

// SetupError is the structured error type for setup operations.
type SetupError struct {
	Code    string         // Error code (e.g., "SED_001")
	Message string         // Human-readable message
	Details map[string]any // Context (section, key, routine, ...)
	Cause   error          // Wrapped error
}

// Error implements the error interface.
func (e *SetupError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *SetupError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error.
func (e *SetupError) WithDetail(key string, value any) *SetupError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause wraps an underlying error.
func (e *SetupError) WithCause(err error) *SetupError {
	e.Cause = err
	return e
}

// Newf creates a new SetupError with formatted message.
func Newf(code, format string, args ...any) *SetupError {
	return &SetupError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with a SetupError.
func Wrap(code, message string, err error) *SetupError {
	return &SetupError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// --- Input Errors ---

// MissingValue creates an error for a required key that is absent.
func MissingValue(section, key string) *SetupError {
	return Newf(CodeMissingOrMalformed, "missing required value [%s] %s", section, key).
		WithDetail("section", section).
		WithDetail("key", key)
}

// MalformedValue creates an error for a value that failed to parse.
func MalformedValue(section, key, value, want string) *SetupError {
	return Newf(CodeMissingOrMalformed, "[%s] %s: cannot use %q as %s", section, key, value, want).
		WithDetail("section", section).
		WithDetail("key", key).
		WithDetail("value", value).
		WithDetail("want", want)
}

// AllocationFailure creates an error for an unsatisfiable memory request.
func AllocationFailure(routine string, n int) *SetupError {
	return Newf(CodeAllocationFailure, "%s: cannot allocate %d elements", routine, n).
		WithDetail("routine", routine).
		WithDetail("elements", n)
}

// TemporalOrdering creates an error for a period whose end is not after its start.
func TemporalOrdering(section string, period int) *SetupError {
	return Newf(CodeTemporalOrdering, "[%s] period %d: end must be after start", section, period).
		WithDetail("section", section).
		WithDetail("period", period)
}

// --- Config Errors ---

// ConfigInvalidValue creates an error for invalid tool config value.
func ConfigInvalidValue(field string, value any, reason string) *SetupError {
	return Newf(CodeConfigInvalidValue, "invalid config value for %s: %s", field, reason).
		WithDetail("field", field).
		WithDetail("value", value).
		WithDetail("reason", reason)
}

// --- IO Errors ---

// IOFileNotFound creates an error for missing file.
func IOFileNotFound(path string) *SetupError {
	return Newf(CodeIOFileNotFound, "file not found: %s", path).
		WithDetail("path", path)
}

// IOReadError creates an error for read failures.
func IOReadError(path string, err error) *SetupError {
	return Wrap(CodeIOReadError, "failed to read file", err).
		WithDetail("path", path)
}

// IOWriteError creates an error for write failures.
func IOWriteError(path string, err error) *SetupError {
	return Wrap(CodeIOWriteError, "failed to write file", err).
		WithDetail("path", path)
}

// ParseError creates an error for a file whose syntax cannot be decoded.
func ParseError(path string, err error) *SetupError {
	msg := "failed to parse input"
	if path != "" {
		msg = "failed to parse " + path
	}
	return Wrap(CodeParseError, msg, err).
		WithDetail("path", path)
}

// HasCode checks if an error is a SetupError with the given code.
// It handles wrapped errors by unwrapping to find a SetupError.
func HasCode(err error, code string) bool {
	var serr *SetupError
	if errors.As(err, &serr) {
		return serr.Code == code
	}
	return false
}

// Code returns the error code if err is a SetupError, empty string otherwise.
func Code(err error) string {
	var serr *SetupError
	if errors.As(err, &serr) {
		return serr.Code
	}
	return ""
}

// Detail returns the named detail of a SetupError found in err's chain.
func Detail(err error, key string) (any, bool) {
	var serr *SetupError
	if !errors.As(err, &serr) {
		return nil, false
	}
	v, ok := serr.Details[key]
	return v, ok
}
