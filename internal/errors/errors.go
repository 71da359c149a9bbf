package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess         = 0   // Indicates successful execution.
	ExitErrorGeneric    = 1   // Indicates a generic error.
	ExitErrorArithmetic = 2   // Indicates an arithmetic failure (underflow, overflow).
	ExitErrorMemory     = 3   // Indicates a memory limit was exceeded.
	ExitErrorConfig     = 4   // Indicates a configuration error.
	ExitErrorCanceled   = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// Arithmetic error kinds reported by the integer engine. Callers match them
// with errors.Is through any amount of wrapping.
var (
	// ErrUnderflow reports a subtraction whose result would be negative.
	ErrUnderflow = errors.New("arithmetic underflow")
	// ErrShiftOverflow reports a shift count beyond the supported range.
	ErrShiftOverflow = errors.New("shift count out of range")
	// ErrOverflow reports a value that does not fit the requested target type.
	ErrOverflow = errors.New("value overflows target type")
	// ErrReleased reports use of a value whose scope has been destroyed.
	ErrReleased = errors.New("value used after its scope was released")
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
//
// Returns:
//   - string: The error message string.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
// It allows for the creation of configuration-specific errors with dynamic
// content.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// OperationError encapsulates an engine failure while preserving the
// original cause and the name of the operation that produced it.
type OperationError struct {
	// Op is the engine operation that failed ("add", "sub", "shr", ...).
	Op string
	// Cause is the underlying error that triggered this operation error.
	Cause error
}

// Error returns the operation name followed by the cause message.
func (e OperationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e OperationError) Unwrap() error { return e.Cause }

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
//
// Returns:
//   - string: The error message string.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MemoryError represents a memory limit exceeded condition. It captures the
// requested, available, and limit memory values for diagnostic purposes.
type MemoryError struct {
	// Requested is the number of bytes the operation needed.
	Requested uint64
	// Available is the number of bytes currently available.
	Available uint64
	// Limit is the configured memory limit in bytes.
	Limit uint64
}

// Error returns a formatted message describing the memory error.
//
// Returns:
//   - string: The error message string.
func (e MemoryError) Error() string {
	return fmt.Sprintf("memory error: requested %d bytes, available %d bytes (limit: %d)", e.Requested, e.Available, e.Limit)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// ExitCodeFor maps an error to the process exit code that best describes it.
func ExitCodeFor(err error) int {
	var memErr MemoryError
	var cfgErr ConfigError
	var valErr ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &memErr):
		return ExitErrorMemory
	case errors.As(err, &cfgErr), errors.As(err, &valErr):
		return ExitErrorConfig
	case errors.Is(err, ErrUnderflow), errors.Is(err, ErrShiftOverflow), errors.Is(err, ErrOverflow):
		return ExitErrorArithmetic
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorCanceled
	default:
		return ExitErrorGeneric
	}
}
