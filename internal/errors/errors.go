package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Exit codes returned by the fibmemo binary.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Unclassified failure.
	ExitErrorTimeout  = 2   // The calculation exceeded --timeout.
	ExitErrorMismatch = 3   // Two calculators disagreed on F(n).
	ExitErrorConfig   = 4   // Invalid flags, environment or input index.
	ExitErrorCanceled = 130 // Interrupted by SIGINT/SIGTERM.
)

// ErrInvalidArgument is the sentinel matched by every InvalidArgumentError.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError reports a Fibonacci index outside the accepted domain.
// It is the only failure a calculator raises for a well-formed call; it signals
// a caller bug and is never retried.
type InvalidArgumentError struct {
	// N is the rejected index.
	N int64
	// Message is the human-readable explanation.
	Message string
}

// NewInvalidArgumentError returns the error raised for a negative index.
func NewInvalidArgumentError(n int64) error {
	return InvalidArgumentError{N: n, Message: "n must be a non-negative integer"}
}

// Error returns the message, including the rejected index.
func (e InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s (got %d)", e.Message, e.N)
}

// Is reports whether target is ErrInvalidArgument.
func (e InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// ConfigError represents an invalid flag or environment value. The
// application cannot proceed until the user fixes its input.
type ConfigError struct {
	Message string
}

// Error returns the message.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError carries the failure of a single calculator while keeping
// the original cause inspectable.
type CalculationError struct {
	// Name of the calculator that failed, may be empty.
	Algorithm string
	// Cause is the underlying error.
	Cause error
}

// Error returns the message of the underlying cause.
func (e CalculationError) Error() string { return e.Cause.Error() }

// Unwrap returns the wrapped cause.
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError represents a calculation that exceeded its deadline.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// Unwrap lets errors.Is match context.DeadlineExceeded.
func (e TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// ValidationError represents a configuration field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MemoryError is returned when the estimated footprint of a calculation
// exceeds the configured --memory-limit.
type MemoryError struct {
	// Requested is the estimated number of bytes the calculation needs.
	Requested uint64
	// Available is the number of bytes the budget leaves for it.
	Available uint64
	// Limit is the configured limit in bytes.
	Limit uint64
}

// Error returns a formatted message describing the memory error.
func (e MemoryError) Error() string {
	return fmt.Sprintf("memory error: requested %d bytes, available %d bytes (limit: %d)", e.Requested, e.Available, e.Limit)
}

// WrapError adds context to err with fmt.Errorf and %w. It returns nil when
// err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError reports whether err is a context cancellation or deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
