// Package apperrors defines the structured error types of fibmemo and the
// mapping from those errors to process exit codes.
//
// Every wrapping type implements Unwrap so that callers can rely on
// errors.Is and errors.As. Invalid input to a calculator is reported with
// InvalidArgumentError, which matches the ErrInvalidArgument sentinel.
package apperrors
