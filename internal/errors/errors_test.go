package apperrors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"config", NewConfigError("unknown algorithm %q", "fast"), `unknown algorithm "fast"`},
		{"calculation", CalculationError{Algorithm: "gmp", Cause: errors.New("conversion failed")}, "conversion failed"},
		{"timeout", TimeoutError{Operation: "memo", Limit: 2 * time.Second}, `operation "memo" timed out after 2s`},
		{"validation", ValidationError{Field: "gc", Message: "unknown mode"}, `validation error for "gc": unknown mode`},
		{"memory", MemoryError{Requested: 2048, Available: 1024, Limit: 1024}, "requested 2048 bytes, available 1024 bytes (limit: 1024)"},
		{"invalid argument", NewInvalidArgumentError(-3), "n must be a non-negative integer (got -3)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); !strings.Contains(got, tt.want) {
				t.Errorf("Error() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	t.Parallel()
	wrapped := fmt.Errorf("run: %w", CalculationError{Algorithm: "memo", Cause: NewInvalidArgumentError(-1)})

	var calcErr CalculationError
	if !errors.As(wrapped, &calcErr) || calcErr.Algorithm != "memo" {
		t.Errorf("errors.As CalculationError failed: %+v", calcErr)
	}
	var invalid InvalidArgumentError
	if !errors.As(wrapped, &invalid) || invalid.N != -1 {
		t.Errorf("errors.As InvalidArgumentError failed: %+v", invalid)
	}
	if !errors.Is(wrapped, ErrInvalidArgument) {
		t.Error("errors.Is(wrapped, ErrInvalidArgument) = false")
	}

	var memErr MemoryError
	if !errors.As(fmt.Errorf("budget: %w", MemoryError{Limit: 1}), &memErr) || memErr.Limit != 1 {
		t.Error("errors.As MemoryError failed")
	}
	var valErr ValidationError
	if !errors.As(fmt.Errorf("config: %w", ValidationError{Field: "timeout"}), &valErr) || valErr.Field != "timeout" {
		t.Error("errors.As ValidationError failed")
	}
}

func TestTimeoutErrorMatchesDeadline(t *testing.T) {
	t.Parallel()
	err := TimeoutError{Operation: "iterative", Limit: time.Millisecond}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("TimeoutError should match context.DeadlineExceeded")
	}
	if errors.Is(err, context.Canceled) {
		t.Error("TimeoutError should not match context.Canceled")
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	if WrapError(nil, "ignored %d", 1) != nil {
		t.Error("WrapError(nil) should be nil")
	}
	base := errors.New("disk full")
	err := WrapError(base, "saving F(%d)", 100)
	if err.Error() != "saving F(100): disk full" {
		t.Errorf("WrapError message = %q", err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("WrapError should keep the cause inspectable")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want bool
	}{
		{context.Canceled, true},
		{context.DeadlineExceeded, true},
		{fmt.Errorf("memo: %w", context.Canceled), true},
		{TimeoutError{Operation: "memo"}, true},
		{NewInvalidArgumentError(-1), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsContextError(tt.err); got != tt.want {
			t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestExitCodes(t *testing.T) {
	t.Parallel()
	codes := map[string]int{
		"success":  ExitSuccess,
		"generic":  ExitErrorGeneric,
		"timeout":  ExitErrorTimeout,
		"mismatch": ExitErrorMismatch,
		"config":   ExitErrorConfig,
		"canceled": ExitErrorCanceled,
	}
	seen := make(map[int]string)
	for name, code := range codes {
		if other, dup := seen[code]; dup {
			t.Errorf("exit code %d shared by %s and %s", code, name, other)
		}
		seen[code] = name
	}
	if ExitSuccess != 0 || ExitErrorCanceled != 130 {
		t.Errorf("ExitSuccess = %d, ExitErrorCanceled = %d", ExitSuccess, ExitErrorCanceled)
	}
}
