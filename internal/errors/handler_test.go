package apperrors

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestInvalidArgumentError(t *testing.T) {
	t.Parallel()

	for _, n := range []int64{-1, -10} {
		err := NewInvalidArgumentError(n)

		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("n=%d: errors.Is(err, ErrInvalidArgument) = false", n)
		}
		var invalid InvalidArgumentError
		if !errors.As(err, &invalid) {
			t.Fatalf("n=%d: errors.As should find InvalidArgumentError", n)
		}
		if invalid.N != n {
			t.Errorf("N = %d, want %d", invalid.N, n)
		}
		if !strings.Contains(err.Error(), "non-negative") {
			t.Errorf("message %q should mention non-negative", err.Error())
		}
	}

	t.Run("survives wrapping", func(t *testing.T) {
		t.Parallel()
		err := CalculationError{Algorithm: "memo", Cause: WrapError(NewInvalidArgumentError(-3), "calculate")}
		if !errors.Is(err, ErrInvalidArgument) {
			t.Error("wrapped InvalidArgumentError should still match ErrInvalidArgument")
		}
	})

	t.Run("other errors do not match", func(t *testing.T) {
		t.Parallel()
		if errors.Is(ConfigError{Message: "x"}, ErrInvalidArgument) {
			t.Error("ConfigError must not match ErrInvalidArgument")
		}
	})
}

func TestHandleCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantOut  string
	}{
		{"nil error", nil, ExitSuccess, ""},
		{"invalid argument", NewInvalidArgumentError(-1), ExitErrorConfig, "Invalid argument"},
		{"memory budget", MemoryError{Requested: 10, Available: 5, Limit: 5}, ExitErrorConfig, "Configuration error"},
		{"deadline", WrapError(context.DeadlineExceeded, "memo"), ExitErrorTimeout, "Timeout"},
		{"timeout error", TimeoutError{Operation: "memo", Limit: time.Millisecond}, ExitErrorTimeout, "Timeout"},
		{"validation", ValidationError{Field: "gc", Message: "bad"}, ExitErrorConfig, "Configuration error"},
		{"canceled", context.Canceled, ExitErrorCanceled, "Canceled"},
		{"generic", errors.New("boom"), ExitErrorGeneric, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := HandleCalculationError(tt.err, time.Second, &buf, nil)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if tt.wantOut == "" && buf.Len() != 0 {
				t.Errorf("expected no output, got %q", buf.String())
			}
			if !strings.Contains(buf.String(), tt.wantOut) {
				t.Errorf("output %q should contain %q", buf.String(), tt.wantOut)
			}
		})
	}
}
