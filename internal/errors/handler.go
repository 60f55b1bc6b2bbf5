package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the ANSI sequences used when an error is rendered.
// A nil ColorProvider renders without colors.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

type noColor struct{}

func (noColor) Red() string    { return "" }
func (noColor) Yellow() string { return "" }
func (noColor) Reset() string  { return "" }

// HandleCalculationError writes a user-facing description of err to out and
// returns the matching exit code. A nil error yields ExitSuccess and writes
// nothing.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = noColor{}
	}

	suffix := ""
	if duration > 0 {
		suffix = fmt.Sprintf(" after %s", duration)
	}

	var (
		invalid InvalidArgumentError
		memErr  MemoryError
		cfgErr  ConfigError
		valErr  ValidationError
	)
	switch {
	case errors.As(err, &invalid):
		fmt.Fprintf(out, "%sInvalid argument: %v%s\n", colors.Red(), invalid, colors.Reset())
		return ExitErrorConfig
	case errors.As(err, &memErr), errors.As(err, &cfgErr), errors.As(err, &valErr):
		fmt.Fprintf(out, "%sConfiguration error: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorConfig
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sStatus: Failure (Timeout). The execution limit was reached%s.%s\n", colors.Red(), suffix, colors.Reset())
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), suffix, colors.Reset())
		return ExitErrorCanceled
	default:
		fmt.Fprintf(out, "%sStatus: Failure. An unexpected error occurred%s: %v%s\n", colors.Red(), suffix, err, colors.Reset())
		return ExitErrorGeneric
	}
}
