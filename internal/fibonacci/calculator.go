package fibonacci

import (
	"context"
	"math/big"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "github.com/agbru/fibmemo/internal/errors"
	"github.com/agbru/fibmemo/internal/fibonacci/memory"
	"github.com/agbru/fibmemo/internal/progress"
)

const tracerName = "github.com/agbru/fibmemo/internal/fibonacci"

// Calculator is the public interface of a Fibonacci algorithm, as used by the
// orchestration layer and the interactive prompt.
type Calculator interface {
	// Calculate computes F(n). Progress updates, if progressChan is non-nil,
	// are tagged with calcIndex. A negative n fails with an error matching
	// apperrors.ErrInvalidArgument.
	Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, n int64, opts Options) (*big.Int, error)

	// Name returns the display name of the algorithm.
	Name() string
}

// coreCalculator is implemented by the algorithms themselves. They only deal
// with the arithmetic; FibCalculator adds validation, tracing, GC control and
// progress plumbing.
type coreCalculator interface {
	CalculateCore(ctx context.Context, reporter progress.ProgressCallback, n int64, opts Options) (*big.Int, error)
	Name() string
}

// FibCalculator decorates a coreCalculator.
type FibCalculator struct {
	core coreCalculator
}

// NewCalculator wraps core into a Calculator.
func NewCalculator(core coreCalculator) Calculator {
	if core == nil {
		panic("fibonacci: NewCalculator called with nil core")
	}
	return &FibCalculator{core: core}
}

// Name returns the name of the wrapped algorithm.
func (c *FibCalculator) Name() string {
	return c.core.Name()
}

// Calculate implements Calculator by forwarding progress to progressChan.
func (c *FibCalculator) Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, n int64, opts Options) (*big.Int, error) {
	subject := NewProgressSubject()
	if progressChan != nil {
		subject.Register(NewChannelObserver(progressChan))
	}
	return c.CalculateWithObservers(ctx, subject, calcIndex, n, opts)
}

// CalculateWithObservers computes F(n) and notifies the observers registered
// on subject. The observer list is frozen when the calculation starts.
func (c *FibCalculator) CalculateWithObservers(ctx context.Context, subject *ProgressSubject, calcIndex int, n int64, opts Options) (*big.Int, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "fibonacci.Calculate")
	defer span.End()
	span.SetAttributes(
		attribute.String("fibonacci.algorithm", c.core.Name()),
		attribute.Int64("fibonacci.n", n),
	)

	if n < 0 {
		err := apperrors.NewInvalidArgumentError(n)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var reporter progress.ProgressCallback
	if subject != nil && subject.ObserverCount() > 0 {
		reporter = subject.Freeze(calcIndex)
	}

	gc := memory.NewGCController(opts.GCMode, n)
	gc.SetLogger(log.Logger)
	gc.Begin()
	result, err := c.core.CalculateCore(ctx, reporter, n, opts)
	gc.End()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if reporter != nil {
		reporter(1.0)
	}
	span.SetAttributes(attribute.Int("fibonacci.result_bits", result.BitLen()))
	return result, nil
}
