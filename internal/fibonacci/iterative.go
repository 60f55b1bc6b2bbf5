package fibonacci

import (
	"context"
	"math/big"

	apperrors "github.com/agbru/fibmemo/internal/errors"
	"github.com/agbru/fibmemo/internal/fibonacci/memory"
	"github.com/agbru/fibmemo/internal/progress"
)

// IterativeBottomUp computes F(n) by accumulating the last two values. It
// needs no table and no recursion, and serves as an independent cross-check
// of MemoizedRecursion in comparison runs.
type IterativeBottomUp struct{}

// Name returns the display name of the algorithm.
func (IterativeBottomUp) Name() string {
	return "Iterative Bottom-Up (O(n))"
}

// CalculateCore computes F(n) with two running big.Int values.
func (IterativeBottomUp) CalculateCore(ctx context.Context, reporter progress.ProgressCallback, n int64, _ Options) (*big.Int, error) {
	if n < 0 {
		return nil, apperrors.NewInvalidArgumentError(n)
	}

	// a = F(i), b = F(i+1)
	a, b := new(big.Int), new(big.Int)
	words := memory.WordsForIndex(n)
	memory.PreSize(a, words)
	memory.PreSize(b, words)
	b.SetInt64(1)

	var lastReported float64
	for i := int64(0); i < n; i++ {
		if i%CancellationCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		a.Add(a, b)
		a, b = b, a
		progress.ReportStepProgress(reporter, &lastReported, i+1, n)
	}
	return a, nil
}
