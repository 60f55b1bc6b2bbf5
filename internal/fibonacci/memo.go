package fibonacci

import (
	"context"
	"fmt"
	"math/big"

	apperrors "github.com/agbru/fibmemo/internal/errors"
	"github.com/agbru/fibmemo/internal/progress"
)

// memoTable maps an index k >= 2 to F(k). A table lives for exactly one
// top-level call and each key is written once.
type memoTable map[int64]*big.Int

// store records F(k). Writing a key twice is a programming error.
func (m memoTable) store(k int64, v *big.Int) {
	if _, ok := m[k]; ok {
		panic(fmt.Sprintf("fibonacci: memo entry %d written twice", k))
	}
	m[k] = v
}

// memoStep runs after memo[k] has been stored. A non-nil error aborts the
// evaluation and is returned to the top-level caller.
type memoStep func(k int64) error

// fibMemo returns F(k), filling memo for every index in [2, k]. Entries are
// added in increasing index order because the k-1 branch is always evaluated
// first.
func fibMemo(k int64, memo memoTable, step memoStep) (*big.Int, error) {
	if k < 2 {
		return big.NewInt(k), nil
	}
	if v, ok := memo[k]; ok {
		return v, nil
	}

	prev, err := fibMemo(k-1, memo, step)
	if err != nil {
		return nil, err
	}
	prev2, err := fibMemo(k-2, memo, step)
	if err != nil {
		return nil, err
	}

	v := new(big.Int).Add(prev, prev2)
	memo.store(k, v)
	if step != nil {
		if err := step(k); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Fibonacci returns the exact n-th Fibonacci number, F(0)=0, F(1)=1.
//
// It evaluates the recurrence recursively with a memo table created for this
// call only, so each index is computed once: O(n) additions and O(n) table
// entries. Nothing is retained between calls, which makes concurrent calls
// independent. A negative n fails with an error matching
// apperrors.ErrInvalidArgument.
func Fibonacci(n int64) (*big.Int, error) {
	if n < 0 {
		return nil, apperrors.NewInvalidArgumentError(n)
	}
	return fibMemo(n, make(memoTable), nil)
}

// MemoizedRecursion is the coreCalculator for the memoized recursive
// evaluation. It adds progress reporting and cancellation to Fibonacci.
type MemoizedRecursion struct{}

// Name returns the display name of the algorithm.
func (MemoizedRecursion) Name() string {
	return "Memoized Recursion (O(n))"
}

// CalculateCore computes F(n) with a fresh memo table. Progress is reported as
// the table fills; the context is checked every CancellationCheckInterval
// entries.
func (MemoizedRecursion) CalculateCore(ctx context.Context, reporter progress.ProgressCallback, n int64, _ Options) (*big.Int, error) {
	if n < 0 {
		return nil, apperrors.NewInvalidArgumentError(n)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var lastReported float64
	step := func(k int64) error {
		if k%CancellationCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		progress.ReportStepProgress(reporter, &lastReported, k, n)
		return nil
	}
	return fibMemo(n, make(memoTable), step)
}
