//go:build gmp

package fibonacci

import (
	"context"
	"errors"
	"math/big"

	"github.com/ncw/gmp"

	apperrors "github.com/agbru/fibmemo/internal/errors"
	"github.com/agbru/fibmemo/internal/progress"
)

var errGMPConversion = errors.New("gmp: result conversion to big.Int failed")

func init() {
	builtinCreators["gmp"] = func() coreCalculator { return GMPIterative{} }
}

// GMPIterative runs the bottom-up loop on GMP integers. It requires cgo and
// libgmp and is only built with the gmp tag.
type GMPIterative struct{}

// Name returns the display name of the algorithm.
func (GMPIterative) Name() string {
	return "Iterative Bottom-Up (GMP)"
}

// CalculateCore computes F(n) with libgmp and converts the result to big.Int.
func (GMPIterative) CalculateCore(ctx context.Context, reporter progress.ProgressCallback, n int64, _ Options) (*big.Int, error) {
	if n < 0 {
		return nil, apperrors.NewInvalidArgumentError(n)
	}

	a, b := gmp.NewInt(0), gmp.NewInt(1)
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

	result, ok := new(big.Int).SetString(a.String(), 10)
	if !ok {
		return nil, apperrors.CalculationError{Algorithm: "gmp", Cause: errGMPConversion}
	}
	return result, nil
}
