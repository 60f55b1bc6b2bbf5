// Package fibmemo computes exact Fibonacci numbers by memoized recursion.
//
// Every call builds its own memo table and discards it on return, so calls
// share no state and may run concurrently.
package fibmemo

import (
	"math/big"

	apperrors "github.com/agbru/fibmemo/internal/errors"
	"github.com/agbru/fibmemo/internal/fibonacci"
)

// ErrInvalidArgument is matched (errors.Is) by the error returned for a
// negative index.
var ErrInvalidArgument = apperrors.ErrInvalidArgument

// InvalidArgumentError carries the rejected index.
type InvalidArgumentError = apperrors.InvalidArgumentError

// Fibonacci returns F(n), with F(0) = 0 and F(1) = 1. A negative n yields an
// error that matches ErrInvalidArgument. The caller owns the returned value.
func Fibonacci(n int64) (*big.Int, error) {
	return fibonacci.Fibonacci(n)
}
