package fibonacci

import (
	"context"
	"errors"
	"math/big"
	"testing"

	apperrors "github.com/agbru/fibmemo/internal/errors"
)

// FuzzMemoVsIterative checks that the memoized recursion agrees with the
// bottom-up loop and rejects exactly the negative indices.
func FuzzMemoVsIterative(f *testing.F) {
	for _, n := range []int64{-10, -1, 0, 1, 2, 10, 92, 93, 94, 100, 1000} {
		f.Add(n)
	}

	f.Fuzz(func(t *testing.T, n int64) {
		if n > 20000 {
			return
		}
		ctx := context.Background()

		memo, errMemo := MemoizedRecursion{}.CalculateCore(ctx, nil, n, Options{})
		iter, errIter := IterativeBottomUp{}.CalculateCore(ctx, nil, n, Options{})

		if n < 0 {
			if !errors.Is(errMemo, apperrors.ErrInvalidArgument) || !errors.Is(errIter, apperrors.ErrInvalidArgument) {
				t.Fatalf("n=%d: want ErrInvalidArgument, got memo=%v iterative=%v", n, errMemo, errIter)
			}
			return
		}
		if errMemo != nil || errIter != nil {
			t.Fatalf("n=%d: memo=%v iterative=%v", n, errMemo, errIter)
		}
		if memo.Cmp(iter) != 0 {
			t.Errorf("n=%d: memo=%s iterative=%s", n, memo, iter)
		}
		if memo.Sign() < 0 {
			t.Errorf("n=%d: negative result %s", n, memo)
		}
	})
}

// FuzzAdditionIdentity checks F(m+n) = F(m)F(n+1) + F(m-1)F(n) for m >= 1.
func FuzzAdditionIdentity(f *testing.F) {
	f.Add(int64(5), int64(3))
	f.Add(int64(10), int64(10))
	f.Add(int64(1), int64(0))
	f.Add(int64(64), int64(129))

	f.Fuzz(func(t *testing.T, m, n int64) {
		if m < 1 || n < 0 || m > 3000 || n > 3000 {
			return
		}
		fmn, _ := Fibonacci(m + n)
		fm, _ := Fibonacci(m)
		fm1, _ := Fibonacci(m - 1)
		fn, _ := Fibonacci(n)
		fn1, _ := Fibonacci(n + 1)

		right := new(big.Int).Mul(fm, fn1)
		right.Add(right, new(big.Int).Mul(fm1, fn))
		if fmn.Cmp(right) != 0 {
			t.Errorf("F(%d+%d) = %s, identity gives %s", m, n, fmn, right)
		}
	})
}
