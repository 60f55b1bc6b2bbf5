package memory

import (
	"math"
	"math/big"
)

// fibonacciGrowthFactor is log2(phi). Kept local to avoid importing the
// parent fibonacci package.
const fibonacciGrowthFactor = 0.69424

// wordBits is the size of a big.Word in bits.
const wordBits = 32 << (^uint(0) >> 63)

// BitsForIndex estimates the bit length of F(n), rounded up.
func BitsForIndex(n int64) uint64 {
	if n <= 1 {
		return 1
	}
	return uint64(math.Ceil(float64(n)*fibonacciGrowthFactor)) + 1
}

// WordsForIndex estimates the number of big.Words needed to hold F(n).
func WordsForIndex(n int64) int {
	return int(BitsForIndex(n)/uint64(wordBits)) + 1
}

// PreSize sets z to zero backed by an array of at least words capacity, so a
// loop that grows z up to a known size does not reallocate on the way.
// It does nothing when z already has the capacity.
func PreSize(z *big.Int, words int) {
	if z == nil || words <= 0 || cap(z.Bits()) >= words {
		return
	}
	z.SetBits(make([]big.Word, 0, words))
}
