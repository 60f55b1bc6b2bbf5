package memory

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/agbru/fibmemo/internal/format"
)

const (
	// memoEntryOverhead approximates the map bucket share, the *big.Int header
	// and the slice header of one memo entry.
	memoEntryOverhead = 96
	// recursionFrameBytes approximates the goroutine stack used per level of
	// memoized recursion.
	recursionFrameBytes = 160
)

// MemoryEstimate is the estimated peak footprint of computing F(n).
type MemoryEstimate struct {
	// ResultBytes is the size of F(n) itself.
	ResultBytes uint64
	// WorkingBytes covers everything else: memo entries, stack, temporaries.
	WorkingBytes uint64
	// TotalBytes is ResultBytes + WorkingBytes.
	TotalBytes uint64
}

// EstimateMemoryUsage estimates the peak memory needed to compute F(n) with
// the named algorithm. The memo table keeps every F(k), k <= n, alive until
// the call returns, so its cost is quadratic in n; the iterative algorithms
// only hold two values of the final size.
func EstimateMemoryUsage(n int64, algo string) MemoryEstimate {
	if n < 0 {
		return MemoryEstimate{}
	}
	resultBytes := float64(BitsForIndex(n)) / 8

	var working float64
	switch {
	case usesMemoTable(algo):
		// sum over k of bits(F(k)) ≈ growth * n² / 2
		tableBits := fibonacciGrowthFactor * float64(n) * float64(n) / 2
		working = tableBits/8 + float64(n)*(memoEntryOverhead+recursionFrameBytes)
	default:
		working = 2 * resultBytes
	}

	est := MemoryEstimate{
		ResultBytes:  clampUint64(resultBytes),
		WorkingBytes: clampUint64(working),
	}
	est.TotalBytes = est.ResultBytes + est.WorkingBytes
	if est.TotalBytes < est.ResultBytes {
		est.TotalBytes = math.MaxUint64
	}
	return est
}

// usesMemoTable reports whether an -algo selection runs the memoized
// calculator, whose table dominates the footprint.
func usesMemoTable(algo string) bool {
	for _, name := range strings.Split(algo, ",") {
		switch strings.TrimSpace(name) {
		case "memo", "all":
			return true
		}
	}
	return false
}

func clampUint64(v float64) uint64 {
	if v >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(math.Ceil(v))
}

var memoryUnits = []struct {
	suffix string
	factor uint64
}{
	{"TB", 1 << 40}, {"GB", 1 << 30}, {"MB", 1 << 20}, {"KB", 1 << 10},
	{"T", 1 << 40}, {"G", 1 << 30}, {"M", 1 << 20}, {"K", 1 << 10},
	{"B", 1},
}

// ParseMemoryLimit parses a limit such as "512M", "8GB" or "1048576".
func ParseMemoryLimit(s string) (uint64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty memory limit")
	}
	factor := uint64(1)
	for _, u := range memoryUnits {
		if strings.HasSuffix(s, u.suffix) {
			factor = u.factor
			s = strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			break
		}
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value <= 0 || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, fmt.Errorf("invalid memory limit %q", s)
	}
	return clampUint64(value * float64(factor)), nil
}

// FormatMemoryEstimate renders the total of est in human units.
func FormatMemoryEstimate(est MemoryEstimate) string {
	return format.FormatBytes(est.TotalBytes)
}
