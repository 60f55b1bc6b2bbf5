package fibonacci

const (
	// FibonacciGrowthFactor is log2(phi), phi ≈ 1.618. F(n) has about
	// n * FibonacciGrowthFactor bits.
	FibonacciGrowthFactor = 0.69424

	// CancellationCheckInterval is the number of indices computed between two
	// context checks. Checking on every index would dominate small additions.
	CancellationCheckInterval = 1024
)
