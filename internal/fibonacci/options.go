package fibonacci

// Options configures a single calculation.
type Options struct {
	// GCMode selects the garbage collector policy for the run: "auto",
	// "aggressive" or "disabled" (see memory.GCController). Empty means
	// "disabled".
	GCMode string
}
