package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/fibmemo/internal/config"
	"github.com/agbru/fibmemo/internal/fibonacci"
	"github.com/agbru/fibmemo/internal/fibonacci/memory"
	"github.com/agbru/fibmemo/internal/ui"
)

// PrintExecutionConfig prints the run header: the index, the time and memory
// budgets and the runtime the calculation will use.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Calculating %sF(%d)%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.N, ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s, GC mode %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset(),
		ui.ColorCyan(), cfg.GCMode, ui.ColorReset())

	if cfg.N < 0 {
		return
	}
	est := memory.FormatMemoryEstimate(memory.EstimateMemoryUsage(cfg.N, cfg.Algo))
	if cfg.MemoryLimit != "" {
		fmt.Fprintf(out, "Memory limit: %s%s%s (estimated need: %s).\n",
			ui.ColorCyan(), cfg.MemoryLimit, ui.ColorReset(), est)
	} else {
		fmt.Fprintf(out, "Estimated memory: %s.\n", est)
	}
}

// PrintExecutionMode names the calculator, or lists them for a comparison
// run, and opens the execution section.
func PrintExecutionMode(calculators []fibonacci.Calculator, out io.Writer) {
	switch len(calculators) {
	case 0:
		fmt.Fprintf(out, "Execution mode: no calculator selected.\n")
	case 1:
		fmt.Fprintf(out, "Execution mode: single calculation with the %s%s%s algorithm.\n",
			ui.ColorGreen(), calculators[0].Name(), ui.ColorReset())
	default:
		names := make([]string, len(calculators))
		for i, c := range calculators {
			names[i] = c.Name()
		}
		fmt.Fprintf(out, "Execution mode: parallel comparison of %d algorithms (%s).\n",
			len(calculators), strings.Join(names, ", "))
	}
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
