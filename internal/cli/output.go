package cli

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/fibmemo/internal/ui"
)

// OutputConfig holds the result output options.
type OutputConfig struct {
	// OutputFile is the path to save the result to; empty disables saving.
	OutputFile string
	// Quiet prints only the value.
	Quiet bool
	// Verbose prints the full value instead of a truncated one.
	Verbose bool
	// ShowValue prints the value at all.
	ShowValue bool
}

// WriteResultToFile saves F(n) under a commented header. Missing parent
// directories are created. Nothing happens when config.OutputFile is empty.
func WriteResultToFile(result *big.Int, n int64, duration time.Duration, algo string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	if dir := filepath.Dir(config.OutputFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	digits := result.String()
	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "# Fibonacci Calculation Result\n")
	fmt.Fprintf(w, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "# Algorithm: %s\n", algo)
	fmt.Fprintf(w, "# Duration: %s\n", duration)
	fmt.Fprintf(w, "# N: %d\n", n)
	fmt.Fprintf(w, "# Bits: %d\n", result.BitLen())
	fmt.Fprintf(w, "# Digits: %d\n", len(digits))
	fmt.Fprintf(w, "\nF(%d) =\n%s\n", n, digits)

	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// FormatQuietResult returns the bare decimal value, for scripting.
func FormatQuietResult(result *big.Int) string {
	return result.String()
}

// DisplayQuietResult prints the bare value on its own line.
func DisplayQuietResult(out io.Writer, result *big.Int) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// DisplaySavedPath confirms that the result was written to path.
func DisplaySavedPath(out io.Writer, path string) {
	fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
		ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
}
