package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	apperrors "github.com/agbru/fibmemo/internal/errors"
	"github.com/agbru/fibmemo/internal/format"
	"github.com/agbru/fibmemo/internal/metrics"
	"github.com/agbru/fibmemo/internal/orchestration"
	"github.com/agbru/fibmemo/internal/progress"
	"github.com/agbru/fibmemo/internal/ui"
)

// CLIProgressReporter renders progress with a spinner and a progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to the package-level DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	DisplayProgress(wg, progressChan, numCalculators, out)
}

// CLIResultPresenter renders results and errors for the terminal.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// tableRow is one line of the comparison summary, before colors are applied.
type tableRow struct {
	name, duration, status string
	failed                 bool
}

// PresentComparisonTable prints one row per calculator. Columns are padded
// on rune width, not byte length, so that ANSI sequences and "µs" do not
// break the alignment.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, out io.Writer) {
	rows := make([]tableRow, len(results))
	nameWidth, durationWidth := len("Algorithm"), len("Duration")
	for i, res := range results {
		row := tableRow{name: res.Name, duration: "< 1µs", status: "✅ Success"}
		if res.Duration > 0 {
			row.duration = format.FormatExecutionDuration(res.Duration)
		}
		if res.Err != nil {
			row.failed = true
			row.status = fmt.Sprintf("❌ Failure (%v)", res.Err)
		}
		nameWidth = max(nameWidth, utf8.RuneCountInString(row.name))
		durationWidth = max(durationWidth, utf8.RuneCountInString(row.duration))
		rows[i] = row
	}

	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	fmt.Fprintf(out, "%s   %s   %s\n",
		underline("Algorithm", nameWidth), underline("Duration", durationWidth), underline("Status", 0))
	for _, row := range rows {
		statusColor := ui.ColorGreen()
		if row.failed {
			statusColor = ui.ColorRed()
		}
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s%s%s\n",
			ui.ColorBlue(), row.name, ui.ColorReset(), pad(row.name, nameWidth),
			ui.ColorYellow(), row.duration, ui.ColorReset(), pad(row.duration, durationWidth),
			statusColor, row.status, ui.ColorReset())
	}
}

func underline(title string, width int) string {
	return ui.ColorUnderline() + title + ui.ColorReset() + pad(title, width)
}

// pad returns the spaces needed to widen s to width runes.
func pad(s string, width int) string {
	n := width - utf8.RuneCountInString(s)
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// PresentResult delegates to DisplayResult.
func (CLIResultPresenter) PresentResult(result orchestration.CalculationResult, n int64, verbose, details, showValue bool, out io.Writer) {
	DisplayResult(result.Result, n, result.Duration, verbose, details, showValue, out)
}

// FormatDuration uses format.FormatExecutionDuration.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError prints err and maps it to an exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// DisplayMemoryStats prints what the run cost between two snapshots.
func DisplayMemoryStats(before, after metrics.MemorySnapshot, out io.Writer) {
	d := before.Delta(after)
	fmt.Fprintf(out, "\n%sMemory Stats:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(d.HeapInUse))
	fmt.Fprintf(out, "  Heap reserved:   %s\n", format.FormatBytes(d.HeapReserved))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(d.Allocated))
	fmt.Fprintf(out, "  GC cycles:       %d\n", d.GCCycles)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(d.GCPause)/float64(time.Millisecond))
}
