package orchestration

import (
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/agbru/fibmemo/internal/progress"
)

// CalculationResult is the outcome of one calculator run. Result is nil
// whenever Err is set.
type CalculationResult struct {
	Name     string
	Result   *big.Int
	Duration time.Duration
	Err      error
}

// PresentationOptions selects what AnalyzeComparisonResults prints for the
// winning result.
type PresentationOptions struct {
	N         int64
	Verbose   bool
	Details   bool
	ShowValue bool
}

// ProgressReporter displays calculation progress. Implementations render
// spinners or bars; the orchestrator only feeds them updates.
type ProgressReporter interface {
	// DisplayProgress runs in its own goroutine until progressChan is
	// closed, then calls wg.Done. It must keep receiving so that
	// calculators never block on a full channel.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Quiet mode uses it.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders the comparison table and the final result.
type ResultPresenter interface {
	PresentComparisonTable(results []CalculationResult, out io.Writer)
	PresentResult(result CalculationResult, n int64, verbose, details, showValue bool, out io.Writer)
	FormatDuration(d time.Duration) string
}

// ErrorHandler prints a failure and maps it to an exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
