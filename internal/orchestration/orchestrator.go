package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/fibmemo/internal/errors"
	"github.com/agbru/fibmemo/internal/fibonacci"
)

// ProgressBufferMultiplier sizes the progress channel per calculator so that
// a slow display does not stall the calculations.
const ProgressBufferMultiplier = 5

// ExecuteCalculations runs every calculator concurrently on index n and
// returns one CalculationResult per calculator, in input order.
//
// Individual failures are recorded in the result rather than cancelling the
// group: a comparison run must report every algorithm's outcome.
func ExecuteCalculations(ctx context.Context, calculators []fibonacci.Calculator, n int64, opts fibonacci.Options, progressReporter ProgressReporter, out io.Writer) []CalculationResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]CalculationResult, len(calculators))
	progressChan := make(chan fibonacci.ProgressUpdate, len(calculators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(calculators), out)

	for i, calc := range calculators {
		g.Go(func() error {
			start := time.Now()
			res, err := calc.Calculate(ctx, progressChan, i, n, opts)
			results[i] = CalculationResult{
				Name: calc.Name(), Result: res, Duration: time.Since(start), Err: err,
			}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults sorts results (successes first, then by duration),
// prints the comparison table, checks that every successful result agrees and
// presents the fastest one. It returns the process exit code.
func AnalyzeComparisonResults(results []CalculationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *CalculationResult
	var firstErr error
	var firstErrDuration time.Duration
	for i := range results {
		if results[i].Err != nil {
			if firstErr == nil {
				firstErr, firstErrDuration = results[i].Err, results[i].Duration
			}
			continue
		}
		if firstValid == nil {
			firstValid = &results[i]
		}
	}

	if len(results) > 1 {
		presenter.PresentComparisonTable(results, out)
	}

	if firstValid == nil {
		if len(results) > 1 {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No algorithm could complete the calculation.\n")
		}
		if firstErr == nil {
			firstErr = apperrors.NewConfigError("no calculator selected")
		}
		return errHandler.HandleError(firstErr, firstErrDuration, out)
	}

	for _, res := range results {
		if res.Err == nil && res.Result.Cmp(firstValid.Result) != 0 {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The algorithms returned different values for F(%d).\n", opts.N)
			return apperrors.ExitErrorMismatch
		}
	}

	if len(results) > 1 {
		fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent (fastest: %s in %s).\n",
			firstValid.Name, presenter.FormatDuration(firstValid.Duration))
	}
	presenter.PresentResult(*firstValid, opts.N, opts.Verbose, opts.Details, opts.ShowValue, out)
	return apperrors.ExitSuccess
}
