package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/agbru/fibmemo/internal/cli"
	apperrors "github.com/agbru/fibmemo/internal/errors"
	"github.com/agbru/fibmemo/internal/fibonacci/memory"
	"github.com/agbru/fibmemo/internal/logging"
	"github.com/agbru/fibmemo/internal/metrics"
	"github.com/agbru/fibmemo/internal/orchestration"
	"github.com/agbru/fibmemo/internal/progress"
)

// runCalculate computes F(n) with every selected calculator, presents the
// outcome and returns the exit code.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	if a.Config.MemoryLimit != "" {
		if code := a.validateMemoryBudget(); code != apperrors.ExitSuccess {
			return code
		}
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	calculatorsToRun := orchestration.GetCalculatorsToRun(a.Config.Algo, a.Factory)
	if len(calculatorsToRun) == 0 {
		return apperrors.HandleCalculationError(
			apperrors.NewConfigError("no calculator available for %q", a.Config.Algo), 0, a.ErrWriter, cli.CLIColorProvider{})
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(calculatorsToRun, out)
	}

	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		progressReporter = loggedProgressReporter{
			inner:    progressReporter,
			observer: progress.NewLoggingObserver(log.Logger, progressLogInterval),
		}
	}

	a.logger.Debug("starting calculation",
		logging.Int64("n", a.Config.N),
		logging.String("algo", a.Config.Algo),
		logging.Int("calculators", len(calculatorsToRun)))

	memStats := metrics.NewMemoryCollector()
	before := memStats.Snapshot()
	results := orchestration.ExecuteCalculations(ctx, calculatorsToRun, a.Config.N, a.calculationOptions(), progressReporter, progressOut)
	after := memStats.Snapshot()

	for i := range results {
		a.logger.Debug("calculator finished",
			logging.String("algorithm", results[i].Name),
			logging.Float64("seconds", results[i].Duration.Seconds()))
		if err := results[i].Err; err != nil && !apperrors.IsContextError(err) {
			a.logger.Debug("calculator failed", logging.String("algorithm", results[i].Name), logging.Err(err))
		}
		if errors.Is(results[i].Err, context.DeadlineExceeded) {
			results[i].Err = apperrors.TimeoutError{Operation: results[i].Name, Limit: a.Config.Timeout}
		}
		a.recordResult(results[i])
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		ShowValue:  a.Config.ShowValue,
	}
	exitCode := a.analyzeResultsWithOutput(results, outputCfg, out)

	if a.Config.Details && !a.Config.Quiet && exitCode == apperrors.ExitSuccess {
		cli.DisplayMemoryStats(before, after, out)
	}
	a.exportMetrics()
	return exitCode
}

// validateMemoryBudget refuses a run whose estimated footprint exceeds
// --memory-limit.
func (a *Application) validateMemoryBudget() int {
	limit, err := memory.ParseMemoryLimit(a.Config.MemoryLimit)
	if err != nil {
		return apperrors.HandleCalculationError(
			apperrors.NewConfigError("invalid --memory-limit: %v", err), 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	est := memory.EstimateMemoryUsage(a.Config.N, a.Config.Algo)
	a.logger.Debug("memory estimate",
		logging.Uint64("estimate_bytes", est.TotalBytes),
		logging.Uint64("limit_bytes", limit))
	if est.TotalBytes > limit {
		fmt.Fprintf(a.ErrWriter, "Estimated memory %s exceeds limit %s.\n",
			memory.FormatMemoryEstimate(est), a.Config.MemoryLimit)
		if a.Config.Algo != "iterative" {
			fmt.Fprintf(a.ErrWriter, "The memo table grows quadratically with n; use --algo iterative or raise --memory-limit.\n")
		}
		return apperrors.HandleCalculationError(
			apperrors.MemoryError{Requested: est.TotalBytes, Available: limit, Limit: limit}, 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	return apperrors.ExitSuccess
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.CalculationResult, outputCfg cli.OutputConfig, out io.Writer) int {
	bestResult := findBestResult(results)

	if outputCfg.Quiet {
		if bestResult == nil {
			return orchestration.AnalyzeComparisonResults(results, orchestration.PresentationOptions{N: a.Config.N},
				cli.CLIResultPresenter{}, cli.CLIResultPresenter{}, a.ErrWriter)
		}
		cli.DisplayQuietResult(out, bestResult.Result)
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	presOpts := orchestration.PresentationOptions{
		N:         a.Config.N,
		Verbose:   a.Config.Verbose,
		Details:   a.Config.Details,
		ShowValue: a.Config.ShowValue,
	}
	exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, cli.CLIResultPresenter{}, out)

	if bestResult != nil && exitCode == apperrors.ExitSuccess {
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		if outputCfg.OutputFile != "" {
			cli.DisplaySavedPath(out, outputCfg.OutputFile)
		}
	}
	return exitCode
}

func findBestResult(results []orchestration.CalculationResult) *orchestration.CalculationResult {
	var bestResult *orchestration.CalculationResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

func (a *Application) saveResultIfNeeded(res *orchestration.CalculationResult, cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteResultToFile(res.Result, a.Config.N, res.Duration, res.Name, cfg); err != nil {
		err = apperrors.WrapError(err, "saving F(%d)", a.Config.N)
		a.logger.Error("saving result failed", err, logging.String("path", cfg.OutputFile))
		return err
	}
	return nil
}

func (a *Application) recordResult(res orchestration.CalculationResult) {
	if a.recorder == nil {
		return
	}
	bits := 0
	if res.Result != nil {
		bits = res.Result.BitLen()
	}
	a.recorder.Observe(res.Name, res.Duration, bits, res.Err)
}

// exportMetrics writes the metrics textfile. A failure is logged but does
// not change the exit code of the calculation.
func (a *Application) exportMetrics() {
	if a.recorder == nil {
		return
	}
	if err := a.recorder.WriteTextfile(a.Config.MetricsFile); err != nil {
		a.logger.Error("writing metrics textfile failed", err, logging.String("path", a.Config.MetricsFile))
		return
	}
	a.logger.Debug("metrics written", logging.String("path", a.Config.MetricsFile))
}
