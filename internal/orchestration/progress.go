package orchestration

import (
	"fmt"
	"time"

	"github.com/agbru/fibmemo/internal/format"
	"github.com/agbru/fibmemo/internal/progress"
)

// AggregatedProgress is the combined view of every running calculator.
type AggregatedProgress struct {
	// Average is the mean progress across calculators, 0.0 to 1.0.
	Average float64
	// ETA is the estimated time remaining; 0 while unknown.
	ETA time.Duration
}

// ProgressAggregator folds per-calculator updates into one progress value
// with an ETA. It is not safe for concurrent use; one reporter goroutine owns
// it.
type ProgressAggregator struct {
	state          *format.ProgressWithETA
	numCalculators int
}

// NewProgressAggregator returns nil when there is nothing to track.
func NewProgressAggregator(numCalculators int) *ProgressAggregator {
	if numCalculators <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:          format.NewProgressWithETA(numCalculators),
		numCalculators: numCalculators,
	}
}

// Update records one calculator update.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.CalculatorIndex, update.Value)
	return AggregatedProgress{Average: avg, ETA: eta}
}

// Current returns the aggregate without recording anything, for periodic
// redraws between updates.
func (a *ProgressAggregator) Current() AggregatedProgress {
	return AggregatedProgress{Average: a.state.CalculateAverage(), ETA: a.state.GetETA()}
}

// Label names the work being tracked.
func (a *ProgressAggregator) Label() string {
	if a.numCalculators > 1 {
		return fmt.Sprintf("Computing (%d algorithms)", a.numCalculators)
	}
	return "Computing"
}

// DrainChannel discards updates until progressChan is closed.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
