//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibmemo/internal/format"
	"github.com/agbru/fibmemo/internal/orchestration"
	"github.com/agbru/fibmemo/internal/progress"
	"github.com/agbru/fibmemo/internal/ui"
)

const (
	// TruncationLimit is the digit count above which a displayed value is
	// truncated unless -v is given.
	TruncationLimit = 100
	// DisplayEdges is the number of leading and trailing digits kept when a
	// value is truncated.
	DisplayEdges = 25
	// ProgressRefreshRate is the spinner and progress bar refresh period.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width of the progress bar in characters.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so that DisplayProgress can be
// tested without a terminal.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts *spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// CLIColorProvider exposes the active ui theme to apperrors.
type CLIColorProvider struct{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// DisplayProgress renders a spinner with an aggregated progress bar until
// progressChan is closed, then calls wg.Done.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numCalculators)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	render := func(p orchestration.AggregatedProgress) {
		s.UpdateSuffix(fmt.Sprintf(" %s %s", agg.Label(), format.FormatProgressBarWithETA(p.Average, p.ETA, ProgressBarWidth)))
	}
	render(orchestration.AggregatedProgress{})
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				final := orchestration.AggregatedProgress{Average: agg.Current().Average}
				render(final)
				s.Stop()
				fmt.Fprintf(out, "\r%s\n", format.FormatProgressBarWithETA(final.Average, 0, ProgressBarWidth))
				return
			}
			agg.Update(update)
		case <-ticker.C:
			render(agg.Current())
		}
	}
}

// DisplayResult prints a computed value. The value itself is shown only when
// showValue is set; values longer than TruncationLimit digits are truncated
// unless verbose is set. details adds size and timing information.
func DisplayResult(result *big.Int, n int64, duration time.Duration, verbose, details, showValue bool, out io.Writer) {
	digits := result.String()

	fmt.Fprintf(out, "\nResult binary size: %s%s%s bits.\n",
		ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(result.BitLen())), ui.ColorReset())

	if details {
		fmt.Fprintf(out, "\n--- Detailed result analysis ---\n")
		fmt.Fprintf(out, "Calculation time        : %s%s%s\n",
			ui.ColorGreen(), format.FormatExecutionDuration(duration), ui.ColorReset())
		fmt.Fprintf(out, "Number of digits        : %s%s%s\n",
			ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(len(digits))), ui.ColorReset())
		if len(digits) > 6 {
			fmt.Fprintf(out, "Scientific notation     : %s%c.%se%d%s\n",
				ui.ColorCyan(), digits[0], digits[1:6], len(digits)-1, ui.ColorReset())
		}
	}

	if !showValue {
		return
	}

	fmt.Fprintf(out, "\n--- Calculated value ---\n")
	if verbose || len(digits) <= TruncationLimit {
		fmt.Fprintf(out, "F(%s%d%s) = %s%s%s\n",
			ui.ColorMagenta(), n, ui.ColorReset(), ui.ColorGreen(), format.FormatNumberString(digits), ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "F(%s%d%s) = %s%s%s (truncated)\n",
		ui.ColorMagenta(), n, ui.ColorReset(), ui.ColorGreen(), format.TruncateDigits(digits, DisplayEdges), ui.ColorReset())
	fmt.Fprintf(out, "Tip: use %s-v%s to display the full value.\n", ui.ColorYellow(), ui.ColorReset())
}
