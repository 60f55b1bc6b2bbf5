package cli

import (
	"bytes"
	"io"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibmemo/internal/fibonacci"
	"github.com/agbru/fibmemo/internal/progress"
	"github.com/agbru/fibmemo/internal/ui"
)

// fakeSpinner records lifecycle calls without touching a terminal.
type fakeSpinner struct {
	mu     sync.Mutex
	starts int
	stops  int
	suffix string
}

func (f *fakeSpinner) Start() { f.mu.Lock(); f.starts++; f.mu.Unlock() }
func (f *fakeSpinner) Stop()  { f.mu.Lock(); f.stops++; f.mu.Unlock() }
func (f *fakeSpinner) UpdateSuffix(s string) {
	f.mu.Lock()
	f.suffix = s
	f.mu.Unlock()
}

func withFakeSpinner(t *testing.T) *fakeSpinner {
	t.Helper()
	fake := &fakeSpinner{}
	saved := newSpinner
	newSpinner = func(...spinner.Option) Spinner { return fake }
	t.Cleanup(func() { newSpinner = saved })
	return fake
}

func fib(t *testing.T, n int64) *big.Int {
	t.Helper()
	v, err := fibonacci.Fibonacci(n)
	if err != nil {
		t.Fatalf("Fibonacci(%d): %v", n, err)
	}
	return v
}

func TestDisplayResultModes(t *testing.T) {
	defer ui.SetCurrentTheme(ui.GetCurrentTheme())
	ui.InitTheme(true)

	big500 := fib(t, 500) // 105 digits
	cases := []struct {
		name                      string
		value                     *big.Int
		n                         int64
		verbose, details, showVal bool
		want, absent              []string
	}{
		{
			name: "bits only", value: fib(t, 10), n: 10,
			want:   []string{"Result binary size: 6 bits."},
			absent: []string{"Calculated value", "Detailed result analysis"},
		},
		{
			name: "details", value: fib(t, 40), n: 40, details: true,
			want:   []string{"Detailed result analysis", "Number of digits        : 9", "Scientific notation     : 1.02334e8"},
			absent: []string{"Calculated value"},
		},
		{
			name: "short value", value: fib(t, 20), n: 20, showVal: true,
			want: []string{"--- Calculated value ---", "F(20) = 6,765"},
		},
		{
			name: "long value truncated", value: big500, n: 500, showVal: true,
			want:   []string{"F(500) = ", "(truncated)", "Tip: use -v"},
			absent: []string{format500(big500)},
		},
		{
			name: "long value verbose", value: big500, n: 500, showVal: true, verbose: true,
			want:   []string{"F(500) = " + format500(big500)},
			absent: []string{"(truncated)"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			DisplayResult(tc.value, tc.n, 3*time.Millisecond, tc.verbose, tc.details, tc.showVal, &buf)
			out := buf.String()
			for _, w := range tc.want {
				if !strings.Contains(out, w) {
					t.Errorf("missing %q in:\n%s", w, out)
				}
			}
			for _, a := range tc.absent {
				if strings.Contains(out, a) {
					t.Errorf("unexpected %q in:\n%s", a, out)
				}
			}
		})
	}
}

// format500 groups the digits of v the way the result line does.
func format500(v *big.Int) string {
	s := v.String()
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestDisplayProgressStartsAndStops(t *testing.T) {
	fake := withFakeSpinner(t)

	updates := make(chan progress.ProgressUpdate)
	go func() {
		updates <- progress.ProgressUpdate{CalculatorIndex: 0, Value: 0.25}
		updates <- progress.ProgressUpdate{CalculatorIndex: 1, Value: 0.75}
		close(updates)
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	var out bytes.Buffer
	DisplayProgress(&wg, updates, 2, &out)
	wg.Wait()

	if fake.starts != 1 || fake.stops != 1 {
		t.Errorf("spinner starts=%d stops=%d, want 1/1", fake.starts, fake.stops)
	}
	if !strings.Contains(fake.suffix, "Computing (2 algorithms)") {
		t.Errorf("suffix should name the comparison, got %q", fake.suffix)
	}
	if !strings.Contains(out.String(), "50.00%") {
		t.Errorf("final bar should show the average, got %q", out.String())
	}
}

func TestDisplayProgressWithoutCalculatorsDrains(t *testing.T) {
	fake := withFakeSpinner(t)

	updates := make(chan progress.ProgressUpdate, 1)
	updates <- progress.ProgressUpdate{Value: 1}
	close(updates)

	var wg sync.WaitGroup
	wg.Add(1)
	DisplayProgress(&wg, updates, 0, io.Discard)
	wg.Wait()

	if fake.starts != 0 {
		t.Error("no spinner should be shown when nothing runs")
	}
	if len(updates) != 0 {
		t.Error("pending updates should be drained")
	}
}

func TestRealSpinnerSuffix(t *testing.T) {
	t.Parallel()
	s := &realSpinner{spinner.New(spinner.CharSets[11], time.Hour, spinner.WithWriter(io.Discard))}
	s.UpdateSuffix(" working")
	if s.s.Suffix != " working" {
		t.Errorf("suffix = %q", s.s.Suffix)
	}
}

func TestCLIColorProviderFollowsTheme(t *testing.T) {
	defer ui.SetCurrentTheme(ui.GetCurrentTheme())

	ui.InitTheme(true)
	var c CLIColorProvider
	if c.Red()+c.Yellow()+c.Reset() != "" {
		t.Error("no-color theme should yield empty escape codes")
	}
}
