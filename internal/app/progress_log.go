package app

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/fibmemo/internal/orchestration"
	"github.com/agbru/fibmemo/internal/progress"
)

const progressLogInterval = time.Second

// loggedProgressReporter relays every update to observer before handing it
// to the wrapped reporter. It is installed when debug logging is enabled.
type loggedProgressReporter struct {
	inner    orchestration.ProgressReporter
	observer progress.ProgressObserver
}

func (r loggedProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	defer wg.Done()

	relay := make(chan progress.ProgressUpdate, cap(progressChan))
	var innerWg sync.WaitGroup
	innerWg.Add(1)
	go r.inner.DisplayProgress(&innerWg, relay, numCalculators, out)

	for update := range progressChan {
		r.observer.Update(update.CalculatorIndex, update.Value)
		relay <- update
	}
	close(relay)
	innerWg.Wait()
}
