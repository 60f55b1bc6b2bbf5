package progress

import (
	"bytes"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type countingObserver struct {
	count atomic.Int64
	last  atomic.Value
}

func (o *countingObserver) Update(_ int, p float64) {
	o.count.Add(1)
	o.last.Store(p)
}

func TestProgressSubject_RegisterNotifyUnregister(t *testing.T) {
	t.Parallel()
	s := NewProgressSubject()
	a, b := &countingObserver{}, &countingObserver{}
	s.Register(a)
	s.Register(b)
	s.Register(nil)

	if s.ObserverCount() != 2 {
		t.Fatalf("ObserverCount = %d, want 2", s.ObserverCount())
	}

	s.Notify(0, 0.5)
	s.Unregister(a)
	s.Notify(0, 0.75)

	if a.count.Load() != 1 {
		t.Errorf("a notified %d times, want 1", a.count.Load())
	}
	if b.count.Load() != 2 {
		t.Errorf("b notified %d times, want 2", b.count.Load())
	}
}

func TestFreeze_SnapshotsObservers(t *testing.T) {
	t.Parallel()
	s := NewProgressSubject()
	before := &countingObserver{}
	s.Register(before)

	cb := s.Freeze(3)
	after := &countingObserver{}
	s.Register(after)
	cb(0.25)

	if before.count.Load() != 1 {
		t.Errorf("observer registered before Freeze got %d updates, want 1", before.count.Load())
	}
	if after.count.Load() != 0 {
		t.Errorf("observer registered after Freeze got %d updates, want 0", after.count.Load())
	}
}

func TestFreeze_ConcurrentRegister(t *testing.T) {
	s := NewProgressSubject()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Register(&countingObserver{})
		}()
		go func(idx int) {
			defer wg.Done()
			s.Freeze(idx)(0.5)
		}(i)
	}
	wg.Wait()
}

func TestChannelObserver(t *testing.T) {
	t.Parallel()

	t.Run("drops intermediate updates when full", func(t *testing.T) {
		t.Parallel()
		ch := make(chan ProgressUpdate, 1)
		o := NewChannelObserver(ch)
		o.Update(0, 0.1)
		o.Update(0, 0.2) // dropped, buffer full
		if got := (<-ch).Value; got != 0.1 {
			t.Errorf("first value = %v, want 0.1", got)
		}
		select {
		case u := <-ch:
			t.Errorf("unexpected update %+v", u)
		default:
		}
	})

	t.Run("clamps and delivers completion", func(t *testing.T) {
		t.Parallel()
		ch := make(chan ProgressUpdate, 1)
		NewChannelObserver(ch).Update(2, 1.5)
		u := <-ch
		if u.CalculatorIndex != 2 || u.Value != 1.0 {
			t.Errorf("update = %+v, want {2 1}", u)
		}
	})

	t.Run("nil channel is a no-op", func(t *testing.T) {
		t.Parallel()
		NewChannelObserver(nil).Update(0, 1.0)
	})
}

func TestLoggingObserver_Throttles(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	o := NewLoggingObserver(logger, time.Hour)

	o.Update(0, 0.1)
	o.Update(0, 0.2) // throttled
	o.Update(0, 1.0) // completion always logged

	lines := strings.Count(buf.String(), "calculation progress")
	if lines != 2 {
		t.Errorf("logged %d progress lines, want 2: %s", lines, buf.String())
	}
}

func TestReportStepProgress(t *testing.T) {
	t.Parallel()
	var reports []float64
	cb := func(p float64) { reports = append(reports, p) }

	var last float64
	const total = 1000
	for done := int64(0); done <= total; done++ {
		ReportStepProgress(cb, &last, done, total)
	}

	if len(reports) == 0 || len(reports) > 101 {
		t.Fatalf("got %d reports, want between 1 and 101", len(reports))
	}
	if reports[len(reports)-1] != 1.0 {
		t.Errorf("last report = %v, want 1.0", reports[len(reports)-1])
	}
	for i := 1; i < len(reports); i++ {
		if reports[i] <= reports[i-1] {
			t.Errorf("reports not strictly increasing at %d: %v", i, reports)
		}
	}

	ReportStepProgress(nil, &last, 1, 1)
	ReportStepProgress(cb, &last, 0, 0)
}
