// Package progress carries calculation progress from calculators to whatever
// displays it: the CLI spinner, the interactive prompt or a logger.
package progress

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ReportThreshold is the minimum progress delta between two reports. It keeps
// a linear memo fill from flooding the channel with one update per index.
const ReportThreshold = 0.01

// ProgressUpdate is a progress notification from one calculator.
type ProgressUpdate struct {
	// CalculatorIndex identifies the calculator in a comparison run.
	CalculatorIndex int
	// Value is the normalized progress, 0.0 to 1.0.
	Value float64
}

// ProgressCallback receives normalized progress values.
type ProgressCallback func(progress float64)

// ProgressObserver is notified of progress for a given calculator.
type ProgressObserver interface {
	Update(calcIndex int, progress float64)
}

// ProgressSubject fans progress out to registered observers.
type ProgressSubject struct {
	mu        sync.RWMutex
	observers []ProgressObserver
}

// NewProgressSubject creates a subject with no observers.
func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{}
}

// Register adds an observer. Nil observers are ignored.
func (s *ProgressSubject) Register(o ProgressObserver) {
	if o == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

// Unregister removes an observer if present.
func (s *ProgressSubject) Unregister(o ProgressObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.observers {
		if existing == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Notify sends progress to every currently registered observer.
func (s *ProgressSubject) Notify(calcIndex int, progress float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.observers {
		o.Update(calcIndex, progress)
	}
}

// ObserverCount returns the number of registered observers.
func (s *ProgressSubject) ObserverCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

// Freeze returns a callback bound to calcIndex that notifies the observers
// registered at the time of the call. Later registrations are not seen, so the
// callback can run lock-free on the hot path.
func (s *ProgressSubject) Freeze(calcIndex int) ProgressCallback {
	s.mu.RLock()
	snapshot := make([]ProgressObserver, len(s.observers))
	copy(snapshot, s.observers)
	s.mu.RUnlock()

	return func(progress float64) {
		for _, o := range snapshot {
			o.Update(calcIndex, progress)
		}
	}
}

// ChannelObserver forwards updates to a channel. Intermediate updates are
// dropped when the channel is full; the final 1.0 is sent blocking so that the
// display always sees completion.
type ChannelObserver struct {
	ch chan<- ProgressUpdate
}

// NewChannelObserver creates an observer sending to ch. A nil channel makes
// every update a no-op.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// Update implements ProgressObserver.
func (o *ChannelObserver) Update(calcIndex int, progress float64) {
	if o.ch == nil {
		return
	}
	if progress > 1.0 {
		progress = 1.0
	}
	update := ProgressUpdate{CalculatorIndex: calcIndex, Value: progress}
	if progress >= 1.0 {
		o.ch <- update
		return
	}
	select {
	case o.ch <- update:
	default:
	}
}

// LoggingObserver logs progress through zerolog, at most once per interval.
type LoggingObserver struct {
	logger   zerolog.Logger
	interval time.Duration

	mu   sync.Mutex
	last map[int]time.Time
}

// NewLoggingObserver creates a logging observer. An interval of zero logs every
// update.
func NewLoggingObserver(logger zerolog.Logger, interval time.Duration) *LoggingObserver {
	return &LoggingObserver{logger: logger, interval: interval, last: make(map[int]time.Time)}
}

// Update implements ProgressObserver.
func (o *LoggingObserver) Update(calcIndex int, progress float64) {
	o.mu.Lock()
	now := time.Now()
	if prev, ok := o.last[calcIndex]; ok && progress < 1.0 && now.Sub(prev) < o.interval {
		o.mu.Unlock()
		return
	}
	o.last[calcIndex] = now
	o.mu.Unlock()

	o.logger.Debug().
		Int("calculator", calcIndex).
		Float64("progress", progress).
		Msg("calculation progress")
}

// ReportStepProgress reports done/total through cb when progress moved by at
// least ReportThreshold since *lastReported, or when the work is complete.
// A nil callback or a non-positive total is a no-op.
func ReportStepProgress(cb ProgressCallback, lastReported *float64, done, total int64) {
	if cb == nil || total <= 0 {
		return
	}
	current := float64(done) / float64(total)
	if current > 1.0 {
		current = 1.0
	}
	if current-*lastReported >= ReportThreshold || (current >= 1.0 && *lastReported < 1.0) {
		cb(current)
		*lastReported = current
	}
}
