package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	apperrors "github.com/agbru/fibmemo/internal/errors"
)

const namespace = "fibmemo"

// Status label values of fibmemo_calculations_total.
const (
	StatusSuccess         = "success"
	StatusInvalidArgument = "invalid_argument"
	StatusTimeout         = "timeout"
	StatusCanceled        = "canceled"
	StatusError           = "error"
)

// Recorder owns a private registry so that exported files only contain
// fibmemo series and the Go runtime collectors.
type Recorder struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	resultBits   *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with its collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Number of Fibonacci calculations by algorithm and outcome.",
		}, []string{"algorithm", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "calculation_duration_seconds",
			Help:      "Wall-clock duration of Fibonacci calculations.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 12),
		}, []string{"algorithm"}),
		resultBits: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "result_bits",
			Help:      "Bit length of the last computed value.",
		}, []string{"algorithm"}),
	}
	r.registry.MustRegister(
		r.calculations,
		r.duration,
		r.resultBits,
		collectors.NewGoCollector(),
	)
	return r
}

// Observe records one calculation. bits is ignored when err is non-nil.
func (r *Recorder) Observe(algorithm string, duration time.Duration, bits int, err error) {
	r.calculations.WithLabelValues(algorithm, StatusOf(err)).Inc()
	r.duration.WithLabelValues(algorithm).Observe(duration.Seconds())
	if err == nil {
		r.resultBits.WithLabelValues(algorithm).Set(float64(bits))
	}
}

// Gatherer exposes the private registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes every registered series to path in the text
// exposition format. The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

// StatusOf maps a calculation error to its status label.
func StatusOf(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, apperrors.ErrInvalidArgument):
		return StatusInvalidArgument
	case errors.Is(err, context.DeadlineExceeded):
		return StatusTimeout
	case errors.Is(err, context.Canceled):
		return StatusCanceled
	default:
		return StatusError
	}
}
