package metrics

import (
	"codeberg.org/mutker/powertray/internal/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "powertray"

type recorder struct {
	samples *prometheus.CounterVec
	applies prometheus.Counter
	inputs  *prometheus.CounterVec
}

// No-op implementation
type noopRecorder struct{}

// New registers the pipeline counters on reg. Pass a fresh
// prometheus.NewRegistry() to keep them out of the default registry.
func New(reg prometheus.Registerer) (Recorder, error) {
	errFactory := errors.New()

	if reg == nil {
		return nil, errFactory.WithMessage(ErrRegister, "nil registerer")
	}

	factory := promauto.With(reg)
	r := &recorder{}

	if err := register(func() {
		r.samples = factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_total",
			Help:      "Power source samples taken, by result",
		}, []string{"result"})
		r.applies = factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tooltip_applies_total",
			Help:      "Tooltip updates applied to the tray icon",
		})
		r.inputs = factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tray_inputs_total",
			Help:      "Tray input events observed, by kind",
		}, []string{"kind"})
	}); err != nil {
		return nil, errFactory.Wrap(ErrRegister, err)
	}

	// Pre-create result series so the summary reports zeros.
	for _, result := range []string{ResultReading, ResultAbsent, ResultQueryFailed} {
		r.samples.WithLabelValues(result)
	}

	return r, nil
}

// register converts promauto's registration panic into an error
func register(fn func()) (err error) {
	defer func() {
		if p := recover(); p != nil {
			if e, ok := p.(error); ok {
				err = e
				return
			}
			err = errors.New().WithData(ErrRegister, p)
		}
	}()
	fn()

	return nil
}

// Noop returns a Recorder that records nothing
func Noop() Recorder {
	return &noopRecorder{}
}

func (r *recorder) RecordSample(result string) {
	r.samples.WithLabelValues(result).Inc()
}

func (r *recorder) RecordApply() {
	r.applies.Inc()
}

func (r *recorder) RecordInput(kind string) {
	r.inputs.WithLabelValues(kind).Inc()
}

func (r *recorder) Summary() (Summary, error) {
	var s Summary
	var err error

	read := func(c prometheus.Counter) uint64 {
		if err != nil {
			return 0
		}
		var m dto.Metric
		if werr := c.Write(&m); werr != nil {
			err = errors.New().Wrap(ErrCollect, werr)
			return 0
		}
		return uint64(m.GetCounter().GetValue())
	}

	s.Readings = read(r.samples.WithLabelValues(ResultReading))
	s.Absent = read(r.samples.WithLabelValues(ResultAbsent))
	s.QueryFailed = read(r.samples.WithLabelValues(ResultQueryFailed))
	s.Applies = read(r.applies)

	inputs := make(chan prometheus.Metric, 16)
	go func() {
		r.inputs.Collect(inputs)
		close(inputs)
	}()
	for m := range inputs {
		var pb dto.Metric
		if werr := m.Write(&pb); werr != nil {
			if err == nil {
				err = errors.New().Wrap(ErrCollect, werr)
			}
			continue
		}
		s.Inputs += uint64(pb.GetCounter().GetValue())
	}

	return s, err
}

func (*noopRecorder) RecordSample(_ string) {}

func (*noopRecorder) RecordApply() {}

func (*noopRecorder) RecordInput(_ string) {}

func (*noopRecorder) Summary() (Summary, error) {
	return Summary{}, nil
}
