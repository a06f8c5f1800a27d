package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/quasar/internal/compute"
	"github.com/san-kum/quasar/internal/quasar"
)

type Simulator struct {
	buf       *quasar.Buffer
	initial   *quasar.Buffer
	backend   compute.Backend
	params    quasar.StepParams
	metrics   []Metric
	renderers []Renderer
	t         float64
	frame     int
	err       error
}

// New takes ownership of buf and keeps a private copy for Reset. params are
// validated here; a Simulator built from invalid params never steps, and
// Step, Run and RunWithCallback return the validation error.
func New(buf *quasar.Buffer, backend compute.Backend, params quasar.StepParams) *Simulator {
	s := &Simulator{
		buf:       buf,
		backend:   backend,
		params:    params,
		metrics:   make([]Metric, 0),
		renderers: make([]Renderer, 0),
		err:       params.Validate(),
	}
	if buf != nil {
		s.initial = buf.Clone()
	}
	return s
}

func (s *Simulator) AddMetric(m Metric)        { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddRenderer(r Renderer)    { s.renderers = append(s.renderers, r) }
func (s *Simulator) Metrics() []Metric         { return s.metrics }
func (s *Simulator) Params() quasar.StepParams { return s.params }
func (s *Simulator) Backend() compute.Backend  { return s.backend }
func (s *Simulator) Time() float64             { return s.t }
func (s *Simulator) Frame() int                { return s.frame }
func (s *Simulator) View() quasar.View         { return s.buf.View() }

// Snapshot returns a deep copy of the current buffer.
func (s *Simulator) Snapshot() *quasar.Buffer { return s.buf.Clone() }

// Err reports the step params validation error recorded by New, if any.
func (s *Simulator) Err() error { return s.err }

// Step advances one frame, feeds the metrics and hands the result to every
// renderer. The physics never fails; the only errors come from invalid
// params and renderers.
func (s *Simulator) Step() error {
	if s.buf == nil || s.backend == nil {
		return ErrNotReady
	}
	if s.err != nil {
		return s.err
	}

	s.backend.Step(s.buf, s.params)
	s.t += float64(s.params.Dt)
	s.frame++

	view := s.buf.View()
	for _, m := range s.metrics {
		m.Observe(view, s.t)
	}
	for _, r := range s.renderers {
		if err := r.Draw(view); err != nil {
			return fmt.Errorf("render frame %d: %w", s.frame, err)
		}
	}
	return nil
}

// Reset restores the buffer captured by New and clears every metric.
func (s *Simulator) Reset() {
	if s.buf == nil {
		return
	}
	s.buf.CopyFrom(s.initial)
	s.t = 0
	s.frame = 0
	for _, m := range s.metrics {
		m.Reset()
	}
}

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	every := cfg.SampleEvery
	if every <= 0 {
		every = 1
	}
	samples := cfg.Steps/every + 1
	result := &Result{
		Times:   make([]float64, 0, samples),
		Series:  make(map[string][]float64, len(s.metrics)),
		Metrics: make(map[string]float64, len(s.metrics)),
		Seed:    cfg.Seed,
	}
	for _, m := range s.metrics {
		result.Series[m.Name()] = make([]float64, 0, samples)
	}

	for i := 0; i < cfg.Steps; i++ {
		// frames are atomic; cancellation is only honoured between them
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		if err := s.Step(); err != nil {
			s.collect(result)
			return result, err
		}
		result.StepsTaken++

		if result.StepsTaken%every == 0 {
			result.Times = append(result.Times, s.t)
			for _, m := range s.metrics {
				result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
			}
		}
	}

	s.collect(result)
	return result, nil
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if s.buf == nil || s.backend == nil {
		return ErrNotReady
	}
	if s.err != nil {
		return s.err
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d: %w", cfg.Steps, quasar.ErrInvalidConfig)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("sample interval must not be negative, got %d: %w", cfg.SampleEvery, quasar.ErrInvalidConfig)
	}
	return nil
}

// RunWithCallback steps until callback returns false, the step budget is
// spent or ctx is cancelled. callback sees the view before each step.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(quasar.View, float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(s.buf.View(), s.t) {
			return nil
		}

		if err := s.Step(); err != nil {
			return err
		}
	}

	return nil
}
