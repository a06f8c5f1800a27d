package sim

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/quasar/internal/compute"
	"github.com/san-kum/quasar/internal/quasar"
)

func newTestSimulator(t *testing.T, n int) *Simulator {
	t.Helper()
	buf, err := quasar.Initialize(quasar.DefaultInitParams(n), rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	return New(buf, compute.NewSerialBackend(), quasar.DefaultStepParams())
}

type testMetric struct {
	count int
	last  float64
}

func (m *testMetric) Name() string { return "test" }
func (m *testMetric) Observe(v quasar.View, t float64) {
	m.count++
	m.last = t
}
func (m *testMetric) Value() float64 { return float64(m.count) }
func (m *testMetric) Reset()         { m.count = 0 }

func TestSimulatorRun(t *testing.T) {
	s := newTestSimulator(t, 16)
	metric := &testMetric{}
	s.AddMetric(metric)

	result, err := s.Run(context.Background(), Config{Steps: 60, SampleEvery: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 60 {
		t.Errorf("expected 60 steps, got %d", result.StepsTaken)
	}
	if len(result.Times) != 6 {
		t.Errorf("expected 6 samples, got %d", len(result.Times))
	}
	if len(result.Series["test"]) != 6 {
		t.Errorf("expected 6 series values, got %d", len(result.Series["test"]))
	}
	if result.Metrics["test"] != 60 {
		t.Errorf("expected 60 observations, got %f", result.Metrics["test"])
	}
	if s.Frame() != 60 {
		t.Errorf("expected frame 60, got %d", s.Frame())
	}
	if s.Time() <= 0.99 || s.Time() >= 1.01 {
		t.Errorf("expected ~1s simulated, got %f", s.Time())
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := newTestSimulator(t, 4)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero steps", Config{Steps: 0}},
		{"negative steps", Config{Steps: -1}},
		{"negative sample interval", Config{Steps: 10, SampleEvery: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(context.Background(), tt.cfg)
			if !errors.Is(err, quasar.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	empty := New(nil, nil, quasar.DefaultStepParams())
	if err := empty.Step(); !errors.Is(err, ErrNotReady) {
		t.Errorf("expected ErrNotReady, got %v", err)
	}
}

func TestSimulatorInvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *quasar.StepParams)
	}{
		{"zero softening", func(p *quasar.StepParams) { p.SofteningR2 = 0 }},
		{"zero dt", func(p *quasar.StepParams) { p.Dt = 0 }},
		{"nan dt", func(p *quasar.StepParams) { p.Dt = float32(math.NaN()) }},
		{"negative mass", func(p *quasar.StepParams) { p.Attractor.Mass = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := quasar.DefaultStepParams()
			tt.mutate(&params)

			buf, _ := quasar.NewBuffer(1)
			start := quasar.Particle{Position: params.Attractor.Center, Color: quasar.Cold}
			buf.Set(0, start)

			s := New(buf, compute.NewSerialBackend(), params)
			if !errors.Is(s.Err(), quasar.ErrInvalidConfig) {
				t.Fatalf("Err() = %v, want ErrInvalidConfig", s.Err())
			}

			if err := s.Step(); !errors.Is(err, quasar.ErrInvalidConfig) {
				t.Errorf("Step() = %v, want ErrInvalidConfig", err)
			}
			if s.Frame() != 0 || buf.At(0) != start {
				t.Errorf("invalid simulator stepped: frame %d, particle %+v", s.Frame(), buf.At(0))
			}
			if !buf.IsValid() {
				t.Error("buffer went non-finite")
			}

			result, err := s.Run(context.Background(), Config{Steps: 5})
			if result != nil || !errors.Is(err, quasar.ErrInvalidConfig) {
				t.Errorf("Run() = %v, %v; want nil, ErrInvalidConfig", result, err)
			}

			err = s.RunWithCallback(context.Background(), Config{Steps: 5}, func(quasar.View, float64) bool { return true })
			if !errors.Is(err, quasar.ErrInvalidConfig) {
				t.Errorf("RunWithCallback() = %v, want ErrInvalidConfig", err)
			}
		})
	}

	if err := newTestSimulator(t, 4).Err(); err != nil {
		t.Errorf("default params rejected: %v", err)
	}
}

func TestSimulatorCancel(t *testing.T) {
	s := newTestSimulator(t, 4)
	ctx, cancel := context.WithCancel(context.Background())

	s.AddRenderer(RendererFunc(func(v quasar.View) error {
		if s.Frame() == 5 {
			cancel()
		}
		return nil
	}))

	result, err := s.Run(ctx, Config{Steps: 100})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.StepsTaken != 5 {
		t.Errorf("expected to stop on the frame boundary after 5 steps, got %d", result.StepsTaken)
	}
}

func TestSimulatorRendererError(t *testing.T) {
	s := newTestSimulator(t, 4)
	closed := errors.New("window closed")

	draws := 0
	s.AddRenderer(RendererFunc(func(v quasar.View) error {
		draws++
		if v.Len() != 4 {
			t.Errorf("renderer saw %d particles", v.Len())
		}
		if draws == 3 {
			return closed
		}
		return nil
	}))

	result, err := s.Run(context.Background(), Config{Steps: 10})
	if !errors.Is(err, closed) {
		t.Fatalf("expected renderer error, got %v", err)
	}
	if result.StepsTaken != 2 {
		t.Errorf("expected 2 completed steps, got %d", result.StepsTaken)
	}
}

func TestSimulatorReset(t *testing.T) {
	s := newTestSimulator(t, 8)
	start := s.Snapshot()
	metric := &testMetric{}
	s.AddMetric(metric)

	for i := 0; i < 20; i++ {
		if err := s.Step(); err != nil {
			t.Fatal(err)
		}
	}
	s.Reset()

	if s.Frame() != 0 || s.Time() != 0 || metric.count != 0 {
		t.Errorf("reset left frame=%d t=%f count=%d", s.Frame(), s.Time(), metric.count)
	}
	for i := 0; i < start.Len(); i++ {
		if s.View().At(i) != start.At(i) {
			t.Fatalf("particle %d not restored", i)
		}
	}
}

func TestSimulatorRunWithCallback(t *testing.T) {
	s := newTestSimulator(t, 4)

	calls := 0
	err := s.RunWithCallback(context.Background(), Config{Steps: 100}, func(v quasar.View, tm float64) bool {
		calls++
		return calls < 10
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if s.Frame() != 9 {
		t.Errorf("expected 9 frames before the callback stopped, got %d", s.Frame())
	}
}

func TestEnsemble(t *testing.T) {
	build := func(seed int64) (*Simulator, error) {
		buf, err := quasar.Initialize(quasar.DefaultInitParams(32), rand.New(rand.NewSource(seed)))
		if err != nil {
			return nil, err
		}
		s := New(buf, compute.NewSerialBackend(), quasar.DefaultStepParams())
		s.AddMetric(&testMetric{})
		return s, nil
	}

	ens := NewEnsemble(build, 4, 100)
	ens.Limit = 2
	results, err := ens.Run(context.Background(), Config{Steps: 10})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Seed != 100+int64(i) {
			t.Errorf("result %d seed = %d", i, r.Seed)
		}
		if r.StepsTaken != 10 {
			t.Errorf("result %d took %d steps", i, r.StepsTaken)
		}
	}

	failing := func(seed int64) (*Simulator, error) {
		return nil, quasar.ErrInvalidConfig
	}
	if _, err := NewEnsemble(failing, 2, 0).Run(context.Background(), Config{Steps: 1}); !errors.Is(err, quasar.ErrInvalidConfig) {
		t.Errorf("expected build error, got %v", err)
	}
}
