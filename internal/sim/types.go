package sim

import (
	"errors"

	"github.com/san-kum/quasar/internal/quasar"
)

var ErrNotReady = errors.New("sim: simulator has no buffer or backend")

// Renderer consumes a read-only view of the swarm once per frame.
type Renderer interface {
	Draw(view quasar.View) error
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(view quasar.View) error

func (f RendererFunc) Draw(view quasar.View) error { return f(view) }

type Metric interface {
	Name() string
	Observe(view quasar.View, t float64)
	Value() float64
	Reset()
}

type Config struct {
	Steps int
	// SampleEvery records metric series every n steps; 0 means every step.
	SampleEvery int
	Seed        int64
}

type Result struct {
	Times      []float64
	Series     map[string][]float64
	Metrics    map[string]float64
	StepsTaken int
	Seed       int64
}
