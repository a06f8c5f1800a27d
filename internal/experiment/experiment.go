package experiment

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/san-kum/quasar/internal/config"
	"github.com/san-kum/quasar/internal/quasar"
	"github.com/san-kum/quasar/internal/sim"
)

type Experiment struct {
	cfg        *config.Config
	simulator  *sim.Simulator
	randSource *rand.Rand
}

// New validates cfg and seeds the random source; call Setup before Run.
func New(cfg *config.Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Experiment{
		cfg:        cfg,
		randSource: rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Setup initialises the swarm, resolves the backend and attaches the
// default metrics.
func (e *Experiment) Setup(registry *Registry) error {
	buf, err := quasar.Initialize(e.cfg.InitParams(), e.randSource)
	if err != nil {
		return err
	}

	backend, err := registry.GetBackend(e.cfg.Backend, e.cfg.Workers)
	if err != nil {
		return err
	}

	params := e.cfg.StepParams()
	e.simulator = sim.New(buf, backend, params)
	for _, m := range registry.DefaultMetrics(params, e.boundRadius()) {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	return e.simulator.Run(ctx, sim.Config{
		Steps:       e.cfg.Steps,
		SampleEvery: e.cfg.SampleEvery,
		Seed:        e.cfg.Seed,
	})
}

// GetSimulator returns the underlying simulator for adding renderers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

func (e *Experiment) Config() *config.Config {
	return e.cfg
}

// boundRadius is the containment radius: the larger half-extent of the view.
func (e *Experiment) boundRadius() float32 {
	r := e.cfg.View.Width / 2
	if h := e.cfg.View.Height / 2; h > r {
		r = h
	}
	return r
}

// Builder returns a sim.Builder that creates one experiment per seed from a
// copy of cfg, for use with sim.Ensemble.
func Builder(cfg *config.Config, registry *Registry) sim.Builder {
	return func(seed int64) (*sim.Simulator, error) {
		c := *cfg
		c.Seed = seed
		exp, err := New(&c)
		if err != nil {
			return nil, err
		}
		if err := exp.Setup(registry); err != nil {
			return nil, err
		}
		return exp.GetSimulator(), nil
	}
}
