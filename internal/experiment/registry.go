package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/quasar/internal/compute"
	"github.com/san-kum/quasar/internal/metrics"
	"github.com/san-kum/quasar/internal/quasar"
	"github.com/san-kum/quasar/internal/sim"
)

type Registry struct {
	backends map[string]func(workers int) compute.Backend
	metrics  map[string]func(p quasar.StepParams, bound float32) sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		backends: make(map[string]func(int) compute.Backend),
		metrics:  make(map[string]func(quasar.StepParams, float32) sim.Metric),
	}

	r.backends["auto"] = func(w int) compute.Backend { return compute.AutoSelectBackend(w) }
	for _, name := range compute.Names() {
		r.backends[name] = func(w int) compute.Backend {
			b, _ := compute.New(name, w)
			return b
		}
	}

	r.metrics["mean_radius"] = func(p quasar.StepParams, _ float32) sim.Metric {
		return metrics.NewMeanRadius(p.Attractor.Center)
	}
	r.metrics["hot_fraction"] = func(quasar.StepParams, float32) sim.Metric {
		return metrics.NewHotFraction()
	}
	r.metrics["energy_drift"] = func(p quasar.StepParams, _ float32) sim.Metric {
		return metrics.NewEnergyDrift(p.Attractor, p.SofteningR2)
	}
	r.metrics["containment"] = func(p quasar.StepParams, bound float32) sim.Metric {
		return metrics.NewContainment(p.Attractor.Center, bound)
	}

	return r
}

func (r *Registry) GetBackend(name string, workers int) (compute.Backend, error) {
	if name == "" {
		name = "auto"
	}
	fn, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend: %s (available: %v)", name, r.ListBackends())
	}
	return fn(workers), nil
}

func (r *Registry) GetMetric(name string, p quasar.StepParams, bound float32) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(p, bound), nil
}

func (r *Registry) ListBackends() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns one instance of every registered metric, in a
// stable order.
func (r *Registry) DefaultMetrics(p quasar.StepParams, bound float32) []sim.Metric {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		out = append(out, r.metrics[name](p, bound))
	}
	return out
}
