package compute

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/san-kum/quasar/internal/quasar"
)

type Backend interface {
	Name() string
	Available() bool
	Step(buf *quasar.Buffer, p quasar.StepParams)
	Cleanup()
}

var constructors = map[string]func(workers int) Backend{
	"serial": func(int) Backend { return NewSerialBackend() },
	"cpu":    func(w int) Backend { return NewCPUBackend(w) },
}

// New returns the named backend. workers <= 0 means runtime.NumCPU().
func New(name string, workers int) (Backend, error) {
	if name == "" || name == "auto" {
		return AutoSelectBackend(workers), nil
	}
	fn, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend: %s (available: %v)", name, Names())
	}
	return fn(workers), nil
}

func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AutoSelectBackend picks cpu when more than one core is usable, else serial.
func AutoSelectBackend(workers int) Backend {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > 1 {
		return NewCPUBackend(workers)
	}
	return NewSerialBackend()
}
