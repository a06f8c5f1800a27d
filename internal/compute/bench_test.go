package compute

import (
	"fmt"
	"testing"

	"github.com/san-kum/quasar/internal/quasar"
)

func BenchmarkStep(b *testing.B) {
	params := quasar.DefaultStepParams()

	for _, count := range []int{1000, 10000, 100000} {
		for _, backend := range []Backend{NewSerialBackend(), NewCPUBackend(4), NewCPUBackend(8)} {
			name := backend.Name()
			if cpu, ok := backend.(*CPUBackend); ok {
				name = fmt.Sprintf("%s-%d", name, cpu.Workers())
			}
			b.Run(fmt.Sprintf("Particles-%d-%s", count, name), func(b *testing.B) {
				buf := newSwarm(b, count, 1)
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					backend.Step(buf, params)
				}
			})
		}
	}
}
