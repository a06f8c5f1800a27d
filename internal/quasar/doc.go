// Package quasar provides the particle swarm core: a fixed-length buffer of
// point particles orbiting a single softened attractor.
//
// The package defines the simulation primitives:
//
//   - [Particle]: position, velocity and derived display colour
//   - [Buffer]: owned, fixed-length particle storage with a read-only [View]
//   - [Attractor]: the immovable point mass every particle falls toward
//   - [Initialize]: square-jitter placement with tangential velocity
//   - [Step]: one semi-implicit Euler frame for every particle
//
// # Example
//
//	rng := rand.New(rand.NewSource(42))
//	buf, _ := quasar.Initialize(quasar.DefaultInitParams(1000), rng)
//	params := quasar.DefaultStepParams()
//	for i := 0; i < 600; i++ {
//	    quasar.Step(buf, params)
//	}
//
// # Thread Safety
//
// Buffer is NOT safe for concurrent mutation of the same index. [StepRange]
// touches only its own half-open range, so disjoint ranges may be stepped
// from separate goroutines.
package quasar
