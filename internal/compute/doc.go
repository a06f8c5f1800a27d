// Package compute provides the backends that advance a particle buffer by
// one frame.
//
//   - serial: single goroutine, the reference ordering
//   - cpu: contiguous chunks fanned out over worker goroutines
//
// Every particle reads only its own state during a step, so both backends
// produce bit-identical buffers:
//
//	backend := compute.AutoSelectBackend(0)
//	backend.Step(buf, params)
//
// For 100k particles the cpu backend scales close to linearly with cores.
package compute
