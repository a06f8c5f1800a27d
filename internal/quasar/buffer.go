package quasar

// Buffer owns a fixed number of particles for the lifetime of a simulation.
type Buffer struct {
	particles []Particle
}

// NewBuffer allocates count zero-valued particles.
func NewBuffer(count int) (*Buffer, error) {
	if count <= 0 {
		return nil, invalid("count", float64(count), "must be positive")
	}
	return &Buffer{particles: make([]Particle, count)}, nil
}

func (b *Buffer) Len() int { return len(b.particles) }

func (b *Buffer) At(i int) Particle { return b.particles[i] }

func (b *Buffer) Set(i int, p Particle) { b.particles[i] = p }

// Clone returns a deep copy; stepping the copy never touches b.
func (b *Buffer) Clone() *Buffer {
	c := make([]Particle, len(b.particles))
	copy(c, b.particles)
	return &Buffer{particles: c}
}

// CopyFrom overwrites b with the contents of src. Lengths must match.
func (b *Buffer) CopyFrom(src *Buffer) {
	copy(b.particles, src.particles)
}

// IsValid reports whether every particle is finite.
func (b *Buffer) IsValid() bool {
	for i := range b.particles {
		if !b.particles[i].IsFinite() {
			return false
		}
	}
	return true
}

func (b *Buffer) View() View {
	return View{particles: b.particles}
}

// View is a read-only window onto a Buffer handed to renderers and
// metrics. It observes later steps of the same buffer; take a Clone for a
// frozen copy.
type View struct {
	particles []Particle
}

func (v View) Len() int { return len(v.particles) }

func (v View) At(i int) Particle { return v.particles[i] }

func (v View) Position(i int) Vec2 { return v.particles[i].Position }

func (v View) Color(i int) RGB8 { return v.particles[i].Color }

// Each calls fn for every particle in order until fn returns false.
func (v View) Each(fn func(i int, p Particle) bool) {
	for i := range v.particles {
		if !fn(i, v.particles[i]) {
			return
		}
	}
}
