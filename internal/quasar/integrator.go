package quasar

const (
	DefaultDt          = 1.0 / 60.0
	DefaultG           = 1000
	DefaultMass        = 250
	DefaultSofteningR2 = 200
	DefaultHotSpeed    = 50
)

// StepParams holds the constants read by every particle during a step.
type StepParams struct {
	Dt        float32
	Attractor Attractor
	// SofteningR2 is the floor applied to squared distance before the
	// inverse-square law, bounding the force near the centre.
	SofteningR2 float32
	// HotSpeed is the speed above which a particle is coloured Hot.
	HotSpeed float32
}

func DefaultStepParams() StepParams {
	return StepParams{
		Dt: DefaultDt,
		Attractor: Attractor{
			Center: Vec2{DefaultCenterX, DefaultCenterY},
			Mass:   DefaultMass,
			G:      DefaultG,
		},
		SofteningR2: DefaultSofteningR2,
		HotSpeed:    DefaultHotSpeed,
	}
}

func (p StepParams) Validate() error {
	switch {
	case !isFinite32(p.Dt) || p.Dt <= 0:
		return invalid("dt", float64(p.Dt), "must be positive and finite")
	case !isFinite32(p.Attractor.G) || p.Attractor.G < 0:
		return invalid("g", float64(p.Attractor.G), "must not be negative")
	case !isFinite32(p.Attractor.Mass) || p.Attractor.Mass < 0:
		return invalid("mass", float64(p.Attractor.Mass), "must not be negative")
	case !isFinite32(p.SofteningR2) || p.SofteningR2 <= 0:
		return invalid("softening_r2", float64(p.SofteningR2), "must be positive")
	case !isFinite32(p.HotSpeed) || p.HotSpeed < 0:
		return invalid("hot_speed", float64(p.HotSpeed), "must not be negative")
	case !p.Attractor.Center.IsFinite():
		return invalid("center", float64(p.Attractor.Center.X), "must be finite")
	}
	return nil
}

// Advance moves one particle forward by p.Dt. Velocity is updated from the
// current acceleration first and the new velocity then moves the position.
func Advance(pt *Particle, p StepParams) {
	acc, _ := p.Attractor.Acceleration(pt.Position, p.SofteningR2)

	pt.Velocity.X += acc.X * p.Dt
	pt.Velocity.Y += acc.Y * p.Dt

	pt.Position.X += pt.Velocity.X * p.Dt
	pt.Position.Y += pt.Velocity.Y * p.Dt

	pt.Color = Classify(pt.Velocity.Len(), p.HotSpeed)
}

// Step advances every particle in buf by one frame.
func Step(buf *Buffer, p StepParams) {
	StepRange(buf, 0, len(buf.particles), p)
}

// StepRange advances particles in [lo, hi). Each particle reads only its own
// state, so disjoint ranges are independent.
func StepRange(buf *Buffer, lo, hi int, p StepParams) {
	ps := buf.particles[lo:hi]
	for i := range ps {
		Advance(&ps[i], p)
	}
}
