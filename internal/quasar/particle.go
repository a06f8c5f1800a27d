package quasar

// RGB8 is an 8-bit-per-channel display colour.
type RGB8 struct {
	R, G, B uint8
}

var (
	// Hot marks particles moving faster than the hot-speed threshold.
	Hot = RGB8{255, 0, 0}
	// Cold marks every other particle.
	Cold = RGB8{255, 255, 255}
)

// Particle is one point in the swarm. Color is derived from the velocity
// on every step and carries no physical meaning.
type Particle struct {
	Position Vec2
	Velocity Vec2
	Color    RGB8
}

// Speed returns |Velocity|.
func (p Particle) Speed() float32 {
	return p.Velocity.Len()
}

// IsFinite reports whether position and velocity are free of NaN and Inf.
func (p Particle) IsFinite() bool {
	return p.Position.IsFinite() && p.Velocity.IsFinite()
}

// Classify maps a speed to Hot when it is strictly greater than the
// threshold and to Cold otherwise.
func Classify(speed, hotSpeed float32) RGB8 {
	if speed > hotSpeed {
		return Hot
	}
	return Cold
}
