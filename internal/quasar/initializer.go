package quasar

import "math/rand"

const (
	DefaultCenterX = 400
	DefaultCenterY = 300
	DefaultJitter  = 100
	DefaultSpin    = 0.23
)

// InitParams describes the starting swarm.
type InitParams struct {
	Count  int
	Center Vec2
	// Jitter is the half-width of the square placement region.
	Jitter int
	// Spin scales the tangential velocity relative to distance from Center.
	Spin float32
}

func DefaultInitParams(count int) InitParams {
	return InitParams{
		Count:  count,
		Center: Vec2{DefaultCenterX, DefaultCenterY},
		Jitter: DefaultJitter,
		Spin:   DefaultSpin,
	}
}

func (p InitParams) Validate() error {
	if p.Count <= 0 {
		return invalid("count", float64(p.Count), "must be positive")
	}
	if p.Jitter < 0 {
		return invalid("jitter", float64(p.Jitter), "must not be negative")
	}
	if !p.Center.IsFinite() {
		return invalid("center", float64(p.Center.X), "must be finite")
	}
	if !isFinite32(p.Spin) {
		return invalid("spin", float64(p.Spin), "must be finite")
	}
	return nil
}

// Initialize places Count particles on integer offsets drawn uniformly from
// [-Jitter, Jitter) on each axis and gives each the velocity (dy*Spin,
// -dx*Spin), perpendicular to its offset from Center.
func Initialize(p InitParams, rng *rand.Rand) (*Buffer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	buf, err := NewBuffer(p.Count)
	if err != nil {
		return nil, err
	}

	for i := range buf.particles {
		dx := float32(jitter(rng, p.Jitter))
		dy := float32(jitter(rng, p.Jitter))
		buf.particles[i] = Particle{
			Position: Vec2{p.Center.X + dx, p.Center.Y + dy},
			Velocity: Vec2{dy * p.Spin, -dx * p.Spin},
			Color:    Cold,
		}
	}
	return buf, nil
}

func jitter(rng *rand.Rand, half int) int {
	if half == 0 {
		return 0
	}
	return rng.Intn(2*half) - half
}
