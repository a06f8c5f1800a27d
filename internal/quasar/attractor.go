package quasar

// Attractor is the fixed point mass at the centre of the swarm.
type Attractor struct {
	Center Vec2
	Mass   float32
	G      float32
}

// Acceleration returns the softened pull on a unit-mass particle at pos,
// along with the floored squared distance that produced it.
func (a Attractor) Acceleration(pos Vec2, softeningR2 float32) (Vec2, float32) {
	d := a.Center.Sub(pos)
	r2 := d.Len2()
	if r2 < softeningR2 {
		r2 = softeningR2
	}
	force := a.G * a.Mass / r2
	r := sqrt32(r2)
	return Vec2{d.X / r * force, d.Y / r * force}, r2
}

// Potential returns the softened specific potential energy at pos.
func (a Attractor) Potential(pos Vec2, softeningR2 float32) float32 {
	r2 := a.Center.Sub(pos).Len2()
	if r2 < softeningR2 {
		r2 = softeningR2
	}
	return -a.G * a.Mass / sqrt32(r2)
}
