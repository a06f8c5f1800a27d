package metrics

import (
	"github.com/san-kum/quasar/internal/quasar"
)

// Containment reports the fraction of particles that stay finite and
// within radius of the centre, averaged over every observed frame.
type Containment struct {
	name    string
	center  quasar.Vec2
	radius2 float32
	sum     float64
	samples int
}

func NewContainment(center quasar.Vec2, radius float32) *Containment {
	return &Containment{
		name:    "containment",
		center:  center,
		radius2: radius * radius,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(v quasar.View, t float64) {
	if v.Len() == 0 {
		return
	}
	inside := 0
	for i := 0; i < v.Len(); i++ {
		p := v.At(i)
		if p.IsFinite() && p.Position.Sub(c.center).Len2() <= c.radius2 {
			inside++
		}
	}
	c.sum += float64(inside) / float64(v.Len())
	c.samples++
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return c.sum / float64(c.samples)
}

func (c *Containment) Reset() {
	c.sum = 0
	c.samples = 0
}
