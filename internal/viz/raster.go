package viz

import (
	"math"

	"github.com/san-kum/quasar/internal/quasar"
)

// Projector maps world coordinates onto canvas dots, keeping Center in the
// middle of the canvas and the whole World rectangle visible at Zoom 1.
type Projector struct {
	Center        quasar.Vec2
	WorldW        float32
	WorldH        float32
	Zoom          float32
	width, height int
}

func NewProjector(center quasar.Vec2, worldW, worldH float32, subW, subH int) *Projector {
	return &Projector{
		Center: center,
		WorldW: worldW,
		WorldH: worldH,
		Zoom:   1,
		width:  subW,
		height: subH,
	}
}

func (p *Projector) scale() float32 {
	sx := float32(p.width) / p.WorldW
	sy := float32(p.height) / p.WorldH
	return float32(math.Min(float64(sx), float64(sy))) * p.Zoom
}

// Project returns the dot coordinates for a world position.
func (p *Projector) Project(pos quasar.Vec2) (int, int) {
	s := p.scale()
	x := (pos.X-p.Center.X)*s + float32(p.width)/2
	y := (pos.Y-p.Center.Y)*s + float32(p.height)/2
	return int(math.Floor(float64(x))), int(math.Floor(float64(y)))
}

func (p *Projector) ZoomIn()  { p.Zoom *= 1.25 }
func (p *Projector) ZoomOut() { p.Zoom /= 1.25 }

// Rasterizer is a sim.Renderer that plots every particle onto a Canvas.
type Rasterizer struct {
	Canvas    *Canvas
	Projector *Projector
	// Visible is the number of particles that landed on the canvas in the
	// last frame.
	Visible int
}

func NewRasterizer(canvas *Canvas, proj *Projector) *Rasterizer {
	return &Rasterizer{Canvas: canvas, Projector: proj}
}

// Draw implements sim.Renderer. Plotting onto the canvas cannot fail, so it
// always returns nil.
func (r *Rasterizer) Draw(view quasar.View) error {
	r.paint(view)
	return nil
}

func (r *Rasterizer) paint(view quasar.View) {
	r.Canvas.Clear()
	r.Visible = 0
	for i := 0; i < view.Len(); i++ {
		x, y := r.Projector.Project(view.Position(i))
		if r.Canvas.Set(x, y, view.Color(i) == quasar.Hot) {
			r.Visible++
		}
	}
}
