package viz

import (
	"bufio"
	"fmt"
	"io"

	"github.com/san-kum/quasar/internal/quasar"
)

// SVGRenderer writes one SVG document per drawn frame, plotting each
// particle as a one-unit square in its own colour over a black
// background. World coordinates are used directly as SVG user units.
type SVGRenderer struct {
	w             io.Writer
	width, height float32
	// Every draws only every n-th frame; 0 or 1 draws all of them.
	Every  int
	frames int
}

func NewSVGRenderer(w io.Writer, width, height float32) *SVGRenderer {
	return &SVGRenderer{w: w, width: width, height: height}
}

func (s *SVGRenderer) Draw(view quasar.View) error {
	s.frames++
	if s.Every > 1 && s.frames%s.Every != 0 {
		return nil
	}
	return WriteSVG(s.w, view, s.width, s.height)
}

// WriteSVG renders view as a standalone SVG document. Particles outside the
// width x height viewport are skipped.
func WriteSVG(w io.Writer, view quasar.View, width, height float32) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#000000"/>
`, width, height, width, height)

	groups := map[quasar.RGB8][]quasar.Vec2{}
	order := []quasar.RGB8{}
	view.Each(func(_ int, p quasar.Particle) bool {
		pos := p.Position
		if !pos.IsFinite() || pos.X < 0 || pos.Y < 0 || pos.X >= width || pos.Y >= height {
			return true
		}
		if _, ok := groups[p.Color]; !ok {
			order = append(order, p.Color)
		}
		groups[p.Color] = append(groups[p.Color], pos)
		return true
	})

	for _, c := range order {
		fmt.Fprintf(bw, "<g fill=\"%s\">\n", hexColor(int(c.R), int(c.G), int(c.B)))
		for _, pos := range groups[c] {
			fmt.Fprintf(bw, "<rect x=\"%.1f\" y=\"%.1f\" width=\"1\" height=\"1\"/>\n", pos.X, pos.Y)
		}
		bw.WriteString("</g>\n")
	}

	bw.WriteString("</svg>\n")
	return bw.Flush()
}
