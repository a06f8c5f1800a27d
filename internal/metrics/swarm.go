package metrics

import (
	"github.com/san-kum/quasar/internal/quasar"
)

// MeanRadius tracks the average distance of the swarm from the centre in
// the most recent frame.
type MeanRadius struct {
	center quasar.Vec2
	value  float64
}

func NewMeanRadius(center quasar.Vec2) *MeanRadius {
	return &MeanRadius{center: center}
}

func (m *MeanRadius) Name() string { return "mean_radius" }

func (m *MeanRadius) Observe(v quasar.View, t float64) {
	if v.Len() == 0 {
		m.value = 0
		return
	}
	sum := 0.0
	for i := 0; i < v.Len(); i++ {
		sum += float64(v.Position(i).Sub(m.center).Len())
	}
	m.value = sum / float64(v.Len())
}

func (m *MeanRadius) Value() float64 { return m.value }
func (m *MeanRadius) Reset()         { m.value = 0 }

// HotFraction is the share of particles coloured Hot in the latest frame.
type HotFraction struct {
	value float64
}

func NewHotFraction() *HotFraction {
	return &HotFraction{}
}

func (h *HotFraction) Name() string { return "hot_fraction" }

func (h *HotFraction) Observe(v quasar.View, t float64) {
	if v.Len() == 0 {
		h.value = 0
		return
	}
	hot := 0
	for i := 0; i < v.Len(); i++ {
		if v.Color(i) == quasar.Hot {
			hot++
		}
	}
	h.value = float64(hot) / float64(v.Len())
}

func (h *HotFraction) Value() float64 { return h.value }
func (h *HotFraction) Reset()         { h.value = 0 }
