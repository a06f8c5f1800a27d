package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/quasar/internal/quasar"
)

// Theme defines the palette for the live view
type Theme struct {
	Name   string
	Hot    lipgloss.Color
	Cold   lipgloss.Color
	Accent lipgloss.Color
	Muted  lipgloss.Color
}

// Available themes
var (
	// ThemeClassic matches the particle colours: red when fast, white when slow.
	ThemeClassic = Theme{
		Name:   "classic",
		Hot:    RGBColor(quasar.Hot),
		Cold:   RGBColor(quasar.Cold),
		Accent: lipgloss.Color("#00ffff"),
		Muted:  lipgloss.Color("#666688"),
	}

	ThemeAccretion = Theme{
		Name:   "accretion",
		Hot:    lipgloss.Color("#ffaa00"),
		Cold:   lipgloss.Color("#4466ff"),
		Accent: lipgloss.Color("#ff00ff"),
		Muted:  lipgloss.Color("#444466"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Hot:    lipgloss.Color("#88ff88"),
		Cold:   lipgloss.Color("#00aa00"),
		Accent: lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
	}
)

var themes = []Theme{ThemeClassic, ThemeAccretion, ThemeRetroGreen}

// ThemeNames returns the theme names in cycling order.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range themes {
		if th.Name == t.Name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}

// RGBColor converts a particle colour to a lipgloss hex colour.
func RGBColor(c quasar.RGB8) lipgloss.Color {
	return lipgloss.Color(hexColor(int(c.R), int(c.G), int(c.B)))
}
