package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/quasar/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 300
)

type TickMsg time.Time

// Model drives a Simulator from bubbletea ticks and shows the swarm on a
// braille canvas next to a stats panel.
type Model struct {
	sim          *sim.Simulator
	raster       *Rasterizer
	title        string
	fps          int
	running      bool
	theme        Theme
	showHelp     bool
	err          error
	radiusHist   []float64
	hotHist      []float64
	stepDuration time.Duration
}

// NewModel attaches a Rasterizer to s so each simulator step repaints the
// canvas. worldW and worldH give the world extent visible at zoom 1.
func NewModel(s *sim.Simulator, title string, worldW, worldH float32, fps int) Model {
	if fps <= 0 {
		fps = 60
	}
	canvas := NewCanvas(width, height)
	proj := NewProjector(s.Params().Attractor.Center, worldW, worldH, canvas.SubWidth(), canvas.SubHeight())
	raster := NewRasterizer(canvas, proj)
	s.AddRenderer(raster)
	// paint the initial frame before the first tick
	raster.paint(s.View())

	return Model{
		sim:        s,
		raster:     raster,
		title:      title,
		fps:        fps,
		running:    true,
		theme:      ThemeClassic,
		radiusHist: make([]float64, 0, historyCapacity),
		hotHist:    make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Err returns the renderer error that stopped the program, if any.
func (m Model) Err() error { return m.err }

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.sim.Reset()
			m.raster.paint(m.sim.View())
			m.radiusHist = m.radiusHist[:0]
			m.hotHist = m.hotHist[:0]
		case "+", "=":
			m.raster.Projector.ZoomIn()
			m.raster.paint(m.sim.View())
		case "-", "_":
			m.raster.Projector.ZoomOut()
			m.raster.paint(m.sim.View())
		case "t":
			m.theme = NextTheme(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			start := time.Now()
			if err := m.sim.Step(); err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.stepDuration = time.Since(start)
			m.record()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) record() {
	for _, metric := range m.sim.Metrics() {
		switch metric.Name() {
		case "mean_radius":
			m.radiusHist = appendCapped(m.radiusHist, metric.Value())
		case "hot_fraction":
			m.hotHist = appendCapped(m.hotHist, metric.Value())
		}
	}
}

func appendCapped(hist []float64, v float64) []float64 {
	hist = append(hist, v)
	if len(hist) > historyCapacity {
		hist = hist[1:]
	}
	return hist
}

// View renders the TUI interface.
func (m Model) View() string {
	hot := lipgloss.NewStyle().Foreground(m.theme.Hot)
	cold := lipgloss.NewStyle().Foreground(m.theme.Cold)
	canvasView := canvasStyle.Render(m.raster.Canvas.Render(hot, cold))

	var s strings.Builder
	s.WriteString(headerStyle(m.theme).Render(strings.ToUpper(m.title)) + "\n")
	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.radiusHist) > 1 {
		chart := asciigraph.Plot(m.radiusHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Mean radius"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString(labelStyle.Render("Hot") + SparklineChart(m.hotHist, 28) + "\n\n")

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.sim.Time()))
	row("Frame", fmt.Sprintf("%d", m.sim.Frame()))
	row("Particles", fmt.Sprintf("%d (%d on screen)", m.sim.View().Len(), m.raster.Visible))
	row("Backend", m.sim.Backend().Name())
	row("Step", m.stepDuration.Round(time.Microsecond).String())
	row("Zoom", fmt.Sprintf("%.2fx", m.raster.Projector.Zoom))
	row("Theme", m.theme.Name)
	for _, metric := range m.sim.Metrics() {
		row(metric.Name(), fmt.Sprintf("%.4f", metric.Value()))
	}

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause R:Reset Q:Quit\n+/-:Zoom T:Theme ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset to initial swarm   ║
║  + / -    - Zoom in / out            ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n" + mainView
	}
	return mainView
}
