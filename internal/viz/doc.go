// Package viz provides the renderers that consume the swarm each frame.
//
//   - [Rasterizer]: plots particles onto a Braille [Canvas], hot cells coloured
//   - [Model]: Bubble Tea program driving a simulator with live stats
//   - [SVGRenderer]: writes a frame as an SVG document
//
// All renderers satisfy sim.Renderer and only read the view they are given.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial swarm
//	+/-   - Zoom
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
