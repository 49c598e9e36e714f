package render

import (
	"fmt"
	"math"
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tether/component"
	"github.com/lixenwraith/tether/core"
	"github.com/lixenwraith/tether/engine"
)

// HUD carries status line values owned by the presenter
type HUD struct {
	Scene   string
	Paused  bool
	Density float64
	Muted   bool
}

// TerminalRenderer draws the world onto a Canvas
// Layer order: water, links, particles, status line
type TerminalRenderer struct {
	canvas Canvas
	proj   Projection
	width  int
	height int
}

// NewTerminalRenderer creates a renderer sized to the canvas
// The bottom row is reserved for the status line
func NewTerminalRenderer(canvas Canvas, scale float64, center [2]float64) *TerminalRenderer {
	r := &TerminalRenderer{
		canvas: canvas,
		proj: Projection{
			Scale:  scale,
			Center: center,
		},
	}
	r.UpdateDimensions()
	return r
}

// UpdateDimensions re-reads the canvas size after a resize
func (r *TerminalRenderer) UpdateDimensions() {
	r.width, r.height = r.canvas.Size()
	r.proj.Width = r.width
	r.proj.Height = max(r.height-1, 0)
}

// Projection exposes the view for panning and zooming
func (r *TerminalRenderer) Projection() *Projection {
	return &r.proj
}

// RenderFrame draws one frame; caller holds the world lock
func (r *TerminalRenderer) RenderFrame(w *engine.World, hud HUD) {
	r.canvas.Clear()
	defaultStyle := tcell.StyleDefault.Background(RgbBackground)

	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			r.canvas.SetContent(x, y, ' ', nil, defaultStyle)
		}
	}

	r.drawWater(CollectWater(w), defaultStyle)
	r.drawLines(CollectLines(w), defaultStyle)
	r.drawParticles(w, defaultStyle)
	r.drawStatusBar(w, hud, defaultStyle)

	r.canvas.Show()
}

func (r *TerminalRenderer) drawWater(water []WaterLine, defaultStyle tcell.Style) {
	surface := defaultStyle.Foreground(RgbWater)
	volume := defaultStyle.Background(RgbVolume)

	for _, wl := range water {
		top := r.proj.Row(wl.Height)
		bottom := r.proj.Row(wl.Height - wl.MaxDepth)
		for y := max(top+1, 0); y <= bottom && y < r.proj.Height; y++ {
			for x := 0; x < r.width; x++ {
				r.canvas.SetContent(x, y, ' ', nil, volume)
			}
		}
		if top < 0 || top >= r.proj.Height {
			continue
		}
		for x := 0; x < r.width; x++ {
			r.canvas.SetContent(x, top, GlyphWater, nil, surface)
		}
	}
}

func (r *TerminalRenderer) drawLines(lines []Line, defaultStyle tcell.Style) {
	for _, l := range lines {
		glyph := GlyphLink
		switch l.Kind {
		case LinkRod:
			glyph = GlyphRod
		case LinkCable:
			glyph = GlyphCable
		}
		style := defaultStyle.Foreground(ToTcell(l.Color))
		r.drawSegment(l, glyph, style)
	}
}

// drawSegment rasterizes a line with a DDA walk in cell space
func (r *TerminalRenderer) drawSegment(l Line, glyph rune, style tcell.Style) {
	x0, y0, _ := r.proj.Project(l.From)
	x1, y1, _ := r.proj.Project(l.To)

	steps := max(abs(x1-x0), abs(y1-y0))
	if steps == 0 {
		r.set(x0, y0, glyph, style)
		return
	}
	// Cap rasterization for far off-screen endpoints
	steps = min(steps, 4*(r.width+r.height))

	dx := float64(x1-x0) / float64(steps)
	dy := float64(y1-y0) / float64(steps)
	for i := 0; i <= steps; i++ {
		x := int(math.Round(float64(x0) + dx*float64(i)))
		y := int(math.Round(float64(y0) + dy*float64(i)))
		r.set(x, y, glyph, style)
	}
}

func (r *TerminalRenderer) drawParticles(w *engine.World, defaultStyle tcell.Style) {
	c := &w.Component
	entities := c.Transform.All()
	slices.Sort(entities)

	for _, e := range entities {
		glyph, color, ok := r.classify(c, e)
		if !ok {
			continue
		}
		t, _ := c.Transform.Get(e)
		if x, y, visible := r.proj.Project(t.Position); visible {
			r.canvas.SetContent(x, y, glyph, nil, defaultStyle.Foreground(color))
		}
	}
}

// classify picks the glyph for a node; generator proxies are not drawn
func (r *TerminalRenderer) classify(c *engine.ComponentStore, e core.Entity) (rune, tcell.Color, bool) {
	if c.FixedSpring.Has(e) {
		return GlyphAnchor, RgbAnchor, true
	}
	if c.Buoyancy.Has(e) {
		return 0, 0, false
	}
	p, ok := c.Particle.Get(e)
	switch {
	case !ok || p.Immovable():
		return GlyphAnchor, RgbAnchor, true
	case c.Sphere.Has(e):
		return GlyphSphere, RgbSphere, true
	case p.Category == component.CategoryNonColliding:
		return GlyphGhost, RgbGhost, true
	default:
		return GlyphParticle, RgbParticle, true
	}
}

func (r *TerminalRenderer) drawStatusBar(w *engine.World, hud HUD, defaultStyle tcell.Style) {
	statusY := r.height - 1
	if statusY < 0 {
		return
	}
	for x := 0; x < r.width; x++ {
		r.canvas.SetContent(x, statusY, ' ', nil, defaultStyle)
	}

	x := 0
	if hud.Paused {
		x = r.drawText(x, statusY, " PAUSED ", defaultStyle.Foreground(tcell.ColorBlack).Background(RgbPaused))
		x++
	}

	last := w.Resource.Contacts.Last
	text := fmt.Sprintf("%s  tick %d  contacts %d  iter %d/%d",
		hud.Scene, w.Resource.Time.Tick, last.Contacts, last.VelocityIterations, last.PositionIterations)
	if !last.Converged && last.Contacts > 0 {
		text += " !"
	}
	x = r.drawText(x, statusY, text, defaultStyle.Foreground(RgbStatusBar))

	if len(w.Component.Buoyancy.All()) > 0 {
		x = r.drawText(x, statusY, fmt.Sprintf("  density %.0f", hud.Density), defaultStyle.Foreground(RgbWater))
	}
	if hud.Muted {
		x = r.drawText(x, statusY, "  muted", defaultStyle.Foreground(RgbStatusDim))
	}
	r.drawText(x, statusY, "  [spc]pause [n]ext [r]eset [b]uoy [↑↓]density [q]uit", defaultStyle.Foreground(RgbStatusDim))
}

// drawText writes s from x and returns the column after it
func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		if x >= r.width {
			break
		}
		r.canvas.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

func (r *TerminalRenderer) set(x, y int, ch rune, style tcell.Style) {
	if x >= 0 && x < r.proj.Width && y >= 0 && y < r.proj.Height {
		r.canvas.SetContent(x, y, ch, nil, style)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
