package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// cellAspect is the height/width ratio of a terminal cell
const cellAspect = 2.0

// Projection maps world XY onto a cell grid orthographically; Z is ignored
// World +Y is screen up
type Projection struct {
	Width  int
	Height int
	Scale  float64 // Columns per world unit
	Center mgl64.Vec2
}

// Project returns the cell for a world position and whether it lies on the grid
func (p Projection) Project(pos mgl64.Vec3) (int, int, bool) {
	fx := float64(p.Width)/2 + (pos[0]-p.Center[0])*p.Scale
	fy := float64(p.Height)/2 - (pos[1]-p.Center[1])*p.Scale/cellAspect
	x := int(math.Floor(fx))
	y := int(math.Floor(fy))
	return x, y, x >= 0 && x < p.Width && y >= 0 && y < p.Height
}

// Row returns the grid row for world height y, unclamped
func (p Projection) Row(y float64) int {
	return int(math.Floor(float64(p.Height)/2 - (y-p.Center[1])*p.Scale/cellAspect))
}

// Column returns the grid column for world x, unclamped
func (p Projection) Column(x float64) int {
	return int(math.Floor(float64(p.Width)/2 + (x-p.Center[0])*p.Scale))
}

// Pan shifts the view centre by a world-space offset
func (p *Projection) Pan(dx, dy float64) {
	p.Center[0] += dx
	p.Center[1] += dy
}

// Zoom multiplies the scale, keeping it positive
func (p *Projection) Zoom(factor float64) {
	if factor > 0 {
		p.Scale *= factor
	}
}
