package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbStatusBar  = tcell.NewRGBColor(255, 255, 255) // White
	RgbStatusDim  = tcell.NewRGBColor(140, 140, 160)
	RgbPaused     = tcell.NewRGBColor(255, 165, 0)

	RgbParticle = tcell.NewRGBColor(220, 220, 240)
	RgbSphere   = tcell.NewRGBColor(100, 180, 255)
	RgbGhost    = tcell.NewRGBColor(120, 120, 140)
	RgbAnchor   = tcell.NewRGBColor(255, 200, 60)
	RgbWater    = tcell.NewRGBColor(40, 110, 220)
	RgbVolume   = tcell.NewRGBColor(20, 45, 90)
)

// Glyphs
const (
	GlyphParticle = '•'
	GlyphSphere   = 'O'
	GlyphGhost    = '∘'
	GlyphAnchor   = '#'
	GlyphLink     = '·'
	GlyphRod      = '+'
	GlyphCable    = ':'
	GlyphWater    = '~'
)

// ToTcell converts a colorful colour to a 24-bit tcell colour
func ToTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
