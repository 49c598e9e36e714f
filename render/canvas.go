package render

import "github.com/gdamore/tcell/v2"

// Canvas is the subset of tcell.Screen the renderer draws through
type Canvas interface {
	Size() (int, int)
	Clear()
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
}

var _ Canvas = (tcell.Screen)(nil)
