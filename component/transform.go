package component

import "github.com/go-gl/mathgl/mgl64"

// TransformComponent is the position record shared by physics and presentation
// Scale is presentation-only (volume proxies, sphere meshes)
type TransformComponent struct {
	Position mgl64.Vec3
	Scale    mgl64.Vec3
}

// NewTransform creates a transform at position with unit scale
func NewTransform(position mgl64.Vec3) TransformComponent {
	return TransformComponent{
		Position: position,
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}
