package render

import (
	"math"

	"github.com/taigrr/softrast/pkg/math3d"
)

// ScreenVertex is a vertex after the vertex stage: integer screen position
// with depth, the reciprocal of its clip-space w and the Lambert term at the
// vertex.
type ScreenVertex struct {
	X, Y, Z          int
	PerspectiveScale float64 // 1/w, weights perspective-correct interpolation
	Intensity        float64 // dot(normal, unit light), not clamped
}

// ScreenTriangle is three shaded vertices in submission order.
type ScreenTriangle [3]ScreenVertex

// ShadeVertex runs the vertex stage for one corner of a face. The position
// is taken through transform (viewport·projection·model-view), divided by w
// and floored onto the integer grid. A zero or non-finite w still produces
// a deterministic vertex because the float to int conversion saturates. A
// zero light leaves Intensity NaN.
func ShadeVertex(position, normal, light math3d.Vec3, transform math3d.Mat4) ScreenVertex {
	clip := transform.MulVec4(math3d.V4FromV3(position, 1))
	screen := clip.PerspectiveDivide().Floor()
	return ScreenVertex{
		X:                saturateInt(screen.X),
		Y:                saturateInt(screen.Y),
		Z:                saturateInt(screen.Z),
		PerspectiveScale: 1 / clip.W,
		Intensity:        normal.Dot(light.Unit()),
	}
}

// Project returns the integer screen position of a point without shading
// it. Used for wireframe overlays.
func Project(position math3d.Vec3, transform math3d.Mat4) (x, y int) {
	clip := transform.MulVec4(math3d.V4FromV3(position, 1))
	return saturateInt(math.Floor(clip.X / clip.W)), saturateInt(math.Floor(clip.Y / clip.W))
}
