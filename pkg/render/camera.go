package render

import (
	"math"

	"github.com/taigrr/softrast/pkg/math3d"
)

// Camera describes a look-at camera: where it sits, the point it looks at
// and which way is up. The distance between Position and Center drives the
// strength of the perspective.
type Camera struct {
	Position math3d.Vec3
	Center   math3d.Vec3
	Up       math3d.Vec3
}

// NewCamera creates a camera at position looking at the origin with +Y up.
func NewCamera(position math3d.Vec3) Camera {
	return Camera{
		Position: position,
		Up:       math3d.Up(),
	}
}

// ViewMatrix returns the model-view matrix for the camera.
func (c Camera) ViewMatrix() math3d.Mat4 {
	return math3d.ModelView(c.Position, c.Center, c.Up)
}

// ProjectionMatrix returns the perspective matrix for the camera.
func (c Camera) ProjectionMatrix() math3d.Mat4 {
	return math3d.Projection(c.Position, c.Center)
}

// Distance returns the distance from the camera to its center.
func (c Camera) Distance() float64 {
	return c.Position.Sub(c.Center).Len()
}

// OrbitY returns the camera rotated by angle radians around the vertical
// axis through its center. Height and distance are preserved.
func (c Camera) OrbitY(angle float64) Camera {
	offset := c.Position.Sub(c.Center)
	c.Position = c.Center.Add(math3d.RotateY(angle).MulVec3Dir(offset))
	return c
}

// Elevation returns the angle in radians between the view direction and the
// horizontal plane, positive when the camera looks down.
func (c Camera) Elevation() float64 {
	offset := c.Position.Sub(c.Center)
	horizontal := math.Hypot(offset.X, offset.Z)
	return math.Atan2(offset.Y, horizontal)
}
