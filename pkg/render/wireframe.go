package render

import (
	"github.com/taigrr/softrast/pkg/math3d"
)

// Wireframe draws projected line segments without depth testing.
type Wireframe struct {
	transform math3d.Mat4
	fb        *Framebuffer
}

// NewWireframe creates a wireframe renderer projecting through transform
// (viewport·projection·model-view).
func NewWireframe(transform math3d.Mat4, fb *Framebuffer) *Wireframe {
	return &Wireframe{
		transform: transform,
		fb:        fb,
	}
}

// DrawLine3D draws a line between two model-space points.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	x1, y1 := Project(p1, w.transform)
	x2, y2 := Project(p2, w.transform)

	// Bresenham walks every step between the endpoints, so an endpoint
	// far off the frame (up to the int32 limits) drops the whole edge.
	if !w.onCanvas(x1, y1) || !w.onCanvas(x2, y2) {
		return
	}
	w.fb.DrawLine(x1, y1, x2, y2, color)
}

// onCanvas reports whether (x, y) lies within one frame size of the
// framebuffer.
func (w *Wireframe) onCanvas(x, y int) bool {
	return x >= -w.fb.Width && x < 2*w.fb.Width && y >= -w.fb.Height && y < 2*w.fb.Height
}

// DrawMesh draws the three edges of every face.
func (w *Wireframe) DrawMesh(mesh MeshRenderer, color Color) {
	for i := 0; i < mesh.TriangleCount(); i++ {
		var corners [3]math3d.Vec3
		for j := range 3 {
			corners[j], _, _ = mesh.FaceVertex(i, j)
		}
		w.DrawLine3D(corners[0], corners[1], color)
		w.DrawLine3D(corners[1], corners[2], color)
		w.DrawLine3D(corners[2], corners[0], color)
	}
}

// DrawAxes draws the coordinate axes at the origin.
func (w *Wireframe) DrawAxes(length float64) {
	origin := math3d.V3(0, 0, 0)
	w.DrawLine3D(origin, math3d.V3(length, 0, 0), ColorRed)   // X axis
	w.DrawLine3D(origin, math3d.V3(0, length, 0), ColorGreen) // Y axis
	w.DrawLine3D(origin, math3d.V3(0, 0, length), ColorBlue)  // Z axis
}
