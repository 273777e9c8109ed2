package render

import "github.com/taigrr/softrast/pkg/math3d"

// Scene gathers everything a draw call needs besides the mesh and its
// material. It is passed by value; nothing in the pipeline reads globals.
type Scene struct {
	Camera     Camera
	Light      math3d.Vec3 // Direction towards the light; any length
	Width      int
	Height     int
	Background Color
}

// DefaultScene returns a width×height scene with the camera at (1, 1, 3)
// looking at the origin and the light along (2, 2, 1).
func DefaultScene(width, height int) Scene {
	return Scene{
		Camera:     NewCamera(math3d.V3(1, 1, 3)),
		Light:      math3d.V3(2, 2, 1),
		Width:      width,
		Height:     height,
		Background: ColorBlack,
	}
}

// ViewportMatrix returns the viewport transform used for the scene: the
// central three quarters of the frame and the full depth range.
func (s Scene) ViewportMatrix() math3d.Mat4 {
	w, h := float64(s.Width), float64(s.Height)
	return math3d.Viewport(w/8, h/8, w*3/4, h*3/4, MaxDepth)
}
