package render

import (
	"math"
	"testing"

	"github.com/taigrr/softrast/pkg/math3d"
)

func TestShadeVertex(t *testing.T) {
	normal := math3d.V3(0, 0, 1)

	tests := []struct {
		name      string
		pos       math3d.Vec3
		light     math3d.Vec3
		transform math3d.Mat4
		want      ScreenVertex
	}{
		{
			name:      "floors identity position",
			pos:       math3d.V3(1.7, 2.2, 3.9),
			light:     math3d.V3(0, 0, 1),
			transform: math3d.Identity(),
			want:      ScreenVertex{X: 1, Y: 2, Z: 3, PerspectiveScale: 1, Intensity: 1},
		},
		{
			name:      "floors toward negative infinity",
			pos:       math3d.V3(-0.5, -1.5, 0),
			light:     math3d.V3(0, 0, 1),
			transform: math3d.Identity(),
			want:      ScreenVertex{X: -1, Y: -2, Z: 0, PerspectiveScale: 1, Intensity: 1},
		},
		{
			name:      "light is normalized",
			pos:       math3d.V3(0, 0, 0),
			light:     math3d.V3(0, 0, 5),
			transform: math3d.Identity(),
			want:      ScreenVertex{PerspectiveScale: 1, Intensity: 1},
		},
		{
			name:      "back light is not clamped",
			pos:       math3d.V3(0, 0, 0),
			light:     math3d.V3(0, 0, -2),
			transform: math3d.Identity(),
			want:      ScreenVertex{PerspectiveScale: 1, Intensity: -1},
		},
		{
			name:      "zero light",
			pos:       math3d.V3(0, 0, 0),
			light:     math3d.V3(0, 0, 0),
			transform: math3d.Identity(),
			want:      ScreenVertex{PerspectiveScale: 1, Intensity: math.NaN()},
		},
		{
			name:      "divides by w",
			pos:       math3d.V3(10, 20, 30),
			light:     math3d.V3(1, 0, 0),
			transform: wScale(2),
			want:      ScreenVertex{X: 5, Y: 10, Z: 15, PerspectiveScale: 0.5, Intensity: 0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ShadeVertex(tc.pos, normal, tc.light, tc.transform)
			if got.X != tc.want.X || got.Y != tc.want.Y || got.Z != tc.want.Z {
				t.Errorf("position = (%d,%d,%d), want (%d,%d,%d)",
					got.X, got.Y, got.Z, tc.want.X, tc.want.Y, tc.want.Z)
			}
			if math.Abs(got.PerspectiveScale-tc.want.PerspectiveScale) > 1e-12 {
				t.Errorf("PerspectiveScale = %v, want %v", got.PerspectiveScale, tc.want.PerspectiveScale)
			}
			if math.IsNaN(tc.want.Intensity) {
				if !math.IsNaN(got.Intensity) {
					t.Errorf("Intensity = %v, want NaN", got.Intensity)
				}
			} else if math.Abs(got.Intensity-tc.want.Intensity) > 1e-12 {
				t.Errorf("Intensity = %v, want %v", got.Intensity, tc.want.Intensity)
			}
		})
	}
}

// wScale returns the identity with w scaled by s.
func wScale(s float64) math3d.Mat4 {
	m := math3d.Identity()
	m.Set(3, 3, s)
	return m
}

func TestShadeVertexZeroW(t *testing.T) {
	t.Run("non-zero numerator saturates", func(t *testing.T) {
		v := ShadeVertex(math3d.V3(1, -1, 0), math3d.V3(0, 0, 1), math3d.V3(0, 0, 1), wScale(0))
		if v.X != math.MaxInt32 || v.Y != math.MinInt32 || v.Z != 0 {
			t.Errorf("got (%d,%d,%d), want (MaxInt32, MinInt32, 0)", v.X, v.Y, v.Z)
		}
		if !math.IsInf(v.PerspectiveScale, 1) {
			t.Errorf("PerspectiveScale = %v, want +Inf", v.PerspectiveScale)
		}
	})

	t.Run("zero transform yields origin", func(t *testing.T) {
		var zero math3d.Mat4
		v := ShadeVertex(math3d.V3(1, 2, 3), math3d.V3(0, 0, 1), math3d.V3(0, 0, 1), zero)
		if v.X != 0 || v.Y != 0 || v.Z != 0 {
			t.Errorf("got (%d,%d,%d), want origin", v.X, v.Y, v.Z)
		}
	})
}

func TestShadeVertexDefaultScene(t *testing.T) {
	scene := DefaultScene(64, 64)
	scene.Camera = NewCamera(math3d.V3(0, 0, 3))
	r := NewRenderer(scene)

	// On the view axis at z=0 the point lands on the viewport center with
	// w = 1 and mid-range depth.
	v := ShadeVertex(math3d.V3(0, 0, 0), math3d.V3(0, 0, 1), scene.Light, r.Transform)
	if v.X != 32 || v.Y != 32 || v.Z != MaxDepth/2 {
		t.Errorf("got (%d,%d,%d), want (32,32,%d)", v.X, v.Y, v.Z, MaxDepth/2)
	}
	if math.Abs(v.PerspectiveScale-1) > 1e-12 {
		t.Errorf("PerspectiveScale = %v, want 1", v.PerspectiveScale)
	}

	// Closer to the camera: w shrinks, so the perspective scale grows.
	near := ShadeVertex(math3d.V3(0, 0, 1), math3d.V3(0, 0, 1), scene.Light, r.Transform)
	if near.PerspectiveScale <= v.PerspectiveScale {
		t.Errorf("near scale %v should exceed %v", near.PerspectiveScale, v.PerspectiveScale)
	}
	if near.Z <= v.Z {
		t.Errorf("near depth %d should exceed %d", near.Z, v.Z)
	}
}

func TestProject(t *testing.T) {
	x, y := Project(math3d.V3(3.5, -0.5, 9), math3d.Identity())
	if x != 3 || y != -1 {
		t.Errorf("Project = (%d,%d), want (3,-1)", x, y)
	}
}
