// Package turntable renders a model from a ring of camera positions around
// the vertical axis.
package turntable

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/softrast/pkg/render"
	"golang.org/x/sync/errgroup"
)

// Spring parameters for the orbit. The sweep takes one simulated second,
// long enough for a critically damped spring at this frequency to settle
// within a couple of degrees of a full turn.
const (
	orbitFrequency = 6.0
	orbitDamping   = 1.0
)

// Angles returns frames camera angles in radians easing from 0 towards a
// full revolution. The first angle is 0 and the sequence never decreases.
func Angles(frames int) []float64 {
	if frames <= 0 {
		return nil
	}

	spring := harmonica.NewSpring(harmonica.FPS(frames), orbitFrequency, orbitDamping)
	angles := make([]float64, frames)
	var pos, vel float64
	for i := range angles {
		angles[i] = pos
		pos, vel = spring.Update(pos, vel, 2*math.Pi)
	}
	return angles
}

// Orbit returns one copy of base per frame with the camera rotated about
// the Y axis through its center.
func Orbit(base render.Scene, frames int) []render.Scene {
	angles := Angles(frames)
	scenes := make([]render.Scene, len(angles))
	for i, a := range angles {
		scenes[i] = base
		scenes[i].Camera = base.Camera.OrbitY(a)
	}
	render.Logger().Debug("orbit",
		"frames", frames,
		"distance", base.Camera.Distance(),
		"elevation", base.Camera.Elevation(),
	)
	return scenes
}

// DrawFunc renders one scene into a fresh framebuffer.
type DrawFunc func(scene render.Scene) *render.Framebuffer

// MeshDraw returns a DrawFunc shading mesh with mat.
func MeshDraw(mesh render.MeshRenderer, mat render.Material) DrawFunc {
	return func(scene render.Scene) *render.Framebuffer {
		return render.NewRenderer(scene).Render(mesh, mat)
	}
}

// WireframeDraw returns a DrawFunc tracing the edges of mesh in c.
func WireframeDraw(mesh render.MeshRenderer, c render.Color) DrawFunc {
	return func(scene render.Scene) *render.Framebuffer {
		return render.NewRenderer(scene).RenderWireframe(mesh, c)
	}
}

// RenderSequence draws every scene with at most limit frames in flight
// (GOMAXPROCS when limit <= 0). Frames come back in scene order. Each frame
// owns its framebuffer, so the draws share nothing but the read-only mesh
// and textures.
func RenderSequence(ctx context.Context, scenes []render.Scene, draw DrawFunc, limit int) ([]*render.Framebuffer, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	frames := make([]*render.Framebuffer, len(scenes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, scene := range scenes {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			frames[i] = draw(scene)
			render.Logger().Debug("rendered frame", "frame", i, "of", len(scenes))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("render sequence: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("render sequence: %w", err)
	}
	return frames, nil
}

// FramePath expands pattern for frame i. A pattern containing a % verb is
// passed to fmt.Sprintf; otherwise a zero-padded index is inserted before
// the extension.
func FramePath(pattern string, i int) string {
	if strings.Contains(pattern, "%") {
		return fmt.Sprintf(pattern, i)
	}
	ext := filepath.Ext(pattern)
	return fmt.Sprintf("%s_%03d%s", strings.TrimSuffix(pattern, ext), i, ext)
}

// SaveSequence writes each frame to FramePath(pattern, i) and returns the
// paths written.
func SaveSequence(frames []*render.Framebuffer, pattern string) ([]string, error) {
	paths := make([]string, 0, len(frames))
	for i, fb := range frames {
		path := FramePath(pattern, i)
		if err := fb.Save(path); err != nil {
			return paths, fmt.Errorf("frame %d: %w", i, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
