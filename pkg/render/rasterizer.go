package render

import (
	"math"

	"github.com/taigrr/softrast/pkg/math3d"
)

// Rasterizer scan-converts screen triangles into a framebuffer, resolving
// visibility with the framebuffer's depth plane.
type Rasterizer struct {
	fb    *Framebuffer
	Stats RasterStats // Counters for debugging and benchmarking
}

// RasterStats counts what happened to the triangles and fragments submitted
// to a Rasterizer.
type RasterStats struct {
	Triangles     int // Triangles submitted
	Degenerate    int // Triangles skipped for zero screen area
	Fragments     int // Fragments handed to the shader
	DepthRejected int // Covered pixels that failed the depth test
	Discarded     int // Fragments the shader declined to write
}

// NewRasterizer creates a rasterizer drawing into fb.
func NewRasterizer(fb *Framebuffer) *Rasterizer {
	return &Rasterizer{fb: fb}
}

// Framebuffer returns the frame the rasterizer draws into.
func (r *Rasterizer) Framebuffer() *Framebuffer {
	return r.fb
}

// Barycentric returns the weights of pixel (x, y) relative to the triangle's
// screen positions. ok is false when the triangle has less than unit
// signed area, or when the pixel lies outside it (any negative weight).
func Barycentric(tri ScreenTriangle, x, y int) (bar math3d.Vec3, ok bool) {
	a, b, c := tri[0], tri[1], tri[2]
	u := math3d.V3(
		float64(c.X-a.X), float64(b.X-a.X), float64(a.X-x),
	).Cross(math3d.V3(
		float64(c.Y-a.Y), float64(b.Y-a.Y), float64(a.Y-y),
	))
	if math.Abs(u.Z) < 1 {
		return math3d.Vec3{}, false
	}
	bar = math3d.V3(1-(u.X+u.Y)/u.Z, u.Y/u.Z, u.X/u.Z)
	if bar.X < 0 || bar.Y < 0 || bar.Z < 0 {
		return math3d.Vec3{}, false
	}
	return bar, true
}

// boundingBox returns the half-open pixel range [min, max) the triangle is
// scanned over, clamped to the framebuffer. The max row and column are
// excluded.
func (r *Rasterizer) boundingBox(tri ScreenTriangle) (minX, minY, maxX, maxY int) {
	minX, minY = r.fb.Width-1, r.fb.Height-1
	for _, v := range tri {
		minX, minY = min(minX, v.X), min(minY, v.Y)
		maxX, maxY = max(maxX, v.X), max(maxY, v.Y)
	}
	minX, minY = max(minX, 0), max(minY, 0)
	maxX, maxY = min(maxX, r.fb.Width-1), min(maxY, r.fb.Height-1)
	return minX, minY, maxX, maxY
}

// DrawTriangle rasterizes one triangle. For every pixel inside it the depth
// is interpolated linearly in screen space and quantized to 16 bits; the
// fragment is shaded only if it is strictly closer than the stored depth.
// The shader receives perspective-corrected weights and both color and
// depth are written only when it returns ok.
func (r *Rasterizer) DrawTriangle(tri ScreenTriangle, shader FragmentShader) {
	r.Stats.Triangles++

	// The signed area term of the barycentric cross product is the same for
	// every pixel, so a degenerate triangle can be rejected up front.
	area := float64(tri[2].X-tri[0].X)*float64(tri[1].Y-tri[0].Y) -
		float64(tri[1].X-tri[0].X)*float64(tri[2].Y-tri[0].Y)
	if math.Abs(area) < 1 {
		r.Stats.Degenerate++
		return
	}

	depths := math3d.V3(float64(tri[0].Z), float64(tri[1].Z), float64(tri[2].Z))
	scales := math3d.V3(tri[0].PerspectiveScale, tri[1].PerspectiveScale, tri[2].PerspectiveScale)

	minX, minY, maxX, maxY := r.boundingBox(tri)
	for y := minY; y < maxY; y++ {
		row := y * r.fb.Width
		for x := minX; x < maxX; x++ {
			bar, ok := Barycentric(tri, x, y)
			if !ok {
				continue
			}

			z := saturateUint16(depths.Dot(bar) + 0.5)
			if r.fb.Depth[row+x] >= z {
				r.Stats.DepthRejected++
				continue
			}

			corrected := bar.Mul(scales)
			corrected = corrected.Div(corrected.Sum())

			r.Stats.Fragments++
			c, ok := shader.Fragment(corrected)
			if !ok {
				r.Stats.Discarded++
				continue
			}
			r.fb.Depth[row+x] = z
			r.fb.Pixels[row+x] = c
		}
	}
}
