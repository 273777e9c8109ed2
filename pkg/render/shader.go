package render

import "github.com/taigrr/softrast/pkg/math3d"

// FragmentShader computes the color of one covered pixel from its
// perspective-corrected barycentric weights. Returning false discards the
// fragment, leaving both color and depth untouched.
type FragmentShader interface {
	Fragment(bar math3d.Vec3) (Color, bool)
}

// FragmentFunc adapts a function to the FragmentShader interface.
type FragmentFunc func(bar math3d.Vec3) (Color, bool)

// Fragment calls f(bar).
func (f FragmentFunc) Fragment(bar math3d.Vec3) (Color, bool) {
	return f(bar)
}

// MaterialShader shades fragments from a Material: the diffuse texture (or
// white) modulated by Lambert lighting. With a normal map bound, lighting is
// computed per pixel from the map; otherwise the vertex intensities are
// interpolated.
type MaterialShader struct {
	UV        [3]math3d.Vec2 // Texture coordinates of the current triangle
	Intensity math3d.Vec3    // Vertex stage intensities of the current triangle
	MVP       math3d.Mat4    // Projection·ModelView
	MVPInvT   math3d.Mat4    // Inverse transpose of MVP, for normals
	Light     math3d.Vec3
	Material  Material
}

// SetTriangle loads the per-triangle varyings.
func (s *MaterialShader) SetTriangle(uv [3]math3d.Vec2, tri ScreenTriangle) {
	s.UV = uv
	s.Intensity = math3d.V3(tri[0].Intensity, tri[1].Intensity, tri[2].Intensity)
}

// Fragment implements FragmentShader. It never discards.
func (s *MaterialShader) Fragment(bar math3d.Vec3) (Color, bool) {
	uv := s.UV[0].Scale(bar.X).Add(s.UV[1].Scale(bar.Y)).Add(s.UV[2].Scale(bar.Z))

	base := ColorWhite
	if diffuse, ok := s.Material.Diffuse.Get(); ok {
		base = diffuse.Sample(uv)
	}

	intensity := s.Intensity.Dot(bar)
	if normalMap, ok := s.Material.Normal.Get(); ok {
		n := s.MVPInvT.MulVec3Dir(DecodeNormal(normalMap.Sample(uv))).Normalize()
		l := s.MVP.MulVec3Dir(s.Light).Normalize()
		intensity = max(n.Dot(l), 0)
	}

	c := MultiplyColor(base, intensity)
	c.A = 255
	return c, true
}

// DecodeNormal maps a normal map texel from [0,255] per channel to a
// direction in [-1,1]^3.
func DecodeNormal(c Color) math3d.Vec3 {
	return math3d.V3(
		float64(c.R)/255*2-1,
		float64(c.G)/255*2-1,
		float64(c.B)/255*2-1,
	)
}
