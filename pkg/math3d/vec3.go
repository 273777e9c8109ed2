// Package math3d provides the vector and matrix types used by the rasterizer
// along with the builders for the viewport, projection and model-view
// matrices.
package math3d

import "math"

// Vec3 is a point or direction in 3D. In the rasterizer it also carries
// per-corner triples such as barycentric weights or intensities.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is shorthand for Vec3{x, y, z}.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Up is +Y, the default camera up direction.
func Up() Vec3 {
	return Vec3{Y: 1}
}

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// Mul multiplies component by component.
func (a Vec3) Mul(b Vec3) Vec3 { return Vec3{a.X * b.X, a.Y * b.Y, a.Z * b.Z} }

func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Div(s float64) Vec3   { return Vec3{a.X / s, a.Y / s, a.Z / s} }
func (a Vec3) Negate() Vec3         { return Vec3{-a.X, -a.Y, -a.Z} }

func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Cross follows the right-hand rule: X.Cross(Y) is Z.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Sum adds the components. For barycentric weights it is 1.
func (a Vec3) Sum() float64 { return a.X + a.Y + a.Z }

func (a Vec3) Len() float64 { return math.Sqrt(a.Dot(a)) }

// Normalize scales a to unit length. The zero vector stays zero.
func (a Vec3) Normalize() Vec3 {
	if l := a.Len(); l != 0 {
		return a.Div(l)
	}
	return Vec3{}
}

// Unit is Normalize without the zero check: a zero vector yields NaN
// components, which the matrix builders rely on to expose degenerate
// cameras.
func (a Vec3) Unit() Vec3 {
	return a.Div(a.Len())
}

// Min and Max work per component.
func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

// Floor rounds each component towards -Inf.
func (a Vec3) Floor() Vec3 {
	return Vec3{math.Floor(a.X), math.Floor(a.Y), math.Floor(a.Z)}
}
