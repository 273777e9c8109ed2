package math3d

// Vec4 is a homogeneous coordinate, the output of a Mat4 transform before
// the perspective divide.
type Vec4 struct {
	X, Y, Z, W float64
}

func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// V4FromV3 extends v with w: 1 for points, 0 for directions.
func V4FromV3(v Vec3, w float64) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// Vec3 drops W without dividing.
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// PerspectiveDivide returns XYZ/W. A zero W is not special-cased and gives
// Inf or NaN components.
func (v Vec4) PerspectiveDivide() Vec3 {
	return v.Vec3().Div(v.W)
}
