package math3d

import "math"

// Mat4 is a 4x4 matrix stored column by column: element (row, col) lives
// at index row+4*col, so the translation of an affine transform occupies
// indices 12..14. Use Get and Set rather than raw indices.
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	var m Mat4
	for i := range 4 {
		m[i*5] = 1
	}
	return m
}

// Translate moves points by v.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m.Set(0, 3, v.X)
	m.Set(1, 3, v.Y)
	m.Set(2, 3, v.Z)
	return m
}

// Scale scales each axis by the matching component of v.
func Scale(v Vec3) Mat4 {
	m := Identity()
	m.Set(0, 0, v.X)
	m.Set(1, 1, v.Y)
	m.Set(2, 2, v.Z)
	return m
}

// RotateY turns counterclockwise about +Y by angle radians when viewed
// from above, carrying +X towards -Z.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity()
	m.Set(0, 0, c)
	m.Set(0, 2, s)
	m.Set(2, 0, -s)
	m.Set(2, 2, c)
	return m
}

// Viewport maps normalized device coordinates [-1,1]^3 onto the screen
// rectangle [x,x+w]×[y,y+h] and the depth range [0,depth].
func Viewport(x, y, w, h, depth float64) Mat4 {
	m := Identity()
	m.Set(0, 3, x+w/2)
	m.Set(1, 3, y+h/2)
	m.Set(2, 3, depth/2)
	m.Set(0, 0, w/2)
	m.Set(1, 1, h/2)
	m.Set(2, 2, depth/2)
	return m
}

// Projection returns the one-parameter perspective matrix for a camera
// looking at center: the identity with -1/|camera-center| at (3,2).
// A camera placed on its center produces an infinite coefficient.
func Projection(camera, center Vec3) Mat4 {
	m := Identity()
	m.Set(3, 2, -1/camera.Sub(center).Len())
	return m
}

// ModelView returns the view matrix for a camera at camera looking at
// center with the given up direction. The basis is built with Unit, so a
// degenerate configuration (camera on center, or up parallel to the view
// direction) yields NaN entries instead of a silently wrong matrix.
func ModelView(camera, center, up Vec3) Mat4 {
	z := camera.Sub(center).Unit()
	x := up.Cross(z).Unit()
	y := z.Cross(x).Unit()

	basis := Identity()
	translation := Identity()
	for i, axis := range [3]Vec3{x, y, z} {
		basis.Set(i, 0, axis.X)
		basis.Set(i, 1, axis.Y)
		basis.Set(i, 2, axis.Z)
	}
	translation.Set(0, 3, -center.X)
	translation.Set(1, 3, -center.Y)
	translation.Set(2, 3, -center.Z)
	return basis.Mul(translation)
}

// Mul returns m·b: transforming by the result applies b first, then m.
func (m Mat4) Mul(b Mat4) Mat4 {
	var r Mat4
	for col := range 4 {
		for row := range 4 {
			var sum float64
			for k := range 4 {
				sum += m.Get(row, k) * b.Get(k, col)
			}
			r.Set(row, col, sum)
		}
	}
	return r
}

// MulVec3 transforms v as a point (w=1) and divides by the resulting w.
// A zero w is treated as 1 so affine callers never see Inf.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	r := m.MulVec4(V4FromV3(v, 1))
	if r.W == 0 {
		return r.Vec3()
	}
	return r.Vec3().Div(r.W)
}

// MulVec3Dir transforms v as a direction (w=0), ignoring translation.
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return m.MulVec4(V4FromV3(v, 0)).Vec3()
}

// MulVec4 returns m·v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	var r [4]float64
	for row := range 4 {
		r[row] = m[row]*v.X + m[row+4]*v.Y + m[row+8]*v.Z + m[row+12]*v.W
	}
	return Vec4{r[0], r[1], r[2], r[3]}
}

// Transpose swaps rows and columns.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for row := range 4 {
		for col := range 4 {
			t.Set(col, row, m.Get(row, col))
		}
	}
	return t
}

// Inverse returns m⁻¹ by Gauss-Jordan elimination with partial pivoting.
// A singular matrix yields the identity. NaN entries propagate.
func (m Mat4) Inverse() Mat4 {
	a := m
	inv := Identity()

	for col := range 4 {
		pivot := col
		for row := col + 1; row < 4; row++ {
			if math.Abs(a.Get(row, col)) > math.Abs(a.Get(pivot, col)) {
				pivot = row
			}
		}
		if a.Get(pivot, col) == 0 {
			return Identity()
		}
		if pivot != col {
			a.swapRows(pivot, col)
			inv.swapRows(pivot, col)
		}

		d := 1 / a.Get(col, col)
		a.scaleRow(col, d)
		inv.scaleRow(col, d)

		for row := range 4 {
			if row == col {
				continue
			}
			f := a.Get(row, col)
			if f == 0 {
				continue
			}
			a.subRow(row, col, f)
			inv.subRow(row, col, f)
		}
	}
	return inv
}

func (m *Mat4) swapRows(i, j int) {
	for col := range 4 {
		m[i+col*4], m[j+col*4] = m[j+col*4], m[i+col*4]
	}
}

func (m *Mat4) scaleRow(i int, s float64) {
	for col := range 4 {
		m[i+col*4] *= s
	}
}

// subRow subtracts f times row src from row dst.
func (m *Mat4) subRow(dst, src int, f float64) {
	for col := range 4 {
		m[dst+col*4] -= f * m[src+col*4]
	}
}

// Get returns the element at (row, col).
func (m Mat4) Get(row, col int) float64 {
	return m[row+col*4]
}

// Set sets the element at (row, col).
func (m *Mat4) Set(row, col int, val float64) {
	m[row+col*4] = val
}
