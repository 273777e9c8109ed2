package math3d

import (
	"testing"
)

var (
	benchCamera = V3(1, 1, 3)
	benchAffine = Translate(V3(1, 2, 3)).Mul(RotateY(0.5)).Mul(Scale(V3(2, 2, 2)))
)

func BenchmarkMat4(b *testing.B) {
	b.Run("Mul", func(b *testing.B) {
		m := RotateY(0.5)
		for b.Loop() {
			_ = benchAffine.Mul(m)
		}
	})
	b.Run("MulVec4", func(b *testing.B) {
		v := V4(1, 2, 3, 1)
		for b.Loop() {
			_ = benchAffine.MulVec4(v)
		}
	})
	b.Run("Inverse", func(b *testing.B) {
		for b.Loop() {
			_ = benchAffine.Inverse()
		}
	})
}

func BenchmarkModelView(b *testing.B) {
	for b.Loop() {
		_ = ModelView(benchCamera, Vec3{}, Up())
	}
}

// BenchmarkDrawCallMatrices measures the per draw call setup: the composed
// transform plus the inverse transpose used for normal maps.
func BenchmarkDrawCallMatrices(b *testing.B) {
	viewport := Viewport(100, 100, 600, 600, 65535)
	proj := Projection(benchCamera, Vec3{})
	view := ModelView(benchCamera, Vec3{}, Up())

	for b.Loop() {
		mvp := proj.Mul(view)
		_ = viewport.Mul(mvp)
		_ = mvp.Transpose().Inverse()
	}
}

func BenchmarkVertexTransform(b *testing.B) {
	m := Viewport(100, 100, 600, 600, 65535).
		Mul(Projection(benchCamera, Vec3{})).
		Mul(ModelView(benchCamera, Vec3{}, Up()))
	p := V4(0.3, -0.2, 0.1, 1)

	for b.Loop() {
		_ = m.MulVec4(p).PerspectiveDivide().Floor()
	}
}
