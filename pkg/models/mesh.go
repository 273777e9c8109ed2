// Package models loads triangle meshes and their material textures from
// Wavefront OBJ and glTF files.
package models

import (
	"fmt"

	"github.com/taigrr/softrast/pkg/math3d"
)

// Mesh is a triangle mesh stored as parallel attribute arrays. Each face
// corner carries its own index into each array, so positions, texture
// coordinates and normals can be shared independently.
type Mesh struct {
	Name      string
	Positions []math3d.Vec3
	TexCoords []math3d.Vec2
	Normals   []math3d.Vec3
	Faces     []Face

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// FaceVertex holds the 0-based attribute indices of one face corner.
type FaceVertex struct {
	Position int
	TexCoord int
	Normal   int
}

// Face is a triangle.
type Face struct {
	V [3]FaceVertex
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Positions) == 0 {
		return
	}

	m.BoundsMin = m.Positions[0]
	m.BoundsMax = m.Positions[0]

	for _, p := range m.Positions[1:] {
		m.BoundsMin = m.BoundsMin.Min(p)
		m.BoundsMax = m.BoundsMax.Max(p)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of positions.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// FaceVertex returns the attributes of corner nth of face i.
// Implements render.MeshRenderer.
func (m *Mesh) FaceVertex(i, nth int) (pos, normal math3d.Vec3, uv math3d.Vec2) {
	fv := m.Faces[i].V[nth]
	return m.Positions[fv.Position], m.Normals[fv.Normal], m.TexCoords[fv.TexCoord]
}

// Validate checks that every face index resolves inside the attribute
// arrays.
func (m *Mesh) Validate() error {
	for i, f := range m.Faces {
		for j, fv := range f.V {
			switch {
			case fv.Position < 0 || fv.Position >= len(m.Positions):
				return fmt.Errorf("face %d corner %d: position index %d out of range [0,%d)", i, j, fv.Position, len(m.Positions))
			case fv.TexCoord < 0 || fv.TexCoord >= len(m.TexCoords):
				return fmt.Errorf("face %d corner %d: texcoord index %d out of range [0,%d)", i, j, fv.TexCoord, len(m.TexCoords))
			case fv.Normal < 0 || fv.Normal >= len(m.Normals):
				return fmt.Errorf("face %d corner %d: normal index %d out of range [0,%d)", i, j, fv.Normal, len(m.Normals))
			}
		}
	}
	return nil
}

// CalculateSmoothNormals replaces the normals with one averaged normal per
// position and points every face corner at its position's normal.
func (m *Mesh) CalculateSmoothNormals() {
	m.Normals = make([]math3d.Vec3, len(m.Positions))

	// Accumulate face normals per position
	for i := range m.Faces {
		f := &m.Faces[i]
		v0 := m.Positions[f.V[0].Position]
		v1 := m.Positions[f.V[1].Position]
		v2 := m.Positions[f.V[2].Position]

		edge1 := v1.Sub(v0)
		edge2 := v2.Sub(v0)
		normal := edge1.Cross(edge2) // Area weighted, normalized below

		for j := range 3 {
			p := f.V[j].Position
			m.Normals[p] = m.Normals[p].Add(normal)
			f.V[j].Normal = p
		}
	}

	for i := range m.Normals {
		m.Normals[i] = m.Normals[i].Normalize()
	}
}

// Transform applies a transformation matrix to all positions. Normals are
// transformed by the inverse transpose so non-uniform scales keep them
// perpendicular to the surface.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Positions {
		m.Positions[i] = mat.MulVec3(m.Positions[i])
	}
	normalMat := mat.Inverse().Transpose()
	for i := range m.Normals {
		m.Normals[i] = normalMat.MulVec3Dir(m.Normals[i]).Normalize()
	}
	m.CalculateBounds()
}

// FitUnitCube centers the mesh on the origin and scales it uniformly so its
// largest dimension spans [-1, 1].
func (m *Mesh) FitUnitCube() {
	m.CalculateBounds()
	size := m.Size()
	extent := max(size.X, size.Y, size.Z)
	if extent == 0 {
		return
	}
	s := 2 / extent
	m.Transform(math3d.Scale(math3d.V3(s, s, s)).Mul(math3d.Translate(m.Center().Negate())))
}
