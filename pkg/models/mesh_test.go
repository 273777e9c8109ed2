package models

import (
	"strings"
	"testing"

	"github.com/taigrr/softrast/pkg/math3d"
)

func triangle() *Mesh {
	mesh := NewMesh("tri")
	mesh.Positions = []math3d.Vec3{{X: 0, Y: 0, Z: 0}, {X: 4, Y: 0, Z: 0}, {X: 0, Y: 2, Z: 0}}
	mesh.TexCoords = []math3d.Vec2{{}}
	mesh.Normals = []math3d.Vec3{{X: 0, Y: 0, Z: 1}}
	mesh.Faces = []Face{{V: [3]FaceVertex{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}}}
	mesh.CalculateBounds()
	return mesh
}

func TestMeshValidate(t *testing.T) {
	tests := []struct {
		name    string
		corner  FaceVertex
		wantErr string
	}{
		{"valid", FaceVertex{2, 0, 0}, ""},
		{"position", FaceVertex{3, 0, 0}, "position index 3"},
		{"texcoord", FaceVertex{0, 1, 0}, "texcoord index 1"},
		{"normal", FaceVertex{0, 0, -1}, "normal index -1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mesh := triangle()
			mesh.Faces[0].V[2] = tc.corner
			err := mesh.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate = %v, want error mentioning %q", err, tc.wantErr)
			}
		})
	}
}

func TestMeshBounds(t *testing.T) {
	mesh := triangle()
	if mesh.Center() != math3d.V3(2, 1, 0) {
		t.Errorf("Center = %v", mesh.Center())
	}
	if mesh.Size() != math3d.V3(4, 2, 0) {
		t.Errorf("Size = %v", mesh.Size())
	}
}

func TestMeshFitUnitCube(t *testing.T) {
	mesh := triangle()
	mesh.FitUnitCube()

	if mesh.BoundsMin != math3d.V3(-1, -0.5, 0) || mesh.BoundsMax != math3d.V3(1, 0.5, 0) {
		t.Errorf("bounds after fit = %v..%v", mesh.BoundsMin, mesh.BoundsMax)
	}
	if mesh.Normals[0].Sub(math3d.V3(0, 0, 1)).Len() > 1e-9 {
		t.Errorf("normal after fit = %v", mesh.Normals[0])
	}
}

func TestMeshTransformNonUniformScale(t *testing.T) {
	mesh := NewMesh("slope")
	mesh.Normals = []math3d.Vec3{math3d.V3(1, 1, 0).Normalize()}
	mesh.Transform(math3d.Scale(math3d.V3(2, 1, 1)))

	// A surface along (1,-1) stretched in X runs along (2,-1); its normal
	// must stay perpendicular.
	if d := mesh.Normals[0].Dot(math3d.V3(2, -1, 0)); d > 1e-9 || d < -1e-9 {
		t.Errorf("normal %v not perpendicular to the stretched surface", mesh.Normals[0])
	}
}

func TestMeshSmoothNormals(t *testing.T) {
	// Two triangles folded along the shared edge (0,1)
	mesh := NewMesh("fold")
	mesh.Positions = []math3d.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: -1}}
	mesh.TexCoords = []math3d.Vec2{{}}
	mesh.Faces = []Face{
		{V: [3]FaceVertex{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}},
		{V: [3]FaceVertex{{0, 0, 0}, {1, 0, 0}, {3, 0, 0}}},
	}
	mesh.CalculateSmoothNormals()

	if len(mesh.Normals) != 4 {
		t.Fatalf("got %d normals, want one per position", len(mesh.Normals))
	}
	shared := mesh.Normals[0]
	want := math3d.V3(0, 1, 1).Normalize()
	if shared.Sub(want).Len() > 1e-9 {
		t.Errorf("shared normal = %v, want %v", shared, want)
	}
	if mesh.Faces[1].V[2].Normal != 3 {
		t.Errorf("corner normal index = %d, want 3", mesh.Faces[1].V[2].Normal)
	}
	if err := mesh.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
