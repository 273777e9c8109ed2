package models

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/softrast/pkg/math3d"
)

const quadOBJ = `# one quad with full attributes
o quad
v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl none
s off
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJ(t *testing.T) {
	mesh, err := ParseOBJ(strings.NewReader(quadOBJ), "quad.obj")
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}

	if len(mesh.Positions) != 4 {
		t.Fatalf("got %d positions, want 4", len(mesh.Positions))
	}
	if mesh.TriangleCount() != 2 {
		t.Fatalf("got %d faces, want 2", mesh.TriangleCount())
	}

	// Texture coordinates follow the corners: uv = (pos + 1) / 2.
	for face := range mesh.Faces {
		for nth := range 3 {
			pos, normal, uv := mesh.FaceVertex(face, nth)
			if normal != math3d.V3(0, 0, 1) {
				t.Errorf("face %d corner %d normal = %v", face, nth, normal)
			}
			if want := math3d.V2((pos.X+1)/2, (pos.Y+1)/2); uv != want {
				t.Errorf("face %d corner %d at %v: uv = %v, want %v", face, nth, pos, uv, want)
			}
		}
	}

	if mesh.BoundsMin != math3d.V3(-1, -1, 0) || mesh.BoundsMax != math3d.V3(1, 1, 0) {
		t.Errorf("bounds = %v..%v", mesh.BoundsMin, mesh.BoundsMax)
	}
}

func TestParseOBJSeam(t *testing.T) {
	// Two triangles share an edge but not its texture coordinates.
	src := `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 0.5 0
vt 0.5 0.5
vt 0.25 0
vt 0.75 0.5
vt 0.25 0.5
f 1/1 2/2 3/3
f 1/4 3/5 4/6
`
	mesh, err := ParseOBJ(strings.NewReader(src), "seam.obj")
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}

	if len(mesh.Positions) != 4 {
		t.Errorf("got %d positions, want the 4 distinct ones", len(mesh.Positions))
	}
	if a, b := mesh.Faces[0].V[0], mesh.Faces[1].V[0]; a.Position != b.Position || a.TexCoord == b.TexCoord {
		t.Errorf("corner 1 of both faces = %v and %v, want shared position and split texcoord", a, b)
	}
	for face := range mesh.Faces {
		for nth := range 3 {
			if _, n, _ := mesh.FaceVertex(face, nth); n.Sub(math3d.V3(0, 0, 1)).Len() > 1e-9 {
				t.Errorf("face %d corner %d normal = %v, want +Z", face, nth, n)
			}
		}
	}
	if err := mesh.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestParseOBJDefaults(t *testing.T) {
	mesh, err := ParseOBJ(strings.NewReader("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), "tri.obj")
	if err != nil {
		t.Fatal(err)
	}

	for nth := range 3 {
		_, n, uv := mesh.FaceVertex(0, nth)
		if uv != math3d.V2(0, 0) {
			t.Errorf("corner %d uv = %v, want (0,0)", nth, uv)
		}
		if n.Sub(math3d.V3(0, 0, 1)).Len() > 1e-9 {
			t.Errorf("computed normal %d = %v, want +Z", nth, n)
		}
	}
}

func TestParseOBJNoFaces(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"comments only", "# nothing here\n"},
		{"points only", "v 0 0 0\nv 1 0 0\nv 0 1 0\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tc.src), "bad.obj")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), "bad.obj") {
				t.Errorf("error %q does not name the model", err)
			}
		})
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0o644); err != nil {
		t.Fatal(err)
	}

	mesh, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if mesh.Name != "quad.obj" || mesh.TriangleCount() != 2 {
		t.Errorf("got %q with %d faces", mesh.Name, mesh.TriangleCount())
	}

	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("expected error for a missing file")
	}
}
