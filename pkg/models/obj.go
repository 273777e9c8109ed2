package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/taigrr/softrast/pkg/math3d"
	"github.com/taigrr/softrast/pkg/render"
	"github.com/udhos/gwob"
)

// LoadOBJ loads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	name := filepath.Base(path)
	obj, err := gwob.NewObjFromFile(path, objOptions(name))
	if err != nil {
		return nil, fmt.Errorf("load obj: %w", err)
	}
	return meshFromObj(obj, name)
}

// ParseOBJ reads an OBJ model from r. Polygons are split into triangle
// fans. Corners without a texture coordinate get (0, 0); a model without
// normals gets smooth normals. Groups, materials and smoothing records are
// ignored.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	obj, err := gwob.NewObjFromReader(name, bufio.NewReader(r), objOptions(name))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return meshFromObj(obj, name)
}

func objOptions(name string) *gwob.ObjParserOptions {
	return &gwob.ObjParserOptions{
		Logger: func(msg string) {
			render.Logger().Debug("obj parser", "name", name, "msg", msg)
		},
	}
}

// meshFromObj converts gwob's interleaved vertex array into parallel
// attribute arrays. gwob emits one vertex per distinct position, texcoord
// and normal combination; positions are merged again so smooth normals
// are shared across texture seams.
func meshFromObj(obj *gwob.Obj, name string) (*Mesh, error) {
	if len(obj.Indices) == 0 || obj.StrideSize == 0 {
		return nil, errors.New(name + ": no faces")
	}

	// Strides and offsets are in bytes of float32 data.
	stride := obj.StrideSize / 4
	posOff := obj.StrideOffsetPosition / 4
	texOff := obj.StrideOffsetTexture / 4
	normOff := obj.StrideOffsetNormal / 4
	count := len(obj.Coord) / stride

	mesh := NewMesh(name)
	mesh.TexCoords = make([]math3d.Vec2, count)
	if obj.NormCoordFound {
		mesh.Normals = make([]math3d.Vec3, count)
	}

	position := make([]int, count)
	seen := make(map[math3d.Vec3]int, count)
	for i := range count {
		c := obj.Coord[i*stride : (i+1)*stride]

		p := math3d.V3(float64(c[posOff]), float64(c[posOff+1]), float64(c[posOff+2]))
		idx, ok := seen[p]
		if !ok {
			idx = len(mesh.Positions)
			seen[p] = idx
			mesh.Positions = append(mesh.Positions, p)
		}
		position[i] = idx

		if obj.TextCoordFound {
			mesh.TexCoords[i] = math3d.V2(float64(c[texOff]), float64(c[texOff+1]))
		}
		if obj.NormCoordFound {
			mesh.Normals[i] = math3d.V3(float64(c[normOff]), float64(c[normOff+1]), float64(c[normOff+2]))
		}
	}

	for i := 0; i+2 < len(obj.Indices); i += 3 {
		var f Face
		for j := range 3 {
			v := obj.Indices[i+j]
			if v < 0 || v >= count {
				return nil, fmt.Errorf("%s: index %d out of range (%d vertices)", name, v, count)
			}
			f.V[j] = FaceVertex{Position: position[v], TexCoord: v, Normal: v}
		}
		mesh.Faces = append(mesh.Faces, f)
	}

	if !obj.NormCoordFound {
		mesh.CalculateSmoothNormals()
	}
	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	mesh.CalculateBounds()

	render.Logger().Debug("loaded obj",
		"name", name,
		"positions", len(mesh.Positions),
		"vertices", count,
		"faces", len(mesh.Faces),
		"groups", len(obj.Groups),
	)
	return mesh, nil
}
