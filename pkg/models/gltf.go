package models

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/softrast/pkg/math3d"
	"github.com/taigrr/softrast/pkg/render"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// CalculateNormals computes smooth normals when the file has none.
	CalculateNormals bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		CalculateNormals: true,
	}
}

// LoadGLB loads a binary GLTF (.glb) file.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return l.LoadDocument(doc, filepath.Base(path))
}

// LoadDocument converts the triangle primitives of every mesh in doc into
// one Mesh. Vertex attributes share a single index, so each face corner
// uses the same value for its position, texcoord and normal index.
func (l *GLTFLoader) LoadDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	hasNormals := false

	for _, m := range doc.Meshes {
		for i, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			found, err := appendPrimitive(doc, prim, mesh)
			if err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: %w", m.Name, i, err)
			}
			hasNormals = hasNormals || found
		}
	}

	if l.CalculateNormals && !hasNormals {
		mesh.CalculateSmoothNormals()
	}

	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	mesh.CalculateBounds()

	render.Logger().Debug("loaded gltf",
		"name", name,
		"vertices", len(mesh.Positions),
		"faces", len(mesh.Faces),
	)
	return mesh, nil
}

// appendPrimitive adds the vertices and faces of prim to mesh and reports
// whether the primitive carried normals. Primitives without positions are
// skipped.
func appendPrimitive(doc *gltf.Document, prim *gltf.Primitive, mesh *Mesh) (bool, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return false, nil
	}
	positions, err := readVec3s(doc, posIdx)
	if err != nil {
		return false, fmt.Errorf("positions: %w", err)
	}

	var normals []math3d.Vec3
	normIdx, hasNormals := prim.Attributes[gltf.NORMAL]
	if hasNormals {
		if normals, err = readVec3s(doc, normIdx); err != nil {
			return false, fmt.Errorf("normals: %w", err)
		}
	}

	var uvs []math3d.Vec2
	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = readVec2s(doc, uvIdx); err != nil {
			return false, fmt.Errorf("texcoords: %w", err)
		}
	}

	base := len(mesh.Positions)
	for i, p := range positions {
		var n math3d.Vec3
		if i < len(normals) {
			n = normals[i]
		}
		// glTF puts V=0 at the top of the image; textures here sample
		// bottom-up.
		var uv math3d.Vec2
		if i < len(uvs) {
			uv = math3d.V2(uvs[i].X, 1-uvs[i].Y)
		}
		mesh.Positions = append(mesh.Positions, p)
		mesh.Normals = append(mesh.Normals, n)
		mesh.TexCoords = append(mesh.TexCoords, uv)
	}

	var indices []int
	if prim.Indices != nil {
		if indices, err = readIndices(doc, *prim.Indices); err != nil {
			return false, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]int, len(positions))
		for i := range indices {
			indices[i] = i
		}
	}

	for i := 0; i+2 < len(indices); i += 3 {
		var f Face
		for j := range 3 {
			idx := base + indices[i+j]
			f.V[j] = FaceVertex{Position: idx, TexCoord: idx, Normal: idx}
		}
		mesh.Faces = append(mesh.Faces, f)
	}
	return hasNormals, nil
}

// accessorView is the byte window an accessor reads from: count elements,
// stride bytes apart, beginning at start.
type accessorView struct {
	data   []byte
	start  int
	stride int
	count  int
}

// element returns the bytes of element i.
func (v accessorView) element(i int) []byte {
	return v.data[v.start+i*v.stride:]
}

// viewAccessor resolves accessor idx, checking its type and that every
// element of size bytes lies inside its buffer.
func viewAccessor(doc *gltf.Document, idx int, typ gltf.AccessorType, size int) (accessorView, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return accessorView{}, fmt.Errorf("accessor %d out of range", idx)
	}
	acc := doc.Accessors[idx]
	if acc.Type != typ {
		return accessorView{}, fmt.Errorf("accessor %d: expected %v, got %v", idx, typ, acc.Type)
	}
	if acc.BufferView == nil {
		return accessorView{}, fmt.Errorf("accessor %d has no buffer view", idx)
	}

	bv := doc.BufferViews[*acc.BufferView]
	// gltf.Open resolves embedded, data URI and external buffers
	data := doc.Buffers[bv.Buffer].Data
	if data == nil {
		return accessorView{}, fmt.Errorf("buffer %d has no data", bv.Buffer)
	}

	v := accessorView{
		data:   data,
		start:  bv.ByteOffset + acc.ByteOffset,
		stride: bv.ByteStride,
		count:  acc.Count,
	}
	if v.stride == 0 {
		v.stride = size
	}
	if v.count == 0 {
		return v, nil
	}
	if end := v.start + (v.count-1)*v.stride + size; v.start < 0 || end > len(data) {
		return accessorView{}, fmt.Errorf("accessor %d reads bytes %d..%d of a %d byte buffer", idx, v.start, end, len(data))
	}
	return v, nil
}

func readVec3s(doc *gltf.Document, idx int) ([]math3d.Vec3, error) {
	if err := requireFloat(doc, idx); err != nil {
		return nil, err
	}
	v, err := viewAccessor(doc, idx, gltf.AccessorVec3, 12)
	if err != nil {
		return nil, err
	}
	out := make([]math3d.Vec3, v.count)
	for i := range out {
		b := v.element(i)
		out[i] = math3d.V3(readFloat32(b), readFloat32(b[4:]), readFloat32(b[8:]))
	}
	return out, nil
}

func readVec2s(doc *gltf.Document, idx int) ([]math3d.Vec2, error) {
	if err := requireFloat(doc, idx); err != nil {
		return nil, err
	}
	v, err := viewAccessor(doc, idx, gltf.AccessorVec2, 8)
	if err != nil {
		return nil, err
	}
	out := make([]math3d.Vec2, v.count)
	for i := range out {
		b := v.element(i)
		out[i] = math3d.V2(readFloat32(b), readFloat32(b[4:]))
	}
	return out, nil
}

func requireFloat(doc *gltf.Document, idx int) error {
	if idx >= 0 && idx < len(doc.Accessors) && doc.Accessors[idx].ComponentType != gltf.ComponentFloat {
		return fmt.Errorf("accessor %d: components are %v, want float", idx, doc.Accessors[idx].ComponentType)
	}
	return nil
}

// readIndices reads an unsigned byte, short or int scalar accessor.
func readIndices(doc *gltf.Document, idx int) ([]int, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}

	var size int
	switch ct := doc.Accessors[idx].ComponentType; ct {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("accessor %d: unsupported index component %v", idx, ct)
	}

	v, err := viewAccessor(doc, idx, gltf.AccessorScalar, size)
	if err != nil {
		return nil, err
	}
	out := make([]int, v.count)
	for i := range out {
		b := v.element(i)
		switch size {
		case 1:
			out[i] = int(b[0])
		case 2:
			out[i] = int(binary.LittleEndian.Uint16(b))
		case 4:
			out[i] = int(binary.LittleEndian.Uint32(b))
		}
	}
	return out, nil
}

func readFloat32(b []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}

// imageBytes returns the encoded bytes of image i, read from its buffer
// view or from a file relative to dir.
func imageBytes(doc *gltf.Document, i int, dir string) ([]byte, error) {
	img := doc.Images[i]
	switch {
	case img.BufferView != nil:
		bv := doc.BufferViews[*img.BufferView]
		data := doc.Buffers[bv.Buffer].Data
		end := bv.ByteOffset + bv.ByteLength
		if data == nil || end > len(data) {
			return nil, fmt.Errorf("image %d: buffer view out of range", i)
		}
		return data[bv.ByteOffset:end], nil
	case img.URI != "":
		data, err := os.ReadFile(filepath.Join(dir, img.URI))
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", i, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("image %d has no source", i)
	}
}

// LoadGLBWithMaterial loads a GLB or GLTF file and returns the mesh plus a
// material whose diffuse image is the first image in the file that decodes.
// The material is empty if the file carries no usable image.
func LoadGLBWithMaterial(path string) (*Mesh, Material, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, Material{}, fmt.Errorf("open gltf: %w", err)
	}

	mesh, err := NewGLTFLoader().LoadDocument(doc, filepath.Base(path))
	if err != nil {
		return nil, Material{}, err
	}

	mat := Material{Name: mesh.Name}
	dir := filepath.Dir(path)
	for i := range doc.Images {
		data, err := imageBytes(doc, i, dir)
		if err != nil {
			render.Logger().Warn("skip gltf image", "error", err)
			continue
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			render.Logger().Warn("decode gltf image", "index", i, "error", err)
			continue
		}
		mat.Diffuse = img
		break
	}

	return mesh, mat, nil
}
