package render

import "github.com/taigrr/softrast/pkg/math3d"

// MeshRenderer is the read-only view of a mesh the pipeline needs.
// It keeps render independent of the models package.
type MeshRenderer interface {
	TriangleCount() int
	// FaceVertex returns the attributes of corner nth (0..2) of a face.
	FaceVertex(face, nth int) (pos, normal math3d.Vec3, uv math3d.Vec2)
}

// Renderer drives draw calls for one Scene. The matrices are computed once
// when the renderer is created.
type Renderer struct {
	Scene      Scene
	Viewport   math3d.Mat4
	Projection math3d.Mat4
	ModelView  math3d.Mat4
	MVP        math3d.Mat4 // Projection·ModelView
	MVPInvT    math3d.Mat4 // (MVP^T)^-1
	Transform  math3d.Mat4 // Viewport·Projection·ModelView
}

// NewRenderer builds the transform pipeline for scene.
func NewRenderer(scene Scene) *Renderer {
	r := &Renderer{
		Scene:      scene,
		Viewport:   scene.ViewportMatrix(),
		Projection: scene.Camera.ProjectionMatrix(),
		ModelView:  scene.Camera.ViewMatrix(),
	}
	r.MVP = r.Projection.Mul(r.ModelView)
	r.MVPInvT = r.MVP.Transpose().Inverse()
	r.Transform = r.Viewport.Mul(r.MVP)
	return r
}

// NewFramebuffer allocates a frame sized for the scene and cleared to its
// background.
func (r *Renderer) NewFramebuffer() *Framebuffer {
	fb := NewFramebuffer(r.Scene.Width, r.Scene.Height)
	fb.Clear(r.Scene.Background)
	return fb
}

// DrawMesh runs every face of mesh through the vertex stage, the rasterizer
// and a MaterialShader for mat.
func (r *Renderer) DrawMesh(rast *Rasterizer, mesh MeshRenderer, mat Material) {
	shader := &MaterialShader{
		MVP:      r.MVP,
		MVPInvT:  r.MVPInvT,
		Light:    r.Scene.Light,
		Material: mat,
	}

	for i := 0; i < mesh.TriangleCount(); i++ {
		var tri ScreenTriangle
		var uvs [3]math3d.Vec2
		for j := range 3 {
			pos, normal, uv := mesh.FaceVertex(i, j)
			tri[j] = ShadeVertex(pos, normal, r.Scene.Light, r.Transform)
			uvs[j] = uv
		}
		shader.SetTriangle(uvs, tri)
		rast.DrawTriangle(tri, shader)
	}
}

// Render draws mesh into a new framebuffer and returns it.
func (r *Renderer) Render(mesh MeshRenderer, mat Material) *Framebuffer {
	fb := r.NewFramebuffer()
	rast := NewRasterizer(fb)
	r.DrawMesh(rast, mesh, mat)

	s := rast.Stats
	Logger().Debug("rendered mesh",
		"triangles", s.Triangles,
		"degenerate", s.Degenerate,
		"fragments", s.Fragments,
		"depth_rejected", s.DepthRejected,
		"discarded", s.Discarded,
	)
	return fb
}

// RenderWireframe draws the edges of every face of mesh into a new
// framebuffer.
func (r *Renderer) RenderWireframe(mesh MeshRenderer, c Color) *Framebuffer {
	fb := r.NewFramebuffer()
	NewWireframe(r.Transform, fb).DrawMesh(mesh, c)
	return fb
}
