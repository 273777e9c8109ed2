package main

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taigrr/softrast/pkg/config"
	"github.com/taigrr/softrast/pkg/models"
	"github.com/taigrr/softrast/pkg/render"
)

// options collects the flags shared by every command.
type options struct {
	scene    string
	out      string
	width    int
	height   int
	diffuse  string
	normal   string
	specular string

	wireframe bool
	axes      bool
	fit       bool

	preview   bool
	window    bool
	clipboard bool
	verbose   bool

	frames int
	jobs   int
}

func (o *options) bindScene(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&o.scene, "scene", "", "Lua scene file")
	f.StringVarP(&o.out, "out", "o", "", "output image (png, jpg, bmp, tif)")
	f.IntVar(&o.width, "width", 0, "frame width in pixels")
	f.IntVar(&o.height, "height", 0, "frame height in pixels")
	f.StringVar(&o.diffuse, "diffuse", "", "diffuse texture, overrides discovered textures")
	f.StringVar(&o.normal, "normal", "", "tangent-space normal map")
	f.StringVar(&o.specular, "specular", "", "specular map (loaded, not shaded)")
	f.BoolVar(&o.wireframe, "wireframe", false, "draw edges only")
	f.BoolVar(&o.axes, "axes", false, "overlay the world axes")
	f.BoolVar(&o.fit, "fit", false, "center the model and scale it into the unit cube")
}

func (o *options) bindOutputs(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.BoolVar(&o.preview, "preview", false, "print the result to the terminal")
	f.BoolVar(&o.window, "window", false, "show the result in a window")
	f.BoolVar(&o.clipboard, "clipboard", false, "copy the result to the clipboard as PNG")
}

// sceneConfig merges the scene file (if any) with flags that were set
// explicitly on the command line. A positional model argument wins over
// the scene file.
func (o *options) sceneConfig(cmd *cobra.Command, args []string) (config.Scene, error) {
	cfg := config.Default()
	if o.scene != "" {
		var err error
		cfg, err = config.LoadScene(cmd.Context(), o.scene)
		if err != nil {
			return config.Scene{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.Output = o.out
	}
	if flags.Changed("width") {
		cfg.Render.Width = o.width
	}
	if flags.Changed("height") {
		cfg.Render.Height = o.height
	}
	if flags.Changed("diffuse") {
		cfg.Diffuse = o.diffuse
	}
	if flags.Changed("normal") {
		cfg.Normal = o.normal
	}
	if flags.Changed("specular") {
		cfg.Specular = o.specular
	}
	if flags.Changed("wireframe") {
		cfg.Wireframe = o.wireframe
	}
	if flags.Changed("fit") {
		cfg.Fit = o.fit
	}
	if len(args) > 0 {
		cfg.Model = args[0]
	}

	if cfg.Model == "" {
		return config.Scene{}, fmt.Errorf("no model given")
	}
	if err := cfg.Validate(); err != nil {
		return config.Scene{}, err
	}
	return cfg, nil
}

// loadModel reads the mesh named by cfg and the textures that go with it.
// Explicit texture paths replace discovered ones.
func loadModel(cfg config.Scene) (*models.Mesh, render.Material, error) {
	var (
		mesh *models.Mesh
		mat  models.Material
		err  error
	)

	switch ext := strings.ToLower(filepath.Ext(cfg.Model)); ext {
	case ".glb", ".gltf":
		mesh, mat, err = models.LoadGLBWithMaterial(cfg.Model)
		if err != nil {
			return nil, render.Material{}, fmt.Errorf("load model: %w", err)
		}
	case ".obj":
		mesh, err = models.LoadOBJ(cfg.Model)
		if err != nil {
			return nil, render.Material{}, fmt.Errorf("load model: %w", err)
		}
		mat, err = models.LoadMaterial(models.BasePath(cfg.Model))
		if err != nil {
			return nil, render.Material{}, fmt.Errorf("load textures: %w", err)
		}
	default:
		return nil, render.Material{}, fmt.Errorf("unsupported format: %s (use .obj or .glb)", ext)
	}

	overrides := []struct {
		path string
		dst  *image.Image
	}{
		{cfg.Diffuse, &mat.Diffuse},
		{cfg.Normal, &mat.Normal},
		{cfg.Specular, &mat.Specular},
	}
	for _, o := range overrides {
		if o.path == "" {
			continue
		}
		img, err := models.LoadImage(o.path)
		if err != nil {
			return nil, render.Material{}, err
		}
		*o.dst = img
	}

	if cfg.Fit {
		mesh.FitUnitCube()
	}

	render.Logger().Debug("loaded model",
		"path", cfg.Model,
		"vertices", mesh.VertexCount(),
		"triangles", mesh.TriangleCount(),
		"diffuse", mat.Diffuse != nil,
		"normal", mat.Normal != nil,
	)
	return mesh, mat.Textures(), nil
}

// draw renders one frame of cfg using scene for the camera and light.
func draw(cfg config.Scene, scene render.Scene, mesh *models.Mesh, mat render.Material, axes bool) *render.Framebuffer {
	r := render.NewRenderer(scene)
	var fb *render.Framebuffer
	if cfg.Wireframe {
		fb = r.RenderWireframe(mesh, render.RGB(0, 255, 128))
	} else {
		fb = r.Render(mesh, mat)
	}
	if axes {
		render.NewWireframe(r.Transform, fb).DrawAxes(1)
	}
	return fb
}
