package models

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/taigrr/softrast/pkg/render"
	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Material holds the decoded texture images of a mesh. Any of them may be
// nil.
type Material struct {
	Name     string
	Diffuse  image.Image
	Normal   image.Image
	Specular image.Image
}

// Texture naming conventions, tried in order, relative to the model's base
// path (the model path without its extension).
var (
	diffuseSuffixes  = []string{"_diffuse"}
	normalSuffixes   = []string{"_nm", "_normal"}
	specularSuffixes = []string{"_spec"}
	imageExtensions  = []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp"}
)

// BasePath returns path without its file extension.
func BasePath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// LoadMaterial discovers the textures that accompany a model by naming
// convention: <base>_diffuse, <base>_nm or <base>_normal, and <base>_spec
// with any supported image extension. Missing files leave the slot empty;
// files that exist but fail to decode are errors.
func LoadMaterial(base string) (Material, error) {
	mat := Material{Name: filepath.Base(base)}

	slots := []struct {
		suffixes []string
		dst      *image.Image
	}{
		{diffuseSuffixes, &mat.Diffuse},
		{normalSuffixes, &mat.Normal},
		{specularSuffixes, &mat.Specular},
	}
	for _, slot := range slots {
		path, ok := findTexture(base, slot.suffixes)
		if !ok {
			continue
		}
		img, err := LoadImage(path)
		if err != nil {
			return Material{}, err
		}
		*slot.dst = img
	}

	render.Logger().Debug("loaded material",
		"name", mat.Name,
		"diffuse", mat.Diffuse != nil,
		"normal", mat.Normal != nil,
		"specular", mat.Specular != nil,
	)
	return mat, nil
}

// findTexture returns the first existing file base+suffix+ext.
func findTexture(base string, suffixes []string) (string, bool) {
	for _, suffix := range suffixes {
		for _, ext := range imageExtensions {
			path := base + suffix + ext
			if _, err := os.Stat(path); err == nil {
				return path, true
			} else if !errors.Is(err, fs.ErrNotExist) {
				render.Logger().Warn("stat texture", "path", path, "error", err)
			}
		}
	}
	return "", false
}

// LoadImage decodes an image file (PNG, JPEG, BMP, TIFF or WebP).
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

// Textures converts the images into render textures bound to their slots.
func (m Material) Textures() render.Material {
	return render.Material{
		Diffuse:  bindImage(m.Diffuse),
		Normal:   bindImage(m.Normal),
		Specular: bindImage(m.Specular),
	}
}

func bindImage(img image.Image) render.TextureSlot {
	if img == nil {
		return render.TextureSlot{}
	}
	return render.Bind(render.TextureFromImage(img))
}
