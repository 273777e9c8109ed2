package render

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"os"

	"github.com/taigrr/softrast/pkg/math3d"
	_ "golang.org/x/image/bmp" // Register BMP decoder
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// WrapMode determines how texel coordinates outside the image are handled.
type WrapMode int

const (
	WrapClamp  WrapMode = iota // Clamp to edge
	WrapRepeat                 // Tile the texture
)

// Texture holds a 2D image for texture mapping. Pixels are stored in image
// order (top row first); Texel and Sample address them with row 0 at the
// bottom.
type Texture struct {
	Width  int
	Height int
	Pixels []Color  // Row-major pixel data, top row first
	WrapU  WrapMode // Horizontal wrap mode
	WrapV  WrapMode // Vertical wrap mode
}

// NewTexture creates an empty texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// LoadTexture loads a texture from an image file. PNG, JPEG, BMP, TIFF and
// WebP are supported.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}

	tex := TextureFromImage(img)
	Logger().Debug("loaded texture", "path", path, "format", format, "width", tex.Width, "height", tex.Height)
	return tex, nil
}

// TextureFromImage copies img into a new texture. Any image model is
// converted to 8-bit RGBA.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*bounds.Dx() {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		xdraw.Draw(rgba, rgba.Bounds(), img, bounds.Min, xdraw.Src)
	}

	tex := NewTexture(bounds.Dx(), bounds.Dy())
	for i := range tex.Pixels {
		p := rgba.Pix[i*4 : i*4+4 : i*4+4]
		tex.Pixels[i] = Color{R: p[0], G: p[1], B: p[2], A: p[3]}
	}
	return tex
}

// NewCheckerTexture fills a width×height texture with size×size squares
// alternating between c1 and c2, starting with c1 at the top-left.
func NewCheckerTexture(width, height, size int, c1, c2 Color) *Texture {
	tex := NewTexture(width, height)
	for i := range tex.Pixels {
		x, y := i%width, i/width
		tex.Pixels[i] = c1
		if (x/size+y/size)%2 == 1 {
			tex.Pixels[i] = c2
		}
	}
	return tex
}

// SetPixel sets a pixel in image order (row 0 at the top). Off-texture
// writes are dropped.
func (t *Texture) SetPixel(x, y int, c Color) {
	if t.contains(x, y) {
		t.Pixels[y*t.Width+x] = c
	}
}

// GetPixel returns the pixel at (x, y) in image order, or transparent black
// off the texture.
func (t *Texture) GetPixel(x, y int) Color {
	if t.contains(x, y) {
		return t.Pixels[y*t.Width+x]
	}
	return Color{}
}

func (t *Texture) contains(x, y int) bool {
	return x >= 0 && x < t.Width && y >= 0 && y < t.Height
}

// Texel returns the texel at (x, y) with row 0 at the bottom of the image.
// Coordinates outside the texture are resolved by the wrap modes.
func (t *Texture) Texel(x, y int) Color {
	if t.Width == 0 || t.Height == 0 {
		return Color{}
	}
	x = wrapPixelCoord(x, t.Width, t.WrapU)
	y = wrapPixelCoord(y, t.Height, t.WrapV)
	return t.Pixels[(t.Height-1-y)*t.Width+x]
}

// Sample returns the nearest texel for texture coordinates nominally in
// [0,1]. The texel index is the truncation of uv scaled by the texture size.
func (t *Texture) Sample(uv math3d.Vec2) Color {
	return t.Texel(texelIndex(uv.X, t.Width), texelIndex(uv.Y, t.Height))
}

// texelIndex truncates coord*size toward zero, saturating non-finite values.
func texelIndex(coord float64, size int) int {
	return saturateInt(coord * float64(size))
}

// wrapPixelCoord maps x into [0, size) according to mode.
func wrapPixelCoord(x, size int, mode WrapMode) int {
	if mode == WrapRepeat {
		if x %= size; x < 0 {
			x += size
		}
		return x
	}
	return min(max(x, 0), size-1)
}

// saturateInt converts f to int by truncation, mapping NaN to 0 and
// clamping out-of-range values to the int32 limits.
func saturateInt(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int(f)
}

// channelSlack is added before truncating to a color channel, so a product
// that should be exactly n but carries rounding error below it stays n.
const channelSlack = 1e-9

// saturateUint8 converts f to a color channel by truncation, clamping to
// [0,255] and mapping NaN to 0.
func saturateUint8(f float64) uint8 {
	f += channelSlack
	switch {
	case math.IsNaN(f) || f <= 0:
		return 0
	case f >= 255:
		return 255
	}
	return uint8(f)
}

// saturateUint16 converts f to a depth sample by truncation, clamping to
// [0,MaxDepth] and mapping NaN to 0.
func saturateUint16(f float64) uint16 {
	switch {
	case math.IsNaN(f) || f <= 0:
		return 0
	case f >= MaxDepth:
		return MaxDepth
	}
	return uint16(f)
}

// MultiplyColor scales each color channel by intensity, saturating into
// [0,255]. Negative or NaN intensity produces black; alpha is kept.
func MultiplyColor(c Color, intensity float64) Color {
	return Color{
		R: saturateUint8(float64(c.R) * intensity),
		G: saturateUint8(float64(c.G) * intensity),
		B: saturateUint8(float64(c.B) * intensity),
		A: c.A,
	}
}
