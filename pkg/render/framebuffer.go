// Package render implements the software rasterization pipeline: the vertex
// stage, the triangle rasterizer, the fragment stage and the frame they draw
// into.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// MaxDepth is the far end of the depth range. Depth values are quantized to
// 16 bits and a larger value is closer to the viewer.
const MaxDepth = 65535

// Framebuffer is the frame a render draws into: a color plane and a depth
// plane of the same dimensions. Pixel (0, 0) is the bottom-left corner and
// both planes are indexed y*Width+x.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []color.RGBA // Row-major, bottom row first
	Depth  []uint16     // 0 is the far plane; greater values win
}

// NewFramebuffer creates a framebuffer with all pixels transparent black and
// all depths at 0.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
		Depth:  make([]uint16, width*height),
	}
}

// Clear fills the color plane with a solid color. Depth is untouched.
func (fb *Framebuffer) Clear(c color.RGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// ClearDepth resets every depth sample to the far plane.
func (fb *Framebuffer) ClearDepth() {
	clear(fb.Depth)
}

// index returns the plane offset of (x, y) and whether it is on the frame.
func (fb *Framebuffer) index(x, y int) (int, bool) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return 0, false
	}
	return y*fb.Width + x, true
}

// SetPixel writes c at (x, y). Off-frame writes are dropped.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if i, ok := fb.index(x, y); ok {
		fb.Pixels[i] = c
	}
}

// GetPixel returns the color at (x, y), or transparent black off the frame.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if i, ok := fb.index(x, y); ok {
		return fb.Pixels[i]
	}
	return color.RGBA{}
}

// DepthAt returns the depth sample at (x, y), or 0 off the frame.
func (fb *Framebuffer) DepthAt(x, y int) uint16 {
	if i, ok := fb.index(x, y); ok {
		return fb.Depth[i]
	}
	return 0
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
// The depth plane is not consulted.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to an image.RGBA with the conventional
// top-left origin, so the bottom row of the frame becomes the last image row.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, fb.Height-1-y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// Encode writes the frame to w in the named format: png, jpeg, bmp or tiff.
func (fb *Framebuffer) Encode(w io.Writer, format string) error {
	img := fb.ToImage()
	switch strings.ToLower(format) {
	case "png":
		return png.Encode(w, img)
	case "jpg", "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case "bmp":
		return bmp.Encode(w, img)
	case "tif", "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// Save writes the frame to path, choosing the encoder from the file
// extension. Paths without an extension are written as PNG.
func (fb *Framebuffer) Save(path string) error {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		format = "png"
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fb.Encode(f, format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	Logger().Info("saved frame", "path", path, "width", fb.Width, "height", fb.Height)
	return nil
}
