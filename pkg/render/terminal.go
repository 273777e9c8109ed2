package render

import (
	"image"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
	xdraw "golang.org/x/image/draw"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. Each cell covers two frame rows: ▀ with the upper pixel as the
// foreground and the lower pixel as the background. The frame height should
// be 2x the area height; the top of the frame lands on the first row.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		imgTop := (row - area.Min.Y) * 2
		topY := fb.Height - 1 - imgTop
		botY := topY - 1

		for col := area.Min.X; col < area.Max.X && col-area.Min.X < fb.Width; col++ {
			x := col - area.Min.X
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(x, topY)),
					Bg: rgbaToColor(fb.GetPixel(x, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// Scale returns a copy of the color plane resampled to width×height.
// The depth plane of the copy is cleared.
func (fb *Framebuffer) Scale(width, height int) *Framebuffer {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	src := fb.ToImage()
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return FramebufferFromImage(dst)
}

// FramebufferFromImage creates a framebuffer holding img's pixels, flipping
// rows so the top of the image is the top of the frame.
func FramebufferFromImage(img image.Image) *Framebuffer {
	b := img.Bounds()
	fb := NewFramebuffer(b.Dx(), b.Dy())
	for y := range fb.Height {
		for x := range fb.Width {
			fb.SetPixel(x, fb.Height-1-y, color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA))
		}
	}
	return fb
}

// RenderANSI fits the frame into cols×rows terminal cells and returns the
// ANSI encoded text, one line per row.
func (fb *Framebuffer) RenderANSI(cols, rows int) string {
	scaled := fb.Scale(cols, rows*2)
	buf := uv.NewScreenBuffer(cols, rows)
	scaled.Draw(buf, buf.Bounds())
	return buf.Render()
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack = color.RGBA{0, 0, 0, 255}
	ColorWhite = color.RGBA{255, 255, 255, 255}
	ColorRed   = color.RGBA{255, 0, 0, 255}
	ColorGreen = color.RGBA{0, 255, 0, 255}
	ColorBlue  = color.RGBA{0, 0, 255, 255}
)

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}
