//go:build !headless

package main

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/taigrr/softrast/pkg/render"
)

// framesPerImage holds each turntable frame for this many ticks at 60 TPS.
const framesPerImage = 3

// viewer plays a sequence of frames in a loop.
type viewer struct {
	ctx    context.Context
	images []*ebiten.Image
	width  int
	height int
	tick   int
}

func (v *viewer) Update() error {
	if v.ctx.Err() != nil {
		return ebiten.Termination
	}
	v.tick++
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	i := (v.tick / framesPerImage) % len(v.images)
	screen.DrawImage(v.images[i], nil)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.width, v.height
}

// showWindow opens a desktop window playing frames until it is closed or
// ctx is cancelled.
func showWindow(ctx context.Context, title string, frames []*render.Framebuffer) error {
	v := &viewer{
		ctx:    ctx,
		width:  frames[0].Width,
		height: frames[0].Height,
	}
	for _, fb := range frames {
		v.images = append(v.images, ebiten.NewImageFromImage(fb.ToImage()))
	}

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(v.width, v.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(v); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
