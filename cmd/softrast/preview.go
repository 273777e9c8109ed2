package main

import (
	"fmt"
	"io"
	"os"

	"github.com/taigrr/softrast/pkg/render"
	"golang.org/x/term"
)

// Size used when stdout is not a terminal.
const (
	defaultCols = 80
	defaultRows = 40
)

// preview prints fb as half-block cells sized to fit the terminal while
// keeping its aspect ratio. Each cell holds two vertically stacked pixels.
func preview(w io.Writer, fb *render.Framebuffer) error {
	cols, rows := defaultCols, defaultRows
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if c, r, err := term.GetSize(fd); err == nil {
			cols, rows = c, r-1
		}
	}

	cols, rows = fitCells(fb.Width, fb.Height, cols, rows)
	if _, err := fmt.Fprintln(w, fb.RenderANSI(cols, rows)); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	return nil
}

// fitCells returns the largest cols×rows cell area within maxCols×maxRows
// whose pixel area (cols × 2·rows) matches width:height.
func fitCells(width, height, maxCols, maxRows int) (cols, rows int) {
	if width <= 0 || height <= 0 || maxCols <= 0 || maxRows <= 0 {
		return max(maxCols, 1), max(maxRows, 1)
	}
	cols = maxCols
	rows = cols * height / width / 2
	if rows > maxRows {
		rows = maxRows
		cols = rows * 2 * width / height
	}
	return max(cols, 1), max(rows, 1)
}
