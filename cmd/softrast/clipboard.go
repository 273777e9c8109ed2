//go:build !headless

package main

import (
	"bytes"
	"fmt"

	"github.com/taigrr/softrast/pkg/render"
	"golang.design/x/clipboard"
)

// copyToClipboard places fb on the system clipboard as a PNG image.
func copyToClipboard(fb *render.Framebuffer) error {
	if err := clipboard.Init(); err != nil {
		return fmt.Errorf("clipboard unavailable: %w", err)
	}
	var buf bytes.Buffer
	if err := fb.Encode(&buf, "png"); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	render.Logger().Debug("copied frame to clipboard", "bytes", buf.Len())
	return nil
}
