package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taigrr/softrast/pkg/render"
)

func runRender(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := opts.sceneConfig(cmd, args)
	if err != nil {
		return err
	}
	mesh, mat, err := loadModel(cfg)
	if err != nil {
		return err
	}

	fb := draw(cfg, cfg.Render, mesh, mat, opts.axes)
	if err := fb.Save(cfg.Output); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d, %d triangles)\n",
		cfg.Output, fb.Width, fb.Height, mesh.TriangleCount())

	return present(cmd, opts, []*render.Framebuffer{fb})
}

// present sends finished frames to the optional outputs: terminal preview,
// clipboard, then window. The window blocks until closed.
func present(cmd *cobra.Command, opts *options, frames []*render.Framebuffer) error {
	if len(frames) == 0 {
		return nil
	}
	if opts.preview {
		if err := preview(cmd.OutOrStdout(), frames[0]); err != nil {
			return err
		}
	}
	if opts.clipboard {
		if err := copyToClipboard(frames[0]); err != nil {
			return err
		}
	}
	if opts.window {
		return showWindow(cmd.Context(), "softrast", frames)
	}
	return nil
}
