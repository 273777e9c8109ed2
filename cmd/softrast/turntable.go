package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taigrr/softrast/pkg/render"
	"github.com/taigrr/softrast/pkg/turntable"
)

func newTurntableCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "turntable [flags] [model]",
		Short: "Render frames orbiting the camera around the model",
		Long: `turntable eases the camera once around the vertical axis through the
scene center and writes one image per frame. Output names get a frame
number before the extension unless they contain a printf verb.`,
		Example: `  softrast turntable --frames 60 --out spin.png head.obj
  softrast turntable --out 'frames/%04d.png' --window head.glb`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTurntable(cmd, opts, args)
		},
	}
	cmd.Flags().IntVar(&opts.frames, "frames", 0, "number of frames (default from scene, 36)")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "frames rendered in parallel (0 = one per CPU)")
	return cmd
}

func runTurntable(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := opts.sceneConfig(cmd, args)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("frames") {
		cfg.Frames = opts.frames
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	mesh, mat, err := loadModel(cfg)
	if err != nil {
		return err
	}

	drawFrame := func(scene render.Scene) *render.Framebuffer {
		return draw(cfg, scene, mesh, mat, opts.axes)
	}
	frames, err := turntable.RenderSequence(cmd.Context(), turntable.Orbit(cfg.Render, cfg.Frames), drawFrame, opts.jobs)
	if err != nil {
		return err
	}

	paths, err := turntable.SaveSequence(frames, cfg.Output)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d frames (%s ... %s)\n", len(paths), paths[0], paths[len(paths)-1])

	return present(cmd, opts, frames)
}
