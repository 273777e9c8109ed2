// softrast - software 3D renderer
// Render OBJ and GLB models to image files, the terminal, or a window.
//
// Usage:
//
//	softrast [flags] <model.obj|model.glb>
//	softrast turntable [flags] <model>
//
// Textures next to an OBJ model are picked up by name: head.obj uses
// head_diffuse.png, head_nm.png and head_spec.png when present.
package main

import (
	"context"
	"log/slog"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/softrast/pkg/render"
)

var version = "dev"

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "softrast [flags] [model]",
		Short: "Render a 3D model with a software rasterizer",
		Long: `softrast draws OBJ and GLB models with Gouraud shading, optional
diffuse and tangent-space normal maps, and a 16-bit depth buffer.
Scenes may be described in a Lua file with --scene.`,
		Example: `  softrast obj/african_head.obj
  softrast --out head.jpg --width 1024 --height 1024 head.obj
  softrast --scene scene.lua --preview`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts, args)
		},
	}

	opts.bindScene(cmd)
	opts.bindOutputs(cmd)
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline statistics to stderr")

	cmd.AddCommand(newTurntableCmd(opts))
	return cmd
}
