package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/usecases"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/canvas"
)

var renderOpts struct {
	point  pointFlags
	out    string
	width  int
	height int
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Draw the polygon and query point to a PNG file",
	RunE: func(cmd *cobra.Command, args []string) error {
		point, err := renderOpts.point.resolve()
		if err != nil {
			return err
		}
		text, err := readVertexText(cmd)
		if err != nil {
			return err
		}

		inspector := usecases.NewInspectorService(nil)
		result, vertices, err := inspector.Inspect(cmd.Context(), usecases.Query{Source: usecases.SourceCLI}, text, point)
		if err != nil {
			return err
		}

		f, err := os.Create(renderOpts.out)
		if err != nil {
			return fmt.Errorf("create %s: %w", renderOpts.out, err)
		}
		defer f.Close()

		w := bufio.NewWriter(f)
		scene := canvas.Scene{Vertices: vertices, Point: point, Status: result.Status}
		if err := canvas.Render(w, scene, canvas.RenderOptions{Width: renderOpts.width, Height: renderOpts.height}); err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("write %s: %w", renderOpts.out, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", result.Status, renderOpts.out)
		return nil
	},
}

func init() {
	renderOpts.point.register(renderCmd)
	renderCmd.Flags().StringVarP(&renderOpts.out, "out", "o", "polygon.png", "Output PNG path")
	renderCmd.Flags().IntVar(&renderOpts.width, "width", canvas.DefaultWidth, "Image width in pixels")
	renderCmd.Flags().IntVar(&renderOpts.height, "height", canvas.DefaultHeight, "Image height in pixels")
}
