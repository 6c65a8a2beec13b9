package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/geometry"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/vertexparse"
)

var formatCCW bool

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Validate vertex text and print it in canonical \"x y\" form",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readVertexText(cmd)
		if err != nil {
			return err
		}
		vertices, err := vertexparse.Parse(text)
		if err != nil {
			return err
		}
		if formatCCW {
			vertices = geometry.EnsureCCW(vertices)
		}
		fmt.Fprintln(cmd.OutOrStdout(), vertexparse.Format(vertices))
		return nil
	},
}

func init() {
	formatCmd.Flags().BoolVar(&formatCCW, "ccw", false, "Reorder vertices counter-clockwise")
}
