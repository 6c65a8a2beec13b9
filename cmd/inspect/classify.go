package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/usecases"
)

var classifyPoint pointFlags

var classifyCmd = &cobra.Command{
	Use:     "classify",
	Short:   "Report whether a point is inside, on the edge of, or outside a polygon",
	Example: "  printf '0 0\\n4 0\\n4 4\\n0 4\\n' | inspect classify --point '2 2'",
	RunE: func(cmd *cobra.Command, args []string) error {
		point, err := classifyPoint.resolve()
		if err != nil {
			return err
		}
		text, err := readVertexText(cmd)
		if err != nil {
			return err
		}

		inspector := usecases.NewInspectorService(nil)
		result, _, err := inspector.Inspect(cmd.Context(), usecases.Query{Source: usecases.SourceCLI}, text, point)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", result.Status, result.Status.Label(), result.Message)
		return nil
	},
}

func init() {
	classifyPoint.register(classifyCmd)
}
