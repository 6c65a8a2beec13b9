package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.temporal.io/sdk/client"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/config"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/vertexparse"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/workflows"
)

var batchOpts struct {
	polygonID  string
	pointsFile string
	chunkSize  int
	wait       bool
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Classify a file of points against a saved polygon on the batch worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		if batchOpts.polygonID == "" {
			return fmt.Errorf("--polygon is required")
		}
		points, err := readPoints(batchOpts.pointsFile)
		if err != nil {
			return err
		}

		cfg, err := config.Load("inspector-cli")
		if err != nil {
			return err
		}
		c, err := client.Dial(client.Options{
			HostPort:  cfg.Temporal.HostPort,
			Namespace: cfg.Temporal.Namespace,
			Logger:    slog.Default(),
		})
		if err != nil {
			return fmt.Errorf("temporal client: %w", err)
		}
		defer c.Close()

		run, err := workflows.StartBatchClassify(cmd.Context(), c, cfg.Temporal.TaskQueue, workflows.BatchClassifyInput{
			PolygonID: batchOpts.polygonID,
			Points:    points,
			ChunkSize: batchOpts.chunkSize,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !batchOpts.wait {
			fmt.Fprintf(out, "started %s (run %s)\n", run.GetID(), run.GetRunID())
			return nil
		}

		var report domain.BatchReport
		if err := run.Get(cmd.Context(), &report); err != nil {
			return fmt.Errorf("batch %s: %w", run.GetID(), err)
		}
		fmt.Fprintf(out, "inside=%d on_edge=%d outside=%d\n", report.Inside, report.OnEdge, report.Outside)
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchOpts.polygonID, "polygon", "", "Saved polygon ID")
	batchCmd.Flags().StringVar(&batchOpts.pointsFile, "points-file", "", "File with one \"x y\" point per line")
	batchCmd.Flags().IntVar(&batchOpts.chunkSize, "chunk", workflows.DefaultChunkSize, "Points per activity")
	batchCmd.Flags().BoolVar(&batchOpts.wait, "wait", false, "Wait for the report")
	_ = batchCmd.MarkFlagRequired("points-file")
}

// readPoints loads query points, one per line. Blank lines are skipped.
func readPoints(path string) ([]domain.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var points []domain.Point
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		p, err := vertexparse.ParsePoint(text)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		points = append(points, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%s: no points", path)
	}
	return points, nil
}
