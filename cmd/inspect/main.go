package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/logging"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/vertexparse"
)

var opts struct {
	VerticesFile string
	LogLevel     string
}

var mainCmd = &cobra.Command{
	Use:           "inspect",
	Short:         "Locate points against convex polygons",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(opts.LogLevel, "text")
	},
}

func init() {
	mainCmd.AddCommand(
		classifyCmd,
		renderCmd,
		formatCmd,
		batchCmd,
	)

	mainCmd.PersistentFlags().StringVarP(&opts.VerticesFile, "vertices-file", "f", "-", "File with one \"x y\" vertex per line; - reads stdin")
	mainCmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mainCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// readVertexText returns the raw vertex text named by --vertices-file.
func readVertexText(cmd *cobra.Command) (string, error) {
	if opts.VerticesFile == "" || opts.VerticesFile == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(opts.VerticesFile)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", opts.VerticesFile, err)
	}
	return string(data), nil
}

// pointFlags is shared by commands that take a query point either as
// --point "x y" or as --x/--y.
type pointFlags struct {
	point string
	x, y  string
}

func (p *pointFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&p.point, "point", "p", "", "Query point as \"x y\" or \"x,y\"")
	cmd.Flags().StringVar(&p.x, "x", "", "Query point X")
	cmd.Flags().StringVar(&p.y, "y", "", "Query point Y")
}

func (p *pointFlags) resolve() (domain.Point, error) {
	if strings.TrimSpace(p.point) != "" {
		return vertexparse.ParsePoint(p.point)
	}
	if p.x == "" || p.y == "" {
		return domain.Point{}, fmt.Errorf("a point is required: use --point or both --x and --y")
	}
	x, err := vertexparse.ParseCoordinate(p.x)
	if err != nil {
		return domain.Point{}, fmt.Errorf("x: %w", err)
	}
	y, err := vertexparse.ParseCoordinate(p.y)
	if err != nil {
		return domain.Point{}, fmt.Errorf("y: %w", err)
	}
	return domain.Point{X: x, Y: y}, nil
}
