package canvas

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
)

// Default surface size.
const (
	DefaultWidth  = 700
	DefaultHeight = 420
	gridStep      = 40
)

// Scene is everything drawn on one frame.
type Scene struct {
	Vertices domain.Polygon
	Point    domain.Point
	Status   domain.Status // colours the point; empty draws the neutral colour
}

// RenderOptions controls the output surface.
type RenderOptions struct {
	Width  int
	Height int
}

func (o RenderOptions) withDefaults() RenderOptions {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	return o
}

var pointColors = map[domain.Status]string{
	domain.StatusInside:  "#146c2e",
	domain.StatusOnEdge:  "#7a5a00",
	domain.StatusOutside: "#8a1c1c",
}

// Render draws the scene and writes it to w as PNG.
func Render(w io.Writer, scene Scene, opts RenderOptions) error {
	opts = opts.withDefaults()
	width, height := float64(opts.Width), float64(opts.Height)
	view := ComputeView(scene.Vertices, scene.Point)

	dc := gg.NewContext(opts.Width, opts.Height)
	defer dc.Close()

	dc.ClearWithColor(gg.Hex("#f7f8fb"))

	dc.SetRGBA(0, 0, 0, 0.06)
	dc.SetLineWidth(1)
	for x := 0.0; x <= width; x += gridStep {
		dc.DrawLine(x, 0, x, height)
	}
	for y := 0.0; y <= height; y += gridStep {
		dc.DrawLine(0, y, width, y)
	}
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("grid: %w", err)
	}

	if len(scene.Vertices) >= 2 {
		for i, v := range scene.Vertices {
			c := view.WorldToCanvas(v, width, height)
			if i == 0 {
				dc.MoveTo(c.X, c.Y)
			} else {
				dc.LineTo(c.X, c.Y)
			}
		}
		dc.ClosePath()
		dc.SetRGBA(91.0/255, 108.0/255, 1, 0.10)
		if err := dc.FillPreserve(); err != nil {
			return fmt.Errorf("polygon fill: %w", err)
		}
		dc.SetHexColor("#5b6cff")
		dc.SetLineWidth(2)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("polygon stroke: %w", err)
		}

		dc.SetHexColor("#1d2bff")
		for _, v := range scene.Vertices {
			c := view.WorldToCanvas(v, width, height)
			dc.DrawCircle(c.X, c.Y, 4)
			if err := dc.Fill(); err != nil {
				return fmt.Errorf("vertex: %w", err)
			}
		}
	}

	c := view.WorldToCanvas(scene.Point, width, height)
	color, ok := pointColors[scene.Status]
	if !ok {
		color = "#ff2d55"
	}
	dc.DrawCircle(c.X, c.Y, 6)
	dc.SetHexColor(color)
	if err := dc.FillPreserve(); err != nil {
		return fmt.Errorf("point fill: %w", err)
	}
	dc.SetHexColor("#ffffff")
	dc.SetLineWidth(2)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("point stroke: %w", err)
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
