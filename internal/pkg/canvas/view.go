// Package canvas maps world coordinates onto a raster surface and back, and
// renders a polygon with its query point as a PNG.
package canvas

import (
	"math"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/geometry"
)

// DefaultPad is the margin in pixels kept around the scene.
const DefaultPad = 20

// View is the world-space window shown on the surface.
type View struct {
	MinX, MinY float64
	MaxX, MaxY float64
	Pad        float64
}

// ComputeView fits the vertices and the point. A zero-width or zero-height
// span is widened by one unit on each side.
func ComputeView(vertices domain.Polygon, point domain.Point) View {
	b, _ := geometry.BoundsOf(append(domain.Polygon{point}, vertices...)...)
	v := View{MinX: b.MinX, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MaxY, Pad: DefaultPad}
	if v.MinX == v.MaxX {
		v.MinX--
		v.MaxX++
	}
	if v.MinY == v.MaxY {
		v.MinY--
		v.MaxY++
	}
	return v
}

// Scale is the uniform world-to-pixel factor for a w x h surface.
func (v View) Scale(w, h float64) float64 {
	sx := (w - 2*v.Pad) / (v.MaxX - v.MinX)
	sy := (h - 2*v.Pad) / (v.MaxY - v.MinY)
	return math.Min(sx, sy)
}

// WorldToCanvas maps p to surface pixels. The y axis points down on the surface.
func (v View) WorldToCanvas(p domain.Point, w, h float64) domain.Point {
	s := v.Scale(w, h)
	return domain.Point{
		X: v.Pad + (p.X-v.MinX)*s,
		Y: h - (v.Pad + (p.Y-v.MinY)*s),
	}
}

// CanvasToWorld is the inverse of WorldToCanvas.
func (v View) CanvasToWorld(p domain.Point, w, h float64) domain.Point {
	s := v.Scale(w, h)
	return domain.Point{
		X: v.MinX + (p.X-v.Pad)/s,
		Y: v.MinY + (h-p.Y-v.Pad)/s,
	}
}

// Click converts a click at surface pixel (x, y) to a world point rounded to
// four decimals.
func Click(v View, x, y, w, h float64) domain.Point {
	p := v.CanvasToWorld(domain.Point{X: x, Y: y}, w, h)
	return domain.Point{X: round4(p.X), Y: round4(p.Y)}
}

func round4(f float64) float64 {
	return math.Round(f*1e4) / 1e4
}
