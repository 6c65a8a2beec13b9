package geometry

import "github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"

// Edge is a pair of consecutive vertex indices. The last edge wraps to 0.
type Edge struct {
	From, To int
}

// Edges returns the n closing edges (i, (i+1) mod n) of a polygon with n vertices.
func Edges(n int) []Edge {
	edges := make([]Edge, n)
	for i := 0; i < n; i++ {
		edges[i] = Edge{From: i, To: (i + 1) % n}
	}
	return edges
}

// SignedArea returns the shoelace area. Positive for counter-clockwise
// winding, negative for clockwise, zero for degenerate input.
func SignedArea(poly domain.Polygon) float64 {
	var s float64
	for _, e := range Edges(len(poly)) {
		a, b := poly[e.From], poly[e.To]
		s += a.X*b.Y - b.X*a.Y
	}
	return s / 2
}

// EnsureCCW returns poly in counter-clockwise order. A clockwise polygon is
// copied and reversed; anything else is returned as is.
func EnsureCCW(poly domain.Polygon) domain.Polygon {
	if len(poly) < 3 {
		return poly
	}
	if SignedArea(poly) >= 0 {
		return poly
	}
	out := make(domain.Polygon, len(poly))
	for i, v := range poly {
		out[len(poly)-1-i] = v
	}
	return out
}

// BoundsOf returns the bounding box of the given points. ok is false when
// pts is empty.
func BoundsOf(pts ...domain.Point) (b domain.Bounds, ok bool) {
	if len(pts) == 0 {
		return b, false
	}
	b = domain.Bounds{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		b.MinX = min(b.MinX, p.X)
		b.MinY = min(b.MinY, p.Y)
		b.MaxX = max(b.MaxX, p.X)
		b.MaxY = max(b.MaxY, p.Y)
	}
	return b, true
}
