// Package geometry locates points relative to convex polygons.
//
// All comparisons against zero use the absolute tolerance EPS. Coordinates of
// very large or very small magnitude are not rescaled, so the tolerance is
// only meaningful for inputs of roughly unit scale.
package geometry

import (
	"math"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
)

// EPS is the absolute tolerance applied to cross products.
const EPS = 1e-9

// Cross returns the z component of (b-a) x (c-a). Positive when c is left of
// the directed line a->b, negative when right, zero when collinear.
func Cross(a, b, c domain.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// Dot returns (b-a) . (c-a).
func Dot(a, b, c domain.Point) float64 {
	return (b.X-a.X)*(c.X-a.X) + (b.Y-a.Y)*(c.Y-a.Y)
}

// OnSegment reports whether p lies on the closed segment a-b.
func OnSegment(a, b, p domain.Point) bool {
	if math.Abs(Cross(a, b, p)) > EPS {
		return false
	}
	// p->a and p->b must not point the same way.
	return Dot(p, a, b) <= EPS
}
