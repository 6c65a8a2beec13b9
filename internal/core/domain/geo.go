package domain

import (
	"fmt"
	"math"
)

// Point is a planar coordinate. Compare with ApproxEqual, never ==.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ApproxEqual reports whether p and q differ by at most eps on both axes.
func (p Point) ApproxEqual(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

// Validate rejects NaN and infinite coordinates.
func (p Point) Validate() error {
	if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
		return fmt.Errorf("%w: (%v, %v)", ErrNonFinite, p.X, p.Y)
	}
	return nil
}

// Polygon is an ordered vertex list. The last vertex connects back to the first.
type Polygon []Point

// Validate checks every vertex for finite coordinates.
func (poly Polygon) Validate() error {
	for i, v := range poly {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("vertex %d: %w", i, err)
		}
	}
	return nil
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}
