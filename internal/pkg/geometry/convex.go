package geometry

import "github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"

func result(status domain.Status, message string) domain.Classification {
	return domain.Classification{Status: status, Message: message}
}

// Locator answers point queries against one convex polygon. The vertices are
// normalized once, so a Locator is cheap to reuse for many points. It holds no
// mutable state and is safe for concurrent use.
type Locator struct {
	vertices domain.Polygon
}

// NewLocator normalizes poly to counter-clockwise order. The caller's slice is
// not modified.
func NewLocator(poly domain.Polygon) *Locator {
	return &Locator{vertices: EnsureCCW(poly)}
}

// Vertices returns the normalized vertex order.
func (l *Locator) Vertices() domain.Polygon {
	return l.vertices
}

// Locate classifies p using a binary search over the triangle fan rooted at
// vertex 0, in O(log n).
func (l *Locator) Locate(p domain.Point) domain.Classification {
	v := l.vertices
	n := len(v)
	if n < 3 {
		return result(domain.StatusOutside, domain.MsgTooFewVertices)
	}
	v0 := v[0]

	c1 := Cross(v0, v[1], p)
	c2 := Cross(v0, v[n-1], p)
	if c1 < -EPS || c2 > EPS {
		return result(domain.StatusOutside, domain.MsgOutsideWedge)
	}

	if OnSegment(v0, v[1], p) || OnSegment(v0, v[n-1], p) {
		return result(domain.StatusOnEdge, domain.MsgOnEdge)
	}

	// Invariant: Cross(v0, v[lo], p) >= 0.
	lo, hi := 1, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if Cross(v0, v[mid], p) >= 0 {
			lo = mid
		} else {
			hi = mid
		}
	}

	a, b, c := v0, v[lo], v[hi]
	inside := Cross(a, b, p) >= -EPS && Cross(b, c, p) >= -EPS && Cross(c, a, p) >= -EPS
	if !inside {
		return result(domain.StatusOutside, domain.MsgOutside)
	}

	// Only b-c and the two outermost spokes are real polygon edges; inner
	// spokes are diagonals.
	if OnSegment(b, c, p) {
		return result(domain.StatusOnEdge, domain.MsgOnEdge)
	}
	if lo == 1 && OnSegment(a, b, p) {
		return result(domain.StatusOnEdge, domain.MsgOnEdge)
	}
	if hi == n-1 && OnSegment(a, c, p) {
		return result(domain.StatusOnEdge, domain.MsgOnEdge)
	}

	return result(domain.StatusInside, domain.MsgInside)
}

// Classify locates p against a convex polygon given in either winding.
// Fewer than three vertices yield OUTSIDE with an explanatory message.
func Classify(vertices domain.Polygon, p domain.Point) domain.Classification {
	if len(vertices) < 3 {
		return result(domain.StatusOutside, domain.MsgTooFewVertices)
	}
	return NewLocator(vertices).Locate(p)
}
