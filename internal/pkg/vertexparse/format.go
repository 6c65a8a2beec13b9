package vertexparse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
)

// Format writes one "x y" line per vertex. Numbers use the shortest decimal
// form that parses back to the same float64, never exponent notation, so
// Parse(Format(poly)) reproduces poly exactly.
func Format(poly domain.Polygon) string {
	var b strings.Builder
	for i, p := range poly {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(FormatCoordinate(p.X))
		b.WriteByte(' ')
		b.WriteString(FormatCoordinate(p.Y))
	}
	return b.String()
}

// FormatCoordinate renders v without an exponent.
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatPoint renders p for display with two decimals, e.g. "(2.50, 2.50)".
func FormatPoint(p domain.Point) string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}
