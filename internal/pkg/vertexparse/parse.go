// Package vertexparse converts line-oriented vertex text ("x y" or "x,y",
// one vertex per line) into polygons and back.
package vertexparse

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
)

var (
	lineSplit = regexp.MustCompile(`\r?\n`)
	number    = `[+-]?(?:\d+(?:\.\d*)?|\.\d+)`
	pairLine  = regexp.MustCompile(`^(` + number + `)[ ,](` + number + `)$`)
	oneNumber = regexp.MustCompile(`^` + number + `$`)
)

// ParseError reports the first malformed line of vertex text.
type ParseError struct {
	Line int    // 1-based, blank lines included
	Text string // trimmed line content
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: invalid vertex %q (expected \"x y\" or \"x,y\")", e.Line, e.Text)
}

// Parse reads one vertex per line. Blank lines are skipped but still counted
// for error positions. Parsing stops at the first malformed line.
func Parse(text string) (domain.Polygon, error) {
	var poly domain.Polygon
	for i, raw := range lineSplit.Split(text, -1) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		p, ok := parsePair(line)
		if !ok {
			return nil, &ParseError{Line: i + 1, Text: line}
		}
		poly = append(poly, p)
	}
	return poly, nil
}

// ParsePoint parses a single "x y" or "x,y" pair.
func ParsePoint(text string) (domain.Point, error) {
	line := strings.TrimSpace(text)
	p, ok := parsePair(line)
	if !ok {
		return domain.Point{}, &ParseError{Line: 1, Text: line}
	}
	return p, nil
}

// ParseCoordinate parses one signed decimal number.
func ParseCoordinate(text string) (float64, error) {
	s := strings.TrimSpace(text)
	if !oneNumber.MatchString(s) {
		return 0, fmt.Errorf("invalid coordinate %q", s)
	}
	v, ok := finite(s)
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrNonFinite, s)
	}
	return v, nil
}

func parsePair(line string) (domain.Point, bool) {
	m := pairLine.FindStringSubmatch(line)
	if m == nil {
		return domain.Point{}, false
	}
	x, okX := finite(m[1])
	y, okY := finite(m[2])
	if !okX || !okY {
		return domain.Point{}, false
	}
	return domain.Point{X: x, Y: y}, true
}

// finite parses s, rejecting values that overflow to infinity.
func finite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
