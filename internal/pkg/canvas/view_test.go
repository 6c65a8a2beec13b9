package canvas_test

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/canvas"
)

var hexagon = domain.Polygon{
	{X: 0, Y: 0}, {X: 6, Y: 0}, {X: 8, Y: 3},
	{X: 6, Y: 6}, {X: 0, Y: 6}, {X: -2, Y: 3},
}

func TestComputeView(t *testing.T) {
	v := canvas.ComputeView(hexagon, domain.Point{X: 2.5, Y: 2.5})
	assert.Equal(t, canvas.View{MinX: -2, MinY: 0, MaxX: 8, MaxY: 6, Pad: canvas.DefaultPad}, v)

	v = canvas.ComputeView(hexagon, domain.Point{X: 20, Y: -4})
	assert.Equal(t, 20.0, v.MaxX)
	assert.Equal(t, -4.0, v.MinY)
}

func TestComputeView_Degenerate(t *testing.T) {
	v := canvas.ComputeView(nil, domain.Point{X: 3, Y: 4})
	assert.Equal(t, canvas.View{MinX: 2, MinY: 3, MaxX: 4, MaxY: 5, Pad: canvas.DefaultPad}, v)

	// Vertical segment: only the x span collapses.
	v = canvas.ComputeView(domain.Polygon{{X: 1, Y: 0}, {X: 1, Y: 5}}, domain.Point{X: 1, Y: 2})
	assert.Equal(t, 0.0, v.MinX)
	assert.Equal(t, 2.0, v.MaxX)
	assert.Equal(t, 0.0, v.MinY)
	assert.Equal(t, 5.0, v.MaxY)
}

func TestWorldToCanvas(t *testing.T) {
	v := canvas.ComputeView(hexagon, domain.Point{X: 2.5, Y: 2.5})
	const w, h = 700.0, 420.0

	// sx = 660/10 = 66, sy = 380/6 = 63.33; the smaller wins.
	s := v.Scale(w, h)
	assert.InDelta(t, 380.0/6, s, 1e-12)

	origin := v.WorldToCanvas(domain.Point{X: -2, Y: 0}, w, h)
	assert.InDelta(t, 20, origin.X, 1e-9)
	assert.InDelta(t, 400, origin.Y, 1e-9)

	top := v.WorldToCanvas(domain.Point{X: -2, Y: 6}, w, h)
	assert.InDelta(t, 20, top.Y, 1e-9)
}

func TestCanvasToWorld_InvertsWorldToCanvas(t *testing.T) {
	v := canvas.ComputeView(hexagon, domain.Point{X: 2.5, Y: 2.5})
	for _, p := range append(domain.Polygon{{X: 2.5, Y: 2.5}, {X: -1.25, Y: 4.75}}, hexagon...) {
		c := v.WorldToCanvas(p, 700, 420)
		back := v.CanvasToWorld(c, 700, 420)
		assert.True(t, p.ApproxEqual(back, 1e-9), "%v -> %v -> %v", p, c, back)
	}
}

func TestClick_RoundsToFourDecimals(t *testing.T) {
	v := canvas.ComputeView(hexagon, domain.Point{X: 2.5, Y: 2.5})
	p := canvas.Click(v, 123, 201, 700, 420)

	raw := v.CanvasToWorld(domain.Point{X: 123, Y: 201}, 700, 420)
	assert.InDelta(t, raw.X, p.X, 0.00005)
	assert.InDelta(t, raw.Y, p.Y, 0.00005)
	assert.InDelta(t, math.Round(p.X*1e4), p.X*1e4, 1e-6)
	assert.InDelta(t, math.Round(p.Y*1e4), p.Y*1e4, 1e-6)
}

func TestRender_PNG(t *testing.T) {
	var buf bytes.Buffer
	err := canvas.Render(&buf, canvas.Scene{
		Vertices: hexagon,
		Point:    domain.Point{X: 2.5, Y: 2.5},
		Status:   domain.StatusInside,
	}, canvas.RenderOptions{})
	require.NoError(t, err)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, canvas.DefaultWidth, img.Bounds().Dx())
	assert.Equal(t, canvas.DefaultHeight, img.Bounds().Dy())
}

func TestRender_CustomSizeAndNoPolygon(t *testing.T) {
	var buf bytes.Buffer
	err := canvas.Render(&buf, canvas.Scene{Point: domain.Point{X: 1, Y: 1}}, canvas.RenderOptions{Width: 200, Height: 100})
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Width)
	assert.Equal(t, 100, cfg.Height)
}
