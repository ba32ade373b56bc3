package mandala

import (
	"math"
	"testing"

	"github.com/benoitkugler/svgdna/geom"
	"github.com/benoitkugler/svgdna/svgdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"
)

// endPoints returns the end point of each segment of the path
func endPoints(p svgdoc.Path) []geom.Point {
	var out []geom.Point
	for _, op := range p {
		switch op := op.(type) {
		case svgdoc.MoveTo:
			out = append(out, geom.FromFixed(fixed.Point26_6(op)))
		case svgdoc.LineTo:
			out = append(out, geom.FromFixed(fixed.Point26_6(op)))
		case svgdoc.CubicTo:
			out = append(out, geom.FromFixed(op[2]))
		}
	}
	return out
}

func maxRadius(points []geom.Point, center geom.Point) float64 {
	var out float64
	for _, p := range points {
		out = math.Max(out, p.Dist(center))
	}
	return out
}

func TestPetal(t *testing.T) {
	center := geom.Pt(10, 20)
	p := petal(center, 4, 100, 0.25, 0)
	require.IsType(t, svgdoc.Close{}, p[len(p)-1])
	points := endPoints(p)
	assert.Len(t, points, 4*lotusSamples+1)
	assert.InDelta(t, 0, points[0].Dist(points[len(points)-1]), 0.05) // closed

	for _, pt := range points {
		d := pt.Sub(center)
		theta := math.Atan2(d.Y, d.X)
		assert.InDelta(t, 100*(1+0.25*math.Sin(4*theta)), d.Norm(), 0.05)
	}
	assert.InDelta(t, 125, maxRadius(points, center), 0.05)
}

func TestLotus(t *testing.T) {
	m := New(Options{})
	doc := svgdoc.NewDocument(CanvasSize, CanvasSize)
	g := m.Lotus(doc, nil)
	assert.Equal(t, "lotusMandala", g.ID)

	require.Len(t, g.Children, 13)
	center := geom.Pt(500, 500)
	prev := math.Inf(1)
	for _, child := range g.Children {
		path, ok := child.(*svgdoc.PathElement)
		require.True(t, ok)
		assert.IsType(t, svgdoc.PlainColor{}, path.Fill)

		points := endPoints(path.Path)
		assert.Len(t, points, 9*lotusSamples+1)
		r := maxRadius(points, center)
		assert.LessOrEqual(t, r, CanvasSize/2.+0.05)
		assert.Less(t, r, prev) // outer rings come first
		prev = r
	}

	// same cursor, same rings
	again := m.Lotus(svgdoc.NewDocument(CanvasSize, CanvasSize), nil)
	assert.Equal(t, g.Children, again.Children)
}

func TestWave(t *testing.T) {
	origin := geom.Pt(50, 50)
	p := Wave(origin, 6, 4, 40, 20)
	require.NotNil(t, p)
	require.IsType(t, svgdoc.Close{}, p[len(p)-1])
	points := endPoints(p)
	require.Len(t, points, 24)

	for _, pt := range points {
		assert.GreaterOrEqual(t, pt.Dist(origin), 20-0.05)
		assert.LessOrEqual(t, pt.Dist(origin), 40+0.05)
	}
	assert.InDelta(t, 30, points[0].Dist(origin), 0.05)
	assert.InDelta(t, 40, maxRadius(points, origin), 0.05)

	assert.Nil(t, Wave(origin, 0, 10, 1, 2))
	assert.Nil(t, Wave(origin, 3, 0, 1, 2))
}
