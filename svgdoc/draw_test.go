package svgdoc

import (
	"testing"

	"github.com/benoitkugler/svgdna/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"
)

// recorder stores the points it receives, and the painting parameters
type recorder struct {
	points  []geom.Point
	starts  int
	closed  int
	color   Pattern
	opacity float64
	options StrokeOptions
	winding bool
	draws   int

	drawWinding bool // winding rule in use at the last Draw
}

func (r *recorder) Clear() { r.points = r.points[:0] }

func (r *recorder) Start(a fixed.Point26_6) {
	r.starts++
	r.points = append(r.points, geom.FromFixed(a))
}

func (r *recorder) Line(b fixed.Point26_6) { r.points = append(r.points, geom.FromFixed(b)) }

func (r *recorder) QuadBezier(b, c fixed.Point26_6) {
	r.points = append(r.points, geom.FromFixed(c))
}

func (r *recorder) CubeBezier(b, c, d fixed.Point26_6) {
	r.points = append(r.points, geom.FromFixed(d))
}

func (r *recorder) Stop(closeLoop bool) {
	if closeLoop {
		r.closed++
	}
}

func (r *recorder) SetColor(color Pattern, opacity float64) {
	r.color, r.opacity = color, opacity
}

func (r *recorder) Draw() {
	r.draws++
	r.drawWinding = r.winding
}

func (r *recorder) SetWinding(useNonZeroWinding bool)      { r.winding = useNonZeroWinding }
func (r *recorder) SetStrokeOptions(options StrokeOptions) { r.options = options }

type recordDriver struct {
	filler, stroker recorder
	fills, strokes  int
}

func (d *recordDriver) SetupDrawers(willFill, willStroke bool) (f Filler, s Stroker) {
	if willFill {
		d.fills++
		f = &d.filler
	}
	if willStroke {
		d.strokes++
		s = &d.stroker
	}
	return f, s
}

func assertOnCircle(t *testing.T, points []geom.Point, center geom.Point, r float64) {
	t.Helper()
	require.NotEmpty(t, points)
	for _, p := range points {
		assert.InDelta(t, r, p.Dist(center), 0.05, "point %s", p)
	}
}

func TestDrawCircle(t *testing.T) {
	doc := NewDocument(100, 100)
	doc.Circle(nil, geom.Pt(10, 10), 5, Style{Fill: red})

	var d recordDriver
	doc.Draw(&d, 1)
	assert.Equal(t, 1, d.fills)
	assert.Equal(t, 0, d.strokes) // no stroke by default
	assertOnCircle(t, d.filler.points, geom.Pt(10, 10), 5)
	assert.Equal(t, red, d.filler.color)
	assert.Equal(t, 1., d.filler.opacity)
	assert.Equal(t, 1, d.filler.draws)
	assert.True(t, d.filler.winding)
}

func TestDrawInheritance(t *testing.T) {
	doc := NewDocument(100, 100)
	g := doc.Group(nil, Style{
		Fill:        None,
		Stroke:      red,
		StrokeWidth: 2,
		Opacity:     0.5,
		Transform:   geom.Identity.Translate(100, 0).Scale(3, 3),
	})
	doc.Circle(g, geom.Pt(0, 0), 1, Style{StrokeOpacity: 0.5, LineJoin: Round})

	var d recordDriver
	doc.Draw(&d, 0.5)
	assert.Equal(t, 0, d.fills)
	assert.Equal(t, 1, d.strokes)
	assertOnCircle(t, d.stroker.points, geom.Pt(100, 0), 3)
	assert.Equal(t, 0.125, d.stroker.opacity)
	assert.Equal(t, fixed.Int26_6(6*64), d.stroker.options.LineWidth)
	assert.Equal(t, Round, d.stroker.options.Join.LineJoin)
	assert.Equal(t, ButtCap, d.stroker.options.Join.LeadLineCap)
}

func TestDrawUse(t *testing.T) {
	doc := NewDocument(100, 100)
	ref, err := doc.Reference("dot", Style{})
	require.NoError(t, err)
	doc.Circle(&ref.Group, geom.Pt(0, 0), 2, Style{})

	// definitions are only drawn through use
	var d recordDriver
	doc.Draw(&d, 1)
	assert.Equal(t, 0, d.fills)

	_, err = doc.Use(nil, ref, 50, 40, Style{})
	require.NoError(t, err)
	doc.Draw(&d, 1)
	assert.Equal(t, 1, d.fills)
	assertOnCircle(t, d.filler.points, geom.Pt(50, 40), 2)
	assert.Equal(t, black, d.filler.color) // initial fill
}

func TestDrawPath(t *testing.T) {
	var p Path
	p.Move(0, 0)
	p.Arc(5, 5, 0, false, true, 10, 0)
	p.Close()
	p.Line(0, 10) // implicit start
	p.Quad(1, 1, 2, 2)
	p.Cubic(1, 1, 2, 2, 3, 3)

	doc := NewDocument(100, 100)
	doc.Path(nil, p, Style{EvenOdd: true})

	var d recordDriver
	doc.Draw(&d, 1)
	pts := d.filler.points
	require.NotEmpty(t, pts)
	assert.False(t, d.filler.drawWinding) // even-odd while filling
	assert.True(t, d.filler.winding)      // restored afterwards
	assert.Equal(t, 2, d.filler.starts)
	assert.Equal(t, 1, d.filler.closed)

	// the arc is a half circle ending exactly at (10, 0)
	arcEnd := -1
	for i, pt := range pts {
		if pt == geom.Pt(10, 0) {
			arcEnd = i
			break
		}
	}
	require.Greater(t, arcEnd, 0)
	assertOnCircle(t, pts[1:arcEnd+1], geom.Pt(5, 0), 5)

	assert.Equal(t, []geom.Point{geom.Pt(0, 0), geom.Pt(0, 10), geom.Pt(2, 2), geom.Pt(3, 3)}, pts[arcEnd+1:])
}

func TestDrawShapes(t *testing.T) {
	doc := NewDocument(100, 100)
	doc.Rect(nil, 10, 10, 20, 10, Style{})
	r := doc.Rect(nil, 0, 0, 20, 10, Style{})
	r.Rx = 2
	doc.Rect(nil, 0, 0, 0, 10, Style{}) // not drawn
	doc.Ellipse(nil, geom.Pt(0, 0), 4, 2, Style{})
	doc.Line(nil, geom.Line{P1: geom.Pt(0, 0), P2: geom.Pt(1, 1)}, Style{Stroke: red})
	doc.Polyline(nil, []geom.Point{geom.Pt(0, 0)}, Style{}) // not drawn

	var d recordDriver
	doc.Draw(&d, 1)
	assert.Equal(t, 6, d.fills)
	assert.Equal(t, 1, d.strokes)
	assert.Equal(t, []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1)}, d.stroker.points)
}
