package svgdoc

import (
	"errors"
	"testing"

	"github.com/benoitkugler/svgdna/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"
)

func pt(x, y float64) fixed.Point26_6 { return geom.ToFixedP(x, y) }

func TestPathBuilder(t *testing.T) {
	var p Path
	p.Move(1, 2)
	p.LineRel(1, 1)
	p.Horizontal(5)
	p.VerticalRel(-3)
	p.Close()
	p.LineRel(1, 0) // starts from the sub path start
	p.Vertical(7)

	assert.Equal(t, Path{
		MoveTo(pt(1, 2)),
		LineTo(pt(2, 3)),
		LineTo(pt(5, 3)),
		LineTo(pt(5, 0)),
		Close{},
		LineTo(pt(2, 2)),
		LineTo(pt(2, 7)),
	}, p)
	assert.Equal(t, geom.Pt(2, 7), p.CurrentPoint())

	p.Reset()
	assert.Empty(t, p)
	assert.Equal(t, geom.Pt(0, 0), p.CurrentPoint())
}

func TestSmoothCurves(t *testing.T) {
	var p Path
	p.Move(0, 0)
	p.Cubic(1, 1, 2, 1, 3, 0)
	p.SmoothCubic(5, 1, 6, 0)
	assert.Equal(t, CubicTo{pt(4, -1), pt(5, 1), pt(6, 0)}, p[2])

	// no previous cubic: the control point is the current point
	p.Line(10, 0)
	p.SmoothCubicRel(1, 1, 2, 0)
	assert.Equal(t, CubicTo{pt(10, 0), pt(11, 1), pt(12, 0)}, p[4])

	var q Path
	q.Move(0, 0)
	q.Quad(1, 2, 2, 0)
	q.SmoothQuad(4, 0)
	q.SmoothQuadRel(2, 0)
	assert.Equal(t, QuadTo{pt(3, -2), pt(4, 0)}, q[2])
	assert.Equal(t, QuadTo{pt(5, 2), pt(6, 0)}, q[3])
}

func TestArcDegenerate(t *testing.T) {
	var p Path
	p.Move(0, 0)
	p.Arc(0, 5, 0, false, true, 10, 0)
	p.ArcRel(-5, 5, 30, true, false, 0, 10)
	assert.Equal(t, LineTo(pt(10, 0)), p[1])
	assert.Equal(t, ArcTo{Rx: 5, Ry: 5, Rotation: 30, LargeArc: true, Sweep: false, End: pt(10, 10)}, p[2])
}

func TestToSVGPath(t *testing.T) {
	var p Path
	p.Move(1, 2)
	p.Line(3, 4.5)
	p.Quad(0, 0, 1, 1)
	p.Cubic(0, 0, 1, 1, 2, 2)
	p.Arc(5, 5, 0, true, false, 0, 0)
	p.Close()
	assert.Equal(t, "M1.000,2.000 L3.000,4.500 Q0.000,0.000,1.000,1.000 "+
		"C0.000,0.000,1.000,1.000,2.000,2.000 A5.000,5.000 0.000 1,0 0.000,0.000 Z", p.ToSVGPath())
	assert.Equal(t, p.ToSVGPath(), p.String())
}

func TestParsePath(t *testing.T) {
	for _, test := range []struct {
		d   string
		exp Path
	}{
		{"M10 10 h5 v5 H0 z m1,1 l-1-1", Path{
			MoveTo(pt(10, 10)), LineTo(pt(15, 10)), LineTo(pt(15, 15)), LineTo(pt(0, 15)), Close{},
			MoveTo(pt(11, 11)), LineTo(pt(10, 10)),
		}},
		{"M0,0L.5.5", Path{MoveTo(pt(0, 0)), LineTo(pt(0.5, 0.5))}},
		{"M1e1,0 2 2 3 3", Path{MoveTo(pt(10, 0)), LineTo(pt(2, 2)), LineTo(pt(3, 3))}},
		{"m1 1 1 1", Path{MoveTo(pt(1, 1)), LineTo(pt(2, 2))}},
		{"M0 0a5 5 0 1010 0", Path{MoveTo(pt(0, 0)), ArcTo{Rx: 5, Ry: 5, LargeArc: true, End: pt(10, 0)}}},
		{"M0 0 C1 1 2 1 3 0 S5 1 6 0", Path{
			MoveTo(pt(0, 0)), CubicTo{pt(1, 1), pt(2, 1), pt(3, 0)}, CubicTo{pt(4, -1), pt(5, 1), pt(6, 0)},
		}},
		{"M0 0 q1 2 2 0 t2 0", Path{
			MoveTo(pt(0, 0)), QuadTo{pt(1, 2), pt(2, 0)}, QuadTo{pt(3, -2), pt(4, 0)},
		}},
		{"", nil},
	} {
		got, err := ParsePath(test.d)
		require.NoError(t, err, test.d)
		assert.Equal(t, test.exp, got, test.d)
	}
}

func TestParsePathInvalid(t *testing.T) {
	for _, d := range []string{"L1 1", "M0 0 X", "M0", "M0 0 A1 1 0 2 0 1 1", "M0 0 L1 e"} {
		_, err := ParsePath(d)
		assert.Error(t, err, d)
	}
	_, err := ParsePath("M 0 0 K")
	assert.True(t, errors.Is(err, errCommandUnknown))
}

func TestPathRoundTrip(t *testing.T) {
	var p Path
	p.Move(0.078125, -3.5)
	p.Cubic(1, 1, 2, 1, 3, 0)
	p.Quad(1.25, 2, 2, 0)
	p.Arc(5, 4, 12.5, false, true, 7, 8)
	p.Close()
	got, err := ParsePath(p.ToSVGPath())
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestPathFromLines(t *testing.T) {
	lines := []geom.Line{
		{P1: geom.Pt(0, 0), P2: geom.Pt(1, 0)},
		{P1: geom.Pt(1, 0), P2: geom.Pt(1, 1)},
		{P1: geom.Pt(5, 5), P2: geom.Pt(6, 6)},
	}
	assert.Equal(t, Path{
		MoveTo(pt(0, 0)), LineTo(pt(1, 0)), LineTo(pt(1, 1)),
		MoveTo(pt(5, 5)), LineTo(pt(6, 6)),
	}, PathFromLines(lines))
	assert.Nil(t, PathFromLines(nil))

	assert.Equal(t, Path{MoveTo(pt(0, 0)), LineTo(pt(1, 0)), Close{}},
		PathFromPoints([]geom.Point{geom.Pt(0, 0), geom.Pt(1, 0)}, true))
	assert.Nil(t, PathFromPoints(nil, false))
}
