package ifs

import (
	"errors"
	"math"
	"testing"

	"github.com/benoitkugler/svgdna/geom"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func assertLines(t *testing.T, exp, got []geom.Line) {
	t.Helper()
	if diff := cmp.Diff(exp, got, approx); diff != "" {
		t.Errorf("unexpected lines (-want +got):\n%s", diff)
	}
}

func TestUnitMap(t *testing.T) {
	s := geom.Line{P1: geom.Pt(2, 1), P2: geom.Pt(2, 4)}
	m := UnitMap(s)
	if diff := cmp.Diff(s.P1, m.Point(geom.Pt(0, 0)), approx); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff(s.P2, m.Point(geom.Pt(1, 0)), approx); diff != "" {
		t.Error(diff)
	}
	// the rule normal follows the segment normal
	if diff := cmp.Diff(geom.Pt(-1, 1), m.Point(geom.Pt(0, 1)), approx); diff != "" {
		t.Error(diff)
	}
}

func TestDepthZero(t *testing.T) {
	source := []geom.Line{
		{P1: geom.Pt(0, 0), P2: geom.Pt(10, 0)},
		{P1: geom.Pt(10, 0), P2: geom.Pt(10, 10)},
		{P1: geom.Pt(3, 7), P2: geom.Pt(-2, 1)},
	}
	rule := Koch()
	out := LineToLine(source, rule, 0)
	require.Len(t, out, len(source)*len(rule))

	for i, s := range source {
		m := UnitMap(s)
		for j, r := range rule {
			got := out[i*len(rule)+j]
			assertLines(t, []geom.Line{m.Line(r)}, []geom.Line{got})
		}
		// first rule point (0, 0) lands on the source start,
		// last rule point (1, 0) on its end
		first, last := out[i*len(rule)], out[(i+1)*len(rule)-1]
		assertLines(t, []geom.Line{{P1: s.P1, P2: s.P2}}, []geom.Line{{P1: first.P1, P2: last.P2}})
	}
}

func TestKochSubstitution(t *testing.T) {
	source := []geom.Line{{P1: geom.Pt(0, 0), P2: geom.Pt(3, 0)}}
	out := LineToLine(source, Koch(), 0)
	h := math.Sqrt(3) / 2
	assertLines(t, []geom.Line{
		{P1: geom.Pt(0, 0), P2: geom.Pt(1, 0)},
		{P1: geom.Pt(1, 0), P2: geom.Pt(1.5, -h)},
		{P1: geom.Pt(1.5, -h), P2: geom.Pt(2, 0)},
		{P1: geom.Pt(2, 0), P2: geom.Pt(3, 0)},
	}, out)

	for _, l := range out {
		assert.InDelta(t, 1, l.Length(), 1e-9)
	}
}

func TestGrowth(t *testing.T) {
	source := CircleToLines(geom.Circle{Radius: 100}, 3, 0, 1)
	for depth := 0; depth < 5; depth++ {
		out := LineToLine(source, Koch(), depth)
		exp, ok := Count(len(source), 4, depth)
		require.True(t, ok)
		assert.Equal(t, exp, len(out))
		assert.Equal(t, 3*int(math.Pow(4, float64(depth+1))), len(out))
	}
	// the curve stays connected
	out := LineToLine(source, Koch(), 2)
	for i := 1; i < len(out); i++ {
		assert.InDelta(t, 0, out[i-1].P2.Dist(out[i].P1), 1e-9)
	}
}

func TestNegativeDepth(t *testing.T) {
	source := Polyline(geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 0))
	out := LineToLine(source, Levy(), -1)
	assert.Equal(t, source, out)
	out[0].P1.X = 8
	assert.Equal(t, 0., source[0].P1.X)
}

func TestBounded(t *testing.T) {
	source := Polyline(geom.Pt(0, 0), geom.Pt(1, 0))
	_, err := Bounded(source, Koch(), 10, 1000)
	assert.True(t, errors.Is(err, ErrTooManyLines))

	out, err := Bounded(source, Koch(), 3, 1000)
	require.NoError(t, err)
	assert.Len(t, out, 256)

	_, ok := Count(2, 1000, 100)
	assert.False(t, ok)
	n, ok := Count(2, 0, 3)
	assert.True(t, ok)
	assert.Equal(t, 0, n)
}

func TestCircleToLines(t *testing.T) {
	c := geom.Circle{Center: geom.Pt(0, 0), Radius: 5}
	lines := CircleToLines(c, 4, 0, 1)
	require.Len(t, lines, 4)
	for i, l := range lines {
		assert.InDelta(t, 5, l.P1.Norm(), 1e-9)
		assert.InDelta(t, 5, l.P2.Norm(), 1e-9)
		a1 := math.Atan2(l.P1.Y, l.P1.X)
		a2 := math.Atan2(l.P2.Y, l.P2.X)
		delta := math.Mod(a2-a1+2*math.Pi, 2*math.Pi)
		assert.InDelta(t, 2*math.Pi/4, delta, 1e-9, "line %d", i)
		if i > 0 {
			assert.Equal(t, lines[i-1].P2, l.P1)
		}
	}
	assert.InDelta(t, 0, lines[0].P1.Dist(lines[3].P2), 1e-9)
}

func TestPolygram(t *testing.T) {
	c := geom.Circle{Center: geom.Pt(1, 1), Radius: 1}
	star := CircleToLines(c, 5, math.Pi/2, 2)
	require.Len(t, star, 5)
	polygon := CircleToLines(c, 5, math.Pi/2, 1)
	// a pentagram edge spans two polygon edges
	assert.InDelta(t, 2*math.Sin(2*math.Pi/5), star[0].Length(), 1e-9)
	assert.InDelta(t, 2*math.Sin(math.Pi/5), polygon[0].Length(), 1e-9)
	// closed after two laps
	assert.InDelta(t, 0, star[0].P1.Dist(star[4].P2), 1e-9)
}

func TestCircleToLinesDegenerate(t *testing.T) {
	assert.Nil(t, CircleToLines(geom.Circle{Radius: 1}, 0, 0, 1))
	assert.Nil(t, CircleToLines(geom.Circle{Radius: 1}, -3, 0, 1))
}
