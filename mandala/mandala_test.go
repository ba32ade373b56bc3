package mandala

import (
	"bytes"
	"math"
	"testing"

	"github.com/benoitkugler/svgdna/colour"
	"github.com/benoitkugler/svgdna/dna"
	"github.com/benoitkugler/svgdna/geom"
	"github.com/benoitkugler/svgdna/svgdoc"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func circles(t *testing.T, g *svgdoc.Group) []*svgdoc.Circle {
	t.Helper()
	out := make([]*svgdoc.Circle, len(g.Children))
	for i, child := range g.Children {
		c, ok := child.(*svgdoc.Circle)
		require.True(t, ok, "unexpected element %T", child)
		out[i] = c
	}
	return out
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	assert.Equal(t, Options{Seed: DefaultSeed, Length: DefaultLength, Size: CanvasSize}, o)

	o = Options{Seed: -3, Length: 10, Size: 20}.withDefaults()
	assert.Equal(t, Options{Seed: -3, Length: 10, Size: 20}, o)
}

func TestNew(t *testing.T) {
	m := New(Options{})
	assert.Equal(t, 11, m.Rings())
	assert.Equal(t, 7, m.Harmonic())
	assert.Equal(t, float64(CanvasSize), m.Size())
	assert.Equal(t, int64(DefaultSeed), m.Sequence().Seed())
	assert.Equal(t, DefaultLength, m.Sequence().Len())
	assert.Equal(t, StartIndex+7*dna.DefaultChromosomeLength, m.Sequence().Index())

	assert.GreaterOrEqual(t, m.Rings(), 3)
	assert.Less(t, m.Rings(), 12)
	assert.GreaterOrEqual(t, m.Harmonic(), 3)
	assert.Less(t, m.Harmonic(), 8)
	variation := m.Palette().Variation()
	assert.Less(t, variation[0], 0.05)
	assert.Less(t, variation[1], 0.5)
	assert.Zero(t, variation[2])
}

func TestDeterminism(t *testing.T) {
	for _, seed := range []int64{1, 111, 888, 2024} {
		m1, m2 := New(Options{Seed: seed}), New(Options{Seed: seed})
		assert.Equal(t, m1.Rings(), m2.Rings())
		assert.Equal(t, m1.Harmonic(), m2.Harmonic())
		assert.Equal(t, m1.Palette().Prime(), m2.Palette().Prime())

		d1, d2 := svgdoc.NewDocument(CanvasSize, CanvasSize), svgdoc.NewDocument(CanvasSize, CanvasSize)
		g1, g2 := m1.Circles(d1, nil, true), m2.Circles(d2, nil, true)
		if diff := cmp.Diff(g1, g2); diff != "" {
			t.Errorf("seed %d: (-first +second)\n%s", seed, diff)
		}
	}
}

func TestCircles(t *testing.T) {
	m := New(Options{})
	doc := svgdoc.NewDocument(CanvasSize, CanvasSize)

	g := m.Circles(doc, nil, true)
	assert.Equal(t, "circleMandala", g.ID)
	assert.Equal(t, svgdoc.None, g.Fill)
	assert.Equal(t, 5., g.StrokeWidth)
	assert.Equal(t, []svgdoc.Element{g}, doc.Root.Children)

	all := circles(t, g)
	require.NotEmpty(t, all)
	require.Equal(t, 0, len(all)%2)
	half := len(all) / 2
	assert.Equal(t, 0, half%m.Harmonic()) // every ring is a multiple of the harmonic

	// the fill layer and the outline layer are aligned
	for i, fill := range all[:half] {
		outline := all[half+i]
		assert.Equal(t, fill.Center, outline.Center)
		assert.Equal(t, fill.Radius, outline.Radius)
		assert.Equal(t, fill.StrokeWidth, outline.StrokeWidth)
		assert.IsType(t, svgdoc.PlainColor{}, fill.Fill)
		assert.Equal(t, 0.5, fill.Opacity)
		assert.Equal(t, svgdoc.None, outline.Fill)
		assert.Equal(t, svgdoc.NewPlainColor(colour.Black), outline.Stroke)

		assert.LessOrEqual(t, fill.Radius, CanvasSize/4.)
		assert.LessOrEqual(t, fill.Center.Dist(geom.Pt(500, 500)), CanvasSize/4.+1e-9)
	}

	// the outline pass alone is the same, and calls are repeatable
	outlines := circles(t, m.Circles(doc, nil, false))
	if diff := cmp.Diff(all[half:], outlines); diff != "" {
		t.Errorf("(-colour pass +outline pass)\n%s", diff)
	}
	assert.Len(t, doc.Root.Children, 2)
}

func TestCirclesRing(t *testing.T) {
	r := ring{numCircs: 4, ringRadius: 10, phase: math.Pi / 4}
	centers := r.centers(0, 0)
	require.Len(t, centers, 4)
	for i, c := range centers {
		assert.InDelta(t, 10, c.Norm(), 1e-9)
		if i > 0 {
			assert.InDelta(t, 10*math.Sqrt2, c.Dist(centers[i-1]), 1e-9)
		}
	}
	assert.InDelta(t, 10/math.Sqrt2, centers[0].X, 1e-9)
}

func TestCirclesSink(t *testing.T) {
	doc := svgdoc.NewDocument(CanvasSize, CanvasSize)
	New(Options{Seed: 7, Length: 64}).Circles(doc, nil, true)

	var b bytes.Buffer
	require.NoError(t, doc.Encode(&b))
	assert.Contains(t, b.String(), `<g id="circleMandala" fill="none" stroke="#000000" stroke-width="5">`)
}
