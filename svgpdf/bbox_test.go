package svgpdf

import (
	"math/rand"
	"testing"

	"github.com/benoitkugler/svgdna/geom"
	"github.com/stretchr/testify/assert"
	"golang.org/x/image/math/fixed"
)

func randPoint(offsetx, offsety int) fixed.Point26_6 {
	x, y := rand.Intn(1100), rand.Intn(1000)
	return fixed.Point26_6{X: fixed.Int26_6(x + offsetx), Y: fixed.Int26_6(y + offsety)}
}

func rect(minX, minY, maxX, maxY float64) fixed.Rectangle26_6 {
	return fixed.Rectangle26_6{Min: geom.ToFixedP(minX, minY), Max: geom.ToFixedP(maxX, maxY)}
}

func TestSegmentBounds(t *testing.T) {
	for _, test := range []struct {
		s   segment
		exp fixed.Rectangle26_6
	}{
		{segment{geom.Pt(4, 1), geom.Pt(0, 3)}, rect(0, 1, 4, 3)},
		{segment{geom.Pt(0, 0), geom.Pt(5, 10), geom.Pt(10, 0)}, rect(0, 0, 10, 5)},
		{segment{geom.Pt(0, 0), geom.Pt(0, 10), geom.Pt(10, 10), geom.Pt(10, 0)}, rect(0, 0, 10, 7.5)},
		{segment{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(0, 0), geom.Pt(10, 0)}, rect(0, 0, 10, 0)},
	} {
		assert.Equal(t, test.exp, test.s.bounds())
	}
}

// the bounding box contains every point of the curve
func TestSegmentBoundsContains(t *testing.T) {
	for i := 0; i < 200; i++ {
		s := newSegment(randPoint(0, 0), randPoint(0, 0), randPoint(0, 0), randPoint(0, 0))[:2+i%3]
		box := s.bounds()
		for j := 0; j <= 20; j++ {
			p := s.at(float64(j) / 20).Fixed()
			assert.True(t, box.Min.X-1 <= p.X && p.X <= box.Max.X+1, "%v %v", box, p)
			assert.True(t, box.Min.Y-1 <= p.Y && p.Y <= box.Max.Y+1, "%v %v", box, p)
		}
	}
}

func TestQuadraticRoots(t *testing.T) {
	assert.Nil(t, quadraticRoots(0, 0, 1))
	assert.Equal(t, []float64{2}, quadraticRoots(0, 1, -2))
	assert.Nil(t, quadraticRoots(1, 0, 1))
	assert.Equal(t, []float64{1}, quadraticRoots(1, -2, 1))
	assert.ElementsMatch(t, []float64{1, -1}, quadraticRoots(1, 0, -1))
}
