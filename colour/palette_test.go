package colour

import (
	"math"
	"testing"

	"github.com/benoitkugler/svgdna/dna"
	"github.com/stretchr/testify/assert"
)

func TestPaletteDrawCount(t *testing.T) {
	for _, chromosome := range []int{1, 3, 5} {
		seq := dna.New(111, 1000, chromosome, 256)
		p := NewPalette(seq, New(0.8, 0.2, 0.1), DefaultDegree, DefaultVariation)
		for i := 0; i < 20; i++ {
			before := seq.Index()
			p.Colour()
			assert.Equal(t, (before+DrawsPerColour*chromosome)%seq.Len(), seq.Index())
		}
	}
}

func TestPaletteDeterminism(t *testing.T) {
	pick := func() []Colour {
		seq := dna.New(42, 100, 5, 256)
		return NewPalette(seq, New(0.1, 0.5, 0.9), math.Pi/8, [3]float64{0.05, 0.5, 0}).Colours(30)
	}
	assert.Equal(t, pick(), pick())
}

func TestPaletteTriad(t *testing.T) {
	prime := FromHLS(0.1, 0.5, 0.8)
	p := NewPalette(dna.New(1, 10, 5, 256), prime, DefaultDegree, DefaultVariation)

	h, l, s := p.Left().HLS()
	assert.InDelta(t, 0.1+1./3, h, 1e-9)
	assert.InDelta(t, 0.5, l, 1e-9)
	assert.InDelta(t, 0.8, s, 1e-9)

	h, _, _ = p.Right().HLS()
	assert.InDelta(t, 0.1-1./3+1, h, 1e-9) // wrapped
	assert.Equal(t, prime, p.Prime())
}

func TestPaletteNoVariation(t *testing.T) {
	prime := FromHLS(0.6, 0.4, 0.7)
	seq := dna.New(7, 200, 5, 256)
	p := NewPalette(seq, prime, DefaultDegree, [3]float64{})
	for i := 0; i < 40; i++ {
		c := p.Colour()
		matches := 0
		for _, base := range []Colour{p.Prime(), p.Left(), p.Right()} {
			if math.Abs(c.R-base.R) < 1e-9 && math.Abs(c.G-base.G) < 1e-9 && math.Abs(c.B-base.B) < 1e-9 {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "colour %s is not one of the triad", c)
	}
}

func TestPaletteComponentsInRange(t *testing.T) {
	seq := dna.New(3, 500, 5, 256)
	p := NewPalette(seq, New(0.3, 0.7, 0.2), DefaultDegree, DefaultVariation)
	for _, c := range p.Colours(100) {
		h, l, s := c.HLS()
		for _, v := range []float64{h, l, s} {
			assert.GreaterOrEqual(t, v, -1e-9)
			assert.LessOrEqual(t, v, 1+1e-9)
		}
	}
}
