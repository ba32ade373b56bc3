package colour

import (
	"math"

	"github.com/benoitkugler/svgdna/dna"
)

// DrawsPerColour is the number of values consumed
// from the sequence by each call to Palette.Colour.
const DrawsPerColour = 4

// DefaultDegree is the angle (in radians) between the prime colour and
// its two neighbours: a regular triad.
const DefaultDegree = 2 * math.Pi / 3

// DefaultVariation is the default jitter bound, in the order
// hue, lightness, saturation.
var DefaultVariation = [3]float64{0.05, 1, 1}

// Palette picks colours around a triad of hues:
// the prime colour and two neighbours whose hues are
// rotated by plus and minus the triad degree.
// The picks are driven by a shared sequence: the palette never
// owns it, and each pick moves its cursor.
type Palette struct {
	seq         *dna.Sequence
	prime       Colour
	left, right Colour
	variation   [3]float64
}

// NewPalette builds the triad around `prime`.
// `degree` is in radians; `variation` bounds the random
// offsets applied to hue, lightness and saturation.
func NewPalette(seq *dna.Sequence, prime Colour, degree float64, variation [3]float64) *Palette {
	h, l, s := prime.HLS()
	turn := degree / (2 * math.Pi)
	return &Palette{
		seq:       seq,
		prime:     prime,
		left:      FromHLS(Wrap(0, h+turn, 1), l, s),
		right:     FromHLS(Wrap(0, h-turn, 1), l, s),
		variation: variation,
	}
}

func (p *Palette) Prime() Colour           { return p.prime }
func (p *Palette) Left() Colour            { return p.left }
func (p *Palette) Right() Colour           { return p.right }
func (p *Palette) Variation() [3]float64   { return p.variation }
func (p *Palette) Sequence() *dna.Sequence { return p.seq }

// jitter returns a value in [-v, v)
func (p *Palette) jitter(v float64) float64 {
	return p.seq.Next()*(2*v) - v
}

// Colour picks the next colour: one draw selects the
// base (prime, left or right) and three draws offset its hue,
// lightness and saturation. Exactly DrawsPerColour values are consumed.
func (p *Palette) Colour() Colour {
	var base Colour
	switch choice := p.seq.Next() * 3000; {
	case choice < 1000:
		base = p.prime
	case choice > 2000:
		base = p.left
	default:
		base = p.right
	}
	h, l, s := base.HLS()
	h = Wrap(0, h+p.jitter(p.variation[0]), 1)
	l = Wrap(0, l+p.jitter(p.variation[1]), 1)
	s = Wrap(0, s+p.jitter(p.variation[2]), 1)
	return FromHLS(h, l, s)
}

// Colours returns the next `n` colours.
func (p *Palette) Colours(n int) []Colour {
	out := make([]Colour, n)
	for i := range out {
		out[i] = p.Colour()
	}
	return out
}
