// Package mandala lays out radial patterns (rings of circles,
// lotus petals, waves) driven by a deterministic sequence.
//
// A Mandala owns its sequence: every generator moves the cursor,
// so the order of the calls is part of the output. Generators which
// need to be repeatable set the cursor to a fixed index first.
package mandala

import (
	"math"

	"github.com/benoitkugler/svgdna/colour"
	"github.com/benoitkugler/svgdna/dna"
	"github.com/benoitkugler/svgdna/geom"
	"github.com/benoitkugler/svgdna/svgdoc"
)

const (
	// CanvasSize is the default drawing size.
	CanvasSize = 1000

	// DefaultSeed and DefaultLength configure the sequence
	// when Options leaves them zero.
	DefaultSeed   = 888
	DefaultLength = 500

	// StartIndex is the cursor from which the palette
	// and the ring parameters are derived.
	StartIndex = 3

	// LotusIndex is the cursor from which the lotus parameters are derived.
	LotusIndex = 41

	// MaxLotusRings bounds the number of lotus rings.
	MaxLotusRings = 32
)

// Sink receives the shapes. It is implemented by *svgdoc.Document.
type Sink interface {
	Group(parent *svgdoc.Group, style svgdoc.Style) *svgdoc.Group
	Circle(parent *svgdoc.Group, center geom.Point, radius float64, style svgdoc.Style) *svgdoc.Circle
	Path(parent *svgdoc.Group, path svgdoc.Path, style svgdoc.Style) *svgdoc.PathElement
}

var _ Sink = (*svgdoc.Document)(nil)

// Options configures a Mandala. Zero fields are replaced by the defaults:
// in particular a zero Seed selects DefaultSeed, so that the seed 0
// itself is not reachable.
type Options struct {
	Seed   int64   // 0 means DefaultSeed
	Length int     // sequence length
	Size   float64 // canvas size
}

func (o Options) withDefaults() Options {
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Length <= 0 {
		o.Length = DefaultLength
	}
	if o.Size <= 0 {
		o.Size = CanvasSize
	}
	return o
}

// Mandala generates patterns centered on a square canvas.
type Mandala struct {
	seq      *dna.Sequence
	size     float64
	palette  *colour.Palette
	numRings int
	harmonic int
}

// New builds the sequence and derives the palette and the ring
// parameters from StartIndex.
func New(opts Options) *Mandala {
	opts = opts.withDefaults()
	m := &Mandala{
		seq:  dna.New(opts.Seed, opts.Length, dna.DefaultChromosomeLength, dna.DefaultAlphabetSize),
		size: opts.Size,
	}
	m.derive()
	return m
}

// derive sets the cursor to StartIndex and reads, in order:
// hue, lightness, triad degree, two variation bounds,
// the number of rings and the harmonic.
func (m *Mandala) derive() {
	m.seq.SetIndex(StartIndex)

	prime := colour.FromHLS(m.seq.Next(), m.seq.Next(), 0.5)
	degree := m.seq.Next() * math.Pi / 8
	variation := [3]float64{m.seq.Next() * 0.05, m.seq.Next() / 2, 0}
	m.palette = colour.NewPalette(m.seq, prime, degree, variation)

	m.numRings = int(m.seq.Next()*9 + 3)
	m.harmonic = int(m.seq.Next()*5 + 3)
}

// Rings and Harmonic are derived from the start cursor: the number of
// rings of the circle mandala, and the factor of their circle counts.
func (m *Mandala) Rings() int               { return m.numRings }
func (m *Mandala) Harmonic() int            { return m.harmonic }
func (m *Mandala) Palette() *colour.Palette { return m.palette }
func (m *Mandala) Sequence() *dna.Sequence  { return m.seq }
func (m *Mandala) Size() float64            { return m.size }

func (m *Mandala) center() (float64, float64) { return m.size / 2, m.size / 2 }

// ring is the placement of the circles of one ring
type ring struct {
	numCircs    int
	circRadius  float64
	ringRadius  float64
	phase       float64
	strokeWidth float64
	colour      colour.Colour
}

// nextRing reads the parameters of one ring, consuming
// 5 values plus a palette colour.
func (m *Mandala) nextRing() ring {
	var r ring
	r.numCircs = int(m.seq.Next()*5+1) * m.harmonic
	r.circRadius = m.seq.Next() * m.size / 4
	r.ringRadius = m.seq.Next() * m.size / 4
	step := 2 * math.Pi / float64(r.numCircs)
	if m.seq.Next() >= 0.5 {
		r.phase = step / 2
	}
	r.strokeWidth = m.seq.Next() * 5
	r.colour = m.palette.Colour()
	return r
}

// centers returns the center of each circle of the ring
func (r ring) centers(cx, cy float64) []geom.Point {
	out := make([]geom.Point, r.numCircs)
	step := 2 * math.Pi / float64(r.numCircs)
	for c := range out {
		a := step*float64(c) + r.phase
		out[c] = geom.Pt(math.Sin(a)*r.ringRadius+cx, math.Cos(a)*r.ringRadius+cy)
	}
	return out
}

// Circles draws the rings of circles in a new group of `parent`.
// When `colourOn` is true, a layer of filled circles is drawn first;
// the outline layer is always drawn, from the same saved cursor, so
// that both layers share the same geometry.
func (m *Mandala) Circles(sink Sink, parent *svgdoc.Group, colourOn bool) *svgdoc.Group {
	m.derive()

	g := sink.Group(parent, svgdoc.Style{
		ID:          "circleMandala",
		StrokeWidth: 5,
		Stroke:      svgdoc.NewPlainColor(colour.Black),
		Fill:        svgdoc.None,
	})
	cx, cy := m.center()
	saved := m.seq.Index()

	if colourOn {
		for i := 0; i < m.numRings; i++ {
			r := m.nextRing()
			for _, c := range r.centers(cx, cy) {
				sink.Circle(g, c, r.circRadius, svgdoc.Style{
					Fill:        svgdoc.NewPlainColor(r.colour),
					StrokeWidth: r.strokeWidth,
					Opacity:     0.5,
				})
			}
		}
	}

	m.seq.SetIndex(saved)
	for i := 0; i < m.numRings; i++ {
		r := m.nextRing()
		for _, c := range r.centers(cx, cy) {
			sink.Circle(g, c, r.circRadius, svgdoc.Style{
				Fill:        svgdoc.None,
				Stroke:      svgdoc.NewPlainColor(colour.Black),
				StrokeWidth: r.strokeWidth,
				Opacity:     0.5,
			})
		}
	}
	return g
}
