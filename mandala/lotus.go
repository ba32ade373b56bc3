package mandala

import (
	"math"

	"github.com/benoitkugler/svgdna/colour"
	"github.com/benoitkugler/svgdna/geom"
	"github.com/benoitkugler/svgdna/svgdoc"
)

// samples per lobe of a lotus ring
const lotusSamples = 8

// lotus holds the parameters read from LotusIndex
type lotus struct {
	numLobes  int
	radius    float64 // of the innermost ring
	amplitude float64 // relative to the radius
	growth    float64 // radius ratio between two rings
	decay     float64 // amplitude ratio between two rings
}

func (m *Mandala) nextLotus() lotus {
	return lotus{
		numLobes:  int(m.seq.Next()*9 + 3),
		radius:    m.size/40 + m.seq.Next()*m.size/20,
		amplitude: 0.2 + m.seq.Next()*0.3,
		growth:    1.15 + m.seq.Next()*0.25,
		decay:     0.7 + m.seq.Next()*0.25,
	}
}

// petal returns the closed curve r(θ) = R(1 + a·sin(nθ + φ)) around
// `center`, as cubic Bezier arcs matching the tangents at each sample.
func petal(center geom.Point, n int, R, a, phi float64) svgdoc.Path {
	samples := n * lotusSamples
	h := 2 * math.Pi / float64(samples)
	at := func(theta float64) (p, d geom.Point) {
		sin, cos := math.Sincos(theta)
		r := R * (1 + a*math.Sin(float64(n)*theta+phi))
		dr := R * a * float64(n) * math.Cos(float64(n)*theta+phi)
		p = geom.Pt(center.X+r*cos, center.Y+r*sin)
		d = geom.Pt(dr*cos-r*sin, dr*sin+r*cos)
		return p, d
	}

	var path svgdoc.Path
	p0, d0 := at(0)
	path.Move(p0.X, p0.Y)
	for k := 1; k <= samples; k++ {
		p1, d1 := at(float64(k) * h)
		c1, c2 := p0.Add(d0.Mul(h/3)), p1.Sub(d1.Mul(h/3))
		path.Cubic(c1.X, c1.Y, c2.X, c2.Y, p1.X, p1.Y)
		p0, d0 = p1, d1
	}
	path.Close()
	return path
}

// Lotus draws concentric petalled rings in a new group of `parent`.
// The rings grow outward until they exceed half the canvas, and the
// lobe amplitude shrinks from one ring to the next while the lobes
// alternate. The outer rings are drawn first, so that each ring lies
// above the larger ones.
func (m *Mandala) Lotus(sink Sink, parent *svgdoc.Group) *svgdoc.Group {
	m.seq.SetIndex(LotusIndex)
	params := m.nextLotus()

	type layer struct {
		path svgdoc.Path
		col  colour.Colour
	}
	var (
		layers  []layer
		cx, cy  = m.center()
		maxSize = m.size / 2
		R, a    = params.radius, params.amplitude
	)
	for i := 0; i < MaxLotusRings && R*(1+a) <= maxSize; i++ {
		phi := 0.
		if i%2 == 1 {
			phi = math.Pi / float64(params.numLobes)
		}
		layers = append(layers, layer{
			path: petal(geom.Pt(cx, cy), params.numLobes, R, a, phi),
			col:  m.palette.Colour(),
		})
		R *= params.growth
		a *= params.decay
	}

	g := sink.Group(parent, svgdoc.Style{
		ID:          "lotusMandala",
		Stroke:      svgdoc.NewPlainColor(colour.Black),
		StrokeWidth: 1,
	})
	for i := len(layers) - 1; i >= 0; i-- {
		sink.Path(g, layers[i].path, svgdoc.Style{Fill: svgdoc.NewPlainColor(layers[i].col)})
	}
	return g
}

// Wave returns a closed polyline around `origin` whose radius
// oscillates between r1 and r2, `numWaves` times per turn,
// with `weight` points per oscillation.
// It returns nil if numWaves or weight is not positive.
func Wave(origin geom.Point, numWaves, weight int, r1, r2 float64) svgdoc.Path {
	if numWaves <= 0 || weight <= 0 {
		return nil
	}
	mid, amp := (r1+r2)/2, (r1-r2)/2
	samples := numWaves * weight
	step := 2 * math.Pi / float64(samples)

	var path svgdoc.Path
	for i := 0; i < samples; i++ {
		theta := float64(i) * step
		r := mid + amp*math.Sin(float64(numWaves)*theta)
		x, y := origin.X+math.Sin(theta)*r, origin.Y+math.Cos(theta)*r
		if i == 0 {
			path.Move(x, y)
		} else {
			path.Line(x, y)
		}
	}
	path.Close()
	return path
}
