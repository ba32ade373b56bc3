package svgpdf

import (
	"math"

	"github.com/benoitkugler/svgdna/geom"
	"golang.org/x/image/math/fixed"
)

// compute the bouding box of a path, needed when using gradient with objectBoudingBox

// segment is a Bezier curve given by its control points,
// with degree 1 (line), 2 (quadratic) or 3 (cubic).
type segment []geom.Point

func newSegment(points ...fixed.Point26_6) segment {
	out := make(segment, len(points))
	for i, p := range points {
		out[i] = geom.FromFixed(p)
	}
	return out
}

// at evaluates the curve at time t, using de Casteljau reduction
func (s segment) at(t float64) geom.Point {
	tmp := append(segment(nil), s...)
	for n := len(tmp) - 1; n > 0; n-- {
		for i := 0; i < n; i++ {
			tmp[i] = tmp[i].Add(tmp[i+1].Sub(tmp[i]).Mul(t))
		}
	}
	return tmp[0]
}

// criticalPoints returns the times zeroing the derivative,
// for each coordinate.
func (s segment) criticalPoints() (tX, tY []float64) {
	switch len(s) {
	case 3:
		// derivative as at + b
		aX, bX := 2*(s[2].X-2*s[1].X+s[0].X), 2*(s[1].X-s[0].X)
		aY, bY := 2*(s[2].Y-2*s[1].Y+s[0].Y), 2*(s[1].Y-s[0].Y)
		return linearRoots(aX, bX), linearRoots(aY, bY)
	case 4:
		aX, bX, cX := cubicDerivative(s[0].X, s[1].X, s[2].X, s[3].X)
		aY, bY, cY := cubicDerivative(s[0].Y, s[1].Y, s[2].Y, s[3].Y)
		return quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)
	}
	return nil, nil
}

// bounds returns the smallest rectangle containing the curve.
func (s segment) bounds() fixed.Rectangle26_6 {
	resX, resY := s.criticalPoints()

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, t := range append(append(resX, 0, 1), resY...) {
		if !(0 <= t && t <= 1) {
			continue
		}
		p := s.at(t)
		minX, minY = math.Min(p.X, minX), math.Min(p.Y, minY)
		maxX, maxY = math.Max(p.X, maxX), math.Max(p.Y, maxY)
	}
	return fixed.Rectangle26_6{Min: geom.ToFixedP(minX, minY), Max: geom.ToFixedP(maxX, maxY)}
}

// handle the case where a = 0
func linearRoots(a, b float64) []float64 {
	if a == 0 {
		return nil
	}
	return []float64{-b / a}
}

// X(t) = (p3-3*p2+3*p1-p0)t^3 + (3*p2-6*p1+3*p0)t^2 + (3*p1-3*p0)t + p0
// X'(t) = at^2 + bt + c with a, b, c :
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		if b == 0 {
			return nil
		}
		return []float64{-c / b}
	}
	d := b*b - 4*a*c
	switch {
	case d < 0:
		return nil
	case d == 0:
		return []float64{-b / (2 * a)}
	default:
		sq := math.Sqrt(d)
		return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
	}
}
