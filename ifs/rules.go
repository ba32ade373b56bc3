package ifs

import (
	"math"

	"github.com/benoitkugler/svgdna/geom"
)

// Polyline joins consecutive points into segments.
func Polyline(points ...geom.Point) []geom.Line {
	if len(points) < 2 {
		return nil
	}
	out := make([]geom.Line, len(points)-1)
	for i := range out {
		out[i] = geom.Line{P1: points[i], P2: points[i+1]}
	}
	return out
}

// Koch is the von Koch rule: the middle third is replaced by
// the two sides of an equilateral triangle (pointing towards negative y).
func Koch() []geom.Line {
	return Polyline(
		geom.Pt(0, 0),
		geom.Pt(1./3, 0),
		geom.Pt(0.5, -math.Sqrt(3)/6),
		geom.Pt(2./3, 0),
		geom.Pt(1, 0),
	)
}

// Levy is the rule of the Lévy C curve.
func Levy() []geom.Line {
	return Polyline(geom.Pt(0, 0), geom.Pt(0.5, -0.5), geom.Pt(1, 0))
}

// Dragon is the rule of the Heighway dragon: same as Levy,
// with the second segment reversed.
func Dragon() []geom.Line {
	return []geom.Line{
		{P1: geom.Pt(0, 0), P2: geom.Pt(0.5, -0.5)},
		{P1: geom.Pt(1, 0), P2: geom.Pt(0.5, -0.5)},
	}
}

// Rules maps rule names to constructors, as used by the command line.
var Rules = map[string]func() []geom.Line{
	"koch":   Koch,
	"levy":   Levy,
	"dragon": Dragon,
}
