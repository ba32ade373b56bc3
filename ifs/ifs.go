// Implements iterated function systems on line segments:
// each segment of a figure is replaced by a copy of a
// rule, mapped onto the segment, and the process is repeated
// on the result to build self-similar curves.
package ifs

import (
	"errors"
	"math"

	"github.com/benoitkugler/svgdna/geom"
)

// ErrTooManyLines is returned by Bounded when the
// substitution would produce more lines than allowed.
var ErrTooManyLines = errors.New("ifs: too many lines")

// UnitMap returns the similarity sending (0, 0) to s.P1 and (1, 0) to s.P2.
// The rotation uses the Matrix2D.Rotate sign, so that the
// angle of the segment is used as is.
// A zero length segment collapses every point onto s.P1.
func UnitMap(s geom.Line) geom.Matrix2D {
	l := s.Length()
	return geom.Identity.Translate(s.P1.X, s.P1.Y).Rotate(s.Angle()).Scale(l, l)
}

// substitute replaces every segment of `source` by `rule` mapped onto it.
func substitute(source, rule []geom.Line) []geom.Line {
	out := make([]geom.Line, 0, len(source)*len(rule))
	for _, s := range source {
		m := UnitMap(s)
		for _, r := range rule {
			out = append(out, m.Line(r))
		}
	}
	return out
}

// LineToLine replaces each line of `source` by the lines of `rule`, where
// rule is expressed relatively to the unit segment (0,0)-(1,0).
// The substitution is applied depth+1 times, so that depth 0 returns
// len(source)*len(rule) lines, and in general len(source)*len(rule)^(depth+1).
// The output follows the order of `source`.
// A negative depth returns a copy of `source`.
//
// The output size is exponential in `depth`: see Count and Bounded to
// check it beforehand.
func LineToLine(source, rule []geom.Line, depth int) []geom.Line {
	current := append([]geom.Line(nil), source...)
	for level := 0; level <= depth; level++ {
		current = substitute(current, rule)
	}
	return current
}

// Count returns the number of lines returned by LineToLine,
// or false if it overflows an int.
func Count(sourceLen, ruleLen, depth int) (int, bool) {
	if depth < 0 {
		return sourceLen, true
	}
	n := sourceLen
	for level := 0; level <= depth; level++ {
		if ruleLen != 0 && n > math.MaxInt/ruleLen {
			return 0, false
		}
		n *= ruleLen
	}
	return n, true
}

// Bounded is the same as LineToLine, but returns ErrTooManyLines
// instead of producing more than `max` lines.
func Bounded(source, rule []geom.Line, depth, max int) ([]geom.Line, error) {
	n, ok := Count(len(source), len(rule), depth)
	if !ok || n > max {
		return nil, ErrTooManyLines
	}
	return LineToLine(source, rule, depth), nil
}

// CircleToLines samples sides+1 points on the circle, starting at `phase` (radians)
// with an angular step of polygram*2*Pi/sides, and returns the `sides` segments
// joining them. A polygram of 1 gives a regular polygon, higher values
// give star polygons (2 with 5 sides is a pentagram).
// A non positive number of sides returns nil.
func CircleToLines(c geom.Circle, sides int, phase float64, polygram int) []geom.Line {
	if sides <= 0 {
		return nil
	}
	step := 2 * math.Pi / float64(sides) * float64(polygram)
	out := make([]geom.Line, sides)
	prev := c.PointAt(phase)
	for i := range out {
		next := c.PointAt(phase + float64(i+1)*step)
		out[i] = geom.Line{P1: prev, P2: next}
		prev = next
	}
	return out
}
