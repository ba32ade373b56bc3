// Provides the plain value geometry used by the generators:
// points, lines, circles, cubic splines and
// affine transformations.
package geom

import (
	"fmt"
	"math"

	"golang.org/x/image/math/fixed"
)

// parallelTolerance is the maximum normalized cross product
// of two parallel lines
const parallelTolerance = 1e-9

type Point struct {
	X, Y float64
}

// Pt is a shorthand for Point{x, y}
func Pt(x, y float64) Point { return Point{x, y} }

func (p Point) Add(q Point) Point      { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point      { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(k float64) Point    { return Point{p.X * k, p.Y * k} }
func (p Point) Dist(q Point) float64   { return math.Hypot(q.X-p.X, q.Y-p.Y) }
func (p Point) Norm() float64          { return math.Hypot(p.X, p.Y) }
func (p Point) String() string         { return fmt.Sprintf("%g,%g", p.X, p.Y) }
func (p Point) Fixed() fixed.Point26_6 { return ToFixedP(p.X, p.Y) }

// ToFixedP converts two floats to the nearest fixed point.
func ToFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(math.Round(x * 64))
	p.Y = fixed.Int26_6(math.Round(y * 64))
	return
}

// FromFixed converts back a fixed point.
func FromFixed(p fixed.Point26_6) Point {
	return Point{float64(p.X) / 64, float64(p.Y) / 64}
}

// Polar is the polar form of a vector.
type Polar struct {
	Angle     float64 // radians, as returned by math.Atan2
	Magnitude float64
}

// Line is a segment from P1 to P2.
type Line struct {
	P1, P2 Point
}

// LineFromPolar returns the segment starting at `p1`,
// with direction `angle` and length `radius`.
func LineFromPolar(p1 Point, angle, radius float64) Line {
	sin, cos := math.Sincos(angle)
	return Line{p1, Point{p1.X + cos*radius, p1.Y + sin*radius}}
}

// Vector returns P2 - P1
func (l Line) Vector() Point { return l.P2.Sub(l.P1) }

func (l Line) Length() float64 { return l.P1.Dist(l.P2) }

// Angle returns the direction of the line, in (-Pi, Pi].
func (l Line) Angle() float64 {
	v := l.Vector()
	return math.Atan2(v.Y, v.X)
}

func (l Line) Polar() Polar { return Polar{Angle: l.Angle(), Magnitude: l.Length()} }

func (l Line) Midpoint() Point { return l.P1.Add(l.P2).Mul(0.5) }

// Reverse swaps the end points.
func (l Line) Reverse() Line { return Line{l.P2, l.P1} }

// IsParallel returns true if the two lines have the same
// or opposite directions. A degenerate line is parallel to every line.
func (l Line) IsParallel(other Line) bool {
	u, v := l.Vector(), other.Vector()
	nu, nv := u.Norm(), v.Norm()
	if nu == 0 || nv == 0 {
		return true
	}
	cross := (u.X*v.Y - u.Y*v.X) / (nu * nv)
	return math.Abs(cross) < parallelTolerance
}

func (l Line) String() string { return fmt.Sprintf("%s %s", l.P1, l.P2) }

type Circle struct {
	Center Point
	Radius float64
}

// PointAt returns the point of the circle at `angle` radians.
func (c Circle) PointAt(angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{c.Center.X + cos*c.Radius, c.Center.Y + sin*c.Radius}
}
