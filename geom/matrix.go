package geom

import (
	"fmt"
	"math"

	"golang.org/x/image/math/fixed"
)

// Matrix2D represents an SVG style affine matrix
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
//
// The last row is implicit, so that every operation
// keeps the matrix affine.
//
// Composing methods right-multiply the receiver by the elementary
// transform: m.Translate(x, y).Rotate(t) rotates points first, then
// translates them, as in the SVG transform attribute.
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity matrix
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns a*b
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F}
}

// Translate translates the matrix by (x, y)
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Scale scales the matrix in x and y dimensions
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Rotate rotates the matrix by theta radians. A positive angle
// turns the X axis towards the Y axis (clockwise on a screen, where Y points down).
func (a Matrix2D) Rotate(theta float64) Matrix2D {
	sin, cos := math.Sincos(theta)
	return a.Mult(Matrix2D{cos, sin, -sin, cos, 0, 0})
}

// RotateAround rotates by theta around (cx, cy).
func (a Matrix2D) RotateAround(theta, cx, cy float64) Matrix2D {
	return a.Translate(cx, cy).Rotate(theta).Translate(-cx, -cy)
}

// ShearX maps (x, y) to (x + k*y, y)
func (a Matrix2D) ShearX(k float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, k, 1, 0, 0})
}

// ShearY maps (x, y) to (x, k*x + y)
func (a Matrix2D) ShearY(k float64) Matrix2D {
	return a.Mult(Matrix2D{1, k, 0, 1, 0, 0})
}

// SkewX shears along X by the angle theta (radians)
func (a Matrix2D) SkewX(theta float64) Matrix2D { return a.ShearX(math.Tan(theta)) }

// SkewY shears along Y by the angle theta (radians)
func (a Matrix2D) SkewY(theta float64) Matrix2D { return a.ShearY(math.Tan(theta)) }

// ReflectOrigin maps (x, y) to (-x, -y)
func (a Matrix2D) ReflectOrigin() Matrix2D { return a.Scale(-1, -1) }

// ReflectX mirrors across the X axis: (x, y) to (x, -y)
func (a Matrix2D) ReflectX() Matrix2D { return a.Scale(1, -1) }

// ReflectY mirrors across the Y axis: (x, y) to (-x, y)
func (a Matrix2D) ReflectY() Matrix2D { return a.Scale(-1, 1) }

// Determinant of the linear part.
func (a Matrix2D) Determinant() float64 { return a.A*a.D - a.B*a.C }

// Invert returns the inverse matrix. Degenerate matrices
// return non finite values.
func (a Matrix2D) Invert() Matrix2D {
	det := a.Determinant()
	return Matrix2D{
		A: a.D / det,
		B: -a.B / det,
		C: -a.C / det,
		D: a.A / det,
		E: (a.C*a.F - a.D*a.E) / det,
		F: (a.B*a.E - a.A*a.F) / det,
	}
}

// IsIdentity returns true for the identity matrix and the zero value,
// which are both used as "no transform".
func (a Matrix2D) IsIdentity() bool {
	return a == Identity || a == Matrix2D{}
}

// OrIdentity returns `a`, or the identity for the zero value.
func (a Matrix2D) OrIdentity() Matrix2D {
	if a == (Matrix2D{}) {
		return Identity
	}
	return a
}

// Transform multiples the input vector by matrix m and outputs the results vector
// components.
func (a Matrix2D) Transform(x1, y1 float64) (x2, y2 float64) {
	x2 = x1*a.A + y1*a.C + a.E
	y2 = x1*a.B + y1*a.D + a.F
	return
}

// TransformVector is a modified version of Transform that ignores the
// translation components.
func (a Matrix2D) TransformVector(x1, y1 float64) (x2, y2 float64) {
	x2 = x1*a.A + y1*a.C
	y2 = x1*a.B + y1*a.D
	return
}

// TFixed transforms a fixed.Point26_6 by the matrix
func (a Matrix2D) TFixed(x fixed.Point26_6) (y fixed.Point26_6) {
	y.X = fixed.Int26_6((float64(x.X)*a.A + float64(x.Y)*a.C) + a.E*64)
	y.Y = fixed.Int26_6((float64(x.X)*a.B + float64(x.Y)*a.D) + a.F*64)
	return
}

func (a Matrix2D) Point(p Point) Point {
	x, y := a.Transform(p.X, p.Y)
	return Point{x, y}
}

func (a Matrix2D) Line(l Line) Line {
	return Line{a.Point(l.P1), a.Point(l.P2)}
}

// Rows returns the full 3x3 matrix, row by row.
func (a Matrix2D) Rows() [3][3]float64 {
	return [3][3]float64{
		{a.A, a.C, a.E},
		{a.B, a.D, a.F},
		{0, 0, 1},
	}
}

// String returns the SVG transform attribute value.
func (a Matrix2D) String() string {
	return fmt.Sprintf("matrix(%g,%g,%g,%g,%g,%g)", a.A, a.B, a.C, a.D, a.E, a.F)
}
