package geom

import (
	"errors"

	"go.uber.org/zap"
)

// ErrStackUnderflow is returned when popping an empty stack.
var ErrStackUnderflow = errors.New("transform stack underflow")

// Transform2D is a mutable current matrix, plus a stack
// of saved matrices, in the manner of a graphic context.
// Composing methods mutate the current matrix and return
// the receiver for chaining. They follow the Matrix2D order: the last
// operation added is the first applied to points.
type Transform2D struct {
	matrix Matrix2D
	stack  []Matrix2D
}

// NewTransform2D returns an identity transform with an empty stack.
func NewTransform2D() *Transform2D {
	return &Transform2D{matrix: Identity}
}

// Matrix returns the current matrix.
func (t *Transform2D) Matrix() Matrix2D { return t.matrix }

// SetMatrix replaces the current matrix, leaving the stack untouched.
func (t *Transform2D) SetMatrix(m Matrix2D) *Transform2D {
	t.matrix = m
	return t
}

// Reset restores the identity and clears the stack.
func (t *Transform2D) Reset() {
	t.matrix = Identity
	t.stack = t.stack[:0]
}

// Depth returns the number of saved matrices.
func (t *Transform2D) Depth() int { return len(t.stack) }

// Push saves a copy of the current matrix.
func (t *Transform2D) Push() *Transform2D {
	t.stack = append(t.stack, t.matrix)
	return t
}

// Pop restores the last pushed matrix.
// On an empty stack, the current matrix is left unchanged,
// a warning is logged and ErrStackUnderflow is returned.
func (t *Transform2D) Pop() error {
	if len(t.stack) == 0 {
		zap.L().Warn("pop on empty transform stack", zap.Stringer("matrix", t.matrix))
		return ErrStackUnderflow
	}
	t.matrix = t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	return nil
}

// Mult right-multiplies the current matrix by `m`: `m` is applied
// to points before the transforms already composed.
func (t *Transform2D) Mult(m Matrix2D) *Transform2D {
	t.matrix = t.matrix.Mult(m)
	return t
}

// Translate, Scale, Rotate, ShearX, ShearY and the reflections compose
// the matching Matrix2D transform with the current matrix.
func (t *Transform2D) Translate(x, y float64) *Transform2D {
	t.matrix = t.matrix.Translate(x, y)
	return t
}

func (t *Transform2D) Scale(w, h float64) *Transform2D {
	t.matrix = t.matrix.Scale(w, h)
	return t
}

func (t *Transform2D) Rotate(theta float64) *Transform2D {
	t.matrix = t.matrix.Rotate(theta)
	return t
}

func (t *Transform2D) ShearX(k float64) *Transform2D {
	t.matrix = t.matrix.ShearX(k)
	return t
}

func (t *Transform2D) ShearY(k float64) *Transform2D {
	t.matrix = t.matrix.ShearY(k)
	return t
}

func (t *Transform2D) ReflectOrigin() *Transform2D {
	t.matrix = t.matrix.ReflectOrigin()
	return t
}

func (t *Transform2D) ReflectX() *Transform2D {
	t.matrix = t.matrix.ReflectX()
	return t
}

func (t *Transform2D) ReflectY() *Transform2D {
	t.matrix = t.matrix.ReflectY()
	return t
}

// Point applies the current matrix to `p`.
func (t *Transform2D) Point(p Point) Point { return t.matrix.Point(p) }

// Line applies the current matrix to both ends of `l`.
func (t *Transform2D) Line(l Line) Line { return t.matrix.Line(l) }

// SVG returns the current matrix as an SVG transform attribute.
func (t *Transform2D) SVG() string { return t.matrix.String() }
