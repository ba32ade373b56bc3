package svgdoc

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/svgdna/geom"
	"golang.org/x/image/math/fixed"
)

// This file defines the path structure and its builder,
// following the SVG path commands.

// Operation groups the different SVG commands.
// All the coordinates are absolute: relative commands
// are resolved when building the path.
type Operation interface {
	endPoint() (fixed.Point26_6, bool)
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

type QuadTo [2]fixed.Point26_6

type CubicTo [3]fixed.Point26_6

// ArcTo is an elliptical arc from the current point to End.
type ArcTo struct {
	Rx, Ry   float64
	Rotation float64 // degrees
	LargeArc bool
	Sweep    bool
	End      fixed.Point26_6
}

type Close struct{}

func (op MoveTo) endPoint() (fixed.Point26_6, bool)  { return fixed.Point26_6(op), true }
func (op LineTo) endPoint() (fixed.Point26_6, bool)  { return fixed.Point26_6(op), true }
func (op QuadTo) endPoint() (fixed.Point26_6, bool)  { return op[1], true }
func (op CubicTo) endPoint() (fixed.Point26_6, bool) { return op[2], true }
func (op ArcTo) endPoint() (fixed.Point26_6, bool)   { return op.End, true }
func (Close) endPoint() (fixed.Point26_6, bool)      { return fixed.Point26_6{}, false }

// Path describes a sequence of basic SVG operations.
// Higher-level shapes may be reduced to a path.
// The zero value is an empty path, ready to use.
type Path []Operation

func fx(v fixed.Int26_6) float64 { return float64(v) / 64 }

// ToSVGPath returns a string representation of the path
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", fx(op.X), fx(op.Y))
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", fx(op.X), fx(op.Y))
		case QuadTo:
			chunks[i] = fmt.Sprintf("Q%4.3f,%4.3f,%4.3f,%4.3f", fx(op[0].X), fx(op[0].Y),
				fx(op[1].X), fx(op[1].Y))
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f", fx(op[0].X), fx(op[0].Y),
				fx(op[1].X), fx(op[1].Y), fx(op[2].X), fx(op[2].Y))
		case ArcTo:
			chunks[i] = fmt.Sprintf("A%4.3f,%4.3f %4.3f %d,%d %4.3f,%4.3f", op.Rx, op.Ry, op.Rotation,
				boolToInt(op.LargeArc), boolToInt(op.Sweep), fx(op.End.X), fx(op.End.Y))
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Reset zeros the path slice
func (p *Path) Reset() {
	*p = (*p)[:0]
}

// current returns the current point, that is the end of the last
// operation, or the start of the sub path after a Close.
func (p Path) current() fixed.Point26_6 {
	for i := len(p) - 1; i >= 0; i-- {
		if _, isClose := p[i].(Close); !isClose {
			pt, _ := p[i].endPoint()
			return pt
		}
		// scan back to the start of the sub path
		for j := i - 1; j >= 0; j-- {
			if m, ok := p[j].(MoveTo); ok {
				return fixed.Point26_6(m)
			}
		}
		break
	}
	return fixed.Point26_6{}
}

// CurrentPoint returns the point where the next command starts.
func (p Path) CurrentPoint() geom.Point { return geom.FromFixed(p.current()) }

func (p Path) relative(dx, dy float64) fixed.Point26_6 {
	cur := p.current()
	return fixed.Point26_6{X: cur.X + fToFixed(dx), Y: cur.Y + fToFixed(dy)}
}

// Move starts a new sub path at (x, y)
func (p *Path) Move(x, y float64) { *p = append(*p, MoveTo(geom.ToFixedP(x, y))) }

// MoveRel starts a new sub path, relatively to the current point
func (p *Path) MoveRel(dx, dy float64) { *p = append(*p, MoveTo(p.relative(dx, dy))) }

// Line draws a straight line to (x, y)
func (p *Path) Line(x, y float64) { *p = append(*p, LineTo(geom.ToFixedP(x, y))) }

func (p *Path) LineRel(dx, dy float64) { *p = append(*p, LineTo(p.relative(dx, dy))) }

// Horizontal draws a horizontal line to the abscissa `x`
func (p *Path) Horizontal(x float64) {
	cur := p.current()
	*p = append(*p, LineTo{X: fToFixed(x), Y: cur.Y})
}

func (p *Path) HorizontalRel(dx float64) { p.LineRel(dx, 0) }

// Vertical draws a vertical line to the ordinate `y`
func (p *Path) Vertical(y float64) {
	cur := p.current()
	*p = append(*p, LineTo{X: cur.X, Y: fToFixed(y)})
}

func (p *Path) VerticalRel(dy float64) { p.LineRel(0, dy) }

// Cubic draws a cubic Bezier curve to (x, y), with
// control points (x1, y1) and (x2, y2)
func (p *Path) Cubic(x1, y1, x2, y2, x, y float64) {
	*p = append(*p, CubicTo{geom.ToFixedP(x1, y1), geom.ToFixedP(x2, y2), geom.ToFixedP(x, y)})
}

func (p *Path) CubicRel(dx1, dy1, dx2, dy2, dx, dy float64) {
	*p = append(*p, CubicTo{p.relative(dx1, dy1), p.relative(dx2, dy2), p.relative(dx, dy)})
}

// reflect returns the reflection of the control point of the
// last operation, if it is of the same kind (cubic or quadratic), or the current point
func (p Path) reflect(cubic bool) fixed.Point26_6 {
	cur := p.current()
	if len(p) == 0 {
		return cur
	}
	var ctrl fixed.Point26_6
	switch op := p[len(p)-1].(type) {
	case CubicTo:
		if !cubic {
			return cur
		}
		ctrl = op[1]
	case QuadTo:
		if cubic {
			return cur
		}
		ctrl = op[0]
	default:
		return cur
	}
	return fixed.Point26_6{X: 2*cur.X - ctrl.X, Y: 2*cur.Y - ctrl.Y}
}

// SmoothCubic draws a cubic Bezier curve whose first control point
// is the reflection of the previous one.
func (p *Path) SmoothCubic(x2, y2, x, y float64) {
	*p = append(*p, CubicTo{p.reflect(true), geom.ToFixedP(x2, y2), geom.ToFixedP(x, y)})
}

func (p *Path) SmoothCubicRel(dx2, dy2, dx, dy float64) {
	*p = append(*p, CubicTo{p.reflect(true), p.relative(dx2, dy2), p.relative(dx, dy)})
}

// Quad draws a quadratic Bezier curve to (x, y), with control point (x1, y1).
func (p *Path) Quad(x1, y1, x, y float64) {
	*p = append(*p, QuadTo{geom.ToFixedP(x1, y1), geom.ToFixedP(x, y)})
}

func (p *Path) QuadRel(dx1, dy1, dx, dy float64) {
	*p = append(*p, QuadTo{p.relative(dx1, dy1), p.relative(dx, dy)})
}

func (p *Path) SmoothQuad(x, y float64) {
	*p = append(*p, QuadTo{p.reflect(false), geom.ToFixedP(x, y)})
}

func (p *Path) SmoothQuadRel(dx, dy float64) {
	*p = append(*p, QuadTo{p.reflect(false), p.relative(dx, dy)})
}

// Arc draws an elliptical arc to (x, y). `rotation` is in degrees.
// Null radii degrade to a straight line, as in SVG.
func (p *Path) Arc(rx, ry, rotation float64, largeArc, sweep bool, x, y float64) {
	p.arcTo(rx, ry, rotation, largeArc, sweep, geom.ToFixedP(x, y))
}

func (p *Path) ArcRel(rx, ry, rotation float64, largeArc, sweep bool, dx, dy float64) {
	p.arcTo(rx, ry, rotation, largeArc, sweep, p.relative(dx, dy))
}

func (p *Path) arcTo(rx, ry, rotation float64, largeArc, sweep bool, end fixed.Point26_6) {
	if rx < 0 {
		rx = -rx
	}
	if ry < 0 {
		ry = -ry
	}
	if rx == 0 || ry == 0 {
		*p = append(*p, LineTo(end))
		return
	}
	*p = append(*p, ArcTo{Rx: rx, Ry: ry, Rotation: rotation, LargeArc: largeArc, Sweep: sweep, End: end})
}

// Close joins the current point to the start of the sub path.
func (p *Path) Close() {
	*p = append(*p, Close{})
}

// PathFromLines joins the lines into a polyline. A new sub path
// is started when a line does not start at the end of the previous one.
func PathFromLines(lines []geom.Line) Path {
	var p Path
	var last fixed.Point26_6
	for i, l := range lines {
		start := l.P1.Fixed()
		if i == 0 || start != last {
			p = append(p, MoveTo(start))
		}
		last = l.P2.Fixed()
		p = append(p, LineTo(last))
	}
	return p
}

// PathFromPoints returns the polyline joining `points`,
// closed if required.
func PathFromPoints(points []geom.Point, closed bool) Path {
	if len(points) == 0 {
		return nil
	}
	p := make(Path, 0, len(points)+1)
	p = append(p, MoveTo(points[0].Fixed()))
	for _, pt := range points[1:] {
		p = append(p, LineTo(pt.Fixed()))
	}
	if closed {
		p = append(p, Close{})
	}
	return p
}
