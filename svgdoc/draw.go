package svgdoc

import (
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Given a document, implements how to
// draw it on screen.
// This requires a driver implementing the actual draw operations,
// such as a rasterizer to output .png images or a pdf writer.

// Drawer knows how to do the actual draw operations
// but doesn't need any SVG kwowledge
// In particular, tranformations matrix are already applied to the points
// before sending them to the Drawer.
// A Drawer is a rasterx.Adder.
type Drawer interface {
	// Clear must reset the internal state (used before starting a new path painting)
	Clear()

	// Start starts a new path at the given point.
	Start(a fixed.Point26_6)

	// Line Adds a line for the current point to `b`
	Line(b fixed.Point26_6)

	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)

	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)

	// Closes the path to the start point if `closeLoop` is true
	Stop(closeLoop bool)

	// SetColor set the color for the current path
	SetColor(color Pattern, opacity float64)

	// Draw fills or strokes the accumulated path using the current settings
	// depending on the filling mode
	Draw()
}

type Filler interface {
	Drawer

	// Decide to use or not the NonZeroWinding rule for the current path
	SetWinding(useNonZeroWinding bool)
}

type Stroker interface {
	Drawer

	// Parametrize the stroking style for the current path
	SetStrokeOptions(options StrokeOptions)
}

type Driver interface {
	// SetupDrawers returns the backend painters, and
	// will be called at the begining of every shape.
	// If the `willXXX` boolean is false, the returned drawer should be nil
	// to avoid useless operations.
	// When both booleans are true, one can assume that the exact same draw operations
	// will be performed on the Filler first and then on the Stroker.
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)
}

// shape is an element which may be reduced to a path
type shape interface {
	Element
	// addTo sends the outline of the shape, in user space
	addTo(q rasterx.Adder)
}

// Draw the document into the driver `dr`, with
// a global `opacity`.
func (d *Document) Draw(dr Driver, opacity float64) {
	if d.Root == nil {
		return
	}
	d.Root.drawTo(dr, opacity, defaultStyle)
}

func (g *Group) drawTo(d Driver, opacity float64, parent resolvedStyle) {
	style := parent.inherit(g.Style)
	for _, child := range g.Children {
		switch child := child.(type) {
		case *Group:
			child.drawTo(d, opacity, style)
		case *GroupRef:
			child.Group.drawTo(d, opacity, style)
		case *Use:
			if child.Ref == nil {
				continue
			}
			useStyle := style.inherit(child.Style)
			useStyle.transform = useStyle.transform.Translate(child.X, child.Y)
			child.Ref.Group.drawTo(d, opacity, useStyle)
		case shape:
			drawShape(d, opacity, style.inherit(*child.Attributes()), child)
		}
	}
}

// drawShape draws the shape into the driver while applying the style transform.
func drawShape(d Driver, opacity float64, style resolvedStyle, s shape) {
	m := rasterx.Matrix2D(style.transform)
	filler, stroker := d.SetupDrawers(style.willFill(), style.willStroke())
	if filler != nil { // nil color disable filling
		filler.Clear()
		filler.SetWinding(!style.useEvenOdd)

		s.addTo(&rasterx.MatrixAdder{Adder: filler, M: m})
		filler.Stop(false)

		filler.SetColor(style.fill, style.fillOpacity*opacity)
		filler.Draw()
		filler.SetWinding(true) // default is true
	}

	if stroker != nil { // nil color disable lining
		stroker.Clear()
		stroker.SetStrokeOptions(style.strokeOptions())

		s.addTo(&rasterx.MatrixAdder{Adder: stroker, M: m})
		stroker.Stop(false)

		stroker.SetColor(style.stroke, style.strokeOpacity*opacity)
		stroker.Draw()
	}
}

func (c *Circle) addTo(q rasterx.Adder) {
	if c.Radius <= 0 { // not drawn, but not an error
		return
	}
	rasterx.AddCircle(c.Center.X, c.Center.Y, c.Radius, q)
}

func (e *Ellipse) addTo(q rasterx.Adder) {
	if e.Rx <= 0 || e.Ry <= 0 {
		return
	}
	rasterx.AddEllipse(e.Center.X, e.Center.Y, e.Rx, e.Ry, 0, q)
}

func (r *Rect) addTo(q rasterx.Adder) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	rx, ry := r.Rx, r.Ry
	// a single radius applies to both axis
	if rx == 0 {
		rx = ry
	} else if ry == 0 {
		ry = rx
	}
	if rx <= 0 {
		rasterx.AddRect(r.X, r.Y, r.X+r.Width, r.Y+r.Height, 0, q)
		return
	}
	rasterx.AddRoundRect(r.X, r.Y, r.X+r.Width, r.Y+r.Height, rx, ry, 0, rasterx.RoundGap, q)
}

func (l *LineElement) addTo(q rasterx.Adder) {
	q.Start(l.P1.Fixed())
	q.Line(l.P2.Fixed())
	q.Stop(false)
}

func (p *Polyline) addTo(q rasterx.Adder) {
	if len(p.Points) < 2 {
		return
	}
	q.Start(p.Points[0].Fixed())
	for _, pt := range p.Points[1:] {
		q.Line(pt.Fixed())
	}
	q.Stop(p.Closed)
}

func (p *PathElement) addTo(q rasterx.Adder) { p.Path.addTo(q) }

// addTo sends the path operations to `q`, flattening arcs into cubic
// Bezier curves.
func (p Path) addTo(q rasterx.Adder) {
	var (
		current, start fixed.Point26_6
		inPath         bool
	)
	// commands following a Close start at the sub path start
	ensureStarted := func() {
		if !inPath {
			q.Start(current)
			inPath = true
		}
	}
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			if inPath {
				q.Stop(false)
			}
			current = fixed.Point26_6(op)
			start = current
			q.Start(current)
			inPath = true
		case LineTo:
			ensureStarted()
			current = fixed.Point26_6(op)
			q.Line(current)
		case QuadTo:
			ensureStarted()
			q.QuadBezier(op[0], op[1])
			current = op[1]
		case CubicTo:
			ensureStarted()
			q.CubeBezier(op[0], op[1], op[2])
			current = op[2]
		case ArcTo:
			ensureStarted()
			addArc(q, current, op)
			current = op.End
		case Close:
			if inPath {
				q.Stop(true)
				inPath = false
			}
			current = start
		}
	}
	if inPath {
		q.Stop(false)
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// addArc approximates the arc with cubic Bezier curves
func addArc(q rasterx.Adder, from fixed.Point26_6, op ArcTo) {
	if from == op.End { // the arc is omitted
		return
	}
	px, py := fx(from.X), fx(from.Y)
	points := []float64{op.Rx, op.Ry, op.Rotation, boolToFloat(op.LargeArc), boolToFloat(op.Sweep), fx(op.End.X), fx(op.End.Y)}
	rotX := op.Rotation * math.Pi / 180
	// radii may be scaled up so that a solution exists
	cx, cy := rasterx.FindEllipseCenter(&points[0], &points[1], rotX, px, py, points[5], points[6], !op.Sweep, !op.LargeArc)
	rasterx.AddArc(points, cx, cy, px, py, q)
}
