// Implements a PDF backend to render SVG documents,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/benoitkugler/svgdna/colour"
	"github.com/benoitkugler/svgdna/geom"
	"github.com/benoitkugler/svgdna/svgdoc"
	"github.com/jung-kurt/gofpdf"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ svgdoc.Driver  = (*Renderer)(nil)
	_ svgdoc.Filler  = (*filler)(nil)
	_ svgdoc.Stroker = (*stroker)(nil)
)

type Renderer struct {
	pdf *gofpdf.Fpdf
	f   filler
	s   stroker
}

// NewRenderer return a renderer which will
// write to the current page of the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) *Renderer {
	return &Renderer{
		pdf: pdf,
		f:   filler{pather: pather{pdf: pdf}},
		s:   stroker{pather: pather{pdf: pdf}},
	}
}

// New returns a one page PDF with the size of the document,
// using points as unit.
func New(doc *svgdoc.Document) *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: doc.Width, Ht: doc.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return pdf
}

// WritePDF renders the document on a new PDF and writes it
func WritePDF(w io.Writer, doc *svgdoc.Document) error {
	pdf := New(doc)
	doc.Draw(NewRenderer(pdf), 1)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return pdf.Output(w)
}

// SetupDrawers implements svgdoc.Driver
func (r *Renderer) SetupDrawers(willFill, willStroke bool) (f svgdoc.Filler, s svgdoc.Stroker) {
	if willFill {
		f = &r.f
	}
	if willStroke {
		s = &r.s
	}
	return f, s
}

type pathOp struct {
	op     byte // M, L, Q, C, Z
	points [3]fixed.Point26_6
}

// implements the common path commands,
// shared by the filler and the stroker.
// The path is buffered until Draw, so that the
// color operators are not written inside the path.
type pather struct {
	pdf         *gofpdf.Fpdf
	ops         []pathOp
	a           fixed.Point26_6     // current point, used to compute boundingBox
	boundingBox fixed.Rectangle26_6 // bouding box for the current path
	started     bool
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	p := geom.FromFixed(a)
	return p.X, p.Y
}

func (p *pather) Clear() {
	p.ops = p.ops[:0]
	p.boundingBox = fixed.Rectangle26_6{}
	p.a = fixed.Point26_6{}
	p.started = false
}

func (p *pather) extend(r fixed.Rectangle26_6) {
	if !p.started {
		p.boundingBox, p.started = r, true
		return
	}
	// fixed.Rectangle26_6.Union drops empty rectangles, such as flat segments
	b := &p.boundingBox
	b.Min.X, b.Min.Y = min26_6(b.Min.X, r.Min.X), min26_6(b.Min.Y, r.Min.Y)
	b.Max.X, b.Max.Y = max26_6(b.Max.X, r.Max.X), max26_6(b.Max.Y, r.Max.Y)
}

func min26_6(a, b fixed.Int26_6) fixed.Int26_6 {
	if a < b {
		return a
	}
	return b
}

func max26_6(a, b fixed.Int26_6) fixed.Int26_6 {
	if a > b {
		return a
	}
	return b
}

func (p *pather) Start(a fixed.Point26_6) {
	p.ops = append(p.ops, pathOp{op: 'M', points: [3]fixed.Point26_6{a}})
	p.a = a
	p.extend(fixed.Rectangle26_6{Min: a, Max: a}) // degenerate case
}

func (p *pather) Line(b fixed.Point26_6) {
	p.ops = append(p.ops, pathOp{op: 'L', points: [3]fixed.Point26_6{b}})
	p.extend(newSegment(p.a, b).bounds())
	p.a = b
}

func (p *pather) QuadBezier(b, c fixed.Point26_6) {
	p.ops = append(p.ops, pathOp{op: 'Q', points: [3]fixed.Point26_6{b, c}})
	p.extend(newSegment(p.a, b, c).bounds())
	p.a = c
}

func (p *pather) CubeBezier(b, c, d fixed.Point26_6) {
	p.ops = append(p.ops, pathOp{op: 'C', points: [3]fixed.Point26_6{b, c, d}})
	p.extend(newSegment(p.a, b, c, d).bounds())
	p.a = d
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.ops = append(p.ops, pathOp{op: 'Z'})
	}
}

// writePath sends the buffered path to the pdf
func (p *pather) writePath() {
	for _, op := range p.ops {
		switch op.op {
		case 'M':
			p.pdf.MoveTo(fixedTof(op.points[0]))
		case 'L':
			p.pdf.LineTo(fixedTof(op.points[0]))
		case 'Q':
			cx, cy := fixedTof(op.points[0])
			x, y := fixedTof(op.points[1])
			p.pdf.CurveTo(cx, cy, x, y)
		case 'C':
			cx0, cy0 := fixedTof(op.points[0])
			cx1, cy1 := fixedTof(op.points[1])
			x, y := fixedTof(op.points[2])
			p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
		case 'Z':
			p.pdf.ClosePath()
		}
	}
}

// resolveColor returns the plain color to use for `pattern`.
// Gradients are not supported by the PDF path operators, so
// they are approximated by their color at the center of the path.
func (p *pather) resolveColor(pattern svgdoc.Pattern, opacity float64) (color.NRGBA, float64) {
	switch pattern := pattern.(type) {
	case svgdoc.PlainColor:
		return pattern.NRGBA(), opacity
	case *svgdoc.Gradient:
		c, a := gradientColor(pattern, p.boundingBox)
		return c, opacity * a
	}
	return color.NRGBA{A: 0xff}, opacity
}

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding bool
}

func (f *filler) SetColor(pattern svgdoc.Pattern, opacity float64) {
	c, alpha := f.resolveColor(pattern, opacity)
	f.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	f.pdf.SetAlpha(alpha*float64(c.A)/255, "Normal")
}

func (f *filler) Draw() {
	f.writePath()
	styleStr := "f*"
	if f.useNonZeroWinding {
		styleStr = "f"
	}
	f.pdf.DrawPath(styleStr)
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

// implements the stroking operation
type stroker struct {
	pather
}

func (s *stroker) SetColor(pattern svgdoc.Pattern, opacity float64) {
	c, alpha := s.resolveColor(pattern, opacity)
	s.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	s.pdf.SetAlpha(alpha*float64(c.A)/255, "Normal")
}

func (s *stroker) SetStrokeOptions(options svgdoc.StrokeOptions) {
	s.pdf.SetLineWidth(float64(options.LineWidth) / 64)
	s.pdf.SetLineJoinStyle(joinStyle(options.Join.LineJoin))
	s.pdf.SetLineCapStyle(capStyle(options.Join.TrailLineCap))
	s.pdf.SetDashPattern(options.Dash.Dash, options.Dash.DashOffset)
}

func (s *stroker) Draw() {
	s.writePath()
	s.pdf.DrawPath("D")
}

// PDF only has miter, round and bevel joins
func joinStyle(j svgdoc.JoinMode) string {
	switch j {
	case svgdoc.Round, svgdoc.Arc, svgdoc.ArcClip:
		return "round"
	case svgdoc.Bevel:
		return "bevel"
	default:
		return "miter"
	}
}

func capStyle(c svgdoc.CapMode) string {
	switch c {
	case svgdoc.RoundCap, svgdoc.CubicCap, svgdoc.QuadraticCap:
		return "round"
	case svgdoc.SquareCap:
		return "square"
	default:
		return "butt"
	}
}

// gradientColor evaluates the gradient at the center of `bbox`,
// returning the color and the stop opacity.
func gradientColor(grad *svgdoc.Gradient, bbox fixed.Rectangle26_6) (color.NRGBA, float64) {
	if len(grad.Stops) == 0 {
		return color.NRGBA{A: 0xff}, 1
	}
	center := geom.FromFixed(bbox.Min).Add(geom.FromFixed(bbox.Max)).Mul(0.5)
	if grad.Units == svgdoc.ObjectBoundingBox {
		center = geom.Pt(0.5, 0.5)
	}

	var t float64
	switch dir := grad.Direction.(type) {
	case svgdoc.Linear:
		v := geom.Pt(dir[2]-dir[0], dir[3]-dir[1])
		if n := v.X*v.X + v.Y*v.Y; n != 0 {
			w := center.Sub(geom.Pt(dir[0], dir[1]))
			t = (w.X*v.X + w.Y*v.Y) / n
		}
	case svgdoc.Radial:
		if dir[4] != 0 {
			t = center.Dist(geom.Pt(dir[0], dir[1])) / dir[4]
		}
	}
	return stopColor(grad.Stops, spread(grad.Spread, t))
}

func spread(method svgdoc.SpreadMethod, t float64) float64 {
	switch method {
	case svgdoc.RepeatSpread:
		return t - math.Floor(t)
	case svgdoc.ReflectSpread:
		t = math.Mod(math.Abs(t), 2)
		if t > 1 {
			t = 2 - t
		}
		return t
	default:
		return colour.Clamp(0, t, 1)
	}
}

// stopColor interpolates between the stops surrounding t
func stopColor(stops []svgdoc.GradStop, t float64) (color.NRGBA, float64) {
	first, last := stops[0], stops[len(stops)-1]
	if t <= first.Offset {
		return colour.FromColor(first.StopColor).NRGBA(), first.Opacity
	}
	if t >= last.Offset {
		return colour.FromColor(last.StopColor).NRGBA(), last.Opacity
	}
	for i := 1; i < len(stops); i++ {
		s0, s1 := stops[i-1], stops[i]
		if t > s1.Offset {
			continue
		}
		u := 0.
		if d := s1.Offset - s0.Offset; d > 0 {
			u = (t - s0.Offset) / d
		}
		c0, c1 := colour.FromColor(s0.StopColor), colour.FromColor(s1.StopColor)
		mixed := colorful.Color{R: c0.R, G: c0.G, B: c0.B}.BlendRgb(colorful.Color{R: c1.R, G: c1.G, B: c1.B}, u)
		return colour.New(mixed.R, mixed.G, mixed.B).NRGBA(), s0.Opacity + (s1.Opacity-s0.Opacity)*u
	}
	return colour.FromColor(last.StopColor).NRGBA(), last.Opacity
}
