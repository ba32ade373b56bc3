package svgdoc

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgdna/colour"
	"github.com/benoitkugler/svgdna/geom"
)

const svgNamespace = "http://www.w3.org/2000/svg"

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// encoder writes the XML tokens, keeping the first error
type encoder struct {
	enc *xml.Encoder
	err error
}

func (e *encoder) token(t xml.Token) {
	if e.err != nil {
		return
	}
	e.err = e.enc.EncodeToken(t)
}

func (e *encoder) start(name string, attrs []xml.Attr) {
	e.token(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
}

func (e *encoder) end(name string) {
	e.token(xml.EndElement{Name: xml.Name{Local: name}})
}

func (e *encoder) leaf(name string, attrs []xml.Attr) {
	e.start(name, attrs)
	e.end(name)
}

func attr(name, value string) xml.Attr { return xml.Attr{Name: xml.Name{Local: name}, Value: value} }

func floatAttr(name string, value float64) xml.Attr { return attr(name, formatFloat(value)) }

// attrs returns the presentation attributes which are set
func (s *Style) attrs() []xml.Attr {
	var out []xml.Attr
	if s.ID != "" {
		out = append(out, attr("id", s.ID))
	}
	if s.Fill != nil {
		out = append(out, attr("fill", s.Fill.attr()))
	}
	if s.Stroke != nil {
		out = append(out, attr("stroke", s.Stroke.attr()))
	}
	if s.StrokeWidth != 0 {
		out = append(out, floatAttr("stroke-width", s.StrokeWidth))
	}
	if s.Opacity != 0 {
		out = append(out, floatAttr("opacity", s.Opacity))
	}
	if s.FillOpacity != 0 {
		out = append(out, floatAttr("fill-opacity", s.FillOpacity))
	}
	if s.StrokeOpacity != 0 {
		out = append(out, floatAttr("stroke-opacity", s.StrokeOpacity))
	}
	if s.Dash != nil {
		if len(s.Dash) == 0 {
			out = append(out, attr("stroke-dasharray", "none"))
		} else {
			chunks := make([]string, len(s.Dash))
			for i, d := range s.Dash {
				chunks[i] = formatFloat(d)
			}
			out = append(out, attr("stroke-dasharray", strings.Join(chunks, " ")))
		}
	}
	if s.DashOffset != 0 {
		out = append(out, floatAttr("stroke-dashoffset", s.DashOffset))
	}
	if s.LineJoin != NilJoin {
		out = append(out, attr("stroke-linejoin", s.LineJoin.String()))
	}
	if s.LineCap != NilCap {
		out = append(out, attr("stroke-linecap", s.LineCap.String()))
	}
	if s.EvenOdd {
		out = append(out, attr("fill-rule", "evenodd"))
	}
	if !s.Transform.IsIdentity() {
		out = append(out, attr("transform", s.Transform.String()))
	}
	return out
}

func pointsAttr(points []geom.Point) string {
	chunks := make([]string, len(points))
	for i, p := range points {
		chunks[i] = formatFloat(p.X) + "," + formatFloat(p.Y)
	}
	return strings.Join(chunks, " ")
}

func (e *encoder) element(el Element) {
	switch el := el.(type) {
	case *GroupRef:
		e.group(&el.Group)
	case *Group:
		e.group(el)
	case *Circle:
		e.leaf("circle", append([]xml.Attr{
			floatAttr("cx", el.Center.X), floatAttr("cy", el.Center.Y), floatAttr("r", el.Radius),
		}, el.Style.attrs()...))
	case *Ellipse:
		e.leaf("ellipse", append([]xml.Attr{
			floatAttr("cx", el.Center.X), floatAttr("cy", el.Center.Y),
			floatAttr("rx", el.Rx), floatAttr("ry", el.Ry),
		}, el.Style.attrs()...))
	case *Rect:
		attrs := []xml.Attr{
			floatAttr("x", el.X), floatAttr("y", el.Y),
			floatAttr("width", el.Width), floatAttr("height", el.Height),
		}
		if el.Rx != 0 {
			attrs = append(attrs, floatAttr("rx", el.Rx))
		}
		if el.Ry != 0 {
			attrs = append(attrs, floatAttr("ry", el.Ry))
		}
		e.leaf("rect", append(attrs, el.Style.attrs()...))
	case *LineElement:
		e.leaf("line", append([]xml.Attr{
			floatAttr("x1", el.P1.X), floatAttr("y1", el.P1.Y),
			floatAttr("x2", el.P2.X), floatAttr("y2", el.P2.Y),
		}, el.Style.attrs()...))
	case *Polyline:
		name := "polyline"
		if el.Closed {
			name = "polygon"
		}
		e.leaf(name, append([]xml.Attr{attr("points", pointsAttr(el.Points))}, el.Style.attrs()...))
	case *PathElement:
		e.leaf("path", append([]xml.Attr{attr("d", el.Path.ToSVGPath())}, el.Style.attrs()...))
	case *Use:
		if el.Ref == nil {
			e.err = fmt.Errorf("encoding use element: %w", ErrNotReference)
			return
		}
		attrs := []xml.Attr{attr("href", "#"+el.Ref.ID)}
		if el.X != 0 {
			attrs = append(attrs, floatAttr("x", el.X))
		}
		if el.Y != 0 {
			attrs = append(attrs, floatAttr("y", el.Y))
		}
		e.leaf("use", append(attrs, el.Style.attrs()...))
	}
}

func (e *encoder) group(g *Group) {
	e.start("g", g.Style.attrs())
	for _, child := range g.Children {
		e.element(child)
	}
	e.end("g")
}

func stopColor(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	return colour.FromColor(c).Hex()
}

func (e *encoder) gradient(g *Gradient) {
	var (
		name  string
		attrs = []xml.Attr{attr("id", g.ID)}
	)
	switch dir := g.Direction.(type) {
	case Linear:
		name = "linearGradient"
		attrs = append(attrs, floatAttr("x1", dir[0]), floatAttr("y1", dir[1]),
			floatAttr("x2", dir[2]), floatAttr("y2", dir[3]))
	case Radial:
		name = "radialGradient"
		attrs = append(attrs, floatAttr("cx", dir[0]), floatAttr("cy", dir[1]),
			floatAttr("fx", dir[2]), floatAttr("fy", dir[3]), floatAttr("r", dir[4]))
		if dir[5] != 0 {
			attrs = append(attrs, floatAttr("fr", dir[5]))
		}
	default:
		return
	}
	if g.Units == UserSpaceOnUse {
		attrs = append(attrs, attr("gradientUnits", "userSpaceOnUse"))
	}
	switch g.Spread {
	case ReflectSpread:
		attrs = append(attrs, attr("spreadMethod", "reflect"))
	case RepeatSpread:
		attrs = append(attrs, attr("spreadMethod", "repeat"))
	}
	if !g.Matrix.IsIdentity() {
		attrs = append(attrs, attr("gradientTransform", g.Matrix.String()))
	}
	e.start(name, attrs)
	for _, stop := range g.Stops {
		stopAttrs := []xml.Attr{floatAttr("offset", stop.Offset), attr("stop-color", stopColor(stop.StopColor))}
		if stop.Opacity != 1 {
			stopAttrs = append(stopAttrs, floatAttr("stop-opacity", stop.Opacity))
		}
		e.leaf("stop", stopAttrs)
	}
	e.end(name)
}

// Encode writes the document as an SVG image.
func (d *Document) Encode(w io.Writer) error {
	enc := encoder{enc: xml.NewEncoder(w)}
	enc.enc.Indent("", "  ")
	enc.token(xml.ProcInst{Target: "xml", Inst: []byte(`version="1.0" encoding="UTF-8"`)})
	enc.token(xml.CharData("\n"))
	enc.start("svg", []xml.Attr{
		attr("xmlns", svgNamespace),
		floatAttr("width", d.Width),
		floatAttr("height", d.Height),
		attr("viewBox", fmt.Sprintf("0 0 %s %s", formatFloat(d.Width), formatFloat(d.Height))),
	})
	if len(d.defs) != 0 {
		enc.start("defs", nil)
		for _, def := range d.defs {
			switch def := def.(type) {
			case *Gradient:
				enc.gradient(def)
			case *GroupRef:
				enc.group(&def.Group)
			}
		}
		enc.end("defs")
	}
	if d.Root != nil {
		if isZeroStyle(d.Root.Style) {
			for _, child := range d.Root.Children {
				enc.element(child)
			}
		} else {
			enc.group(d.Root)
		}
	}
	enc.end("svg")
	if enc.err != nil {
		return enc.err
	}
	return enc.enc.Flush()
}

// String returns the SVG document, ignoring encoding errors.
func (d *Document) String() string {
	var b strings.Builder
	_ = d.Encode(&b)
	return b.String()
}

// WriteFile writes the SVG document in the named file.
func (d *Document) WriteFile(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err = d.Encode(w); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err = w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
