// Package svgdoc provides an in-memory SVG document:
// a tree of styled elements, with definitions (groups and gradients)
// referenced by ID.
// A document is built with the methods of Document, then serialized
// with Encode, or painted into a Driver,
// such as the renderers of the svgraster and svgpdf packages.
package svgdoc

import (
	"errors"
	"fmt"

	"github.com/benoitkugler/svgdna/geom"
)

var (
	// ErrNotReference is returned when an element which is not
	// a registered reference is used as one.
	ErrNotReference = errors.New("svgdoc: element is not a registered reference")

	// ErrDuplicateID is returned when registering two definitions with the same ID.
	ErrDuplicateID = errors.New("svgdoc: duplicate definition ID")

	errZeroLengthID = errors.New("svgdoc: zero length id")
)

// Ref is a definition, which may be referenced by
// its ID.
type Ref interface {
	RefID() string
}

// URL returns the functional notation used to reference `id`.
func URL(id string) string { return "url(#" + id + ")" }

// Document is the root of an SVG image.
type Document struct {
	Width, Height float64
	Root          *Group

	defs []Ref // in registration order
	ids  map[string]Ref
}

// NewDocument returns an empty document, with the given size
// in user units.
func NewDocument(width, height float64) *Document {
	return &Document{Width: width, Height: height, Root: &Group{}, ids: make(map[string]Ref)}
}

// Defs returns the registered definitions.
func (d *Document) Defs() []Ref { return d.defs }

// Lookup returns the definition registered with `id`, or nil.
func (d *Document) Lookup(id string) Ref { return d.ids[id] }

// AddDef registers a definition.
func (d *Document) AddDef(ref Ref) error {
	id := ref.RefID()
	if id == "" {
		return errZeroLengthID
	}
	if _, has := d.ids[id]; has {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	if d.ids == nil {
		d.ids = make(map[string]Ref)
	}
	d.ids[id] = ref
	d.defs = append(d.defs, ref)
	return nil
}

func (d *Document) parent(g *Group) *Group {
	if g != nil {
		return g
	}
	if d.Root == nil {
		d.Root = &Group{}
	}
	return d.Root
}

// Group adds a new group to `parent`, or the root of
// the document if `parent` is nil.
func (d *Document) Group(parent *Group, style Style) *Group {
	g := &Group{Style: style}
	d.parent(parent).Append(g)
	return g
}

func (d *Document) Circle(parent *Group, center geom.Point, r float64, style Style) *Circle {
	c := &Circle{Style: style, Center: center, Radius: r}
	d.parent(parent).Append(c)
	return c
}

func (d *Document) Ellipse(parent *Group, center geom.Point, rx, ry float64, style Style) *Ellipse {
	e := &Ellipse{Style: style, Center: center, Rx: rx, Ry: ry}
	d.parent(parent).Append(e)
	return e
}

// Rect adds a rectangle, whose top left corner is (x, y).
func (d *Document) Rect(parent *Group, x, y, width, height float64, style Style) *Rect {
	r := &Rect{Style: style, X: x, Y: y, Width: width, Height: height}
	d.parent(parent).Append(r)
	return r
}

func (d *Document) Line(parent *Group, l geom.Line, style Style) *LineElement {
	out := &LineElement{Style: style, Line: l}
	d.parent(parent).Append(out)
	return out
}

func (d *Document) Polyline(parent *Group, points []geom.Point, style Style) *Polyline {
	p := &Polyline{Style: style, Points: points}
	d.parent(parent).Append(p)
	return p
}

// Polygon adds a closed polyline.
func (d *Document) Polygon(parent *Group, points []geom.Point, style Style) *Polyline {
	p := d.Polyline(parent, points, style)
	p.Closed = true
	return p
}

func (d *Document) Path(parent *Group, path Path, style Style) *PathElement {
	p := &PathElement{Style: style, Path: path}
	d.parent(parent).Append(p)
	return p
}

// Reference registers a new, empty group in the definitions.
// Elements may then be added to it, and the group drawn with Use.
func (d *Document) Reference(id string, style Style) (*GroupRef, error) {
	style.ID = id
	ref := &GroupRef{Group: Group{Style: style}}
	if err := d.AddDef(ref); err != nil {
		return nil, err
	}
	return ref, nil
}

// Use adds to `parent` an instance of `target`, translated by (x, y).
// `target` must be a reference registered in `d`, otherwise ErrNotReference is returned.
func (d *Document) Use(parent *Group, target Element, x, y float64, style Style) (*Use, error) {
	ref, ok := target.(*GroupRef)
	if !ok || ref == nil || d.ids[ref.ID] != Ref(ref) {
		return nil, ErrNotReference
	}
	u := &Use{Style: style, Ref: ref, X: x, Y: y}
	d.parent(parent).Append(u)
	return u, nil
}

// LinearGradient registers a gradient from (x1, y1) to (x2, y2),
// expressed in the bounding box of the painted element.
// Stops should be added with Gradient.AddStop.
func (d *Document) LinearGradient(id string, x1, y1, x2, y2 float64) (*Gradient, error) {
	g := &Gradient{ID: id, Direction: Linear{x1, y1, x2, y2}, Matrix: geom.Identity}
	if err := d.AddDef(g); err != nil {
		return nil, err
	}
	return g, nil
}

// RadialGradient registers a gradient centered at (cx, cy), with radius `r`,
// expressed in the bounding box of the painted element.
func (d *Document) RadialGradient(id string, cx, cy, r float64) (*Gradient, error) {
	g := &Gradient{ID: id, Direction: Radial{cx, cy, cx, cy, r, 0}, Matrix: geom.Identity}
	if err := d.AddDef(g); err != nil {
		return nil, err
	}
	return g, nil
}

// AppendGroup appends to `parent` (or the root) a deep copy of `g`, whose
// style is replaced by `style`, if not zero.
// It returns the new group, or nil if `g` is nil.
func (d *Document) AppendGroup(parent *Group, g *Group, style Style) *Group {
	if g == nil {
		return nil
	}
	cp := g.deepCopy()
	if !isZeroStyle(style) {
		cp.Style = style
	}
	d.parent(parent).Append(cp)
	return cp
}

func isZeroStyle(s Style) bool {
	return s.ID == "" && s.Fill == nil && s.Stroke == nil && s.StrokeWidth == 0 &&
		s.Opacity == 0 && s.FillOpacity == 0 && s.StrokeOpacity == 0 &&
		s.Dash == nil && s.DashOffset == 0 && s.LineJoin == NilJoin && s.LineCap == NilCap &&
		s.Transform.IsIdentity() && !s.EvenOdd
}
