package svgdoc

import (
	"github.com/benoitkugler/svgdna/geom"
)

// Element is a node of the document tree.
type Element interface {
	// Attributes returns the presentation attributes of the element,
	// which may be modified in place.
	Attributes() *Style

	// clone returns a deep copy of the element.
	clone() Element
}

// Attributes implements Element.
func (s *Style) Attributes() *Style { return s }

func (s Style) copy() Style {
	out := s
	if s.Dash != nil {
		out.Dash = append([]float64(nil), s.Dash...)
	}
	return out
}

// Group is a container element, drawn as
// its children with its style inherited.
type Group struct {
	Style
	Children []Element
}

// Append adds `elements` as children of `g`
func (g *Group) Append(elements ...Element) { g.Children = append(g.Children, elements...) }

func (g *Group) clone() Element { return g.deepCopy() }

func (g *Group) deepCopy() *Group {
	out := &Group{Style: g.Style.copy()}
	if g.Children == nil {
		return out
	}
	out.Children = make([]Element, len(g.Children))
	for i, child := range g.Children {
		out.Children[i] = child.clone()
	}
	return out
}

// Walk calls `fn` for each descendant of the group, in document order,
// descending into sub groups.
func (g *Group) Walk(fn func(Element)) {
	for _, child := range g.Children {
		fn(child)
		if sub, ok := child.(*Group); ok {
			sub.Walk(fn)
		}
	}
}

// GroupRef is a group registered in the document definitions,
// only drawn through Use elements.
type GroupRef struct {
	Group
}

// RefID implements Ref.
func (g *GroupRef) RefID() string { return g.ID }

func (g *GroupRef) clone() Element { return &GroupRef{Group: *g.Group.deepCopy()} }

type Circle struct {
	Style
	Center geom.Point
	Radius float64
}

func (c *Circle) clone() Element {
	out := *c
	out.Style = c.Style.copy()
	return &out
}

type Ellipse struct {
	Style
	Center geom.Point
	Rx, Ry float64
}

func (e *Ellipse) clone() Element {
	out := *e
	out.Style = e.Style.copy()
	return &out
}

// Rect is a rectangle, with optional rounded corners.
type Rect struct {
	Style
	X, Y, Width, Height float64
	Rx, Ry              float64
}

func (r *Rect) clone() Element {
	out := *r
	out.Style = r.Style.copy()
	return &out
}

type LineElement struct {
	Style
	geom.Line
}

func (l *LineElement) clone() Element {
	out := *l
	out.Style = l.Style.copy()
	return &out
}

// Polyline joins its points; when Closed is true, it is
// encoded as a polygon.
type Polyline struct {
	Style
	Points []geom.Point
	Closed bool
}

func (p *Polyline) clone() Element {
	out := *p
	out.Style = p.Style.copy()
	out.Points = append([]geom.Point(nil), p.Points...)
	return &out
}

type PathElement struct {
	Style
	Path Path
}

func (p *PathElement) clone() Element {
	out := *p
	out.Style = p.Style.copy()
	out.Path = append(Path(nil), p.Path...)
	return &out
}

// Use draws a referenced group at (X, Y).
type Use struct {
	Style
	Ref  *GroupRef
	X, Y float64
}

// the reference is shared, not copied
func (u *Use) clone() Element {
	out := *u
	out.Style = u.Style.copy()
	return &out
}
