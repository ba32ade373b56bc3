package svgdoc

import (
	"math"

	"github.com/benoitkugler/svgdna/colour"
	"github.com/benoitkugler/svgdna/geom"
	"golang.org/x/image/math/fixed"
)

// Pattern is the paint used to fill or stroke a shape:
// either PlainColor, None or a *Gradient.
type Pattern interface {
	isPattern()
	// attr returns the SVG value of the fill or stroke attribute
	attr() string
}

// PlainColor is a solid, opaque colour.
type PlainColor struct {
	colour.Colour
}

// NewPlainColor returns a solid paint.
func NewPlainColor(c colour.Colour) PlainColor { return PlainColor{c} }

// RGBA implements color.Color, with clamped components.
func (c PlainColor) RGBA() (r, g, b, a uint32) { return c.NRGBA().RGBA() }

func (PlainColor) isPattern()     {}
func (c PlainColor) attr() string { return c.Hex() }

type noPattern struct{}

func (noPattern) isPattern()   {}
func (noPattern) attr() string { return "none" }

// None disables painting, as opposed to a nil Pattern, which inherits
// the paint of the parent.
var None Pattern = noPattern{}

var black = NewPlainColor(colour.Black)

// Style enumerates the presentation attributes supported by the elements.
// The zero value of each field means "not set": the value is inherited
// from the parent group, and then from the SVG initial values.
type Style struct {
	ID string

	Fill, Stroke Pattern
	StrokeWidth  float64

	// Opacity applies to both fill and stroke. Since zero means "not set",
	// use None to hide a paint.
	Opacity, FillOpacity, StrokeOpacity float64

	Dash       []float64
	DashOffset float64
	LineJoin   JoinMode
	LineCap    CapMode

	// Transform is applied to the element, before its parent transforms.
	// The zero matrix means no transform.
	Transform geom.Matrix2D

	// EvenOdd selects the even-odd fill rule instead of non-zero.
	EvenOdd bool
}

// defaultStyle matches the SVG initial values: black fill, no stroke,
// full opacity, with a 1 unit wide Miter joined stroke.
var defaultStyle = resolvedStyle{
	fill:          black,
	stroke:        None,
	strokeWidth:   1,
	fillOpacity:   1,
	strokeOpacity: 1,
	join: JoinOptions{
		MiterLimit:   fToFixed(4),
		LineJoin:     Miter,
		TrailLineCap: ButtCap,
		LineGap:      FlatGap,
	},
	transform: geom.Identity,
}

func fToFixed(f float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(f * 64))
}

// resolvedStyle is the state of the style when drawing:
// every attribute is known.
type resolvedStyle struct {
	fill, stroke               Pattern
	strokeWidth                float64
	fillOpacity, strokeOpacity float64
	useEvenOdd                 bool

	join JoinOptions
	dash DashOptions

	transform geom.Matrix2D // current transform, from user space to device space
}

// inherit returns the style of a child with style `s`.
func (parent resolvedStyle) inherit(s Style) resolvedStyle {
	out := parent
	if s.Fill != nil {
		out.fill = s.Fill
	}
	if s.Stroke != nil {
		out.stroke = s.Stroke
	}
	if s.StrokeWidth != 0 {
		out.strokeWidth = s.StrokeWidth
	}
	if s.Opacity != 0 {
		out.fillOpacity *= s.Opacity
		out.strokeOpacity *= s.Opacity
	}
	if s.FillOpacity != 0 {
		out.fillOpacity *= s.FillOpacity
	}
	if s.StrokeOpacity != 0 {
		out.strokeOpacity *= s.StrokeOpacity
	}
	if s.Dash != nil {
		out.dash = DashOptions{Dash: s.Dash, DashOffset: s.DashOffset}
	}
	if s.LineJoin != NilJoin {
		out.join.LineJoin = s.LineJoin
	}
	if s.LineCap != NilCap {
		out.join.TrailLineCap = s.LineCap
	}
	if s.EvenOdd {
		out.useEvenOdd = true
	}
	if !s.Transform.IsIdentity() {
		out.transform = out.transform.Mult(s.Transform)
	}
	return out
}

func (s resolvedStyle) willFill() bool {
	return s.fill != nil && s.fill != None
}

func (s resolvedStyle) willStroke() bool {
	return s.stroke != nil && s.stroke != None && s.strokeWidth > 0
}

// strokeOptions returns the stroke parameters in device space:
// the width is scaled by the mean scale factor of the transform.
func (s resolvedStyle) strokeOptions() StrokeOptions {
	scale := s.transform.Determinant()
	if scale < 0 {
		scale = -scale
	}
	scale = math.Sqrt(scale)
	dash := s.dash
	if len(dash.Dash) != 0 && scale != 1 {
		scaled := make([]float64, len(dash.Dash))
		for i, d := range dash.Dash {
			scaled[i] = d * scale
		}
		dash = DashOptions{Dash: scaled, DashOffset: dash.DashOffset * scale}
	}
	join := s.join
	if join.LeadLineCap == NilCap {
		join.LeadLineCap = join.TrailLineCap
	}
	return StrokeOptions{
		LineWidth: fToFixed(s.strokeWidth * scale),
		Join:      join,
		Dash:      dash,
	}
}

// DashOptions defines the stroke dash pattern
type DashOptions struct {
	Dash       []float64 // values for the dash pattern (nil or an empty slice for no dashes)
	DashOffset float64   // starting offset into the dash array
}

// JoinMode type to specify how segments join.
type JoinMode uint8

// JoinMode constants determine how stroke segments bridge the gap at a join
// ArcClip mode is like MiterClip applied to arcs, and is not part of the SVG2.0
// standard.
const (
	NilJoin JoinMode = iota // inherit
	Arc
	Round
	Bevel
	Miter
	MiterClip
	ArcClip
)

func (s JoinMode) String() string {
	switch s {
	case Round:
		return "round"
	case Bevel:
		return "bevel"
	case Miter:
		return "miter"
	case MiterClip:
		return "miter-clip"
	case Arc:
		return "arcs"
	case ArcClip:
		return "arc-clip"
	default:
		return ""
	}
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	NilCap CapMode = iota // default value
	ButtCap
	SquareCap
	RoundCap
	CubicCap     // Not part of the SVG2.0 standard.
	QuadraticCap // Not part of the SVG2.0 standard.
)

func (c CapMode) String() string {
	switch c {
	case ButtCap:
		return "butt"
	case SquareCap:
		return "square"
	case RoundCap:
		return "round"
	case CubicCap:
		return "cubic"
	case QuadraticCap:
		return "quadratic"
	default:
		return ""
	}
}

// GapMode defines how to bridge gaps when the miter limit is exceeded,
// and is not part of the SVG2.0 standard.
type GapMode uint8

const (
	NilGap GapMode = iota
	FlatGap
	RoundGap
	CubicGap
	QuadraticGap
)

type JoinOptions struct {
	MiterLimit   fixed.Int26_6 // the miter cutoff value for miter, arc, miterclip and arcClip joinModes
	LineJoin     JoinMode      // JoinMode for curve segments
	TrailLineCap CapMode       // capping functions for leading and trailing line ends. If one is nil, the other function is used at both ends.

	LeadLineCap CapMode // not part of the standard specification
	LineGap     GapMode // not part of the standard specification. determines how a gap on the convex side of two lines joining is filled
}

type StrokeOptions struct {
	LineWidth fixed.Int26_6 // width of the line
	Join      JoinOptions
	Dash      DashOptions
}
