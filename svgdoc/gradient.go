package svgdoc

import (
	"image/color"

	"github.com/benoitkugler/svgdna/geom"
)

// GradientUnits is the type for gradient units
type GradientUnits byte

// SVG bounds paremater constants
const (
	ObjectBoundingBox GradientUnits = iota
	UserSpaceOnUse
)

// SpreadMethod is the type for spread parameters
type SpreadMethod byte

// SVG spread parameter constants
const (
	PadSpread SpreadMethod = iota
	ReflectSpread
	RepeatSpread
)

// GradStop represents a stop in the SVG 2.0 gradient specification
type GradStop struct {
	StopColor color.Color
	Offset    float64
	Opacity   float64
}

// Bounds defines a bounding box, such as a viewport
// or a path extent.
type Bounds struct{ X, Y, W, H float64 }

// Gradient holds a description of an SVG 2.0 gradient.
// Gradients are references: they are registered in the
// document definitions and used as Pattern through their ID.
type Gradient struct {
	ID        string
	Direction gradientDirecter
	Stops     []GradStop
	Bounds    Bounds
	Matrix    geom.Matrix2D
	Spread    SpreadMethod
	Units     GradientUnits
}

func (*Gradient) isPattern() {}

func (g *Gradient) attr() string { return URL(g.ID) }

// RefID implements Ref.
func (g *Gradient) RefID() string { return g.ID }

// radial or linear
type gradientDirecter interface {
	isRadial() bool
}

// x1, y1, x2, y2
type Linear [4]float64

func (Linear) isRadial() bool { return false }

// cx, cy, fx, fy, r, fr
type Radial [6]float64

func (Radial) isRadial() bool { return true }

// AddStop appends a stop; `offset` is in [0, 1].
func (g *Gradient) AddStop(offset float64, c color.Color, opacity float64) *Gradient {
	g.Stops = append(g.Stops, GradStop{StopColor: c, Offset: offset, Opacity: opacity})
	return g
}
