// Implements a raster backend to render SVG documents,
// by wrapping rasterx.
package svgraster

import (
	"image"
	"image/png"
	"io"
	"math"

	"github.com/benoitkugler/svgdna/svgdoc"
	"github.com/srwiley/rasterx"
)

var _ svgdoc.Driver = (*Renderer)(nil) // assert interface conformance

type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
}

// NewRenderer returns a renderer with default values.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
// If scanner is nil, a default scanner rasterx.ScannerGV is used
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	if scanner == nil {
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		scanner = rasterx.NewScannerGV(width, height, img, img.Bounds())
	}
	return &Renderer{dasher: rasterx.NewDasher(width, height, scanner), filler: rasterx.NewFiller(width, height, scanner)}
}

// Rasterize uses a ScannerGV instance to render the
// document into an image and returns it.
// The image size is the document size, rounded up, and
// the background is transparent.
func Rasterize(doc *svgdoc.Document) *image.RGBA {
	w, h := int(math.Ceil(doc.Width)), int(math.Ceil(doc.Height))
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	renderer := NewRenderer(w, h, scanner)
	doc.Draw(renderer, 1.0)
	return img
}

// WritePNG rasterizes the document and encodes it as PNG
func WritePNG(w io.Writer, doc *svgdoc.Document) error {
	return png.Encode(w, Rasterize(doc))
}

// SetupDrawers implements svgdoc.Driver
func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (f svgdoc.Filler, s svgdoc.Stroker) {
	if willFill {
		f = filler{rd.filler}
	}
	if willStroke {
		s = stroker{rd.dasher}
	}
	return f, s
}

type filler struct {
	*rasterx.Filler
}

func (f filler) SetColor(color svgdoc.Pattern, opacity float64) {
	setColorFromPattern(color, opacity, f.Scanner)
}

type stroker struct {
	*rasterx.Dasher
}

func (s stroker) SetColor(color svgdoc.Pattern, opacity float64) {
	setColorFromPattern(color, opacity, s.Scanner)
}

func (s stroker) SetStrokeOptions(options svgdoc.StrokeOptions) {
	s.SetStroke(
		options.LineWidth, options.Join.MiterLimit, capToFunc[options.Join.LeadLineCap],
		capToFunc[options.Join.TrailLineCap], gapToFunc[options.Join.LineGap],
		joinToJoin[options.Join.LineJoin], options.Dash.Dash, options.Dash.DashOffset,
	)
}

func toRasterxGradient(grad svgdoc.Gradient) rasterx.Gradient {
	var (
		points   [5]float64
		isRadial bool
	)
	switch dir := grad.Direction.(type) {
	case svgdoc.Linear:
		points[0], points[1], points[2], points[3] = dir[0], dir[1], dir[2], dir[3]
		isRadial = false
	case svgdoc.Radial:
		points[0], points[1], points[2], points[3], points[4], _ = dir[0], dir[1], dir[2], dir[3], dir[4], dir[5] // in rasterx fr is ignored
		isRadial = true
	}
	stops := make([]rasterx.GradStop, len(grad.Stops))
	for i := range grad.Stops {
		stops[i] = rasterx.GradStop(grad.Stops[i])
	}
	return rasterx.Gradient{
		Points:   points,
		Stops:    stops,
		Bounds:   grad.Bounds,
		Matrix:   rasterx.Matrix2D(grad.Matrix.OrIdentity()),
		Spread:   rasterx.SpreadMethod(grad.Spread),
		Units:    rasterx.GradientUnits(grad.Units),
		IsRadial: isRadial,
	}
}

// resolve gradient color
func setColorFromPattern(color svgdoc.Pattern, opacity float64, scanner rasterx.Scanner) {
	switch fillerColor := color.(type) {
	case svgdoc.PlainColor:
		scanner.SetColor(rasterx.ApplyOpacity(fillerColor, opacity))
	case *svgdoc.Gradient:
		grad := *fillerColor
		if grad.Units == svgdoc.ObjectBoundingBox {
			fRect := scanner.GetPathExtent()
			mnx, mny := float64(fRect.Min.X)/64, float64(fRect.Min.Y)/64
			mxx, mxy := float64(fRect.Max.X)/64, float64(fRect.Max.Y)/64
			grad.Bounds.X, grad.Bounds.Y = mnx, mny
			grad.Bounds.W, grad.Bounds.H = mxx-mnx, mxy-mny
		}
		rasterxGradient := toRasterxGradient(grad)
		scanner.SetColor(rasterxGradient.GetColorFunction(opacity))
	}
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		svgdoc.NilJoin:   rasterx.Miter,
		svgdoc.Round:     rasterx.Round,
		svgdoc.Bevel:     rasterx.Bevel,
		svgdoc.Miter:     rasterx.Miter,
		svgdoc.MiterClip: rasterx.MiterClip,
		svgdoc.Arc:       rasterx.Arc,
		svgdoc.ArcClip:   rasterx.ArcClip,
	}

	capToFunc = [...]rasterx.CapFunc{
		svgdoc.NilCap:       rasterx.ButtCap,
		svgdoc.ButtCap:      rasterx.ButtCap,
		svgdoc.SquareCap:    rasterx.SquareCap,
		svgdoc.RoundCap:     rasterx.RoundCap,
		svgdoc.CubicCap:     rasterx.CubicCap,
		svgdoc.QuadraticCap: rasterx.QuadraticCap,
	}

	gapToFunc = [...]rasterx.GapFunc{
		svgdoc.NilGap:       rasterx.FlatGap,
		svgdoc.FlatGap:      rasterx.FlatGap,
		svgdoc.RoundGap:     rasterx.RoundGap,
		svgdoc.CubicGap:     rasterx.CubicGap,
		svgdoc.QuadraticGap: rasterx.QuadraticGap,
	}
)
