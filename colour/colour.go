// Implements an RGB colour convertible from and to
// the HLS, HSV and YIQ colour spaces, and a
// triadic palette driven by a dna.Sequence.
//
// All components, including hues, are expressed in [0, 1].
package colour

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Colour stores RGB components, usually in [0, 1].
// The components are not clamped on construction: only the conversions
// to 8 bit values (Hex, NRGBA) clamp them.
type Colour struct {
	R, G, B float64
}

var (
	Black = Colour{}
	White = Colour{1, 1, 1}
)

func New(r, g, b float64) Colour { return Colour{R: r, G: g, B: b} }

// FromHLS returns the colour with hue `h`, lightness `l` and saturation `s`.
func FromHLS(h, l, s float64) Colour {
	var c Colour
	c.SetHLS(h, l, s)
	return c
}

// FromHSV returns the colour with hue `h`, saturation `s` and value `v`.
func FromHSV(h, s, v float64) Colour {
	var c Colour
	c.SetHSV(h, s, v)
	return c
}

func FromYIQ(y, i, q float64) Colour {
	var c Colour
	c.SetYIQ(y, i, q)
	return c
}

func (c Colour) RGB() (r, g, b float64) { return c.R, c.G, c.B }

// converts a hue in turns to degrees in [0, 360)
func toDegrees(h float64) float64 {
	deg := Wrap(0, h, 1) * 360
	if deg >= 360 {
		deg = 0
	}
	return deg
}

func (c Colour) colorful() colorful.Color { return colorful.Color{R: c.R, G: c.G, B: c.B} }

func (c *Colour) setColorful(col colorful.Color) { c.R, c.G, c.B = col.R, col.G, col.B }

// HLS returns the hue, lightness and saturation.
func (c Colour) HLS() (h, l, s float64) {
	deg, s, l := c.colorful().Hsl()
	return deg / 360, l, s
}

// SetHLS updates the colour from hue, lightness and saturation.
// The hue is wrapped in [0, 1).
func (c *Colour) SetHLS(h, l, s float64) {
	c.setColorful(colorful.Hsl(toDegrees(h), s, l))
}

// HSV returns the hue, saturation and value.
func (c Colour) HSV() (h, s, v float64) {
	deg, s, v := c.colorful().Hsv()
	return deg / 360, s, v
}

// SetHSV updates the colour from hue, saturation and value.
// The hue is wrapped in [0, 1).
func (c *Colour) SetHSV(h, s, v float64) {
	c.setColorful(colorful.Hsv(toDegrees(h), s, v))
}

// YIQ returns the luma and chrominance of the NTSC colour space.
func (c Colour) YIQ() (y, i, q float64) {
	y = 0.30*c.R + 0.59*c.G + 0.11*c.B
	i = 0.74*(c.R-y) - 0.27*(c.B-y)
	q = 0.48*(c.R-y) + 0.41*(c.B-y)
	return
}

// SetYIQ updates the colour from NTSC luma and chrominance.
// Out of gamut values are kept.
func (c *Colour) SetYIQ(y, i, q float64) {
	c.R = y + 0.9468822170900693*i + 0.6235565819861433*q
	c.G = y - 0.27478764629897834*i - 0.6356910791873801*q
	c.B = y - 1.1085450346420322*i + 1.7090069284064666*q
}

func to8Bits(v float64) uint8 {
	return uint8(Clamp(0, v*255, 255))
}

// Hex returns the "#rrggbb" lowercase representation.
// Each component is scaled by 255, clamped to [0, 255] and truncated,
// so that Hex never fails.
func (c Colour) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", to8Bits(c.R), to8Bits(c.G), to8Bits(c.B))
}

// String returns the hex representation.
func (c Colour) String() string { return c.Hex() }

// NRGBA returns the clamped, opaque 8 bits version of the colour.
func (c Colour) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8Bits(c.R), G: to8Bits(c.G), B: to8Bits(c.B), A: 0xff}
}

// FromColor converts a color.Color, ignoring the alpha channel.
func FromColor(col color.Color) Colour {
	nrgba := color.NRGBAModel.Convert(col).(color.NRGBA)
	return Colour{float64(nrgba.R) / 255, float64(nrgba.G) / 255, float64(nrgba.B) / 255}
}

// ParseHex parses "#rrggbb" or "#rgb" values, as written by Hex.
func ParseHex(s string) (Colour, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return Colour{}, fmt.Errorf("invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Colour{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return Colour{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
	}, nil
}

// Wrap maps `x` into [min, max) with a floating modulo,
// so that negative values wrap from the top.
func Wrap(min, x, max float64) float64 {
	d := max - min
	out := math.Mod(x-min, d)
	if out < 0 {
		out += d
	}
	if out >= d { // -tiny + d rounds to d
		out = 0
	}
	return out + min
}

// Clamp restricts `x` to [min, max].
func Clamp(min, x, max float64) float64 {
	return math.Max(min, math.Min(max, x))
}
