package svgdoc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	errParamMismatch  = errors.New("svgdoc: param mismatch")
	errCommandUnknown = errors.New("svgdoc: unknown command")
)

// pathCursor is used while parsing the path mini-language
type pathCursor struct {
	path   Path
	points []float64
	d      string
	pos    int
}

// ParsePath parses the `d` attribute of an SVG path element.
func ParsePath(d string) (Path, error) {
	c := pathCursor{d: d}
	if err := c.compilePath(); err != nil {
		return nil, err
	}
	return c.path, nil
}

func isSeparator(b byte) bool {
	return b == ' ' || b == ',' || b == '\t' || b == '\n' || b == '\r'
}

func isCommand(b byte) bool {
	return strings.IndexByte("MmLlHhVvCcSsQqTtAaZz", b) >= 0
}

func (c *pathCursor) skipSeparators() {
	for c.pos < len(c.d) && isSeparator(c.d[c.pos]) {
		c.pos++
	}
}

// readNumber scans a float, accepting the compact SVG forms
// like "1.5.5" (two numbers) or "1-2".
func (c *pathCursor) readNumber() (float64, error) {
	c.skipSeparators()
	start := c.pos
	if c.pos < len(c.d) && (c.d[c.pos] == '-' || c.d[c.pos] == '+') {
		c.pos++
	}
	seenDot, seenExp := false, false
	for c.pos < len(c.d) {
		b := c.d[c.pos]
		switch {
		case b >= '0' && b <= '9':
		case b == '.' && !seenDot && !seenExp:
			seenDot = true
		case (b == 'e' || b == 'E') && !seenExp:
			seenExp = true
			if c.pos+1 < len(c.d) && (c.d[c.pos+1] == '-' || c.d[c.pos+1] == '+') {
				c.pos++
			}
		default:
			return c.parseChunk(start)
		}
		c.pos++
	}
	return c.parseChunk(start)
}

func (c *pathCursor) parseChunk(start int) (float64, error) {
	if start == c.pos {
		return 0, fmt.Errorf("%w: number expected at %d", errParamMismatch, start)
	}
	return strconv.ParseFloat(c.d[start:c.pos], 64)
}

// readFlag reads an arc flag, which may not be followed by a separator
func (c *pathCursor) readFlag() (bool, error) {
	c.skipSeparators()
	if c.pos >= len(c.d) {
		return false, errParamMismatch
	}
	b := c.d[c.pos]
	c.pos++
	switch b {
	case '0':
		return false, nil
	case '1':
		return true, nil
	}
	return false, fmt.Errorf("%w: invalid arc flag %q", errParamMismatch, b)
}

// hasNumber returns true if a number starts at the next non separator position.
func (c *pathCursor) hasNumber() bool {
	c.skipSeparators()
	if c.pos >= len(c.d) {
		return false
	}
	b := c.d[c.pos]
	return (b >= '0' && b <= '9') || b == '-' || b == '+' || b == '.'
}

// getPoints reads `n` numbers
func (c *pathCursor) getPoints(n int) error {
	c.points = c.points[:0]
	for i := 0; i < n; i++ {
		v, err := c.readNumber()
		if err != nil {
			return err
		}
		c.points = append(c.points, v)
	}
	return nil
}

var commandArity = map[byte]int{
	'm': 2, 'l': 2, 'h': 1, 'v': 1, 'c': 6, 's': 4, 'q': 4, 't': 2,
}

func (c *pathCursor) compilePath() error {
	c.path = c.path[:0]
	for {
		c.skipSeparators()
		if c.pos >= len(c.d) {
			return nil
		}
		cmd := c.d[c.pos]
		if !isCommand(cmd) {
			return fmt.Errorf("%w: %q", errCommandUnknown, cmd)
		}
		if len(c.path) == 0 && cmd != 'M' && cmd != 'm' {
			return fmt.Errorf("%w: path must start with a move", errParamMismatch)
		}
		c.pos++
		if err := c.addSegments(cmd); err != nil {
			return err
		}
	}
}

// addSegments consumes the arguments of `cmd`, which
// may be repeated.
func (c *pathCursor) addSegments(cmd byte) error {
	switch cmd {
	case 'Z', 'z':
		c.path.Close()
		return nil
	case 'A', 'a':
		return c.addArcs(cmd == 'a')
	}
	rel := cmd >= 'a'
	lower := cmd | 0x20
	first := true
	for first || c.hasNumber() {
		if err := c.getPoints(commandArity[lower]); err != nil {
			return err
		}
		pts := c.points
		switch lower {
		case 'm':
			// subsequent pairs are implicit line commands
			if !first {
				if rel {
					c.path.LineRel(pts[0], pts[1])
				} else {
					c.path.Line(pts[0], pts[1])
				}
			} else if rel && len(c.path) != 0 {
				c.path.MoveRel(pts[0], pts[1])
			} else {
				c.path.Move(pts[0], pts[1])
			}
		case 'l':
			if rel {
				c.path.LineRel(pts[0], pts[1])
			} else {
				c.path.Line(pts[0], pts[1])
			}
		case 'h':
			if rel {
				c.path.HorizontalRel(pts[0])
			} else {
				c.path.Horizontal(pts[0])
			}
		case 'v':
			if rel {
				c.path.VerticalRel(pts[0])
			} else {
				c.path.Vertical(pts[0])
			}
		case 'c':
			if rel {
				c.path.CubicRel(pts[0], pts[1], pts[2], pts[3], pts[4], pts[5])
			} else {
				c.path.Cubic(pts[0], pts[1], pts[2], pts[3], pts[4], pts[5])
			}
		case 's':
			if rel {
				c.path.SmoothCubicRel(pts[0], pts[1], pts[2], pts[3])
			} else {
				c.path.SmoothCubic(pts[0], pts[1], pts[2], pts[3])
			}
		case 'q':
			if rel {
				c.path.QuadRel(pts[0], pts[1], pts[2], pts[3])
			} else {
				c.path.Quad(pts[0], pts[1], pts[2], pts[3])
			}
		case 't':
			if rel {
				c.path.SmoothQuadRel(pts[0], pts[1])
			} else {
				c.path.SmoothQuad(pts[0], pts[1])
			}
		}
		first = false
	}
	return nil
}

func (c *pathCursor) addArcs(rel bool) error {
	first := true
	for first || c.hasNumber() {
		if err := c.getPoints(3); err != nil {
			return err
		}
		rx, ry, rot := c.points[0], c.points[1], c.points[2]
		large, err := c.readFlag()
		if err != nil {
			return err
		}
		sweep, err := c.readFlag()
		if err != nil {
			return err
		}
		if err = c.getPoints(2); err != nil {
			return err
		}
		if rel {
			c.path.ArcRel(rx, ry, rot, large, sweep, c.points[0], c.points[1])
		} else {
			c.path.Arc(rx, ry, rot, large, sweep, c.points[0], c.points[1])
		}
		first = false
	}
	return nil
}
