package geom

// Spline is a cubic Bezier curve from P0 to P3,
// with control points P1 and P2.
type Spline struct {
	P0, P1, P2, P3 Point
}

// NewSpline uses the end points of `a` as start and first control point,
// and the end points of `b` as second control point and end.
func NewSpline(a, b Line) Spline {
	return Spline{a.P1, a.P2, b.P1, b.P2}
}

// cubic polinomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		(p0)
}

// At evaluates the curve at t in [0, 1].
func (s Spline) At(t float64) Point {
	switch t {
	case 0:
		return s.P0
	case 1:
		return s.P3
	}
	return Point{
		bezierSpline(s.P0.X, s.P1.X, s.P2.X, s.P3.X, t),
		bezierSpline(s.P0.Y, s.P1.Y, s.P2.Y, s.P3.Y, t),
	}
}

// CalcSpline samples steps+2 points with uniform parameter
// spacing, from P0 to P3 included.
func (s Spline) CalcSpline(steps int) []Point {
	if steps < 0 {
		steps = 0
	}
	out := make([]Point, steps+2)
	div := float64(steps + 1)
	for i := range out {
		out[i] = s.At(float64(i) / div)
	}
	return out
}

// Lines joins the samples returned by CalcSpline.
func (s Spline) Lines(steps int) []Line {
	pts := s.CalcSpline(steps)
	out := make([]Line, len(pts)-1)
	for i := range out {
		out[i] = Line{pts[i], pts[i+1]}
	}
	return out
}
