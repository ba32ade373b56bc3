package geom

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func assertMatrix(t *testing.T, exp, got Matrix2D) {
	t.Helper()
	if diff := cmp.Diff(exp, got, approx); diff != "" {
		t.Errorf("unexpected matrix (-want +got):\n%s", diff)
	}
}

func TestTranslateRotate(t *testing.T) {
	tr := NewTransform2D().Translate(5, 0).Rotate(0)
	assert.Equal(t, Pt(5, 0), tr.Point(Pt(0, 0)))
}

func TestCompositionOrder(t *testing.T) {
	// the last operation applies first
	m := Identity.Translate(10, 0).Scale(2, 2)
	assertPoint(t, Pt(12, 2), m.Point(Pt(1, 1)))

	m = Identity.Scale(2, 2).Translate(10, 0)
	assertPoint(t, Pt(22, 2), m.Point(Pt(1, 1)))

	assertPoint(t, Pt(0, 1), Identity.Rotate(math.Pi/2).Point(Pt(1, 0)))
	assertPoint(t, Pt(3, 2), Identity.RotateAround(math.Pi, 2, 1).Point(Pt(1, 0)))
}

func TestTransformMult(t *testing.T) {
	tr := NewTransform2D().Translate(10, 0)
	tr.Mult(Identity.Scale(2, 2))
	assertPoint(t, Pt(12, 2), tr.Point(Pt(1, 1))) // scaled, then translated
	assert.Equal(t, Identity.Translate(10, 0).Scale(2, 2), tr.Matrix())
}

func TestElementaryTransforms(t *testing.T) {
	p := Pt(2, 3)
	for _, tc := range []struct {
		m   Matrix2D
		exp Point
	}{
		{Identity.ShearX(2), Pt(8, 3)},
		{Identity.ShearY(2), Pt(2, 7)},
		{Identity.ReflectOrigin(), Pt(-2, -3)},
		{Identity.ReflectX(), Pt(2, -3)},
		{Identity.ReflectY(), Pt(-2, 3)},
		{Identity.SkewX(math.Pi / 4), Pt(5, 3)},
		{Identity.Scale(0.5, 3), Pt(1, 9)},
	} {
		assertPoint(t, tc.exp, tc.m.Point(p))
		assert.Equal(t, [3]float64{0, 0, 1}, tc.m.Rows()[2])
	}
}

func TestInvert(t *testing.T) {
	m := Identity.Translate(3, -4).Rotate(0.7).Scale(2, 0.5).ShearX(0.3)
	assertMatrix(t, Identity, m.Mult(m.Invert()))
	assertMatrix(t, Identity, m.Invert().Mult(m))

	p := Pt(-7, 11)
	assertPoint(t, p, m.Invert().Point(m.Point(p)))
}

func TestLineTransform(t *testing.T) {
	tr := NewTransform2D().Translate(1, 1)
	l := Line{Pt(0, 0), Pt(1, 0)}
	got := tr.Line(l)
	assert.Equal(t, Line{Pt(1, 1), Pt(2, 1)}, got)
	assert.Equal(t, Line{Pt(0, 0), Pt(1, 0)}, l) // not mutated
}

func TestPushPop(t *testing.T) {
	tr := NewTransform2D().Translate(3, 4).Rotate(1.2)
	before := tr.Matrix().Rows()

	tr.Push().Scale(3, 3).ShearY(0.5).Translate(-10, 2)
	assert.Equal(t, 1, tr.Depth())
	assert.NotEqual(t, before, tr.Matrix().Rows())

	require.NoError(t, tr.Pop())
	assert.Equal(t, before, tr.Matrix().Rows())
	assert.Equal(t, 0, tr.Depth())

	// nested
	tr.Push().Translate(1, 0).Push().Rotate(2)
	require.NoError(t, tr.Pop())
	require.NoError(t, tr.Pop())
	assert.Equal(t, before, tr.Matrix().Rows())
}

func TestPopUnderflow(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	defer zap.ReplaceGlobals(zap.New(core))()

	tr := NewTransform2D().Scale(2, 2)
	m := tr.Matrix()
	err := tr.Pop()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, m, tr.Matrix())
	assert.Equal(t, 1, logs.Len())
}

func TestReset(t *testing.T) {
	tr := NewTransform2D().Translate(1, 2).Push().Push()
	tr.Reset()
	assert.Equal(t, Identity, tr.Matrix())
	assert.Equal(t, 0, tr.Depth())
}

func TestSVG(t *testing.T) {
	assert.Equal(t, "matrix(1,0,0,1,0,0)", NewTransform2D().SVG())
	assert.Equal(t, "matrix(2,0,0,3,5,-1)", Identity.Translate(5, -1).Scale(2, 3).String())
	assert.True(t, Matrix2D{}.IsIdentity())
	assert.Equal(t, Identity, Matrix2D{}.OrIdentity())
}
