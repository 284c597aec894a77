package whale

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/nightwhale/render"
	"github.com/lixenwraith/nightwhale/vmath"
)

const tol = 1e-9

func TestSegmentTrailsTargetAtFixedSpacing(t *testing.T) {
	s := NewSegment(Body, DefaultShape(), 0, 0, 20)
	s.Update(vmath.V2(100, 0))

	assert.True(t, s.Position().ApproxEqual(vmath.V2(80, 0), tol), "got %v", s.Position())
	assert.InDelta(t, 0.0, s.Heading(), tol)
	// Offset points back along -X, atan2 may report either sign of π
	assert.InDelta(t, math.Pi, math.Abs(s.TrailingAngle()), tol)
}

func TestSegmentDistanceEqualsMagnitude(t *testing.T) {
	rng := vmath.NewFastRand(99)
	for _, kind := range []Kind{Head, Body, Tail, FinBearing} {
		s := NewSegment(kind, DefaultShape(), 3, -7, 45)
		for i := 0; i < 200; i++ {
			target := vmath.V2(rng.Range(-500, 500), rng.Range(-500, 500))
			s.Update(target)
			require.InDelta(t, math.Abs(s.Magnitude()), s.Position().Dist(target), 1e-6, "kind %s step %d", kind, i)
		}
	}
}

func TestTailUsesShorterSpacingAndReach(t *testing.T) {
	shape := DefaultShape()
	tail := NewSegment(Tail, shape, 0, 0, 40)
	body := NewSegment(Body, shape, 0, 0, 40)

	assert.Equal(t, 40-shape.TailShrink, tail.Magnitude())
	assert.Equal(t, 40.0, body.Magnitude())
	assert.Equal(t, shape.TailReach, tail.Reach())
	assert.Equal(t, shape.Reach, body.Reach())

	tail.Update(vmath.V2(0, 100))
	assert.True(t, tail.Position().ApproxEqual(vmath.V2(0, 90), tol), "got %v", tail.Position())
}

func TestTrapezoidCornerWidths(t *testing.T) {
	rng := vmath.NewFastRand(5)
	s := NewSegment(Body, DefaultShape(), 0, 0, 30)
	s.SetFrontWidth(44)
	s.SetBackWidth(18)
	s.SetMargin(7)
	for i := 0; i < 100; i++ {
		s.Update(vmath.V2(rng.Range(-300, 300), rng.Range(-300, 300)))
		c := s.Corners()
		require.InDelta(t, 44.0, c[0].Dist(c[1]), 1e-6)
		require.InDelta(t, 18.0, c[2].Dist(c[3]), 1e-6)
	}
}

func TestTrapezoidOrientation(t *testing.T) {
	s := NewSegment(Body, DefaultShape(), 0, 0, 20)
	s.Update(vmath.V2(100, 0))
	c := s.Corners()

	// Front edge straddles the position, perpendicular to travel
	assert.True(t, c[0].Midpoint(c[1]).ApproxEqual(vmath.V2(80-s.Margin(), 0), tol))
	assert.InDelta(t, c[0].X, c[1].X, tol)

	// Back edge sits Reach+Margin ahead along the heading
	far := vmath.V2(80+s.Reach()+s.Margin(), 0)
	assert.True(t, c[2].Midpoint(c[3]).ApproxEqual(far, tol), "got %v", c[2].Midpoint(c[3]))
	assert.True(t, s.FinAnchor().ApproxEqual(far, tol))
}

func TestDegenerateWidthsAreAccepted(t *testing.T) {
	s := NewSegment(Body, DefaultShape(), 0, 0, 20)
	s.SetFrontWidth(0)
	s.SetBackWidth(-10)
	s.SetMargin(-5)
	require.NotPanics(t, func() { s.Update(vmath.V2(50, 50)) })

	c := s.Corners()
	assert.True(t, c[0].ApproxEqual(c[1], tol))
	assert.InDelta(t, 10.0, c[2].Dist(c[3]), tol)
}

func TestUpdateOnOwnPositionDoesNotPanic(t *testing.T) {
	s := NewSegment(Body, DefaultShape(), 10, 10, 20)
	require.NotPanics(t, func() { s.Update(vmath.V2(10, 10)) })
	assert.Equal(t, vmath.V2(10, 10), s.Position())
}

func TestDrawIsIdempotent(t *testing.T) {
	s := NewSegment(FinBearing, DefaultShape(), 0, 0, 30)
	s.Update(vmath.V2(40, 25))

	first := render.NewRecorder(200, 200)
	second := render.NewRecorder(200, 200)
	s.Draw(first)
	s.Draw(second)

	assert.Equal(t, first.Ops, second.Ops)
}

func TestFinBearingDrawsFinAtAnchor(t *testing.T) {
	s := NewSegment(FinBearing, DefaultShape(), 0, 0, 30)
	s.Update(vmath.V2(0, 100))

	rec := render.NewRecorder(200, 200)
	s.Draw(rec)
	shapes := rec.Shapes()
	require.Len(t, shapes, 2)

	body, fin := shapes[0], shapes[1]
	assert.Equal(t, s.Outline(), body.Vertices)
	require.Len(t, fin.Vertices, 7)
	assert.True(t, fin.Vertices[0].ApproxEqual(s.FinAnchor(), 1e-9))

	// Lobes are mirror images across the heading axis through the anchor
	l1 := fin.Vertices[2].Sub(s.FinAnchor())
	l2 := fin.Vertices[5].Sub(s.FinAnchor())
	heading := vmath.FromAngle(s.Heading(), 1)
	assert.InDelta(t, l1.X*heading.X+l1.Y*heading.Y, l2.X*heading.X+l2.Y*heading.Y, 1e-9)
	assert.InDelta(t, l1.Mag(), l2.Mag(), 1e-9)

	plain := NewSegment(Body, DefaultShape(), 0, 0, 30)
	rec.Reset()
	plain.Draw(rec)
	assert.Len(t, rec.Shapes(), 1)
}

func TestOutlineRepeatsFirstTwoCorners(t *testing.T) {
	s := NewSegment(Body, DefaultShape(), 0, 0, 30)
	s.Update(vmath.V2(10, 10))
	o := s.Outline()
	require.Len(t, o, 6)
	assert.Equal(t, o[0], o[4])
	assert.Equal(t, o[1], o[5])
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{Head, Body, Tail, FinBearing} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	got, err := ParseKind(" Fin-Bearing ")
	require.NoError(t, err)
	assert.Equal(t, FinBearing, got)

	_, err = ParseKind("flipper")
	assert.Error(t, err)
	assert.Equal(t, "kind(9)", Kind(9).String())
}
