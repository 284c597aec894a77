package whale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/nightwhale/parameter"
	"github.com/lixenwraith/nightwhale/render"
	"github.com/lixenwraith/nightwhale/vmath"
)

func TestChainLagsBehindLeader(t *testing.T) {
	shape := DefaultShape()
	segs := []*Segment{
		NewSegment(Head, shape, 0, 0, 20),
		NewSegment(Body, shape, 0, 0, 20),
		NewSegment(Body, shape, 0, 0, 20),
	}
	start := make([]vmath.Vec2, len(segs))
	for i, s := range segs {
		start[i] = s.Position()
	}

	UpdateChain(vmath.V2(50, 50), segs)

	prev := vmath.V2(0, 0).Dist(vmath.V2(50, 50))
	for i, s := range segs {
		travelled := s.Position().Dist(start[i])
		assert.Less(t, travelled, prev, "segment %d", i)
		prev = travelled
	}
}

func TestChainTargetsPreviousSegment(t *testing.T) {
	w, err := New(DefaultConfig(), 800, 600)
	require.NoError(t, err)

	for i := 0; i < 30; i++ {
		w.Advance(1.0 / 60)
	}
	segs := w.Segments()
	require.InDelta(t, segs[0].Magnitude(), segs[0].Position().Dist(w.Head()), 1e-6)
	for i := 1; i < len(segs); i++ {
		d := segs[i].Position().Dist(segs[i-1].Position())
		require.InDelta(t, abs(segs[i].Magnitude()), d, 1e-6, "segment %d", i)
	}
}

func TestNewBuildsProfile(t *testing.T) {
	w, err := New(DefaultConfig(), 800, 600)
	require.NoError(t, err)

	segs := w.Segments()
	require.Len(t, segs, len(parameter.DefaultWhaleProfile))
	assert.Equal(t, Head, segs[0].Kind())
	assert.Equal(t, Tail, segs[len(segs)-1].Kind())

	fins := 0
	for i, s := range segs {
		spec := parameter.DefaultWhaleProfile[i]
		assert.Equal(t, spec.Front, s.FrontWidth())
		assert.Equal(t, spec.Back, s.BackWidth())
		if s.HasFin() {
			fins++
		}
	}
	assert.Equal(t, 1, fins)
	assert.Equal(t, vmath.V2(400, 300), w.Head())
}

func TestNewRejectsBadProfile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Profile = nil
	_, err := New(cfg, 100, 100)
	assert.Error(t, err)

	cfg.Profile = []parameter.SegmentSpec{{Kind: "gill", Size: 10}}
	_, err = New(cfg, 100, 100)
	assert.ErrorContains(t, err, "segment 0")
}

func TestAdvanceMovesAtConstantSpeed(t *testing.T) {
	cfg := DefaultConfig()
	w, err := New(cfg, 2000, 2000)
	require.NoError(t, err)

	before := w.Head()
	w.Advance(0.1)
	assert.InDelta(t, cfg.Speed*0.1, w.Head().Dist(before), 1e-9)

	// Non-positive dt is a no-op
	before = w.Head()
	w.Advance(0)
	w.Advance(-1)
	assert.Equal(t, before, w.Head())
}

func TestHeadStaysNearViewport(t *testing.T) {
	w, err := New(DefaultConfig(), 800, 600)
	require.NoError(t, err)

	for i := 0; i < 20000; i++ {
		w.Advance(1.0 / 60)
		h := w.Head()
		require.True(t, h.X > -400 && h.X < 1200 && h.Y > -400 && h.Y < 1000, "head escaped at step %d: %v", i, h)
	}
}

func TestSameSeedSamePath(t *testing.T) {
	a, err := New(DefaultConfig(), 800, 600)
	require.NoError(t, err)
	b, err := New(DefaultConfig(), 800, 600)
	require.NoError(t, err)
	for i := 0; i < 120; i++ {
		a.Advance(1.0 / 60)
		b.Advance(1.0 / 60)
	}
	assert.Equal(t, a.Head(), b.Head())
}

func TestWhaleDrawIsIdempotent(t *testing.T) {
	w, err := New(DefaultConfig(), 800, 600)
	require.NoError(t, err)
	w.Advance(0.5)

	first := render.NewRecorder(800, 600)
	second := render.NewRecorder(800, 600)
	w.Draw(first)
	w.Draw(second)
	assert.Equal(t, first.Ops, second.Ops)
	// One body per segment plus one fin
	assert.Len(t, first.Shapes(), len(w.Segments())+1)
	for _, op := range first.Shapes() {
		assert.Equal(t, w.Config().Color, op.Color)
		assert.Equal(t, w.Config().Tightness, op.Tightness)
	}
}

func TestMoveHeadToDragsChain(t *testing.T) {
	w, err := New(DefaultConfig(), 800, 600)
	require.NoError(t, err)
	w.MoveHeadTo(vmath.V2(10, 10))
	assert.InDelta(t, w.Segments()[0].Magnitude(), w.Segments()[0].Position().Dist(vmath.V2(10, 10)), 1e-6)
}

func TestResizePullsHeadInside(t *testing.T) {
	w, err := New(DefaultConfig(), 800, 600)
	require.NoError(t, err)
	head := w.Head()

	w.Resize(0, 0)
	assert.Equal(t, head, w.Head())

	w.Resize(200, 100)
	assert.Equal(t, vmath.V2(200, 100), w.Head())
	assert.InDelta(t, w.Segments()[0].Magnitude(), w.Segments()[0].Position().Dist(w.Head()), 1e-6)

	// Growing never moves the head
	w.Resize(1600, 1200)
	assert.Equal(t, vmath.V2(200, 100), w.Head())
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
