package whale

import (
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"

	"github.com/lixenwraith/nightwhale/parameter"
	"github.com/lixenwraith/nightwhale/render"
	"github.com/lixenwraith/nightwhale/vmath"
)

// Config describes one whale: motion tuning, segment constants and the chain profile
type Config struct {
	Speed          float64
	TurnRate       float64
	NoiseFrequency float64
	EdgeMargin     float64
	SteerRate      float64

	Shape     Shape
	Tightness float64
	Color     render.RGB
	Seed      int64

	Profile []parameter.SegmentSpec
}

// DefaultConfig returns the stock whale
func DefaultConfig() Config {
	return Config{
		Speed:          parameter.WhaleSpeed,
		TurnRate:       parameter.WhaleTurnRate,
		NoiseFrequency: parameter.WhaleNoiseFrequency,
		EdgeMargin:     parameter.WhaleEdgeMargin,
		SteerRate:      parameter.WhaleSteerRate,
		Shape:          DefaultShape(),
		Tightness:      parameter.CurveTightness,
		Color:          render.MustHex(parameter.BodyColor),
		Seed:           1,
		Profile:        parameter.DefaultWhaleProfile,
	}
}

// Whale is a head point wandering the viewport, trailed by a segment chain
type Whale struct {
	cfg Config

	head    vmath.Vec2
	heading float64

	noise     *perlin.Perlin
	noiseTime float64

	width, height float64

	segments []*Segment
}

// New builds the chain centred in a width × height viewport
// Segments start laid out behind the head so the first frame is already a whale
func New(cfg Config, width, height float64) (*Whale, error) {
	if len(cfg.Profile) == 0 {
		return nil, fmt.Errorf("whale profile has no segments")
	}

	w := &Whale{
		cfg:    cfg,
		noise:  perlin.NewPerlin(parameter.PerlinAlpha, parameter.PerlinBeta, parameter.PerlinOctaves, cfg.Seed),
		width:  width,
		height: height,
	}
	rng := vmath.NewFastRand(uint64(cfg.Seed))
	w.head = vmath.V2(width/2, height/2)
	w.heading = rng.Range(-math.Pi, math.Pi)
	// Offset noise sampling so different seeds do not share a path shape
	w.noiseTime = rng.Range(0, 1000)

	back := vmath.FromAngle(w.heading+math.Pi, 1)
	at := w.head
	for i, spec := range cfg.Profile {
		kind, err := ParseKind(spec.Kind)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		seg := NewSegment(kind, cfg.Shape, 0, 0, spec.Size)
		at = at.Add(back.Scale(seg.Magnitude()))
		seg.pos = at
		seg.SetFrontWidth(spec.Front)
		seg.SetBackWidth(spec.Back)
		seg.SetMargin(spec.Margin)
		w.segments = append(w.segments, seg)
	}
	UpdateChain(w.head, w.segments)
	return w, nil
}

// UpdateChain drags segments in order: segment 0 follows head, each next follows the previous
func UpdateChain(head vmath.Vec2, segments []*Segment) {
	target := head
	for _, s := range segments {
		s.Update(target)
		target = s.Position()
	}
}

func (w *Whale) Head() vmath.Vec2     { return w.head }
func (w *Whale) Heading() float64     { return w.heading }
func (w *Whale) Segments() []*Segment { return w.segments }
func (w *Whale) Config() Config       { return w.cfg }

// Resize changes the bounds the head steers within
// A non-positive size is ignored; a head left outside the new bounds is pulled to the nearest edge
func (w *Whale) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	w.width, w.height = width, height
	inside := vmath.V2(math.Max(0, math.Min(w.head.X, width)), math.Max(0, math.Min(w.head.Y, height)))
	if inside != w.head {
		w.MoveHeadTo(inside)
	}
}

// MoveHeadTo teleports the head and drags the chain after it
func (w *Whale) MoveHeadTo(p vmath.Vec2) {
	w.head = p
	UpdateChain(w.head, w.segments)
}

// Advance moves the head along its noise path for dt seconds and updates the chain
func (w *Whale) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	w.noiseTime += dt * w.cfg.NoiseFrequency
	turn, homing := w.steer(dt)
	if !homing {
		// Wander only inside the safe box, near the edges steering has full authority
		turn = w.noise.Noise1D(w.noiseTime) * w.cfg.TurnRate * dt
	}
	w.heading = vmath.WrapAngle(w.heading + turn)
	w.head = w.head.Add(vmath.FromAngle(w.heading, w.cfg.Speed*dt))
	UpdateChain(w.head, w.segments)
}

// steer returns a heading correction toward the viewport centre when near an edge
func (w *Whale) steer(dt float64) (float64, bool) {
	margin := math.Min(w.width, w.height) * w.cfg.EdgeMargin
	h := w.head
	if h.X > margin && h.X < w.width-margin && h.Y > margin && h.Y < w.height-margin {
		return 0, false
	}
	center := vmath.V2(w.width/2, w.height/2)
	want := center.Sub(h).Heading()
	delta := vmath.WrapAngle(want - w.heading)
	limit := w.cfg.SteerRate * dt
	return math.Max(-limit, math.Min(limit, delta)), true
}

// Draw renders every segment head first; pure read of cached geometry
func (w *Whale) Draw(r render.Renderer) {
	r.Fill(w.cfg.Color)
	r.CurveTightness(w.cfg.Tightness)
	for _, s := range w.segments {
		s.Draw(r)
	}
}
