package whale

import (
	"math"

	"github.com/lixenwraith/nightwhale/parameter"
	"github.com/lixenwraith/nightwhale/render"
	"github.com/lixenwraith/nightwhale/vmath"
)

// Shape holds the constants shared by every segment of one whale
type Shape struct {
	Reach      float64 // trapezoid length for non-tail segments
	TailReach  float64
	TailShrink float64 // tail spacing = size - TailShrink
	FinSize    float64
}

// DefaultShape returns the stock segment constants
func DefaultShape() Shape {
	return Shape{
		Reach:      parameter.SegmentReach,
		TailReach:  parameter.TailSegmentReach,
		TailShrink: parameter.TailShrink,
		FinSize:    parameter.FinSize,
	}
}

// Segment is one rigid trapezoid link that trails its target at fixed spacing
type Segment struct {
	kind  Kind
	shape Shape

	pos  vmath.Vec2
	size float64

	// trailing is the angle of the offset from target to pos; heading is travel direction
	trailing float64
	heading  float64

	margin float64
	frontW float64
	backW  float64

	// Cached world-space geometry from the last Update
	corners   [4]vmath.Vec2
	finAnchor vmath.Vec2
}

// NewSegment places a segment at (x, y) with spacing size and stock widths
func NewSegment(kind Kind, shape Shape, x, y, size float64) *Segment {
	s := &Segment{
		kind:   kind,
		shape:  shape,
		pos:    vmath.V2(x, y),
		size:   size,
		margin: parameter.SegmentMargin,
		frontW: parameter.SegmentFrontWidth,
		backW:  parameter.SegmentBackWidth,
	}
	s.trailing = math.Pi
	s.plotBody()
	return s
}

func (s *Segment) Kind() Kind             { return s.kind }
func (s *Segment) Position() vmath.Vec2   { return s.pos }
func (s *Segment) Size() float64          { return s.size }
func (s *Segment) Heading() float64       { return s.heading }
func (s *Segment) TrailingAngle() float64 { return s.trailing }
func (s *Segment) Corners() [4]vmath.Vec2 { return s.corners }
func (s *Segment) Margin() float64        { return s.margin }
func (s *Segment) FrontWidth() float64    { return s.frontW }
func (s *Segment) BackWidth() float64     { return s.backW }
func (s *Segment) IsTail() bool           { return s.kind == Tail }
func (s *Segment) HasFin() bool           { return s.kind == FinBearing }
func (s *Segment) FinAnchor() vmath.Vec2  { return s.finAnchor }

// Setters accept any value; zero or negative widths collapse or invert the trapezoid
// Geometry refreshes on the next Update

func (s *Segment) SetMargin(m float64)     { s.margin = m }
func (s *Segment) SetFrontWidth(w float64) { s.frontW = w }
func (s *Segment) SetBackWidth(w float64)  { s.backW = w }

// Magnitude is the fixed distance kept from the target
func (s *Segment) Magnitude() float64 {
	if s.IsTail() {
		return s.size - s.shape.TailShrink
	}
	return s.size
}

// Reach is the trapezoid length
func (s *Segment) Reach() float64 {
	if s.IsTail() {
		return s.shape.TailReach
	}
	return s.shape.Reach
}

// Update moves the segment to trail target at Magnitude and rebuilds its geometry
// A target equal to the current position yields a zero offset, heading is then whatever atan2 gives
func (s *Segment) Update(target vmath.Vec2) {
	offset := target.Sub(s.pos).SetMag(s.Magnitude()).Neg()
	s.trailing = offset.Heading()
	s.pos = target.Add(offset)
	s.plotBody()
}

// plotBody derives the rotated trapezoid corners and fin anchor from pos and trailing
func (s *Segment) plotBody() {
	s.heading = vmath.WrapAngle(s.trailing + math.Pi)

	ref := s.pos.Add(vmath.FromAngle(s.trailing, s.Reach()))
	length := s.pos.Dist(ref)

	local := [4]vmath.Vec2{
		{X: -s.frontW / 2, Y: s.margin},
		{X: s.frontW / 2, Y: s.margin},
		{X: s.backW / 2, Y: -length - s.margin},
		{X: -s.backW / 2, Y: -length - s.margin},
	}

	// Long axis perpendicular to the direction of travel
	rot := s.pos.Sub(ref).Heading() + vmath.Radians(90)
	for i, p := range local {
		s.corners[i] = p.Rotate(rot).Add(s.pos)
	}
	s.finAnchor = s.corners[2].Midpoint(s.corners[3])
}

// Outline returns the curve vertices for the body, first two corners repeated to close smoothly
func (s *Segment) Outline() []vmath.Vec2 {
	c := s.corners
	return []vmath.Vec2{c[0], c[1], c[2], c[3], c[0], c[1]}
}

// FinOutline returns the fin curve vertices in fin-local space
func (s *Segment) FinOutline() []vmath.Vec2 {
	size := s.shape.FinSize
	out := make([]vmath.Vec2, len(parameter.FinVertices))
	for i, v := range parameter.FinVertices {
		out[i] = vmath.V2(v[0]*size, v[1]*size)
	}
	return out
}

// FinRotation is the fin orientation, trailing angle turned half a circle
func (s *Segment) FinRotation() float64 {
	return s.trailing + vmath.Radians(180)
}

// Draw renders cached geometry with the renderer's current fill; no state changes
func (s *Segment) Draw(r render.Renderer) {
	r.Shape(s.Outline())
	if s.kind != FinBearing {
		return
	}
	r.Push()
	r.Translate(s.finAnchor.X, s.finAnchor.Y)
	r.Rotate(s.FinRotation())
	r.Shape(s.FinOutline())
	r.Pop()
}
