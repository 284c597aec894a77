package render

import (
	"math"

	"github.com/lixenwraith/nightwhale/vmath"
)

// Affine is a 2D affine matrix [A C E; B D F; 0 0 1]
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity is the neutral transform
var Identity = Affine{A: 1, D: 1}

// Mul returns m·n (n applied first)
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

func (m Affine) Apply(p vmath.Vec2) vmath.Vec2 {
	return vmath.Vec2{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// ScaleFactor returns the uniform scale, exact for rotation+translation+uniform scale
func (m Affine) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}

// TransformStack tracks push/pop semantics for canvases without native transforms
type TransformStack struct {
	current Affine
	saved   []Affine
}

func NewTransformStack() *TransformStack {
	return &TransformStack{current: Identity}
}

func (s *TransformStack) Current() Affine {
	return s.current
}

func (s *TransformStack) Push() {
	s.saved = append(s.saved, s.current)
}

// Pop restores the last pushed transform, unbalanced pops reset to identity
func (s *TransformStack) Pop() {
	n := len(s.saved)
	if n == 0 {
		s.current = Identity
		return
	}
	s.current = s.saved[n-1]
	s.saved = s.saved[:n-1]
}

func (s *TransformStack) Translate(x, y float64) {
	s.current = s.current.Mul(Affine{A: 1, D: 1, E: x, F: y})
}

func (s *TransformStack) Rotate(angle float64) {
	sin, cos := math.Sincos(angle)
	s.current = s.current.Mul(Affine{A: cos, B: sin, C: -sin, D: cos})
}

// Reset drops all saved state, called at frame start
func (s *TransformStack) Reset() {
	s.current = Identity
	s.saved = s.saved[:0]
}

// ApplyAll transforms pts in place and returns them
func (s *TransformStack) ApplyAll(pts []vmath.Vec2) []vmath.Vec2 {
	if s.current == Identity {
		return pts
	}
	for i, p := range pts {
		pts[i] = s.current.Apply(p)
	}
	return pts
}
