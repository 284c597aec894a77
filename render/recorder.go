package render

import (
	"github.com/lixenwraith/nightwhale/vmath"
)

// OpKind identifies a recorded primitive
type OpKind uint8

const (
	OpBackground OpKind = iota
	OpCircle
	OpShape
)

// Op is one primitive in world space, transforms already applied
type Op struct {
	Kind      OpKind
	Color     RGB
	Center    vmath.Vec2
	Diameter  float64
	Vertices  []vmath.Vec2
	Tightness float64
}

// Recorder is a Renderer that keeps primitives instead of drawing them
// Used for geometry assertions and frame comparison
type Recorder struct {
	width, height float64
	fill          RGB
	tightness     float64
	xf            *TransformStack
	Ops           []Op
}

func NewRecorder(width, height float64) *Recorder {
	return &Recorder{
		width:  width,
		height: height,
		fill:   RGBWhite,
		xf:     NewTransformStack(),
	}
}

// Reset clears recorded ops and transform state
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.xf.Reset()
}

func (r *Recorder) Size() (float64, float64) { return r.width, r.height }

func (r *Recorder) Background(c RGB) {
	r.Ops = append(r.Ops, Op{Kind: OpBackground, Color: c})
}

func (r *Recorder) Fill(c RGB)               { r.fill = c }
func (r *Recorder) CurveTightness(t float64) { r.tightness = t }

func (r *Recorder) Circle(x, y, d float64) {
	m := r.xf.Current()
	r.Ops = append(r.Ops, Op{
		Kind:     OpCircle,
		Color:    r.fill,
		Center:   m.Apply(vmath.V2(x, y)),
		Diameter: d * m.ScaleFactor(),
	})
}

func (r *Recorder) Shape(vertices []vmath.Vec2) {
	pts := append([]vmath.Vec2(nil), vertices...)
	r.Ops = append(r.Ops, Op{
		Kind:      OpShape,
		Color:     r.fill,
		Vertices:  r.xf.ApplyAll(pts),
		Tightness: r.tightness,
	})
}

func (r *Recorder) Push()                  { r.xf.Push() }
func (r *Recorder) Pop()                   { r.xf.Pop() }
func (r *Recorder) Translate(x, y float64) { r.xf.Translate(x, y) }
func (r *Recorder) Rotate(angle float64)   { r.xf.Rotate(angle) }

// Shapes returns only the shape ops, in draw order
func (r *Recorder) Shapes() []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == OpShape {
			out = append(out, op)
		}
	}
	return out
}

// Circles returns only the circle ops, in draw order
func (r *Recorder) Circles() []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == OpCircle {
			out = append(out, op)
		}
	}
	return out
}
