package render

import (
	"github.com/lixenwraith/nightwhale/vmath"
)

// DefaultCurveSteps is the sample count per cubic when flattening
const DefaultCurveSteps = 12

// Cubic is a cubic Bézier segment
type Cubic struct {
	P0, P1, P2, P3 vmath.Vec2
}

// At evaluates the cubic at t in [0,1]
func (c Cubic) At(t float64) vmath.Vec2 {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	d := 3 * u * t * t
	e := t * t * t
	return vmath.Vec2{
		X: a*c.P0.X + b*c.P1.X + d*c.P2.X + e*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + d*c.P2.Y + e*c.P3.Y,
	}
}

// CurveCubics converts curve vertices to Bézier segments
// Spline runs from vertices[1] to vertices[n-2]; ends are control points
// Tightness 0 gives Catmull-Rom, 1 gives straight lines
func CurveCubics(vertices []vmath.Vec2, tightness float64) []Cubic {
	if len(vertices) < 4 {
		return nil
	}
	s := 1 - tightness
	out := make([]Cubic, 0, len(vertices)-3)
	for i := 1; i+2 < len(vertices); i++ {
		p0, p1, p2, p3 := vertices[i-1], vertices[i], vertices[i+1], vertices[i+2]
		out = append(out, Cubic{
			P0: p1,
			P1: p1.Add(p2.Sub(p0).Scale(s / 6)),
			P2: p2.Sub(p3.Sub(p1).Scale(s / 6)),
			P3: p2,
		})
	}
	return out
}

// Outline flattens the curve into a closed polygon
// The closing edge from the last spline point back to the first is implicit
func Outline(vertices []vmath.Vec2, tightness float64, steps int) []vmath.Vec2 {
	cubics := CurveCubics(vertices, tightness)
	if len(cubics) == 0 {
		// Too few vertices for a spline, fall back to the raw polygon
		return append([]vmath.Vec2(nil), vertices...)
	}
	if steps < 1 {
		steps = 1
	}
	pts := make([]vmath.Vec2, 0, len(cubics)*steps+1)
	pts = append(pts, cubics[0].P0)
	for _, c := range cubics {
		for i := 1; i <= steps; i++ {
			pts = append(pts, c.At(float64(i)/float64(steps)))
		}
	}
	return pts
}

// Bounds returns the axis-aligned bounding box of pts
func Bounds(pts []vmath.Vec2) (lo, hi vmath.Vec2) {
	if len(pts) == 0 {
		return lo, hi
	}
	lo, hi = pts[0], pts[0]
	for _, p := range pts[1:] {
		lo.X = min(lo.X, p.X)
		lo.Y = min(lo.Y, p.Y)
		hi.X = max(hi.X, p.X)
		hi.Y = max(hi.Y, p.Y)
	}
	return lo, hi
}
