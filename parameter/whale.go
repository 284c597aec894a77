package parameter

// Segment geometry
const (
	// SegmentReach is the trapezoid length from a segment toward the one ahead
	SegmentReach     = 50.0
	TailSegmentReach = 20.0

	// TailShrink shortens the tail segment spacing: magnitude = size - TailShrink
	TailShrink = 30.0

	SegmentMargin     = 10.0
	SegmentFrontWidth = 20.0
	SegmentBackWidth  = 10.0

	// CurveTightness matches a half-tight Catmull-Rom, rounder than a polygon but not loopy
	CurveTightness = 0.5

	FinSize = 50.0
)

// Fin vertex offsets in fin-size units, curve-vertex order
// Two lobes swept back from the anchor, joined through the anchor
var FinVertices = [7][2]float64{
	{0, 0},
	{0.2, -0.7},
	{-0.5, -1.5},
	{0, 0},
	{0.2, 0.7},
	{-0.5, 1.5},
	{0, 0},
}

// Whale head motion
const (
	WhaleSpeed = 120.0 // world units per second

	// WhaleTurnRate scales Perlin noise into heading change (radians per second)
	WhaleTurnRate = 1.6
	// WhaleNoiseFrequency is noise-space distance advanced per second
	WhaleNoiseFrequency = 0.35

	// WhaleEdgeMargin is the fraction of the shorter viewport side that triggers steering home
	WhaleEdgeMargin = 0.18
	// WhaleSteerRate is the max heading correction toward centre (radians per second)
	WhaleSteerRate = 2.4
)

// Perlin parameters: persistence and lacunarity of the octave sum
const (
	PerlinAlpha   = 2.0
	PerlinBeta    = 2.0
	PerlinOctaves = 3
)

// SegmentSpec describes one chain link, head first
type SegmentSpec struct {
	Kind   string
	Size   float64
	Front  float64
	Back   float64
	Margin float64
}

// DefaultWhaleProfile is the chain from head to tail, thickest first
var DefaultWhaleProfile = []SegmentSpec{
	{Kind: "head", Size: 30, Front: 60, Back: 48, Margin: 12},
	{Kind: "body", Size: 30, Front: 64, Back: 62, Margin: 10},
	{Kind: "body", Size: 30, Front: 60, Back: 64, Margin: 10},
	{Kind: "body", Size: 30, Front: 52, Back: 60, Margin: 10},
	{Kind: "body", Size: 30, Front: 42, Back: 52, Margin: 10},
	{Kind: "body", Size: 30, Front: 32, Back: 42, Margin: 10},
	{Kind: "body", Size: 30, Front: 22, Back: 32, Margin: 10},
	{Kind: "fin", Size: 30, Front: 14, Back: 22, Margin: 8},
	{Kind: "tail", Size: 40, Front: 8, Back: 14, Margin: 6},
}
