package render

import (
	"github.com/lixenwraith/nightwhale/vmath"
)

// Renderer is the drawing capability handed to every scene entity
// Coordinates are world units; +Y points down
type Renderer interface {
	// Size returns the drawable area in world units
	Size() (w, h float64)

	// Background fills the whole surface, discarding previous content
	Background(c RGB)
	// Fill sets the colour for subsequent filled primitives
	Fill(c RGB)

	// Circle fills a circle centred at (x, y) with diameter d
	Circle(x, y, d float64)
	// CurveTightness sets the Catmull-Rom tightness for Shape, 0 is a plain Catmull-Rom spline
	CurveTightness(t float64)
	// Shape fills a closed smooth curve through curve vertices
	// First and last vertices act as control points only, then the outline is closed
	Shape(vertices []vmath.Vec2)

	Push()
	Pop()
	Translate(x, y float64)
	Rotate(angle float64)
}
