// Package rastercanvas renders the scene into an in-memory image using fogleman/gg
package rastercanvas

import (
	"fmt"
	"image"
	"io"

	"github.com/fogleman/gg"

	"github.com/lixenwraith/nightwhale/render"
	"github.com/lixenwraith/nightwhale/vmath"
)

// Canvas adapts a gg.Context to render.Renderer
// Curves are emitted as native cubic Béziers, so output is anti-aliased
type Canvas struct {
	dc        *gg.Context
	tightness float64
	depth     int // push depth, for resetting between frames
}

func New(width, height int) *Canvas {
	return &Canvas{dc: gg.NewContext(width, height)}
}

func (c *Canvas) Size() (float64, float64) {
	return float64(c.dc.Width()), float64(c.dc.Height())
}

// Background resets transforms and paints the whole surface
func (c *Canvas) Background(col render.RGB) {
	for ; c.depth > 0; c.depth-- {
		c.dc.Pop()
	}
	c.dc.Identity()
	c.dc.SetColor(col)
	c.dc.Clear()
}

func (c *Canvas) Fill(col render.RGB) {
	c.dc.SetColor(col)
}

func (c *Canvas) CurveTightness(t float64) { c.tightness = t }

func (c *Canvas) Circle(x, y, d float64) {
	c.dc.DrawCircle(x, y, d/2)
	c.dc.Fill()
}

func (c *Canvas) Shape(vertices []vmath.Vec2) {
	cubics := render.CurveCubics(vertices, c.tightness)
	if len(cubics) == 0 {
		if len(vertices) < 3 {
			return
		}
		c.dc.MoveTo(vertices[0].X, vertices[0].Y)
		for _, p := range vertices[1:] {
			c.dc.LineTo(p.X, p.Y)
		}
		c.dc.ClosePath()
		c.dc.Fill()
		return
	}
	c.dc.MoveTo(cubics[0].P0.X, cubics[0].P0.Y)
	for _, b := range cubics {
		c.dc.CubicTo(b.P1.X, b.P1.Y, b.P2.X, b.P2.Y, b.P3.X, b.P3.Y)
	}
	c.dc.ClosePath()
	c.dc.Fill()
}

func (c *Canvas) Push() {
	c.dc.Push()
	c.depth++
}

func (c *Canvas) Pop() {
	if c.depth == 0 {
		c.dc.Identity()
		return
	}
	c.dc.Pop()
	c.depth--
}

func (c *Canvas) Translate(x, y float64) { c.dc.Translate(x, y) }
func (c *Canvas) Rotate(angle float64)   { c.dc.Rotate(angle) }

// Image returns the backing image
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// SavePNG writes the current frame to path
func (c *Canvas) SavePNG(path string) error {
	if err := c.dc.SavePNG(path); err != nil {
		return fmt.Errorf("save png %s: %w", path, err)
	}
	return nil
}

// EncodePNG writes the current frame to w
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := c.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
