// Package termcanvas rasterizes Renderer primitives onto a tcell screen
// Each terminal cell holds two vertical subpixels drawn with an upper half block,
// so one world unit maps to Scale subpixels in both axes
package termcanvas

import (
	"math"
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/nightwhale/render"
	"github.com/lixenwraith/nightwhale/vmath"
)

const upperHalfBlock = '▀'

// minCircleRadius is the subpixel radius below which circles collapse to one blended subpixel
const minCircleRadius = 0.75

// Canvas is a subpixel framebuffer flushed to a tcell screen
// Not safe for concurrent use; owned by the frame loop
type Canvas struct {
	screen tcell.Screen
	scale  float64 // world units per subpixel

	cols, rows int
	px         []render.RGB // cols × rows*2, row-major

	mode      ColorMode
	fill      render.RGB
	tightness float64
	xf        *render.TransformStack

	// Reused scanline scratch
	outline []vmath.Vec2
	xs      []float64
}

// New creates a canvas sized to the screen; scale ≤ 0 means 1
func New(screen tcell.Screen, scale float64) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	c := &Canvas{
		screen: screen,
		scale:  scale,
		mode:   ColorModeTrueColor,
		fill:   render.RGBWhite,
		xf:     render.NewTransformStack(),
	}
	cols, rows := screen.Size()
	c.Resize(cols, rows)
	return c
}

// Resize reallocates the framebuffer only if capacity is insufficient
func (c *Canvas) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	size := cols * rows * 2
	if cap(c.px) < size {
		c.px = make([]render.RGB, size)
	} else {
		c.px = c.px[:size]
	}
	c.cols, c.rows = cols, rows
}

// SetColorMode picks how colours reach the terminal; auto is resolved from the environment
func (c *Canvas) SetColorMode(m ColorMode) {
	c.mode = m.Resolve()
}

func (c *Canvas) ColorMode() ColorMode { return c.mode }

// SetScale changes world units per subpixel; scale ≤ 0 means 1
func (c *Canvas) SetScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	c.scale = scale
}

// Cells returns the terminal grid size
func (c *Canvas) Cells() (cols, rows int) {
	return c.cols, c.rows
}

// Size returns the drawable area in world units
func (c *Canvas) Size() (float64, float64) {
	return float64(c.cols) * c.scale, float64(c.rows*2) * c.scale
}

// Pixel returns the subpixel colour at (x, y), black when out of bounds
func (c *Canvas) Pixel(x, y int) render.RGB {
	if !c.inBounds(x, y) {
		return render.RGBBlack
	}
	return c.px[y*c.cols+x]
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.cols && y >= 0 && y < c.rows*2
}

func (c *Canvas) Background(col render.RGB) {
	for i := range c.px {
		c.px[i] = col
	}
	c.xf.Reset()
}

func (c *Canvas) Fill(col render.RGB)      { c.fill = col }
func (c *Canvas) CurveTightness(t float64) { c.tightness = t }

func (c *Canvas) Push()                  { c.xf.Push() }
func (c *Canvas) Pop()                   { c.xf.Pop() }
func (c *Canvas) Translate(x, y float64) { c.xf.Translate(x, y) }
func (c *Canvas) Rotate(angle float64)   { c.xf.Rotate(angle) }

// toSub maps a world point through the current transform into subpixel space
func (c *Canvas) toSub(p vmath.Vec2) vmath.Vec2 {
	return c.xf.Current().Apply(p).Scale(1 / c.scale)
}

func (c *Canvas) Circle(x, y, d float64) {
	center := c.toSub(vmath.V2(x, y))
	r := d / 2 * c.xf.Current().ScaleFactor() / c.scale
	if r <= 0 {
		return
	}

	if r < minCircleRadius {
		// Sub-subpixel star: one blended subpixel, alpha linear in radius
		ix, iy := int(math.Floor(center.X)), int(math.Floor(center.Y))
		if c.inBounds(ix, iy) {
			i := iy*c.cols + ix
			c.px[i] = render.Blend(c.px[i], c.fill, 2*r)
		}
		return
	}

	r2 := r * r
	y0 := max(int(math.Floor(center.Y-r)), 0)
	y1 := min(int(math.Ceil(center.Y+r)), c.rows*2-1)
	x0 := max(int(math.Floor(center.X-r)), 0)
	x1 := min(int(math.Ceil(center.X+r)), c.cols-1)
	for py := y0; py <= y1; py++ {
		dy := float64(py) + 0.5 - center.Y
		for px := x0; px <= x1; px++ {
			dx := float64(px) + 0.5 - center.X
			if dx*dx+dy*dy <= r2 {
				c.px[py*c.cols+px] = c.fill
			}
		}
	}
}

func (c *Canvas) Shape(vertices []vmath.Vec2) {
	pts := render.Outline(vertices, c.tightness, render.DefaultCurveSteps)
	c.outline = c.outline[:0]
	for _, p := range pts {
		c.outline = append(c.outline, c.toSub(p))
	}
	c.fillPolygon(c.outline)
}

// fillPolygon is an even-odd scanline fill sampled at subpixel centres
func (c *Canvas) fillPolygon(poly []vmath.Vec2) {
	n := len(poly)
	if n < 3 {
		return
	}
	lo, hi := render.Bounds(poly)
	y0 := max(int(math.Floor(lo.Y)), 0)
	y1 := min(int(math.Ceil(hi.Y)), c.rows*2-1)

	for py := y0; py <= y1; py++ {
		yc := float64(py) + 0.5
		c.xs = c.xs[:0]
		for i := 0; i < n; i++ {
			a, b := poly[i], poly[(i+1)%n]
			if (a.Y <= yc) == (b.Y <= yc) {
				continue
			}
			c.xs = append(c.xs, a.X+(yc-a.Y)*(b.X-a.X)/(b.Y-a.Y))
		}
		slices.Sort(c.xs)
		for k := 0; k+1 < len(c.xs); k += 2 {
			xa := max(int(math.Ceil(c.xs[k]-0.5)), 0)
			xb := min(int(math.Floor(c.xs[k+1]-0.5)), c.cols-1)
			row := py * c.cols
			for px := xa; px <= xb; px++ {
				c.px[row+px] = c.fill
			}
		}
	}
}

// Flush composes subpixel pairs into half-block cells and shows the screen
func (c *Canvas) Flush() {
	for row := 0; row < c.rows; row++ {
		top := c.px[(row*2)*c.cols : (row*2+1)*c.cols]
		bottom := c.px[(row*2+1)*c.cols : (row*2+2)*c.cols]
		for col := 0; col < c.cols; col++ {
			t, b := top[col], bottom[col]
			if t == b {
				c.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault.Background(c.mode.color(b)))
				continue
			}
			style := tcell.StyleDefault.Foreground(c.mode.color(t)).Background(c.mode.color(b))
			c.screen.SetContent(col, row, upperHalfBlock, nil, style)
		}
	}
	c.screen.Show()
}
