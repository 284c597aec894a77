// Package starfield holds the twinkling background stars that drift around the whale
package starfield

import (
	"math"

	"github.com/lixenwraith/nightwhale/parameter"
	"github.com/lixenwraith/nightwhale/render"
	"github.com/lixenwraith/nightwhale/vmath"
)

// Config tunes layout, drift and twinkle
type Config struct {
	PerWidth float64
	MinSize  float64
	MaxSize  float64

	Drift           float64
	Influence       float64
	MaxStep         float64
	SpringFrequency float64
	SpringDamping   float64

	TwinkleMinHz float64
	TwinkleMaxHz float64
	Dim          render.RGB
	Bright       render.RGB

	FPS  int
	Seed int64
}

func DefaultConfig() Config {
	return Config{
		PerWidth:        parameter.StarsPerWidth,
		MinSize:         parameter.StarMinSize,
		MaxSize:         parameter.StarMaxSize,
		Drift:           parameter.StarDrift,
		Influence:       parameter.StarInfluence,
		MaxStep:         parameter.StarMaxStep,
		SpringFrequency: parameter.StarSpringFrequency,
		SpringDamping:   parameter.StarSpringDamping,
		TwinkleMinHz:    parameter.StarTwinkleMinHz,
		TwinkleMaxHz:    parameter.StarTwinkleMaxHz,
		Dim:             render.MustHex(parameter.StarColorDim),
		Bright:          render.MustHex(parameter.StarColorBright),
		FPS:             parameter.FPS,
		Seed:            1,
	}
}

// Field is the fixed set of stars for one viewport
type Field struct {
	cfg   Config
	drift Drift
	stars []Star

	clock     float64 // seconds, advances one frame per Update
	scattered bool
}

// Count returns the number of stars a viewport width gets
func Count(width, perWidth float64) int {
	return max(int(math.Round(width*perWidth)), 0)
}

// New scatters Count(width) stars uniformly over the viewport
// An empty viewport defers the layout to the first non-empty Resize
func New(cfg Config, width, height float64) *Field {
	fps := max(cfg.FPS, 1)
	f := &Field{
		cfg:   cfg,
		drift: NewDrift(fps, cfg.SpringFrequency, cfg.SpringDamping, cfg.Drift, cfg.Influence, cfg.MaxStep),
	}
	f.cfg.FPS = fps
	f.Resize(width, height)
	return f
}

// scatter lays out the fixed star set; homes are drawn in the unit square and mapped to the viewport
func (f *Field) scatter(width, height float64) {
	rng := vmath.NewFastRand(uint64(f.cfg.Seed))
	f.stars = make([]Star, Count(width, f.cfg.PerWidth))
	for i := range f.stars {
		unit := vmath.V2(rng.Float64(), rng.Float64())
		f.stars[i] = NewStar(
			unit.X*width,
			unit.Y*height,
			rng.Range(f.cfg.MinSize, f.cfg.MaxSize),
			rng.Range(f.cfg.TwinkleMinHz, f.cfg.TwinkleMaxHz),
			rng.Range(0, 2*math.Pi),
		)
		f.stars[i].unit = unit
	}
	f.scattered = true
}

func (f *Field) Stars() []Star  { return f.stars }
func (f *Field) Len() int       { return len(f.stars) }
func (f *Field) Clock() float64 { return f.clock }

// Update drifts every star relative to reference point (x, y) and advances twinkle time
func (f *Field) Update(x, y float64) {
	for i := range f.stars {
		f.stars[i].UpdatePosition(x, y, f.drift)
	}
	f.clock += 1 / float64(f.cfg.FPS)
}

// Draw shows every star; no state changes
func (f *Field) Draw(r render.Renderer) {
	for i := range f.stars {
		f.stars[i].Show(r, f.clock, f.cfg.Dim, f.cfg.Bright)
	}
}

// Resize maps star homes into the new viewport, keeping each star's drift offset
// A non-positive size is ignored and the previous bounds stay
func (f *Field) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	if !f.scattered {
		f.scatter(width, height)
		return
	}
	for i := range f.stars {
		f.stars[i].place(width, height)
	}
}
