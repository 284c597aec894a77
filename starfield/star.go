package starfield

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/lixenwraith/nightwhale/parameter"
	"github.com/lixenwraith/nightwhale/render"
	"github.com/lixenwraith/nightwhale/vmath"
)

// Drift holds the shared motion tuning applied to every star
type Drift struct {
	spring    harmonica.Spring
	fps       float64
	amount    float64 // max displacement from home, sign selects push or pull
	influence float64
	maxStep   float64
}

func NewDrift(fps int, frequency, damping, amount, influence, maxStep float64) Drift {
	return Drift{
		spring:    harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
		fps:       float64(fps),
		amount:    amount,
		influence: influence,
		maxStep:   maxStep,
	}
}

// Target returns where a star homed at home wants to sit given the reference point
func (d Drift) Target(home, ref vmath.Vec2) vmath.Vec2 {
	if d.influence <= 0 {
		return home
	}
	away := home.Sub(ref)
	if away.MagSq() >= d.influence*d.influence {
		return home
	}
	falloff := 1 - away.Mag()/d.influence
	return home.Add(away.SetMag(d.amount * falloff))
}

// Star is one point light drifting around its home position
type Star struct {
	unit vmath.Vec2 // home in the unit square, viewport independent
	home vmath.Vec2
	pos  vmath.Vec2
	vel  vmath.Vec2
	size float64

	// Twinkle: brightness = 0.5 + 0.5·sin(2π·rate·t + phase)
	phase float64
	rate  float64
}

func NewStar(x, y, size, rate, phase float64) Star {
	p := vmath.V2(x, y)
	return Star{unit: p, home: p, pos: p, size: size, rate: rate, phase: phase}
}

// place maps the unit home onto a width × height viewport and carries the drift offset along
func (s *Star) place(width, height float64) {
	offset := s.pos.Sub(s.home)
	s.home = vmath.V2(s.unit.X*width, s.unit.Y*height)
	s.pos = s.home.Add(offset)
}

func (s *Star) Position() vmath.Vec2 { return s.pos }
func (s *Star) Home() vmath.Vec2     { return s.home }
func (s *Star) Size() float64        { return s.size }

// UpdatePosition eases the star toward its drift target for reference point (x, y)
// Movement per call never exceeds the drift's max step
func (s *Star) UpdatePosition(x, y float64, d Drift) {
	target := d.Target(s.home, vmath.V2(x, y))

	nx, vx := d.spring.Update(s.pos.X, s.vel.X, target.X)
	ny, vy := d.spring.Update(s.pos.Y, s.vel.Y, target.Y)

	step := vmath.V2(nx, ny).Sub(s.pos)
	if d.maxStep > 0 && step.Mag() > d.maxStep {
		step = step.ClampMag(d.maxStep)
		// Velocity matches the clamped step so the spring does not wind up
		vx, vy = step.X*d.fps, step.Y*d.fps
	}
	s.pos = s.pos.Add(step)
	s.vel = vmath.V2(vx, vy)
}

// Brightness returns the twinkle level in [0,1] at time t seconds
func (s *Star) Brightness(t float64) float64 {
	return 0.5 + 0.5*math.Sin(2*math.Pi*s.rate*t+s.phase)
}

// Color returns the twinkle tint at time t; near the peak bright is screened on top as a glint
func (s *Star) Color(t float64, dim, bright render.RGB) render.RGB {
	b := s.Brightness(t)
	c := render.BlendLab(dim, bright, b)
	if b > parameter.StarGlintThreshold {
		c = render.Screen(c, bright, (b-parameter.StarGlintThreshold)/(1-parameter.StarGlintThreshold))
	}
	return c
}

// Show fills a small circle at the star position, tinted by twinkle
func (s *Star) Show(r render.Renderer, t float64, dim, bright render.RGB) {
	r.Fill(s.Color(t, dim, bright))
	r.Circle(s.pos.X, s.pos.Y, s.size)
}
