// Package scene is the per-frame driver tying the star field and the whale to a renderer
package scene

import (
	"fmt"

	"github.com/lixenwraith/nightwhale/render"
	"github.com/lixenwraith/nightwhale/starfield"
	"github.com/lixenwraith/nightwhale/whale"
)

// Config groups everything needed to build a scene
type Config struct {
	Background render.RGB
	Whale      whale.Config
	Stars      starfield.Config
}

// Scene owns the whale and the star field; one writer, the frame loop
type Scene struct {
	cfg   Config
	whale *whale.Whale
	stars *starfield.Field
	frame uint64
}

// New builds a scene sized to width × height world units
func New(cfg Config, width, height float64) (*Scene, error) {
	w, err := whale.New(cfg.Whale, width, height)
	if err != nil {
		return nil, fmt.Errorf("build whale: %w", err)
	}
	return &Scene{
		cfg:   cfg,
		whale: w,
		stars: starfield.New(cfg.Stars, width, height),
	}, nil
}

func (s *Scene) Whale() *whale.Whale     { return s.whale }
func (s *Scene) Stars() *starfield.Field { return s.stars }
func (s *Scene) FrameNumber() uint64     { return s.frame }

// Frame renders one animation frame and advances state by dt seconds
// Order: background, stars, whale advance, whale, star drift from the new head
func (s *Scene) Frame(r render.Renderer, dt float64) {
	r.Background(s.cfg.Background)
	s.stars.Draw(r)
	s.whale.Advance(dt)
	s.whale.Draw(r)
	head := s.whale.Head()
	s.stars.Update(head.X, head.Y)
	s.frame++
}

// Draw renders current state without advancing, used while paused
func (s *Scene) Draw(r render.Renderer) {
	r.Background(s.cfg.Background)
	s.stars.Draw(r)
	s.whale.Draw(r)
}

// Step advances state by dt seconds without rendering
func (s *Scene) Step(dt float64) {
	s.whale.Advance(dt)
	head := s.whale.Head()
	s.stars.Update(head.X, head.Y)
	s.frame++
}

// Resize propagates new viewport bounds
func (s *Scene) Resize(width, height float64) {
	s.whale.Resize(width, height)
	s.stars.Resize(width, height)
}
