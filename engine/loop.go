// Package engine runs the scene against a live terminal
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/nightwhale/audio"
	"github.com/lixenwraith/nightwhale/config"
	"github.com/lixenwraith/nightwhale/metrics"
	"github.com/lixenwraith/nightwhale/render/termcanvas"
	"github.com/lixenwraith/nightwhale/scene"
)

// chimeNotes is a pentatonic scale, one note per reseed
var chimeNotes = []float64{523.25, 587.33, 659.25, 783.99, 880.00}

// Sound is the audio surface the loop drives, implemented by audio.SoundManager
type Sound interface {
	Initialize() error
	SetVolume(vol float64)
	PlaySong()
	StopSong()
	SongPlaying() bool
	PlayChime(freq float64)
}

var _ Sound = (*audio.SoundManager)(nil)

// Options wires optional collaborators into the loop, nil fields are skipped
type Options struct {
	// Reload delivers new configs, typically from config.Watcher
	Reload <-chan config.Config
	// Sound is opened only while audio.enabled is set
	Sound   Sound
	Metrics *metrics.Frame
	Time    TimeProvider
}

// Loop owns the scene, the canvas and the frame ticker
// All scene mutation happens on the goroutine calling Run
type Loop struct {
	screen tcell.Screen
	canvas *termcanvas.Canvas
	scene  *scene.Scene
	conf   config.Config
	clock  *PausableClock
	opts   Options

	seed int64
}

// New sizes a canvas to screen and builds the first scene from conf
// screen must already be initialized; the caller keeps ownership and calls Fini
func New(screen tcell.Screen, conf config.Config, opts Options) (*Loop, error) {
	if opts.Time == nil {
		opts.Time = MonotonicTimeProvider{}
	}
	l := &Loop{
		screen: screen,
		canvas: termcanvas.New(screen, conf.Render.Scale),
		conf:   conf,
		clock:  NewPausableClock(opts.Time),
		opts:   opts,
		seed:   conf.Scene.Seed,
	}
	l.canvas.SetColorMode(conf.ColorMode())
	if err := l.rebuild(); err != nil {
		return nil, err
	}
	if conf.Audio.Enabled {
		l.startSound()
	}
	return l, nil
}

func (l *Loop) Scene() *scene.Scene        { return l.scene }
func (l *Loop) Canvas() *termcanvas.Canvas { return l.canvas }
func (l *Loop) Clock() *PausableClock      { return l.clock }
func (l *Loop) Seed() int64                { return l.seed }
func (l *Loop) Config() config.Config      { return l.conf }

// rebuild replaces the scene with a fresh one for the current config, seed and canvas size
func (l *Loop) rebuild() error {
	conf := l.conf
	conf.Scene.Seed = l.seed
	w, h := l.canvas.Size()
	s, err := scene.New(conf.SceneConfig(), w, h)
	if err != nil {
		return fmt.Errorf("error building scene: %w", err)
	}
	l.scene = s
	if l.opts.Metrics != nil {
		l.opts.Metrics.SetScene(s.Stars().Len(), len(s.Whale().Segments()))
	}
	log.Debug().Int64("seed", l.seed).Int("stars", s.Stars().Len()).
		Float64("width", w).Float64("height", h).Msg("scene built")
	return nil
}

func frameInterval(fps int) time.Duration {
	return time.Second / time.Duration(max(fps, 1))
}

// Run drives frames until ctx is done, a quit key is pressed or the screen closes
func (l *Loop) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	pollDone := make(chan struct{})
	go func() {
		defer close(pollDone)
		l.screen.ChannelEvents(events, quit)
	}()
	defer func() {
		close(quit)
		<-pollDone
	}()

	ticker := time.NewTicker(frameInterval(l.conf.Scene.FPS))
	defer ticker.Stop()

	log.Info().Int("fps", l.conf.Scene.FPS).Int64("seed", l.seed).Msg("animation started")
	defer func() {
		log.Info().Uint64("frames", l.scene.FrameNumber()).
			Dur("elapsed", l.clock.Elapsed()).Dur("paused", l.clock.TotalPaused()).
			Msg("animation stopped")
	}()

	l.tick()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !l.handleEvent(ev) {
				return nil
			}
		case conf := <-l.opts.Reload:
			fps := l.conf.Scene.FPS
			if err := l.applyConfig(conf); err != nil {
				log.Warn().Err(err).Msg("ignoring reloaded config")
				continue
			}
			if conf.Scene.FPS != fps {
				ticker.Reset(frameInterval(conf.Scene.FPS))
			}
		case <-ticker.C:
			l.tick()
		}
	}
}

// tick renders one frame; while paused the scene is redrawn without advancing
func (l *Loop) tick() {
	start := l.opts.Time.Now()
	if l.clock.IsPaused() {
		l.scene.Draw(l.canvas)
	} else {
		l.scene.Frame(l.canvas, 1/float64(max(l.conf.Scene.FPS, 1)))
	}
	l.canvas.Flush()
	if l.opts.Metrics != nil {
		l.opts.Metrics.ObserveFrame(l.opts.Time.Now().Sub(start))
	}
}

// handleEvent applies one terminal event, returns false to quit
func (l *Loop) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case ' ':
				l.togglePause()
			case 's', 'S':
				l.toggleSound()
			case 'r', 'R':
				l.reseed()
			}
		}
	case *tcell.EventResize:
		cols, rows := ev.Size()
		l.screen.Sync()
		l.canvas.Resize(cols, rows)
		l.scene.Resize(l.canvas.Size())
		log.Debug().Int("cols", cols).Int("rows", rows).Msg("terminal resized")
		l.scene.Draw(l.canvas)
		l.canvas.Flush()
	}
	return true
}

func (l *Loop) togglePause() {
	paused := l.clock.Toggle()
	if l.opts.Metrics != nil {
		l.opts.Metrics.SetPaused(paused)
	}
	log.Debug().Bool("paused", paused).Msg("pause toggled")
}

// startSound opens the device on first use and starts the song, failures leave the loop silent
func (l *Loop) startSound() {
	if l.opts.Sound == nil {
		return
	}
	if err := l.opts.Sound.Initialize(); err != nil {
		log.Warn().Err(err).Msg("audio initialization failed, continuing without sound")
		return
	}
	l.opts.Sound.SetVolume(l.conf.Audio.Volume)
	l.opts.Sound.PlaySong()
}

// toggleSound pauses or resumes the song; with audio.enabled off the key does nothing
func (l *Loop) toggleSound() {
	if l.opts.Sound == nil || !l.conf.Audio.Enabled {
		log.Debug().Msg("sound unavailable")
		return
	}
	if l.opts.Sound.SongPlaying() {
		l.opts.Sound.StopSong()
	} else {
		l.opts.Sound.PlaySong()
	}
	log.Debug().Bool("playing", l.opts.Sound.SongPlaying()).Msg("sound toggled")
}

// reseed scatters a new sky and restarts the whale from the centre
func (l *Loop) reseed() {
	l.seed++
	if err := l.rebuild(); err != nil {
		log.Error().Err(err).Msg("reseed failed")
		return
	}
	if l.opts.Sound != nil && l.conf.Audio.Enabled {
		l.opts.Sound.PlayChime(chimeNotes[uint64(l.seed)%uint64(len(chimeNotes))])
	}
}

// applyConfig swaps in a reloaded config, keeping the current seed
func (l *Loop) applyConfig(conf config.Config) error {
	prev := l.conf
	l.conf = conf
	l.canvas.SetScale(conf.Render.Scale)
	if err := l.rebuild(); err != nil {
		l.conf = prev
		l.canvas.SetScale(prev.Render.Scale)
		return err
	}
	l.canvas.SetColorMode(conf.ColorMode())
	switch {
	case conf.Audio.Enabled && !prev.Audio.Enabled:
		l.startSound()
	case !conf.Audio.Enabled && prev.Audio.Enabled && l.opts.Sound != nil:
		l.opts.Sound.StopSong()
	case conf.Audio.Enabled && l.opts.Sound != nil:
		l.opts.Sound.SetVolume(conf.Audio.Volume)
	}
	if l.opts.Metrics != nil {
		l.opts.Metrics.Reloaded()
	}
	log.Info().Msg("config applied")
	return nil
}
