package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const (
	songCycle = 7 * time.Second

	songLowHz  = 55.0
	songHighHz = 165.0
)

// SongGenerator is an endless whale call: a slow pitch glide up and back with vibrato
// Each cycle breathes in and out so loops join without clicks
type SongGenerator struct {
	sr      beep.SampleRate
	pos     int
	samples int
	phase   float64
}

func NewSongGenerator(sr beep.SampleRate) *SongGenerator {
	return &SongGenerator{
		sr:      sr,
		samples: sr.N(songCycle),
	}
}

func (g *SongGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		cyclePos := float64(g.pos%g.samples) / float64(g.samples)

		// Glide low to high and back, skewed so the rise is longer than the fall
		glide := math.Sin(math.Pi * math.Pow(cyclePos, 0.7))
		vibrato := 1 + 0.015*math.Sin(2*math.Pi*5.5*t)
		freq := (songLowHz + (songHighHz-songLowHz)*glide) * vibrato

		// Integrate phase so frequency changes stay continuous
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		if g.phase > 2*math.Pi {
			g.phase -= 2 * math.Pi
		}

		envelope := 0.12 * math.Pow(math.Sin(math.Pi*cyclePos), 2)
		sample := envelope * (math.Sin(g.phase) + 0.3*math.Sin(2*g.phase))

		// Slight stereo spread
		samples[i][0] = sample
		samples[i][1] = sample * (0.85 + 0.15*math.Cos(2*math.Pi*cyclePos))
		g.pos++
	}
	return len(samples), true
}

func (g *SongGenerator) Err() error {
	return nil
}

// ChimeGenerator is a struck bell: partials that decay exponentially
type ChimeGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func NewChimeGenerator(sr beep.SampleRate, freq float64) *ChimeGenerator {
	return &ChimeGenerator{
		sr:   sr,
		freq: freq,
	}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		attack := math.Min(t/0.005, 1.0)
		sample := 0.0
		sample += 0.20 * math.Exp(-t*3) * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.08 * math.Exp(-t*5) * math.Sin(2*math.Pi*g.freq*2.76*t)
		sample += 0.04 * math.Exp(-t*8) * math.Sin(2*math.Pi*g.freq*5.4*t)
		sample *= attack

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}
