// Package audio plays the ambient whale song and star chimes through beep
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	speakerBufferDuration = 100 * time.Millisecond
	chimeDuration         = 1200 * time.Millisecond
)

// SoundManager owns the speaker mixer
// Every method is safe to call before Initialize or after Cleanup, it then does nothing
type SoundManager struct {
	mu          sync.Mutex
	songCtrl    *beep.Ctrl
	mixer       *beep.Mixer
	volume      *effects.Volume
	initialized bool
}

// NewSoundManager creates a sound manager at volume in [0, 1]
func NewSoundManager(volume float64) *SoundManager {
	sm := &SoundManager{
		mixer: &beep.Mixer{},
	}
	sm.volume = &effects.Volume{Streamer: sm.mixer, Base: 2}
	setVolume(sm.volume, volume)
	return sm
}

// setVolume maps linear gain to beep's log scale; log2(0) is -Inf so zero is silent
func setVolume(v *effects.Volume, vol float64) {
	if vol <= 0 {
		v.Volume, v.Silent = 0, true
		return
	}
	v.Volume, v.Silent = math.Log2(math.Min(vol, 1)), false
}

// Initialize opens the speaker
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(speakerBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.volume)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
// beep has no speaker Close, clearing the mixer leaves the device silent
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	if sm.songCtrl != nil {
		sm.songCtrl.Paused = true
		sm.songCtrl = nil
	}
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// SetVolume changes master gain, 0 mutes
func (sm *SoundManager) SetVolume(vol float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	setVolume(sm.volume, vol)
}

// PlaySong starts the looping whale song if it is not already playing
func (sm *SoundManager) PlaySong() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()

	if sm.songCtrl != nil {
		sm.songCtrl.Paused = false
		return
	}
	sm.songCtrl = &beep.Ctrl{Streamer: NewSongGenerator(sampleRate)}
	sm.mixer.Add(sm.songCtrl)
}

// StopSong pauses the whale song, PlaySong resumes it where it left off
func (sm *SoundManager) StopSong() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.songCtrl == nil {
		return
	}
	speaker.Lock()
	sm.songCtrl.Paused = true
	speaker.Unlock()
}

// SongPlaying reports whether the song is audible
func (sm *SoundManager) SongPlaying() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.songCtrl == nil {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return !sm.songCtrl.Paused
}

// PlayChime plays one bell tone at freq Hz, used when the sky is reseeded
func (sm *SoundManager) PlayChime(freq float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(beep.Take(sampleRate.N(chimeDuration), NewChimeGenerator(sampleRate, freq)))
	speaker.Unlock()
}
