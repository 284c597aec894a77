package engine

import (
	"sync"
	"time"
)

// TimeProvider is a source of wall-clock time
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider provides the real system time with monotonic clock readings
type MonotonicTimeProvider struct{}

func (MonotonicTimeProvider) Now() time.Time { return time.Now() }

// MockTimeProvider provides a controllable time source for testing
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
}

func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{currentTime: start}
}

func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Advance moves the mocked time forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// PausableClock tracks animation time, which stands still while paused
// Owned by the frame loop, not safe for concurrent use
type PausableClock struct {
	provider TimeProvider

	start       time.Time
	paused      bool
	pauseStart  time.Time
	totalPaused time.Duration
}

func NewPausableClock(provider TimeProvider) *PausableClock {
	return &PausableClock{
		provider: provider,
		start:    provider.Now(),
	}
}

// Elapsed is running time excluding pauses
func (c *PausableClock) Elapsed() time.Duration {
	now := c.provider.Now()
	if c.paused {
		now = c.pauseStart
	}
	return now.Sub(c.start) - c.totalPaused
}

func (c *PausableClock) Pause() {
	if c.paused {
		return
	}
	c.paused = true
	c.pauseStart = c.provider.Now()
}

func (c *PausableClock) Resume() {
	if !c.paused {
		return
	}
	c.paused = false
	c.totalPaused += c.provider.Now().Sub(c.pauseStart)
	c.pauseStart = time.Time{}
}

// Toggle flips pause state and returns the new state
func (c *PausableClock) Toggle() bool {
	if c.paused {
		c.Resume()
	} else {
		c.Pause()
	}
	return c.paused
}

func (c *PausableClock) IsPaused() bool { return c.paused }

// TotalPaused includes the pause in progress, if any
func (c *PausableClock) TotalPaused() time.Duration {
	total := c.totalPaused
	if c.paused {
		total += c.provider.Now().Sub(c.pauseStart)
	}
	return total
}
