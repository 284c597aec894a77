package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPausableClock(t *testing.T) {
	mock := NewMockTimeProvider(time.Unix(1000, 0))
	c := NewPausableClock(mock)

	mock.Advance(2 * time.Second)
	assert.Equal(t, 2*time.Second, c.Elapsed())

	assert.True(t, c.Toggle())
	mock.Advance(5 * time.Second)
	assert.Equal(t, 2*time.Second, c.Elapsed(), "elapsed frozen while paused")
	assert.Equal(t, 5*time.Second, c.TotalPaused())

	assert.False(t, c.Toggle())
	mock.Advance(time.Second)
	assert.Equal(t, 3*time.Second, c.Elapsed())
	assert.Equal(t, 5*time.Second, c.TotalPaused())
}

func TestPausableClockIdempotent(t *testing.T) {
	mock := NewMockTimeProvider(time.Unix(0, 0))
	c := NewPausableClock(mock)

	c.Resume()
	assert.False(t, c.IsPaused())

	c.Pause()
	mock.Advance(time.Second)
	c.Pause()
	mock.Advance(time.Second)
	c.Resume()
	assert.Equal(t, 2*time.Second, c.TotalPaused())
}
