package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock returns a clock that only moves when advance is called.
func fakeClock() (func() time.Time, func(time.Duration)) {
	now := time.Unix(1000, 0)
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}

func TestTickLogsOncePerInterval(t *testing.T) {
	clock, advance := fakeClock()
	p := NewProfiler(WithClock(clock), WithInterval(time.Second))

	for range 3 {
		advance(250 * time.Millisecond)
		assert.False(t, p.Tick(2, time.Millisecond))
	}
	advance(250 * time.Millisecond)
	assert.True(t, p.Tick(4, 3*time.Millisecond))

	stats := p.LastStats()
	assert.InDelta(t, 4.0, stats.FPS, 1e-9)
	assert.InDelta(t, 2.5, stats.RigsPerFrame, 1e-9)
	assert.Equal(t, 1500*time.Microsecond, stats.AvgUpdateTime)
}

func TestTickResetsCounters(t *testing.T) {
	clock, advance := fakeClock()
	p := NewProfiler(WithClock(clock), WithInterval(time.Second))

	advance(time.Second)
	assert.True(t, p.Tick(10, time.Millisecond))

	advance(500 * time.Millisecond)
	assert.False(t, p.Tick(1, time.Millisecond))
	advance(500 * time.Millisecond)
	assert.True(t, p.Tick(1, time.Millisecond))
	assert.InDelta(t, 1.0, p.LastStats().RigsPerFrame, 1e-9)
	assert.InDelta(t, 2.0, p.LastStats().FPS, 1e-9)
}
