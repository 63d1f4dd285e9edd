package anim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClockAfterFuncOrdering(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))
	var fired []string

	clock.AfterFunc(30*time.Millisecond, func() { fired = append(fired, "b") })
	clock.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "a") })
	clock.AfterFunc(50*time.Millisecond, func() { fired = append(fired, "c") })

	clock.Advance(40 * time.Millisecond)
	require.Equal(t, []string{"a", "b"}, fired)

	clock.Advance(20 * time.Millisecond)
	require.Equal(t, []string{"a", "b", "c"}, fired)
}

func TestMockClockTimerStop(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))
	var fired bool

	timer := clock.AfterFunc(10*time.Millisecond, func() { fired = true })
	require.True(t, timer.Stop())
	require.False(t, timer.Stop())

	clock.Advance(time.Second)
	assert.False(t, fired)
}

func TestMockClockCallbackMaySchedule(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))
	var fired []string

	clock.AfterFunc(10*time.Millisecond, func() {
		fired = append(fired, "outer")
		clock.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "inner") })
	})

	clock.Advance(30 * time.Millisecond)
	require.Equal(t, []string{"outer", "inner"}, fired)
}

func TestMockClockTicker(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))
	ticker := clock.NewTicker(10 * time.Millisecond)

	clock.Advance(35 * time.Millisecond)
	require.Len(t, ticker.C(), 3)

	ticker.Stop()
	clock.Advance(35 * time.Millisecond)
	require.Len(t, ticker.C(), 3)
}

func TestMockClockNowAdvances(t *testing.T) {
	start := time.Unix(100, 0)
	clock := NewMockClock(start)
	clock.Advance(1500 * time.Millisecond)
	assert.Equal(t, start.Add(1500*time.Millisecond), clock.Now())
}
