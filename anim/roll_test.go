package anim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBackend settles every transition the moment it starts.
type syncBackend struct {
	killed int
}

func (b *syncBackend) Animate(handle *float64, from, to float64, d time.Duration, update UpdateFunc, complete CompleteFunc) {
	update(to)
	complete()
}

func (b *syncBackend) Kill(handle *float64) {
	b.killed++
}

// deferredBackend captures transition callbacks so tests can settle
// columns explicitly.
type deferredBackend struct {
	completes []CompleteFunc
}

func (b *deferredBackend) Animate(handle *float64, from, to float64, d time.Duration, update UpdateFunc, complete CompleteFunc) {
	b.completes = append(b.completes, complete)
}

func (b *deferredBackend) Kill(handle *float64) {}

func TestNewRollRequiresTarget(t *testing.T) {
	_, err := NewRoll(RollConfig{}, NewMockClock(time.Unix(0, 0)), &syncBackend{})
	require.Error(t, err)
}

func TestNewRollRejectsNonDigits(t *testing.T) {
	_, err := NewRoll(RollConfig{To: "45a2"}, NewMockClock(time.Unix(0, 0)), &syncBackend{})
	require.Error(t, err)
}

func TestRollColumnsFollowTargetOrder(t *testing.T) {
	r, err := NewRoll(RollConfig{To: "4562"}, NewMockClock(time.Unix(0, 0)), &syncBackend{})
	require.NoError(t, err)

	cols := r.Columns()
	require.Len(t, cols, 4)
	digits := make([]int, len(cols))
	for i, col := range cols {
		digits[i] = col.Digit
		assert.Equal(t, 0.0, col.Offset)
	}
	assert.Equal(t, []int{4, 5, 6, 2}, digits)
}

func TestRollStaggerStrictlyIncreases(t *testing.T) {
	prev := time.Duration(-1)
	for i := 0; i < 6; i++ {
		d := columnDelay(i)
		require.Greater(t, int64(d), int64(prev))
		prev = d
	}
	require.Equal(t, rollPrimingDelay, columnDelay(0))
	require.Equal(t, rollPrimingDelay+2*rollStaggerInterval, columnDelay(2))
}

func TestRollCascadesAndCompletesOnce(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))
	var completions int
	cfg := RollConfig{To: "4562", OnComplete: func() { completions++ }}
	r, err := NewRoll(cfg, clock, &syncBackend{})
	require.NoError(t, err)

	r.Start()
	require.True(t, r.Running())
	require.Equal(t, 0.0, r.Progress())

	clock.Advance(49 * time.Millisecond)
	require.Equal(t, 0.0, r.Progress())

	clock.Advance(1 * time.Millisecond)
	require.Equal(t, 0.25, r.Progress())
	require.Equal(t, 4.0, r.Columns()[0].Offset)
	require.Equal(t, 0.0, r.Columns()[1].Offset)

	clock.Advance(300 * time.Millisecond)
	require.Equal(t, 1.0, r.Progress())
	require.Equal(t, 1, completions)
	require.False(t, r.Running())
	for _, col := range r.Columns() {
		assert.Equal(t, float64(col.Digit), col.Offset)
	}
	assert.Equal(t, "4562", r.Text())
}

func TestRollRestartNeverDoubleFires(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))
	var completions int
	cfg := RollConfig{To: "123", OnComplete: func() { completions++ }}
	r, err := NewRoll(cfg, clock, &syncBackend{})
	require.NoError(t, err)

	r.Start()
	clock.Advance(160 * time.Millisecond) // first two columns settle
	require.Equal(t, 2, r.completed)

	r.Start()
	require.Equal(t, 0.0, r.Columns()[0].Offset)
	clock.Advance(400 * time.Millisecond)

	require.Equal(t, 1, completions)
	require.Equal(t, 3, r.completed)
}

func TestRollStaleObserversIgnored(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))
	var completions int
	backend := &deferredBackend{}
	cfg := RollConfig{To: "12", OnComplete: func() { completions++ }}
	r, err := NewRoll(cfg, clock, backend)
	require.NoError(t, err)

	r.Start()
	clock.Advance(200 * time.Millisecond)
	require.Len(t, backend.completes, 2)
	stale := backend.completes

	// Settle one column of the first run, then supersede the run.
	stale[0]()
	require.Equal(t, 1, r.completed)
	r.Start()
	require.Equal(t, 0, r.completed)

	// The first run's remaining observer fires late; it must not count.
	stale[1]()
	require.Equal(t, 0, r.completed)
	require.Zero(t, completions)

	clock.Advance(200 * time.Millisecond)
	require.Len(t, backend.completes, 4)
	backend.completes[2]()
	backend.completes[3]()
	require.Equal(t, 1, completions)
}

func TestRollResetNeverFiresCompletion(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))
	var completions int
	cfg := RollConfig{To: "99", OnComplete: func() { completions++ }}
	r, err := NewRoll(cfg, clock, &syncBackend{})
	require.NoError(t, err)

	r.Start()
	clock.Advance(60 * time.Millisecond)
	require.Equal(t, 9.0, r.Columns()[0].Offset)

	r.Reset()
	require.False(t, r.Running())
	for _, col := range r.Columns() {
		require.Equal(t, 0.0, col.Offset)
	}

	// Stale stagger timers fire into the old generation.
	clock.Advance(time.Second)
	require.Zero(t, completions)
	for _, col := range r.Columns() {
		require.Equal(t, 0.0, col.Offset)
	}
}

func TestRollStopKillsColumnTransitions(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))
	backend := &syncBackend{}
	r, err := NewRoll(RollConfig{To: "12"}, clock, backend)
	require.NoError(t, err)

	r.Start()
	r.Stop()
	require.False(t, r.Running())
	require.Equal(t, 2, backend.killed)
}

func TestRollRealClockCompletes(t *testing.T) {
	var done = make(chan struct{})
	cfg := RollConfig{To: "12", Duration: 50 * time.Millisecond, OnComplete: func() { close(done) }}
	r, err := NewRoll(cfg, nil, nil)
	require.NoError(t, err)

	r.Start()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("roll did not complete")
	}

	cols := r.Columns()
	require.Equal(t, 1.0, cols[0].Offset)
	require.Equal(t, 2.0, cols[1].Offset)
	require.False(t, r.Running())
}
