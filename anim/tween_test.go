package anim

import (
	"sync"
	"testing"
	"time"

	"github.com/fogleman/ease"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTweenerAnimatesToExactTarget(t *testing.T) {
	tw := NewTweener(nil, 10*time.Millisecond, ease.Linear)

	var mu sync.Mutex
	var values []float64
	done := make(chan struct{})
	var handle float64

	tw.Animate(&handle, 0, 10, 100*time.Millisecond,
		func(v float64) {
			mu.Lock()
			values = append(values, v)
			mu.Unlock()
		},
		func() { close(done) })

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("tween did not complete")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, values, 10)
	assert.Equal(t, 10.0, values[len(values)-1])
	for i := 1; i < len(values); i++ {
		assert.GreaterOrEqual(t, values[i], values[i-1])
	}
}

func TestTweenerShortDurationStillCompletes(t *testing.T) {
	tw := NewTweener(nil, 10*time.Millisecond, nil)

	done := make(chan struct{})
	var handle float64
	var final float64
	tw.Animate(&handle, 5, 7, time.Millisecond,
		func(v float64) { final = v },
		func() { close(done) })

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("tween did not complete")
	}
	require.Equal(t, 7.0, final)
}

func TestTweenerKillStopsUpdates(t *testing.T) {
	tw := NewTweener(nil, 10*time.Millisecond, nil)

	var mu sync.Mutex
	var updates, completions int
	var handle float64

	tw.Animate(&handle, 0, 100, 10*time.Second,
		func(v float64) {
			mu.Lock()
			updates++
			mu.Unlock()
		},
		func() {
			mu.Lock()
			completions++
			mu.Unlock()
		})

	time.Sleep(50 * time.Millisecond)
	tw.Kill(&handle)
	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	seen := updates
	mu.Unlock()
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, seen, updates)
	assert.Zero(t, completions)
}

func TestTweenerReplacesRunOnSameHandle(t *testing.T) {
	tw := NewTweener(nil, 10*time.Millisecond, nil)

	var mu sync.Mutex
	var firstCompleted, secondCompleted int
	var handle float64
	done := make(chan struct{})

	tw.Animate(&handle, 0, 100, 10*time.Second, nil, func() {
		mu.Lock()
		firstCompleted++
		mu.Unlock()
	})
	tw.Animate(&handle, 0, 1, 20*time.Millisecond, nil, func() {
		mu.Lock()
		secondCompleted++
		mu.Unlock()
		close(done)
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("replacement tween did not complete")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, firstCompleted)
	assert.Equal(t, 1, secondCompleted)
}

func TestCurveByName(t *testing.T) {
	for _, name := range []string{"linear", "out-cubic", "out-elastic", "out-bounce", "in-out-quad"} {
		curve, ok := CurveByName(name)
		require.True(t, ok, name)
		require.NotNil(t, curve, name)
	}
	_, ok := CurveByName("wobble")
	require.False(t, ok)
}
