package anim

import (
	"sync"
	"time"
)

// MockClock is a controllable Clock for testing. Advance moves time
// forward and fires due timers on the calling goroutine, so tests stay
// deterministic.
type MockClock struct {
	mu      sync.Mutex
	now     time.Time
	timers  []*mockTimer
	tickers []*mockTicker
}

// NewMockClock creates a MockClock starting at the given time.
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

// Now returns the current mocked time.
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *MockClock) NewTicker(d time.Duration) Ticker {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &mockTicker{
		clock:    m,
		interval: d,
		next:     m.now.Add(d),
		ch:       make(chan time.Time, 256),
	}
	m.tickers = append(m.tickers, t)
	return t
}

func (m *MockClock) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &mockTimer{
		clock:    m,
		deadline: m.now.Add(d),
		f:        f,
	}
	m.timers = append(m.timers, t)
	return t
}

// Advance moves the clock forward by d, firing timers and ticker sends
// in deadline order. Callbacks run synchronously and may themselves
// schedule further timers.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	for {
		timer, ticker, at := m.nextEventLocked(target)
		if timer == nil && ticker == nil {
			m.now = target
			m.mu.Unlock()
			return
		}

		m.now = at
		if timer != nil {
			m.removeTimerLocked(timer)
			f := timer.f
			m.mu.Unlock()
			f()
			m.mu.Lock()
		} else {
			ticker.next = ticker.next.Add(ticker.interval)
			select {
			case ticker.ch <- at:
			default:
			}
		}
	}
}

// nextEventLocked finds the earliest pending event at or before target.
// Timers win ties so one-shot callbacks run ahead of repeating ticks.
func (m *MockClock) nextEventLocked(target time.Time) (*mockTimer, *mockTicker, time.Time) {
	var bestTimer *mockTimer
	var bestTicker *mockTicker
	var at time.Time

	for _, t := range m.timers {
		if t.deadline.After(target) {
			continue
		}
		if bestTimer == nil || t.deadline.Before(at) {
			bestTimer = t
			at = t.deadline
		}
	}
	for _, t := range m.tickers {
		if t.next.After(target) {
			continue
		}
		if (bestTimer == nil && bestTicker == nil) || t.next.Before(at) {
			bestTimer = nil
			bestTicker = t
			at = t.next
		}
	}

	return bestTimer, bestTicker, at
}

func (m *MockClock) removeTimerLocked(timer *mockTimer) {
	for i, t := range m.timers {
		if t == timer {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}

type mockTimer struct {
	clock    *MockClock
	deadline time.Time
	f        func()
}

func (t *mockTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	for i, pending := range t.clock.timers {
		if pending == t {
			t.clock.timers = append(t.clock.timers[:i], t.clock.timers[i+1:]...)
			return true
		}
	}
	return false
}

type mockTicker struct {
	clock    *MockClock
	interval time.Duration
	next     time.Time
	ch       chan time.Time
}

func (t *mockTicker) C() <-chan time.Time {
	return t.ch
}

func (t *mockTicker) Stop() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	for i, pending := range t.clock.tickers {
		if pending == t {
			t.clock.tickers = append(t.clock.tickers[:i], t.clock.tickers[i+1:]...)
			return
		}
	}
}
