package anim

import "time"

// A Clock creates the timer resources that drive animations, so engines
// can run against a controllable time source in tests.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
	AfterFunc(d time.Duration, f func()) Timer
}

// Ticker delivers repeating ticks until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Timer is a single pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// WallClock is a Clock backed by the system monotonic clock.
type WallClock struct{}

// NewWallClock creates an instance of a WallClock.
func NewWallClock() *WallClock {
	return &WallClock{}
}

func (*WallClock) Now() time.Time {
	return time.Now()
}

func (*WallClock) NewTicker(d time.Duration) Ticker {
	return &wallTicker{ticker: time.NewTicker(d)}
}

func (*WallClock) AfterFunc(d time.Duration, f func()) Timer {
	return &wallTimer{timer: time.AfterFunc(d, f)}
}

type wallTicker struct {
	ticker *time.Ticker
}

func (t *wallTicker) C() <-chan time.Time {
	return t.ticker.C
}

func (t *wallTicker) Stop() {
	t.ticker.Stop()
}

type wallTimer struct {
	timer *time.Timer
}

func (t *wallTimer) Stop() bool {
	return t.timer.Stop()
}
