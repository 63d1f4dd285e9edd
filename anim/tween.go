package anim

import (
	"math"
	"sync"
	"time"

	"github.com/fogleman/ease"
	"github.com/matt-g-everett/countx/util"
)

// A Curve shapes tween progress, mapping an elapsed fraction in 0..1
// to an eased fraction.
type Curve func(t float64) float64

// A TweenBackend animates a numeric field over a fixed duration,
// invoking an update callback per frame and a completion callback
// exactly once per run. The handle identifies the animation for
// cancellation; the backend never writes through it. Kill cancels any
// animation targeting the handle and releases its timer resources.
type TweenBackend interface {
	Animate(handle *float64, from, to float64, d time.Duration, update UpdateFunc, complete CompleteFunc)
	Kill(handle *float64)
}

// CurveByName resolves a declarative easing name to a Curve.
func CurveByName(name string) (Curve, bool) {
	switch name {
	case "linear":
		return ease.Linear, true
	case "in-quad":
		return ease.InQuad, true
	case "out-quad":
		return ease.OutQuad, true
	case "in-out-quad":
		return ease.InOutQuad, true
	case "in-cubic":
		return ease.InCubic, true
	case "out-cubic":
		return ease.OutCubic, true
	case "in-out-cubic":
		return ease.InOutCubic, true
	case "out-expo":
		return ease.OutExpo, true
	case "out-elastic":
		return ease.OutElastic, true
	case "out-bounce":
		return ease.OutBounce, true
	}
	return nil, false
}

// Tweener is the built-in TweenBackend. It samples its easing curve
// into a look-up table and steps through it on a repeating ticker.
type Tweener struct {
	clock         Clock
	frameInterval time.Duration
	curve         Curve

	mu     sync.Mutex
	active map[*float64]*tweenRun
}

type tweenRun struct {
	ticker Ticker
	stop   chan struct{}
}

// NewTweener creates an instance of a Tweener.
func NewTweener(clock Clock, frameInterval time.Duration, curve Curve) *Tweener {
	tw := new(Tweener)
	if clock == nil {
		clock = NewWallClock()
	}
	if frameInterval <= 0 {
		frameInterval = 33 * time.Millisecond
	}
	if curve == nil {
		curve = ease.OutCubic
	}
	tw.clock = clock
	tw.frameInterval = frameInterval
	tw.curve = curve
	tw.active = make(map[*float64]*tweenRun)
	return tw
}

// Animate starts a tween from from to to over d. A prior animation on
// the same handle is killed first, so runs on one handle never overlap.
func (tw *Tweener) Animate(handle *float64, from, to float64, d time.Duration, update UpdateFunc, complete CompleteFunc) {
	frames := int(math.Ceil(float64(d) / float64(tw.frameInterval)))
	if frames < 1 {
		frames = 1
	}
	lut := util.EaseLut(tw.curve, frames+1)

	tw.mu.Lock()
	if prior, ok := tw.active[handle]; ok {
		prior.ticker.Stop()
		close(prior.stop)
	}
	run := &tweenRun{
		ticker: tw.clock.NewTicker(tw.frameInterval),
		stop:   make(chan struct{}),
	}
	tw.active[handle] = run
	tw.mu.Unlock()

	go func() {
		frame := 0
		for {
			select {
			case <-run.stop:
				return
			case <-run.ticker.C():
				frame++
				if frame >= frames {
					tw.release(handle, run)
					if update != nil {
						update(to)
					}
					if complete != nil {
						complete()
					}
					return
				}
				if update != nil {
					update(from + (to-from)*lut[frame])
				}
			}
		}
	}()
}

// Kill cancels the animation targeting handle; a no-op when none is
// running.
func (tw *Tweener) Kill(handle *float64) {
	tw.mu.Lock()
	run, ok := tw.active[handle]
	if ok {
		delete(tw.active, handle)
	}
	tw.mu.Unlock()

	if ok {
		run.ticker.Stop()
		close(run.stop)
	}
}

// release drops a finished run, unless a newer run replaced it.
func (tw *Tweener) release(handle *float64, run *tweenRun) {
	tw.mu.Lock()
	if tw.active[handle] == run {
		delete(tw.active, handle)
	}
	tw.mu.Unlock()
	run.ticker.Stop()
}
