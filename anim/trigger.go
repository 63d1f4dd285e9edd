package anim

import (
	"log"
	"sync"
)

// ScrollEvent reports a tracked display region's position relative to
// the device viewport.
type ScrollEvent struct {
	// Top is the region's top offset from the viewport top.
	Top float64
	// ViewportHeight is the viewport's height in the same units.
	ViewportHeight float64
}

// A ScrollSource publishes viewport scroll reports for one tracked
// region.
type ScrollSource interface {
	// Current returns the most recent report, if one has been seen.
	Current() (ScrollEvent, bool)
	// Subscribe registers fn for subsequent reports and returns a
	// cancel func that detaches it.
	Subscribe(fn func(ScrollEvent)) (cancel func())
}

// A VisibilityObserver is an optional external backend that invokes
// fire once, the first time the tracked region crosses the viewport
// threshold. The returned cancel detaches the observation.
type VisibilityObserver interface {
	Observe(threshold float64, fire func()) (cancel func())
}

type triggerState int

const (
	triggerIdle triggerState = iota
	triggerArmed
	triggerFired
)

// A Trigger decides when an engine's start is invoked: immediately,
// after a fixed delay, or once the tracked region crosses a
// visibility threshold. Fired is terminal; the trigger detaches its
// listener so it can never fire twice.
type Trigger struct {
	cfg   TriggerConfig
	clock Clock

	mu     sync.Mutex
	state  triggerState
	cancel func()
	timer  Timer
}

// NewTrigger creates a Trigger from a resolved config.
func NewTrigger(cfg TriggerConfig, clock Clock) *Trigger {
	t := new(Trigger)
	t.cfg = cfg
	t.clock = clock
	t.state = triggerIdle
	if t.clock == nil {
		t.clock = NewWallClock()
	}
	return t
}

// Arm wires the trigger to an engine's start. In scroll mode the
// external observer backend is preferred when present; otherwise the
// trigger falls back to a scroll listener, with an immediate check at
// attach time since the region may already be visible.
func (t *Trigger) Arm(source ScrollSource, observer VisibilityObserver, start func()) {
	switch t.cfg.Mode {
	case TriggerImmediate:
		if t.cfg.Delay <= 0 {
			t.fire(start)
			return
		}
		t.mu.Lock()
		if t.state != triggerIdle {
			t.mu.Unlock()
			return
		}
		t.state = triggerArmed
		t.timer = t.clock.AfterFunc(t.cfg.Delay, func() {
			t.fire(start)
		})
		t.mu.Unlock()

	case TriggerScroll:
		if observer != nil {
			t.mu.Lock()
			if t.state != triggerIdle {
				t.mu.Unlock()
				return
			}
			t.state = triggerArmed
			t.mu.Unlock()
			cancel := observer.Observe(t.cfg.Threshold, func() {
				t.fire(start)
			})
			t.setCancel(cancel)
			return
		}
		if source == nil {
			log.Printf("anim: scroll trigger armed without a scroll source, widget will not animate")
			return
		}
		t.mu.Lock()
		if t.state != triggerIdle {
			t.mu.Unlock()
			return
		}
		t.state = triggerArmed
		t.mu.Unlock()
		cancel := source.Subscribe(func(ev ScrollEvent) {
			t.handleScroll(ev, start)
		})
		t.setCancel(cancel)
		if ev, ok := source.Current(); ok {
			t.handleScroll(ev, start)
		}
	}
}

// handleScroll is the manual fallback check: fire once the region's
// top rises above the threshold line of the viewport.
func (t *Trigger) handleScroll(ev ScrollEvent, start func()) {
	if ev.Top <= ev.ViewportHeight*t.cfg.Threshold {
		t.fire(start)
	}
}

// fire transitions to the terminal state and invokes start exactly
// once, detaching any listener.
func (t *Trigger) fire(start func()) {
	t.mu.Lock()
	if t.state == triggerFired {
		t.mu.Unlock()
		return
	}
	t.state = triggerFired
	cancel := t.cancel
	t.cancel = nil
	timer := t.timer
	t.timer = nil
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if timer != nil {
		timer.Stop()
	}
	start()
}

// setCancel records the detach func, running it at once when the
// trigger already fired during attach.
func (t *Trigger) setCancel(cancel func()) {
	t.mu.Lock()
	if t.state == triggerFired {
		t.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		return
	}
	t.cancel = cancel
	t.mu.Unlock()
}

// Cancel detaches the trigger without firing. Safe to call in any
// state.
func (t *Trigger) Cancel() {
	t.mu.Lock()
	cancel := t.cancel
	t.cancel = nil
	timer := t.timer
	t.timer = nil
	if t.state == triggerArmed {
		t.state = triggerIdle
	}
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if timer != nil {
		timer.Stop()
	}
}

// Fired reports whether the trigger has reached its terminal state.
func (t *Trigger) Fired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == triggerFired
}
