package anim

import (
	"math"
	"sync"
)

// A Counter animates a numeric display value from a start value to a
// target value across a fixed number of discrete ticks, invoking an
// update hook each tick and a completion hook at the end. When a tween
// backend is present the backend's easing governs intermediate values
// instead of the built-in linear tick path.
type Counter struct {
	cfg     CounterConfig
	clock   Clock
	backend TweenBackend

	mu           sync.Mutex
	current      float64
	ticksElapsed int
	totalTicks   int
	perTick      float64
	ticker       Ticker
	stopCh       chan struct{}
	running      bool
	viaBackend   bool
	done         bool
	text         string
}

// NewCounter creates a Counter from a resolved config. A nil clock
// selects the wall clock; a nil backend selects the built-in tick path.
func NewCounter(cfg CounterConfig, clock Clock, backend TweenBackend) *Counter {
	c := new(Counter)
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultCounterConfig().RefreshInterval
	}
	if cfg.Formatter == nil {
		if cfg.Grouping {
			cfg.Formatter = FormatGrouped
		} else {
			cfg.Formatter = FormatFixed
		}
	}
	if clock == nil {
		clock = NewWallClock()
	}
	c.cfg = cfg
	c.clock = clock
	c.backend = backend
	c.rewindLocked()
	c.renderLocked()
	return c
}

// NewCounterGroup creates one Counter per attribute map, each resolved
// against the same explicit options. Instances are returned in input
// order.
func NewCounterGroup(attrSets []map[string]string, clock Clock, backend TweenBackend, opts ...CounterOption) []*Counter {
	counters := make([]*Counter, 0, len(attrSets))
	for _, attrs := range attrSets {
		counters = append(counters, NewCounter(NewCounterConfig(attrs, opts...), clock, backend))
	}
	return counters
}

// rewindLocked reinitializes the run state from the config.
func (c *Counter) rewindLocked() {
	c.current = c.cfg.From
	c.ticksElapsed = 0
	c.totalTicks = int(math.Ceil(float64(c.cfg.Speed) / float64(c.cfg.RefreshInterval)))
	if c.totalTicks < 1 {
		c.totalTicks = 1
	}
	c.perTick = (c.cfg.To - c.cfg.From) / float64(c.totalTicks)
	c.done = false
}

func (c *Counter) renderLocked() {
	c.text = c.cfg.Formatter(c.current, c.cfg)
}

// Start (re)initializes the value to the start value, renders once,
// and schedules the run. Calling Start while running stops the prior
// run first.
func (c *Counter) Start() Animation {
	c.mu.Lock()
	c.stopLocked()
	c.rewindLocked()
	c.renderLocked()
	c.running = true

	if c.backend != nil {
		c.viaBackend = true
		from, to, speed := c.cfg.From, c.cfg.To, c.cfg.Speed
		c.mu.Unlock()
		c.backend.Animate(&c.current, from, to, speed, c.backendUpdate, c.backendComplete)
		return c
	}

	c.viaBackend = false
	ticker := c.clock.NewTicker(c.cfg.RefreshInterval)
	stop := make(chan struct{})
	c.ticker = ticker
	c.stopCh = stop
	c.mu.Unlock()

	go func() {
		for {
			select {
			case <-stop:
				return
			case <-ticker.C():
				if c.step() {
					return
				}
			}
		}
	}()
	return c
}

// Stop cancels the active ticker or backend animation; a no-op when
// not running.
func (c *Counter) Stop() {
	c.mu.Lock()
	c.stopLocked()
	c.mu.Unlock()
}

// Restart is equivalent to Stop, reinitialize, Start.
func (c *Counter) Restart() Animation {
	c.Stop()
	return c.Start()
}

// Toggle stops a running counter, otherwise starts it.
func (c *Counter) Toggle() {
	c.mu.Lock()
	running := c.running
	c.mu.Unlock()
	if running {
		c.Stop()
	} else {
		c.Start()
	}
}

// stopLocked releases exactly the resources armed by the most recent
// Start.
func (c *Counter) stopLocked() {
	if !c.running {
		return
	}
	c.running = false
	if c.viaBackend {
		backend := c.backend
		handle := &c.current
		// Kill synchronizes on the backend, not on c.mu.
		c.mu.Unlock()
		backend.Kill(handle)
		c.mu.Lock()
		return
	}
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
	if c.stopCh != nil {
		close(c.stopCh)
		c.stopCh = nil
	}
}

// step applies one tick of the built-in linear path. It reports true
// once the run has ended so the tick loop can exit.
func (c *Counter) step() bool {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return true
	}

	c.current += c.perTick
	c.ticksElapsed++
	value := c.current
	update := c.cfg.OnUpdate

	finished := c.ticksElapsed >= c.totalTicks || c.perTick == 0
	var complete CompleteFunc
	if finished {
		c.running = false
		if c.ticker != nil {
			c.ticker.Stop()
			c.ticker = nil
		}
		c.stopCh = nil
	}
	c.renderLocked()
	if finished {
		// Land exactly on the target so float drift never shows.
		c.current = c.cfg.To
		c.done = true
		c.renderLocked()
		complete = c.cfg.OnComplete
	}
	c.mu.Unlock()

	if update != nil {
		update(value)
	}
	if complete != nil {
		complete()
	}
	return finished
}

func (c *Counter) backendUpdate(value float64) {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.current = value
	c.ticksElapsed++
	c.renderLocked()
	update := c.cfg.OnUpdate
	c.mu.Unlock()
	if update != nil {
		update(value)
	}
}

func (c *Counter) backendComplete() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	c.current = c.cfg.To
	c.done = true
	c.renderLocked()
	complete := c.cfg.OnComplete
	c.mu.Unlock()
	if complete != nil {
		complete()
	}
}

// Running reports whether a run is in flight.
func (c *Counter) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Value returns the current animated value.
func (c *Counter) Value() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Text returns the most recently rendered display text.
func (c *Counter) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// Progress reports the run's completed fraction in 0..1.
func (c *Counter) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return 1
	}
	if c.cfg.To != c.cfg.From {
		p := (c.current - c.cfg.From) / (c.cfg.To - c.cfg.From)
		if p < 0 {
			return 0
		}
		if p > 1 {
			return 1
		}
		return p
	}
	return float64(c.ticksElapsed) / float64(c.totalTicks)
}
