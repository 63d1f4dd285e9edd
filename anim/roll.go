package anim

import (
	"fmt"
	"math"
	"sync"
	"time"
)

const (
	// rollPrimingDelay guarantees the zero-offset reset is published
	// before a column starts moving again.
	rollPrimingDelay = 50 * time.Millisecond
	// rollStaggerInterval spaces column starts so digits cascade
	// left-to-right.
	rollStaggerInterval = 100 * time.Millisecond
)

// A Roll animates a fixed sequence of digit strips to their target
// digits with a cascading stagger, the way a slot machine reel
// settles. Each column's offset moves from 0 to its target digit in
// row units; the renderer applies the decreasing direction.
type Roll struct {
	cfg     RollConfig
	clock   Clock
	backend TweenBackend

	mu        sync.Mutex
	columns   []*rollColumn
	completed int
	gen       uint64
	timers    []Timer
	running   bool
	done      bool
}

type rollColumn struct {
	digit  int
	offset float64
}

// ColumnState is a snapshot of one digit column for rendering.
type ColumnState struct {
	Digit  int
	Offset float64
}

// NewRoll creates a Roll for the given target digit string. The target
// is required; a missing or malformed target is a configuration error
// and no engine is created.
func NewRoll(cfg RollConfig, clock Clock, backend TweenBackend) (*Roll, error) {
	if cfg.To == "" {
		return nil, fmt.Errorf("roll: target digit string is required")
	}
	columns := make([]*rollColumn, 0, len(cfg.To))
	for _, r := range cfg.To {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("roll: target %q is not a digit string", cfg.To)
		}
		columns = append(columns, &rollColumn{digit: int(r - '0')})
	}
	if cfg.Duration <= 0 {
		cfg.Duration = DefaultRollConfig().Duration
	}

	r := new(Roll)
	r.cfg = cfg
	r.clock = clock
	r.backend = backend
	r.columns = columns
	if r.clock == nil {
		r.clock = NewWallClock()
	}
	if r.backend == nil {
		r.backend = NewTweener(r.clock, 0, nil)
	}
	return r, nil
}

// columnDelay is the fixed schedule for a column's transition start.
func columnDelay(index int) time.Duration {
	return rollPrimingDelay + time.Duration(index)*rollStaggerInterval
}

// Start snaps every column back to the zero offset, then schedules
// each column's transition on the priming/stagger schedule. Restarting
// mid-run cancels the prior run; its observers are tagged with the old
// run generation and can never count toward the new run's completion.
func (r *Roll) Start() Animation {
	r.mu.Lock()
	r.stopLocked()
	r.gen++
	gen := r.gen
	r.completed = 0
	r.done = false
	for _, col := range r.columns {
		col.offset = 0
	}
	r.running = true
	for i := range r.columns {
		index := i
		timer := r.clock.AfterFunc(columnDelay(index), func() {
			r.beginColumn(gen, index)
		})
		r.timers = append(r.timers, timer)
	}
	r.mu.Unlock()
	return r
}

// Stop cancels pending stagger timers and in-flight column
// transitions; a no-op when not running.
func (r *Roll) Stop() {
	r.mu.Lock()
	r.stopLocked()
	r.mu.Unlock()
}

// Reset synchronously snaps every column back to the zero offset with
// no transition. Completion hooks never fire from a reset.
func (r *Roll) Reset() {
	r.mu.Lock()
	r.stopLocked()
	for _, col := range r.columns {
		col.offset = 0
	}
	r.done = false
	r.mu.Unlock()
}

// stopLocked invalidates the current run generation and releases the
// exact timers and transitions armed by the most recent Start.
func (r *Roll) stopLocked() {
	r.gen++
	if !r.running && r.timers == nil {
		return
	}
	for _, t := range r.timers {
		t.Stop()
	}
	r.timers = nil
	r.running = false

	backend := r.backend
	columns := r.columns
	r.mu.Unlock()
	for _, col := range columns {
		backend.Kill(&col.offset)
	}
	r.mu.Lock()
}

func (r *Roll) beginColumn(gen uint64, index int) {
	r.mu.Lock()
	if gen != r.gen {
		r.mu.Unlock()
		return
	}
	col := r.columns[index]
	target := float64(col.digit)
	duration := r.cfg.Duration
	backend := r.backend
	r.mu.Unlock()

	backend.Animate(&col.offset, 0, target, duration,
		func(value float64) { r.setOffset(gen, index, value) },
		func() { r.columnDone(gen, index) })
}

func (r *Roll) setOffset(gen uint64, index int, value float64) {
	r.mu.Lock()
	if gen == r.gen {
		r.columns[index].offset = value
	}
	r.mu.Unlock()
}

// columnDone is each column's one-shot transition observer. Observers
// from a superseded run are ignored.
func (r *Roll) columnDone(gen uint64, index int) {
	r.mu.Lock()
	if gen != r.gen {
		r.mu.Unlock()
		return
	}
	col := r.columns[index]
	col.offset = float64(col.digit)
	r.completed++
	var complete CompleteFunc
	if r.completed == len(r.columns) {
		r.running = false
		r.done = true
		r.timers = nil
		complete = r.cfg.OnComplete
	}
	r.mu.Unlock()
	if complete != nil {
		complete()
	}
}

// Running reports whether a run is in flight.
func (r *Roll) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Columns returns a snapshot of the digit columns in left-to-right
// order.
func (r *Roll) Columns() []ColumnState {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ColumnState, len(r.columns))
	for i, col := range r.columns {
		out[i] = ColumnState{Digit: col.digit, Offset: col.offset}
	}
	return out
}

// Progress reports the fraction of columns that have settled.
func (r *Roll) Progress() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return 1
	}
	return float64(r.completed) / float64(len(r.columns))
}

// Text returns the digits currently visible in each column's window,
// i.e. the offsets rounded to the nearest row.
func (r *Roll) Text() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]byte, len(r.columns))
	for i, col := range r.columns {
		visible := int(math.Round(col.offset))
		if visible < 0 {
			visible = 0
		}
		if visible > 9 {
			visible = 9
		}
		out[i] = byte('0' + visible)
	}
	return string(out)
}
