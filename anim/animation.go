package anim

// An Animation is a display widget animation with a start/stop
// lifecycle. Start on a running animation stops the prior run first,
// so runs never overlap.
type Animation interface {
	Start() Animation
	Stop()
	Running() bool
}

// UpdateFunc is invoked with the current value as an animation
// progresses.
type UpdateFunc func(value float64)

// CompleteFunc is invoked exactly once when a run finishes.
type CompleteFunc func()
