package stream

import (
	"log"
	"time"

	"github.com/matt-g-everett/countx/anim"
)

// defaultRollDelay holds back immediately-triggered digit rolls so the
// device shows the zeroed strips before they spin.
const defaultRollDelay = 500 * time.Millisecond

// A Widget binds one animation engine to its display region and
// activation trigger.
type Widget struct {
	ID      string
	counter *anim.Counter
	roll    *anim.Roll
	trigger *anim.Trigger
}

// BuildWidgets constructs the widgets declared in the config, in
// declaration order. A digit-roll widget with a missing or malformed
// target is reported once and skipped; it never animates.
func BuildWidgets(config Config, clock anim.Clock) []*Widget {
	widgets := make([]*Widget, 0, len(config.Widgets))
	for _, wc := range config.Widgets {
		switch wc.Type {
		case "counter", "":
			cfg := anim.NewCounterConfig(wc.Attrs)
			var backend anim.TweenBackend
			if cfg.Ease != "" {
				curve, ok := anim.CurveByName(cfg.Ease)
				if ok {
					backend = anim.NewTweener(clock, 0, curve)
				} else {
					log.Printf("stream: unknown ease %q for widget %s, using the tick path", cfg.Ease, wc.ID)
				}
			}
			w := &Widget{ID: wc.ID, counter: anim.NewCounter(cfg, clock, backend)}
			if cfg.Trigger != nil {
				w.trigger = anim.NewTrigger(*cfg.Trigger, clock)
			}
			widgets = append(widgets, w)

		case "roll":
			cfg := anim.NewRollConfig(wc.Attrs)
			roll, err := anim.NewRoll(cfg, clock, nil)
			if err != nil {
				log.Printf("stream: widget %s: %v", wc.ID, err)
				continue
			}
			w := &Widget{ID: wc.ID, roll: roll}
			trigger := cfg.Trigger
			if trigger == nil {
				trigger = &anim.TriggerConfig{Mode: anim.TriggerImmediate, Delay: defaultRollDelay}
			}
			w.trigger = anim.NewTrigger(*trigger, clock)
			widgets = append(widgets, w)

		default:
			log.Printf("stream: unknown widget type %q for widget %s", wc.Type, wc.ID)
		}
	}
	return widgets
}

// Arm attaches the widget's activation trigger; widgets without one
// start at once.
func (w *Widget) Arm(scroll *ScrollRouter, observer anim.VisibilityObserver) {
	if w.trigger == nil {
		w.Start()
		return
	}
	var source anim.ScrollSource
	if scroll != nil {
		source = scroll.Source(w.ID)
	}
	w.trigger.Arm(source, observer, func() { w.Start() })
}

// ArmWidgets attaches every widget's trigger.
func ArmWidgets(widgets []*Widget, scroll *ScrollRouter, observer anim.VisibilityObserver) {
	for _, w := range widgets {
		w.Arm(scroll, observer)
	}
}

func (w *Widget) animation() anim.Animation {
	if w.counter != nil {
		return w.counter
	}
	return w.roll
}

// Start begins the widget's animation.
func (w *Widget) Start() {
	w.animation().Start()
}

// Stop halts the widget's animation, releasing its timer resources.
func (w *Widget) Stop() {
	w.animation().Stop()
}

// Restart stops, rewinds and starts again.
func (w *Widget) Restart() {
	if w.counter != nil {
		w.counter.Restart()
		return
	}
	w.roll.Start()
}

// Toggle stops a running widget, otherwise starts it.
func (w *Widget) Toggle() {
	if w.counter != nil {
		w.counter.Toggle()
		return
	}
	if w.roll.Running() {
		w.roll.Stop()
	} else {
		w.roll.Start()
	}
}

// Reset snaps a digit roll back to the zero offset; for counters it is
// equivalent to Stop.
func (w *Widget) Reset() {
	if w.roll != nil {
		w.roll.Reset()
		return
	}
	w.counter.Stop()
}

// Running reports whether the widget is animating.
func (w *Widget) Running() bool {
	return w.animation().Running()
}

// Text returns the widget's current display text.
func (w *Widget) Text() string {
	if w.counter != nil {
		return w.counter.Text()
	}
	return w.roll.Text()
}

// Frame renders the widget's current state, colouring it from the
// progress gradient.
func (w *Widget) Frame(gradient GradientTable) *Frame {
	f := NewFrame(w.ID)
	if w.counter != nil {
		progress := w.counter.Progress()
		f.Text = w.counter.Text()
		f.Done = progress >= 1 && !w.counter.Running()
		f.SetColor(gradient.GetColor(progress, 0.9, 0.6))
		return f
	}

	cols := w.roll.Columns()
	f.Digits = make([]int, len(cols))
	f.Offsets = make([]float64, len(cols))
	for i, col := range cols {
		f.Digits[i] = col.Digit
		f.Offsets[i] = col.Offset
	}
	progress := w.roll.Progress()
	f.Text = w.roll.Text()
	f.Done = progress >= 1 && !w.roll.Running()
	f.SetColor(gradient.GetColor(progress, 0.9, 0.6))
	return f
}
