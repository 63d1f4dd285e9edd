package anim

import (
	"log"
	"strconv"
	"time"
)

// CounterConfig carries the recognized options for a Counter. The
// merged result is resolved once at construction and is immutable
// afterwards.
type CounterConfig struct {
	From            float64
	To              float64
	Speed           time.Duration
	RefreshInterval time.Duration
	Decimals        int
	Grouping        bool
	Ease            string
	Formatter       Formatter
	OnUpdate        UpdateFunc
	OnComplete      CompleteFunc
	Trigger         *TriggerConfig
}

// RollConfig carries the recognized options for a Roll.
type RollConfig struct {
	To         string
	Duration   time.Duration
	OnComplete CompleteFunc
	Trigger    *TriggerConfig
}

// TriggerMode selects an activation policy.
type TriggerMode int

const (
	// TriggerImmediate starts the engine at arm time, optionally after
	// a fixed delay.
	TriggerImmediate TriggerMode = iota
	// TriggerScroll starts the engine once the tracked region crosses
	// a viewport-relative threshold.
	TriggerScroll
)

// TriggerConfig describes when an engine's start is invoked.
type TriggerConfig struct {
	Mode      TriggerMode
	Delay     time.Duration
	Threshold float64
}

// DefaultCounterConfig returns the built-in counter defaults.
func DefaultCounterConfig() CounterConfig {
	return CounterConfig{
		From:            0,
		To:              0,
		Speed:           time.Second,
		RefreshInterval: 100 * time.Millisecond,
		Decimals:        0,
	}
}

// DefaultRollConfig returns the built-in digit-roll defaults.
func DefaultRollConfig() RollConfig {
	return RollConfig{Duration: 2 * time.Second}
}

// DefaultTriggerConfig returns the built-in trigger defaults.
func DefaultTriggerConfig() TriggerConfig {
	return TriggerConfig{Mode: TriggerImmediate, Threshold: 0.8}
}

// CounterOption overrides a resolved CounterConfig value.
type CounterOption func(*CounterConfig)

// RollOption overrides a resolved RollConfig value.
type RollOption func(*RollConfig)

// NewCounterConfig resolves the ordered overrides once: built-in
// defaults, then attribute-derived values, then explicit options.
func NewCounterConfig(attrs map[string]string, opts ...CounterOption) CounterConfig {
	cfg := DefaultCounterConfig()
	applyCounterAttrs(&cfg, attrs)
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// NewRollConfig resolves the ordered overrides once: built-in
// defaults, then attribute-derived values, then explicit options.
func NewRollConfig(attrs map[string]string, opts ...RollOption) RollConfig {
	cfg := DefaultRollConfig()
	applyRollAttrs(&cfg, attrs)
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// applyCounterAttrs overlays declarative string attributes onto a
// config. Malformed values are reported once and the previous value is
// kept.
func applyCounterAttrs(cfg *CounterConfig, attrs map[string]string) {
	for key, value := range attrs {
		switch key {
		case "from":
			parseFloatAttr(key, value, &cfg.From)
		case "to":
			parseFloatAttr(key, value, &cfg.To)
		case "speed":
			parseMillisAttr(key, value, &cfg.Speed)
		case "refresh-interval":
			parseMillisAttr(key, value, &cfg.RefreshInterval)
		case "decimals":
			parseIntAttr(key, value, &cfg.Decimals)
		case "grouping":
			parseBoolAttr(key, value, &cfg.Grouping)
		case "ease":
			cfg.Ease = value
		case "trigger", "threshold", "delay":
			// handled by applyTriggerAttrs
		default:
			log.Printf("anim: unknown counter attribute %q", key)
		}
	}
	cfg.Trigger = applyTriggerAttrs(cfg.Trigger, attrs)
}

func applyRollAttrs(cfg *RollConfig, attrs map[string]string) {
	for key, value := range attrs {
		switch key {
		case "to":
			cfg.To = value
		case "duration":
			parseSecondsAttr(key, value, &cfg.Duration)
		case "trigger", "threshold", "delay":
			// handled by applyTriggerAttrs
		default:
			log.Printf("anim: unknown roll attribute %q", key)
		}
	}
	cfg.Trigger = applyTriggerAttrs(cfg.Trigger, attrs)
}

func applyTriggerAttrs(trigger *TriggerConfig, attrs map[string]string) *TriggerConfig {
	mode, hasMode := attrs["trigger"]
	_, hasThreshold := attrs["threshold"]
	_, hasDelay := attrs["delay"]
	if !hasMode && !hasThreshold && !hasDelay {
		return trigger
	}

	cfg := DefaultTriggerConfig()
	if trigger != nil {
		cfg = *trigger
	}
	if hasMode {
		switch mode {
		case "immediate":
			cfg.Mode = TriggerImmediate
		case "scroll":
			cfg.Mode = TriggerScroll
		default:
			log.Printf("anim: bad value %q for trigger attribute, keeping previous mode", mode)
		}
	}
	if hasThreshold {
		parseFloatAttr("threshold", attrs["threshold"], &cfg.Threshold)
	}
	if hasDelay {
		parseMillisAttr("delay", attrs["delay"], &cfg.Delay)
	}
	return &cfg
}

func parseFloatAttr(key, value string, out *float64) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("anim: bad value %q for %s attribute, using default", value, key)
		return
	}
	*out = f
}

func parseIntAttr(key, value string, out *int) {
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("anim: bad value %q for %s attribute, using default", value, key)
		return
	}
	*out = n
}

func parseBoolAttr(key, value string, out *bool) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("anim: bad value %q for %s attribute, using default", value, key)
		return
	}
	*out = b
}

// parseMillisAttr parses a whole number of milliseconds.
func parseMillisAttr(key, value string, out *time.Duration) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		log.Printf("anim: bad value %q for %s attribute, using default", value, key)
		return
	}
	*out = time.Duration(n) * time.Millisecond
}

// parseSecondsAttr parses a fractional number of seconds.
func parseSecondsAttr(key, value string, out *time.Duration) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 {
		log.Printf("anim: bad value %q for %s attribute, using default", value, key)
		return
	}
	*out = time.Duration(f * float64(time.Second))
}

// WithRange overrides the start and target values.
func WithRange(from, to float64) CounterOption {
	return func(cfg *CounterConfig) {
		cfg.From = from
		cfg.To = to
	}
}

// WithFormatter overrides the display formatter.
func WithFormatter(f Formatter) CounterOption {
	return func(cfg *CounterConfig) {
		cfg.Formatter = f
	}
}

// WithCounterHooks sets the update and completion callbacks.
func WithCounterHooks(update UpdateFunc, complete CompleteFunc) CounterOption {
	return func(cfg *CounterConfig) {
		cfg.OnUpdate = update
		cfg.OnComplete = complete
	}
}

// WithCounterTrigger overrides the activation trigger.
func WithCounterTrigger(trigger *TriggerConfig) CounterOption {
	return func(cfg *CounterConfig) {
		cfg.Trigger = trigger
	}
}

// WithRollComplete sets the completion callback.
func WithRollComplete(complete CompleteFunc) RollOption {
	return func(cfg *RollConfig) {
		cfg.OnComplete = complete
	}
}

// WithRollTrigger overrides the activation trigger.
func WithRollTrigger(trigger *TriggerConfig) RollOption {
	return func(cfg *RollConfig) {
		cfg.Trigger = trigger
	}
}
