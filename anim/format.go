package anim

import (
	"strconv"

	"github.com/dustin/go-humanize"
)

// A Formatter turns the current value into display text. Counters call
// it on every render with the resolved config.
type Formatter func(value float64, cfg CounterConfig) string

// FormatFixed renders the value with a fixed number of decimals.
func FormatFixed(value float64, cfg CounterConfig) string {
	return strconv.FormatFloat(value, 'f', cfg.Decimals, 64)
}

// FormatGrouped renders the value with thousand separators and at most
// the configured number of decimals.
func FormatGrouped(value float64, cfg CounterConfig) string {
	return humanize.CommafWithDigits(value, cfg.Decimals)
}
