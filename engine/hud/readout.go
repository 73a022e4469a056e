// Package hud formats on-screen readouts.
package hud

import (
	"fmt"
	"time"
)

// DefaultRefreshInterval is how often the readout text may change.
const DefaultRefreshInterval = 250 * time.Millisecond

// DefaultFormat renders the smoothed frame rate with one decimal.
const DefaultFormat = "FPS: %.1f"

// Readout throttles a frame-rate display so the text stays legible.
// Not safe for concurrent use.
type Readout struct {
	format   string
	interval time.Duration

	text    string
	last    time.Time
	updated bool
}

// ReadoutBuilderOption is a functional option for configuring a Readout.
type ReadoutBuilderOption func(*Readout)

// WithRefreshInterval sets the minimum time between text changes.
//
// Parameters:
//   - d: refresh interval; zero refreshes every update
//
// Returns:
//   - ReadoutBuilderOption: option function to apply
func WithRefreshInterval(d time.Duration) ReadoutBuilderOption {
	return func(r *Readout) {
		if d >= 0 {
			r.interval = d
		}
	}
}

// WithFormat sets the fmt verb string used for the rate.
//
// Parameters:
//   - format: a format with one float verb
//
// Returns:
//   - ReadoutBuilderOption: option function to apply
func WithFormat(format string) ReadoutBuilderOption {
	return func(r *Readout) {
		if format != "" {
			r.format = format
		}
	}
}

// NewReadout creates a Readout showing a zero rate until the first update.
//
// Parameters:
//   - opts: functional options
//
// Returns:
//   - *Readout: the new readout
func NewReadout(opts ...ReadoutBuilderOption) *Readout {
	r := &Readout{
		format:   DefaultFormat,
		interval: DefaultRefreshInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.text = fmt.Sprintf(r.format, 0.0)
	return r
}

// Update offers a new rate at time now. The text changes only when the
// refresh interval has elapsed since the last change; the first update always
// applies.
//
// Parameters:
//   - now: current time
//   - rate: smoothed frames per second
//
// Returns:
//   - string: the current text
//   - bool: true if the text was refreshed
func (r *Readout) Update(now time.Time, rate float64) (string, bool) {
	if r.updated && now.Sub(r.last) < r.interval {
		return r.text, false
	}
	r.text = fmt.Sprintf(r.format, rate)
	r.last = now
	r.updated = true
	return r.text, true
}

// Text returns the current text.
func (r *Readout) Text() string {
	return r.text
}
