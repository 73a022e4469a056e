package profiler

import (
	"time"

	"github.com/Carmen-Shannon/oxy-fog/engine/log"
)

// FrameTimerOption is a functional option for configuring a FrameTimer.
type FrameTimerOption func(*FrameTimer)

// WithClock replaces the wall clock, typically with a fake in tests.
//
// Parameters:
//   - clock: function returning the current time
//
// Returns:
//   - FrameTimerOption: option function to apply
func WithClock(clock func() time.Time) FrameTimerOption {
	return func(t *FrameTimer) {
		if clock != nil {
			t.clock = clock
		}
	}
}

// WithSmoothing sets the EMA weight of the newest sample. Values outside
// (0, 1] are ignored.
//
// Parameters:
//   - alpha: smoothing factor
//
// Returns:
//   - FrameTimerOption: option function to apply
func WithSmoothing(alpha float64) FrameTimerOption {
	return func(t *FrameTimer) {
		if alpha > 0 && alpha <= 1 {
			t.alpha = alpha
		}
	}
}

// WithTimerLogger sets the logger used for anomaly reports.
func WithTimerLogger(l log.Logger) FrameTimerOption {
	return func(t *FrameTimer) {
		if l != nil {
			t.logger = l
		}
	}
}
