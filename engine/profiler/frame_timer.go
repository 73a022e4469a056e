package profiler

import (
	"time"

	"github.com/Carmen-Shannon/oxy-fog/engine/log"
)

// DefaultSmoothing is the EMA weight of a 20-sample moving average, 2/(N+1).
const DefaultSmoothing = 2.0 / 21.0

// FrameSample is the outcome of one timer tick.
type FrameSample struct {
	// Index counts ticks, starting at 1.
	Index uint64
	// Duration is the measured frame delta; zero for the baseline tick.
	Duration time.Duration
	// Rate is the smoothed frames per second after this tick.
	Rate float64
	// Discarded is set when the delta was not positive and was dropped.
	Discarded bool
}

// FrameTimer measures frame deltas and keeps an exponentially smoothed
// frames-per-second estimate:
//
//	r1 = 1/d1
//	rk = r(k-1) + alpha * (1/dk - r(k-1))
//
// Non-positive deltas are timing anomalies; they are counted and dropped
// without touching the rate. Not safe for concurrent use.
type FrameTimer struct {
	clock  func() time.Time
	alpha  float64
	logger log.Logger

	last    time.Time
	started bool

	index     uint64
	samples   uint64
	anomalies uint64
	rate      float64

	total time.Duration
	min   time.Duration
	max   time.Duration
}

// NewFrameTimer creates a FrameTimer using the wall clock and DefaultSmoothing.
//
// Parameters:
//   - opts: functional options
//
// Returns:
//   - *FrameTimer: the new timer
func NewFrameTimer(opts ...FrameTimerOption) *FrameTimer {
	t := &FrameTimer{
		clock:  time.Now,
		alpha:  DefaultSmoothing,
		logger: log.New("timer"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tick records the time elapsed since the previous Tick. The first call only
// establishes the baseline.
//
// Returns:
//   - FrameSample: the recorded sample
func (t *FrameTimer) Tick() FrameSample {
	now := t.clock()
	if !t.started {
		t.started = true
		t.last = now
		t.index++
		return FrameSample{Index: t.index, Rate: t.rate}
	}
	d := now.Sub(t.last)
	t.last = now
	return t.TickDelta(d)
}

// TickDelta records an explicit frame delta.
//
// Parameters:
//   - d: the frame duration
//
// Returns:
//   - FrameSample: the recorded sample
func (t *FrameTimer) TickDelta(d time.Duration) FrameSample {
	t.index++
	if d <= 0 {
		t.anomalies++
		t.logger.Debugf("discarding non-positive frame delta %v at tick %d", d, t.index)
		return FrameSample{Index: t.index, Duration: d, Rate: t.rate, Discarded: true}
	}

	inst := 1.0 / d.Seconds()
	if t.samples == 0 {
		t.rate = inst
		t.min, t.max = d, d
	} else {
		t.rate += t.alpha * (inst - t.rate)
		t.min = min(t.min, d)
		t.max = max(t.max, d)
	}
	t.samples++
	t.total += d
	return FrameSample{Index: t.index, Duration: d, Rate: t.rate}
}

// CurrentRate returns the smoothed frames per second, or 0 before the first
// valid sample.
func (t *FrameTimer) CurrentRate() float64 {
	return t.rate
}

// Anomalies returns how many deltas were discarded.
func (t *FrameTimer) Anomalies() uint64 {
	return t.anomalies
}

// Samples returns how many valid deltas were recorded.
func (t *FrameTimer) Samples() uint64 {
	return t.samples
}

// Ticks returns the total number of ticks, baseline and discarded ones included.
func (t *FrameTimer) Ticks() uint64 {
	return t.index
}

// MinFrameTime returns the shortest valid delta.
func (t *FrameTimer) MinFrameTime() time.Duration {
	return t.min
}

// MaxFrameTime returns the longest valid delta.
func (t *FrameTimer) MaxFrameTime() time.Duration {
	return t.max
}

// TotalFrameTime returns the sum of valid deltas.
func (t *FrameTimer) TotalFrameTime() time.Duration {
	return t.total
}

// AverageFrameTime returns the mean valid delta, or 0 with no samples.
func (t *FrameTimer) AverageFrameTime() time.Duration {
	if t.samples == 0 {
		return 0
	}
	return t.total / time.Duration(t.samples)
}

// Now reads the timer's clock.
func (t *FrameTimer) Now() time.Time {
	return t.clock()
}
