package profiler

import (
	"math"
	"strings"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func TestFirstTickIsBaseline(t *testing.T) {
	clk := newFakeClock()
	ft := NewFrameTimer(WithClock(clk.Now))
	s := ft.Tick()
	if s.Duration != 0 || s.Discarded || s.Rate != 0 {
		t.Errorf("baseline sample = %+v", s)
	}
	if ft.CurrentRate() != 0 {
		t.Errorf("CurrentRate() = %v before any delta, want 0", ft.CurrentRate())
	}
}

func TestSteadyFramesConverge(t *testing.T) {
	clk := newFakeClock()
	ft := NewFrameTimer(WithClock(clk.Now))
	ft.Tick()
	for range 100 {
		clk.Advance(10 * time.Millisecond)
		ft.Tick()
	}
	if r := ft.CurrentRate(); math.Abs(r-100) > 1e-6 {
		t.Errorf("CurrentRate() = %v, want 100", r)
	}
}

func TestExponentialSmoothing(t *testing.T) {
	ft := NewFrameTimer()
	ft.TickDelta(10 * time.Millisecond)
	if r := ft.CurrentRate(); math.Abs(r-100) > 1e-9 {
		t.Fatalf("first sample rate = %v, want 100", r)
	}
	ft.TickDelta(20 * time.Millisecond)
	want := 100 + DefaultSmoothing*(50-100)
	if r := ft.CurrentRate(); math.Abs(r-want) > 1e-9 {
		t.Errorf("second sample rate = %v, want %v", r, want)
	}
}

func TestZeroDeltaIsDiscarded(t *testing.T) {
	clk := newFakeClock()
	ft := NewFrameTimer(WithClock(clk.Now))
	ft.Tick()
	clk.Advance(16 * time.Millisecond)
	ft.Tick()
	before := ft.CurrentRate()

	s := ft.Tick()
	if !s.Discarded {
		t.Error("zero delta sample not flagged as discarded")
	}
	if ft.CurrentRate() != before {
		t.Errorf("rate changed from %v to %v on zero delta", before, ft.CurrentRate())
	}
	if ft.Anomalies() != 1 {
		t.Errorf("Anomalies() = %d, want 1", ft.Anomalies())
	}
}

func TestClockRollbackIsDiscarded(t *testing.T) {
	clk := newFakeClock()
	ft := NewFrameTimer(WithClock(clk.Now))
	ft.Tick()
	clk.Advance(-time.Second)
	if s := ft.Tick(); !s.Discarded {
		t.Error("negative delta not discarded")
	}
	clk.Advance(20 * time.Millisecond)
	if s := ft.Tick(); s.Discarded || s.Duration != 20*time.Millisecond {
		t.Errorf("tick after rollback = %+v, want 20ms", s)
	}
}

func TestFrameTimeStats(t *testing.T) {
	ft := NewFrameTimer()
	for _, d := range []time.Duration{10, 30, 20} {
		ft.TickDelta(d * time.Millisecond)
	}
	ft.TickDelta(0)
	if ft.MinFrameTime() != 10*time.Millisecond || ft.MaxFrameTime() != 30*time.Millisecond {
		t.Errorf("min/max = %v/%v", ft.MinFrameTime(), ft.MaxFrameTime())
	}
	if ft.AverageFrameTime() != 20*time.Millisecond {
		t.Errorf("avg = %v", ft.AverageFrameTime())
	}
	if ft.Samples() != 3 || ft.Ticks() != 4 {
		t.Errorf("samples/ticks = %d/%d", ft.Samples(), ft.Ticks())
	}
}

func TestWithSmoothingIgnoresInvalid(t *testing.T) {
	ft := NewFrameTimer(WithSmoothing(0), WithSmoothing(2))
	if ft.alpha != DefaultSmoothing {
		t.Errorf("alpha = %v", ft.alpha)
	}
	ft = NewFrameTimer(WithSmoothing(1))
	ft.TickDelta(10 * time.Millisecond)
	ft.TickDelta(20 * time.Millisecond)
	if math.Abs(ft.CurrentRate()-50) > 1e-9 {
		t.Errorf("alpha 1 should track the newest sample, got %v", ft.CurrentRate())
	}
}

func TestProfilerReportsOnInterval(t *testing.T) {
	clk := newFakeClock()
	ft := NewFrameTimer(WithClock(clk.Now))
	p := NewProfiler(ft, WithInterval(100*time.Millisecond))
	ft.Tick()
	for i := range 9 {
		clk.Advance(10 * time.Millisecond)
		if p.Tick(ft.Tick()) {
			t.Fatalf("reported early at frame %d", i)
		}
	}
	clk.Advance(10 * time.Millisecond)
	if !p.Tick(ft.Tick()) {
		t.Fatal("no report after the interval elapsed")
	}
	if p.Reports() != 1 {
		t.Errorf("Reports() = %d", p.Reports())
	}
}

func TestSummaryTable(t *testing.T) {
	ft := NewFrameTimer()
	ft.TickDelta(10 * time.Millisecond)
	ft.TickDelta(0)
	out := NewProfiler(ft).Summary()
	for _, want := range []string{"Frames", "Discarded", "Avg frame", "10ms", "100.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
