package profiler

import (
	"bytes"
	"fmt"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-fog/engine/log"
	"github.com/olekukonko/tablewriter"
)

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval and renders a session
// summary on demand.
type Profiler struct {
	timer  *FrameTimer
	logger log.Logger

	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	windowMin time.Duration
	windowMax time.Duration
	reports   int
}

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often stats are logged.
//
// Parameters:
//   - d: report interval
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithLogger sets the report logger.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithLogger(l log.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewProfiler creates a new Profiler reading frame statistics from timer.
// Update interval defaults to 1 second.
//
// Parameters:
//   - timer: the frame timer shared with the frame loop
//   - opts: functional options
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(timer *FrameTimer, opts ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		timer:          timer,
		logger:         log.New("profiler"),
		lastTime:       timer.Now(),
		updateInterval: time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Tick should be called once per frame with the sample the timer produced.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: windowed and smoothed FPS, frame time range, heap usage,
// allocation rate, GC count/pause times, total memory.
//
// Parameters:
//   - s: the frame timer sample for this frame
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(s FrameSample) bool {
	p.frameCount++
	if !s.Discarded && s.Duration > 0 {
		if p.windowMin == 0 || s.Duration < p.windowMin {
			p.windowMin = s.Duration
		}
		p.windowMax = max(p.windowMax, s.Duration)
	}

	currentTime := p.timer.Now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	// Alloc: live heap, TotalAlloc: cumulative churn, Sys: process footprint
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of last 256 GC pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			pause := p.memStats.PauseNs[i%256] / 1000
			if pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	p.logger.Infof("FPS: %.2f (smoothed %.1f) | Frame: %s..%s | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		fps, p.timer.CurrentRate(), p.windowMin, p.windowMax, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.windowMin, p.windowMax = 0, 0
	p.reports++
	return true
}

// Reports returns how many interval reports were logged.
func (p *Profiler) Reports() int {
	return p.reports
}

// Summary renders the whole-session statistics as a text table.
//
// Returns:
//   - string: the rendered table
func (p *Profiler) Summary() string {
	t := p.timer
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Frames", fmt.Sprint(t.Ticks())})
	table.Append([]string{"Samples", fmt.Sprint(t.Samples())})
	table.Append([]string{"Discarded", fmt.Sprint(t.Anomalies())})
	table.Append([]string{"Avg frame", t.AverageFrameTime().String()})
	table.Append([]string{"Min frame", t.MinFrameTime().String()})
	table.Append([]string{"Max frame", t.MaxFrameTime().String()})
	table.Append([]string{"Session", t.TotalFrameTime().String()})
	table.SetFooter([]string{"FPS", fmt.Sprintf("%.1f", t.CurrentRate())})
	table.Render()
	return buf.String()
}
