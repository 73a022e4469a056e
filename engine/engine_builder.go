package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-fog/engine/hud"
	"github.com/Carmen-Shannon/oxy-fog/engine/log"
	"github.com/Carmen-Shannon/oxy-fog/engine/profiler"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithHost sets the loop driver used by Run, typically the window.
// Hosts that report resizes are wired to Resize.
//
// Parameters:
//   - h: the host
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithHost(h Host) EngineBuilderOption {
	return func(e *engine) {
		e.host = h
	}
}

// WithFrameTimer replaces the default wall-clock frame timer.
//
// Parameters:
//   - t: the frame timer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameTimer(t *profiler.FrameTimer) EngineBuilderOption {
	return func(e *engine) {
		e.timer = t
	}
}

// WithProfiling enables or disables the periodic profiler report and the
// session summary logged when Run returns.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithReadout sets the HUD readout refreshed after every frame.
//
// Parameters:
//   - r: the readout
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithReadout(r *hud.Readout) EngineBuilderOption {
	return func(e *engine) {
		e.readout = r
	}
}

// WithReadoutSink sets the function receiving the readout text whenever it refreshes.
//
// Parameters:
//   - sink: receiver of the new text
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithReadoutSink(sink func(string)) EngineBuilderOption {
	return func(e *engine) {
		e.readoutSink = sink
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
	}
}

// WithLogger sets the engine logger.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(l log.Logger) EngineBuilderOption {
	return func(e *engine) {
		if l != nil {
			e.logger = l
		}
	}
}
