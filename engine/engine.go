// Package engine runs the frame loop: it composes the scene once, then each
// frame maps the UI control onto light intensities, measures frame time and
// hands an immutable snapshot to the renderer.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-fog/engine/control"
	"github.com/Carmen-Shannon/oxy-fog/engine/hud"
	"github.com/Carmen-Shannon/oxy-fog/engine/light"
	"github.com/Carmen-Shannon/oxy-fog/engine/log"
	"github.com/Carmen-Shannon/oxy-fog/engine/profiler"
	"github.com/Carmen-Shannon/oxy-fog/engine/renderer"
	"github.com/Carmen-Shannon/oxy-fog/engine/scene"
)

var (
	// ErrNotRunning is returned by Frame before a successful Init.
	ErrNotRunning = errors.New("engine is not running")

	// ErrAlreadyRunning is returned by Init on a running engine.
	ErrAlreadyRunning = errors.New("engine is already running")

	// ErrNoHost is returned by Run when no Host was configured.
	ErrNoHost = errors.New("engine has no host")
)

// State is the lifecycle phase of the engine.
type State int

const (
	// StateInitializing is the phase before the scene is composed.
	StateInitializing State = iota
	// StateRunning is the per-frame phase. It lasts until the process ends.
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// FrameResult reports what one frame did.
type FrameResult struct {
	// Sample is the frame timer output for this frame.
	Sample profiler.FrameSample
	// Output is the control binding output applied to the lights.
	Output float32
	// LightsChanged is set when any light intensity changed this frame.
	LightsChanged bool
	// Readout is the HUD text after this frame.
	Readout string
}

// engine implements the Engine interface.
type engine struct {
	desc     scene.Descriptor
	cell     *control.Cell
	renderer renderer.Renderer
	host     Host
	logger   log.Logger

	timer            *profiler.FrameTimer
	profiler         *profiler.Profiler
	profilingEnabled bool

	readout     *hud.Readout
	readoutSink func(string)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	sleep            func(time.Duration)

	state   State
	comp    *scene.Composition
	store   *light.Store
	binding *control.Binding
	frame   uint64
}

// Engine is the main entry point for the engine.
// It owns the single-threaded frame loop; the only state shared with the UI
// is the control cell.
type Engine interface {
	// State returns the current lifecycle phase.
	//
	// Returns:
	//   - State: StateInitializing or StateRunning
	State() State

	// Init composes the scene, builds the light store and the control binding,
	// seeds the control cell with the scene's initial value unless the UI
	// already wrote one, applies it and moves to StateRunning.
	//
	// Returns:
	//   - error: a *scene.ConfigurationError if the descriptor is invalid
	//     (the engine stays initializing), or ErrAlreadyRunning
	Init() error

	// Frame runs one iteration: read the control, update light intensities,
	// tick the timer, refresh the readout, build the snapshot, submit it and
	// clear the dirty flag.
	//
	// Returns:
	//   - FrameResult: what the frame did
	//   - error: ErrNotRunning before Init, or the renderer's error
	Frame() (FrameResult, error)

	// Run initializes if needed, then runs one Frame per host loop iteration
	// until the host stops or a frame fails.
	//
	// Returns:
	//   - error: the initialization or first frame error, or nil
	Run() error

	// Resize forwards a new framebuffer size to the renderer and the camera.
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	Resize(width, height int)

	// Store returns the light store, or nil before Init.
	Store() *light.Store

	// Timer returns the frame timer.
	Timer() *profiler.FrameTimer

	// Profiler returns the profiler.
	Profiler() *profiler.Profiler

	// Binding returns the control binding, or nil before Init.
	Binding() *control.Binding

	// Composition returns the composed scene, or nil before Init.
	Composition() *scene.Composition

	// Frames returns the number of frames submitted.
	Frames() uint64
}

var _ Engine = &engine{}

// NewEngine creates a new Engine for desc. The engine reads cell each frame
// and submits to r. Nothing is composed until Init or Run.
//
// Parameters:
//   - desc: the scene declaration
//   - cell: the UI-owned control cell
//   - r: the renderer receiving snapshots
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(desc scene.Descriptor, cell *control.Cell, r renderer.Renderer, options ...EngineBuilderOption) Engine {
	e := &engine{
		desc:     desc,
		cell:     cell,
		renderer: r,
		logger:   log.New("engine"),
		sleep:    time.Sleep,
		state:    StateInitializing,
	}
	for _, opt := range options {
		opt(e)
	}
	if e.cell == nil {
		e.cell = control.NewCell(0)
	}
	if e.timer == nil {
		e.timer = profiler.NewFrameTimer()
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(e.timer, profiler.WithLogger(e.logger))
	}
	if rn, ok := e.host.(resizeNotifier); ok {
		rn.SetResizeCallback(e.Resize)
	}
	return e
}

func (e *engine) State() State {
	return e.state
}

func (e *engine) Init() error {
	if e.state != StateInitializing {
		return ErrAlreadyRunning
	}

	comp, err := e.desc.Build()
	if err != nil {
		e.logger.Errorf("scene composition failed: %v", err)
		return err
	}
	e.comp = comp
	e.store = comp.NewStore()
	e.binding = comp.NewBinding(e.cell)
	if e.cell.Seed(comp.Control.Initial) {
		e.logger.Debugf("control seeded with %.3f", comp.Control.Initial)
	}
	e.applyControl()

	e.state = StateRunning
	e.logger.Infof("%v composed, %d lights bound to control, state %v", e.desc, len(comp.Targets()), e.state)
	return nil
}

// applyControl writes gain * binding output into every target light.
func (e *engine) applyControl() (float32, bool) {
	out := e.binding.Read()
	changed := false
	for _, t := range e.binding.Targets() {
		before, ok := e.store.Get(t.LightID)
		if !ok {
			continue
		}
		prev := before.Intensity
		if applied, _ := e.store.SetIntensity(t.LightID, t.Gain*out); applied != prev {
			changed = true
		}
	}
	return out, changed
}

func (e *engine) Frame() (FrameResult, error) {
	if e.state != StateRunning {
		return FrameResult{}, ErrNotRunning
	}

	out, changed := e.applyControl()
	sample := e.timer.Tick()
	e.frame++

	var text string
	refreshed := false
	if e.readout != nil {
		text, refreshed = e.readout.Update(e.timer.Now(), sample.Rate)
	}

	snap := &renderer.SceneSnapshot{
		Frame:         e.frame,
		Camera:        renderer.NewCameraView(e.comp.Camera),
		Materials:     e.comp.Materials,
		Boxes:         e.comp.Boxes,
		Lights:        e.store.Snapshot(),
		Fog:           e.comp.Fog,
		Ambient:       e.comp.Ambient,
		ShadowMapSize: e.comp.ShadowMapSize,
		LightsDirty:   e.store.Dirty(),
		Control:       float32(e.binding.Position()),
		Readout:       text,
	}

	result := FrameResult{Sample: sample, Output: out, LightsChanged: changed, Readout: text}
	if err := e.renderer.Submit(snap); err != nil {
		e.frame--
		return result, fmt.Errorf("submit frame %d: %w", snap.Frame, err)
	}
	e.store.ClearDirty()

	if e.profilingEnabled {
		e.profiler.Tick(sample)
	}
	if refreshed && e.readoutSink != nil {
		e.readoutSink(text)
	}
	return result, nil
}

func (e *engine) Run() error {
	if e.host == nil {
		return ErrNoHost
	}
	if e.state == StateInitializing {
		if err := e.Init(); err != nil {
			return err
		}
	}

	var runErr error
	e.host.SetUpdateCallback(func() {
		if runErr != nil {
			return
		}
		start := time.Now()
		if _, err := e.Frame(); err != nil {
			runErr = fmt.Errorf("frame loop: %w", err)
			e.logger.Error(runErr)
			e.host.Stop()
			return
		}
		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(start); remaining > 0 {
				e.sleep(remaining)
			}
		}
	})
	e.host.ProcessMessages()
	e.host.SetUpdateCallback(nil)

	if e.profilingEnabled {
		e.logger.Noticef("session summary\n%s", e.profiler.Summary())
	}
	return runErr
}

func (e *engine) Resize(width, height int) {
	if e.renderer != nil {
		e.renderer.Resize(width, height)
	}
	if e.comp != nil && width > 0 && height > 0 {
		e.comp.Camera.SetAspect(float32(width) / float32(height))
	}
}

func (e *engine) Store() *light.Store {
	return e.store
}

func (e *engine) Timer() *profiler.FrameTimer {
	return e.timer
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

func (e *engine) Binding() *control.Binding {
	return e.binding
}

func (e *engine) Composition() *scene.Composition {
	return e.comp
}

func (e *engine) Frames() uint64 {
	return e.frame
}
