package engine

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-fog/engine/control"
	"github.com/Carmen-Shannon/oxy-fog/engine/hud"
	"github.com/Carmen-Shannon/oxy-fog/engine/profiler"
	"github.com/Carmen-Shannon/oxy-fog/engine/renderer"
	"github.com/Carmen-Shannon/oxy-fog/engine/scene"
)

type fakeClock struct {
	now  time.Time
	step time.Duration
}

// Now advances by step on every read after the first.
func (c *fakeClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func newTestEngine(t *testing.T, cell *control.Cell, opts ...EngineBuilderOption) (Engine, *renderer.Recorder) {
	t.Helper()
	rec := renderer.NewRecorder()
	return NewEngine(scene.NewCornellBox(), cell, rec, opts...), rec
}

func centerLight(t *testing.T, snap renderer.SceneSnapshot) (int, float32, float32, float32) {
	t.Helper()
	for _, l := range snap.Lights {
		if l.Tag == scene.TagCenter {
			return l.ID, l.Intensity, l.MinIntensity, l.MaxIntensity
		}
	}
	t.Fatal("no center light in snapshot")
	return 0, 0, 0, 0
}

func TestFrameBeforeInit(t *testing.T) {
	e, _ := newTestEngine(t, control.NewCell(0))
	if _, err := e.Frame(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Frame() error = %v, want ErrNotRunning", err)
	}
	if e.State() != StateInitializing {
		t.Errorf("State() = %v", e.State())
	}
}

func TestInitRejectsInvalidScene(t *testing.T) {
	bad := scene.NewCornellBox(scene.WithLight(scene.LightSpec{ID: 50, Intensity: -5, MinIntensity: 1, MaxIntensity: 10, Range: 1}))
	e := NewEngine(bad, control.NewCell(0), renderer.NewRecorder())

	err := e.Init()
	var cfg *scene.ConfigurationError
	if !errors.As(err, &cfg) {
		t.Fatalf("Init() error = %v, want *scene.ConfigurationError", err)
	}
	if e.State() != StateInitializing {
		t.Errorf("State() = %v after failed Init", e.State())
	}
	if e.Store() != nil {
		t.Error("store built despite invalid scene")
	}
}

func TestInitTwice(t *testing.T) {
	e, _ := newTestEngine(t, control.NewCell(0))
	if err := e.Init(); err != nil {
		t.Fatal(err)
	}
	if err := e.Init(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Init() = %v, want ErrAlreadyRunning", err)
	}
	if e.State() != StateRunning {
		t.Errorf("State() = %v", e.State())
	}
}

func TestInitSeedsControl(t *testing.T) {
	fresh := control.NewCell(0)
	e, _ := newTestEngine(t, fresh)
	_ = e.Init()
	if fresh.Load() != control.Value(scene.DefaultInitialControl) {
		t.Errorf("fresh cell = %v, want %v", fresh.Load(), scene.DefaultInitialControl)
	}

	written := control.NewCell(0)
	written.Set(0.9)
	e, _ = newTestEngine(t, written)
	_ = e.Init()
	if written.Load() != 0.9 {
		t.Errorf("UI value overwritten: %v", written.Load())
	}
}

func TestFrameAppliesControl(t *testing.T) {
	cell := control.NewCell(0)
	e, rec := newTestEngine(t, cell)
	if err := e.Init(); err != nil {
		t.Fatal(err)
	}

	cell.Set(1)
	if _, err := e.Frame(); err != nil {
		t.Fatal(err)
	}
	snap, _ := rec.Last()
	_, got, _, hi := centerLight(t, snap)
	if got != hi {
		t.Errorf("control 1: center intensity = %v, want max %v", got, hi)
	}

	cell.Set(0)
	_, _ = e.Frame()
	snap, _ = rec.Last()
	_, got, lo, _ := centerLight(t, snap)
	if got != lo {
		t.Errorf("control 0: center intensity = %v, want min %v", got, lo)
	}
}

func TestSnapshotLightsStayInRange(t *testing.T) {
	cell := control.NewCell(0)
	e, rec := newTestEngine(t, cell)
	_ = e.Init()
	for _, v := range []float32{-3, 0, 0.3, 0.77, 1, 42, float32(math.NaN()), float32(math.Inf(1))} {
		cell.Set(v)
		if _, err := e.Frame(); err != nil {
			t.Fatal(err)
		}
		snap, _ := rec.Last()
		for _, l := range snap.Lights {
			if l.Intensity < l.MinIntensity || l.Intensity > l.MaxIntensity {
				t.Errorf("control %v: light %d intensity %v outside [%v, %v]", v, l.ID, l.Intensity, l.MinIntensity, l.MaxIntensity)
			}
		}
	}
}

func TestLightsDirtyOnlyOnChange(t *testing.T) {
	cell := control.NewCell(0)
	e, rec := newTestEngine(t, cell)
	_ = e.Init()

	steps := []struct {
		set     float32
		dirty   bool
		changed bool
	}{
		{-1, true, false}, // first frame carries the initial state
		{-1, false, false},
		{0.6, true, true},
		{0.6, false, false},
	}
	for i, s := range steps {
		if s.set >= 0 {
			cell.Set(s.set)
		}
		res, err := e.Frame()
		if err != nil {
			t.Fatal(err)
		}
		snap, _ := rec.Last()
		if snap.LightsDirty != s.dirty {
			t.Errorf("frame %d: LightsDirty = %v, want %v", i, snap.LightsDirty, s.dirty)
		}
		if res.LightsChanged != s.changed {
			t.Errorf("frame %d: LightsChanged = %v, want %v", i, res.LightsChanged, s.changed)
		}
	}
	if rec.LightUploads() != 2 {
		t.Errorf("LightUploads() = %d, want 2", rec.LightUploads())
	}
}

func TestRunDrivesFramesFromHost(t *testing.T) {
	host := NewHeadlessHost(5)
	e, rec := newTestEngine(t, control.NewCell(0), WithHost(host))
	if err := e.Run(); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if e.Frames() != 5 || rec.Submissions() != 5 {
		t.Errorf("frames = %d, submissions = %d, want 5", e.Frames(), rec.Submissions())
	}
	if e.State() != StateRunning {
		t.Errorf("State() = %v", e.State())
	}
}

func TestRunStopsOnRenderError(t *testing.T) {
	host := NewHeadlessHost(0)
	e, rec := newTestEngine(t, control.NewCell(0), WithHost(host))
	if err := e.Init(); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("device lost")
	rec.Err = boom

	err := e.Run()
	if !errors.Is(err, boom) {
		t.Fatalf("Run() = %v, want wrapped %v", err, boom)
	}
	if host.Iterations() != 1 {
		t.Errorf("host ran %d iterations after failure, want 1", host.Iterations())
	}
	if e.Frames() != 0 {
		t.Errorf("Frames() = %d, failed frame counted", e.Frames())
	}
}

func TestRunWithoutHost(t *testing.T) {
	e, _ := newTestEngine(t, control.NewCell(0))
	if err := e.Run(); !errors.Is(err, ErrNoHost) {
		t.Errorf("Run() = %v, want ErrNoHost", err)
	}
}

func TestReadoutSink(t *testing.T) {
	clk := &fakeClock{now: time.Unix(0, 0), step: 10 * time.Millisecond}
	timer := profiler.NewFrameTimer(profiler.WithClock(clk.Now))

	var texts []string
	e, _ := newTestEngine(t, control.NewCell(0),
		WithFrameTimer(timer),
		WithReadout(hud.NewReadout(hud.WithRefreshInterval(0))),
		WithReadoutSink(func(s string) { texts = append(texts, s) }),
	)
	_ = e.Init()
	var last FrameResult
	for range 4 {
		var err error
		if last, err = e.Frame(); err != nil {
			t.Fatal(err)
		}
	}
	if len(texts) != 4 {
		t.Fatalf("sink called %d times, want 4", len(texts))
	}
	// each Tick and each readout update read the clock, so frames are 20ms apart
	if last.Readout != "FPS: 50.0" {
		t.Errorf("Readout = %q, want FPS: 50.0", last.Readout)
	}
	if !strings.HasPrefix(texts[0], "FPS: ") {
		t.Errorf("first text = %q", texts[0])
	}
}

func TestResizeUpdatesCameraAndRenderer(t *testing.T) {
	e, rec := newTestEngine(t, control.NewCell(0))
	_ = e.Init()
	e.Resize(1920, 1080)
	if w, h := rec.Size(); w != 1920 || h != 1080 {
		t.Errorf("renderer size = %dx%d", w, h)
	}
	if a := e.Composition().Camera.Aspect(); math.Abs(float64(a)-1920.0/1080.0) > 1e-6 {
		t.Errorf("camera aspect = %v", a)
	}
}

func TestSnapshotCarriesCurrentReadout(t *testing.T) {
	clk := &fakeClock{now: time.Unix(0, 0), step: 10 * time.Millisecond}
	e, rec := newTestEngine(t, control.NewCell(0),
		WithFrameTimer(profiler.NewFrameTimer(profiler.WithClock(clk.Now))),
		WithReadout(hud.NewReadout(hud.WithRefreshInterval(0))),
	)
	_ = e.Init()
	for i := range 3 {
		res, err := e.Frame()
		if err != nil {
			t.Fatal(err)
		}
		snap, _ := rec.Last()
		if snap.Readout != res.Readout {
			t.Errorf("frame %d: snapshot readout %q, frame readout %q", i, snap.Readout, res.Readout)
		}
	}
	if snap, _ := rec.Last(); snap.Readout != "FPS: 50.0" {
		t.Errorf("last snapshot readout = %q, want FPS: 50.0", snap.Readout)
	}
}

func TestStoreStateCannotBypassDirtyFlag(t *testing.T) {
	e, rec := newTestEngine(t, control.NewCell(0))
	_ = e.Init()
	if _, err := e.Frame(); err != nil {
		t.Fatal(err)
	}

	l, ok := e.Store().Get(0)
	if !ok {
		t.Fatal("light 0 missing")
	}
	l.Position[0] = 9
	l.Intensity = l.MaxIntensity

	if _, err := e.Frame(); err != nil {
		t.Fatal(err)
	}
	snap, _ := rec.Last()
	if snap.LightsDirty {
		t.Error("editing a returned state marked the lights dirty")
	}
	if snap.Lights[0].Position[0] == 9 || snap.Lights[0].Intensity == snap.Lights[0].MaxIntensity {
		t.Errorf("snapshot picked up an edited copy: %+v", snap.Lights[0])
	}
	if rec.LightUploads() != 1 {
		t.Errorf("LightUploads() = %d, want 1", rec.LightUploads())
	}
}

func TestControlMidpointReachesLight(t *testing.T) {
	desc := scene.NewCornellBox(
		scene.WithIntensityScale(200, 2000),
		scene.WithLight(scene.LightSpec{
			ID:           100,
			Intensity:    200,
			MinIntensity: 200,
			MaxIntensity: 2000,
			Gain:         1,
			Range:        5,
			Bound:        true,
		}),
	)
	cell := control.NewCell(0)
	e := NewEngine(desc, cell, renderer.NewRecorder())
	if err := e.Init(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		position float32
		want     float32
	}{
		{0, 200},
		{0.5, 1100},
		{1, 2000},
	}
	for _, tt := range tests {
		cell.Set(tt.position)
		res, err := e.Frame()
		if err != nil {
			t.Fatal(err)
		}
		l, _ := e.Store().Get(100)
		if l.Intensity != tt.want {
			t.Errorf("position %v: intensity = %v (output %v), want %v", tt.position, l.Intensity, res.Output, tt.want)
		}
	}
}
