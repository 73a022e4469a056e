package renderer

import "github.com/Carmen-Shannon/oxy-fog/engine/light"

// Recorder is a Renderer that keeps submitted snapshots in memory. It backs
// headless runs and tests.
type Recorder struct {
	last         SceneSnapshot
	submissions  uint64
	lightUploads uint64
	lastLights   []byte
	width        int
	height       int
	closed       bool

	// Err, when set, is returned by the next Submit.
	Err error
}

var _ Renderer = &Recorder{}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Submit(snap *SceneSnapshot) error {
	if r.closed {
		return ErrClosed
	}
	if r.Err != nil {
		err := r.Err
		r.Err = nil
		return err
	}
	r.last = *snap
	r.last.Lights = append([]light.State(nil), snap.Lights...)
	if snap.LightsDirty || r.lightUploads == 0 {
		r.lastLights = light.MarshalLightBuffer(snap.Lights, ambientRadiance(snap))
		r.lightUploads++
	}
	r.submissions++
	return nil
}

func (r *Recorder) Resize(width, height int) {
	r.width, r.height = width, height
}

func (r *Recorder) Close() error {
	r.closed = true
	return nil
}

// Last returns the most recent snapshot and whether one was submitted.
func (r *Recorder) Last() (SceneSnapshot, bool) {
	return r.last, r.submissions > 0
}

// Submissions returns the number of successful Submit calls.
func (r *Recorder) Submissions() uint64 {
	return r.submissions
}

// LightUploads returns how many times the light buffer would have been written.
func (r *Recorder) LightUploads() uint64 {
	return r.lightUploads
}

// LightBuffer returns the bytes of the last light upload.
func (r *Recorder) LightBuffer() []byte {
	return r.lastLights
}

// Size returns the last size passed to Resize.
func (r *Recorder) Size() (int, int) {
	return r.width, r.height
}

// Closed reports whether Close was called.
func (r *Recorder) Closed() bool {
	return r.closed
}
