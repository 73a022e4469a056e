package engine

// Host drives the frame loop. It calls the update callback once per loop
// iteration on the thread that called ProcessMessages.
type Host interface {
	// SetUpdateCallback sets the function called each loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// ProcessMessages runs the loop and blocks until it ends.
	ProcessMessages()

	// Stop ends the loop after the current iteration.
	Stop()
}

// resizeNotifier is implemented by hosts that report framebuffer size changes.
type resizeNotifier interface {
	SetResizeCallback(callback func(width, height int))
}

// HeadlessHost is a Host without a window. It runs a fixed number of
// iterations, or until stopped when the limit is zero.
type HeadlessHost struct {
	frames   int
	onUpdate func()
	stopped  bool
	ran      int
}

var _ Host = &HeadlessHost{}

// NewHeadlessHost creates a HeadlessHost running frames iterations.
//
// Parameters:
//   - frames: iteration limit; 0 runs until Stop
//
// Returns:
//   - *HeadlessHost: the host
func NewHeadlessHost(frames int) *HeadlessHost {
	return &HeadlessHost{frames: frames}
}

func (h *HeadlessHost) SetUpdateCallback(callback func()) {
	h.onUpdate = callback
}

func (h *HeadlessHost) ProcessMessages() {
	for !h.stopped && (h.frames <= 0 || h.ran < h.frames) {
		h.ran++
		if h.onUpdate != nil {
			h.onUpdate()
		}
	}
}

func (h *HeadlessHost) Stop() {
	h.stopped = true
}

// Iterations returns how many loop iterations ran.
func (h *HeadlessHost) Iterations() int {
	return h.ran
}
