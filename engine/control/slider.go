package control

import "github.com/Carmen-Shannon/oxy-fog/common"

// Default slider geometry in window pixels.
const (
	DefaultSliderWidth        float32 = 340.0
	DefaultSliderHeight       float32 = 14.0
	DefaultSliderBottomMargin float32 = 14.0
	DefaultSliderGrabExtraY   float32 = 28.0

	// DefaultNudgeStep is the keyboard step applied by arrow keys.
	DefaultNudgeStep float32 = 0.05
)

// Slider turns pointer input into writes on a Cell. The track is centered
// horizontally near the bottom edge of the window; the grab area extends above
// the track so the thin bar is easy to hit. Coordinates are window pixels with
// the origin at the top-left corner.
type Slider struct {
	cell *Cell

	width        float32
	height       float32
	bottomMargin float32
	grabExtraY   float32

	dragging bool
}

// SliderBuilderOption is a functional option for configuring a Slider.
type SliderBuilderOption func(*Slider)

// WithSliderSize sets the track width and height in pixels.
//
// Parameters:
//   - width: track width
//   - height: track height
//
// Returns:
//   - SliderBuilderOption: option function to apply
func WithSliderSize(width, height float32) SliderBuilderOption {
	return func(s *Slider) {
		s.width = width
		s.height = height
	}
}

// WithSliderMargin sets the gap between the track and the bottom window edge.
//
// Parameters:
//   - bottom: margin in pixels
//
// Returns:
//   - SliderBuilderOption: option function to apply
func WithSliderMargin(bottom float32) SliderBuilderOption {
	return func(s *Slider) {
		s.bottomMargin = bottom
	}
}

// NewSlider creates a Slider writing into cell.
//
// Parameters:
//   - cell: the control cell to drive
//   - opts: functional options
//
// Returns:
//   - *Slider: the new slider
func NewSlider(cell *Cell, opts ...SliderBuilderOption) *Slider {
	s := &Slider{
		cell:         cell,
		width:        DefaultSliderWidth,
		height:       DefaultSliderHeight,
		bottomMargin: DefaultSliderBottomMargin,
		grabExtraY:   DefaultSliderGrabExtraY,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Track returns the horizontal extent of the track and the vertical extent of
// the grab area for a window of size w x h.
func (s *Slider) Track(w, h float32) (left, right, top, bottom float32) {
	cx := w * 0.5
	left = cx - s.width*0.5
	right = cx + s.width*0.5
	bottom = h - s.bottomMargin
	top = h - (s.bottomMargin + s.height + s.grabExtraY)
	return
}

// Contains reports whether (x, y) is inside the grab area.
func (s *Slider) Contains(x, y, w, h float32) bool {
	left, right, top, bottom := s.Track(w, h)
	return x >= left && x <= right && y >= top && y <= bottom
}

// Press handles a primary button press. A drag only starts inside the grab
// area; the press also moves the knob under the cursor.
//
// Parameters:
//   - x, y: cursor position
//   - w, h: window size
//
// Returns:
//   - bool: true if a drag started
func (s *Slider) Press(x, y, w, h float32) bool {
	s.dragging = s.Contains(x, y, w, h)
	if s.dragging {
		s.Move(x, y, w, h)
	}
	return s.dragging
}

// Release ends any drag in progress.
func (s *Slider) Release() {
	s.dragging = false
}

// Leave handles the cursor leaving the window. The drag ends unless the
// button is still held.
//
// Parameters:
//   - buttonDown: whether the primary button is still pressed
func (s *Slider) Leave(buttonDown bool) {
	if !buttonDown {
		s.dragging = false
	}
}

// Move updates the cell from the cursor position while dragging.
//
// Parameters:
//   - x, y: cursor position
//   - w, h: window size
//
// Returns:
//   - bool: true if the cell was written
func (s *Slider) Move(x, y, w, h float32) bool {
	if !s.dragging {
		return false
	}
	left, right, _, _ := s.Track(w, h)
	s.cell.Set((x - left) / (right - left))
	return true
}

// Nudge moves the value by delta, as arrow keys do.
func (s *Slider) Nudge(delta float32) {
	s.cell.Add(delta)
}

// Set jumps to v, clamped into [0, 1].
func (s *Slider) Set(v float32) {
	s.cell.Set(v)
}

// HandleKey applies the keyboard bindings: left and right arrows nudge by
// DefaultNudgeStep, Home and End jump to the ends.
//
// Parameters:
//   - key: the key code (see common.Key*)
//
// Returns:
//   - bool: true if the key was handled
func (s *Slider) HandleKey(key uint32) bool {
	switch key {
	case common.KeyLeft:
		s.Nudge(-DefaultNudgeStep)
	case common.KeyRight:
		s.Nudge(DefaultNudgeStep)
	case common.KeyHome:
		s.Set(0)
	case common.KeyEnd:
		s.Set(1)
	default:
		return false
	}
	return true
}

// Dragging reports whether a drag is in progress.
func (s *Slider) Dragging() bool {
	return s.dragging
}
