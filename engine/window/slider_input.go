package window

import "github.com/Carmen-Shannon/oxy-fog/engine/control"

// BindSlider routes left-button drags and the slider keys of w into s.
// Existing mouse, cursor-leave and key callbacks on w are replaced.
//
// Parameters:
//   - w: the window delivering input
//   - s: the slider to drive
func BindSlider(w Window, s *control.Slider) {
	size := func() (float32, float32) {
		return float32(w.Width()), float32(w.Height())
	}
	w.SetMouseButtonCallback(func(button MouseButton, pressed bool, x, y float32) {
		if button != MouseButtonLeft {
			return
		}
		if !pressed {
			s.Release()
			return
		}
		width, height := size()
		s.Press(x, y, width, height)
	})
	w.SetMouseMoveCallback(func(x, y float32) {
		width, height := size()
		s.Move(x, y, width, height)
	})
	w.SetCursorLeaveCallback(func() {
		s.Leave(w.MouseDown(MouseButtonLeft))
	})
	w.SetKeyDownCallback(func(keyCode uint32) {
		s.HandleKey(keyCode)
	})
}
