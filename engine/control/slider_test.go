package control

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-fog/common"
)

const (
	winW float32 = 1000
	winH float32 = 800
)

func TestSliderTrackGeometry(t *testing.T) {
	s := NewSlider(NewCell(0))
	left, right, top, bottom := s.Track(winW, winH)
	if left != 330 || right != 670 {
		t.Errorf("track x = [%v, %v], want [330, 670]", left, right)
	}
	if bottom != 786 || top != 744 {
		t.Errorf("grab y = [%v, %v], want [744, 786]", top, bottom)
	}
}

func TestSliderPressOutsideDoesNotDrag(t *testing.T) {
	c := NewCell(0.25)
	s := NewSlider(c)
	if s.Press(100, 100, winW, winH) {
		t.Fatal("press far from the track started a drag")
	}
	if s.Move(500, 780, winW, winH) {
		t.Error("move without drag wrote the cell")
	}
	if c.Load() != 0.25 {
		t.Errorf("cell changed to %v", c.Load())
	}
}

func TestSliderDragWritesCell(t *testing.T) {
	c := NewCell(0)
	s := NewSlider(c)
	if !s.Press(500, 780, winW, winH) {
		t.Fatal("press on the track did not start a drag")
	}
	if c.Load() != 0.5 {
		t.Errorf("press at center -> %v, want 0.5", c.Load())
	}

	s.Move(670, 100, winW, winH)
	if c.Load() != 1 {
		t.Errorf("drag to right end -> %v, want 1", c.Load())
	}

	s.Move(0, 100, winW, winH)
	if c.Load() != 0 {
		t.Errorf("drag past left end -> %v, want 0", c.Load())
	}

	s.Release()
	s.Move(500, 780, winW, winH)
	if c.Load() != 0 {
		t.Errorf("move after release wrote %v", c.Load())
	}
}

func TestSliderLeaveKeepsDragWhileHeld(t *testing.T) {
	s := NewSlider(NewCell(0))
	s.Press(500, 780, winW, winH)
	s.Leave(true)
	if !s.Dragging() {
		t.Error("drag ended while the button is held")
	}
	s.Leave(false)
	if s.Dragging() {
		t.Error("drag survived leaving with the button up")
	}
}

func TestSliderNudgeAndKnob(t *testing.T) {
	c := NewCell(0.5)
	s := NewSlider(c)
	s.Nudge(DefaultNudgeStep)
	if got := float32(c.Load()); got < 0.549 || got > 0.551 {
		t.Errorf("nudge -> %v, want 0.55", got)
	}
	c.Set(1)
	s.Nudge(DefaultNudgeStep)
	if c.Load() != 1 {
		t.Errorf("nudge past end -> %v, want 1", c.Load())
	}
}

func TestSliderHandleKey(t *testing.T) {
	c := NewCell(0.5)
	s := NewSlider(c)

	tests := []struct {
		key     uint32
		handled bool
		want    Value
	}{
		{common.KeyEnd, true, 1},
		{common.KeyHome, true, 0},
		{common.KeyLeft, true, 0},
		{common.KeySpace, false, 0},
	}
	for _, tt := range tests {
		if got := s.HandleKey(tt.key); got != tt.handled {
			t.Errorf("HandleKey(%d) = %v, want %v", tt.key, got, tt.handled)
		}
		if c.Load() != tt.want {
			t.Errorf("after key %d value = %v, want %v", tt.key, c.Load(), tt.want)
		}
	}
	s.HandleKey(common.KeyRight)
	if got := float32(c.Load()); got < 0.049 || got > 0.051 {
		t.Errorf("right arrow from 0 -> %v, want 0.05", got)
	}
}
