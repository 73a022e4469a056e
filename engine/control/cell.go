// Package control maps the single UI-driven parameter onto light intensity.
package control

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-fog/common"
)

// Value is a normalized control position in [0, 1].
type Value float32

// Cell holds the current control position. It is owned and written by the UI
// side and only read by the frame loop. The value lives in one atomic word, so
// a reader on another thread always sees a whole value.
type Cell struct {
	bits    atomic.Uint32
	written atomic.Bool
}

// NewCell creates a Cell holding initial, clamped into [0, 1].
// A Cell created this way is not marked as written by the UI.
//
// Parameters:
//   - initial: the starting position
//
// Returns:
//   - *Cell: the new cell
func NewCell(initial float32) *Cell {
	c := &Cell{}
	c.store(initial)
	return c
}

// Set stores raw after clamping it into [0, 1]. NaN stores 0.
//
// Parameters:
//   - raw: the position reported by the UI
func (c *Cell) Set(raw float32) {
	c.store(raw)
	c.written.Store(true)
}

// Seed stores v only if the UI has not written a value yet.
//
// Parameters:
//   - v: the default position
//
// Returns:
//   - bool: true if v was stored
func (c *Cell) Seed(v float32) bool {
	if c.written.Load() {
		return false
	}
	c.store(v)
	return true
}

// Load returns the current position.
func (c *Cell) Load() Value {
	return Value(common.BitsToFloat32(c.bits.Load()))
}

// Add moves the position by delta, clamped into [0, 1].
//
// Parameters:
//   - delta: signed step
func (c *Cell) Add(delta float32) {
	c.Set(float32(c.Load()) + delta)
}

func (c *Cell) store(v float32) {
	c.bits.Store(common.Float32ToBits(common.Clamp32(v, 0, 1)))
}
