package control

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-fog/common"
)

// Range is the closed output interval of a Binding.
type Range struct {
	Min float32
	Max float32
}

// Validate reports whether the range is usable.
func (r Range) Validate() error {
	if r.Min != r.Min || r.Max != r.Max {
		return fmt.Errorf("control range [%v, %v] contains NaN", r.Min, r.Max)
	}
	if r.Max < r.Min {
		return fmt.Errorf("control range max %v is below min %v", r.Max, r.Min)
	}
	return nil
}

// Target is one light driven by a Binding. The light receives
// Gain * Binding.Read() as its requested intensity.
type Target struct {
	LightID int
	Gain    float32
}

// Binding maps the cell's position onto a fixed output range:
//
//	out = Min + v * (Max - Min)
//
// with v the cell value clamped to [0, 1]. Read has no side effects, so two
// reads without an intervening Cell.Set return the same value.
type Binding struct {
	cell    *Cell
	rng     Range
	targets []Target
}

// NewBinding creates a Binding reading from cell.
//
// Parameters:
//   - cell: the UI-owned control cell
//   - rng: the output interval
//   - targets: the lights driven by the output
//
// Returns:
//   - *Binding: the new binding
func NewBinding(cell *Cell, rng Range, targets ...Target) *Binding {
	t := make([]Target, len(targets))
	copy(t, targets)
	return &Binding{cell: cell, rng: rng, targets: t}
}

// Read returns the mapped output for the current cell position.
func (b *Binding) Read() float32 {
	v := common.Clamp32(float32(b.cell.Load()), 0, 1)
	return common.Lerp32(b.rng.Min, b.rng.Max, v)
}

// Position returns the normalized cell position the next Read maps.
func (b *Binding) Position() Value {
	return Value(common.Clamp32(float32(b.cell.Load()), 0, 1))
}

// Range returns the output interval.
func (b *Binding) Range() Range {
	return b.rng
}

// Targets returns the driven lights.
func (b *Binding) Targets() []Target {
	out := make([]Target, len(b.targets))
	copy(out, b.targets)
	return out
}

// Cell returns the cell the binding reads.
func (b *Binding) Cell() *Cell {
	return b.cell
}
