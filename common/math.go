package common

import "math"

// Clamp32 restricts v to the closed interval [lo, hi]. NaN collapses to lo.
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound (inclusive)
//   - hi: upper bound (inclusive)
//
// Returns:
//   - float32: v limited to [lo, hi]
func Clamp32(v, lo, hi float32) float32 {
	if v != v {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp32 linearly interpolates between a and b by t. t is not clamped.
//
// Parameters:
//   - a: value at t = 0
//   - b: value at t = 1
//   - t: interpolation factor
//
// Returns:
//   - float32: a + (b - a) * t
func Lerp32(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Float32ToBits packs a float32 into its IEEE-754 bit pattern.
// Used for lock-free single-word storage of scalar values.
func Float32ToBits(v float32) uint32 {
	return math.Float32bits(v)
}

// BitsToFloat32 is the inverse of Float32ToBits.
func BitsToFloat32(b uint32) float32 {
	return math.Float32frombits(b)
}
