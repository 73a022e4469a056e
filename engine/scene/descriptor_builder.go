package scene

import "github.com/Carmen-Shannon/oxy-fog/common"

// DescriptorBuilderOption is a functional option for NewCornellBox.
// Use the With* functions to create options.
type DescriptorBuilderOption func(b *cornellBuilder)

// WithLightGrid sets the ceiling light grid to n x n lights.
//
// Parameters:
//   - n: lights per side
//
// Returns:
//   - DescriptorBuilderOption: option function to apply
func WithLightGrid(n int) DescriptorBuilderOption {
	return func(b *cornellBuilder) {
		b.grid = n
	}
}

// WithIntensityScale sets the intensity multiplier at control positions 0 and 1.
// Each bound light's valid range becomes [base*lo, base*hi].
//
// Parameters:
//   - lo: multiplier at control 0
//   - hi: multiplier at control 1
//
// Returns:
//   - DescriptorBuilderOption: option function to apply
func WithIntensityScale(lo, hi float32) DescriptorBuilderOption {
	return func(b *cornellBuilder) {
		b.scaleMin = lo
		b.scaleMax = hi
	}
}

// WithInitialControl sets the control position used before the UI writes one.
// The value is clamped into [0, 1].
//
// Parameters:
//   - v: initial control position
//
// Returns:
//   - DescriptorBuilderOption: option function to apply
func WithInitialControl(v float32) DescriptorBuilderOption {
	return func(b *cornellBuilder) {
		b.initial = common.Clamp32(v, 0, 1)
	}
}

// WithFogDensity sets the fog density factor.
//
// Parameters:
//   - d: density factor
//
// Returns:
//   - DescriptorBuilderOption: option function to apply
func WithFogDensity(d float32) DescriptorBuilderOption {
	return func(b *cornellBuilder) {
		b.fogDensity = d
	}
}

// WithShadowMapSize sets the directional and point shadow map resolution.
//
// Parameters:
//   - n: size in texels
//
// Returns:
//   - DescriptorBuilderOption: option function to apply
func WithShadowMapSize(n int) DescriptorBuilderOption {
	return func(b *cornellBuilder) {
		b.shadowMapSize = n
	}
}

// WithLight appends an extra light after the grid. It is not validated
// until Build.
//
// Parameters:
//   - spec: the light to add
//
// Returns:
//   - DescriptorBuilderOption: option function to apply
func WithLight(spec LightSpec) DescriptorBuilderOption {
	return func(b *cornellBuilder) {
		b.extra = append(b.extra, spec)
	}
}
