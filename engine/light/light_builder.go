package light

import "github.com/go-gl/mathgl/mgl32"

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithTag is an option builder that sets the role label of the light.
//
// Parameters:
//   - tag: the label, e.g. "center"
//
// Returns:
//   - LightBuilderOption: a function that applies the tag option to a lightImpl
func WithTag(tag string) LightBuilderOption {
	return func(l *lightImpl) {
		l.tag = tag
	}
}

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - p: the position
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(p mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = p
	}
}

// WithColor is an option builder that sets the RGB color of the light.
//
// Parameters:
//   - r: the red color component
//   - g: the green color component
//   - b: the blue color component
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = [3]float32{r, g, b}
	}
}

// WithIntensity is an option builder that sets the initial intensity.
// The value is stored as given; bounds are applied by WithIntensityBounds.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a lightImpl
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithIntensityBounds is an option builder that declares the valid intensity
// interval. The current intensity is clamped into it.
//
// Parameters:
//   - lo: minimum intensity
//   - hi: maximum intensity
//
// Returns:
//   - LightBuilderOption: a function that applies the bounds option to a lightImpl
func WithIntensityBounds(lo, hi float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.minIntensity = lo
		l.maxIntensity = hi
		l.SetIntensity(l.intensity)
	}
}

// WithGain is an option builder that sets the intensity produced per unit of
// control output.
//
// Parameters:
//   - gain: the gain factor
//
// Returns:
//   - LightBuilderOption: a function that applies the gain option to a lightImpl
func WithGain(gain float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.gain = gain
	}
}

// WithRange is an option builder that sets the maximum attenuation distance.
//
// Parameters:
//   - lightRange: the range value
//
// Returns:
//   - LightBuilderOption: a function that applies the range option to a lightImpl
func WithRange(lightRange float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.lightRange = lightRange
	}
}

// WithRadius is an option builder that sets the emitter radius.
//
// Parameters:
//   - radius: the radius value
//
// Returns:
//   - LightBuilderOption: a function that applies the radius option to a lightImpl
func WithRadius(radius float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.radius = radius
	}
}

// WithCastsShadows is an option builder that sets whether the light is eligible for
// shadow map generation.
//
// Parameters:
//   - castsShadows: true to enable shadow casting
//
// Returns:
//   - LightBuilderOption: a function that applies the shadow casting option to a lightImpl
func WithCastsShadows(castsShadows bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.castsShadows = castsShadows
	}
}

// WithVolumetric is an option builder that sets whether the light scatters
// through fog volumes.
//
// Parameters:
//   - volumetric: true to include the light in the volumetric pass
//
// Returns:
//   - LightBuilderOption: a function that applies the volumetric option to a lightImpl
func WithVolumetric(volumetric bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.volumetric = volumetric
	}
}
