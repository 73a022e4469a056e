package light

import (
	"github.com/Carmen-Shannon/oxy-fog/common"
	"github.com/go-gl/mathgl/mgl32"
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	id           int
	tag          string
	position     mgl32.Vec3
	color        [3]float32
	intensity    float32
	minIntensity float32
	maxIntensity float32
	gain         float32
	lightRange   float32
	radius       float32
	castsShadows bool
	volumetric   bool
}

// View is the read-only side of a point light.
type View interface {
	// ID returns the light's identity within its store.
	//
	// Returns:
	//   - int: the light ID
	ID() int

	// Tag returns the role label assigned by the scene description
	// (e.g. "center" or "ceiling").
	//
	// Returns:
	//   - string: the tag
	Tag() string

	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - mgl32.Vec3: position as (x, y, z)
	Position() mgl32.Vec3

	// Color returns the linear RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// Intensity returns the current luminous power of the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// MinIntensity returns the lowest intensity the light may take.
	//
	// Returns:
	//   - float32: lower bound (always > 0)
	MinIntensity() float32

	// MaxIntensity returns the highest intensity the light may take.
	//
	// Returns:
	//   - float32: upper bound (always >= MinIntensity)
	MaxIntensity() float32

	// Gain returns how much intensity one unit of control output maps to.
	//
	// Returns:
	//   - float32: the gain factor
	Gain() float32

	// Range returns the maximum attenuation distance.
	//
	// Returns:
	//   - float32: the range value
	Range() float32

	// Radius returns the emitter radius used for soft shadows.
	//
	// Returns:
	//   - float32: the radius value
	Radius() float32

	// CastsShadows returns whether this light is eligible for shadow map generation.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// Volumetric returns whether the light participates in the volumetric fog pass.
	//
	// Returns:
	//   - bool: true if the light scatters through fog volumes
	Volumetric() bool

	// State returns a value copy of the light for hand-off to the renderer.
	//
	// Returns:
	//   - State: the snapshot
	State() State
}

// Light defines the interface for a point light in the scene.
//
// Lights are created once from the scene description and live for the whole
// run. Their intensity is always kept inside the declared
// [MinIntensity, MaxIntensity] interval; SetIntensity clamps into it. The
// intensity is the only mutable property and only a Store changes it.
type Light interface {
	View

	// SetIntensity clamps intensity into [MinIntensity, MaxIntensity] and stores it.
	//
	// Parameters:
	//   - intensity: the requested intensity
	//
	// Returns:
	//   - float32: the intensity actually applied
	SetIntensity(intensity float32) float32
}

// State is an immutable copy of a Light taken at frame time.
type State struct {
	ID           int
	Tag          string
	Position     mgl32.Vec3
	Color        [3]float32
	Intensity    float32
	MinIntensity float32
	MaxIntensity float32
	Range        float32
	Radius       float32
	CastsShadows bool
	Volumetric   bool
}

var _ Light = &lightImpl{}

// NewLight creates a new point Light with defaults and any provided options applied.
// When no intensity bounds are given, the bounds collapse onto the initial intensity.
//
// Parameters:
//   - id: the identity of the light within its store
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(id int, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		id:         id,
		position:   mgl32.Vec3{0, 0, 0},
		color:      [3]float32{1, 1, 1},
		intensity:  1.0,
		gain:       1.0,
		lightRange: 20.0,
		radius:     0.0,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.minIntensity == 0 && l.maxIntensity == 0 {
		l.minIntensity, l.maxIntensity = l.intensity, l.intensity
	}
	return l
}

func (l *lightImpl) ID() int {
	return l.id
}

func (l *lightImpl) Tag() string {
	return l.tag
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) MinIntensity() float32 {
	return l.minIntensity
}

func (l *lightImpl) MaxIntensity() float32 {
	return l.maxIntensity
}

func (l *lightImpl) Gain() float32 {
	return l.gain
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) Radius() float32 {
	return l.radius
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows
}

func (l *lightImpl) Volumetric() bool {
	return l.volumetric
}

func (l *lightImpl) SetIntensity(intensity float32) float32 {
	l.intensity = common.Clamp32(intensity, l.minIntensity, l.maxIntensity)
	return l.intensity
}

func (l *lightImpl) State() State {
	return State{
		ID:           l.id,
		Tag:          l.tag,
		Position:     l.position,
		Color:        l.color,
		Intensity:    l.intensity,
		MinIntensity: l.minIntensity,
		MaxIntensity: l.maxIntensity,
		Range:        l.lightRange,
		Radius:       l.radius,
		CastsShadows: l.castsShadows,
		Volumetric:   l.volumetric,
	}
}
