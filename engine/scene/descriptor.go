// Package scene declares the static composition of a demo scene and turns it
// into live objects exactly once per run.
package scene

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-fog/engine/camera"
	"github.com/Carmen-Shannon/oxy-fog/engine/control"
	"github.com/Carmen-Shannon/oxy-fog/engine/light"
	"github.com/go-gl/mathgl/mgl32"
)

// Material is a Lambertian surface description.
type Material struct {
	Name      string
	BaseColor [3]float32
	Roughness float32
	Metallic  float32
}

// Box is an axis-aligned cuboid, optionally rotated about the Y axis.
type Box struct {
	Name      string
	Size      mgl32.Vec3
	Position  mgl32.Vec3
	RotationY float32 // degrees
	Material  string
}

// Rotation returns the box orientation as a quaternion.
func (b Box) Rotation() mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(b.RotationY), mgl32.Vec3{0, 1, 0})
}

// Transform returns the model matrix translate * rotate * scale.
func (b Box) Transform() mgl32.Mat4 {
	return mgl32.Translate3D(b.Position.X(), b.Position.Y(), b.Position.Z()).
		Mul4(b.Rotation().Mat4()).
		Mul4(mgl32.Scale3D(b.Size.X(), b.Size.Y(), b.Size.Z()))
}

// LightSpec declares one point light. Gain is the intensity produced per unit
// of control output when the light is bound to the control.
type LightSpec struct {
	ID           int
	Tag          string
	Position     mgl32.Vec3
	Color        [3]float32
	Intensity    float32
	MinIntensity float32
	MaxIntensity float32
	Gain         float32
	Range        float32
	Radius       float32
	CastsShadows bool
	Volumetric   bool
	// Bound lights follow the intensity control.
	Bound bool
}

// FogVolume is a box of participating media.
type FogVolume struct {
	DensityFactor float32
	Absorption    float32
	Scattering    float32
	// Anisotropy is the Henyey-Greenstein g parameter in [-1, 1].
	Anisotropy float32
	Color      [3]float32
	Center     mgl32.Vec3
	Scale      mgl32.Vec3
}

// Extinction returns the extinction coefficient density * (absorption + scattering).
func (f FogVolume) Extinction() float32 {
	return f.DensityFactor * (f.Absorption + f.Scattering)
}

// Bounds returns the volume's axis-aligned corners.
func (f FogVolume) Bounds() (lo, hi mgl32.Vec3) {
	half := f.Scale.Mul(0.5)
	return f.Center.Sub(half), f.Center.Add(half)
}

// Contains reports whether p is inside the volume, boundary included.
func (f FogVolume) Contains(p mgl32.Vec3) bool {
	lo, hi := f.Bounds()
	for i := range 3 {
		if p[i] < lo[i] || p[i] > hi[i] {
			return false
		}
	}
	return true
}

// Ambient is the global fill light.
type Ambient struct {
	Color      [3]float32
	Brightness float32
}

// ControlSpec declares how the intensity control drives the bound lights.
type ControlSpec struct {
	// Scale is the binding output range.
	Scale control.Range
	// Initial is the control position used until the UI writes one.
	Initial float32
}

// Descriptor is the declarative composition of a scene. It holds no live
// objects; Build turns it into a Composition.
type Descriptor struct {
	Materials     []Material
	Boxes         []Box
	Camera        camera.Settings
	Lights        []LightSpec
	Fog           FogVolume
	Ambient       Ambient
	ShadowMapSize int
	Control       ControlSpec
}

// Validate checks the descriptor without instantiating anything.
//
// Returns:
//   - error: a *ConfigurationError for the first invalid value, or nil
func (d Descriptor) Validate() error {
	if d.ShadowMapSize <= 0 {
		return configErr("shadow_map_size", "must be positive, got %d", d.ShadowMapSize)
	}

	materials := make(map[string]struct{}, len(d.Materials))
	for i, m := range d.Materials {
		if m.Name == "" {
			return configErr(fmt.Sprintf("materials[%d].name", i), "must not be empty")
		}
		if _, dup := materials[m.Name]; dup {
			return configErr(fmt.Sprintf("materials[%d].name", i), "duplicate material %q", m.Name)
		}
		materials[m.Name] = struct{}{}
	}

	for i, b := range d.Boxes {
		if _, ok := materials[b.Material]; !ok {
			return configErr(fmt.Sprintf("boxes[%d].material", i), "unknown material %q", b.Material)
		}
		if b.Size.X() <= 0 || b.Size.Y() <= 0 || b.Size.Z() <= 0 {
			return configErr(fmt.Sprintf("boxes[%d].size", i), "components must be positive, got %v", b.Size)
		}
	}

	if len(d.Lights) > light.MaxGPULights {
		return configErr("lights", "at most %d lights fit the light buffer, got %d", light.MaxGPULights, len(d.Lights))
	}
	ids := make(map[int]struct{}, len(d.Lights))
	for i, l := range d.Lights {
		if err := validateLight(i, l); err != nil {
			return err
		}
		if _, dup := ids[l.ID]; dup {
			return configErr(fmt.Sprintf("lights[%d].id", i), "duplicate light id %d", l.ID)
		}
		ids[l.ID] = struct{}{}
	}

	if err := validateFog(d.Fog); err != nil {
		return err
	}
	if d.Ambient.Brightness < 0 || isNaN(d.Ambient.Brightness) {
		return configErr("ambient.brightness", "must be non-negative, got %v", d.Ambient.Brightness)
	}

	if err := d.Control.Scale.Validate(); err != nil {
		return configErr("control.scale", "%v", err)
	}
	if d.Control.Initial < 0 || d.Control.Initial > 1 || isNaN(d.Control.Initial) {
		return configErr("control.initial", "must be in [0, 1], got %v", d.Control.Initial)
	}

	if d.Camera.Near > 0 && d.Camera.Far > 0 && d.Camera.Far <= d.Camera.Near {
		return configErr("camera.far", "must exceed near %v, got %v", d.Camera.Near, d.Camera.Far)
	}
	return nil
}

func validateLight(i int, l LightSpec) error {
	field := func(name string) string { return fmt.Sprintf("lights[%d].%s", i, name) }
	switch {
	case isNaN(l.Intensity) || l.Intensity <= 0:
		return configErr(field("intensity"), "must be positive, got %v", l.Intensity)
	case isNaN(l.MinIntensity) || l.MinIntensity <= 0:
		return configErr(field("min_intensity"), "must be positive, got %v", l.MinIntensity)
	case isNaN(l.MaxIntensity) || l.MaxIntensity < l.MinIntensity:
		return configErr(field("max_intensity"), "must be at least min %v, got %v", l.MinIntensity, l.MaxIntensity)
	case l.Intensity < l.MinIntensity || l.Intensity > l.MaxIntensity:
		return configErr(field("intensity"), "%v outside [%v, %v]", l.Intensity, l.MinIntensity, l.MaxIntensity)
	case isNaN(l.Range) || l.Range <= 0:
		return configErr(field("range"), "must be positive, got %v", l.Range)
	case isNaN(l.Radius) || l.Radius < 0:
		return configErr(field("radius"), "must be non-negative, got %v", l.Radius)
	case l.Bound && (isNaN(l.Gain) || l.Gain <= 0):
		return configErr(field("gain"), "bound light needs a positive gain, got %v", l.Gain)
	}
	return nil
}

func validateFog(f FogVolume) error {
	switch {
	case isNaN(f.DensityFactor) || f.DensityFactor < 0:
		return configErr("fog.density_factor", "must be non-negative, got %v", f.DensityFactor)
	case isNaN(f.Absorption) || f.Absorption < 0:
		return configErr("fog.absorption", "must be non-negative, got %v", f.Absorption)
	case isNaN(f.Scattering) || f.Scattering < 0:
		return configErr("fog.scattering", "must be non-negative, got %v", f.Scattering)
	case isNaN(f.Anisotropy) || f.Anisotropy < -1 || f.Anisotropy > 1:
		return configErr("fog.anisotropy", "must be in [-1, 1], got %v", f.Anisotropy)
	case f.Scale.X() <= 0 || f.Scale.Y() <= 0 || f.Scale.Z() <= 0:
		return configErr("fog.scale", "components must be positive, got %v", f.Scale)
	}
	return nil
}

func isNaN(v float32) bool {
	return math.IsNaN(float64(v))
}
