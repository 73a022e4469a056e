package scene

import (
	"github.com/Carmen-Shannon/oxy-fog/engine/camera"
	"github.com/Carmen-Shannon/oxy-fog/engine/control"
	"github.com/Carmen-Shannon/oxy-fog/engine/light"
)

// Composition is the live result of Descriptor.Build: the static geometry, the
// camera and the lights whose intensity is the only mutable state of a run.
// Lights are read-only views; intensities change only through the store
// returned by NewStore.
type Composition struct {
	Materials     []Material
	Boxes         []Box
	Camera        camera.Camera
	Lights        []light.View
	Fog           FogVolume
	Ambient       Ambient
	ShadowMapSize int
	Control       ControlSpec

	lights    []light.Light
	targets   []control.Target
	materials map[string]int
}

// Build validates the descriptor and instantiates its lights and camera.
// Building the same descriptor twice yields equal compositions.
//
// Returns:
//   - *Composition: the live scene
//   - error: a *ConfigurationError if the descriptor is invalid
func (d Descriptor) Build() (*Composition, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	c := &Composition{
		Materials:     append([]Material(nil), d.Materials...),
		Boxes:         append([]Box(nil), d.Boxes...),
		Camera:        camera.NewCameraFromSettings(d.Camera),
		Lights:        make([]light.View, 0, len(d.Lights)),
		lights:        make([]light.Light, 0, len(d.Lights)),
		Fog:           d.Fog,
		Ambient:       d.Ambient,
		ShadowMapSize: d.ShadowMapSize,
		Control:       d.Control,
		materials:     make(map[string]int, len(d.Materials)),
	}
	for i, m := range c.Materials {
		c.materials[m.Name] = i
	}

	for _, spec := range d.Lights {
		l := light.NewLight(spec.ID,
			light.WithTag(spec.Tag),
			light.WithPosition(spec.Position),
			light.WithColor(spec.Color[0], spec.Color[1], spec.Color[2]),
			light.WithIntensity(spec.Intensity),
			light.WithIntensityBounds(spec.MinIntensity, spec.MaxIntensity),
			light.WithGain(spec.Gain),
			light.WithRange(spec.Range),
			light.WithRadius(spec.Radius),
			light.WithCastsShadows(spec.CastsShadows),
			light.WithVolumetric(spec.Volumetric),
		)
		c.lights = append(c.lights, l)
		c.Lights = append(c.Lights, l)
		if spec.Bound {
			c.targets = append(c.targets, control.Target{LightID: spec.ID, Gain: spec.Gain})
		}
	}
	return c, nil
}

// NewStore creates the light store that owns the composition's lights.
//
// Returns:
//   - *light.Store: the store, dirty so the first frame uploads
func (c *Composition) NewStore() *light.Store {
	return light.NewStore(c.lights)
}

// Targets returns the lights driven by the intensity control.
func (c *Composition) Targets() []control.Target {
	return append([]control.Target(nil), c.targets...)
}

// NewBinding binds cell to the composition's control targets.
//
// Parameters:
//   - cell: the UI-owned control cell
//
// Returns:
//   - *control.Binding: the binding for the frame loop
func (c *Composition) NewBinding(cell *control.Cell) *control.Binding {
	return control.NewBinding(cell, c.Control.Scale, c.targets...)
}

// Material looks up a material by name.
func (c *Composition) Material(name string) (Material, bool) {
	i, ok := c.materials[name]
	if !ok {
		return Material{}, false
	}
	return c.Materials[i], true
}
