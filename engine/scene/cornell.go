package scene

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-fog/engine/camera"
	"github.com/Carmen-Shannon/oxy-fog/engine/control"
	"github.com/go-gl/mathgl/mgl32"
)

// Cornell box dimensions in meters.
const (
	RoomWidth     float32 = 2.0
	RoomHeight    float32 = 2.0
	RoomDepth     float32 = 2.5
	WallThickness float32 = 0.05

	PanelWidth float32 = 0.70
	PanelDepth float32 = 0.70
)

// Cornell box lighting defaults.
const (
	DefaultLightGrid                 = 2
	DefaultCenterIntensity   float32 = 4000.0
	DefaultOtherIntensity    float32 = 2000.0
	DefaultLightRange        float32 = 30.0
	DefaultLightRadius       float32 = 0.25
	DefaultLightDrop         float32 = 0.12
	DefaultScaleMin          float32 = 0.1
	DefaultScaleMax          float32 = 14.0
	DefaultInitialControl    float32 = 0.25
	DefaultFogDensity        float32 = 0.001
	DefaultFogAbsorption     float32 = 0.18
	DefaultFogScattering     float32 = 0.3
	DefaultFogAnisotropy     float32 = 0.8
	DefaultFogOversize       float32 = 1.05
	DefaultAmbientBrightness float32 = 0.015
	DefaultShadowMapSize             = 2048
	DefaultCameraMSAA                = 2
	DefaultVolumetricAmbient float32 = 0.0
)

// Light tags.
const (
	TagCenter  = "center"
	TagCeiling = "ceiling"
)

// Material names used by the Cornell box.
const (
	MaterialWhite = "white"
	MaterialRed   = "red"
	MaterialGreen = "green"
	MaterialPanel = "panel"
)

// LightColor is the warm white of the ceiling lights.
var LightColor = [3]float32{1.0, 0.95, 0.8}

type cornellBuilder struct {
	grid          int
	scaleMin      float32
	scaleMax      float32
	initial       float32
	fogDensity    float32
	shadowMapSize int
	extra         []LightSpec
}

// NewCornellBox declares the fog-filled Cornell box: an open-front room with
// red and green side walls, a ceiling panel, two rotated props and a grid of
// volumetric ceiling lights driven by the intensity control.
//
// Parameters:
//   - opts: functional options overriding the defaults
//
// Returns:
//   - Descriptor: the scene declaration
func NewCornellBox(opts ...DescriptorBuilderOption) Descriptor {
	b := &cornellBuilder{
		grid:          DefaultLightGrid,
		scaleMin:      DefaultScaleMin,
		scaleMax:      DefaultScaleMax,
		initial:       DefaultInitialControl,
		fogDensity:    DefaultFogDensity,
		shadowMapSize: DefaultShadowMapSize,
	}
	for _, opt := range opts {
		opt(b)
	}

	d := Descriptor{
		Materials:     cornellMaterials(),
		Boxes:         cornellBoxes(),
		Camera:        cornellCamera(),
		Lights:        b.lights(),
		ShadowMapSize: b.shadowMapSize,
		Control: ControlSpec{
			Scale:   control.Range{Min: b.scaleMin, Max: b.scaleMax},
			Initial: b.initial,
		},
		Fog: FogVolume{
			DensityFactor: b.fogDensity,
			Absorption:    DefaultFogAbsorption,
			Scattering:    DefaultFogScattering,
			Anisotropy:    DefaultFogAnisotropy,
			Color:         LightColor,
			Center:        mgl32.Vec3{0, RoomHeight * 0.5, 0},
			Scale:         mgl32.Vec3{RoomWidth, RoomHeight, RoomDepth}.Mul(DefaultFogOversize),
		},
		Ambient: Ambient{Color: [3]float32{1, 1, 1}, Brightness: DefaultAmbientBrightness},
	}
	d.Lights = append(d.Lights, b.extra...)
	return d
}

func cornellMaterials() []Material {
	return []Material{
		{Name: MaterialWhite, BaseColor: [3]float32{0.96, 0.96, 0.96}, Roughness: 1},
		{Name: MaterialRed, BaseColor: [3]float32{0.63, 0.065, 0.05}, Roughness: 1},
		{Name: MaterialGreen, BaseColor: [3]float32{0.14, 0.45, 0.091}, Roughness: 1},
		{Name: MaterialPanel, BaseColor: [3]float32{0.98, 0.98, 0.98}, Roughness: 1},
	}
}

func cornellBoxes() []Box {
	const t = WallThickness
	w, h, d := RoomWidth, RoomHeight, RoomDepth
	return []Box{
		{Name: "floor", Size: mgl32.Vec3{w, t, d}, Position: mgl32.Vec3{0, t * 0.5, 0}, Material: MaterialWhite},
		{Name: "ceiling", Size: mgl32.Vec3{w, t, d}, Position: mgl32.Vec3{0, h - t*0.5, 0}, Material: MaterialWhite},
		{Name: "back_wall", Size: mgl32.Vec3{w, h, t}, Position: mgl32.Vec3{0, h * 0.5, -d*0.5 + t*0.5}, Material: MaterialWhite},
		{Name: "left_wall", Size: mgl32.Vec3{t, h, d}, Position: mgl32.Vec3{-w*0.5 + t*0.5, h * 0.5, 0}, Material: MaterialRed},
		{Name: "right_wall", Size: mgl32.Vec3{t, h, d}, Position: mgl32.Vec3{w*0.5 - t*0.5, h * 0.5, 0}, Material: MaterialGreen},
		{Name: "ceiling_panel", Size: mgl32.Vec3{PanelWidth, t * 0.5, PanelDepth}, Position: mgl32.Vec3{0, h - t - 0.001, 0}, Material: MaterialPanel},
		{Name: "short_box", Size: mgl32.Vec3{0.6, 0.6, 0.6}, Position: mgl32.Vec3{-0.42, t + 0.3, -0.55}, RotationY: 15, Material: MaterialWhite},
		{Name: "tall_box", Size: mgl32.Vec3{0.5, 1.2, 0.5}, Position: mgl32.Vec3{0.52, t + 0.6, -0.32}, RotationY: -12, Material: MaterialWhite},
	}
}

func cornellCamera() camera.Settings {
	return camera.Settings{
		Position: mgl32.Vec3{0, 1.0, 3.2},
		Target:   mgl32.Vec3{0, 0.9, 0},
		Up:       mgl32.Vec3{0, 1, 0},
		Post: camera.PostProcessing{
			HDR:               true,
			Tonemapping:       camera.TonemappingAcesFitted,
			Bloom:             true,
			MSAASamples:       DefaultCameraMSAA,
			FXAA:              true,
			VolumetricAmbient: DefaultVolumetricAmbient,
		},
	}
}

// lights lays the grid across the ceiling panel. The light at grid index
// (grid/2, grid/2) is the center light and gets the brighter base.
func (b *cornellBuilder) lights() []LightSpec {
	n := b.grid
	if n < 1 {
		return nil
	}
	var stepX, stepZ float32
	startX, startZ := float32(0), float32(0)
	if n > 1 {
		stepX = PanelWidth / float32(n-1)
		stepZ = PanelDepth / float32(n-1)
		startX = -PanelWidth * 0.5
		startZ = -PanelDepth * 0.5
	}
	y := RoomHeight - DefaultLightDrop
	initialScale := b.scaleMin + b.initial*(b.scaleMax-b.scaleMin)

	specs := make([]LightSpec, 0, n*n)
	for ix := range n {
		for iz := range n {
			center := ix == n/2 && iz == n/2
			base, tag := DefaultOtherIntensity, TagCeiling
			if center {
				base, tag = DefaultCenterIntensity, TagCenter
			}
			specs = append(specs, LightSpec{
				ID:           len(specs),
				Tag:          tag,
				Position:     mgl32.Vec3{startX + float32(ix)*stepX, y, startZ + float32(iz)*stepZ},
				Color:        LightColor,
				Intensity:    base * initialScale,
				MinIntensity: base * b.scaleMin,
				MaxIntensity: base * b.scaleMax,
				Gain:         base,
				Range:        DefaultLightRange,
				Radius:       DefaultLightRadius,
				CastsShadows: true,
				Volumetric:   true,
				Bound:        true,
			})
		}
	}
	return specs
}

// String summarizes the descriptor for logging.
func (d Descriptor) String() string {
	return fmt.Sprintf("scene{boxes=%d lights=%d fog_extinction=%.5f shadow_map=%d}",
		len(d.Boxes), len(d.Lights), d.Fog.Extinction(), d.ShadowMapSize)
}
