package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-fog/engine/control"
	"github.com/Carmen-Shannon/oxy-fog/engine/light"
	"github.com/go-gl/mathgl/mgl32"
)

func TestCornellBoxBuilds(t *testing.T) {
	comp, err := NewCornellBox().Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := len(comp.Lights); got != 4 {
		t.Fatalf("len(Lights) = %d, want 4", got)
	}
	centers := 0
	for _, l := range comp.Lights {
		if l.Tag() == TagCenter {
			centers++
			if l.MinIntensity() != 400 || l.MaxIntensity() != 56000 {
				t.Errorf("center bounds = [%v, %v], want [400, 56000]", l.MinIntensity(), l.MaxIntensity())
			}
		}
		if y := l.Position().Y(); math.Abs(float64(y-(RoomHeight-DefaultLightDrop))) > 1e-6 {
			t.Errorf("light %d at y = %v", l.ID(), y)
		}
		if !l.CastsShadows() || !l.Volumetric() {
			t.Errorf("light %d should cast shadows and be volumetric", l.ID())
		}
	}
	if centers != 1 {
		t.Errorf("center lights = %d, want 1", centers)
	}
	if got := len(comp.Targets()); got != 4 {
		t.Errorf("control targets = %d, want 4", got)
	}
	if comp.ShadowMapSize != 2048 {
		t.Errorf("ShadowMapSize = %d", comp.ShadowMapSize)
	}
	if _, ok := comp.Material(MaterialRed); !ok {
		t.Error("red material missing")
	}
}

func TestCornellLightsStartAtInitialControl(t *testing.T) {
	comp, err := NewCornellBox().Build()
	if err != nil {
		t.Fatal(err)
	}
	b := comp.NewBinding(control.NewCell(DefaultInitialControl))
	scale := b.Read()
	for _, l := range comp.Lights {
		want := l.Gain() * scale
		if math.Abs(float64(l.Intensity()-want)) > 1e-2 {
			t.Errorf("light %d intensity = %v, want %v", l.ID(), l.Intensity(), want)
		}
	}
}

func TestFogVolume(t *testing.T) {
	fog := NewCornellBox().Fog
	want := DefaultFogDensity * (DefaultFogAbsorption + DefaultFogScattering)
	if fog.Extinction() != want {
		t.Errorf("Extinction() = %v, want %v", fog.Extinction(), want)
	}
	for _, p := range []mgl32.Vec3{{0, 0, 0}, {0, RoomHeight, 0}, {RoomWidth / 2, 1, RoomDepth / 2}} {
		if !fog.Contains(p) {
			t.Errorf("fog should contain room point %v", p)
		}
	}
	if fog.Contains(mgl32.Vec3{0, 5, 0}) {
		t.Error("fog contains a point above the room")
	}
}

func TestBoxTransformPlacesCenter(t *testing.T) {
	b := Box{Size: mgl32.Vec3{0.6, 0.6, 0.6}, Position: mgl32.Vec3{-0.42, 0.35, -0.55}, RotationY: 15}
	c := b.Transform().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !c.Vec3().ApproxEqual(b.Position) {
		t.Errorf("origin maps to %v, want %v", c.Vec3(), b.Position)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	d := NewCornellBox()
	a, err := d.Build()
	if err != nil {
		t.Fatal(err)
	}
	b, err := d.Build()
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Lights {
		if a.Lights[i].State() != b.Lights[i].State() {
			t.Errorf("light %d differs between builds", i)
		}
	}
}

func TestBuildRejectsInvalidDescriptors(t *testing.T) {
	valid := LightSpec{ID: 99, Intensity: 10, MinIntensity: 1, MaxIntensity: 100, Range: 5}

	tests := []struct {
		name  string
		desc  func() Descriptor
		field string
	}{
		{
			name: "negative intensity",
			desc: func() Descriptor {
				l := valid
				l.Intensity = -5
				return NewCornellBox(WithLight(l))
			},
			field: "lights[4].intensity",
		},
		{
			name: "intensity outside bounds",
			desc: func() Descriptor {
				l := valid
				l.Intensity = 1000
				return NewCornellBox(WithLight(l))
			},
			field: "lights[4].intensity",
		},
		{
			name: "inverted bounds",
			desc: func() Descriptor {
				l := valid
				l.MaxIntensity = 0.5
				return NewCornellBox(WithLight(l))
			},
			field: "lights[4].max_intensity",
		},
		{
			name: "duplicate id",
			desc: func() Descriptor {
				l := valid
				l.ID = 0
				return NewCornellBox(WithLight(l))
			},
			field: "lights[4].id",
		},
		{
			name: "bound light without gain",
			desc: func() Descriptor {
				l := valid
				l.Bound = true
				return NewCornellBox(WithLight(l))
			},
			field: "lights[4].gain",
		},
		{
			name:  "negative fog density",
			desc:  func() Descriptor { return NewCornellBox(WithFogDensity(-1)) },
			field: "fog.density_factor",
		},
		{
			name: "anisotropy out of range",
			desc: func() Descriptor {
				d := NewCornellBox()
				d.Fog.Anisotropy = 1.5
				return d
			},
			field: "fog.anisotropy",
		},
		{
			name:  "zero shadow map",
			desc:  func() Descriptor { return NewCornellBox(WithShadowMapSize(0)) },
			field: "shadow_map_size",
		},
		{
			name: "unknown material",
			desc: func() Descriptor {
				d := NewCornellBox()
				d.Boxes[0].Material = "chrome"
				return d
			},
			field: "boxes[0].material",
		},
		{
			name:  "more lights than the light buffer holds",
			desc:  func() Descriptor { return NewCornellBox(WithLightGrid(9)) },
			field: "lights",
		},
		{
			name: "NaN range",
			desc: func() Descriptor {
				l := valid
				l.Range = float32(math.NaN())
				return NewCornellBox(WithLight(l))
			},
			field: "lights[4].range",
		},
		{
			name: "NaN radius",
			desc: func() Descriptor {
				l := valid
				l.Radius = float32(math.NaN())
				return NewCornellBox(WithLight(l))
			},
			field: "lights[4].radius",
		},
		{
			name:  "inverted control scale",
			desc:  func() Descriptor { return NewCornellBox(WithIntensityScale(2, 1)) },
			field: "lights[0].max_intensity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp, err := tt.desc().Build()
			if err == nil {
				t.Fatal("Build() succeeded, want error")
			}
			if comp != nil {
				t.Error("Build() returned a composition with an error")
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("errors.Is(err, ErrConfiguration) = false for %v", err)
			}
			var cfg *ConfigurationError
			if !errors.As(err, &cfg) {
				t.Fatalf("error %T is not *ConfigurationError", err)
			}
			if cfg.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfg.Field, tt.field)
			}
		})
	}
}

func TestLightGridOption(t *testing.T) {
	comp, err := NewCornellBox(WithLightGrid(3)).Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(comp.Lights) != 9 {
		t.Fatalf("len(Lights) = %d, want 9", len(comp.Lights))
	}
	center := comp.Lights[4]
	if center.Tag() != TagCenter {
		t.Errorf("light 4 tag = %q, want center", center.Tag())
	}
	if p := center.Position(); math.Abs(float64(p.X())) > 1e-6 || math.Abs(float64(p.Z())) > 1e-6 {
		t.Errorf("3x3 center light at %v, want x = z = 0", p)
	}
}

func TestLightGridFillsLightBuffer(t *testing.T) {
	comp, err := NewCornellBox(WithLightGrid(8)).Build()
	if err != nil {
		t.Fatalf("8x8 grid: Build() error = %v", err)
	}
	if len(comp.Lights) != light.MaxGPULights {
		t.Errorf("len(Lights) = %d, want %d", len(comp.Lights), light.MaxGPULights)
	}
}
