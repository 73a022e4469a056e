package renderer

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-fog/engine/camera"
	"github.com/Carmen-Shannon/oxy-fog/engine/scene"
)

// GPUFogUniformSource is the WGSL definition of the FogUniform struct.
// Matches GPUFogUniform layout exactly (64 bytes).
const GPUFogUniformSource = `struct FogUniform {
    center: vec3<f32>,
    density_factor: f32,
    scale: vec3<f32>,
    absorption: f32,
    color: vec3<f32>,
    scattering: f32,
    anisotropy: f32,
    extinction: f32,
    _pad0: f32,
    _pad1: f32,
};`

// GPUFogUniform is the GPU-aligned representation of the fog volume.
// Size: 64 bytes.
type GPUFogUniform struct {
	Center        [3]float32 // offset  0
	DensityFactor float32    // offset 12
	Scale         [3]float32 // offset 16
	Absorption    float32    // offset 28
	Color         [3]float32 // offset 32
	Scattering    float32    // offset 44
	Anisotropy    float32    // offset 48
	Extinction    float32    // offset 52
	_pad          [2]float32 // offset 56
}

// NewGPUFogUniform converts a fog volume into its GPU layout.
func NewGPUFogUniform(f scene.FogVolume) GPUFogUniform {
	return GPUFogUniform{
		Center:        [3]float32(f.Center),
		DensityFactor: f.DensityFactor,
		Scale:         [3]float32(f.Scale),
		Absorption:    f.Absorption,
		Color:         f.Color,
		Scattering:    f.Scattering,
		Anisotropy:    f.Anisotropy,
		Extinction:    f.Extinction(),
	}
}

// Size returns the size of the GPUFogUniform struct in bytes.
func (g *GPUFogUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFogUniform struct into a byte buffer suitable for GPU upload.
func (g *GPUFogUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	put := func(off int, v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
	}
	for i := range 3 {
		put(i*4, g.Center[i])
		put(16+i*4, g.Scale[i])
		put(32+i*4, g.Color[i])
	}
	put(12, g.DensityFactor)
	put(28, g.Absorption)
	put(44, g.Scattering)
	put(48, g.Anisotropy)
	put(52, g.Extinction)
	return buf
}

// cameraUniform converts a captured camera view into the camera uniform layout.
func cameraUniform(v CameraView) camera.GPUCameraUniform {
	return camera.GPUCameraUniform{
		ViewProj:       v.ViewProjection,
		InvProj:        v.InvProjection,
		CameraPosition: [3]float32(v.Position),
	}
}
