package light

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// MaxGPULights is the maximum number of lights marshaled into the GPU storage
// buffer per frame. The light buffer is allocated once at this capacity.
const MaxGPULights = 64

// Flag bits packed into GPULight.Flags.
const (
	GPUFlagCastsShadows uint32 = 1 << 0
	GPUFlagVolumetric   uint32 = 1 << 1
)

// GPULightSource is the WGSL definition of the Light struct.
// Matches GPULight layout exactly (48 bytes, std430 aligned).
const GPULightSource = `struct Light {
    position: vec3<f32>,
    intensity: f32,
    color: vec3<f32>,
    light_range: f32,
    radius: f32,
    flags: u32,
    _pad0: u32,
    _pad1: u32,
};`

// GPULight is the GPU-aligned representation of a single point light.
// Size: 48 bytes (std430 / WGSL aligned).
type GPULight struct {
	Position  [3]float32 // offset  0: world-space position
	Intensity float32    // offset 12: luminous power
	Color     [3]float32 // offset 16: RGB color
	Range     float32    // offset 28: attenuation cutoff distance
	Radius    float32    // offset 32: emitter radius
	Flags     uint32     // offset 36: GPUFlag* bits
	_pad      [2]uint32  // offset 40: padding to 48-byte alignment
}

// NewGPULight converts a light state into its GPU layout.
//
// Parameters:
//   - s: the light state to convert
//
// Returns:
//   - GPULight: the GPU representation
func NewGPULight(s State) GPULight {
	g := GPULight{
		Position:  [3]float32{s.Position.X(), s.Position.Y(), s.Position.Z()},
		Intensity: s.Intensity,
		Color:     s.Color,
		Range:     s.Range,
		Radius:    s.Radius,
	}
	if s.CastsShadows {
		g.Flags |= GPUFlagCastsShadows
	}
	if s.Volumetric {
		g.Flags |= GPUFlagVolumetric
	}
	return g
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (48)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, 48)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Intensity))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Color[2]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Range))
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.Radius))
	binary.LittleEndian.PutUint32(buf[36:40], g.Flags)
	// 40..48 padding stays zero
	return buf
}

// GPULightHeaderSource is the WGSL definition of the LightHeader struct.
const GPULightHeaderSource = `struct LightHeader {
    ambient: vec3<f32>,
    light_count: u32,
};`

// GPULightHeader is the header prepended to the light storage buffer.
// Size: 16 bytes (vec3 + u32, std430 aligned).
type GPULightHeader struct {
	AmbientColor [3]float32 // offset 0: ambient RGB premultiplied by brightness
	LightCount   uint32     // offset 12: number of lights following the header
}

// Size returns the size of the GPULightHeader struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (h *GPULightHeader) Size() int {
	return int(unsafe.Sizeof(*h))
}

// Marshal serializes the GPULightHeader struct into a byte buffer suitable for
// GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload
func (h *GPULightHeader) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(h.AmbientColor[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(h.AmbientColor[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(h.AmbientColor[2]))
	binary.LittleEndian.PutUint32(buf[12:16], h.LightCount)
	return buf
}

// MarshalLightBuffer packs a header followed by up to MaxGPULights lights.
//
// Parameters:
//   - states: the light states in upload order
//   - ambient: ambient RGB, already scaled by brightness
//
// Returns:
//   - []byte: 16 + 48*n bytes
func MarshalLightBuffer(states []State, ambient [3]float32) []byte {
	n := len(states)
	if n > MaxGPULights {
		n = MaxGPULights
	}
	header := GPULightHeader{AmbientColor: ambient, LightCount: uint32(n)}
	buf := make([]byte, 0, 16+48*n)
	buf = append(buf, header.Marshal()...)
	for i := 0; i < n; i++ {
		g := NewGPULight(states[i])
		buf = append(buf, g.Marshal()...)
	}
	return buf
}
