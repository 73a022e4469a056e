package camera

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// Flag bits packed into GPUPostUniform.Flags.
const (
	GPUPostFlagHDR   uint32 = 1 << 0
	GPUPostFlagBloom uint32 = 1 << 1
	GPUPostFlagFXAA  uint32 = 1 << 2
)

// GPUCameraUniformSource is the WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (144 bytes, std430 aligned).
const GPUCameraUniformSource = `struct CameraUniform {
    view_proj: mat4x4<f32>,
    inv_proj: mat4x4<f32>,
    camera_position: vec3<f32>,
    _pad: f32,
};`

// GPUPostUniformSource is the WGSL definition of the PostUniform struct.
const GPUPostUniformSource = `struct PostUniform {
    flags: u32,
    tonemapping: u32,
    msaa_samples: u32,
    volumetric_ambient: f32,
};`

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer.
// Matches the WGSL CameraUniform struct layout exactly (see GPUCameraUniformSource).
// Size: 144 bytes (std430 / WGSL aligned).
type GPUCameraUniform struct {
	ViewProj       [16]float32 // offset   0: combined view-projection matrix (mat4x4<f32>)
	InvProj        [16]float32 // offset  64: inverse projection matrix (mat4x4<f32>)
	CameraPosition [3]float32  // offset 128: world-space camera position (vec3<f32>)
	_pad           float32     // offset 140: padding to 144 bytes
}

// NewGPUCameraUniform captures the camera's current matrices.
//
// Parameters:
//   - c: the camera to read
//
// Returns:
//   - GPUCameraUniform: the GPU representation
func NewGPUCameraUniform(c Camera) GPUCameraUniform {
	p := c.Position()
	return GPUCameraUniform{
		ViewProj:       c.ViewProjectionMatrix(),
		InvProj:        c.InverseProjectionMatrix(),
		CameraPosition: [3]float32{p.X(), p.Y(), p.Z()},
	}
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (144)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewProj[i]))
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.InvProj[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[128+i*4:], math.Float32bits(g.CameraPosition[i]))
	}
	return buf
}

// GPUPostUniform is the GPU-aligned post-processing settings block.
// Size: 16 bytes.
type GPUPostUniform struct {
	Flags             uint32  // offset  0: GPUPostFlag* bits
	Tonemapping       uint32  // offset  4: Tonemapping value
	MSAASamples       uint32  // offset  8: multisample count
	VolumetricAmbient float32 // offset 12: ambient scale inside fog
}

// NewGPUPostUniform converts post-processing settings into their GPU layout.
func NewGPUPostUniform(p PostProcessing) GPUPostUniform {
	g := GPUPostUniform{
		Tonemapping:       uint32(p.Tonemapping),
		MSAASamples:       uint32(max(p.MSAASamples, 1)),
		VolumetricAmbient: p.VolumetricAmbient,
	}
	if p.HDR {
		g.Flags |= GPUPostFlagHDR
	}
	if p.Bloom {
		g.Flags |= GPUPostFlagBloom
	}
	if p.FXAA {
		g.Flags |= GPUPostFlagFXAA
	}
	return g
}

// Size returns the size of the GPUPostUniform struct in bytes.
func (g *GPUPostUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUPostUniform struct into a byte buffer suitable for GPU upload.
func (g *GPUPostUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	binary.LittleEndian.PutUint32(buf[0:], g.Flags)
	binary.LittleEndian.PutUint32(buf[4:], g.Tonemapping)
	binary.LittleEndian.PutUint32(buf[8:], g.MSAASamples)
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(g.VolumetricAmbient))
	return buf
}
