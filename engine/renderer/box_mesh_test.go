package renderer

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-fog/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// vertexVec3 reads the vec3 at float offset field of vertex v.
func vertexVec3(buf []byte, v, field int) mgl32.Vec3 {
	var out mgl32.Vec3
	base := v*boxVertexStride + field*12
	for i := range 3 {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[base+i*4:]))
	}
	return out
}

func TestBuildBoxMesh(t *testing.T) {
	materials := []scene.Material{{Name: "red", BaseColor: [3]float32{0.6, 0.05, 0.05}}}
	tests := []struct {
		name     string
		box      scene.Box
		position mgl32.Vec3 // first corner of the +X face
		normal   mgl32.Vec3
		color    mgl32.Vec3
	}{
		{
			name:     "axis aligned",
			box:      scene.Box{Size: mgl32.Vec3{2, 2, 2}, Position: mgl32.Vec3{0, 1, 0}, Material: "red"},
			position: mgl32.Vec3{1, 0, 1},
			normal:   mgl32.Vec3{1, 0, 0},
			color:    mgl32.Vec3{0.6, 0.05, 0.05},
		},
		{
			name:     "rotated a quarter turn",
			box:      scene.Box{Size: mgl32.Vec3{1, 1, 1}, RotationY: 90, Material: "red"},
			position: mgl32.Vec3{0.5, -0.5, -0.5},
			normal:   mgl32.Vec3{0, 0, -1},
			color:    mgl32.Vec3{0.6, 0.05, 0.05},
		},
		{
			name:     "unknown material renders white",
			box:      scene.Box{Size: mgl32.Vec3{1, 1, 1}, Material: "missing"},
			position: mgl32.Vec3{0.5, -0.5, 0.5},
			normal:   mgl32.Vec3{1, 0, 0},
			color:    mgl32.Vec3{1, 1, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := buildBoxMesh([]scene.Box{tt.box}, materials)
			if m.indexCount != 36 || len(m.indices) != 36*4 {
				t.Fatalf("indices = %d (%d bytes), want 36", m.indexCount, len(m.indices))
			}
			if len(m.vertices) != 24*boxVertexStride {
				t.Fatalf("vertex bytes = %d, want %d", len(m.vertices), 24*boxVertexStride)
			}
			if got := vertexVec3(m.vertices, 0, 0); !got.ApproxEqualThreshold(tt.position, 1e-5) {
				t.Errorf("position = %v, want %v", got, tt.position)
			}
			if got := vertexVec3(m.vertices, 0, 1); !got.ApproxEqualThreshold(tt.normal, 1e-5) {
				t.Errorf("normal = %v, want %v", got, tt.normal)
			}
			if got := vertexVec3(m.vertices, 0, 2); got != tt.color {
				t.Errorf("color = %v, want %v", got, tt.color)
			}
		})
	}
}

func TestBuildBoxMeshIndexesEachBox(t *testing.T) {
	boxes := []scene.Box{
		{Size: mgl32.Vec3{1, 1, 1}},
		{Size: mgl32.Vec3{1, 1, 1}, Position: mgl32.Vec3{3, 0, 0}},
	}
	m := buildBoxMesh(boxes, nil)
	if m.indexCount != 72 {
		t.Fatalf("indexCount = %d, want 72", m.indexCount)
	}
	// the first index of the second box points past the first box's 24 vertices
	if got := binary.LittleEndian.Uint32(m.indices[36*4:]); got != 24 {
		t.Errorf("second box first index = %d, want 24", got)
	}
	if m := buildBoxMesh(nil, nil); m.indexCount != 0 || len(m.vertices) != 0 {
		t.Errorf("empty scene mesh = %+v", m)
	}
}

func TestBoxShaderDeclaresSceneBuffers(t *testing.T) {
	for _, want := range []string{
		"struct CameraUniform", "struct PostUniform", "struct LightHeader",
		"struct Light {", "struct FogUniform",
		"@group(0) @binding(0) var<uniform> camera: CameraUniform",
		"@group(0) @binding(1) var<storage, read> light_buffer: LightBuffer",
		"@group(0) @binding(2) var<uniform> fog: FogUniform",
		"@group(0) @binding(3) var<uniform> post: PostUniform",
	} {
		if !strings.Contains(boxShaderSource, want) {
			t.Errorf("box shader is missing %q", want)
		}
	}
	if boxVertexLayout.ArrayStride != boxVertexStride {
		t.Errorf("vertex stride = %d, want %d", boxVertexLayout.ArrayStride, boxVertexStride)
	}
}
