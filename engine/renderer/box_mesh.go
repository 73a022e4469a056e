package renderer

import (
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-fog/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// boxVertexStride is the byte size of one box vertex: position, normal and
// albedo, three vec3<f32> each.
const boxVertexStride = 36

// boxFaces lists the unit cube faces as (normal, four corners in CCW order
// seen from outside).
var boxFaces = [6]struct {
	normal  mgl32.Vec3
	corners [4]mgl32.Vec3
}{
	{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}}},
	{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}}},
	{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}}},
	{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}},
	{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}},
	{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}},
}

// boxMesh is the world-space triangle list for every box of a scene.
type boxMesh struct {
	vertices   []byte
	indices    []byte
	indexCount int
}

// buildBoxMesh bakes each box transform into world-space vertices so a single
// draw covers the whole room. Boxes whose material is unknown render white.
func buildBoxMesh(boxes []scene.Box, materials []scene.Material) boxMesh {
	albedo := make(map[string][3]float32, len(materials))
	for _, m := range materials {
		albedo[m.Name] = m.BaseColor
	}

	m := boxMesh{
		vertices: make([]byte, 0, len(boxes)*24*boxVertexStride),
		indices:  make([]byte, 0, len(boxes)*36*4),
	}
	var base uint32
	for _, b := range boxes {
		color, ok := albedo[b.Material]
		if !ok {
			color = [3]float32{1, 1, 1}
		}
		model := b.Transform()
		rot := b.Rotation()
		for _, f := range boxFaces {
			n := rot.Rotate(f.normal)
			for _, c := range f.corners {
				p := model.Mul4x1(c.Vec4(1)).Vec3()
				m.vertices = appendVec3(m.vertices, p[0], p[1], p[2])
				m.vertices = appendVec3(m.vertices, n[0], n[1], n[2])
				m.vertices = appendVec3(m.vertices, color[0], color[1], color[2])
			}
			for _, i := range [6]uint32{0, 1, 2, 0, 2, 3} {
				m.indices = binary.LittleEndian.AppendUint32(m.indices, base+i)
			}
			base += 4
			m.indexCount += 6
		}
	}
	return m
}

func appendVec3(buf []byte, x, y, z float32) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(x))
	buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(y))
	return binary.LittleEndian.AppendUint32(buf, math.Float32bits(z))
}
