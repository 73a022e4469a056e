package renderer

import (
	"github.com/Carmen-Shannon/oxy-fog/engine/camera"
	"github.com/Carmen-Shannon/oxy-fog/engine/light"
	"github.com/Carmen-Shannon/oxy-fog/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraView is the per-frame camera data a renderer consumes.
type CameraView struct {
	View           mgl32.Mat4
	Projection     mgl32.Mat4
	ViewProjection mgl32.Mat4
	InvProjection  mgl32.Mat4
	Position       mgl32.Vec3
	Post           camera.PostProcessing
}

// NewCameraView captures the current state of c.
func NewCameraView(c camera.Camera) CameraView {
	return CameraView{
		View:           c.ViewMatrix(),
		Projection:     c.ProjectionMatrix(),
		ViewProjection: c.ViewProjectionMatrix(),
		InvProjection:  c.InverseProjectionMatrix(),
		Position:       c.Position(),
		Post:           c.PostProcessing(),
	}
}

// SceneSnapshot is the immutable view of one frame handed to a Renderer.
// Lights are value copies taken after the frame's intensity update, so every
// intensity lies inside its light's declared range.
type SceneSnapshot struct {
	Frame         uint64
	Camera        CameraView
	Materials     []scene.Material
	Boxes         []scene.Box
	Lights        []light.State
	Fog           scene.FogVolume
	Ambient       scene.Ambient
	ShadowMapSize int
	// LightsDirty is set when any light changed since the previous frame.
	LightsDirty bool
	// Control is the normalized slider position shown by the HUD.
	Control float32
	// Readout is the HUD text for this frame.
	Readout string
}
