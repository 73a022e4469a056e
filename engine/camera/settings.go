package camera

import "github.com/go-gl/mathgl/mgl32"

// Tonemapping selects the HDR to display curve.
type Tonemapping uint32

const (
	TonemappingNone Tonemapping = iota
	TonemappingReinhard
	TonemappingAcesFitted
)

func (t Tonemapping) String() string {
	switch t {
	case TonemappingNone:
		return "none"
	case TonemappingReinhard:
		return "reinhard"
	case TonemappingAcesFitted:
		return "aces_fitted"
	default:
		return "unknown"
	}
}

// PostProcessing is the chain applied to the camera's HDR output.
type PostProcessing struct {
	HDR         bool
	Tonemapping Tonemapping
	Bloom       bool
	// MSAASamples is the multisample count; 1 disables MSAA.
	MSAASamples int
	FXAA        bool
	// VolumetricAmbient scales the ambient term inside fog volumes.
	VolumetricAmbient float32
}

// Settings is the declarative form of a camera used by scene descriptors.
// Fov is the vertical field of view in radians; zero means the camera default.
type Settings struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	Fov      float32
	Near     float32
	Far      float32
	Post     PostProcessing
}
