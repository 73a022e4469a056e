package camera

import "github.com/go-gl/mathgl/mgl32"

type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the eye position.
//
// Parameters:
//   - p: world-space eye position
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(p mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = p
	}
}

// WithTarget sets the look-at point.
//
// Parameters:
//   - t: world-space point to look at
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's target
func WithTarget(t mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = t
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - up: up vector
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(up mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = up
	}
}

// WithFov sets the camera's vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithPostProcessing sets the post-processing chain.
//
// Parameters:
//   - p: the post-processing settings
//
// Returns:
//   - CameraBuilderOption: functional option to set post-processing
func WithPostProcessing(p PostProcessing) CameraBuilderOption {
	return func(c *cameraImpl) {
		if p.MSAASamples < 1 {
			p.MSAASamples = 1
		}
		c.post = p
	}
}

// WithSettings applies every field of s. Zero Up, Fov, Near and Far keep the defaults.
//
// Parameters:
//   - s: the camera settings
//
// Returns:
//   - CameraBuilderOption: functional option applying the settings
func WithSettings(s Settings) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = s.Position
		c.target = s.Target
		if s.Up != (mgl32.Vec3{}) {
			c.up = s.Up
		}
		if s.Fov > 0 {
			c.fov = s.Fov
		}
		if s.Near > 0 {
			c.near = s.Near
		}
		if s.Far > 0 {
			c.far = s.Far
		}
		WithPostProcessing(s.Post)(c)
	}
}
