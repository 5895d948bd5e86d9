package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraBuilderOption is a functional option for configuring a Camera.
type CameraBuilderOption func(*cameraImpl)

// WithFov sets the vertical field of view in degrees.
//
// Parameters:
//   - degrees: field of view in degrees
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithFov(degrees float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = mgl32.DegToRad(degrees)
	}
}

// WithAspect sets the aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio
//
// Returns:
//   - CameraBuilderOption: option function to apply
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
//   - CameraBuilderOption: option function to apply
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
//   - CameraBuilderOption: option function to apply
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithPosition sets the initial eye position.
//
// Parameters:
//   - x, y, z: the position
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = mgl32.Vec3{x, y, z}
	}
}

// WithTarget sets the initial look-at point.
//
// Parameters:
//   - x, y, z: the target
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithTarget(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = mgl32.Vec3{x, y, z}
	}
}

// WithController attaches a CameraController to the camera.
//
// Parameters:
//   - ctrl: the controller to attach
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = mgl32.Vec3{x, y, z}
	}
}
