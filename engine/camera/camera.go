package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3

	fov    float32 // radians
	aspect float32
	near   float32
	far    float32

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4

	controller CameraController
}

// Camera is a perspective camera looking from a position toward a target.
// When a CameraController is attached, Update copies its position and target
// into the camera; otherwise the camera is moved with SetPosition and LookAt.
type Camera interface {
	// Position returns the eye position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: the target
	Target() mgl32.Vec3

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ViewMatrix returns the current view matrix (column-major).
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix (column-major).
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	ViewProjectionMatrix() mgl32.Mat4

	// Controller returns the attached CameraController, or nil.
	Controller() CameraController

	// Update pulls position and target from the attached controller, if any,
	// and recomputes matrices. Called once per frame by the frame loop.
	Update()

	// SetPosition moves the eye and recomputes matrices.
	//
	// Parameters:
	//   - x, y, z: the new position
	SetPosition(x, y, z float32)

	// LookAt points the camera at a world-space point and recomputes matrices.
	//
	// Parameters:
	//   - x, y, z: the new target
	LookAt(x, y, z float32)

	// SetUp sets the camera's up vector.
	//
	// Parameters:
	//   - x, y, z: up vector components
	SetUp(x, y, z float32)

	// SetFov sets the field of view in radians and recomputes matrices.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	// Non-positive values are ignored.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// SetController attaches a CameraController to the camera. Pass nil to detach.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera at (0, 0, 5) looking at the origin with a 75° field of view.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		position: mgl32.Vec3{0, 0, 5},
		up:       mgl32.Vec3{0, 1, 0},
		fov:      75.0 * (math.Pi / 180.0),
		aspect:   1.0,
		near:     0.1,
		far:      1000.0,
	}
	for _, option := range options {
		option(c)
	}
	if c.controller != nil {
		c.position = c.controller.Position()
		c.target = c.controller.Target()
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller != nil {
		c.position = c.controller.Position()
		c.target = c.controller.Target()
	}
	c.updateMatrices()
}

func (c *cameraImpl) SetPosition(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = mgl32.Vec3{x, y, z}
	c.updateMatrices()
}

func (c *cameraImpl) LookAt(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = mgl32.Vec3{x, y, z}
	c.updateMatrices()
}

func (c *cameraImpl) SetUp(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = mgl32.Vec3{x, y, z}
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if aspect <= 0 {
		return
	}
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
}

// updateMatrices recalculates the view, projection and view-projection matrices.
// A degenerate view (eye on target) keeps the previous view matrix.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	if c.position.Sub(c.target).Len() > 1e-6 {
		c.viewMatrix = mgl32.LookAtV(c.position, c.target, c.up)
	}
	c.projectionMatrix = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
