package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-scenes/common"
)

// DefaultDamping matches the easing of common web orbit controls.
const DefaultDamping = 0.05

// DefaultSettleEpsilon is the angular distance, in radians, below which an angle snaps to its goal.
const DefaultSettleEpsilon = 1e-4

// orbitControllerImpl implements OrbitController.
type orbitControllerImpl struct {
	mu *sync.Mutex

	// Camera position (computed from target + spherical coords)
	position mgl32.Vec3
	target   mgl32.Vec3

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane

	goalAzimuth   float32
	goalElevation float32

	// Orbit constraints
	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	damping          float32
	settleEpsilon    float32
	mouseSensitivity float32
	zoomSpeed        float32

	dragging     bool
	lastX, lastY float32
}

// Compile-time interface compliance check
var _ OrbitController = &orbitControllerImpl{}

// NewOrbitController creates an orbit controller looking at the origin from radius 5 on +Z.
// WithPosition derives the spherical coordinates from an eye position instead.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(options ...OrbitControllerBuilderOption) OrbitController {
	oc := &orbitControllerImpl{
		mu:     &sync.Mutex{},
		radius: 5,

		minRadius:    0.5,
		maxRadius:    1000,
		minElevation: -math.Pi/2 + 0.01,
		maxElevation: math.Pi/2 - 0.01,

		damping:          DefaultDamping,
		settleEpsilon:    DefaultSettleEpsilon,
		mouseSensitivity: 0.005,
		zoomSpeed:        0.5,
	}
	for _, option := range options {
		option(oc)
	}

	if oc.damping <= 0 || oc.damping >= 1 {
		oc.damping = DefaultDamping
	}
	oc.radius = mgl32.Clamp(oc.radius, oc.minRadius, oc.maxRadius)
	oc.elevation = mgl32.Clamp(oc.elevation, oc.minElevation, oc.maxElevation)
	oc.goalAzimuth = oc.azimuth
	oc.goalElevation = oc.elevation
	oc.updatePosition()
	return oc
}

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (oc *orbitControllerImpl) updatePosition() {
	cosElev := float32(math.Cos(float64(oc.elevation)))
	sinElev := float32(math.Sin(float64(oc.elevation)))
	cosAzim := float32(math.Cos(float64(oc.azimuth)))
	sinAzim := float32(math.Sin(float64(oc.azimuth)))

	oc.position[0] = oc.target[0] + oc.radius*cosElev*sinAzim
	oc.position[1] = oc.target[1] + oc.radius*sinElev
	oc.position[2] = oc.target[2] + oc.radius*cosElev*cosAzim
}

// approach moves cur toward goal by the damping factor, snapping inside epsilon.
func approach(cur, goal, damping, epsilon float32) float32 {
	diff := goal - cur
	if float32(math.Abs(float64(diff))) <= epsilon {
		return goal
	}
	next := cur + diff*damping
	if next == cur {
		// step below float32 resolution
		return goal
	}
	return next
}

func (oc *orbitControllerImpl) Update() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if oc.azimuth == oc.goalAzimuth && oc.elevation == oc.goalElevation {
		return false
	}
	oc.azimuth = approach(oc.azimuth, oc.goalAzimuth, oc.damping, oc.settleEpsilon)
	oc.elevation = approach(oc.elevation, oc.goalElevation, oc.damping, oc.settleEpsilon)
	oc.updatePosition()
	return true
}

func (oc *orbitControllerImpl) Position() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.position
}

func (oc *orbitControllerImpl) Target() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

func (oc *orbitControllerImpl) SetTarget(x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = mgl32.Vec3{x, y, z}
	oc.updatePosition()
}

func (oc *orbitControllerImpl) Radius() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.radius
}

func (oc *orbitControllerImpl) SetRadius(radius float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.radius = mgl32.Clamp(radius, oc.minRadius, oc.maxRadius)
	oc.updatePosition()
}

func (oc *orbitControllerImpl) Zoom(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.radius = mgl32.Clamp(oc.radius-delta*oc.zoomSpeed, oc.minRadius, oc.maxRadius)
	oc.updatePosition()
}

func (oc *orbitControllerImpl) Azimuth() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.azimuth
}

func (oc *orbitControllerImpl) Elevation() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.elevation
}

func (oc *orbitControllerImpl) GoalAzimuth() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.goalAzimuth
}

func (oc *orbitControllerImpl) GoalElevation() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.goalElevation
}

func (oc *orbitControllerImpl) SetAzimuth(azimuth float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.azimuth = common.WrapAngle(azimuth)
	oc.goalAzimuth = oc.azimuth
	oc.updatePosition()
}

func (oc *orbitControllerImpl) SetElevation(elevation float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.elevation = mgl32.Clamp(elevation, oc.minElevation, oc.maxElevation)
	oc.goalElevation = oc.elevation
	oc.updatePosition()
}

func (oc *orbitControllerImpl) RotateBy(dAzimuth, dElevation float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.rotateBy(dAzimuth, dElevation)
}

// rotateBy offsets the goal angles. Caller must hold the mutex.
func (oc *orbitControllerImpl) rotateBy(dAzimuth, dElevation float32) {
	oc.goalAzimuth += dAzimuth
	oc.goalElevation = mgl32.Clamp(oc.goalElevation+dElevation, oc.minElevation, oc.maxElevation)
	oc.wrapAzimuth()
}

// wrapAzimuth keeps the goal azimuth in [0, 2π) and shifts the current azimuth by the same
// turn count, so the remaining distance is unchanged. Caller must hold the mutex.
func (oc *orbitControllerImpl) wrapAzimuth() {
	wrapped := common.WrapAngle(oc.goalAzimuth)
	if wrapped == oc.goalAzimuth {
		return
	}
	turns := float32(math.Round(float64(oc.goalAzimuth-wrapped) / (2 * math.Pi)))
	oc.azimuth -= turns * 2 * math.Pi
	oc.goalAzimuth = wrapped
}

func (oc *orbitControllerImpl) BeginDrag(x, y float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.dragging = true
	oc.lastX, oc.lastY = x, y
}

func (oc *orbitControllerImpl) Drag(x, y float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.dragging {
		return
	}
	dx, dy := x-oc.lastX, y-oc.lastY
	oc.lastX, oc.lastY = x, y
	oc.rotateBy(dx*oc.mouseSensitivity, -dy*oc.mouseSensitivity)
}

func (oc *orbitControllerImpl) EndDrag() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.dragging = false
}

func (oc *orbitControllerImpl) Dragging() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.dragging
}

func (oc *orbitControllerImpl) Settled() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.azimuth == oc.goalAzimuth && oc.elevation == oc.goalElevation
}

func (oc *orbitControllerImpl) Damping() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.damping
}

func (oc *orbitControllerImpl) MouseSensitivity() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.mouseSensitivity
}
