package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController drives a Camera's position and target.
// The frame loop calls Update once per tick, then Camera.Update copies the result.
type CameraController interface {
	// Position returns the controller's current eye position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Target returns the controller's current look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: the target
	Target() mgl32.Vec3

	// Update advances the controller by one frame tick.
	//
	// Returns:
	//   - bool: true if the position changed this tick
	Update() bool
}

// OrbitController orbits the eye around a fixed target using spherical coordinates.
//
// Pointer drags and RotateBy move the goal angles; the current angles chase their goals
// on each Update by a damping factor d in (0, 1): cur += (goal - cur) * d. The remaining
// distance shrinks by (1 - d) per tick without overshooting, and snaps to the goal once
// it falls below the settle epsilon, so every gesture finishes in a bounded number of ticks.
type OrbitController interface {
	CameraController

	// SetTarget moves the orbit center.
	//
	// Parameters:
	//   - x, y, z: the new target
	SetTarget(x, y, z float32)

	// Radius returns the current distance from the target.
	Radius() float32

	// SetRadius sets the distance from the target, clamped to the radius bounds.
	//
	// Parameters:
	//   - radius: the new distance
	SetRadius(radius float32)

	// Zoom moves the eye toward (positive delta) or away from the target.
	//
	// Parameters:
	//   - delta: scroll amount, scaled by the zoom speed
	Zoom(delta float32)

	// Azimuth returns the current horizontal angle around the Y axis in radians.
	Azimuth() float32

	// Elevation returns the current vertical angle above the XZ plane in radians.
	Elevation() float32

	// GoalAzimuth returns the azimuth the controller is converging to.
	GoalAzimuth() float32

	// GoalElevation returns the elevation the controller is converging to.
	GoalElevation() float32

	// SetAzimuth jumps both the current and goal azimuth, skipping damping.
	//
	// Parameters:
	//   - azimuth: the angle in radians
	SetAzimuth(azimuth float32)

	// SetElevation jumps both the current and goal elevation, skipping damping.
	// The value is clamped to the elevation bounds.
	//
	// Parameters:
	//   - elevation: the angle in radians
	SetElevation(elevation float32)

	// RotateBy offsets the goal angles. The current angles follow on later Updates.
	//
	// Parameters:
	//   - dAzimuth: radians added to the goal azimuth
	//   - dElevation: radians added to the goal elevation (clamped)
	RotateBy(dAzimuth, dElevation float32)

	// BeginDrag starts a pointer drag at the given pixel coordinates.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	BeginDrag(x, y float32)

	// Drag moves an active drag. Horizontal motion rotates the goal azimuth and vertical
	// motion the goal elevation, scaled by the mouse sensitivity. Ignored when no drag is active.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	Drag(x, y float32)

	// EndDrag ends the active drag. The camera keeps easing toward the last goal.
	EndDrag()

	// Dragging reports whether a drag is in progress.
	Dragging() bool

	// Settled reports whether the current angles equal their goals.
	Settled() bool

	// Damping returns the interpolation factor in (0, 1).
	Damping() float32

	// MouseSensitivity returns radians of rotation per pixel of drag.
	MouseSensitivity() float32
}
