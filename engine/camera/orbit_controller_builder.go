package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitControllerBuilderOption is a functional option for configuring an OrbitController.
type OrbitControllerBuilderOption func(*orbitControllerImpl)

// WithOrbitTarget sets the point the camera orbits around.
//
// Parameters:
//   - x, y, z: the target
//
// Returns:
//   - OrbitControllerBuilderOption: option function to apply
func WithOrbitTarget(x, y, z float32) OrbitControllerBuilderOption {
	return func(oc *orbitControllerImpl) {
		oc.target = mgl32.Vec3{x, y, z}
	}
}

// WithOrbitPosition derives radius, azimuth and elevation from an eye position relative
// to the target. Apply after WithOrbitTarget when both are given.
//
// Parameters:
//   - x, y, z: the eye position
//
// Returns:
//   - OrbitControllerBuilderOption: option function to apply
func WithOrbitPosition(x, y, z float32) OrbitControllerBuilderOption {
	return func(oc *orbitControllerImpl) {
		offset := mgl32.Vec3{x, y, z}.Sub(oc.target)
		r := offset.Len()
		if r < 1e-6 {
			return
		}
		oc.radius = r
		oc.elevation = float32(math.Asin(float64(offset.Y() / r)))
		oc.azimuth = float32(math.Atan2(float64(offset.X()), float64(offset.Z())))
	}
}

// WithRadius sets the initial distance from the target.
//
// Parameters:
//   - radius: the distance
//
// Returns:
//   - OrbitControllerBuilderOption: option function to apply
func WithRadius(radius float32) OrbitControllerBuilderOption {
	return func(oc *orbitControllerImpl) {
		oc.radius = radius
	}
}

// WithAzimuth sets the initial azimuth in radians.
//
// Parameters:
//   - azimuth: the angle
//
// Returns:
//   - OrbitControllerBuilderOption: option function to apply
func WithAzimuth(azimuth float32) OrbitControllerBuilderOption {
	return func(oc *orbitControllerImpl) {
		oc.azimuth = azimuth
	}
}

// WithElevation sets the initial elevation in radians.
//
// Parameters:
//   - elevation: the angle
//
// Returns:
//   - OrbitControllerBuilderOption: option function to apply
func WithElevation(elevation float32) OrbitControllerBuilderOption {
	return func(oc *orbitControllerImpl) {
		oc.elevation = elevation
	}
}

// WithRadiusBounds sets the zoom limits.
//
// Parameters:
//   - lo, hi: minimum and maximum radius
//
// Returns:
//   - OrbitControllerBuilderOption: option function to apply
func WithRadiusBounds(lo, hi float32) OrbitControllerBuilderOption {
	return func(oc *orbitControllerImpl) {
		oc.minRadius, oc.maxRadius = lo, hi
	}
}

// WithElevationBounds sets the vertical orbit limits in radians.
//
// Parameters:
//   - lo, hi: minimum and maximum elevation
//
// Returns:
//   - OrbitControllerBuilderOption: option function to apply
func WithElevationBounds(lo, hi float32) OrbitControllerBuilderOption {
	return func(oc *orbitControllerImpl) {
		oc.minElevation, oc.maxElevation = lo, hi
	}
}

// WithDamping sets the per-tick interpolation factor. Values outside (0, 1) fall back to DefaultDamping.
//
// Parameters:
//   - damping: the factor
//
// Returns:
//   - OrbitControllerBuilderOption: option function to apply
func WithDamping(damping float32) OrbitControllerBuilderOption {
	return func(oc *orbitControllerImpl) {
		oc.damping = damping
	}
}

// WithSettleEpsilon sets the snap distance in radians.
//
// Parameters:
//   - epsilon: the snap distance, must be positive
//
// Returns:
//   - OrbitControllerBuilderOption: option function to apply
func WithSettleEpsilon(epsilon float32) OrbitControllerBuilderOption {
	return func(oc *orbitControllerImpl) {
		if epsilon > 0 {
			oc.settleEpsilon = epsilon
		}
	}
}

// WithMouseSensitivity sets radians of rotation per pixel of drag.
//
// Parameters:
//   - sensitivity: the scale
//
// Returns:
//   - OrbitControllerBuilderOption: option function to apply
func WithMouseSensitivity(sensitivity float32) OrbitControllerBuilderOption {
	return func(oc *orbitControllerImpl) {
		oc.mouseSensitivity = sensitivity
	}
}

// WithZoomSpeed sets the radius change per unit of scroll.
//
// Parameters:
//   - speed: the scale
//
// Returns:
//   - OrbitControllerBuilderOption: option function to apply
func WithZoomSpeed(speed float32) OrbitControllerBuilderOption {
	return func(oc *orbitControllerImpl) {
		oc.zoomSpeed = speed
	}
}
