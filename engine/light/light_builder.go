package light

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-scenes/common"
)

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - x: the x position component
//   - y: the y position component
//   - z: the z position component
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = mgl32.Vec3{x, y, z}
	}
}

// WithTarget is an option builder that sets the point directional and spot lights aim at.
//
// Parameters:
//   - x, y, z: target components
//
// Returns:
//   - LightBuilderOption: a function that applies the target option to a lightImpl
func WithTarget(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.target = mgl32.Vec3{x, y, z}
	}
}

// WithColor is an option builder that sets the light color.
//
// Parameters:
//   - c: the light color
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(c color.Color) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = c
	}
}

// WithColorString is an option builder that parses a CSS-style color for the light.
// Panics on an invalid color string, since scene colors are literals.
//
// Parameters:
//   - s: the color string, e.g. "orange" or "#f6ff00ff"
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColorString(s string) LightBuilderOption {
	c := common.MustParseColor(s)
	return func(l *lightImpl) {
		l.color = c
	}
}

// WithGroundColor is an option builder that sets the hemisphere ground color.
//
// Parameters:
//   - c: the ground color
//
// Returns:
//   - LightBuilderOption: a function that applies the ground color option to a lightImpl
func WithGroundColor(c color.Color) LightBuilderOption {
	return func(l *lightImpl) {
		l.groundColor = c
	}
}

// WithIntensity is an option builder that sets the scalar intensity multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a lightImpl
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithRange is an option builder that sets the cutoff distance for point and spot lights.
//
// Parameters:
//   - lightRange: the range value, 0 for unbounded
//
// Returns:
//   - LightBuilderOption: a function that applies the range option to a lightImpl
func WithRange(lightRange float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.lightRange = lightRange
	}
}

// WithSpotCone is an option builder that sets the spot cone half-angle and penumbra.
//
// Parameters:
//   - angle: cone half-angle in radians, clamped to (0, π/2]
//   - penumbra: fraction of the cone that fades, clamped to [0, 1]
//
// Returns:
//   - LightBuilderOption: a function that applies the spot cone option to a lightImpl
func WithSpotCone(angle, penumbra float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.angle = mgl32.Clamp(angle, 1e-4, math.Pi/2)
		l.penumbra = mgl32.Clamp(penumbra, 0, 1)
	}
}

// WithEnabled is an option builder that sets whether the light is active for rendering.
//
// Parameters:
//   - enabled: true to enable the light
//
// Returns:
//   - LightBuilderOption: a function that applies the enabled option to a lightImpl
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}
