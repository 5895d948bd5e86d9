package engine

import (
	"image/color"

	"github.com/Carmen-Shannon/oxy-scenes/common"

	"github.com/go-gl/mathgl/mgl32"
)

// Default camera values applied to zero Config fields.
const (
	DefaultFov  float32 = 75
	DefaultNear float32 = 0.1
	DefaultFar  float32 = 1000
)

// DefaultCameraPosition is the eye position used when Config.Camera.InitialPosition is zero.
var DefaultCameraPosition = mgl32.Vec3{0, 0, 5}

// CameraConfig describes the perspective camera a lifecycle creates on Initialize.
type CameraConfig struct {
	// Fov is the vertical field of view in degrees.
	Fov  float32
	Near float32
	Far  float32

	InitialPosition mgl32.Vec3

	// Target is the look-at point. The zero value looks at the origin.
	Target mgl32.Vec3
}

// Config is the static per-scene configuration read by Initialize.
// Zero fields fall back to defaults.
type Config struct {
	// Background is the clear color. Nil clears to opaque black.
	Background color.Color
	Camera     CameraConfig
}

// withDefaults returns a copy of c with zero fields replaced by their defaults.
func (c Config) withDefaults() Config {
	c.Background = common.Coalesce[color.Color](c.Background, color.Black)
	c.Camera.Fov = common.Coalesce(c.Camera.Fov, DefaultFov)
	c.Camera.Near = common.Coalesce(c.Camera.Near, DefaultNear)
	c.Camera.Far = common.Coalesce(c.Camera.Far, DefaultFar)
	c.Camera.InitialPosition = common.Coalesce(c.Camera.InitialPosition, DefaultCameraPosition)
	return c
}
