package light

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-scenes/common"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient lights every surface uniformly regardless of orientation.
	LightTypeAmbient LightType = iota

	// LightTypeDirectional represents a light with no falloff shining from its position
	// toward its target. Used for distant sources like the sun.
	LightTypeDirectional

	// LightTypePoint emits in all directions from a position and attenuates with the
	// inverse square of distance, cut off at an optional range.
	LightTypePoint

	// LightTypeSpot emits in a cone from a position toward its target. The cone edge is
	// softened by the penumbra fraction.
	LightTypeSpot

	// LightTypeHemisphere blends a sky color and a ground color by how far a surface
	// normal points up.
	LightTypeHemisphere
)

// String returns the lowercase light type name.
func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	case LightTypeHemisphere:
		return "hemisphere"
	}
	return "unknown"
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType   LightType
	position    mgl32.Vec3
	target      mgl32.Vec3
	color       color.Color
	groundColor color.Color
	intensity   float32
	lightRange  float32
	angle       float32 // spot cone half-angle in radians
	penumbra    float32 // fraction of the cone that fades, in [0, 1]
	enabled     bool
}

// Light is a scene light source.
//
// All light types share this interface; properties that do not apply to a type
// (cone angle on a point light, ground color on a spot light) are ignored by shading.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space position of the light.
	// Ignored for ambient and hemisphere lights.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Target returns the world-space point directional and spot lights aim at.
	//
	// Returns:
	//   - mgl32.Vec3: the target point (origin by default)
	Target() mgl32.Vec3

	// Direction returns the normalized direction light travels, from position to target.
	// Returns the zero vector if position and target coincide.
	//
	// Returns:
	//   - mgl32.Vec3: the normalized direction
	Direction() mgl32.Vec3

	// Color returns the light color. For hemisphere lights this is the sky color.
	//
	// Returns:
	//   - color.Color: the light color
	Color() color.Color

	// GroundColor returns the hemisphere ground color.
	//
	// Returns:
	//   - color.Color: the ground color
	GroundColor() color.Color

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Range returns the cutoff distance for point and spot lights. Zero means unbounded.
	//
	// Returns:
	//   - float32: the range value
	Range() float32

	// Angle returns the spot cone half-angle in radians.
	//
	// Returns:
	//   - float32: the cone half-angle
	Angle() float32

	// Penumbra returns the fraction of the spot cone that fades to zero.
	//
	// Returns:
	//   - float32: penumbra in [0, 1]
	Penumbra() float32

	// Enabled returns whether this light contributes to shading.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetTarget sets the point the light aims at.
	//
	// Parameters:
	//   - x, y, z: target components
	SetTarget(x, y, z float32)

	// SetColor sets the light color.
	//
	// Parameters:
	//   - c: the new color
	SetColor(c color.Color)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with defaults matching a white,
// unit-intensity light at the origin, and any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:   lightType,
		color:       color.White,
		groundColor: color.Black,
		intensity:   1.0,
		angle:       math.Pi / 3,
		enabled:     true,
	}
	if lightType == LightTypeDirectional || lightType == LightTypeSpot {
		l.position = mgl32.Vec3{0, 1, 0}
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Target() mgl32.Vec3 {
	return l.target
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	d := l.target.Sub(l.position)
	if d.Len() < 1e-8 {
		return mgl32.Vec3{}
	}
	return d.Normalize()
}

func (l *lightImpl) Color() color.Color {
	return l.color
}

func (l *lightImpl) GroundColor() color.Color {
	return l.groundColor
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) Angle() float32 {
	return l.angle
}

func (l *lightImpl) Penumbra() float32 {
	return l.penumbra
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = mgl32.Vec3{x, y, z}
}

func (l *lightImpl) SetTarget(x, y, z float32) {
	l.target = mgl32.Vec3{x, y, z}
}

func (l *lightImpl) SetColor(c color.Color) {
	l.color = c
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

// colorOrWhite returns the light's color as floats, treating nil as white.
func colorOrWhite(c color.Color) mgl32.Vec3 {
	if c == nil {
		return mgl32.Vec3{1, 1, 1}
	}
	return mgl32.Vec3(common.ColorToFloats(c))
}
