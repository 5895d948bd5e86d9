package game_object

import (
	"image/color"

	"github.com/Carmen-Shannon/oxy-scenes/common"
)

// Material describes how a surface responds to light.
// Roughness and Metalness are carried for backends that use them; the bundled
// renderers shade with Color only.
type Material struct {
	Color       color.Color
	Roughness   float32
	Metalness   float32
	DoubleSided bool
}

// DefaultMaterial returns a white, fully rough, single-sided material.
func DefaultMaterial() Material {
	return Material{Color: color.White, Roughness: 1}
}

// NewMaterial returns a single-sided material of the given CSS color.
// Panics on an invalid color string.
//
// Parameters:
//   - css: the color string, e.g. "rgba(255, 0, 162, 1)"
//
// Returns:
//   - Material: the material
func NewMaterial(css string) Material {
	m := DefaultMaterial()
	m.Color = common.MustParseColor(css)
	return m
}
