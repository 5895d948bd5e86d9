package light

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Irradiance returns the RGB light arriving at a surface point from one light.
// The result is not clamped; callers sum contributions and clamp once.
//
// Parameters:
//   - l: the light
//   - p: world-space surface position
//   - n: normalized world-space surface normal
//
// Returns:
//   - mgl32.Vec3: the incoming light color scaled by intensity, falloff and incidence
func Irradiance(l Light, p, n mgl32.Vec3) mgl32.Vec3 {
	if l == nil || !l.Enabled() {
		return mgl32.Vec3{}
	}
	c := colorOrWhite(l.Color()).Mul(l.Intensity())

	switch l.Type() {
	case LightTypeAmbient:
		return c

	case LightTypeHemisphere:
		ground := colorOrWhite(l.GroundColor()).Mul(l.Intensity())
		t := 0.5*n.Y() + 0.5
		return ground.Mul(1 - t).Add(c.Mul(t))

	case LightTypeDirectional:
		d := l.Direction()
		return c.Mul(lambert(n, d.Mul(-1)))

	case LightTypePoint, LightTypeSpot:
		toLight := l.Position().Sub(p)
		dist := toLight.Len()
		if dist < 1e-6 {
			return c
		}
		if r := l.Range(); r > 0 && dist > r {
			return mgl32.Vec3{}
		}
		toLight = toLight.Mul(1 / dist)
		falloff := 1 / math.Max(float64(dist*dist), 1e-4)
		if l.Type() == LightTypeSpot {
			falloff *= float64(SpotFactor(l, toLight.Mul(-1)))
		}
		return c.Mul(float32(falloff) * lambert(n, toLight))
	}
	return mgl32.Vec3{}
}

// SpotFactor returns the cone attenuation for a ray leaving the spot light in direction dir.
// 1 inside the inner cone, 0 outside the outer cone, smoothstep in between.
//
// Parameters:
//   - l: the spot light
//   - dir: normalized direction from the light toward the surface
//
// Returns:
//   - float32: attenuation in [0, 1]
func SpotFactor(l Light, dir mgl32.Vec3) float32 {
	axis := l.Direction()
	if axis.Len() == 0 {
		return 0
	}
	cosOuter := float32(math.Cos(float64(l.Angle())))
	cosInner := float32(math.Cos(float64(l.Angle() * (1 - l.Penumbra()))))
	cosTheta := axis.Dot(dir)
	return smoothstep(cosOuter, cosInner, cosTheta)
}

func lambert(n, toLight mgl32.Vec3) float32 {
	d := n.Dot(toLight)
	if d < 0 {
		return 0
	}
	return d
}

func smoothstep(edge0, edge1, x float32) float32 {
	if edge1 <= edge0 {
		if x >= edge0 {
			return 1
		}
		return 0
	}
	t := mgl32.Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}
