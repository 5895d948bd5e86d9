package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-scenes/common"
	"github.com/Carmen-Shannon/oxy-scenes/engine/geometry"
	"github.com/Carmen-Shannon/oxy-scenes/engine/light"
	"github.com/Carmen-Shannon/oxy-scenes/engine/scene"
)

// MaxLights is the most lights a single frame shades.
const MaxLights = 8

// drawItem is one object resolved for the current frame.
type drawItem struct {
	objectID    uint64
	mesh        *geometry.Mesh
	model       mgl32.Mat4
	normal      mgl32.Mat4
	color       [3]float32
	doubleSided bool
}

// buildDrawList snapshots the enabled objects of a scene in traversal order.
func buildDrawList(s scene.Scene) []drawItem {
	objects := s.Objects()
	items := make([]drawItem, 0, len(objects))
	for _, o := range objects {
		mesh := o.Mesh()
		if !o.Enabled() || mesh == nil || len(mesh.Indices) == 0 {
			continue
		}
		model := o.ModelMatrix()
		mat := o.Material()
		items = append(items, drawItem{
			objectID:    o.ID(),
			mesh:        mesh,
			model:       model,
			normal:      model.Inv().Transpose(),
			color:       common.ColorToFloats(mat.Color),
			doubleSided: mat.DoubleSided,
		})
	}
	return items
}

// worldBounds returns the world-space box enclosing an item's transformed mesh bounds.
func worldBounds(item drawItem) (lo, hi mgl32.Vec3) {
	mlo, mhi := item.mesh.Bounds()
	for i := 0; i < 8; i++ {
		corner := mgl32.Vec3{mlo[0], mlo[1], mlo[2]}
		for k := 0; k < 3; k++ {
			if i&(1<<k) != 0 {
				corner[k] = mhi[k]
			}
		}
		w := mgl32.TransformCoordinate(corner, item.model)
		if i == 0 {
			lo, hi = w, w
			continue
		}
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], w[k])
			hi[k] = max(hi[k], w[k])
		}
	}
	return lo, hi
}

// cullDrawList keeps the items whose world bounds touch the view frustum.
func cullDrawList(items []drawItem, viewProj mgl32.Mat4) []drawItem {
	f := common.ExtractFrustum(viewProj)
	visible := make([]drawItem, 0, len(items))
	for _, item := range items {
		if f.IntersectsBox(worldBounds(item)) {
			visible = append(visible, item)
		}
	}
	return visible
}

// activeLights returns at most max enabled lights in scene order.
func activeLights(s scene.Scene, max int) []light.Light {
	lights := s.Lights()
	out := make([]light.Light, 0, len(lights))
	for _, l := range lights {
		if len(out) == max {
			logger.Debugf("scene %q: dropping lights beyond %d", s.Name(), max)
			break
		}
		if l.Enabled() {
			out = append(out, l)
		}
	}
	return out
}

// transformNormal applies a normal matrix and renormalizes.
func transformNormal(m mgl32.Mat4, n mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(n.Vec4(0)).Vec3()
	if v.Len() == 0 {
		return v
	}
	return v.Normalize()
}
