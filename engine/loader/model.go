package loader

import (
	"github.com/Carmen-Shannon/oxy-scenes/engine/game_object"
	"github.com/Carmen-Shannon/oxy-scenes/engine/geometry"

	"github.com/go-gl/mathgl/mgl32"
)

// Part is one triangle primitive of a model, already baked into model space.
type Part struct {
	Mesh     *geometry.Mesh
	Material game_object.Material
}

// Model is the static geometry extracted from one glTF or GLB asset.
type Model struct {
	Name  string
	Parts []Part
}

// TriangleCount returns the total triangle count over every part.
func (m *Model) TriangleCount() int {
	n := 0
	for _, p := range m.Parts {
		n += p.Mesh.TriangleCount()
	}
	return n
}

// Bounds returns the axis-aligned bounding box over every part.
// An empty model reports zero bounds.
func (m *Model) Bounds() (lo, hi mgl32.Vec3) {
	for i, p := range m.Parts {
		plo, phi := p.Mesh.Bounds()
		if i == 0 {
			lo, hi = plo, phi
			continue
		}
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], plo[k])
			hi[k] = max(hi[k], phi[k])
		}
	}
	return lo, hi
}

// Objects creates one game object per part. The options are applied to every object
// after the part's name and material.
//
// Parameters:
//   - options: transform and behaviour options shared by all parts
//
// Returns:
//   - []game_object.GameObject: the objects in part order
func (m *Model) Objects(options ...game_object.GameObjectBuilderOption) []game_object.GameObject {
	out := make([]game_object.GameObject, 0, len(m.Parts))
	for _, p := range m.Parts {
		opts := append([]game_object.GameObjectBuilderOption{
			game_object.WithName(p.Mesh.Name),
			game_object.WithMaterial(p.Material),
		}, options...)
		out = append(out, game_object.NewGameObject(p.Mesh, opts...))
	}
	return out
}
