package loader

import (
	"fmt"
	"image/color"

	"github.com/Carmen-Shannon/oxy-scenes/engine/game_object"
	"github.com/Carmen-Shannon/oxy-scenes/engine/geometry"

	"github.com/go-gl/mathgl/mgl32"
)

// extractModel walks the default scene's node hierarchy and bakes every triangle
// primitive into a model-space mesh.
//
// Parameters:
//   - p: the parsed asset
//   - name: the model name
//
// Returns:
//   - *Model: the extracted model
//   - error: error if an accessor cannot be read
func extractModel(p *gltfParser, name string) (*Model, error) {
	m := &Model{Name: name}
	visited := make(map[int]bool)

	var walk func(node int, parent mgl32.Mat4) error
	walk = func(node int, parent mgl32.Mat4) error {
		if node < 0 || node >= len(p.doc.Nodes) {
			return fmt.Errorf("loader: node %d out of range", node)
		}
		if visited[node] {
			return fmt.Errorf("loader: node %d visited twice, hierarchy is not a tree", node)
		}
		visited[node] = true

		n := &p.doc.Nodes[node]
		world := parent.Mul4(nodeMatrix(n))
		if n.Mesh != nil {
			if err := extractMesh(p, m, *n.Mesh, world); err != nil {
				return err
			}
		}
		for _, child := range n.Children {
			if err := walk(child, world); err != nil {
				return err
			}
		}
		return nil
	}

	roots := sceneRoots(p.doc)
	if roots == nil {
		// No node hierarchy: each mesh is placed at the origin.
		for i := range p.doc.Meshes {
			if err := extractMesh(p, m, i, mgl32.Ident4()); err != nil {
				return nil, err
			}
		}
		return m, nil
	}
	for _, root := range roots {
		if err := walk(root, mgl32.Ident4()); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// sceneRoots returns the root nodes of the default scene, or of every parentless node
// when the asset declares no scenes. Nil means the asset has no nodes at all.
func sceneRoots(doc *gltfDocument) []int {
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
			idx = *doc.Scene
		}
		return doc.Scenes[idx].Nodes
	}
	if len(doc.Nodes) == 0 {
		return nil
	}
	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(isChild) {
				isChild[c] = true
			}
		}
	}
	roots := []int{}
	for i, child := range isChild {
		if !child {
			roots = append(roots, i)
		}
	}
	return roots
}

// nodeMatrix returns the local transform of a node: its matrix, or T * R * S.
func nodeMatrix(n *gltfNode) mgl32.Mat4 {
	if n.Matrix != nil {
		return mgl32.Mat4(*n.Matrix)
	}
	t, r, s := mgl32.Ident4(), mgl32.Ident4(), mgl32.Ident4()
	if n.Translation != nil {
		t = mgl32.Translate3D(n.Translation[0], n.Translation[1], n.Translation[2])
	}
	if n.Rotation != nil {
		q := mgl32.Quat{W: n.Rotation[3], V: mgl32.Vec3{n.Rotation[0], n.Rotation[1], n.Rotation[2]}}
		r = q.Normalize().Mat4()
	}
	if n.Scale != nil {
		s = mgl32.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	}
	return t.Mul4(r).Mul4(s)
}

// extractMesh appends one Part per triangle primitive of a glTF mesh.
// Non-triangle primitives are skipped with a debug log.
func extractMesh(p *gltfParser, m *Model, meshIndex int, world mgl32.Mat4) error {
	if meshIndex < 0 || meshIndex >= len(p.doc.Meshes) {
		return fmt.Errorf("loader: mesh %d out of range", meshIndex)
	}
	gm := &p.doc.Meshes[meshIndex]
	normalMatrix := world.Mat3().Inv().Transpose()
	mirrored := world.Mat3().Det() < 0

	for pi, prim := range gm.Primitives {
		if prim.Mode != nil && *prim.Mode != gltfPrimitiveModeTriangles {
			logger.Debugf("skipping primitive %d of mesh %d: mode %d", pi, meshIndex, *prim.Mode)
			continue
		}
		posIdx, ok := prim.Attributes["POSITION"]
		if !ok {
			logger.Debugf("skipping primitive %d of mesh %d: no POSITION", pi, meshIndex)
			continue
		}

		positions, err := p.readVec3(posIdx)
		if err != nil {
			return fmt.Errorf("loader: mesh %d primitive %d positions: %w", meshIndex, pi, err)
		}
		for i, v := range positions {
			positions[i] = world.Mul4x1(v.Vec4(1)).Vec3()
		}

		var normals []mgl32.Vec3
		if nIdx, ok := prim.Attributes["NORMAL"]; ok {
			normals, err = p.readVec3(nIdx)
			if err != nil {
				return fmt.Errorf("loader: mesh %d primitive %d normals: %w", meshIndex, pi, err)
			}
			for i, n := range normals {
				w := normalMatrix.Mul3x1(n)
				if w.Len() > 1e-12 {
					w = w.Normalize()
				}
				normals[i] = w
			}
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = p.readIndices(*prim.Indices)
			if err != nil {
				return fmt.Errorf("loader: mesh %d primitive %d indices: %w", meshIndex, pi, err)
			}
		}
		if mirrored {
			indices = flipWinding(indices, len(positions))
		}

		name := gm.Name
		if name == "" {
			name = fmt.Sprintf("mesh%d", meshIndex)
		}
		if len(gm.Primitives) > 1 {
			name = fmt.Sprintf("%s.%d", name, pi)
		}

		mesh, err := geometry.NewMesh(name, positions, normals, indices)
		if err != nil {
			return fmt.Errorf("loader: mesh %d primitive %d: %w", meshIndex, pi, err)
		}
		m.Parts = append(m.Parts, Part{Mesh: mesh, Material: p.material(prim.Material)})
	}
	return nil
}

// flipWinding reverses every triangle so a mirroring transform keeps counter-clockwise fronts.
func flipWinding(indices []uint32, vertexCount int) []uint32 {
	if indices == nil {
		indices = make([]uint32, vertexCount-vertexCount%3)
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	out := make([]uint32, len(indices))
	copy(out, indices)
	for i := 0; i+2 < len(out); i += 3 {
		out[i+1], out[i+2] = out[i+2], out[i+1]
	}
	return out
}

// material converts a glTF metallic-roughness material. A missing material yields
// the glTF default: white, metallic 1, roughness 1.
func (p *gltfParser) material(index *int) game_object.Material {
	mat := game_object.Material{Color: color.White, Roughness: 1, Metalness: 1}
	if index == nil || *index < 0 || *index >= len(p.doc.Materials) {
		return mat
	}
	gm := &p.doc.Materials[*index]
	mat.DoubleSided = gm.DoubleSided
	if pbr := gm.PbrMetallicRoughness; pbr != nil {
		if f := pbr.BaseColorFactor; f != nil {
			mat.Color = color.NRGBA{R: unit8(f[0]), G: unit8(f[1]), B: unit8(f[2]), A: unit8(f[3])}
		}
		if pbr.MetallicFactor != nil {
			mat.Metalness = *pbr.MetallicFactor
		}
		if pbr.RoughnessFactor != nil {
			mat.Roughness = *pbr.RoughnessFactor
		}
	}
	return mat
}

// unit8 maps a [0, 1] factor to a byte, clamping out-of-range input.
func unit8(f float32) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f*255 + 0.5)
}
