package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrEmptyMesh is returned when a mesh has no positions.
	ErrEmptyMesh = errors.New("geometry: mesh has no positions")

	// ErrIndexOutOfRange is returned when an index references a missing vertex.
	ErrIndexOutOfRange = errors.New("geometry: index out of range")

	// ErrNormalCount is returned when normals do not match positions one-to-one.
	ErrNormalCount = errors.New("geometry: normal count does not match position count")
)

// Mesh is an indexed triangle list in object space.
// Triangles wind counter-clockwise when viewed from the side their normals face.
type Mesh struct {
	Name      string
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Indices   []uint32
}

// NewMesh validates raw vertex data and returns a Mesh.
// Missing normals are generated by averaging the face normals around each vertex.
// If indices are nil, positions are treated as a non-indexed triangle list.
//
// Parameters:
//   - name: a label used in logs and GPU resource labels
//   - positions: vertex positions
//   - normals: per-vertex normals, or nil to generate them
//   - indices: triangle indices, or nil for sequential triangles
//
// Returns:
//   - *Mesh: the validated mesh
//   - error: ErrEmptyMesh, ErrNormalCount or ErrIndexOutOfRange
func NewMesh(name string, positions, normals []mgl32.Vec3, indices []uint32) (*Mesh, error) {
	if len(positions) == 0 {
		return nil, ErrEmptyMesh
	}
	if normals != nil && len(normals) != len(positions) {
		return nil, fmt.Errorf("%w: %d normals for %d positions", ErrNormalCount, len(normals), len(positions))
	}
	if indices == nil {
		indices = make([]uint32, len(positions)-len(positions)%3)
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	indices = indices[:len(indices)-len(indices)%3]
	for _, idx := range indices {
		if int(idx) >= len(positions) {
			return nil, fmt.Errorf("%w: %d >= %d", ErrIndexOutOfRange, idx, len(positions))
		}
	}

	m := &Mesh{Name: name, Positions: positions, Normals: normals, Indices: indices}
	if m.Normals == nil {
		m.Normals = smoothNormals(positions, indices)
	}
	return m, nil
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the object-space corners of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c mgl32.Vec3) {
	return m.Positions[m.Indices[3*i]], m.Positions[m.Indices[3*i+1]], m.Positions[m.Indices[3*i+2]]
}

// Bounds returns the axis-aligned bounding box of the mesh.
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if len(m.Positions) == 0 {
		return
	}
	lo, hi = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = float32(math.Min(float64(lo[k]), float64(p[k])))
			hi[k] = float32(math.Max(float64(hi[k]), float64(p[k])))
		}
	}
	return lo, hi
}

// Interleaved packs positions and normals as [px py pz nx ny nz] per vertex for GPU upload.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Positions)*6)
	for i, p := range m.Positions {
		n := m.Normals[i]
		out = append(out, p[0], p[1], p[2], n[0], n[1], n[2])
	}
	return out
}

// smoothNormals averages area-weighted face normals at each vertex.
func smoothNormals(positions []mgl32.Vec3, indices []uint32) []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := positions[indices[i]], positions[indices[i+1]], positions[indices[i+2]]
		n := b.Sub(a).Cross(c.Sub(a))
		normals[indices[i]] = normals[indices[i]].Add(n)
		normals[indices[i+1]] = normals[indices[i+1]].Add(n)
		normals[indices[i+2]] = normals[indices[i+2]].Add(n)
	}
	for i, n := range normals {
		if n.Len() > 1e-12 {
			normals[i] = n.Normalize()
		} else {
			normals[i] = mgl32.Vec3{0, 1, 0}
		}
	}
	return normals
}
