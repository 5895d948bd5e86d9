package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// boxFaces lists each face of a box as (normal, u, v) with u × v = normal.
var boxFaces = [6][3]mgl32.Vec3{
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
}

// NewBox creates an axis-aligned box centered at the origin with flat-shaded faces.
//
// Parameters:
//   - width, height, depth: extents along x, y and z
//
// Returns:
//   - *Mesh: 24 vertices, 12 triangles
func NewBox(width, height, depth float32) *Mesh {
	half := mgl32.Vec3{width / 2, height / 2, depth / 2}
	extent := func(axis mgl32.Vec3) float32 {
		return abs32(axis[0])*half[0] + abs32(axis[1])*half[1] + abs32(axis[2])*half[2]
	}

	m := &Mesh{Name: "box"}
	for _, f := range boxFaces {
		n, u, v := f[0], f[1], f[2]
		center := n.Mul(extent(n))
		du := u.Mul(extent(u))
		dv := v.Mul(extent(v))

		base := uint32(len(m.Positions))
		m.Positions = append(m.Positions,
			center.Sub(du).Sub(dv),
			center.Add(du).Sub(dv),
			center.Add(du).Add(dv),
			center.Sub(du).Add(dv),
		)
		m.Normals = append(m.Normals, n, n, n, n)
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// NewPlane creates a rectangle in the XY plane facing +Z, centered at the origin.
func NewPlane(width, height float32) *Mesh {
	w, h := width/2, height/2
	n := mgl32.Vec3{0, 0, 1}
	return &Mesh{
		Name:      "plane",
		Positions: []mgl32.Vec3{{-w, -h, 0}, {w, -h, 0}, {w, h, 0}, {-w, h, 0}},
		Normals:   []mgl32.Vec3{n, n, n, n},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
}

// NewCircle creates a filled disc in the XY plane facing +Z.
//
// Parameters:
//   - radius: disc radius
//   - segments: number of rim segments (minimum 3)
func NewCircle(radius float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	n := mgl32.Vec3{0, 0, 1}
	m := &Mesh{Name: "circle"}
	m.Positions = append(m.Positions, mgl32.Vec3{})
	m.Normals = append(m.Normals, n)
	for i := 0; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		m.Positions = append(m.Positions, mgl32.Vec3{radius * float32(math.Cos(a)), radius * float32(math.Sin(a)), 0})
		m.Normals = append(m.Normals, n)
	}
	for i := 1; i <= segments; i++ {
		m.Indices = append(m.Indices, 0, uint32(i), uint32(i+1))
	}
	return m
}

// NewSphere creates a UV sphere centered at the origin.
//
// Parameters:
//   - radius: sphere radius
//   - widthSegments: longitudinal segments (minimum 3)
//   - heightSegments: latitudinal segments (minimum 2)
func NewSphere(radius float32, widthSegments, heightSegments int) *Mesh {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	m := &Mesh{Name: "sphere"}
	for iy := 0; iy <= heightSegments; iy++ {
		theta := math.Pi * float64(iy) / float64(heightSegments)
		for ix := 0; ix <= widthSegments; ix++ {
			phi := 2 * math.Pi * float64(ix) / float64(widthSegments)
			n := mgl32.Vec3{
				float32(-math.Cos(phi) * math.Sin(theta)),
				float32(math.Cos(theta)),
				float32(math.Sin(phi) * math.Sin(theta)),
			}
			m.Positions = append(m.Positions, n.Mul(radius))
			m.Normals = append(m.Normals, n)
		}
	}

	stride := uint32(widthSegments + 1)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint32(iy)*stride + uint32(ix)
			b := a + stride
			// The first row collapses at the north pole and the last at the south pole.
			if iy != 0 {
				m.appendOutward(a, b, a+1)
			}
			if iy != heightSegments-1 {
				m.appendOutward(a+1, b, b+1)
			}
		}
	}
	return m
}

// NewTriangle creates a single triangle with a flat normal.
func NewTriangle(a, b, c mgl32.Vec3) *Mesh {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() > 0 {
		n = n.Normalize()
	}
	return &Mesh{
		Name:      "triangle",
		Positions: []mgl32.Vec3{a, b, c},
		Normals:   []mgl32.Vec3{n, n, n},
		Indices:   []uint32{0, 1, 2},
	}
}

// appendOutward appends a triangle, swapping winding so its face normal agrees with the vertex normals.
func (m *Mesh) appendOutward(i0, i1, i2 uint32) {
	a, b, c := m.Positions[i0], m.Positions[i1], m.Positions[i2]
	face := b.Sub(a).Cross(c.Sub(a))
	avg := m.Normals[i0].Add(m.Normals[i1]).Add(m.Normals[i2])
	if face.Dot(avg) < 0 {
		i1, i2 = i2, i1
	}
	m.Indices = append(m.Indices, i0, i1, i2)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
