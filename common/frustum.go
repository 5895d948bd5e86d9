package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Plane is the plane n·p + d = 0. Points with n·p + d >= 0 lie on the inner side.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// Frustum holds the six planes of a view volume, each facing inward.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// Frustum plane indices.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// ExtractFrustum extracts the frustum planes of a view-projection matrix
// using the Gribb/Hartmann method. The near plane assumes a [-1, 1] clip depth,
// which is also a conservative bound for [0, 1] depth projections.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: the combined projection * view matrix
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustum(viewProj mgl32.Mat4) Frustum {
	row0, row1, row2, row3 := viewProj.Row(0), viewProj.Row(1), viewProj.Row(2), viewProj.Row(3)

	var f Frustum
	f.Planes[FrustumLeft] = planeFromRow(row3.Add(row0))
	f.Planes[FrustumRight] = planeFromRow(row3.Sub(row0))
	f.Planes[FrustumBottom] = planeFromRow(row3.Add(row1))
	f.Planes[FrustumTop] = planeFromRow(row3.Sub(row1))
	f.Planes[FrustumNear] = planeFromRow(row3.Add(row2))
	f.Planes[FrustumFar] = planeFromRow(row3.Sub(row2))
	return f
}

func planeFromRow(r mgl32.Vec4) Plane {
	p := Plane{Normal: r.Vec3(), Distance: r.W()}
	if l := p.Normal.Len(); l > 0 {
		p.Normal = p.Normal.Mul(1 / l)
		p.Distance /= l
	}
	return p
}

// IntersectsBox reports whether an axis-aligned box is at least partly inside the frustum.
// The test is conservative: a box near a frustum corner may be reported visible.
//
// Parameters:
//   - lo: the minimum corner of the box
//   - hi: the maximum corner of the box
//
// Returns:
//   - bool: false only if the box lies entirely outside one plane
func (f Frustum) IntersectsBox(lo, hi mgl32.Vec3) bool {
	for _, p := range f.Planes {
		// corner furthest along the plane normal
		var v mgl32.Vec3
		for k := 0; k < 3; k++ {
			if p.Normal[k] >= 0 {
				v[k] = hi[k]
			} else {
				v[k] = lo[k]
			}
		}
		if p.Normal.Dot(v)+p.Distance < 0 {
			return false
		}
	}
	return true
}
