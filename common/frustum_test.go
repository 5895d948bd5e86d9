package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func testFrustum() Frustum {
	proj := mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	return ExtractFrustum(proj.Mul4(view))
}

func TestFrustumIntersectsBox(t *testing.T) {
	f := testFrustum()
	unit := mgl32.Vec3{0.5, 0.5, 0.5}

	tests := []struct {
		name   string
		center mgl32.Vec3
		want   bool
	}{
		{"origin", mgl32.Vec3{}, true},
		{"behind eye", mgl32.Vec3{0, 0, 10}, false},
		{"far left", mgl32.Vec3{-50, 0, 0}, false},
		{"far above", mgl32.Vec3{0, 50, 0}, false},
		{"beyond far plane", mgl32.Vec3{0, 0, -200}, false},
		{"straddles right edge", mgl32.Vec3{2.9, 0, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.IntersectsBox(tt.center.Sub(unit), tt.center.Add(unit)); got != tt.want {
				t.Errorf("IntersectsBox = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFrustumPlanesNormalized(t *testing.T) {
	for i, p := range testFrustum().Planes {
		if l := p.Normal.Len(); l < 0.999 || l > 1.001 {
			t.Errorf("plane %d normal length = %v", i, l)
		}
	}
}
