package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// assertOutward checks every triangle's face normal agrees with its vertex normals.
func assertOutward(t *testing.T, m *Mesh) {
	t.Helper()
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		face := b.Sub(a).Cross(c.Sub(a))
		n := m.Normals[m.Indices[3*i]]
		if face.Dot(n) <= 0 {
			t.Fatalf("%s triangle %d winds against its normal", m.Name, i)
		}
	}
}

func TestNewBox(t *testing.T) {
	m := NewBox(2, 4, 6)
	if len(m.Positions) != 24 || m.TriangleCount() != 12 {
		t.Fatalf("box has %d vertices and %d triangles, want 24 and 12", len(m.Positions), m.TriangleCount())
	}
	assertOutward(t, m)

	lo, hi := m.Bounds()
	if lo != (mgl32.Vec3{-1, -2, -3}) || hi != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("box bounds = %v..%v, want (-1,-2,-3)..(1,2,3)", lo, hi)
	}
}

func TestNewSphere(t *testing.T) {
	m := NewSphere(0.8, 16, 12)
	assertOutward(t, m)
	for i, p := range m.Positions {
		if math.Abs(float64(p.Len()-0.8)) > 1e-5 {
			t.Fatalf("vertex %d at distance %v, want 0.8", i, p.Len())
		}
	}
	// 16*12*2 quads minus the collapsed pole rows.
	if want := 16*12*2 - 2*16; m.TriangleCount() != want {
		t.Errorf("sphere has %d triangles, want %d", m.TriangleCount(), want)
	}
}

func TestFlatPrimitivesFacePlusZ(t *testing.T) {
	for _, m := range []*Mesh{NewPlane(20, 20), NewCircle(1, 32), NewTriangle(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{-1, -1, 0}, mgl32.Vec3{1, -1, 0})} {
		assertOutward(t, m)
		for _, n := range m.Normals {
			if n != (mgl32.Vec3{0, 0, 1}) {
				t.Fatalf("%s normal = %v, want +Z", m.Name, n)
			}
		}
	}
	if c := NewCircle(1, 1); c.TriangleCount() != 3 {
		t.Errorf("circle with too few segments has %d triangles, want 3", c.TriangleCount())
	}
}

func TestNewMesh(t *testing.T) {
	positions := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	m, err := NewMesh("tri", positions, nil, nil)
	if err != nil {
		t.Fatalf("NewMesh returned error: %v", err)
	}
	if m.TriangleCount() != 1 {
		t.Fatalf("TriangleCount = %d, want 1", m.TriangleCount())
	}
	for _, n := range m.Normals {
		if !n.ApproxEqual(mgl32.Vec3{0, 0, 1}) {
			t.Errorf("generated normal = %v, want +Z", n)
		}
	}
	if got := len(m.Interleaved()); got != 18 {
		t.Errorf("Interleaved length = %d, want 18", got)
	}

	if _, err := NewMesh("empty", nil, nil, nil); !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("empty mesh error = %v, want ErrEmptyMesh", err)
	}
	if _, err := NewMesh("bad", positions, nil, []uint32{0, 1, 5}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("bad index error = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := NewMesh("bad", positions, []mgl32.Vec3{{0, 0, 1}}, nil); !errors.Is(err, ErrNormalCount) {
		t.Errorf("normal mismatch error = %v, want ErrNormalCount", err)
	}
}
