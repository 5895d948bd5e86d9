package game_object

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-scenes/engine/geometry"
)

func TestNewGameObjectDefaults(t *testing.T) {
	obj := NewGameObject(geometry.NewBox(1, 1, 1))
	if obj.Name() != "box" || !obj.Enabled() {
		t.Fatalf("name=%q enabled=%v, want box/true", obj.Name(), obj.Enabled())
	}
	if obj.Scale() != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("default scale = %v, want ones", obj.Scale())
	}
	if !obj.ModelMatrix().ApproxEqual(mgl32.Ident4()) {
		t.Errorf("default model matrix is not identity: %v", obj.ModelMatrix())
	}

	other := NewGameObject(geometry.NewBox(1, 1, 1))
	if other.ID() == obj.ID() {
		t.Error("objects share an ID")
	}
}

func TestNewGameObjectPanicsOnNilMesh(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil mesh")
		}
	}()
	NewGameObject(nil)
}

func TestSpinWrapsRotation(t *testing.T) {
	obj := NewGameObject(geometry.NewBox(1, 1, 1), WithRotationSpeed(0.1, 0.1, 0))
	const ticks = 100
	for i := 0; i < ticks; i++ {
		obj.Spin()
	}
	want := math.Mod(ticks*0.1, 2*math.Pi)
	rot := obj.Rotation()
	for axis := 0; axis < 2; axis++ {
		if math.Abs(float64(rot[axis])-want) > 1e-3 {
			t.Errorf("axis %d rotation = %v, want %v", axis, rot[axis], want)
		}
		if rot[axis] < 0 || rot[axis] >= 2*math.Pi {
			t.Errorf("axis %d rotation %v is outside [0, 2π)", axis, rot[axis])
		}
	}
	if rot[2] != 0 {
		t.Errorf("z rotation = %v, want 0", rot[2])
	}
}

func TestModelMatrixAppliesTranslationAndScale(t *testing.T) {
	obj := NewGameObject(geometry.NewBox(1, 1, 1), WithPosition(1, 2, 3), WithScale(2, 2, 2))
	p := obj.ModelMatrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	if !p.ApproxEqual(mgl32.Vec3{3, 2, 3}) {
		t.Errorf("transformed point = %v, want (3, 2, 3)", p)
	}
}

func TestNewMaterial(t *testing.T) {
	m := NewMaterial("rgba(255, 0, 162, 1)")
	r, g, b, a := m.Color.RGBA()
	if r>>8 != 255 || g != 0 || b>>8 != 162 || a>>8 != 255 {
		t.Errorf("material color = %v", m.Color)
	}
}
