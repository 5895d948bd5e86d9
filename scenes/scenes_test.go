package scenes

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-scenes/engine"
	"github.com/Carmen-Shannon/oxy-scenes/engine/frame"
	"github.com/Carmen-Shannon/oxy-scenes/engine/game_object"
	"github.com/Carmen-Shannon/oxy-scenes/engine/geometry"
	"github.com/Carmen-Shannon/oxy-scenes/engine/light"
	"github.com/Carmen-Shannon/oxy-scenes/engine/loader"
	"github.com/Carmen-Shannon/oxy-scenes/engine/window"
)

func mount(t *testing.T, v *Variant, ld loader.Loader) (engine.Lifecycle, *window.Headless, *frame.ManualSource, engine.Handle) {
	t.Helper()
	container := window.NewHeadless(64, 48)
	src := frame.NewManualSource()
	lc := engine.NewLifecycle(engine.WithName(v.Name), engine.WithFrameSource(src))
	h, err := v.Mount(lc, container, ld)
	if err != nil {
		t.Fatalf("Mount(%s): %v", v.Name, err)
	}
	if h == 0 {
		t.Fatalf("Mount(%s) returned the zero handle", v.Name)
	}
	return lc, container, src, h
}

func TestRegistry(t *testing.T) {
	want := []string{"basic", "cube-objects", "camera-controls", "lighting", "model-loader", "glb-viewer"}
	all := All()
	if len(all) != len(want) {
		t.Fatalf("registry has %d variants, want %d", len(all), len(want))
	}
	for i, name := range want {
		if all[i].Name != name {
			t.Errorf("variant %d = %q, want %q", i, all[i].Name, name)
		}
		if v, ok := Lookup(name); !ok || v != all[i] {
			t.Errorf("Lookup(%q) failed", name)
		}
	}
	if _, ok := Lookup("missing"); ok {
		t.Error("Lookup(missing) should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("duplicate Register should panic")
		}
	}()
	Register(&Variant{Name: "basic"})
}

func TestBasicSpinsEveryTick(t *testing.T) {
	lc, container, src, h := mount(t, Basic(), nil)
	defer lc.Teardown(h)

	s := lc.Scene()
	if s.Len() != 1 || len(s.Lights()) != 1 || s.Lights()[0].Type() != light.LightTypePoint {
		t.Fatalf("basic scene has %d objects and %d lights", s.Len(), len(s.Lights()))
	}
	if container.PointerListenerCount() != 0 {
		t.Fatal("basic scene should not listen for pointer input")
	}

	const n = 30
	src.TickN(n)
	want := math.Mod(n*0.1, 2*math.Pi)
	if rot := s.Objects()[0].Rotation(); math.Abs(float64(rot[0])-want) > 1e-4 {
		t.Fatalf("rotation x = %v, want %v", rot[0], want)
	}
}

func TestCubeObjectsCameraCircles(t *testing.T) {
	lc, _, src, h := mount(t, CubeObjects(), nil)
	defer lc.Teardown(h)

	if lc.Scene().Len() != 3 {
		t.Fatalf("scene has %d objects, want 3", lc.Scene().Len())
	}
	src.TickN(60)
	pos := lc.Camera().Position()
	wantX, wantY := float32(math.Sin(1))*cameraCircleRadius, float32(math.Cos(1))*cameraCircleRadius
	if math.Abs(float64(pos.X()-wantX)) > 1e-4 || math.Abs(float64(pos.Y()-wantY)) > 1e-4 || pos.Z() != 5 {
		t.Fatalf("camera at %v after one second, want (%v, %v, 5)", pos, wantX, wantY)
	}
}

func TestCameraControlsRegistersOrbit(t *testing.T) {
	lc, container, _, h := mount(t, CameraControls(), nil)
	if lc.Scene().Len() != 4 {
		t.Fatalf("scene has %d objects, want 4", lc.Scene().Len())
	}
	if container.PointerListenerCount() != 1 {
		t.Fatalf("listener count = %d, want 1", container.PointerListenerCount())
	}
	lc.Teardown(h)
	if container.PointerListenerCount() != 0 {
		t.Fatal("orbit listener leaked after Teardown")
	}
}

func TestLightingHasEveryLightType(t *testing.T) {
	lc, _, _, h := mount(t, Lighting(), nil)
	defer lc.Teardown(h)

	seen := map[light.LightType]bool{}
	for _, l := range lc.Scene().Lights() {
		seen[l.Type()] = true
	}
	for _, lt := range []light.LightType{
		light.LightTypeAmbient, light.LightTypeDirectional, light.LightTypePoint,
		light.LightTypeSpot, light.LightTypeHemisphere,
	} {
		if !seen[lt] {
			t.Errorf("missing %s light", lt)
		}
	}
	if lc.Scene().Len() != 2 {
		t.Errorf("scene has %d objects, want box and ground", lc.Scene().Len())
	}
}

func TestModelLoaderPopulatesAsync(t *testing.T) {
	model := &loader.Model{Name: "chair", Parts: []loader.Part{
		{Mesh: geometry.NewBox(1, 2, 1), Material: game_object.DefaultMaterial()},
	}}
	ld := loader.NewLoader(loader.WithModel(ChairModel, model))

	lc, container, src, h := mount(t, ModelLoader(), ld)
	defer lc.Teardown(h)

	for i := 0; i < 200 && lc.Scene().Len() == 0; i++ {
		src.Tick()
	}
	s := lc.Scene()
	if s.Len() != 1 || len(s.Lights()) != 2 {
		t.Fatalf("scene has %d objects and %d lights, want 1 and 2", s.Len(), len(s.Lights()))
	}
	if scale := s.Objects()[0].Scale(); scale.X() != 0.5 {
		t.Errorf("model scale = %v, want 0.5", scale)
	}
	if container.PointerListenerCount() != 1 {
		t.Error("model scenes should enable orbit")
	}
}

func TestMissingModelKeepsLights(t *testing.T) {
	lc, _, src, h := mount(t, GLBViewer(), loader.NewLoader(loader.WithBaseDir(t.TempDir())))
	defer lc.Teardown(h)

	if n := len(lc.Scene().Lights()); n != 2 {
		t.Fatalf("scene has %d lights before the model resolves, want 2", n)
	}

	src.TickN(10)
	if lc.Scene().Len() != 0 {
		t.Fatal("failed load should leave the scene without objects")
	}
	if n := len(lc.Scene().Lights()); n != 2 {
		t.Fatalf("scene has %d lights after a failed load, want 2", n)
	}
}

func TestMountModelWithoutLoader(t *testing.T) {
	lc := engine.NewLifecycle(engine.WithFrameSource(frame.NewManualSource()))
	container := window.NewHeadless(10, 10)
	if _, err := GLBViewer().Mount(lc, container, nil); err == nil {
		t.Fatal("Mount without a loader should fail")
	}
	if lc.Active() || container.PointerListenerCount() != 0 {
		t.Fatal("failed Mount should tear the lifecycle down")
	}
}

func TestMountUnavailableContainer(t *testing.T) {
	gone := window.NewHeadless(10, 10)
	gone.Remove()
	lc := engine.NewLifecycle()
	h, err := Basic().Mount(lc, gone, nil)
	if err != nil || h != 0 || lc.Active() {
		t.Fatalf("Mount on removed container = (%d, %v), active %v", h, err, lc.Active())
	}
}
