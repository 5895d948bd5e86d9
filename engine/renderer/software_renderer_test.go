package renderer

import (
	"bytes"
	"errors"
	"image/color"
	"testing"

	"github.com/Carmen-Shannon/oxy-scenes/common"
	"github.com/Carmen-Shannon/oxy-scenes/engine/camera"
	"github.com/Carmen-Shannon/oxy-scenes/engine/game_object"
	"github.com/Carmen-Shannon/oxy-scenes/engine/geometry"
	"github.com/Carmen-Shannon/oxy-scenes/engine/light"
	"github.com/Carmen-Shannon/oxy-scenes/engine/scene"
	"github.com/Carmen-Shannon/oxy-scenes/engine/window"
)

func litCubeScene() scene.Scene {
	cube := game_object.NewGameObject(geometry.NewBox(1, 1, 1),
		game_object.WithMaterial(game_object.NewMaterial("rgba(255, 0, 162, 1)")))
	point := light.NewLight(light.LightTypePoint,
		light.WithColorString("#f6ff00ff"), light.WithIntensity(150), light.WithPosition(10, 10, 10))
	return scene.NewScene("cube",
		scene.WithBackground(common.MustParseColor("rgba(54, 126, 236, 1)")),
		scene.WithObjects(cube), scene.WithLights(point))
}

func rgbAt(t *testing.T, r SoftwareRenderer, x, y int) color.NRGBA {
	t.Helper()
	img := r.Image()
	if img == nil {
		t.Fatal("no image")
	}
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestSoftwareRendererDrawsBackgroundAndCube(t *testing.T) {
	r, err := NewSoftwareRenderer(64, 48)
	if err != nil {
		t.Fatalf("NewSoftwareRenderer: %v", err)
	}
	defer r.Release()

	if err := r.Render(litCubeScene(), camera.NewCamera(camera.WithAspect(64.0/48.0))); err != nil {
		t.Fatalf("Render: %v", err)
	}

	bg := color.NRGBA{R: 54, G: 126, B: 236, A: 255}
	if got := rgbAt(t, r, 1, 1); got != bg {
		t.Errorf("corner pixel = %v, want background %v", got, bg)
	}
	if got := rgbAt(t, r, 32, 24); got == bg {
		t.Error("center pixel shows background, cube not drawn")
	}
	// A box shows at most three faces (six triangles) to a camera outside it.
	if tris := r.Triangles(); tris == 0 || tris > 6 {
		t.Errorf("filled %d triangles, want 1..6 after culling", tris)
	}
	if r.Frames() != 1 {
		t.Errorf("frames = %d, want 1", r.Frames())
	}
}

func TestSoftwareRendererCullsObjectsBehindCamera(t *testing.T) {
	r, _ := NewSoftwareRenderer(32, 32)
	defer r.Release()
	behind := game_object.NewGameObject(geometry.NewBox(1, 1, 1), game_object.WithPosition(0, 0, 10))
	s := scene.NewScene("behind", scene.WithObjects(behind))
	if err := r.Render(s, camera.NewCamera()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if r.Triangles() != 0 {
		t.Errorf("filled %d triangles for an object behind the camera", r.Triangles())
	}
}

func TestSoftwareRendererDoubleSided(t *testing.T) {
	r, _ := NewSoftwareRenderer(32, 32)
	defer r.Release()

	// NewPlane faces +Z; turned around it faces away from a camera on +Z.
	single := game_object.NewGameObject(geometry.NewPlane(2, 2), game_object.WithRotation(0, 3.14159, 0))
	s := scene.NewScene("plane", scene.WithObjects(single))
	_ = r.Render(s, camera.NewCamera())
	if r.Triangles() != 0 {
		t.Errorf("single-sided back face drew %d triangles", r.Triangles())
	}

	m := game_object.DefaultMaterial()
	m.DoubleSided = true
	single.SetMaterial(m)
	_ = r.Render(s, camera.NewCamera())
	if r.Triangles() != 2 {
		t.Errorf("double-sided plane drew %d triangles, want 2", r.Triangles())
	}
}

func TestSoftwareRendererReleaseIsIdempotent(t *testing.T) {
	r, _ := NewSoftwareRenderer(16, 16)
	r.Release()
	r.Release()
	if !r.Released() {
		t.Fatal("Released() = false after Release")
	}
	if err := r.Render(litCubeScene(), camera.NewCamera()); !errors.Is(err, ErrReleased) {
		t.Errorf("Render after Release = %v, want ErrReleased", err)
	}
	if err := r.Snapshot(&bytes.Buffer{}); !errors.Is(err, ErrReleased) {
		t.Errorf("Snapshot after Release = %v, want ErrReleased", err)
	}
}

func TestSoftwareRendererSnapshotPNG(t *testing.T) {
	r, _ := NewSoftwareRenderer(16, 16)
	defer r.Release()
	_ = r.Render(litCubeScene(), camera.NewCamera())
	var buf bytes.Buffer
	if err := r.Snapshot(&buf); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("snapshot is not a PNG")
	}
}

func TestSoftwareRendererResize(t *testing.T) {
	r, _ := NewSoftwareRenderer(16, 16)
	defer r.Release()
	r.Resize(40, 30)
	r.Resize(0, 10)
	if w, h := r.Size(); w != 40 || h != 30 {
		t.Errorf("size = %dx%d, want 40x30", w, h)
	}
}

func TestFactoryRejectsHeadlessForWGPU(t *testing.T) {
	_, err := NewFactory(BackendTypeWGPU)(window.NewHeadless(10, 10))
	if !errors.Is(err, ErrUnsupportedContainer) {
		t.Errorf("wgpu factory on headless = %v, want ErrUnsupportedContainer", err)
	}
	r, err := NewFactory(BackendTypeSoftware, WithLabel("snap"))(window.NewHeadless(10, 10))
	if err != nil {
		t.Fatalf("software factory: %v", err)
	}
	defer r.Release()
	if r.Backend() != BackendTypeSoftware {
		t.Errorf("backend = %v, want software", r.Backend())
	}
	if r.Node() == nil || r.Node().Label() == "" {
		t.Error("renderer has no labelled node")
	}
}
