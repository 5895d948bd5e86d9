package light

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestNewLightDefaults(t *testing.T) {
	l := NewLight(LightTypePoint)
	if !l.Enabled() || l.Intensity() != 1 || l.Color() != color.White {
		t.Fatalf("unexpected defaults: enabled=%v intensity=%v color=%v", l.Enabled(), l.Intensity(), l.Color())
	}
	if l.Type().String() != "point" {
		t.Errorf("Type().String() = %q, want point", l.Type().String())
	}

	d := NewLight(LightTypeDirectional)
	if got := d.Direction(); !got.ApproxEqual(mgl32.Vec3{0, -1, 0}) {
		t.Errorf("default directional light direction = %v, want straight down", got)
	}
}

func TestIrradianceAmbientIgnoresNormal(t *testing.T) {
	l := NewLight(LightTypeAmbient, WithIntensity(0.5))
	for _, n := range []mgl32.Vec3{{0, 1, 0}, {0, -1, 0}, {1, 0, 0}} {
		if got := Irradiance(l, mgl32.Vec3{}, n); !got.ApproxEqual(mgl32.Vec3{0.5, 0.5, 0.5}) {
			t.Errorf("ambient irradiance for normal %v = %v", n, got)
		}
	}
}

func TestIrradianceDirectional(t *testing.T) {
	l := NewLight(LightTypeDirectional, WithPosition(0, 5, 0), WithColor(color.RGBA{0, 0, 255, 255}))

	up := Irradiance(l, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	if !up.ApproxEqual(mgl32.Vec3{0, 0, 1}) {
		t.Errorf("facing light = %v, want pure blue", up)
	}
	down := Irradiance(l, mgl32.Vec3{}, mgl32.Vec3{0, -1, 0})
	if down != (mgl32.Vec3{}) {
		t.Errorf("facing away = %v, want black", down)
	}
}

func TestIrradiancePointFalloffAndRange(t *testing.T) {
	l := NewLight(LightTypePoint, WithPosition(0, 2, 0), WithIntensity(8))
	got := Irradiance(l, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	if !approx(got.X(), 2) {
		t.Errorf("point irradiance at distance 2 = %v, want 8/4", got.X())
	}

	ranged := NewLight(LightTypePoint, WithPosition(0, 2, 0), WithRange(1))
	if got := Irradiance(ranged, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}); got != (mgl32.Vec3{}) {
		t.Errorf("point light beyond range = %v, want black", got)
	}
}

func TestSpotFactor(t *testing.T) {
	l := NewLight(LightTypeSpot, WithPosition(0, 5, 0), WithTarget(0, 0, 0), WithSpotCone(0.3, 0.2))

	if f := SpotFactor(l, mgl32.Vec3{0, -1, 0}); !approx(f, 1) {
		t.Errorf("on-axis spot factor = %v, want 1", f)
	}
	outside := mgl32.Vec3{float32(math.Sin(0.5)), -float32(math.Cos(0.5)), 0}
	if f := SpotFactor(l, outside); f != 0 {
		t.Errorf("outside cone spot factor = %v, want 0", f)
	}
	edge := mgl32.Vec3{float32(math.Sin(0.27)), -float32(math.Cos(0.27)), 0}
	if f := SpotFactor(l, edge); f <= 0 || f >= 1 {
		t.Errorf("penumbra spot factor = %v, want strictly between 0 and 1", f)
	}
}

func TestIrradianceHemisphere(t *testing.T) {
	l := NewLight(LightTypeHemisphere,
		WithColor(color.RGBA{0, 0, 255, 255}),
		WithGroundColor(color.RGBA{0, 255, 0, 255}),
	)
	sky := Irradiance(l, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	ground := Irradiance(l, mgl32.Vec3{}, mgl32.Vec3{0, -1, 0})
	if !sky.ApproxEqual(mgl32.Vec3{0, 0, 1}) || !ground.ApproxEqual(mgl32.Vec3{0, 1, 0}) {
		t.Errorf("hemisphere sky=%v ground=%v", sky, ground)
	}
}

func TestDisabledLightContributesNothing(t *testing.T) {
	l := NewLight(LightTypeAmbient, WithEnabled(false))
	if got := Irradiance(l, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}); got != (mgl32.Vec3{}) {
		t.Errorf("disabled light irradiance = %v, want black", got)
	}
}
