package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	if c.Position() != (mgl32.Vec3{0, 0, 5}) {
		t.Errorf("position = %v, want (0,0,5)", c.Position())
	}
	if !near(c.Fov(), mgl32.DegToRad(75), 1e-6) {
		t.Errorf("fov = %v, want 75 degrees", c.Fov())
	}
	if c.Near() != 0.1 || c.Far() != 1000 {
		t.Errorf("near/far = %v/%v, want 0.1/1000", c.Near(), c.Far())
	}
}

func TestViewProjectionCentersTarget(t *testing.T) {
	c := NewCamera(WithPosition(3, 2, 5), WithFov(50), WithAspect(16.0/9.0))
	clip := c.ViewProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	ndc := clip.Vec3().Mul(1 / clip.W())
	if !near(ndc.X(), 0, 1e-5) || !near(ndc.Y(), 0, 1e-5) {
		t.Errorf("target projects to %v, want screen center", ndc)
	}
	if ndc.Z() <= -1 || ndc.Z() >= 1 {
		t.Errorf("target depth %v outside clip range", ndc.Z())
	}
}

func TestSetAspectIgnoresNonPositive(t *testing.T) {
	c := NewCamera(WithAspect(2))
	c.SetAspect(0)
	c.SetAspect(-1)
	if c.Aspect() != 2 {
		t.Errorf("aspect = %v, want 2", c.Aspect())
	}
}

func TestCameraFollowsController(t *testing.T) {
	oc := NewOrbitController(WithOrbitPosition(0, 0, 5))
	c := NewCamera(WithController(oc))
	oc.RotateBy(math.Pi/2, 0)
	for i := 0; i < 1000 && oc.Update(); i++ {
	}
	c.Update()
	if !nearVec(c.Position(), mgl32.Vec3{5, 0, 0}, 1e-3) {
		t.Errorf("camera position = %v, want (5,0,0)", c.Position())
	}
}

func TestOrbitPositionRoundTrip(t *testing.T) {
	oc := NewOrbitController(WithOrbitTarget(0, 1, 0), WithOrbitPosition(0, 2, 5))
	if !nearVec(oc.Position(), mgl32.Vec3{0, 2, 5}, 1e-4) {
		t.Errorf("position = %v, want (0,2,5)", oc.Position())
	}
	if !near(oc.Radius(), float32(math.Sqrt(26)), 1e-4) {
		t.Errorf("radius = %v, want sqrt(26)", oc.Radius())
	}
}

func TestOrbitDragConvergesMonotonically(t *testing.T) {
	const (
		damping = 0.05
		eps     = 1e-4
		sens    = 0.005
	)
	oc := NewOrbitController(WithDamping(damping), WithSettleEpsilon(eps), WithMouseSensitivity(sens))

	oc.BeginDrag(100, 100)
	oc.Drag(300, 100)
	oc.EndDrag()

	theta := float32(200 * sens)
	if !near(oc.GoalAzimuth(), theta, 1e-6) {
		t.Fatalf("goal azimuth = %v, want %v", oc.GoalAzimuth(), theta)
	}
	if oc.Azimuth() != 0 {
		t.Fatalf("azimuth moved before Update: %v", oc.Azimuth())
	}

	bound := int(math.Ceil(math.Log(eps/float64(theta))/math.Log(1-damping))) + 2
	prevDist := theta
	ticks := 0
	for !oc.Settled() {
		if ticks > bound {
			t.Fatalf("not settled after %d ticks (bound %d), azimuth %v", ticks, bound, oc.Azimuth())
		}
		oc.Update()
		ticks++
		az := oc.Azimuth()
		if az > theta {
			t.Fatalf("tick %d overshot: %v > %v", ticks, az, theta)
		}
		dist := theta - az
		if dist > prevDist {
			t.Fatalf("tick %d moved away: dist %v > %v", ticks, dist, prevDist)
		}
		prevDist = dist
	}
	if oc.Azimuth() != oc.GoalAzimuth() {
		t.Errorf("settled at %v, want %v", oc.Azimuth(), oc.GoalAzimuth())
	}
	if oc.Update() {
		t.Error("Update reported movement after settling")
	}
}

func TestOrbitDragIgnoredWithoutBegin(t *testing.T) {
	oc := NewOrbitController()
	oc.Drag(500, 500)
	if oc.GoalAzimuth() != 0 || oc.GoalElevation() != 0 {
		t.Errorf("drag without BeginDrag moved goal to (%v, %v)", oc.GoalAzimuth(), oc.GoalElevation())
	}
	if oc.Dragging() {
		t.Error("Dragging() = true without BeginDrag")
	}
}

func TestOrbitElevationClamped(t *testing.T) {
	oc := NewOrbitController(WithElevationBounds(-0.5, 0.5))
	oc.RotateBy(0, 10)
	if oc.GoalElevation() != 0.5 {
		t.Errorf("goal elevation = %v, want 0.5", oc.GoalElevation())
	}
	oc.SetElevation(-3)
	if oc.Elevation() != -0.5 {
		t.Errorf("elevation = %v, want -0.5", oc.Elevation())
	}
}

func TestOrbitInvalidDampingFallsBack(t *testing.T) {
	for _, d := range []float32{0, 1, -0.3, 2} {
		if got := NewOrbitController(WithDamping(d)).Damping(); got != DefaultDamping {
			t.Errorf("WithDamping(%v) = %v, want %v", d, got, DefaultDamping)
		}
	}
}

func TestOrbitZoomClamped(t *testing.T) {
	oc := NewOrbitController(WithRadius(5), WithRadiusBounds(2, 10), WithZoomSpeed(1))
	oc.Zoom(100)
	if oc.Radius() != 2 {
		t.Errorf("radius after zoom in = %v, want 2", oc.Radius())
	}
	oc.Zoom(-100)
	if oc.Radius() != 10 {
		t.Errorf("radius after zoom out = %v, want 10", oc.Radius())
	}
}

func near(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

func nearVec(a, b mgl32.Vec3, tol float32) bool {
	return near(a[0], b[0], tol) && near(a[1], b[1], tol) && near(a[2], b[2], tol)
}

func TestOrbitConvergesAfterManyTurns(t *testing.T) {
	const step = float32(math.Pi / 16)
	oc := NewOrbitController()
	oc.SetAzimuth(200)

	// a thousand presses of an orbit key
	for i := 0; i < 1000; i++ {
		oc.RotateBy(step, 0)
	}
	if g := oc.GoalAzimuth(); g < 0 || g >= 2*math.Pi {
		t.Fatalf("goal azimuth %v not wrapped into [0, 2π)", g)
	}

	oc.RotateBy(0.5, 0)
	for ticks := 0; !oc.Settled(); ticks++ {
		if ticks > 10000 {
			t.Fatalf("not settled after %d ticks: az=%v goal=%v", ticks, oc.Azimuth(), oc.GoalAzimuth())
		}
		oc.Update()
	}
	if oc.Azimuth() != oc.GoalAzimuth() {
		t.Errorf("settled at %v, want %v", oc.Azimuth(), oc.GoalAzimuth())
	}
}

func TestOrbitWrapKeepsRemainingDistance(t *testing.T) {
	oc := NewOrbitController()
	oc.RotateBy(-0.5, 0)

	if g := oc.GoalAzimuth(); !near(g, 2*math.Pi-0.5, 1e-5) {
		t.Fatalf("goal azimuth = %v, want %v", g, 2*math.Pi-0.5)
	}
	if d := oc.GoalAzimuth() - oc.Azimuth(); !near(d, -0.5, 1e-5) {
		t.Errorf("remaining distance = %v, want -0.5", d)
	}
}
