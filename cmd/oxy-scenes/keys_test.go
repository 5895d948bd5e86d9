package main

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-scenes/common"
	"github.com/Carmen-Shannon/oxy-scenes/engine/camera"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestOrbitKeysRotateGoal(t *testing.T) {
	oc := camera.NewOrbitController(camera.WithOrbitPosition(0, 0, 5))
	onKey := orbitKeys(oc)

	onKey(common.KeyD)
	onKey(common.KeyRight)
	if got := oc.GoalAzimuth(); !near(got, 2*keyOrbitStep) {
		t.Fatalf("goal azimuth = %v, want %v", got, 2*keyOrbitStep)
	}

	onKey(common.KeyW)
	if got := oc.GoalElevation(); !near(got, keyOrbitStep) {
		t.Fatalf("goal elevation = %v, want %v", got, keyOrbitStep)
	}

	// goals move, the current angles wait for Update
	if oc.Azimuth() != 0 {
		t.Errorf("azimuth moved before Update: %v", oc.Azimuth())
	}
}

func TestOrbitKeysResetAndZoom(t *testing.T) {
	oc := camera.NewOrbitController(camera.WithOrbitPosition(0, 0, 5))
	onKey := orbitKeys(oc)

	onKey(common.KeyA)
	onKey(common.KeyS)
	onKey(common.KeyR)
	if !near(oc.GoalAzimuth(), 0) || !near(oc.GoalElevation(), 0) {
		t.Fatalf("reset goals = (%v, %v), want (0, 0)", oc.GoalAzimuth(), oc.GoalElevation())
	}

	before := oc.Radius()
	onKey(common.KeyEqual)
	if oc.Radius() >= before {
		t.Errorf("radius %v did not shrink from %v", oc.Radius(), before)
	}

	before = oc.Radius()
	onKey(uint32(common.KeyEsc))
	if oc.Radius() != before || !near(oc.GoalAzimuth(), 0) {
		t.Errorf("unmapped key changed the controller")
	}
}
