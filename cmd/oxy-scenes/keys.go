package main

import (
	"math"

	"github.com/Carmen-Shannon/oxy-scenes/common"
	"github.com/Carmen-Shannon/oxy-scenes/engine/camera"
)

const (
	// keyOrbitStep is the goal angle change per key press, in radians.
	keyOrbitStep = math.Pi / 16

	// keyZoomStep is the zoom delta per key press.
	keyZoomStep = 1
)

// orbitKeys maps WASD, the arrow keys and +/- onto an orbit controller.
// R returns the controller to the angles it had when orbitKeys was called.
func orbitKeys(oc camera.OrbitController) func(keyCode uint32) {
	homeAz, homeEl := oc.GoalAzimuth(), oc.GoalElevation()

	return func(keyCode uint32) {
		switch keyCode {
		case common.KeyA, common.KeyLeft:
			oc.RotateBy(-keyOrbitStep, 0)
		case common.KeyD, common.KeyRight:
			oc.RotateBy(keyOrbitStep, 0)
		case common.KeyW, common.KeyUp:
			oc.RotateBy(0, keyOrbitStep)
		case common.KeyS, common.KeyDown:
			oc.RotateBy(0, -keyOrbitStep)
		case common.KeyEqual:
			oc.Zoom(keyZoomStep)
		case common.KeyMinus:
			oc.Zoom(-keyZoomStep)
		case common.KeyR:
			oc.RotateBy(homeAz-oc.GoalAzimuth(), homeEl-oc.GoalElevation())
		}
	}
}
