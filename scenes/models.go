package scenes

import (
	"github.com/Carmen-Shannon/oxy-scenes/engine"
	"github.com/Carmen-Shannon/oxy-scenes/engine/loader"

	"github.com/go-gl/mathgl/mgl32"
)

// Model asset paths, relative to the loader's base directory.
const (
	ChairModel = "models/wooden_chair.glb"
	GateModel  = "models/wooden_gate_4k.glb"
)

// ModelLoader loads a chair model at half scale and orbits it.
func ModelLoader() *Variant {
	return &Variant{
		Name:        "model-loader",
		Description: "asynchronously loaded chair model with orbit controls",
		Config: engine.Config{
			Camera: engine.CameraConfig{Fov: 50, InitialPosition: mgl32.Vec3{3, 2, 5}},
		},
		Populate:  modelLights(2, 5, 2),
		Model:     ChairModel,
		Placement: []loader.PlacementOption{loader.WithScale(0.5)},
		Orbit:     true,
	}
}

// GLBViewer loads a gate model at half scale and orbits it.
func GLBViewer() *Variant {
	return &Variant{
		Name:        "glb-viewer",
		Description: "asynchronously loaded gate model with orbit controls",
		Config: engine.Config{
			Camera: engine.CameraConfig{Fov: 50, InitialPosition: mgl32.Vec3{0, 1, 3}},
		},
		Populate:  modelLights(2, 2, 5),
		Model:     GateModel,
		Placement: []loader.PlacementOption{loader.WithScale(0.5)},
		Orbit:     true,
	}
}
