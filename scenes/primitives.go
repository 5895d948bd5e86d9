package scenes

import (
	"math"

	"github.com/Carmen-Shannon/oxy-scenes/common"
	"github.com/Carmen-Shannon/oxy-scenes/engine"
	"github.com/Carmen-Shannon/oxy-scenes/engine/game_object"
	"github.com/Carmen-Shannon/oxy-scenes/engine/geometry"
	"github.com/Carmen-Shannon/oxy-scenes/engine/light"
	"github.com/Carmen-Shannon/oxy-scenes/engine/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// skyBlue is the background shared by the hand-built scenes.
const skyBlue = "rgba(54, 126, 236, 1)"

// shinyMaterial is a double-sided, half-rough, mostly metallic surface.
func shinyMaterial(css string) game_object.Material {
	m := game_object.NewMaterial(css)
	m.Roughness = 0.5
	m.Metalness = 0.8
	m.DoubleSided = true
	return m
}

// addShapes adds the cube, circle and sphere trio.
func addShapes(s scene.Scene) {
	s.Add(
		game_object.NewGameObject(geometry.NewBox(1, 1, 1),
			game_object.WithName("cube"),
			game_object.WithMaterial(shinyMaterial("rgba(255, 0, 162, 1)")),
			game_object.WithRotationSpeed(0.01, 0.01, 0)),
		game_object.NewGameObject(geometry.NewCircle(1, 32),
			game_object.WithName("circle"),
			game_object.WithMaterial(shinyMaterial("rgba(0, 255, 0, 1)")),
			game_object.WithPosition(0, 2, 0),
			game_object.WithRotationSpeed(0.01, 0.01, 0)),
		game_object.NewGameObject(geometry.NewSphere(0.8, 32, 32),
			game_object.WithName("sphere"),
			game_object.WithMaterial(shinyMaterial("rgba(117, 0, 176, 1)")),
			game_object.WithPosition(2, 1, 1),
			game_object.WithRotation(math.Pi/4, 0, 0),
			game_object.WithRotationSpeed(0.1, 0.1, 0)),
	)
}

// Basic is a single magenta cube under a yellow point light, spinning 0.1 rad per tick.
func Basic() *Variant {
	return &Variant{
		Name:        "basic",
		Description: "spinning cube under a point light",
		Config:      engine.Config{Background: common.MustParseColor(skyBlue)},
		Populate: func(s scene.Scene) {
			s.Add(game_object.NewGameObject(geometry.NewBox(1, 1, 1),
				game_object.WithName("cube"),
				game_object.WithMaterial(game_object.NewMaterial("rgba(255, 0, 162, 1)")),
				game_object.WithRotationSpeed(0.1, 0.1, 0)))
			s.AddLight(light.NewLight(light.LightTypePoint,
				light.WithColorString("#f6ff00ff"),
				light.WithIntensity(150),
				light.WithPosition(10, 10, 10)))
		},
	}
}

// cameraCircleRadius is the distance the cube-objects camera keeps from the Z axis.
const cameraCircleRadius = 5.1

// CubeObjects shows a cube, circle and sphere while the camera circles them.
func CubeObjects() *Variant {
	return &Variant{
		Name:        "cube-objects",
		Description: "cube, circle and sphere with a circling camera",
		Config:      engine.Config{Background: common.MustParseColor(skyBlue)},
		Populate: func(s scene.Scene) {
			addShapes(s)
			s.AddLight(light.NewLight(light.LightTypePoint,
				light.WithColorString("rgba(246, 255, 0, 1)"),
				light.WithIntensity(150),
				light.WithPosition(0, 5, 5)))
		},
		Animate: func(lc engine.Lifecycle) func() {
			c := lc.Camera()
			tick := 0
			return func() {
				tick++
				t := float64(tick) / 60
				x := float32(math.Sin(t)) * cameraCircleRadius
				y := float32(math.Cos(t)) * cameraCircleRadius
				c.SetPosition(x, y, 5)
				c.LookAt(0, 0, 0)
			}
		},
	}
}

// CameraControls adds a triangle to the shape trio and lets the user orbit with damping.
func CameraControls() *Variant {
	return &Variant{
		Name:        "camera-controls",
		Description: "triangle and shapes with damped orbit controls",
		Config: engine.Config{
			Background: common.MustParseColor(skyBlue),
			Camera:     engine.CameraConfig{InitialPosition: mgl32.Vec3{0, 2, 5}},
		},
		Populate: func(s scene.Scene) {
			s.Add(game_object.NewGameObject(
				geometry.NewTriangle(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{-1, -1, 0}, mgl32.Vec3{1, -1, 0}),
				game_object.WithName("triangle"),
				game_object.WithMaterial(shinyMaterial("rgba(157, 255, 0, 1)")),
				game_object.WithRotationSpeed(0.01, 0.01, 0)))
			addShapes(s)
			s.AddLight(light.NewLight(light.LightTypePoint,
				light.WithColorString("rgba(255, 255, 255, 1)"),
				light.WithIntensity(1500),
				light.WithPosition(10, 10, 10)))
		},
		Orbit: true,
	}
}

// Lighting shows one light of every type over a spinning box and a ground plane.
func Lighting() *Variant {
	return &Variant{
		Name:        "lighting",
		Description: "ambient, directional, point, spot and hemisphere lights",
		Config: engine.Config{
			Camera: engine.CameraConfig{InitialPosition: mgl32.Vec3{5, 5, 5}},
		},
		Populate: func(s scene.Scene) {
			s.AddLight(
				light.NewLight(light.LightTypeAmbient, light.WithIntensity(0.3)),
				light.NewLight(light.LightTypeDirectional,
					light.WithPosition(5, 5, 5), light.WithIntensity(0.5), light.WithColorString("blue")),
				light.NewLight(light.LightTypePoint,
					light.WithPosition(-5, 5, 0), light.WithIntensity(0.7), light.WithColorString("lightblue")),
				light.NewLight(light.LightTypeSpot,
					light.WithPosition(0, 5, 5), light.WithSpotCone(0.3, 0.2),
					light.WithIntensity(1), light.WithColorString("orange")),
				light.NewLight(light.LightTypeHemisphere,
					light.WithColorString("blue"), light.WithGroundColor(common.MustParseColor("green")),
					light.WithIntensity(0.3)),
			)
			s.Add(
				game_object.NewGameObject(geometry.NewBox(2, 2, 2),
					game_object.WithName("box"),
					game_object.WithMaterial(game_object.NewMaterial("white")),
					game_object.WithRotationSpeed(0.01, 0.01, 0)),
				game_object.NewGameObject(geometry.NewPlane(20, 20),
					game_object.WithName("ground"),
					game_object.WithMaterial(game_object.NewMaterial("grey")),
					game_object.WithPosition(0, -2, 0),
					game_object.WithRotation(-math.Pi/2, 0, 0)),
			)
		},
	}
}

// modelLights returns the ambient and directional pair used by the model scenes.
func modelLights(dx, dy, dz float32) engine.PopulateFunc {
	return func(s scene.Scene) {
		s.AddLight(
			light.NewLight(light.LightTypeAmbient, light.WithIntensity(0.5)),
			light.NewLight(light.LightTypeDirectional, light.WithPosition(dx, dy, dz), light.WithIntensity(1)),
		)
	}
}
