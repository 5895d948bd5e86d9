package scene

import (
	"image/color"

	"github.com/Carmen-Shannon/oxy-scenes/engine/game_object"
	"github.com/Carmen-Shannon/oxy-scenes/engine/light"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithBackground sets the scene's clear color.
//
// Parameters:
//   - c: the background color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackground(c color.Color) SceneBuilderOption {
	return func(s *scene) {
		s.background = c
	}
}

// WithObjects adds initial objects to the scene.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		s.add(objects...)
	}
}

// WithLights adds initial lights to the scene.
//
// Parameters:
//   - lights: the lights to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		for _, l := range lights {
			if l != nil {
				s.lights = append(s.lights, l)
			}
		}
	}
}
