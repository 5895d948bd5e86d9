package scene

import (
	"image/color"
	"sync"

	"github.com/Carmen-Shannon/oxy-scenes/engine/game_object"
	"github.com/Carmen-Shannon/oxy-scenes/engine/light"
)

// Scene is an ordered collection of GameObjects and Lights drawn over a background color.
// Insertion order is traversal order. Thread-safe for concurrent access, though the
// lifecycle only mutates a scene from its frame loop or before the loop starts.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Background returns the clear color. Nil means transparent.
	Background() color.Color

	// SetBackground sets the clear color.
	//
	// Parameters:
	//   - c: the new background, or nil for transparent
	SetBackground(c color.Color)

	// Add appends objects to the scene. Nil objects and objects already present are ignored.
	//
	// Parameters:
	//   - objects: the objects to add
	Add(objects ...game_object.GameObject)

	// Remove removes the object with the given ID.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - bool: true if an object was removed
	Remove(id uint64) bool

	// Get returns the object with the given ID, or nil.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Objects returns a copy of the object list in insertion order.
	Objects() []game_object.GameObject

	// Len returns the number of objects in the scene.
	Len() int

	// AddLight appends lights to the scene. Nil lights are ignored.
	//
	// Parameters:
	//   - lights: the lights to add
	AddLight(lights ...light.Light)

	// RemoveLight removes a light by identity.
	//
	// Parameters:
	//   - l: the light to remove
	//
	// Returns:
	//   - bool: true if the light was removed
	RemoveLight(l light.Light) bool

	// Lights returns a copy of the light list in insertion order.
	Lights() []light.Light

	// Clear removes every object and light.
	Clear()
}

type scene struct {
	mu *sync.RWMutex

	name       string
	background color.Color
	objects    []game_object.GameObject
	index      map[uint64]int
	lights     []light.Light
}

var _ Scene = &scene{}

// NewScene creates an empty scene with the given options applied.
//
// Parameters:
//   - name: the scene identifier
//   - options: functional options for background and initial content
//
// Returns:
//   - Scene: the new scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:    &sync.RWMutex{},
		name:  name,
		index: make(map[uint64]int),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Background() color.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *scene) SetBackground(c color.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = c
}

func (s *scene) Add(objects ...game_object.GameObject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(objects...)
}

// add appends objects. Caller must hold the write lock.
func (s *scene) add(objects ...game_object.GameObject) {
	for _, obj := range objects {
		if obj == nil {
			continue
		}
		if _, exists := s.index[obj.ID()]; exists {
			continue
		}
		s.index[obj.ID()] = len(s.objects)
		s.objects = append(s.objects, obj)
	}
}

func (s *scene) Remove(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.objects = append(s.objects[:i], s.objects[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.objects); j++ {
		s.index[s.objects[j].ID()] = j
	}
	return true
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i, ok := s.index[id]; ok {
		return s.objects[i]
	}
	return nil
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]game_object.GameObject, len(s.objects))
	copy(out, s.objects)
	return out
}

func (s *scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *scene) AddLight(lights ...light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range lights {
		if l != nil {
			s.lights = append(s.lights, l)
		}
	}
}

func (s *scene) RemoveLight(l light.Light) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.lights {
		if existing == l {
			s.lights = append(s.lights[:i], s.lights[i+1:]...)
			return true
		}
	}
	return false
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = nil
	s.lights = nil
	s.index = make(map[uint64]int)
}
