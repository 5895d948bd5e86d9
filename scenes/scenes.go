// Package scenes holds the demo scene variants and their registry.
package scenes

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-scenes/engine"
	"github.com/Carmen-Shannon/oxy-scenes/engine/camera"
	"github.com/Carmen-Shannon/oxy-scenes/engine/loader"
	"github.com/Carmen-Shannon/oxy-scenes/engine/window"
)

// Variant is one demo scene: its static configuration, what it adds to the scene graph,
// and how it animates.
type Variant struct {
	Name        string
	Description string
	Config      engine.Config

	// Populate adds the variant's objects and lights.
	Populate engine.PopulateFunc

	// Model is an optional .glb or .gltf path loaded asynchronously after Populate's
	// content, placed with Placement.
	Model     string
	Placement []loader.PlacementOption

	// Orbit enables damped orbit control with OrbitOptions.
	Orbit        bool
	OrbitOptions []camera.OrbitControllerBuilderOption

	// Animate returns the per-frame callback for a mounted lifecycle, or nil.
	Animate func(lc engine.Lifecycle) func()
}

// Mount initializes lc in container, populates it and starts its frame loop.
// If the container is unavailable nothing is started and the zero handle is returned.
//
// Parameters:
//   - lc: a fresh lifecycle
//   - container: the mount container
//   - ld: the model loader, required when the variant has a Model
//
// Returns:
//   - engine.Handle: the loop handle to pass to lc.Teardown
//   - error: error if any lifecycle step fails
func (v *Variant) Mount(lc engine.Lifecycle, container window.Container, ld loader.Loader) (engine.Handle, error) {
	if err := lc.Initialize(container, v.Config); err != nil {
		return 0, fmt.Errorf("scenes: %s: %w", v.Name, err)
	}
	if !lc.Active() {
		return 0, nil
	}

	var err error
	switch {
	case v.Model != "":
		if ld == nil {
			lc.Teardown(0)
			return 0, fmt.Errorf("scenes: %s needs a model loader", v.Name)
		}
		if v.Populate != nil {
			// lights are present from the first frame; only the model is asynchronous
			v.Populate(lc.Scene())
		}
		err = lc.PopulateAsync(v.loadFunc(ld))
	case v.Populate != nil:
		err = lc.Populate(v.Populate)
	}
	if err != nil {
		lc.Teardown(0)
		return 0, fmt.Errorf("scenes: %s: populate: %w", v.Name, err)
	}

	if v.Orbit {
		if _, err := lc.EnableOrbit(v.OrbitOptions...); err != nil {
			lc.Teardown(0)
			return 0, fmt.Errorf("scenes: %s: orbit: %w", v.Name, err)
		}
	}

	var onFrame func()
	if v.Animate != nil {
		onFrame = v.Animate(lc)
	}
	h, err := lc.StartLoop(onFrame)
	if err != nil {
		lc.Teardown(0)
		return 0, fmt.Errorf("scenes: %s: %w", v.Name, err)
	}
	return h, nil
}

// loadFunc loads the variant's model and adds it to the scene.
func (v *Variant) loadFunc(ld loader.Loader) engine.LoadFunc {
	return ld.LoadFunc(v.Model, v.Placement...)
}

var (
	registryMu sync.RWMutex
	registry   []*Variant
)

// Register adds a variant to the registry. Panics on a duplicate or empty name.
//
// Parameters:
//   - v: the variant
func Register(v *Variant) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if v == nil || v.Name == "" {
		panic("scenes: Register with an unnamed variant")
	}
	for _, existing := range registry {
		if existing.Name == v.Name {
			panic("scenes: duplicate variant " + v.Name)
		}
	}
	registry = append(registry, v)
}

// All returns every registered variant in registration order.
func All() []*Variant {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]*Variant, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the variant registered under name.
func Lookup(name string) (*Variant, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	for _, v := range registry {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}

func init() {
	Register(Basic())
	Register(CubeObjects())
	Register(CameraControls())
	Register(Lighting())
	Register(ModelLoader())
	Register(GLBViewer())
}
