package renderer

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-scenes/engine/camera"
	"github.com/Carmen-Shannon/oxy-scenes/engine/scene"
	"github.com/Carmen-Shannon/oxy-scenes/engine/window"
	"github.com/Carmen-Shannon/oxy-scenes/log"
)

var logger = log.New("renderer")

// ErrReleased is returned by Render after Release.
var ErrReleased = errors.New("renderer: released")

// ErrUnsupportedContainer is returned when a backend cannot attach to the given container.
var ErrUnsupportedContainer = errors.New("renderer: unsupported container")

// Renderer draws a scene from a camera into a surface node mounted in a container.
//
// Release frees every backend resource exactly once; later calls are no-ops and Render
// returns ErrReleased.
type Renderer interface {
	// Node returns the surface node this renderer draws into.
	//
	// Returns:
	//   - window.Node: the surface node
	Node() window.Node

	// Backend returns the backend type that implements this renderer.
	//
	// Returns:
	//   - RendererBackendType: the backend type
	Backend() RendererBackendType

	// Size returns the current surface size in pixels.
	//
	// Returns:
	//   - int: width
	//   - int: height
	Size() (int, int)

	// Resize configures the surface for a new size. Non-positive sizes are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// Render clears to the scene background and draws every enabled object lit by the scene's lights.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - c: the camera to draw from
	//
	// Returns:
	//   - error: ErrReleased after Release, or a backend error for this frame
	Render(s scene.Scene, c camera.Camera) error

	// Release frees the renderer's resources. Safe to call more than once.
	Release()

	// Released reports whether Release has run.
	//
	// Returns:
	//   - bool: true once released
	Released() bool
}

// Factory creates a renderer sized to a container.
type Factory func(container window.Container) (Renderer, error)

// NewFactory returns a Factory for the given backend type.
//
// Parameters:
//   - backendType: the backend to construct
//   - options: functional options passed to every renderer the factory creates
//
// Returns:
//   - Factory: the factory
func NewFactory(backendType RendererBackendType, options ...RendererBuilderOption) Factory {
	return func(container window.Container) (Renderer, error) {
		switch backendType {
		case BackendTypeSoftware:
			return NewSoftwareRenderer(container.Width(), container.Height(), options...)
		case BackendTypeWGPU:
			src, ok := container.(SurfaceSource)
			if !ok {
				return nil, fmt.Errorf("%w: %T has no surface descriptor", ErrUnsupportedContainer, container)
			}
			return NewWGPURenderer(src, container.Width(), container.Height(), options...)
		default:
			return nil, fmt.Errorf("renderer: unknown backend type %d", backendType)
		}
	}
}

var nodeCount atomic.Uint64

// surfaceNode is the window.Node a renderer mounts into its container.
type surfaceNode struct {
	label string
}

func newSurfaceNode(prefix string) *surfaceNode {
	return &surfaceNode{label: fmt.Sprintf("%s-%d", prefix, nodeCount.Add(1))}
}

func (n *surfaceNode) Label() string {
	return n.label
}
