package engine

import (
	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-scenes/engine/frame"
	"github.com/Carmen-Shannon/oxy-scenes/engine/renderer"
)

// LifecycleBuilderOption is a functional option for configuring a Lifecycle.
// Use the With* functions to create options that are applied directly to the lifecycle instance.
type LifecycleBuilderOption func(*lifecycle)

// WithName sets the name used for the scene and in log lines.
//
// Parameters:
//   - name: the lifecycle name
//
// Returns:
//   - LifecycleBuilderOption: option function to apply
func WithName(name string) LifecycleBuilderOption {
	return func(l *lifecycle) {
		if name != "" {
			l.name = name
		}
	}
}

// WithRendererFactory sets how Initialize creates the renderer for a container.
//
// Parameters:
//   - factory: the renderer factory
//
// Returns:
//   - LifecycleBuilderOption: option function to apply
func WithRendererFactory(factory renderer.Factory) LifecycleBuilderOption {
	return func(l *lifecycle) {
		if factory != nil {
			l.factory = factory
		}
	}
}

// WithFrameSource sets the refresh signal that drives the frame loop.
// The lifecycle stops the source at Teardown.
//
// Parameters:
//   - src: the frame source
//
// Returns:
//   - LifecycleBuilderOption: option function to apply
func WithFrameSource(src frame.Source) LifecycleBuilderOption {
	return func(l *lifecycle) {
		l.source = src
	}
}

// WithFPS sets the rate of the ticker source created when no frame source is given.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target frames per second
//
// Returns:
//   - LifecycleBuilderOption: option function to apply
func WithFPS(fps float64) LifecycleBuilderOption {
	return func(l *lifecycle) {
		if fps <= 0 {
			fps = frame.DefaultFPS
		}
		l.fps = fps
	}
}

// WithLoaderPool sets the worker pool PopulateAsync submits loads to. The caller keeps
// ownership of the pool; without this option SharedLoaderPool is used.
//
// Parameters:
//   - pool: the worker pool
//
// Returns:
//   - LifecycleBuilderOption: option function to apply
func WithLoaderPool(pool worker.DynamicWorkerPool) LifecycleBuilderOption {
	return func(l *lifecycle) {
		l.pool = pool
	}
}

// WithProfiling enables or disables per-second frame statistics in the log.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - LifecycleBuilderOption: option function to apply
func WithProfiling(enabled bool) LifecycleBuilderOption {
	return func(l *lifecycle) {
		l.profilingEnabled = enabled
	}
}
