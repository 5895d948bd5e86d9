package loader

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithBaseDir is an option builder that sets the directory relative model paths resolve against.
//
// Parameters:
//   - dir: the base directory
//
// Returns:
//   - LoaderBuilderOption: a function that applies the base directory option to a loader
func WithBaseDir(dir string) LoaderBuilderOption {
	return func(l *loader) {
		l.baseDir = dir
	}
}

// WithModel is an option builder that pre-populates the model cache with a model.
//
// Parameters:
//   - key: the cache key for the model
//   - model: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, model *Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = model
	}
}

// PlacementOption configures how LoadFunc places the objects of a model.
type PlacementOption func(*placement)

// WithScale sets a uniform scale for every part. Non-positive values are ignored.
func WithScale(s float32) PlacementOption {
	return func(p *placement) {
		if s > 0 {
			p.scale = s
		}
	}
}

// WithOffset translates every part by (x, y, z).
func WithOffset(x, y, z float32) PlacementOption {
	return func(p *placement) {
		p.offset = [3]float32{x, y, z}
	}
}

// WithCentered moves the model's bounding-box center to the offset.
func WithCentered(centered bool) PlacementOption {
	return func(p *placement) {
		p.centered = centered
	}
}

// WithSpin sets a per-tick rotation increment in radians for every part.
func WithSpin(rx, ry, rz float32) PlacementOption {
	return func(p *placement) {
		p.spin = [3]float32{rx, ry, rz}
	}
}
