package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-scenes/engine/game_object"
	"github.com/Carmen-Shannon/oxy-scenes/engine/scene"
	"github.com/Carmen-Shannon/oxy-scenes/log"
)

var logger = log.New("loader")

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	baseDir    string
	modelCache map[string]*Model
}

// Loader parses glTF and GLB assets into static models and caches them by path.
type Loader interface {
	// Load parses a .gltf or .glb file and caches the result.
	// If the model is already cached (by path), the cached version is returned.
	// Relative paths resolve against the loader's base directory.
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - *Model: the loaded model
	//   - error: error if reading or parsing fails
	Load(path string) (*Model, error)

	// LoadReader parses a GLB or glTF stream and caches it by the given name.
	// External buffer URIs resolve against the loader's base directory.
	//
	// Parameters:
	//   - name: the cache key for the loaded model
	//   - r: the reader providing model data
	//
	// Returns:
	//   - *Model: the loaded model
	//   - error: error if reading or parsing fails
	LoadReader(name string, r io.Reader) (*Model, error)

	// Get retrieves a cached model by name. Returns nil if not found.
	Get(name string) *Model

	// Models returns a copy of the model cache.
	Models() map[string]*Model

	// LoadFunc returns an asynchronous load step for a lifecycle. The returned function
	// loads the model when run and yields a population step adding one object per part.
	// It returns early with the context's error if the context is cancelled.
	//
	// Parameters:
	//   - path: the file path to the model file
	//   - options: placement options for the created objects
	//
	// Returns:
	//   - func(ctx context.Context) (func(scene.Scene), error): the load step
	LoadFunc(path string, options ...PlacementOption) func(ctx context.Context) (func(scene.Scene), error)
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:         sync.RWMutex{},
		modelCache: make(map[string]*Model),
	}
	for _, option := range options {
		option(l)
	}
	return l
}

// ParseGLB parses a GLB container, or glTF JSON with embedded data URIs, from r.
//
// Parameters:
//   - r: the reader providing model data
//
// Returns:
//   - *Model: the parsed model, named "model"
//   - error: error if reading or parsing fails
func ParseGLB(r io.Reader) (*Model, error) {
	return parseReader("model", r, "")
}

// ParseFile parses the .gltf or .glb file at path. External buffers resolve next to it.
//
// Parameters:
//   - path: the file path to the model file
//
// Returns:
//   - *Model: the parsed model, named after the file
//   - error: error if reading or parsing fails
func ParseFile(path string) (*Model, error) {
	if err := checkExtension(path); err != nil {
		return nil, err
	}
	p, err := parseFile(path)
	if err != nil {
		return nil, err
	}
	return extractModel(p, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
}

func parseReader(name string, r io.Reader, baseDir string) (*Model, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", name, err)
	}
	p, err := parseAsset(buf.Bytes(), baseDir)
	if err != nil {
		return nil, err
	}
	return extractModel(p, name)
}

func (l *loader) Load(path string) (*Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	m, err := ParseFile(l.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	logger.Debugf("loaded %s: %d parts, %d triangles", path, len(m.Parts), m.TriangleCount())

	l.mu.Lock()
	l.modelCache[path] = m
	l.mu.Unlock()

	return m, nil
}

func (l *loader) LoadReader(name string, r io.Reader) (*Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	m, err := parseReader(name, r, l.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}

	l.mu.Lock()
	l.modelCache[name] = m
	l.mu.Unlock()

	return m, nil
}

func (l *loader) Get(name string) *Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]*Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]*Model, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}

func (l *loader) LoadFunc(path string, options ...PlacementOption) func(ctx context.Context) (func(scene.Scene), error) {
	pl := newPlacement(options...)
	return func(ctx context.Context) (func(scene.Scene), error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m, err := l.Load(path)
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return func(s scene.Scene) {
			s.Add(m.Objects(pl.objectOptions(m)...)...)
		}, nil
	}
}

// resolve joins relative paths onto the base directory.
func (l *loader) resolve(path string) string {
	if l.baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(l.baseDir, path)
}

// checkExtension accepts .gltf and .glb files only.
func checkExtension(path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gltf", ".glb":
		return nil
	default:
		return fmt.Errorf("%w: model format %q", ErrUnsupported, ext)
	}
}

// placement positions the objects created from a model.
type placement struct {
	scale    float32
	offset   [3]float32
	centered bool
	spin     [3]float32
}

func newPlacement(options ...PlacementOption) *placement {
	pl := &placement{scale: 1}
	for _, option := range options {
		option(pl)
	}
	return pl
}

// objectOptions returns the game object options realizing the placement for m.
// Centering moves the model's bounding-box center to the offset before scaling.
func (pl *placement) objectOptions(m *Model) []game_object.GameObjectBuilderOption {
	x, y, z := pl.offset[0], pl.offset[1], pl.offset[2]
	if pl.centered {
		lo, hi := m.Bounds()
		c := lo.Add(hi).Mul(0.5 * pl.scale)
		x, y, z = x-c[0], y-c[1], z-c[2]
	}
	return []game_object.GameObjectBuilderOption{
		game_object.WithScale(pl.scale, pl.scale, pl.scale),
		game_object.WithPosition(x, y, z),
		game_object.WithRotationSpeed(pl.spin[0], pl.spin[1], pl.spin[2]),
	}
}
