package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-scenes/common"
	"github.com/Carmen-Shannon/oxy-scenes/engine/geometry"
)

// objectCount is an atomic counter used to assign unique IDs to objects.
var objectCount atomic.Uint64

type gameObject struct {
	mu *sync.RWMutex

	id       uint64
	name     string
	enabled  bool
	mesh     *geometry.Mesh
	material Material

	position      mgl32.Vec3
	rotation      mgl32.Vec3
	rotationSpeed mgl32.Vec3
	scale         mgl32.Vec3
}

// GameObject is a renderable scene entity: a mesh drawn with a material at a transform.
// Rotation is an XYZ Euler triple in radians. RotationSpeed is the increment Spin adds
// each frame tick, so a constant per-tick rotation needs no per-frame closure state.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's label.
	//
	// Returns:
	//   - string: the name, defaulting to the mesh name
	Name() string

	// Enabled returns whether this object is drawn.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Mesh returns the object's geometry.
	//
	// Returns:
	//   - *geometry.Mesh: the mesh
	Mesh() *geometry.Mesh

	// Material returns the object's surface description.
	//
	// Returns:
	//   - Material: the material
	Material() Material

	// Position returns the world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Rotation returns the XYZ Euler rotation in radians, each component in [0, 2π).
	//
	// Returns:
	//   - mgl32.Vec3: the rotation
	Rotation() mgl32.Vec3

	// RotationSpeed returns the per-tick rotation increment in radians.
	//
	// Returns:
	//   - mgl32.Vec3: the increment
	RotationSpeed() mgl32.Vec3

	// Scale returns the per-axis scale.
	//
	// Returns:
	//   - mgl32.Vec3: the scale
	Scale() mgl32.Vec3

	// ModelMatrix returns translation * rotation(X, then Y, then Z) * scale.
	//
	// Returns:
	//   - mgl32.Mat4: the object-to-world matrix
	ModelMatrix() mgl32.Mat4

	// Spin advances the rotation by one RotationSpeed increment, wrapping to [0, 2π).
	Spin()

	// SetEnabled sets whether the object is drawn.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetPosition sets the world-space position.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetRotation sets the Euler rotation in radians.
	//
	// Parameters:
	//   - rx, ry, rz: rotation angles
	SetRotation(rx, ry, rz float32)

	// SetRotationSpeed sets the per-tick rotation increment.
	//
	// Parameters:
	//   - rx, ry, rz: increments in radians per tick
	SetRotationSpeed(rx, ry, rz float32)

	// SetScale sets the per-axis scale.
	//
	// Parameters:
	//   - sx, sy, sz: scale factors
	SetScale(sx, sy, sz float32)

	// SetMaterial replaces the object's material.
	//
	// Parameters:
	//   - m: the new material
	SetMaterial(m Material)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject for the given mesh configured with the given options.
// Panics if mesh is nil.
//
// Parameters:
//   - mesh: the geometry to draw
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(mesh *geometry.Mesh, options ...GameObjectBuilderOption) GameObject {
	if mesh == nil {
		panic("game_object: mesh must not be nil")
	}
	obj := &gameObject{
		mu:       &sync.RWMutex{},
		id:       objectCount.Add(1),
		name:     mesh.Name,
		enabled:  true,
		mesh:     mesh,
		material: DefaultMaterial(),
		scale:    mgl32.Vec3{1, 1, 1},
	}
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.enabled
}

func (g *gameObject) Mesh() *geometry.Mesh {
	return g.mesh
}

func (g *gameObject) Material() Material {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.material
}

func (g *gameObject) Position() mgl32.Vec3 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.position
}

func (g *gameObject) Rotation() mgl32.Vec3 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rotation
}

func (g *gameObject) RotationSpeed() mgl32.Vec3 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rotationSpeed
}

func (g *gameObject) Scale() mgl32.Vec3 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.scale
}

func (g *gameObject) ModelMatrix() mgl32.Mat4 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	rot := mgl32.HomogRotate3DX(g.rotation[0]).
		Mul4(mgl32.HomogRotate3DY(g.rotation[1])).
		Mul4(mgl32.HomogRotate3DZ(g.rotation[2]))
	return mgl32.Translate3D(g.position[0], g.position[1], g.position[2]).
		Mul4(rot).
		Mul4(mgl32.Scale3D(g.scale[0], g.scale[1], g.scale[2]))
}

func (g *gameObject) Spin() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.rotationSpeed == (mgl32.Vec3{}) {
		return
	}
	for i := range g.rotation {
		g.rotation[i] = common.WrapAngle(g.rotation[i] + g.rotationSpeed[i])
	}
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.enabled = enabled
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = mgl32.Vec3{x, y, z}
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = mgl32.Vec3{common.WrapAngle(rx), common.WrapAngle(ry), common.WrapAngle(rz)}
}

func (g *gameObject) SetRotationSpeed(rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotationSpeed = mgl32.Vec3{rx, ry, rz}
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = mgl32.Vec3{sx, sy, sz}
}

func (g *gameObject) SetMaterial(m Material) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.material = m
}
