package game_object

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithName overrides the object's label.
//
// Parameters:
//   - name: the label
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithEnabled sets whether the GameObject is drawn.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled = enabled
	}
}

// WithMaterial sets the surface material.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the material
func WithMaterial(m Material) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.material = m
	}
}

// WithPosition sets the initial position of the GameObject.
//
// Parameters:
//   - x: the x position
//   - y: the y position
//   - z: the z position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = [3]float32{x, y, z}
	}
}

// WithScale sets the initial scale of the GameObject.
//
// Parameters:
//   - sx: the x scale factor
//   - sy: the y scale factor
//   - sz: the z scale factor
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial scale
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = [3]float32{sx, sy, sz}
	}
}

// WithRotation sets the initial Euler rotation of the GameObject in radians.
//
// Parameters:
//   - rx: the x rotation angle
//   - ry: the y rotation angle
//   - rz: the z rotation angle
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial rotation
func WithRotation(rx, ry, rz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotation = [3]float32{rx, ry, rz}
	}
}

// WithRotationSpeed sets the per-tick rotation increment applied by Spin.
//
// Parameters:
//   - rx: radians added to the x rotation each tick
//   - ry: radians added to the y rotation each tick
//   - rz: radians added to the z rotation each tick
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rotation speed
func WithRotationSpeed(rx, ry, rz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotationSpeed = [3]float32{rx, ry, rz}
	}
}
