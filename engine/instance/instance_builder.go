package instance

// InstanceBuilderOption is a functional option for configuring an Instance via NewInstance.
type InstanceBuilderOption func(*instanceImpl)

// WithPosition sets the initial world-space position of the instance.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - InstanceBuilderOption: a function that applies the position option to an instance
func WithPosition(x, y, z float32) InstanceBuilderOption {
	return func(inst *instanceImpl) {
		inst.position = [3]float32{x, y, z}
	}
}

// WithRotation sets the initial Euler rotation angles in radians.
//
// Parameters:
//   - x, y, z: rotation angles in radians
//
// Returns:
//   - InstanceBuilderOption: a function that applies the rotation option to an instance
func WithRotation(x, y, z float32) InstanceBuilderOption {
	return func(inst *instanceImpl) {
		inst.rotation = [3]float32{x, y, z}
	}
}

// WithScale sets the initial per-axis scale factors.
//
// Parameters:
//   - x, y, z: scale factors
//
// Returns:
//   - InstanceBuilderOption: a function that applies the scale option to an instance
func WithScale(x, y, z float32) InstanceBuilderOption {
	return func(inst *instanceImpl) {
		inst.scale = [3]float32{x, y, z}
	}
}

// WithUniformScale sets the same scale factor on all three axes.
//
// Parameters:
//   - s: the uniform scale factor
//
// Returns:
//   - InstanceBuilderOption: a function that applies the uniform scale option to an instance
func WithUniformScale(s float32) InstanceBuilderOption {
	return func(inst *instanceImpl) {
		inst.scale = [3]float32{s, s, s}
	}
}
