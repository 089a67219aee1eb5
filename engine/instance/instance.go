// Package instance provides per-instance transform state for instanced draw
// calls. An Instance holds position, rotation, and scale on the CPU side; the
// gpu_types helpers marshal the flattened model matrix (plus scale for lit
// pipelines) into the per-instance vertex buffer bound at slot 1.
package instance

import (
	"sync"

	"github.com/kestrel-gfx/kestrel/common"
)

// instanceImpl is the implementation of the Instance interface.
type instanceImpl struct {
	mu *sync.Mutex

	position [3]float32
	rotation [3]float32 // Euler angles in radians, applied as Ry * Rx * Rz
	scale    [3]float32

	modelMatrix [16]float32
	dirty       bool
}

// Instance defines the interface for a single renderable instance of a mesh.
// The model matrix is rebuilt lazily from position/rotation/scale when read.
type Instance interface {
	// Position returns the world-space position of the instance.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Rotation returns the Euler rotation angles in radians.
	//
	// Returns:
	//   - [3]float32: rotation as (x, y, z) in radians
	Rotation() [3]float32

	// Scale returns the per-axis scale factors.
	//
	// Returns:
	//   - [3]float32: scale as (x, y, z)
	Scale() [3]float32

	// ModelMatrix returns the instance's model-to-world transform as 16 floats
	// (column-major), rebuilding it from position/rotation/scale if stale.
	//
	// Returns:
	//   - [16]float32: the model matrix
	ModelMatrix() [16]float32

	// SetPosition sets the world-space position and marks the matrix stale.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetRotation sets the Euler rotation angles in radians and marks the matrix stale.
	//
	// Parameters:
	//   - x, y, z: rotation angles in radians
	SetRotation(x, y, z float32)

	// SetScale sets the per-axis scale factors and marks the matrix stale.
	//
	// Parameters:
	//   - x, y, z: scale factors
	SetScale(x, y, z float32)

	// Rotate adds deltas to the Euler rotation angles and marks the matrix stale.
	// Used to spin instances per tick.
	//
	// Parameters:
	//   - dx, dy, dz: rotation deltas in radians
	Rotate(dx, dy, dz float32)

	// GPUInstance snapshots the instance into its GPU-aligned representation for
	// lit pipelines (model matrix + scale).
	//
	// Returns:
	//   - GPUInstance: the per-instance attribute struct ready for Marshal
	GPUInstance() GPUInstance

	// GPUFlatInstance snapshots the instance into its GPU-aligned representation
	// for flat-colored pipelines (model matrix only).
	//
	// Returns:
	//   - GPUFlatInstance: the per-instance attribute struct ready for Marshal
	GPUFlatInstance() GPUFlatInstance
}

var _ Instance = &instanceImpl{}

// NewInstance creates a new Instance at the origin with identity rotation and
// unit scale, then applies any provided options.
//
// Parameters:
//   - options: functional options to configure the instance
//
// Returns:
//   - Instance: the newly created instance
func NewInstance(options ...InstanceBuilderOption) Instance {
	inst := &instanceImpl{
		mu:    &sync.Mutex{},
		scale: [3]float32{1, 1, 1},
		dirty: true,
	}
	for _, option := range options {
		option(inst)
	}
	return inst
}

func (inst *instanceImpl) Position() [3]float32 {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.position
}

func (inst *instanceImpl) Rotation() [3]float32 {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.rotation
}

func (inst *instanceImpl) Scale() [3]float32 {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.scale
}

func (inst *instanceImpl) ModelMatrix() [16]float32 {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	inst.rebuildLocked()
	return inst.modelMatrix
}

func (inst *instanceImpl) SetPosition(x, y, z float32) {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	inst.position = [3]float32{x, y, z}
	inst.dirty = true
}

func (inst *instanceImpl) SetRotation(x, y, z float32) {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	inst.rotation = [3]float32{x, y, z}
	inst.dirty = true
}

func (inst *instanceImpl) SetScale(x, y, z float32) {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	inst.scale = [3]float32{x, y, z}
	inst.dirty = true
}

func (inst *instanceImpl) Rotate(dx, dy, dz float32) {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	inst.rotation[0] += dx
	inst.rotation[1] += dy
	inst.rotation[2] += dz
	inst.dirty = true
}

func (inst *instanceImpl) GPUInstance() GPUInstance {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	inst.rebuildLocked()
	return GPUInstance{
		Model: inst.modelMatrix,
		Scale: inst.scale,
	}
}

func (inst *instanceImpl) GPUFlatInstance() GPUFlatInstance {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	inst.rebuildLocked()
	return GPUFlatInstance{
		Model: inst.modelMatrix,
	}
}

// rebuildLocked recomputes the model matrix if stale. Caller must hold the mutex.
func (inst *instanceImpl) rebuildLocked() {
	if !inst.dirty {
		return
	}
	common.BuildModelMatrix(inst.modelMatrix[:],
		inst.position[0], inst.position[1], inst.position[2],
		inst.rotation[0], inst.rotation[1], inst.rotation[2],
		inst.scale[0], inst.scale[1], inst.scale[2],
	)
	inst.dirty = false
}
