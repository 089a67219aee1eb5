package instance

import (
	"github.com/kestrel-gfx/kestrel/common"
)

// GPUInstance is the GPU-aligned representation of a single lit-pipeline
// instance. Field order matches the WGSL InstanceInput struct for the lit mesh
// program: four mat4x4 column vectors at locations 5 through 8 followed by the
// per-axis scale vector at location 9, tightly packed in the vertex buffer.
// Size: 76 bytes.
type GPUInstance struct {
	Model [16]float32 // offset  0: model-to-world transform, column-major (64 bytes)
	Scale [3]float32  // offset 64: per-axis scale used for the normal correction (12 bytes)
}

// Size returns the size of the GPUInstance struct when packed for GPU upload.
//
// Returns:
//   - int: the packed size in bytes (76)
func (g *GPUInstance) Size() int {
	return 76
}

// Marshal reinterprets the packed struct memory as a byte buffer suitable for
// GPU upload. The returned slice aliases the receiver.
//
// Returns:
//   - []byte: 76-byte view of the instance data
func (g *GPUInstance) Marshal() []byte {
	return common.StructToBytes(g)
}

// GPUFlatInstance is the GPU-aligned representation of a single flat-pipeline
// instance. Field order matches the WGSL InstanceInput struct for the flat mesh
// program: four mat4x4 column vectors at locations 5 through 8.
// Size: 64 bytes.
type GPUFlatInstance struct {
	Model [16]float32 // offset 0: model-to-world transform, column-major (64 bytes)
}

// Size returns the size of the GPUFlatInstance struct when packed for GPU upload.
//
// Returns:
//   - int: the packed size in bytes (64)
func (g *GPUFlatInstance) Size() int {
	return 64
}

// Marshal reinterprets the packed struct memory as a byte buffer suitable for
// GPU upload. The returned slice aliases the receiver.
//
// Returns:
//   - []byte: 64-byte view of the instance data
func (g *GPUFlatInstance) Marshal() []byte {
	return common.StructToBytes(g)
}

// MarshalInstances reinterprets a slice of GPUInstance as a contiguous byte
// buffer suitable for a single instance buffer upload. The returned slice
// aliases the input.
//
// Parameters:
//   - instances: the instances to serialize
//
// Returns:
//   - []byte: the serialized instance data
func MarshalInstances(instances []GPUInstance) []byte {
	return common.SliceToBytes(instances)
}

// MarshalFlatInstances reinterprets a slice of GPUFlatInstance as a contiguous
// byte buffer suitable for a single instance buffer upload. The returned slice
// aliases the input.
//
// Parameters:
//   - instances: the instances to serialize
//
// Returns:
//   - []byte: the serialized instance data
func MarshalFlatInstances(instances []GPUFlatInstance) []byte {
	return common.SliceToBytes(instances)
}
