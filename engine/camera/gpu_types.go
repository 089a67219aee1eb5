package camera

import (
	"unsafe"

	"github.com/kestrel-gfx/kestrel/common"
)

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer.
// Matches the WGSL CameraUniform struct layout exactly.
// Size: 80 bytes (WGSL std aligned).
type GPUCameraUniform struct {
	ViewProj       [16]float32 // offset  0: combined view-projection matrix (mat4x4<f32>)
	CameraPosition [3]float32  // offset 64: world-space camera position (vec3<f32>)
	_pad           float32     // offset 76: padding to 80 bytes
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal reinterprets the packed struct memory as a byte buffer suitable for
// GPU upload. The returned slice aliases the receiver.
//
// Returns:
//   - []byte: 80-byte view of the uniform data
func (g *GPUCameraUniform) Marshal() []byte {
	return common.StructToBytes(g)
}
