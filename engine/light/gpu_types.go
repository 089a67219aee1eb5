package light

import (
	"unsafe"

	"github.com/kestrel-gfx/kestrel/common"
)

// GPULightUniform is the GPU-aligned representation of the light uniform buffer.
// Matches the WGSL LightUniform struct layout exactly: two vec3<f32> fields,
// each padded to 16-byte alignment.
// Size: 32 bytes (WGSL std aligned).
type GPULightUniform struct {
	Position [3]float32 // offset  0: world-space position (vec3<f32>)
	_pad0    float32    // offset 12: padding to 16 bytes
	Color    [3]float32 // offset 16: RGB color (vec3<f32>)
	_pad1    float32    // offset 28: padding to 32 bytes
}

// Size returns the size of the GPULightUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPULightUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal reinterprets the packed struct memory as a byte buffer suitable for
// GPU upload. The returned slice aliases the receiver.
//
// Returns:
//   - []byte: 32-byte view of the uniform data
func (g *GPULightUniform) Marshal() []byte {
	return common.StructToBytes(g)
}
