package model

import (
	"math"
	"unsafe"

	"github.com/kestrel-gfx/kestrel/common"
)

// GPUVertex is the GPU-aligned representation of a single mesh vertex for lit
// textured pipelines. Field order matches the WGSL VertexInput struct for the
// lit mesh program: position at location 0, tex coords at location 1, normal
// at location 2, tightly packed.
// Size: 32 bytes.
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	TexCoord [2]float32 // offset 12: UV texture coordinate (8 bytes)
	Normal   [3]float32 // offset 20: vertex normal for lighting (12 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal reinterprets the packed struct memory as a byte buffer suitable for
// GPU upload. The returned slice aliases the receiver.
//
// Returns:
//   - []byte: 32-byte view of the vertex data
func (g *GPUVertex) Marshal() []byte {
	return common.StructToBytes(g)
}

// GPUColorVertex is the GPU-aligned representation of a single mesh vertex for
// flat-colored pipelines. Field order matches the WGSL VertexInput struct for
// the flat mesh program: position at location 0, color at location 1.
// Size: 28 bytes.
type GPUColorVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Color    [4]float32 // offset 12: per-vertex RGBA color (16 bytes)
}

// Size returns the size of the GPUColorVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUColorVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal reinterprets the packed struct memory as a byte buffer suitable for
// GPU upload. The returned slice aliases the receiver.
//
// Returns:
//   - []byte: 28-byte view of the vertex data
func (g *GPUColorVertex) Marshal() []byte {
	return common.StructToBytes(g)
}

// MarshalVertices reinterprets a slice of GPUVertex as a contiguous byte buffer
// suitable for a single vertex buffer upload. The returned buffer aliases the
// input slice.
//
// Parameters:
//   - vertices: the vertices to serialize
//
// Returns:
//   - []byte: the serialized vertex data
func MarshalVertices(vertices []GPUVertex) []byte {
	return common.SliceToBytes(vertices)
}

// MarshalColorVertices reinterprets a slice of GPUColorVertex as a contiguous
// byte buffer suitable for a single vertex buffer upload. The returned buffer
// aliases the input slice.
//
// Parameters:
//   - vertices: the vertices to serialize
//
// Returns:
//   - []byte: the serialized vertex data
func MarshalColorVertices(vertices []GPUColorVertex) []byte {
	return common.SliceToBytes(vertices)
}

// MarshalIndices reinterprets a slice of uint32 indices as a byte buffer
// suitable for an index buffer upload. The returned buffer aliases the input
// slice.
//
// Parameters:
//   - indices: the indices to serialize
//
// Returns:
//   - []byte: the serialized index data
func MarshalIndices(indices []uint32) []byte {
	return common.SliceToBytes(indices)
}

// MarshalPositions reinterprets bare vertex positions as a byte buffer with a
// 12-byte stride, for shaders whose vertex input carries only a position
// attribute. The returned buffer aliases the input slice.
//
// Parameters:
//   - positions: the positions to serialize
//
// Returns:
//   - []byte: the serialized position data
func MarshalPositions(positions [][3]float32) []byte {
	return common.SliceToBytes(positions)
}

// ComputeBoundingRadius calculates the bounding sphere radius from a slice of
// GPUVertex positions. The radius is the maximum distance from the origin
// across all vertices in the slice.
//
// Parameters:
//   - vertices: the vertex data to compute the bounding radius from
//
// Returns:
//   - float32: the maximum distance from the origin
func ComputeBoundingRadius(vertices []GPUVertex) float32 {
	var maxDistSq float32
	for _, v := range vertices {
		p := v.Position
		distSq := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
		if distSq > maxDistSq {
			maxDistSq = distSq
		}
	}
	return float32(math.Sqrt(float64(maxDistSq)))
}
