package model

// Primitive mesh constructors. These build fully populated Models with CPU-side
// vertex/index data ready for InitMeshBuffers; no GPU resources are created here.

import (
	"math"

	"github.com/kestrel-gfx/kestrel/engine/renderer/bind_group_provider"
)

// NewCube creates a unit cube Model centered on the origin with per-face
// normals and UVs, sized halfExtent in each direction from the center.
//
// Parameters:
//   - name: the model identifier, also used for the mesh provider label
//   - halfExtent: half the edge length of the cube
//
// Returns:
//   - Model: the cube model with vertex/index data populated
func NewCube(name string, halfExtent float32) Model {
	h := halfExtent

	// 24 vertices, 4 per face, so each face gets its own normal and UVs.
	vertices := []GPUVertex{
		// +Z front
		{Position: [3]float32{-h, -h, h}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{h, -h, h}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{h, h, h}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{-h, h, h}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{0, 0, 1}},
		// -Z back
		{Position: [3]float32{h, -h, -h}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{0, 0, -1}},
		{Position: [3]float32{-h, -h, -h}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{0, 0, -1}},
		{Position: [3]float32{-h, h, -h}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{0, 0, -1}},
		{Position: [3]float32{h, h, -h}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{0, 0, -1}},
		// +X right
		{Position: [3]float32{h, -h, h}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{h, -h, -h}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{h, h, -h}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{h, h, h}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{1, 0, 0}},
		// -X left
		{Position: [3]float32{-h, -h, -h}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{-1, 0, 0}},
		{Position: [3]float32{-h, -h, h}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{-1, 0, 0}},
		{Position: [3]float32{-h, h, h}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{-1, 0, 0}},
		{Position: [3]float32{-h, h, -h}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{-1, 0, 0}},
		// +Y top
		{Position: [3]float32{-h, h, h}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{h, h, h}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{h, h, -h}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{-h, h, -h}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{0, 1, 0}},
		// -Y bottom
		{Position: [3]float32{-h, -h, -h}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{0, -1, 0}},
		{Position: [3]float32{h, -h, -h}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{0, -1, 0}},
		{Position: [3]float32{h, -h, h}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{0, -1, 0}},
		{Position: [3]float32{-h, -h, h}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{0, -1, 0}},
	}

	indices := make([]uint32, 0, 36)
	for face := uint32(0); face < 6; face++ {
		base := face * 4
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return NewModel(
		WithName(name),
		WithMeshProvider(bind_group_provider.NewBindGroupProvider(name)),
		WithVertexData(MarshalVertices(vertices)),
		WithIndexData(MarshalIndices(indices)),
		WithIndexCount(len(indices)),
		WithBoundingRadius(ComputeBoundingRadius(vertices)),
	)
}

// NewPentagon creates a flat pentagon Model in the XY plane facing +Z.
// The five positions and UVs are the classic textured-quad warmup shape.
//
// Parameters:
//   - name: the model identifier, also used for the mesh provider label
//
// Returns:
//   - Model: the pentagon model with vertex/index data populated
func NewPentagon(name string) Model {
	normal := [3]float32{0, 0, 1}
	vertices := []GPUVertex{
		{Position: [3]float32{-0.0868241, 0.49240386, 0}, TexCoord: [2]float32{0.4131759, 0.00759614}, Normal: normal},
		{Position: [3]float32{-0.49513406, 0.06958647, 0}, TexCoord: [2]float32{0.0048659444, 0.43041354}, Normal: normal},
		{Position: [3]float32{-0.21918549, -0.44939706, 0}, TexCoord: [2]float32{0.28081453, 0.949397}, Normal: normal},
		{Position: [3]float32{0.35966998, -0.3473291, 0}, TexCoord: [2]float32{0.85967, 0.84732914}, Normal: normal},
		{Position: [3]float32{0.44147372, 0.2347359, 0}, TexCoord: [2]float32{0.9414737, 0.2652641}, Normal: normal},
	}
	indices := []uint32{0, 1, 4, 1, 2, 4, 2, 3, 4}

	return NewModel(
		WithName(name),
		WithMeshProvider(bind_group_provider.NewBindGroupProvider(name)),
		WithVertexData(MarshalVertices(vertices)),
		WithIndexData(MarshalIndices(indices)),
		WithIndexCount(len(indices)),
		WithBoundingRadius(ComputeBoundingRadius(vertices)),
	)
}

// NewMarkerCube creates a position-only cube Model for shaders whose vertex
// input carries just a position attribute, such as the light marker program.
// The eight corner vertices are shared across faces.
//
// Parameters:
//   - name: the model identifier, also used for the mesh provider label
//   - halfExtent: half the edge length of the cube
//
// Returns:
//   - Model: the marker cube model with 12-byte-stride vertex data populated
func NewMarkerCube(name string, halfExtent float32) Model {
	h := halfExtent

	positions := [][3]float32{
		{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}, // front corners
		{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h}, // back corners
	}
	indices := []uint32{
		0, 1, 2, 0, 2, 3, // +Z
		5, 4, 7, 5, 7, 6, // -Z
		1, 5, 6, 1, 6, 2, // +X
		4, 0, 3, 4, 3, 7, // -X
		3, 2, 6, 3, 6, 7, // +Y
		4, 5, 1, 4, 1, 0, // -Y
	}

	// All corners are equidistant from the origin.
	radius := float32(math.Sqrt(float64(3 * h * h)))

	return NewModel(
		WithName(name),
		WithMeshProvider(bind_group_provider.NewBindGroupProvider(name)),
		WithVertexData(MarshalPositions(positions)),
		WithIndexData(MarshalIndices(indices)),
		WithIndexCount(len(indices)),
		WithBoundingRadius(radius),
	)
}

// NewColorCube creates a unit cube Model with flat per-face colors instead of
// UVs and normals, for use with the flat-colored instanced pipeline.
//
// Parameters:
//   - name: the model identifier, also used for the mesh provider label
//   - halfExtent: half the edge length of the cube
//   - faceColors: six RGBA colors applied to the +Z, -Z, +X, -X, +Y, -Y faces in order
//
// Returns:
//   - Model: the flat-colored cube model with vertex/index data populated
func NewColorCube(name string, halfExtent float32, faceColors [6][4]float32) Model {
	h := halfExtent

	facePositions := [6][4][3]float32{
		{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}},     // +Z
		{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}}, // -Z
		{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}},     // +X
		{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}}, // -X
		{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}},     // +Y
		{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}}, // -Y
	}

	vertices := make([]GPUColorVertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for face := 0; face < 6; face++ {
		base := uint32(len(vertices))
		for corner := 0; corner < 4; corner++ {
			vertices = append(vertices, GPUColorVertex{
				Position: facePositions[face][corner],
				Color:    faceColors[face],
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	var maxDistSq float32
	for _, v := range vertices {
		p := v.Position
		distSq := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
		if distSq > maxDistSq {
			maxDistSq = distSq
		}
	}

	return NewModel(
		WithName(name),
		WithMeshProvider(bind_group_provider.NewBindGroupProvider(name)),
		WithVertexData(MarshalColorVertices(vertices)),
		WithIndexData(MarshalIndices(indices)),
		WithIndexCount(len(indices)),
		WithBoundingRadius(float32(math.Sqrt(float64(maxDistSq)))),
	)
}
