package model

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func f32At(t *testing.T, buf []byte, offset int) float32 {
	t.Helper()
	if offset+4 > len(buf) {
		t.Fatalf("offset %d out of range for %d-byte buffer", offset, len(buf))
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

func TestGPUVertexMarshal(t *testing.T) {
	v := GPUVertex{
		Position: [3]float32{1, 2, 3},
		TexCoord: [2]float32{0.25, 0.75},
		Normal:   [3]float32{0, 1, 0},
	}
	buf := v.Marshal()

	if len(buf) != 32 {
		t.Fatalf("len = %d, want 32", len(buf))
	}
	if f32At(t, buf, 0) != 1 || f32At(t, buf, 4) != 2 || f32At(t, buf, 8) != 3 {
		t.Error("position not packed at offset 0")
	}
	if f32At(t, buf, 12) != 0.25 || f32At(t, buf, 16) != 0.75 {
		t.Error("tex coords not packed at offset 12")
	}
	if f32At(t, buf, 20) != 0 || f32At(t, buf, 24) != 1 || f32At(t, buf, 28) != 0 {
		t.Error("normal not packed at offset 20")
	}
}

func TestGPUColorVertexMarshal(t *testing.T) {
	v := GPUColorVertex{
		Position: [3]float32{-1, 0, 1},
		Color:    [4]float32{0.1, 0.2, 0.3, 1},
	}
	buf := v.Marshal()

	if len(buf) != 28 {
		t.Fatalf("len = %d, want 28", len(buf))
	}
	if f32At(t, buf, 0) != -1 || f32At(t, buf, 8) != 1 {
		t.Error("position not packed at offset 0")
	}
	if f32At(t, buf, 24) != 1 {
		t.Error("alpha not packed at offset 24")
	}
}

func TestMarshalBatches(t *testing.T) {
	if got := len(MarshalVertices(make([]GPUVertex, 24))); got != 24*32 {
		t.Errorf("MarshalVertices len = %d, want %d", got, 24*32)
	}
	if got := len(MarshalColorVertices(make([]GPUColorVertex, 24))); got != 24*28 {
		t.Errorf("MarshalColorVertices len = %d, want %d", got, 24*28)
	}
	if got := len(MarshalPositions(make([][3]float32, 8))); got != 8*12 {
		t.Errorf("MarshalPositions len = %d, want %d", got, 8*12)
	}

	vertices := []GPUVertex{
		{Position: [3]float32{1, 2, 3}, TexCoord: [2]float32{0, 1}},
		{Position: [3]float32{-1, 0, 1}, Normal: [3]float32{0, 1, 0}},
	}
	var want []byte
	for i := range vertices {
		want = append(want, vertices[i].Marshal()...)
	}
	if got := MarshalVertices(vertices); !bytes.Equal(got, want) {
		t.Error("MarshalVertices differs from concatenated per-vertex buffers")
	}
}

func TestMarshalIndices(t *testing.T) {
	buf := MarshalIndices([]uint32{0, 1, 2, 0, 2, 3})
	if len(buf) != 24 {
		t.Fatalf("len = %d, want 24", len(buf))
	}
	if binary.LittleEndian.Uint32(buf[8:]) != 2 {
		t.Errorf("index 2 = %d, want 2", binary.LittleEndian.Uint32(buf[8:]))
	}
	if binary.LittleEndian.Uint32(buf[20:]) != 3 {
		t.Errorf("index 5 = %d, want 3", binary.LittleEndian.Uint32(buf[20:]))
	}
}

func TestMarshalPositions(t *testing.T) {
	buf := MarshalPositions([][3]float32{{1, 2, 3}, {4, 5, 6}})
	if len(buf) != 24 {
		t.Fatalf("len = %d, want 24", len(buf))
	}
	if f32At(t, buf, 12) != 4 || f32At(t, buf, 16) != 5 || f32At(t, buf, 20) != 6 {
		t.Error("second position not packed at offset 12")
	}
}

func TestComputeBoundingRadius(t *testing.T) {
	tests := []struct {
		name     string
		vertices []GPUVertex
		want     float32
	}{
		{"empty slice", nil, 0},
		{"single axis", []GPUVertex{{Position: [3]float32{3, 0, 0}}}, 3},
		{
			"farthest vertex wins",
			[]GPUVertex{
				{Position: [3]float32{1, 0, 0}},
				{Position: [3]float32{0, 0, -5}},
				{Position: [3]float32{0, 2, 0}},
			},
			5,
		},
		{"diagonal", []GPUVertex{{Position: [3]float32{1, 1, 1}}}, float32(math.Sqrt(3))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeBoundingRadius(tt.vertices)
			if math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("ComputeBoundingRadius = %v, want %v", got, tt.want)
			}
		})
	}
}
