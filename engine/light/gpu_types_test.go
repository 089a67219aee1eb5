package light

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestGPULightUniformMarshal(t *testing.T) {
	g := GPULightUniform{
		Position: [3]float32{2, 4, 6},
		Color:    [3]float32{1, 0.5, 0.25},
	}
	buf := g.Marshal()

	if len(buf) != 32 {
		t.Fatalf("len = %d, want 32", len(buf))
	}
	if g.Size() != 32 {
		t.Errorf("Size() = %d, want 32", g.Size())
	}

	read := func(offset int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
	}
	if read(0) != 2 || read(4) != 4 || read(8) != 6 {
		t.Error("position not packed at offset 0")
	}
	if read(16) != 1 || read(20) != 0.5 || read(24) != 0.25 {
		t.Error("color not packed at offset 16")
	}
	// Each vec3 pads to a 16-byte boundary.
	if binary.LittleEndian.Uint32(buf[12:]) != 0 || binary.LittleEndian.Uint32(buf[28:]) != 0 {
		t.Error("padding bytes must be zero")
	}
}
