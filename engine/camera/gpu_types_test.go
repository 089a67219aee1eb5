package camera

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestGPUCameraUniformMarshal(t *testing.T) {
	g := GPUCameraUniform{CameraPosition: [3]float32{1, 2, 3}}
	for i := range g.ViewProj {
		g.ViewProj[i] = float32(i) + 0.5
	}
	buf := g.Marshal()

	if len(buf) != 80 {
		t.Fatalf("len = %d, want 80", len(buf))
	}
	if g.Size() != 80 {
		t.Errorf("Size() = %d, want 80", g.Size())
	}

	for i := range 16 {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		if got != float32(i)+0.5 {
			t.Errorf("view_proj element %d = %v, want %v", i, got, float32(i)+0.5)
		}
	}
	for i := range 3 {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[64+i*4:]))
		if got != float32(i+1) {
			t.Errorf("position element %d = %v, want %v", i, got, float32(i+1))
		}
	}
	if pad := binary.LittleEndian.Uint32(buf[76:]); pad != 0 {
		t.Errorf("trailing pad = %d, want 0", pad)
	}
}
