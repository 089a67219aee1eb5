package instance

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

func TestGPUInstanceMarshal(t *testing.T) {
	g := GPUInstance{Scale: [3]float32{2, 3, 4}}
	for i := range g.Model {
		g.Model[i] = float32(i)
	}
	buf := g.Marshal()

	if len(buf) != 76 {
		t.Fatalf("len = %d, want 76", len(buf))
	}
	if g.Size() != 76 {
		t.Errorf("Size() = %d, want 76", g.Size())
	}
	for i := range 16 {
		if got := f32At(t, buf, i*4); got != float32(i) {
			t.Errorf("model element %d = %v, want %v", i, got, float32(i))
		}
	}
	if f32At(t, buf, 64) != 2 || f32At(t, buf, 68) != 3 || f32At(t, buf, 72) != 4 {
		t.Error("scale vector not packed at offset 64")
	}
}

func TestGPUFlatInstanceMarshal(t *testing.T) {
	var g GPUFlatInstance
	g.Model[12] = 7
	buf := g.Marshal()

	if len(buf) != 64 {
		t.Fatalf("len = %d, want 64", len(buf))
	}
	if got := f32At(t, buf, 48); got != 7 {
		t.Errorf("translation x = %v, want 7", got)
	}
}

func TestMarshalInstances(t *testing.T) {
	t.Run("lit stride", func(t *testing.T) {
		buf := MarshalInstances(make([]GPUInstance, 3))
		if len(buf) != 3*76 {
			t.Errorf("len = %d, want %d", len(buf), 3*76)
		}
	})
	t.Run("flat stride", func(t *testing.T) {
		buf := MarshalFlatInstances(make([]GPUFlatInstance, 3))
		if len(buf) != 3*64 {
			t.Errorf("len = %d, want %d", len(buf), 3*64)
		}
	})
	t.Run("empty slices yield empty buffers", func(t *testing.T) {
		if len(MarshalInstances(nil)) != 0 || len(MarshalFlatInstances(nil)) != 0 {
			t.Error("nil input should produce empty output")
		}
	})

	t.Run("batch matches per-instance marshal", func(t *testing.T) {
		instances := make([]GPUInstance, 3)
		for i := range instances {
			instances[i].Model[12] = float32(i + 1)
			instances[i].Scale = [3]float32{1, 2, float32(i)}
		}
		var want []byte
		for i := range instances {
			want = append(want, instances[i].Marshal()...)
		}
		if got := MarshalInstances(instances); !bytes.Equal(got, want) {
			t.Error("MarshalInstances differs from concatenated per-instance buffers")
		}

		flats := make([]GPUFlatInstance, 3)
		for i := range flats {
			flats[i].Model[14] = float32(i) * 0.5
		}
		want = want[:0]
		for i := range flats {
			want = append(want, flats[i].Marshal()...)
		}
		if got := MarshalFlatInstances(flats); !bytes.Equal(got, want) {
			t.Error("MarshalFlatInstances differs from concatenated per-instance buffers")
		}
	})
}

func TestInstanceModelMatrix(t *testing.T) {
	t.Run("defaults to identity", func(t *testing.T) {
		inst := NewInstance()
		m := inst.ModelMatrix()
		for i := range 16 {
			want := float32(0)
			if i%5 == 0 {
				want = 1
			}
			if m[i] != want {
				t.Errorf("element %d = %v, want %v", i, m[i], want)
			}
		}
	})

	t.Run("position lands in the translation column", func(t *testing.T) {
		inst := NewInstance(WithPosition(3, 4, 5))
		m := inst.ModelMatrix()
		if m[12] != 3 || m[13] != 4 || m[14] != 5 {
			t.Errorf("translation = (%v, %v, %v), want (3, 4, 5)", m[12], m[13], m[14])
		}
	})

	t.Run("setters invalidate the cached matrix", func(t *testing.T) {
		inst := NewInstance()
		_ = inst.ModelMatrix()
		inst.SetPosition(1, 0, 0)
		if m := inst.ModelMatrix(); m[12] != 1 {
			t.Errorf("translation x = %v after SetPosition, want 1", m[12])
		}
		inst.SetScale(2, 2, 2)
		if m := inst.ModelMatrix(); m[0] != 2 {
			t.Errorf("scale x = %v after SetScale, want 2", m[0])
		}
	})

	t.Run("rotate accumulates deltas", func(t *testing.T) {
		inst := NewInstance()
		inst.Rotate(0.1, 0.2, 0.3)
		inst.Rotate(0.1, 0.2, 0.3)
		r := inst.Rotation()
		if !approx(r[0], 0.2) || !approx(r[1], 0.4) || !approx(r[2], 0.6) {
			t.Errorf("rotation = %v, want (0.2, 0.4, 0.6)", r)
		}
	})

	t.Run("snapshots carry matrix and scale", func(t *testing.T) {
		inst := NewInstance(
			WithPosition(1, 2, 3),
			WithScale(2, 1, 0.5),
		)
		g := inst.GPUInstance()
		if g.Scale != [3]float32{2, 1, 0.5} {
			t.Errorf("scale = %v, want (2, 1, 0.5)", g.Scale)
		}
		if g.Model[12] != 1 || g.Model[13] != 2 || g.Model[14] != 3 {
			t.Error("model translation missing from snapshot")
		}
		f := inst.GPUFlatInstance()
		if f.Model != g.Model {
			t.Error("flat snapshot model differs from lit snapshot model")
		}
	})
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-6
}
