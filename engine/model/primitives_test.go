package model

import (
	"math"
	"testing"
)

func TestNewCube(t *testing.T) {
	mdl := NewCube("cube", 0.5)

	if mdl.Name() != "cube" {
		t.Errorf("name = %q, want cube", mdl.Name())
	}
	// 24 vertices at 32 bytes, 36 indices.
	if got := len(mdl.VertexData()); got != 24*32 {
		t.Errorf("vertex data = %d bytes, want %d", got, 24*32)
	}
	if got := len(mdl.IndexData()); got != 36*4 {
		t.Errorf("index data = %d bytes, want %d", got, 36*4)
	}
	if mdl.IndexCount() != 36 {
		t.Errorf("index count = %d, want 36", mdl.IndexCount())
	}
	want := float32(math.Sqrt(0.75))
	if math.Abs(float64(mdl.BoundingRadius()-want)) > 1e-6 {
		t.Errorf("bounding radius = %v, want %v", mdl.BoundingRadius(), want)
	}
	if mdl.MeshProvider() == nil {
		t.Error("mesh provider missing")
	}
}

func TestNewPentagon(t *testing.T) {
	mdl := NewPentagon("pentagon")

	if got := len(mdl.VertexData()); got != 5*32 {
		t.Errorf("vertex data = %d bytes, want %d", got, 5*32)
	}
	if mdl.IndexCount() != 9 {
		t.Errorf("index count = %d, want 9 (three fan triangles)", mdl.IndexCount())
	}
	if mdl.BoundingRadius() <= 0 || mdl.BoundingRadius() >= 1 {
		t.Errorf("bounding radius = %v, want within (0, 1)", mdl.BoundingRadius())
	}
}

func TestNewMarkerCube(t *testing.T) {
	mdl := NewMarkerCube("marker", 0.5)

	// Eight shared corners at the position-only 12-byte stride.
	if got := len(mdl.VertexData()); got != 8*12 {
		t.Errorf("vertex data = %d bytes, want %d", got, 8*12)
	}
	if mdl.IndexCount() != 36 {
		t.Errorf("index count = %d, want 36", mdl.IndexCount())
	}
	want := float32(math.Sqrt(0.75))
	if math.Abs(float64(mdl.BoundingRadius()-want)) > 1e-6 {
		t.Errorf("bounding radius = %v, want %v", mdl.BoundingRadius(), want)
	}
}

func TestNewColorCube(t *testing.T) {
	var colors [6][4]float32
	for i := range colors {
		colors[i] = [4]float32{float32(i) / 5, 0, 0, 1}
	}
	mdl := NewColorCube("color_cube", 0.5, colors)

	if got := len(mdl.VertexData()); got != 24*28 {
		t.Errorf("vertex data = %d bytes, want %d", got, 24*28)
	}
	if mdl.IndexCount() != 36 {
		t.Errorf("index count = %d, want 36", mdl.IndexCount())
	}

	// Each face's four corners carry that face's color; the red channel of the
	// first vertex of face i sits at stride*4*i + 12.
	for face := 0; face < 6; face++ {
		offset := face * 4 * 28
		got := f32At(t, mdl.VertexData(), offset+12)
		if math.Abs(float64(got-colors[face][0])) > 1e-6 {
			t.Errorf("face %d red channel = %v, want %v", face, got, colors[face][0])
		}
	}
}
