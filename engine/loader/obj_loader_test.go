package loader

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}
	return path
}

// vertexAt decodes the 32-byte interleaved vertex at the given index.
func vertexAt(t *testing.T, data []byte, index int) (pos [3]float32, uv [2]float32, normal [3]float32) {
	t.Helper()
	base := index * 32
	if base+32 > len(data) {
		t.Fatalf("vertex %d out of range for %d-byte buffer", index, len(data))
	}
	read := func(offset int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(data[base+offset:]))
	}
	pos = [3]float32{read(0), read(4), read(8)}
	uv = [2]float32{read(12), read(16)}
	normal = [3]float32{read(20), read(24), read(28)}
	return pos, uv, normal
}

func TestLoadOBJ(t *testing.T) {
	t.Run("quad is fan-triangulated with shared vertices", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFixture(t, dir, "quad.obj", `
# a unit quad in the XY plane
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1 4//1
`)
		mdl, err := LoadOBJ(path)
		if err != nil {
			t.Fatalf("LoadOBJ: %v", err)
		}
		if mdl.Name() != "quad" {
			t.Errorf("name = %q, want quad", mdl.Name())
		}
		// Four unique corners, two triangles.
		if got := len(mdl.VertexData()) / 32; got != 4 {
			t.Errorf("vertex count = %d, want 4", got)
		}
		if mdl.IndexCount() != 6 {
			t.Errorf("index count = %d, want 6", mdl.IndexCount())
		}
		_, _, n := vertexAt(t, mdl.VertexData(), 0)
		if n != [3]float32{0, 0, 1} {
			t.Errorf("normal = %v, want (0, 0, 1)", n)
		}
	})

	t.Run("texture v coordinate flips to a top-left origin", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFixture(t, dir, "tri.obj", `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 0.25
f 1/1 2/2 3/3
`)
		mdl, err := LoadOBJ(path)
		if err != nil {
			t.Fatalf("LoadOBJ: %v", err)
		}
		_, uv0, _ := vertexAt(t, mdl.VertexData(), 0)
		if uv0 != [2]float32{0, 1} {
			t.Errorf("uv0 = %v, want (0, 1)", uv0)
		}
		_, uv2, _ := vertexAt(t, mdl.VertexData(), 2)
		if uv2 != [2]float32{0, 0.75} {
			t.Errorf("uv2 = %v, want (0, 0.75)", uv2)
		}
	})

	t.Run("negative indices resolve relative to the current counts", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFixture(t, dir, "rel.obj", `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`)
		mdl, err := LoadOBJ(path)
		if err != nil {
			t.Fatalf("LoadOBJ: %v", err)
		}
		p0, _, _ := vertexAt(t, mdl.VertexData(), 0)
		p2, _, _ := vertexAt(t, mdl.VertexData(), 2)
		if p0 != [3]float32{0, 0, 0} || p2 != [3]float32{0, 1, 0} {
			t.Errorf("positions = %v / %v, want (0,0,0) / (0,1,0)", p0, p2)
		}
	})

	t.Run("vertices dedup across faces", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFixture(t, dir, "shared.obj", `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3
f 1 3 4
`)
		mdl, err := LoadOBJ(path)
		if err != nil {
			t.Fatalf("LoadOBJ: %v", err)
		}
		if got := len(mdl.VertexData()) / 32; got != 4 {
			t.Errorf("vertex count = %d, want 4 (corners shared between triangles)", got)
		}
	})

	t.Run("missing uv and normal components zero-fill", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFixture(t, dir, "bare.obj", `
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`)
		mdl, err := LoadOBJ(path)
		if err != nil {
			t.Fatalf("LoadOBJ: %v", err)
		}
		_, uv, n := vertexAt(t, mdl.VertexData(), 0)
		if uv != [2]float32{} || n != [3]float32{} {
			t.Errorf("uv = %v normal = %v, want zero values", uv, n)
		}
	})

	t.Run("bounding radius covers the farthest vertex", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFixture(t, dir, "far.obj", `
v 0 0 0
v 3 4 0
v 0 1 0
f 1 2 3
`)
		mdl, err := LoadOBJ(path)
		if err != nil {
			t.Fatalf("LoadOBJ: %v", err)
		}
		if math.Abs(float64(mdl.BoundingRadius()-5)) > 1e-6 {
			t.Errorf("bounding radius = %v, want 5", mdl.BoundingRadius())
		}
	})

	t.Run("malformed face index errors with line number", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFixture(t, dir, "bad.obj", `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 nope
`)
		if _, err := LoadOBJ(path); err == nil {
			t.Fatal("expected an error for a malformed face index")
		} else if !strings.Contains(err.Error(), "line 4") {
			t.Errorf("error %q should name line 4", err)
		}
	})

	t.Run("out of range index errors", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFixture(t, dir, "range.obj", `
v 0 0 0
f 1 2 3
`)
		if _, err := LoadOBJ(path); err == nil {
			t.Fatal("expected an error for an out-of-range face index")
		}
	})

	t.Run("file without faces errors", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFixture(t, dir, "empty.obj", `
v 0 0 0
v 1 0 0
`)
		if _, err := LoadOBJ(path); err == nil {
			t.Fatal("expected an error for a faceless obj file")
		}
	})

	t.Run("missing file errors", func(t *testing.T) {
		if _, err := LoadOBJ(filepath.Join(t.TempDir(), "absent.obj")); err == nil {
			t.Fatal("expected an error for a missing file")
		}
	})
}

func TestLoadMTL(t *testing.T) {
	t.Run("kd sets the base color", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFixture(t, dir, "mat.mtl", `
newmtl painted
Kd 0.5 0.25 1.0
`)
		mats, err := LoadMTL(path)
		if err != nil {
			t.Fatalf("LoadMTL: %v", err)
		}
		if len(mats) != 1 {
			t.Fatalf("got %d materials, want 1", len(mats))
		}
		if mats[0].Name != "painted" {
			t.Errorf("name = %q, want painted", mats[0].Name)
		}
		if mats[0].BaseColor != [4]float32{0.5, 0.25, 1, 1} {
			t.Errorf("base color = %v, want (0.5, 0.25, 1, 1)", mats[0].BaseColor)
		}
	})

	t.Run("map_kd decodes the referenced texture", func(t *testing.T) {
		dir := t.TempDir()

		img := image.NewRGBA(image.Rect(0, 0, 2, 2))
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				img.Set(x, y, color.RGBA{R: 255, A: 255})
			}
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			t.Fatalf("failed to encode fixture texture: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "diffuse.png"), buf.Bytes(), 0o644); err != nil {
			t.Fatalf("failed to write fixture texture: %v", err)
		}

		path := writeFixture(t, dir, "tex.mtl", `
newmtl textured
Kd 1 1 1
map_Kd diffuse.png
`)
		mats, err := LoadMTL(path)
		if err != nil {
			t.Fatalf("LoadMTL: %v", err)
		}
		if mats[0].DiffuseTexture == nil {
			t.Fatal("diffuse texture missing")
		}
		pixels, w, h, err := mats[0].DiffuseTexture.Decode()
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if w != 2 || h != 2 || len(pixels) != 2*2*4 {
			t.Errorf("decoded %dx%d with %d bytes, want 2x2 RGBA", w, h, len(pixels))
		}
		if pixels[0] != 255 || pixels[3] != 255 {
			t.Errorf("first pixel = %v, want opaque red", pixels[:4])
		}
	})

	t.Run("missing texture file errors", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFixture(t, dir, "lost.mtl", `
newmtl lost
map_Kd nowhere.png
`)
		if _, err := LoadMTL(path); err == nil {
			t.Fatal("expected an error for a missing texture file")
		}
	})

	t.Run("obj pulls materials through mtllib", func(t *testing.T) {
		dir := t.TempDir()
		writeFixture(t, dir, "lib.mtl", `
newmtl body
Kd 0 1 0
`)
		path := writeFixture(t, dir, "model.obj", `
mtllib lib.mtl
v 0 0 0
v 1 0 0
v 0 1 0
usemtl body
f 1 2 3
`)
		mdl, err := LoadOBJ(path)
		if err != nil {
			t.Fatalf("LoadOBJ: %v", err)
		}
		mats := mdl.ImportedMaterials()
		if len(mats) != 1 || mats[0].Name != "body" {
			t.Fatalf("imported materials = %+v, want one named body", mats)
		}
	})
}
