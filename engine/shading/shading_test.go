package shading

import (
	"math"
	"testing"

	"github.com/kestrel-gfx/kestrel/common"
)

const epsilon = 1e-5

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func approxEqual4(a, b [4]float32) bool {
	for i := range a {
		if !approxEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func approxEqual3(a, b [3]float32) bool {
	for i := range a {
		if !approxEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func TestBillboardClipPosition(t *testing.T) {
	var identity [16]float32
	common.Identity(identity[:])

	tests := []struct {
		name     string
		viewProj []float32
		lightPos [3]float32
		localPos [3]float32
		want     [4]float32
	}{
		{
			name:     "identity projection centers marker on light",
			viewProj: identity[:],
			lightPos: [3]float32{1, 2, 3},
			localPos: [3]float32{0, 0, 0},
			want:     [4]float32{1, 2, 3, 1},
		},
		{
			name:     "local offset shrinks by billboard scale",
			viewProj: identity[:],
			lightPos: [3]float32{1, 2, 3},
			localPos: [3]float32{1, 0, 0},
			want:     [4]float32{1.2, 2, 3, 1},
		},
		{
			name:     "negative local offset",
			viewProj: identity[:],
			lightPos: [3]float32{0, 0, 0},
			localPos: [3]float32{-1, -1, -1},
			want:     [4]float32{-0.2, -0.2, -0.2, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BillboardClipPosition(tt.viewProj, tt.lightPos, tt.localPos)
			if !approxEqual4(got, tt.want) {
				t.Errorf("BillboardClipPosition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBillboardClipPositionProjected(t *testing.T) {
	// With a real view-projection the marker must land where the light's
	// world position projects to.
	var view, proj, viewProj [16]float32
	common.LookAt(view[:], 0, 0, 10, 0, 0, 0, 0, 1, 0)
	common.Perspective(proj[:], float32(math.Pi/4), 1, 0.1, 100)
	common.Mul4(viewProj[:], proj[:], view[:])

	lightPos := [3]float32{2, 2, 2}
	marker := BillboardClipPosition(viewProj[:], lightPos, [3]float32{0, 0, 0})
	direct := common.TransformPoint(viewProj[:], lightPos[0], lightPos[1], lightPos[2])

	if !approxEqual4(marker, direct) {
		t.Errorf("marker center %v diverges from projected light position %v", marker, direct)
	}
}

func TestInstanceMatrix(t *testing.T) {
	t.Run("identity vectors reassemble identity", func(t *testing.T) {
		got := InstanceMatrix(
			[4]float32{1, 0, 0, 0},
			[4]float32{0, 1, 0, 0},
			[4]float32{0, 0, 1, 0},
			[4]float32{0, 0, 0, 1},
		)
		var want [16]float32
		common.Identity(want[:])
		if got != want {
			t.Errorf("InstanceMatrix() = %v, want identity", got)
		}
	})

	t.Run("vectors land in column order", func(t *testing.T) {
		got := InstanceMatrix(
			[4]float32{0, 1, 2, 3},
			[4]float32{4, 5, 6, 7},
			[4]float32{8, 9, 10, 11},
			[4]float32{12, 13, 14, 15},
		)
		for i := range got {
			if got[i] != float32(i) {
				t.Fatalf("element %d = %v, want %d", i, got[i], i)
			}
		}
	})
}

func TestNormalCorrection(t *testing.T) {
	tests := []struct {
		name   string
		scale  [3]float32
		normal [3]float32
		want   [3]float32
	}{
		{
			name:   "unit scale passes through",
			scale:  [3]float32{1, 1, 1},
			normal: [3]float32{0, 1, 0},
			want:   [3]float32{0, 1, 0},
		},
		{
			name:   "x stretch halves x component",
			scale:  [3]float32{2, 1, 1},
			normal: [3]float32{1, 0, 0},
			want:   [3]float32{0.5, 0, 0},
		},
		{
			name:   "per-axis shrink",
			scale:  [3]float32{2, 4, 8},
			normal: [3]float32{1, 1, 1},
			want:   [3]float32{0.5, 0.25, 0.125},
		},
		{
			name:   "zero scale component passes through",
			scale:  [3]float32{0, 1, 1},
			normal: [3]float32{1, 1, 0},
			want:   [3]float32{1, 1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalCorrection(tt.scale, tt.normal)
			if !approxEqual3(got, tt.want) {
				t.Errorf("NormalCorrection() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWorldNormal(t *testing.T) {
	t.Run("translation never contributes", func(t *testing.T) {
		var mdl [16]float32
		common.BuildModelMatrix(mdl[:], 5, 6, 7, 0, 0, 0, 1, 1, 1)
		got := WorldNormal(mdl[:], [3]float32{1, 1, 1}, [3]float32{0, 1, 0})
		if !approxEqual3(got, [3]float32{0, 1, 0}) {
			t.Errorf("WorldNormal() = %v, want (0,1,0)", got)
		}
	})

	t.Run("inverse scale undoes baked scale", func(t *testing.T) {
		var mdl [16]float32
		scale := [3]float32{2, 1, 1}
		common.BuildModelMatrix(mdl[:], 0, 0, 0, 0, 0, 0, scale[0], scale[1], scale[2])
		got := WorldNormal(mdl[:], scale, [3]float32{1, 0, 0})
		if !approxEqual3(got, [3]float32{1, 0, 0}) {
			t.Errorf("WorldNormal() = %v, want unit x", got)
		}
	})

	t.Run("rotation carries the normal", func(t *testing.T) {
		var mdl [16]float32
		// 90 degrees around Y sends +Z to +X.
		common.BuildModelMatrix(mdl[:], 0, 0, 0, 0, float32(math.Pi/2), 0, 1, 1, 1)
		got := WorldNormal(mdl[:], [3]float32{1, 1, 1}, [3]float32{0, 0, 1})
		if !approxEqual3(got, [3]float32{1, 0, 0}) {
			t.Errorf("WorldNormal() = %v, want unit x", got)
		}
	})
}

func TestAttenuation(t *testing.T) {
	tests := []struct {
		name     string
		distance float32
		want     float32
	}{
		{"unit distance", 1, 1},
		{"double distance quarters", 2, 0.25},
		{"half distance quadruples", 0.5, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Attenuation(tt.distance); !approxEqual(got, tt.want) {
				t.Errorf("Attenuation(%v) = %v, want %v", tt.distance, got, tt.want)
			}
		})
	}

	t.Run("diverges toward zero distance", func(t *testing.T) {
		prev := Attenuation(1)
		for _, d := range []float32{0.1, 0.01, 0.001} {
			got := Attenuation(d)
			if got <= prev {
				t.Fatalf("Attenuation(%v) = %v, expected monotonic growth past %v", d, got, prev)
			}
			prev = got
		}
		if !math.IsInf(float64(Attenuation(0)), 1) {
			t.Errorf("Attenuation(0) = %v, want +Inf", Attenuation(0))
		}
	})
}

func TestPhongShade(t *testing.T) {
	t.Run("head-on diffuse at distance d", func(t *testing.T) {
		// Light straight above the fragment, camera off to the side so the
		// specular term vanishes. Expected strength: ambient + gain/d².
		d := float32(2.0)
		in := PhongInput{
			Normal:         [3]float32{0, 1, 0},
			WorldPosition:  [3]float32{0, 0, 0},
			LightPosition:  [3]float32{0, d, 0},
			LightColor:     [3]float32{1, 1, 1},
			CameraPosition: [3]float32{10, 0, 0},
			BaseColor:      [4]float32{1, 1, 1, 1},
		}
		got := PhongShade(in)
		want := AmbientFactor + DiffuseGain/(d*d)
		for i := 0; i < 3; i++ {
			if !approxEqual(got[i], want) {
				t.Errorf("channel %d = %v, want %v", i, got[i], want)
			}
		}
		if got[3] != 1 {
			t.Errorf("alpha = %v, want base color alpha 1", got[3])
		}
	})

	t.Run("backfacing light leaves only ambient", func(t *testing.T) {
		in := PhongInput{
			Normal:         [3]float32{0, 1, 0},
			WorldPosition:  [3]float32{0, 0, 0},
			LightPosition:  [3]float32{0, -2, 0},
			LightColor:     [3]float32{1, 1, 1},
			CameraPosition: [3]float32{10, 0, 0},
			BaseColor:      [4]float32{1, 1, 1, 1},
		}
		got := PhongShade(in)
		for i := 0; i < 3; i++ {
			if !approxEqual(got[i], AmbientFactor) {
				t.Errorf("channel %d = %v, want ambient only %v", i, got[i], AmbientFactor)
			}
		}
	})

	t.Run("mirror view direction maximizes specular", func(t *testing.T) {
		// Light and camera both straight above: reflect direction aligns with
		// the view direction exactly, so the specular term hits its peak
		// attenuation/1 value.
		d := float32(2.0)
		in := PhongInput{
			Normal:         [3]float32{0, 1, 0},
			WorldPosition:  [3]float32{0, 0, 0},
			LightPosition:  [3]float32{0, d, 0},
			LightColor:     [3]float32{1, 1, 1},
			CameraPosition: [3]float32{0, 5, 0},
			BaseColor:      [4]float32{1, 1, 1, 1},
		}
		got := PhongShade(in)
		attenuation := 1 / (d * d)
		want := AmbientFactor + DiffuseGain*attenuation + attenuation
		for i := 0; i < 3; i++ {
			if !approxEqual(got[i], want) {
				t.Errorf("channel %d = %v, want %v", i, got[i], want)
			}
		}
	})

	t.Run("light color tints base color elementwise", func(t *testing.T) {
		in := PhongInput{
			Normal:         [3]float32{0, 1, 0},
			WorldPosition:  [3]float32{0, 0, 0},
			LightPosition:  [3]float32{0, 1, 0},
			LightColor:     [3]float32{1, 0.5, 0},
			CameraPosition: [3]float32{10, 0, 0},
			BaseColor:      [4]float32{0.5, 1, 1, 0.75},
		}
		got := PhongShade(in)
		strength := AmbientFactor + DiffuseGain
		want := [4]float32{strength * 1 * 0.5, strength * 0.5 * 1, 0, 0.75}
		if !approxEqual4(got, want) {
			t.Errorf("PhongShade() = %v, want %v", got, want)
		}
	})
}

func TestFlatClipPositionCarriesHomogeneousW(t *testing.T) {
	var proj [16]float32
	common.Perspective(proj[:], float32(math.Pi/4), 1, 0.1, 100)

	t.Run("affine transform matches truncated form", func(t *testing.T) {
		var mdl [16]float32
		common.BuildModelMatrix(mdl[:], 1, 2, -5, 0.3, 0.7, 0, 1.5, 1, 1)
		pos := [3]float32{0.25, -0.5, 0.75}
		full := FlatClipPosition(proj[:], mdl[:], pos)
		truncated := flatClipPositionTruncated(proj[:], mdl[:], pos)
		if !approxEqual4(full, truncated) {
			t.Errorf("affine transforms must agree: full %v truncated %v", full, truncated)
		}
	})

	t.Run("projective transform exposes the dropped w", func(t *testing.T) {
		// A transform with a non-trivial bottom row produces w != 1 after the
		// instance multiply. Truncating to xyz and re-promoting with w=1
		// silently rescales the position.
		var mdl [16]float32
		common.Identity(mdl[:])
		mdl[3] = 0.5 // bottom row picks up x: w' = 0.5x + 1
		pos := [3]float32{2, 0, -5}

		full := FlatClipPosition(proj[:], mdl[:], pos)
		truncated := flatClipPositionTruncated(proj[:], mdl[:], pos)

		if approxEqual4(full, truncated) {
			t.Fatalf("expected divergence under a projective instance transform, both = %v", full)
		}

		// The homogeneous path must match carrying the w through by hand.
		world := common.TransformPoint(mdl[:], pos[0], pos[1], pos[2])
		if approxEqual(world[3], 1) {
			t.Fatalf("test transform failed to produce w != 1, got %v", world[3])
		}
		var want [4]float32
		common.Mul4Vec4(want[:], proj[:], world[:])
		if !approxEqual4(full, want) {
			t.Errorf("FlatClipPosition() = %v, want %v", full, want)
		}
	})
}

func TestTriangleVertexPosition(t *testing.T) {
	want := [3][4]float32{
		{0, 0.5, 0, 1},
		{-0.5, -0.5, 0, 1},
		{0.5, -0.5, 0, 1},
	}
	for i := uint32(0); i < 3; i++ {
		if got := TriangleVertexPosition(i); got != want[i] {
			t.Errorf("TriangleVertexPosition(%d) = %v, want %v", i, got, want[i])
		}
	}
	if got := TriangleVertexPosition(3); got != want[0] {
		t.Errorf("TriangleVertexPosition(3) = %v, want wrap to %v", got, want[0])
	}
}
