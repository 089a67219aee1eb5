package common

import (
	"math"
	"testing"
)

// buildViewProj assembles a view-projection matrix for a camera at eye looking
// at the origin.
func buildViewProj(t *testing.T, eyeX, eyeY, eyeZ float32) []float32 {
	t.Helper()
	view := make([]float32, 16)
	proj := make([]float32, 16)
	out := make([]float32, 16)
	LookAt(view, eyeX, eyeY, eyeZ, 0, 0, 0, 0, 1, 0)
	Perspective(proj, float32(math.Pi/2), 1, 0.1, 100)
	Mul4(out, proj, view)
	return out
}

// planeDistance evaluates the plane equation at a point.
func planeDistance(p Plane, x, y, z float32) float32 {
	return p.Normal[0]*x + p.Normal[1]*y + p.Normal[2]*z + p.Distance
}

func TestExtractFrustumFromMatrix(t *testing.T) {
	viewProj := buildViewProj(t, 0, 0, 10)
	f := ExtractFrustumFromMatrix(viewProj)

	t.Run("planes are normalized", func(t *testing.T) {
		for i, p := range f.Planes {
			length := math.Sqrt(float64(
				p.Normal[0]*p.Normal[0] + p.Normal[1]*p.Normal[1] + p.Normal[2]*p.Normal[2],
			))
			if math.Abs(length-1) > 1e-5 {
				t.Errorf("plane %d normal length = %v, want 1", i, length)
			}
		}
	})

	t.Run("points inside are positive against all planes", func(t *testing.T) {
		inside := [][3]float32{
			{0, 0, 0},
			{0, 0, 5},
			{2, 2, -20},
		}
		for _, pt := range inside {
			for i, p := range f.Planes {
				if planeDistance(p, pt[0], pt[1], pt[2]) < 0 {
					t.Errorf("point %v should be inside but fails plane %d", pt, i)
				}
			}
		}
	})

	t.Run("points outside fail the matching plane", func(t *testing.T) {
		tests := []struct {
			name  string
			point [3]float32
			plane int
		}{
			{"behind the camera", [3]float32{0, 0, 20}, FrustumNear},
			{"beyond the far plane", [3]float32{0, 0, -120}, FrustumFar},
			{"far left", [3]float32{-50, 0, 5}, FrustumLeft},
			{"far right", [3]float32{50, 0, 5}, FrustumRight},
			{"far below", [3]float32{0, -50, 5}, FrustumBottom},
			{"far above", [3]float32{0, 50, 5}, FrustumTop},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				p := f.Planes[tt.plane]
				if planeDistance(p, tt.point[0], tt.point[1], tt.point[2]) >= 0 {
					t.Errorf("point %v should fail plane %d", tt.point, tt.plane)
				}
			})
		}
	})

	t.Run("fov boundary splits inside from outside", func(t *testing.T) {
		// Camera at z=10 with a 90 degree fov: at the origin plane the view
		// half-extent is 10, so x=9 remains inside and x=11 falls outside.
		pInside := planeDistance(f.Planes[FrustumRight], 9, 0, 0)
		pOutside := planeDistance(f.Planes[FrustumRight], 11, 0, 0)
		if pInside < 0 {
			t.Errorf("x=9 should be inside the right plane, distance %v", pInside)
		}
		if pOutside >= 0 {
			t.Errorf("x=11 should be outside the right plane, distance %v", pOutside)
		}
	})
}
