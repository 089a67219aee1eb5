package camera

import (
	"math"
	"testing"
)

func TestControllerElevationClamp(t *testing.T) {
	ctrl := NewOrbitController()

	t.Run("set past the top clamps below vertical", func(t *testing.T) {
		ctrl.SetElevation(float32(math.Pi))
		got := ctrl.Elevation()
		if got != ctrl.MaxElevation() {
			t.Errorf("elevation = %v, want max %v", got, ctrl.MaxElevation())
		}
		if got >= float32(math.Pi/2) {
			t.Errorf("max elevation %v must stay below pi/2", got)
		}
	})

	t.Run("set past the bottom clamps above the floor", func(t *testing.T) {
		ctrl.SetElevation(-1)
		if got := ctrl.Elevation(); got != ctrl.MinElevation() {
			t.Errorf("elevation = %v, want min %v", got, ctrl.MinElevation())
		}
	})

	t.Run("orbit steps respect the clamp", func(t *testing.T) {
		ctrl.SetElevation(ctrl.MaxElevation())
		ctrl.OrbitUp()
		if got := ctrl.Elevation(); got != ctrl.MaxElevation() {
			t.Errorf("elevation = %v after OrbitUp at the limit, want max %v", got, ctrl.MaxElevation())
		}
	})
}

func TestControllerRadiusClamp(t *testing.T) {
	ctrl := NewOrbitController(WithRadius(5))

	// Zooming in subtracts from the radius.
	ctrl.Zoom(1000)
	if got := ctrl.Radius(); got != ctrl.MinRadius() {
		t.Errorf("radius = %v after a huge zoom in, want min %v", got, ctrl.MinRadius())
	}
	ctrl.Zoom(-10000)
	if got := ctrl.Radius(); got != ctrl.MaxRadius() {
		t.Errorf("radius = %v after a huge zoom out, want max %v", got, ctrl.MaxRadius())
	}
}

func TestControllerOrbitPosition(t *testing.T) {
	ctrl := NewOrbitController(WithRadius(10))

	t.Run("position stays on the orbit sphere", func(t *testing.T) {
		ctrl.SetAzimuth(1.3)
		ctrl.SetElevation(0.7)
		x, y, z := ctrl.Position()
		dist := math.Sqrt(float64(x*x + y*y + z*z))
		if math.Abs(dist-10) > 1e-4 {
			t.Errorf("distance from target = %v, want 10", dist)
		}
	})

	t.Run("zero azimuth and elevation floor sits near +Z", func(t *testing.T) {
		ctrl.SetAzimuth(0)
		ctrl.SetElevation(ctrl.MinElevation())
		x, _, z := ctrl.Position()
		if math.Abs(float64(x)) > 1e-4 {
			t.Errorf("x = %v, want 0 at azimuth 0", x)
		}
		if z <= 0 {
			t.Errorf("z = %v, want positive at azimuth 0", z)
		}
	})

	t.Run("panning moves the target with the camera", func(t *testing.T) {
		ctrl.SetAzimuth(0)
		ctrl.SetElevation(0.3)
		beforeX, beforeY, beforeZ := ctrl.Position()
		tx0, ty0, tz0 := ctrl.Target()

		ctrl.PanRight(10)

		x, y, z := ctrl.Position()
		tx, ty, tz := ctrl.Target()
		dx, dy, dz := x-beforeX, y-beforeY, z-beforeZ
		if math.Abs(float64(dx-(tx-tx0))) > 1e-4 ||
			math.Abs(float64(dy-(ty-ty0))) > 1e-4 ||
			math.Abs(float64(dz-(tz-tz0))) > 1e-4 {
			t.Errorf("camera moved by (%v, %v, %v) but target moved by (%v, %v, %v)",
				dx, dy, dz, tx-tx0, ty-ty0, tz-tz0)
		}
	})
}
