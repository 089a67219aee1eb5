package scene

import (
	"github.com/kestrel-gfx/kestrel/engine/light"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithLight attaches a point light to the scene at construction time. The
// light's bind group is initialized lazily, once a mesh whose shaders declare
// a light uniform is added.
//
// Parameters:
//   - lgt: the point light to attach
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLight(lgt light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.lgt = lgt
	}
}

// WithLightOrbitSpeed sets the angular speed, in radians per second, at which
// Update revolves the light around the world Y axis. Defaults to 0 (no orbit).
//
// Parameters:
//   - speed: orbit speed in radians per second
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLightOrbitSpeed(speed float32) SceneBuilderOption {
	return func(s *scene) {
		s.lightOrbitSpeed = speed
	}
}

// WithComputeWorkers sets the number of worker goroutines used during the
// parallel instance prep phase of Update. Defaults to runtime.NumCPU()-1.
// Higher values may improve throughput with many mesh objects; lower values
// reduce scheduling overhead for simple scenes.
//
// Parameters:
//   - n: the number of compute workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithComputeWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.computeWorkers = n
	}
}

// WithCullingDisabled disables CPU frustum culling for the scene. When set to
// true, every instance is uploaded and drawn each frame regardless of whether
// its bounding sphere intersects the view frustum. By default culling is
// enabled (disabled = false).
//
// Parameters:
//   - disabled: true to disable frustum culling, false to enable it (default)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCullingDisabled(disabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.cullingDisabled = disabled
	}
}
