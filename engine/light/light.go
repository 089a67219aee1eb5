package light

import (
	"math"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/kestrel-gfx/kestrel/engine/renderer/bind_group_provider"
)

// lightCount is an atomic counter used to generate unique bind group provider names for each light instance.
var lightCount atomic.Uint64

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu *sync.Mutex

	position [3]float32
	color    [3]float32

	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Light defines the interface for a point light source in the scene.
//
// The light contributes to the final pixel color during the lit forward
// rendering pass and is drawn as a small emissive marker mesh at its own
// position. Its state is marshaled into a GPU uniform buffer each frame
// via the gpu_types helpers.
type Light interface {
	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// BindGroupProvider returns the light's bind group provider for GPU resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - r, g, b: color components
	SetColor(r, g, b float32)

	// OrbitY rotates the light's position around the world Y axis by the given
	// angle, preserving its height and distance from the axis. Called once per
	// tick to animate the light circling the scene.
	//
	// Parameters:
	//   - angleRad: rotation angle in radians (positive = counter-clockwise viewed from +Y)
	OrbitY(angleRad float32)

	// Uniform snapshots the light state into its GPU-aligned uniform representation.
	//
	// Returns:
	//   - GPULightUniform: the uniform struct ready for Marshal
	Uniform() GPULightUniform
}

var _ Light = &lightImpl{}

// NewLight creates a new point Light with sensible defaults and any provided
// options applied. Defaults to a white light at the origin.
//
// Parameters:
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(opts ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:       &sync.Mutex{},
		position: [3]float32{2, 2, 2},
		color:    [3]float32{1, 1, 1},
		bindGroupProvider: bind_group_provider.NewBindGroupProvider(
			"light_" + strconv.FormatUint(lightCount.Load(), 10),
		),
	}
	for _, opt := range opts {
		opt(l)
	}
	lightCount.Add(1)
	return l
}

func (l *lightImpl) Position() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position
}

func (l *lightImpl) Color() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

func (l *lightImpl) BindGroupProvider() bind_group_provider.BindGroupProvider {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.bindGroupProvider
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = [3]float32{x, y, z}
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = [3]float32{r, g, b}
}

func (l *lightImpl) OrbitY(angleRad float32) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sin := float32(math.Sin(float64(angleRad)))
	cos := float32(math.Cos(float64(angleRad)))

	x := l.position[0]
	z := l.position[2]
	l.position[0] = x*cos - z*sin
	l.position[2] = x*sin + z*cos
}

func (l *lightImpl) Uniform() GPULightUniform {
	l.mu.Lock()
	defer l.mu.Unlock()
	return GPULightUniform{
		Position: l.position,
		Color:    l.color,
	}
}
