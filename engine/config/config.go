// Package config loads declarative scene descriptions from YAML. A config
// file describes the window, camera, light, and instanced demo content so
// hosts can set up a scene without hardcoding placement constants.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root of a YAML scene description.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Engine EngineConfig `yaml:"engine"`
	Camera CameraConfig `yaml:"camera"`
	Light  *LightConfig `yaml:"light,omitempty"`
	Scene  SceneConfig  `yaml:"scene"`
}

// WindowConfig describes the platform window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// EngineConfig describes loop rates and profiling.
type EngineConfig struct {
	TickRate         float64 `yaml:"tick_rate"`
	RenderFrameLimit float64 `yaml:"render_frame_limit"`
	Profiling        bool    `yaml:"profiling"`
}

// CameraConfig describes the perspective projection and the orbit controller's
// starting placement.
type CameraConfig struct {
	Fov    float32 `yaml:"fov"` // vertical field of view in degrees
	Near   float32 `yaml:"near"`
	Far    float32 `yaml:"far"`
	Radius float32 `yaml:"radius"` // orbit distance from the target
}

// LightConfig describes the scene's point light. OrbitSpeed is the angular
// speed in radians per second at which the light revolves around world Y.
type LightConfig struct {
	Position   [3]float32 `yaml:"position"`
	Color      [3]float32 `yaml:"color"`
	OrbitSpeed float32    `yaml:"orbit_speed"`
}

// SceneConfig describes the demo content: a square grid of instanced meshes
// plus culling behavior.
type SceneConfig struct {
	Grid            GridConfig `yaml:"grid"`
	CullingDisabled bool       `yaml:"culling_disabled"`
}

// GridConfig describes a centered square grid of instances in the XZ plane.
type GridConfig struct {
	Rows    int     `yaml:"rows"`
	Columns int     `yaml:"columns"`
	Spacing float32 `yaml:"spacing"` // world units between adjacent instances
}

// Default returns a Config populated with the values the examples use when no
// file is provided: a 1280x720 window, a 45 degree camera orbiting at radius
// 11, a white light at (2, 2, 2), and a 10x10 instance grid spaced 3 apart.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "kestrel",
			Width:  1280,
			Height: 720,
		},
		Engine: EngineConfig{
			TickRate: 60,
		},
		Camera: CameraConfig{
			Fov:    45,
			Near:   0.1,
			Far:    100,
			Radius: 11,
		},
		Light: &LightConfig{
			Position:   [3]float32{2, 2, 2},
			Color:      [3]float32{1, 1, 1},
			OrbitSpeed: 1,
		},
		Scene: SceneConfig{
			Grid: GridConfig{
				Rows:    10,
				Columns: 10,
				Spacing: 3,
			},
		},
	}
}

// Load reads and strictly decodes a YAML scene description. Fields absent
// from the file keep their Default() values; unknown fields are an error so
// typos surface immediately instead of silently falling back.
//
// Parameters:
//   - path: filesystem path to the YAML file
//
// Returns:
//   - Config: the decoded configuration merged over the defaults
//   - error: an error if the file cannot be read, decoded, or validated
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse strictly decodes a YAML scene description from raw bytes, merging
// over the defaults and validating the result.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Config: the decoded configuration merged over the defaults
//   - error: an error if the document cannot be decoded or validated
func Parse(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate rejects configurations the engine cannot run with.
func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window dimensions must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Camera.Near <= 0 {
		return fmt.Errorf("config: camera near plane must be positive, got %g", c.Camera.Near)
	}
	if c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("config: camera far plane (%g) must exceed the near plane (%g)", c.Camera.Far, c.Camera.Near)
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		return fmt.Errorf("config: camera fov must be in (0, 180) degrees, got %g", c.Camera.Fov)
	}
	if c.Scene.Grid.Rows < 0 || c.Scene.Grid.Columns < 0 {
		return fmt.Errorf("config: grid dimensions must not be negative, got %dx%d", c.Scene.Grid.Rows, c.Scene.Grid.Columns)
	}
	if c.Scene.Grid.Spacing < 0 {
		return fmt.Errorf("config: grid spacing must not be negative, got %g", c.Scene.Grid.Spacing)
	}
	return nil
}
