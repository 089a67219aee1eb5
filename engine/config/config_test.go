package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Run("full document overrides the defaults", func(t *testing.T) {
		cfg, err := Parse([]byte(`
window:
  title: demo
  width: 800
  height: 600
engine:
  tick_rate: 30
  render_frame_limit: 120
  profiling: true
camera:
  fov: 60
  near: 0.5
  far: 50
  radius: 8
light:
  position: [1, 2, 3]
  color: [1, 0, 0]
  orbit_speed: 2
scene:
  grid:
    rows: 4
    columns: 5
    spacing: 1.5
  culling_disabled: true
`))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if cfg.Window.Title != "demo" || cfg.Window.Width != 800 || cfg.Window.Height != 600 {
			t.Errorf("window = %+v", cfg.Window)
		}
		if cfg.Engine.TickRate != 30 || cfg.Engine.RenderFrameLimit != 120 || !cfg.Engine.Profiling {
			t.Errorf("engine = %+v", cfg.Engine)
		}
		if cfg.Camera.Fov != 60 || cfg.Camera.Radius != 8 {
			t.Errorf("camera = %+v", cfg.Camera)
		}
		if cfg.Light == nil || cfg.Light.Position != [3]float32{1, 2, 3} || cfg.Light.OrbitSpeed != 2 {
			t.Errorf("light = %+v", cfg.Light)
		}
		if cfg.Scene.Grid.Rows != 4 || cfg.Scene.Grid.Columns != 5 || !cfg.Scene.CullingDisabled {
			t.Errorf("scene = %+v", cfg.Scene)
		}
	})

	t.Run("absent fields keep defaults", func(t *testing.T) {
		cfg, err := Parse([]byte(`
window:
  title: partial
`))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if cfg.Window.Title != "partial" {
			t.Errorf("title = %q, want partial", cfg.Window.Title)
		}
		def := Default()
		if cfg.Window.Width != def.Window.Width || cfg.Window.Height != def.Window.Height {
			t.Errorf("dimensions = %dx%d, want defaults %dx%d",
				cfg.Window.Width, cfg.Window.Height, def.Window.Width, def.Window.Height)
		}
		if cfg.Camera != def.Camera {
			t.Errorf("camera = %+v, want defaults %+v", cfg.Camera, def.Camera)
		}
		if cfg.Light == nil || *cfg.Light != *def.Light {
			t.Errorf("light = %+v, want defaults %+v", cfg.Light, def.Light)
		}
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		_, err := Parse([]byte(`
window:
  widht: 800
`))
		if err == nil {
			t.Fatal("expected an error for an unknown field")
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name string
			yaml string
			want string
		}{
			{"zero width", "window:\n  width: 0\n", "window dimensions"},
			{"negative near", "camera:\n  near: -1\n", "near plane"},
			{"far behind near", "camera:\n  near: 10\n  far: 5\n", "far plane"},
			{"fov too wide", "camera:\n  fov: 200\n", "fov"},
			{"negative grid", "scene:\n  grid:\n    rows: -1\n", "grid dimensions"},
			{"negative spacing", "scene:\n  grid:\n    spacing: -2\n", "grid spacing"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := Parse([]byte(tt.yaml))
				if err == nil {
					t.Fatal("expected a validation error")
				}
				if !strings.Contains(err.Error(), tt.want) {
					t.Errorf("error %q should mention %q", err, tt.want)
				}
			})
		}
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		if _, err := Parse([]byte("window: [")); err == nil {
			t.Fatal("expected a decode error")
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("reads from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scene.yaml")
		if err := os.WriteFile(path, []byte("window:\n  title: from_disk\n"), 0o644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.Window.Title != "from_disk" {
			t.Errorf("title = %q, want from_disk", cfg.Window.Title)
		}
	})

	t.Run("missing file errors", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Fatal("expected an error for a missing file")
		}
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}
