package scene

import (
	"bytes"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/kestrel-gfx/kestrel/common"
	"github.com/kestrel-gfx/kestrel/engine/instance"
	"github.com/kestrel-gfx/kestrel/engine/model"
	"github.com/kestrel-gfx/kestrel/engine/renderer/bind_group_provider"
	"github.com/kestrel-gfx/kestrel/engine/renderer/shader"
)

// boxFrustum builds a frustum whose planes bound the axis-aligned cube
// |x|, |y|, |z| <= extent, with inward-facing normals.
func boxFrustum(extent float32) *common.Frustum {
	f := &common.Frustum{}
	axes := [6][3]float32{
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
		{0, 0, 1}, {0, 0, -1},
	}
	for i, n := range axes {
		f.Planes[i] = common.Plane{Normal: n, Distance: extent}
	}
	return f
}

func TestSphereVisible(t *testing.T) {
	f := boxFrustum(10)

	tests := []struct {
		name   string
		center [3]float32
		radius float32
		want   bool
	}{
		{"center inside", [3]float32{0, 0, 0}, 1, true},
		{"fully outside", [3]float32{20, 0, 0}, 1, false},
		{"straddling a plane", [3]float32{10.5, 0, 0}, 1, true},
		{"just past the reach of its radius", [3]float32{11.5, 0, 0}, 1, false},
		{"outside on y", [3]float32{0, -15, 0}, 2, false},
		{"large sphere engulfing the frustum", [3]float32{0, 0, 40}, 50, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sphereVisible(f, tt.center, tt.radius); got != tt.want {
				t.Errorf("sphereVisible(%v, %v) = %v, want %v", tt.center, tt.radius, got, tt.want)
			}
		})
	}
}

func TestMarshalAllInstances(t *testing.T) {
	instances := []instance.Instance{
		instance.NewInstance(instance.WithPosition(1, 0, 0)),
		instance.NewInstance(instance.WithPosition(0, 2, 0), instance.WithScale(2, 2, 2)),
		instance.NewInstance(instance.WithPosition(0, 0, -3)),
	}

	t.Run("lit snapshots every instance", func(t *testing.T) {
		buf := marshalAllInstances(instances, false)
		if len(buf) != 3*76 {
			t.Fatalf("len = %d, want %d", len(buf), 3*76)
		}
		var want []byte
		for _, inst := range instances {
			g := inst.GPUInstance()
			want = append(want, g.Marshal()...)
		}
		if !bytes.Equal(buf, want) {
			t.Error("buffer differs from concatenated per-instance snapshots")
		}
	})

	t.Run("flat uses the 64-byte stride", func(t *testing.T) {
		buf := marshalAllInstances(instances, true)
		if len(buf) != 3*64 {
			t.Fatalf("len = %d, want %d", len(buf), 3*64)
		}
		var want []byte
		for _, inst := range instances {
			g := inst.GPUFlatInstance()
			want = append(want, g.Marshal()...)
		}
		if !bytes.Equal(buf, want) {
			t.Error("buffer differs from concatenated per-instance snapshots")
		}
	})
}

func TestClassifyBindGroups(t *testing.T) {
	vert := shader.NewShader("classify_vert", shader.ShaderTypeVertex, `
struct CameraUniform { view_proj: mat4x4<f32> }
@group(0) @binding(0) var<uniform> camera: CameraUniform;
@vertex
fn vs_main() -> @builtin(position) vec4<f32> { return vec4<f32>(0.0); }
`)
	frag := shader.NewShader("classify_frag", shader.ShaderTypeFragment, `
struct LightUniform { position: vec3<f32>, color: vec3<f32> }
@group(1) @binding(0) var<uniform> light: LightUniform;
@group(2) @binding(0) var t_diffuse: texture_2d<f32>;
@group(2) @binding(1) var s_diffuse: sampler;
@fragment
fn fs_main() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }
`)

	roles := classifyBindGroups(vert, frag)
	if roles[0] != groupRoleCamera {
		t.Errorf("group 0 role = %v, want camera", roles[0])
	}
	if roles[1] != groupRoleLight {
		t.Errorf("group 1 role = %v, want light", roles[1])
	}
	if roles[2] != groupRoleMaterial {
		t.Errorf("group 2 role = %v, want material", roles[2])
	}

	t.Run("unrecognized names stay unknown", func(t *testing.T) {
		odd := shader.NewShader("odd_vert", shader.ShaderTypeVertex, `
struct Params { value: f32 }
@group(0) @binding(0) var<uniform> params: Params;
@vertex
fn vs_main() -> @builtin(position) vec4<f32> { return vec4<f32>(0.0); }
`)
		roles := classifyBindGroups(odd)
		if roles[0] != groupRoleUnknown {
			t.Errorf("group 0 role = %v, want unknown", roles[0])
		}
	})

	t.Run("nil shaders are skipped", func(t *testing.T) {
		roles := classifyBindGroups(nil, vert)
		if roles[0] != groupRoleCamera {
			t.Errorf("group 0 role = %v, want camera", roles[0])
		}
	})
}

func TestWidenVisibility(t *testing.T) {
	in := wgpu.BindGroupLayoutDescriptor{
		Label: "light",
		Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: wgpu.ShaderStageVertex},
			{Binding: 1, Visibility: wgpu.ShaderStageFragment},
		},
	}
	out := widenVisibility(in)

	want := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
	for i, e := range out.Entries {
		if e.Visibility != want {
			t.Errorf("entry %d visibility = %v, want vertex|fragment", i, e.Visibility)
		}
	}
	if out.Label != "light" {
		t.Errorf("label = %q, want light", out.Label)
	}
	// The input descriptor must not be mutated; its entries may be shared with
	// the shader that produced them.
	if in.Entries[0].Visibility != wgpu.ShaderStageVertex {
		t.Error("widenVisibility mutated the input descriptor")
	}
}

func TestDiffuseStagingData(t *testing.T) {
	newModel := func(materials []common.ImportedMaterial) model.Model {
		return model.NewModel(
			model.WithName("staging_test"),
			model.WithMeshProvider(bind_group_provider.NewBindGroupProvider("staging_test")),
			model.WithImportedMaterials(materials),
		)
	}

	t.Run("no materials yields a white pixel", func(t *testing.T) {
		data, err := diffuseStagingData(newModel(nil))
		if err != nil {
			t.Fatalf("diffuseStagingData: %v", err)
		}
		if data.Width != 1 || data.Height != 1 {
			t.Errorf("dimensions = %dx%d, want 1x1", data.Width, data.Height)
		}
		for i, b := range data.Pixels {
			if b != 255 {
				t.Errorf("channel %d = %d, want 255", i, b)
			}
		}
	})

	t.Run("base color becomes a clamped single pixel", func(t *testing.T) {
		data, err := diffuseStagingData(newModel([]common.ImportedMaterial{
			{Name: "tinted", BaseColor: [4]float32{0.5, 2, -1, 1}},
		}))
		if err != nil {
			t.Fatalf("diffuseStagingData: %v", err)
		}
		want := [4]byte{128, 255, 0, 255}
		for i := range want {
			if data.Pixels[i] != want[i] {
				t.Errorf("channel %d = %d, want %d", i, data.Pixels[i], want[i])
			}
		}
	})
}
