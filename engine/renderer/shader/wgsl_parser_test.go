package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

const instancedVertexSource = `
// Per-vertex attributes.
struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) tex_coords: vec2<f32>,
    @location(2) normal: vec3<f32>,
}

// Per-instance model matrix columns plus scale.
struct InstanceInput {
    @location(5) model_0: vec4<f32>,
    @location(6) model_1: vec4<f32>,
    @location(7) model_2: vec4<f32>,
    @location(8) model_3: vec4<f32>,
    @location(9) scale: vec3<f32>,
}

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) world_normal: vec3<f32>,
}

struct CameraUniform {
    view_proj: mat4x4<f32>,
    position: vec3<f32>,
}

@group(0) @binding(0)
var<uniform> camera: CameraUniform;

@vertex
fn vs_main(vertex: VertexInput, inst: InstanceInput) -> VertexOutput {
    var out: VertexOutput;
    return out;
}
`

const texturedFragmentSource = `
struct LightUniform {
    position: vec3<f32>,
    color: vec3<f32>,
}

@group(0) @binding(0)
var<uniform> light: LightUniform;

@group(1) @binding(1)
var s_diffuse: sampler;
@group(1) @binding(0)
var t_diffuse: texture_2d<f32>;

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0);
}
`

func TestParseVertexLayouts(t *testing.T) {
	t.Run("vertex and instance structs map to sequential slots", func(t *testing.T) {
		layouts := parseVertexLayouts(instancedVertexSource)
		if len(layouts) != 2 {
			t.Fatalf("got %d layouts, want 2", len(layouts))
		}

		vert := layouts[0][0]
		if vert.StepMode != wgpu.VertexStepModeVertex {
			t.Errorf("slot 0 step mode = %v, want vertex", vert.StepMode)
		}
		if vert.ArrayStride != 32 {
			t.Errorf("slot 0 stride = %d, want 32", vert.ArrayStride)
		}
		wantVert := []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 20, ShaderLocation: 2},
		}
		if len(vert.Attributes) != len(wantVert) {
			t.Fatalf("slot 0 has %d attributes, want %d", len(vert.Attributes), len(wantVert))
		}
		for i, want := range wantVert {
			if vert.Attributes[i] != want {
				t.Errorf("slot 0 attribute %d = %+v, want %+v", i, vert.Attributes[i], want)
			}
		}

		inst := layouts[1][0]
		if inst.StepMode != wgpu.VertexStepModeInstance {
			t.Errorf("slot 1 step mode = %v, want instance", inst.StepMode)
		}
		if inst.ArrayStride != 76 {
			t.Errorf("slot 1 stride = %d, want 76", inst.ArrayStride)
		}
		if len(inst.Attributes) != 5 {
			t.Fatalf("slot 1 has %d attributes, want 5", len(inst.Attributes))
		}
		if last := inst.Attributes[4]; last.ShaderLocation != 9 || last.Offset != 64 {
			t.Errorf("scale attribute = %+v, want location 9 at offset 64", last)
		}
	})

	t.Run("structs with builtin fields are not vertex inputs", func(t *testing.T) {
		source := `
struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) color: vec3<f32>,
}
`
		layouts := parseVertexLayouts(source)
		if len(layouts) != 0 {
			t.Errorf("got %d layouts from an output struct, want 0", len(layouts))
		}
	})

	t.Run("no input structs yields empty map", func(t *testing.T) {
		layouts := parseVertexLayouts(texturedFragmentSource)
		if len(layouts) != 0 {
			t.Errorf("got %d layouts from a fragment shader, want 0", len(layouts))
		}
	})

	t.Run("structs with unrecognized field types are skipped", func(t *testing.T) {
		source := `
struct Weird {
    @location(0) samples: array<f32, 4>,
}
struct Good {
    @location(0) position: vec3<f32>,
}
`
		layouts := parseVertexLayouts(source)
		if len(layouts) != 1 {
			t.Fatalf("got %d layouts, want 1", len(layouts))
		}
		if layouts[0][0].ArrayStride != 12 {
			t.Errorf("stride = %d, want 12", layouts[0][0].ArrayStride)
		}
	})

	t.Run("line comments do not produce phantom fields", func(t *testing.T) {
		source := `
struct VertexInput {
    // @location(7) ghost: vec4<f32>,
    @location(0) position: vec3<f32>,
}
`
		layouts := parseVertexLayouts(source)
		if len(layouts) != 1 {
			t.Fatalf("got %d layouts, want 1", len(layouts))
		}
		if got := len(layouts[0][0].Attributes); got != 1 {
			t.Errorf("got %d attributes, want 1", got)
		}
	})

	t.Run("single location-only struct keeps vertex step mode below instance base", func(t *testing.T) {
		source := `
struct VertexInput {
    @location(4) position: vec3<f32>,
}
`
		layouts := parseVertexLayouts(source)
		if layouts[0][0].StepMode != wgpu.VertexStepModeVertex {
			t.Error("location 4 should stay per-vertex")
		}
	})
}

func TestParseBindGroupLayouts(t *testing.T) {
	t.Run("uniform buffer gets min binding size from struct layout", func(t *testing.T) {
		groups, varNames := parseBindGroupLayouts(instancedVertexSource, wgpu.ShaderStageVertex)
		desc, ok := groups[0]
		if !ok {
			t.Fatal("group 0 missing")
		}
		if len(desc.Entries) != 1 {
			t.Fatalf("group 0 has %d entries, want 1", len(desc.Entries))
		}
		entry := desc.Entries[0]
		if entry.Buffer.Type != wgpu.BufferBindingTypeUniform {
			t.Errorf("buffer type = %v, want uniform", entry.Buffer.Type)
		}
		// mat4x4<f32> (64) + vec3<f32> (12, align 16) rounds the struct to 80.
		if entry.Buffer.MinBindingSize != 80 {
			t.Errorf("min binding size = %d, want 80", entry.Buffer.MinBindingSize)
		}
		if entry.Visibility != wgpu.ShaderStageVertex {
			t.Errorf("visibility = %v, want vertex", entry.Visibility)
		}
		if varNames[0][0] != "camera" {
			t.Errorf("var name = %q, want \"camera\"", varNames[0][0])
		}
	})

	t.Run("two vec3 fields round up to 32 bytes", func(t *testing.T) {
		groups, _ := parseBindGroupLayouts(texturedFragmentSource, wgpu.ShaderStageFragment)
		entry := groups[0].Entries[0]
		if entry.Buffer.MinBindingSize != 32 {
			t.Errorf("min binding size = %d, want 32", entry.Buffer.MinBindingSize)
		}
	})

	t.Run("texture and sampler entries sorted by binding", func(t *testing.T) {
		groups, varNames := parseBindGroupLayouts(texturedFragmentSource, wgpu.ShaderStageFragment)
		desc, ok := groups[1]
		if !ok {
			t.Fatal("group 1 missing")
		}
		if len(desc.Entries) != 2 {
			t.Fatalf("group 1 has %d entries, want 2", len(desc.Entries))
		}
		// The sampler is declared first in source but binds at 1.
		tex := desc.Entries[0]
		if tex.Binding != 0 {
			t.Errorf("first entry binding = %d, want 0", tex.Binding)
		}
		if tex.Texture.SampleType != wgpu.TextureSampleTypeFloat {
			t.Errorf("sample type = %v, want float", tex.Texture.SampleType)
		}
		if tex.Texture.ViewDimension != wgpu.TextureViewDimension2D {
			t.Errorf("view dimension = %v, want 2d", tex.Texture.ViewDimension)
		}
		if tex.Texture.Multisampled {
			t.Error("texture_2d should not be multisampled")
		}

		samp := desc.Entries[1]
		if samp.Binding != 1 {
			t.Errorf("second entry binding = %d, want 1", samp.Binding)
		}
		if samp.Sampler.Type != wgpu.SamplerBindingTypeFiltering {
			t.Errorf("sampler type = %v, want filtering", samp.Sampler.Type)
		}

		if varNames[1][0] != "t_diffuse" || varNames[1][1] != "s_diffuse" {
			t.Errorf("var names = %v, want t_diffuse/s_diffuse", varNames[1])
		}
	})

	t.Run("storage address spaces map to buffer binding types", func(t *testing.T) {
		source := `
@group(0) @binding(0)
var<storage, read> input: array<u32>;
@group(0) @binding(1)
var<storage, read_write> output: array<u32>;
`
		groups, _ := parseBindGroupLayouts(source, wgpu.ShaderStageCompute)
		entries := groups[0].Entries
		if entries[0].Buffer.Type != wgpu.BufferBindingTypeReadOnlyStorage {
			t.Errorf("read storage type = %v, want read-only", entries[0].Buffer.Type)
		}
		if entries[1].Buffer.Type != wgpu.BufferBindingTypeStorage {
			t.Errorf("read_write storage type = %v, want storage", entries[1].Buffer.Type)
		}
	})

	t.Run("no declarations yields empty maps", func(t *testing.T) {
		groups, varNames := parseBindGroupLayouts("fn noop() {}", wgpu.ShaderStageVertex)
		if len(groups) != 0 || len(varNames) != 0 {
			t.Errorf("got %d groups and %d var name groups, want 0/0", len(groups), len(varNames))
		}
	})
}

func TestParseEntryPoint(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		shaderType ShaderType
		want       string
	}{
		{"vertex entry", instancedVertexSource, ShaderTypeVertex, "vs_main"},
		{"fragment entry", texturedFragmentSource, ShaderTypeFragment, "fs_main"},
		{"missing fragment entry", instancedVertexSource, ShaderTypeFragment, ""},
		{"missing vertex entry", texturedFragmentSource, ShaderTypeVertex, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseEntryPoint(tt.source, tt.shaderType); got != tt.want {
				t.Errorf("parseEntryPoint = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveTypeLayout(t *testing.T) {
	known := map[string]wgslTypeLayout{
		"Plane": {size: 32, align: 16},
	}
	tests := []struct {
		name     string
		typeName string
		wantSize uint64
		wantOK   bool
	}{
		{"primitive scalar", "f32", 4, true},
		{"vec3 size excludes padding", "vec3<f32>", 12, true},
		{"known struct", "Plane", 32, true},
		{"fixed array uses stride", "array<vec3<f32>, 4>", 64, true},
		{"fixed array of structs", "array<Plane, 6>", 192, true},
		{"runtime array returns element stride", "array<Plane>", 32, true},
		{"unknown type", "Mystery", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, ok := resolveTypeLayout(tt.typeName, known)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && layout.size != tt.wantSize {
				t.Errorf("size = %d, want %d", layout.size, tt.wantSize)
			}
		})
	}
}

func TestComputeStructSizes(t *testing.T) {
	source := `
struct Inner {
    offset: vec3<f32>,
    weight: f32,
}
struct Outer {
    transform: mat4x4<f32>,
    inner: Inner,
    flags: u32,
}
`
	structs := parseStructBlocks(stripComments(source))
	sizes := computeStructSizes(structs)

	if got := sizes["Inner"].size; got != 16 {
		t.Errorf("Inner size = %d, want 16", got)
	}
	// mat4x4 (64) + Inner at 64 (16) + u32 at 80, rounded to align 16 -> 96.
	if got := sizes["Outer"].size; got != 96 {
		t.Errorf("Outer size = %d, want 96", got)
	}
}
