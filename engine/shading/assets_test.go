package shading

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/kestrel-gfx/kestrel/engine/renderer/shader"
)

// requireSlot fails the test unless the shader declares a vertex buffer at the
// slot with the given stride and step mode, then returns it.
func requireSlot(t *testing.T, s shader.Shader, slot int, stride uint64, step wgpu.VertexStepMode) wgpu.VertexBufferLayout {
	t.Helper()
	layouts := s.VertexLayout(slot)
	if len(layouts) != 1 {
		t.Fatalf("%s slot %d: got %d layouts, want 1", s.Key(), slot, len(layouts))
	}
	l := layouts[0]
	if l.ArrayStride != stride {
		t.Errorf("%s slot %d stride = %d, want %d", s.Key(), slot, l.ArrayStride, stride)
	}
	if l.StepMode != step {
		t.Errorf("%s slot %d step mode = %v, want %v", s.Key(), slot, l.StepMode, step)
	}
	return l
}

func locations(l wgpu.VertexBufferLayout) []uint32 {
	locs := make([]uint32, len(l.Attributes))
	for i, a := range l.Attributes {
		locs[i] = a.ShaderLocation
	}
	return locs
}

func equalLocations(got, want []uint32) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestLightBillboardShaderReflection(t *testing.T) {
	vert, frag := LightBillboardShaders()

	if vert.EntryPoint() != "vs_main" {
		t.Errorf("vertex entry point = %q, want vs_main", vert.EntryPoint())
	}
	if frag.EntryPoint() != "fs_main" {
		t.Errorf("fragment entry point = %q, want fs_main", frag.EntryPoint())
	}

	// Position-only vertices, no instance buffer.
	l := requireSlot(t, vert, 0, 12, wgpu.VertexStepModeVertex)
	if !equalLocations(locations(l), []uint32{0}) {
		t.Errorf("vertex locations = %v, want [0]", locations(l))
	}
	if len(vert.VertexLayouts()) != 1 {
		t.Errorf("got %d vertex buffer slots, want 1", len(vert.VertexLayouts()))
	}

	// The marker binds the camera at group 0 and the light at group 1, both
	// from the vertex stage; the fragment stage only reads the varying color.
	cam := vert.BindGroupLayoutDescriptor(0)
	if len(cam.Entries) != 1 || cam.Entries[0].Buffer.MinBindingSize != 80 {
		t.Errorf("camera group = %+v, want one uniform of 80 bytes", cam.Entries)
	}
	light := vert.BindGroupLayoutDescriptor(1)
	if len(light.Entries) != 1 || light.Entries[0].Buffer.MinBindingSize != 32 {
		t.Errorf("light group = %+v, want one uniform of 32 bytes", light.Entries)
	}
	if light.Entries[0].Visibility != wgpu.ShaderStageVertex {
		t.Errorf("light visibility = %v, want vertex", light.Entries[0].Visibility)
	}
	if len(frag.BindGroupLayoutDescriptors()) != 0 {
		t.Errorf("billboard fragment declares %d bind groups, want 0", len(frag.BindGroupLayoutDescriptors()))
	}

	if vert.BindGroupVarName(0, 0) != "camera" {
		t.Errorf("group 0 var = %q, want camera", vert.BindGroupVarName(0, 0))
	}
	if vert.BindGroupVarName(1, 0) != "light" {
		t.Errorf("group 1 var = %q, want light", vert.BindGroupVarName(1, 0))
	}
}

func TestLitMeshShaderReflection(t *testing.T) {
	vert, frag := LitMeshShaders()

	mesh := requireSlot(t, vert, 0, 32, wgpu.VertexStepModeVertex)
	if !equalLocations(locations(mesh), []uint32{0, 1, 2}) {
		t.Errorf("mesh locations = %v, want [0 1 2]", locations(mesh))
	}

	inst := requireSlot(t, vert, 1, 76, wgpu.VertexStepModeInstance)
	if !equalLocations(locations(inst), []uint32{5, 6, 7, 8, 9}) {
		t.Errorf("instance locations = %v, want [5 6 7 8 9]", locations(inst))
	}
	// Four mat4 columns then the raw scale vector.
	if inst.Attributes[4].Offset != 64 || inst.Attributes[4].Format != wgpu.VertexFormatFloat32x3 {
		t.Errorf("scale attribute = %+v, want vec3 at offset 64", inst.Attributes[4])
	}

	// Fragment stage: camera at group 0, light at group 1, material at group 2.
	if got := frag.BindGroupLayoutDescriptor(0).Entries[0].Buffer.MinBindingSize; got != 80 {
		t.Errorf("camera uniform size = %d, want 80", got)
	}
	if got := frag.BindGroupLayoutDescriptor(1).Entries[0].Buffer.MinBindingSize; got != 32 {
		t.Errorf("light uniform size = %d, want 32", got)
	}

	mat := frag.BindGroupLayoutDescriptor(2)
	if len(mat.Entries) != 2 {
		t.Fatalf("material group has %d entries, want 2", len(mat.Entries))
	}
	tex := mat.Entries[0]
	if tex.Texture.SampleType != wgpu.TextureSampleTypeFloat || tex.Texture.ViewDimension != wgpu.TextureViewDimension2D {
		t.Errorf("texture entry = %+v, want float texture_2d", tex.Texture)
	}
	if mat.Entries[1].Sampler.Type != wgpu.SamplerBindingTypeFiltering {
		t.Errorf("sampler entry = %+v, want filtering sampler", mat.Entries[1].Sampler)
	}
	if frag.BindGroupVarName(2, 0) != "t_diffuse" || frag.BindGroupVarName(2, 1) != "s_diffuse" {
		t.Errorf("material vars = %q/%q, want t_diffuse/s_diffuse",
			frag.BindGroupVarName(2, 0), frag.BindGroupVarName(2, 1))
	}
}

func TestFlatMeshShaderReflection(t *testing.T) {
	vert, frag := FlatMeshShaders()

	mesh := requireSlot(t, vert, 0, 28, wgpu.VertexStepModeVertex)
	if !equalLocations(locations(mesh), []uint32{0, 1}) {
		t.Errorf("mesh locations = %v, want [0 1]", locations(mesh))
	}
	if mesh.Attributes[1].Format != wgpu.VertexFormatFloat32x4 || mesh.Attributes[1].Offset != 12 {
		t.Errorf("color attribute = %+v, want vec4 at offset 12", mesh.Attributes[1])
	}

	// Model matrix only, no scale column.
	inst := requireSlot(t, vert, 1, 64, wgpu.VertexStepModeInstance)
	if !equalLocations(locations(inst), []uint32{5, 6, 7, 8}) {
		t.Errorf("instance locations = %v, want [5 6 7 8]", locations(inst))
	}

	// The camera is the only binding; the fragment stage binds nothing.
	if got := vert.BindGroupLayoutDescriptor(0).Entries[0].Buffer.MinBindingSize; got != 80 {
		t.Errorf("camera uniform size = %d, want 80", got)
	}
	if len(frag.BindGroupLayoutDescriptors()) != 0 {
		t.Errorf("flat fragment declares %d bind groups, want 0", len(frag.BindGroupLayoutDescriptors()))
	}
}

func TestTriangleShaderReflection(t *testing.T) {
	vert, frag := TriangleShaders()

	if vert.EntryPoint() != "vs_main" || frag.EntryPoint() != "fs_main" {
		t.Errorf("entry points = %q/%q, want vs_main/fs_main", vert.EntryPoint(), frag.EntryPoint())
	}
	if len(vert.VertexLayouts()) != 0 {
		t.Errorf("triangle declares %d vertex buffers, want 0", len(vert.VertexLayouts()))
	}
	if len(vert.BindGroupLayoutDescriptors()) != 0 || len(frag.BindGroupLayoutDescriptors()) != 0 {
		t.Error("triangle program should declare no bind groups")
	}
}
