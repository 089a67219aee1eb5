// Package shading carries the renderer's canonical WGSL programs together with
// CPU reference implementations of the math they execute on the GPU. The WGSL
// text is the single source of truth for pipeline reflection; the Go functions
// exist so hosts and tests can verify the same formulas numerically.
package shading

import (
	_ "embed"

	"github.com/kestrel-gfx/kestrel/engine/renderer/shader"
)

//go:embed assets/light-billboard-vert.wgsl
var lightBillboardVertSource string

//go:embed assets/light-billboard-frag.wgsl
var lightBillboardFragSource string

//go:embed assets/lit-mesh-vert.wgsl
var litMeshVertSource string

//go:embed assets/lit-mesh-frag.wgsl
var litMeshFragSource string

//go:embed assets/flat-mesh-vert.wgsl
var flatMeshVertSource string

//go:embed assets/flat-mesh-frag.wgsl
var flatMeshFragSource string

//go:embed assets/triangle-vert.wgsl
var triangleVertSource string

//go:embed assets/triangle-frag.wgsl
var triangleFragSource string

// Pipeline keys for the built-in programs. Scenes and renderers use these to
// register and look up the corresponding render pipelines.
const (
	// PipelineKeyLightBillboard renders a small marker mesh at a point light's
	// position, tinted with the light's color.
	PipelineKeyLightBillboard = "light_billboard"

	// PipelineKeyLitMesh renders textured geometry with per-instance
	// transforms and point-light Phong shading.
	PipelineKeyLitMesh = "lit_mesh"

	// PipelineKeyFlatMesh renders vertex-colored geometry with per-instance
	// transforms and no lighting.
	PipelineKeyFlatMesh = "flat_mesh"

	// PipelineKeyTriangle renders a fixed blue triangle from hardcoded
	// positions, with no buffers or bindings at all.
	PipelineKeyTriangle = "triangle"
)

// LightBillboardShaders returns the vertex and fragment shaders for the point
// light marker program.
//
// Returns:
//   - shader.Shader: the vertex stage
//   - shader.Shader: the fragment stage
func LightBillboardShaders() (shader.Shader, shader.Shader) {
	vert := shader.NewShader(PipelineKeyLightBillboard+"_vert", shader.ShaderTypeVertex, lightBillboardVertSource)
	frag := shader.NewShader(PipelineKeyLightBillboard+"_frag", shader.ShaderTypeFragment, lightBillboardFragSource)
	return vert, frag
}

// LitMeshShaders returns the vertex and fragment shaders for the textured
// Phong-lit instanced mesh program.
//
// Returns:
//   - shader.Shader: the vertex stage
//   - shader.Shader: the fragment stage
func LitMeshShaders() (shader.Shader, shader.Shader) {
	vert := shader.NewShader(PipelineKeyLitMesh+"_vert", shader.ShaderTypeVertex, litMeshVertSource)
	frag := shader.NewShader(PipelineKeyLitMesh+"_frag", shader.ShaderTypeFragment, litMeshFragSource)
	return vert, frag
}

// FlatMeshShaders returns the vertex and fragment shaders for the unlit
// vertex-colored instanced mesh program.
//
// Returns:
//   - shader.Shader: the vertex stage
//   - shader.Shader: the fragment stage
func FlatMeshShaders() (shader.Shader, shader.Shader) {
	vert := shader.NewShader(PipelineKeyFlatMesh+"_vert", shader.ShaderTypeVertex, flatMeshVertSource)
	frag := shader.NewShader(PipelineKeyFlatMesh+"_frag", shader.ShaderTypeFragment, flatMeshFragSource)
	return vert, frag
}

// TriangleShaders returns the vertex and fragment shaders for the bufferless
// smoke-test triangle program.
//
// Returns:
//   - shader.Shader: the vertex stage
//   - shader.Shader: the fragment stage
func TriangleShaders() (shader.Shader, shader.Shader) {
	vert := shader.NewShader(PipelineKeyTriangle+"_vert", shader.ShaderTypeVertex, triangleVertSource)
	frag := shader.NewShader(PipelineKeyTriangle+"_frag", shader.ShaderTypeFragment, triangleFragSource)
	return vert, frag
}
