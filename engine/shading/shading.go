package shading

import (
	"math"

	"github.com/kestrel-gfx/kestrel/common"
)

// Calibration constants shared by the WGSL programs and their CPU reference
// implementations. Changing one side without the other desynchronizes the
// GPU output from what the reference functions predict.
const (
	// BillboardScale shrinks the light marker mesh before placing it on the
	// light's world position.
	BillboardScale float32 = 0.2

	// DiffuseGain multiplies the Lambertian term of the lit mesh program.
	DiffuseGain float32 = 3.0

	// SpecularExponent is the Phong shininess exponent of the lit mesh program.
	SpecularExponent float32 = 32.0

	// AmbientFactor is the constant ambient contribution of the lit mesh
	// program, applied to the light color.
	AmbientFactor float32 = 0.001
)

// BillboardClipPosition computes the clip-space position emitted by the light
// marker vertex stage: the local position scaled by BillboardScale, offset by
// the light's world position, then projected.
//
// Parameters:
//   - viewProj: the view-projection matrix (16 elements, column-major)
//   - lightPos: the light's world-space position
//   - localPos: the marker mesh vertex in model space
//
// Returns:
//   - [4]float32: the homogeneous clip-space position before perspective divide
func BillboardClipPosition(viewProj []float32, lightPos, localPos [3]float32) [4]float32 {
	wx := localPos[0]*BillboardScale + lightPos[0]
	wy := localPos[1]*BillboardScale + lightPos[1]
	wz := localPos[2]*BillboardScale + lightPos[2]
	return common.TransformPoint(viewProj, wx, wy, wz)
}

// InstanceMatrix reassembles a per-instance transform from the four vec4
// vectors delivered through the instance buffer, exactly as the vertex stage
// does with mat4x4 construction.
//
// Parameters:
//   - m0, m1, m2, m3: the four matrix vectors in buffer order
//
// Returns:
//   - [16]float32: the reconstructed column-major transform
func InstanceMatrix(m0, m1, m2, m3 [4]float32) [16]float32 {
	var out [16]float32
	copy(out[0:4], m0[:])
	copy(out[4:8], m1[:])
	copy(out[8:12], m2[:])
	copy(out[12:16], m3[:])
	return out
}

// NormalCorrection applies the inverse of a diagonal scale matrix to a
// normal. A normal on a surface stretched by s must shrink by 1/s to stay
// perpendicular.
//
// Parameters:
//   - scale: the per-instance non-uniform scale vector
//   - normal: the model-space normal
//
// Returns:
//   - [3]float32: the corrected normal, not normalized
func NormalCorrection(scale, normal [3]float32) [3]float32 {
	var inv [16]float32
	common.InverseScale4(inv[:], scale[0], scale[1], scale[2])
	return common.TransformDirection(inv[:], normal[0], normal[1], normal[2])
}

// WorldNormal computes the world-space normal of the lit mesh vertex stage:
// inverse-scale times the instance transform, applied with w=0 so the
// translation column never contributes.
//
// Parameters:
//   - model: the instance transform (16 elements, column-major)
//   - scale: the per-instance non-uniform scale vector
//   - normal: the model-space normal
//
// Returns:
//   - [3]float32: the world-space normal, not normalized
func WorldNormal(model []float32, scale, normal [3]float32) [3]float32 {
	var inv, nrmMat [16]float32
	common.InverseScale4(inv[:], scale[0], scale[1], scale[2])
	common.Mul4(nrmMat[:], inv[:], model)
	return common.TransformDirection(nrmMat[:], normal[0], normal[1], normal[2])
}

// Attenuation is the inverse-square distance falloff used by the lit mesh
// fragment stage. It diverges to +Inf as the distance approaches zero; the
// GPU program carries the same singularity.
//
// Parameters:
//   - distance: world-space distance from the fragment to the light
//
// Returns:
//   - float32: 1 / distance²
func Attenuation(distance float32) float32 {
	return 1.0 / (distance * distance)
}

// PhongInput bundles the interpolated and uniform values consumed by the lit
// mesh fragment stage.
type PhongInput struct {
	// Normal is the interpolated world-space normal (normalized internally).
	Normal [3]float32

	// WorldPosition is the fragment's interpolated world-space position.
	WorldPosition [3]float32

	// LightPosition is the point light's world-space position.
	LightPosition [3]float32

	// LightColor is the point light's RGB color.
	LightColor [3]float32

	// CameraPosition is the observer's world-space position.
	CameraPosition [3]float32

	// BaseColor is the sampled diffuse texel (RGBA).
	BaseColor [4]float32
}

// PhongShade evaluates the lit mesh fragment formula: inverse-square
// attenuated diffuse (gain 3.0) and specular (exponent 32) terms plus a
// 0.001 ambient term, all tinted by the light color and multiplied
// elementwise into the base color's RGB. Alpha passes through from the base
// color.
//
// Parameters:
//   - in: the fragment inputs
//
// Returns:
//   - [4]float32: the final RGBA color
func PhongShade(in PhongInput) [4]float32 {
	normal := normalize3(in.Normal)

	toLight := sub3(in.LightPosition, in.WorldPosition)
	attenuation := 1.0 / dot3(toLight, toLight)
	lightDir := normalize3(toLight)

	diffuse := DiffuseGain * maxf(dot3(normal, lightDir), 0) * attenuation

	viewDir := normalize3(sub3(in.CameraPosition, in.WorldPosition))
	reflectDir := reflect3(neg3(lightDir), normal)
	specular := powf(maxf(dot3(viewDir, reflectDir), 0), SpecularExponent) * attenuation

	strength := AmbientFactor + diffuse + specular
	return [4]float32{
		strength * in.LightColor[0] * in.BaseColor[0],
		strength * in.LightColor[1] * in.BaseColor[1],
		strength * in.LightColor[2] * in.BaseColor[2],
		in.BaseColor[3],
	}
}

// FlatClipPosition computes the clip-space position of the flat-colored
// instanced vertex stage, carrying the homogeneous 4-vector through both the
// instance transform and the view-projection multiply.
//
// Parameters:
//   - viewProj: the view-projection matrix (16 elements, column-major)
//   - model: the instance transform (16 elements, column-major)
//   - position: the vertex position in model space
//
// Returns:
//   - [4]float32: the homogeneous clip-space position
func FlatClipPosition(viewProj, model []float32, position [3]float32) [4]float32 {
	world := common.TransformPoint(model, position[0], position[1], position[2])
	var out [4]float32
	common.Mul4Vec4(out[:], viewProj, world[:])
	return out
}

// flatClipPositionTruncated is the discarded formulation that drops the
// instance-transformed position to xyz (re-promoting with w=1) before the
// projection multiply. It diverges from FlatClipPosition whenever the
// instance transform produces w != 1, and exists only so tests can pin down
// that divergence.
func flatClipPositionTruncated(viewProj, model []float32, position [3]float32) [4]float32 {
	world := common.TransformPoint(model, position[0], position[1], position[2])
	return common.TransformPoint(viewProj, world[0], world[1], world[2])
}

// TriangleVertexPosition returns the hardcoded clip-space position the
// smoke-test triangle vertex stage emits for a vertex index, with z=0 and
// w=1. Indices beyond 2 wrap.
//
// Parameters:
//   - index: the vertex index
//
// Returns:
//   - [4]float32: the clip-space position
func TriangleVertexPosition(index uint32) [4]float32 {
	positions := [3][2]float32{
		{0.0, 0.5},
		{-0.5, -0.5},
		{0.5, -0.5},
	}
	p := positions[index%3]
	return [4]float32{p[0], p[1], 0, 1}
}

func dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func neg3(v [3]float32) [3]float32 {
	return [3]float32{-v[0], -v[1], -v[2]}
}

func normalize3(v [3]float32) [3]float32 {
	lenSq := dot3(v, v)
	if lenSq == 0 {
		return v
	}
	inv := 1.0 / float32(math.Sqrt(float64(lenSq)))
	return [3]float32{v[0] * inv, v[1] * inv, v[2] * inv}
}

// reflect3 mirrors the incident vector about the normal, matching WGSL's
// reflect(i, n) = i - 2 * dot(n, i) * n.
func reflect3(incident, normal [3]float32) [3]float32 {
	d := 2 * dot3(normal, incident)
	return [3]float32{
		incident[0] - d*normal[0],
		incident[1] - d*normal[1],
		incident[2] - d*normal[2],
	}
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func powf(base, exp float32) float32 {
	return float32(math.Pow(float64(base), float64(exp)))
}
