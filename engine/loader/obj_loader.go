// Package loader imports Wavefront OBJ meshes (with optional MTL material
// libraries) into GPU-ready Models. Faces are triangulated, vertices are
// deduplicated across position/uv/normal index triplets, and diffuse textures
// referenced by map_Kd are decoded into staging data via common.ImportedTexture.
package loader

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kestrel-gfx/kestrel/common"
	"github.com/kestrel-gfx/kestrel/engine/model"
	"github.com/kestrel-gfx/kestrel/engine/renderer/bind_group_provider"
)

// objKey identifies a unique v/vt/vn index triplet for vertex deduplication.
type objKey struct {
	v, vt, vn int
}

// LoadOBJ parses a Wavefront OBJ file and builds a Model with interleaved
// GPUVertex data and a uint32 index buffer. Polygonal faces are fan-triangulated.
// Negative (relative) indices are resolved against the current element counts.
// When the file references a material library, the materials are parsed and
// attached to the Model as ImportedMaterials.
//
// Parameters:
//   - path: filesystem path to the .obj file
//
// Returns:
//   - model.Model: the loaded model
//   - error: an error if the file cannot be read or contains malformed data
func LoadOBJ(path string) (model.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open obj file: %w", err)
	}
	defer f.Close()

	var (
		positions [][3]float32
		texCoords [][2]float32
		normals   [][3]float32

		vertices []model.GPUVertex
		indices  []uint32
		dedup    = make(map[objKey]uint32)

		materials []common.ImportedMaterial
	)

	baseDir := filepath.Dir(path)
	lineNo := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, parseErr := parseFloats3(fields[1:])
			if parseErr != nil {
				return nil, fmt.Errorf("obj line %d: %w", lineNo, parseErr)
			}
			positions = append(positions, p)
		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("obj line %d: vt needs at least 2 components", lineNo)
			}
			u, uErr := parseFloat(fields[1])
			v, vErr := parseFloat(fields[2])
			if uErr != nil || vErr != nil {
				return nil, fmt.Errorf("obj line %d: malformed texture coordinate", lineNo)
			}
			// OBJ uses a bottom-left UV origin; flip V for top-left texture sampling.
			texCoords = append(texCoords, [2]float32{u, 1 - v})
		case "vn":
			n, parseErr := parseFloats3(fields[1:])
			if parseErr != nil {
				return nil, fmt.Errorf("obj line %d: %w", lineNo, parseErr)
			}
			normals = append(normals, n)
		case "f":
			corners := fields[1:]
			if len(corners) < 3 {
				return nil, fmt.Errorf("obj line %d: face needs at least 3 vertices", lineNo)
			}
			faceIdx := make([]uint32, len(corners))
			for i, corner := range corners {
				key, keyErr := parseFaceCorner(corner, len(positions), len(texCoords), len(normals))
				if keyErr != nil {
					return nil, fmt.Errorf("obj line %d: %w", lineNo, keyErr)
				}
				idx, seen := dedup[key]
				if !seen {
					vert, buildErr := buildVertex(key, positions, texCoords, normals)
					if buildErr != nil {
						return nil, fmt.Errorf("obj line %d: %w", lineNo, buildErr)
					}
					idx = uint32(len(vertices))
					vertices = append(vertices, vert)
					dedup[key] = idx
				}
				faceIdx[i] = idx
			}
			// Fan triangulation for quads and larger polygons.
			for i := 1; i+1 < len(faceIdx); i++ {
				indices = append(indices, faceIdx[0], faceIdx[i], faceIdx[i+1])
			}
		case "mtllib":
			if len(fields) < 2 {
				continue
			}
			mats, mtlErr := LoadMTL(filepath.Join(baseDir, fields[1]))
			if mtlErr != nil {
				return nil, fmt.Errorf("obj line %d: %w", lineNo, mtlErr)
			}
			materials = append(materials, mats...)
		case "usemtl", "o", "g", "s":
			// Object/group/smoothing markers and material switches don't affect
			// the single-mesh import path.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read obj file: %w", err)
	}
	if len(vertices) == 0 {
		return nil, fmt.Errorf("obj file %q contains no faces", path)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return model.NewModel(
		model.WithName(name),
		model.WithMeshProvider(bind_group_provider.NewBindGroupProvider(name)),
		model.WithImportedMaterials(materials),
		model.WithVertexData(model.MarshalVertices(vertices)),
		model.WithIndexData(model.MarshalIndices(indices)),
		model.WithIndexCount(len(indices)),
		model.WithBoundingRadius(model.ComputeBoundingRadius(vertices)),
	), nil
}

// LoadMTL parses a Wavefront MTL material library. For each material it
// captures the diffuse color (Kd) and, when a map_Kd directive is present,
// reads and decodes the referenced texture into RGBA staging data.
//
// Parameters:
//   - path: filesystem path to the .mtl file
//
// Returns:
//   - []common.ImportedMaterial: the parsed materials in declaration order
//   - error: an error if the file or a referenced texture cannot be read
func LoadMTL(path string) ([]common.ImportedMaterial, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mtl file: %w", err)
	}
	defer f.Close()

	baseDir := filepath.Dir(path)

	var materials []common.ImportedMaterial
	current := -1

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "newmtl":
			if len(fields) < 2 {
				continue
			}
			materials = append(materials, common.ImportedMaterial{
				Name:      fields[1],
				BaseColor: [4]float32{1, 1, 1, 1},
			})
			current = len(materials) - 1
		case "Kd":
			if current < 0 || len(fields) < 4 {
				continue
			}
			r, rErr := parseFloat(fields[1])
			g, gErr := parseFloat(fields[2])
			b, bErr := parseFloat(fields[3])
			if rErr != nil || gErr != nil || bErr != nil {
				return nil, fmt.Errorf("mtl %q: malformed Kd for material %s", path, materials[current].Name)
			}
			materials[current].BaseColor = [4]float32{r, g, b, 1}
		case "map_Kd":
			if current < 0 || len(fields) < 2 {
				continue
			}
			texPath := filepath.Join(baseDir, fields[len(fields)-1])
			data, readErr := os.ReadFile(texPath)
			if readErr != nil {
				return nil, fmt.Errorf("mtl %q: failed to read diffuse texture: %w", path, readErr)
			}
			tex := &common.ImportedTexture{Name: materials[current].Name, Path: texPath, Data: data}
			if _, _, _, decodeErr := tex.Decode(); decodeErr != nil {
				return nil, fmt.Errorf("mtl %q: failed to decode diffuse texture: %w", path, decodeErr)
			}
			materials[current].DiffuseTexturePath = texPath
			materials[current].DiffuseTexture = tex
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mtl file: %w", err)
	}

	return materials, nil
}

// parseFaceCorner parses a single face corner of the form "v", "v/vt",
// "v//vn", or "v/vt/vn" into zero-based indices. Negative indices are resolved
// relative to the current element counts per the OBJ specification. Absent
// components are stored as -1.
func parseFaceCorner(corner string, numPos, numTex, numNorm int) (objKey, error) {
	parts := strings.Split(corner, "/")
	key := objKey{v: -1, vt: -1, vn: -1}

	resolve := func(raw string, count int) (int, error) {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("malformed face index %q", raw)
		}
		if n < 0 {
			n = count + n
		} else {
			n = n - 1
		}
		if n < 0 || n >= count {
			return 0, fmt.Errorf("face index %q out of range (have %d elements)", raw, count)
		}
		return n, nil
	}

	var err error
	if key.v, err = resolve(parts[0], numPos); err != nil {
		return key, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if key.vt, err = resolve(parts[1], numTex); err != nil {
			return key, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if key.vn, err = resolve(parts[2], numNorm); err != nil {
			return key, err
		}
	}
	return key, nil
}

// buildVertex assembles an interleaved GPUVertex from a resolved index triplet.
// Missing texture coordinates or normals are zero-filled.
func buildVertex(key objKey, positions [][3]float32, texCoords [][2]float32, normals [][3]float32) (model.GPUVertex, error) {
	var vert model.GPUVertex
	vert.Position = positions[key.v]
	if key.vt >= 0 {
		vert.TexCoord = texCoords[key.vt]
	}
	if key.vn >= 0 {
		vert.Normal = normals[key.vn]
	}
	return vert, nil
}

func parseFloat(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	return float32(v), nil
}

func parseFloats3(fields []string) ([3]float32, error) {
	var out [3]float32
	if len(fields) < 3 {
		return out, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		v, err := parseFloat(fields[i])
		if err != nil {
			return out, fmt.Errorf("malformed float %q", fields[i])
		}
		out[i] = v
	}
	return out, nil
}
