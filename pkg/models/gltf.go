// Package models loads glTF/GLB documents into renderable scene
// models.
package models

import (
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/scene"
)

// Loader converts glTF documents into scene models.
type Loader struct {
	// SmoothNormals averages face normals per vertex for Phong
	// shading; otherwise every face is shaded flat.
	SmoothNormals bool
}

// NewLoader creates a loader with smooth normals enabled.
func NewLoader() *Loader {
	return &Loader{SmoothNormals: true}
}

// Load reads a .gltf or .glb file with the default loader.
func Load(path string) (*scene.Model, error) {
	return NewLoader().Load(path)
}

// Load reads a .gltf or .glb file and flattens every mesh primitive
// into one model. Only embedded (GLB) buffers are supported.
func (l *Loader) Load(path string) (*scene.Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return l.Build(doc)
}

// Build converts an already-parsed document.
func (l *Loader) Build(doc *gltf.Document) (*scene.Model, error) {
	var vertices []math3d.Vec3
	var triangles []scene.ModelTriangle

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			positions, err := readVec3Accessor(doc, posIdx)
			if err != nil {
				return nil, fmt.Errorf("mesh %q: read positions: %w", m.Name, err)
			}

			color, specular := primitiveMaterial(doc, prim)

			base := len(vertices)
			vertices = append(vertices, positions...)

			indices := make([]int, 0, len(positions))
			if prim.Indices != nil {
				indices, err = readIndices(doc, *prim.Indices)
				if err != nil {
					return nil, fmt.Errorf("mesh %q: read indices: %w", m.Name, err)
				}
			} else {
				for i := range positions {
					indices = append(indices, i)
				}
			}

			// glTF fronts are counter-clockwise; the rasterizer culls
			// counter-clockwise faces, so swap the winding.
			for i := 0; i+2 < len(indices); i += 3 {
				triangles = append(triangles, scene.ModelTriangle{
					Indexes: [3]int{
						base + indices[i],
						base + indices[i+2],
						base + indices[i+1],
					},
					Color:    color,
					Specular: specular,
				})
			}
		}
	}

	assignNormals(vertices, triangles, l.SmoothNormals)
	return scene.NewModel(vertices, triangles), nil
}

// LoadPolyhedron reads a model file and converts it to a ray-traceable
// solid with the given material.
func LoadPolyhedron(path string, material scene.Material) (*scene.Polyhedron, error) {
	m, err := Load(path)
	if err != nil {
		return nil, err
	}
	return m.Polyhedron(material), nil
}

// primitiveMaterial flattens a glTF PBR material to the flat color and
// Phong exponent the rasterizer works with: the base color factor
// becomes the triangle color, and roughness maps inversely onto the
// specular exponent (rough surfaces get no highlight at all).
func primitiveMaterial(doc *gltf.Document, prim *gltf.Primitive) (scene.Color, int) {
	color := scene.White
	specular := -1
	if prim.Material == nil || int(*prim.Material) >= len(doc.Materials) {
		return color, specular
	}
	pbr := doc.Materials[*prim.Material].PBRMetallicRoughness
	if pbr == nil {
		return color, specular
	}
	if f := pbr.BaseColorFactor; f != nil {
		color = scene.Color{
			R: float32(f[0] * 255),
			G: float32(f[1] * 255),
			B: float32(f[2] * 255),
		}
	}
	roughness := 1.0
	if pbr.RoughnessFactor != nil {
		roughness = float64(*pbr.RoughnessFactor)
	}
	if roughness < 1 {
		specular = int(math.Round((1 - roughness) * 500))
	}
	return color, specular
}

// assignNormals computes shading normals from the triangle geometry,
// facing the same side as the rasterizer's front faces. With smoothing
// the face normals are averaged over every triangle sharing a vertex.
func assignNormals(vertices []math3d.Vec3, triangles []scene.ModelTriangle, smooth bool) {
	faceNormal := func(t scene.ModelTriangle) math3d.Vec3 {
		a := vertices[t.Indexes[0]]
		b := vertices[t.Indexes[1]]
		c := vertices[t.Indexes[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		if l := n.Len(); l > 0 {
			return n.Scale(1 / l)
		}
		return n
	}

	if !smooth {
		for i := range triangles {
			n := faceNormal(triangles[i])
			triangles[i].Normals = [3]math3d.Vec3{n, n, n}
		}
		return
	}

	sums := make([]math3d.Vec3, len(vertices))
	for _, t := range triangles {
		n := faceNormal(t)
		for _, idx := range t.Indexes {
			sums[idx] = sums[idx].Add(n)
		}
	}
	for i := range triangles {
		for j, idx := range triangles[i].Indexes {
			n := sums[idx]
			if l := n.Len(); l > 0 {
				n = n.Scale(1 / l)
			} else {
				n = faceNormal(triangles[i])
			}
			triangles[i].Normals[j] = n
		}
	}
}
