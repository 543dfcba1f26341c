package scene

import (
	"github.com/taigrr/prism/pkg/geom"
	"github.com/taigrr/prism/pkg/math3d"
)

// ModelTriangle indexes three vertices of a model's arena and carries
// the flat shading attributes of that face. Normals hold the per-vertex
// normals used for smooth shading; for faceted models all three equal
// the face normal.
type ModelTriangle struct {
	Indexes  [3]int
	Color    Color
	Specular int
	Normals  [3]math3d.Vec3
}

// Model is shared rasterizer geometry: a vertex arena plus indexed
// triangles. Bounds is computed once at construction and used for
// whole-instance frustum tests.
type Model struct {
	Vertices  []math3d.Vec3
	Triangles []ModelTriangle
	Bounds    geom.Sphere
}

// NewModel builds a model and its bounding sphere. The sphere is
// centered on the vertex centroid with radius reaching the farthest
// vertex.
func NewModel(vertices []math3d.Vec3, triangles []ModelTriangle) *Model {
	m := &Model{Vertices: vertices, Triangles: triangles}
	m.Bounds = boundingSphere(vertices)
	return m
}

func boundingSphere(vertices []math3d.Vec3) geom.Sphere {
	if len(vertices) == 0 {
		return geom.Sphere{}
	}
	center := math3d.Zero3()
	for _, v := range vertices {
		center = center.Add(v)
	}
	center = center.Scale(1 / float64(len(vertices)))
	radius := 0.0
	for _, v := range vertices {
		if d := v.Sub(center).Len(); d > radius {
			radius = d
		}
	}
	return geom.Sphere{Center: center, Radius: radius}
}

// Instance places a named model in the world with a transform composed
// from scale, rotation, and translation.
type Instance struct {
	ModelName string
	Transform math3d.Mat4
}

// NewInstance composes the placement transform. rotation maps model
// directions to world directions.
func NewInstance(modelName string, scale float64, rotation math3d.Mat4, translation math3d.Vec3) Instance {
	return Instance{
		ModelName: modelName,
		Transform: math3d.Compose(
			math3d.Translate(translation),
			rotation,
			math3d.ScaleUniform(scale),
		),
	}
}

// Polyhedron converts the model to a ray-traceable solid with a single
// material, for use on the tracing path.
func (m *Model) Polyhedron(material Material) *Polyhedron {
	tris := make([]geom.Triangle, 0, len(m.Triangles))
	for _, t := range m.Triangles {
		tris = append(tris, geom.NewTriangle(
			m.Vertices[t.Indexes[0]],
			m.Vertices[t.Indexes[1]],
			m.Vertices[t.Indexes[2]],
		))
	}
	return &Polyhedron{Triangles: tris, Material: material}
}
