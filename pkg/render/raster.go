package render

import (
	"math"

	"github.com/taigrr/prism/pkg/geom"
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/scene"
)

// ShadingMode selects how rasterized triangles are colored.
type ShadingMode int

const (
	// Wireframe outlines triangles without filling or depth testing.
	Wireframe ShadingMode = iota
	// Flat lights each triangle once at its centroid.
	Flat
	// Phong lights every pixel with an interpolated surface normal.
	Phong
)

// Rasterizer renders scene model instances onto a canvas through the
// clip-project-scan pipeline. Triangles wound clockwise as seen from
// the camera count as front faces; back faces are culled.
type Rasterizer struct {
	canvas *Canvas
	mode   ShadingMode
	depth  []float64 // inverse camera z per pixel, 0 = nothing drawn

	vp     viewport
	proj   math3d.Mat4
	camera math3d.Mat4
	planes []geom.Plane
	lights *scene.Scene // camera-space lights, no objects, no shadows
}

// NewRasterizer creates a rasterizer drawing to the canvas.
func NewRasterizer(canvas *Canvas, mode ShadingMode) *Rasterizer {
	return &Rasterizer{
		canvas: canvas,
		mode:   mode,
		depth:  make([]float64, canvas.width*canvas.height),
	}
}

// SetView configures the viewport and projection distance. Render
// calls it from the scene's camera; tests may call it directly.
func (r *Rasterizer) SetView(viewportWidth, viewportHeight, distance float64) {
	r.vp = viewport{
		width:    viewportWidth,
		height:   viewportHeight,
		distance: distance,
		canvasW:  r.canvas.width,
		canvasH:  r.canvas.height,
	}
	r.proj = ProjectionMatrix(viewportWidth, viewportHeight, distance)
	r.planes = frustumPlanes(viewportWidth, viewportHeight, distance)
}

// Project maps a camera-space point to centered canvas coordinates.
func (r *Rasterizer) Project(v math3d.Vec3) Point {
	return r.vp.project(r.proj, v)
}

// Unproject recovers the camera-space point behind a projected canvas
// position, given its camera-space z.
func (r *Rasterizer) Unproject(p Point, z float64) math3d.Vec3 {
	return r.vp.unproject(p, z)
}

// Render rasterizes every model instance in the scene. The depth
// buffer is reset first, so consecutive calls each start from a blank
// frame.
func (r *Rasterizer) Render(s *scene.Scene) {
	position, rotation, distance := s.Camera()
	r.SetView(s.ViewportWidth, s.ViewportHeight, distance)
	r.camera = CameraMatrix(position, rotation)
	r.lights = cameraSpaceLights(s, r.camera)
	clear(r.depth)

	for _, inst := range s.Instances {
		model, ok := s.Models[inst.ModelName]
		if !ok {
			continue
		}
		r.renderInstance(model, inst.Transform)
	}
}

// cameraSpaceLights rebuilds the scene's lights in camera space inside
// an object-free scene, so lighting queries see no occluders. Lights
// registered by pointer are carried the same as values.
func cameraSpaceLights(s *scene.Scene, camera math3d.Mat4) *scene.Scene {
	out := scene.NewScene(s.ViewportWidth, s.ViewportHeight, s.Background)
	for _, l := range s.Lights {
		switch l := l.(type) {
		case scene.AmbientLight:
			out.AddLight(l)
		case *scene.AmbientLight:
			out.AddLight(*l)
		case scene.PointLight:
			out.AddLight(scene.PointLight{
				Intensity: l.Intensity,
				Position:  camera.MulPoint(l.Position),
			})
		case *scene.PointLight:
			out.AddLight(scene.PointLight{
				Intensity: l.Intensity,
				Position:  camera.MulPoint(l.Position),
			})
		case scene.DirectionalLight:
			out.AddLight(scene.DirectionalLight{
				Intensity: l.Intensity,
				Direction: camera.MulDir(l.Direction),
			})
		case *scene.DirectionalLight:
			out.AddLight(scene.DirectionalLight{
				Intensity: l.Intensity,
				Direction: camera.MulDir(l.Direction),
			})
		}
	}
	return out
}

// rasterTriangle references three vertices of the working arena.
type rasterTriangle struct {
	idx      [3]int
	color    scene.Color
	specular int
	normals  [3]math3d.Vec3
}

func (r *Rasterizer) renderInstance(model *scene.Model, placement math3d.Mat4) {
	m := math3d.Compose(r.camera, placement)
	scale := m.MulDir(math3d.V3(1, 0, 0)).Len()

	// Working arena: clipping appends synthesized vertices without
	// touching the shared model.
	verts := make([]math3d.Vec3, len(model.Vertices))
	for i, v := range model.Vertices {
		verts[i] = m.MulPoint(v)
	}
	tris := make([]rasterTriangle, 0, len(model.Triangles))
	for _, t := range model.Triangles {
		rt := rasterTriangle{idx: t.Indexes, color: t.Color, specular: t.Specular}
		for i, n := range t.Normals {
			rt.normals[i] = m.MulDir(n).Normalize()
		}
		tris = append(tris, rt)
	}

	center := m.MulPoint(model.Bounds.Center)
	radius := model.Bounds.Radius * scale
	for _, plane := range r.planes {
		dist := plane.SignedDistance(center)
		if dist < -radius {
			// Entirely outside this plane.
			return
		}
		if dist < radius {
			tris = clipTriangles(plane, &verts, tris)
		}
	}

	projected := make([]Point, len(verts))
	zinv := make([]float64, len(verts))
	for i, v := range verts {
		projected[i] = r.Project(v)
		zinv[i] = 1 / v.Z
	}

	for _, t := range tris {
		r.renderTriangle(t, verts, projected, zinv)
	}
}

// clipTriangles clips every triangle against one plane. Vertices with
// nonnegative signed distance are inside. Synthesized vertices are
// appended to the arena; indices of surviving triangles stay valid.
func clipTriangles(plane geom.Plane, verts *[]math3d.Vec3, tris []rasterTriangle) []rasterTriangle {
	out := make([]rasterTriangle, 0, len(tris))
	for _, t := range tris {
		out = appendClipped(out, plane, verts, t)
	}
	return out
}

func appendClipped(out []rasterTriangle, plane geom.Plane, verts *[]math3d.Vec3, t rasterTriangle) []rasterTriangle {
	var d [3]float64
	inside := 0
	for i, idx := range t.idx {
		d[i] = plane.SignedDistance((*verts)[idx])
		if d[i] >= 0 {
			inside++
		}
	}

	switch inside {
	case 3:
		return append(out, t)
	case 0:
		return out

	case 1:
		// Rotate so the inside vertex leads, then pull the other two
		// corners back to the plane.
		for d[0] < 0 {
			t, d = rotateTriangle(t, d)
		}
		b := clipEdge(plane, verts, t, 0, 1)
		c := clipEdge(plane, verts, t, 0, 2)
		clipped := t
		clipped.idx[1], clipped.normals[1] = b.idx, b.normal
		clipped.idx[2], clipped.normals[2] = c.idx, c.normal
		return append(out, clipped)

	default: // 2
		// Rotate so the outside vertex leads; the survivors form a
		// quad split into two triangles with the original winding.
		for d[0] >= 0 {
			t, d = rotateTriangle(t, d)
		}
		ab := clipEdge(plane, verts, t, 0, 1)
		ac := clipEdge(plane, verts, t, 0, 2)

		first := t
		first.idx[0], first.normals[0] = ab.idx, ab.normal

		second := t
		second.idx[0], second.normals[0] = ab.idx, ab.normal
		second.idx[1], second.normals[1] = t.idx[2], t.normals[2]
		second.idx[2], second.normals[2] = ac.idx, ac.normal
		return append(out, first, second)
	}
}

// rotateTriangle shifts the vertex order cyclically, preserving the
// winding.
func rotateTriangle(t rasterTriangle, d [3]float64) (rasterTriangle, [3]float64) {
	t.idx[0], t.idx[1], t.idx[2] = t.idx[1], t.idx[2], t.idx[0]
	t.normals[0], t.normals[1], t.normals[2] = t.normals[1], t.normals[2], t.normals[0]
	d[0], d[1], d[2] = d[1], d[2], d[0]
	return t, d
}

type clippedVertex struct {
	idx    int
	normal math3d.Vec3
}

// clipEdge intersects the edge from corner i to corner j with the
// plane and appends the new vertex to the arena, interpolating the
// shading normal along the edge.
func clipEdge(plane geom.Plane, verts *[]math3d.Vec3, t rasterTriangle, i, j int) clippedVertex {
	a := (*verts)[t.idx[i]]
	b := (*verts)[t.idx[j]]
	s, ok := plane.IntersectSegment(a, b)
	if !ok {
		// Parallel edge with straddling endpoints cannot happen for a
		// plane that separated them; keep the far corner.
		return clippedVertex{idx: t.idx[j], normal: t.normals[j]}
	}
	p := a.Add(b.Sub(a).Scale(s))
	n := t.normals[i].Add(t.normals[j].Sub(t.normals[i]).Scale(s))
	if l := n.Len(); l > 0 {
		n = n.Scale(1 / l)
	}
	*verts = append(*verts, p)
	return clippedVertex{idx: len(*verts) - 1, normal: n}
}

func (r *Rasterizer) renderTriangle(t rasterTriangle, verts []math3d.Vec3, projected []Point, zinv []float64) {
	v0 := verts[t.idx[0]]
	v1 := verts[t.idx[1]]
	v2 := verts[t.idx[2]]

	normal := v1.Sub(v0).Cross(v2.Sub(v0))
	center := v0.Add(v1).Add(v2).Scale(1.0 / 3)
	if normal.Dot(center) >= 0 {
		// Back face.
		return
	}

	p0, p1, p2 := projected[t.idx[0]], projected[t.idx[1]], projected[t.idx[2]]
	switch r.mode {
	case Wireframe:
		r.canvas.DrawWireframeTriangle(p0, p1, p2, t.color)
	case Flat:
		view := center.Negate().Normalize()
		intensity := r.lights.ComputeLighting(center, normal.Normalize(), view, t.specular)
		r.fillDepthTriangle(t, projected, zinv, func(_ Point, _ float64, _ math3d.Vec3) scene.Color {
			return t.color.Scale(intensity)
		})
	case Phong:
		r.fillDepthTriangle(t, projected, zinv, func(p Point, z float64, n math3d.Vec3) scene.Color {
			point := r.Unproject(p, z)
			view := point.Negate().Normalize()
			return t.color.Scale(r.lights.ComputeLighting(point, n, view, t.specular))
		})
	}
}

// fillDepthTriangle scan-converts a triangle behind the depth test,
// interpolating inverse depth and the shading normal across the
// surface. shade computes the pixel color from the projected position,
// recovered camera z, and interpolated unit normal.
func (r *Rasterizer) fillDepthTriangle(t rasterTriangle, projected []Point, zinv []float64, shade func(Point, float64, math3d.Vec3) scene.Color) {
	c := [3]corner{}
	for i := 0; i < 3; i++ {
		c[i] = corner{projected[t.idx[i]], zinv[t.idx[i]], t.normals[i]}
	}
	if c[1].p.Y < c[0].p.Y {
		c[0], c[1] = c[1], c[0]
	}
	if c[2].p.Y < c[0].p.Y {
		c[0], c[2] = c[2], c[0]
	}
	if c[2].p.Y < c[1].p.Y {
		c[1], c[2] = c[2], c[1]
	}

	y0 := int(math.Round(c[0].p.Y))
	y1 := int(math.Round(c[1].p.Y))
	y2 := int(math.Round(c[2].p.Y))

	long := edgeAttrs(y0, c[0], y2, c[2])
	short := joinAttrEdges(edgeAttrs(y0, c[0], y1, c[1]), edgeAttrs(y1, c[1], y2, c[2]))

	left, right := long, short
	m := len(long.x) / 2
	if short.x[m] < long.x[m] {
		left, right = short, long
	}

	for y := y0; y <= y2; y++ {
		i := y - y0
		xl := int(math.Round(left.x[i]))
		xr := int(math.Round(right.x[i]))
		zs := Interpolate(xl, left.z[i], xr, right.z[i])
		nxs := Interpolate(xl, left.nx[i], xr, right.nx[i])
		nys := Interpolate(xl, left.ny[i], xr, right.ny[i])
		nzs := Interpolate(xl, left.nz[i], xr, right.nz[i])
		for x := xl; x <= xr; x++ {
			j := x - xl
			z := zs[j]
			if !r.depthTest(x, y, z) {
				continue
			}
			n := math3d.V3(nxs[j], nys[j], nzs[j])
			if l := n.Len(); l > 0 {
				n = n.Scale(1 / l)
			}
			r.canvas.put(x, y, shade(Point{float64(x), float64(y)}, 1/z, n))
		}
	}
}

// corner is one triangle vertex with its projected position, inverse
// depth, and shading normal.
type corner struct {
	p Point
	z float64
	n math3d.Vec3
}

// attrEdge holds per-scanline interpolated attributes down one edge.
type attrEdge struct {
	x, z, nx, ny, nz []float64
}

func edgeAttrs(y0 int, a corner, y1 int, b corner) attrEdge {
	return attrEdge{
		x:  Interpolate(y0, a.p.X, y1, b.p.X),
		z:  Interpolate(y0, a.z, y1, b.z),
		nx: Interpolate(y0, a.n.X, y1, b.n.X),
		ny: Interpolate(y0, a.n.Y, y1, b.n.Y),
		nz: Interpolate(y0, a.n.Z, y1, b.n.Z),
	}
}

func joinAttrEdges(top, bottom attrEdge) attrEdge {
	return attrEdge{
		x:  joinEdges(top.x, bottom.x),
		z:  joinEdges(top.z, bottom.z),
		nx: joinEdges(top.nx, bottom.nx),
		ny: joinEdges(top.ny, bottom.ny),
		nz: joinEdges(top.nz, bottom.nz),
	}
}

// depthTest records and reports whether inverse depth z wins at the
// centered canvas position. Larger inverse depth is nearer; 0 marks an
// untouched pixel.
func (r *Rasterizer) depthTest(cx, cy int, z float64) bool {
	x := cx + r.canvas.width/2
	y := r.canvas.height/2 - cy
	if x < 0 || x >= r.canvas.width || y < 0 || y >= r.canvas.height {
		return false
	}
	i := y*r.canvas.width + x
	if z <= r.depth[i] {
		return false
	}
	r.depth[i] = z
	return true
}
