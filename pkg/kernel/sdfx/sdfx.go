// Package sdfx bridges kernel meshes and the github.com/deadsy/sdfx CAD
// library: face normals, STL output, envelope boxes and marching-cubes
// rendering of signed distance fields.
package sdfx

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/sfgeom/pkg/geom"
	"github.com/chazu/sfgeom/pkg/kernel"
)

// DefaultMeshCells controls marching cubes resolution along the longest
// axis.
const DefaultMeshCells = 200

// ErrEmptyEnvelope indicates an envelope without coordinates.
var ErrEmptyEnvelope = errors.New("sdfx: empty envelope")

func vec(p [3]float64) v3.Vec { return v3.Vec{X: p[0], Y: p[1], Z: p[2]} }

// Normal returns the unit normal of the triangle a, b, c following the
// right-hand rule. Degenerate triangles yield a NaN or zero vector.
func Normal(a, b, c [3]float64) [3]float64 {
	t := sdf.Triangle3{vec(a), vec(b), vec(c)}
	n := t.Normal()
	return [3]float64{n.X, n.Y, n.Z}
}

// Triangles converts a mesh into sdfx triangles.
func Triangles(m *kernel.Mesh) []*sdf.Triangle3 {
	out := make([]*sdf.Triangle3, 0, m.TriangleCount())
	for i := 0; i < m.TriangleCount(); i++ {
		t := m.Triangle(i)
		out = append(out, &sdf.Triangle3{vec(t[0]), vec(t[1]), vec(t[2])})
	}
	return out
}

// FromTriangles builds a flat-shaded mesh from sdfx triangles.
func FromTriangles(tris []*sdf.Triangle3) *kernel.Mesh {
	m := &kernel.Mesh{
		Vertices: make([]float32, 0, len(tris)*9),
		Normals:  make([]float32, 0, len(tris)*9),
		Indices:  make([]uint32, 0, len(tris)*3),
	}
	for _, tri := range tris {
		n := tri.Normal()
		m.AddTriangle(
			[3]float64{tri[0].X, tri[0].Y, tri[0].Z},
			[3]float64{tri[1].X, tri[1].Y, tri[1].Z},
			[3]float64{tri[2].X, tri[2].Y, tri[2].Z},
			[3]float64{n.X, n.Y, n.Z},
		)
	}
	return m
}

// SaveSTL writes the mesh as a binary STL file.
func SaveSTL(path string, m *kernel.Mesh) error {
	if m == nil || m.IsEmpty() {
		return fmt.Errorf("sdfx: refusing to write an empty mesh to %s", path)
	}
	if err := render.SaveSTL(path, Triangles(m)); err != nil {
		return fmt.Errorf("sdfx: writing %s: %w", path, err)
	}
	return nil
}

// Box3 converts an envelope into an sdfx bounding box. 2D envelopes get
// a zero Z extent.
func Box3(e geom.Envelope) (sdf.Box3, error) {
	if e.IsEmpty() {
		return sdf.Box3{}, ErrEmptyEnvelope
	}
	b := sdf.Box3{
		Min: v3.Vec{X: e.XMin(), Y: e.YMin()},
		Max: v3.Vec{X: e.XMax(), Y: e.YMax()},
	}
	if e.Is3D() {
		b.Min.Z, b.Max.Z = e.ZMin(), e.ZMax()
	}
	return b, nil
}

// EnvelopeSolid returns the envelope as an sdfx box solid. The envelope
// must have a positive extent on every axis.
func EnvelopeSolid(e geom.Envelope) (sdf.SDF3, error) {
	b, err := Box3(e)
	if err != nil {
		return nil, err
	}
	s, err := sdf.Box3D(b.Size(), 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: envelope box: %w", err)
	}
	return sdf.Transform3D(s, sdf.Translate3d(b.Center())), nil
}

// Render converts a signed distance field to a triangle mesh using
// marching cubes with the given number of cells along the longest axis.
func Render(s sdf.SDF3, cells int) *kernel.Mesh {
	if cells <= 0 {
		cells = DefaultMeshCells
	}
	m := FromTriangles(render.ToTriangles(s, render.NewMarchingCubesUniform(cells)))
	m.Source = "sdf"
	return m
}
