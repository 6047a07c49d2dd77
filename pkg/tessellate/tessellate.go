// Package tessellate walks a geometry tree and produces triangle meshes.
// One mesh is produced per surface-bearing part.
package tessellate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chazu/sfgeom/pkg/algorithm"
	"github.com/chazu/sfgeom/pkg/geom"
	"github.com/chazu/sfgeom/pkg/kernel"
	"github.com/chazu/sfgeom/pkg/kernel/sdfx"
)

// pathStack records where in the tree the walk is, so parts can be named.
type pathStack struct {
	parts []string
}

func (ps *pathStack) push(s string) { ps.parts = append(ps.parts, s) }

func (ps *pathStack) pop() {
	if len(ps.parts) > 0 {
		ps.parts = ps.parts[:len(ps.parts)-1]
	}
}

func (ps *pathStack) String() string { return strings.Join(ps.parts, "/") }

// Parts walks g and produces one flat-shaded mesh per polygon, triangle,
// surface or solid. Points and lines produce nothing. Mesh.Source holds
// the path of the part, such as "GeometryCollection/1/Solid". The
// geometry is never mutated.
func Parts(g geom.Geometry) ([]*kernel.Mesh, error) {
	if g == nil || g.IsEmpty() {
		return nil, nil
	}
	ps := &pathStack{}
	return walk(g, ps)
}

// Geometry tessellates every surface part of g into a single mesh.
func Geometry(g geom.Geometry) (*kernel.Mesh, error) {
	parts, err := Parts(g)
	if err != nil {
		return nil, err
	}
	out := &kernel.Mesh{Source: "empty"}
	if g != nil {
		out.Source = g.GeometryTypeName()
	}
	for _, p := range parts {
		out.Append(p)
	}
	return out, nil
}

// SaveSTL tessellates g and writes it as an STL file.
func SaveSTL(path string, g geom.Geometry) error {
	m, err := Geometry(g)
	if err != nil {
		return err
	}
	return sdfx.SaveSTL(path, m)
}

func walk(g geom.Geometry, ps *pathStack) ([]*kernel.Mesh, error) {
	ps.push(g.GeometryTypeName())
	defer ps.pop()

	switch x := g.(type) {
	case *geom.Point, *geom.LineString, *geom.MultiPoint, *geom.MultiLineString:
		return nil, nil
	case *geom.Polygon, *geom.Triangle, *geom.TriangulatedSurface, *geom.PolyhedralSurface, *geom.Solid:
		return handlePart(x, ps)
	case *geom.MultiPolygon, *geom.MultiSolid, *geom.GeometryCollection:
		return handleCollection(x, ps)
	default:
		return nil, fmt.Errorf("tessellate: unknown geometry kind %s", g.GeometryTypeName())
	}
}

// handlePart triangulates one surface-bearing geometry.
func handlePart(g geom.Geometry, ps *pathStack) ([]*kernel.Mesh, error) {
	if g.IsEmpty() {
		return nil, nil
	}
	tin, err := algorithm.Triangulate(g)
	if err != nil {
		return nil, fmt.Errorf("tessellate: %s: %w", ps, err)
	}
	m := &kernel.Mesh{Source: ps.String()}
	for _, t := range tin.Triangles() {
		v := t.Vertices()
		a, b, c := v[0].XYZ(), v[1].XYZ(), v[2].XYZ()
		m.AddTriangle(a, b, c, sdfx.Normal(a, b, c))
	}
	return []*kernel.Mesh{m}, nil
}

// handleCollection recurses into members, naming them by index.
func handleCollection(g geom.Geometry, ps *pathStack) ([]*kernel.Mesh, error) {
	var meshes []*kernel.Mesh
	for i := 0; i < g.NumGeometries(); i++ {
		ps.push(strconv.Itoa(i))
		collected, err := walk(g.GeometryN(i), ps)
		ps.pop()
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, collected...)
	}
	return meshes, nil
}
