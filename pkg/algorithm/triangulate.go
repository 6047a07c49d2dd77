package algorithm

import (
	"fmt"

	"github.com/chazu/sfgeom/pkg/geom"
	"github.com/chazu/sfgeom/pkg/kernel"
	"go.uber.org/zap"
)

// TriangulatePolygon splits a planar polygon, holes included, into
// triangles with a constrained Delaunay triangulation computed on the
// plane of the polygon. The triangles keep the input coordinates and
// follow the orientation of the exterior ring.
func TriangulatePolygon(p *geom.Polygon) (*geom.TriangulatedSurface, error) {
	if p.IsEmpty() {
		return geom.NewTriangulatedSurface(), nil
	}
	axis := 2
	if p.Is3D() {
		n := newell(ring3(p.ExteriorRing()))
		if n.IsZero() {
			return nil, fmt.Errorf("TriangulatePolygon: exterior ring has no normal: %w", ErrDegenerate)
		}
		axis = kernel.DominantAxis(n)
	}
	return triangulateProjected(p, axis)
}

// Triangulate2D triangulates the projection of p on the XY plane.
func Triangulate2D(p *geom.Polygon) (*geom.TriangulatedSurface, error) {
	if p.IsEmpty() {
		return geom.NewTriangulatedSurface(), nil
	}
	return triangulateProjected(p, 2)
}

func triangulateProjected(p *geom.Polygon, axis int) (*geom.TriangulatedSurface, error) {
	source := map[string]geom.Coordinate{}
	var rings [][]pt2
	for _, l := range p.Rings() {
		var r []pt2
		for _, c := range l.Coordinates() {
			q := kernel.Project(geom.ToPoint3[exact](c), axis)
			k := key2(q)
			if _, ok := source[k]; !ok {
				source[k] = c
			}
			if len(r) > 0 && r[len(r)-1].Equal(q) {
				continue
			}
			r = append(r, q)
		}
		if len(r) > 1 && r[0].Equal(r[len(r)-1]) {
			r = r[:len(r)-1]
		}
		rings = append(rings, r)
	}
	if len(rings[0]) < 3 || signedArea2(rings[0]).Sign() == 0 {
		return nil, fmt.Errorf("triangulate %s: %w", p.GeometryTypeName(), ErrDegenerate)
	}
	t, faces, err := triangulateRings(rings)
	if err != nil {
		return nil, err
	}
	if len(faces) == 0 {
		return nil, fmt.Errorf("triangulate %s: no interior triangles: %w", p.GeometryTypeName(), ErrDegenerate)
	}
	reverse := signedArea2(rings[0]).Sign() < 0
	out := geom.NewTriangulatedSurface()
	for _, f := range faces {
		a, b, c := source[key2(t.pts[f[0]])], source[key2(t.pts[f[1]])], source[key2(t.pts[f[2]])]
		if reverse {
			b, c = c, b
		}
		out.AddTriangle(geom.NewTriangle(a, b, c))
	}
	log().Debug("triangulated polygon", zap.Int("rings", len(rings)), zap.Int("triangles", len(faces)))
	return out, nil
}

// Triangulate returns the triangles of every areal part of g. Polygons
// are triangulated; triangles and TIN facets are copied. Points and lines
// are ignored.
func Triangulate(g geom.Geometry) (*geom.TriangulatedSurface, error) {
	out := geom.NewTriangulatedSurface()
	var err error
	geom.Walk(g, func(x geom.Geometry) bool {
		switch v := x.(type) {
		case *geom.Triangle:
			if !v.IsEmpty() {
				out.AddTriangle(v.Clone().(*geom.Triangle))
			}
		case *geom.TriangulatedSurface:
			out.AddTriangles(v.Clone().(*geom.TriangulatedSurface))
			return false
		case *geom.Polygon:
			var tin *geom.TriangulatedSurface
			if tin, err = TriangulatePolygon(v); err != nil {
				return false
			}
			out.AddTriangles(tin)
		case *geom.PolyhedralSurface:
			for _, p := range v.Polygons() {
				var tin *geom.TriangulatedSurface
				if tin, err = TriangulatePolygon(p); err != nil {
					return false
				}
				out.AddTriangles(tin)
			}
			return false
		case *geom.Solid:
			for i := 0; i < v.NumShells(); i++ {
				for _, p := range v.ShellN(i).Polygons() {
					var tin *geom.TriangulatedSurface
					if tin, err = TriangulatePolygon(p); err != nil {
						return false
					}
					out.AddTriangles(tin)
				}
			}
			return false
		}
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Triangulate2DZ computes the constrained Delaunay triangulation of every
// vertex of g on the XY plane, using line and ring edges as constraints.
// Vertices keep their Z; when several share an XY position the first one
// wins.
func Triangulate2DZ(g geom.Geometry) (*geom.TriangulatedSurface, error) {
	source := map[string]geom.Coordinate{}
	var pts []pt2
	var chains [][]pt2
	add := func(c geom.Coordinate) pt2 {
		q := geom.ToPoint2[exact](c)
		if _, ok := source[key2(q)]; !ok {
			source[key2(q)] = c
			pts = append(pts, q)
		}
		return q
	}
	geom.Walk(g, func(x geom.Geometry) bool {
		switch v := x.(type) {
		case *geom.Point:
			if !v.IsEmpty() {
				add(v.Coordinate())
			}
		case *geom.LineString:
			var ch []pt2
			for _, c := range v.Coordinates() {
				ch = append(ch, add(c))
			}
			chains = append(chains, ch)
		case *geom.Polygon:
			for _, r := range v.Rings() {
				var ch []pt2
				for _, c := range r.Coordinates() {
					ch = append(ch, add(c))
				}
				chains = append(chains, ch)
			}
		case *geom.Triangle:
			if v.IsEmpty() {
				break
			}
			var ch []pt2
			for _, c := range v.ExteriorRing().Coordinates() {
				ch = append(ch, add(c))
			}
			chains = append(chains, ch)
		}
		return true
	})
	if len(pts) < 3 {
		return nil, fmt.Errorf("Triangulate2DZ: fewer than three distinct points: %w", ErrDegenerate)
	}
	lo, hi := bounds2(pts)
	t := newCDT(lo, hi)
	for _, p := range pts {
		if _, err := t.insert(p); err != nil {
			return nil, err
		}
	}
	for _, ch := range chains {
		for i := 0; i+1 < len(ch); i++ {
			if err := t.insertConstraint(t.index[key2(ch[i])], t.index[key2(ch[i+1])]); err != nil {
				return nil, err
			}
		}
	}
	t.restoreDelaunay()
	faces := t.triangles()
	if len(faces) == 0 {
		return nil, fmt.Errorf("Triangulate2DZ: points are collinear: %w", ErrDegenerate)
	}
	out := geom.NewTriangulatedSurface()
	for _, f := range faces {
		out.AddTriangle(geom.NewTriangle(
			source[key2(t.pts[f[0]])], source[key2(t.pts[f[1]])], source[key2(t.pts[f[2]])]))
	}
	return out, nil
}
