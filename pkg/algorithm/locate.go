package algorithm

import (
	"math"
	"math/big"

	"github.com/chazu/sfgeom/pkg/geom"
	"github.com/chazu/sfgeom/pkg/kernel"
	"github.com/chazu/sfgeom/pkg/primitive"
)

// ----------------------------------------------------------------------------
// Planar regions
// ----------------------------------------------------------------------------

// polygon2 is a polygon on the plane as open rings; ring 0 is the exterior.
type polygon2 struct {
	rings [][]pt2
}

func toPolygon2(p *geom.Polygon) polygon2 {
	out := polygon2{}
	if p.IsEmpty() {
		return out
	}
	for _, l := range p.Rings() {
		out.rings = append(out.rings, ring2(l))
	}
	return out
}

func toPolygons2(ps []*geom.Polygon) []polygon2 {
	out := make([]polygon2, 0, len(ps))
	for _, p := range ps {
		if pp := toPolygon2(p); len(pp.rings) > 0 && len(pp.rings[0]) >= 3 {
			out = append(out, pp)
		}
	}
	return out
}

func (p polygon2) toGeom() *geom.Polygon {
	if len(p.rings) == 0 {
		return geom.NewPolygon(nil)
	}
	poly := geom.NewPolygon(closedLineString2(p.rings[0]))
	for _, r := range p.rings[1:] {
		poly.AddInteriorRing(closedLineString2(r))
	}
	return poly
}

// locateRing2 classifies p against the closed region bounded by an open
// ring, by the parity of the crossings of a ray towards +x.
func locateRing2(p pt2, ring []pt2) kernel.Side {
	inside := false
	n := len(ring)
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		if kernel.PointOnSegment2(p, seg2{A: a, B: b}) {
			return kernel.OnBoundary
		}
		if (a.Y.Cmp(p.Y) > 0) == (b.Y.Cmp(p.Y) > 0) {
			continue
		}
		o := kernel.Orient2(a, b, p)
		if (b.Y.Cmp(a.Y) > 0 && o > 0) || (b.Y.Cmp(a.Y) < 0 && o < 0) {
			inside = !inside
		}
	}
	if inside {
		return kernel.OnBoundedSide
	}
	return kernel.OnUnboundedSide
}

// locatePolygon2 classifies p against a polygon with holes. Points strictly
// inside a hole are outside.
func locatePolygon2(p pt2, poly polygon2) kernel.Side {
	if len(poly.rings) == 0 || len(poly.rings[0]) < 3 {
		return kernel.OnUnboundedSide
	}
	switch locateRing2(p, poly.rings[0]) {
	case kernel.OnUnboundedSide:
		return kernel.OnUnboundedSide
	case kernel.OnBoundary:
		return kernel.OnBoundary
	}
	for _, h := range poly.rings[1:] {
		switch locateRing2(p, h) {
		case kernel.OnBoundary:
			return kernel.OnBoundary
		case kernel.OnBoundedSide:
			return kernel.OnUnboundedSide
		}
	}
	return kernel.OnBoundedSide
}

// locateRegion2 classifies p against the union of polys.
func locateRegion2(p pt2, polys []polygon2) kernel.Side {
	side := kernel.OnUnboundedSide
	for _, poly := range polys {
		switch locatePolygon2(p, poly) {
		case kernel.OnBoundedSide:
			return kernel.OnBoundedSide
		case kernel.OnBoundary:
			side = kernel.OnBoundary
		}
	}
	return side
}

// ----------------------------------------------------------------------------
// Volumes
// ----------------------------------------------------------------------------

// volume indexes the triangles of a closed shell for point location.
type volume struct {
	handles []primitive.Handle
	tree    *primitive.Tree
	box     primitive.Box
}

// newVolume indexes the triangles of a shell, which may be any
// surface; polygons are triangulated.
func newVolume(shell geom.Geometry) (*volume, error) {
	s, err := primitive.Collect(shell, primitive.WithSurfaces(TriangulatePolygon))
	if err != nil {
		return nil, err
	}
	v := &volume{handles: s.Triangles, tree: primitive.NewTree(s.Triangles)}
	if b, ok := s.Bounds(); ok {
		v.box = b
	}
	return v, nil
}

func volumeOfTriangles(ts []tri3) (*volume, error) {
	tin := geom.NewTriangulatedSurface()
	for _, t := range ts {
		tin.AddTriangle(geom.NewTriangle(geom.FromPoint3(t.A), geom.FromPoint3(t.B), geom.FromPoint3(t.C)))
	}
	return newVolume(tin)
}

// solidVolume is a solid as an exterior volume and its cavities.
type solidVolume struct {
	exterior *volume
	cavities []*volume
}

func newSolidVolume(s *geom.Solid) (*solidVolume, error) {
	ext, err := newVolume(s.ExteriorShell())
	if err != nil {
		return nil, err
	}
	sv := &solidVolume{exterior: ext}
	for i := 0; i < s.NumInteriorShells(); i++ {
		c, err := newVolume(s.InteriorShellN(i))
		if err != nil {
			return nil, err
		}
		sv.cavities = append(sv.cavities, c)
	}
	return sv, nil
}

// locate classifies p against the solid: inside the exterior shell and
// not strictly inside a cavity. Nested cavities are not processed.
func locateSolid[T kernel.Number[T]](p kernel.Point3[T], s *solidVolume) kernel.Side {
	side := locateVolume(p, s.exterior)
	if side != kernel.OnBoundedSide {
		return side
	}
	for _, c := range s.cavities {
		switch locateVolume(p, c) {
		case kernel.OnBoundary:
			return kernel.OnBoundary
		case kernel.OnBoundedSide:
			return kernel.OnUnboundedSide
		}
	}
	return kernel.OnBoundedSide
}

// rayDirections are the directions tried in turn until a ray misses every
// edge and vertex of the shell.
var rayDirections = [][3][2]int64{
	{{1, 1}, {7, 31}, {3, 17}},
	{{-5, 13}, {1, 1}, {11, 29}},
	{{2, 23}, {-3, 19}, {1, 1}},
	{{-1, 1}, {-13, 37}, {5, 41}},
	{{17, 43}, {-1, 1}, {-19, 47}},
	{{-23, 53}, {29, 59}, {-1, 1}},
	{{1, 1}, {-31, 61}, {37, 67}},
}

// locateVolume classifies p against the volume enclosed by a closed
// shell by counting ray crossings. A ray grazing an edge, a vertex or a
// facet plane is discarded and another direction is tried.
func locateVolume[T kernel.Number[T]](p kernel.Point3[T], v *volume) kernel.Side {
	if len(v.handles) == 0 {
		return kernel.OnUnboundedSide
	}
	pb := pointBox(p.Float64(), p.Float64())
	if !pb.Overlaps(v.box, 3) {
		return kernel.OnUnboundedSide
	}
	for _, h := range v.tree.Search(pb) {
		if kernel.TriangleSide3(p, primitive.Triangle3[T](h)) != kernel.OnUnboundedSide {
			return kernel.OnBoundary
		}
	}
	reach := farReach(p.Float64(), v.box)
	inside := false
	for _, dir := range rayDirections {
		q := p.Add(direction[T](dir).Scale(kernel.FromFloat[T](reach)))
		hits, ok := countCrossings(p, q, v)
		inside = hits%2 == 1
		if ok {
			return sideOf(inside)
		}
	}
	log().Warn("point location: every ray grazed the shell, using the last count")
	return sideOf(inside)
}

func sideOf(inside bool) kernel.Side {
	if inside {
		return kernel.OnBoundedSide
	}
	return kernel.OnUnboundedSide
}

func direction[T kernel.Number[T]](d [3][2]int64) kernel.Point3[T] {
	var z T
	c := func(i int) T { return z.FromRat(big.NewRat(d[i][0], d[i][1])) }
	return kernel.Point3[T]{X: c(0), Y: c(1), Z: c(2)}
}

// farReach is a ray length that leaves the box from any point of it.
func farReach(p [3]float64, b primitive.Box) float64 {
	m := 1.0
	for i := 0; i < 3; i++ {
		m = math.Max(m, math.Abs(b.Min[i]-p[i]))
		m = math.Max(m, math.Abs(b.Max[i]-p[i]))
	}
	return math.Ceil(4 * m)
}

func pointBox(a, b [3]float64) primitive.Box {
	var out primitive.Box
	for i := 0; i < 3; i++ {
		out.Min[i] = math.Nextafter(math.Min(a[i], b[i]), math.Inf(-1))
		out.Max[i] = math.Nextafter(math.Max(a[i], b[i]), math.Inf(1))
	}
	return out
}

// countCrossings counts the facets the segment p-q crosses; ok is false
// when the segment touches an edge, a vertex or lies in a facet plane.
func countCrossings[T kernel.Number[T]](p, q kernel.Point3[T], v *volume) (hits int, ok bool) {
	for _, h := range v.tree.Search(pointBox(p.Float64(), q.Float64())) {
		t := primitive.Triangle3[T](h)
		if t.IsDegenerate() {
			continue
		}
		o1 := kernel.Orient3(t.A, t.B, t.C, p)
		o2 := kernel.Orient3(t.A, t.B, t.C, q)
		switch {
		case o1 == 0 && o2 == 0:
			if kernel.SegmentTriangleIntersect3(kernel.Segment3[T]{A: p, B: q}, t) {
				return 0, false
			}
			continue
		case o1 == 0 || o1 == o2:
			continue
		case o2 == 0:
			return 0, false
		}
		e1 := kernel.Orient3(p, q, t.A, t.B)
		e2 := kernel.Orient3(p, q, t.B, t.C)
		e3 := kernel.Orient3(p, q, t.C, t.A)
		switch {
		case (e1 > 0 && e2 > 0 && e3 > 0) || (e1 < 0 && e2 < 0 && e3 < 0):
			hits++
		case (e1 >= 0 && e2 >= 0 && e3 >= 0) || (e1 <= 0 && e2 <= 0 && e3 <= 0):
			return 0, false
		}
	}
	return hits, true
}
