package algorithm

import (
	"strings"

	"github.com/samber/lo"

	"github.com/chazu/sfgeom/pkg/geom"
	"github.com/chazu/sfgeom/pkg/kernel"
)

// parts2 is a planar geometry split by dimension.
type parts2 struct {
	points []pt2
	lines  [][]pt2
	areas  []polygon2
}

func (p parts2) isEmpty() bool {
	return len(p.points) == 0 && len(p.lines) == 0 && len(p.areas) == 0
}

// decompose2 flattens g into planar parts. ok is false when g holds a
// volume.
func decompose2(g geom.Geometry) (p parts2, ok bool) {
	addPolygon := func(q *geom.Polygon) {
		if pp := toPolygon2(q); len(pp.rings) > 0 && len(pp.rings[0]) >= 3 {
			p.areas = append(p.areas, pp)
		}
	}
	for _, leaf := range geom.Leaves(g) {
		if leaf.IsEmpty() {
			continue
		}
		switch x := leaf.(type) {
		case *geom.Point:
			p.points = append(p.points, geom.ToPoint2[exact](x.Coordinate()))
		case *geom.LineString:
			switch c := chain2(x); len(c) {
			case 1:
				p.points = append(p.points, c[0])
			default:
				p.lines = append(p.lines, c)
			}
		case *geom.Polygon:
			addPolygon(x)
		case *geom.Triangle:
			addPolygon(x.ToPolygon())
		case *geom.TriangulatedSurface:
			for _, t := range x.Triangles() {
				addPolygon(t.ToPolygon())
			}
		case *geom.PolyhedralSurface:
			for _, q := range x.Polygons() {
				addPolygon(q)
			}
		case *geom.Solid:
			return parts2{}, false
		}
	}
	return p, true
}

// ringChains returns the closed rings of areas as polylines.
func ringChains(areas []polygon2) [][]pt2 {
	var out [][]pt2
	for _, a := range areas {
		for _, r := range a.rings {
			out = append(out, append(append([]pt2(nil), r...), r[0]))
		}
	}
	return out
}

// Intersection computes the point set shared by a and b on the XY plane.
func Intersection(a, b geom.Geometry) (geom.Geometry, error) {
	return boolean2(a, b, opIntersection)
}

// Union computes the point set covered by a or b on the XY plane.
func Union(a, b geom.Geometry) (geom.Geometry, error) {
	return boolean2(a, b, opUnion)
}

// Difference computes the points of a not in b on the XY plane. Parts of
// a of lower dimension than b's overlapping parts are kept whole when
// they only cross b.
func Difference(a, b geom.Geometry) (geom.Geometry, error) {
	return boolean2(a, b, opDifference)
}

func boolean2(a, b geom.Geometry, op overlayOp) (geom.Geometry, error) {
	ea, eb := isEmpty(a), isEmpty(b)
	switch {
	case ea && eb, ea && op != opUnion, eb && op == opIntersection:
		return emptyResult(), nil
	case ea:
		return b.Clone(), nil
	case eb:
		return a.Clone(), nil
	}
	pa, oka := decompose2(a)
	pb, okb := decompose2(b)
	if !oka || !okb {
		return nil, unsupportedBoolean(a, b)
	}
	switch op {
	case opIntersection:
		if coversParts2(pa, pb) {
			return b.Clone(), nil
		}
		if coversParts2(pb, pa) {
			return a.Clone(), nil
		}
	case opUnion:
		if coversParts2(pa, pb) {
			return a.Clone(), nil
		}
		if coversParts2(pb, pa) {
			return b.Clone(), nil
		}
	case opDifference:
		if coversParts2(pb, pa) {
			return emptyResult(), nil
		}
	}
	if op != opUnion {
		hit, err := Intersects(a, b)
		if err != nil {
			return nil, err
		}
		if !hit {
			if op == opDifference {
				return a.Clone(), nil
			}
			return emptyResult(), nil
		}
	}
	var out parts2
	switch op {
	case opIntersection:
		out = intersectParts2(pa, pb)
	case opUnion:
		out = unionParts2(pa, pb)
	default:
		out = differenceParts2(pa, pb)
	}
	return recompose2(out), nil
}

func intersectParts2(a, b parts2) parts2 {
	var out parts2
	out.points = append(out.points, lo.Filter(a.points, func(p pt2, _ int) bool { return coveredBy2(p, b) })...)
	out.points = append(out.points, lo.Filter(b.points, func(p pt2, _ int) bool { return coveredBy2(p, a) })...)

	pts, segs := intersectLines(a.lines, b.lines)
	out.points = append(out.points, pts...)
	out.lines = append(out.lines, segs...)

	inOrOn := func(s kernel.Side) bool { return s != kernel.OnUnboundedSide }
	out.lines = append(out.lines, clipLines(a.lines, b.areas, inOrOn)...)
	out.lines = append(out.lines, clipLines(b.lines, a.areas, inOrOn)...)
	pts, _ = intersectLines(a.lines, ringChains(b.areas))
	out.points = append(out.points, pts...)
	pts, _ = intersectLines(b.lines, ringChains(a.areas))
	out.points = append(out.points, pts...)

	// Areas touching along their boundaries meet in points and segments.
	pts, segs = intersectLines(ringChains(a.areas), ringChains(b.areas))
	out.points = append(out.points, pts...)
	out.lines = append(out.lines, segs...)
	out.areas = overlay(a.areas, b.areas, opIntersection)
	return out
}

func unionParts2(a, b parts2) parts2 {
	return parts2{
		points: append(append([]pt2(nil), a.points...), b.points...),
		lines:  append(append([][]pt2(nil), a.lines...), subtractLines(b.lines, a.lines)...),
		areas:  overlay(a.areas, b.areas, opUnion),
	}
}

func differenceParts2(a, b parts2) parts2 {
	outside := func(s kernel.Side) bool { return s == kernel.OnUnboundedSide }
	return parts2{
		points: lo.Filter(a.points, func(p pt2, _ int) bool { return !coveredBy2(p, b) }),
		lines:  clipLines(subtractLines(a.lines, b.lines), b.areas, outside),
		areas:  overlay(a.areas, b.areas, opDifference),
	}
}

func chainKey(c []pt2) string {
	ks := lo.Map(c, func(p pt2, _ int) string { return key2(p) })
	return strings.Join(ks, ",")
}

// recompose2 builds the result geometry: lines inside areas and points on
// lines or areas are dropped, duplicates are removed, then a single part
// is returned alone, a homogeneous result as its Multi* and anything else
// as a collection ordered points, lines, polygons.
func recompose2(p parts2) geom.Geometry {
	outside := func(s kernel.Side) bool { return s == kernel.OnUnboundedSide }
	lines := lo.UniqBy(clipLines(p.lines, p.areas, outside), chainKey)
	segs := allSegments(lines)
	points := lo.UniqBy(p.points, key2)
	points = lo.Filter(points, func(q pt2, _ int) bool {
		for _, s := range segs {
			if kernel.PointOnSegment2(q, s) {
				return false
			}
		}
		return locateRegion2(q, p.areas) == kernel.OnUnboundedSide
	})

	var gs []geom.Geometry
	for _, q := range points {
		gs = append(gs, geom.NewPoint(geom.FromPoint2(q)))
	}
	for _, c := range lines {
		gs = append(gs, lineString2(c))
	}
	for _, a := range p.areas {
		gs = append(gs, a.toGeom())
	}
	switch {
	case len(gs) == 0:
		return emptyResult()
	case len(gs) == 1:
		return gs[0]
	case len(lines) == 0 && len(p.areas) == 0:
		return geom.NewMultiPoint(lo.Map(gs, func(g geom.Geometry, _ int) *geom.Point { return g.(*geom.Point) })...)
	case len(points) == 0 && len(p.areas) == 0:
		return geom.NewMultiLineString(lo.Map(gs, func(g geom.Geometry, _ int) *geom.LineString { return g.(*geom.LineString) })...)
	case len(points) == 0 && len(lines) == 0:
		return geom.NewMultiPolygon(lo.Map(gs, func(g geom.Geometry, _ int) *geom.Polygon { return g.(*geom.Polygon) })...)
	}
	return geom.NewGeometryCollection(gs...)
}
