package algorithm

import (
	"github.com/chazu/sfgeom/pkg/geom"
	"github.com/chazu/sfgeom/pkg/kernel"
)

// Exact kernel shorthands. Every topological decision in this package is
// taken with these unless a function says otherwise.
type (
	exact = kernel.Exact
	pt2   = kernel.Point2[kernel.Exact]
	pt3   = kernel.Point3[kernel.Exact]
	seg2  = kernel.Segment2[kernel.Exact]
	seg3  = kernel.Segment3[kernel.Exact]
	tri2  = kernel.Triangle2[kernel.Exact]
	tri3  = kernel.Triangle3[kernel.Exact]
)

// isEmpty reports whether g has no non-empty leaf. A collection holding
// only empty members is empty here even though it has members.
func isEmpty(g geom.Geometry) bool {
	if g == nil {
		return true
	}
	empty := true
	geom.Walk(g, func(x geom.Geometry) bool {
		if !x.GeometryType().IsCollection() && !x.IsEmpty() {
			empty = false
			return false
		}
		return true
	})
	return empty
}

func emptyResult() geom.Geometry { return geom.NewGeometryCollection() }

func key2(p pt2) string { return p.X.String() + " " + p.Y.String() }

func key3(p pt3) string { return p.X.String() + " " + p.Y.String() + " " + p.Z.String() }

// chain2 returns the points of l on the XY plane without consecutive
// duplicates.
func chain2(l *geom.LineString) []pt2 {
	out := make([]pt2, 0, l.NumPoints())
	for _, c := range l.Coordinates() {
		p := geom.ToPoint2[exact](c)
		if len(out) > 0 && out[len(out)-1].Equal(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func chain3(l *geom.LineString) []pt3 {
	out := make([]pt3, 0, l.NumPoints())
	for _, c := range l.Coordinates() {
		p := geom.ToPoint3[exact](c)
		if len(out) > 0 && out[len(out)-1].Equal(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ring2 is chain2 without the closing point.
func ring2(l *geom.LineString) []pt2 {
	r := chain2(l)
	if len(r) > 1 && r[0].Equal(r[len(r)-1]) {
		r = r[:len(r)-1]
	}
	return r
}

func ring3(l *geom.LineString) []pt3 {
	r := chain3(l)
	if len(r) > 1 && r[0].Equal(r[len(r)-1]) {
		r = r[:len(r)-1]
	}
	return r
}

// closedLineString2 builds a closed ring from an open point loop.
func closedLineString2(r []pt2) *geom.LineString {
	l := geom.NewLineString()
	for _, p := range r {
		l.AddPoint(geom.FromPoint2(p))
	}
	if len(r) > 0 {
		l.AddPoint(geom.FromPoint2(r[0]))
	}
	return l
}

func closedLineString3(r []pt3) *geom.LineString {
	l := geom.NewLineString()
	for _, p := range r {
		l.AddPoint(geom.FromPoint3(p))
	}
	if len(r) > 0 {
		l.AddPoint(geom.FromPoint3(r[0]))
	}
	return l
}

func lineString2(c []pt2) *geom.LineString {
	l := geom.NewLineString()
	for _, p := range c {
		l.AddPoint(geom.FromPoint2(p))
	}
	return l
}

func lineString3(c []pt3) *geom.LineString {
	l := geom.NewLineString()
	for _, p := range c {
		l.AddPoint(geom.FromPoint3(p))
	}
	return l
}

func hasSolid(g geom.Geometry) bool {
	found := false
	geom.Walk(g, func(x geom.Geometry) bool {
		if x.GeometryType() == geom.TypeSolid || x.GeometryType() == geom.TypeMultiSolid {
			found = true
			return false
		}
		return true
	})
	return found
}

// boxesOverlap2 reports whether the closed bounding boxes of two point
// lists share a point.
func boxesOverlap2(a, b []pt2) bool {
	alo, ahi := bounds2(a)
	blo, bhi := bounds2(b)
	return alo.X.Cmp(bhi.X) <= 0 && blo.X.Cmp(ahi.X) <= 0 &&
		alo.Y.Cmp(bhi.Y) <= 0 && blo.Y.Cmp(ahi.Y) <= 0
}

func bounds2(pts []pt2) (lo, hi pt2) {
	lo, hi = pts[0], pts[0]
	for _, p := range pts[1:] {
		lo.X, lo.Y = kernel.Min(lo.X, p.X), kernel.Min(lo.Y, p.Y)
		hi.X, hi.Y = kernel.Max(hi.X, p.X), kernel.Max(hi.Y, p.Y)
	}
	return lo, hi
}

func boxesOverlap3(a, b []pt3) bool {
	alo, ahi := bounds3(a)
	blo, bhi := bounds3(b)
	for i := 0; i < 3; i++ {
		if alo.Coord(i).Cmp(bhi.Coord(i)) > 0 || blo.Coord(i).Cmp(ahi.Coord(i)) > 0 {
			return false
		}
	}
	return true
}

func bounds3(pts []pt3) (lo, hi pt3) {
	lo, hi = pts[0], pts[0]
	for _, p := range pts[1:] {
		lo = pt3{X: kernel.Min(lo.X, p.X), Y: kernel.Min(lo.Y, p.Y), Z: kernel.Min(lo.Z, p.Z)}
		hi = pt3{X: kernel.Max(hi.X, p.X), Y: kernel.Max(hi.Y, p.Y), Z: kernel.Max(hi.Z, p.Z)}
	}
	return lo, hi
}
