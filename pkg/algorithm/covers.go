package algorithm

import (
	"github.com/chazu/sfgeom/pkg/geom"
	"github.com/chazu/sfgeom/pkg/kernel"
	"github.com/chazu/sfgeom/pkg/primitive"
)

// coveredBy2 reports whether p lies on some part of x.
func coveredBy2(p pt2, x parts2) bool {
	for _, q := range x.points {
		if q.Equal(p) {
			return true
		}
	}
	for _, s := range allSegments(x.lines) {
		if kernel.PointOnSegment2(p, s) {
			return true
		}
	}
	return locateRegion2(p, x.areas) != kernel.OnUnboundedSide
}

// coversParts2 reports whether every point of b lies in a.
func coversParts2(a, b parts2) bool {
	if b.isEmpty() || a.isEmpty() {
		return false
	}
	for _, p := range b.points {
		if !coveredBy2(p, a) {
			return false
		}
	}
	cuts := crossingCuts(append(allSegments(a.lines), ringEdges(a.areas)...))
	for _, s := range allSegments(b.lines) {
		for _, piece := range kernel.SplitSegment2(s, cuts(s)) {
			if !coveredBy2(piece.A, a) || !coveredBy2(piece.B, a) || !coveredBy2(piece.Midpoint(), a) {
				return false
			}
		}
	}
	if len(b.areas) > 0 {
		if len(a.areas) == 0 {
			return false
		}
		if len(overlay(b.areas, a.areas, opDifference)) > 0 {
			return false
		}
	}
	return true
}

// Covers reports whether every point of b lies in the closed point set of
// a on the XY plane. Empty operands cover nothing and are never covered.
func Covers(a, b geom.Geometry) (bool, error) {
	if isEmpty(a) || isEmpty(b) {
		return false, nil
	}
	pa, oka := decompose2(a)
	pb, okb := decompose2(b)
	if !oka || !okb {
		return false, unsupportedPair("Covers", a, b)
	}
	return coversParts2(pa, pb), nil
}

// CoversPoints reports whether every vertex of b lies in a on the XY
// plane. It says nothing about the edges of b.
func CoversPoints(a, b geom.Geometry) (bool, error) {
	if isEmpty(a) || isEmpty(b) {
		return false, nil
	}
	pa, ok := decompose2(a)
	if !ok {
		return false, unsupportedPair("CoversPoints", a, b)
	}
	for _, c := range geom.Coordinates(b) {
		if !coveredBy2(geom.ToPoint2[exact](c), pa) {
			return false, nil
		}
	}
	return true, nil
}

// CoversPoints3D reports whether every vertex of b lies in a in space.
func CoversPoints3D(a, b geom.Geometry) (bool, error) {
	if isEmpty(a) || isEmpty(b) {
		return false, nil
	}
	sa, err := collect3(a)
	if err != nil {
		return false, err
	}
	cov, err := newCover3(sa)
	if err != nil {
		return false, err
	}
	for _, c := range geom.Coordinates(b) {
		if !cov.covers(geom.ToPoint3[exact](c)) {
			return false, nil
		}
	}
	return true, nil
}

// cover3 answers point containment against a primitive set in space.
type cover3 struct {
	set    *primitive.Set
	tree   *primitive.Tree
	solids []*solidVolume
}

func newCover3(s *primitive.Set) (*cover3, error) {
	c := &cover3{set: s, tree: primitive.NewTree(s.All())}
	for _, sol := range s.Solids {
		sv, err := newSolidVolume(sol)
		if err != nil {
			return nil, err
		}
		c.solids = append(c.solids, sv)
	}
	return c, nil
}

// onPrimitive reports whether p lies on a point, segment or triangle.
func (c *cover3) onPrimitive(p pt3) bool {
	for _, h := range c.tree.Search(pointBox(p.Float64(), p.Float64())) {
		switch h.Kind {
		case primitive.KindPoint:
			if primitive.Point3[exact](h).Equal(p) {
				return true
			}
		case primitive.KindSegment:
			if kernel.PointOnSegment3(p, primitive.Segment3[exact](h)) {
				return true
			}
		default:
			if kernel.TriangleSide3(p, primitive.Triangle3[exact](h)) != kernel.OnUnboundedSide {
				return true
			}
		}
	}
	return false
}

func (c *cover3) inSolid(p pt3) bool {
	for _, s := range c.solids {
		if locateSolid(p, s) != kernel.OnUnboundedSide {
			return true
		}
	}
	return false
}

func (c *cover3) covers(p pt3) bool {
	return c.onPrimitive(p) || c.inSolid(p)
}

// cuts returns the points where s meets a segment or triangle of the set.
func (c *cover3) cuts(s seg3) []pt3 {
	var out []pt3
	for _, h := range c.tree.Search(pointBox(s.A.Float64(), s.B.Float64())) {
		switch h.Kind {
		case primitive.KindSegment:
			out = append(out, kernel.SegmentSegmentIntersection3(s, primitive.Segment3[exact](h)).Points...)
		case primitive.KindTriangle:
			out = append(out, kernel.SegmentTriangleIntersection3(s, primitive.Triangle3[exact](h)).Points...)
		}
	}
	return out
}

func (c *cover3) coversSegment(s seg3) bool {
	for _, piece := range kernel.SplitSegment3(s, c.cuts(s)) {
		if !c.covers(piece.A) || !c.covers(piece.B) || !c.covers(piece.Midpoint()) {
			return false
		}
	}
	return true
}

// coversTriangle checks a triangle of b. Against volumes the boundary is
// tested and no edge of a may pierce the triangle; against surfaces the
// triangle must be covered by coplanar triangles of a.
func (c *cover3) coversTriangle(t tri3) bool {
	for _, e := range t.Edges() {
		if !c.coversSegment(e) {
			return false
		}
	}
	if t.IsDegenerate() {
		return true
	}
	if len(c.solids) > 0 && c.inSolid(kernel.Centroid3(t.A, t.B, t.C)) {
		for _, h := range c.set.Triangles {
			for _, e := range primitive.Triangle3[exact](h).Edges() {
				if kernel.SegmentCrossesTriangle3(e, t) {
					return false
				}
			}
		}
		return true
	}
	return c.coveredByCoplanar(t)
}

// coveredByCoplanar projects t and the coplanar triangles of the set onto
// the dominant plane of t and checks that nothing of t is left over.
func (c *cover3) coveredByCoplanar(t tri3) bool {
	pl := t.Plane()
	axis := kernel.DominantAxis(pl.Normal())
	var cover []polygon2
	box := pointBox(bounds3Float(t.A, t.B, t.C))
	for _, h := range c.tree.Search(box) {
		if h.Kind != primitive.KindTriangle {
			continue
		}
		u := primitive.Triangle3[exact](h)
		if u.IsDegenerate() || pl.Side(u.A) != 0 || pl.Side(u.B) != 0 || pl.Side(u.C) != 0 {
			continue
		}
		cover = append(cover, polygon2{rings: [][]pt2{projectTriangle(u, axis)}})
	}
	if len(cover) == 0 {
		return false
	}
	// Triangles of a surface do not overlap; union them first so shared
	// edges do not leave slivers.
	cover = overlay(cover, nil, opUnion)
	self := []polygon2{{rings: [][]pt2{projectTriangle(t, axis)}}}
	return len(overlay(self, cover, opDifference)) == 0
}

func projectTriangle(t tri3, axis int) []pt2 {
	return []pt2{kernel.Project(t.A, axis), kernel.Project(t.B, axis), kernel.Project(t.C, axis)}
}

func bounds3Float(pts ...pt3) ([3]float64, [3]float64) {
	lo, hi := bounds3(pts)
	return lo.Float64(), hi.Float64()
}

// Covers3D reports whether every point of b lies in the closed point set
// of a in space. Cavities nested inside cavities are not processed.
func Covers3D(a, b geom.Geometry) (bool, error) {
	if isEmpty(a) || isEmpty(b) {
		return false, nil
	}
	sa, err := collect3(a)
	if err != nil {
		return false, err
	}
	sb, err := collect3(b)
	if err != nil {
		return false, err
	}
	if len(sb.Solids) > 0 && len(sa.Solids) == 0 {
		return false, nil
	}
	cov, err := newCover3(sa)
	if err != nil {
		return false, err
	}
	for _, h := range sb.Points {
		if !cov.covers(primitive.Point3[exact](h)) {
			return false, nil
		}
	}
	for _, h := range sb.Segments {
		if !cov.coversSegment(primitive.Segment3[exact](h)) {
			return false, nil
		}
	}
	for _, h := range sb.Triangles {
		if !cov.coversTriangle(primitive.Triangle3[exact](h)) {
			return false, nil
		}
	}
	// A cavity of a enclosed by a solid of b leaves part of b uncovered.
	for _, s := range sa.Solids {
		for i := 0; i < s.NumInteriorShells(); i++ {
			cs, err := collect3(s.InteriorShellN(i))
			if err != nil {
				return false, err
			}
			inner, err := newCover3(sb)
			if err != nil {
				return false, err
			}
			for _, h := range representatives(cs) {
				if inner.inSolid(primitive.Point3[exact](h)) && !inner.onPrimitive(primitive.Point3[exact](h)) {
					return false, nil
				}
			}
		}
	}
	return true, nil
}
