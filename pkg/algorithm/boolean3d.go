package algorithm

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/chazu/sfgeom/pkg/geom"
	"github.com/chazu/sfgeom/pkg/kernel"
	"github.com/chazu/sfgeom/pkg/primitive"
)

// parts3 is a geometry in space split into points, segments, convex
// planar pieces and closed triangle shells.
type parts3 struct {
	points   []pt3
	segments []seg3
	pieces   [][]pt3
	solids   [][]tri3
}

func (p parts3) lower() parts3 {
	return parts3{points: p.points, segments: p.segments, pieces: p.pieces}
}

func trianglesOf(tin *geom.TriangulatedSurface) []tri3 {
	out := make([]tri3, 0, tin.NumTriangles())
	for _, t := range tin.Triangles() {
		v := t.Vertices()
		out = append(out, tri3{A: geom.ToPoint3[exact](v[0]), B: geom.ToPoint3[exact](v[1]), C: geom.ToPoint3[exact](v[2])})
	}
	return out
}

// decompose3 flattens g. Surfaces are triangulated and solids keep only
// their exterior shell.
func decompose3(g geom.Geometry) (parts3, error) {
	var p parts3
	addTIN := func(tin *geom.TriangulatedSurface) {
		for _, t := range trianglesOf(tin) {
			if !t.IsDegenerate() {
				p.pieces = append(p.pieces, []pt3{t.A, t.B, t.C})
			}
		}
	}
	for _, leaf := range geom.Leaves(g) {
		if leaf.IsEmpty() {
			continue
		}
		switch x := leaf.(type) {
		case *geom.Point:
			p.points = append(p.points, geom.ToPoint3[exact](x.Coordinate()))
		case *geom.LineString:
			c := chain3(x)
			if len(c) == 1 {
				p.points = append(p.points, c[0])
			}
			for i := 0; i+1 < len(c); i++ {
				p.segments = append(p.segments, seg3{A: c[i], B: c[i+1]})
			}
		case *geom.Triangle:
			addTIN(geom.NewTriangulatedSurface(x))
		case *geom.TriangulatedSurface:
			addTIN(x)
		case *geom.Polygon, *geom.PolyhedralSurface:
			tin, err := Triangulate(x)
			if err != nil {
				return parts3{}, err
			}
			addTIN(tin)
		case *geom.Solid:
			tin, err := Triangulate(x.ExteriorShell())
			if err != nil {
				return parts3{}, err
			}
			p.solids = append(p.solids, trianglesOf(tin))
		}
	}
	return p, nil
}

func coverOf(g geom.Geometry) (*cover3, error) {
	s, err := collect3(g)
	if err != nil {
		return nil, err
	}
	return newCover3(s)
}

// solidsOnly restricts a cover to its volumes.
func (c *cover3) solidsOnly() *cover3 {
	return &cover3{set: &primitive.Set{}, tree: primitive.NewTree(nil), solids: c.solids}
}

// Intersection3D computes the point set shared by a and b in space.
// Solids take part through their exterior shell.
func Intersection3D(a, b geom.Geometry) (geom.Geometry, error) {
	if isEmpty(a) || isEmpty(b) {
		return emptyResult(), nil
	}
	if ok, err := Covers3D(a, b); err != nil || ok {
		return cloneIf(ok, b, err)
	}
	if ok, err := Covers3D(b, a); err != nil || ok {
		return cloneIf(ok, a, err)
	}
	if hit, err := Intersects3DExact(a, b); err != nil || !hit {
		return emptyResult(), err
	}
	pa, err := decompose3(a)
	if err != nil {
		return nil, err
	}
	pb, err := decompose3(b)
	if err != nil {
		return nil, err
	}
	ca, err := coverOf(a)
	if err != nil {
		return nil, err
	}
	cb, err := coverOf(b)
	if err != nil {
		return nil, err
	}
	out, err := intersectParts3(pa, pb, ca, cb)
	if err != nil {
		return nil, err
	}
	return recompose3(out)
}

func cloneIf(ok bool, g geom.Geometry, err error) (geom.Geometry, error) {
	if err != nil {
		return nil, err
	}
	return g.Clone(), nil
}

func addObject3(out *parts3, o kernel.Object[pt3]) {
	switch o.Kind {
	case kernel.ObjectPoint, kernel.ObjectPoints:
		out.points = append(out.points, o.Points...)
	case kernel.ObjectSegment:
		out.segments = append(out.segments, seg3{A: o.Points[0], B: o.Points[1]})
	case kernel.ObjectTriangle, kernel.ObjectPolygon:
		out.pieces = append(out.pieces, o.Points)
	}
}

// clipSegments keeps the pieces of segs covered (or not) by c. The cut
// points covered by c are returned as points.
func clipSegments(segs []seg3, c *cover3, covered bool, out *parts3) {
	for _, s := range segs {
		cuts := c.cuts(s)
		for _, piece := range kernel.SplitSegment3(s, cuts) {
			if c.covers(piece.Midpoint()) == covered {
				out.segments = append(out.segments, piece)
			}
		}
		if covered {
			for _, p := range append(cuts, s.A, s.B) {
				if c.covers(p) && kernel.PointOnSegment3(p, s) {
					out.points = append(out.points, p)
				}
			}
		}
	}
}

// clipPieces cuts every piece along the closed shell and keeps the parts
// whose class is accepted by keep.
func clipPieces(pieces [][]pt3, shell []tri3, keep func(edgeClass) bool) ([][]pt3, error) {
	v, err := volumeOfTriangles(shell)
	if err != nil {
		return nil, err
	}
	var out [][]pt3
	for _, p := range pieces {
		for _, t := range fan3(p) {
			n := t.Normal()
			for _, q := range cutTriangle(t, v) {
				if keep(classifyPiece(q, n, v)) {
					out = append(out, q)
				}
			}
		}
	}
	return out, nil
}

func intersectParts3(a, b parts3, ca, cb *cover3) (parts3, error) {
	var out parts3
	out.points = append(out.points, lo.Filter(a.points, func(p pt3, _ int) bool { return cb.covers(p) })...)
	out.points = append(out.points, lo.Filter(b.points, func(p pt3, _ int) bool { return ca.covers(p) })...)
	clipSegments(a.segments, cb, true, &out)
	clipSegments(b.segments, ca, true, &out)

	for _, x := range a.pieces {
		for _, tx := range fan3(x) {
			for _, y := range b.pieces {
				if !boxesOverlap3(x, y) {
					continue
				}
				for _, ty := range fan3(y) {
					addObject3(&out, kernel.TriangleTriangleIntersection3(tx, ty))
				}
			}
		}
	}
	notOutside := func(c edgeClass) bool { return c != edgeOutside }
	for _, s := range b.solids {
		kept, err := clipPieces(a.pieces, s, notOutside)
		if err != nil {
			return out, err
		}
		out.pieces = append(out.pieces, kept...)
	}
	for _, s := range a.solids {
		kept, err := clipPieces(b.pieces, s, notOutside)
		if err != nil {
			return out, err
		}
		out.pieces = append(out.pieces, kept...)
	}
	for _, sa := range a.solids {
		for _, sb := range b.solids {
			if !shellBoxesOverlap(sa, sb) {
				continue
			}
			r, err := corefine(sa, sb, opIntersection)
			if err != nil {
				return out, err
			}
			if len(r) > 0 {
				out.solids = append(out.solids, r)
			}
		}
	}
	return out, nil
}

func shellPoints(s []tri3) []pt3 {
	out := make([]pt3, 0, 3*len(s))
	for _, t := range s {
		out = append(out, t.A, t.B, t.C)
	}
	return out
}

func shellBoxesOverlap(a, b []tri3) bool {
	return len(a) > 0 && len(b) > 0 && boxesOverlap3(shellPoints(a), shellPoints(b))
}

// Difference3D computes the points of a not in b in space. Solids take
// part through their exterior shell.
func Difference3D(a, b geom.Geometry) (geom.Geometry, error) {
	if isEmpty(a) {
		return emptyResult(), nil
	}
	if isEmpty(b) {
		return a.Clone(), nil
	}
	if ok, err := Covers3D(b, a); err != nil || ok {
		return emptyResult(), err
	}
	if hit, err := Intersects3DExact(a, b); err != nil || !hit {
		if err != nil {
			return nil, err
		}
		return a.Clone(), nil
	}
	pa, err := decompose3(a)
	if err != nil {
		return nil, err
	}
	pb, err := decompose3(b)
	if err != nil {
		return nil, err
	}
	cb, err := coverOf(b)
	if err != nil {
		return nil, err
	}
	out, err := differenceParts3(pa, pb, cb)
	if err != nil {
		return nil, err
	}
	return recompose3(out)
}

func differenceParts3(a, b parts3, cb *cover3) (parts3, error) {
	var out parts3
	out.points = lo.Filter(a.points, func(p pt3, _ int) bool { return !cb.covers(p) })
	clipSegments(a.segments, cb, false, &out)

	pieces := a.pieces
	outside := func(c edgeClass) bool { return c == edgeOutside }
	for _, s := range b.solids {
		var err error
		if pieces, err = clipPieces(pieces, s, outside); err != nil {
			return out, err
		}
	}
	for _, p := range pieces {
		out.pieces = append(out.pieces, subtractCoplanar(p, b.pieces)...)
	}

	for _, s := range a.solids {
		cur := s
		for _, sb := range b.solids {
			if len(cur) == 0 || !shellBoxesOverlap(cur, sb) {
				continue
			}
			var err error
			if cur, err = corefine(cur, sb, opDifference); err != nil {
				return out, err
			}
		}
		if len(cur) > 0 {
			out.solids = append(out.solids, cur)
		}
	}
	return out, nil
}

// subtractCoplanar removes from a planar piece the parts covered by
// coplanar pieces of others. The rest is triangulated on the piece plane.
func subtractCoplanar(p []pt3, others [][]pt3) [][]pt3 {
	n := newell(p)
	pl := kernel.PlaneFromNormal(n, p[0])
	axis := kernel.DominantAxis(n)
	var cut []polygon2
	for _, q := range others {
		if !boxesOverlap3(p, q) || lo.SomeBy(q, func(v pt3) bool { return pl.Side(v) != 0 }) {
			continue
		}
		cut = append(cut, polygon2{rings: [][]pt2{projectRing(q, axis)}})
	}
	if len(cut) == 0 {
		return [][]pt3{p}
	}
	self := []polygon2{{rings: [][]pt2{projectRing(p, axis)}}}
	rest := overlay(self, overlay(cut, nil, opUnion), opDifference)
	var out [][]pt3
	for _, r := range rest {
		t, faces, err := triangulateRings(r.rings)
		if err != nil {
			log().Warn("difference: cannot triangulate a remaining piece")
			continue
		}
		for _, f := range faces {
			q := []pt3{pl.Lift(t.pts[f[0]], axis), pl.Lift(t.pts[f[1]], axis), pl.Lift(t.pts[f[2]], axis)}
			if n.Dot(newell(q)).Sign() < 0 {
				q = reversed3(q)
			}
			out = append(out, q)
		}
	}
	return out
}

func projectRing(r []pt3, axis int) []pt2 {
	return lo.Map(r, func(v pt3, _ int) pt2 { return kernel.Project(v, axis) })
}

// Union3D computes the point set covered by a or b in space. Intersecting
// solids are merged into one shell.
func Union3D(a, b geom.Geometry) (geom.Geometry, error) {
	switch {
	case isEmpty(a) && isEmpty(b):
		return emptyResult(), nil
	case isEmpty(a):
		return b.Clone(), nil
	case isEmpty(b):
		return a.Clone(), nil
	}
	if ok, err := Covers3D(a, b); err != nil || ok {
		return cloneIf(ok, a, err)
	}
	if ok, err := Covers3D(b, a); err != nil || ok {
		return cloneIf(ok, b, err)
	}
	pa, err := decompose3(a)
	if err != nil {
		return nil, err
	}
	pb, err := decompose3(b)
	if err != nil {
		return nil, err
	}
	ca, err := coverOf(a)
	if err != nil {
		return nil, err
	}
	cb, err := coverOf(b)
	if err != nil {
		return nil, err
	}
	la, err := differenceParts3(pa.lower(), parts3{solids: pb.solids}, cb.solidsOnly())
	if err != nil {
		return nil, err
	}
	lb, err := differenceParts3(pb.lower(), pa, ca)
	if err != nil {
		return nil, err
	}
	solids, err := mergeSolids(append(append([][]tri3(nil), pa.solids...), pb.solids...))
	if err != nil {
		return nil, err
	}
	return recompose3(parts3{
		points:   append(la.points, lb.points...),
		segments: append(la.segments, lb.segments...),
		pieces:   append(la.pieces, lb.pieces...),
		solids:   solids,
	})
}

// mergeSolids unions shells whose boxes overlap until all are apart.
func mergeSolids(shells [][]tri3) ([][]tri3, error) {
	var acc [][]tri3
	for _, s := range shells {
		for i := 0; i < len(acc); {
			if !shellBoxesOverlap(acc[i], s) {
				i++
				continue
			}
			merged, err := corefine(acc[i], s, opUnion)
			if err != nil {
				return nil, err
			}
			s = merged
			acc = append(acc[:i], acc[i+1:]...)
		}
		acc = append(acc, s)
	}
	return acc, nil
}

func pieceKey(p []pt3) string {
	ks := lo.Map(p, func(v pt3, _ int) string { return key3(v) })
	sort.Strings(ks)
	return strings.Join(ks, ",")
}

func segKey3(s seg3) string {
	if s.A.Compare(s.B) > 0 {
		s = s.Reverse()
	}
	return key3(s.A) + "-" + key3(s.B)
}

// recompose3 builds the result geometry from parts, dropping points and
// segments lying on higher-dimensional parts.
func recompose3(p parts3) (geom.Geometry, error) {
	var volumes []geom.Geometry
	for _, s := range p.solids {
		gs, err := shellGeometry(s)
		if err != nil {
			return nil, err
		}
		volumes = append(volumes, gs...)
	}
	var holder *cover3
	if len(volumes) > 0 {
		c, err := coverOf(geom.NewGeometryCollection(volumes...))
		if err != nil {
			return nil, err
		}
		holder = c
	}
	inVolume := func(q pt3) bool { return holder != nil && holder.covers(q) }

	pieces := lo.UniqBy(p.pieces, pieceKey)
	pieces = lo.Filter(pieces, func(q []pt3, _ int) bool { return len(q) >= 3 && !newell(q).IsZero() })
	var tris []tri3
	for _, q := range pieces {
		tris = append(tris, fan3(q)...)
	}
	onPiece := func(q pt3) bool {
		return lo.SomeBy(tris, func(t tri3) bool { return kernel.TriangleSide3(q, t) != kernel.OnUnboundedSide })
	}

	segs := lo.UniqBy(p.segments, segKey3)
	segs = lo.Filter(segs, func(s seg3, _ int) bool {
		if s.IsDegenerate() {
			return false
		}
		m := s.Midpoint()
		return !(inVolume(m) && inVolume(s.A) && inVolume(s.B)) && !(onPiece(m) && onPiece(s.A) && onPiece(s.B))
	})
	points := lo.UniqBy(p.points, key3)
	points = lo.Filter(points, func(q pt3, _ int) bool {
		return !inVolume(q) && !onPiece(q) && !lo.SomeBy(segs, func(s seg3) bool { return kernel.PointOnSegment3(q, s) })
	})

	var gs []geom.Geometry
	for _, q := range points {
		gs = append(gs, geom.NewPoint(geom.FromPoint3(q)))
	}
	for _, s := range segs {
		gs = append(gs, lineString3([]pt3{s.A, s.B}))
	}
	switch {
	case len(pieces) == 1 && len(pieces[0]) == 3:
		gs = append(gs, triangleGeom(tri3{A: pieces[0][0], B: pieces[0][1], C: pieces[0][2]}))
	case len(pieces) == 1:
		gs = append(gs, geom.NewPolygon(closedLineString3(pieces[0])))
	case len(pieces) > 1:
		tin := geom.NewTriangulatedSurface()
		for _, t := range tris {
			tin.AddTriangle(triangleGeom(t))
		}
		gs = append(gs, tin)
	}
	gs = append(gs, volumes...)

	kinds := lo.Uniq(lo.Map(gs, func(g geom.Geometry, _ int) geom.GeometryType { return g.GeometryType() }))
	switch {
	case len(gs) == 0:
		return emptyResult(), nil
	case len(gs) == 1:
		return gs[0], nil
	case len(kinds) == 1 && kinds[0] == geom.TypePoint:
		return geom.NewMultiPoint(lo.Map(gs, func(g geom.Geometry, _ int) *geom.Point { return g.(*geom.Point) })...), nil
	case len(kinds) == 1 && kinds[0] == geom.TypeLineString:
		return geom.NewMultiLineString(lo.Map(gs, func(g geom.Geometry, _ int) *geom.LineString { return g.(*geom.LineString) })...), nil
	case len(kinds) == 1 && kinds[0] == geom.TypeSolid:
		return geom.NewMultiSolid(lo.Map(gs, func(g geom.Geometry, _ int) *geom.Solid { return g.(*geom.Solid) })...), nil
	}
	return geom.NewGeometryCollection(gs...), nil
}
