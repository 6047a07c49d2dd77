package algorithm

import (
	"sort"

	"go.uber.org/zap"

	"github.com/chazu/sfgeom/pkg/geom"
	"github.com/chazu/sfgeom/pkg/graph"
	"github.com/chazu/sfgeom/pkg/kernel"
	"github.com/chazu/sfgeom/pkg/primitive"
)

// boxOfPoints is the double precision box enclosing pts.
func boxOfPoints(pts ...pt3) primitive.Box {
	return pointBox(bounds3Float(pts...))
}

// cutTriangle splits x along every line where it meets a triangle of
// other. The pieces are convex and keep the orientation of x.
func cutTriangle(x tri3, other *volume) [][]pt3 {
	pieces := [][]pt3{{x.A, x.B, x.C}}
	if x.IsDegenerate() {
		return nil
	}
	pl := x.Plane()
	for _, h := range other.tree.Search(boxOfPoints(x.A, x.B, x.C)) {
		o := kernel.TriangleTriangleIntersection3(x, primitive.Triangle3[exact](h))
		var lines [][2]pt3
		switch o.Kind {
		case kernel.ObjectSegment:
			lines = append(lines, [2]pt3{o.Points[0], o.Points[1]})
		case kernel.ObjectTriangle, kernel.ObjectPolygon:
			for i := range o.Points {
				lines = append(lines, [2]pt3{o.Points[i], o.Points[(i+1)%len(o.Points)]})
			}
		}
		for _, l := range lines {
			if l[0].Equal(l[1]) {
				continue
			}
			var next [][]pt3
			for _, p := range pieces {
				next = append(next, kernel.SplitConvex3(p, pl, l[0], l[1])...)
			}
			pieces = next
		}
	}
	out := pieces[:0]
	for _, p := range pieces {
		if len(p) >= 3 && !newell(p).IsZero() {
			out = append(out, p)
		}
	}
	return out
}

// classifyPiece locates a piece cut from a facet with normal n against a
// closed shell. Pieces lying on the shell compare their normal with the
// shell facet.
func classifyPiece(piece []pt3, n pt3, other *volume) edgeClass {
	c := kernel.Centroid3(piece...)
	switch locateVolume(c, other) {
	case kernel.OnBoundedSide:
		return edgeInside
	case kernel.OnUnboundedSide:
		return edgeOutside
	}
	for _, h := range other.tree.Search(boxOfPoints(c)) {
		y := primitive.Triangle3[exact](h)
		if y.IsDegenerate() || kernel.TriangleSide3(c, y) == kernel.OnUnboundedSide || !n.Cross(y.Normal()).IsZero() {
			continue
		}
		if n.Dot(y.Normal()).Sign() > 0 {
			return edgeSame
		}
		return edgeOpposite
	}
	return edgeInside
}

// corefine combines two closed triangle shells. Each facet is cut along
// the other shell, every piece is located against the other volume and
// the pieces selected by op form the result shell.
func corefine(a, b []tri3, op overlayOp) ([]tri3, error) {
	va, err := volumeOfTriangles(a)
	if err != nil {
		return nil, err
	}
	vb, err := volumeOfTriangles(b)
	if err != nil {
		return nil, err
	}
	var kept [][]pt3
	for _, x := range a {
		n := x.Normal()
		for _, p := range cutTriangle(x, vb) {
			c := classifyPiece(p, n, vb)
			switch {
			case op == opIntersection && (c == edgeInside || c == edgeSame),
				op == opUnion && (c == edgeOutside || c == edgeSame),
				op == opDifference && (c == edgeOutside || c == edgeOpposite):
				kept = append(kept, p)
			}
		}
	}
	for _, y := range b {
		n := y.Normal()
		for _, p := range cutTriangle(y, va) {
			c := classifyPiece(p, n, va)
			switch {
			case op == opIntersection && c == edgeInside,
				op == opUnion && c == edgeOutside:
				kept = append(kept, p)
			case op == opDifference && c == edgeInside:
				kept = append(kept, reversed3(p))
			}
		}
	}
	var tris []tri3
	for _, p := range kept {
		tris = append(tris, fan3(p)...)
	}
	out := conform(tris)
	log().Debug("corefinement", zap.Stringer("op", op), zap.Int("pieces", len(kept)), zap.Int("triangles", len(out)))
	return out, nil
}

func reversed3(p []pt3) []pt3 {
	out := make([]pt3, len(p))
	for i := range p {
		out[len(p)-1-i] = p[i]
	}
	return out
}

// fan3 splits a convex polygon into triangles sharing its first vertex.
func fan3(p []pt3) []tri3 {
	var out []tri3
	for i := 1; i+1 < len(p); i++ {
		t := tri3{A: p[0], B: p[i], C: p[i+1]}
		if !t.IsDegenerate() {
			out = append(out, t)
		}
	}
	return out
}

// conform removes T-junctions: a triangle with vertices of other
// triangles inside its edges is replaced by a fan around its centroid
// through those vertices.
func conform(tris []tri3) []tri3 {
	var verts []pt3
	seen := map[string]bool{}
	for _, t := range tris {
		for _, v := range t.Vertices() {
			if k := key3(v); !seen[k] {
				seen[k] = true
				verts = append(verts, v)
			}
		}
	}
	var out []tri3
	for _, t := range tris {
		var ring []pt3
		split := false
		for _, e := range t.Edges() {
			ring = append(ring, e.A)
			inner := pointsOnEdge(e, verts)
			if len(inner) > 0 {
				split = true
			}
			ring = append(ring, inner...)
		}
		if !split {
			out = append(out, t)
			continue
		}
		c := kernel.Centroid3(t.A, t.B, t.C)
		for i := range ring {
			out = append(out, tri3{A: c, B: ring[i], C: ring[(i+1)%len(ring)]})
		}
	}
	return out
}

// pointsOnEdge returns the points strictly inside e ordered from e.A.
func pointsOnEdge(e seg3, pts []pt3) []pt3 {
	lo, hi := bounds3([]pt3{e.A, e.B})
	var inner []pt3
	for _, p := range pts {
		if p.Equal(e.A) || p.Equal(e.B) || !insideBox3(p, lo, hi) || !kernel.PointOnSegment3(p, e) {
			continue
		}
		inner = append(inner, p)
	}
	d := e.B.Sub(e.A)
	sort.Slice(inner, func(i, j int) bool {
		return inner[i].Sub(e.A).Dot(d).Cmp(inner[j].Sub(e.A).Dot(d)) < 0
	})
	return inner
}

func insideBox3(p, lo, hi pt3) bool {
	for i := 0; i < 3; i++ {
		if p.Coord(i).Cmp(lo.Coord(i)) < 0 || p.Coord(i).Cmp(hi.Coord(i)) > 0 {
			return false
		}
	}
	return true
}

func triangleGeom(t tri3) *geom.Triangle {
	return geom.NewTriangle(geom.FromPoint3(t.A), geom.FromPoint3(t.B), geom.FromPoint3(t.C))
}

// shellGeometry turns a triangle shell into solids when it is closed and
// into a triangulated surface otherwise. Closed components enclosing a
// negative volume become cavities of the solid around them.
func shellGeometry(tris []tri3) ([]geom.Geometry, error) {
	if len(tris) == 0 {
		return nil, nil
	}
	tin := geom.NewTriangulatedSurface()
	for _, t := range tris {
		tin.AddTriangle(triangleGeom(t))
	}
	g, err := graph.New(tin)
	if err != nil {
		return nil, err
	}
	if !g.IsClosed() {
		return []geom.Geometry{tin}, nil
	}
	type component struct {
		surface *geom.PolyhedralSurface
		tris    []tri3
	}
	var shells, cavities []component
	for _, comp := range g.Components() {
		c := component{surface: geom.NewPolyhedralSurface()}
		var vol exact
		for _, f := range comp {
			t := tris[f]
			c.tris = append(c.tris, t)
			c.surface.AddPolygon(triangleGeom(t).ToPolygon())
			vol = vol.Add(ringVolume6([]pt3{t.A, t.B, t.C}))
		}
		if vol.Sign() >= 0 {
			shells = append(shells, c)
		} else {
			cavities = append(cavities, c)
		}
	}
	solids := make([]*geom.Solid, len(shells))
	vols := make([]*volume, len(shells))
	for i, s := range shells {
		solids[i] = geom.NewSolid(s.surface)
		if vols[i], err = volumeOfTriangles(s.tris); err != nil {
			return nil, err
		}
	}
	for _, c := range cavities {
		placed := false
		for i := range shells {
			if locateVolume(c.tris[0].A, vols[i]) != kernel.OnUnboundedSide {
				solids[i].AddInteriorShell(c.surface)
				placed = true
				break
			}
		}
		if !placed {
			log().Warn("corefinement: cavity outside every shell", zap.Int("facets", len(c.tris)))
		}
	}
	out := make([]geom.Geometry, len(solids))
	for i, s := range solids {
		out[i] = s
	}
	return out, nil
}
