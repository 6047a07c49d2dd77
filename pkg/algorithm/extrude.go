package algorithm

import (
	"math/big"

	"github.com/chazu/sfgeom/pkg/geom"
	"github.com/chazu/sfgeom/pkg/graph"
	"github.com/chazu/sfgeom/pkg/kernel"
)

// translation is an exact displacement vector.
type translation struct {
	dx, dy, dz *big.Rat
}

func newTranslation(dx, dy, dz float64) translation {
	r := func(f float64) *big.Rat {
		q := new(big.Rat)
		if q.SetFloat64(f) == nil {
			q.SetInt64(0)
		}
		return q
	}
	return translation{r(dx), r(dy), r(dz)}
}

func (t translation) vector() pt3 {
	return pt3{X: kernel.NewExact(t.dx), Y: kernel.NewExact(t.dy), Z: kernel.NewExact(t.dz)}
}

func (t translation) apply(c geom.Coordinate) geom.Coordinate {
	return c.Force3D().Translate(t.dx, t.dy, t.dz)
}

func (t translation) ring(l *geom.LineString) *geom.LineString {
	out := geom.NewLineString()
	for _, c := range l.Coordinates() {
		out.AddPoint(t.apply(c))
	}
	return out
}

func (t translation) polygon(p *geom.Polygon) *geom.Polygon {
	out := geom.NewPolygon(t.ring(p.ExteriorRing()))
	for i := 0; i < p.NumInteriorRings(); i++ {
		out.AddInteriorRing(t.ring(p.InteriorRingN(i)))
	}
	return out
}

func force3DRing(l *geom.LineString) *geom.LineString {
	out := geom.NewLineString()
	for _, c := range l.Coordinates() {
		out.AddPoint(c.Force3D())
	}
	return out
}

func force3DPolygon(p *geom.Polygon) *geom.Polygon {
	out := geom.NewPolygon(force3DRing(p.ExteriorRing()))
	for i := 0; i < p.NumInteriorRings(); i++ {
		out.AddInteriorRing(force3DRing(p.InteriorRingN(i)))
	}
	return out
}

// Extrude sweeps g along (dx, dy, dz). 2D input is promoted to 3D with
// z = 0. Points become line strings, lines become surfaces of side quads
// and polygons become solids.
func Extrude(g geom.Geometry, dx, dy, dz float64) (geom.Geometry, error) {
	t := newTranslation(dx, dy, dz)
	switch x := g.(type) {
	case *geom.Point:
		if x.IsEmpty() {
			return geom.NewLineString(), nil
		}
		return extrudePoint(x, t), nil
	case *geom.LineString:
		if x.IsEmpty() {
			return geom.NewPolyhedralSurface(), nil
		}
		return extrudeLineString(x, t), nil
	case *geom.Polygon:
		if x.IsEmpty() {
			return geom.NewSolid(geom.NewPolyhedralSurface()), nil
		}
		return extrudePolygon(x, t), nil
	case *geom.Triangle:
		if x.IsEmpty() {
			return geom.NewSolid(geom.NewPolyhedralSurface()), nil
		}
		return extrudePolygon(x.ToPolygon(), t), nil
	case *geom.MultiPoint:
		out := geom.NewMultiLineString()
		for _, p := range x.Members() {
			if !p.IsEmpty() {
				out.Add(extrudePoint(p, t))
			}
		}
		return out, nil
	case *geom.MultiLineString:
		out := geom.NewPolyhedralSurface()
		for _, l := range x.Members() {
			if l.IsEmpty() {
				continue
			}
			for _, q := range extrudeLineString(l, t).Polygons() {
				out.AddPolygon(q)
			}
		}
		return out, nil
	case *geom.MultiPolygon:
		out := geom.NewMultiSolid()
		for _, p := range x.Members() {
			if !p.IsEmpty() {
				out.Add(extrudePolygon(p, t))
			}
		}
		return out, nil
	case *geom.PolyhedralSurface:
		if x.IsEmpty() {
			return geom.NewPolyhedralSurface(), nil
		}
		return extrudeSurface(x, t)
	case *geom.TriangulatedSurface:
		if x.IsEmpty() {
			return geom.NewPolyhedralSurface(), nil
		}
		return extrudeSurface(x.ToPolyhedralSurface(), t)
	}
	return nil, notImplemented("Extrude", g)
}

func extrudePoint(p *geom.Point, t translation) *geom.LineString {
	c := p.Coordinate().Force3D()
	return geom.NewLineString(c, t.apply(c))
}

// extrudeLineString builds one quad per segment: a, b, b', a'.
func extrudeLineString(l *geom.LineString, t translation) *geom.PolyhedralSurface {
	out := geom.NewPolyhedralSurface()
	for i := 0; i+1 < l.NumPoints(); i++ {
		a, b := l.PointN(i).Force3D(), l.PointN(i+1).Force3D()
		if a.Equal(b) {
			continue
		}
		out.AddPolygon(geom.NewPolygon(geom.NewLineString(a, b, t.apply(b), t.apply(a), a)))
	}
	return out
}

// extrudePolygon returns a solid whose shell faces outward: the bottom is
// turned away from the sweep direction, the top is its translated reverse
// and each ring contributes reversed side quads.
func extrudePolygon(p *geom.Polygon, t translation) *geom.Solid {
	bottom := force3DPolygon(p)
	if newell(ring3(bottom.ExteriorRing())).Dot(t.vector()).Sign() > 0 {
		bottom.Reverse()
	}
	top := t.polygon(bottom)
	top.Reverse()

	shell := geom.NewPolyhedralSurface(bottom, top)
	for _, r := range bottom.Rings() {
		for _, q := range extrudeLineString(r, t).Polygons() {
			q.Reverse()
			shell.AddPolygon(q)
		}
	}
	return geom.NewSolid(shell)
}

// extrudeSurface sweeps a polyhedral surface: the surface itself, its
// translated copy and walls along its free edges. The result is a solid
// when these faces close up.
func extrudeSurface(s *geom.PolyhedralSurface, t translation) (geom.Geometry, error) {
	g, err := graph.New(s)
	if err != nil {
		return nil, err
	}
	out := geom.NewPolyhedralSurface()
	flip := false
	if n := surfaceNormal(s); n.Dot(t.vector()).Sign() > 0 {
		flip = true
	}
	for _, p := range s.Polygons() {
		bottom := force3DPolygon(p)
		if flip {
			bottom.Reverse()
		}
		top := t.polygon(bottom)
		top.Reverse()
		out.AddPolygon(bottom)
		out.AddPolygon(top)
	}
	for _, u := range g.Edges() {
		if u.Total() != 1 {
			continue
		}
		a, b := g.Vertices[u.Edge.From].Force3D(), g.Vertices[u.Edge.To].Force3D()
		if u.Backward == 1 {
			a, b = b, a
		}
		// Walls follow the edge as the bottom facet traverses it.
		if flip {
			a, b = b, a
		}
		out.AddPolygon(geom.NewPolygon(geom.NewLineString(a, t.apply(a), t.apply(b), b, a)))
	}
	closed, err := IsClosed(out)
	if err != nil {
		return nil, err
	}
	if closed {
		return geom.NewSolid(out), nil
	}
	return out, nil
}

// surfaceNormal sums the Newell normals of every facet exterior.
func surfaceNormal(s *geom.PolyhedralSurface) pt3 {
	var n pt3
	for _, p := range s.Polygons() {
		n = n.Add(newell(ring3(p.ExteriorRing())))
	}
	return n
}
