package geom

import "math/big"

// Visitor receives the concrete variant of a geometry and may mutate it.
type Visitor interface {
	VisitPoint(*Point)
	VisitLineString(*LineString)
	VisitPolygon(*Polygon)
	VisitTriangle(*Triangle)
	VisitSolid(*Solid)
	VisitMultiPoint(*MultiPoint)
	VisitMultiLineString(*MultiLineString)
	VisitMultiPolygon(*MultiPolygon)
	VisitMultiSolid(*MultiSolid)
	VisitGeometryCollection(*GeometryCollection)
	VisitPolyhedralSurface(*PolyhedralSurface)
	VisitTriangulatedSurface(*TriangulatedSurface)
}

// ConstVisitor receives a shallow copy of the concrete variant. Members
// are shared with the original and must not be modified.
type ConstVisitor interface {
	VisitPoint(Point)
	VisitLineString(LineString)
	VisitPolygon(Polygon)
	VisitTriangle(Triangle)
	VisitSolid(Solid)
	VisitMultiPoint(MultiPoint)
	VisitMultiLineString(MultiLineString)
	VisitMultiPolygon(MultiPolygon)
	VisitMultiSolid(MultiSolid)
	VisitGeometryCollection(GeometryCollection)
	VisitPolyhedralSurface(PolyhedralSurface)
	VisitTriangulatedSurface(TriangulatedSurface)
}

// ----------------------------------------------------------------------------
// Coordinate visitors
// ----------------------------------------------------------------------------

// coordinateVisitor applies fn to every position of a geometry tree. The
// mutating variant rewrites positions in place.
type coordinateVisitor struct {
	fn func(Coordinate) Coordinate
}

var _ Visitor = (*coordinateVisitor)(nil)

func (v *coordinateVisitor) VisitPoint(p *Point) {
	if !p.IsEmpty() {
		p.c = v.fn(p.c)
	}
	p.InvalidateEnvelope()
}

func (v *coordinateVisitor) VisitLineString(l *LineString) {
	for i := range l.points {
		l.points[i] = v.fn(l.points[i])
	}
	l.InvalidateEnvelope()
}

func (v *coordinateVisitor) VisitPolygon(p *Polygon) {
	for _, r := range p.rings {
		v.VisitLineString(r)
	}
	p.InvalidateEnvelope()
}

func (v *coordinateVisitor) VisitTriangle(t *Triangle) {
	if !t.empty {
		for i := range t.v {
			t.v[i] = v.fn(t.v[i])
		}
	}
	t.InvalidateEnvelope()
}

func (v *coordinateVisitor) VisitSolid(s *Solid) {
	for _, sh := range s.shells {
		v.VisitPolyhedralSurface(sh)
	}
	s.InvalidateEnvelope()
}

func (v *coordinateVisitor) VisitMultiPoint(m *MultiPoint) {
	for _, p := range m.members {
		v.VisitPoint(p)
	}
	m.InvalidateEnvelope()
}

func (v *coordinateVisitor) VisitMultiLineString(m *MultiLineString) {
	for _, l := range m.members {
		v.VisitLineString(l)
	}
	m.InvalidateEnvelope()
}

func (v *coordinateVisitor) VisitMultiPolygon(m *MultiPolygon) {
	for _, p := range m.members {
		v.VisitPolygon(p)
	}
	m.InvalidateEnvelope()
}

func (v *coordinateVisitor) VisitMultiSolid(m *MultiSolid) {
	for _, s := range m.members {
		v.VisitSolid(s)
	}
	m.InvalidateEnvelope()
}

func (v *coordinateVisitor) VisitGeometryCollection(c *GeometryCollection) {
	for _, g := range c.members {
		g.Accept(v)
	}
	c.InvalidateEnvelope()
}

func (v *coordinateVisitor) VisitPolyhedralSurface(s *PolyhedralSurface) {
	for _, p := range s.polygons {
		v.VisitPolygon(p)
	}
	s.InvalidateEnvelope()
}

func (v *coordinateVisitor) VisitTriangulatedSurface(s *TriangulatedSurface) {
	for _, t := range s.triangles {
		v.VisitTriangle(t)
	}
	s.InvalidateEnvelope()
}

// Transform rewrites every position of g in place.
func Transform(g Geometry, fn func(Coordinate) Coordinate) {
	g.Accept(&coordinateVisitor{fn: fn})
}

// Round snaps every position of g in place; see Coordinate.Round.
func Round(g Geometry, scale int64) error {
	if scale <= 0 {
		return ErrInvalidScale
	}
	Transform(g, func(c Coordinate) Coordinate {
		r, _ := c.Round(scale)
		return r
	})
	return nil
}

// Force3D adds z = 0 to every 2D position of g in place.
func Force3D(g Geometry) { Transform(g, Coordinate.Force3D) }

// Force2D drops z from every position of g in place.
func Force2D(g Geometry) { Transform(g, Coordinate.Force2D) }

// Translate moves g in place; dz is ignored for 2D positions.
func Translate(g Geometry, dx, dy, dz *big.Rat) {
	Transform(g, func(c Coordinate) Coordinate { return c.Translate(dx, dy, dz) })
}

// collector gathers every position of a geometry tree without mutating it.
type collector struct {
	out []Coordinate
}

var _ ConstVisitor = (*collector)(nil)

func (c *collector) VisitPoint(p Point) {
	if !p.IsEmpty() {
		c.out = append(c.out, p.c)
	}
}

func (c *collector) VisitLineString(l LineString) { c.out = append(c.out, l.points...) }

func (c *collector) VisitPolygon(p Polygon) {
	for _, r := range p.rings {
		c.VisitLineString(*r)
	}
}

func (c *collector) VisitTriangle(t Triangle) {
	if !t.empty {
		c.out = append(c.out, t.v[:]...)
	}
}

func (c *collector) VisitSolid(s Solid) {
	for _, sh := range s.shells {
		c.VisitPolyhedralSurface(*sh)
	}
}

func (c *collector) VisitMultiPoint(m MultiPoint) {
	for _, p := range m.members {
		c.VisitPoint(*p)
	}
}

func (c *collector) VisitMultiLineString(m MultiLineString) {
	for _, l := range m.members {
		c.VisitLineString(*l)
	}
}

func (c *collector) VisitMultiPolygon(m MultiPolygon) {
	for _, p := range m.members {
		c.VisitPolygon(*p)
	}
}

func (c *collector) VisitMultiSolid(m MultiSolid) {
	for _, s := range m.members {
		c.VisitSolid(*s)
	}
}

func (c *collector) VisitGeometryCollection(gc GeometryCollection) {
	for _, g := range gc.members {
		g.AcceptConst(c)
	}
}

func (c *collector) VisitPolyhedralSurface(s PolyhedralSurface) {
	for _, p := range s.polygons {
		c.VisitPolygon(*p)
	}
}

func (c *collector) VisitTriangulatedSurface(s TriangulatedSurface) {
	for _, t := range s.triangles {
		c.VisitTriangle(*t)
	}
}

// Coordinates returns every position of g in traversal order, closing
// positions of rings included.
func Coordinates(g Geometry) []Coordinate {
	c := &collector{}
	g.AcceptConst(c)
	return c.out
}
