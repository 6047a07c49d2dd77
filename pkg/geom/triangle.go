package geom

// Triangle is a polygon with exactly three vertices and no holes.
type Triangle struct {
	base
	v     [3]Coordinate
	empty bool
}

// NewTriangle builds a triangle from its vertices.
func NewTriangle(a, b, c Coordinate) *Triangle {
	return &Triangle{v: [3]Coordinate{a, b, c}, empty: a.IsEmpty()}
}

// EmptyTriangle returns TRIANGLE EMPTY.
func EmptyTriangle() *Triangle { return &Triangle{empty: true} }

func (*Triangle) GeometryType() GeometryType { return TypeTriangle }
func (*Triangle) GeometryTypeName() string   { return TypeTriangle.String() }
func (*Triangle) Dimension() int             { return 2 }

func (t *Triangle) CoordinateDimension() int {
	if t.empty {
		return 0
	}
	return t.v[0].CoordinateDimension()
}

func (t *Triangle) IsEmpty() bool              { return t.empty }
func (t *Triangle) Is3D() bool                 { return !t.empty && t.v[0].Is3D() }
func (t *Triangle) Accept(v Visitor)           { v.VisitTriangle(t) }
func (t *Triangle) AcceptConst(v ConstVisitor) { v.VisitTriangle(*t) }
func (t *Triangle) Envelope() Envelope         { return t.envelope(t) }
func (t *Triangle) Boundary() Geometry         { return boundaryOf(t) }
func (t *Triangle) NumGeometries() int         { return 1 }
func (t *Triangle) GeometryN(int) Geometry     { return t }
func (t *Triangle) Clone() Geometry            { return t.cloneTriangle() }

func (t *Triangle) cloneTriangle() *Triangle {
	return &Triangle{v: t.v, empty: t.empty}
}

// Vertex returns vertex i modulo 3, so Vertex(3) closes the ring.
func (t *Triangle) Vertex(i int) Coordinate { return t.v[i%3] }

// Vertices returns the three vertices.
func (t *Triangle) Vertices() [3]Coordinate { return t.v }

// SetVertex replaces vertex i.
func (t *Triangle) SetVertex(i int, c Coordinate) {
	t.v[i%3] = c
	t.InvalidateEnvelope()
}

// Reverse swaps the orientation.
func (t *Triangle) Reverse() { t.v[1], t.v[2] = t.v[2], t.v[1] }

// ExteriorRing returns the closed four-position ring.
func (t *Triangle) ExteriorRing() *LineString {
	if t.empty {
		return NewLineString()
	}
	return NewLineString(t.v[0], t.v[1], t.v[2], t.v[0])
}

// ToPolygon converts the triangle into a hole-free polygon.
func (t *Triangle) ToPolygon() *Polygon {
	if t.empty {
		return &Polygon{}
	}
	return NewPolygon(t.ExteriorRing())
}
