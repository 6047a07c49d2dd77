package geom

// collection holds the members shared by GeometryCollection and the Multi*
// variants. It is empty iff it has no members. T is always a Geometry; the
// constraint is any because Geometry itself refers to the Multi* types.
type collection[T any] struct {
	base
	members []T
}

func (c *collection[T]) NumGeometries() int       { return len(c.members) }
func (c *collection[T]) GeometryN(i int) Geometry { return member(c.members[i]) }
func (c *collection[T]) IsEmpty() bool            { return len(c.members) == 0 }

func member[T any](m T) Geometry { return any(m).(Geometry) }

// Members returns the members in order.
func (c *collection[T]) Members() []T { return append([]T(nil), c.members...) }

// Add appends a member owned by the collection.
func (c *collection[T]) Add(g T) {
	c.members = append(c.members, g)
	c.InvalidateEnvelope()
}

func (c *collection[T]) Is3D() bool {
	for _, m := range c.members {
		if g := member(m); !g.IsEmpty() {
			return g.Is3D()
		}
	}
	return false
}

func (c *collection[T]) CoordinateDimension() int {
	for _, m := range c.members {
		if g := member(m); !g.IsEmpty() {
			return g.CoordinateDimension()
		}
	}
	return 0
}

func (c *collection[T]) cloneMembers() []T {
	out := make([]T, len(c.members))
	for i, m := range c.members {
		out[i] = member(m).Clone().(T)
	}
	return out
}

// GeometryCollection is a heterogeneous collection.
type GeometryCollection struct {
	collection[Geometry]
}

// NewGeometryCollection builds a collection owning gs.
func NewGeometryCollection(gs ...Geometry) *GeometryCollection {
	return &GeometryCollection{collection[Geometry]{members: append([]Geometry(nil), gs...)}}
}

func (*GeometryCollection) GeometryType() GeometryType { return TypeGeometryCollection }
func (*GeometryCollection) GeometryTypeName() string   { return TypeGeometryCollection.String() }

// Dimension is the highest member dimension, 0 when empty.
func (c *GeometryCollection) Dimension() int {
	d := 0
	for _, m := range c.members {
		d = max(d, m.Dimension())
	}
	return d
}

func (c *GeometryCollection) Accept(v Visitor)           { v.VisitGeometryCollection(c) }
func (c *GeometryCollection) AcceptConst(v ConstVisitor) { v.VisitGeometryCollection(*c) }
func (c *GeometryCollection) Envelope() Envelope         { return c.envelope(c) }
func (c *GeometryCollection) Boundary() Geometry         { return boundaryOf(c) }

func (c *GeometryCollection) Clone() Geometry {
	return &GeometryCollection{collection[Geometry]{members: c.cloneMembers()}}
}

// MultiPoint is a collection of points.
type MultiPoint struct {
	collection[*Point]
}

func NewMultiPoint(pts ...*Point) *MultiPoint {
	return &MultiPoint{collection[*Point]{members: append([]*Point(nil), pts...)}}
}

func (*MultiPoint) GeometryType() GeometryType   { return TypeMultiPoint }
func (*MultiPoint) GeometryTypeName() string     { return TypeMultiPoint.String() }
func (*MultiPoint) Dimension() int               { return 0 }
func (c *MultiPoint) Accept(v Visitor)           { v.VisitMultiPoint(c) }
func (c *MultiPoint) AcceptConst(v ConstVisitor) { v.VisitMultiPoint(*c) }
func (c *MultiPoint) Envelope() Envelope         { return c.envelope(c) }
func (c *MultiPoint) Boundary() Geometry         { return boundaryOf(c) }
func (c *MultiPoint) PointN(i int) *Point        { return c.members[i] }

func (c *MultiPoint) Clone() Geometry {
	return &MultiPoint{collection[*Point]{members: c.cloneMembers()}}
}

// MultiLineString is a collection of LineStrings.
type MultiLineString struct {
	collection[*LineString]
}

func NewMultiLineString(ls ...*LineString) *MultiLineString {
	return &MultiLineString{collection[*LineString]{members: append([]*LineString(nil), ls...)}}
}

func (*MultiLineString) GeometryType() GeometryType   { return TypeMultiLineString }
func (*MultiLineString) GeometryTypeName() string     { return TypeMultiLineString.String() }
func (*MultiLineString) Dimension() int               { return 1 }
func (c *MultiLineString) Accept(v Visitor)           { v.VisitMultiLineString(c) }
func (c *MultiLineString) AcceptConst(v ConstVisitor) { v.VisitMultiLineString(*c) }
func (c *MultiLineString) Envelope() Envelope         { return c.envelope(c) }
func (c *MultiLineString) Boundary() Geometry         { return boundaryOf(c) }
func (c *MultiLineString) LineStringN(i int) *LineString {
	return c.members[i]
}

func (c *MultiLineString) Clone() Geometry {
	return &MultiLineString{collection[*LineString]{members: c.cloneMembers()}}
}

// MultiPolygon is a collection of polygons.
type MultiPolygon struct {
	collection[*Polygon]
}

func NewMultiPolygon(ps ...*Polygon) *MultiPolygon {
	return &MultiPolygon{collection[*Polygon]{members: append([]*Polygon(nil), ps...)}}
}

func (*MultiPolygon) GeometryType() GeometryType   { return TypeMultiPolygon }
func (*MultiPolygon) GeometryTypeName() string     { return TypeMultiPolygon.String() }
func (*MultiPolygon) Dimension() int               { return 2 }
func (c *MultiPolygon) Accept(v Visitor)           { v.VisitMultiPolygon(c) }
func (c *MultiPolygon) AcceptConst(v ConstVisitor) { v.VisitMultiPolygon(*c) }
func (c *MultiPolygon) Envelope() Envelope         { return c.envelope(c) }
func (c *MultiPolygon) Boundary() Geometry         { return boundaryOf(c) }
func (c *MultiPolygon) PolygonN(i int) *Polygon    { return c.members[i] }

func (c *MultiPolygon) Clone() Geometry {
	return &MultiPolygon{collection[*Polygon]{members: c.cloneMembers()}}
}

// MultiSolid is a collection of solids.
type MultiSolid struct {
	collection[*Solid]
}

func NewMultiSolid(ss ...*Solid) *MultiSolid {
	return &MultiSolid{collection[*Solid]{members: append([]*Solid(nil), ss...)}}
}

func (*MultiSolid) GeometryType() GeometryType   { return TypeMultiSolid }
func (*MultiSolid) GeometryTypeName() string     { return TypeMultiSolid.String() }
func (*MultiSolid) Dimension() int               { return 3 }
func (c *MultiSolid) Accept(v Visitor)           { v.VisitMultiSolid(c) }
func (c *MultiSolid) AcceptConst(v ConstVisitor) { v.VisitMultiSolid(*c) }
func (c *MultiSolid) Envelope() Envelope         { return c.envelope(c) }
func (c *MultiSolid) Boundary() Geometry         { return boundaryOf(c) }
func (c *MultiSolid) SolidN(i int) *Solid        { return c.members[i] }

func (c *MultiSolid) Clone() Geometry {
	return &MultiSolid{collection[*Solid]{members: c.cloneMembers()}}
}
