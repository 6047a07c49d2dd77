package geom

// Point is a single position, possibly empty.
type Point struct {
	base
	c Coordinate
}

// NewPoint wraps a coordinate.
func NewPoint(c Coordinate) *Point { return &Point{c: c} }

// NewPoint2D builds a 2D point.
func NewPoint2D(x, y float64) *Point { return &Point{c: NewCoordinate2D(x, y)} }

// NewPoint3D builds a 3D point.
func NewPoint3D(x, y, z float64) *Point { return &Point{c: NewCoordinate3D(x, y, z)} }

// EmptyPoint returns POINT EMPTY.
func EmptyPoint() *Point { return &Point{} }

func (*Point) GeometryType() GeometryType   { return TypePoint }
func (*Point) GeometryTypeName() string     { return TypePoint.String() }
func (*Point) Dimension() int               { return 0 }
func (p *Point) CoordinateDimension() int   { return p.c.CoordinateDimension() }
func (p *Point) IsEmpty() bool              { return p.c.IsEmpty() }
func (p *Point) Is3D() bool                 { return p.c.Is3D() }
func (p *Point) Accept(v Visitor)           { v.VisitPoint(p) }
func (p *Point) AcceptConst(v ConstVisitor) { v.VisitPoint(*p) }
func (p *Point) Clone() Geometry            { return &Point{c: p.c} }
func (p *Point) Envelope() Envelope         { return p.envelope(p) }
func (p *Point) Boundary() Geometry         { return boundaryOf(p) }
func (p *Point) NumGeometries() int         { return 1 }
func (p *Point) GeometryN(int) Geometry     { return p }
func (p *Point) Coordinate() Coordinate     { return p.c }

// SetCoordinate replaces the position.
func (p *Point) SetCoordinate(c Coordinate) {
	p.c = c
	p.InvalidateEnvelope()
}

// X returns the x value; see Coordinate.X.
func (p *Point) X() (float64, error) { return p.c.X() }

// Y returns the y value; see Coordinate.Y.
func (p *Point) Y() (float64, error) { return p.c.Y() }

// Z returns the z value; see Coordinate.Z.
func (p *Point) Z() (float64, error) { return p.c.Z() }
