package geom

// LineString is an ordered sequence of positions. A ring is a closed
// LineString with at least four positions.
type LineString struct {
	base
	points []Coordinate
}

// NewLineString builds a LineString from coordinates (the slice is copied).
func NewLineString(pts ...Coordinate) *LineString {
	return &LineString{points: append([]Coordinate(nil), pts...)}
}

// NewLineString2D builds a 2D LineString from x, y pairs.
func NewLineString2D(xy ...[2]float64) *LineString {
	ls := &LineString{points: make([]Coordinate, len(xy))}
	for i, p := range xy {
		ls.points[i] = NewCoordinate2D(p[0], p[1])
	}
	return ls
}

// NewLineString3D builds a 3D LineString from x, y, z triples.
func NewLineString3D(xyz ...[3]float64) *LineString {
	ls := &LineString{points: make([]Coordinate, len(xyz))}
	for i, p := range xyz {
		ls.points[i] = NewCoordinate3D(p[0], p[1], p[2])
	}
	return ls
}

func (*LineString) GeometryType() GeometryType { return TypeLineString }
func (*LineString) GeometryTypeName() string   { return TypeLineString.String() }
func (*LineString) Dimension() int             { return 1 }

func (l *LineString) CoordinateDimension() int {
	if l.IsEmpty() {
		return 0
	}
	return l.points[0].CoordinateDimension()
}

func (l *LineString) IsEmpty() bool              { return len(l.points) == 0 }
func (l *LineString) Is3D() bool                 { return !l.IsEmpty() && l.points[0].Is3D() }
func (l *LineString) Accept(v Visitor)           { v.VisitLineString(l) }
func (l *LineString) AcceptConst(v ConstVisitor) { v.VisitLineString(*l) }
func (l *LineString) Envelope() Envelope         { return l.envelope(l) }
func (l *LineString) Boundary() Geometry         { return boundaryOf(l) }
func (l *LineString) NumGeometries() int         { return 1 }
func (l *LineString) GeometryN(int) Geometry     { return l }

func (l *LineString) Clone() Geometry { return l.cloneLineString() }

func (l *LineString) cloneLineString() *LineString {
	return &LineString{points: append([]Coordinate(nil), l.points...)}
}

func (l *LineString) NumPoints() int { return len(l.points) }

// PointN returns the i-th position.
func (l *LineString) PointN(i int) Coordinate { return l.points[i] }

func (l *LineString) StartPoint() Coordinate { return l.points[0] }
func (l *LineString) EndPoint() Coordinate   { return l.points[len(l.points)-1] }

// Coordinates returns a copy of the positions.
func (l *LineString) Coordinates() []Coordinate {
	return append([]Coordinate(nil), l.points...)
}

// AddPoint appends a position.
func (l *LineString) AddPoint(c Coordinate) {
	l.points = append(l.points, c)
	l.InvalidateEnvelope()
}

// SetPointN replaces the i-th position.
func (l *LineString) SetPointN(i int, c Coordinate) {
	l.points[i] = c
	l.InvalidateEnvelope()
}

// IsClosed reports whether the first and last positions are equal.
func (l *LineString) IsClosed() bool {
	return len(l.points) > 1 && l.StartPoint().Equal(l.EndPoint())
}

// Reverse reverses the order of the positions in place.
func (l *LineString) Reverse() {
	for i, j := 0, len(l.points)-1; i < j; i, j = i+1, j-1 {
		l.points[i], l.points[j] = l.points[j], l.points[i]
	}
}

// Closed returns a copy closed by repeating the first position when needed.
func (l *LineString) Closed() *LineString {
	c := l.cloneLineString()
	if !l.IsEmpty() && !l.IsClosed() {
		c.points = append(c.points, l.points[0])
	}
	return c
}
