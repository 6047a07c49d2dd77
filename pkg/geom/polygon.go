package geom

// Polygon is a planar surface bounded by an exterior ring and zero or more
// interior rings (holes). An empty polygon has no rings.
type Polygon struct {
	base
	rings []*LineString
}

// NewPolygon builds a polygon from its exterior ring and holes. The rings
// are owned by the polygon.
func NewPolygon(exterior *LineString, holes ...*LineString) *Polygon {
	if exterior == nil || exterior.IsEmpty() {
		return &Polygon{}
	}
	p := &Polygon{rings: make([]*LineString, 0, 1+len(holes))}
	p.rings = append(p.rings, exterior)
	p.rings = append(p.rings, holes...)
	return p
}

// NewPolygon2D builds a hole-free 2D polygon from x, y pairs.
func NewPolygon2D(xy ...[2]float64) *Polygon {
	return NewPolygon(NewLineString2D(xy...))
}

func (*Polygon) GeometryType() GeometryType { return TypePolygon }
func (*Polygon) GeometryTypeName() string   { return TypePolygon.String() }
func (*Polygon) Dimension() int             { return 2 }

func (p *Polygon) CoordinateDimension() int {
	if p.IsEmpty() {
		return 0
	}
	return p.rings[0].CoordinateDimension()
}

func (p *Polygon) IsEmpty() bool              { return len(p.rings) == 0 || p.rings[0].IsEmpty() }
func (p *Polygon) Is3D() bool                 { return !p.IsEmpty() && p.rings[0].Is3D() }
func (p *Polygon) Accept(v Visitor)           { v.VisitPolygon(p) }
func (p *Polygon) AcceptConst(v ConstVisitor) { v.VisitPolygon(*p) }
func (p *Polygon) Envelope() Envelope         { return p.envelope(p) }
func (p *Polygon) Boundary() Geometry         { return boundaryOf(p) }
func (p *Polygon) NumGeometries() int         { return 1 }
func (p *Polygon) GeometryN(int) Geometry     { return p }
func (p *Polygon) Clone() Geometry            { return p.clonePolygon() }

func (p *Polygon) clonePolygon() *Polygon {
	out := &Polygon{rings: make([]*LineString, len(p.rings))}
	for i, r := range p.rings {
		out.rings[i] = r.cloneLineString()
	}
	return out
}

// NumRings counts the exterior ring and the holes.
func (p *Polygon) NumRings() int         { return len(p.rings) }
func (p *Polygon) NumInteriorRings() int { return max(0, len(p.rings)-1) }

// RingN returns ring i; ring 0 is the exterior.
func (p *Polygon) RingN(i int) *LineString { return p.rings[i] }

func (p *Polygon) ExteriorRing() *LineString { return p.rings[0] }

// InteriorRingN returns hole i (0-based).
func (p *Polygon) InteriorRingN(i int) *LineString { return p.rings[i+1] }

// Rings returns the rings in order, exterior first.
func (p *Polygon) Rings() []*LineString { return append([]*LineString(nil), p.rings...) }

// AddInteriorRing appends a hole.
func (p *Polygon) AddInteriorRing(r *LineString) {
	p.rings = append(p.rings, r)
	p.InvalidateEnvelope()
}

// SetExteriorRing replaces the exterior ring.
func (p *Polygon) SetExteriorRing(r *LineString) {
	if len(p.rings) == 0 {
		p.rings = []*LineString{r}
	} else {
		p.rings[0] = r
	}
	p.InvalidateEnvelope()
}

// Reverse reverses the orientation of every ring.
func (p *Polygon) Reverse() {
	for _, r := range p.rings {
		r.Reverse()
	}
}
