package geom

// PolyhedralSurface is a set of polygons sharing edges.
type PolyhedralSurface struct {
	base
	polygons []*Polygon
}

// NewPolyhedralSurface builds a surface owning the given polygons.
func NewPolyhedralSurface(polys ...*Polygon) *PolyhedralSurface {
	return &PolyhedralSurface{polygons: append([]*Polygon(nil), polys...)}
}

func (*PolyhedralSurface) GeometryType() GeometryType { return TypePolyhedralSurface }
func (*PolyhedralSurface) GeometryTypeName() string   { return TypePolyhedralSurface.String() }
func (*PolyhedralSurface) Dimension() int             { return 2 }

func (s *PolyhedralSurface) CoordinateDimension() int {
	if s.IsEmpty() {
		return 0
	}
	return s.polygons[0].CoordinateDimension()
}

func (s *PolyhedralSurface) IsEmpty() bool              { return len(s.polygons) == 0 }
func (s *PolyhedralSurface) Is3D() bool                 { return !s.IsEmpty() && s.polygons[0].Is3D() }
func (s *PolyhedralSurface) Accept(v Visitor)           { v.VisitPolyhedralSurface(s) }
func (s *PolyhedralSurface) AcceptConst(v ConstVisitor) { v.VisitPolyhedralSurface(*s) }
func (s *PolyhedralSurface) Envelope() Envelope         { return s.envelope(s) }
func (s *PolyhedralSurface) Boundary() Geometry         { return boundaryOf(s) }
func (s *PolyhedralSurface) NumGeometries() int         { return 1 }
func (s *PolyhedralSurface) GeometryN(int) Geometry     { return s }
func (s *PolyhedralSurface) Clone() Geometry            { return s.cloneSurface() }

func (s *PolyhedralSurface) cloneSurface() *PolyhedralSurface {
	out := &PolyhedralSurface{polygons: make([]*Polygon, len(s.polygons))}
	for i, p := range s.polygons {
		out.polygons[i] = p.clonePolygon()
	}
	return out
}

func (s *PolyhedralSurface) NumPolygons() int        { return len(s.polygons) }
func (s *PolyhedralSurface) PolygonN(i int) *Polygon { return s.polygons[i] }
func (s *PolyhedralSurface) Polygons() []*Polygon    { return append([]*Polygon(nil), s.polygons...) }

// AddPolygon appends a facet.
func (s *PolyhedralSurface) AddPolygon(p *Polygon) {
	s.polygons = append(s.polygons, p)
	s.InvalidateEnvelope()
}

// Reverse flips the orientation of every facet.
func (s *PolyhedralSurface) Reverse() {
	for _, p := range s.polygons {
		p.Reverse()
	}
}

// TriangulatedSurface is a set of triangles sharing edges (a TIN).
type TriangulatedSurface struct {
	base
	triangles []*Triangle
}

// NewTriangulatedSurface builds a TIN owning the given triangles.
func NewTriangulatedSurface(tris ...*Triangle) *TriangulatedSurface {
	return &TriangulatedSurface{triangles: append([]*Triangle(nil), tris...)}
}

func (*TriangulatedSurface) GeometryType() GeometryType { return TypeTriangulatedSurface }
func (*TriangulatedSurface) GeometryTypeName() string   { return TypeTriangulatedSurface.String() }
func (*TriangulatedSurface) Dimension() int             { return 2 }

func (s *TriangulatedSurface) CoordinateDimension() int {
	if s.IsEmpty() {
		return 0
	}
	return s.triangles[0].CoordinateDimension()
}

func (s *TriangulatedSurface) IsEmpty() bool              { return len(s.triangles) == 0 }
func (s *TriangulatedSurface) Is3D() bool                 { return !s.IsEmpty() && s.triangles[0].Is3D() }
func (s *TriangulatedSurface) Accept(v Visitor)           { v.VisitTriangulatedSurface(s) }
func (s *TriangulatedSurface) AcceptConst(v ConstVisitor) { v.VisitTriangulatedSurface(*s) }
func (s *TriangulatedSurface) Envelope() Envelope         { return s.envelope(s) }
func (s *TriangulatedSurface) Boundary() Geometry         { return boundaryOf(s) }
func (s *TriangulatedSurface) NumGeometries() int         { return 1 }
func (s *TriangulatedSurface) GeometryN(int) Geometry     { return s }

func (s *TriangulatedSurface) Clone() Geometry {
	out := &TriangulatedSurface{triangles: make([]*Triangle, len(s.triangles))}
	for i, t := range s.triangles {
		out.triangles[i] = t.cloneTriangle()
	}
	return out
}

func (s *TriangulatedSurface) NumTriangles() int         { return len(s.triangles) }
func (s *TriangulatedSurface) TriangleN(i int) *Triangle { return s.triangles[i] }
func (s *TriangulatedSurface) Triangles() []*Triangle    { return append([]*Triangle(nil), s.triangles...) }

// AddTriangle appends a triangle.
func (s *TriangulatedSurface) AddTriangle(t *Triangle) {
	s.triangles = append(s.triangles, t)
	s.InvalidateEnvelope()
}

// AddTriangles appends the triangles of another TIN.
func (s *TriangulatedSurface) AddTriangles(o *TriangulatedSurface) {
	for _, t := range o.triangles {
		s.triangles = append(s.triangles, t.cloneTriangle())
	}
	s.InvalidateEnvelope()
}

// Reverse flips the orientation of every triangle.
func (s *TriangulatedSurface) Reverse() {
	for _, t := range s.triangles {
		t.Reverse()
	}
}

// ToPolyhedralSurface converts every triangle into a polygon facet.
func (s *TriangulatedSurface) ToPolyhedralSurface() *PolyhedralSurface {
	out := &PolyhedralSurface{polygons: make([]*Polygon, len(s.triangles))}
	for i, t := range s.triangles {
		out.polygons[i] = t.ToPolygon()
	}
	return out
}

// Solid is a volume bounded by shells: shell 0 is the exterior, the others
// are cavities.
type Solid struct {
	base
	shells []*PolyhedralSurface
}

// NewSolid builds a solid from its exterior shell and cavities.
func NewSolid(exterior *PolyhedralSurface, cavities ...*PolyhedralSurface) *Solid {
	if exterior == nil {
		return &Solid{}
	}
	s := &Solid{shells: []*PolyhedralSurface{exterior}}
	s.shells = append(s.shells, cavities...)
	return s
}

func (*Solid) GeometryType() GeometryType { return TypeSolid }
func (*Solid) GeometryTypeName() string   { return TypeSolid.String() }
func (*Solid) Dimension() int             { return 3 }

func (s *Solid) CoordinateDimension() int {
	if s.IsEmpty() {
		return 0
	}
	return s.shells[0].CoordinateDimension()
}

func (s *Solid) IsEmpty() bool              { return len(s.shells) == 0 || s.shells[0].IsEmpty() }
func (s *Solid) Is3D() bool                 { return !s.IsEmpty() && s.shells[0].Is3D() }
func (s *Solid) Accept(v Visitor)           { v.VisitSolid(s) }
func (s *Solid) AcceptConst(v ConstVisitor) { v.VisitSolid(*s) }
func (s *Solid) Envelope() Envelope         { return s.envelope(s) }
func (s *Solid) Boundary() Geometry         { return boundaryOf(s) }
func (s *Solid) NumGeometries() int         { return 1 }
func (s *Solid) GeometryN(int) Geometry     { return s }

func (s *Solid) Clone() Geometry { return s.cloneSolid() }

func (s *Solid) cloneSolid() *Solid {
	out := &Solid{shells: make([]*PolyhedralSurface, len(s.shells))}
	for i, sh := range s.shells {
		out.shells[i] = sh.cloneSurface()
	}
	return out
}

func (s *Solid) NumShells() int                          { return len(s.shells) }
func (s *Solid) ShellN(i int) *PolyhedralSurface         { return s.shells[i] }
func (s *Solid) ExteriorShell() *PolyhedralSurface       { return s.shells[0] }
func (s *Solid) NumInteriorShells() int                  { return max(0, len(s.shells)-1) }
func (s *Solid) InteriorShellN(i int) *PolyhedralSurface { return s.shells[i+1] }

// AddInteriorShell appends a cavity.
func (s *Solid) AddInteriorShell(sh *PolyhedralSurface) {
	s.shells = append(s.shells, sh)
	s.InvalidateEnvelope()
}
