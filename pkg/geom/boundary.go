package geom

// boundaryVisitor computes the topological boundary of the visited variant.
type boundaryVisitor struct {
	result Geometry
}

var _ ConstVisitor = (*boundaryVisitor)(nil)

func boundaryOf(g Geometry) Geometry {
	v := &boundaryVisitor{}
	g.AcceptConst(v)
	if v.result == nil {
		return NewGeometryCollection()
	}
	return v.result
}

func (v *boundaryVisitor) VisitPoint(Point) {}

func (v *boundaryVisitor) VisitLineString(l LineString) {
	if l.IsEmpty() || l.IsClosed() {
		return
	}
	v.result = NewMultiPoint(NewPoint(l.StartPoint()), NewPoint(l.EndPoint()))
}

func (v *boundaryVisitor) VisitPolygon(p Polygon) {
	if p.IsEmpty() {
		return
	}
	if len(p.rings) == 1 {
		v.result = p.rings[0].cloneLineString()
		return
	}
	ml := NewMultiLineString()
	for _, r := range p.rings {
		ml.Add(r.cloneLineString())
	}
	v.result = ml
}

func (v *boundaryVisitor) VisitTriangle(t Triangle) {
	if !t.empty {
		v.result = t.ExteriorRing()
	}
}

func (v *boundaryVisitor) VisitSolid(s Solid) {
	if s.IsEmpty() {
		return
	}
	gc := NewGeometryCollection()
	for _, sh := range s.shells {
		gc.Add(sh.cloneSurface())
	}
	v.result = gc
}

func (v *boundaryVisitor) VisitMultiPoint(MultiPoint) {}

// VisitMultiLineString keeps the endpoints shared by an odd number of
// members (mod 2 rule).
func (v *boundaryVisitor) VisitMultiLineString(m MultiLineString) {
	count := map[string]int{}
	var order []Coordinate
	for _, l := range m.members {
		if l.IsEmpty() || l.IsClosed() {
			continue
		}
		for _, c := range []Coordinate{l.StartPoint(), l.EndPoint()} {
			k := c.String()
			if count[k] == 0 {
				order = append(order, c)
			}
			count[k]++
		}
	}
	mp := NewMultiPoint()
	for _, c := range order {
		if count[c.String()]%2 == 1 {
			mp.Add(NewPoint(c))
		}
	}
	if !mp.IsEmpty() {
		v.result = mp
	}
}

func (v *boundaryVisitor) VisitMultiPolygon(m MultiPolygon) {
	ml := NewMultiLineString()
	for _, p := range m.members {
		for _, r := range p.rings {
			ml.Add(r.cloneLineString())
		}
	}
	if !ml.IsEmpty() {
		v.result = ml
	}
}

func (v *boundaryVisitor) VisitMultiSolid(m MultiSolid) {
	gc := NewGeometryCollection()
	for _, s := range m.members {
		for _, sh := range s.shells {
			gc.Add(sh.cloneSurface())
		}
	}
	if !gc.IsEmpty() {
		v.result = gc
	}
}

func (v *boundaryVisitor) VisitGeometryCollection(c GeometryCollection) {
	gc := NewGeometryCollection()
	for _, g := range c.members {
		if b := boundaryOf(g); !b.IsEmpty() {
			gc.Add(b)
		}
	}
	if !gc.IsEmpty() {
		v.result = gc
	}
}

func (v *boundaryVisitor) VisitPolyhedralSurface(s PolyhedralSurface) {
	var rings []*LineString
	for _, p := range s.polygons {
		rings = append(rings, p.rings...)
	}
	v.freeEdges(rings)
}

func (v *boundaryVisitor) VisitTriangulatedSurface(s TriangulatedSurface) {
	rings := make([]*LineString, 0, len(s.triangles))
	for _, t := range s.triangles {
		rings = append(rings, t.ExteriorRing())
	}
	v.freeEdges(rings)
}

// freeEdges collects the ring edges used by exactly one facet, regardless
// of direction.
func (v *boundaryVisitor) freeEdges(rings []*LineString) {
	type edge struct{ a, b Coordinate }
	count := map[[2]string]int{}
	var order []edge
	for _, r := range rings {
		for i := 0; i+1 < len(r.points); i++ {
			a, b := r.points[i], r.points[i+1]
			ka, kb := a.String(), b.String()
			if ka > kb {
				ka, kb = kb, ka
			}
			k := [2]string{ka, kb}
			if count[k] == 0 {
				order = append(order, edge{a, b})
			}
			count[k]++
		}
	}
	ml := NewMultiLineString()
	for _, e := range order {
		ka, kb := e.a.String(), e.b.String()
		if ka > kb {
			ka, kb = kb, ka
		}
		if count[[2]string{ka, kb}] == 1 {
			ml.Add(NewLineString(e.a, e.b))
		}
	}
	if !ml.IsEmpty() {
		v.result = ml
	}
}
