package geom

// Equal reports structural equality: same variants, same member counts and
// equal coordinates in the same order.
func Equal(a, b Geometry) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.GeometryType() != b.GeometryType() {
		return false
	}
	if a.IsEmpty() || b.IsEmpty() {
		return a.IsEmpty() && b.IsEmpty()
	}
	switch x := a.(type) {
	case *Point:
		return x.c.Equal(b.(*Point).c)
	case *LineString:
		return equalLineStrings(x, b.(*LineString))
	case *Triangle:
		y := b.(*Triangle)
		for i := range x.v {
			if !x.v[i].Equal(y.v[i]) {
				return false
			}
		}
		return true
	case *Polygon:
		return equalPolygons(x, b.(*Polygon))
	case *PolyhedralSurface:
		y := b.(*PolyhedralSurface)
		if len(x.polygons) != len(y.polygons) {
			return false
		}
		for i := range x.polygons {
			if !equalPolygons(x.polygons[i], y.polygons[i]) {
				return false
			}
		}
		return true
	case *TriangulatedSurface:
		y := b.(*TriangulatedSurface)
		if len(x.triangles) != len(y.triangles) {
			return false
		}
		for i := range x.triangles {
			if !Equal(x.triangles[i], y.triangles[i]) {
				return false
			}
		}
		return true
	case *Solid:
		y := b.(*Solid)
		if len(x.shells) != len(y.shells) {
			return false
		}
		for i := range x.shells {
			if !Equal(x.shells[i], y.shells[i]) {
				return false
			}
		}
		return true
	}
	// Collections.
	if a.NumGeometries() != b.NumGeometries() {
		return false
	}
	for i := 0; i < a.NumGeometries(); i++ {
		if !Equal(a.GeometryN(i), b.GeometryN(i)) {
			return false
		}
	}
	return true
}

func equalLineStrings(a, b *LineString) bool {
	if len(a.points) != len(b.points) {
		return false
	}
	for i := range a.points {
		if !a.points[i].Equal(b.points[i]) {
			return false
		}
	}
	return true
}

func equalPolygons(a, b *Polygon) bool {
	if len(a.rings) != len(b.rings) {
		return false
	}
	for i := range a.rings {
		if !equalLineStrings(a.rings[i], b.rings[i]) {
			return false
		}
	}
	return true
}
