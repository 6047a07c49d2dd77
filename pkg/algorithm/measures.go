package algorithm

import (
	"github.com/chazu/sfgeom/pkg/geom"
	"github.com/chazu/sfgeom/pkg/kernel"
)

// Area returns the area of the surface parts of g projected on the XY
// plane. Points, lines and volumes contribute nothing.
func Area(g geom.Geometry) float64 {
	sum := kernel.Zero[exact]()
	for _, leaf := range geom.Leaves(g) {
		if leaf.IsEmpty() {
			continue
		}
		switch x := leaf.(type) {
		case *geom.Polygon:
			sum = sum.Add(polygonArea2(x))
		case *geom.Triangle:
			sum = sum.Add(kernel.Abs(signedArea2(ring2(x.ExteriorRing()))))
		case *geom.TriangulatedSurface:
			for _, t := range x.Triangles() {
				sum = sum.Add(kernel.Abs(signedArea2(ring2(t.ExteriorRing()))))
			}
		case *geom.PolyhedralSurface:
			for _, p := range x.Polygons() {
				sum = sum.Add(polygonArea2(p))
			}
		}
	}
	return sum.Float64() / 2
}

// polygonArea2 is twice the XY area of p.
func polygonArea2(p *geom.Polygon) exact {
	if p.IsEmpty() {
		return kernel.Zero[exact]()
	}
	a := kernel.Abs(signedArea2(ring2(p.ExteriorRing())))
	for i := 0; i < p.NumInteriorRings(); i++ {
		a = a.Sub(kernel.Abs(signedArea2(ring2(p.InteriorRingN(i)))))
	}
	return a
}

// Area3D returns the area of the surface parts of g in space. The area of
// a solid is the area of its shells.
func Area3D(g geom.Geometry) float64 {
	sum := 0.0
	for _, leaf := range geom.Leaves(g) {
		if leaf.IsEmpty() {
			continue
		}
		switch x := leaf.(type) {
		case *geom.Polygon:
			sum += polygonArea3(x)
		case *geom.Triangle:
			sum += polygonArea3(x.ToPolygon())
		case *geom.TriangulatedSurface:
			for _, t := range x.Triangles() {
				sum += polygonArea3(t.ToPolygon())
			}
		case *geom.PolyhedralSurface:
			for _, p := range x.Polygons() {
				sum += polygonArea3(p)
			}
		case *geom.Solid:
			for i := 0; i < x.NumShells(); i++ {
				for _, p := range x.ShellN(i).Polygons() {
					sum += polygonArea3(p)
				}
			}
		}
	}
	return sum
}

func polygonArea3(p *geom.Polygon) float64 {
	if p.IsEmpty() {
		return 0
	}
	ringArea := func(l *geom.LineString) float64 {
		n := newell(ring3(l))
		return kernel.Sqrt(n.Dot(n)) / 2
	}
	a := ringArea(p.ExteriorRing())
	for i := 0; i < p.NumInteriorRings(); i++ {
		a -= ringArea(p.InteriorRingN(i))
	}
	return a
}

// Length returns the XY length of the linear parts of g.
func Length(g geom.Geometry) float64 {
	return length(g, func(a, b geom.Coordinate) float64 {
		return kernel.Sqrt(kernel.SquaredDistancePointPoint2(geom.ToPoint2[exact](a), geom.ToPoint2[exact](b)))
	})
}

// Length3D returns the length in space of the linear parts of g.
func Length3D(g geom.Geometry) float64 {
	return length(g, func(a, b geom.Coordinate) float64 {
		return kernel.Sqrt(kernel.SquaredDistancePointPoint3(geom.ToPoint3[exact](a), geom.ToPoint3[exact](b)))
	})
}

func length(g geom.Geometry, d func(a, b geom.Coordinate) float64) float64 {
	sum := 0.0
	for _, leaf := range geom.Leaves(g) {
		l, ok := leaf.(*geom.LineString)
		if !ok {
			continue
		}
		for i := 0; i+1 < l.NumPoints(); i++ {
			sum += d(l.PointN(i), l.PointN(i+1))
		}
	}
	return sum
}

// Volume returns the volume of the solids in g: the exterior shell volume
// minus the cavity volumes. Other kinds contribute nothing.
func Volume(g geom.Geometry) float64 {
	sum := kernel.Zero[exact]()
	for _, leaf := range geom.Leaves(g) {
		s, ok := leaf.(*geom.Solid)
		if !ok || s.IsEmpty() {
			continue
		}
		sum = sum.Add(kernel.Abs(shellVolume6(s.ExteriorShell())))
		for i := 0; i < s.NumInteriorShells(); i++ {
			sum = sum.Sub(kernel.Abs(shellVolume6(s.InteriorShellN(i))))
		}
	}
	return sum.Float64() / 6
}

// shellVolume6 is six times the signed volume enclosed by a shell, summed
// over the tetrahedra spanned by the origin and a fan of every ring.
func shellVolume6(s *geom.PolyhedralSurface) exact {
	sum := kernel.Zero[exact]()
	for _, p := range s.Polygons() {
		for _, l := range p.Rings() {
			sum = sum.Add(ringVolume6(ring3(l)))
		}
	}
	return sum
}

func ringVolume6(r []pt3) exact {
	sum := kernel.Zero[exact]()
	for i := 1; i+1 < len(r); i++ {
		sum = sum.Add(r[0].Dot(r[i].Cross(r[i+1])))
	}
	return sum
}
