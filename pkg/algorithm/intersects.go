package algorithm

import (
	"github.com/chazu/sfgeom/pkg/geom"
	"github.com/chazu/sfgeom/pkg/kernel"
	"github.com/chazu/sfgeom/pkg/primitive"
)

// Intersects reports whether a and b share a point of the XY plane.
// Boundaries count; points strictly inside a hole do not intersect the
// polygon.
func Intersects(a, b geom.Geometry) (bool, error) {
	if isEmpty(a) || isEmpty(b) {
		return false, nil
	}
	sa, err := primitive.Collect(a)
	if err != nil {
		return false, err
	}
	sb, err := primitive.Collect(b)
	if err != nil {
		return false, err
	}
	return intersectSets2(sa, sb), nil
}

func intersectSets2(sa, sb *primitive.Set) bool {
	if primitive.BoxIntersect(sa.All(), sb.All(), 2, handlesIntersect2) {
		return true
	}
	// Without boundary contact one operand can still lie inside the other.
	return insideRegion2(sa, sb) || insideRegion2(sb, sa)
}

// insideRegion2 tests one point of every source geometry of x against the
// areal parts of y.
func insideRegion2(x, y *primitive.Set) bool {
	if len(y.Polygons) == 0 {
		return false
	}
	region := toPolygons2(y.Polygons)
	for _, h := range representatives(x) {
		if locateRegion2(primitive.Point2[exact](h), region) != kernel.OnUnboundedSide {
			return true
		}
	}
	return false
}

// representatives returns the first handle of every source geometry.
func representatives(s *primitive.Set) []primitive.Handle {
	seen := map[geom.Geometry]bool{}
	var out []primitive.Handle
	for _, h := range s.All() {
		if !seen[h.Source] {
			seen[h.Source] = true
			out = append(out, h)
		}
	}
	return out
}

func handlesIntersect2(x, y primitive.Handle) bool {
	x, y, _ = primitive.Ordered(x, y)
	switch x.Kind {
	case primitive.KindTriangle:
		t := primitive.Triangle2[exact](x)
		switch y.Kind {
		case primitive.KindTriangle:
			return kernel.TrianglesIntersect2(t, primitive.Triangle2[exact](y))
		case primitive.KindSegment:
			return kernel.SegmentTriangleIntersect2(primitive.Segment2[exact](y), t)
		default:
			return kernel.TriangleSide2(primitive.Point2[exact](y), t) != kernel.OnUnboundedSide
		}
	case primitive.KindSegment:
		s := primitive.Segment2[exact](x)
		if y.Kind == primitive.KindSegment {
			return kernel.SegmentsIntersect2(s, primitive.Segment2[exact](y))
		}
		return kernel.PointOnSegment2(primitive.Point2[exact](y), s)
	default:
		return primitive.Point2[exact](x).Equal(primitive.Point2[exact](y))
	}
}

// Intersects3D reports whether a and b share a point in space. Decisions
// use double precision; see Intersects3DExact.
func Intersects3D(a, b geom.Geometry) (bool, error) {
	return intersects3D[kernel.Inexact](a, b)
}

// Intersects3DExact is Intersects3D on rational arithmetic.
func Intersects3DExact(a, b geom.Geometry) (bool, error) {
	return intersects3D[exact](a, b)
}

func intersects3D[T kernel.Number[T]](a, b geom.Geometry) (bool, error) {
	if isEmpty(a) || isEmpty(b) {
		return false, nil
	}
	sa, err := collect3(a)
	if err != nil {
		return false, err
	}
	sb, err := collect3(b)
	if err != nil {
		return false, err
	}
	return intersectSets3[T](sa, sb)
}

func collect3(g geom.Geometry) (*primitive.Set, error) {
	return primitive.Collect(g, primitive.WithSurfaces(TriangulatePolygon))
}

func intersectSets3[T kernel.Number[T]](sa, sb *primitive.Set) (bool, error) {
	if primitive.BoxIntersect(sa.All(), sb.All(), 3, handlesIntersect3[T]) {
		return true, nil
	}
	in, err := insideSolids[T](sa, sb)
	if err != nil || in {
		return in, err
	}
	return insideSolids[T](sb, sa)
}

// insideSolids reports whether a representative point of some part of x
// lies in a solid of y.
func insideSolids[T kernel.Number[T]](x, y *primitive.Set) (bool, error) {
	if len(y.Solids) == 0 {
		return false, nil
	}
	reps := representatives(x)
	for _, s := range y.Solids {
		sv, err := newSolidVolume(s)
		if err != nil {
			return false, err
		}
		for _, h := range reps {
			if locateSolid(primitive.Point3[T](h), sv) != kernel.OnUnboundedSide {
				return true, nil
			}
		}
	}
	return false, nil
}

func handlesIntersect3[T kernel.Number[T]](x, y primitive.Handle) bool {
	x, y, _ = primitive.Ordered(x, y)
	switch x.Kind {
	case primitive.KindTriangle:
		t := primitive.Triangle3[T](x)
		switch y.Kind {
		case primitive.KindTriangle:
			return kernel.TrianglesIntersect3(t, primitive.Triangle3[T](y))
		case primitive.KindSegment:
			return kernel.SegmentTriangleIntersect3(primitive.Segment3[T](y), t)
		default:
			return kernel.TriangleSide3(primitive.Point3[T](y), t) != kernel.OnUnboundedSide
		}
	case primitive.KindSegment:
		s := primitive.Segment3[T](x)
		if y.Kind == primitive.KindSegment {
			return kernel.SegmentsIntersect3(s, primitive.Segment3[T](y))
		}
		return kernel.PointOnSegment3(primitive.Point3[T](y), s)
	default:
		return primitive.Point3[T](x).Equal(primitive.Point3[T](y))
	}
}
