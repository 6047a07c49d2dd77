package algorithm

import (
	"math"

	"github.com/chazu/sfgeom/pkg/geom"
	"github.com/chazu/sfgeom/pkg/kernel"
	"github.com/chazu/sfgeom/pkg/primitive"
)

// Distance is the minimum distance between a and b on the XY plane, +Inf
// when either is empty.
func Distance(a, b geom.Geometry) (float64, error) {
	if isEmpty(a) || isEmpty(b) {
		return math.Inf(1), nil
	}
	sa, err := primitive.Collect(a)
	if err != nil {
		return 0, err
	}
	sb, err := primitive.Collect(b)
	if err != nil {
		return 0, err
	}
	if intersectSets2(sa, sb) {
		return 0, nil
	}
	return kernel.Sqrt(minSquaredDistance(sa.All(), sb.All(), 2, squaredDistance2)), nil
}

// Distance3D is the minimum distance between a and b in space, +Inf when
// either is empty.
func Distance3D(a, b geom.Geometry) (float64, error) {
	if isEmpty(a) || isEmpty(b) {
		return math.Inf(1), nil
	}
	sa, err := collect3(a)
	if err != nil {
		return 0, err
	}
	sb, err := collect3(b)
	if err != nil {
		return 0, err
	}
	hit, err := intersectSets3[exact](sa, sb)
	if err != nil {
		return 0, err
	}
	if hit {
		return 0, nil
	}
	return kernel.Sqrt(minSquaredDistance(sa.All(), sb.All(), 3, squaredDistance3)), nil
}

// minSquaredDistance is the exact minimum of fn over every pair. Pairs
// whose boxes are further apart than the best distance so far are not
// evaluated.
func minSquaredDistance(as, bs []primitive.Handle, dims int, fn func(x, y primitive.Handle) exact) exact {
	tree := primitive.NewTree(bs)
	var best exact
	found := false
	for _, x := range as {
		candidates := bs
		if found {
			candidates = tree.Search(grow(x.Box, math.Sqrt(best.Float64())*(1+1e-9)+1e-12, dims))
		}
		for _, y := range candidates {
			d := fn(x, y)
			if !found || d.Cmp(best) < 0 {
				best, found = d, true
			}
		}
	}
	return best
}

// grow widens b by r on the first dims axes and without bound on the
// others.
func grow(b primitive.Box, r float64, dims int) primitive.Box {
	for i := 0; i < 3; i++ {
		if i < dims {
			b.Min[i] -= r
			b.Max[i] += r
		} else {
			b.Min[i], b.Max[i] = -1e300, 1e300
		}
	}
	return b
}

func squaredDistance2(x, y primitive.Handle) exact {
	x, y, _ = primitive.Ordered(x, y)
	switch x.Kind {
	case primitive.KindTriangle:
		t := primitive.Triangle2[exact](x)
		switch y.Kind {
		case primitive.KindTriangle:
			return kernel.SquaredDistanceTriangleTriangle2(t, primitive.Triangle2[exact](y))
		case primitive.KindSegment:
			return kernel.SquaredDistanceSegmentTriangle2(primitive.Segment2[exact](y), t)
		default:
			return kernel.SquaredDistancePointTriangle2(primitive.Point2[exact](y), t)
		}
	case primitive.KindSegment:
		s := primitive.Segment2[exact](x)
		if y.Kind == primitive.KindSegment {
			return kernel.SquaredDistanceSegmentSegment2(s, primitive.Segment2[exact](y))
		}
		return kernel.SquaredDistancePointSegment2(primitive.Point2[exact](y), s)
	default:
		return kernel.SquaredDistancePointPoint2(primitive.Point2[exact](x), primitive.Point2[exact](y))
	}
}

func squaredDistance3(x, y primitive.Handle) exact {
	x, y, _ = primitive.Ordered(x, y)
	switch x.Kind {
	case primitive.KindTriangle:
		t := primitive.Triangle3[exact](x)
		switch y.Kind {
		case primitive.KindTriangle:
			return kernel.SquaredDistanceTriangleTriangle3(t, primitive.Triangle3[exact](y))
		case primitive.KindSegment:
			return kernel.SquaredDistanceSegmentTriangle3(primitive.Segment3[exact](y), t)
		default:
			return kernel.SquaredDistancePointTriangle3(primitive.Point3[exact](y), t)
		}
	case primitive.KindSegment:
		s := primitive.Segment3[exact](x)
		if y.Kind == primitive.KindSegment {
			return kernel.SquaredDistanceSegmentSegment3(s, primitive.Segment3[exact](y))
		}
		return kernel.SquaredDistancePointSegment3(primitive.Point3[exact](y), s)
	default:
		return kernel.SquaredDistancePointPoint3(primitive.Point3[exact](x), primitive.Point3[exact](y))
	}
}
