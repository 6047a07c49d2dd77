package kernel

// Orient3 returns the sign of the determinant [b-a, c-a, d-a]: +1 when d
// lies on the positive side of the plane through a, b, c (the side the
// normal (b-a)x(c-a) points to), -1 on the other side, 0 when coplanar.
func Orient3[T Number[T]](a, b, c, d Point3[T]) int {
	return b.Sub(a).Cross(c.Sub(a)).Dot(d.Sub(a)).Sign()
}

// Collinear3 reports whether a, b, c lie on one line.
func Collinear3[T Number[T]](a, b, c Point3[T]) bool {
	return b.Sub(a).Cross(c.Sub(a)).IsZero()
}

func inBox3[T Number[T]](p, a, b Point3[T]) bool {
	return p.X.Cmp(Min(a.X, b.X)) >= 0 && p.X.Cmp(Max(a.X, b.X)) <= 0 &&
		p.Y.Cmp(Min(a.Y, b.Y)) >= 0 && p.Y.Cmp(Max(a.Y, b.Y)) <= 0 &&
		p.Z.Cmp(Min(a.Z, b.Z)) >= 0 && p.Z.Cmp(Max(a.Z, b.Z)) <= 0
}

// PointOnSegment3 reports whether p lies on the closed segment s.
func PointOnSegment3[T Number[T]](p Point3[T], s Segment3[T]) bool {
	if s.IsDegenerate() {
		return p.Equal(s.A)
	}
	return Collinear3(s.A, s.B, p) && inBox3(p, s.A, s.B)
}

// degenerateSegment3 returns the segment spanned by a flat triangle.
func degenerateSegment3[T Number[T]](t Triangle3[T]) Segment3[T] {
	v := t.Vertices()
	lo, hi := extremes3(v[:])
	return Segment3[T]{lo, hi}
}

func extremes3[T Number[T]](pts []Point3[T]) (lo, hi Point3[T]) {
	lo, hi = pts[0], pts[0]
	for _, p := range pts[1:] {
		if p.Compare(lo) < 0 {
			lo = p
		}
		if p.Compare(hi) > 0 {
			hi = p
		}
	}
	return lo, hi
}

// project2 maps a triangle and a point on its plane to the dominant axis
// plane of the triangle normal.
func (t Triangle3[T]) project2(axis int) Triangle2[T] {
	return Triangle2[T]{Project(t.A, axis), Project(t.B, axis), Project(t.C, axis)}
}

// TriangleSide3 classifies p against the closed triangle t. Points off the
// triangle's plane are outside.
func TriangleSide3[T Number[T]](p Point3[T], t Triangle3[T]) Side {
	n := t.Normal()
	if n.IsZero() {
		if PointOnSegment3(p, degenerateSegment3(t)) {
			return OnBoundary
		}
		return OnUnboundedSide
	}
	if Orient3(t.A, t.B, t.C, p) != 0 {
		return OnUnboundedSide
	}
	axis := DominantAxis(n)
	return TriangleSide2(Project(p, axis), t.project2(axis))
}

// SegmentsIntersect3 reports whether two closed segments share a point.
func SegmentsIntersect3[T Number[T]](s, t Segment3[T]) bool {
	if s.IsDegenerate() {
		return PointOnSegment3(s.A, t)
	}
	if t.IsDegenerate() {
		return PointOnSegment3(t.A, s)
	}
	if Orient3(s.A, s.B, t.A, t.B) != 0 {
		return false
	}
	axis, ok := commonAxis(s, t)
	if !ok {
		return collinearOverlap3(s, t).Kind != ObjectNone
	}
	return SegmentsIntersect2(
		Segment2[T]{Project(s.A, axis), Project(s.B, axis)},
		Segment2[T]{Project(t.A, axis), Project(t.B, axis)},
	)
}

// commonAxis returns a projection axis for two coplanar segments, or false
// when they are collinear and no plane is defined.
func commonAxis[T Number[T]](s, t Segment3[T]) (int, bool) {
	d := s.B.Sub(s.A)
	n := d.Cross(t.B.Sub(t.A))
	if n.IsZero() {
		n = d.Cross(t.A.Sub(s.A))
	}
	if n.IsZero() {
		return 0, false
	}
	return DominantAxis(n), true
}

// SegmentTriangleIntersect3 reports whether a closed segment meets a closed
// triangle.
func SegmentTriangleIntersect3[T Number[T]](s Segment3[T], t Triangle3[T]) bool {
	if t.IsDegenerate() {
		return SegmentsIntersect3(s, degenerateSegment3(t))
	}
	if s.IsDegenerate() {
		return TriangleSide3(s.A, t) != OnUnboundedSide
	}
	o1 := Orient3(t.A, t.B, t.C, s.A)
	o2 := Orient3(t.A, t.B, t.C, s.B)
	switch {
	case o1 == 0 && o2 == 0:
		axis := DominantAxis(t.Normal())
		return SegmentTriangleIntersect2(
			Segment2[T]{Project(s.A, axis), Project(s.B, axis)}, t.project2(axis))
	case o1 == 0:
		return TriangleSide3(s.A, t) != OnUnboundedSide
	case o2 == 0:
		return TriangleSide3(s.B, t) != OnUnboundedSide
	case o1 == o2:
		return false
	}
	e1 := Orient3(s.A, s.B, t.A, t.B)
	e2 := Orient3(s.A, s.B, t.B, t.C)
	e3 := Orient3(s.A, s.B, t.C, t.A)
	return (e1 >= 0 && e2 >= 0 && e3 >= 0) || (e1 <= 0 && e2 <= 0 && e3 <= 0)
}

// TrianglesIntersect3 reports whether two closed triangles meet. Two
// triangles meet exactly when an edge of one meets the other.
func TrianglesIntersect3[T Number[T]](a, b Triangle3[T]) bool {
	for _, e := range a.Edges() {
		if SegmentTriangleIntersect3(e, b) {
			return true
		}
	}
	for _, e := range b.Edges() {
		if SegmentTriangleIntersect3(e, a) {
			return true
		}
	}
	return false
}

// SegmentCrossesTriangle3 reports a transversal crossing: the segment passes
// through the open triangle from one strict side of its plane to the other.
func SegmentCrossesTriangle3[T Number[T]](s Segment3[T], t Triangle3[T]) bool {
	if t.IsDegenerate() {
		return false
	}
	o1 := Orient3(t.A, t.B, t.C, s.A)
	o2 := Orient3(t.A, t.B, t.C, s.B)
	if o1*o2 >= 0 {
		return false
	}
	e1 := Orient3(s.A, s.B, t.A, t.B)
	e2 := Orient3(s.A, s.B, t.B, t.C)
	e3 := Orient3(s.A, s.B, t.C, t.A)
	return (e1 > 0 && e2 > 0 && e3 > 0) || (e1 < 0 && e2 < 0 && e3 < 0)
}
