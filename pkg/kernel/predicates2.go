package kernel

// Side is the position of a point relative to a bounded region.
type Side int

const (
	OnUnboundedSide Side = iota
	OnBoundary
	OnBoundedSide
)

func (s Side) String() string {
	switch s {
	case OnBoundedSide:
		return "inside"
	case OnBoundary:
		return "boundary"
	default:
		return "outside"
	}
}

// Orient2 returns +1 when a, b, c turn left, -1 when they turn right and 0
// when they are collinear.
func Orient2[T Number[T]](a, b, c Point2[T]) int {
	return b.Sub(a).Cross(c.Sub(a)).Sign()
}

// InCircle returns +1 when d lies strictly inside the circle through the
// counter-clockwise triangle a, b, c, 0 on it and -1 outside.
func InCircle[T Number[T]](a, b, c, d Point2[T]) int {
	ad, bd, cd := a.Sub(d), b.Sub(d), c.Sub(d)
	al, bl, cl := ad.Dot(ad), bd.Dot(bd), cd.Dot(cd)
	det := ad.X.Mul(bd.Y.Mul(cl).Sub(bl.Mul(cd.Y))).
		Sub(ad.Y.Mul(bd.X.Mul(cl).Sub(bl.Mul(cd.X)))).
		Add(al.Mul(bd.X.Mul(cd.Y).Sub(bd.Y.Mul(cd.X))))
	return det.Sign()
}

// inBox2 reports whether p lies in the closed bounding box of a and b.
func inBox2[T Number[T]](p, a, b Point2[T]) bool {
	return p.X.Cmp(Min(a.X, b.X)) >= 0 && p.X.Cmp(Max(a.X, b.X)) <= 0 &&
		p.Y.Cmp(Min(a.Y, b.Y)) >= 0 && p.Y.Cmp(Max(a.Y, b.Y)) <= 0
}

// PointOnSegment2 reports whether p lies on the closed segment s.
func PointOnSegment2[T Number[T]](p Point2[T], s Segment2[T]) bool {
	if s.IsDegenerate() {
		return p.Equal(s.A)
	}
	return Orient2(s.A, s.B, p) == 0 && inBox2(p, s.A, s.B)
}

// TriangleSide2 classifies p against the closed triangle t. A degenerate
// triangle has no interior.
func TriangleSide2[T Number[T]](p Point2[T], t Triangle2[T]) Side {
	o := t.Orientation()
	if o == 0 {
		for _, e := range t.Edges() {
			if PointOnSegment2(p, e) {
				return OnBoundary
			}
		}
		return OnUnboundedSide
	}
	o1 := Orient2(t.A, t.B, p) * o
	o2 := Orient2(t.B, t.C, p) * o
	o3 := Orient2(t.C, t.A, p) * o
	if o1 < 0 || o2 < 0 || o3 < 0 {
		return OnUnboundedSide
	}
	if o1 == 0 || o2 == 0 || o3 == 0 {
		return OnBoundary
	}
	return OnBoundedSide
}

// SegmentsIntersect2 reports whether two closed segments share a point.
func SegmentsIntersect2[T Number[T]](s, t Segment2[T]) bool {
	if s.IsDegenerate() {
		return PointOnSegment2(s.A, t)
	}
	if t.IsDegenerate() {
		return PointOnSegment2(t.A, s)
	}
	d1 := Orient2(t.A, t.B, s.A)
	d2 := Orient2(t.A, t.B, s.B)
	d3 := Orient2(s.A, s.B, t.A)
	d4 := Orient2(s.A, s.B, t.B)
	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}
	return (d1 == 0 && inBox2(s.A, t.A, t.B)) ||
		(d2 == 0 && inBox2(s.B, t.A, t.B)) ||
		(d3 == 0 && inBox2(t.A, s.A, s.B)) ||
		(d4 == 0 && inBox2(t.B, s.A, s.B))
}

// SegmentTriangleIntersect2 reports whether a closed segment meets a closed
// triangle.
func SegmentTriangleIntersect2[T Number[T]](s Segment2[T], t Triangle2[T]) bool {
	if TriangleSide2(s.A, t) != OnUnboundedSide || TriangleSide2(s.B, t) != OnUnboundedSide {
		return true
	}
	for _, e := range t.Edges() {
		if SegmentsIntersect2(s, e) {
			return true
		}
	}
	return false
}

// TrianglesIntersect2 reports whether two closed triangles meet.
func TrianglesIntersect2[T Number[T]](a, b Triangle2[T]) bool {
	for _, p := range a.Vertices() {
		if TriangleSide2(p, b) != OnUnboundedSide {
			return true
		}
	}
	for _, p := range b.Vertices() {
		if TriangleSide2(p, a) != OnUnboundedSide {
			return true
		}
	}
	for _, e := range a.Edges() {
		for _, f := range b.Edges() {
			if SegmentsIntersect2(e, f) {
				return true
			}
		}
	}
	return false
}

// SegmentsCross2 reports a proper crossing: the segments meet in a single
// point interior to both.
func SegmentsCross2[T Number[T]](s, t Segment2[T]) bool {
	d1 := Orient2(t.A, t.B, s.A)
	d2 := Orient2(t.A, t.B, s.B)
	d3 := Orient2(s.A, s.B, t.A)
	d4 := Orient2(s.A, s.B, t.B)
	return d1*d2 < 0 && d3*d4 < 0
}
