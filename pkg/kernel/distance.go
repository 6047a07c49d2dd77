package kernel

// Squared distances between primitives. Every function returns the exact
// squared distance in the field T; callers take a single square root at the
// end of a computation.

func SquaredDistancePointPoint2[T Number[T]](p, q Point2[T]) T {
	d := p.Sub(q)
	return d.Dot(d)
}

func SquaredDistancePointPoint3[T Number[T]](p, q Point3[T]) T {
	d := p.Sub(q)
	return d.Dot(d)
}

func SquaredDistancePointSegment2[T Number[T]](p Point2[T], s Segment2[T]) T {
	if s.IsDegenerate() {
		return SquaredDistancePointPoint2(p, s.A)
	}
	d := s.B.Sub(s.A)
	t := Clamp01(p.Sub(s.A).Dot(d).Quo(d.Dot(d)))
	return SquaredDistancePointPoint2(p, s.A.Add(d.Scale(t)))
}

func SquaredDistancePointSegment3[T Number[T]](p Point3[T], s Segment3[T]) T {
	if s.IsDegenerate() {
		return SquaredDistancePointPoint3(p, s.A)
	}
	d := s.B.Sub(s.A)
	t := Clamp01(p.Sub(s.A).Dot(d).Quo(d.Dot(d)))
	return SquaredDistancePointPoint3(p, s.A.Add(d.Scale(t)))
}

// SquaredDistanceSegmentSegment2 is zero for intersecting segments and
// otherwise attained at an endpoint.
func SquaredDistanceSegmentSegment2[T Number[T]](s, t Segment2[T]) T {
	if SegmentsIntersect2(s, t) {
		return Zero[T]()
	}
	d := SquaredDistancePointSegment2(s.A, t)
	d = Min(d, SquaredDistancePointSegment2(s.B, t))
	d = Min(d, SquaredDistancePointSegment2(t.A, s))
	return Min(d, SquaredDistancePointSegment2(t.B, s))
}

func SquaredDistancePointTriangle2[T Number[T]](p Point2[T], t Triangle2[T]) T {
	if TriangleSide2(p, t) != OnUnboundedSide {
		return Zero[T]()
	}
	e := t.Edges()
	d := SquaredDistancePointSegment2(p, e[0])
	d = Min(d, SquaredDistancePointSegment2(p, e[1]))
	return Min(d, SquaredDistancePointSegment2(p, e[2]))
}

func SquaredDistanceSegmentTriangle2[T Number[T]](s Segment2[T], t Triangle2[T]) T {
	if SegmentTriangleIntersect2(s, t) {
		return Zero[T]()
	}
	e := t.Edges()
	d := SquaredDistanceSegmentSegment2(s, e[0])
	d = Min(d, SquaredDistanceSegmentSegment2(s, e[1]))
	return Min(d, SquaredDistanceSegmentSegment2(s, e[2]))
}

func SquaredDistanceTriangleTriangle2[T Number[T]](a, b Triangle2[T]) T {
	if TrianglesIntersect2(a, b) {
		return Zero[T]()
	}
	var d T
	first := true
	for _, e := range a.Edges() {
		for _, f := range b.Edges() {
			v := SquaredDistanceSegmentSegment2(e, f)
			if first || v.Cmp(d) < 0 {
				d, first = v, false
			}
		}
	}
	return d
}

// SquaredDistanceSegmentSegment3 computes the closest points of the two
// segments by clamped parametric minimization.
func SquaredDistanceSegmentSegment3[T Number[T]](s, t Segment3[T]) T {
	d1 := s.B.Sub(s.A)
	d2 := t.B.Sub(t.A)
	r := s.A.Sub(t.A)
	a := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(r)
	zero := Zero[T]()
	var sc, tc T
	switch {
	case a.Sign() == 0 && e.Sign() == 0:
		return r.Dot(r)
	case a.Sign() == 0:
		sc = zero
		tc = Clamp01(f.Quo(e))
	default:
		c := d1.Dot(r)
		if e.Sign() == 0 {
			tc = zero
			sc = Clamp01(c.Neg().Quo(a))
			break
		}
		b := d1.Dot(d2)
		denom := a.Mul(e).Sub(b.Mul(b))
		if denom.Sign() != 0 {
			sc = Clamp01(b.Mul(f).Sub(c.Mul(e)).Quo(denom))
		} else {
			sc = zero
		}
		tc = b.Mul(sc).Add(f).Quo(e)
		if tc.Sign() < 0 {
			tc = zero
			sc = Clamp01(c.Neg().Quo(a))
		} else if tc.Cmp(FromInt[T](1)) > 0 {
			tc = FromInt[T](1)
			sc = Clamp01(b.Sub(c).Quo(a))
		}
	}
	c1 := s.A.Add(d1.Scale(sc))
	c2 := t.A.Add(d2.Scale(tc))
	return SquaredDistancePointPoint3(c1, c2)
}

// SquaredDistancePointTriangle3 projects p on the triangle plane; when the
// projection falls inside the triangle the distance is the distance to the
// plane, otherwise the distance to the closest edge.
func SquaredDistancePointTriangle3[T Number[T]](p Point3[T], t Triangle3[T]) T {
	e := t.Edges()
	edges := func() T {
		d := SquaredDistancePointSegment3(p, e[0])
		d = Min(d, SquaredDistancePointSegment3(p, e[1]))
		return Min(d, SquaredDistancePointSegment3(p, e[2]))
	}
	n := t.Normal()
	if n.IsZero() {
		return edges()
	}
	nn := n.Dot(n)
	h := n.Dot(p.Sub(t.A))
	proj := p.Sub(n.Scale(h.Quo(nn)))
	axis := DominantAxis(n)
	if TriangleSide2(Project(proj, axis), t.project2(axis)) != OnUnboundedSide {
		return h.Mul(h).Quo(nn)
	}
	return edges()
}

// SquaredDistanceSegmentTriangle3 is zero when the segment meets the
// triangle; otherwise the minimum over endpoint-to-triangle and
// segment-to-edge distances.
func SquaredDistanceSegmentTriangle3[T Number[T]](s Segment3[T], t Triangle3[T]) T {
	if SegmentTriangleIntersect3(s, t) {
		return Zero[T]()
	}
	d := SquaredDistancePointTriangle3(s.A, t)
	d = Min(d, SquaredDistancePointTriangle3(s.B, t))
	for _, e := range t.Edges() {
		d = Min(d, SquaredDistanceSegmentSegment3(s, e))
	}
	return d
}

func SquaredDistanceTriangleTriangle3[T Number[T]](a, b Triangle3[T]) T {
	if TrianglesIntersect3(a, b) {
		return Zero[T]()
	}
	var d T
	first := true
	keep := func(v T) {
		if first || v.Cmp(d) < 0 {
			d, first = v, false
		}
	}
	for _, p := range a.Vertices() {
		keep(SquaredDistancePointTriangle3(p, b))
	}
	for _, p := range b.Vertices() {
		keep(SquaredDistancePointTriangle3(p, a))
	}
	for _, e := range a.Edges() {
		for _, f := range b.Edges() {
			keep(SquaredDistanceSegmentSegment3(e, f))
		}
	}
	return d
}
