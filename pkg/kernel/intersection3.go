package kernel

import "sort"

func collinearOverlap3[T Number[T]](s, t Segment3[T]) Object[Point3[T]] {
	if !Collinear3(s.A, s.B, t.A) || !Collinear3(s.A, s.B, t.B) {
		return Object[Point3[T]]{}
	}
	slo, shi := extremes3([]Point3[T]{s.A, s.B})
	tlo, thi := extremes3([]Point3[T]{t.A, t.B})
	lo, hi := slo, shi
	if tlo.Compare(lo) > 0 {
		lo = tlo
	}
	if thi.Compare(hi) < 0 {
		hi = thi
	}
	switch c := lo.Compare(hi); {
	case c > 0:
		return Object[Point3[T]]{}
	case c == 0:
		return Object[Point3[T]]{Kind: ObjectPoint, Points: []Point3[T]{lo}}
	default:
		return Object[Point3[T]]{Kind: ObjectSegment, Points: []Point3[T]{lo, hi}}
	}
}

// lift3 maps a planar object back onto pl.
func lift3[T Number[T]](o Object[Point2[T]], pl Plane3[T], axis int) Object[Point3[T]] {
	out := Object[Point3[T]]{Kind: o.Kind, Points: make([]Point3[T], len(o.Points))}
	for i, p := range o.Points {
		out.Points[i] = pl.Lift(p, axis)
	}
	return out
}

// SegmentSegmentIntersection3 constructs the intersection of two closed
// segments in space.
func SegmentSegmentIntersection3[T Number[T]](s, t Segment3[T]) Object[Point3[T]] {
	if !SegmentsIntersect3(s, t) {
		return Object[Point3[T]]{}
	}
	if s.IsDegenerate() {
		return Object[Point3[T]]{Kind: ObjectPoint, Points: []Point3[T]{s.A}}
	}
	if t.IsDegenerate() {
		return Object[Point3[T]]{Kind: ObjectPoint, Points: []Point3[T]{t.A}}
	}
	d := s.B.Sub(s.A)
	n := d.Cross(t.B.Sub(t.A))
	if n.IsZero() {
		return collinearOverlap3(s, t)
	}
	axis := DominantAxis(n)
	pl := PlaneFromNormal(n, s.A)
	o := SegmentSegmentIntersection2(
		Segment2[T]{Project(s.A, axis), Project(s.B, axis)},
		Segment2[T]{Project(t.A, axis), Project(t.B, axis)},
	)
	return lift3(o, pl, axis)
}

// SegmentTriangleIntersection3 constructs the intersection of a closed
// segment and a closed triangle in space.
func SegmentTriangleIntersection3[T Number[T]](s Segment3[T], t Triangle3[T]) Object[Point3[T]] {
	if t.IsDegenerate() {
		return SegmentSegmentIntersection3(s, degenerateSegment3(t))
	}
	if !SegmentTriangleIntersect3(s, t) {
		return Object[Point3[T]]{}
	}
	if s.IsDegenerate() {
		return Object[Point3[T]]{Kind: ObjectPoint, Points: []Point3[T]{s.A}}
	}
	pl := t.Plane()
	o1, o2 := pl.Side(s.A), pl.Side(s.B)
	switch {
	case o1 == 0 && o2 == 0:
		axis := DominantAxis(pl.Normal())
		o := SegmentTriangleIntersection2(
			Segment2[T]{Project(s.A, axis), Project(s.B, axis)}, t.project2(axis))
		return lift3(o, pl, axis)
	case o1 == 0:
		return Object[Point3[T]]{Kind: ObjectPoint, Points: []Point3[T]{s.A}}
	case o2 == 0:
		return Object[Point3[T]]{Kind: ObjectPoint, Points: []Point3[T]{s.B}}
	}
	return Object[Point3[T]]{Kind: ObjectPoint, Points: []Point3[T]{linePlane3(s, pl)}}
}

// linePlane3 intersects the supporting line of s with pl; s must not be
// parallel to pl.
func linePlane3[T Number[T]](s Segment3[T], pl Plane3[T]) Point3[T] {
	n := pl.Normal()
	d := s.B.Sub(s.A)
	t := n.Dot(s.A).Add(pl.D).Neg().Quo(n.Dot(d))
	return s.A.Add(d.Scale(t))
}

// TriangleTriangleIntersection3 constructs the intersection of two closed
// triangles in space.
func TriangleTriangleIntersection3[T Number[T]](a, b Triangle3[T]) Object[Point3[T]] {
	if a.IsDegenerate() {
		return SegmentTriangleIntersection3(degenerateSegment3(a), b)
	}
	if b.IsDegenerate() {
		return SegmentTriangleIntersection3(degenerateSegment3(b), a)
	}
	if !TrianglesIntersect3(a, b) {
		return Object[Point3[T]]{}
	}
	pa := a.Plane()
	if pa.Side(b.A) == 0 && pa.Side(b.B) == 0 && pa.Side(b.C) == 0 {
		axis := DominantAxis(pa.Normal())
		o := TriangleTriangleIntersection2(a.project2(axis), b.project2(axis))
		return lift3(o, pa, axis)
	}
	var pts []Point3[T]
	collect := func(e Segment3[T], t Triangle3[T]) {
		pts = append(pts, SegmentTriangleIntersection3(e, t).Points...)
	}
	for _, e := range a.Edges() {
		collect(e, b)
	}
	for _, e := range b.Edges() {
		collect(e, a)
	}
	lo, hi := extremes3(pts)
	if lo.Equal(hi) {
		return Object[Point3[T]]{Kind: ObjectPoint, Points: []Point3[T]{lo}}
	}
	return Object[Point3[T]]{Kind: ObjectSegment, Points: []Point3[T]{lo, hi}}
}

type cut3[T Number[T]] struct {
	t T
	p Point3[T]
}

// SplitSegment3 cuts s at every point of cuts lying strictly inside it and
// returns the pieces in order from s.A to s.B.
func SplitSegment3[T Number[T]](s Segment3[T], cuts []Point3[T]) []Segment3[T] {
	if s.IsDegenerate() {
		return []Segment3[T]{s}
	}
	d := s.B.Sub(s.A)
	dd := d.Dot(d)
	var inner []cut3[T]
	for _, c := range cuts {
		if c.Equal(s.A) || c.Equal(s.B) || !PointOnSegment3(c, s) {
			continue
		}
		inner = append(inner, cut3[T]{c.Sub(s.A).Dot(d).Quo(dd), c})
	}
	sort.Slice(inner, func(i, j int) bool { return inner[i].t.Cmp(inner[j].t) < 0 })
	pieces := make([]Segment3[T], 0, len(inner)+1)
	prev := s.A
	for _, c := range inner {
		if c.p.Equal(prev) {
			continue
		}
		pieces = append(pieces, Segment3[T]{prev, c.p})
		prev = c.p
	}
	return append(pieces, Segment3[T]{prev, s.B})
}

// SplitConvex3 cuts a planar convex polygon by the plane through line (a, b)
// perpendicular to the polygon plane pl. It returns the pieces on each side;
// a polygon the line does not cross comes back unchanged as the only piece.
func SplitConvex3[T Number[T]](poly []Point3[T], pl Plane3[T], a, b Point3[T]) [][]Point3[T] {
	n := pl.Normal()
	cutter := PlaneFromNormal(b.Sub(a).Cross(n), a)
	if cutter.IsDegenerate() {
		return [][]Point3[T]{poly}
	}
	var pos, neg []Point3[T]
	np := len(poly)
	hasPos, hasNeg := false, false
	for i := 0; i < np; i++ {
		cur, next := poly[i], poly[(i+1)%np]
		sc, sn := cutter.Side(cur), cutter.Side(next)
		if sc >= 0 {
			pos = append(pos, cur)
		}
		if sc <= 0 {
			neg = append(neg, cur)
		}
		if sc > 0 {
			hasPos = true
		}
		if sc < 0 {
			hasNeg = true
		}
		if sc*sn < 0 {
			x := linePlane3(Segment3[T]{cur, next}, cutter)
			pos = append(pos, x)
			neg = append(neg, x)
		}
	}
	if !hasPos || !hasNeg {
		return [][]Point3[T]{poly}
	}
	return [][]Point3[T]{pos, neg}
}
