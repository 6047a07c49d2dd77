package kernel

import "sort"

// ObjectKind tags the result of an intersection construction.
type ObjectKind int

const (
	ObjectNone ObjectKind = iota
	ObjectPoint
	ObjectSegment
	ObjectTriangle
	ObjectPolygon
	ObjectPoints
)

func (k ObjectKind) String() string {
	switch k {
	case ObjectPoint:
		return "point"
	case ObjectSegment:
		return "segment"
	case ObjectTriangle:
		return "triangle"
	case ObjectPolygon:
		return "polygon"
	case ObjectPoints:
		return "points"
	default:
		return "none"
	}
}

// Object is a typed intersection result. Points holds one point for
// ObjectPoint, two for ObjectSegment, three for ObjectTriangle, the
// counter-clockwise (2D) or boundary-ordered (3D) vertices for ObjectPolygon,
// and an unordered set for ObjectPoints.
type Object[P any] struct {
	Kind   ObjectKind
	Points []P
}

func (o Object[P]) IsEmpty() bool { return o.Kind == ObjectNone }

// classify2 turns a clipped vertex loop into the smallest object describing it.
func classify2[T Number[T]](pts []Point2[T]) Object[Point2[T]] {
	pts = dedupLoop2(pts)
	switch len(pts) {
	case 0:
		return Object[Point2[T]]{}
	case 1:
		return Object[Point2[T]]{Kind: ObjectPoint, Points: pts}
	}
	if allCollinear2(pts) {
		lo, hi := extremes2(pts)
		if lo.Equal(hi) {
			return Object[Point2[T]]{Kind: ObjectPoint, Points: []Point2[T]{lo}}
		}
		return Object[Point2[T]]{Kind: ObjectSegment, Points: []Point2[T]{lo, hi}}
	}
	pts = dropCollinear2(pts)
	if len(pts) == 3 {
		return Object[Point2[T]]{Kind: ObjectTriangle, Points: pts}
	}
	return Object[Point2[T]]{Kind: ObjectPolygon, Points: pts}
}

func dedupLoop2[T Number[T]](pts []Point2[T]) []Point2[T] {
	out := make([]Point2[T], 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1].Equal(p) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0].Equal(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

func dropCollinear2[T Number[T]](pts []Point2[T]) []Point2[T] {
	for changed := true; changed && len(pts) > 3; {
		changed = false
		n := len(pts)
		for i := 0; i < n; i++ {
			prev, next := pts[(i+n-1)%n], pts[(i+1)%n]
			if Orient2(prev, pts[i], next) == 0 {
				pts = append(pts[:i:i], pts[i+1:]...)
				changed = true
				break
			}
		}
	}
	return pts
}

func allCollinear2[T Number[T]](pts []Point2[T]) bool {
	for i := 2; i < len(pts); i++ {
		if Orient2(pts[0], pts[1], pts[i]) != 0 {
			return false
		}
	}
	return true
}

func extremes2[T Number[T]](pts []Point2[T]) (lo, hi Point2[T]) {
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

// lineIntersection2 returns the intersection of the supporting lines of the
// segment p-q and the line e0-e1, which must not be parallel.
func lineIntersection2[T Number[T]](p, q, e0, e1 Point2[T]) Point2[T] {
	d := q.Sub(p)
	e := e1.Sub(e0)
	t := e0.Sub(p).Cross(e).Quo(d.Cross(e))
	return p.Add(d.Scale(t))
}

// clipHalfPlane2 clips the closed polygon loop pts by the closed half plane
// to the left of e0-e1.
func clipHalfPlane2[T Number[T]](pts []Point2[T], e0, e1 Point2[T]) []Point2[T] {
	if len(pts) == 0 {
		return nil
	}
	out := make([]Point2[T], 0, len(pts)+2)
	n := len(pts)
	for i := 0; i < n; i++ {
		cur, next := pts[i], pts[(i+1)%n]
		sc, sn := Orient2(e0, e1, cur), Orient2(e0, e1, next)
		if sc >= 0 {
			out = append(out, cur)
		}
		if sc*sn < 0 {
			out = append(out, lineIntersection2(cur, next, e0, e1))
		}
	}
	return out
}

// clipConvex2 clips a convex loop by a counter-clockwise triangle.
func clipConvex2[T Number[T]](pts []Point2[T], t Triangle2[T]) []Point2[T] {
	for _, e := range t.Edges() {
		pts = clipHalfPlane2(pts, e.A, e.B)
		if len(pts) == 0 {
			return nil
		}
	}
	return pts
}

// SegmentSegmentIntersection2 constructs the intersection of two closed
// segments.
func SegmentSegmentIntersection2[T Number[T]](s, t Segment2[T]) Object[Point2[T]] {
	if !SegmentsIntersect2(s, t) {
		return Object[Point2[T]]{}
	}
	if s.IsDegenerate() {
		return Object[Point2[T]]{Kind: ObjectPoint, Points: []Point2[T]{s.A}}
	}
	if t.IsDegenerate() {
		return Object[Point2[T]]{Kind: ObjectPoint, Points: []Point2[T]{t.A}}
	}
	if s.B.Sub(s.A).Cross(t.B.Sub(t.A)).Sign() == 0 {
		// parallel and intersecting means collinear
		return collinearOverlap2(s, t)
	}
	p := lineIntersection2(s.A, s.B, t.A, t.B)
	return Object[Point2[T]]{Kind: ObjectPoint, Points: []Point2[T]{p}}
}

func collinearOverlap2[T Number[T]](s, t Segment2[T]) Object[Point2[T]] {
	slo, shi := extremes2([]Point2[T]{s.A, s.B})
	tlo, thi := extremes2([]Point2[T]{t.A, t.B})
	lo, hi := slo, shi
	if tlo.Compare(lo) > 0 {
		lo = tlo
	}
	if thi.Compare(hi) < 0 {
		hi = thi
	}
	switch c := lo.Compare(hi); {
	case c > 0:
		return Object[Point2[T]]{}
	case c == 0:
		return Object[Point2[T]]{Kind: ObjectPoint, Points: []Point2[T]{lo}}
	default:
		return Object[Point2[T]]{Kind: ObjectSegment, Points: []Point2[T]{lo, hi}}
	}
}

// SegmentTriangleIntersection2 constructs the intersection of a closed
// segment and a closed triangle.
func SegmentTriangleIntersection2[T Number[T]](s Segment2[T], t Triangle2[T]) Object[Point2[T]] {
	if t.IsDegenerate() {
		return segmentDegenerateTriangle2(s, t)
	}
	if !SegmentTriangleIntersect2(s, t) {
		return Object[Point2[T]]{}
	}
	return classify2(clipConvex2([]Point2[T]{s.A, s.B}, t.CCW()))
}

func segmentDegenerateTriangle2[T Number[T]](s Segment2[T], t Triangle2[T]) Object[Point2[T]] {
	v := t.Vertices()
	lo, hi := extremes2(v[:])
	return SegmentSegmentIntersection2(s, Segment2[T]{lo, hi})
}

// TriangleTriangleIntersection2 constructs the intersection of two closed
// triangles.
func TriangleTriangleIntersection2[T Number[T]](a, b Triangle2[T]) Object[Point2[T]] {
	if a.IsDegenerate() {
		v := a.Vertices()
		lo, hi := extremes2(v[:])
		return SegmentTriangleIntersection2(Segment2[T]{lo, hi}, b)
	}
	if b.IsDegenerate() {
		v := b.Vertices()
		lo, hi := extremes2(v[:])
		return SegmentTriangleIntersection2(Segment2[T]{lo, hi}, a)
	}
	if !TrianglesIntersect2(a, b) {
		return Object[Point2[T]]{}
	}
	ca := a.CCW()
	return classify2(clipConvex2([]Point2[T]{ca.A, ca.B, ca.C}, b.CCW()))
}

type cut2[T Number[T]] struct {
	t T
	p Point2[T]
}

// SplitSegment2 cuts s at every point of cuts lying strictly inside it and
// returns the pieces in order from s.A to s.B.
func SplitSegment2[T Number[T]](s Segment2[T], cuts []Point2[T]) []Segment2[T] {
	if s.IsDegenerate() {
		return []Segment2[T]{s}
	}
	d := s.B.Sub(s.A)
	dd := d.Dot(d)
	var inner []cut2[T]
	for _, c := range cuts {
		if c.Equal(s.A) || c.Equal(s.B) || !PointOnSegment2(c, s) {
			continue
		}
		inner = append(inner, cut2[T]{c.Sub(s.A).Dot(d).Quo(dd), c})
	}
	sort.Slice(inner, func(i, j int) bool { return inner[i].t.Cmp(inner[j].t) < 0 })
	pieces := make([]Segment2[T], 0, len(inner)+1)
	prev := s.A
	for _, c := range inner {
		if c.p.Equal(prev) {
			continue
		}
		pieces = append(pieces, Segment2[T]{prev, c.p})
		prev = c.p
	}
	return append(pieces, Segment2[T]{prev, s.B})
}
