package kernel

import (
	"math"
	"testing"
)

func tri2(ax, ay, bx, by, cx, cy float64) Triangle2[Exact] {
	return Triangle2[Exact]{P2[Exact](ax, ay), P2[Exact](bx, by), P2[Exact](cx, cy)}
}

func seg2(ax, ay, bx, by float64) Segment2[Exact] {
	return Segment2[Exact]{P2[Exact](ax, ay), P2[Exact](bx, by)}
}

func tri3(a, b, c [3]float64) Triangle3[Exact] {
	return Triangle3[Exact]{P3[Exact](a[0], a[1], a[2]), P3[Exact](b[0], b[1], b[2]), P3[Exact](c[0], c[1], c[2])}
}

func seg3(a, b [3]float64) Segment3[Exact] {
	return Segment3[Exact]{P3[Exact](a[0], a[1], a[2]), P3[Exact](b[0], b[1], b[2])}
}

func TestOrient2(t *testing.T) {
	a, b := P2[Exact](0, 0), P2[Exact](1, 0)
	if Orient2(a, b, P2[Exact](0, 1)) != 1 {
		t.Error("left turn not detected")
	}
	if Orient2(a, b, P2[Exact](0, -1)) != -1 {
		t.Error("right turn not detected")
	}
	if Orient2(a, b, P2[Exact](2, 0)) != 0 {
		t.Error("collinear points not detected")
	}
}

func TestTriangleSide2(t *testing.T) {
	tr := tri2(0, 0, 1, 0, 0, 1)
	tests := []struct {
		name string
		p    Point2[Exact]
		want Side
	}{
		{"inside", P2[Exact](0.1, 0.1), OnBoundedSide},
		{"vertex", P2[Exact](0, 0), OnBoundary},
		{"edge", P2[Exact](0.5, 0.5), OnBoundary},
		{"outside", P2[Exact](1, 1), OnUnboundedSide},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TriangleSide2(tt.p, tr); got != tt.want {
				t.Errorf("TriangleSide2 = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegmentSegmentIntersection2(t *testing.T) {
	tests := []struct {
		name string
		s, u Segment2[Exact]
		kind ObjectKind
	}{
		{"crossing", seg2(-1, 0, 1, 0), seg2(0, -1, 0, 1), ObjectPoint},
		{"overlap", seg2(0, 0, 1, 0), seg2(0.5, 0, 2, 0), ObjectSegment},
		{"touch end", seg2(0, 0, 1, 0), seg2(1, 0, 2, 0), ObjectPoint},
		{"disjoint collinear", seg2(0, 0, 1, 0), seg2(2, 0, 3, 0), ObjectNone},
		{"parallel", seg2(0, 0, 1, 0), seg2(0, 1, 1, 1), ObjectNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentSegmentIntersection2(tt.s, tt.u); got.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", got.Kind, tt.kind)
			}
		})
	}
}

func TestTriangleTriangleIntersection2(t *testing.T) {
	a := tri2(0, 0, 2, 0, 0, 2)
	if got := TriangleTriangleIntersection2(a, a); got.Kind != ObjectTriangle {
		t.Errorf("identical triangles: kind = %v, want triangle", got.Kind)
	}
	b := tri2(1, 0, 3, 0, 1, 2)
	got := TriangleTriangleIntersection2(a, b)
	if got.Kind != ObjectTriangle {
		t.Fatalf("overlapping triangles: kind = %v, want triangle", got.Kind)
	}
	c := tri2(2, 0, 3, 0, 3, 1)
	if got := TriangleTriangleIntersection2(a, c); got.Kind != ObjectPoint {
		t.Errorf("vertex contact: kind = %v, want point", got.Kind)
	}
}

func TestSplitSegment2(t *testing.T) {
	s := seg2(0, 0, 1, 0)
	pieces := SplitSegment2(s, []Point2[Exact]{P2[Exact](0.7, 0), P2[Exact](0.5, 0), P2[Exact](0.5, 1)})
	if len(pieces) != 3 {
		t.Fatalf("got %d pieces, want 3", len(pieces))
	}
	if !pieces[1].A.Equal(P2[Exact](0.5, 0)) || !pieces[1].B.Equal(P2[Exact](0.7, 0)) {
		t.Errorf("middle piece = %v", pieces[1])
	}
}

func TestIntersect3(t *testing.T) {
	tr := tri3([3]float64{0, 0, 0}, [3]float64{1, 0, 0}, [3]float64{0, 1, 0})
	tests := []struct {
		name string
		s    Segment3[Exact]
		want bool
	}{
		{"piercing", seg3([3]float64{0.2, 0.2, -1}, [3]float64{0.2, 0.2, 1}), true},
		{"above", seg3([3]float64{0.2, 0.2, 1}, [3]float64{0.2, 0.2, 2}), false},
		{"coplanar crossing", seg3([3]float64{-1, 0.1, 0}, [3]float64{2, 0.1, 0}), true},
		{"touching vertex", seg3([3]float64{0, 0, 0}, [3]float64{0, 0, 1}), true},
		{"missing", seg3([3]float64{2, 2, -1}, [3]float64{2, 2, 1}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentTriangleIntersect3(tt.s, tr); got != tt.want {
				t.Errorf("SegmentTriangleIntersect3 = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTriangleTriangleIntersection3(t *testing.T) {
	a := tri3([3]float64{0, 0, 0}, [3]float64{2, 0, 0}, [3]float64{0, 2, 0})
	b := tri3([3]float64{0.5, 0.5, -1}, [3]float64{0.5, 0.5, 1}, [3]float64{3, 0.5, 0})
	got := TriangleTriangleIntersection3(a, b)
	if got.Kind != ObjectSegment {
		t.Fatalf("kind = %v, want segment", got.Kind)
	}
	if !got.Points[0].Equal(P3[Exact](0.5, 0.5, 0)) {
		t.Errorf("segment start = %v", got.Points[0].Float64())
	}
	coplanar := tri3([3]float64{1, 0, 0}, [3]float64{3, 0, 0}, [3]float64{1, 2, 0})
	if got := TriangleTriangleIntersection3(a, coplanar); got.Kind != ObjectTriangle {
		t.Errorf("coplanar kind = %v, want triangle", got.Kind)
	}
}

func TestSquaredDistances(t *testing.T) {
	if d := SquaredDistancePointSegment2(P2[Exact](2, 0), seg2(0, 0, 1, 0)); d.Float64() != 1 {
		t.Errorf("point-segment = %v, want 1", d.Float64())
	}
	tr := tri3([3]float64{0, 0, 0}, [3]float64{1, 0, 0}, [3]float64{0, 1, 0})
	if d := SquaredDistancePointTriangle3(P3[Exact](0.2, 0.2, 3), tr); d.Float64() != 9 {
		t.Errorf("point-triangle above = %v, want 9", d.Float64())
	}
	if d := SquaredDistancePointTriangle3(P3[Exact](-1, 0, 0), tr); d.Float64() != 1 {
		t.Errorf("point-triangle beside = %v, want 1", d.Float64())
	}
	s := seg3([3]float64{0, 0, 1}, [3]float64{1, 0, 1})
	u := seg3([3]float64{0, 1, 0}, [3]float64{0, -1, 0})
	if d := SquaredDistanceSegmentSegment3(s, u); d.Float64() != 1 {
		t.Errorf("skew segments = %v, want 1", d.Float64())
	}
	above := seg3([3]float64{0.1, 0.1, 2}, [3]float64{0.1, 0.1, 5})
	if d := Sqrt(SquaredDistanceSegmentTriangle3(above, tr)); math.Abs(d-2) > 0 {
		t.Errorf("segment-triangle = %v, want 2", d)
	}
}

func TestInexactMatchesExact(t *testing.T) {
	s := Segment2[Inexact]{P2[Inexact](0, 0), P2[Inexact](1, 0)}
	if d := SquaredDistancePointSegment2(P2[Inexact](0.5, 2), s); d.Float64() != 4 {
		t.Errorf("inexact point-segment = %v, want 4", d.Float64())
	}
}

func TestInCircle(t *testing.T) {
	a, b, c := P2[Exact](0, 0), P2[Exact](1, 0), P2[Exact](0, 1)
	if InCircle(a, b, c, P2[Exact](0.5, 0.5)) != 1 {
		t.Error("centre point not inside circumcircle")
	}
	if InCircle(a, b, c, P2[Exact](1, 1)) != 0 {
		t.Error("cocircular point not on circumcircle")
	}
	if InCircle(a, b, c, P2[Exact](2, 2)) != -1 {
		t.Error("far point not outside circumcircle")
	}
}
