package algorithm

import (
	"github.com/chazu/sfgeom/pkg/kernel"
)

// chainSegments returns the segments of a polyline.
func chainSegments(c []pt2) []seg2 {
	out := make([]seg2, 0, len(c))
	for i := 0; i+1 < len(c); i++ {
		out = append(out, seg2{A: c[i], B: c[i+1]})
	}
	return out
}

func allSegments(chains [][]pt2) []seg2 {
	var out []seg2
	for _, c := range chains {
		out = append(out, chainSegments(c)...)
	}
	return out
}

// filterChain splits each segment of c at the points returned by cuts and
// keeps the pieces accepted by keep. Consecutive kept pieces are joined
// back into one polyline.
func filterChain(c []pt2, cuts func(seg2) []pt2, keep func(seg2) bool) [][]pt2 {
	var out [][]pt2
	var cur []pt2
	flush := func() {
		if len(cur) >= 2 {
			out = append(out, cur)
		}
		cur = nil
	}
	for _, s := range chainSegments(c) {
		for _, piece := range kernel.SplitSegment2(s, cuts(s)) {
			if !keep(piece) {
				flush()
				continue
			}
			if len(cur) == 0 {
				cur = []pt2{piece.A}
			}
			cur = append(cur, piece.B)
		}
	}
	flush()
	return out
}

// crossingCuts returns every point where s meets one of edges.
func crossingCuts(edges []seg2) func(seg2) []pt2 {
	return func(s seg2) []pt2 {
		var cuts []pt2
		for _, e := range edges {
			if boxesOverlap2([]pt2{s.A, s.B}, []pt2{e.A, e.B}) {
				cuts = append(cuts, kernel.SegmentSegmentIntersection2(s, e).Points...)
			}
		}
		return cuts
	}
}

// overlapCuts returns the endpoints of the collinear overlaps of s with
// edges; proper crossings are ignored.
func overlapCuts(edges []seg2) func(seg2) []pt2 {
	return func(s seg2) []pt2 {
		var cuts []pt2
		for _, e := range edges {
			if o := kernel.SegmentSegmentIntersection2(s, e); o.Kind == kernel.ObjectSegment {
				cuts = append(cuts, o.Points...)
			}
		}
		return cuts
	}
}

// onSomeSegment reports whether piece lies on one of edges.
func onSomeSegment(piece seg2, edges []seg2) bool {
	for _, e := range edges {
		if kernel.PointOnSegment2(piece.A, e) && kernel.PointOnSegment2(piece.B, e) {
			return true
		}
	}
	return false
}

// clipLines keeps the parts of chains whose location against the areas
// is accepted by keep.
func clipLines(chains [][]pt2, areas []polygon2, keep func(kernel.Side) bool) [][]pt2 {
	if len(areas) == 0 {
		if keep(kernel.OnUnboundedSide) {
			return chains
		}
		return nil
	}
	cuts := crossingCuts(ringEdges(areas))
	var out [][]pt2
	for _, c := range chains {
		out = append(out, filterChain(c, cuts, func(s seg2) bool {
			return keep(locateRegion2(s.Midpoint(), areas))
		})...)
	}
	return out
}

// subtractLines removes from chains the parts overlapping the segments of
// other. Lines that only cross stay whole.
func subtractLines(chains, other [][]pt2) [][]pt2 {
	edges := allSegments(other)
	if len(edges) == 0 {
		return chains
	}
	var out [][]pt2
	for _, c := range chains {
		out = append(out, filterChain(c, overlapCuts(edges), func(s seg2) bool {
			return !onSomeSegment(s, edges)
		})...)
	}
	return out
}

// intersectLines returns the points and collinear overlaps shared by two
// sets of polylines.
func intersectLines(a, b [][]pt2) ([]pt2, [][]pt2) {
	var pts []pt2
	var segs [][]pt2
	sb := allSegments(b)
	for _, s := range allSegments(a) {
		for _, t := range sb {
			if !boxesOverlap2([]pt2{s.A, s.B}, []pt2{t.A, t.B}) {
				continue
			}
			o := kernel.SegmentSegmentIntersection2(s, t)
			switch o.Kind {
			case kernel.ObjectPoint:
				pts = append(pts, o.Points[0])
			case kernel.ObjectSegment:
				segs = append(segs, []pt2{o.Points[0], o.Points[1]})
			}
		}
	}
	return pts, segs
}
