package algorithm

import (
	"sort"

	"go.uber.org/zap"

	"github.com/chazu/sfgeom/pkg/kernel"
)

// overlayOp selects the pieces kept by a planar overlay.
type overlayOp int

const (
	opIntersection overlayOp = iota
	opUnion
	opDifference
)

func (op overlayOp) String() string {
	switch op {
	case opIntersection:
		return "intersection"
	case opUnion:
		return "union"
	default:
		return "difference"
	}
}

// edgeClass locates an edge piece of one operand against the other.
type edgeClass int

const (
	edgeOutside edgeClass = iota
	edgeInside
	edgeSame     // on the other boundary, same direction
	edgeOpposite // on the other boundary, opposite direction
)

// operand is one side of an overlay: its polygons with normalized rings
// and its noded boundary.
type operand struct {
	polys    []polygon2
	pieces   []seg2
	directed map[string]bool
	internal map[string]bool // cancelled edges shared by two polygons
}

func dirKey(s seg2) string { return key2(s.A) + ">" + key2(s.B) }

func undirKey(s seg2) string {
	if s.A.Compare(s.B) > 0 {
		s = s.Reverse()
	}
	return key2(s.A) + "-" + key2(s.B)
}

// normalizePolygons orients exteriors counter-clockwise and holes
// clockwise and drops rings without area.
func normalizePolygons(ps []polygon2) []polygon2 {
	var out []polygon2
	for _, p := range ps {
		if len(p.rings) == 0 || len(p.rings[0]) < 3 {
			continue
		}
		var q polygon2
		for i, r := range p.rings {
			sign := signedArea2(r).Sign()
			if len(r) < 3 || sign == 0 {
				if i == 0 {
					break
				}
				continue
			}
			r = append([]pt2(nil), r...)
			if (i == 0) != (sign > 0) {
				reverseRing2(r)
			}
			q.rings = append(q.rings, r)
		}
		if len(q.rings) > 0 {
			out = append(out, q)
		}
	}
	return out
}

func reverseRing2(r []pt2) {
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
}

func ringEdges(ps []polygon2) []seg2 {
	var out []seg2
	for _, p := range ps {
		for _, r := range p.rings {
			for i := range r {
				out = append(out, seg2{A: r[i], B: r[(i+1)%len(r)]})
			}
		}
	}
	return out
}

// nodeSegments splits every segment at its intersections with every
// segment of others.
func nodeSegments(edges []seg2, others ...[]seg2) [][]seg2 {
	out := make([][]seg2, len(edges))
	for i, e := range edges {
		var cuts []pt2
		for _, set := range others {
			for _, f := range set {
				if !boxesOverlap2([]pt2{e.A, e.B}, []pt2{f.A, f.B}) {
					continue
				}
				cuts = append(cuts, kernel.SegmentSegmentIntersection2(e, f).Points...)
			}
		}
		out[i] = kernel.SplitSegment2(e, cuts)
	}
	return out
}

func newOperand(polys []polygon2, split [][]seg2) *operand {
	o := &operand{polys: polys, directed: map[string]bool{}, internal: map[string]bool{}}
	count := map[string]int{}
	first := map[string]seg2{}
	for _, pieces := range split {
		for _, s := range pieces {
			if s.IsDegenerate() {
				continue
			}
			k, rk := dirKey(s), dirKey(s.Reverse())
			if count[rk] > 0 {
				count[rk]--
				o.internal[undirKey(s)] = true
				continue
			}
			if count[k] == 0 {
				first[k] = s
			}
			count[k] = 1
		}
	}
	keys := make([]string, 0, len(count))
	for k, n := range count {
		if n > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		o.pieces = append(o.pieces, first[k])
		o.directed[k] = true
	}
	return o
}

func (o *operand) classify(s seg2, other *operand) edgeClass {
	switch locateRegion2(s.Midpoint(), other.polys) {
	case kernel.OnBoundedSide:
		return edgeInside
	case kernel.OnUnboundedSide:
		return edgeOutside
	}
	switch {
	case other.directed[dirKey(s)]:
		return edgeSame
	case other.directed[dirKey(s.Reverse())]:
		return edgeOpposite
	case other.internal[undirKey(s)]:
		return edgeInside
	}
	log().Debug("overlay: boundary piece without a matching edge", zap.String("piece", dirKey(s)))
	return edgeInside
}

// overlay computes op between two sets of non-overlapping planar polygons.
func overlay(a, b []polygon2, op overlayOp) []polygon2 {
	a, b = normalizePolygons(a), normalizePolygons(b)
	ea, eb := ringEdges(a), ringEdges(b)
	oa := newOperand(a, nodeSegments(ea, ea, eb))
	ob := newOperand(b, nodeSegments(eb, eb, ea))

	var kept []seg2
	for _, s := range oa.pieces {
		c := oa.classify(s, ob)
		switch {
		case op == opIntersection && (c == edgeInside || c == edgeSame),
			op == opUnion && (c == edgeOutside || c == edgeSame),
			op == opDifference && (c == edgeOutside || c == edgeOpposite):
			kept = append(kept, s)
		}
	}
	for _, s := range ob.pieces {
		c := ob.classify(s, oa)
		switch {
		case op == opIntersection && c == edgeInside,
			op == opUnion && c == edgeOutside:
			kept = append(kept, s)
		case op == opDifference && c == edgeInside:
			kept = append(kept, s.Reverse())
		}
	}
	out := assemble(traceRings(kept))
	log().Debug("overlay", zap.Stringer("op", op), zap.Int("pieces", len(kept)), zap.Int("polygons", len(out)))
	return out
}

// traceRings links directed pieces into closed rings. At a vertex with
// several exits the one making the smallest clockwise turn from the
// reversed incoming direction is taken, so every ring bounds a single face
// on its left.
func traceRings(pieces []seg2) [][]pt2 {
	out := map[string][]int{}
	for i, s := range pieces {
		out[key2(s.A)] = append(out[key2(s.A)], i)
	}
	used := make([]bool, len(pieces))
	var rings [][]pt2
	for start := range pieces {
		if used[start] {
			continue
		}
		used[start] = true
		ring := []pt2{pieces[start].A}
		cur := pieces[start]
		closed := false
		for guard := 0; guard <= len(pieces); guard++ {
			v := cur.B
			if v.Equal(ring[0]) {
				closed = true
				break
			}
			ring = append(ring, v)
			back := cur.A.Sub(v)
			next := -1
			for _, j := range out[key2(v)] {
				if used[j] {
					continue
				}
				if next < 0 || cwLess(back, pieces[j].B.Sub(v), pieces[next].B.Sub(v)) {
					next = j
				}
			}
			if next < 0 {
				break
			}
			used[next] = true
			cur = pieces[next]
		}
		if !closed {
			log().Warn("overlay: dropping an open chain", zap.Int("vertices", len(ring)))
			continue
		}
		rings = append(rings, ring)
	}
	return rings
}

// cwClass buckets d by its clockwise angle from r: (0,180), 180,
// (180,360), 360.
func cwClass(r, d pt2) int {
	cross, dot := r.Cross(d).Sign(), r.Dot(d).Sign()
	switch {
	case cross < 0:
		return 0
	case cross == 0 && dot < 0:
		return 1
	case cross > 0:
		return 2
	default:
		return 3
	}
}

// cwLess reports whether d1 is reached before d2 turning clockwise from r.
func cwLess(r, d1, d2 pt2) bool {
	c1, c2 := cwClass(r, d1), cwClass(r, d2)
	if c1 != c2 {
		return c1 < c2
	}
	return d1.Cross(d2).Sign() < 0
}

// assemble groups counter-clockwise shells with the clockwise holes they
// contain. Each hole goes to the smallest enclosing shell.
func assemble(rings [][]pt2) []polygon2 {
	var shells, holes [][]pt2
	for _, r := range rings {
		r = simplifyRing2(r)
		if len(r) < 3 {
			continue
		}
		switch signedArea2(r).Sign() {
		case 1:
			shells = append(shells, r)
		case -1:
			holes = append(holes, r)
		}
	}
	polys := make([]polygon2, len(shells))
	for i, s := range shells {
		polys[i].rings = [][]pt2{s}
	}
	for _, h := range holes {
		best := -1
		var bestArea exact
		for i, s := range shells {
			if !ringInside(h, s) {
				continue
			}
			area := signedArea2(s)
			if best < 0 || area.Cmp(bestArea) < 0 {
				best, bestArea = i, area
			}
		}
		if best < 0 {
			log().Warn("overlay: hole without an enclosing shell", zap.Int("vertices", len(h)))
			continue
		}
		polys[best].rings = append(polys[best].rings, h)
	}
	for i := range polys {
		hs := polys[i].rings[1:]
		sort.Slice(hs, func(x, y int) bool { return hs[x][0].Compare(hs[y][0]) < 0 })
	}
	sort.Slice(polys, func(i, j int) bool { return polys[i].rings[0][0].Compare(polys[j].rings[0][0]) < 0 })
	return polys
}

// ringInside reports whether ring r, which does not cross s, lies in s.
func ringInside(r, s []pt2) bool {
	for i, p := range r {
		switch locateRing2(p, s) {
		case kernel.OnBoundedSide:
			return true
		case kernel.OnUnboundedSide:
			return false
		}
		switch locateRing2(kernel.Midpoint2(p, r[(i+1)%len(r)]), s) {
		case kernel.OnBoundedSide:
			return true
		case kernel.OnUnboundedSide:
			return false
		}
	}
	return false
}

// simplifyRing2 removes vertices between collinear edges and starts the
// ring at its smallest vertex.
func simplifyRing2(r []pt2) []pt2 {
	for changed := true; changed && len(r) >= 3; {
		changed = false
		for i := range r {
			prev, next := r[(i+len(r)-1)%len(r)], r[(i+1)%len(r)]
			if kernel.Orient2(prev, r[i], next) == 0 {
				r = append(append([]pt2(nil), r[:i]...), r[i+1:]...)
				changed = true
				break
			}
		}
	}
	if len(r) < 3 {
		return nil
	}
	m := 0
	for i := range r {
		if r[i].Compare(r[m]) < 0 {
			m = i
		}
	}
	return append(append([]pt2(nil), r[m:]...), r[:m]...)
}
