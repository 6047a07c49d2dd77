package algorithm

import (
	"fmt"
	"sort"

	"github.com/chazu/sfgeom/pkg/kernel"
)

// cdt is a constrained Delaunay triangulation over exact planar points.
// Points are inserted first (Bowyer-Watson inside a super triangle), then
// constraints are forced in by edge flips and the Delaunay property is
// restored around them.
type cdt struct {
	pts   []pt2
	tris  []cdtTriangle
	owner map[[2]int]int // directed edge to the triangle traversing it
	fixed map[[2]int]bool
	index map[string]int
}

type cdtTriangle struct {
	v    [3]int
	dead bool
}

// superVertices is the number of leading points forming the super triangle.
const superVertices = 3

func newCDT(lo, hi pt2) *cdt {
	d := kernel.Max(hi.X.Sub(lo.X), hi.Y.Sub(lo.Y))
	if d.Sign() == 0 {
		d = kernel.FromInt[exact](1)
	}
	c := kernel.Midpoint2(lo, hi)
	k := func(i int64) exact { return d.Mul(kernel.FromInt[exact](i)) }
	t := &cdt{owner: map[[2]int]int{}, fixed: map[[2]int]bool{}, index: map[string]int{}}
	t.pts = []pt2{
		{X: c.X.Sub(k(20)), Y: c.Y.Sub(k(10))},
		{X: c.X.Add(k(20)), Y: c.Y.Sub(k(10))},
		{X: c.X, Y: c.Y.Add(k(20))},
	}
	t.addTriangle(0, 1, 2)
	return t
}

func (t *cdt) addTriangle(a, b, c int) int {
	i := len(t.tris)
	t.tris = append(t.tris, cdtTriangle{v: [3]int{a, b, c}})
	t.owner[[2]int{a, b}] = i
	t.owner[[2]int{b, c}] = i
	t.owner[[2]int{c, a}] = i
	return i
}

func (t *cdt) removeTriangle(i int) {
	v := t.tris[i].v
	for k := 0; k < 3; k++ {
		e := [2]int{v[k], v[(k+1)%3]}
		if t.owner[e] == i {
			delete(t.owner, e)
		}
	}
	t.tris[i].dead = true
}

func (t *cdt) triangle(i int) tri2 {
	v := t.tris[i].v
	return tri2{A: t.pts[v[0]], B: t.pts[v[1]], C: t.pts[v[2]]}
}

// third returns the vertex of triangle i not on edge (u, v).
func (t *cdt) third(i, u, v int) int {
	for _, w := range t.tris[i].v {
		if w != u && w != v {
			return w
		}
	}
	return -1
}

func undirected(u, v int) [2]int {
	if u > v {
		return [2]int{v, u}
	}
	return [2]int{u, v}
}

// insert adds p and returns its index; a point already present keeps its
// index.
func (t *cdt) insert(p pt2) (int, error) {
	k := key2(p)
	if i, ok := t.index[k]; ok {
		return i, nil
	}
	start := -1
	for i := range t.tris {
		if !t.tris[i].dead && kernel.TriangleSide2(p, t.triangle(i)) != kernel.OnUnboundedSide {
			start = i
			break
		}
	}
	if start < 0 {
		return -1, fmt.Errorf("triangulation: point %s outside the super triangle: %w", k, ErrDegenerate)
	}
	bad := map[int]bool{start: true}
	stack := []int{start}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		v := t.tris[i].v
		for e := 0; e < 3; e++ {
			n, ok := t.owner[[2]int{v[(e+1)%3], v[e]}]
			if !ok || bad[n] {
				continue
			}
			tr := t.triangle(n)
			if kernel.InCircle(tr.A, tr.B, tr.C, p) > 0 {
				bad[n] = true
				stack = append(stack, n)
			}
		}
	}
	var rim [][2]int
	for i := range bad {
		v := t.tris[i].v
		for e := 0; e < 3; e++ {
			u, w := v[e], v[(e+1)%3]
			if n, ok := t.owner[[2]int{w, u}]; ok && bad[n] {
				continue
			}
			rim = append(rim, [2]int{u, w})
		}
	}
	for i := range bad {
		t.removeTriangle(i)
	}
	pi := len(t.pts)
	t.pts = append(t.pts, p)
	t.index[k] = pi
	for _, e := range rim {
		t.addTriangle(e[0], e[1], pi)
	}
	return pi, nil
}

// flip replaces the diagonal (u, v) of the quad formed by its two
// triangles with the other diagonal and returns the new edge.
func (t *cdt) flip(u, v int) (int, int) {
	t1, t2 := t.owner[[2]int{u, v}], t.owner[[2]int{v, u}]
	w1, w2 := t.third(t1, u, v), t.third(t2, u, v)
	t.removeTriangle(t1)
	t.removeTriangle(t2)
	t.addTriangle(u, w2, w1)
	t.addTriangle(v, w1, w2)
	return w1, w2
}

// insertConstraint forces the edge (a, b) into the triangulation.
// Vertices lying on the edge split it.
func (t *cdt) insertConstraint(a, b int) error {
	if a == b {
		return nil
	}
	s := seg2{A: t.pts[a], B: t.pts[b]}
	for k := superVertices; k < len(t.pts); k++ {
		if k == a || k == b || !kernel.PointOnSegment2(t.pts[k], s) {
			continue
		}
		if err := t.insertConstraint(a, k); err != nil {
			return err
		}
		return t.insertConstraint(k, b)
	}
	if _, ok := t.owner[[2]int{a, b}]; ok {
		t.fixed[undirected(a, b)] = true
		return nil
	}
	if _, ok := t.owner[[2]int{b, a}]; ok {
		t.fixed[undirected(a, b)] = true
		return nil
	}
	var queue [][2]int
	for e := range t.owner {
		if e[0] > e[1] {
			continue
		}
		if kernel.SegmentsCross2(s, seg2{A: t.pts[e[0]], B: t.pts[e[1]]}) {
			if t.fixed[e] {
				return fmt.Errorf("triangulation: constraints cross: %w", ErrDegenerate)
			}
			queue = append(queue, e)
		}
	}
	sort.Slice(queue, func(i, j int) bool {
		if queue[i][0] != queue[j][0] {
			return queue[i][0] < queue[j][0]
		}
		return queue[i][1] < queue[j][1]
	})
	for guard := 0; len(queue) > 0; guard++ {
		if guard > 64*len(t.pts)*len(t.pts) {
			return fmt.Errorf("triangulation: constraint insertion does not converge: %w", ErrDegenerate)
		}
		e := queue[0]
		queue = queue[1:]
		u, v := e[0], e[1]
		t1, ok1 := t.owner[[2]int{u, v}]
		t2, ok2 := t.owner[[2]int{v, u}]
		if !ok1 || !ok2 {
			continue
		}
		w1, w2 := t.third(t1, u, v), t.third(t2, u, v)
		if !kernel.SegmentsCross2(seg2{A: t.pts[w1], B: t.pts[w2]}, seg2{A: t.pts[u], B: t.pts[v]}) {
			queue = append(queue, e)
			continue
		}
		x, y := t.flip(u, v)
		if kernel.SegmentsCross2(s, seg2{A: t.pts[x], B: t.pts[y]}) {
			queue = append(queue, undirected(x, y))
		}
	}
	t.fixed[undirected(a, b)] = true
	return nil
}

// restoreDelaunay flips every unconstrained edge whose opposite vertex
// lies inside the circumcircle of its neighbour.
func (t *cdt) restoreDelaunay() {
	for pass := 0; pass < 4*len(t.pts)+16; pass++ {
		edges := make([][2]int, 0, len(t.owner))
		for e := range t.owner {
			if e[0] < e[1] && !t.fixed[e] {
				edges = append(edges, e)
			}
		}
		sort.Slice(edges, func(i, j int) bool {
			if edges[i][0] != edges[j][0] {
				return edges[i][0] < edges[j][0]
			}
			return edges[i][1] < edges[j][1]
		})
		changed := false
		for _, e := range edges {
			u, v := e[0], e[1]
			t1, ok1 := t.owner[[2]int{u, v}]
			t2, ok2 := t.owner[[2]int{v, u}]
			if !ok1 || !ok2 {
				continue
			}
			w2 := t.third(t2, u, v)
			tr := t.triangle(t1)
			if kernel.InCircle(tr.A, tr.B, tr.C, t.pts[w2]) > 0 {
				t.flip(u, v)
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// triangles returns the live triangles not touching the super triangle,
// counter-clockwise.
func (t *cdt) triangles() [][3]int {
	var out [][3]int
	for _, tr := range t.tris {
		if tr.dead || tr.v[0] < superVertices || tr.v[1] < superVertices || tr.v[2] < superVertices {
			continue
		}
		out = append(out, tr.v)
	}
	return out
}

// triangulateRings builds the constrained triangulation of rings and keeps
// the triangles nested in an odd number of rings.
func triangulateRings(rings [][]pt2) (*cdt, [][3]int, error) {
	var all []pt2
	for _, r := range rings {
		all = append(all, r...)
	}
	if len(all) < 3 {
		return nil, nil, fmt.Errorf("triangulation: fewer than three points: %w", ErrDegenerate)
	}
	lo, hi := bounds2(all)
	t := newCDT(lo, hi)
	ids := make([][]int, len(rings))
	for i, r := range rings {
		for _, p := range r {
			id, err := t.insert(p)
			if err != nil {
				return nil, nil, err
			}
			ids[i] = append(ids[i], id)
		}
	}
	for _, r := range ids {
		for i := range r {
			if err := t.insertConstraint(r[i], r[(i+1)%len(r)]); err != nil {
				return nil, nil, err
			}
		}
	}
	t.restoreDelaunay()
	var kept [][3]int
	for _, v := range t.triangles() {
		c := kernel.Centroid2(t.pts[v[0]], t.pts[v[1]], t.pts[v[2]])
		depth := 0
		for _, r := range rings {
			if len(r) >= 3 && locateRing2(c, r) == kernel.OnBoundedSide {
				depth++
			}
		}
		if depth%2 == 1 {
			kept = append(kept, v)
		}
	}
	return t, kept, nil
}
