package algorithm

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/chazu/sfgeom/pkg/geom"
)

// skeletonEps is the float64 slack used when comparing event times and
// turn signs in the wavefront simulation.
const skeletonEps = 1e-12

type vec2 struct{ x, y float64 }

func (a vec2) sub(b vec2) vec2      { return vec2{a.x - b.x, a.y - b.y} }
func (a vec2) cross(b vec2) float64 { return a.x*b.y - a.y*b.x }
func (a vec2) dist(b vec2) float64  { return math.Hypot(a.x-b.x, a.y-b.y) }

// wavefrontLine is an edge supporting line n·x = c with n the unit normal
// pointing into the polygon. At time t it has moved to n·x = c + t.
type wavefrontLine struct {
	n vec2
	c float64
}

// skeletonVertex is a wavefront vertex: the point where it started moving
// and the index of the line following it.
type skeletonVertex struct {
	start vec2
	line  int
}

// StraightSkeleton computes the straight skeleton of a Polygon, Triangle
// or MultiPolygon on the XY plane as a MultiLineString of arcs. Only
// convex polygons without holes are supported.
func StraightSkeleton(g geom.Geometry) (*geom.MultiLineString, error) {
	out := geom.NewMultiLineString()
	var polys []*geom.Polygon
	switch x := g.(type) {
	case *geom.Triangle:
		if !x.IsEmpty() {
			polys = append(polys, x.ToPolygon())
		}
	case *geom.Polygon:
		if !x.IsEmpty() {
			polys = append(polys, x)
		}
	case *geom.MultiPolygon:
		for _, p := range x.Members() {
			if !p.IsEmpty() {
				polys = append(polys, p)
			}
		}
	default:
		return nil, fmt.Errorf("StraightSkeleton(%s): %w", g.GeometryTypeName(), ErrSkeletonUnsupported)
	}
	for _, p := range polys {
		arcs, err := convexSkeleton(p)
		if err != nil {
			return nil, err
		}
		for _, a := range arcs {
			out.Add(geom.NewLineString2D([2]float64{a[0].x, a[0].y}, [2]float64{a[1].x, a[1].y}))
		}
	}
	return out, nil
}

func convexSkeleton(p *geom.Polygon) ([][2]vec2, error) {
	if p.NumInteriorRings() > 0 {
		return nil, fmt.Errorf("polygon with holes: %w", ErrSkeletonUnsupported)
	}
	ring := skeletonRing(p.ExteriorRing())
	if len(ring) < 3 {
		return nil, fmt.Errorf("StraightSkeleton: %w", ErrDegenerate)
	}
	for i := range ring {
		a, b, c := ring[i], ring[(i+1)%len(ring)], ring[(i+2)%len(ring)]
		if b.sub(a).cross(c.sub(b)) <= 0 {
			return nil, fmt.Errorf("non convex polygon: %w", ErrSkeletonUnsupported)
		}
	}

	lines := make([]wavefrontLine, len(ring))
	for i := range ring {
		a, b := ring[i], ring[(i+1)%len(ring)]
		d := b.sub(a)
		l := math.Hypot(d.x, d.y)
		n := vec2{-d.y / l, d.x / l}
		lines[i] = wavefrontLine{n: n, c: n.x*a.x + n.y*a.y}
	}
	// Vertex i sits between line i-1 and line i.
	verts := make([]skeletonVertex, len(ring))
	for i := range ring {
		verts[i] = skeletonVertex{start: ring[i], line: i}
	}

	var arcs [][2]vec2
	emit := func(from, to vec2) {
		if from.dist(to) > skeletonEps {
			arcs = append(arcs, [2]vec2{from, to})
		}
	}
	now := 0.0
	for len(verts) > 3 {
		best, bestT := -1, math.Inf(1)
		var bestP vec2
		for i := range verts {
			prev := verts[(i-1+len(verts))%len(verts)].line
			cur := verts[i].line
			next := verts[(i+1)%len(verts)].line
			q, t, ok := equidistant(lines[prev], lines[cur], lines[next])
			if ok && t >= now-skeletonEps && t < bestT {
				best, bestT, bestP = i, t, q
			}
		}
		if best < 0 {
			return nil, fmt.Errorf("wavefront has no collapse event: %w", ErrDegenerate)
		}
		// The line of vertex best collapses: it and its successor merge.
		nextIdx := (best + 1) % len(verts)
		emit(verts[best].start, bestP)
		emit(verts[nextIdx].start, bestP)
		verts[nextIdx].start = bestP
		verts = append(verts[:best], verts[best+1:]...)
		now = bestT
	}
	q, _, ok := equidistant(lines[verts[0].line], lines[verts[1].line], lines[verts[2].line])
	if !ok {
		return nil, fmt.Errorf("wavefront does not close: %w", ErrDegenerate)
	}
	for _, v := range verts {
		emit(v.start, q)
	}
	log().Debug("straight skeleton", zap.Int("vertices", len(ring)), zap.Int("arcs", len(arcs)))
	return arcs, nil
}

// equidistant solves for the point reached by the three offset lines at
// the same time: n_k·x - t = c_k for k = 0..2.
func equidistant(a, b, c wavefrontLine) (vec2, float64, bool) {
	m := [3][3]float64{
		{a.n.x, a.n.y, -1},
		{b.n.x, b.n.y, -1},
		{c.n.x, c.n.y, -1},
	}
	r := [3]float64{a.c, b.c, c.c}
	det := det3(m)
	if math.Abs(det) < skeletonEps {
		return vec2{}, 0, false
	}
	var sol [3]float64
	for k := 0; k < 3; k++ {
		mk := m
		for row := 0; row < 3; row++ {
			mk[row][k] = r[row]
		}
		sol[k] = det3(mk) / det
	}
	return vec2{sol[0], sol[1]}, sol[2], true
}

func det3(m [3][3]float64) float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// skeletonRing returns the exterior on the XY plane, counter-clockwise,
// without the closing point and without collinear vertices.
func skeletonRing(l *geom.LineString) []vec2 {
	var r []vec2
	for _, c := range l.Coordinates() {
		xyz := c.XYZ()
		v := vec2{xyz[0], xyz[1]}
		if len(r) > 0 && r[len(r)-1].dist(v) <= skeletonEps {
			continue
		}
		r = append(r, v)
	}
	if len(r) > 1 && r[0].dist(r[len(r)-1]) <= skeletonEps {
		r = r[:len(r)-1]
	}
	area := 0.0
	for i := range r {
		area += r[i].cross(r[(i+1)%len(r)])
	}
	if area < 0 {
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
	}
	for changed := true; changed && len(r) >= 3; {
		changed = false
		for i := range r {
			a, b, c := r[(i-1+len(r))%len(r)], r[i], r[(i+1)%len(r)]
			if math.Abs(b.sub(a).cross(c.sub(b))) <= skeletonEps*(a.dist(b)+b.dist(c)) && b.sub(a).x*(c.sub(b)).x+b.sub(a).y*(c.sub(b)).y > 0 {
				r = append(r[:i], r[i+1:]...)
				changed = true
				break
			}
		}
	}
	return r
}
