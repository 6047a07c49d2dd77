package algorithm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/chazu/sfgeom/pkg/geom"
	"github.com/chazu/sfgeom/pkg/kernel"
	"github.com/chazu/sfgeom/pkg/wkt"
)

// Validity is the outcome of a validity check. Reason is empty when the
// geometry is valid.
type Validity struct {
	Valid  bool
	Reason string
}

func valid() Validity { return Validity{Valid: true} }

func invalid(format string, args ...any) Validity {
	return Validity{Reason: fmt.Sprintf(format, args...)}
}

// IsValid checks g against the OGC validity rules. Empty geometries,
// points and multipoints are valid; line strings and polygons are
// checked; other kinds return ErrNotImplemented.
func IsValid(g geom.Geometry) (Validity, error) {
	if g == nil || g.IsEmpty() {
		return valid(), nil
	}
	switch x := g.(type) {
	case *geom.Point, *geom.MultiPoint:
		return valid(), nil
	case *geom.LineString:
		if Length3D(x) > tolerance().Absolute {
			return valid(), nil
		}
		return invalid("LineString has no length"), nil
	case *geom.Polygon:
		return polygonValidity(x), nil
	}
	return Validity{}, notImplemented("IsValid", g)
}

// CheckValidity returns an error describing why g is invalid, nil when it
// is valid.
func CheckValidity(g geom.Geometry) error {
	v, err := IsValid(g)
	if err != nil {
		return err
	}
	if !v.Valid {
		return fmt.Errorf("%s is invalid : %s", wkt.Write(g, wkt.Exact), v.Reason)
	}
	return nil
}

func polygonValidity(p *geom.Polygon) Validity {
	tol := kernel.NewExact(absTolerance())
	tol2 := tol.Mul(tol)
	is3D := p.Is3D()
	for _, r := range p.Rings() {
		if r.NumPoints() < 4 {
			return invalid("not enough points in Polygon ring")
		}
		d := kernel.SquaredDistancePointPoint3(geom.ToPoint3[exact](r.StartPoint()), geom.ToPoint3[exact](r.EndPoint()))
		if d.Cmp(tol2) > 0 {
			return invalid("ring is not closed")
		}
		if selfIntersects(r, is3D) {
			return invalid("ring self intersects")
		}
	}

	axis := 2
	if !is3D {
		if signedArea2(ring2(p.ExteriorRing())).Sign() < 0 {
			return invalid("exterior ring is oriented clockwise")
		}
		for i := 0; i < p.NumInteriorRings(); i++ {
			if signedArea2(ring2(p.InteriorRingN(i))).Sign() > 0 {
				return invalid("interior ring %d is oriented counterclockwise", i)
			}
		}
	} else {
		n := newell(ring3(p.ExteriorRing()))
		if !isPlanar(p, n, tol2) {
			return invalid("points don't lie in the same plane")
		}
		for i := 0; i < p.NumInteriorRings(); i++ {
			if n.Dot(newell(ring3(p.InteriorRingN(i)))).Sign() > 0 {
				return invalid("interior ring %d has the same orientation as the exterior ring", i)
			}
		}
		axis = kernel.DominantAxis(n)
	}

	// Ring relations are decided on the plane of the polygon.
	rings := make([][]pt2, p.NumRings())
	for i, r := range p.Rings() {
		rings[i] = projectedRing(r, axis)
	}
	for i := range rings {
		touching := 0
		for j := i + 1; j < len(rings); j++ {
			pts, segs := intersectLines([][]pt2{closeChain(rings[i])}, [][]pt2{closeChain(rings[j])})
			pts = uniquePoints2(pts)
			switch {
			case len(segs) > 0 || len(pts) > 1:
				return invalid("intersection between ring %d and %d", i, j)
			case len(pts) == 1:
				touching++
			}
		}
		if touching > 1 {
			log().Warn("polygon ring has several touching points, interior may not be connected",
				zap.Int("ring", i), zap.Int("touching", touching))
		}
	}
	for i := 1; i < len(rings); i++ {
		if !coversRing(rings[0], rings[i]) {
			return invalid("exterior ring doesn't cover interior ring %d", i-1)
		}
	}
	for i := 1; i < len(rings); i++ {
		for j := i + 1; j < len(rings); j++ {
			if coversRing(rings[i], rings[j]) {
				return invalid("interior ring %d covers interior ring %d", i-1, j-1)
			}
		}
	}
	return valid()
}

func projectedRing(l *geom.LineString, axis int) []pt2 {
	var out []pt2
	for _, p := range ring3(l) {
		q := kernel.Project(p, axis)
		if len(out) > 0 && out[len(out)-1].Equal(q) {
			continue
		}
		out = append(out, q)
	}
	if len(out) > 1 && out[0].Equal(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

func closeChain(r []pt2) []pt2 {
	if len(r) == 0 {
		return r
	}
	return append(append([]pt2(nil), r...), r[0])
}

func uniquePoints2(pts []pt2) []pt2 {
	seen := map[string]bool{}
	var out []pt2
	for _, p := range pts {
		if k := key2(p); !seen[k] {
			seen[k] = true
			out = append(out, p)
		}
	}
	return out
}

// coversRing reports whether the region bounded by outer covers the
// region bounded by inner.
func coversRing(outer, inner []pt2) bool {
	if len(outer) < 3 || len(inner) < 3 {
		return false
	}
	a := parts2{areas: []polygon2{{rings: [][]pt2{outer}}}}
	b := parts2{areas: []polygon2{{rings: [][]pt2{inner}}}}
	return coversParts2(a, b)
}

// isPlanar checks that every vertex is within the tolerance of the plane
// through the first vertex with normal n.
func isPlanar(p *geom.Polygon, n pt3, tol2 exact) bool {
	if n.IsZero() {
		return false
	}
	p0 := geom.ToPoint3[exact](p.ExteriorRing().StartPoint())
	bound := tol2.Mul(n.Dot(n))
	for _, r := range p.Rings() {
		for _, c := range r.Coordinates() {
			d := n.Dot(geom.ToPoint3[exact](c).Sub(p0))
			if d.Mul(d).Cmp(bound) > 0 {
				return false
			}
		}
	}
	return true
}

// selfIntersects reports whether a ring touches itself anywhere other
// than between consecutive segments at their shared vertex.
func selfIntersects(l *geom.LineString, is3D bool) bool {
	if is3D {
		return selfIntersects3(ring3(l))
	}
	return selfIntersects2(ring2(l))
}

func selfIntersects2(r []pt2) bool {
	n := len(r)
	if n < 3 {
		return true
	}
	for i := 0; i < n; i++ {
		si := seg2{A: r[i], B: r[(i+1)%n]}
		for j := i + 1; j < n; j++ {
			sj := seg2{A: r[j], B: r[(j+1)%n]}
			adjacent := j == i+1 || (i == 0 && j == n-1)
			o := kernel.SegmentSegmentIntersection2(si, sj)
			if adjacent {
				if o.Kind == kernel.ObjectSegment {
					return true
				}
				continue
			}
			if o.Kind != kernel.ObjectNone {
				return true
			}
		}
	}
	return false
}

func selfIntersects3(r []pt3) bool {
	n := len(r)
	if n < 3 {
		return true
	}
	for i := 0; i < n; i++ {
		si := seg3{A: r[i], B: r[(i+1)%n]}
		for j := i + 1; j < n; j++ {
			sj := seg3{A: r[j], B: r[(j+1)%n]}
			adjacent := j == i+1 || (i == 0 && j == n-1)
			o := kernel.SegmentSegmentIntersection3(si, sj)
			if adjacent {
				if o.Kind == kernel.ObjectSegment {
					return true
				}
				continue
			}
			if o.Kind != kernel.ObjectNone {
				return true
			}
		}
	}
	return false
}
