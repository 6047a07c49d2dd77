package algorithm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/chazu/sfgeom/pkg/geom"
	"github.com/chazu/sfgeom/pkg/graph"
	"github.com/chazu/sfgeom/pkg/kernel"
)

// signedArea2 is twice the signed area of an open ring; positive for a
// counter-clockwise ring.
func signedArea2(r []pt2) exact {
	sum := kernel.Zero[exact]()
	for i := range r {
		sum = sum.Add(r[i].Cross(r[(i+1)%len(r)]))
	}
	return sum
}

// newell returns the Newell normal of an open ring. Its length is twice
// the ring area and it points to the side the ring turns
// counter-clockwise around.
func newell(r []pt3) pt3 {
	n := pt3{X: kernel.Zero[exact](), Y: kernel.Zero[exact](), Z: kernel.Zero[exact]()}
	for i := range r {
		a, b := r[i], r[(i+1)%len(r)]
		n.X = n.X.Add(a.Y.Sub(b.Y).Mul(a.Z.Add(b.Z)))
		n.Y = n.Y.Add(a.Z.Sub(b.Z).Mul(a.X.Add(b.X)))
		n.Z = n.Z.Add(a.X.Sub(b.X).Mul(a.Y.Add(b.Y)))
	}
	return n
}

// IsCounterClockwiseOriented reports the orientation on the XY plane of a
// LineString ring, a Triangle or the exterior ring of a Polygon.
func IsCounterClockwiseOriented(g geom.Geometry) (bool, error) {
	var r []pt2
	switch x := g.(type) {
	case *geom.LineString:
		r = ring2(x)
	case *geom.Triangle:
		r = ring2(x.ExteriorRing())
	case *geom.Polygon:
		if x.IsEmpty() {
			return false, nil
		}
		r = ring2(x.ExteriorRing())
	default:
		return false, notImplemented("IsCounterClockwiseOriented", g)
	}
	if len(r) < 3 {
		return false, nil
	}
	return signedArea2(r).Sign() > 0, nil
}

// Normal3D returns the exact Newell normal of a ring given as points; a
// closing point may be repeated. For three points a, b, c it equals
// (b-a)x(c-a).
func Normal3D(pts ...geom.Coordinate) kernel.Point3[kernel.Exact] {
	r := make([]pt3, 0, len(pts))
	for _, c := range pts {
		r = append(r, geom.ToPoint3[exact](c))
	}
	if len(r) > 1 && r[0].Equal(r[len(r)-1]) {
		r = r[:len(r)-1]
	}
	return newell(r)
}

// Plane3D returns the plane of a polygon, oriented by the Newell normal
// of its exterior ring. The normal is not normalized: its length is twice
// the area of the exterior ring.
func Plane3D(p *geom.Polygon) (kernel.Plane3[kernel.Exact], error) {
	if p.IsEmpty() {
		return kernel.Plane3[kernel.Exact]{}, fmt.Errorf("Plane3D of an empty polygon: %w", ErrDegenerate)
	}
	r := ring3(p.ExteriorRing())
	n := newell(r)
	if n.IsZero() {
		return kernel.Plane3[kernel.Exact]{}, fmt.Errorf("Plane3D: exterior ring has no area: %w", ErrDegenerate)
	}
	return kernel.PlaneFromNormal(n, r[0]), nil
}

// MakeValidOrientation reorients the rings of p in place: on the plane the
// exterior turns counter-clockwise and holes clockwise; in 3D holes are
// turned against the exterior normal.
func MakeValidOrientation(p *geom.Polygon) {
	if p.IsEmpty() {
		return
	}
	if !p.Is3D() {
		if signedArea2(ring2(p.ExteriorRing())).Sign() < 0 {
			p.ExteriorRing().Reverse()
		}
		for i := 0; i < p.NumInteriorRings(); i++ {
			if signedArea2(ring2(p.InteriorRingN(i))).Sign() > 0 {
				p.InteriorRingN(i).Reverse()
			}
		}
		p.InvalidateEnvelope()
		return
	}
	ext := newell(ring3(p.ExteriorRing()))
	for i := 0; i < p.NumInteriorRings(); i++ {
		if newell(ring3(p.InteriorRingN(i))).Dot(ext).Sign() > 0 {
			p.InteriorRingN(i).Reverse()
		}
	}
	p.InvalidateEnvelope()
}

// HasConsistentOrientation3D reports whether every edge shared by two
// facets of a surface is traversed once in each direction.
func HasConsistentOrientation3D(g geom.Geometry) (bool, error) {
	if isEmpty(g) {
		return true, nil
	}
	s, err := graph.New(g)
	if err != nil {
		return false, err
	}
	return s.HasConsistentOrientation(), nil
}

// IsClosed reports whether every edge of a surface is shared by exactly
// two facets.
func IsClosed(g geom.Geometry) (bool, error) {
	if isEmpty(g) {
		return false, nil
	}
	s, err := graph.New(g)
	if err != nil {
		return false, err
	}
	return s.IsClosed(), nil
}

// ConnectedComponents groups the facet indices of a surface connected
// through shared edges.
func ConnectedComponents(g geom.Geometry) ([][]int, error) {
	if isEmpty(g) {
		return nil, nil
	}
	s, err := graph.New(g)
	if err != nil {
		return nil, err
	}
	return s.Components(), nil
}

// ShellIssues checks a surface, or the exterior shell of a solid, as the
// boundary of a volume. An empty slice means a closed, consistently
// oriented, connected shell.
func ShellIssues(g geom.Geometry) ([]graph.ValidationError, error) {
	if isEmpty(g) {
		return nil, nil
	}
	s, err := graph.New(g)
	if err != nil {
		return nil, err
	}
	issues := s.Validate()
	for _, is := range issues {
		log().Debug("shell issue", zap.Stringer("severity", is.Severity), zap.String("message", is.Message))
	}
	return issues, nil
}
