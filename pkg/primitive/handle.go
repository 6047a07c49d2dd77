// Package primitive decomposes geometries into homogeneous sets of points,
// segments and triangles, and enumerates candidate pairs through their
// bounding boxes.
//
// Handles are ephemeral: they reference positions and the source geometry
// and are only meant to live for the duration of one scan.
package primitive

import (
	"math"

	"github.com/chazu/sfgeom/pkg/geom"
	"github.com/chazu/sfgeom/pkg/kernel"
)

// Kind is the primitive rank used for symmetric dispatch:
// Point < Segment < Triangle.
type Kind int

const (
	KindPoint Kind = iota
	KindSegment
	KindTriangle
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindSegment:
		return "segment"
	case KindTriangle:
		return "triangle"
	default:
		return "unknown"
	}
}

// Handle is a point, segment or triangle with a back reference to the
// geometry it was extracted from.
type Handle struct {
	Kind   Kind
	Points [3]geom.Coordinate
	Source geom.Geometry
	Box    Box
}

func newHandle(k Kind, src geom.Geometry, pts ...geom.Coordinate) Handle {
	h := Handle{Kind: k, Source: src}
	copy(h.Points[:], pts)
	h.Box = boxOf(pts)
	return h
}

// NumPoints is 1, 2 or 3 depending on the kind.
func (h Handle) NumPoints() int { return int(h.Kind) + 1 }

// Ordered returns the pair with the higher-or-equal rank first and reports
// whether the operands were swapped.
func Ordered(x, y Handle) (Handle, Handle, bool) {
	if x.Kind < y.Kind {
		return y, x, true
	}
	return x, y, false
}

// ----------------------------------------------------------------------------
// Kernel views
// ----------------------------------------------------------------------------

func Point2[T kernel.Number[T]](h Handle) kernel.Point2[T] {
	return geom.ToPoint2[T](h.Points[0])
}

func Point3[T kernel.Number[T]](h Handle) kernel.Point3[T] {
	return geom.ToPoint3[T](h.Points[0])
}

func Segment2[T kernel.Number[T]](h Handle) kernel.Segment2[T] {
	return kernel.Segment2[T]{A: geom.ToPoint2[T](h.Points[0]), B: geom.ToPoint2[T](h.Points[1])}
}

func Segment3[T kernel.Number[T]](h Handle) kernel.Segment3[T] {
	return kernel.Segment3[T]{A: geom.ToPoint3[T](h.Points[0]), B: geom.ToPoint3[T](h.Points[1])}
}

func Triangle2[T kernel.Number[T]](h Handle) kernel.Triangle2[T] {
	return kernel.Triangle2[T]{
		A: geom.ToPoint2[T](h.Points[0]),
		B: geom.ToPoint2[T](h.Points[1]),
		C: geom.ToPoint2[T](h.Points[2]),
	}
}

func Triangle3[T kernel.Number[T]](h Handle) kernel.Triangle3[T] {
	return kernel.Triangle3[T]{
		A: geom.ToPoint3[T](h.Points[0]),
		B: geom.ToPoint3[T](h.Points[1]),
		C: geom.ToPoint3[T](h.Points[2]),
	}
}

// ----------------------------------------------------------------------------
// Boxes
// ----------------------------------------------------------------------------

// Box is a closed axis-aligned box in doubles. Bounds are rounded outward
// so the box encloses the exact primitive.
type Box struct {
	Min, Max [3]float64
}

func boxOf(pts []geom.Coordinate) Box {
	b := Box{
		Min: [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
	for _, c := range pts {
		xyz := c.XYZ()
		for i, v := range xyz {
			b.Min[i] = math.Min(b.Min[i], v)
			b.Max[i] = math.Max(b.Max[i], v)
		}
	}
	for i := range b.Min {
		b.Min[i] = math.Nextafter(b.Min[i], math.Inf(-1))
		b.Max[i] = math.Nextafter(b.Max[i], math.Inf(1))
	}
	return b
}

// Overlaps reports whether the closed boxes share a point on the first
// dims axes.
func (b Box) Overlaps(o Box, dims int) bool {
	for i := 0; i < dims; i++ {
		if b.Max[i] < o.Min[i] || o.Max[i] < b.Min[i] {
			return false
		}
	}
	return true
}

// Union returns the smallest box containing b and o.
func (b Box) Union(o Box) Box {
	for i := range b.Min {
		b.Min[i] = math.Min(b.Min[i], o.Min[i])
		b.Max[i] = math.Max(b.Max[i], o.Max[i])
	}
	return b
}
