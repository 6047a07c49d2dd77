// Package geom defines the OGC Simple Feature geometry model: coordinates,
// the closed set of geometry variants, visitor dispatch, envelopes and
// boundaries.
//
// Geometries are trees. Every composite owns its members and Clone deep
// copies. Mutators invalidate the cached envelope of the geometry they are
// called on; a caller that mutates a member directly must call
// InvalidateEnvelope on its ancestors.
package geom

import "fmt"

// GeometryType identifies a geometry variant. Values follow the OGC type
// codes where one exists.
type GeometryType int

const (
	TypePoint               GeometryType = 1
	TypeLineString          GeometryType = 2
	TypePolygon             GeometryType = 3
	TypeMultiPoint          GeometryType = 4
	TypeMultiLineString     GeometryType = 5
	TypeMultiPolygon        GeometryType = 6
	TypeGeometryCollection  GeometryType = 7
	TypePolyhedralSurface   GeometryType = 15
	TypeTriangulatedSurface GeometryType = 16
	TypeTriangle            GeometryType = 17
	TypeSolid               GeometryType = 101
	TypeMultiSolid          GeometryType = 102
)

func (t GeometryType) String() string {
	switch t {
	case TypePoint:
		return "Point"
	case TypeLineString:
		return "LineString"
	case TypePolygon:
		return "Polygon"
	case TypeMultiPoint:
		return "MultiPoint"
	case TypeMultiLineString:
		return "MultiLineString"
	case TypeMultiPolygon:
		return "MultiPolygon"
	case TypeGeometryCollection:
		return "GeometryCollection"
	case TypePolyhedralSurface:
		return "PolyhedralSurface"
	case TypeTriangulatedSurface:
		return "TriangulatedSurface"
	case TypeTriangle:
		return "Triangle"
	case TypeSolid:
		return "Solid"
	case TypeMultiSolid:
		return "MultiSolid"
	default:
		return fmt.Sprintf("GeometryType(%d)", int(t))
	}
}

// IsCollection reports whether the variant is a GeometryCollection or one of
// its Multi* specializations.
func (t GeometryType) IsCollection() bool {
	switch t {
	case TypeMultiPoint, TypeMultiLineString, TypeMultiPolygon, TypeMultiSolid, TypeGeometryCollection:
		return true
	}
	return false
}

// Geometry is implemented by every variant of the model. The set of variants
// is closed.
type Geometry interface {
	GeometryType() GeometryType
	// GeometryTypeName is the OGC name, for example "Polygon".
	GeometryTypeName() string
	// Dimension is the topological dimension: 0 points, 1 curves,
	// 2 surfaces, 3 volumes.
	Dimension() int
	// CoordinateDimension is 0 when empty, otherwise 2 or 3.
	CoordinateDimension() int
	IsEmpty() bool
	Is3D() bool

	// Accept calls exactly one method of v with the concrete variant.
	Accept(v Visitor)
	// AcceptConst calls exactly one method of v with a copy of the variant.
	AcceptConst(v ConstVisitor)

	Clone() Geometry
	// Envelope returns the cached bounding box, computing it when dirty.
	Envelope() Envelope
	InvalidateEnvelope()
	Boundary() Geometry

	// NumGeometries is the member count of a collection and 1 otherwise.
	NumGeometries() int
	GeometryN(i int) Geometry

	isGeometry()
}

var (
	_ Geometry = (*Point)(nil)
	_ Geometry = (*LineString)(nil)
	_ Geometry = (*Polygon)(nil)
	_ Geometry = (*Triangle)(nil)
	_ Geometry = (*PolyhedralSurface)(nil)
	_ Geometry = (*TriangulatedSurface)(nil)
	_ Geometry = (*Solid)(nil)
	_ Geometry = (*GeometryCollection)(nil)
	_ Geometry = (*MultiPoint)(nil)
	_ Geometry = (*MultiLineString)(nil)
	_ Geometry = (*MultiPolygon)(nil)
	_ Geometry = (*MultiSolid)(nil)
)

// base carries the envelope cache shared by every variant.
type base struct {
	env *Envelope
}

func (*base) isGeometry() {}

// InvalidateEnvelope marks the cached envelope dirty.
func (b *base) InvalidateEnvelope() { b.env = nil }

func (b *base) envelope(g Geometry) Envelope {
	if b.env == nil {
		e := computeEnvelope(g)
		b.env = &e
	}
	return *b.env
}

// As returns g as the concrete variant T, or ErrWrongGeometryKind.
func As[T Geometry](g Geometry) (T, error) {
	t, ok := g.(T)
	if !ok {
		var zero T
		want := "Geometry"
		if any(zero) != nil {
			// Variants answer GeometryTypeName on a nil receiver.
			want = zero.GeometryTypeName()
		}
		got := "nil"
		if g != nil {
			got = g.GeometryTypeName()
		}
		return zero, fmt.Errorf("wrong geometry kind: expected %s, got %s: %w", want, got, ErrWrongGeometryKind)
	}
	return t, nil
}

// Walk calls fn on g and, for collections, recursively on every member in
// order. Returning false from fn stops the walk.
func Walk(g Geometry, fn func(Geometry) bool) bool {
	if !fn(g) {
		return false
	}
	if !g.GeometryType().IsCollection() {
		return true
	}
	for i := 0; i < g.NumGeometries(); i++ {
		if !Walk(g.GeometryN(i), fn) {
			return false
		}
	}
	return true
}

// Leaves returns the non-collection geometries of g in order.
func Leaves(g Geometry) []Geometry {
	var out []Geometry
	Walk(g, func(x Geometry) bool {
		if !x.GeometryType().IsCollection() {
			out = append(out, x)
		}
		return true
	})
	return out
}
