package wkt

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/chazu/sfgeom/pkg/geom"
)

// Exact selects exact number output in Write: integers as "2", other
// rationals as "1/3".
const Exact = -1

// Write renders g. numDecimals >= 0 prints every number in fixed point
// with that many decimals; Exact prints rationals without loss.
func Write(g geom.Geometry, numDecimals int) string {
	w := &writer{decimals: numDecimals}
	w.geometry(g)
	return w.b.String()
}

// WriteEWKT renders a prepared geometry with its "SRID=n;" prefix.
func WriteEWKT(p *geom.PreparedGeometry, numDecimals int) string {
	return "SRID=" + strconv.FormatUint(uint64(p.SRID), 10) + ";" + Write(p.Geometry, numDecimals)
}

type writer struct {
	b        strings.Builder
	decimals int
}

func keyword(t geom.GeometryType) string {
	switch t {
	case geom.TypeTriangulatedSurface:
		return "TIN"
	default:
		return strings.ToUpper(t.String())
	}
}

func (w *writer) geometry(g geom.Geometry) {
	w.b.WriteString(keyword(g.GeometryType()))
	if g.IsEmpty() {
		w.b.WriteString(" EMPTY")
		return
	}
	w.body(g)
}

// body writes the parenthesized content of g without its keyword.
func (w *writer) body(g geom.Geometry) {
	switch x := g.(type) {
	case *geom.Point:
		w.b.WriteByte('(')
		w.coordinate(x.Coordinate())
		w.b.WriteByte(')')
	case *geom.LineString:
		w.lineString(x)
	case *geom.Polygon:
		w.polygon(x)
	case *geom.Triangle:
		w.b.WriteByte('(')
		w.lineString(x.ExteriorRing())
		w.b.WriteByte(')')
	case *geom.TriangulatedSurface:
		w.b.WriteByte('(')
		for i := 0; i < x.NumTriangles(); i++ {
			w.sep(i)
			w.b.WriteByte('(')
			w.lineString(x.TriangleN(i).ExteriorRing())
			w.b.WriteByte(')')
		}
		w.b.WriteByte(')')
	case *geom.PolyhedralSurface:
		w.surface(x)
	case *geom.Solid:
		w.solid(x)
	case *geom.MultiPoint:
		w.b.WriteByte('(')
		for i := 0; i < x.NumGeometries(); i++ {
			w.sep(i)
			p := x.PointN(i)
			if p.IsEmpty() {
				w.b.WriteString("EMPTY")
				continue
			}
			w.b.WriteByte('(')
			w.coordinate(p.Coordinate())
			w.b.WriteByte(')')
		}
		w.b.WriteByte(')')
	case *geom.GeometryCollection:
		w.b.WriteByte('(')
		for i := 0; i < x.NumGeometries(); i++ {
			w.sep(i)
			w.geometry(x.GeometryN(i))
		}
		w.b.WriteByte(')')
	default:
		// MultiLineString, MultiPolygon and MultiSolid list member bodies.
		w.b.WriteByte('(')
		for i := 0; i < g.NumGeometries(); i++ {
			w.sep(i)
			w.body(g.GeometryN(i))
		}
		w.b.WriteByte(')')
	}
}

func (w *writer) sep(i int) {
	if i > 0 {
		w.b.WriteByte(',')
	}
}

func (w *writer) lineString(l *geom.LineString) {
	w.b.WriteByte('(')
	for i := 0; i < l.NumPoints(); i++ {
		w.sep(i)
		w.coordinate(l.PointN(i))
	}
	w.b.WriteByte(')')
}

func (w *writer) polygon(p *geom.Polygon) {
	w.b.WriteByte('(')
	for i := 0; i < p.NumRings(); i++ {
		w.sep(i)
		w.lineString(p.RingN(i))
	}
	w.b.WriteByte(')')
}

func (w *writer) surface(s *geom.PolyhedralSurface) {
	w.b.WriteByte('(')
	for i := 0; i < s.NumPolygons(); i++ {
		w.sep(i)
		w.polygon(s.PolygonN(i))
	}
	w.b.WriteByte(')')
}

func (w *writer) solid(s *geom.Solid) {
	w.b.WriteByte('(')
	for i := 0; i < s.NumShells(); i++ {
		w.sep(i)
		w.surface(s.ShellN(i))
	}
	w.b.WriteByte(')')
}

func (w *writer) coordinate(c geom.Coordinate) {
	w.number(c.ExactX())
	w.b.WriteByte(' ')
	w.number(c.ExactY())
	if c.Is3D() {
		w.b.WriteByte(' ')
		w.number(c.ExactZ())
	}
}

func (w *writer) number(r *big.Rat) {
	if w.decimals < 0 {
		w.b.WriteString(r.RatString())
		return
	}
	w.b.WriteString(r.FloatString(w.decimals))
}
