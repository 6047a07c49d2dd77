package primitive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/sfgeom/pkg/geom"
	"github.com/chazu/sfgeom/pkg/primitive"
	"github.com/chazu/sfgeom/pkg/wkt"
)

func collect(t *testing.T, text string) *primitive.Set {
	t.Helper()
	s, err := primitive.Collect(wkt.MustRead(text))
	require.NoError(t, err)
	return s
}

func TestCollect(t *testing.T) {
	s := collect(t, "GEOMETRYCOLLECTION(POINT(0 0),LINESTRING(0 0,1 0,1 0,2 0),POLYGON((0 0,1 0,1 1,0 0)),TRIANGLE((0 0,1 0,0 1,0 0)))")
	assert.Len(t, s.Points, 1)
	// Repeated positions yield no segment; the polygon ring adds three.
	assert.Len(t, s.Segments, 5)
	assert.Len(t, s.Triangles, 1)
	assert.Len(t, s.Polygons, 2)
	assert.Equal(t, 2, s.Dimension())
	assert.Equal(t, geom.TypeTriangle, s.Triangles[0].Source.GeometryType())
}

func TestCollectWithSurfaces(t *testing.T) {
	fan := func(p *geom.Polygon) (*geom.TriangulatedSurface, error) {
		r := p.ExteriorRing()
		tin := geom.NewTriangulatedSurface()
		for i := 1; i+2 < r.NumPoints(); i++ {
			tin.AddTriangle(geom.NewTriangle(r.PointN(0), r.PointN(i), r.PointN(i+1)))
		}
		return tin, nil
	}
	g := wkt.MustRead("POLYHEDRALSURFACE(((0 0 0,0 1 0,1 1 0,1 0 0,0 0 0)),((0 0 0,1 0 0,1 0 1,0 0 1,0 0 0)))")
	s, err := primitive.Collect(g, primitive.WithSurfaces(fan))
	require.NoError(t, err)
	assert.Len(t, s.Triangles, 4)
	assert.Empty(t, s.Segments)
	assert.Len(t, s.Polygons, 2)
	for _, h := range s.Triangles {
		assert.Equal(t, g, h.Source)
	}
}

func TestOrdered(t *testing.T) {
	s := collect(t, "GEOMETRYCOLLECTION(POINT(0 0),TRIANGLE((0 0,1 0,0 1,0 0)))")
	x, y, swapped := primitive.Ordered(s.Points[0], s.Triangles[0])
	assert.True(t, swapped)
	assert.Equal(t, primitive.KindTriangle, x.Kind)
	assert.Equal(t, primitive.KindPoint, y.Kind)

	_, _, swapped = primitive.Ordered(s.Triangles[0], s.Triangles[0])
	assert.False(t, swapped)
}

func TestBoxIntersect(t *testing.T) {
	a := collect(t, "MULTILINESTRING((0 0,1 0),(5 5,6 6),(10 0,11 0))").Segments
	b := collect(t, "MULTILINESTRING((1 0,2 0),(5.5 0,5.5 10),(20 20,21 21))").Segments

	var pairs [][2]float64
	stopped := primitive.BoxIntersect(a, b, 2, func(x, y primitive.Handle) bool {
		x0, _ := x.Points[0].X()
		y0, _ := y.Points[0].X()
		pairs = append(pairs, [2]float64{x0, y0})
		return false
	})
	assert.False(t, stopped)
	// Touching boxes count; each pair is reported once with a-side first.
	assert.ElementsMatch(t, [][2]float64{{0, 1}, {5, 5.5}}, pairs)
}

func TestBoxIntersectStops(t *testing.T) {
	a := collect(t, "MULTIPOINT((0 0),(0 0),(0 0))").Points
	b := collect(t, "MULTIPOINT((0 0),(0 0))").Points
	calls := 0
	stopped := primitive.BoxIntersect(a, b, 2, func(x, y primitive.Handle) bool {
		calls++
		return true
	})
	assert.True(t, stopped)
	assert.Equal(t, 1, calls)

	calls = 0
	primitive.BoxIntersect(a, b, 2, func(x, y primitive.Handle) bool {
		calls++
		return false
	})
	assert.Equal(t, 6, calls)
}

func TestBoxIntersect3DFiltersZ(t *testing.T) {
	a := collect(t, "POINT(0 0 0)").Points
	b := collect(t, "POINT(0 0 5)").Points
	hit := false
	primitive.BoxIntersect(a, b, 3, func(x, y primitive.Handle) bool { hit = true; return true })
	assert.False(t, hit)
	primitive.BoxIntersect(a, b, 2, func(x, y primitive.Handle) bool { hit = true; return true })
	assert.True(t, hit)
}

func TestTree(t *testing.T) {
	s := collect(t, "MULTILINESTRING((0 0,1 0),(5 5,6 6),(10 0,11 0))")
	tree := primitive.NewTree(s.Segments)
	assert.Equal(t, 3, tree.Len())

	q := collect(t, "POINT(5.5 5.5)").Points[0].Box
	found := tree.Search(q)
	require.Len(t, found, 1)
	x, _ := found[0].Points[0].X()
	assert.Equal(t, 5.0, x)
}
