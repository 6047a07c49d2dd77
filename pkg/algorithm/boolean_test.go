package algorithm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/sfgeom/pkg/algorithm"
	"github.com/chazu/sfgeom/pkg/geom"
)

func TestDifferencePoints(t *testing.T) {
	got, err := algorithm.Difference(read(t, "POINT(0 0)"), read(t, "POINT(0 0)"))
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())

	got, err = algorithm.Difference(read(t, "POINT(0 0)"), read(t, "POINT(1 0)"))
	require.NoError(t, err)
	assertGeom(t, "POINT(0 0)", got)

	got, err = algorithm.Difference(read(t, "POINT(0.5 0)"), read(t, "LINESTRING(0 0,1 0)"))
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestDifferenceLines(t *testing.T) {
	tests := []struct {
		name, a, b, want string
	}{
		{"inner piece", "LINESTRING(0 0,1 0)", "LINESTRING(0.5 0,0.7 0)", "MULTILINESTRING((0 0,0.5 0),(0.7 0,1 0))"},
		{"inner piece reversed", "LINESTRING(0 0,1 0)", "LINESTRING(0.7 0,0.5 0)", "MULTILINESTRING((0 0,0.5 0),(0.7 0,1 0))"},
		{"crossing line", "LINESTRING(0 0,1 0)", "LINESTRING(0.5 -1,0.5 1)", "LINESTRING(0 0,1 0)"},
		{"overlapping start", "LINESTRING(0 0,1 0)", "LINESTRING(-1 0,0.7 0)", "LINESTRING(0.7 0,1 0)"},
		{"disjoint", "LINESTRING(0 0,1 0)", "LINESTRING(0 1,1 1)", "LINESTRING(0 0,1 0)"},
		{"around a corner", "LINESTRING(0 0,1 0,1 1)", "LINESTRING(0.3 0,1 0,1 0.4)", "MULTILINESTRING((0 0,0.3 0),(1 0.4,1 1))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := algorithm.Difference(read(t, tt.a), read(t, tt.b))
			require.NoError(t, err)
			assertGeom(t, tt.want, got)
		})
	}

	got, err := algorithm.Difference(read(t, "LINESTRING(0.2 0,0.4 0)"), read(t, "LINESTRING(0 0,1 0)"))
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestDifferencePolygons(t *testing.T) {
	got, err := algorithm.Difference(read(t, unitSquare), read(t, unitSquare))
	require.NoError(t, err)
	assert.Equal(t, geom.TypeGeometryCollection, got.GeometryType())
	assert.True(t, got.IsEmpty())

	got, err = algorithm.Difference(read(t, "POLYGON((0 0,2 0,2 2,0 2,0 0))"), read(t, "POLYGON((1 0,3 0,3 2,1 2,1 0))"))
	require.NoError(t, err)
	assert.Equal(t, geom.TypePolygon, got.GeometryType())
	assert.InDelta(t, 2.0, algorithm.Area(got), 1e-12)

	// Punching a hole.
	got, err = algorithm.Difference(read(t, "POLYGON((0 0,4 0,4 4,0 4,0 0))"), read(t, "POLYGON((1 1,3 1,3 3,1 3,1 1))"))
	require.NoError(t, err)
	require.Equal(t, geom.TypePolygon, got.GeometryType())
	assert.Equal(t, 1, got.(*geom.Polygon).NumInteriorRings())
	assert.InDelta(t, 12.0, algorithm.Area(got), 1e-12)
	v, err := algorithm.IsValid(got)
	require.NoError(t, err)
	assert.True(t, v.Valid, v.Reason)

	// Disjoint operands leave a unchanged.
	got, err = algorithm.Difference(read(t, unitSquare), read(t, "POLYGON((5 5,6 5,6 6,5 6,5 5))"))
	require.NoError(t, err)
	assertGeom(t, unitSquare, got)
}

func TestIntersection(t *testing.T) {
	got, err := algorithm.Intersection(read(t, "LINESTRING(0 0,1 1)"), read(t, "LINESTRING(0 1,1 0)"))
	require.NoError(t, err)
	assertGeom(t, "POINT(0.5 0.5)", got)

	got, err = algorithm.Intersection(read(t, "LINESTRING(-1 0.5,2 0.5)"), read(t, unitSquare))
	require.NoError(t, err)
	assertGeom(t, "LINESTRING(0 0.5,1 0.5)", got)

	got, err = algorithm.Intersection(read(t, "POLYGON((0 0,2 0,2 2,0 2,0 0))"), read(t, "POLYGON((1 1,3 1,3 3,1 3,1 1))"))
	require.NoError(t, err)
	assert.Equal(t, geom.TypePolygon, got.GeometryType())
	assert.InDelta(t, 1.0, algorithm.Area(got), 1e-12)

	// Squares sharing only an edge meet along it.
	got, err = algorithm.Intersection(read(t, unitSquare), read(t, "POLYGON((1 0,2 0,2 1,1 1,1 0))"))
	require.NoError(t, err)
	assert.Equal(t, 1, got.Dimension())
	assert.InDelta(t, 1.0, algorithm.Length(got), 1e-12)

	got, err = algorithm.Intersection(read(t, unitSquare), read(t, "POLYGON((5 5,6 5,6 6,5 6,5 5))"))
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())

	got, err = algorithm.Intersection(read(t, "POINT EMPTY"), read(t, unitSquare))
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestUnion(t *testing.T) {
	got, err := algorithm.Union(read(t, "POINT(0 1)"), read(t, "POINT(0 1)"))
	require.NoError(t, err)
	assertGeom(t, "POINT(0 1)", got)

	got, err = algorithm.Union(read(t, "POINT(0 0)"), read(t, "POINT(0 1)"))
	require.NoError(t, err)
	assertGeom(t, "MULTIPOINT((0 0),(0 1))", got)

	got, err = algorithm.Union(read(t, "TRIANGLE((0 0,1 0,0 1,0 0))"), read(t, "POINT(0.1 0.1)"))
	require.NoError(t, err)
	assertGeom(t, "TRIANGLE((0 0,1 0,0 1,0 0))", got)

	got, err = algorithm.Union(read(t, unitSquare), read(t, "POLYGON((0 0,1 0,1 1,0 1,0 0),(0.2 0.2,0.2 0.8,0.8 0.8,0.8 0.2,0.2 0.2))"))
	require.NoError(t, err)
	assertGeom(t, unitSquare, got)

	got, err = algorithm.Union(read(t, "POLYGON((0 0,2 0,2 2,0 2,0 0))"), read(t, "POLYGON((1 1,3 1,3 3,1 3,1 1))"))
	require.NoError(t, err)
	require.Equal(t, geom.TypePolygon, got.GeometryType())
	assert.InDelta(t, 7.0, algorithm.Area(got), 1e-12)

	got, err = algorithm.Union(read(t, unitSquare), read(t, "POLYGON((5 5,6 5,6 6,5 6,5 5))"))
	require.NoError(t, err)
	assert.Equal(t, geom.TypeMultiPolygon, got.GeometryType())

	got, err = algorithm.Union(read(t, "LINESTRING(0 0,1 0)"), read(t, "POINT(5 5)"))
	require.NoError(t, err)
	assert.Equal(t, geom.TypeGeometryCollection, got.GeometryType())
}

func TestBooleanRejectsSolids(t *testing.T) {
	_, err := algorithm.Union(read(t, unitCube), read(t, unitSquare))
	assert.ErrorIs(t, err, algorithm.ErrUnsupportedBoolean)
}

// Intersection never escapes either operand and difference never touches
// the interior of what it removes.
func TestBooleanProperties(t *testing.T) {
	pairs := [][2]string{
		{"POLYGON((0 0,2 0,2 2,0 2,0 0))", "POLYGON((1 1,3 1,3 3,1 3,1 1))"},
		{"POLYGON((0 0,4 0,4 4,0 4,0 0))", "TRIANGLE((1 1,3 1,2 5,1 1))"},
		{concave, innerPatch},
	}
	for _, p := range pairs {
		a, b := read(t, p[0]), read(t, p[1])
		inter, err := algorithm.Intersection(a, b)
		require.NoError(t, err)
		union, err := algorithm.Union(a, b)
		require.NoError(t, err)
		diff, err := algorithm.Difference(a, b)
		require.NoError(t, err)

		for _, op := range []geom.Geometry{a, b} {
			ok, err := algorithm.Covers(op, inter)
			require.NoError(t, err)
			assert.True(t, ok, "intersection escapes an operand")
		}
		ok, err := algorithm.Covers(union, a)
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = algorithm.Covers(a, diff)
		require.NoError(t, err)
		assert.True(t, ok)

		// |A| = |A ∩ B| + |A - B| and |A ∪ B| = |A| + |B| - |A ∩ B|.
		assert.InDelta(t, algorithm.Area(a), algorithm.Area(inter)+algorithm.Area(diff), 1e-9)
		assert.InDelta(t, algorithm.Area(union), algorithm.Area(a)+algorithm.Area(b)-algorithm.Area(inter), 1e-9)
	}
}
