package algorithm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/sfgeom/pkg/algorithm"
	"github.com/chazu/sfgeom/pkg/geom"
)

func TestExtrudePoint(t *testing.T) {
	got, err := algorithm.Extrude(read(t, "POINT(0 0)"), 0, 0, 1)
	require.NoError(t, err)
	assertGeom(t, "LINESTRING(0 0 0,0 0 1)", got)

	got, err = algorithm.Extrude(read(t, "MULTIPOINT((0 0),(1 1))"), 0, 0, 1)
	require.NoError(t, err)
	assertGeom(t, "MULTILINESTRING((0 0 0,0 0 1),(1 1 0,1 1 1))", got)
}

func TestExtrudeLineString(t *testing.T) {
	got, err := algorithm.Extrude(read(t, "LINESTRING(0 0,1 0,1 1)"), 0, 0, 1)
	require.NoError(t, err)
	require.Equal(t, geom.TypePolyhedralSurface, got.GeometryType())
	assert.Equal(t, 2, got.(*geom.PolyhedralSurface).NumPolygons())
	assert.InDelta(t, 2.0, algorithm.Area3D(got), 1e-12)
}

func TestExtrudePolygon(t *testing.T) {
	for _, dz := range []float64{1, -1} {
		got, err := algorithm.Extrude(read(t, unitSquare), 0, 0, dz)
		require.NoError(t, err)
		require.Equal(t, geom.TypeSolid, got.GeometryType())
		s := got.(*geom.Solid)
		assert.Equal(t, 6, s.ExteriorShell().NumPolygons())
		assert.InDelta(t, 1.0, algorithm.Volume(s), 1e-12)

		ok, err := algorithm.IsClosed(s.ExteriorShell())
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = algorithm.HasConsistentOrientation3D(s.ExteriorShell())
		require.NoError(t, err)
		assert.True(t, ok)

		inside, err := algorithm.Intersects3D(read(t, "POINT(0.5 0.5 0)"), s)
		require.NoError(t, err)
		assert.True(t, inside)
	}
}

func TestExtrudePolygonWithHole(t *testing.T) {
	got, err := algorithm.Extrude(read(t, "POLYGON((0 0,4 0,4 4,0 4,0 0),(1 1,1 3,3 3,3 1,1 1))"), 0, 0, 2)
	require.NoError(t, err)
	s := got.(*geom.Solid)
	// Bottom, top, four outer walls and four inner walls.
	assert.Equal(t, 10, s.ExteriorShell().NumPolygons())
	assert.InDelta(t, 24.0, algorithm.Volume(s), 1e-12)
}

func TestExtrudeMulti(t *testing.T) {
	got, err := algorithm.Extrude(read(t, "MULTIPOLYGON(((0 0,1 0,1 1,0 1,0 0)),((2 0,3 0,3 1,2 1,2 0)))"), 0, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, geom.TypeMultiSolid, got.GeometryType())
	assert.InDelta(t, 2.0, algorithm.Volume(got), 1e-12)

	got, err = algorithm.Extrude(read(t, "MULTILINESTRING((0 0,1 0),(0 1,1 1))"), 0, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, got.(*geom.PolyhedralSurface).NumPolygons())

	got, err = algorithm.Extrude(read(t, "TRIANGLE((0 0,1 0,0 1,0 0))"), 0, 0, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, algorithm.Volume(got), 1e-12)
}

func TestExtrudeSurface(t *testing.T) {
	got, err := algorithm.Extrude(read(t, "POLYHEDRALSURFACE(((0 0 0,1 0 0,1 1 0,0 1 0,0 0 0)),((1 0 0,2 0 0,2 1 0,1 1 0,1 0 0)))"), 0, 0, 1)
	require.NoError(t, err)
	require.Equal(t, geom.TypeSolid, got.GeometryType())
	assert.InDelta(t, 2.0, algorithm.Volume(got), 1e-12)

	ok, err := algorithm.HasConsistentOrientation3D(got.(*geom.Solid).ExteriorShell())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestExtrudeEmptyAndUnsupported(t *testing.T) {
	got, err := algorithm.Extrude(read(t, "POLYGON EMPTY"), 0, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, geom.TypeSolid, got.GeometryType())
	assert.True(t, got.IsEmpty())

	_, err = algorithm.Extrude(read(t, "GEOMETRYCOLLECTION(POINT(0 0))"), 0, 0, 1)
	assert.ErrorIs(t, err, algorithm.ErrNotImplemented)
}
