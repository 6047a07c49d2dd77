package algorithm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/sfgeom/pkg/algorithm"
	"github.com/chazu/sfgeom/pkg/geom"
)

func TestDifference3DCubes(t *testing.T) {
	got, err := algorithm.Difference3D(read(t, unitCube), read(t, unitCube))
	require.NoError(t, err)
	assert.Equal(t, geom.TypeGeometryCollection, got.GeometryType())
	assert.True(t, got.IsEmpty())

	got, err = algorithm.Difference3D(read(t, unitCube), cube(0, 0, 0.5, 1, 1, 1))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, algorithm.Volume(got), 1e-9)

	got, err = algorithm.Difference3D(read(t, unitCube), cube(5, 5, 5, 6, 6, 6))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, algorithm.Volume(got), 1e-9)
}

func TestDifference3DPoints(t *testing.T) {
	got, err := algorithm.Difference3D(read(t, "MULTIPOINT((0.5 0.5 0.5),(3 3 3))"), read(t, unitCube))
	require.NoError(t, err)
	assertGeom(t, "POINT(3 3 3)", got)
}

func TestIntersection3D(t *testing.T) {
	got, err := algorithm.Intersection3D(read(t, unitCube), read(t, "POINT(0.5 0.5 0.5)"))
	require.NoError(t, err)
	assertGeom(t, "POINT(0.5 0.5 0.5)", got)

	got, err = algorithm.Intersection3D(read(t, "LINESTRING(0.5 0.5 -1,0.5 0.5 2)"), read(t, unitCube))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, algorithm.Length3D(got), 1e-9)

	got, err = algorithm.Intersection3D(read(t, unitCube), cube(0.5, 0.5, 0.5, 2, 2, 2))
	require.NoError(t, err)
	assert.InDelta(t, 0.125, algorithm.Volume(got), 1e-9)

	got, err = algorithm.Intersection3D(read(t, unitCube), cube(5, 5, 5, 6, 6, 6))
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestUnion3D(t *testing.T) {
	got, err := algorithm.Union3D(read(t, "POINT(0 0 0)"), read(t, "POINT(0 1 0)"))
	require.NoError(t, err)
	assertGeom(t, "MULTIPOINT((0 0 0),(0 1 0))", got)

	got, err = algorithm.Union3D(read(t, unitCube), cube(0.5, 0, 0, 1.5, 1, 1))
	require.NoError(t, err)
	assert.InDelta(t, 1.5, algorithm.Volume(got), 1e-9)

	got, err = algorithm.Union3D(read(t, unitCube), cube(3, 0, 0, 4, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, geom.TypeMultiSolid, got.GeometryType())
	assert.InDelta(t, 2.0, algorithm.Volume(got), 1e-9)

	got, err = algorithm.Union3D(read(t, unitCube), read(t, "POINT(0.5 0.5 0.5)"))
	require.NoError(t, err)
	assert.Equal(t, geom.TypeSolid, got.GeometryType())
}

func TestBoolean3DProperties(t *testing.T) {
	a := read(t, unitCube)
	b := cube(0.5, 0.5, 0.5, 1.5, 1.5, 1.5)

	inter, err := algorithm.Intersection3D(a, b)
	require.NoError(t, err)
	diff, err := algorithm.Difference3D(a, b)
	require.NoError(t, err)
	union, err := algorithm.Union3D(a, b)
	require.NoError(t, err)

	assert.InDelta(t, algorithm.Volume(a), algorithm.Volume(inter)+algorithm.Volume(diff), 1e-9)
	assert.InDelta(t, algorithm.Volume(union), algorithm.Volume(a)+algorithm.Volume(b)-algorithm.Volume(inter), 1e-9)

	ok, err := algorithm.Covers3D(a, inter)
	require.NoError(t, err)
	assert.True(t, ok)
}
