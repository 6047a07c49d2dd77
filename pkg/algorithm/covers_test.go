package algorithm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/sfgeom/pkg/algorithm"
	"github.com/chazu/sfgeom/pkg/geom"
)

const (
	concave    = "POLYGON((0.4 0,0 0,0 1,1 1,1 0,0.6 0,0.5 0.4,0.4 0))"
	innerPatch = "POLYGON((0.2 0.2,0.8 0.2,0.8 0.8,0.2 0.8,0.2 0.2))"
)

func TestCoversPoints(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"same point", "POINT(0 0)", "POINT(0 0)", true},
		{"other point", "POINT(0 0)", "POINT(0 1)", false},
		{"inner square", unitSquare, innerPatch, true},
		{"concave notch", concave, innerPatch, true},
		{"outside vertex", unitSquare, "LINESTRING(0.5 0.5,2 0.5)", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := algorithm.CoversPoints(read(t, tt.a), read(t, tt.b))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			got, err = algorithm.CoversPoints3D(read(t, tt.a), read(t, tt.b))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCovers(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"point on line", "LINESTRING(0 0,1 0)", "POINT(0.5 0)", true},
		{"sub line", "LINESTRING(0 0,1 0)", "LINESTRING(0.2 0,0.7 0)", true},
		{"line across vertex", "LINESTRING(0 0,1 0,2 0)", "LINESTRING(0.5 0,1.5 0)", true},
		{"longer line", "LINESTRING(0 0,1 0)", "LINESTRING(0.5 0,1.5 0)", false},
		{"inner square", unitSquare, innerPatch, true},
		// Every vertex is covered but the notch cuts the edge.
		{"concave notch", concave, innerPatch, false},
		{"boundary line", unitSquare, "LINESTRING(0 0,1 0)", true},
		{"self", unitSquare, unitSquare, true},
		{"line cannot cover area", "LINESTRING(0 0,1 0)", unitSquare, false},
		{"hole", "POLYGON((0 0,4 0,4 4,0 4,0 0),(1 1,1 3,3 3,3 1,1 1))", "POINT(2 2)", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := algorithm.Covers(read(t, tt.a), read(t, tt.b))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := algorithm.Covers(read(t, unitCube), read(t, "POINT(0 0)"))
	assert.ErrorIs(t, err, algorithm.ErrUnsupportedTypePair)
}

func TestCovers3D(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"point inside", unitCube, "POINT(0.5 0.5 0.5)", true},
		{"point on face", unitCube, "POINT(0.5 0.5 1)", true},
		{"point outside", unitCube, "POINT(0.5 0.5 1.5)", false},
		{"inner segment", unitCube, "LINESTRING(0.1 0.1 0.1,0.9 0.9 0.9)", true},
		{"leaving segment", unitCube, "LINESTRING(0.5 0.5 0.5,0.5 0.5 2)", false},
		{"inner triangle", unitCube, "TRIANGLE((0.1 0.1 0.1,0.9 0.1 0.1,0.1 0.9 0.9,0.1 0.1 0.1))", true},
		{"face triangle", unitCube, "TRIANGLE((0 0 1,1 0 1,0 1 1,0 0 1))", true},
		{"surface cannot cover solid", "TRIANGLE((0 0 0,1 0 0,0 1 0,0 0 0))", unitCube, false},
		{"coplanar triangles", "TIN(((0 0 0,1 0 0,0 1 0,0 0 0)),((1 0 0,1 1 0,0 1 0,1 0 0)))", "TRIANGLE((0.2 0.2 0,0.8 0.2 0,0.8 0.8 0,0.2 0.2 0))", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := algorithm.Covers3D(read(t, tt.a), read(t, tt.b))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := algorithm.Covers3D(cube(0, 0, 0, 2, 2, 2), read(t, unitCube))
	require.NoError(t, err)
	assert.True(t, got)
}

func TestSolidWithCavity(t *testing.T) {
	s := cube(0, 0, 0, 4, 4, 4).(*geom.Solid)
	cavity := cube(1, 1, 1, 3, 3, 3).(*geom.Solid).ExteriorShell()
	cavity.Reverse()
	s.AddInteriorShell(cavity)

	inCavity := geom.NewPoint3D(2, 2, 2)
	covered, err := algorithm.Covers3D(s, inCavity)
	require.NoError(t, err)
	assert.False(t, covered)

	hit, err := algorithm.Intersects3D(s, inCavity)
	require.NoError(t, err)
	assert.False(t, hit)

	d, err := algorithm.Distance3D(s, inCavity)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, d, 1e-9)

	inMaterial := geom.NewPoint3D(0.5, 0.5, 0.5)
	covered, err = algorithm.Covers3D(s, inMaterial)
	require.NoError(t, err)
	assert.True(t, covered)

	onCavityWall := geom.NewPoint3D(2, 2, 1)
	hit, err = algorithm.Intersects3D(s, onCavityWall)
	require.NoError(t, err)
	assert.True(t, hit)

	assert.InDelta(t, 56.0, algorithm.Volume(s), 1e-9)
}
