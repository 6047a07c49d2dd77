package algorithm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/sfgeom/pkg/algorithm"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		valid  bool
		reason string
	}{
		{"empty point", "POINT EMPTY", true, ""},
		{"point", "POINT(1 2)", true, ""},
		{"multipoint", "MULTIPOINT((0 0),(0 0))", true, ""},
		{"line", "LINESTRING(0 0,1 0)", true, ""},
		{"zero length line", "LINESTRING(1 1,1 1)", false, ""},
		{"empty polygon", "POLYGON EMPTY", true, ""},
		{"square", unitSquare, true, ""},
		{"square with hole", "POLYGON((0 0,4 0,4 4,0 4,0 0),(1 1,1 3,3 3,3 1,1 1))", true, ""},
		{"too few points", "POLYGON((0 0,1 0,0 0))", false, "not enough points in Polygon ring"},
		{"not closed", "POLYGON((0 0,1 0,1 1,0 1))", false, "ring is not closed"},
		{"bow tie", "POLYGON((0 0,1 1,1 0,0 1,0 0))", false, "ring self intersects"},
		{"spike", "POLYGON((0 0,2 0,1 0,1 1,0 0))", false, "ring self intersects"},
		{"clockwise exterior", "POLYGON((0 0,0 1,1 1,1 0,0 0))", false, "exterior ring is oriented clockwise"},
		{"counterclockwise hole", "POLYGON((0 0,4 0,4 4,0 4,0 0),(1 1,3 1,3 3,1 3,1 1))", false, "interior ring 0 is oriented counterclockwise"},
		{"not planar", "POLYGON((0 0 0,1 0 0,1 1 1,0 1 0,0 0 0))", false, "points don't lie in the same plane"},
		{"3d hole orientation", "POLYGON((0 0 0,4 0 0,4 4 0,0 4 0,0 0 0),(1 1 0,3 1 0,3 3 0,1 3 0,1 1 0))", false, "interior ring 0 has the same orientation as the exterior ring"},
		{"crossing hole", "POLYGON((0 0,4 0,4 4,0 4,0 0),(1 1,1 5,3 5,3 1,1 1))", false, "intersection between ring 0 and 1"},
		{"hole outside", "POLYGON((0 0,4 0,4 4,0 4,0 0),(5 5,5 6,6 6,6 5,5 5))", false, "exterior ring doesn't cover interior ring 0"},
		{"nested holes", "POLYGON((0 0,10 0,10 10,0 10,0 0),(1 1,1 9,9 9,9 1,1 1),(2 2,2 3,3 3,3 2,2 2))", false, "interior ring 0 covers interior ring 1"},
		{"hole touching once", "POLYGON((0 0,4 0,4 4,0 4,0 0),(0 0,1 2,2 1,0 0))", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := algorithm.IsValid(read(t, tt.text))
			require.NoError(t, err)
			assert.Equal(t, tt.valid, v.Valid, v.Reason)
			if tt.reason != "" {
				assert.Equal(t, tt.reason, v.Reason)
			}
		})
	}
}

func TestIsValidNotImplemented(t *testing.T) {
	_, err := algorithm.IsValid(read(t, unitCube))
	assert.ErrorIs(t, err, algorithm.ErrNotImplemented)
}

func TestCheckValidity(t *testing.T) {
	require.NoError(t, algorithm.CheckValidity(read(t, unitSquare)))

	err := algorithm.CheckValidity(read(t, "POLYGON((0 0,0 1,1 1,1 0,0 0))"))
	require.Error(t, err)
	assert.Equal(t, "POLYGON((0 0,0 1,1 1,1 0,0 0)) is invalid : exterior ring is oriented clockwise", err.Error())
}
