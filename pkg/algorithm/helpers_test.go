package algorithm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/sfgeom/pkg/geom"
	"github.com/chazu/sfgeom/pkg/wkt"
)

func read(t *testing.T, text string) geom.Geometry {
	t.Helper()
	g, err := wkt.Read(text)
	require.NoError(t, err)
	return g
}

// assertGeom compares against expected WKT structurally, so "0.5" and
// "1/2" are the same coordinate.
func assertGeom(t *testing.T, want string, got geom.Geometry) {
	t.Helper()
	assert.True(t, geom.Equal(read(t, want), got), "want %s, got %s", want, wkt.Write(got, wkt.Exact))
}

const (
	unitSquare = "POLYGON((0 0,1 0,1 1,0 1,0 0))"
	unitCube   = "SOLID((((0 0 0,0 1 0,1 1 0,1 0 0,0 0 0)),((0 0 1,1 0 1,1 1 1,0 1 1,0 0 1))," +
		"((0 0 0,1 0 0,1 0 1,0 0 1,0 0 0)),((1 1 0,0 1 0,0 1 1,1 1 1,1 1 0))," +
		"((1 0 0,1 1 0,1 1 1,1 0 1,1 0 0)),((0 0 0,0 0 1,0 1 1,0 1 0,0 0 0))))"
)

func cube(x0, y0, z0, x1, y1, z1 float64) geom.Geometry {
	return geom.NewEnvelope3D(x0, y0, z0, x1, y1, z1).ToSolid()
}
