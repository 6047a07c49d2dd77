package format_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/sfgeom/pkg/algorithm"
	"github.com/chazu/sfgeom/pkg/format"
)

const exampleASC = `ncols        4
nrows        6
xllcorner    0.0
yllcorner    0.0
cellsize     50.0
NODATA_value  -9999
-9999 -9999 5 2
-9999 20 100 36
3 8 35 10
32 42 50 6
88 75 27 9
13 5 1 -9999
`

func TestReadASC(t *testing.T) {
	g, err := format.ReadASC(strings.NewReader(exampleASC))
	require.NoError(t, err)
	assert.Equal(t, 4, g.Width)
	assert.Equal(t, 6, g.Height)
	assert.Equal(t, 50.0, g.Dx)
	assert.Equal(t, 50.0, g.Dy)
	assert.Equal(t, format.PixelIsArea, g.Convention)
	assert.Equal(t, 5.0, g.Value(0, 2))
	assert.True(t, g.IsNoData(0, 0))

	// Row 0 is the northern row; with corner registration samples sit at
	// cell centers.
	assert.Equal(t, [3]float64{25, 275, -9999}, g.Point(0, 0).XYZ())
	assert.Equal(t, [3]float64{175, 25, -9999}, g.Point(5, 3).XYZ())

	env := g.Envelope()
	assert.Equal(t, 200.0, env.XMax())
	assert.Equal(t, 300.0, env.YMax())
}

func TestReadASCCenter(t *testing.T) {
	src := "NCOLS 2\nNROWS 2\nXLLCENTER 10\nYLLCENTER 20\nDX 1\nDY 2\n1 2\n3 4\n"
	g, err := format.ReadASC(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, format.PixelIsPoint, g.Convention)
	assert.Equal(t, [3]float64{10, 22, 1}, g.Point(0, 0).XYZ())
	assert.Equal(t, [3]float64{11, 20, 4}, g.Point(1, 1).XYZ())
	assert.Equal(t, 11.0, g.Envelope().XMax())
}

func TestReadASCErrors(t *testing.T) {
	tests := map[string]string{
		"missing size":   "xllcorner 0\nyllcorner 0\ncellsize 1\n1\n",
		"missing origin": "ncols 1\nnrows 1\ncellsize 1\n1\n",
		"missing cell":   "ncols 1\nnrows 1\nxllcorner 0\nyllcorner 0\n1\n",
		"too few":        "ncols 2\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n1\n",
		"too many":       "ncols 1\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2\n",
		"bad value":      "ncols 1\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\nx\n",
		"bad header":     "ncols one\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := format.ReadASC(strings.NewReader(src))
			assert.Error(t, err)
		})
	}
}

func TestGridToTIN(t *testing.T) {
	g := format.NewGrid(3, 2, 0, 0, 1, 1)
	g.Convention = format.PixelIsPoint
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			g.SetValue(i, j, float64(i+j))
		}
	}
	tin := g.ToTIN()
	require.Equal(t, 4, tin.NumTriangles())
	assert.InDelta(t, 2.0, algorithm.Area(tin), 1e-12)
	for _, tri := range tin.Triangles() {
		ok, err := algorithm.IsCounterClockwiseOriented(tri)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	g.SetValue(0, 0, g.NoData)
	assert.Equal(t, 2, g.ToTIN().NumTriangles())
}

func TestGridExampleTIN(t *testing.T) {
	g, err := format.ReadASC(strings.NewReader(exampleASC))
	require.NoError(t, err)
	// 15 lattice quads, 4 of them touch a NODATA sample.
	assert.Equal(t, 22, g.ToTIN().NumTriangles())
}
