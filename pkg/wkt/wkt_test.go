package wkt_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/sfgeom/pkg/geom"
	"github.com/chazu/sfgeom/pkg/wkt"
)

var roundTripCases = []string{
	"POINT EMPTY",
	"POINT(2 3)",
	"POINT(2 3 4)",
	"POINT(1/3 -2/7)",
	"LINESTRING EMPTY",
	"LINESTRING(0 0,1 1,2 0)",
	"POLYGON((0 0,10 0,10 10,0 10,0 0),(2 2,2 4,4 4,4 2,2 2))",
	"TRIANGLE((0 0 0,1 0 0,0 1 0,0 0 0))",
	"MULTIPOINT((0 0),(1 1))",
	"MULTILINESTRING((0 0,1 1),(2 2,3 3))",
	"MULTIPOLYGON(((0 0,1 0,1 1,0 0)),((5 5,6 5,6 6,5 5)))",
	"GEOMETRYCOLLECTION(POINT(1 2),LINESTRING(0 0,1 1),POINT EMPTY)",
	"TIN(((0 0 0,1 0 0,0 1 0,0 0 0)),((1 0 0,1 1 0,0 1 0,1 0 0)))",
	"POLYHEDRALSURFACE(((0 0 0,0 1 0,1 1 0,1 0 0,0 0 0)))",
	"SOLID((((0 0 0,0 1 0,1 1 0,1 0 0,0 0 0)),((0 0 1,1 0 1,1 1 1,0 1 1,0 0 1))))",
	"MULTISOLID(((((0 0 0,0 1 0,1 0 0,0 0 0)))))",
	"SOLID EMPTY",
	"MULTISOLID EMPTY",
}

func TestRoundTripExact(t *testing.T) {
	for _, text := range roundTripCases {
		t.Run(text, func(t *testing.T) {
			g, err := wkt.Read(text)
			require.NoError(t, err)
			out := wkt.Write(g, wkt.Exact)
			assert.Equal(t, text, out)

			again, err := wkt.Read(out)
			require.NoError(t, err)
			assert.True(t, geom.Equal(g, again), "read(asText(g)) != g")
		})
	}
}

func TestFixedDecimals(t *testing.T) {
	g := wkt.MustRead("POINT(2 3)")
	assert.Equal(t, "POINT(2.000 3.000)", wkt.Write(g, 3))

	g = wkt.MustRead("POINT(1/3 2.5e1)")
	assert.Equal(t, "POINT(0.33 25.00)", wkt.Write(g, 2))
}

func TestReaderVariants(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lower case", "point (1 2)", "POINT(1 2)"},
		{"z marker", "POINT Z (1 2 3)", "POINT(1 2 3)"},
		{"flat multipoint", "MULTIPOINT(0 0, 1 1)", "MULTIPOINT((0 0),(1 1))"},
		{"triangulated surface", "TRIANGULATEDSURFACE(((0 0,1 0,0 1,0 0)))", "TIN(((0 0,1 0,0 1,0 0)))"},
		{"open triangle ring", "TRIANGLE((0 0,1 0,0 1))", "TRIANGLE((0 0,1 0,0 1,0 0))"},
		{"decimals", "POINT(0.5 -1.25)", "POINT(1/2 -5/4)"},
		{"whitespace", "  LINESTRING ( 0 0 ,\n 1 1 )  ", "LINESTRING(0 0,1 1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := wkt.Read(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, wkt.Write(g, wkt.Exact))
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in     string
		offset int
	}{
		{"POINT(1 2", 9},
		{"CIRCLE(0 0)", 0},
		{"POINT(1 x)", 8},
		{"POINT(1 2) junk", 11},
		{"TRIANGLE((0 0,1 0,1 1,2 2,0 0))", 8},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := wkt.Read(tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, wkt.ErrParse))

			var pe *wkt.ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.offset, pe.Offset)
			assert.Contains(t, err.Error(), "wkt: parse error at offset")
		})
	}
}

func TestEWKT(t *testing.T) {
	pg, err := wkt.ReadEWKT("SRID=4326;POINT(1 2)")
	require.NoError(t, err)
	assert.EqualValues(t, 4326, pg.SRID)
	assert.Equal(t, "SRID=4326;POINT(1.0 2.0)", wkt.WriteEWKT(pg, 1))

	pg, err = wkt.ReadEWKT("POINT(1 2)")
	require.NoError(t, err)
	assert.EqualValues(t, 0, pg.SRID)

	_, err = wkt.ReadEWKT("SRID=abc;POINT(1 2)")
	assert.ErrorContains(t, err, "invalid SRID")
}
