package format

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/chazu/sfgeom/pkg/geom"
)

// PixelConvention says whether grid values sample cell centers or cell
// corners.
type PixelConvention int

const (
	// PixelIsArea: values describe cells; points sit at cell centers.
	PixelIsArea PixelConvention = iota
	// PixelIsPoint: values are samples at the lattice points themselves.
	PixelIsPoint
)

// DefaultNoData is the ESRI default for missing values.
const DefaultNoData = -9999

// Grid is a regular raster of heights. Row 0 is the northern row.
type Grid struct {
	Width, Height int
	// XMin and YMin locate the lower left corner of the grid extent.
	XMin, YMin float64
	Dx, Dy     float64
	NoData     float64
	Convention PixelConvention

	values []float64
}

// NewGrid returns a width x height grid filled with NoData.
func NewGrid(width, height int, xmin, ymin, dx, dy float64) *Grid {
	g := &Grid{
		Width: width, Height: height,
		XMin: xmin, YMin: ymin,
		Dx: dx, Dy: dy,
		NoData: DefaultNoData,
		values: make([]float64, width*height),
	}
	for i := range g.values {
		g.values[i] = g.NoData
	}
	return g
}

// Value returns the height at row, col.
func (g *Grid) Value(row, col int) float64 { return g.values[row*g.Width+col] }

// SetValue sets the height at row, col.
func (g *Grid) SetValue(row, col int, v float64) { g.values[row*g.Width+col] = v }

// IsNoData reports whether the cell holds the NODATA marker.
func (g *Grid) IsNoData(row, col int) bool {
	v := g.Value(row, col)
	return v == g.NoData || math.IsNaN(v)
}

// Point returns the XYZ location of a sample.
func (g *Grid) Point(row, col int) geom.Coordinate {
	x := g.XMin + float64(col)*g.Dx
	y := g.YMin + float64(g.Height-1-row)*g.Dy
	if g.Convention == PixelIsArea {
		x += g.Dx / 2
		y += g.Dy / 2
	}
	return geom.NewCoordinate3D(x, y, g.Value(row, col))
}

// Envelope is the XY extent covered by the grid cells.
func (g *Grid) Envelope() geom.Envelope {
	xmax := g.XMin + float64(g.Width)*g.Dx
	ymax := g.YMin + float64(g.Height)*g.Dy
	if g.Convention == PixelIsPoint {
		xmax -= g.Dx
		ymax -= g.Dy
	}
	return geom.NewEnvelope2D(g.XMin, g.YMin, xmax, ymax)
}

// ToTIN connects neighbouring samples into two counter-clockwise triangles
// per lattice quad. Quads touching a NODATA sample are skipped.
func (g *Grid) ToTIN() *geom.TriangulatedSurface {
	tin := geom.NewTriangulatedSurface()
	for i := 0; i+1 < g.Height; i++ {
		for j := 0; j+1 < g.Width; j++ {
			if g.IsNoData(i, j) || g.IsNoData(i+1, j) || g.IsNoData(i, j+1) || g.IsNoData(i+1, j+1) {
				continue
			}
			a, b := g.Point(i, j), g.Point(i+1, j)
			c, d := g.Point(i+1, j+1), g.Point(i, j+1)
			tin.AddTriangle(geom.NewTriangle(b, c, d))
			tin.AddTriangle(geom.NewTriangle(b, d, a))
		}
	}
	return tin
}

// ReadASC reads an ESRI ASCII grid. The header keys are case insensitive;
// xllcorner/yllcorner select PixelIsArea and xllcenter/yllcenter select
// PixelIsPoint with the lower left sample at the given position.
func ReadASC(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<26)
	sc.Split(bufio.ScanWords)

	header := map[string]float64{}
	var first string
	for sc.Scan() {
		tok := sc.Text()
		if _, err := strconv.ParseFloat(tok, 64); err == nil {
			first = tok
			break
		}
		if !sc.Scan() {
			return nil, errors.Errorf("asc: missing value for header %q", tok)
		}
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "asc: header %q", tok)
		}
		header[strings.ToLower(tok)] = v
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "asc: read")
	}

	ncols, okc := header["ncols"]
	nrows, okr := header["nrows"]
	if !okc || !okr || ncols < 1 || nrows < 1 {
		return nil, errors.New("asc: ncols and nrows are required")
	}

	g := NewGrid(int(ncols), int(nrows), 0, 0, 0, 0)
	if v, ok := header["nodata_value"]; ok {
		g.NoData = v
	}

	switch {
	case has(header, "xllcorner", "yllcorner"):
		g.XMin, g.YMin = header["xllcorner"], header["yllcorner"]
		g.Convention = PixelIsArea
	case has(header, "xllcenter", "yllcenter"):
		g.XMin, g.YMin = header["xllcenter"], header["yllcenter"]
		g.Convention = PixelIsPoint
	default:
		return nil, errors.New("asc: missing xllcorner/yllcorner or xllcenter/yllcenter")
	}

	switch {
	case has(header, "cellsize"):
		g.Dx, g.Dy = header["cellsize"], header["cellsize"]
	case has(header, "dx", "dy"):
		g.Dx, g.Dy = header["dx"], header["dy"]
	default:
		return nil, errors.New("asc: missing cellsize or dx/dy")
	}
	if g.Dx <= 0 || g.Dy <= 0 {
		return nil, errors.Errorf("asc: non-positive cell size %gx%g", g.Dx, g.Dy)
	}

	n := 0
	next := func(tok string) error {
		if n >= len(g.values) {
			return errors.Errorf("asc: more than %d values", len(g.values))
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return errors.Wrapf(err, "asc: value %d", n)
		}
		g.values[n] = v
		n++
		return nil
	}
	if first != "" {
		if err := next(first); err != nil {
			return nil, err
		}
	}
	for sc.Scan() {
		if err := next(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "asc: read")
	}
	if n != len(g.values) {
		return nil, errors.Errorf("asc: expected %d values, got %d", len(g.values), n)
	}
	return g, nil
}

func has(m map[string]float64, keys ...string) bool {
	for _, k := range keys {
		if _, ok := m[k]; !ok {
			return false
		}
	}
	return true
}
