package geom_test

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/chazu/sfgeom/pkg/geom"
)

func unitSquare() *geom.Polygon {
	return geom.NewPolygon2D([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{1, 1}, [2]float64{0, 1}, [2]float64{0, 0})
}

func TestGeometryTypeNames(t *testing.T) {
	tests := []struct {
		g    geom.Geometry
		name string
		dim  int
	}{
		{geom.NewPoint2D(1, 2), "Point", 0},
		{geom.NewLineString2D([2]float64{0, 0}, [2]float64{1, 1}), "LineString", 1},
		{unitSquare(), "Polygon", 2},
		{geom.EmptyTriangle(), "Triangle", 2},
		{geom.NewPolyhedralSurface(), "PolyhedralSurface", 2},
		{geom.NewTriangulatedSurface(), "TriangulatedSurface", 2},
		{geom.NewSolid(nil), "Solid", 3},
		{geom.NewMultiPoint(), "MultiPoint", 0},
		{geom.NewMultiLineString(), "MultiLineString", 1},
		{geom.NewMultiPolygon(), "MultiPolygon", 2},
		{geom.NewMultiSolid(), "MultiSolid", 3},
		{geom.NewGeometryCollection(geom.NewPoint2D(0, 0), unitSquare()), "GeometryCollection", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.g.GeometryTypeName(); got != tt.name {
				t.Errorf("GeometryTypeName = %q, want %q", got, tt.name)
			}
			if got := tt.g.Dimension(); got != tt.dim {
				t.Errorf("Dimension = %d, want %d", got, tt.dim)
			}
		})
	}
}

func TestAs(t *testing.T) {
	var g geom.Geometry = unitSquare()
	p, err := geom.As[*geom.Polygon](g)
	if err != nil || p.NumRings() != 1 {
		t.Fatalf("As[*Polygon] = %v, %v", p, err)
	}

	_, err = geom.As[*geom.LineString](g)
	if !errors.Is(err, geom.ErrWrongGeometryKind) {
		t.Fatalf("expected ErrWrongGeometryKind, got %v", err)
	}
	if !strings.Contains(err.Error(), "expected LineString, got Polygon") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := unitSquare()
	c := p.Clone().(*geom.Polygon)
	c.ExteriorRing().SetPointN(0, geom.NewCoordinate2D(5, 5))
	if p.ExteriorRing().PointN(0).Equal(geom.NewCoordinate2D(5, 5)) {
		t.Fatal("mutating the clone changed the original")
	}
	if !geom.Equal(p, unitSquare()) {
		t.Error("original modified")
	}
}

func TestEnvelopeCache(t *testing.T) {
	ls := geom.NewLineString2D([2]float64{0, 0}, [2]float64{2, 1})
	env := ls.Envelope()
	if env.XMax() != 2 || env.YMax() != 1 {
		t.Fatalf("envelope = %v", env)
	}
	ls.AddPoint(geom.NewCoordinate2D(-1, 4))
	env = ls.Envelope()
	if env.XMin() != -1 || env.YMax() != 4 {
		t.Errorf("envelope not invalidated: %v", env)
	}

	geom.Translate(ls, big.NewRat(10, 1), new(big.Rat), new(big.Rat))
	if got := ls.Envelope().XMin(); got != 9 {
		t.Errorf("after translate XMin = %v, want 9", got)
	}
}

func TestEnvelopeToSolid(t *testing.T) {
	e := geom.NewEnvelope3D(0, 0, 0, 1, 2, 3)
	s := e.ToSolid()
	if s.ExteriorShell().NumPolygons() != 6 {
		t.Fatalf("expected 6 facets, got %d", s.ExteriorShell().NumPolygons())
	}
	if got := s.Envelope(); got.ZMax() != 3 || got.YMax() != 2 {
		t.Errorf("solid envelope = %v", got)
	}
	if !e.Intersects3D(geom.NewEnvelope3D(1, 2, 3, 4, 4, 4)) {
		t.Error("touching boxes should intersect")
	}
	if e.Intersects3D(geom.NewEnvelope3D(0, 0, 3.5, 1, 1, 4)) {
		t.Error("separated boxes should not intersect")
	}
}

func TestBoundary(t *testing.T) {
	open := geom.NewLineString2D([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{1, 1})
	b := open.Boundary()
	if b.GeometryType() != geom.TypeMultiPoint || b.NumGeometries() != 2 {
		t.Errorf("open LineString boundary = %s with %d members", b.GeometryTypeName(), b.NumGeometries())
	}

	closed := unitSquare().ExteriorRing()
	if !closed.Boundary().IsEmpty() {
		t.Error("closed ring has an empty boundary")
	}

	if b := unitSquare().Boundary(); b.GeometryType() != geom.TypeLineString {
		t.Errorf("polygon boundary = %s", b.GeometryTypeName())
	}

	if b := geom.NewPoint2D(0, 0).Boundary(); b.GeometryType() != geom.TypeGeometryCollection || !b.IsEmpty() {
		t.Errorf("point boundary = %s", b.GeometryTypeName())
	}

	// A closed box shell has no free edge.
	shell := geom.NewEnvelope3D(0, 0, 0, 1, 1, 1).ToSolid().ExteriorShell()
	if !shell.Boundary().IsEmpty() {
		t.Error("closed shell has free edges")
	}
	// Removing one facet exposes its four edges.
	open3 := geom.NewPolyhedralSurface(shell.Polygons()[1:]...)
	if got := open3.Boundary().NumGeometries(); got != 4 {
		t.Errorf("open shell free edges = %d, want 4", got)
	}
}

func TestCollectionsEmptyAndIs3D(t *testing.T) {
	mp := geom.NewMultiPoint()
	if !mp.IsEmpty() {
		t.Error("collection without members is empty")
	}
	mp.Add(geom.EmptyPoint())
	if mp.IsEmpty() {
		t.Error("collection with a member is not empty")
	}
	mp.Add(geom.NewPoint3D(1, 2, 3))
	if !mp.Is3D() {
		t.Error("Is3D should follow the first non-empty member")
	}
	if got := len(geom.Coordinates(mp)); got != 1 {
		t.Errorf("Coordinates = %d positions, want 1", got)
	}
}

func TestCollectionMembers(t *testing.T) {
	ms := geom.NewMultiSolid(geom.NewEnvelope3D(0, 0, 0, 1, 1, 1).ToSolid())
	if ms.NumGeometries() != 1 || ms.GeometryN(0).GeometryType() != geom.TypeSolid {
		t.Fatalf("GeometryN(0) = %v", ms.GeometryN(0).GeometryTypeName())
	}
	if ms.CoordinateDimension() != 3 {
		t.Errorf("CoordinateDimension = %d, want 3", ms.CoordinateDimension())
	}

	mp := geom.NewMultiPoint(geom.EmptyPoint(), geom.NewPoint2D(1, 2))
	if mp.CoordinateDimension() != 2 || mp.Is3D() {
		t.Errorf("CoordinateDimension = %d Is3D = %v", mp.CoordinateDimension(), mp.Is3D())
	}
	c := mp.Clone().(*geom.MultiPoint)
	c.PointN(1).SetCoordinate(geom.NewCoordinate2D(9, 9))
	if !mp.PointN(1).Coordinate().Equal(geom.NewCoordinate2D(1, 2)) {
		t.Error("mutating a cloned member changed the original")
	}

	gc := geom.NewGeometryCollection(mp, ms)
	if gc.GeometryN(1).GeometryType() != geom.TypeMultiSolid {
		t.Errorf("GeometryN(1) = %s", gc.GeometryN(1).GeometryTypeName())
	}
	if !geom.Equal(gc.Clone(), gc) {
		t.Error("clone differs from the original")
	}
}

func TestForce3DAndRound(t *testing.T) {
	p := unitSquare()
	geom.Force3D(p)
	if !p.Is3D() {
		t.Fatal("Force3D did not promote")
	}
	ls := geom.NewLineString2D([2]float64{0.26, 0.74})
	if err := geom.Round(ls, 2); err != nil {
		t.Fatal(err)
	}
	if !ls.PointN(0).Equal(geom.NewCoordinateRat(big.NewRat(1, 2), big.NewRat(1, 2))) {
		t.Errorf("Round = %v", ls.PointN(0))
	}
}

func TestPreparedGeometry(t *testing.T) {
	pg := geom.NewPreparedGeometry(unitSquare(), 4326)
	if pg.Envelope().XMax() != 1 {
		t.Fatal("prepared envelope")
	}
	pg.Geometry.(*geom.Polygon).ExteriorRing().SetPointN(2, geom.NewCoordinate2D(3, 3))
	pg.InvalidateCache()
	if pg.Envelope().XMax() != 3 {
		t.Errorf("cache not invalidated: %v", pg.Envelope())
	}
}
