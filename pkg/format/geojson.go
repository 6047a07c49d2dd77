package format

import (
	"encoding/json"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/chazu/sfgeom/pkg/geom"
)

// TypeProperty is the feature property holding the source geometry type.
// Surfaces and solids have no GeoJSON type and are exported as
// MultiPolygons; the property records what they were.
const TypeProperty = "sfgeom:type"

// ToGeoJSON converts g to a feature collection. A GeometryCollection
// becomes one feature per member, anything else a single feature. Only X
// and Y are exported.
func ToGeoJSON(g geom.Geometry) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	members := []geom.Geometry{g}
	if gc, ok := g.(*geom.GeometryCollection); ok {
		members = gc.Members()
	}
	for i, m := range members {
		og, err := toOrb(m)
		if err != nil {
			return nil, errors.Wrapf(err, "geojson: member %d", i)
		}
		f := geojson.NewFeature(og)
		f.Properties[TypeProperty] = m.GeometryTypeName()
		fc.Append(f)
	}
	return fc, nil
}

// WriteGeoJSON writes g as an indented feature collection.
func WriteGeoJSON(w io.Writer, g geom.Geometry) error {
	fc, err := ToGeoJSON(g)
	if err != nil {
		return err
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "geojson: marshal")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "geojson: write")
	}
	return nil
}

// FromGeoJSON reads a FeatureCollection, a Feature or a bare geometry
// object. Several features are returned as a GeometryCollection.
func FromGeoJSON(data []byte) (geom.Geometry, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, errors.Wrap(err, "geojson: decode")
	}

	var gs []orb.Geometry
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, errors.Wrap(err, "geojson: feature collection")
		}
		for _, f := range fc.Features {
			gs = append(gs, f.Geometry)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, errors.Wrap(err, "geojson: feature")
		}
		gs = append(gs, f.Geometry)
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, errors.Wrap(err, "geojson: geometry")
		}
		gs = append(gs, g.Geometry())
	}

	out := make([]geom.Geometry, 0, len(gs))
	for i, g := range gs {
		sg, err := fromOrb(g)
		if err != nil {
			return nil, errors.Wrapf(err, "geojson: feature %d", i)
		}
		out = append(out, sg)
	}
	if len(out) == 1 {
		return out[0], nil
	}
	return geom.NewGeometryCollection(out...), nil
}

func orbPoint(c geom.Coordinate) orb.Point {
	xyz := c.XYZ()
	return orb.Point{xyz[0], xyz[1]}
}

func orbLine(l *geom.LineString) orb.LineString {
	return lo.Map(l.Coordinates(), func(c geom.Coordinate, _ int) orb.Point { return orbPoint(c) })
}

func orbPolygon(p *geom.Polygon) orb.Polygon {
	return lo.Map(p.Rings(), func(r *geom.LineString, _ int) orb.Ring { return orb.Ring(orbLine(r)) })
}

func orbPolygons(ps []*geom.Polygon) orb.MultiPolygon {
	return lo.Map(ps, func(p *geom.Polygon, _ int) orb.Polygon { return orbPolygon(p) })
}

func solidFacets(s *geom.Solid) []*geom.Polygon {
	var out []*geom.Polygon
	for i := 0; i < s.NumShells(); i++ {
		out = append(out, s.ShellN(i).Polygons()...)
	}
	return out
}

func toOrb(g geom.Geometry) (orb.Geometry, error) {
	switch x := g.(type) {
	case *geom.Point:
		if x.IsEmpty() {
			return orb.MultiPoint{}, nil
		}
		return orbPoint(x.Coordinate()), nil
	case *geom.LineString:
		return orbLine(x), nil
	case *geom.Polygon:
		return orbPolygon(x), nil
	case *geom.Triangle:
		return orbPolygon(x.ToPolygon()), nil
	case *geom.PolyhedralSurface:
		return orbPolygons(x.Polygons()), nil
	case *geom.TriangulatedSurface:
		return orbPolygons(x.ToPolyhedralSurface().Polygons()), nil
	case *geom.Solid:
		if x.IsEmpty() {
			return orb.MultiPolygon{}, nil
		}
		return orbPolygons(solidFacets(x)), nil
	case *geom.MultiPoint:
		return orb.MultiPoint(lo.Map(x.Members(), func(p *geom.Point, _ int) orb.Point {
			return orbPoint(p.Coordinate())
		})), nil
	case *geom.MultiLineString:
		return orb.MultiLineString(lo.Map(x.Members(), func(l *geom.LineString, _ int) orb.LineString {
			return orbLine(l)
		})), nil
	case *geom.MultiPolygon:
		return orbPolygons(x.Members()), nil
	case *geom.MultiSolid:
		var facets []*geom.Polygon
		for _, s := range x.Members() {
			if !s.IsEmpty() {
				facets = append(facets, solidFacets(s)...)
			}
		}
		return orbPolygons(facets), nil
	case *geom.GeometryCollection:
		col := orb.Collection{}
		for _, m := range x.Members() {
			og, err := toOrb(m)
			if err != nil {
				return nil, err
			}
			col = append(col, og)
		}
		return col, nil
	}
	return nil, errors.Wrapf(geom.ErrWrongGeometryKind, "geojson: %s", g.GeometryTypeName())
}

func coords(ps []orb.Point) []geom.Coordinate {
	return lo.Map(ps, func(p orb.Point, _ int) geom.Coordinate { return geom.NewCoordinate2D(p[0], p[1]) })
}

func polygonFromOrb(p orb.Polygon) *geom.Polygon {
	if len(p) == 0 {
		return &geom.Polygon{}
	}
	holes := lo.Map(p[1:], func(r orb.Ring, _ int) *geom.LineString { return geom.NewLineString(coords(r)...) })
	return geom.NewPolygon(geom.NewLineString(coords(p[0])...), holes...)
}

func fromOrb(g orb.Geometry) (geom.Geometry, error) {
	switch x := g.(type) {
	case nil:
		return geom.NewGeometryCollection(), nil
	case orb.Point:
		return geom.NewPoint2D(x[0], x[1]), nil
	case orb.MultiPoint:
		return geom.NewMultiPoint(lo.Map(x, func(p orb.Point, _ int) *geom.Point {
			return geom.NewPoint2D(p[0], p[1])
		})...), nil
	case orb.LineString:
		return geom.NewLineString(coords(x)...), nil
	case orb.Ring:
		return geom.NewLineString(coords(x)...), nil
	case orb.MultiLineString:
		return geom.NewMultiLineString(lo.Map(x, func(l orb.LineString, _ int) *geom.LineString {
			return geom.NewLineString(coords(l)...)
		})...), nil
	case orb.Polygon:
		return polygonFromOrb(x), nil
	case orb.MultiPolygon:
		return geom.NewMultiPolygon(lo.Map(x, func(p orb.Polygon, _ int) *geom.Polygon {
			return polygonFromOrb(p)
		})...), nil
	case orb.Bound:
		return polygonFromOrb(x.ToPolygon()), nil
	case orb.Collection:
		gc := geom.NewGeometryCollection()
		for _, m := range x {
			sg, err := fromOrb(m)
			if err != nil {
				return nil, err
			}
			gc.Add(sg)
		}
		return gc, nil
	}
	return nil, errors.Errorf("geojson: unsupported geometry %T", g)
}
