package primitive

import (
	"github.com/samber/lo"

	"github.com/chazu/sfgeom/pkg/geom"
)

// Triangulator turns a polygon into triangles. It is supplied by the
// algorithm layer so that surfaces can be collected as triangles.
type Triangulator func(*geom.Polygon) (*geom.TriangulatedSurface, error)

// Set is the decomposition of a geometry tree into primitives. Areal and
// volume parts are also kept whole for the algorithms that need them.
type Set struct {
	Points    []Handle
	Segments  []Handle
	Triangles []Handle

	// Polygons are the areal parts in input order: polygons, triangles,
	// members of triangulated and polyhedral surfaces and solid facets,
	// all promoted to polygons.
	Polygons []*geom.Polygon
	// Solids are the volume parts in input order.
	Solids []*geom.Solid
}

type options struct {
	triangulate Triangulator
}

// Option configures a collection.
type Option func(*options)

// WithSurfaces collects every polygonal surface as triangles produced by
// fn. Without it polygons contribute only their ring segments.
func WithSurfaces(fn Triangulator) Option {
	return func(o *options) { o.triangulate = fn }
}

// Collect decomposes g. Triangles and triangulated surfaces always yield
// triangle handles; polygons, polyhedral surfaces and solid shells do so
// when WithSurfaces is given.
func Collect(g geom.Geometry, opts ...Option) (*Set, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	s := &Set{}
	var err error
	geom.Walk(g, func(x geom.Geometry) bool {
		if x.IsEmpty() {
			return true
		}
		err = s.add(x, &o)
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Set) add(g geom.Geometry, o *options) error {
	switch x := g.(type) {
	case *geom.Point:
		s.Points = append(s.Points, newHandle(KindPoint, x, x.Coordinate()))
	case *geom.LineString:
		s.addLine(x, x)
	case *geom.Triangle:
		s.Triangles = append(s.Triangles, triangleHandle(x, x))
		s.Polygons = append(s.Polygons, x.ToPolygon())
	case *geom.Polygon:
		s.Polygons = append(s.Polygons, x)
		return s.addPolygon(x, x, o)
	case *geom.TriangulatedSurface:
		for _, t := range x.Triangles() {
			s.Triangles = append(s.Triangles, triangleHandle(t, x))
			s.Polygons = append(s.Polygons, t.ToPolygon())
		}
	case *geom.PolyhedralSurface:
		for _, p := range x.Polygons() {
			s.Polygons = append(s.Polygons, p)
			if err := s.addPolygon(p, x, o); err != nil {
				return err
			}
		}
	case *geom.Solid:
		s.Solids = append(s.Solids, x)
		for i := 0; i < x.NumShells(); i++ {
			for _, p := range x.ShellN(i).Polygons() {
				s.Polygons = append(s.Polygons, p)
				if err := s.addPolygon(p, x, o); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func triangleHandle(t *geom.Triangle, src geom.Geometry) Handle {
	v := t.Vertices()
	return newHandle(KindTriangle, src, v[0], v[1], v[2])
}

func (s *Set) addLine(l *geom.LineString, src geom.Geometry) {
	if l.NumPoints() == 1 {
		s.Points = append(s.Points, newHandle(KindPoint, src, l.PointN(0)))
		return
	}
	for i := 0; i+1 < l.NumPoints(); i++ {
		a, b := l.PointN(i), l.PointN(i+1)
		if a.Equal(b) {
			continue
		}
		s.Segments = append(s.Segments, newHandle(KindSegment, src, a, b))
	}
}

func (s *Set) addPolygon(p *geom.Polygon, src geom.Geometry, o *options) error {
	if o.triangulate == nil {
		for i := 0; i < p.NumRings(); i++ {
			s.addLine(p.RingN(i), src)
		}
		return nil
	}
	tin, err := o.triangulate(p)
	if err != nil {
		return err
	}
	for _, t := range tin.Triangles() {
		s.Triangles = append(s.Triangles, triangleHandle(t, src))
	}
	return nil
}

// All returns every handle, points first.
func (s *Set) All() []Handle {
	return lo.Flatten([][]Handle{s.Points, s.Segments, s.Triangles})
}

// IsEmpty reports whether no primitive was collected.
func (s *Set) IsEmpty() bool {
	return len(s.Points)+len(s.Segments)+len(s.Triangles) == 0 && len(s.Solids) == 0
}

// Dimension is the highest primitive dimension in the set, -1 when empty.
func (s *Set) Dimension() int {
	switch {
	case len(s.Solids) > 0:
		return 3
	case len(s.Triangles) > 0 || len(s.Polygons) > 0:
		return 2
	case len(s.Segments) > 0:
		return 1
	case len(s.Points) > 0:
		return 0
	}
	return -1
}

// Bounds is the union of every handle box.
func (s *Set) Bounds() (Box, bool) {
	all := s.All()
	if len(all) == 0 {
		return Box{}, false
	}
	b := all[0].Box
	for _, h := range all[1:] {
		b = b.Union(h.Box)
	}
	return b, true
}
