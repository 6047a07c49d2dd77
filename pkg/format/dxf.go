package format

import (
	"github.com/pkg/errors"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/entity"

	"github.com/chazu/sfgeom/pkg/geom"
)

// DXF layer names, one per kind of primitive.
const (
	LayerPoints   = "POINTS"
	LayerLines    = "LINES"
	LayerPolygons = "POLYGONS"
	LayerSurfaces = "SURFACES"
)

var layerColors = map[string]color.ColorNumber{
	LayerPoints:   color.Yellow,
	LayerLines:    color.Green,
	LayerPolygons: color.Red,
	LayerSurfaces: color.Cyan,
}

type dxfWriter struct {
	d      *drawing.Drawing
	layers map[string]bool
}

// WriteDXF saves g as a DXF drawing. Polygons on the XY plane become closed
// LWPOLYLINEs; lines, 3D rings and the facets of surfaces and solids become
// LINE entities.
func WriteDXF(path string, g geom.Geometry) error {
	d, err := Drawing(g)
	if err != nil {
		return err
	}
	if err := d.SaveAs(path); err != nil {
		return errors.Wrapf(err, "dxf: save %s", path)
	}
	return nil
}

// Drawing builds the in-memory DXF drawing of g.
func Drawing(g geom.Geometry) (*drawing.Drawing, error) {
	w := &dxfWriter{d: dxf.NewDrawing(), layers: map[string]bool{}}
	w.d.Header().LtScale = 1.0
	if err := w.geometry(g); err != nil {
		return nil, err
	}
	return w.d, nil
}

func (w *dxfWriter) layer(name string) error {
	if w.layers[name] {
		return errors.Wrapf(w.d.ChangeLayer(name), "dxf: layer %s", name)
	}
	if _, err := w.d.AddLayer(name, layerColors[name], dxf.DefaultLineType, true); err != nil {
		return errors.Wrapf(err, "dxf: layer %s", name)
	}
	w.layers[name] = true
	return nil
}

func (w *dxfWriter) geometry(g geom.Geometry) error {
	if g.IsEmpty() {
		return nil
	}
	switch x := g.(type) {
	case *geom.Point:
		if err := w.layer(LayerPoints); err != nil {
			return err
		}
		p := x.Coordinate().XYZ()
		_, err := w.d.Point(p[0], p[1], p[2])
		return errors.Wrap(err, "dxf: point")
	case *geom.LineString:
		if err := w.layer(LayerLines); err != nil {
			return err
		}
		return w.edges(x)
	case *geom.Polygon:
		if err := w.layer(LayerPolygons); err != nil {
			return err
		}
		return w.polygon(x)
	case *geom.Triangle:
		if err := w.layer(LayerPolygons); err != nil {
			return err
		}
		return w.polygon(x.ToPolygon())
	case *geom.PolyhedralSurface:
		return w.facets(x.Polygons())
	case *geom.TriangulatedSurface:
		return w.facets(x.ToPolyhedralSurface().Polygons())
	case *geom.Solid:
		for i := 0; i < x.NumShells(); i++ {
			if err := w.facets(x.ShellN(i).Polygons()); err != nil {
				return err
			}
		}
		return nil
	}
	for i := 0; i < g.NumGeometries(); i++ {
		if err := w.geometry(g.GeometryN(i)); err != nil {
			return err
		}
	}
	return nil
}

func (w *dxfWriter) facets(ps []*geom.Polygon) error {
	if err := w.layer(LayerSurfaces); err != nil {
		return err
	}
	for _, p := range ps {
		for _, r := range p.Rings() {
			if err := w.edges(r); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *dxfWriter) edges(l *geom.LineString) error {
	cs := l.Coordinates()
	for i := 0; i+1 < len(cs); i++ {
		a, b := cs[i].XYZ(), cs[i+1].XYZ()
		if _, err := w.d.Line(a[0], a[1], a[2], b[0], b[1], b[2]); err != nil {
			return errors.Wrap(err, "dxf: line")
		}
	}
	return nil
}

// polygon writes each ring as a closed LWPOLYLINE when the polygon lies on
// the XY plane, and falls back to LINE edges otherwise.
func (w *dxfWriter) polygon(p *geom.Polygon) error {
	if !onXYPlane(p) {
		for _, r := range p.Rings() {
			if err := w.edges(r); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range p.Rings() {
		cs := r.Coordinates()
		if len(cs) > 1 && cs[0].Equal(cs[len(cs)-1]) {
			cs = cs[:len(cs)-1]
		}
		lwp := entity.NewLwPolyline(len(cs))
		for j, c := range cs {
			xyz := c.XYZ()
			lwp.Vertices[j] = []float64{xyz[0], xyz[1]}
		}
		lwp.Close()
		w.d.AddEntity(lwp)
	}
	return nil
}

func onXYPlane(p *geom.Polygon) bool {
	if !p.Is3D() {
		return true
	}
	for _, r := range p.Rings() {
		for _, c := range r.Coordinates() {
			if c.XYZ()[2] != 0 {
				return false
			}
		}
	}
	return true
}
