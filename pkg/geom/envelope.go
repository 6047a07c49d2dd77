package geom

import (
	"fmt"
	"math/big"
)

// Envelope is an axis-aligned bounding box with exact bounds. It is 3D when
// every expanded coordinate was 3D. The zero value is empty.
type Envelope struct {
	min, max [3]*big.Rat
	dim      int
}

// NewEnvelope2D builds a 2D box from its bounds.
func NewEnvelope2D(xmin, ymin, xmax, ymax float64) Envelope {
	var e Envelope
	e.ExpandToInclude(NewCoordinate2D(xmin, ymin))
	e.ExpandToInclude(NewCoordinate2D(xmax, ymax))
	return e
}

// NewEnvelope3D builds a 3D box from its bounds.
func NewEnvelope3D(xmin, ymin, zmin, xmax, ymax, zmax float64) Envelope {
	var e Envelope
	e.ExpandToInclude(NewCoordinate3D(xmin, ymin, zmin))
	e.ExpandToInclude(NewCoordinate3D(xmax, ymax, zmax))
	return e
}

func (e Envelope) IsEmpty() bool { return e.dim == 0 }
func (e Envelope) Is3D() bool    { return e.dim == 3 }

// ExpandToInclude grows the box to contain c. Empty coordinates are
// ignored; a 2D coordinate makes the box 2D.
func (e *Envelope) ExpandToInclude(c Coordinate) {
	if c.IsEmpty() {
		return
	}
	vals := [3]*big.Rat{c.x, c.y, c.z}
	if e.IsEmpty() {
		e.dim = c.dim
		for i := 0; i < c.dim; i++ {
			e.min[i], e.max[i] = vals[i], vals[i]
		}
		return
	}
	e.dim = min(e.dim, c.dim)
	for i := 0; i < e.dim; i++ {
		if vals[i].Cmp(e.min[i]) < 0 {
			e.min[i] = vals[i]
		}
		if vals[i].Cmp(e.max[i]) > 0 {
			e.max[i] = vals[i]
		}
	}
}

// Expand grows the box to contain o.
func (e *Envelope) Expand(o Envelope) {
	if o.IsEmpty() {
		return
	}
	e.ExpandToInclude(o.MinCoordinate())
	e.ExpandToInclude(o.MaxCoordinate())
}

// MinCoordinate is the lower corner; empty for an empty box.
func (e Envelope) MinCoordinate() Coordinate { return e.corner(e.min) }

// MaxCoordinate is the upper corner; empty for an empty box.
func (e Envelope) MaxCoordinate() Coordinate { return e.corner(e.max) }

func (e Envelope) corner(v [3]*big.Rat) Coordinate {
	c := Coordinate{x: v[0], y: v[1], dim: e.dim}
	if e.Is3D() {
		c.z = v[2]
	}
	return c
}

func (e Envelope) bound(r *big.Rat) float64 {
	if r == nil {
		return 0
	}
	f, _ := r.Float64()
	return f
}

func (e Envelope) XMin() float64 { return e.bound(e.min[0]) }
func (e Envelope) YMin() float64 { return e.bound(e.min[1]) }
func (e Envelope) ZMin() float64 { return e.bound(e.min[2]) }
func (e Envelope) XMax() float64 { return e.bound(e.max[0]) }
func (e Envelope) YMax() float64 { return e.bound(e.max[1]) }
func (e Envelope) ZMax() float64 { return e.bound(e.max[2]) }

// Intersects reports whether the closed XY boxes overlap.
func (e Envelope) Intersects(o Envelope) bool {
	return e.overlaps(o, 2)
}

// Intersects3D reports whether the closed boxes overlap in every shared
// axis.
func (e Envelope) Intersects3D(o Envelope) bool {
	return e.overlaps(o, min(e.dim, o.dim))
}

func (e Envelope) overlaps(o Envelope, axes int) bool {
	if e.IsEmpty() || o.IsEmpty() {
		return false
	}
	for i := 0; i < axes; i++ {
		if e.max[i].Cmp(o.min[i]) < 0 || o.max[i].Cmp(e.min[i]) < 0 {
			return false
		}
	}
	return true
}

// Contains reports whether o lies inside the closed XY box.
func (e Envelope) Contains(o Envelope) bool {
	if e.IsEmpty() || o.IsEmpty() {
		return false
	}
	for i := 0; i < 2; i++ {
		if o.min[i].Cmp(e.min[i]) < 0 || o.max[i].Cmp(e.max[i]) > 0 {
			return false
		}
	}
	return true
}

// ToPolygon returns the XY box as a counter-clockwise polygon.
func (e Envelope) ToPolygon() *Polygon {
	if e.IsEmpty() {
		return &Polygon{}
	}
	x0, y0, x1, y1 := e.min[0], e.min[1], e.max[0], e.max[1]
	return NewPolygon(NewLineString(
		NewCoordinateRat(x0, y0),
		NewCoordinateRat(x1, y0),
		NewCoordinateRat(x1, y1),
		NewCoordinateRat(x0, y1),
		NewCoordinateRat(x0, y0),
	))
}

// ToSolid returns a 3D box as a closed, outward oriented solid.
func (e Envelope) ToSolid() *Solid {
	if !e.Is3D() {
		return &Solid{}
	}
	c := func(i, j, k int) Coordinate {
		pick := func(axis, side int) *big.Rat {
			if side == 0 {
				return e.min[axis]
			}
			return e.max[axis]
		}
		return NewCoordinateRat3(pick(0, i), pick(1, j), pick(2, k))
	}
	quad := func(a, b, d, f Coordinate) *Polygon {
		return NewPolygon(NewLineString(a, b, d, f, a))
	}
	shell := NewPolyhedralSurface(
		quad(c(0, 0, 0), c(0, 1, 0), c(1, 1, 0), c(1, 0, 0)), // bottom
		quad(c(0, 0, 1), c(1, 0, 1), c(1, 1, 1), c(0, 1, 1)), // top
		quad(c(0, 0, 0), c(1, 0, 0), c(1, 0, 1), c(0, 0, 1)), // front
		quad(c(1, 0, 0), c(1, 1, 0), c(1, 1, 1), c(1, 0, 1)), // right
		quad(c(1, 1, 0), c(0, 1, 0), c(0, 1, 1), c(1, 1, 1)), // back
		quad(c(0, 1, 0), c(0, 0, 0), c(0, 0, 1), c(0, 1, 1)), // left
	)
	return NewSolid(shell)
}

func (e Envelope) String() string {
	switch e.dim {
	case 0:
		return "Box()"
	case 2:
		return fmt.Sprintf("Box(%g %g, %g %g)", e.XMin(), e.YMin(), e.XMax(), e.YMax())
	default:
		return fmt.Sprintf("Box(%g %g %g, %g %g %g)", e.XMin(), e.YMin(), e.ZMin(), e.XMax(), e.YMax(), e.ZMax())
	}
}

func computeEnvelope(g Geometry) Envelope {
	var e Envelope
	for _, c := range Coordinates(g) {
		e.ExpandToInclude(c)
	}
	return e
}
