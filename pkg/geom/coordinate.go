package geom

import (
	"fmt"
	"math/big"

	"github.com/chazu/sfgeom/pkg/kernel"
)

// Coordinate is an empty, 2D or 3D position stored as exact rationals.
// It is a value type: the rationals are never modified in place, so copies
// can share them.
type Coordinate struct {
	x, y, z *big.Rat
	dim     int
}

// EmptyCoordinate returns a coordinate with no position.
func EmptyCoordinate() Coordinate { return Coordinate{} }

// NewCoordinate2D builds a 2D coordinate. Finite doubles are stored exactly.
func NewCoordinate2D(x, y float64) Coordinate {
	return Coordinate{x: ratOf(x), y: ratOf(y), dim: 2}
}

// NewCoordinate3D builds a 3D coordinate.
func NewCoordinate3D(x, y, z float64) Coordinate {
	return Coordinate{x: ratOf(x), y: ratOf(y), z: ratOf(z), dim: 3}
}

// NewCoordinateRat builds a 2D coordinate from rationals (copied).
func NewCoordinateRat(x, y *big.Rat) Coordinate {
	return Coordinate{x: new(big.Rat).Set(x), y: new(big.Rat).Set(y), dim: 2}
}

// NewCoordinateRat3 builds a 3D coordinate from rationals (copied).
func NewCoordinateRat3(x, y, z *big.Rat) Coordinate {
	return Coordinate{x: new(big.Rat).Set(x), y: new(big.Rat).Set(y), z: new(big.Rat).Set(z), dim: 3}
}

func ratOf(f float64) *big.Rat {
	r := new(big.Rat)
	if r.SetFloat64(f) == nil {
		return new(big.Rat)
	}
	return r
}

func (c Coordinate) IsEmpty() bool { return c.dim == 0 }
func (c Coordinate) Is3D() bool    { return c.dim == 3 }

// CoordinateDimension is 0 for an empty coordinate, otherwise 2 or 3.
func (c Coordinate) CoordinateDimension() int { return c.dim }

// X returns the x value as a double.
func (c Coordinate) X() (float64, error) {
	if c.IsEmpty() {
		return 0, fmt.Errorf("trying to get an empty coordinate x value: %w", ErrEmptyCoordinate)
	}
	f, _ := c.x.Float64()
	return f, nil
}

// Y returns the y value as a double.
func (c Coordinate) Y() (float64, error) {
	if c.IsEmpty() {
		return 0, fmt.Errorf("trying to get an empty coordinate y value: %w", ErrEmptyCoordinate)
	}
	f, _ := c.y.Float64()
	return f, nil
}

// Z returns the z value as a double; a 2D coordinate has z = 0.
func (c Coordinate) Z() (float64, error) {
	if c.IsEmpty() {
		return 0, fmt.Errorf("trying to get an empty coordinate z value: %w", ErrEmptyCoordinate)
	}
	if !c.Is3D() {
		return 0, nil
	}
	f, _ := c.z.Float64()
	return f, nil
}

// ExactX returns a copy of the exact x value; zero for an empty coordinate.
func (c Coordinate) ExactX() *big.Rat { return copyRat(c.x) }

// ExactY returns a copy of the exact y value; zero for an empty coordinate.
func (c Coordinate) ExactY() *big.Rat { return copyRat(c.y) }

// ExactZ returns a copy of the exact z value; zero unless the coordinate is 3D.
func (c Coordinate) ExactZ() *big.Rat { return copyRat(c.z) }

func copyRat(r *big.Rat) *big.Rat {
	if r == nil {
		return new(big.Rat)
	}
	return new(big.Rat).Set(r)
}

// XYZ returns the position as doubles (zeros when empty).
func (c Coordinate) XYZ() [3]float64 {
	var out [3]float64
	if c.IsEmpty() {
		return out
	}
	out[0], _ = c.x.Float64()
	out[1], _ = c.y.Float64()
	if c.Is3D() {
		out[2], _ = c.z.Float64()
	}
	return out
}

// Round snaps every value to the nearest multiple of 1/scale, ties away from
// zero.
func (c Coordinate) Round(scale int64) (Coordinate, error) {
	if scale <= 0 {
		return c, ErrInvalidScale
	}
	if c.IsEmpty() {
		return c, nil
	}
	out := Coordinate{x: roundRat(c.x, scale), y: roundRat(c.y, scale), dim: c.dim}
	if c.Is3D() {
		out.z = roundRat(c.z, scale)
	}
	return out, nil
}

func roundRat(r *big.Rat, scale int64) *big.Rat {
	s := new(big.Rat).Mul(r, new(big.Rat).SetInt64(scale))
	num := new(big.Int).Abs(s.Num())
	den := s.Denom()
	// floor((2|num| + den) / (2 den)) rounds |s| half up.
	q := new(big.Int).Lsh(num, 1)
	q.Add(q, den)
	q.Quo(q, new(big.Int).Lsh(den, 1))
	if s.Sign() < 0 {
		q.Neg(q)
	}
	return new(big.Rat).SetFrac(q, big.NewInt(scale))
}

// Compare orders coordinates lexicographically on x, y then z. Empty or
// mixed-dimension operands are an error.
func (c Coordinate) Compare(o Coordinate) (int, error) {
	if c.IsEmpty() || o.IsEmpty() {
		return 0, ErrEmptyCoordinateComparison
	}
	if c.dim != o.dim {
		return 0, ErrMixedDimensionComparison
	}
	if v := c.x.Cmp(o.x); v != 0 {
		return v, nil
	}
	if v := c.y.Cmp(o.y); v != 0 {
		return v, nil
	}
	if c.Is3D() {
		return c.z.Cmp(o.z), nil
	}
	return 0, nil
}

// Less reports c < o under Compare.
func (c Coordinate) Less(o Coordinate) (bool, error) {
	v, err := c.Compare(o)
	return v < 0, err
}

// Equal compares x and y, and z when either side is 3D with the 2D side's
// z taken as 0. Two empty coordinates are equal.
func (c Coordinate) Equal(o Coordinate) bool {
	if c.IsEmpty() || o.IsEmpty() {
		return c.IsEmpty() && o.IsEmpty()
	}
	if c.x.Cmp(o.x) != 0 || c.y.Cmp(o.y) != 0 {
		return false
	}
	if c.Is3D() || o.Is3D() {
		return c.ExactZ().Cmp(o.ExactZ()) == 0
	}
	return true
}

// EqualXY compares only x and y.
func (c Coordinate) EqualXY(o Coordinate) bool {
	if c.IsEmpty() || o.IsEmpty() {
		return c.IsEmpty() && o.IsEmpty()
	}
	return c.x.Cmp(o.x) == 0 && c.y.Cmp(o.y) == 0
}

// Force3D returns the coordinate with z = 0 added when it is 2D.
func (c Coordinate) Force3D() Coordinate {
	if c.IsEmpty() || c.Is3D() {
		return c
	}
	return Coordinate{x: c.x, y: c.y, z: new(big.Rat), dim: 3}
}

// Force2D drops z.
func (c Coordinate) Force2D() Coordinate {
	if c.IsEmpty() {
		return c
	}
	return Coordinate{x: c.x, y: c.y, dim: 2}
}

// Translate returns c moved by (dx, dy, dz); dz is ignored for 2D.
func (c Coordinate) Translate(dx, dy, dz *big.Rat) Coordinate {
	if c.IsEmpty() {
		return c
	}
	out := Coordinate{x: new(big.Rat).Add(c.x, dx), y: new(big.Rat).Add(c.y, dy), dim: c.dim}
	if c.Is3D() {
		out.z = new(big.Rat).Add(c.z, dz)
	}
	return out
}

func (c Coordinate) String() string {
	switch c.dim {
	case 0:
		return "EMPTY"
	case 2:
		return c.x.RatString() + " " + c.y.RatString()
	default:
		return c.x.RatString() + " " + c.y.RatString() + " " + c.z.RatString()
	}
}

// ----------------------------------------------------------------------------
// Kernel conversions
// ----------------------------------------------------------------------------

// ToPoint2 converts the XY part of c into the kernel field T.
func ToPoint2[T kernel.Number[T]](c Coordinate) kernel.Point2[T] {
	var z T
	return kernel.Point2[T]{X: z.FromRat(c.ExactX()), Y: z.FromRat(c.ExactY())}
}

// ToPoint3 converts c into the kernel field T; 2D coordinates get z = 0.
func ToPoint3[T kernel.Number[T]](c Coordinate) kernel.Point3[T] {
	var z T
	return kernel.Point3[T]{X: z.FromRat(c.ExactX()), Y: z.FromRat(c.ExactY()), Z: z.FromRat(c.ExactZ())}
}

// FromPoint2 builds a 2D coordinate from a kernel point.
func FromPoint2[T kernel.Number[T]](p kernel.Point2[T]) Coordinate {
	return Coordinate{x: p.X.Rat(), y: p.Y.Rat(), dim: 2}
}

// FromPoint3 builds a 3D coordinate from a kernel point.
func FromPoint3[T kernel.Number[T]](p kernel.Point3[T]) Coordinate {
	return Coordinate{x: p.X.Rat(), y: p.Y.Rat(), z: p.Z.Rat(), dim: 3}
}
