package kernel

// Point2 is a point (or vector) in the plane.
type Point2[T Number[T]] struct {
	X, Y T
}

// Point3 is a point (or vector) in space.
type Point3[T Number[T]] struct {
	X, Y, Z T
}

// P2 builds a Point2 from float64 values.
func P2[T Number[T]](x, y float64) Point2[T] {
	return Point2[T]{FromFloat[T](x), FromFloat[T](y)}
}

// P3 builds a Point3 from float64 values.
func P3[T Number[T]](x, y, z float64) Point3[T] {
	return Point3[T]{FromFloat[T](x), FromFloat[T](y), FromFloat[T](z)}
}

func (p Point2[T]) Add(q Point2[T]) Point2[T] { return Point2[T]{p.X.Add(q.X), p.Y.Add(q.Y)} }
func (p Point2[T]) Sub(q Point2[T]) Point2[T] { return Point2[T]{p.X.Sub(q.X), p.Y.Sub(q.Y)} }
func (p Point2[T]) Scale(s T) Point2[T]       { return Point2[T]{p.X.Mul(s), p.Y.Mul(s)} }
func (p Point2[T]) Dot(q Point2[T]) T         { return p.X.Mul(q.X).Add(p.Y.Mul(q.Y)) }

// Cross is the z component of the 3D cross product of p and q.
func (p Point2[T]) Cross(q Point2[T]) T { return p.X.Mul(q.Y).Sub(p.Y.Mul(q.X)) }

func (p Point2[T]) Equal(q Point2[T]) bool {
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

// Compare orders points lexicographically on x then y.
func (p Point2[T]) Compare(q Point2[T]) int {
	if c := p.X.Cmp(q.X); c != 0 {
		return c
	}
	return p.Y.Cmp(q.Y)
}

func (p Point2[T]) IsZero() bool { return p.X.Sign() == 0 && p.Y.Sign() == 0 }

// Float64 returns the point rounded to doubles.
func (p Point2[T]) Float64() [2]float64 { return [2]float64{p.X.Float64(), p.Y.Float64()} }

func (p Point3[T]) Add(q Point3[T]) Point3[T] {
	return Point3[T]{p.X.Add(q.X), p.Y.Add(q.Y), p.Z.Add(q.Z)}
}

func (p Point3[T]) Sub(q Point3[T]) Point3[T] {
	return Point3[T]{p.X.Sub(q.X), p.Y.Sub(q.Y), p.Z.Sub(q.Z)}
}

func (p Point3[T]) Scale(s T) Point3[T] {
	return Point3[T]{p.X.Mul(s), p.Y.Mul(s), p.Z.Mul(s)}
}

func (p Point3[T]) Dot(q Point3[T]) T {
	return p.X.Mul(q.X).Add(p.Y.Mul(q.Y)).Add(p.Z.Mul(q.Z))
}

func (p Point3[T]) Cross(q Point3[T]) Point3[T] {
	return Point3[T]{
		p.Y.Mul(q.Z).Sub(p.Z.Mul(q.Y)),
		p.Z.Mul(q.X).Sub(p.X.Mul(q.Z)),
		p.X.Mul(q.Y).Sub(p.Y.Mul(q.X)),
	}
}

func (p Point3[T]) Equal(q Point3[T]) bool {
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0 && p.Z.Cmp(q.Z) == 0
}

// Compare orders points lexicographically on x, y then z.
func (p Point3[T]) Compare(q Point3[T]) int {
	if c := p.X.Cmp(q.X); c != 0 {
		return c
	}
	if c := p.Y.Cmp(q.Y); c != 0 {
		return c
	}
	return p.Z.Cmp(q.Z)
}

func (p Point3[T]) IsZero() bool {
	return p.X.Sign() == 0 && p.Y.Sign() == 0 && p.Z.Sign() == 0
}

// Coord returns the i-th coordinate (0 x, 1 y, 2 z).
func (p Point3[T]) Coord(i int) T {
	switch i {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

// XY drops the z coordinate.
func (p Point3[T]) XY() Point2[T] { return Point2[T]{p.X, p.Y} }

func (p Point3[T]) Float64() [3]float64 {
	return [3]float64{p.X.Float64(), p.Y.Float64(), p.Z.Float64()}
}

// Lift2 embeds a planar point at z = 0.
func Lift2[T Number[T]](p Point2[T]) Point3[T] {
	return Point3[T]{p.X, p.Y, Zero[T]()}
}

// Midpoint2 returns (a+b)/2.
func Midpoint2[T Number[T]](a, b Point2[T]) Point2[T] {
	two := FromInt[T](2)
	return Point2[T]{a.X.Add(b.X).Quo(two), a.Y.Add(b.Y).Quo(two)}
}

// Midpoint3 returns (a+b)/2.
func Midpoint3[T Number[T]](a, b Point3[T]) Point3[T] {
	two := FromInt[T](2)
	return Point3[T]{a.X.Add(b.X).Quo(two), a.Y.Add(b.Y).Quo(two), a.Z.Add(b.Z).Quo(two)}
}

// Centroid3 returns the average of pts; pts must not be empty.
func Centroid3[T Number[T]](pts ...Point3[T]) Point3[T] {
	sum := Point3[T]{Zero[T](), Zero[T](), Zero[T]()}
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Scale(FromInt[T](1).Quo(FromInt[T](int64(len(pts)))))
}

// Centroid2 returns the average of pts; pts must not be empty.
func Centroid2[T Number[T]](pts ...Point2[T]) Point2[T] {
	sum := Point2[T]{Zero[T](), Zero[T]()}
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Scale(FromInt[T](1).Quo(FromInt[T](int64(len(pts)))))
}

// ----------------------------------------------------------------------------
// Segments, triangles, planes
// ----------------------------------------------------------------------------

type Segment2[T Number[T]] struct{ A, B Point2[T] }

type Segment3[T Number[T]] struct{ A, B Point3[T] }

type Triangle2[T Number[T]] struct{ A, B, C Point2[T] }

type Triangle3[T Number[T]] struct{ A, B, C Point3[T] }

func (s Segment2[T]) IsDegenerate() bool { return s.A.Equal(s.B) }
func (s Segment3[T]) IsDegenerate() bool { return s.A.Equal(s.B) }

func (s Segment2[T]) Midpoint() Point2[T] { return Midpoint2(s.A, s.B) }
func (s Segment3[T]) Midpoint() Point3[T] { return Midpoint3(s.A, s.B) }

func (s Segment2[T]) Reverse() Segment2[T] { return Segment2[T]{s.B, s.A} }
func (s Segment3[T]) Reverse() Segment3[T] { return Segment3[T]{s.B, s.A} }

func (t Triangle2[T]) Vertices() [3]Point2[T] { return [3]Point2[T]{t.A, t.B, t.C} }
func (t Triangle3[T]) Vertices() [3]Point3[T] { return [3]Point3[T]{t.A, t.B, t.C} }

func (t Triangle2[T]) Edges() [3]Segment2[T] {
	return [3]Segment2[T]{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}}
}

func (t Triangle3[T]) Edges() [3]Segment3[T] {
	return [3]Segment3[T]{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}}
}

// Orientation is the sign of the triangle's signed area.
func (t Triangle2[T]) Orientation() int { return Orient2(t.A, t.B, t.C) }

func (t Triangle2[T]) IsDegenerate() bool { return t.Orientation() == 0 }

// CCW returns the triangle with counter-clockwise vertex order.
func (t Triangle2[T]) CCW() Triangle2[T] {
	if t.Orientation() < 0 {
		return Triangle2[T]{t.A, t.C, t.B}
	}
	return t
}

// Normal returns the unnormalized normal (B-A)x(C-A).
func (t Triangle3[T]) Normal() Point3[T] { return t.B.Sub(t.A).Cross(t.C.Sub(t.A)) }

func (t Triangle3[T]) IsDegenerate() bool { return t.Normal().IsZero() }

func (t Triangle3[T]) Plane() Plane3[T] { return PlaneFromPoints(t.A, t.B, t.C) }

// Plane3 is the plane a*x + b*y + c*z + d = 0 with normal (a, b, c).
type Plane3[T Number[T]] struct {
	A, B, C, D T
}

// PlaneFromPoints returns the plane through p, q, r oriented by (q-p)x(r-p).
func PlaneFromPoints[T Number[T]](p, q, r Point3[T]) Plane3[T] {
	return PlaneFromNormal(q.Sub(p).Cross(r.Sub(p)), p)
}

// PlaneFromNormal returns the plane with normal n through p.
func PlaneFromNormal[T Number[T]](n, p Point3[T]) Plane3[T] {
	return Plane3[T]{n.X, n.Y, n.Z, n.Dot(p).Neg()}
}

func (pl Plane3[T]) Normal() Point3[T] { return Point3[T]{pl.A, pl.B, pl.C} }

// Side is the sign of the plane equation at p.
func (pl Plane3[T]) Side(p Point3[T]) int {
	return pl.A.Mul(p.X).Add(pl.B.Mul(p.Y)).Add(pl.C.Mul(p.Z)).Add(pl.D).Sign()
}

func (pl Plane3[T]) IsDegenerate() bool { return pl.Normal().IsZero() }

// DominantAxis returns the index of the largest absolute component of n.
func DominantAxis[T Number[T]](n Point3[T]) int {
	ax, ay, az := Abs(n.X), Abs(n.Y), Abs(n.Z)
	if ax.Cmp(ay) >= 0 && ax.Cmp(az) >= 0 {
		return 0
	}
	if ay.Cmp(az) >= 0 {
		return 1
	}
	return 2
}

// Project drops the given axis, keeping a cyclic (orientation preserving
// for a positive axis component) order of the remaining coordinates.
func Project[T Number[T]](p Point3[T], axis int) Point2[T] {
	switch axis {
	case 0:
		return Point2[T]{p.Y, p.Z}
	case 1:
		return Point2[T]{p.Z, p.X}
	default:
		return Point2[T]{p.X, p.Y}
	}
}

// Lift is the inverse of Project for points lying on pl. The plane's
// component along axis must be non-zero.
func (pl Plane3[T]) Lift(q Point2[T], axis int) Point3[T] {
	switch axis {
	case 0:
		x := pl.B.Mul(q.X).Add(pl.C.Mul(q.Y)).Add(pl.D).Neg().Quo(pl.A)
		return Point3[T]{x, q.X, q.Y}
	case 1:
		y := pl.C.Mul(q.X).Add(pl.A.Mul(q.Y)).Add(pl.D).Neg().Quo(pl.B)
		return Point3[T]{q.Y, y, q.X}
	default:
		z := pl.A.Mul(q.X).Add(pl.B.Mul(q.Y)).Add(pl.D).Neg().Quo(pl.C)
		return Point3[T]{q.X, q.Y, z}
	}
}
