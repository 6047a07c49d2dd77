// Package wkt reads and writes the Well Known Text representation of the
// geometry model, including the TRIANGLE, TIN, POLYHEDRALSURFACE, SOLID and
// MULTISOLID extensions and the EWKT "SRID=n;" prefix.
//
// Numbers are read exactly: decimals, exponents and rationals such as
// "1/3" all become exact coordinates.
package wkt

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/chazu/sfgeom/pkg/geom"
)

// ErrParse matches every ParseError.
var ErrParse = errors.New("wkt: parse error")

// ParseError locates a syntax error in the input.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("wkt: parse error at offset %d: %s", e.Offset, e.Msg)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// Read parses a single geometry. Trailing input other than white space is
// an error.
func Read(text string) (geom.Geometry, error) {
	r := &reader{s: text}
	g, err := r.geometry()
	if err != nil {
		return nil, err
	}
	r.skipSpace()
	if !r.eof() {
		return nil, r.fail("unexpected trailing input %q", r.rest(16))
	}
	return g, nil
}

// MustRead is Read for literals known to be valid; it panics on error.
func MustRead(text string) geom.Geometry {
	g, err := Read(text)
	if err != nil {
		panic(err)
	}
	return g
}

// ReadEWKT parses an optional "SRID=n;" prefix followed by WKT.
func ReadEWKT(text string) (*geom.PreparedGeometry, error) {
	var srid uint64
	body := text
	trimmed := strings.TrimLeft(text, " \t\r\n")
	if len(trimmed) >= 5 && strings.EqualFold(trimmed[:5], "SRID=") {
		semi := strings.IndexByte(trimmed, ';')
		if semi < 0 {
			return nil, errors.WithStack(&ParseError{Offset: len(text), Msg: "missing ';' after SRID"})
		}
		v, err := strconv.ParseUint(strings.TrimSpace(trimmed[5:semi]), 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "wkt: invalid SRID %q", trimmed[5:semi])
		}
		srid = v
		body = trimmed[semi+1:]
	}
	g, err := Read(body)
	if err != nil {
		return nil, err
	}
	return geom.NewPreparedGeometry(g, uint32(srid)), nil
}

// ----------------------------------------------------------------------------
// Lexing
// ----------------------------------------------------------------------------

type reader struct {
	s   string
	pos int
}

func (r *reader) fail(format string, args ...any) error {
	return errors.WithStack(&ParseError{Offset: r.pos, Msg: fmt.Sprintf(format, args...)})
}

func (r *reader) eof() bool { return r.pos >= len(r.s) }

func (r *reader) rest(n int) string {
	end := min(len(r.s), r.pos+n)
	return r.s[r.pos:end]
}

func (r *reader) skipSpace() {
	for !r.eof() {
		switch r.s[r.pos] {
		case ' ', '\t', '\n', '\r':
			r.pos++
		default:
			return
		}
	}
}

func isLetter(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }

// word reads the next keyword, upper-cased; empty when none.
func (r *reader) word() string {
	r.skipSpace()
	start := r.pos
	for !r.eof() && isLetter(r.s[r.pos]) {
		r.pos++
	}
	return strings.ToUpper(r.s[start:r.pos])
}

// peekWord returns the next keyword without consuming it.
func (r *reader) peekWord() string {
	save := r.pos
	w := r.word()
	r.pos = save
	return w
}

func (r *reader) peek() byte {
	r.skipSpace()
	if r.eof() {
		return 0
	}
	return r.s[r.pos]
}

func (r *reader) expect(b byte) error {
	if r.peek() != b {
		if r.eof() {
			return r.fail("expected '%c', got end of input", b)
		}
		return r.fail("expected '%c', got '%c'", b, r.s[r.pos])
	}
	r.pos++
	return nil
}

// accept consumes b when it is next.
func (r *reader) accept(b byte) bool {
	if r.peek() == b {
		r.pos++
		return true
	}
	return false
}

func isNumberByte(b byte) bool {
	return (b >= '0' && b <= '9') || b == '.' || b == '-' || b == '+' || b == 'e' || b == 'E' || b == '/'
}

func (r *reader) number() (*big.Rat, error) {
	r.skipSpace()
	start := r.pos
	for !r.eof() && isNumberByte(r.s[r.pos]) {
		r.pos++
	}
	tok := r.s[start:r.pos]
	if tok == "" {
		return nil, r.fail("expected a number, got %q", r.rest(8))
	}
	v, ok := new(big.Rat).SetString(tok)
	if !ok {
		r.pos = start
		return nil, r.fail("invalid number %q", tok)
	}
	return v, nil
}

// ----------------------------------------------------------------------------
// Grammar
// ----------------------------------------------------------------------------

func (r *reader) geometry() (geom.Geometry, error) {
	start := r.pos
	kw := r.word()
	if kw == "" {
		return nil, r.fail("expected a geometry keyword, got %q", r.rest(8))
	}
	switch r.peekWord() {
	case "Z":
		r.word()
	case "M", "ZM":
		return nil, r.fail("M coordinates are not supported")
	}
	empty := false
	if r.peekWord() == "EMPTY" {
		r.word()
		empty = true
	}

	switch kw {
	case "POINT":
		if empty {
			return geom.EmptyPoint(), nil
		}
		return r.point()
	case "LINESTRING":
		if empty {
			return geom.NewLineString(), nil
		}
		return r.lineString()
	case "POLYGON":
		if empty {
			return geom.NewPolygon(nil), nil
		}
		return r.polygon()
	case "TRIANGLE":
		if empty {
			return geom.EmptyTriangle(), nil
		}
		return r.triangle()
	case "MULTIPOINT":
		if empty {
			return geom.NewMultiPoint(), nil
		}
		return r.multiPoint()
	case "MULTILINESTRING":
		if empty {
			return geom.NewMultiLineString(), nil
		}
		m := geom.NewMultiLineString()
		return m, r.list(func() error {
			ls, err := r.lineString()
			m.Add(ls)
			return err
		})
	case "MULTIPOLYGON":
		if empty {
			return geom.NewMultiPolygon(), nil
		}
		m := geom.NewMultiPolygon()
		return m, r.list(func() error {
			p, err := r.polygon()
			m.Add(p)
			return err
		})
	case "GEOMETRYCOLLECTION":
		if empty {
			return geom.NewGeometryCollection(), nil
		}
		gc := geom.NewGeometryCollection()
		return gc, r.list(func() error {
			g, err := r.geometry()
			if err == nil {
				gc.Add(g)
			}
			return err
		})
	case "TIN", "TRIANGULATEDSURFACE":
		if empty {
			return geom.NewTriangulatedSurface(), nil
		}
		tin := geom.NewTriangulatedSurface()
		return tin, r.list(func() error {
			t, err := r.triangle()
			tin.AddTriangle(t)
			return err
		})
	case "POLYHEDRALSURFACE":
		if empty {
			return geom.NewPolyhedralSurface(), nil
		}
		return r.polyhedralSurface()
	case "SOLID":
		if empty {
			return geom.NewSolid(nil), nil
		}
		return r.solid()
	case "MULTISOLID":
		if empty {
			return geom.NewMultiSolid(), nil
		}
		m := geom.NewMultiSolid()
		return m, r.list(func() error {
			s, err := r.solid()
			m.Add(s)
			return err
		})
	}
	r.pos = start
	return nil, r.fail("unknown geometry type %q", kw)
}

// list parses "(" item ("," item)* ")".
func (r *reader) list(item func() error) error {
	if err := r.expect('('); err != nil {
		return err
	}
	for {
		if err := item(); err != nil {
			return err
		}
		if !r.accept(',') {
			break
		}
	}
	return r.expect(')')
}

// coordinate reads two or three numbers.
func (r *reader) coordinate() (geom.Coordinate, error) {
	x, err := r.number()
	if err != nil {
		return geom.Coordinate{}, err
	}
	y, err := r.number()
	if err != nil {
		return geom.Coordinate{}, err
	}
	if c := r.peek(); c == ',' || c == ')' {
		return geom.NewCoordinateRat(x, y), nil
	}
	z, err := r.number()
	if err != nil {
		return geom.Coordinate{}, err
	}
	return geom.NewCoordinateRat3(x, y, z), nil
}

func (r *reader) point() (*geom.Point, error) {
	if err := r.expect('('); err != nil {
		return nil, err
	}
	c, err := r.coordinate()
	if err != nil {
		return nil, err
	}
	return geom.NewPoint(c), r.expect(')')
}

func (r *reader) lineString() (*geom.LineString, error) {
	ls := geom.NewLineString()
	err := r.list(func() error {
		c, err := r.coordinate()
		if err == nil {
			ls.AddPoint(c)
		}
		return err
	})
	return ls, err
}

func (r *reader) polygon() (*geom.Polygon, error) {
	var rings []*geom.LineString
	err := r.list(func() error {
		ls, err := r.lineString()
		rings = append(rings, ls)
		return err
	})
	if err != nil {
		return nil, err
	}
	return geom.NewPolygon(rings[0], rings[1:]...), nil
}

func (r *reader) triangle() (*geom.Triangle, error) {
	at := r.pos
	p, err := r.polygon()
	if err != nil {
		return nil, err
	}
	if p.NumRings() != 1 {
		r.pos = at
		return nil, r.fail("a triangle has exactly one ring")
	}
	ring := p.ExteriorRing()
	n := ring.NumPoints()
	if n == 4 && ring.IsClosed() {
		n = 3
	}
	if n != 3 {
		r.pos = at
		return nil, r.fail("a triangle needs 3 distinct vertices, got %d positions", ring.NumPoints())
	}
	return geom.NewTriangle(ring.PointN(0), ring.PointN(1), ring.PointN(2)), nil
}

// multiPoint accepts both "((x y), (x y))" and "(x y, x y)".
func (r *reader) multiPoint() (*geom.MultiPoint, error) {
	m := geom.NewMultiPoint()
	err := r.list(func() error {
		if r.peek() == '(' {
			p, err := r.point()
			if err == nil {
				m.Add(p)
			}
			return err
		}
		if r.peekWord() == "EMPTY" {
			r.word()
			m.Add(geom.EmptyPoint())
			return nil
		}
		c, err := r.coordinate()
		if err == nil {
			m.Add(geom.NewPoint(c))
		}
		return err
	})
	return m, err
}

func (r *reader) polyhedralSurface() (*geom.PolyhedralSurface, error) {
	s := geom.NewPolyhedralSurface()
	err := r.list(func() error {
		p, err := r.polygon()
		if err == nil {
			s.AddPolygon(p)
		}
		return err
	})
	return s, err
}

func (r *reader) solid() (*geom.Solid, error) {
	var shells []*geom.PolyhedralSurface
	err := r.list(func() error {
		s, err := r.polyhedralSurface()
		shells = append(shells, s)
		return err
	})
	if err != nil {
		return nil, err
	}
	return geom.NewSolid(shells[0], shells[1:]...), nil
}
