package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/sfgeom/pkg/algorithm"
	"github.com/chazu/sfgeom/pkg/geom"
	"github.com/chazu/sfgeom/pkg/wkt"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms script source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: as-text -> as_text
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value is a flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toGeometry extracts a geometry from a sexpGeometry. A string argument is
// read as WKT so that scripts can pass literals directly.
func toGeometry(s zygo.Sexp) (geom.Geometry, error) {
	switch v := s.(type) {
	case *sexpGeometry:
		return v.g, nil
	case *zygo.SexpStr:
		return wkt.Read(v.S)
	}
	return nil, fmt.Errorf("expected geometry, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// ---------------------------------------------------------------------------
// Geometry values
// ---------------------------------------------------------------------------

// sexpGeometry wraps a geom.Geometry so it can be passed between builtins.
type sexpGeometry struct {
	g geom.Geometry
}

func (s *sexpGeometry) SexpString(ps *zygo.PrintState) string {
	return wkt.Write(s.g, wkt.Exact)
}
func (s *sexpGeometry) Type() *zygo.RegisteredType { return nil }

func boolSexp(b bool) zygo.Sexp { return &zygo.SexpBool{Val: b} }

func floatSexp(f float64) zygo.Sexp { return &zygo.SexpFloat{Val: f} }

func stringSexp(s string) zygo.Sexp { return &zygo.SexpStr{S: s} }

func geomSexp(g geom.Geometry) zygo.Sexp { return &sexpGeometry{g: g} }

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// unary and binary adapt algorithm functions to the zygomys calling
// convention. Argument errors carry the script-level builtin name.
func unary(name string, fn func(geom.Geometry) (zygo.Sexp, error)) zygo.ZlispUserFunction {
	return func(env *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("%s requires 1 geometry argument, got %d", name, len(pa.positional))
		}
		g, err := toGeometry(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
		}
		out, err := fn(g)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
		}
		return out, nil
	}
}

func binary(name string, fn func(a, b geom.Geometry) (zygo.Sexp, error)) zygo.ZlispUserFunction {
	return func(env *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("%s requires 2 geometry arguments, got %d", name, len(args))
		}
		a, err := toGeometry(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: first argument: %w", name, err)
		}
		b, err := toGeometry(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: second argument: %w", name, err)
		}
		out, err := fn(a, b)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
		}
		return out, nil
	}
}

func predicate(fn func(a, b geom.Geometry) (bool, error)) func(a, b geom.Geometry) (zygo.Sexp, error) {
	return func(a, b geom.Geometry) (zygo.Sexp, error) {
		ok, err := fn(a, b)
		if err != nil {
			return nil, err
		}
		return boolSexp(ok), nil
	}
}

func metric(fn func(a, b geom.Geometry) (float64, error)) func(a, b geom.Geometry) (zygo.Sexp, error) {
	return func(a, b geom.Geometry) (zygo.Sexp, error) {
		d, err := fn(a, b)
		if err != nil {
			return nil, err
		}
		return floatSexp(d), nil
	}
}

func construct(fn func(a, b geom.Geometry) (geom.Geometry, error)) func(a, b geom.Geometry) (zygo.Sexp, error) {
	return func(a, b geom.Geometry) (zygo.Sexp, error) {
		g, err := fn(a, b)
		if err != nil {
			return nil, err
		}
		return geomSexp(g), nil
	}
}

// envelopeGeometry is the bounding box of g as a polygon, a solid for 3D
// input, or an empty collection.
func envelopeGeometry(g geom.Geometry) geom.Geometry {
	env := g.Envelope()
	switch {
	case env.IsEmpty():
		return geom.NewGeometryCollection()
	case env.Is3D():
		return env.ToSolid()
	default:
		return env.ToPolygon()
	}
}

// registerBuiltins installs the geometry builtins into a zygomys
// environment. Geometries passed to emit are appended to out.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens and kebab-case names are recognized.
func registerBuiltins(env *zygo.Zlisp, out *EvalResult) {
	// (wkt "POLYGON((0 0,1 0,1 1,0 0))")
	env.AddFunction("wkt", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("wkt requires 1 string argument, got %d", len(args))
		}
		text, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("wkt: %w", err)
		}
		g, err := wkt.Read(text)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("wkt: %w", err)
		}
		return geomSexp(g), nil
	})

	// (as-text g) or (as-text g :decimals 3)
	env.AddFunction("as_text", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("as-text requires 1 geometry argument, got %d", len(pa.positional))
		}
		g, err := toGeometry(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("as-text: %w", err)
		}
		decimals := wkt.Exact
		if v, ok := pa.kw["decimals"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("as-text: decimals: %w", err)
			}
			decimals = int(f)
		}
		return stringSexp(wkt.Write(g, decimals)), nil
	})

	env.AddFunction("intersects", binary("intersects", predicate(algorithm.Intersects)))
	env.AddFunction("intersects3d", binary("intersects3d", predicate(algorithm.Intersects3D)))
	env.AddFunction("covers", binary("covers", predicate(algorithm.Covers)))
	env.AddFunction("covers3d", binary("covers3d", predicate(algorithm.Covers3D)))
	env.AddFunction("distance", binary("distance", metric(algorithm.Distance)))
	env.AddFunction("distance3d", binary("distance3d", metric(algorithm.Distance3D)))
	env.AddFunction("intersection", binary("intersection", construct(algorithm.Intersection)))
	env.AddFunction("intersection3d", binary("intersection3d", construct(algorithm.Intersection3D)))
	env.AddFunction("union", binary("union", construct(algorithm.Union)))
	env.AddFunction("union3d", binary("union3d", construct(algorithm.Union3D)))
	env.AddFunction("difference", binary("difference", construct(algorithm.Difference)))
	env.AddFunction("difference3d", binary("difference3d", construct(algorithm.Difference3D)))

	env.AddFunction("is_valid", unary("is-valid", func(g geom.Geometry) (zygo.Sexp, error) {
		v, err := algorithm.IsValid(g)
		if err != nil {
			return nil, err
		}
		return boolSexp(v.Valid), nil
	}))
	env.AddFunction("validity_reason", unary("validity-reason", func(g geom.Geometry) (zygo.Sexp, error) {
		v, err := algorithm.IsValid(g)
		if err != nil {
			return nil, err
		}
		return stringSexp(v.Reason), nil
	}))
	env.AddFunction("triangulate", unary("triangulate", func(g geom.Geometry) (zygo.Sexp, error) {
		tin, err := algorithm.Triangulate(g)
		if err != nil {
			return nil, err
		}
		return geomSexp(tin), nil
	}))
	env.AddFunction("skeleton", unary("skeleton", func(g geom.Geometry) (zygo.Sexp, error) {
		ml, err := algorithm.StraightSkeleton(g)
		if err != nil {
			return nil, err
		}
		return geomSexp(ml), nil
	}))
	env.AddFunction("envelope", unary("envelope", func(g geom.Geometry) (zygo.Sexp, error) {
		return geomSexp(envelopeGeometry(g)), nil
	}))
	env.AddFunction("area", unary("area", func(g geom.Geometry) (zygo.Sexp, error) {
		return floatSexp(algorithm.Area(g)), nil
	}))
	env.AddFunction("area3d", unary("area3d", func(g geom.Geometry) (zygo.Sexp, error) {
		return floatSexp(algorithm.Area3D(g)), nil
	}))
	env.AddFunction("volume", unary("volume", func(g geom.Geometry) (zygo.Sexp, error) {
		return floatSexp(algorithm.Volume(g)), nil
	}))
	env.AddFunction("geometry_type", unary("geometry-type", func(g geom.Geometry) (zygo.Sexp, error) {
		return stringSexp(g.GeometryTypeName()), nil
	}))

	// (extrude g 0 0 1) or (extrude g :dz 1)
	env.AddFunction("extrude", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) == 0 {
			return zygo.SexpNull, fmt.Errorf("extrude requires a geometry argument")
		}
		g, err := toGeometry(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("extrude: %w", err)
		}
		var d [3]float64
		if rest := pa.positional[1:]; len(rest) > 0 {
			if len(rest) != 3 {
				return zygo.SexpNull, fmt.Errorf("extrude: expected dx dy dz, got %d numbers", len(rest))
			}
			for i, v := range rest {
				if d[i], err = toFloat64(v); err != nil {
					return zygo.SexpNull, fmt.Errorf("extrude: %w", err)
				}
			}
		}
		for i, k := range []string{"dx", "dy", "dz"} {
			if v, ok := pa.kw[k]; ok {
				if d[i], err = toFloat64(v); err != nil {
					return zygo.SexpNull, fmt.Errorf("extrude: %s: %w", k, err)
				}
			}
		}
		res, err := algorithm.Extrude(g, d[0], d[1], d[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("extrude: %w", err)
		}
		return geomSexp(res), nil
	})

	// (emit g ...) records geometries as script output and returns the last.
	env.AddFunction("emit", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return zygo.SexpNull, fmt.Errorf("emit requires at least 1 geometry")
		}
		var items []zygo.Sexp
		for _, a := range args {
			switch a.(type) {
			case *zygo.SexpPair, *zygo.SexpArray:
				list, err := sexpListToSlice(a)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("emit: %w", err)
				}
				items = append(items, list...)
			default:
				items = append(items, a)
			}
		}
		for _, it := range items {
			g, err := toGeometry(it)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("emit: %w", err)
			}
			out.Emitted = append(out.Emitted, g)
		}
		return items[len(items)-1], nil
	})
}
