// Command sfgeom evaluates geometry scripts, checks validity and converts
// geometries between WKT, GeoJSON, DXF and STL.
//
// Usage:
//
//	sfgeom [-config sfgeom.yaml] eval [-json] [-bounds] script.lisp
//	sfgeom valid 'POLYGON((0 0,1 0,1 1,0 0))'
//	sfgeom export -format stl|dxf|geojson -o out.stl 'SOLID(...)'
//	sfgeom asc [-o out.stl|out.geojson|out.wkt] grid.asc
//
// A geometry argument starting with @ names a file holding the WKT.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/chazu/sfgeom/pkg/algorithm"
	"github.com/chazu/sfgeom/pkg/config"
	"github.com/chazu/sfgeom/pkg/engine"
	"github.com/chazu/sfgeom/pkg/format"
	"github.com/chazu/sfgeom/pkg/geom"
	"github.com/chazu/sfgeom/pkg/graph"
	"github.com/chazu/sfgeom/pkg/logging"
	"github.com/chazu/sfgeom/pkg/tessellate"
	"github.com/chazu/sfgeom/pkg/wkt"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// cli carries what every subcommand needs.
type cli struct {
	cfg    config.Config
	logger *zap.Logger
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sfgeom", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "sfgeom.yaml", "settings file; missing means defaults")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: sfgeom [-config file] eval|valid|export|asc [flags] args")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer func() { _ = logger.Sync() }()
	algorithm.SetLogger(logger.Named("algorithm"))
	algorithm.SetTolerance(cfg.AlgorithmTolerance())

	c := &cli{cfg: cfg, logger: logger, stdout: stdout, stderr: stderr}
	cmd, rest := fs.Arg(0), fs.Args()[1:]
	logger.Debug("command", zap.String("name", cmd), zap.Strings("args", rest))

	var code int
	switch cmd {
	case "eval":
		code, err = c.eval(rest)
	case "valid":
		code, err = c.valid(rest)
	case "export":
		code, err = c.export(rest)
	case "asc":
		code, err = c.asc(rest)
	default:
		fmt.Fprintf(stderr, "sfgeom: unknown command %q\n", cmd)
		fs.Usage()
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "sfgeom %s: %v\n", cmd, err)
		if code == 0 {
			code = 1
		}
	}
	return code
}

// readGeometry parses the WKT held by the remaining arguments.
func readGeometry(args []string) (geom.Geometry, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("missing geometry argument")
	}
	text := strings.Join(args, " ")
	if strings.HasPrefix(text, "@") {
		data, err := os.ReadFile(text[1:])
		if err != nil {
			return nil, err
		}
		text = string(data)
	}
	return wkt.Read(strings.TrimSpace(text))
}

func (c *cli) eval(args []string) (int, error) {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	asJSON := fs.Bool("json", false, "print the full result as JSON, meshes included")
	bounds := fs.Bool("bounds", false, "add a bounding box mesh per geometry")
	if err := fs.Parse(args); err != nil {
		return 2, nil
	}
	if fs.NArg() != 1 {
		return 2, fmt.Errorf("expected one script file")
	}
	src, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return 1, err
	}

	eng := engine.NewEngine(
		engine.WithTimeout(c.cfg.Engine.Timeout),
		engine.WithLogger(c.logger.Named("engine")),
	)
	app := NewApp(eng, c.logger, c.cfg.Export.Decimals)
	app.Bounds = *bounds
	result := app.Evaluate(string(src))

	if *asJSON {
		enc := json.NewEncoder(c.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return 1, err
		}
	} else {
		for _, e := range result.Errors {
			if e.Line > 0 {
				fmt.Fprintf(c.stderr, "%s:%d: %s\n", fs.Arg(0), e.Line, e.Message)
			} else {
				fmt.Fprintf(c.stderr, "%s: %s\n", fs.Arg(0), e.Message)
			}
		}
		for _, g := range result.Geometries {
			fmt.Fprintln(c.stdout, g)
		}
		if len(result.Geometries) == 0 && len(result.Errors) == 0 {
			fmt.Fprintln(c.stdout, result.Value)
		}
	}
	if len(result.Errors) > 0 {
		return 1, nil
	}
	return 0, nil
}

func (c *cli) valid(args []string) (int, error) {
	g, err := readGeometry(args)
	if err != nil {
		return 1, err
	}
	v, err := algorithm.IsValid(g)
	if errors.Is(err, algorithm.ErrNotImplemented) && isShell(g) {
		return c.shell(g)
	}
	if err != nil {
		return 1, err
	}
	if !v.Valid {
		fmt.Fprintf(c.stdout, "invalid: %s\n", v.Reason)
		return 1, nil
	}
	fmt.Fprintln(c.stdout, "valid")
	return 0, nil
}

func isShell(g geom.Geometry) bool {
	switch g.(type) {
	case *geom.PolyhedralSurface, *geom.TriangulatedSurface, *geom.Solid:
		return true
	}
	return false
}

// shell reports the surface graph findings for kinds the validity checker
// does not cover. Only error findings make the shell invalid.
func (c *cli) shell(g geom.Geometry) (int, error) {
	issues, err := algorithm.ShellIssues(g)
	if err != nil {
		return 1, err
	}
	code := 0
	for _, is := range issues {
		fmt.Fprintln(c.stdout, is.Error())
		if is.Severity == graph.SeverityError {
			code = 1
		}
	}
	if code != 0 {
		fmt.Fprintln(c.stdout, "invalid shell")
	} else {
		fmt.Fprintln(c.stdout, "valid shell")
	}
	return code, nil
}

func (c *cli) export(args []string) (int, error) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	kind := fs.String("format", "", "stl, dxf or geojson")
	out := fs.String("o", "", "output file; geojson and wkt default to stdout")
	if err := fs.Parse(args); err != nil {
		return 2, nil
	}
	g, err := readGeometry(fs.Args())
	if err != nil {
		return 1, err
	}
	if err := c.write(g, *kind, *out); err != nil {
		return 1, err
	}
	return 0, nil
}

// write stores g in the given format. An empty format is taken from the
// output file extension.
func (c *cli) write(g geom.Geometry, kind, out string) error {
	if kind == "" {
		kind = strings.TrimPrefix(filepath.Ext(out), ".")
	}
	switch kind {
	case "stl":
		if out == "" {
			return fmt.Errorf("stl needs -o")
		}
		return tessellate.SaveSTL(out, g)
	case "dxf":
		if out == "" {
			return fmt.Errorf("dxf needs -o")
		}
		return format.WriteDXF(out, g)
	case "geojson", "json":
		return c.toFileOrStdout(out, func(w io.Writer) error { return format.WriteGeoJSON(w, g) })
	case "wkt", "":
		return c.toFileOrStdout(out, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, wkt.Write(g, c.cfg.Export.Decimals))
			return err
		})
	}
	return fmt.Errorf("unknown format %q", kind)
}

func (c *cli) toFileOrStdout(path string, fn func(io.Writer) error) error {
	if path == "" || path == "-" {
		return fn(c.stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (c *cli) asc(args []string) (int, error) {
	fs := flag.NewFlagSet("asc", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	out := fs.String("o", "", "write the grid TIN; format from the extension")
	if err := fs.Parse(args); err != nil {
		return 2, nil
	}
	if fs.NArg() != 1 {
		return 2, fmt.Errorf("expected one grid file")
	}
	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return 1, err
	}
	grid, err := format.ReadASC(f)
	f.Close()
	if err != nil {
		return 1, err
	}

	tin := grid.ToTIN()
	fmt.Fprintf(c.stdout, "grid %dx%d cell %gx%g extent %s triangles %d\n",
		grid.Width, grid.Height, grid.Dx, grid.Dy, grid.Envelope(), tin.NumTriangles())
	if *out == "" {
		return 0, nil
	}
	if err := c.write(tin, "", *out); err != nil {
		return 1, err
	}
	return 0, nil
}
