package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI invokes the command with a config path that does not exist so
// defaults apply.
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"-config", filepath.Join(t.TempDir(), "none.yaml")}, args...)
	code := run(full, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestUsage(t *testing.T) {
	if code, _, stderr := runCLI(t); code != 2 || !strings.Contains(stderr, "usage") {
		t.Errorf("code = %d stderr = %q", code, stderr)
	}
	if code, _, _ := runCLI(t, "frobnicate"); code != 2 {
		t.Errorf("unknown command code = %d, want 2", code)
	}
}

func TestValid(t *testing.T) {
	code, out, _ := runCLI(t, "valid", "POLYGON((0 0,1 0,1 1,0 1,0 0))")
	if code != 0 || strings.TrimSpace(out) != "valid" {
		t.Errorf("code = %d out = %q", code, out)
	}
	code, out, _ = runCLI(t, "valid", "POLYGON((0 0,0 1,1 1,1 0,0 0))")
	if code != 1 || !strings.Contains(out, "exterior ring is oriented clockwise") {
		t.Errorf("code = %d out = %q", code, out)
	}
	if code, _, stderr := runCLI(t, "valid", "POLYGON((0 0"); code != 1 || stderr == "" {
		t.Errorf("parse error: code = %d stderr = %q", code, stderr)
	}
}

func TestValidFromFile(t *testing.T) {
	path := writeFile(t, "g.wkt", "LINESTRING(0 0,1 1)\n")
	if code, out, _ := runCLI(t, "valid", "@"+path); code != 0 || !strings.Contains(out, "valid") {
		t.Errorf("code = %d out = %q", code, out)
	}
}

func TestValidShell(t *testing.T) {
	cube := "SOLID((((0 0 0,0 1 0,1 1 0,1 0 0,0 0 0)),((0 0 1,1 0 1,1 1 1,0 1 1,0 0 1))," +
		"((0 0 0,1 0 0,1 0 1,0 0 1,0 0 0)),((1 1 0,0 1 0,0 1 1,1 1 1,1 1 0))," +
		"((1 0 0,1 1 0,1 1 1,1 0 1,1 0 0)),((0 0 0,0 0 1,0 1 1,0 1 0,0 0 0))))"
	code, out, _ := runCLI(t, "valid", cube)
	if code != 0 || strings.TrimSpace(out) != "valid shell" {
		t.Errorf("code = %d out = %q", code, out)
	}

	twice := "POLYHEDRALSURFACE(((0 0 0,1 0 0,0 1 0,0 0 0)),((0 0 0,1 0 0,0 0 1,0 0 0)))"
	code, out, _ = runCLI(t, "valid", twice)
	if code != 1 || !strings.Contains(out, "same direction") || !strings.Contains(out, "invalid shell") {
		t.Errorf("code = %d out = %q", code, out)
	}
}

func TestEval(t *testing.T) {
	script := writeFile(t, "s.lisp", `(intersection (wkt "POLYGON((0 0,2 0,2 2,0 2,0 0))") (wkt "POLYGON((1 1,3 1,3 3,1 3,1 1))"))`)
	code, out, stderr := runCLI(t, "eval", script)
	if code != 0 {
		t.Fatalf("code = %d stderr = %q", code, stderr)
	}
	if !strings.HasPrefix(out, "POLYGON(") {
		t.Errorf("out = %q", out)
	}

	code, out, _ = runCLI(t, "eval", "-json", script)
	if code != 0 || !strings.Contains(out, `"meshes"`) || !strings.Contains(out, `"partName": "Polygon"`) {
		t.Errorf("json: code = %d out = %q", code, out)
	}
}

func TestEvalError(t *testing.T) {
	script := writeFile(t, "bad.lisp", "(+ 1 2)\n(area")
	code, _, stderr := runCLI(t, "eval", script)
	if code != 1 || !strings.Contains(stderr, "bad.lisp") {
		t.Errorf("code = %d stderr = %q", code, stderr)
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	cube := "SOLID((((0 0 0,0 1 0,1 1 0,1 0 0,0 0 0)),((0 0 1,1 0 1,1 1 1,0 1 1,0 0 1)),((0 0 0,0 0 1,0 1 1,0 1 0,0 0 0)),((1 0 0,1 1 0,1 1 1,1 0 1,1 0 0)),((0 0 0,1 0 0,1 0 1,0 0 1,0 0 0)),((0 1 0,0 1 1,1 1 1,1 1 0,0 1 0))))"

	stl := filepath.Join(dir, "cube.stl")
	if code, _, stderr := runCLI(t, "export", "-format", "stl", "-o", stl, cube); code != 0 {
		t.Fatalf("stl: code = %d stderr = %q", code, stderr)
	}
	if fi, err := os.Stat(stl); err != nil || fi.Size() != 84+12*50 {
		t.Errorf("stl size: %v %v", fi, err)
	}

	dxf := filepath.Join(dir, "cube.dxf")
	if code, _, stderr := runCLI(t, "export", "-o", dxf, cube); code != 0 {
		t.Fatalf("dxf: code = %d stderr = %q", code, stderr)
	}
	if _, err := os.Stat(dxf); err != nil {
		t.Error(err)
	}

	code, out, _ := runCLI(t, "export", "-format", "geojson", "POINT(1 2)")
	if code != 0 || !strings.Contains(out, `"FeatureCollection"`) {
		t.Errorf("geojson: code = %d out = %q", code, out)
	}

	if code, _, _ := runCLI(t, "export", "-format", "svg", "POINT(1 2)"); code != 1 {
		t.Errorf("unknown format code = %d, want 1", code)
	}
	if code, _, _ := runCLI(t, "export", "-format", "stl", cube); code != 1 {
		t.Errorf("stl without -o code = %d, want 1", code)
	}
}

func TestASC(t *testing.T) {
	grid := writeFile(t, "g.asc", "ncols 3\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2 3\n4 5 6\n")
	code, out, stderr := runCLI(t, "asc", grid)
	if code != 0 {
		t.Fatalf("code = %d stderr = %q", code, stderr)
	}
	if !strings.Contains(out, "grid 3x2") || !strings.Contains(out, "triangles 4") {
		t.Errorf("out = %q", out)
	}

	wktOut := filepath.Join(t.TempDir(), "tin.wkt")
	if code, _, stderr := runCLI(t, "asc", "-o", wktOut, grid); code != 0 {
		t.Fatalf("code = %d stderr = %q", code, stderr)
	}
	data, err := os.ReadFile(wktOut)
	if err != nil || !strings.HasPrefix(string(data), "TIN(") {
		t.Errorf("tin file = %q %v", data, err)
	}
}

func TestConfigFile(t *testing.T) {
	cfg := writeFile(t, "sfgeom.yaml", "export:\n  decimals: 1\n")
	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", cfg, "export", "POINT(1/3 2)"}, &stdout, &stderr)
	if code != 0 || strings.TrimSpace(stdout.String()) != "POINT(0.3 2.0)" {
		t.Errorf("code = %d out = %q stderr = %q", code, stdout.String(), stderr.String())
	}

	bad := writeFile(t, "bad.yaml", "engine:\n  timeout: -1s\n")
	if code := run([]string{"-config", bad, "valid", "POINT(0 0)"}, &stdout, &stderr); code != 1 {
		t.Errorf("bad config code = %d, want 1", code)
	}
}
