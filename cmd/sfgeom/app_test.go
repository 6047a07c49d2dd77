package main

import (
	"strings"
	"testing"

	"github.com/chazu/sfgeom/pkg/engine"
	"github.com/chazu/sfgeom/pkg/wkt"
)

func newTestApp() *App {
	return NewApp(engine.NewEngine(), nil, wkt.Exact)
}

func TestE2EEmptySource(t *testing.T) {
	result := newTestApp().Evaluate("")

	if len(result.Errors) != 0 {
		t.Errorf("expected 0 errors for empty source, got %d", len(result.Errors))
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes for empty source, got %d", len(result.Meshes))
	}
	// Slices are non-nil so JSON serializes them as [] not null.
	if result.Meshes == nil || result.Errors == nil || result.Geometries == nil {
		t.Error("result slices should be non-nil")
	}
}

func TestE2ESolid(t *testing.T) {
	source := `
; a 1x1x1 cube from an extruded square
(def base (wkt "POLYGON((0 0,1 0,1 1,0 1,0 0))"))
(extrude base 0 0 1)
`
	result := newTestApp().Evaluate(source)
	if len(result.Errors) > 0 {
		t.Fatalf("eval errors: %v", result.Errors)
	}
	if len(result.Geometries) != 1 || !strings.HasPrefix(result.Geometries[0], "SOLID(") {
		t.Fatalf("geometries = %v", result.Geometries)
	}
	if len(result.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(result.Meshes))
	}
	m := result.Meshes[0]
	if len(m.Indices) != 12*3 {
		t.Errorf("expected 12 triangles, got %d", len(m.Indices)/3)
	}
	if m.PartName != "Solid" || m.Color != colorPalette[0] {
		t.Errorf("part = %q color = %q", m.PartName, m.Color)
	}
}

func TestE2ESyntaxErrorWithLineInfo(t *testing.T) {
	result := newTestApp().Evaluate("(+ 1 2)\n(area (wkt \"POINT(0 0)\")")

	if len(result.Errors) == 0 {
		t.Fatal("expected at least one eval error for unmatched parens")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on syntax error, got %d", len(result.Meshes))
	}
	if result.Errors[0].Message == "" {
		t.Error("syntax error should have a non-empty message")
	}
}

func TestE2EValueWithoutGeometry(t *testing.T) {
	result := newTestApp().Evaluate(`(area (wkt "POLYGON((0 0,2 0,2 2,0 0))"))`)
	if len(result.Errors) > 0 {
		t.Fatalf("eval errors: %v", result.Errors)
	}
	if len(result.Geometries) != 0 {
		t.Errorf("expected no geometries, got %v", result.Geometries)
	}
	if result.Value == "" {
		t.Error("expected the printed value")
	}
}

func TestE2ERapidEvaluation(t *testing.T) {
	// Sequential calls exercise the generation counter; none may panic.
	app := newTestApp()
	sources := []string{
		`(wkt "POINT(0 0)")`,
		`(+ 1 2)`,
		``,
		`(area (wkt "POLYGON((0 0,1 0`,
		`(triangulate (wkt "POLYGON((0 0,1 0,1 1,0 1,0 0))"))`,
	}
	for i, source := range sources {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("iteration %d panicked: %v", i, r)
				}
			}()
			_ = app.Evaluate(source)
		}()
	}
}

func TestE2EColorPaletteWrapping(t *testing.T) {
	var b strings.Builder
	b.WriteString("(emit")
	for i := 0; i < 9; i++ {
		b.WriteString(` (wkt "TRIANGLE((0 0,1 0,0 1,0 0))")`)
	}
	b.WriteString(")")

	result := newTestApp().Evaluate(b.String())
	if len(result.Errors) > 0 {
		t.Fatalf("eval errors: %v", result.Errors)
	}
	if len(result.Meshes) != 9 {
		t.Fatalf("expected 9 meshes, got %d", len(result.Meshes))
	}
	if result.Meshes[8].Color != colorPalette[0] {
		t.Errorf("palette should wrap, got %q", result.Meshes[8].Color)
	}
}

func TestE2EBounds(t *testing.T) {
	app := newTestApp()
	app.Bounds = true
	result := app.Evaluate(`(wkt "SOLID((((0 0 0,0 1 0,1 1 0,1 0 0,0 0 0)),((0 0 1,1 0 1,1 1 1,0 1 1,0 0 1)),((0 0 0,0 0 1,0 1 1,0 1 0,0 0 0)),((1 0 0,1 1 0,1 1 1,1 0 1,1 0 0)),((0 0 0,1 0 0,1 0 1,0 0 1,0 0 0)),((0 1 0,0 1 1,1 1 1,1 1 0,0 1 0))))")`)
	if len(result.Errors) > 0 {
		t.Fatalf("eval errors: %v", result.Errors)
	}
	if len(result.Meshes) != 2 {
		t.Fatalf("expected the solid and its bounds, got %d meshes", len(result.Meshes))
	}
	if result.Meshes[1].PartName != "bounds/Solid" {
		t.Errorf("bounds part = %q", result.Meshes[1].PartName)
	}
}
