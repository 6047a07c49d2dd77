package graph

import (
	"strings"
	"testing"

	"github.com/chazu/sfgeom/pkg/geom"
)

func countSeverity(errs []ValidationError, sev ValidationSeverity) int {
	n := 0
	for _, e := range errs {
		if e.Severity == sev {
			n++
		}
	}
	return n
}

func TestValidateClosedShell(t *testing.T) {
	errs := mustNew(t, cubeShell()).Validate()
	if len(errs) != 0 {
		t.Fatalf("expected no findings, got %v", errs)
	}
}

func TestValidateFreeEdges(t *testing.T) {
	open := geom.NewPolyhedralSurface(cubeShell().Polygons()[1:]...)
	errs := mustNew(t, open).Validate()
	if got := countSeverity(errs, SeverityWarning); got != 4 {
		t.Errorf("free edge warnings = %d, want 4", got)
	}
	if got := countSeverity(errs, SeverityError); got != 0 {
		t.Errorf("errors = %d, want 0", got)
	}
	if !strings.Contains(errs[0].Error(), "free edge") {
		t.Errorf("unexpected message %q", errs[0].Error())
	}
}

func TestValidateInconsistentOrientation(t *testing.T) {
	polys := cubeShell().Polygons()
	polys[0].Reverse()
	errs := mustNew(t, geom.NewPolyhedralSurface(polys...)).Validate()
	if got := countSeverity(errs, SeverityError); got != 4 {
		t.Errorf("orientation errors = %d, want 4", got)
	}
	for _, e := range errs {
		if !strings.Contains(e.Error(), "same direction") {
			t.Errorf("unexpected finding %q", e.Error())
		}
	}
}

func TestValidateNonManifold(t *testing.T) {
	// Three triangles hinged on the edge (0 0 0)-(1 0 0).
	tin := geom.NewTriangulatedSurface(
		tri([3]float64{0, 0, 0}, [3]float64{1, 0, 0}, [3]float64{0, 1, 0}),
		tri([3]float64{1, 0, 0}, [3]float64{0, 0, 0}, [3]float64{0, 0, 1}),
		tri([3]float64{1, 0, 0}, [3]float64{0, 0, 0}, [3]float64{0, -1, 0}),
	)
	errs := mustNew(t, tin).Validate()
	found := false
	for _, e := range errs {
		if strings.Contains(e.Message, "non-manifold") && e.Severity == SeverityError {
			found = true
			if e.Facet != 0 {
				t.Errorf("facet = %d, want 0", e.Facet)
			}
		}
	}
	if !found {
		t.Errorf("expected a non-manifold finding, got %v", errs)
	}
}

func TestValidateComponents(t *testing.T) {
	tin := geom.NewTriangulatedSurface(
		tri([3]float64{0, 0, 0}, [3]float64{1, 0, 0}, [3]float64{0, 1, 0}),
		tri([3]float64{5, 5, 0}, [3]float64{6, 5, 0}, [3]float64{5, 6, 0}),
	)
	errs := mustNew(t, tin).Validate()
	last := errs[len(errs)-1]
	if last.Facet != -1 || !strings.Contains(last.Error(), "2 connected components") {
		t.Errorf("unexpected finding %q", last.Error())
	}
}

func TestSeverityString(t *testing.T) {
	if SeverityError.String() != "error" || SeverityWarning.String() != "warning" {
		t.Error("severity names")
	}
	if got := ValidationSeverity(9).String(); got != "ValidationSeverity(9)" {
		t.Errorf("unknown severity = %q", got)
	}
}
