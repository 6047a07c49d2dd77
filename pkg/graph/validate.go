package graph

import "fmt"

// ValidationSeverity indicates whether a finding makes the surface unusable
// as a volume boundary or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // not a valid shell
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single finding.
type ValidationError struct {
	Facet    int // offending facet, -1 for surface-level findings
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	if e.Facet < 0 {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] facet %d: %s", e.Severity, e.Facet, e.Message)
}

// Validate checks the surface as the boundary of a volume. Non-manifold
// edges and inconsistent orientation are errors; free edges and several
// components are warnings. This function never mutates the graph.
func (s *SurfaceGraph) Validate() []ValidationError {
	var errs []ValidationError
	errs = append(errs, s.validateEdges()...)
	errs = append(errs, s.validateConnectivity()...)
	return errs
}

func (s *SurfaceGraph) validateEdges() []ValidationError {
	var errs []ValidationError
	for _, u := range s.Edges() {
		a, b := s.Vertices[u.Edge.From], s.Vertices[u.Edge.To]
		switch {
		case u.Total() == 1:
			errs = append(errs, ValidationError{
				Facet:    s.firstUser(u.Edge),
				Message:  fmt.Sprintf("free edge (%s, %s)", a, b),
				Severity: SeverityWarning,
			})
		case u.Total() > 2:
			errs = append(errs, ValidationError{
				Facet:    s.firstUser(u.Edge),
				Message:  fmt.Sprintf("non-manifold edge (%s, %s) shared by %d facets", a, b, u.Total()),
				Severity: SeverityError,
			})
		case u.Forward != 1:
			errs = append(errs, ValidationError{
				Facet:    s.firstUser(u.Edge),
				Message:  fmt.Sprintf("edge (%s, %s) traversed twice in the same direction", a, b),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

func (s *SurfaceGraph) validateConnectivity() []ValidationError {
	comps := s.Components()
	if len(comps) <= 1 {
		return nil
	}
	return []ValidationError{{
		Facet:    -1,
		Message:  fmt.Sprintf("surface has %d connected components", len(comps)),
		Severity: SeverityWarning,
	}}
}

func (s *SurfaceGraph) firstUser(e Edge) int {
	best := -1
	for _, f := range s.users(e) {
		if best < 0 || f < best {
			best = f
		}
	}
	return best
}
