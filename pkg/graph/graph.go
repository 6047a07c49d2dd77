package graph

import (
	"fmt"
	"sort"

	"github.com/chazu/sfgeom/pkg/geom"
)

// VertexID indexes SurfaceGraph.Vertices.
type VertexID int

// Edge is a directed edge between two vertices.
type Edge struct {
	From, To VertexID
}

// Reverse returns the edge traversed the other way.
func (e Edge) Reverse() Edge { return Edge{e.To, e.From} }

// key is the undirected form of the edge.
func (e Edge) key() Edge {
	if e.From > e.To {
		return e.Reverse()
	}
	return e
}

// Facet is one polygon of the surface as rings of vertex ids. The closing
// vertex of each ring is not repeated.
type Facet struct {
	Rings [][]VertexID
}

// SurfaceGraph is the connectivity of a polyhedral or triangulated
// surface. It is built once and never mutated.
type SurfaceGraph struct {
	Vertices []geom.Coordinate
	Facets   []Facet

	index map[string]VertexID
	// uses maps each directed edge to the facets traversing it.
	uses map[Edge][]int
}

// New builds the graph of a PolyhedralSurface, a TriangulatedSurface or the
// exterior shell of a Solid.
func New(g geom.Geometry) (*SurfaceGraph, error) {
	s := &SurfaceGraph{index: map[string]VertexID{}, uses: map[Edge][]int{}}
	switch x := g.(type) {
	case *geom.PolyhedralSurface:
		for _, p := range x.Polygons() {
			s.addPolygon(p.Rings())
		}
	case *geom.TriangulatedSurface:
		for _, t := range x.Triangles() {
			s.addPolygon([]*geom.LineString{t.ExteriorRing()})
		}
	case *geom.Solid:
		if x.IsEmpty() {
			return s, nil
		}
		return New(x.ExteriorShell())
	default:
		return nil, fmt.Errorf("graph: cannot build a surface graph from %s", g.GeometryTypeName())
	}
	return s, nil
}

func (s *SurfaceGraph) vertex(c geom.Coordinate) VertexID {
	k := c.String()
	if id, ok := s.index[k]; ok {
		return id
	}
	id := VertexID(len(s.Vertices))
	s.Vertices = append(s.Vertices, c)
	s.index[k] = id
	return id
}

func (s *SurfaceGraph) addPolygon(rings []*geom.LineString) {
	f := Facet{}
	fi := len(s.Facets)
	for _, r := range rings {
		n := r.NumPoints()
		if r.IsClosed() {
			n--
		}
		ids := make([]VertexID, 0, n)
		for i := 0; i < n; i++ {
			id := s.vertex(r.PointN(i))
			if len(ids) > 0 && ids[len(ids)-1] == id {
				continue
			}
			ids = append(ids, id)
		}
		if len(ids) > 1 && ids[0] == ids[len(ids)-1] {
			ids = ids[:len(ids)-1]
		}
		for i := range ids {
			e := Edge{ids[i], ids[(i+1)%len(ids)]}
			if e.From != e.To {
				s.uses[e] = append(s.uses[e], fi)
			}
		}
		f.Rings = append(f.Rings, ids)
	}
	s.Facets = append(s.Facets, f)
}

// NumVertices is the number of distinct vertices.
func (s *SurfaceGraph) NumVertices() int { return len(s.Vertices) }

// NumFacets is the number of facets.
func (s *SurfaceGraph) NumFacets() int { return len(s.Facets) }

// EdgeUse counts how often an undirected edge is traversed in each
// direction.
type EdgeUse struct {
	Edge     Edge // From < To
	Forward  int  // traversals From -> To
	Backward int  // traversals To -> From
}

// Total is the number of facets using the edge.
func (u EdgeUse) Total() int { return u.Forward + u.Backward }

// Edges returns every undirected edge with its usage, sorted.
func (s *SurfaceGraph) Edges() []EdgeUse {
	acc := map[Edge]*EdgeUse{}
	for e, fs := range s.uses {
		k := e.key()
		u := acc[k]
		if u == nil {
			u = &EdgeUse{Edge: k}
			acc[k] = u
		}
		if e == k {
			u.Forward += len(fs)
		} else {
			u.Backward += len(fs)
		}
	}
	out := make([]EdgeUse, 0, len(acc))
	for _, u := range acc {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Edge.From != out[j].Edge.From {
			return out[i].Edge.From < out[j].Edge.From
		}
		return out[i].Edge.To < out[j].Edge.To
	})
	return out
}

// IsClosed reports whether every edge is shared by exactly two facets.
func (s *SurfaceGraph) IsClosed() bool {
	if len(s.Facets) == 0 {
		return false
	}
	for _, u := range s.Edges() {
		if u.Total() != 2 {
			return false
		}
	}
	return true
}

// HasConsistentOrientation reports whether every edge shared by two facets
// is traversed once in each direction and no edge is non-manifold.
func (s *SurfaceGraph) HasConsistentOrientation() bool {
	for _, u := range s.Edges() {
		if u.Total() > 2 || u.Forward > 1 || u.Backward > 1 {
			return false
		}
	}
	return true
}

// Neighbors returns the facets sharing an edge with facet f, sorted.
func (s *SurfaceGraph) Neighbors(f int) []int {
	seen := map[int]bool{f: true}
	var out []int
	for _, ring := range s.Facets[f].Rings {
		for i := range ring {
			e := Edge{ring[i], ring[(i+1)%len(ring)]}
			for _, g := range s.users(e) {
				if !seen[g] {
					seen[g] = true
					out = append(out, g)
				}
			}
		}
	}
	sort.Ints(out)
	return out
}

// users returns the facets traversing e in either direction.
func (s *SurfaceGraph) users(e Edge) []int {
	out := make([]int, 0, len(s.uses[e])+len(s.uses[e.Reverse()]))
	out = append(out, s.uses[e]...)
	return append(out, s.uses[e.Reverse()]...)
}

// Components groups facet indices connected through shared edges. Groups
// are ordered by their lowest facet index.
func (s *SurfaceGraph) Components() [][]int {
	visited := make([]bool, len(s.Facets))
	var comps [][]int
	for start := range s.Facets {
		if visited[start] {
			continue
		}
		var comp []int
		stack := []int{start}
		visited[start] = true
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, f)
			for _, g := range s.Neighbors(f) {
				if !visited[g] {
					visited[g] = true
					stack = append(stack, g)
				}
			}
		}
		sort.Ints(comp)
		comps = append(comps, comp)
	}
	return comps
}

// IsConnected reports whether the facets form a single component.
func (s *SurfaceGraph) IsConnected() bool {
	return len(s.Components()) <= 1
}
