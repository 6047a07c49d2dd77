// Package graph builds the connectivity graph of a polyhedral surface.
// Vertices are deduplicated by exact coordinate, every facet ring
// contributes directed edges, and facets are adjacent when they share an
// edge. The graph answers closedness, orientation consistency and
// connected-component queries and reports defects as validation findings.
package graph
