package main

import (
	"go.uber.org/zap"

	"github.com/chazu/sfgeom/pkg/engine"
	"github.com/chazu/sfgeom/pkg/geom"
	"github.com/chazu/sfgeom/pkg/kernel"
	"github.com/chazu/sfgeom/pkg/kernel/sdfx"
	"github.com/chazu/sfgeom/pkg/tessellate"
	"github.com/chazu/sfgeom/pkg/wkt"
)

// colorPalette is a default palette used to assign distinct colors to parts.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// boundsCells is the marching cubes resolution of the bounds preview.
const boundsCells = 8

// App runs scripts and turns their geometries into printable output.
type App struct {
	engine   *engine.Engine
	logger   *zap.Logger
	decimals int
	// Bounds adds a rendered bounding box mesh to every result.
	Bounds bool
}

// MeshData is the JSON-serializable mesh of one surface part.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of running a script.
type EvalResult struct {
	// Value is the printed last expression.
	Value      string          `json:"value"`
	Geometries []string        `json:"geometries"`
	Meshes     []MeshData      `json:"meshes"`
	Errors     []EvalErrorData `json:"errors"`
}

// NewApp creates an App. decimals is the WKT precision of the output,
// wkt.Exact for rationals.
func NewApp(eng *engine.Engine, logger *zap.Logger, decimals int) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{engine: eng, logger: logger, decimals: decimals}
}

// Evaluate runs source and returns WKT, meshes and errors.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Geometries: []string{},
		Meshes:     []MeshData{},
		Errors:     []EvalErrorData{},
	}

	// Step 1: Evaluate the Lisp source.
	res, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		a.logger.Error("evaluate fatal error", zap.Error(err))
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	// Step 2: Convert eval errors to the output format.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}
	result.Value = res.Value

	// Step 3: Tessellate every produced geometry.
	var meshes []*kernel.Mesh
	for _, g := range res.Geometries() {
		result.Geometries = append(result.Geometries, wkt.Write(g, a.decimals))
		parts, err := tessellate.Parts(g)
		if err != nil {
			a.logger.Warn("tessellation failed", zap.String("type", g.GeometryTypeName()), zap.Error(err))
			result.Errors = append(result.Errors, EvalErrorData{Message: "tessellation failed: " + err.Error()})
			continue
		}
		meshes = append(meshes, parts...)
		if a.Bounds {
			if m := boundsMesh(g); m != nil {
				meshes = append(meshes, m)
			}
		}
	}

	// Step 4: Convert kernel meshes to MeshData.
	for i, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			PartName: m.Source,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}

	return result
}

// boundsMesh renders the bounding box of g through sdfx. Flat or empty
// boxes have no volume to render and yield nil.
func boundsMesh(g geom.Geometry) *kernel.Mesh {
	s, err := sdfx.EnvelopeSolid(g.Envelope())
	if err != nil {
		return nil
	}
	m := sdfx.Render(s, boundsCells)
	if m.IsEmpty() {
		return nil
	}
	m.Source = "bounds/" + g.GeometryTypeName()
	return m
}
