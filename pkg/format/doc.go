// Package format converts geometries to and from exchange formats: ESRI
// ASCII grids, GeoJSON and DXF.
package format
