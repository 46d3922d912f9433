// Package export turns a built terrain grid and its infrastructure plan into
// the artifacts the downstream VR consumer loads: an 8-bit heightmap PNG, a
// Wavefront OBJ surface mesh, and a JSON manifest of infrastructure world
// coordinates.
//
// The mesh and the manifest share one axis remap, grid (row, col, elevation)
// to consumer (X, up, depth) space, so a manifest point and the mesh vertex
// at the same grid index always coincide.
package export
