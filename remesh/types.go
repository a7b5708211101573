// Package remesh turns a triangulated surface mesh into a quadrilateral mesh.
//
// The input is decomposed into connected-component islands, each island is
// isotropically remeshed to a target density, parameterized under a
// singularity bound, and quadrangulated. Per-island results are merged back
// into a single globally-indexed mesh in the original coordinate frame.
//
// The numerically heavy collaborators (isotropic remesher, connectivity
// structure, parameterization solver, quad extractor) are injected through
// Config.Toolchain; this package owns the orchestration around them.
package remesh

import "gonum.org/v1/gonum/spatial/r3"

// Vec is a 3D point or vector in double precision.
type Vec = r3.Vec

// Triangle is three vertex indices into the owning mesh's vertex slice.
type Triangle = [3]int

// Quad is four vertex indices into the merged output vertex slice.
type Quad = [4]int

// Mesh is a triangulated input surface.
type Mesh struct {
	Vertices  []Vec
	Triangles []Triangle
}

// QuadMesh is the merged quadrangulated output. Quad indices are contiguous
// and valid within Vertices; coordinates are in the input frame.
type QuadMesh struct {
	Vertices []Vec
	Quads    []Quad
}

// Range is an inclusive pair of bounds, used for the constraint ratio band
// and the limit relative height derived from it.
type Range struct {
	Low, High float64
}

// Island is a connected component of the input mesh with its own locally
// renumbered vertex and triangle slices. Vertices are in the normalized
// working frame. GradientSize is the per-island parameterization density,
// scaled by the island's spatial extent relative to the whole mesh.
type Island struct {
	Vertices     []Vec
	Triangles    []Triangle
	GradientSize float64
}
