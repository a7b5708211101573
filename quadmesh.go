// Automatic quadrilateral remeshing for triangulated surface meshes.
//
// This package takes a triangle soup, decomposes it into connected islands,
// searches each island for a parameterization with an acceptable number of
// singularities, extracts quads per island in parallel, and merges the
// results into one mesh in the original coordinate frame. The numerically
// heavy pieces (isotropic remesher, connectivity, parameterization solver,
// quad extractor) are pluggable; see remesh.Toolchain.
package quadmesh

import (
	"log/slog"

	"github.com/osuushi/quadmesh/remesh"
)

type Vec = remesh.Vec
type Triangle = remesh.Triangle
type Quad = remesh.Quad
type Mesh = remesh.Mesh
type QuadMesh = remesh.QuadMesh
type Config = remesh.Config
type Toolchain = remesh.Toolchain
type Range = remesh.Range

// Collaborator contracts, re-exported so a toolchain can be implemented
// against this package alone.
type IsotropicRemesher = remesh.IsotropicRemesher
type Connectivity = remesh.Connectivity
type Parameterizer = remesh.Parameterizer
type ConstraintSet = remesh.ConstraintSet
type QuadExtractor = remesh.QuadExtractor

// DefaultConfig returns the stock pipeline tuning. A Toolchain must be set
// before use.
func DefaultConfig() Config {
	return remesh.DefaultConfig()
}

// Remesh converts a triangle mesh into a quad mesh.
//
// Islands that fail to parameterize or extract are skipped; Remesh returns
// an error only when the input has no usable islands or when every island
// was dropped. See the remesh package for the per-stage details.
func Remesh(mesh Mesh, cfg Config) (result *QuadMesh, err error) {
	defer func() {
		recoveredErr := remesh.HandleRemeshPanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	return remesh.Run(mesh, cfg)
}

// SetLogger configures logging for the whole pipeline. Logging is off by
// default; pass nil to turn it back off.
func SetLogger(l *slog.Logger) {
	remesh.SetLogger(l)
}

// Logger returns the pipeline's current logger.
func Logger() *slog.Logger {
	return remesh.Logger()
}
