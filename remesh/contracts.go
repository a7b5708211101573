package remesh

// The heavy numerical machinery is deliberately external to this package.
// Each collaborator is described only by the contract the pipeline needs,
// and concrete implementations are injected through Config.Toolchain. Tests
// inject deterministic stubs the same way.

// IsotropicRemesher regenerates a triangle mesh with approximately uniform
// edge length. A remesher is configured, remeshed once, and then only read;
// the edge length search constructs a fresh instance for every attempt.
type IsotropicRemesher interface {
	SetSharpEdgeDegrees(degrees float64)
	SetTargetEdgeLength(length float64)
	Remesh() error
	RemeshedVertices() []Vec
	RemeshedTriangles() []Triangle
}

// Connectivity is an adjacency structure built from a remeshed triangle
// soup. The pipeline treats it as opaque and only hands it to the
// parameterizer and quad extractor; the counts exist for logging.
type Connectivity interface {
	VertexCount() int
	FaceCount() int
}

// ConstraintSet holds solver boundary constraints. Ownership transfers to
// the caller of Parameterizer.PrepareConstraints, who must call Release
// exactly once after the solve.
type ConstraintSet interface {
	Release()
}

// Parameterizer computes a singularity-bounded parameterization over a
// connectivity structure.
//
// Solve with countOnly=true computes the singularity count without
// committing a full solve; countOnly=false performs the committed solve the
// quad extractor depends on. The fallback search issues count-only solves
// for the same island from multiple goroutines at once, so implementations
// must allow concurrent count-only use.
type Parameterizer interface {
	LimitRelativeHeight(ratio Range) Range
	PrepareConstraints(height Range) ConstraintSet
	Solve(constraints ConstraintSet, countOnly bool) (singularities int, err error)
}

// QuadExtractor extracts a quad mesh from a solved parameterization.
// Vertices and Quads are only meaningful after Extract returns nil.
type QuadExtractor interface {
	Extract() error
	Vertices() []Vec
	Quads() []Quad
}

// Releaser is implemented by collaborators that hold resources beyond the
// garbage collector's reach (cgo handles, solver arenas). The pipeline
// releases each island's collaborators exactly once, on every exit path.
type Releaser interface {
	Release()
}

func releaseIfHeld(obj interface{}) {
	if r, ok := obj.(Releaser); ok && r != nil {
		r.Release()
	}
}

// Toolchain supplies constructors for the external collaborators. All four
// fields are required.
type Toolchain struct {
	NewIsotropicRemesher func(vertices []Vec, triangles []Triangle) IsotropicRemesher
	NewConnectivity      func(vertices []Vec, triangles []Triangle) Connectivity
	NewParameterizer     func(connectivity Connectivity, gradientSize float64) Parameterizer
	NewQuadExtractor     func(connectivity Connectivity) QuadExtractor
}

func (tc *Toolchain) complete() bool {
	return tc.NewIsotropicRemesher != nil &&
		tc.NewConnectivity != nil &&
		tc.NewParameterizer != nil &&
		tc.NewQuadExtractor != nil
}
