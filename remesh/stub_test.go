package remesh

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// A deterministic toolchain for pipeline tests. Knobs on stubKit shape each
// collaborator's behavior; the counters record lifecycle events so tests can
// assert constraint sets and collaborators are released exactly once.

type stubKit struct {
	// remeshDensity sets the stub remesher's vertex count to
	// density/edgeLength, which is monotone decreasing in edge length.
	remeshDensity float64
	remeshErr     error

	// countForProbe maps (gradientSize, height) to a singularity count.
	// Heights are identical to the probed ratios because the stub
	// parameterizer's LimitRelativeHeight is the identity.
	countForProbe func(gradientSize float64, height Range) int

	countOnlyErr error
	fullSolveErr error

	extractErr   error
	outVertices  []Vec
	outQuads     []Quad

	constraintsPrepared atomic.Int64
	constraintsReleased atomic.Int64
	collaboratorsFreed  atomic.Int64

	mu               sync.Mutex
	fullSolveHeights []Range
}

func (k *stubKit) recordFullSolve(height Range) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.fullSolveHeights = append(k.fullSolveHeights, height)
}

func (k *stubKit) toolchain() Toolchain {
	return Toolchain{
		NewIsotropicRemesher: func(vertices []Vec, triangles []Triangle) IsotropicRemesher {
			return &stubRemesher{kit: k, source: vertices}
		},
		NewConnectivity: func(vertices []Vec, triangles []Triangle) Connectivity {
			return &stubConnectivity{kit: k, vertices: vertices, triangles: triangles}
		},
		NewParameterizer: func(connectivity Connectivity, gradientSize float64) Parameterizer {
			return &stubParameterizer{kit: k, gradientSize: gradientSize}
		},
		NewQuadExtractor: func(connectivity Connectivity) QuadExtractor {
			return &stubExtractor{kit: k}
		},
	}
}

// defaultStubKit passes every island on the default band and extracts one
// unit quad.
func defaultStubKit() *stubKit {
	return &stubKit{
		remeshDensity: 7000 * 3.9, // in band on the first attempt
		countForProbe: func(float64, Range) int { return 1 },
		outVertices:   []Vec{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}},
		outQuads:      []Quad{{0, 1, 2, 3}},
	}
}

type stubRemesher struct {
	kit        *stubKit
	source     []Vec
	sharp      float64
	edgeLength float64
	vertices   []Vec
}

func (r *stubRemesher) SetSharpEdgeDegrees(degrees float64) { r.sharp = degrees }
func (r *stubRemesher) SetTargetEdgeLength(length float64)  { r.edgeLength = length }

func (r *stubRemesher) Remesh() error {
	if r.kit.remeshErr != nil {
		return r.kit.remeshErr
	}
	count := int(r.kit.remeshDensity / r.edgeLength)
	r.vertices = make([]Vec, count)
	for i := range r.vertices {
		r.vertices[i] = Vec{X: float64(i)}
	}
	return nil
}

func (r *stubRemesher) RemeshedVertices() []Vec { return r.vertices }
func (r *stubRemesher) RemeshedTriangles() []Triangle {
	return []Triangle{{0, 1, 2}}
}
func (r *stubRemesher) Release() { r.kit.collaboratorsFreed.Add(1) }

type stubConnectivity struct {
	kit       *stubKit
	vertices  []Vec
	triangles []Triangle
}

func (c *stubConnectivity) VertexCount() int { return len(c.vertices) }
func (c *stubConnectivity) FaceCount() int   { return len(c.triangles) }
func (c *stubConnectivity) Release()         { c.kit.collaboratorsFreed.Add(1) }

type stubConstraintSet struct {
	kit      *stubKit
	height   Range
	released atomic.Bool
}

func (cs *stubConstraintSet) Release() {
	if !cs.released.CompareAndSwap(false, true) {
		panic(errors.New("constraint set released twice"))
	}
	cs.kit.constraintsReleased.Add(1)
}

type stubParameterizer struct {
	kit          *stubKit
	gradientSize float64
}

func (p *stubParameterizer) LimitRelativeHeight(ratio Range) Range { return ratio }

func (p *stubParameterizer) PrepareConstraints(height Range) ConstraintSet {
	p.kit.constraintsPrepared.Add(1)
	return &stubConstraintSet{kit: p.kit, height: height}
}

func (p *stubParameterizer) Solve(constraints ConstraintSet, countOnly bool) (int, error) {
	if countOnly && p.kit.countOnlyErr != nil {
		return 0, p.kit.countOnlyErr
	}
	if !countOnly {
		if p.kit.fullSolveErr != nil {
			return 0, p.kit.fullSolveErr
		}
		p.kit.recordFullSolve(constraints.(*stubConstraintSet).height)
	}
	cs := constraints.(*stubConstraintSet)
	return p.kit.countForProbe(p.gradientSize, cs.height), nil
}

func (p *stubParameterizer) Release() { p.kit.collaboratorsFreed.Add(1) }

type stubExtractor struct {
	kit *stubKit
}

func (e *stubExtractor) Extract() error {
	return e.kit.extractErr
}

func (e *stubExtractor) Vertices() []Vec { return e.kit.outVertices }
func (e *stubExtractor) Quads() []Quad   { return e.kit.outQuads }
func (e *stubExtractor) Release()        { e.kit.collaboratorsFreed.Add(1) }

// ratioKey turns a probed height back into a stable two-decimal key, since
// the fallback search accumulates its ratios by repeated addition.
func ratioKey(height Range) int {
	return int(math.Round(height.Low * 100))
}

// Test geometry

// tetrahedron returns a closed 4-face mesh with consistent winding,
// centered on offset and scaled uniformly.
func tetrahedron(offset Vec, scale float64) Mesh {
	corners := []Vec{
		{X: 1, Y: 1, Z: 1},
		{X: 1, Y: -1, Z: -1},
		{X: -1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1},
	}
	vertices := make([]Vec, len(corners))
	for i, c := range corners {
		vertices[i] = r3.Add(r3.Scale(scale, c), offset)
	}
	return Mesh{
		Vertices: vertices,
		Triangles: []Triangle{
			{0, 2, 1},
			{0, 1, 3},
			{0, 3, 2},
			{1, 2, 3},
		},
	}
}

// appendMesh concatenates b onto a, re-basing b's triangle indices.
func appendMesh(a, b Mesh) Mesh {
	offset := len(a.Vertices)
	out := Mesh{
		Vertices:  append(append([]Vec{}, a.Vertices...), b.Vertices...),
		Triangles: append([]Triangle{}, a.Triangles...),
	}
	for _, t := range b.Triangles {
		out.Triangles = append(out.Triangles, Triangle{t[0] + offset, t[1] + offset, t[2] + offset})
	}
	return out
}
