package quadmesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Smoke test. The pipeline internals are tested in the remesh package; this
// only checks the facade wiring with a minimal fixed toolchain.

type fixedRemesher struct{ vertices []Vec }

func (r *fixedRemesher) SetSharpEdgeDegrees(float64) {}
func (r *fixedRemesher) SetTargetEdgeLength(float64) {}
func (r *fixedRemesher) Remesh() error               { return nil }
func (r *fixedRemesher) RemeshedVertices() []Vec     { return r.vertices }
func (r *fixedRemesher) RemeshedTriangles() []Triangle {
	return []Triangle{{0, 1, 2}}
}

type fixedConnectivity struct{ vertices, faces int }

func (c *fixedConnectivity) VertexCount() int { return c.vertices }
func (c *fixedConnectivity) FaceCount() int   { return c.faces }

type fixedConstraints struct{}

func (fixedConstraints) Release() {}

type fixedParameterizer struct{}

func (fixedParameterizer) LimitRelativeHeight(ratio Range) Range { return ratio }
func (fixedParameterizer) PrepareConstraints(Range) ConstraintSet {
	return fixedConstraints{}
}
func (fixedParameterizer) Solve(ConstraintSet, bool) (int, error) { return 2, nil }

type fixedExtractor struct{}

func (fixedExtractor) Extract() error  { return nil }
func (fixedExtractor) Vertices() []Vec { return []Vec{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}} }
func (fixedExtractor) Quads() []Quad   { return []Quad{{0, 1, 2, 3}} }

func fixedToolchain() Toolchain {
	return Toolchain{
		NewIsotropicRemesher: func(vertices []Vec, triangles []Triangle) IsotropicRemesher {
			return &fixedRemesher{vertices: make([]Vec, 6700)}
		},
		NewConnectivity: func(vertices []Vec, triangles []Triangle) Connectivity {
			return &fixedConnectivity{vertices: len(vertices), faces: len(triangles)}
		},
		NewParameterizer: func(Connectivity, float64) Parameterizer {
			return fixedParameterizer{}
		},
		NewQuadExtractor: func(Connectivity) QuadExtractor {
			return fixedExtractor{}
		},
	}
}

func TestRemesh(t *testing.T) {
	mesh := Mesh{
		Vertices: []Vec{
			{X: 1, Y: 1, Z: 1},
			{X: 1, Y: -1, Z: -1},
			{X: -1, Y: 1, Z: -1},
			{X: -1, Y: -1, Z: 1},
		},
		Triangles: []Triangle{{0, 2, 1}, {0, 1, 3}, {0, 3, 2}, {1, 2, 3}},
	}

	cfg := DefaultConfig()
	cfg.Toolchain = fixedToolchain()

	out, err := Remesh(mesh, cfg)
	require.NoError(t, err)
	assert.Len(t, out.Vertices, 4)
	assert.Len(t, out.Quads, 1)
}

func TestRemeshWithoutToolchain(t *testing.T) {
	out, err := Remesh(Mesh{}, DefaultConfig())
	assert.Nil(t, out)
	assert.Error(t, err)
}
