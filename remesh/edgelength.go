package remesh

import "github.com/pkg/errors"

// The edge length search hunts for a target edge length whose remeshed
// vertex count lands in [0.9*target, target]. Too few vertices and the
// parameterization loses features; too many and the solver time explodes.
//
// Every attempt discards the previous remesher and reconstructs from the
// source geometry. Incremental reuse would be faster but the external
// remeshers accumulate state across runs, and a full rebuild is the only
// configuration they all behave predictably under.

type searchState int

const (
	searchProbing searchState = iota
	searchConverged
	searchExhausted
)

type searchPhase int

const (
	// phaseRefine shrinks the edge length by 0.9 until the vertex count
	// reaches the floor of the band.
	phaseRefine searchPhase = iota
	// phaseCoarsen grows it by 1.1 until the count drops under the ceiling.
	phaseCoarsen
)

type edgeLengthSearch struct {
	newRemesher       func(vertices []Vec, triangles []Triangle) IsotropicRemesher
	sharpEdgeDegrees  float64
	targetVertexCount int
	maxAttempts       int
}

type searchResult struct {
	remesher   IsotropicRemesher
	edgeLength float64
	attempts   int
}

// run drives the bounded search state machine. It returns an error when the
// remesher fails outright or when maxAttempts is exhausted without the
// count converging into the band; the caller drops the island either way.
func (s *edgeLengthSearch) run(vertices []Vec, triangles []Triangle, edgeLength float64) (*searchResult, error) {
	if Equal(edgeLength, 0) {
		edgeLength = DefaultConfig().TargetEdgeLength
	}
	minVertexCount := 0.9 * float64(s.targetVertexCount)

	var result searchResult
	state := searchProbing
	phase := phaseRefine
	for state == searchProbing {
		if result.attempts >= s.maxAttempts {
			state = searchExhausted
			break
		}
		result.attempts++

		// Fresh remesher every attempt; see the package comment above.
		remesher := s.newRemesher(vertices, triangles)
		remesher.SetSharpEdgeDegrees(s.sharpEdgeDegrees)
		remesher.SetTargetEdgeLength(edgeLength)
		if err := remesher.Remesh(); err != nil {
			releaseIfHeld(remesher)
			return nil, errors.Wrapf(err, "remesh attempt %d at edge length %g", result.attempts, edgeLength)
		}
		count := len(remesher.RemeshedVertices())

		Logger().Debug("isotropic remesh",
			"from", len(vertices), "to", count, "targetEdgeLength", edgeLength, "attempt", result.attempts)

		switch phase {
		case phaseRefine:
			if float64(count) < minVertexCount {
				releaseIfHeld(remesher)
				edgeLength *= 0.9
				continue
			}
			// Floor reached. Either we're already under the ceiling, or we
			// start backing off.
			if count <= s.targetVertexCount {
				result.remesher = remesher
				result.edgeLength = edgeLength
				state = searchConverged
			} else {
				releaseIfHeld(remesher)
				phase = phaseCoarsen
				edgeLength *= 1.1
			}
		case phaseCoarsen:
			if count > s.targetVertexCount {
				releaseIfHeld(remesher)
				edgeLength *= 1.1
				continue
			}
			result.remesher = remesher
			result.edgeLength = edgeLength
			state = searchConverged
		}
	}

	if state != searchConverged {
		return nil, errors.Errorf("edge length search exhausted after %d attempts (last edge length %g)",
			result.attempts, edgeLength)
	}
	return &result, nil
}
