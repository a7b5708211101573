package remesh

import (
	"fmt"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/quadmesh/dbg"
)

// islandTask is the ephemeral processing context for one island. Exactly one
// pipeline stage touches a task at a time, and no task ever reads another
// task's fields, which is what lets the fan-out stages run without locks.
//
// The task exclusively owns its collaborators. release frees them exactly
// once no matter which exit path the island takes (merged, dropped for
// singularities, failed solve, failed extraction).
type islandTask struct {
	index  int
	island *Island

	targetEdgeLength float64
	remesher         IsotropicRemesher
	connectivity     Connectivity
	parameterizer    Parameterizer
	extractor        QuadExtractor

	// limitRelativeHeight is the committed constraint-height pair once the
	// task is ready; before that it holds the default-band probe result.
	limitRelativeHeight Range
	singularityCount    int
	ready               bool

	// Extraction output, staged here until the sequential merge.
	outVertices []Vec
	outQuads    []Quad

	released bool
}

// release frees the task's owned collaborators. Safe to call on any exit
// path, effective only once.
func (t *islandTask) release() {
	if t.released {
		return
	}
	t.released = true
	releaseIfHeld(t.extractor)
	releaseIfHeld(t.parameterizer)
	releaseIfHeld(t.connectivity)
	releaseIfHeld(t.remesher)
	t.extractor = nil
	t.parameterizer = nil
	t.connectivity = nil
	t.remesher = nil
}

func (t *islandTask) String() string {
	return fmt.Sprintf("IslandTask %s [%d] <faces: %d, gradientSize: %g, singularities: %d, height: (%g, %g)>",
		t.DbgName(),
		t.index,
		len(t.island.Triangles),
		t.island.GradientSize,
		t.singularityCount,
		t.limitRelativeHeight.Low,
		t.limitRelativeHeight.High,
	)
}

func (t *islandTask) DbgName() string {
	name := dbg.Name(t)
	if len(t.outQuads) > 0 { // Quads extracted
		name = aurora.Cyan(name).String()
	} else if t.ready { // Committed height, awaiting extraction
		name = aurora.Green(name).String()
	} else {
		name = aurora.Red(name).String()
	}
	return name
}
