package remesh

import (
	"github.com/pkg/errors"

	"github.com/osuushi/quadmesh/internal/parallel"
)

var (
	// ErrEmptyMesh means no connected component had enough faces to
	// process. Nothing was produced.
	ErrEmptyMesh = errors.New("remesh: no islands with at least 4 faces in the input mesh")

	// ErrNoQuads means islands were found but every one of them was dropped
	// before or during extraction.
	ErrNoQuads = errors.New("remesh: every island was dropped before extraction")
)

// fallbackRatioStep is the increment between candidate constraint-ratio
// lower bounds in the singularity fallback search.
const fallbackRatioStep = 0.01

// Run executes the full pipeline: normalize, split to islands, search an
// acceptable parameterization per island, extract quads, and merge.
//
// Islands that fail any step are dropped with a warning; Run only fails
// outright when the input is effectively empty (ErrEmptyMesh) or when no
// island at all survives to the output (ErrNoQuads).
func Run(mesh Mesh, cfg Config) (*QuadMesh, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	islands, n, err := prepareIslands(mesh, cfg)
	if err != nil {
		return nil, err
	}
	Logger().Debug("split to islands", "count", len(islands))

	pool := parallel.NewPool(cfg.Workers)
	defer pool.Close()

	tasks := make([]*islandTask, len(islands))
	for i := range islands {
		tasks[i] = &islandTask{index: i, island: &islands[i]}
	}
	// Collaborators are owned per task and must be released exactly once no
	// matter how the island exits the pipeline.
	defer func() {
		for _, t := range tasks {
			t.release()
		}
	}()

	scheduleParameterizations(tasks, cfg, pool)
	searchSingularityConstraints(tasks, cfg, pool)
	extractQuads(tasks, cfg, pool)

	out := mergeResults(tasks, n)
	if len(out.Quads) == 0 {
		return nil, ErrNoQuads
	}
	Logger().Debug("remesh done", "vertices", len(out.Vertices), "quads", len(out.Quads))
	return out, nil
}

// scheduleParameterizations is the first fan-out stage: per island, find a
// workable remesh density, build connectivity and a parameterizer, and probe
// the singularity count under the default constraint-ratio band. Islands
// whose count meets the bound are marked ready; the rest wait for the
// fallback search.
func scheduleParameterizations(tasks []*islandTask, cfg Config, pool *parallel.Pool) {
	work := make([]func(), len(tasks))
	for _, t := range tasks {
		t := t
		work[t.index] = func() { scheduleIsland(t, cfg) }
	}
	pool.ExecuteAll(work)
}

func scheduleIsland(t *islandTask, cfg Config) {
	search := &edgeLengthSearch{
		newRemesher:       cfg.Toolchain.NewIsotropicRemesher,
		sharpEdgeDegrees:  cfg.SharpEdgeDegrees,
		targetVertexCount: cfg.MaxVertexCount,
		maxAttempts:       cfg.MaxRemeshAttempts,
	}
	result, err := search.run(t.island.Vertices, t.island.Triangles, cfg.TargetEdgeLength)
	if err != nil {
		Logger().Warn("island dropped: edge length search failed", "island", t.index, "err", err)
		return
	}
	t.remesher = result.remesher
	t.targetEdgeLength = result.edgeLength

	t.connectivity = cfg.Toolchain.NewConnectivity(
		result.remesher.RemeshedVertices(), result.remesher.RemeshedTriangles())
	t.parameterizer = cfg.Toolchain.NewParameterizer(t.connectivity, t.island.GradientSize)
	t.limitRelativeHeight = t.parameterizer.LimitRelativeHeight(cfg.ConstraintRatio)

	count, ok := countSingularities(t.parameterizer, t.limitRelativeHeight)
	t.singularityCount = count
	if ok && count <= cfg.MaxSingularityCount {
		t.ready = true
	}
	Logger().Debug("initial singularity probe",
		"island", t.index, "singularities", count, "ready", t.ready)
}

// countSingularities runs a count-only solve under constraints derived from
// the height pair. The constraint set's ownership is ours and it is always
// released, solve failure included.
func countSingularities(p Parameterizer, height Range) (int, bool) {
	constraints := p.PrepareConstraints(height)
	defer constraints.Release()
	count, err := p.Solve(constraints, true)
	if err != nil {
		return 0, false
	}
	return count, true
}

// singularityProbe is one (island, candidate ratio) pairing in the fallback
// search, with the count it produced. Probes for all unresolved islands are
// flattened into a single parallel work list.
type singularityProbe struct {
	task                *islandTask
	ratio               Range
	limitRelativeHeight Range
	singularityCount    int
	ok                  bool
}

// searchSingularityConstraints is the fallback fan-out stage for islands the
// default band couldn't satisfy. Candidate ratio lower bounds step through
// the band; all probes run in parallel, then results are committed
// sequentially: for each island, the first passing ratio in increasing
// order wins, not the ratio with the lowest count.
func searchSingularityConstraints(tasks []*islandTask, cfg Config, pool *parallel.Pool) {
	var probes []*singularityProbe
	for _, t := range tasks {
		if t.ready || t.parameterizer == nil {
			continue
		}
		ratio := cfg.ConstraintRatio
		for ratio.Low += fallbackRatioStep; ratio.Low < cfg.ConstraintRatio.High; ratio.Low += fallbackRatioStep {
			probes = append(probes, &singularityProbe{task: t, ratio: ratio})
		}
	}
	if len(probes) == 0 {
		return
	}
	Logger().Debug("singularity fallback search", "probes", len(probes))

	work := make([]func(), len(probes))
	for i, p := range probes {
		p := p
		work[i] = func() {
			p.limitRelativeHeight = p.task.parameterizer.LimitRelativeHeight(p.ratio)
			p.singularityCount, p.ok = countSingularities(p.task.parameterizer, p.limitRelativeHeight)
			Logger().Debug("fallback probe",
				"island", p.task.index, "ratio", p.ratio.Low,
				"singularities", p.singularityCount, "ok", p.ok)
		}
	}
	pool.ExecuteAll(work)

	// Probes were generated island-major in increasing ratio order, so a
	// plain scan commits each island's first passing ratio.
	for _, p := range probes {
		t := p.task
		if t.ready {
			continue
		}
		if !p.ok || p.singularityCount > cfg.MaxSingularityCount {
			continue
		}
		t.limitRelativeHeight = p.limitRelativeHeight
		t.singularityCount = p.singularityCount
		t.ready = true
		Logger().Debug("island conformed",
			"island", t.index, "ratio", p.ratio.Low, "singularities", p.singularityCount)
	}
}

// extractQuads is the final fan-out stage: for each ready island, rebuild
// constraints from the committed height, run the full solve, and extract
// quads. Failures drop the island, never the job.
func extractQuads(tasks []*islandTask, cfg Config, pool *parallel.Pool) {
	var work []func()
	for _, t := range tasks {
		if !t.ready {
			if t.parameterizer != nil {
				Logger().Warn("island dropped: no acceptable singularity count",
					"island", t.index, "singularities", t.singularityCount)
			}
			continue
		}
		t := t
		work = append(work, func() { extractIsland(t, cfg) })
	}
	pool.ExecuteAll(work)
}

func extractIsland(t *islandTask, cfg Config) {
	constraints := t.parameterizer.PrepareConstraints(t.limitRelativeHeight)
	count, err := t.parameterizer.Solve(constraints, false)
	constraints.Release()
	if err != nil {
		Logger().Warn("island dropped: parameterization solve failed",
			"island", t.index, "singularities", t.singularityCount, "err", err)
		return
	}
	t.singularityCount = count

	t.extractor = cfg.Toolchain.NewQuadExtractor(t.connectivity)
	if err := t.extractor.Extract(); err != nil {
		Logger().Warn("island dropped: quad extraction failed", "island", t.index, "err", err)
		return
	}
	quads := t.extractor.Quads()
	if len(quads) == 0 {
		Logger().Warn("island dropped: quad extraction produced nothing", "island", t.index)
		return
	}
	t.outVertices = t.extractor.Vertices()
	t.outQuads = quads
	Logger().Debug("island extracted", "task", t.String(), "quads", len(quads))
}

// mergeResults appends each successful island's output into the shared
// buffers in island enumeration order. This is the only stage that touches
// shared state, and it is strictly sequential: each island's quads are
// re-based against the vertex count before its vertices were appended, so
// index ranges can never overlap. Vertices are mapped back to the original
// input frame on the way out.
func mergeResults(tasks []*islandTask, n normalization) *QuadMesh {
	out := &QuadMesh{}
	for _, t := range tasks {
		if len(t.outQuads) == 0 {
			continue
		}
		vertexStart := len(out.Vertices)
		for _, v := range t.outVertices {
			out.Vertices = append(out.Vertices, n.recover(v))
		}
		for _, quad := range t.outQuads {
			for _, index := range quad {
				if index < 0 || index >= len(t.outVertices) {
					fatalf("extracted quad references vertex %d of %d", index, len(t.outVertices))
				}
			}
			out.Quads = append(out.Quads, Quad{
				vertexStart + quad[0],
				vertexStart + quad[1],
				vertexStart + quad[2],
				vertexStart + quad[3],
			})
		}
	}
	return out
}
