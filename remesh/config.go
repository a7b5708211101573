package remesh

import "github.com/pkg/errors"

// Config is the full tuning surface of the pipeline, threaded explicitly
// through Run. Zero values are not meaningful; start from DefaultConfig.
type Config struct {
	// TargetEdgeLength seeds the per-island edge length search, in the
	// normalized working frame.
	TargetEdgeLength float64

	// ConstraintRatio is the band of constraint ratios. The scheduler probes
	// the full band first; the fallback search walks candidate lower bounds
	// through it in 0.01 steps.
	ConstraintRatio Range

	// MaxSingularityCount is the most singularities an island's committed
	// parameterization may have. Islands that can't meet it under any probed
	// ratio are dropped.
	MaxSingularityCount int

	// MaxVertexCount is the upper bound of the remeshed vertex count band
	// per island; the search targets [0.9*MaxVertexCount, MaxVertexCount].
	MaxVertexCount int

	// SharpEdgeDegrees is the dihedral angle above which the remesher
	// preserves an edge as sharp.
	SharpEdgeDegrees float64

	// GradientSize is the parameterization feature scale for the whole
	// mesh; each island receives it scaled by relative spatial extent.
	GradientSize float64

	// MaxRemeshAttempts bounds the edge length search. Pathological
	// geometry that never lands in the target band exhausts its attempts
	// and drops the island instead of looping forever.
	MaxRemeshAttempts int

	// Workers is the size of the worker pool shared by the parallel stages.
	// Zero or negative means GOMAXPROCS.
	Workers int

	// Toolchain supplies the external collaborators. Required.
	Toolchain Toolchain
}

// DefaultConfig returns the tuning used by the original sculpting tool.
// A Toolchain must still be set before calling Run.
func DefaultConfig() Config {
	return Config{
		TargetEdgeLength:    3.9,
		ConstraintRatio:     Range{Low: 0.55, High: 1.0},
		MaxSingularityCount: 320,
		MaxVertexCount:      7000,
		SharpEdgeDegrees:    60,
		GradientSize:        170,
		MaxRemeshAttempts:   48,
	}
}

func (cfg *Config) validate() error {
	if !cfg.Toolchain.complete() {
		return errors.New("remesh: config is missing one or more toolchain constructors")
	}
	if cfg.TargetEdgeLength <= 0 {
		return errors.New("remesh: target edge length must be positive")
	}
	if cfg.MaxVertexCount <= 0 {
		return errors.New("remesh: max vertex count must be positive")
	}
	if cfg.MaxRemeshAttempts <= 0 {
		return errors.New("remesh: max remesh attempts must be positive")
	}
	if cfg.ConstraintRatio.Low >= cfg.ConstraintRatio.High {
		return errors.New("remesh: constraint ratio band is empty")
	}
	return nil
}
