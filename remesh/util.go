package remesh

import "math"

const Tolerance = 1e-6

// To compensate for imprecision in floats, equality is tolerance based. The
// places this matters are degenerate-extent detection during normalization
// and the "is the seed edge length unset" check in the edge length search.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}
