package remesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// workingRadius is the half-extent the largest axis of the input is mapped
// to. The downstream defaults (target edge length, gradient size) are tuned
// against this frame, so it is a fixed constant rather than configuration.
const workingRadius = 100.0

// normalization records how the input was centered and scaled, and therefore
// how to get back: original = working*RecoverScale + Origin.
type normalization struct {
	origin        Vec
	maxHalfExtent float64
	recoverScale  float64
}

// boundingFactors computes the axis-aligned center of the vertex set and its
// largest half-extent. A degenerate (empty or zero-extent) set reports a
// half-extent of 1 so callers never divide by zero.
func boundingFactors(vertices []Vec) (origin Vec, maxHalfExtent float64) {
	minV := Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	maxV := Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, v := range vertices {
		minV.X = math.Min(minV.X, v.X)
		minV.Y = math.Min(minV.Y, v.Y)
		minV.Z = math.Min(minV.Z, v.Z)
		maxV.X = math.Max(maxV.X, v.X)
		maxV.Y = math.Max(maxV.Y, v.Y)
		maxV.Z = math.Max(maxV.Z, v.Z)
	}

	if len(vertices) == 0 {
		return Vec{}, 1.0
	}

	maxHalfExtent = (maxV.X - minV.X) * 0.5
	maxHalfExtent = math.Max(maxHalfExtent, (maxV.Y-minV.Y)*0.5)
	maxHalfExtent = math.Max(maxHalfExtent, (maxV.Z-minV.Z)*0.5)
	if Equal(maxHalfExtent, 0) {
		maxHalfExtent = 1.0
	}

	origin = Vec{
		X: (maxV.X + minV.X) * 0.5,
		Y: (maxV.Y + minV.Y) * 0.5,
		Z: (maxV.Z + minV.Z) * 0.5,
	}
	return origin, maxHalfExtent
}

// normalizeVertices rescales the vertices in place so the mesh is centered
// at the origin with its largest half-extent equal to workingRadius.
func normalizeVertices(vertices []Vec) normalization {
	origin, maxHalfExtent := boundingFactors(vertices)
	n := normalization{
		origin:        origin,
		maxHalfExtent: maxHalfExtent,
		recoverScale:  maxHalfExtent / workingRadius,
	}
	for i, v := range vertices {
		vertices[i] = r3.Scale(workingRadius/maxHalfExtent, r3.Sub(v, origin))
	}
	return n
}

// recover maps a working-frame point back to the original input frame.
func (n normalization) recover(v Vec) Vec {
	return r3.Add(r3.Scale(n.recoverScale, v), n.origin)
}
