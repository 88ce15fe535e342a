package geometry

import (
	"errors"
	"fmt"
	"math"

	lin "github.com/sgreben/piecewiselinear"
)

// BlendProfile maps a normalized position across a solid's interior span (0 at the entry
// boundary, 1 at the exit boundary) to the weight given to the exit side's material.
// The zero value is the linear ramp from 0 to 1.
type BlendProfile struct {
	fn lin.Function
}

// LinearBlendProfile ramps evenly from the entry material to the exit material
func LinearBlendProfile() BlendProfile {
	return BlendProfile{fn: lin.Function{X: []float64{0, 1}, Y: []float64{0, 1}}}
}

// ConstantBlendProfile always uses the same weight
func ConstantBlendProfile(weight float64) BlendProfile {
	return BlendProfile{fn: lin.Function{X: []float64{0, 1}, Y: []float64{weight, weight}}}
}

// NewBlendProfile builds a profile from control points. Positions must be strictly
// increasing and weights must lie in [0, 1].
func NewBlendProfile(positions, weights []float64) (BlendProfile, error) {
	if len(positions) != len(weights) {
		return BlendProfile{}, fmt.Errorf("blend profile: %d positions but %d weights", len(positions), len(weights))
	}
	if len(positions) < 2 {
		return BlendProfile{}, errors.New("blend profile: need at least two control points")
	}
	for i := range positions {
		if i > 0 && positions[i] <= positions[i-1] {
			return BlendProfile{}, fmt.Errorf("blend profile: positions must increase, got %g after %g", positions[i], positions[i-1])
		}
		if weights[i] < 0 || weights[i] > 1 {
			return BlendProfile{}, fmt.Errorf("blend profile: weight %g out of [0, 1]", weights[i])
		}
	}

	xs := append([]float64(nil), positions...)
	ys := append([]float64(nil), weights...)
	return BlendProfile{fn: lin.Function{X: xs, Y: ys}}, nil
}

// Weight returns the exit-material weight at position, clamped to the profile's domain
func (b BlendProfile) Weight(position float64) float64 {
	if len(b.fn.X) == 0 {
		return math.Max(0, math.Min(1, position))
	}
	position = math.Max(b.fn.X[0], math.Min(b.fn.X[len(b.fn.X)-1], position))
	return math.Max(0, math.Min(1, b.fn.At(position)))
}
