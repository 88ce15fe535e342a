package core

import (
	"fmt"
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
	// GetNormal returns a standard normally-distributed value
	GetNormal() float64
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own deterministic generator
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// GetNormal returns a standard normally-distributed value
func (r *RandomSampler) GetNormal() float64 {
	return r.random.NormFloat64()
}

// RandomUnitVector returns a uniformly distributed direction.
// A gaussian 3-vector is isotropic, so normalizing it is uniform on the sphere;
// draws too close to zero are rejected.
func RandomUnitVector(sampler Sampler) Vec3 {
	for {
		v := NewVec3(sampler.GetNormal(), sampler.GetNormal(), sampler.GetNormal())
		if l2 := v.LengthSquared(); l2 > NearlyZero {
			return v.Multiply(1 / math.Sqrt(l2))
		}
	}
}

// WeightedChoice picks among items with probability proportional to their weights
type WeightedChoice[T any] struct {
	items   []T
	weights []float64
	total   float64
}

// NewWeightedChoice builds a chooser. Weights must match items one-to-one and be non-negative.
func NewWeightedChoice[T any](items []T, weights []float64) *WeightedChoice[T] {
	if len(items) != len(weights) {
		panic(fmt.Sprintf("items length (%d) must match weights length (%d)", len(items), len(weights)))
	}

	total := 0.0
	for _, weight := range weights {
		if weight < 0 {
			panic("weights must be non-negative")
		}
		total += weight
	}

	return &WeightedChoice[T]{items: items, weights: weights, total: total}
}

// Total returns the sum of all weights
func (wc *WeightedChoice[T]) Total() float64 {
	return wc.total
}

// Choose selects an item using u ∈ [0, 1). It returns the item, its normalized probability,
// and false when there is nothing with positive weight to choose.
func (wc *WeightedChoice[T]) Choose(u float64) (T, float64, bool) {
	var zero T
	if len(wc.items) == 0 || wc.total <= 0 {
		return zero, 0, false
	}

	// Sample using the cumulative distribution
	target := u * wc.total
	var cumulative float64
	for i, weight := range wc.weights {
		cumulative += weight
		if weight > 0 && target < cumulative {
			return wc.items[i], weight / wc.total, true
		}
	}

	// Rounding fallback: last item with positive weight
	for i := len(wc.weights) - 1; i >= 0; i-- {
		if wc.weights[i] > 0 {
			return wc.items[i], wc.weights[i] / wc.total, true
		}
	}
	return zero, 0, false
}
