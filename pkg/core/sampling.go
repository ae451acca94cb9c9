package core

import (
	"pgregory.net/rand"
)

// Sampler provides random sampling for rendering algorithms.
// Each worker task owns its own sampler; implementations are not safe for concurrent use.
type Sampler interface {
	// Get1D returns a uniform float64 in [0, 1)
	Get1D() float64
	// Range returns a uniform float64 in [min, max)
	Range(min, max float64) float64
	// IntRange returns a uniform int in [min, max]
	IntRange(min, max int) int
}

// RandomSampler wraps a seedable pgregory.net/rand generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler seeded from the given values.
// Identical seeds produce identical sequences.
func NewRandomSampler(seed ...uint64) *RandomSampler {
	return &RandomSampler{random: rand.New(seed...)}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Range returns a random float64 in [min, max)
func (r *RandomSampler) Range(min, max float64) float64 {
	return min + (max-min)*r.random.Float64()
}

// IntRange returns a random int in [min, max]
func (r *RandomSampler) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.random.Intn(max-min+1)
}

// OpenUnit returns a random float64 in the open interval (0, 1)
func OpenUnit(s Sampler) float64 {
	for {
		if u := s.Get1D(); u > 0 {
			return u
		}
	}
}
