package linesim

import "math/rand"

// Sampler is the only contract the core consumes for every random-variate
// source: interarrival, service, time-to-failure, time-to-repair,
// maintenance-interval, and maintenance-duration. It is deliberately
// opaque — the core never inspects the underlying distribution (§1 OUT OF
// SCOPE, §2 component 3).
//
// None of the retrieved example repositories import a probability
// distribution library (the pack's own rate limiter, go-catrate, samples
// inter-event gaps for throttling, not statistical variates), so the two
// implementations below are built on the standard library's math/rand
// rather than a third-party package — see DESIGN.md.
type Sampler interface {
	// Sample returns a single non-negative real-valued variate.
	Sample() float64
}

// exponentialSampler draws Exponential(rate) variates from a private,
// seeded *rand.Rand, so distinct streams (interarrival vs. service vs.
// failure, ...) never perturb one another's sequence (§6 "a random seed").
type exponentialSampler struct {
	rate float64
	rng  *rand.Rand
}

// NewExponential returns a Sampler drawing Exponential(rate) variates
// (mean 1/rate) from a stream seeded independently with seed.
func NewExponential(rate float64, seed int64) Sampler {
	return &exponentialSampler{rate: rate, rng: rand.New(rand.NewSource(seed))}
}

func (s *exponentialSampler) Sample() float64 {
	return s.rng.ExpFloat64() / s.rate
}

// fixedSampler always returns the same value, modelling the spec's "each a
// sampler or a deterministic value" (§6) for parameters given as a plain
// number rather than a distribution (e.g. MTBF = +Inf meaning "never
// fails", or a fixed maintenance duration).
type fixedSampler struct {
	value float64
}

// NewFixed returns a Sampler that always returns value.
func NewFixed(value float64) Sampler {
	return fixedSampler{value: value}
}

func (s fixedSampler) Sample() float64 { return s.value }
