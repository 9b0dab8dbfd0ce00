// Package gen creates deterministic synthetic spike trains for
// examples, tests and benchmarks.
package gen

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Generator creates spike trains from a fixed random seed.
type Generator struct {
	seed uint64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the deterministic random seed.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured spike-train generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// Poisson generates a homogeneous Poisson spike train at rateHz over
// duration seconds, by accumulating exponentially distributed
// inter-spike intervals.
func (g *Generator) Poisson(rateHz, duration float64) ([]float64, error) {
	if rateHz <= 0 {
		return nil, fmt.Errorf("gen: poisson rate must be > 0: %f", rateHz)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("gen: poisson duration must be > 0: %f", duration)
	}

	exp := distuv.Exponential{
		Rate: rateHz,
		Src:  rand.NewSource(g.seed),
	}

	var out []float64
	for t := exp.Rand(); t < duration; t += exp.Rand() {
		out = append(out, t)
	}

	return out, nil
}

// Regular generates an evenly spaced train at rateHz over duration
// seconds, with each spike displaced by uniform jitter in
// [-jitter, jitter] seconds. Jittered spikes stay sorted as long as
// jitter is below half the inter-spike interval.
func (g *Generator) Regular(rateHz, duration, jitter float64) ([]float64, error) {
	if rateHz <= 0 {
		return nil, fmt.Errorf("gen: regular rate must be > 0: %f", rateHz)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("gen: regular duration must be > 0: %f", duration)
	}
	if jitter < 0 {
		return nil, fmt.Errorf("gen: jitter must be >= 0: %f", jitter)
	}

	step := 1 / rateHz
	if 2*jitter >= step {
		return nil, fmt.Errorf("gen: jitter %f too large for interval %f", jitter, step)
	}

	rng := rand.New(rand.NewSource(g.seed))

	var out []float64
	for i := 1; ; i++ {
		t := float64(i) * step
		if t >= duration {
			break
		}

		if jitter > 0 {
			t += (rng.Float64()*2 - 1) * jitter
		}
		out = append(out, t)
	}

	return out, nil
}
