// Package isi computes inter-spike-interval statistics for a spike
// train: central moments of the ISI distribution and the regularity
// measures derived from them.
package isi

import "math"

// Stats holds inter-spike-interval statistics. Durations are in
// seconds; CV is the coefficient of variation (1 for a Poisson
// process, 0 for a perfectly regular train).
type Stats struct {
	Count    int // number of intervals (spikes - 1)
	Mean     float64
	Min      float64
	Max      float64
	Variance float64
	StdDev   float64
	CV       float64
	Rate     float64 // 1 / mean interval, spikes per second
}

// Intervals returns the successive differences of the spike times.
func Intervals(times []float64) []float64 {
	if len(times) < 2 {
		return nil
	}

	out := make([]float64, len(times)-1)
	for i := range out {
		out[i] = times[i+1] - times[i]
	}

	return out
}

// Calculate computes ISI statistics in a single pass using Welford's
// online algorithm for a numerically stable variance. Fewer than two
// spike times yields a zero-valued Stats.
func Calculate(times []float64) Stats {
	if len(times) < 2 {
		return Stats{}
	}

	// Welford accumulators over the intervals.
	var (
		mean float64
		m2   float64
	)

	minVal := math.Inf(1)
	maxVal := math.Inf(-1)

	n := 0
	for i := 1; i < len(times); i++ {
		d := times[i] - times[i-1]
		n++

		delta := d - mean
		mean += delta / float64(n)
		m2 += delta * (d - mean)

		if d < minVal {
			minVal = d
		}
		if d > maxVal {
			maxVal = d
		}
	}

	variance := m2 / float64(n)
	std := math.Sqrt(variance)

	var cv, rate float64
	if mean > 0 {
		cv = std / mean
		rate = 1 / mean
	}

	return Stats{
		Count:    n,
		Mean:     mean,
		Min:      minVal,
		Max:      maxVal,
		Variance: variance,
		StdDev:   std,
		CV:       cv,
		Rate:     rate,
	}
}
