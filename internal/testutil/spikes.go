package testutil

// RegularSpikes returns a perfectly regular spike train at rateHz
// over duration seconds, starting at time zero.
func RegularSpikes(rateHz, duration float64) []float64 {
	step := 1 / rateHz

	var out []float64
	for i := 0; ; i++ {
		t := float64(i) * step
		if t > duration {
			break
		}
		out = append(out, t)
	}

	return out
}

// EventsEvery returns event times every step seconds in (0, duration),
// exclusive of both ends so events sit strictly inside a spike train
// spanning [0, duration].
func EventsEvery(step, duration float64) []float64 {
	var out []float64
	for i := 1; ; i++ {
		t := float64(i) * step
		if t >= duration {
			break
		}
		out = append(out, t)
	}

	return out
}
