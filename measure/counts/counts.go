// Package counts measures total spike counts in a fixed offset
// window around each event, without binning.
package counts

import (
	"errors"

	"github.com/cwbudde/algo-spike/spike/train"
)

// Errors returned by PerEvent.
var (
	ErrWindowOrder = errors.New("counts: window low offset must not exceed high offset")
	ErrNoEvents    = errors.New("counts: no events given")
)

// Default count window: 50 to 100 ms after the event, in seconds.
const (
	DefaultLowOffset  = 0.050
	DefaultHighOffset = 0.100
)

// Window is a pair of offsets in seconds relative to an event, the
// same time unit as the spike train. Both bounds are inclusive.
type Window struct {
	LowOffset  float64
	HighOffset float64
}

// DefaultWindow returns the [50, 100] ms window.
func DefaultWindow() Window {
	return Window{LowOffset: DefaultLowOffset, HighOffset: DefaultHighOffset}
}

// PerEvent returns the spike count in [e+LowOffset, e+HighOffset] for
// each event e, in event order. Each count is a binary search on the
// sorted train, so the cost is O(events * log spikes). Events with no
// spikes in range count zero; spikes exactly on either bound count.
func PerEvent(tr *train.Train, events []float64, w Window) ([]int, error) {
	if w.LowOffset > w.HighOffset {
		return nil, ErrWindowOrder
	}

	if len(events) == 0 {
		return nil, ErrNoEvents
	}

	out := make([]int, len(events))
	for i, e := range events {
		out[i] = tr.CountBetween(e+w.LowOffset, e+w.HighOffset)
	}

	return out, nil
}
