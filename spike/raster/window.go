package raster

import (
	"errors"
	"math"
)

// Default analysis window: 100 ms before to 500 ms after the event,
// in 10 ms bins.
const (
	DefaultStartMs   = -100.0
	DefaultEndMs     = 500.0
	DefaultBinSizeMs = 10.0
)

// ErrInvalidWindow is returned when a window's bounds or bin size
// cannot describe a whole number of bins.
var ErrInvalidWindow = errors.New("raster: invalid analysis window")

// Window describes the peri-event analysis span in milliseconds
// relative to the event, discretized into BinSizeMs-wide bins.
type Window struct {
	StartMs   float64
	EndMs     float64
	BinSizeMs float64
}

// DefaultWindow returns the [-100, 500] ms window with 10 ms bins.
func DefaultWindow() Window {
	return Window{StartMs: DefaultStartMs, EndMs: DefaultEndMs, BinSizeMs: DefaultBinSizeMs}
}

// Validate checks that StartMs < EndMs, BinSizeMs > 0, and that both
// offsets are whole multiples of the bin size, so bin indices are
// exact integers rather than truncated float ratios.
func (w Window) Validate() error {
	if w.BinSizeMs <= 0 {
		return ErrInvalidWindow
	}

	if w.StartMs >= w.EndMs {
		return ErrInvalidWindow
	}

	if !wholeMultiple(w.StartMs, w.BinSizeMs) || !wholeMultiple(w.EndMs, w.BinSizeMs) {
		return ErrInvalidWindow
	}

	return nil
}

// Bins returns the column count of a raster built with this window.
func (w Window) Bins() int {
	return w.endBins() - w.startBins()
}

// startBins returns StartMs expressed in whole bins.
func (w Window) startBins() int {
	return int(math.Round(w.StartMs / w.BinSizeMs))
}

// endBins returns EndMs expressed in whole bins.
func (w Window) endBins() int {
	return int(math.Round(w.EndMs / w.BinSizeMs))
}

// BinStartsMs returns the start time of each bin in milliseconds
// relative to the event, one value per raster column.
func (w Window) BinStartsMs() []float64 {
	n := w.Bins()
	out := make([]float64, n)
	for i := range out {
		out[i] = w.StartMs + float64(i)*w.BinSizeMs
	}

	return out
}

// BinSeconds returns the bin width in seconds.
func (w Window) BinSeconds() float64 {
	return w.BinSizeMs * 1e-3
}

func wholeMultiple(offsetMs, binMs float64) bool {
	r := offsetMs / binMs
	return math.Abs(r-math.Round(r)) < 1e-9
}
