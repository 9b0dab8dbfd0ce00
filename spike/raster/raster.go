package raster

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-spike/spike/train"
	"github.com/cwbudde/algo-spike/spike/trial"
)

// Errors returned by Build.
var (
	ErrNoEvents   = errors.New("raster: no events given")
	ErrMaskLength = errors.New("raster: trial mask length does not match event count")
)

// Raster is one binned spike-count matrix: one row per qualifying
// anchor event, one column per time bin of the window that built it.
// All rows have length Window.Bins().
type Raster struct {
	Window Window
	Rows   [][]float64
}

// NumRows returns the number of event rows.
func (r *Raster) NumRows() int { return len(r.Rows) }

// axis is the shared bin grid covering the whole spike train.
type axis struct {
	origin float64 // floor of the first spike time, seconds
	width  float64 // bin width, seconds
	n      int     // bin count
}

func newAxis(tr *train.Train, w Window) axis {
	origin := math.Floor(tr.First())
	width := w.BinSeconds()
	span := math.Ceil(tr.Last()) - origin

	return axis{
		origin: origin,
		width:  width,
		n:      int(math.Round(span / width)),
	}
}

// index returns the bin holding time t, or -1 when t is off the axis.
func (a axis) index(t float64) int {
	i := int((t - a.origin) / a.width)
	if i < 0 || i >= a.n {
		return -1
	}

	return i
}

// Build bins the spike train once onto the shared axis, then stacks
// one window slice per qualifying event into a raster per group.
//
// masks holds one boolean trial mask per group id, each as long as
// events. Events at or before the first spike, or at or after the
// last spike, lack a full span of data and are dropped, not clipped.
// Multiple events falling into one bin anchor a single row. Anchors
// whose window would run past either end of the axis are dropped;
// rows are never clamped or zero-padded, so every returned row has
// exactly w.Bins() columns.
func Build(tr *train.Train, events []float64, masks map[string][]bool, w Window) (map[string]*Raster, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	if len(events) == 0 {
		return nil, ErrNoEvents
	}

	for group, mask := range masks {
		if len(mask) != len(events) {
			return nil, fmt.Errorf("%w: group %q has %d mask bits for %d events",
				ErrMaskLength, group, len(mask), len(events))
		}
	}

	ax := newAxis(tr, w)

	// One pass over the spikes serves every group.
	counts := make([]float64, ax.n)
	for _, s := range tr.Times() {
		if i := ax.index(s); i >= 0 {
			counts[i]++
		}
	}

	startOff := w.startBins()
	endOff := w.endBins()

	rasters := make(map[string]*Raster, len(masks))
	for group, mask := range masks {
		rasters[group] = &Raster{
			Window: w,
			Rows:   buildRows(counts, ax, tr, events, mask, startOff, endOff),
		}
	}

	return rasters, nil
}

// BuildAll builds a single raster over every event, the default when
// no trial selection applies.
func BuildAll(tr *train.Train, events []float64, w Window) (*Raster, error) {
	rasters, err := Build(tr, events, map[string][]bool{"all": trial.AllTrials(len(events))}, w)
	if err != nil {
		return nil, err
	}

	return rasters["all"], nil
}

func buildRows(counts []float64, ax axis, tr *train.Train, events []float64, mask []bool, startOff, endOff int) [][]float64 {
	anchored := make([]bool, ax.n)

	for i, e := range events {
		if !mask[i] {
			continue
		}

		// Edge events lack a full window of spikes on one side.
		if e <= tr.First() || e >= tr.Last() {
			continue
		}

		if b := ax.index(e); b >= 0 {
			anchored[b] = true
		}
	}

	var rows [][]float64

	for b, ok := range anchored {
		if !ok {
			continue
		}

		lo := b + startOff
		hi := b + endOff
		if lo < 0 || hi > len(counts) {
			continue // anchor too close to the axis edge
		}

		row := make([]float64, hi-lo)
		copy(row, counts[lo:hi])
		rows = append(rows, row)
	}

	return rows
}
