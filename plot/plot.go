// Package plot builds renderer-facing descriptions of raster
// heatmaps and PSTH line plots. It constructs data only; drawing is
// the job of an external Renderer, and rendering failures can never
// reach back into computed results.
package plot

import (
	"fmt"
	"sort"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spike/spike/psth"
	"github.com/cwbudde/algo-spike/spike/raster"
)

// DefaultColors holds the group color cycle, up to five groups.
var DefaultColors = []string{"#F5A21E", "#134B64", "#EF3E34", "#02A68E", "#FF07CD"}

// Presentation labels shared by both plot kinds.
const (
	xLabel       = "time [ms]"
	yLabelRaster = "trials"
	yLabelPSTH   = "spikes per second [spks/s]"

	// Labeled tick spacing, in bins.
	tickStrideBins = 10
)

// Options holds display settings.
type Options struct {
	Sort   bool // order heatmap rows by total spike count
	Colors []string
}

// Option mutates Options.
type Option func(*Options)

// WithSort enables row ordering by per-trial total count.
func WithSort() Option {
	return func(o *Options) { o.Sort = true }
}

// WithColors overrides the group color cycle.
func WithColors(colors ...string) Option {
	return func(o *Options) {
		if len(colors) > 0 {
			o.Colors = colors
		}
	}
}

func applyOptions(opts []Option) Options {
	o := Options{Colors: DefaultColors}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// Renderer draws plot specs. Implementations live outside this
// module (terminal, image, web); errors surface to the caller and
// never alter analysis results.
type Renderer interface {
	Heatmap(h Heatmap) error
	Lines(p LinePlot) error
}

// Heatmap describes one raster image: rows are trials, columns are
// time bins, MarkerBin is the event-alignment column.
type Heatmap struct {
	Title      string
	XLabel     string
	YLabel     string
	Rows       [][]float64
	TickBins   []int
	TickLabels []string
	MarkerBin  float64
}

// LinePlot describes a combined PSTH figure with one series per group.
type LinePlot struct {
	Title    string
	XLabel   string
	YLabel   string
	MarkerMs float64 // event alignment, time zero
	Series   []Series
}

// Series is one group's PSTH trace: mean with dotted mean +/- SEM bounds.
type Series struct {
	Label string
	Color string
	X     []float64
	Mean  []float64
	Upper []float64
	Lower []float64
}

// Title formats the standard figure title for a named unit.
func Title(name string, firingRate float64) string {
	return fmt.Sprintf("%s: Average firing rate %.1f Spks/s", name, firingRate)
}

// RasterHeatmap builds the heatmap spec for one raster. The raster's
// rows are copied, never reordered in place, so building a sorted
// heatmap leaves the numeric result untouched.
func RasterHeatmap(name string, firingRate float64, r *raster.Raster, opts ...Option) Heatmap {
	o := applyOptions(opts)

	rows := make([][]float64, len(r.Rows))
	copy(rows, r.Rows)

	if o.Sort {
		sort.SliceStable(rows, func(i, j int) bool {
			return vecmath.Sum(rows[i]) < vecmath.Sum(rows[j])
		})
	}

	w := r.Window
	ticks := make([]int, 0, w.Bins()/tickStrideBins+1)
	labels := make([]string, 0, cap(ticks))
	for b := 0; b < w.Bins(); b += tickStrideBins {
		ticks = append(ticks, b)
		labels = append(labels, fmt.Sprintf("%g", w.StartMs+float64(b)*w.BinSizeMs))
	}

	return Heatmap{
		Title:      Title(name, firingRate),
		XLabel:     xLabel,
		YLabel:     yLabelRaster,
		Rows:       rows,
		TickBins:   ticks,
		TickLabels: labels,
		MarkerBin:  -w.StartMs / w.BinSizeMs,
	}
}

// PSTHLines builds one combined line plot over all groups. Groups
// are ordered by id so color assignment is deterministic.
func PSTHLines(name string, firingRate float64, results map[string]psth.Result, w raster.Window, opts ...Option) LinePlot {
	o := applyOptions(opts)

	groups := make([]string, 0, len(results))
	for id := range results {
		groups = append(groups, id)
	}
	sort.Strings(groups)

	x := w.BinStartsMs()

	series := make([]Series, 0, len(groups))
	for i, id := range groups {
		res := results[id]

		upper := make([]float64, len(res.Mean))
		lower := make([]float64, len(res.Mean))
		for j := range res.Mean {
			upper[j] = res.Mean[j] + res.SEM[j]
			lower[j] = res.Mean[j] - res.SEM[j]
		}

		series = append(series, Series{
			Label: id,
			Color: o.Colors[i%len(o.Colors)],
			X:     x,
			Mean:  res.Mean,
			Upper: upper,
			Lower: lower,
		})
	}

	return LinePlot{
		Title:    Title(name, firingRate),
		XLabel:   xLabel,
		YLabel:   yLabelPSTH,
		MarkerMs: 0,
		Series:   series,
	}
}
