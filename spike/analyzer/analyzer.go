// Package analyzer composes the full single-unit pipeline: trial
// selection, raster building, PSTH aggregation and windowed counts,
// around one immutable spike train. Rendering is a separate,
// explicitly invoked stage that consumes already computed results.
package analyzer

import (
	"sort"

	"github.com/cwbudde/algo-spike/measure/counts"
	"github.com/cwbudde/algo-spike/plot"
	"github.com/cwbudde/algo-spike/spike/psth"
	"github.com/cwbudde/algo-spike/spike/raster"
	"github.com/cwbudde/algo-spike/spike/train"
	"github.com/cwbudde/algo-spike/spike/trial"
)

// Analyzer holds one unit's spike train. Events, features and
// selectors are passed per call and stay owned by the caller; every
// returned raster or PSTH is freshly allocated.
type Analyzer struct {
	tr *train.Train
}

// New creates an Analyzer from raw spike times in seconds.
func New(times []float64, opts ...train.Option) (*Analyzer, error) {
	tr, err := train.New(times, opts...)
	if err != nil {
		return nil, err
	}

	return &Analyzer{tr: tr}, nil
}

// FromTrain wraps an existing train.
func FromTrain(tr *train.Train) *Analyzer {
	return &Analyzer{tr: tr}
}

// Train returns the underlying spike train.
func (a *Analyzer) Train() *train.Train { return a.tr }

// masks resolves the selector set to per-group trial masks, falling
// back to the single all-true group when no selectors are given.
func (a *Analyzer) masks(nEvents int, features trial.FeatureTable, selectors trial.Selectors) (map[string][]bool, error) {
	if len(selectors) == 0 {
		return map[string][]bool{"all": trial.AllTrials(nEvents)}, nil
	}

	return trial.Select(features, selectors)
}

// Rasters builds one raster per selector group, or a single "all"
// group when selectors is empty.
func (a *Analyzer) Rasters(events []float64, features trial.FeatureTable, selectors trial.Selectors, w raster.Window) (map[string]*raster.Raster, error) {
	masks, err := a.masks(len(events), features, selectors)
	if err != nil {
		return nil, err
	}

	return raster.Build(a.tr, events, masks, w)
}

// PSTH builds rasters and aggregates them into per-group PSTHs.
func (a *Analyzer) PSTH(events []float64, features trial.FeatureTable, selectors trial.Selectors, w raster.Window) (map[string]psth.Result, error) {
	rasters, err := a.Rasters(events, features, selectors, w)
	if err != nil {
		return nil, err
	}

	return psth.Aggregate(rasters)
}

// SpikeCounts returns the per-event total spike count in the offset
// window, without binning or trial grouping.
func (a *Analyzer) SpikeCounts(events []float64, w counts.Window) ([]int, error) {
	return counts.PerEvent(a.tr, events, w)
}

// RenderRasters draws one heatmap per group, in group-id order. The
// rasters are read only; a renderer failure aborts the remaining
// draws but leaves every computed result intact.
func (a *Analyzer) RenderRasters(r plot.Renderer, rasters map[string]*raster.Raster, opts ...plot.Option) error {
	groups := make([]string, 0, len(rasters))
	for id := range rasters {
		groups = append(groups, id)
	}
	sort.Strings(groups)

	for _, id := range groups {
		h := plot.RasterHeatmap(a.tr.Name(), a.tr.FiringRate(), rasters[id], opts...)
		if err := r.Heatmap(h); err != nil {
			return err
		}
	}

	return nil
}

// RenderPSTH draws the combined PSTH line plot for all groups.
func (a *Analyzer) RenderPSTH(r plot.Renderer, results map[string]psth.Result, w raster.Window, opts ...plot.Option) error {
	return r.Lines(plot.PSTHLines(a.tr.Name(), a.tr.FiringRate(), results, w, opts...))
}
