// Package psth aggregates rasters into peri-stimulus time histograms:
// per-bin mean, standard deviation and standard error across trials,
// in spikes per second.
package psth

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spike/spike/raster"
)

// ErrEmptyRaster is returned when a group has no qualifying rows;
// the aggregation fails explicitly instead of emitting NaN columns.
var ErrEmptyRaster = errors.New("psth: raster has no rows")

// Result holds the PSTH of one group, one value per time bin.
// Mean and Std are in spikes per second; SEM is Std divided by the
// row count. Rows is the number of trials that contributed.
type Result struct {
	Mean []float64
	Std  []float64
	SEM  []float64
	Rows int
}

// Aggregate computes one Result per raster group. Counts are scaled
// by the bin width in seconds, so a bin averaging one spike per
// 10 ms trial window reads as 100 spikes/s.
func Aggregate(rasters map[string]*raster.Raster) (map[string]Result, error) {
	results := make(map[string]Result, len(rasters))

	for group, r := range rasters {
		res, err := aggregateOne(r)
		if err != nil {
			return nil, fmt.Errorf("%w: group %q", err, group)
		}

		results[group] = res
	}

	return results, nil
}

// AggregateOne computes the PSTH of a single raster.
func AggregateOne(r *raster.Raster) (Result, error) {
	return aggregateOne(r)
}

func aggregateOne(r *raster.Raster) (Result, error) {
	rows := len(r.Rows)
	if rows == 0 {
		return Result{}, ErrEmptyRaster
	}

	bins := len(r.Rows[0])
	invRows := 1.0 / float64(rows)

	mean := make([]float64, bins)
	for _, row := range r.Rows {
		vecmath.AddBlockInPlace(mean, row)
	}
	vecmath.ScaleBlockInPlace(mean, invRows)

	// Population variance around the per-bin mean counts.
	variance := make([]float64, bins)
	for _, row := range r.Rows {
		for j, v := range row {
			d := v - mean[j]
			variance[j] += d * d
		}
	}
	vecmath.ScaleBlockInPlace(variance, invRows)

	std := make([]float64, bins)
	for j, v := range variance {
		std[j] = math.Sqrt(v)
	}

	// Counts per bin become rates in spikes/second.
	invBinSec := 1.0 / r.Window.BinSeconds()
	vecmath.ScaleBlockInPlace(mean, invBinSec)
	vecmath.ScaleBlockInPlace(std, invBinSec)

	sem := make([]float64, bins)
	vecmath.ScaleBlock(sem, std, invRows)

	return Result{Mean: mean, Std: std, SEM: sem, Rows: rows}, nil
}
