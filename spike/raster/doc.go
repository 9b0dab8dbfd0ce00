// Package raster bins spike times into per-event count matrices.
//
// The whole spike train is discretized once onto a shared bin axis
// spanning [floor(first spike), ceil(last spike)). Each qualifying
// event anchors a window of bins relative to its own bin, and the
// slices of the shared count sequence stack into one raster matrix
// per selector group: rows are events, columns are time bins.
package raster
