// Package trial selects subsets of trials by inclusive range
// constraints on per-trial feature values (e.g. stimulus contrast,
// reaction time). Each selector group yields one boolean trial mask;
// downstream raster building uses one mask per group.
package trial

import (
	"errors"
	"fmt"
)

// Errors returned by Select.
var (
	ErrNoFeatures     = errors.New("trial: feature table is empty")
	ErrNoSelectors    = errors.New("trial: no selector groups given")
	ErrShapeMismatch  = errors.New("trial: feature value counts disagree")
	ErrUnknownFeature = errors.New("trial: selector references unknown feature")
)

// FeatureTable maps a feature name to its per-trial values. All
// features must have the same length, the trial count.
type FeatureTable map[string][]float64

// Trials returns the trial count implied by the table, or
// ErrShapeMismatch when the feature lengths disagree.
func (ft FeatureTable) Trials() (int, error) {
	if len(ft) == 0 {
		return 0, ErrNoFeatures
	}

	n := -1
	for name, values := range ft {
		if n < 0 {
			n = len(values)
			continue
		}
		if len(values) != n {
			return 0, fmt.Errorf("%w: feature %q has %d values, want %d",
				ErrShapeMismatch, name, len(values), n)
		}
	}

	return n, nil
}

// Range is an inclusive [Low, High] interval on a feature value.
type Range struct {
	Low  float64
	High float64
}

// Contains reports whether v lies in the range, both ends inclusive.
func (r Range) Contains(v float64) bool {
	return v >= r.Low && v <= r.High
}

// Constraint maps feature names to ranges. A trial satisfies the
// constraint iff every referenced feature value lies in its range
// (AND across features).
type Constraint map[string]Range

// Selectors maps a group id to its constraint. Groups are evaluated
// independently; a trial may belong to several groups.
type Selectors map[string]Constraint

// Select evaluates every selector group against the feature table
// and returns one boolean mask per group, each of trial-count length.
//
// Fails with ErrShapeMismatch when feature lengths disagree and with
// ErrUnknownFeature when a constraint names a feature the table does
// not hold. With no selectors the caller should use AllTrials instead.
func Select(features FeatureTable, selectors Selectors) (map[string][]bool, error) {
	if len(selectors) == 0 {
		return nil, ErrNoSelectors
	}

	n, err := features.Trials()
	if err != nil {
		return nil, err
	}

	masks := make(map[string][]bool, len(selectors))

	for group, constraint := range selectors {
		mask := make([]bool, n)
		for i := range mask {
			mask[i] = true
		}

		for name, rng := range constraint {
			values, ok := features[name]
			if !ok {
				return nil, fmt.Errorf("%w: group %q, feature %q",
					ErrUnknownFeature, group, name)
			}

			for i, v := range values {
				if !rng.Contains(v) {
					mask[i] = false
				}
			}
		}

		masks[group] = mask
	}

	return masks, nil
}

// AllTrials returns the single-group default mask selecting every
// trial, for callers with no feature constraints.
func AllTrials(n int) []bool {
	mask := make([]bool, n)
	for i := range mask {
		mask[i] = true
	}

	return mask
}
