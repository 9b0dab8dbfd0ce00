package trial

import (
	"errors"
	"testing"
)

func TestSelectInclusiveBounds(t *testing.T) {
	features := FeatureTable{
		"contrast": {9, 10, 25, 50, 51},
	}
	selectors := Selectors{
		"mid": {"contrast": Range{Low: 10, High: 50}},
	}

	masks, err := Select(features, selectors)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}

	// Values exactly at the bounds are in; one unit outside is out.
	want := []bool{false, true, true, true, false}
	got := masks["mid"]
	if len(got) != len(want) {
		t.Fatalf("mask length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("mask[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSelectAndAcrossFeatures(t *testing.T) {
	features := FeatureTable{
		"contrast":  {10, 10, 90},
		"direction": {0, 180, 0},
	}
	selectors := Selectors{
		"low-right": {
			"contrast":  Range{Low: 0, High: 50},
			"direction": Range{Low: -45, High: 45},
		},
	}

	masks, err := Select(features, selectors)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}

	want := []bool{true, false, false}
	for i, w := range want {
		if masks["low-right"][i] != w {
			t.Errorf("mask[%d] = %v, want %v", i, masks["low-right"][i], w)
		}
	}
}

func TestSelectIndependentGroups(t *testing.T) {
	features := FeatureTable{
		"x": {1, 5, 9},
	}
	selectors := Selectors{
		"lo": {"x": Range{Low: 0, High: 5}},
		"hi": {"x": Range{Low: 5, High: 10}},
	}

	masks, err := Select(features, selectors)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(masks) != 2 {
		t.Fatalf("got %d groups, want 2", len(masks))
	}

	// The middle trial sits in both groups.
	if !masks["lo"][1] || !masks["hi"][1] {
		t.Fatal("trial at shared boundary should belong to both groups")
	}
}

func TestSelectErrors(t *testing.T) {
	cases := []struct {
		name      string
		features  FeatureTable
		selectors Selectors
		want      error
	}{
		{
			"shape mismatch",
			FeatureTable{"a": {1, 2, 3}, "b": {1, 2}},
			Selectors{"g": {"a": Range{0, 10}}},
			ErrShapeMismatch,
		},
		{
			"unknown feature",
			FeatureTable{"a": {1, 2, 3}},
			Selectors{"g": {"missing": Range{0, 10}}},
			ErrUnknownFeature,
		},
		{
			"empty table",
			FeatureTable{},
			Selectors{"g": {"a": Range{0, 10}}},
			ErrNoFeatures,
		},
		{
			"no selectors",
			FeatureTable{"a": {1}},
			Selectors{},
			ErrNoSelectors,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Select(tc.features, tc.selectors)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Select err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestAllTrials(t *testing.T) {
	mask := AllTrials(4)
	if len(mask) != 4 {
		t.Fatalf("len = %d, want 4", len(mask))
	}
	for i, v := range mask {
		if !v {
			t.Fatalf("mask[%d] = false, want true", i)
		}
	}
}
