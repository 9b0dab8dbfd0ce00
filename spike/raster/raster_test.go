package raster

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-spike/spike/train"
	"github.com/cwbudde/algo-spike/spike/trial"
)

func regularTrain(t *testing.T) *train.Train {
	t.Helper()

	tr, err := train.New([]float64{0, 0.5, 1, 1.5, 2, 2.5, 3})
	if err != nil {
		t.Fatalf("train.New: %v", err)
	}

	return tr
}

func TestWindowValidate(t *testing.T) {
	cases := []struct {
		name string
		w    Window
		ok   bool
	}{
		{"default", DefaultWindow(), true},
		{"symmetric", Window{StartMs: -500, EndMs: 500, BinSizeMs: 500}, true},
		{"inverted", Window{StartMs: 500, EndMs: -500, BinSizeMs: 10}, false},
		{"zero bin", Window{StartMs: -100, EndMs: 500, BinSizeMs: 0}, false},
		{"fractional start", Window{StartMs: -105, EndMs: 500, BinSizeMs: 10}, false},
		{"fractional end", Window{StartMs: -100, EndMs: 505, BinSizeMs: 10}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.w.Validate()
			if tc.ok && err != nil {
				t.Fatalf("Validate = %v, want nil", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidWindow) {
				t.Fatalf("Validate = %v, want ErrInvalidWindow", err)
			}
		})
	}
}

func TestWindowBins(t *testing.T) {
	w := DefaultWindow()
	if got := w.Bins(); got != 60 {
		t.Fatalf("Bins = %d, want 60", got)
	}

	starts := w.BinStartsMs()
	if len(starts) != 60 {
		t.Fatalf("len(BinStartsMs) = %d, want 60", len(starts))
	}
	if starts[0] != -100 || starts[59] != 490 {
		t.Fatalf("bin starts span [%v, %v], want [-100, 490]", starts[0], starts[59])
	}
}

func TestBuildAllEndToEnd(t *testing.T) {
	tr := regularTrain(t)
	w := Window{StartMs: -500, EndMs: 500, BinSizeMs: 500}

	r, err := BuildAll(tr, []float64{1.0, 2.0}, w)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}

	if r.NumRows() != 2 {
		t.Fatalf("rows = %d, want 2", r.NumRows())
	}

	for i, row := range r.Rows {
		if len(row) != 2 {
			t.Fatalf("row %d has %d bins, want 2", i, len(row))
		}
		// One spike every 500 ms, so each window bin holds one spike.
		for j, v := range row {
			if v != 1 {
				t.Errorf("row %d bin %d = %v, want 1", i, j, v)
			}
		}
	}
}

func TestBuildDropsEdgeEvents(t *testing.T) {
	tr := regularTrain(t)
	w := Window{StartMs: -500, EndMs: 500, BinSizeMs: 500}

	// Events exactly at the first/last spike and beyond are excluded.
	events := []float64{0.0, 1.0, 3.0, 4.5}

	r, err := BuildAll(tr, events, w)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}

	if r.NumRows() != 1 {
		t.Fatalf("rows = %d, want 1 (only the interior event)", r.NumRows())
	}
}

func TestBuildDropsRowsPastAxisEdge(t *testing.T) {
	tr := regularTrain(t)
	w := Window{StartMs: -500, EndMs: 500, BinSizeMs: 500}

	// 0.2 is inside the spike span but its window starts before the
	// axis origin, so the row is dropped rather than clamped.
	r, err := BuildAll(tr, []float64{0.2, 1.5}, w)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}

	if r.NumRows() != 1 {
		t.Fatalf("rows = %d, want 1", r.NumRows())
	}
}

func TestBuildPerGroupMasks(t *testing.T) {
	tr := regularTrain(t)
	w := Window{StartMs: -500, EndMs: 500, BinSizeMs: 500}
	events := []float64{1.0, 1.5, 2.0}

	masks := map[string][]bool{
		"first":  {true, false, false},
		"others": {false, true, true},
	}

	rasters, err := Build(tr, events, masks, w)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if rasters["first"].NumRows() != 1 {
		t.Errorf(`group "first" rows = %d, want 1`, rasters["first"].NumRows())
	}
	if rasters["others"].NumRows() != 2 {
		t.Errorf(`group "others" rows = %d, want 2`, rasters["others"].NumRows())
	}
}

func TestBuildSharedBinAnchorsOnce(t *testing.T) {
	tr := regularTrain(t)
	w := Window{StartMs: -500, EndMs: 500, BinSizeMs: 500}

	// Both events land in the same 500 ms bin: one anchor, one row.
	r, err := BuildAll(tr, []float64{1.1, 1.2}, w)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}

	if r.NumRows() != 1 {
		t.Fatalf("rows = %d, want 1 for events sharing a bin", r.NumRows())
	}
}

func TestBuildErrors(t *testing.T) {
	tr := regularTrain(t)
	w := Window{StartMs: -500, EndMs: 500, BinSizeMs: 500}

	if _, err := BuildAll(tr, nil, w); !errors.Is(err, ErrNoEvents) {
		t.Fatalf("err = %v, want ErrNoEvents", err)
	}

	bad := Window{StartMs: 500, EndMs: -500, BinSizeMs: 500}
	if _, err := BuildAll(tr, []float64{1}, bad); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("err = %v, want ErrInvalidWindow", err)
	}

	short := map[string][]bool{"g": {true}}
	if _, err := Build(tr, []float64{1, 2}, short, w); !errors.Is(err, ErrMaskLength) {
		t.Fatalf("err = %v, want ErrMaskLength", err)
	}
}

func TestBuildDoesNotMutateInputs(t *testing.T) {
	tr := regularTrain(t)
	w := Window{StartMs: -500, EndMs: 500, BinSizeMs: 500}
	events := []float64{1.0, 2.0}
	mask := trial.AllTrials(2)

	first, err := Build(tr, events, map[string][]bool{"g": mask}, w)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	second, err := Build(tr, events, map[string][]bool{"g": mask}, w)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	a, b := first["g"], second["g"]
	if a.NumRows() != b.NumRows() {
		t.Fatalf("row counts differ across identical calls: %d vs %d", a.NumRows(), b.NumRows())
	}
	for i := range a.Rows {
		for j := range a.Rows[i] {
			if a.Rows[i][j] != b.Rows[i][j] {
				t.Fatalf("rasters differ at [%d][%d]", i, j)
			}
		}
	}
}
