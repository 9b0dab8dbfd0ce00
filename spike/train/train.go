package train

import (
	"errors"
	"sort"
)

// Errors returned by the train constructor.
var (
	ErrTooFewSpikes = errors.New("train: need at least two spike times")
	ErrUnsorted     = errors.New("train: spike times must be non-decreasing")
	ErrZeroSpan     = errors.New("train: spike times span zero seconds")
)

// DefaultName is used when no display name is given.
const DefaultName = "neuron"

// Train holds the ordered spike times of a single unit, in seconds.
// A Train is immutable once constructed; concurrent reads are safe.
type Train struct {
	name  string
	times []float64
	rate  float64
}

// Option configures a Train at construction time.
type Option func(*Train)

// WithName sets the display name used in plot titles.
func WithName(name string) Option {
	return func(t *Train) {
		if name != "" {
			t.name = name
		}
	}
}

// New creates a Train from spike times in seconds.
//
// The times must be non-decreasing and contain at least two samples
// spanning a positive duration, since the mean firing rate divides
// the spike count by (last - first). The input slice is copied; the
// caller keeps ownership of it.
func New(times []float64, opts ...Option) (*Train, error) {
	if len(times) < 2 {
		return nil, ErrTooFewSpikes
	}

	for i := 1; i < len(times); i++ {
		if times[i] < times[i-1] {
			return nil, ErrUnsorted
		}
	}

	span := times[len(times)-1] - times[0]
	if span <= 0 {
		return nil, ErrZeroSpan
	}

	cp := make([]float64, len(times))
	copy(cp, times)

	t := &Train{
		name:  DefaultName,
		times: cp,
		rate:  float64(len(cp)) / span,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}

	return t, nil
}

// Name returns the display name.
func (t *Train) Name() string { return t.name }

// Len returns the number of spikes.
func (t *Train) Len() int { return len(t.times) }

// First returns the earliest spike time.
func (t *Train) First() float64 { return t.times[0] }

// Last returns the latest spike time.
func (t *Train) Last() float64 { return t.times[len(t.times)-1] }

// FiringRate returns the mean firing rate in spikes per second,
// spike count divided by the spanned duration.
func (t *Train) FiringRate() float64 { return t.rate }

// Times returns the spike times. The returned slice is the train's
// internal storage and must not be modified.
func (t *Train) Times() []float64 { return t.times }

// CountBetween returns the number of spikes s with lo <= s <= hi,
// both bounds inclusive, via binary search on the sorted times.
func (t *Train) CountBetween(lo, hi float64) int {
	if hi < lo {
		return 0
	}

	first := sort.SearchFloat64s(t.times, lo)
	// First index strictly past hi, so spikes exactly at hi count.
	past := sort.Search(len(t.times), func(i int) bool { return t.times[i] > hi })

	return past - first
}
