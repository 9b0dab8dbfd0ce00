// Package oscillation estimates the power spectral density of a
// spike train's binned firing-rate signal, a standard rhythmicity
// measure (e.g. theta or gamma band modulation).
package oscillation

import (
	"errors"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/window"

	"github.com/cwbudde/algo-spike/spike/train"
)

// Errors returned by Analyze.
var (
	ErrBinSize  = errors.New("oscillation: bin size must be positive")
	ErrTooShort = errors.New("oscillation: too few bins for spectral analysis")
)

const minBins = 8

// Config holds spectral analysis parameters.
type Config struct {
	BinSizeMs float64 // count-signal resolution; 0 means 10 ms
	FFTSize   int     // 0 means next power of two above the bin count
}

// Result holds the one-sided power spectrum of the mean-removed
// spike-count signal.
type Result struct {
	Freqs      []float64 // bin center frequencies in Hz
	Power      []float64 // linear power per frequency bin
	PeakFreq   float64   // frequency of the strongest non-DC bin
	PeakPower  float64
	SampleRate float64 // count-signal sample rate in Hz
	FFTSize    int
}

// Analyze bins the train at cfg.BinSizeMs, removes the mean count,
// applies a Hann window and returns the one-sided power spectrum.
// The resolvable band tops out at 500/BinSizeMs Hz (Nyquist of the
// count signal).
func Analyze(tr *train.Train, cfg Config) (Result, error) {
	binMs := cfg.BinSizeMs
	if binMs == 0 {
		binMs = 10
	}
	if binMs < 0 {
		return Result{}, ErrBinSize
	}

	binSec := binMs * 1e-3
	origin := tr.First()
	n := int(math.Ceil((tr.Last() - origin) / binSec))
	if n < minBins {
		return Result{}, ErrTooShort
	}

	signal := make([]float64, n)
	for _, s := range tr.Times() {
		i := int((s - origin) / binSec)
		if i >= n {
			i = n - 1
		}
		signal[i]++
	}

	// Remove the DC count so the spectrum shows rate modulation only.
	mean := 0.0
	for _, v := range signal {
		mean += v
	}
	mean /= float64(n)
	for i := range signal {
		signal[i] -= mean
	}

	window.Hann(signal)

	fftSize := cfg.FFTSize
	if fftSize <= 0 {
		fftSize = nextPowerOf2(n)
	}

	inData := make([]complex128, fftSize)
	for i := 0; i < n && i < fftSize; i++ {
		inData[i] = complex(signal[i], 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Result{}, err
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, inData); err != nil {
		return Result{}, err
	}

	fs := 1000 / binMs
	binCount := fftSize/2 + 1

	res := Result{
		Freqs:      make([]float64, binCount),
		Power:      make([]float64, binCount),
		SampleRate: fs,
		FFTSize:    fftSize,
	}

	for i := 0; i < binCount; i++ {
		x := out[i]
		res.Freqs[i] = float64(i) * fs / float64(fftSize)
		res.Power[i] = real(x)*real(x) + imag(x)*imag(x)

		if i >= 1 && res.Power[i] > res.PeakPower {
			res.PeakPower = res.Power[i]
			res.PeakFreq = res.Freqs[i]
		}
	}

	return res, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
