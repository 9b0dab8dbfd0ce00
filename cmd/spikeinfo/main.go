// Command spikeinfo prints spike-train statistics for a synthetic
// unit: firing rate, inter-spike-interval measures, a PSTH summary
// around regularly spaced events, and the dominant rate-modulation
// frequency.
//
// Usage:
//
//	spikeinfo [flags]
//
// Examples:
//
//	spikeinfo
//	spikeinfo -mode regular -rate 40 -duration 30
//	spikeinfo -seed 7 -bin 5 -start -200 -end 400
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-spike/measure/counts"
	"github.com/cwbudde/algo-spike/measure/oscillation"
	"github.com/cwbudde/algo-spike/spike/analyzer"
	"github.com/cwbudde/algo-spike/spike/gen"
	"github.com/cwbudde/algo-spike/spike/raster"
	"github.com/cwbudde/algo-spike/spike/train"
	"github.com/cwbudde/algo-spike/stats/isi"
)

func main() {
	mode := flag.String("mode", "poisson", "spike generator: poisson or regular")
	rate := flag.Float64("rate", 20, "target firing rate in Hz")
	duration := flag.Float64("duration", 60, "train duration in seconds")
	seed := flag.Uint64("seed", 1, "random seed")
	name := flag.String("name", "synthetic unit", "display name")
	eventStep := flag.Float64("events", 2, "event spacing in seconds")
	start := flag.Float64("start", raster.DefaultStartMs, "window start in ms relative to event")
	end := flag.Float64("end", raster.DefaultEndMs, "window end in ms relative to event")
	bin := flag.Float64("bin", raster.DefaultBinSizeMs, "bin size in ms")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: spikeinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints spike-train statistics for a synthetic unit.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	times, err := generate(*mode, *rate, *duration, *seed)
	if err != nil {
		fail(err)
	}

	a, err := analyzer.New(times, train.WithName(*name))
	if err != nil {
		fail(err)
	}

	events := eventTimes(*eventStep, *duration)
	w := raster.Window{StartMs: *start, EndMs: *end, BinSizeMs: *bin}

	if err := report(a, events, w); err != nil {
		fail(err)
	}
}

func generate(mode string, rate, duration float64, seed uint64) ([]float64, error) {
	g := gen.NewGenerator(gen.WithSeed(seed))

	switch mode {
	case "poisson":
		return g.Poisson(rate, duration)
	case "regular":
		return g.Regular(rate, duration, 0)
	default:
		return nil, fmt.Errorf("unknown mode %q (want poisson or regular)", mode)
	}
}

func eventTimes(step, duration float64) []float64 {
	var out []float64
	for i := 1; ; i++ {
		t := float64(i) * step
		if t >= duration {
			break
		}
		out = append(out, t)
	}

	return out
}

func report(a *analyzer.Analyzer, events []float64, w raster.Window) error {
	tr := a.Train()

	results, err := a.PSTH(events, nil, nil, w)
	if err != nil {
		return err
	}
	res := results["all"]

	perEvent, err := a.SpikeCounts(events, counts.DefaultWindow())
	if err != nil {
		return err
	}

	total := 0
	for _, c := range perEvent {
		total += c
	}

	s := isi.Calculate(tr.Times())

	peakRate, peakMs := 0.0, w.StartMs
	for j, v := range res.Mean {
		if v > peakRate {
			peakRate = v
			peakMs = w.StartMs + float64(j)*w.BinSizeMs
		}
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Unit\t%s\n", tr.Name())
	fmt.Fprintf(tw, "Spikes\t%d over %.1f s\n", tr.Len(), tr.Last()-tr.First())
	fmt.Fprintf(tw, "Firing rate\t%.2f spks/s\n", tr.FiringRate())
	fmt.Fprintf(tw, "ISI mean\t%.4f s (CV %.2f)\n", s.Mean, s.CV)
	fmt.Fprintf(tw, "ISI range\t[%.4f, %.4f] s\n", s.Min, s.Max)
	fmt.Fprintf(tw, "Events\t%d\n", len(events))
	fmt.Fprintf(tw, "PSTH trials\t%d\n", res.Rows)
	fmt.Fprintf(tw, "PSTH peak\t%.2f spks/s at %.0f ms\n", peakRate, peakMs)
	fmt.Fprintf(tw, "Counts in [50,100] ms\t%d total\n", total)

	if osc, err := oscillation.Analyze(tr, oscillation.Config{BinSizeMs: w.BinSizeMs}); err == nil {
		fmt.Fprintf(tw, "Rate modulation peak\t%.2f Hz\n", osc.PeakFreq)
	}

	return tw.Flush()
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
