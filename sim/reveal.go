package sim

import (
	"fmt"

	rand "math/rand/v2"
)

// StopFunc decides whether scanning stops at card c, the position-th
// reveal (0-based). The revealed count reported for the trial is the
// number of cards scanned before the stop.
type StopFunc func(position int, c Card) bool

// Result summarizes a reveal simulation.
type Result struct {
	// Expected is the mean of the trial statistic.
	Expected float64

	// Distribution[k] is the observed frequency of statistic value k.
	Distribution []float64

	// Stats gives access to spread and percentiles.
	Stats *Stats
}

// RevealUntil shuffles the library each trial and scans from the top
// until stop fires, recording how many cards were revealed first. A
// trial that exhausts the library records the full library size.
func RevealUntil(lib *Library, stop StopFunc, opts Options) (*Result, error) {
	if lib == nil || lib.Size() == 0 {
		return nil, fmt.Errorf("sim: reveal needs a non-empty library")
	}
	if stop == nil {
		return nil, fmt.Errorf("sim: nil stop predicate")
	}
	opts = opts.withDefaults()

	size := lib.Size()
	samples, err := runTrials(opts, func(rng *rand.Rand) float64 {
		scratch := make([]Card, size)
		lib.shuffleInto(scratch, rng)
		for i, c := range scratch {
			if stop(i, c) {
				return float64(i)
			}
		}
		return float64(size)
	})
	if err != nil {
		return nil, err
	}
	return summarize(samples, size), nil
}

// PermanentStreak measures how many consecutive permanents sit on top
// of a shuffled library: the streak ends at the first card without the
// Permanent bit.
func PermanentStreak(lib *Library, opts Options) (*Result, error) {
	return RevealUntil(lib, func(_ int, c Card) bool {
		return !c.Types.Has(Permanent)
	}, opts)
}

// Diversity reveals a fixed number of cards each trial and counts the
// distinct type categories among them. Only the revealed prefix is
// shuffled, which keeps a trial O(reveal) instead of O(library).
func Diversity(lib *Library, reveal int, opts Options) (*Result, error) {
	if lib == nil || lib.Size() == 0 {
		return nil, fmt.Errorf("sim: diversity needs a non-empty library")
	}
	if reveal <= 0 {
		return nil, fmt.Errorf("sim: reveal count %d, must be positive", reveal)
	}
	opts = opts.withDefaults()

	if reveal > lib.Size() {
		reveal = lib.Size()
	}
	maxDiversity := lib.typeUnion().Count()

	size := lib.Size()
	samples, err := runTrials(opts, func(rng *rand.Rand) float64 {
		scratch := make([]Card, size)
		lib.shuffleTopInto(scratch, reveal, rng)
		var seen TypeMask
		for _, c := range scratch[:reveal] {
			seen |= c.Types
		}
		return float64(seen.Count())
	})
	if err != nil {
		return nil, err
	}
	return summarize(samples, maxDiversity), nil
}

// summarize folds samples into a Result with a frequency distribution
// over 0..maxValue.
func summarize(samples []float64, maxValue int) *Result {
	stats := &Stats{}
	dist := make([]float64, maxValue+1)
	for _, v := range samples {
		stats.Add(v)
		k := int(v)
		if k >= 0 && k < len(dist) {
			dist[k]++
		}
	}
	for i := range dist {
		dist[i] /= float64(len(samples))
	}
	return &Result{
		Expected:     stats.Mean(),
		Distribution: dist,
		Stats:        stats,
	}
}
