package sim

import (
	"fmt"
	"sync/atomic"

	rand "math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/lox/decklab/internal/randutil"
)

// DefaultIterations is the trial count used when Options leaves it
// unset. It trades runtime for Monte Carlo standard error, which
// shrinks with 1/sqrt(iterations); bump it per call when tighter
// estimates matter.
const DefaultIterations = 20000

// Options configure a simulation run. The zero value gets sensible
// defaults: DefaultIterations trials, a wall-clock seed, sequential
// execution.
type Options struct {
	// Iterations is the fixed trial count. It is deliberately not
	// adaptive so variance stays predictable run to run.
	Iterations int

	// Seed makes the run reproducible; 0 picks a wall-clock seed.
	Seed int64

	// Workers > 1 spreads trials across goroutines with independently
	// derived per-worker generators.
	Workers int

	// OnProgress, when set, is called with the cumulative trial count
	// roughly every ProgressEvery trials.
	OnProgress    func(done int)
	ProgressEvery int
}

func (o Options) withDefaults() Options {
	if o.Iterations <= 0 {
		o.Iterations = DefaultIterations
	}
	if o.Seed == 0 {
		o.Seed = randutil.TimeSeed()
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.ProgressEvery <= 0 {
		o.ProgressEvery = o.Iterations / 10
		if o.ProgressEvery == 0 {
			o.ProgressEvery = 1
		}
	}
	return o
}

// runTrials executes trial once per iteration and returns every
// sample. With one worker the trial sequence is fully determined by
// the seed; with several, each worker's subsequence is determined but
// samples are concatenated in worker order rather than submission
// order.
func runTrials(opts Options, trial func(rng *rand.Rand) float64) ([]float64, error) {
	if trial == nil {
		return nil, fmt.Errorf("sim: nil trial function")
	}
	master := randutil.New(opts.Seed)

	if opts.Workers == 1 {
		samples := make([]float64, opts.Iterations)
		for i := range samples {
			samples[i] = trial(master)
			if opts.OnProgress != nil && (i+1)%opts.ProgressEvery == 0 {
				opts.OnProgress(i + 1)
			}
		}
		return samples, nil
	}

	// Per-worker chunk sizes, remainder spread across the first few.
	chunk := opts.Iterations / opts.Workers
	remainder := opts.Iterations % opts.Workers

	samples := make([]float64, opts.Iterations)
	var done atomic.Int64
	var g errgroup.Group

	offset := 0
	for w := 0; w < opts.Workers; w++ {
		count := chunk
		if w < remainder {
			count++
		}
		out := samples[offset : offset+count]
		offset += count
		workerRng := randutil.Child(master)

		g.Go(func() error {
			for i := range out {
				out[i] = trial(workerRng)
			}
			total := done.Add(int64(len(out)))
			if opts.OnProgress != nil {
				opts.OnProgress(int(total))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return samples, nil
}
