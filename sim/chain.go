package sim

import (
	"fmt"

	rand "math/rand/v2"
)

// MaxChainDepth caps the number of casts a single discovery chain can
// make. Unbounded chains are theoretically possible with enough cheap
// trigger cards, so the cap guarantees termination; it is a pragmatic
// bound, not a game-rules one, and trials that hit it slightly
// undercount long chains.
const MaxChainDepth = 10

// ChainResult summarizes a discovery-chain simulation.
type ChainResult struct {
	Trials int

	// MeanCost is the average total cost cast per trigger.
	MeanCost float64

	// MeanCast is the average number of cards cast per trigger.
	MeanCast float64

	// ChainRate is the fraction of trials that cast two or more cards,
	// i.e. where the discovery actually chained.
	ChainRate float64

	// Eligible lists the cards that the first discovery could hit,
	// for diagnostic display.
	Eligible []Card

	// CastStats exposes the per-trial cast-count distribution.
	CastStats *Stats
}

// Chain simulates a discovery trigger with the given cost threshold.
// Each trial shuffles the library, scans from the top for the first
// non-land card at or below the threshold, casts it, and, when that
// card carries the Trigger bit, continues scanning after it with the
// cast card's own cost as the new threshold. A trial where nothing is
// eligible casts zero cards.
func Chain(lib *Library, threshold int, opts Options) (*ChainResult, error) {
	if lib == nil || lib.Size() == 0 {
		return nil, fmt.Errorf("sim: chain needs a non-empty library")
	}
	if threshold < 0 {
		return nil, fmt.Errorf("sim: chain threshold %d, must be >= 0", threshold)
	}
	opts = opts.withDefaults()

	size := lib.Size()
	castStats := &Stats{}
	totalCost := 0
	chained := 0

	// Encode (cost, cast) in one float so the shared runner can carry
	// it; costs stay far below the 1<<20 packing boundary.
	const pack = 1 << 20
	samples, err := runTrials(opts, func(rng *rand.Rand) float64 {
		scratch := make([]Card, size)
		lib.shuffleInto(scratch, rng)
		out := runChainTrial(scratch, threshold)
		return float64(out.cost*pack + out.cast)
	})
	if err != nil {
		return nil, err
	}

	for _, s := range samples {
		v := int(s)
		cost, cast := v/pack, v%pack
		castStats.Add(float64(cast))
		totalCost += cost
		if cast >= 2 {
			chained++
		}
	}

	trials := len(samples)
	return &ChainResult{
		Trials:    trials,
		MeanCost:  float64(totalCost) / float64(trials),
		MeanCast:  castStats.Mean(),
		ChainRate: float64(chained) / float64(trials),
		Eligible:  eligiblePool(lib, threshold),
		CastStats: castStats,
	}, nil
}

type chainOutcome struct {
	cost int
	cast int
}

func runChainTrial(cards []Card, threshold int) chainOutcome {
	var out chainOutcome
	offset := 0
	for out.cast < MaxChainDepth {
		found := -1
		for i := offset; i < len(cards); i++ {
			c := cards[i]
			if c.Types.Has(Land) {
				continue
			}
			if c.Cost <= threshold {
				found = i
				break
			}
		}
		if found == -1 {
			break
		}
		hit := cards[found]
		out.cost += hit.Cost
		out.cast++
		if !hit.Types.Has(Trigger) {
			break
		}
		threshold = hit.Cost
		offset = found + 1
	}
	return out
}

// eligiblePool lists the distinct cards the first discovery could
// find: non-lands at or under the threshold.
func eligiblePool(lib *Library, threshold int) []Card {
	seen := make(map[Card]bool)
	var pool []Card
	for _, c := range lib.template {
		if c.Types.Has(Land) || c.Cost > threshold || seen[c] {
			continue
		}
		seen[c] = true
		pool = append(pool, c)
	}
	return pool
}
