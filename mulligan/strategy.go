package mulligan

import (
	"github.com/lox/decklab/hypergeom"
)

// HandOutcome is one reachable opening-hand composition together with
// its draw probability and its chance of reaching every type's
// requirement by the deciding turn.
type HandOutcome struct {
	// Counts holds the number of cards of each type, index-aligned
	// with Deck.Types. The untyped remainder fills the hand.
	Counts []int

	// HandProb is the probability of opening with exactly this
	// composition. Summed over all outcomes it is 1.
	HandProb float64

	// SuccessProb is the probability that a player keeping this hand
	// sees every type's requirement by its deciding turn.
	SuccessProb float64

	// Keep is the policy decision for this hand.
	Keep bool
}

// Strategy is the full keep-or-mulligan policy for a deck.
type Strategy struct {
	Hands []HandOutcome

	// BestKeepProb is the highest SuccessProb across all hands.
	BestKeepProb float64

	// Threshold is the keep cutoff: BestKeepProb * (1 - Penalty).
	// Hands at or above it are kept. This is a fixed relative-drawdown
	// rule, not a global optimum search.
	Threshold float64

	// KeepProb is the probability a fresh seven-card hand is kept.
	KeepProb float64

	// ExpectedSuccess is the overall success probability under the
	// policy. The mulligan branch is valued with a one-level
	// lookahead: a fresh hand's expected value discounted once by the
	// penalty, not the fixed point of infinite recursion. That
	// heuristic is deliberate and kept as-is; see the package docs.
	ExpectedSuccess float64

	// NoMulliganSuccess is the keep-everything baseline: the success
	// probability averaged over all hands unconditionally.
	NoMulliganSuccess float64

	// AvgMulligans is the expected number of mulligans taken.
	AvgMulligans float64

	// ExpectedCards is the expected hand size at the moment of
	// keeping.
	ExpectedCards float64
}

// Compute derives the keep-or-mulligan strategy for a deck. It returns
// ErrDegenerate when the deck has nothing to compute over and a
// validation error for malformed input.
func Compute(deck Deck, params Params) (*Strategy, error) {
	if err := deck.Validate(); err != nil {
		return nil, err
	}
	if err := params.validate(); err != nil {
		return nil, err
	}
	if deck.degenerate() {
		return nil, ErrDegenerate
	}

	totals := make([]int, len(deck.Types))
	for i, ct := range deck.Types {
		totals[i] = ct.Count
	}

	// Cards seen by the deciding turn beyond the opening hand. The
	// player on the draw has seen maxTurn extra cards by turn maxTurn,
	// the player on the play one fewer.
	maxTurn := 1
	for _, ct := range deck.Types {
		if ct.ByTurn > maxTurn {
			maxTurn = ct.ByTurn
		}
	}
	draws := maxTurn
	if params.OnThePlay {
		draws = maxTurn - 1
		if draws < 0 {
			draws = 0
		}
	}

	strategy := &Strategy{}
	counts := make([]int, len(totals))
	enumerateHands(deck, totals, counts, 0, 0, draws, strategy)

	// Threshold rule: keep any hand within (1 - penalty) of the best
	// achievable hand, ties kept.
	strategy.Threshold = strategy.BestKeepProb * (1 - params.Penalty)
	keptSuccess := 0.0
	for i := range strategy.Hands {
		h := &strategy.Hands[i]
		h.Keep = h.SuccessProb >= strategy.Threshold
		strategy.NoMulliganSuccess += h.HandProb * h.SuccessProb
		if h.Keep {
			strategy.KeepProb += h.HandProb
			keptSuccess += h.HandProb * h.SuccessProb
		}
	}

	// One-level mulligan lookahead: a mulliganed hand is worth a fresh
	// seven discounted once by the penalty.
	mulliganProb := 1 - strategy.KeepProb
	penalizedOutcome := strategy.BestKeepProb * (1 - params.Penalty)
	evPenalized := keptSuccess + mulliganProb*penalizedOutcome
	if params.FreeMulligan {
		strategy.ExpectedSuccess = keptSuccess + mulliganProb*evPenalized
	} else {
		strategy.ExpectedSuccess = evPenalized
	}

	strategy.AvgMulligans = averageMulligans(strategy.KeepProb)
	strategy.ExpectedCards = expectedCards(strategy.KeepProb, params.FreeMulligan)

	return strategy, nil
}

// enumerateHands walks every count vector summing to at most HandSize,
// bounded per type by the copies in the library.
func enumerateHands(deck Deck, totals, counts []int, idx, used, draws int, strategy *Strategy) {
	if idx == len(totals) {
		handProb := hypergeom.JointExact(deck.Size, totals, HandSize, counts)
		if handProb == 0 {
			return
		}
		successProb := successProbability(deck, totals, counts, draws)
		strategy.Hands = append(strategy.Hands, HandOutcome{
			Counts:      append([]int(nil), counts...),
			HandProb:    handProb,
			SuccessProb: successProb,
		})
		if successProb > strategy.BestKeepProb {
			strategy.BestKeepProb = successProb
		}
		return
	}
	max := totals[idx]
	if HandSize-used < max {
		max = HandSize - used
	}
	for c := 0; c <= max; c++ {
		counts[idx] = c
		enumerateHands(deck, totals, counts, idx+1, used+c, draws, strategy)
	}
	counts[idx] = 0
}

// successProbability is the chance that the draws after keeping this
// hand cover every type's remaining requirement. Requirements already
// met contribute a zero minimum; the draw pool is the library minus
// the opening hand.
func successProbability(deck Deck, totals, counts []int, draws int) float64 {
	needs := make([]int, len(totals))
	remaining := make([]int, len(totals))
	satisfied := true
	for i, ct := range deck.Types {
		need := ct.Required - counts[i]
		if need < 0 {
			need = 0
		}
		if need > 0 {
			satisfied = false
		}
		needs[i] = need
		remaining[i] = totals[i] - counts[i]
	}
	if satisfied {
		return 1
	}
	if draws == 0 {
		return 0
	}
	return hypergeom.JointAtLeast(deck.Size-HandSize, remaining, draws, needs)
}

// averageMulligans is the mean of the geometric distribution over
// mulligan counts with per-round keep probability keepProb.
func averageMulligans(keepProb float64) float64 {
	if keepProb <= 0 {
		return 0
	}
	return (1 - keepProb) / keepProb
}

// expectedCards is the expected hand size at the moment of keeping,
// truncated after ten mulligan stages (or earlier once the residual
// probability mass drops below 1e-4) and renormalized over the mass
// actually covered. With a free mulligan the first redraw keeps all
// seven cards.
func expectedCards(keepProb float64, freeMulligan bool) float64 {
	if keepProb <= 0 {
		return 0
	}
	const (
		maxStages    = 10
		residualStop = 1e-4
	)
	sum := 0.0
	mass := 0.0
	stayProb := 1.0 // probability of reaching this stage
	for stage := 0; stage < maxStages; stage++ {
		cards := HandSize - stage
		if freeMulligan && stage >= 1 {
			cards++
		}
		if cards < 0 {
			cards = 0
		}
		pKeep := stayProb * keepProb
		sum += pKeep * float64(cards)
		mass += pKeep
		stayProb *= 1 - keepProb
		if stayProb < residualStop {
			break
		}
	}
	if mass == 0 {
		return 0
	}
	return sum / mass
}
