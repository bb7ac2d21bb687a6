// Package mulligan decides keep-or-mulligan policies for opening hands.
// It enumerates every reachable starting-hand composition for a deck of
// labeled card types, scores each hand's chance of meeting per-type
// requirements by a target turn, and derives a keep threshold and the
// expected value of the resulting mulligan policy.
package mulligan

import (
	"errors"
	"fmt"
)

// HandSize is the number of cards in an opening hand.
const HandSize = 7

// CardType is one labeled bucket of cards in the library. Buckets are
// mutually exclusive: a card belongs to exactly one type for the exact
// math in this package (the sim package's bitmask cards are the place
// for dual-typed cards).
type CardType struct {
	// Name identifies the type in output tables.
	Name string

	// Count is the number of copies in the library.
	Count int

	// Required is the minimum number of copies that must have been
	// seen for a hand to count as a success.
	Required int

	// ByTurn is the turn by which Required copies must have been
	// seen, counting the opening hand plus one draw per turn.
	ByTurn int
}

// Deck is a library composition. Type counts may sum to less than
// Size; the remainder is untyped filler.
type Deck struct {
	Size  int
	Types []CardType
}

// Params control the mulligan policy derivation.
type Params struct {
	// Penalty is the fractional success-probability cost of taking a
	// mulligan, in [0, 1].
	Penalty float64

	// FreeMulligan makes the first mulligan penalty-free.
	FreeMulligan bool

	// OnThePlay removes the deciding turn's draw (the player on the
	// play draws one fewer card by any given turn).
	OnThePlay bool
}

// ErrDegenerate is returned when a deck has nothing to compute over:
// zero size, no tracked types, or all-zero type counts. Callers should
// treat it as "no data" rather than a failure.
var ErrDegenerate = errors.New("mulligan: degenerate deck configuration")

// Validate rejects malformed decks. Impossible-but-well-formed
// requirements (Required > Count) are not errors; they simply yield
// zero success probability.
func (d Deck) Validate() error {
	if d.Size < 0 {
		return fmt.Errorf("mulligan: deck size %d is negative", d.Size)
	}
	total := 0
	for _, ct := range d.Types {
		if ct.Count < 0 {
			return fmt.Errorf("mulligan: type %q has negative count %d", ct.Name, ct.Count)
		}
		if ct.Required < 0 {
			return fmt.Errorf("mulligan: type %q has negative requirement %d", ct.Name, ct.Required)
		}
		if ct.ByTurn < 1 {
			return fmt.Errorf("mulligan: type %q has by-turn %d, must be >= 1", ct.Name, ct.ByTurn)
		}
		total += ct.Count
	}
	if total > d.Size {
		return fmt.Errorf("mulligan: type counts sum to %d, exceeding deck size %d", total, d.Size)
	}
	return nil
}

func (p Params) validate() error {
	if p.Penalty < 0 || p.Penalty > 1 {
		return fmt.Errorf("mulligan: penalty %v outside [0, 1]", p.Penalty)
	}
	return nil
}

// degenerate reports whether there is nothing meaningful to compute.
func (d Deck) degenerate() bool {
	if d.Size == 0 || len(d.Types) == 0 {
		return true
	}
	for _, ct := range d.Types {
		if ct.Count > 0 {
			return false
		}
	}
	return true
}
