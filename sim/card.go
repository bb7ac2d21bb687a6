// Package sim estimates card-draw statistics by Monte Carlo where the
// closed forms in package hypergeom run out: chained discovery
// triggers, reveal-until-stop processes, and type-diversity counts.
// Unlike the mulligan package's mutually exclusive buckets, simulated
// cards carry a bitmask of types so one card can satisfy several
// predicates at once.
package sim

import (
	"fmt"
	"math/bits"
)

// TypeMask is a set of card categories. The low bits are reserved for
// categories the simulators interpret themselves; callers allocate
// further bits with Bit.
type TypeMask uint32

const (
	// Land marks the card the chain simulator skips when scanning for
	// castable cards.
	Land TypeMask = 1 << iota

	// Permanent marks cards that extend a reveal streak.
	Permanent

	// Trigger marks cards that, when cast off a discovery trigger,
	// trigger another discovery themselves.
	Trigger

	reservedBits = 3
)

// Bit returns the i-th caller-defined category bit.
func Bit(i uint) TypeMask {
	return 1 << (i + reservedBits)
}

// Has reports whether every bit of other is set in m.
func (m TypeMask) Has(other TypeMask) bool {
	return m&other == other
}

// Count returns the number of categories in the mask.
func (m TypeMask) Count() int {
	return bits.OnesCount32(uint32(m))
}

// Card is one simulated library card.
type Card struct {
	// Cost is the card's resource cost, the comparison key for the
	// chain simulator.
	Cost int

	// Types is the set of categories the card belongs to.
	Types TypeMask
}

// Group declares Count identical cards for library construction.
type Group struct {
	Count int
	Cost  int
	Types TypeMask
}

func (g Group) validate() error {
	if g.Count < 0 {
		return fmt.Errorf("sim: group count %d is negative", g.Count)
	}
	if g.Cost < 0 {
		return fmt.Errorf("sim: group cost %d is negative", g.Cost)
	}
	return nil
}
