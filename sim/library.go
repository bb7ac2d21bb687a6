package sim

import (
	"fmt"

	rand "math/rand/v2"
)

// Library is the immutable template a simulation draws trial decks
// from. Each trial works on its own shuffled copy; the template is
// never mutated, so one Library can back concurrent simulations.
type Library struct {
	template []Card
}

// NewLibrary expands groups into a library. At least one card is
// required; negative counts or costs are programmer errors.
func NewLibrary(groups []Group) (*Library, error) {
	total := 0
	for _, g := range groups {
		if err := g.validate(); err != nil {
			return nil, err
		}
		total += g.Count
	}
	if total == 0 {
		return nil, fmt.Errorf("sim: library is empty")
	}

	cards := make([]Card, 0, total)
	for _, g := range groups {
		for i := 0; i < g.Count; i++ {
			cards = append(cards, Card{Cost: g.Cost, Types: g.Types})
		}
	}
	return &Library{template: cards}, nil
}

// Size returns the number of cards in the library.
func (l *Library) Size() int {
	return len(l.template)
}

// Cards returns a copy of the template, for diagnostics.
func (l *Library) Cards() []Card {
	return append([]Card(nil), l.template...)
}

// typeUnion returns the union of every card's mask.
func (l *Library) typeUnion() TypeMask {
	var union TypeMask
	for _, c := range l.template {
		union |= c.Types
	}
	return union
}

// shuffleInto copies the template into scratch and Fisher-Yates
// shuffles it. scratch must have the template's length.
func (l *Library) shuffleInto(scratch []Card, rng *rand.Rand) {
	copy(scratch, l.template)
	for i := len(scratch) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		scratch[i], scratch[j] = scratch[j], scratch[i]
	}
}

// shuffleTopInto is the partial variant: only the first k positions
// are drawn uniformly, in O(k) swaps. The tail is not a uniform
// permutation and must not be read.
func (l *Library) shuffleTopInto(scratch []Card, k int, rng *rand.Rand) {
	copy(scratch, l.template)
	if k > len(scratch) {
		k = len(scratch)
	}
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(scratch)-i)
		scratch[i], scratch[j] = scratch[j], scratch[i]
	}
}
