package mulligan

// TypeMarginal reports how much one extra copy of a type is worth,
// holding everything else fixed. The extra copy also grows the deck by
// one card.
type TypeMarginal struct {
	Name string

	// DeltaExpectedSuccess is the change in the policy's expected
	// success from adding one copy.
	DeltaExpectedSuccess float64

	// DeltaNoMulligan is the change in the keep-everything baseline.
	DeltaNoMulligan float64
}

// MarginalValue recomputes the strategy once per type with that type's
// count incremented and reports the deltas. Decks for which Compute
// fails propagate the same error.
func MarginalValue(deck Deck, params Params) ([]TypeMarginal, error) {
	base, err := Compute(deck, params)
	if err != nil {
		return nil, err
	}

	marginals := make([]TypeMarginal, len(deck.Types))
	for i, ct := range deck.Types {
		bumped := Deck{
			Size:  deck.Size + 1,
			Types: append([]CardType(nil), deck.Types...),
		}
		bumped.Types[i].Count++

		next, err := Compute(bumped, params)
		if err != nil {
			return nil, err
		}
		marginals[i] = TypeMarginal{
			Name:                 ct.Name,
			DeltaExpectedSuccess: next.ExpectedSuccess - base.ExpectedSuccess,
			DeltaNoMulligan:      next.NoMulliganSuccess - base.NoMulliganSuccess,
		}
	}
	return marginals, nil
}
