package mulligan

import (
	"fmt"
	"strings"
)

// CacheKey returns a canonical encoding of a deck and its parameters,
// suitable for keying memoized strategies. Two inputs produce the same
// key exactly when Compute would produce the same strategy for both.
func CacheKey(deck Deck, params Params) string {
	var b strings.Builder
	fmt.Fprintf(&b, "size=%d|penalty=%g|free=%t|play=%t", deck.Size, params.Penalty, params.FreeMulligan, params.OnThePlay)
	for _, ct := range deck.Types {
		fmt.Fprintf(&b, "|%s:%d:%d:%d", ct.Name, ct.Count, ct.Required, ct.ByTurn)
	}
	return b.String()
}
