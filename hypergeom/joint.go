package hypergeom

import "fmt"

// JointExact returns the probability of drawing exactly drawn[i] cards
// of each labeled type i in n draws from an N-card library, where
// totals[i] is the number of copies of type i in the library. Cards
// not covered by any type form an implicit "other" pool that absorbs
// the remaining draws.
//
// Impossible combinations return 0. Mismatched slice lengths are a
// programmer error and panic.
func JointExact(N int, totals []int, n int, drawn []int) float64 {
	if len(totals) != len(drawn) {
		panic(fmt.Sprintf("hypergeom: %d type totals but %d drawn counts", len(totals), len(drawn)))
	}
	if n < 0 || n > N {
		return 0
	}

	typeTotal, typeDrawn := 0, 0
	for i := range totals {
		typeTotal += totals[i]
		typeDrawn += drawn[i]
	}
	if typeDrawn > n {
		return 0
	}

	otherTotal := N - typeTotal
	otherDrawn := n - typeDrawn
	if otherDrawn < 0 || otherDrawn > otherTotal {
		return 0
	}

	p := Choose(otherTotal, otherDrawn)
	for i := range totals {
		p *= Choose(totals[i], drawn[i])
	}
	return p / Choose(N, n)
}

// JointAtLeast returns the probability that n draws from an N-card
// library contain at least mins[i] cards of every labeled type i
// simultaneously. One and two and three types use the closed forms;
// beyond that it enumerates the draw-count lattice depth first,
// summing JointExact at each complete assignment. The enumeration is
// combinatorial in the number of types and n, which stays cheap for
// the handful of tracked categories and small draw counts decks see
// in practice.
func JointAtLeast(N int, totals []int, n int, mins []int) float64 {
	if len(totals) != len(mins) {
		panic(fmt.Sprintf("hypergeom: %d type totals but %d minimums", len(totals), len(mins)))
	}
	switch len(totals) {
	case 0:
		if n >= 0 && n <= N {
			return 1
		}
		return 0
	case 1:
		return AtLeast(N, totals[0], n, mins[0])
	case 2:
		return AtLeastTwo(N, totals[0], totals[1], n, mins[0], mins[1])
	case 3:
		return AtLeastThree(N, totals[0], totals[1], totals[2], n, mins[0], mins[1], mins[2])
	}

	drawn := make([]int, len(totals))
	return jointAtLeastFrom(N, totals, mins, drawn, n, 0, 0)
}

// jointAtLeastFrom assigns a draw count to type idx and recurses.
// Branches whose minimum already exceeds the remaining slots are
// never generated.
func jointAtLeastFrom(N int, totals, mins, drawn []int, n, idx, used int) float64 {
	if idx == len(totals) {
		return JointExact(N, totals, n, drawn)
	}
	remaining := n - used
	max := totals[idx]
	if remaining < max {
		max = remaining
	}
	total := 0.0
	for c := mins[idx]; c <= max; c++ {
		drawn[idx] = c
		total += jointAtLeastFrom(N, totals, mins, drawn, n, idx+1, used+c)
	}
	drawn[idx] = 0
	return total
}
