package hypergeom

// Exactly returns the probability of drawing exactly k cards of a
// K-card type when drawing n cards from an N-card library without
// replacement. Impossible draws return 0.
func Exactly(N, K, n, k int) float64 {
	if k < 0 || k > K || k > n || n-k > N-K {
		return 0
	}
	return Choose(K, k) * Choose(N-K, n-k) / Choose(N, n)
}

// AtLeast returns the probability of drawing k or more cards of a
// K-card type when drawing n cards from an N-card library.
func AtLeast(N, K, n, k int) float64 {
	max := K
	if n < max {
		max = n
	}
	total := 0.0
	for i := k; i <= max; i++ {
		total += Exactly(N, K, n, i)
	}
	return total
}

// AtLeastTwo returns the probability of simultaneously drawing at
// least minA cards from a KA-card type and minB cards from a KB-card
// type in n draws from an N-card library. The remaining draws come
// from the untyped remainder of the library. Combinations whose
// implied "other" draw count is negative or exceeds the untyped pool
// contribute nothing and are pruned.
func AtLeastTwo(N, KA, KB, n, minA, minB int) float64 {
	if n < 0 || n > N {
		return 0
	}
	other := N - KA - KB
	total := 0.0
	for a := minA; a <= KA && a <= n; a++ {
		for b := minB; b <= KB && a+b <= n; b++ {
			rest := n - a - b
			if rest < 0 || rest > other {
				continue
			}
			total += Choose(KA, a) * Choose(KB, b) * Choose(other, rest)
		}
	}
	return total / Choose(N, n)
}

// AtLeastThree is the three-type analogue of AtLeastTwo.
func AtLeastThree(N, KA, KB, KC, n, minA, minB, minC int) float64 {
	if n < 0 || n > N {
		return 0
	}
	other := N - KA - KB - KC
	total := 0.0
	for a := minA; a <= KA && a <= n; a++ {
		for b := minB; b <= KB && a+b <= n; b++ {
			for c := minC; c <= KC && a+b+c <= n; c++ {
				rest := n - a - b - c
				if rest < 0 || rest > other {
					continue
				}
				total += Choose(KA, a) * Choose(KB, b) * Choose(KC, c) * Choose(other, rest)
			}
		}
	}
	return total / Choose(N, n)
}
