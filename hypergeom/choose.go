// Package hypergeom computes exact draw probabilities for finite card
// populations sampled without replacement. It covers the classic
// single-type hypergeometric distribution, closed-form two and three
// type variants, and a recursive joint distribution over an arbitrary
// number of labeled types.
package hypergeom

// Choose returns the binomial coefficient C(n, k) as a float64.
//
// Impossible arguments (k < 0 or k > n) return 0, which lets callers
// treat them as zero-probability events rather than errors. The result
// is computed with an iterative multiply-then-divide over
// min(k, n-k) terms so intermediate magnitudes stay bounded; this is
// accurate to better than 1e-9 relative error for n up to a few
// hundred, which covers any sane library size.
func Choose(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k == 0 || k == n {
		return 1
	}
	if n-k < k {
		k = n - k
	}
	result := 1.0
	for i := 0; i < k; i++ {
		result = result * float64(n-i) / float64(i+1)
	}
	return result
}

// Factorial returns n! as a float64, or 0 for negative n.
// Choose does not use it; it exists for callers that want the raw
// ratio form. Overflows to +Inf past n = 170.
func Factorial(n int) float64 {
	if n < 0 {
		return 0
	}
	result := 1.0
	for i := 2; i <= n; i++ {
		result *= float64(i)
	}
	return result
}
