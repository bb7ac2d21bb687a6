package sim

import (
	"math"
	"sort"
)

// Stats accumulates per-trial samples and answers the usual summary
// questions. Samples are retained so medians and percentiles work.
type Stats struct {
	n    int
	sum  float64
	sum2 float64

	values []float64
	sorted bool
}

// Add incorporates one trial's statistic.
func (s *Stats) Add(v float64) {
	s.n++
	s.sum += v
	s.sum2 += v * v
	s.values = append(s.values, v)
	s.sorted = false
}

// N returns the number of samples.
func (s *Stats) N() int {
	return s.n
}

// Mean returns the arithmetic mean of all samples.
func (s *Stats) Mean() float64 {
	if s.n == 0 {
		return 0
	}
	return s.sum / float64(s.n)
}

// Variance returns the sample variance.
func (s *Stats) Variance() float64 {
	if s.n < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.sum2 - float64(s.n)*mean*mean) / float64(s.n-1)
}

// StdDev returns the sample standard deviation.
func (s *Stats) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Stats) StdError() float64 {
	if s.n == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.n))
}

// ConfidenceInterval95 returns the 95% confidence interval for the
// mean.
func (s *Stats) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the middle sample.
func (s *Stats) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0),
// linearly interpolated between samples.
func (s *Stats) Percentile(p float64) float64 {
	if len(s.values) == 0 {
		return 0
	}
	s.ensureSorted()

	index := p * float64(len(s.values)-1)
	lower := int(index)
	upper := lower + 1
	if lower < 0 {
		return s.values[0]
	}
	if upper >= len(s.values) {
		return s.values[len(s.values)-1]
	}
	weight := index - float64(lower)
	return s.values[lower]*(1-weight) + s.values[upper]*weight
}

func (s *Stats) ensureSorted() {
	if s.sorted {
		return
	}
	sort.Float64s(s.values)
	s.sorted = true
}
