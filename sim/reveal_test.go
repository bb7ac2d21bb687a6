package sim

import (
	"math"
	"testing"

	"github.com/lox/decklab/hypergeom"
)

func permanentsLibrary(t *testing.T, permanents, others int) *Library {
	t.Helper()
	lib, err := NewLibrary([]Group{
		{Count: permanents, Types: Permanent},
		{Count: others},
	})
	if err != nil {
		t.Fatalf("new library: %v", err)
	}
	return lib
}

func TestPermanentStreakConvergesToClosedForm(t *testing.T) {
	t.Parallel()
	// 36 permanents in 99 cards. P(streak = 0) is the chance the top
	// card is a non-permanent, which has an exact hypergeometric
	// answer. 50k iterations keeps Monte Carlo error well under 1%.
	lib := permanentsLibrary(t, 36, 63)
	res, err := PermanentStreak(lib, Options{Iterations: 50000, Seed: 1})
	if err != nil {
		t.Fatalf("permanent streak: %v", err)
	}

	wantZero := hypergeom.Exactly(99, 63, 1, 1)
	if math.Abs(res.Distribution[0]-wantZero) > 0.01 {
		t.Errorf("P(streak=0) = %v, want %v +- 0.01", res.Distribution[0], wantZero)
	}

	// Expected streak length: sum over k of P(first k cards are all
	// permanents).
	wantMean := 0.0
	pAllPerm := 1.0
	for k := 1; k <= 36; k++ {
		pAllPerm *= float64(36-k+1) / float64(99-k+1)
		wantMean += pAllPerm
	}
	if math.Abs(res.Expected-wantMean) > 0.01*wantMean+0.01 {
		t.Errorf("expected streak = %v, want %v within 1%%", res.Expected, wantMean)
	}
}

func TestRevealUntilDistributionSumsToOne(t *testing.T) {
	t.Parallel()
	lib := permanentsLibrary(t, 10, 30)
	res, err := PermanentStreak(lib, Options{Iterations: 5000, Seed: 7})
	if err != nil {
		t.Fatalf("permanent streak: %v", err)
	}
	sum := 0.0
	for _, f := range res.Distribution {
		sum += f
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("distribution mass = %v, want 1", sum)
	}
}

func TestRevealUntilDeterministicWithSeed(t *testing.T) {
	t.Parallel()
	lib := permanentsLibrary(t, 20, 40)
	opts := Options{Iterations: 2000, Seed: 42}
	a, err := PermanentStreak(lib, opts)
	if err != nil {
		t.Fatalf("run a: %v", err)
	}
	b, err := PermanentStreak(lib, opts)
	if err != nil {
		t.Fatalf("run b: %v", err)
	}
	if a.Expected != b.Expected {
		t.Errorf("same seed produced different means: %v vs %v", a.Expected, b.Expected)
	}
}

func TestRevealUntilExhaustsLibrary(t *testing.T) {
	t.Parallel()
	// All permanents: the streak never breaks and every trial reports
	// the full library size.
	lib := permanentsLibrary(t, 12, 0)
	res, err := PermanentStreak(lib, Options{Iterations: 100, Seed: 3})
	if err != nil {
		t.Fatalf("permanent streak: %v", err)
	}
	if res.Expected != 12 {
		t.Errorf("expected = %v, want 12", res.Expected)
	}
}

func TestDiversityCountsDistinctTypes(t *testing.T) {
	t.Parallel()
	// Two custom categories, every card in exactly one. Revealing the
	// whole library always sees both.
	catA, catB := Bit(0), Bit(1)
	lib, err := NewLibrary([]Group{
		{Count: 5, Types: catA},
		{Count: 5, Types: catB},
	})
	if err != nil {
		t.Fatalf("new library: %v", err)
	}
	res, err := Diversity(lib, 10, Options{Iterations: 500, Seed: 11})
	if err != nil {
		t.Fatalf("diversity: %v", err)
	}
	if res.Expected != 2 {
		t.Errorf("expected diversity = %v, want 2", res.Expected)
	}
}

func TestDiversityMatchesClosedFormForOneReveal(t *testing.T) {
	t.Parallel()
	// Revealing a single card from 30 typed + 70 untyped cards sees
	// exactly one category with probability 30/100.
	lib, err := NewLibrary([]Group{
		{Count: 30, Types: Bit(0)},
		{Count: 70},
	})
	if err != nil {
		t.Fatalf("new library: %v", err)
	}
	res, err := Diversity(lib, 1, Options{Iterations: 50000, Seed: 5})
	if err != nil {
		t.Fatalf("diversity: %v", err)
	}
	want := hypergeom.Exactly(100, 30, 1, 1)
	if math.Abs(res.Expected-want) > 0.01 {
		t.Errorf("expected diversity = %v, want %v +- 0.01", res.Expected, want)
	}
}

func TestRevealUntilRejectsBadInput(t *testing.T) {
	t.Parallel()
	lib := permanentsLibrary(t, 2, 2)
	if _, err := RevealUntil(nil, func(int, Card) bool { return true }, Options{}); err == nil {
		t.Error("nil library should fail")
	}
	if _, err := RevealUntil(lib, nil, Options{}); err == nil {
		t.Error("nil predicate should fail")
	}
	if _, err := Diversity(lib, 0, Options{}); err == nil {
		t.Error("zero reveal count should fail")
	}
}
