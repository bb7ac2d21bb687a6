package sim

import (
	"math"
	"testing"
)

func TestChainNothingEligible(t *testing.T) {
	t.Parallel()
	// Lands only: the discovery never finds a card to cast.
	lib, err := NewLibrary([]Group{{Count: 40, Types: Land}})
	if err != nil {
		t.Fatalf("new library: %v", err)
	}
	res, err := Chain(lib, 5, Options{Iterations: 200, Seed: 1})
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	if res.MeanCast != 0 || res.MeanCost != 0 || res.ChainRate != 0 {
		t.Errorf("expected all-zero result, got %+v", res)
	}
	if len(res.Eligible) != 0 {
		t.Errorf("eligible pool should be empty, got %v", res.Eligible)
	}
}

func TestChainDepthCap(t *testing.T) {
	t.Parallel()
	// Every card is a cheap trigger, so each trial chains until the
	// cap.
	lib, err := NewLibrary([]Group{{Count: 30, Cost: 1, Types: Trigger}})
	if err != nil {
		t.Fatalf("new library: %v", err)
	}
	res, err := Chain(lib, 5, Options{Iterations: 300, Seed: 2})
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	if res.MeanCast != MaxChainDepth {
		t.Errorf("MeanCast = %v, want cap %d", res.MeanCast, MaxChainDepth)
	}
	if res.MeanCost != MaxChainDepth {
		t.Errorf("MeanCost = %v, want %d", res.MeanCost, MaxChainDepth)
	}
	if res.ChainRate != 1 {
		t.Errorf("ChainRate = %v, want 1", res.ChainRate)
	}
}

func TestChainNonTriggerStopsChain(t *testing.T) {
	t.Parallel()
	// Eligible cards exist but none re-trigger: exactly one cast per
	// trial, never a chain.
	lib, err := NewLibrary([]Group{{Count: 20, Cost: 3}})
	if err != nil {
		t.Fatalf("new library: %v", err)
	}
	res, err := Chain(lib, 5, Options{Iterations: 300, Seed: 3})
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	if res.MeanCast != 1 {
		t.Errorf("MeanCast = %v, want 1", res.MeanCast)
	}
	if res.MeanCost != 3 {
		t.Errorf("MeanCost = %v, want 3", res.MeanCost)
	}
	if res.ChainRate != 0 {
		t.Errorf("ChainRate = %v, want 0", res.ChainRate)
	}
}

func TestChainThresholdExcludesExpensiveCards(t *testing.T) {
	t.Parallel()
	// Everything costs more than the threshold.
	lib, err := NewLibrary([]Group{{Count: 20, Cost: 6, Types: Trigger}})
	if err != nil {
		t.Fatalf("new library: %v", err)
	}
	res, err := Chain(lib, 5, Options{Iterations: 100, Seed: 4})
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	if res.MeanCast != 0 {
		t.Errorf("MeanCast = %v, want 0", res.MeanCast)
	}
}

func TestChainDescendingThreshold(t *testing.T) {
	t.Parallel()
	// A trigger card's own cost becomes the next threshold, so a cast
	// at cost 2 can never be followed by a cost-3 cast.
	cards := []Card{
		{Cost: 2, Types: Trigger},
		{Cost: 3, Types: Trigger},
		{Cost: 3, Types: Trigger},
	}
	out := runChainTrial(cards, 5)
	if out.cast != 1 || out.cost != 2 {
		t.Errorf("got cast=%d cost=%d, want cast=1 cost=2", out.cast, out.cost)
	}
}

func TestChainSkipsLands(t *testing.T) {
	t.Parallel()
	cards := []Card{
		{Cost: 0, Types: Land},
		{Cost: 0, Types: Land},
		{Cost: 4},
	}
	out := runChainTrial(cards, 5)
	if out.cast != 1 || out.cost != 4 {
		t.Errorf("got cast=%d cost=%d, want cast=1 cost=4", out.cast, out.cost)
	}
}

func TestChainContinuationOffset(t *testing.T) {
	t.Parallel()
	// The second discovery starts after the first hit: the cost-1
	// card before the first hit is never seen again.
	cards := []Card{
		{Cost: 6},                 // too expensive, skipped
		{Cost: 2, Types: Trigger}, // first cast, new threshold 2
		{Cost: 1},                 // second cast, not a trigger
		{Cost: 1},
	}
	out := runChainTrial(cards, 5)
	if out.cast != 2 || out.cost != 3 {
		t.Errorf("got cast=%d cost=%d, want cast=2 cost=3", out.cast, out.cost)
	}
}

func TestChainEligiblePool(t *testing.T) {
	t.Parallel()
	lib, err := NewLibrary([]Group{
		{Count: 10, Cost: 2, Types: Trigger},
		{Count: 10, Cost: 7},
		{Count: 20, Types: Land},
	})
	if err != nil {
		t.Fatalf("new library: %v", err)
	}
	res, err := Chain(lib, 5, Options{Iterations: 50, Seed: 9})
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	if len(res.Eligible) != 1 {
		t.Fatalf("eligible pool = %v, want the single cost-2 card", res.Eligible)
	}
	if res.Eligible[0].Cost != 2 {
		t.Errorf("eligible card cost = %d, want 2", res.Eligible[0].Cost)
	}
}

func TestChainMeanCostConsistency(t *testing.T) {
	t.Parallel()
	// Mixed deck sanity: mean cost per cast card must sit between the
	// cheapest and most expensive eligible cost.
	lib, err := NewLibrary([]Group{
		{Count: 8, Cost: 1, Types: Trigger},
		{Count: 8, Cost: 4},
		{Count: 24, Types: Land},
	})
	if err != nil {
		t.Fatalf("new library: %v", err)
	}
	res, err := Chain(lib, 5, Options{Iterations: 5000, Seed: 10})
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	if res.MeanCast <= 0 {
		t.Fatalf("MeanCast = %v, want > 0", res.MeanCast)
	}
	costPerCast := res.MeanCost / res.MeanCast
	if costPerCast < 1-1e-9 || costPerCast > 4+1e-9 {
		t.Errorf("cost per cast = %v, want within [1, 4]", costPerCast)
	}
	if math.IsNaN(res.ChainRate) || res.ChainRate < 0 || res.ChainRate > 1 {
		t.Errorf("ChainRate = %v, want [0, 1]", res.ChainRate)
	}
}
