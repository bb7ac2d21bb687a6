package hypergeom

import (
	"math"
	"testing"
)

func TestJointExactPartitionTwoTypes(t *testing.T) {
	t.Parallel()
	N, n := 99, 7
	totals := []int{36, 12}
	sum := 0.0
	for a := 0; a <= n; a++ {
		for b := 0; a+b <= n; b++ {
			sum += JointExact(N, totals, n, []int{a, b})
		}
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("two-type partition sum = %v, want 1", sum)
	}
}

func TestJointExactMatchesSingleType(t *testing.T) {
	t.Parallel()
	N, K, n := 60, 24, 7
	for k := 0; k <= n; k++ {
		got := JointExact(N, []int{K}, n, []int{k})
		want := Exactly(N, K, n, k)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("JointExact k=%d: %v, want %v", k, got, want)
		}
	}
}

func TestJointExactImpossible(t *testing.T) {
	t.Parallel()
	if got := JointExact(99, []int{36}, 7, []int{8}); got != 0 {
		t.Errorf("drawn > n: got %v", got)
	}
	// Types fill the whole library; drawing any "other" card is impossible.
	if got := JointExact(10, []int{6, 4}, 5, []int{2, 1}); got != 0 {
		t.Errorf("otherDrawn > otherTotal: got %v", got)
	}
	if got := JointExact(99, []int{36}, 120, []int{2}); got != 0 {
		t.Errorf("n > N: got %v", got)
	}
}

func TestJointExactMismatchedLengthsPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for mismatched slice lengths")
		}
	}()
	JointExact(99, []int{36, 12}, 7, []int{2})
}

func TestJointAtLeastDelegatesToClosedForms(t *testing.T) {
	t.Parallel()
	N, n := 99, 9

	got1 := JointAtLeast(N, []int{36}, n, []int{3})
	want1 := AtLeast(N, 36, n, 3)
	if math.Abs(got1-want1) > 1e-12 {
		t.Errorf("one type: %v, want %v", got1, want1)
	}

	got2 := JointAtLeast(N, []int{36, 12}, n, []int{2, 1})
	want2 := AtLeastTwo(N, 36, 12, n, 2, 1)
	if math.Abs(got2-want2) > 1e-12 {
		t.Errorf("two types: %v, want %v", got2, want2)
	}

	got3 := JointAtLeast(N, []int{36, 12, 8}, n, []int{2, 1, 1})
	want3 := AtLeastThree(N, 36, 12, 8, n, 2, 1, 1)
	if math.Abs(got3-want3) > 1e-12 {
		t.Errorf("three types: %v, want %v", got3, want3)
	}
}

func TestJointAtLeastFourTypes(t *testing.T) {
	t.Parallel()
	// Four types forces the recursive path. Validate against a brute
	// force sum over the full lattice.
	N, n := 60, 7
	totals := []int{20, 8, 6, 4}
	mins := []int{1, 1, 0, 1}

	want := 0.0
	for a := mins[0]; a <= n; a++ {
		for b := mins[1]; a+b <= n; b++ {
			for c := mins[2]; a+b+c <= n; c++ {
				for d := mins[3]; a+b+c+d <= n; d++ {
					want += JointExact(N, totals, n, []int{a, b, c, d})
				}
			}
		}
	}
	got := JointAtLeast(N, totals, n, mins)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("four types: %v, want %v", got, want)
	}
}

func TestJointAtLeastZeroMinimumsIsCertain(t *testing.T) {
	t.Parallel()
	got := JointAtLeast(99, []int{36, 12, 8, 4}, 7, []int{0, 0, 0, 0})
	if math.Abs(got-1) > 1e-9 {
		t.Errorf("all-zero minimums = %v, want 1", got)
	}
}

func TestJointAtLeastUnreachable(t *testing.T) {
	t.Parallel()
	// Requiring more copies than the library holds is a zero
	// probability outcome, not an error.
	if got := JointAtLeast(99, []int{3}, 7, []int{4}); got != 0 {
		t.Errorf("unreachable requirement = %v, want 0", got)
	}
}
