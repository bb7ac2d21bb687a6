package resultcache

import (
	"errors"
	"sync"
	"testing"
)

func TestGetOrComputeMemoizes(t *testing.T) {
	t.Parallel()
	c := New[int]()
	calls := 0
	compute := func() (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrCompute("k", compute)
		if err != nil {
			t.Fatalf("compute: %v", err)
		}
		if v != 42 {
			t.Fatalf("value = %d, want 42", v)
		}
	}
	if calls != 1 {
		t.Errorf("compute ran %d times, want 1", calls)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestGetOrComputeDoesNotCacheErrors(t *testing.T) {
	t.Parallel()
	c := New[int]()
	boom := errors.New("boom")
	calls := 0

	for i := 0; i < 2; i++ {
		if _, err := c.GetOrCompute("k", func() (int, error) {
			calls++
			return 0, boom
		}); !errors.Is(err, boom) {
			t.Fatalf("err = %v, want boom", err)
		}
	}
	if calls != 2 {
		t.Errorf("compute ran %d times, want 2 (errors must not stick)", calls)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	t.Parallel()
	c := New[int]()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := string(rune('a' + n%4))
			v, err := c.GetOrCompute(key, func() (int, error) { return n % 4, nil })
			if err != nil {
				t.Errorf("compute: %v", err)
			}
			if v != n%4 {
				t.Errorf("key %q = %d, want %d", key, v, n%4)
			}
		}(i)
	}
	wg.Wait()
	if c.Len() != 4 {
		t.Errorf("Len = %d, want 4", c.Len())
	}
}
