// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestLRU_GetAdd(t *testing.T) {
	t.Parallel()

	c := NewLRU[string, int](2)
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Add("a", 1)
	c.Add("b", 2)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %d, %v", v, ok)
	}

	// b is now least recently used.
	c.Add("c", 3)
	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v after eviction", v, ok)
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Errorf("Get(c) = %d, %v", v, ok)
	}

	stats := c.Stats()
	if stats.Evictions != 1 || stats.Size != 2 || stats.Capacity != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Hits != 3 || stats.Misses != 2 {
		t.Errorf("hits/misses = %d/%d, want 3/2", stats.Hits, stats.Misses)
	}
}

func TestLRU_UpdateExisting(t *testing.T) {
	t.Parallel()

	c := NewLRU[int, string](2)
	c.Add(1, "one")
	c.Add(2, "two")
	c.Add(1, "uno")
	c.Add(3, "three")

	if v, _ := c.Get(1); v != "uno" {
		t.Errorf("Get(1) = %q, want uno", v)
	}
	if _, ok := c.Get(2); ok {
		t.Error("expected 2 to be evicted after 1 was refreshed")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestLRU_RemoveAndClear(t *testing.T) {
	t.Parallel()

	c := NewLRU[string, int](0)
	if c.Stats().Capacity != DefaultCapacity {
		t.Errorf("capacity = %d, want %d", c.Stats().Capacity, DefaultCapacity)
	}

	c.Add("a", 1)
	c.Add("b", 2)
	if !c.Remove("a") || c.Remove("a") {
		t.Error("Remove should report presence once")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Clear", c.Len())
	}
	c.Add("c", 3)
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Error("cache unusable after Clear")
	}
}

func TestLRU_GetOrCompute(t *testing.T) {
	t.Parallel()

	c := NewLRU[string, int](4)
	calls := 0
	compute := func() int { calls++; return 42 }

	v, hit := c.GetOrCompute("k", compute)
	if v != 42 || hit {
		t.Errorf("first call = %d, hit=%v", v, hit)
	}
	v, hit = c.GetOrCompute("k", compute)
	if v != 42 || !hit {
		t.Errorf("second call = %d, hit=%v", v, hit)
	}
	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	t.Parallel()

	c := NewLRU[string, int](64)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := fmt.Sprintf("k%d", (g*500+i)%100)
				c.Add(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 64 {
		t.Errorf("Len() = %d exceeds capacity", c.Len())
	}
}
