package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hyperifyio/metasearch/internal/search"
)

func someResults(n int) []search.Result {
	out := make([]search.Result, n)
	for i := range out {
		out[i] = search.Result{
			Title:   fmt.Sprintf("Title %d", i),
			URL:     fmt.Sprintf("https://x.test/%d", i),
			Engines: []string{"a"},
		}
	}
	return out
}

func TestMemory_RoundTrip(t *testing.T) {
	t.Parallel()
	m := NewMemory(0)
	ctx := context.Background()
	want := someResults(3)

	m.Store(ctx, "k", want, time.Minute)
	got, ok := m.Lookup(ctx, "k")
	if !ok {
		t.Fatalf("expected hit after store")
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].URL != want[i].URL || got[i].Title != want[i].Title {
			t.Fatalf("entry %d changed: %+v vs %+v", i, got[i], want[i])
		}
	}
}

func TestMemory_MissOnUnusedKey(t *testing.T) {
	t.Parallel()
	m := NewMemory(0)
	if _, ok := m.Lookup(context.Background(), "never-stored"); ok {
		t.Fatalf("expected miss on unused key")
	}
}

func TestMemory_ExpiredEntryIsAMiss(t *testing.T) {
	t.Parallel()
	m := NewMemory(0)
	ctx := context.Background()
	m.Store(ctx, "k", someResults(1), 20*time.Millisecond)

	if _, ok := m.Lookup(ctx, "k"); !ok {
		t.Fatalf("expected hit before expiry")
	}
	time.Sleep(50 * time.Millisecond)
	if _, ok := m.Lookup(ctx, "k"); ok {
		t.Fatalf("expected miss after ttl elapsed")
	}
}

func TestMemory_StoreReplacesEntry(t *testing.T) {
	t.Parallel()
	m := NewMemory(0)
	ctx := context.Background()
	m.Store(ctx, "k", someResults(1), time.Minute)
	m.Store(ctx, "k", someResults(5), time.Minute)

	got, ok := m.Lookup(ctx, "k")
	if !ok || len(got) != 5 {
		t.Fatalf("expected replaced entry with 5 results, got %d (hit=%v)", len(got), ok)
	}
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	m := NewMemory(128)
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			for j := 0; j < 100; j++ {
				m.Store(ctx, key, someResults(2), time.Minute)
				if got, ok := m.Lookup(ctx, key); ok && len(got) != 2 {
					t.Errorf("observed partial entry: %d results", len(got))
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
