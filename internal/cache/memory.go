package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hyperifyio/metasearch/internal/search"
)

// DefaultMemorySize bounds the in-process cache when no size is configured.
const DefaultMemorySize = 1024

type memoryEntry struct {
	results   []search.Result
	expiresAt time.Time
}

// Memory is an in-process Cacher backed by a bounded LRU. Entries carry
// their own deadline; an expired entry is simply a miss at lookup time and
// gets evicted by the LRU or overwritten by the next store, there is no
// background sweep.
type Memory struct {
	entries *lru.Cache[string, memoryEntry]
}

// NewMemory returns a Memory holding at most size entries.
func NewMemory(size int) *Memory {
	if size <= 0 {
		size = DefaultMemorySize
	}
	entries, _ := lru.New[string, memoryEntry](size)
	return &Memory{entries: entries}
}

func (m *Memory) Lookup(_ context.Context, key string) ([]search.Result, bool) {
	e, ok := m.entries.Get(key)
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.results, true
}

func (m *Memory) Store(_ context.Context, key string, results []search.Result, ttl time.Duration) {
	m.entries.Add(key, memoryEntry{results: results, expiresAt: time.Now().Add(ttl)})
}
